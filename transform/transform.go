/*
Package transform provides functions for transforming encoded sequences.

Complement takes the complement of a sequence.
(returns a sequence where each symbol has been swapped with its complement,
A<->T, C<->G for DNA5.)

Reverse takes the reverse of a sequence.
(literally just reverses a slice. Exists in stdlib-adjacent form too but hey
why not have it here, alongside Complement and ReverseComplement.)

ReverseComplement takes the reverse complement of a sequence.
(Reverses the sequence and returns the complement of the reversed sequence.)

Unlike early versions of this package, the functions here are not hardcoded
to a single IUPAC ambiguity map: they take an *alphabet.Alphabet and use its
Complement table, so the same code serves any alphabet the BWT/FM-index
components are parametrized over. A string-based convenience wrapper is kept
for callers working with DNA5 text directly.
*/
package transform

import "github.com/TimothyStiles/bwtfm/alphabet"

// Complement returns the complement of a slice of alphabet codes, leaving
// codes seq unmodified.
func Complement(seq []uint8, a *alphabet.Alphabet) []uint8 {
	out := make([]uint8, len(seq))
	for i, c := range seq {
		out[i] = a.Complement(c)
	}
	return out
}

// Reverse returns a reversed copy of seq.
func Reverse(seq []uint8) []uint8 {
	out := make([]uint8, len(seq))
	for i, c := range seq {
		out[len(seq)-1-i] = c
	}
	return out
}

// ReverseComplement returns the reverse complement of seq: complement every
// code, then reverse the result.
func ReverseComplement(seq []uint8, a *alphabet.Alphabet) []uint8 {
	return Reverse(Complement(seq, a))
}

// ComplementString returns the complement of a DNA5 string, e.g. "GATTACA"
// -> "CTAATGT".
func ComplementString(sequence string) (string, error) {
	codes, err := alphabet.DNA5.EncodeAll(sequence)
	if err != nil {
		return "", err
	}
	return alphabet.DNA5.DecodeAll(Complement(codes, alphabet.DNA5))
}

// ReverseString returns the reverse of a string, e.g. "GATTACA" -> "ACATTAG".
func ReverseString(sequence string) string {
	runes := []rune(sequence)
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[len(runes)-1-i] = r
	}
	return string(out)
}

// ReverseComplementString returns the reverse complement of a DNA5 string,
// e.g. "GATTACA" -> "TGTAATC".
func ReverseComplementString(sequence string) (string, error) {
	codes, err := alphabet.DNA5.EncodeAll(sequence)
	if err != nil {
		return "", err
	}
	return alphabet.DNA5.DecodeAll(ReverseComplement(codes, alphabet.DNA5))
}
