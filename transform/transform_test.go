package transform

import (
	"fmt"

	"github.com/TimothyStiles/bwtfm/alphabet"
)

func ExampleReverseComplement() {
	codes, _ := alphabet.DNA5.EncodeAll("GATTACA")
	rc := ReverseComplement(codes, alphabet.DNA5)
	decoded, _ := alphabet.DNA5.DecodeAll(rc)
	fmt.Println(decoded)

	// Output: TGTAATC
}

func ExampleComplement() {
	codes, _ := alphabet.DNA5.EncodeAll("GATTACA")
	c := Complement(codes, alphabet.DNA5)
	decoded, _ := alphabet.DNA5.DecodeAll(c)
	fmt.Println(decoded)

	// Output: CTAATGT
}

func ExampleReverse() {
	codes, _ := alphabet.DNA5.EncodeAll("GATTACA")
	r := Reverse(codes)
	decoded, _ := alphabet.DNA5.DecodeAll(r)
	fmt.Println(decoded)

	// Output: ACATTAG
}
