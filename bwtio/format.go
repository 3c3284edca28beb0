/*
Package bwtio reads and writes the on-disk binary BWT file format: a small
fixed header followed by the packed run bytes of an RleString. Per the
format's non-goal scope, only the header and run payload are handled here —
rank marks are always rebuilt in memory by bwt.NewFmIndex, never persisted.
*/
package bwtio

import (
	"encoding/binary"
	"io"

	"github.com/TimothyStiles/bwtfm/bwt"
)

// Magic is the two-byte value every binary BWT file starts with.
const Magic uint16 = 0xCACA

// Flag values recorded in the header. FlagHasFmIndex is accepted on read but
// never produced by Write: this package never serializes rank marks.
const (
	FlagNone       uint32 = 0
	FlagHasFmIndex uint32 = 1
)

// Header is the fixed-size preamble of a binary BWT file. NumSymbols is the
// total decoded string length (the sum of every run's length, sentinels
// included), not the alphabet size — alphabet size is never part of this
// header, since the decoder always brings its own alphabet out of band.
type Header struct {
	NumStrings uint64
	NumSymbols uint64
	NumRuns    uint64
	Flag       uint32
}

// WriteHeader writes h to w in the file's little-endian layout.
func WriteHeader(w io.Writer, h Header) error {
	fields := []interface{}{Magic, h.NumStrings, h.NumSymbols, h.NumRuns, h.Flag}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

// ReadHeader reads and validates a Header from r, returning a tagged
// *bwt.Error with Kind ErrBadMagic if the magic number does not match.
func ReadHeader(r io.Reader) (Header, error) {
	var magic uint16
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return Header{}, err
	}
	if magic != Magic {
		return Header{}, bwt.NewFormatError(bwt.ErrBadMagic, "got magic 0x%04X, want 0x%04X", magic, Magic)
	}

	var h Header
	for _, f := range []interface{}{&h.NumStrings, &h.NumSymbols, &h.NumRuns, &h.Flag} {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return Header{}, err
		}
	}
	return h, nil
}

// WriteRuns writes the packed run bytes of rle to w, in run order.
func WriteRuns(w io.Writer, rle *bwt.RleString) error {
	runs := rle.Runs()
	buf := make([]byte, len(runs))
	for i, run := range runs {
		buf[i] = bwt.PackRun(run)
	}
	_, err := w.Write(buf)
	return err
}

// ReadRuns reads exactly numRuns packed run bytes from r and appends them,
// symbol by symbol, into a new RleString over the given alphabet size. A
// *bwt.Error of kind ErrTruncatedRuns is returned if fewer bytes are
// available than the header promised. Once decoded, the sum of run
// lengths is checked against declaredNumSymbols (the header's NumSymbols
// field); a mismatch — meaning the run payload doesn't actually decode to
// the length the header claims — is reported as ErrInconsistentSymbolCount.
func ReadRuns(r io.Reader, alphabetSize int, numRuns uint64, declaredNumSymbols uint64) (*bwt.RleString, error) {
	buf := make([]byte, numRuns)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, bwt.NewFormatError(bwt.ErrTruncatedRuns, "expected %d run bytes: %v", numRuns, err)
	}

	out, err := bwt.NewRleString(alphabetSize)
	if err != nil {
		return nil, err
	}
	for _, b := range buf {
		run := bwt.UnpackRun(b)
		for i := uint8(0); i < run.Length; i++ {
			if err := out.Append(run.Symbol); err != nil {
				return nil, err
			}
		}
	}
	if uint64(out.Len()) != declaredNumSymbols {
		return nil, bwt.NewFormatError(bwt.ErrInconsistentSymbolCount,
			"header declares %d symbols, runs decode to %d", declaredNumSymbols, out.Len())
	}
	return out, nil
}

// Write serializes rle as a complete binary BWT file: header followed by
// packed runs. numStrings is recorded for readers that want to know how
// many sentinel-terminated strings the BWT represents, without re-deriving
// it from a sentinel-range scan. NumSymbols is set to rle's total decoded
// length, the quantity ReadRuns checks the run payload against on read.
func Write(w io.Writer, rle *bwt.RleString, numStrings int) error {
	h := Header{
		NumStrings: uint64(numStrings),
		NumSymbols: uint64(rle.Len()),
		NumRuns:    uint64(rle.NumRuns()),
		Flag:       FlagNone,
	}
	if err := WriteHeader(w, h); err != nil {
		return err
	}
	return WriteRuns(w, rle)
}

// Read parses a complete binary BWT file, decoding its runs over an
// alphabet of size alphabetSize (supplied by the caller; it is not part of
// the on-disk header) and validating that the header's declared NumSymbols
// matches the total length the runs actually decode to.
func Read(r io.Reader, alphabetSize int) (*bwt.RleString, Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, Header{}, err
	}
	rle, err := ReadRuns(r, alphabetSize, h.NumRuns, h.NumSymbols)
	if err != nil {
		return nil, h, err
	}
	return rle, h, nil
}
