package bwtio_test

import (
	"bytes"
	"testing"

	"github.com/TimothyStiles/bwtfm/alphabet"
	"github.com/TimothyStiles/bwtfm/bwt"
	"github.com/TimothyStiles/bwtfm/bwtio"
)

func buildSampleRle(t *testing.T) *bwt.RleString {
	t.Helper()
	codes, err := alphabet.DNA5.EncodeAll("GATTACA")
	if err != nil {
		t.Fatal(err)
	}
	codes = append(codes, alphabet.DNA5.Sentinel())

	rle, err := bwt.NewRleString(alphabet.DNA5.Size())
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range codes {
		if err := rle.Append(c); err != nil {
			t.Fatal(err)
		}
	}
	return rle
}

func TestWriteReadRoundTrip(t *testing.T) {
	rle := buildSampleRle(t)

	var buf bytes.Buffer
	if err := bwtio.Write(&buf, rle, 1); err != nil {
		t.Fatal(err)
	}

	got, header, err := bwtio.Read(&buf, alphabet.DNA5.Size())
	if err != nil {
		t.Fatal(err)
	}
	if header.NumStrings != 1 {
		t.Errorf("header.NumStrings = %d, want 1", header.NumStrings)
	}
	if header.NumSymbols != uint64(rle.Len()) {
		t.Errorf("header.NumSymbols = %d, want %d (total decoded length)", header.NumSymbols, rle.Len())
	}
	if got.Len() != rle.Len() {
		t.Fatalf("round-tripped length = %d, want %d", got.Len(), rle.Len())
	}
	for i := 0; i < rle.Len(); i++ {
		want, err := rle.At(i)
		if err != nil {
			t.Fatal(err)
		}
		have, err := got.At(i)
		if err != nil {
			t.Fatal(err)
		}
		if want != have {
			t.Errorf("At(%d) = %d, want %d", i, have, want)
		}
	}
}

func TestReadHeader_BadMagic(t *testing.T) {
	buf := bytes.NewReader([]byte{0x01, 0x02, 0, 0, 0, 0, 0, 0})
	if _, err := bwtio.ReadHeader(buf); err == nil {
		t.Fatal("expected error for a file with the wrong magic number")
	}
}

// TestRead_InconsistentSymbolCount exercises the corruption check spec.md §7
// requires: a header whose declared NumSymbols doesn't match the total
// length the run payload actually decodes to must be rejected, even though
// every individual run byte is perfectly well-formed.
func TestRead_InconsistentSymbolCount(t *testing.T) {
	rle := buildSampleRle(t)

	var buf bytes.Buffer
	h := bwtio.Header{
		NumStrings: 1,
		NumSymbols: uint64(rle.Len()) + 1, // corrupt: one more than the runs decode to
		NumRuns:    uint64(rle.NumRuns()),
		Flag:       bwtio.FlagNone,
	}
	if err := bwtio.WriteHeader(&buf, h); err != nil {
		t.Fatal(err)
	}
	if err := bwtio.WriteRuns(&buf, rle); err != nil {
		t.Fatal(err)
	}

	if _, _, err := bwtio.Read(&buf, alphabet.DNA5.Size()); err == nil {
		t.Fatal("expected error when header's declared symbol count doesn't match the decoded run length")
	}
}

func TestReadRuns_Truncated(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0xFF) // only one byte, header promises more
	if _, err := bwtio.ReadRuns(&buf, alphabet.DNA5.Size(), 5, 0); err == nil {
		t.Fatal("expected error for truncated run data")
	}
}
