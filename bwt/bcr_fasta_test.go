package bwt

import (
	"testing"

	"github.com/TimothyStiles/bwtfm/alphabet"
	"github.com/TimothyStiles/bwtfm/bio/fasta"
)

func TestBcrBuilder_AddFastaRecords(t *testing.T) {
	records := []*fasta.Record{
		{Identifier: "r1", Sequence: "GATTACA"},
		{Identifier: "r2", Sequence: "TACATACA"},
	}

	b, err := NewBcrBuilder(alphabet.DNA5.Size())
	if err != nil {
		t.Fatal(err)
	}
	if err := b.AddFastaRecords(records, alphabet.DNA5); err != nil {
		t.Fatal(err)
	}
	if b.NumStrings() != len(records) {
		t.Fatalf("NumStrings() = %d, want %d", b.NumStrings(), len(records))
	}

	rle, _, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	wantLen := len("GATTACA") + 1 + len("TACATACA") + 1
	if rle.Len() != wantLen {
		t.Fatalf("built BWT length = %d, want %d", rle.Len(), wantLen)
	}
}

func TestBcrBuilder_AddFastaRecordRejectsBadSequence(t *testing.T) {
	b, err := NewBcrBuilder(alphabet.DNA5.Size())
	if err != nil {
		t.Fatal(err)
	}
	bad := &fasta.Record{Identifier: "bad", Sequence: "GATXACA"}
	if err := b.AddFastaRecord(bad, alphabet.DNA5); err == nil {
		t.Fatal("expected error encoding a sequence with a non-alphabet byte")
	}
}
