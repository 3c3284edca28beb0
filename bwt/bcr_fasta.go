package bwt

import (
	"fmt"

	"github.com/TimothyStiles/bwtfm/alphabet"
	"github.com/TimothyStiles/bwtfm/bio/fasta"
)

// AddFastaRecord encodes a FASTA record's sequence through a and appends a
// sentinel, then adds the resulting string to the builder. This lets a
// caller drive BcrBuilder directly off bio/fasta records instead of
// hand-assembling sentinel-terminated byte buffers.
func (b *BcrBuilder) AddFastaRecord(record *fasta.Record, a *alphabet.Alphabet) error {
	codes, err := a.EncodeAll(record.Sequence)
	if err != nil {
		return fmt.Errorf("record %q: %w", record.Identifier, err)
	}
	codes = append(codes, a.Sentinel())
	return b.AddString(codes)
}

// AddFastaRecords is a convenience wrapper that adds every record in
// records, in order.
func (b *BcrBuilder) AddFastaRecords(records []*fasta.Record, a *alphabet.Alphabet) error {
	for _, r := range records {
		if err := b.AddFastaRecord(r, a); err != nil {
			return err
		}
	}
	return nil
}
