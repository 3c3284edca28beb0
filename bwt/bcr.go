package bwt

import (
	"fmt"
	"io"
	"sort"
)

// BcrPair tracks one input string's progress through incremental BWT
// construction: U is its current row index within the partial BWT built so
// far (the anchor LF-mapping uses to compute next round's rank), and V is
// the string's original index, carried along purely for bookkeeping/debug
// output.
type BcrPair struct {
	U int
	V int
}

// InsertionEvent reports the per-symbol tally inserted during one BCR
// round, for callers that want to observe construction progress.
type InsertionEvent struct {
	Round  int
	Counts AlphaCount
}

// BuildReport summarizes a completed BcrBuilder.Build call.
type BuildReport struct {
	NumStrings  int
	TotalLength int
	Rounds      int
	Events      []InsertionEvent
}

// BcrBuilder incrementally constructs the multi-string BWT of a collection
// of sentinel-terminated strings using the Bauer-Cox-Rosone algorithm: at
// each round every string still being refined prepends exactly one more
// character to its matched suffix, and that new row's final rank is
// computed directly via LF-mapping arithmetic against the partial BWT
// built by previous rounds — no suffix array is ever materialized.
type BcrBuilder struct {
	alphabetSize int
	texts        [][]uint8 // each already sentinel(0)-terminated

	debug io.Writer
}

// NewBcrBuilder returns an empty builder for an alphabet of the given size.
func NewBcrBuilder(alphabetSize int) (*BcrBuilder, error) {
	if alphabetSize <= 0 || alphabetSize > 8 {
		return nil, newError(ErrSymbolOutOfAlphabet, "alphabet size %d out of range [1,8]", alphabetSize)
	}
	return &BcrBuilder{alphabetSize: alphabetSize}, nil
}

// WithBuildDebug turns on per-round progress logging to w.
func (b *BcrBuilder) WithBuildDebug(w io.Writer) *BcrBuilder {
	b.debug = w
	return b
}

// AddString appends one sentinel-terminated string to the collection. codes
// must end with the sentinel symbol (0) and must not contain it anywhere
// else.
func (b *BcrBuilder) AddString(codes []uint8) error {
	if len(codes) == 0 {
		return newError(ErrIndexOutOfRange, "string must not be empty")
	}
	if codes[len(codes)-1] != 0 {
		return newError(ErrSymbolOutOfAlphabet, "string must end with the sentinel symbol")
	}
	for i := 0; i < len(codes)-1; i++ {
		if codes[i] == 0 {
			return newError(ErrSymbolOutOfAlphabet, "sentinel symbol may only appear at the end of a string, found at position %d", i)
		}
		if int(codes[i]) >= b.alphabetSize {
			return newError(ErrSymbolOutOfAlphabet, "symbol %d at position %d not in alphabet of size %d", codes[i], i, b.alphabetSize)
		}
	}
	b.texts = append(b.texts, codes)
	return nil
}

// NumStrings returns the number of strings added so far.
func (b *BcrBuilder) NumStrings() int {
	return len(b.texts)
}

// Build runs the BCR algorithm to completion and returns the resulting
// multi-string BWT as an RleString, plus a summary report.
func (b *BcrBuilder) Build() (*RleString, *BuildReport, error) {
	k := len(b.texts)
	if k == 0 {
		return nil, nil, newError(ErrIndexOutOfRange, "no strings added to BcrBuilder")
	}

	lengths := make([]int, k)
	maxLen := 0
	totalLen := 0
	for j, t := range b.texts {
		lengths[j] = len(t)
		totalLen += len(t)
		if len(t) > maxLen {
			maxLen = len(t)
		}
	}

	partial := make([]uint8, 0, totalLen)
	// pairs[j] tracks string j's current row (U) alongside its fixed
	// original index (V), threaded through every round instead of a bare
	// []int so the row/identity pairing the algorithm reasons about stays
	// one value, not two arrays a caller could accidentally desync.
	pairs := make([]*BcrPair, k)
	for j := range pairs {
		pairs[j] = &BcrPair{U: j, V: j}
	}
	var total AlphaCount

	report := &BuildReport{NumStrings: k, TotalLength: totalLen}

	for t := 1; t <= maxLen; t++ {
		active := make([]int, 0, k)
		for j := 0; j < k; j++ {
			if lengths[j] >= t {
				active = append(active, j)
			}
		}
		if len(active) == 0 {
			break
		}

		// Process strictly in ascending current-row order: this is both the
		// order the occBefore sweep below relies on, and the order the
		// same-round b[] counter must see to keep the counting sort
		// stable, matching the original's "stable counting sort".
		sort.Slice(active, func(x, y int) bool { return pairs[active[x]].U < pairs[active[y]].U })

		symbolOf := make(map[int]uint8, len(active))
		for _, j := range active {
			symbolOf[j] = b.texts[j][lengths[j]-t]
		}

		// Single sweep over the old partial BWT to capture, for every
		// active string, the per-symbol occurrence counts strictly before
		// pairs[j].U (occBefore), in one linear pass.
		occBefore := make(map[int]AlphaCount, len(active))
		var running AlphaCount
		ptr := 0
		for i := 0; i <= len(partial); i++ {
			for ptr < len(active) && pairs[active[ptr]].U == i {
				occBefore[active[ptr]] = running
				ptr++
			}
			if i < len(partial) {
				running[partial[i]]++
			}
		}
		for ptr < len(active) {
			occBefore[active[ptr]] = running
			ptr++
		}

		// Pass A: tally how many new rows this round carry each symbol.
		var mc AlphaCount
		for _, j := range active {
			mc[symbolOf[j]]++
		}

		// ac[s] = number of new-round insertions with symbol strictly less
		// than s, a prefix sum over mc.
		var ac AlphaCount
		var running2 uint64
		for s := 0; s < b.alphabetSize; s++ {
			ac[s] = running2
			running2 += mc[s]
		}

		cOld := buildCArray(total, b.alphabetSize)

		// Pass B: assign each new row its final rank in the merged array.
		var bCounter AlphaCount
		newRow := make(map[int]int, len(active))
		for _, j := range active {
			c := symbolOf[j]
			rank := cOld[c] + occBefore[j][c] + ac[c]
			if c == 0 { // round 1: lone-sentinel rows, ordered by string index
				rank += bCounter[c]
			}
			newRow[j] = int(rank)
			bCounter[c]++
		}

		newLen := len(partial) + len(active)
		merged := make([]uint8, newLen)
		placed := make([]bool, newLen)
		for _, j := range active {
			var prev uint8 // the sentinel once the whole string is inserted
			if t < lengths[j] {
				prev = b.texts[j][lengths[j]-t-1]
			}
			merged[newRow[j]] = prev
			placed[newRow[j]] = true
		}
		oldPtr := 0
		for i := 0; i < newLen; i++ {
			if !placed[i] {
				merged[i] = partial[oldPtr]
				oldPtr++
			}
		}
		partial = merged

		for s := 0; s < b.alphabetSize; s++ {
			total[s] += mc[s]
		}

		for _, j := range active {
			pairs[j].U = newRow[j]
		}

		report.Rounds = t
		report.Events = append(report.Events, InsertionEvent{Round: t, Counts: mc})
		if b.debug != nil {
			fmt.Fprintf(b.debug, "bcr: round %d active=%d inserted=%v\n", t, len(active), mc)
		}
	}

	out, err := NewRleString(b.alphabetSize)
	if err != nil {
		return nil, nil, err
	}
	for _, sym := range partial {
		if err := out.Append(sym); err != nil {
			return nil, nil, err
		}
	}
	return out, report, nil
}
