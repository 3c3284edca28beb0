package bwt

import (
	"fmt"
	"io"
)

// AlphaCount holds one count per alphabet symbol, indexed by code. Only the
// first Σ entries of the array are meaningful for a given alphabet.
type AlphaCount [8]uint64

// Mark period constants. These mirror the two original fixed shifts used to
// build fm_index marks: a "large" mark every 2^16 positions carrying
// absolute per-symbol counts, and a "small" mark every 2^7 positions
// carrying a 16-bit delta relative to the large mark preceding it.
const (
	LargeMarkPeriod = 1 << 16
	SmallMarkPeriod = 1 << 7
)

type largeMark struct {
	runIndex  int
	runOffset int
	counts    AlphaCount
}

type smallMark struct {
	runIndex  int
	runOffset int
	// largeRef is the number of large marks recorded so far, i.e. 1-based
	// index into FmIndex.large; 0 means "no large mark yet, baseline is the
	// zero vector".
	largeRef int
	delta    [8]uint16
}

// FmIndex is a compressed full-text index built from a run-length-encoded
// BWT string: a C-array for constant-time "count of strictly smaller
// symbols" lookups, plus the two-level rank marks above for occ queries in
// O(SmallMarkPeriod) worst case.
type FmIndex struct {
	bwt          *RleString
	alphabetSize int
	n            int
	total        AlphaCount
	c            AlphaCount
	large        []largeMark
	small        []smallMark

	debug io.Writer
}

// Option configures an FmIndex at construction time.
type Option func(*FmIndex)

// WithDebug turns on the ASCII backward-search trace, written to w.
func WithDebug(w io.Writer) Option {
	return func(fm *FmIndex) { fm.debug = w }
}

// NewFmIndex builds an FmIndex over an already-complete RleString BWT.
func NewFmIndex(bwt *RleString, opts ...Option) (*FmIndex, error) {
	fm := &FmIndex{bwt: bwt, alphabetSize: bwt.alphabetSize, n: bwt.Len()}
	for _, opt := range opts {
		opt(fm)
	}

	var counts AlphaCount
	var baseline AlphaCount
	cursor := 0
	nextMark := SmallMarkPeriod
	numRuns := bwt.NumRuns()

	for ri := 0; ri < numRuns; ri++ {
		run, err := bwt.RunAt(ri)
		if err != nil {
			return nil, err
		}
		runStart := cursor
		runEnd := cursor + int(run.Length)

		for nextMark <= runEnd {
			offsetWithinRun := nextMark - runStart
			atBoundary := counts
			atBoundary[run.Symbol] += uint64(offsetWithinRun)

			if nextMark%LargeMarkPeriod == 0 {
				fm.large = append(fm.large, largeMark{runIndex: ri, runOffset: offsetWithinRun, counts: atBoundary})
				baseline = atBoundary
			}

			delta, derr := markDelta(baseline, atBoundary, fm.alphabetSize)
			if derr != nil {
				return nil, derr
			}
			fm.small = append(fm.small, smallMark{
				runIndex:  ri,
				runOffset: offsetWithinRun,
				largeRef:  len(fm.large),
				delta:     delta,
			})
			nextMark += SmallMarkPeriod
		}

		counts[run.Symbol] += uint64(run.Length)
		cursor = runEnd
	}

	fm.total = counts
	fm.c = buildCArray(counts, fm.alphabetSize)
	return fm, nil
}

func markDelta(baseline, atBoundary AlphaCount, alphabetSize int) ([8]uint16, error) {
	var delta [8]uint16
	for s := 0; s < alphabetSize; s++ {
		diff := atBoundary[s] - baseline[s]
		if diff > 0xFFFF {
			return delta, newError(ErrMarkDeltaOverflow, "delta %d for symbol %d exceeds 16 bits", diff, s)
		}
		delta[s] = uint16(diff)
	}
	return delta, nil
}

// buildCArray turns per-symbol totals into the FM-index C-array: C[c] is the
// number of symbols in the text strictly lexicographically smaller than c.
func buildCArray(total AlphaCount, alphabetSize int) AlphaCount {
	var c AlphaCount
	var running uint64
	for s := 0; s < alphabetSize; s++ {
		c[s] = running
		running += total[s]
	}
	return c
}

// Len returns the length of the indexed BWT string.
func (fm *FmIndex) Len() int {
	return fm.n
}

// C returns C[symbol]: the count of symbols strictly smaller than symbol
// across the whole indexed text.
func (fm *FmIndex) C(symbol uint8) uint64 {
	return fm.c[symbol]
}

// Total returns the total occurrence count of every symbol across the whole
// indexed text.
func (fm *FmIndex) Total() AlphaCount {
	return fm.total
}

// At returns the raw symbol code at BWT position i (bwt[i]), never an
// alphabet character: decoding to a printable symbol is left to the caller.
func (fm *FmIndex) At(i int) (uint8, error) {
	return fm.bwt.At(i)
}

// Occ returns the number of occurrences of symbol in bwt[0, i) — the
// half-open convention fixed by this package: Occ(0, c) is always 0 for any
// c, and Occ is never asked to special-case a "-1" sentinel index.
func (fm *FmIndex) Occ(i int, symbol uint8) (uint64, error) {
	all, err := fm.OccAll(i)
	if err != nil {
		return 0, err
	}
	return all[symbol], nil
}

// OccAll returns, for every symbol, its occurrence count in bwt[0, i).
func (fm *FmIndex) OccAll(i int) (AlphaCount, error) {
	if i < 0 || i > fm.n {
		return AlphaCount{}, newError(ErrIndexOutOfRange, "position %d out of range [0,%d]", i, fm.n)
	}
	if i == 0 {
		return AlphaCount{}, nil
	}

	b := i / SmallMarkPeriod
	var base AlphaCount
	var runIndex, runOffset int
	if b > 0 {
		m := fm.small[b-1]
		if m.largeRef > 0 {
			base = fm.large[m.largeRef-1].counts
		}
		for s := 0; s < fm.alphabetSize; s++ {
			base[s] += uint64(m.delta[s])
		}
		runIndex, runOffset = m.runIndex, m.runOffset
	}

	cursor := b * SmallMarkPeriod
	for cursor < i {
		run, err := fm.bwt.RunAt(runIndex)
		if err != nil {
			return AlphaCount{}, err
		}
		avail := int(run.Length) - runOffset
		take := i - cursor
		if take > avail {
			take = avail
		}
		base[run.Symbol] += uint64(take)
		cursor += take
		runOffset += take
		if runOffset == int(run.Length) {
			runIndex++
			runOffset = 0
		}
	}
	if fm.debug != nil {
		fmt.Fprintf(fm.debug, "occ(%d) -> %v\n", i, base)
	}
	return base, nil
}

// Debug writes a human-readable dump of the C-array and mark counts,
// generalizing the teacher's printLFDebug visualization to an arbitrary
// alphabet.
func (fm *FmIndex) Debug(w io.Writer) {
	fmt.Fprintf(w, "FmIndex: n=%d alphabetSize=%d runs=%d largeMarks=%d smallMarks=%d\n",
		fm.n, fm.alphabetSize, fm.bwt.NumRuns(), len(fm.large), len(fm.small))
	for s := 0; s < fm.alphabetSize; s++ {
		fmt.Fprintf(w, "  symbol %d: C=%d total=%d\n", s, fm.c[s], fm.total[s])
	}
}
