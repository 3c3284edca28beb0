package bwt

// Run is a decoded (symbol, length) pair: length consecutive occurrences of
// symbol in the represented string. Length is always in [1, maxRunLength].
type Run struct {
	Symbol uint8
	Length uint8
}

const (
	// runSymbolShift and runLengthMask mirror the packed-byte layout used by
	// the original C rle_unit: 3 bits of symbol in the high bits, 5 bits of
	// length in the low bits.
	runSymbolShift = 5
	runLengthMask  = 0x1F
	// maxRunLength is the longest run a single packed byte can represent. A
	// longer run of the same symbol is split across consecutive run bytes.
	maxRunLength = 0x1F

	// posMarkStride controls how often RleString records a (position ->
	// run index) sparse mark, trading memory for the length of the linear
	// scan At must do after a mark.
	posMarkStride = 4096
)

// PackRun packs a Run into the single-byte layout used by the binary file
// format: 3 bits of symbol, 5 bits of length.
func PackRun(run Run) byte {
	return byte(run.Symbol)<<runSymbolShift | (run.Length & runLengthMask)
}

// UnpackRun is the inverse of PackRun.
func UnpackRun(b byte) Run {
	return Run{
		Symbol: uint8(b >> runSymbolShift),
		Length: b & runLengthMask,
	}
}

// posMark records that run index runIndex begins at string position
// startPos, letting At seek near an arbitrary position without
// scanning every run from the start of the string.
type posMark struct {
	runIndex int
	startPos int
}

// RleString is a run-length-encoded string over a small alphabet. Runs are
// packed one per byte: 3 bits of symbol, 5 bits of length (1..31); a longer
// run of identical symbols spans multiple consecutive bytes.
type RleString struct {
	alphabetSize int
	runs         []byte
	marks        []posMark
	length       int // total number of symbols represented

	// open run being accumulated by Append, not yet flushed to runs.
	openSymbol uint8
	openLength uint8
	openValid  bool
}

// NewRleString returns an empty RleString over an alphabet of the given
// size (must be in [1, alphabet.MaxSize]).
func NewRleString(alphabetSize int) (*RleString, error) {
	if alphabetSize <= 0 || alphabetSize > 8 {
		return nil, newError(ErrSymbolOutOfAlphabet, "alphabet size %d out of range [1,8]", alphabetSize)
	}
	return &RleString{alphabetSize: alphabetSize}, nil
}

// Append adds one occurrence of symbol to the end of the string.
func (r *RleString) Append(symbol uint8) error {
	if int(symbol) >= r.alphabetSize {
		return newError(ErrSymbolOutOfAlphabet, "symbol %d not in alphabet of size %d", symbol, r.alphabetSize)
	}
	if r.openValid && symbol == r.openSymbol && r.openLength < maxRunLength {
		r.openLength++
	} else {
		r.flushOpenRun()
		r.openSymbol = symbol
		r.openLength = 1
		r.openValid = true
	}
	r.length++
	if r.length%posMarkStride == 0 {
		r.recordMark()
	}
	return nil
}

func (r *RleString) flushOpenRun() {
	if !r.openValid {
		return
	}
	r.runs = append(r.runs, PackRun(Run{Symbol: r.openSymbol, Length: r.openLength}))
	r.openValid = false
}

func (r *RleString) recordMark() {
	// Marks are recorded at run boundaries only; the closest committed run
	// start is used as the anchor so a subsequent linear scan from the mark
	// never needs to look at an in-progress open run.
	r.marks = append(r.marks, posMark{
		runIndex: len(r.runs),
		startPos: r.length - int(boolToInt(r.openValid))*int(r.openLength),
	})
}

func boolToInt(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Len returns the number of symbols represented by the string.
func (r *RleString) Len() int {
	return r.length
}

// NumRuns returns the number of committed runs, including any run currently
// being accumulated by Append.
func (r *RleString) NumRuns() int {
	if r.openValid {
		return len(r.runs) + 1
	}
	return len(r.runs)
}

// RunAt returns the i-th run, 0-indexed, including a still-open run.
func (r *RleString) RunAt(i int) (Run, error) {
	if i < 0 || i >= r.NumRuns() {
		return Run{}, newError(ErrIndexOutOfRange, "run index %d out of range [0,%d)", i, r.NumRuns())
	}
	if i == len(r.runs) {
		return Run{Symbol: r.openSymbol, Length: r.openLength}, nil
	}
	return UnpackRun(r.runs[i]), nil
}

// Runs materializes the list of decoded runs. Intended for small strings,
// tests, and debug output, not the hot path.
func (r *RleString) Runs() []Run {
	out := make([]Run, 0, r.NumRuns())
	for i := 0; i < r.NumRuns(); i++ {
		run, _ := r.RunAt(i)
		out = append(out, run)
	}
	return out
}

// At returns the symbol at string position pos.
func (r *RleString) At(pos int) (uint8, error) {
	if pos < 0 || pos >= r.length {
		return 0, newError(ErrIndexOutOfRange, "position %d out of range [0,%d)", pos, r.length)
	}
	runIndex, cursor := r.seek(pos)
	for runIndex < r.NumRuns() {
		run, err := r.RunAt(runIndex)
		if err != nil {
			return 0, err
		}
		if pos < cursor+int(run.Length) {
			return run.Symbol, nil
		}
		cursor += int(run.Length)
		runIndex++
	}
	return 0, newError(ErrIndexOutOfRange, "position %d not covered by any run", pos)
}

// seek returns the closest (runIndex, startPos) pair at or before pos, from
// which a caller can linearly scan forward.
func (r *RleString) seek(pos int) (runIndex, startPos int) {
	best := posMark{}
	for _, m := range r.marks {
		if m.startPos <= pos {
			best = m
		} else {
			break
		}
	}
	return best.runIndex, best.startPos
}
