package bwt

import "fmt"

// ErrorKind classifies an Error returned by this package.
type ErrorKind int

const (
	// ErrBadMagic means a binary BWT file did not start with the expected
	// magic number.
	ErrBadMagic ErrorKind = iota
	// ErrTruncatedRuns means a binary BWT file ended before num_runs runs
	// were read.
	ErrTruncatedRuns
	// ErrInconsistentSymbolCount means a header's num_symbols does not
	// match the total length its runs decode to.
	ErrInconsistentSymbolCount
	// ErrMarkDeltaOverflow means a small mark's delta from its enclosing
	// large mark would not fit in 16 bits.
	ErrMarkDeltaOverflow
	// ErrInvalidKmerLength means a requested k-mer length was <= 0 or
	// larger than the indexed text.
	ErrInvalidKmerLength
	// ErrIndexOutOfRange means a position or rank argument fell outside
	// the valid domain for the receiver.
	ErrIndexOutOfRange
	// ErrSymbolOutOfAlphabet means a byte or code did not belong to the
	// alphabet in use.
	ErrSymbolOutOfAlphabet
)

func (k ErrorKind) String() string {
	switch k {
	case ErrBadMagic:
		return "ErrBadMagic"
	case ErrTruncatedRuns:
		return "ErrTruncatedRuns"
	case ErrInconsistentSymbolCount:
		return "ErrInconsistentSymbolCount"
	case ErrMarkDeltaOverflow:
		return "ErrMarkDeltaOverflow"
	case ErrInvalidKmerLength:
		return "ErrInvalidKmerLength"
	case ErrIndexOutOfRange:
		return "ErrIndexOutOfRange"
	case ErrSymbolOutOfAlphabet:
		return "ErrSymbolOutOfAlphabet"
	default:
		return "ErrUnknown"
	}
}

// Error is the tagged error type returned throughout this package.
type Error struct {
	Kind ErrorKind
	msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("bwt: %s: %s", e.Kind, e.msg)
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// NewFormatError builds an *Error for packages outside bwt (namely bwtio)
// that need to report a format-level failure (bad magic, truncated runs,
// mismatched symbol count) tagged with the same ErrorKind values this
// package uses internally.
func NewFormatError(kind ErrorKind, format string, args ...interface{}) *Error {
	return newError(kind, format, args...)
}

// bwtRecovery, when deferred, turns a panic into a plain error (not an
// *Error) stored in *err. No function in this package defers it: out-of-range
// indices and data errors are both returned directly as *Error values.
func bwtRecovery(operation string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("bwt: %s: internal error: %v", operation, r)
	}
}
