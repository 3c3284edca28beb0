package bwt

// SaInterval is a half-open suffix-array interval [Lower, Upper): the set of
// BWT rows whose corresponding suffix starts with the pattern matched so
// far. An empty interval (Lower >= Upper) means the pattern does not occur.
type SaInterval struct {
	Lower int
	Upper int
}

// Len returns the number of BWT rows the interval covers.
func (iv SaInterval) Len() int {
	if iv.Upper <= iv.Lower {
		return 0
	}
	return iv.Upper - iv.Lower
}

// Empty reports whether the interval matches no rows.
func (iv SaInterval) Empty() bool {
	return iv.Len() == 0
}

// FullRange returns the interval covering every row of the BWT, the starting
// point for a backward search.
func (fm *FmIndex) FullRange() SaInterval {
	return SaInterval{Lower: 0, Upper: fm.n}
}

// SingleSymbolRange returns the interval of rows whose first column is
// symbol: [C(symbol), C(symbol)+total(symbol)).
func (fm *FmIndex) SingleSymbolRange(symbol uint8) SaInterval {
	lower := fm.C(symbol)
	upper := lower + fm.total[symbol]
	return SaInterval{Lower: int(lower), Upper: int(upper)}
}

// ExtendBackward narrows iv by prepending symbol to the matched pattern,
// using the LF-mapping identity new = [C(c)+occ(lower,c), C(c)+occ(upper,c)).
func (fm *FmIndex) ExtendBackward(iv SaInterval, symbol uint8) (SaInterval, error) {
	if iv.Empty() {
		return SaInterval{}, nil
	}
	loOcc, err := fm.Occ(iv.Lower, symbol)
	if err != nil {
		return SaInterval{}, err
	}
	hiOcc, err := fm.Occ(iv.Upper, symbol)
	if err != nil {
		return SaInterval{}, err
	}
	c := fm.C(symbol)
	return SaInterval{Lower: int(c + loOcc), Upper: int(c + hiOcc)}, nil
}

// ExtendAllBackward simultaneously extends iv by every symbol of the
// alphabet, returning one SaInterval per symbol code. This lets a caller
// explore every backward-search child of iv with a single pair of occ
// queries instead of one pair per symbol.
func (fm *FmIndex) ExtendAllBackward(iv SaInterval) ([8]SaInterval, error) {
	var out [8]SaInterval
	if iv.Empty() {
		return out, nil
	}
	loCounts, err := fm.OccAll(iv.Lower)
	if err != nil {
		return out, err
	}
	hiCounts, err := fm.OccAll(iv.Upper)
	if err != nil {
		return out, err
	}
	for s := 0; s < fm.alphabetSize; s++ {
		c := fm.C(uint8(s))
		out[s] = SaInterval{Lower: int(c + loCounts[s]), Upper: int(c + hiCounts[s])}
	}
	return out, nil
}

// Search runs a full backward search for pattern (codes, most significant
// first) and returns the resulting SaInterval. An empty result means the
// pattern does not occur in the indexed text.
func (fm *FmIndex) Search(pattern []uint8) (SaInterval, error) {
	iv := fm.FullRange()
	for i := len(pattern) - 1; i >= 0; i-- {
		if iv.Empty() {
			return SaInterval{}, nil
		}
		var err error
		iv, err = fm.ExtendBackward(iv, pattern[i])
		if err != nil {
			return SaInterval{}, err
		}
	}
	return iv, nil
}

// Count returns the number of occurrences of pattern in the indexed text.
func (fm *FmIndex) Count(pattern []uint8) (int, error) {
	iv, err := fm.Search(pattern)
	if err != nil {
		return 0, err
	}
	return iv.Len(), nil
}
