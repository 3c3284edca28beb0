package bwt

import "testing"

// TestFmIndex_BackwardSearchChain reproduces the worked backward-search
// scenario over the toy string "ard$rcaaaabb": starting from the single
// symbol range for 'a', extending backward by 'r' then by 'b' builds up the
// matched pattern "bra" and narrows the interval to size 2.
func TestFmIndex_BackwardSearchChain(t *testing.T) {
	fm := buildToyFmIndex(t)

	a := fm.SingleSymbolRange(1) // 'a'
	if a != (SaInterval{1, 6}) {
		t.Fatalf("SingleSymbolRange(a) = %+v, want {1 6}", a)
	}

	ra, err := fm.ExtendBackward(a, 5) // 'r'
	if err != nil {
		t.Fatal(err)
	}
	if ra != (SaInterval{10, 12}) {
		t.Fatalf("extend by r = %+v, want {10 12}", ra)
	}

	bra, err := fm.ExtendBackward(ra, 2) // 'b'
	if err != nil {
		t.Fatal(err)
	}
	if bra != (SaInterval{6, 8}) {
		t.Fatalf("extend by b = %+v, want {6 8}", bra)
	}
	if bra.Len() != 2 {
		t.Fatalf("final interval size = %d, want 2", bra.Len())
	}
}

func TestFmIndex_SearchMatchesChainedExtend(t *testing.T) {
	fm := buildToyFmIndex(t)
	// pattern "bra", most significant symbol first: b r a
	iv, err := fm.Search([]uint8{2, 5, 1})
	if err != nil {
		t.Fatal(err)
	}
	if iv != (SaInterval{6, 8}) {
		t.Fatalf("Search(bra) = %+v, want {6 8}", iv)
	}
}

func TestFmIndex_SearchAbsentPattern(t *testing.T) {
	fm := buildToyFmIndex(t)
	n, err := fm.Count([]uint8{4, 4, 4}) // "ddd" never occurs
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("Count(ddd) = %d, want 0", n)
	}
}

func TestFmIndex_ExtendAllBackwardMatchesIndividualExtend(t *testing.T) {
	fm := buildToyFmIndex(t)
	base := fm.FullRange()

	all, err := fm.ExtendAllBackward(base)
	if err != nil {
		t.Fatal(err)
	}
	for s := 0; s < toyAlphabetSize; s++ {
		single, err := fm.ExtendBackward(base, uint8(s))
		if err != nil {
			t.Fatal(err)
		}
		if all[s] != single {
			t.Errorf("ExtendAllBackward[%d] = %+v, want %+v", s, all[s], single)
		}
	}
}

func TestFmIndex_ExtendBackwardOnEmptyIntervalStaysEmpty(t *testing.T) {
	fm := buildToyFmIndex(t)
	empty := SaInterval{3, 3}
	next, err := fm.ExtendBackward(empty, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !next.Empty() {
		t.Fatalf("extending an empty interval produced %+v, want empty", next)
	}
}

func TestSaInterval_LenAndEmpty(t *testing.T) {
	iv := SaInterval{Lower: 4, Upper: 9}
	if iv.Len() != 5 {
		t.Errorf("Len() = %d, want 5", iv.Len())
	}
	if iv.Empty() {
		t.Error("Empty() = true, want false")
	}
	if !(SaInterval{Lower: 4, Upper: 4}).Empty() {
		t.Error("expected a zero-width interval to be Empty")
	}
	if !(SaInterval{Lower: 9, Upper: 4}).Empty() {
		t.Error("expected an inverted interval to be Empty")
	}
}
