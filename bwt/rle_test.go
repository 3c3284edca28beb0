package bwt

import "testing"

func TestRleString_AppendAndAt(t *testing.T) {
	r, err := NewRleString(4)
	if err != nil {
		t.Fatal(err)
	}

	// 0=$ 1=a 2=b 3=c ; string "aaabccc$"
	input := []uint8{1, 1, 1, 2, 3, 3, 3, 0}
	for _, s := range input {
		if err := r.Append(s); err != nil {
			t.Fatal(err)
		}
	}

	if r.Len() != len(input) {
		t.Fatalf("Len() = %d, want %d", r.Len(), len(input))
	}

	for i, want := range input {
		got, err := r.At(i)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("At(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestRleString_RunMerging(t *testing.T) {
	r, err := NewRleString(2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if err := r.Append(1); err != nil {
			t.Fatal(err)
		}
	}
	if got := r.NumRuns(); got != 1 {
		t.Fatalf("NumRuns() = %d, want 1 for a single short run", got)
	}

	run, err := r.RunAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if run.Symbol != 1 || run.Length != 10 {
		t.Errorf("RunAt(0) = %+v, want {Symbol:1 Length:10}", run)
	}
}

func TestRleString_RunSplitsAtMaxLength(t *testing.T) {
	r, err := NewRleString(2)
	if err != nil {
		t.Fatal(err)
	}
	n := maxRunLength + 5
	for i := 0; i < n; i++ {
		if err := r.Append(1); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := r.NumRuns(), 2; got != want {
		t.Fatalf("NumRuns() = %d, want %d", got, want)
	}
	first, _ := r.RunAt(0)
	second, _ := r.RunAt(1)
	if first.Length != maxRunLength {
		t.Errorf("first run length = %d, want %d", first.Length, maxRunLength)
	}
	if int(first.Length)+int(second.Length) != n {
		t.Errorf("total run length = %d, want %d", int(first.Length)+int(second.Length), n)
	}
}

func TestRleString_AppendRejectsOutOfAlphabet(t *testing.T) {
	r, err := NewRleString(2)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Append(5); err == nil {
		t.Fatal("expected error appending a symbol outside the alphabet")
	}
}

func TestRleString_AtOutOfRange(t *testing.T) {
	r, err := NewRleString(2)
	if err != nil {
		t.Fatal(err)
	}
	_ = r.Append(1)
	if _, err := r.At(5); err == nil {
		t.Fatal("expected error for out-of-range position")
	}
}

func TestRleString_SeekAcrossManyMarks(t *testing.T) {
	r, err := NewRleString(2)
	if err != nil {
		t.Fatal(err)
	}
	// Force several pos marks: alternate long runs of 0s and 1s well past
	// posMarkStride.
	total := posMarkStride*3 + 17
	var want []uint8
	for i := 0; i < total; i++ {
		s := uint8(i / maxRunLength % 2)
		if err := r.Append(s); err != nil {
			t.Fatal(err)
		}
		want = append(want, s)
	}
	for _, i := range []int{0, 1, posMarkStride - 1, posMarkStride, posMarkStride + 1, total - 1} {
		got, err := r.At(i)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if got != want[i] {
			t.Errorf("At(%d) = %d, want %d", i, got, want[i])
		}
	}
}
