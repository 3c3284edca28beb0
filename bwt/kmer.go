package bwt

import (
	"fmt"
	"sync"

	"github.com/TimothyStiles/bwtfm/alphabet"
	"github.com/TimothyStiles/bwtfm/transform"
)

// KmerResult is one canonical k-mer discovered by a KmerEnumerator, along
// with how many times it and its reverse complement occur in the indexed
// text.
type KmerResult struct {
	Codes        []uint8
	ForwardCount int
	ReverseCount int
}

// Format renders a result as "kmer<TAB>forward_count<TAB>reverse_count",
// decoding Codes through a.
func (r KmerResult) Format(a *alphabet.Alphabet) (string, error) {
	s, err := a.DecodeAll(r.Codes)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\t%d\t%d", s, r.ForwardCount, r.ReverseCount), nil
}

// KmerEnumerator performs a concurrent depth-first backward search over an
// FmIndex, emitting every canonical k-mer (the lexicographically smaller of
// a k-mer and its reverse complement) that occurs in the indexed text.
//
// Workers share a single LIFO stack guarded by a mutex and a condition
// variable, plus an active-worker counter: a worker blocks on the condition
// variable only when the stack is empty AND other workers are still active
// (and so might push more work); it exits once the stack is empty and no
// worker is active. This is a work-stealing-free design — there is no
// per-worker queue to steal from, just the one shared stack — chosen
// because the branching factor of the search (at most alphabetSize-1 per
// node) is too small and uneven to benefit from partitioning work ahead of
// time.
type KmerEnumerator struct {
	fm      *FmIndex
	a       *alphabet.Alphabet
	k       int
	workers int
}

// NewKmerEnumerator returns an enumerator over fm for canonical k-mers of
// length k, using the complement table of a.
func NewKmerEnumerator(fm *FmIndex, a *alphabet.Alphabet, k int, workers int) (*KmerEnumerator, error) {
	if k <= 0 || k > fm.Len() {
		return nil, newError(ErrInvalidKmerLength, "k=%d invalid for indexed text of length %d", k, fm.Len())
	}
	if workers <= 0 {
		workers = 1
	}
	return &KmerEnumerator{fm: fm, a: a, k: k, workers: workers}, nil
}

type kmerStackElt struct {
	codes    []uint8 // matched suffix so far, in left-to-right k-mer order
	interval SaInterval
}

// Run explores every k-mer reachable from the full range and sends each
// canonical result on the returned channel, which is closed once the
// search is complete. A non-nil error means the search was aborted; any
// results already sent remain valid.
func (e *KmerEnumerator) Run() (<-chan KmerResult, <-chan error) {
	results := make(chan KmerResult)
	errc := make(chan error, 1)

	var mu sync.Mutex
	cond := sync.NewCond(&mu)
	stack := []kmerStackElt{{codes: nil, interval: e.fm.FullRange()}}
	active := 0
	var firstErr error

	var wg sync.WaitGroup
	wg.Add(e.workers)
	for w := 0; w < e.workers; w++ {
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				for len(stack) == 0 && active > 0 && firstErr == nil {
					cond.Wait()
				}
				if (len(stack) == 0 && active == 0) || firstErr != nil {
					mu.Unlock()
					return
				}
				elt := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				active++
				mu.Unlock()

				children, err := e.expand(elt, results)

				mu.Lock()
				active--
				if err != nil && firstErr == nil {
					firstErr = err
				}
				if len(children) > 0 {
					stack = append(stack, children...)
				}
				cond.Broadcast()
				mu.Unlock()
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
		if firstErr != nil {
			errc <- firstErr
		}
		close(errc)
	}()

	return results, errc
}

// expand processes one stack element: if it has reached full k-mer length
// it is (possibly) emitted as a canonical result, otherwise it is extended
// by every non-sentinel symbol and the surviving children are returned for
// the caller to push back onto the shared stack.
func (e *KmerEnumerator) expand(elt kmerStackElt, results chan<- KmerResult) ([]kmerStackElt, error) {
	if len(elt.codes) == e.k {
		result, emit, err := e.canonicalize(elt)
		if err != nil {
			return nil, err
		}
		if emit {
			results <- result
		}
		return nil, nil
	}

	var children []kmerStackElt
	for s := 1; s < e.a.Size(); s++ { // skip the sentinel, code 0
		next, err := e.fm.ExtendBackward(elt.interval, uint8(s))
		if err != nil {
			return nil, err
		}
		if next.Empty() {
			continue
		}
		codes := make([]uint8, len(elt.codes)+1)
		codes[0] = uint8(s)
		copy(codes[1:], elt.codes)
		children = append(children, kmerStackElt{codes: codes, interval: next})
	}
	return children, nil
}

// canonicalize decides whether elt's matched k-mer should be emitted, and
// with what counts, following the rule: the lexicographically smaller of a
// k-mer and its reverse complement is always canonical; the larger is only
// canonical (and only then emitted) when its partner does not occur in the
// indexed text at all, so a k-mer whose reverse complement is absent is
// never silently dropped.
func (e *KmerEnumerator) canonicalize(elt kmerStackElt) (KmerResult, bool, error) {
	seq := elt.codes
	revComp := transform.ReverseComplement(seq, e.a)

	fwdCount := elt.interval.Len()

	cmp := compareCodes(seq, revComp)
	if cmp == 0 {
		return KmerResult{Codes: seq, ForwardCount: fwdCount, ReverseCount: fwdCount}, true, nil
	}

	revCount, err := e.fm.Count(revComp)
	if err != nil {
		return KmerResult{}, false, err
	}

	if cmp < 0 {
		return KmerResult{Codes: seq, ForwardCount: fwdCount, ReverseCount: revCount}, true, nil
	}
	// seq is the lexicographically larger form: its reverse complement is
	// the canonical one to emit. This still only happens when that partner
	// never occurs in the indexed text — otherwise it's emitted once, when
	// the DFS reaches it directly as the smaller form above.
	if revCount == 0 {
		return KmerResult{Codes: revComp, ForwardCount: 0, ReverseCount: fwdCount}, true, nil
	}
	return KmerResult{}, false, nil
}

func compareCodes(a, b []uint8) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
