// SPDX-License-Identifier: GPL-2.0-only

package crush

import "sync"

// Workmem is the scratch buffer a match finder needs for one Pack call, in
// 32-bit words. Callers allocate it once per block and may reuse it across
// calls of matching (N, level): every call overwrites the buffer
// before reading, so stale content from a previous call never leaks.
type Workmem []int32

// WorkmemSize returns the number of bytes a Workmem for N input bytes at the
// given level must hold, or ErrInvalidLevel if level is outside [5,10].
func WorkmemSize(n, level int) (int, error) {
	words, err := workmemWords(n, level)
	if err != nil {
		return 0, err
	}
	return words * 4, nil
}

// NewWorkmem allocates a Workmem sized for N bytes at level.
func NewWorkmem(n, level int) (Workmem, error) {
	words, err := workmemWords(n, level)
	if err != nil {
		return nil, err
	}
	return make(Workmem, words), nil
}

func workmemWords(n, level int) (int, error) {
	lp, ok := fixedLevels[level]
	if !ok {
		return 0, ErrInvalidLevel
	}
	if n < 0 {
		n = 0
	}
	if lp.kind == parseKindBT {
		return btWorkmemWords(n), nil
	}
	return leWorkmemWords(n), nil
}

// leWorkmemWords is the word count for the hash-chain finder's dominant
// scratch structures: prev(N) + lookup(2^bits). The DP arrays
// (cost/mlen/mpos) stay as plain per-call []int slices (see parseLE)
// rather than carved Workmem words: they need int-width arithmetic
// throughout the backwards DP and left-extension.
func leWorkmemWords(n int) int {
	bits := hash3Bits(n)
	return n + (1 << bits)
}

// btWorkmemWords is the word count for the binary-tree finder's dominant
// scratch structure: nodes(2N) + lookup(2^crushHashBits). The DP arrays are
// plain per-call []int slices for the same reason as the LE finder.
func btWorkmemWords(n int) int {
	return 2*n + (1 << crushHashBits)
}

// leWorkmemSlices carves the prev/lookup slices out of a flat Workmem
// buffer sized by leWorkmemWords.
func leWorkmemSlices(wm Workmem, n int) (prev, lookup []int32) {
	bits := hash3Bits(n)
	prev = wm[:n]
	lookup = wm[n : n+(1<<bits)]
	return
}

// btWorkmemSlices carves the nodes/lookup slices out of a flat Workmem
// buffer sized by btWorkmemWords.
func btWorkmemSlices(wm Workmem, n int) (nodes, lookup []int32) {
	nodes = wm[:2*n]
	lookup = wm[2*n : 2*n+(1<<crushHashBits)]
	return
}

// workmemPools pools one Workmem per parse kind so Compress callers that
// don't manage workmem themselves still get buffer reuse
// across calls instead of a fresh allocation every time.
var workmemPools = [2]sync.Pool{
	parseKindLE: {New: func() any { wm := make(Workmem, 0); return &wm }},
	parseKindBT: {New: func() any { wm := make(Workmem, 0); return &wm }},
}

func acquireWorkmem(n, level int) (Workmem, error) {
	lp, ok := fixedLevels[level]
	if !ok {
		return nil, ErrInvalidLevel
	}
	words, err := workmemWords(n, level)
	if err != nil {
		return nil, err
	}
	p := &workmemPools[lp.kind]
	wm := p.Get().(*Workmem)
	if cap(*wm) < words {
		*wm = make(Workmem, words)
	} else {
		*wm = (*wm)[:words]
	}
	return *wm, nil
}

func releaseWorkmem(level int, wm Workmem) {
	lp, ok := fixedLevels[level]
	if !ok {
		return
	}
	workmemPools[lp.kind].Put(&wm)
}
