// SPDX-License-Identifier: GPL-2.0-only

package crush

// btParseParams is the (max_depth, accept_len) pair for levels 8-10. A
// zero acceptLen/maxDepth of <=0 means "unbounded" (level 10).
type btParseParams struct {
	maxDepth  int // <=0 means unbounded
	acceptLen int // <=0 means unbounded (never force-accept early)
}

const unboundedDepth = 1 << 30

// btState is the match-finder state for levels 8-10: a lookup table of the
// most recent position per 3-byte hash, and a flat node array where
// nodes[2*i] is position i's "less than" child and nodes[2*i+1] is its
// "greater than" child. Every position owns exactly one (lt, gt) slot pair;
// the tree rooted at lookup[h] is recency-rooted (re-rooted at the newest
// position with that hash on every insertion). Nodes are plain indices
// into a flat array rather than pointers, so the tree is cache-friendly
// and needs no lifetime management.
type btState struct {
	lookup []int32
	nodes  []int32 // 2*N entries
}

// newBtStateIn builds a btState over caller-supplied nodes and lookup
// slices (carved from a Pack caller's Workmem by btWorkmemSlices).
func newBtStateIn(nodes, lookup []int32) *btState {
	s := &btState{lookup: lookup, nodes: nodes}
	for i := range s.lookup {
		s.lookup[i] = noMatchPos
	}
	return s
}

func (s *btState) hashAt(in []byte, i int) uint32 {
	return hash3(in[i:i+3]) >> (32 - crushHashBits)
}

type btToken struct {
	start, length, offs int
}

// parseBT runs the forwards dynamic-programming parse over a binary-tree
// match finder and emits the resulting token sequence
// through the codec. wm must be sized by btWorkmemWords(len(in)) (see Pack).
func parseBT(w *bitWriter, in []byte, p btParseParams, wm Workmem) {
	n := len(in)
	if n < 4 {
		for _, b := range in {
			encodeLiteral(w, b)
		}
		return
	}

	maxDepth := p.maxDepth
	if maxDepth <= 0 {
		maxDepth = unboundedDepth
	}
	acceptLen := p.acceptLen
	if acceptLen <= 0 {
		acceptLen = maxMatch + 1 // unreachable: never force-accept
	}

	lastMatchPos := n - 3
	if lastMatchPos < 0 {
		lastMatchPos = 0
	}

	const inf = 1 << 29
	cost := make([]int, n+1)
	mlen := make([]int, n+1)
	mpos := make([]int, n+1)
	for i := 1; i <= n; i++ {
		cost[i] = inf
	}

	nodesW, lookupW := btWorkmemSlices(wm, n)
	s := newBtStateIn(nodesW, lookupW)
	nextMatchCur := 0

	for cur := 0; cur <= lastMatchPos; cur++ {
		if cost[cur]+literalCost < cost[cur+1] {
			cost[cur+1] = cost[cur] + literalCost
			mlen[cur+1] = 1
		}

		h := s.hashAt(in, cur)
		pos := int(s.lookup[h])
		s.lookup[h] = int32(cur)

		ltSlot := 2 * cur
		gtSlot := 2*cur + 1
		ltLen, gtLen := 0, 0
		maxLen := minMatch - 1
		depth := 0
		scoring := cur >= nextMatchCur

		lenLimit := maxMatch
		if n-cur < lenLimit {
			lenLimit = n - cur
		}

		grafted := false
		for pos >= 0 && cur-pos <= wSize && depth < maxDepth {
			depth++

			length := ltLen
			if gtLen < length {
				length = gtLen
			}
			for length < lenLimit && in[pos+length] == in[cur+length] {
				length++
			}

			if length > maxLen {
				if scoring {
					for i := maxLen + 1; i <= length; i++ {
						ch := cost[cur] + tokenCost(cur-pos, i)
						if ch < cost[cur+i] {
							cost[cur+i] = ch
							mpos[cur+i] = cur - pos
							mlen[cur+i] = i
						}
					}
					if length >= acceptLen {
						nextMatchCur = cur + length
					}
				}
				maxLen = length
			}

			if length >= acceptLen || length == lenLimit {
				s.nodes[ltSlot] = s.nodes[2*pos]
				s.nodes[gtSlot] = s.nodes[2*pos+1]
				grafted = true
				break
			}

			if in[pos+length] < in[cur+length] {
				s.nodes[ltSlot] = int32(pos)
				ltSlot = 2*pos + 1
				ltLen = length
				pos = int(s.nodes[ltSlot])
			} else {
				s.nodes[gtSlot] = int32(pos)
				gtSlot = 2 * pos
				gtLen = length
				pos = int(s.nodes[gtSlot])
			}
		}

		if !grafted {
			s.nodes[ltSlot] = noMatchPos
			s.nodes[gtSlot] = noMatchPos
		}
	}

	for cur := lastMatchPos + 1; cur < n; cur++ {
		if cost[cur]+literalCost < cost[cur+1] {
			cost[cur+1] = cost[cur] + literalCost
			mlen[cur+1] = 1
		}
	}

	toks := gatherReverse(n, mlen, mpos)
	emitTokenList(w, in, toks)
}

// gatherReverse walks the "length of the token arriving here" convention
// produced by the forwards DP (Phase 2) from N down to 0, then reverses the
// collected tokens back into source order.
func gatherReverse(n int, mlen, mpos []int) []btToken {
	var toks []btToken
	pos := n
	for pos > 0 {
		l := mlen[pos]
		if l <= 0 {
			l = 1
		}
		start := pos - l
		toks = append(toks, btToken{start: start, length: l, offs: mpos[pos]})
		pos = start
	}
	for i, j := 0, len(toks)-1; i < j; i, j = i+1, j-1 {
		toks[i], toks[j] = toks[j], toks[i]
	}
	return toks
}

// emitTokenList streams a source-ordered token list through the codec
// (Phase 3, shared shape with the LE parser's emitForwardParse).
func emitTokenList(w *bitWriter, in []byte, toks []btToken) {
	for _, t := range toks {
		if t.length <= 1 {
			encodeLiteral(w, in[t.start])
			continue
		}
		encodeMatch(w, t.length, t.offs)
	}
}
