// SPDX-License-Identifier: GPL-2.0-only

package crush

import "math/bits"

// hashChainState is the match-finder state for levels 5-7: a lookup table of
// the most recent position for each 3-byte hash, plus a prev chain threading
// together all earlier positions sharing that hash. It is keyed purely by
// index into an in-memory slice rather than a wraparound ring, since CRUSH
// blocks are bounded (<=64 MiB) and parsed in one pass.
type hashChainState struct {
	lookup []int32 // 1<<bits entries, most recent position per hash, or noMatchPos
	prev   []int32 // N entries, previous position sharing that hash
	bits   uint    // hash table width actually in use for this call
}

// newHashChainStateIn builds a hashChainState over caller-supplied prev and
// lookup slices (carved from a Pack caller's Workmem by leWorkmemSlices)
// rather than allocating its own: workmem is scratch, allocated once per
// block by the caller, and never outlives the call.
func newHashChainStateIn(prev, lookup []int32) *hashChainState {
	bits := uint(0)
	for 1<<bits < len(lookup) {
		bits++
	}
	s := &hashChainState{lookup: lookup, prev: prev, bits: bits}
	for i := range s.lookup {
		s.lookup[i] = noMatchPos
	}
	return s
}

// hash3Bits picks the adaptive hash table width: the full crushHashBits by
// default, shrunk to floor(log2(N)) when 2N would not even fill the default
// table, to avoid paying for a 128Ki-entry zero-fill on small inputs.
func hash3Bits(n int) uint {
	if n < 1 {
		return 1
	}
	if 2*n < (1 << crushHashBits) {
		b := bits.Len(uint(n)) - 1
		if b < 1 {
			b = 1
		}
		return uint(b)
	}
	return crushHashBits
}

func hash3(p []byte) uint32 {
	v := uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16
	return v * 0x9E3779B1
}

func (s *hashChainState) hashAt(in []byte, i int) uint32 {
	return hash3(in[i:i+3]) >> (32 - s.bits)
}

// buildChains is Phase 1 of the hash-chain finder: thread every position's
// hash bucket onto the prev chain, closest-first from the lookup table.
func (s *hashChainState) buildChains(in []byte, lastMatchPos int) {
	for i := 0; i <= lastMatchPos; i++ {
		h := s.hashAt(in, i)
		s.prev[i] = s.lookup[h]
		s.lookup[h] = int32(i)
	}
}

// leParseParams is the (max_depth, accept_len) pair for levels 5-7.
type leParseParams struct {
	maxDepth  int
	acceptLen int
}

// parseLE runs the backwards dynamic-programming parse with left-extension
// over a hash-chain match finder, and emits the resulting token sequence
// through the codec. wm must be sized by leWorkmemWords(len(in)) (see Pack).
func parseLE(w *bitWriter, in []byte, p leParseParams, wm Workmem) {
	n := len(in)
	if n < 4 {
		for _, b := range in {
			encodeLiteral(w, b)
		}
		return
	}

	lastMatchPos := n - 3
	if lastMatchPos < 0 {
		lastMatchPos = 0
	}

	prevW, lookupW := leWorkmemSlices(wm, n)
	s := newHashChainStateIn(prevW, lookupW)
	s.buildChains(in, lastMatchPos)

	cost := make([]int, n+1)
	mlen := make([]int, n+1)
	mpos := make([]int, n+1)
	for i := range mlen {
		mlen[i] = 1
	}

	cost[n] = 0
	cost[n-1] = literalCost
	cost[n-2] = 2 * literalCost

	cur := lastMatchPos
	for cur >= 1 {
		cost[cur] = cost[cur+1] + literalCost
		mlen[cur] = 1

		maxLen := minMatch - 1
		pos := int(s.prev[cur])
		depth := 0

	chainWalk:
		for pos >= 0 && cur-pos <= wSize && depth < p.maxDepth {
			depth++
			lenLimit := maxMatch
			if n-cur < lenLimit {
				lenLimit = n - cur
			}

			if pos+maxLen >= n || cur+maxLen >= n || in[pos+maxLen] != in[cur+maxLen] {
				pos = int(s.prev[pos])
				continue
			}

			length := 0
			for length < lenLimit && in[pos+length] == in[cur+length] {
				length++
			}

			if length > maxLen {
				bestCost := cost[cur]
				bestLen := mlen[cur]
				bestPos := mpos[cur]
				improved := false
				for i := maxLen + 1; i <= length; i++ {
					ch := tokenCost(cur-pos, i) + cost[cur+i]
					if ch < bestCost {
						bestCost = ch
						bestLen = i
						bestPos = cur - pos
						improved = true
					}
				}

				if improved {
					cost[cur] = bestCost
					mlen[cur] = bestLen
					mpos[cur] = bestPos

					extCur, extPos, extLen := cur, pos, bestLen
					for extPos > 0 && in[extPos-1] == in[extCur-1] && extLen < maxMatch {
						extCur--
						extPos--
						extLen++
						cost[extCur] = tokenCost(extCur-extPos, extLen) + cost[extCur+extLen]
						mlen[extCur] = extLen
						mpos[extCur] = extCur - extPos
					}
					if extCur != cur {
						// A completed left-extension burst moves the
						// parse cursor; the outer loop resumes from the
						// new, smaller cur.
						cur = extCur
						break chainWalk
					}
				}

				maxLen = length
			}

			if length >= p.acceptLen || length == lenLimit {
				break
			}
			pos = int(s.prev[pos])
		}

		cur--
	}

	mlen[0] = 1
	mpos[0] = 0

	emitForwardParse(w, in, mlen, mpos)
}

// emitForwardParse walks a "token starts here" partition of [0,len(in))
// (the convention produced by the backwards DP in parseLE) in source order
// and streams it through the token codec.
func emitForwardParse(w *bitWriter, in []byte, mlen, mpos []int) {
	i := 0
	for i < len(in) {
		l := mlen[i]
		if l <= 1 {
			encodeLiteral(w, in[i])
			i++
			continue
		}
		encodeMatch(w, l, mpos[i])
		i += l
	}
}
