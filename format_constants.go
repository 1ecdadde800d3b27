// SPDX-License-Identifier: GPL-2.0-only

package crush

// CRUSH container format constants: window, slot, and length-bucket parameters.
// Centralized here so the codec, cost model, and both match-finders share one
// source of truth (the token codec and the cost model must stay byte-for-byte
// consistent with each other).

const (
	wBits    = 21      // window size in bits
	wSize    = 1 << wBits
	slotBits = 4       // bits used to encode an offset slot
	numSlots = 1 << slotBits

	minMatch = 3 // shortest encodable match length
)

// Length-bucket boundaries and extra-bit widths (see the token codec's length
// prefix code). Bucket i covers l in [lowerBound[i], lowerBound[i+1]) for
// i in [0,4], and bucket 5 covers [lowerBound[5], bucketF).
const (
	bucketA = 4
	bucketB = 8
	bucketC = 12
	bucketD = 20
	bucketE = 52
	bucketF = 564
)

// maxMatch is the longest encodable match length: (F-1) + MIN_MATCH.
const maxMatch = (bucketF - 1) + minMatch

// lengthLowerBound[i] is the inclusive lower bound on l = len-minMatch for bucket i.
var lengthLowerBound = [6]int{0, bucketA, bucketB, bucketC, bucketD, bucketE}

// lengthExtraBits[i] is the width of bucket i's extra-bits field.
var lengthExtraBits = [6]uint{2, 2, 2, 3, 5, 9}

// offsetDirectBits is the width used to store an offset's o=offs-1 value
// directly when it falls in slot 0.
const offsetDirectBits = wBits - (numSlots - 1)

// offsetDirectLimit is the exclusive upper bound on o for slot 0.
const offsetDirectLimit = 2 << (wBits - numSlots)

// noMatchPos is the sentinel "no earlier position" value used throughout the
// match-finders' chain/tree arrays.
const noMatchPos = -1

// crushHashBits is the default width of the hash-chain/binary-tree lookup
// table (128 Ki entries); shrunk for small inputs per the hash-chain finder.
const crushHashBits = 17
