// SPDX-License-Identifier: GPL-2.0-only

package crush

import "math/bits"

// encodeLiteral writes one literal byte: a 0 tag bit followed by the 8 bit
// value, LSB first, as a single 9-bit put.
func encodeLiteral(w *bitWriter, b byte) {
	w.put(uint32(b)<<1, 9)
}

// encodeMatch writes a 1 tag bit, the length prefix code, then the offset
// slot code, for a match of the given length and real back-reference
// distance offs (offs >= 1).
func encodeMatch(w *bitWriter, length, offs int) {
	w.put(1, 1)
	encodeLength(w, length)
	encodeOffset(w, offs)
}

func encodeLength(w *bitWriter, length int) {
	l := length - minMatch
	for b := 0; b < 5; b++ {
		upper := lengthLowerBound[b+1]
		if l < upper {
			// b zero bits then a 1: the decoder scans single bits for
			// the first 1 to pick the bucket.
			w.put(1<<uint(b), uint(b+1))
			w.put(uint32(l-lengthLowerBound[b]), lengthExtraBits[b])
			return
		}
	}
	w.put(0, 5)
	w.put(uint32(l-lengthLowerBound[5]), lengthExtraBits[5])
}

func decodeLengthFrom(r bitSource) (int, bool) {
	bucket := 5
	for b := 0; b < 5; b++ {
		bit, ok := r.get1()
		if !ok {
			return 0, false
		}
		if bit == 1 {
			bucket = b
			break
		}
	}
	extra, ok := r.get(lengthExtraBits[bucket])
	if !ok {
		return 0, false
	}
	l := lengthLowerBound[bucket] + int(extra)
	return l + minMatch, true
}

func encodeOffset(w *bitWriter, offs int) {
	o := offs - 1
	if o < offsetDirectLimit {
		w.put(0, slotBits)
		w.put(uint32(o), offsetDirectBits)
		return
	}
	mlog := bits.Len(uint(o)) - 1
	slot := mlog - (wBits - numSlots)
	w.put(uint32(slot), slotBits)
	w.put(uint32(o-(1<<mlog)), uint(mlog))
}

func decodeOffsetFrom(r bitSource) (int, bool) {
	slot, ok := r.get(slotBits)
	if !ok {
		return 0, false
	}
	var o int
	if slot == 0 {
		v, ok := r.get(offsetDirectBits)
		if !ok {
			return 0, false
		}
		o = int(v)
	} else {
		mlog := int(slot) + (wBits - numSlots)
		v, ok := r.get(uint(mlog))
		if !ok {
			return 0, false
		}
		o = int(v) + (1 << mlog)
	}
	return o + 1, true
}

// copyBackRef copies length bytes from dst[outputPos-offs:] to
// dst[outputPos:], one byte at a time so overlapping references (offs <
// length) correctly replicate run patterns (e.g. offs=1 repeats the
// previous byte).
func copyBackRef(dst []byte, outputPos, offs, length int) error {
	if offs > outputPos {
		return ErrCorruptStream
	}
	if outputPos+length > len(dst) {
		return ErrCorruptStream
	}
	src := outputPos - offs
	for i := 0; i < length; i++ {
		dst[outputPos+i] = dst[src+i]
	}
	return nil
}
