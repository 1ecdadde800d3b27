// SPDX-License-Identifier: GPL-2.0-only

package crush

// MaxPackedSize returns the largest number of bytes Pack could ever write
// for an input of length n: n plus one bit of worst-case literal overhead
// (n/8) plus a fixed slack term for flush/finalize rounding.
func MaxPackedSize(n int) int {
	return n + n/8 + 64
}

// Pack compresses src into dst at the given level (5..10), using wm as
// match-finder scratch space. dst must have capacity >= MaxPackedSize(len(src));
// wm must have length >= WorkmemSize(len(src), level)/4 (see NewWorkmem).
// Returns the number of bytes written to dst, or an error.
//
// Pack for an empty src returns 0 and writes nothing.
func Pack(src, dst []byte, wm Workmem, level int) (int, error) {
	lp, ok := fixedLevels[level]
	if !ok {
		return 0, ErrInvalidLevel
	}
	if len(src) == 0 {
		return 0, nil
	}
	if cap(dst) < MaxPackedSize(len(src)) {
		return 0, ErrOutputOverrun
	}
	wantWords, err := workmemWords(len(src), level)
	if err != nil {
		return 0, err
	}
	if len(wm) < wantWords {
		return 0, ErrWorkmemTooSmall
	}

	w := newBitWriter(dst[:0])
	switch lp.kind {
	case parseKindLE:
		parseLE(w, src, lp.le, wm)
	case parseKindBT:
		parseBT(w, src, lp.bt, wm)
	}
	return w.finalize(), nil
}
