// SPDX-License-Identifier: GPL-2.0-only

package crush

// Compress allocates dst and a pooled Workmem, packs src at level, and
// returns dst resliced to the packed length (no copy is made; its capacity
// stays MaxPackedSize(len(src))). Callers that want to
// avoid per-call allocation should use Pack with their own dst/Workmem
// instead.
func Compress(src []byte, level int) ([]byte, error) {
	if !validLevel(level) {
		return nil, ErrInvalidLevel
	}
	if len(src) == 0 {
		return []byte{}, nil
	}

	wm, err := acquireWorkmem(len(src), level)
	if err != nil {
		return nil, err
	}
	defer releaseWorkmem(level, wm)

	dst := make([]byte, MaxPackedSize(len(src)))
	n, err := Pack(src, dst, wm, level)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// Decompress allocates a destination buffer of the given decompressed
// length and depacks src into it.
func Decompress(src []byte, n int) ([]byte, error) {
	dst := make([]byte, n)
	if _, err := Depack(src, dst, n); err != nil {
		return nil, err
	}
	return dst, nil
}
