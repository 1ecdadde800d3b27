// SPDX-License-Identifier: GPL-2.0-only

package crush

import "io"

// Depack decompresses src into dst, which must have length exactly m (the
// known decompressed size; the CRUSH format carries no length field of its
// own). Returns m on success or ErrCorruptStream if a match references
// bytes not yet produced, or the input runs out before m bytes have been
// produced.
func Depack(src, dst []byte, m int) (int, error) {
	if len(dst) != m {
		return 0, ErrOutputOverrun
	}
	if m == 0 {
		return 0, nil
	}
	r := newBitReader(src)
	return decodeLoop(r, dst, m)
}

// decodeLoop is shared by Depack and DepackFromStream: it reads one tag bit
// per token and either appends a literal
// or copying a back-reference, until exactly m bytes have been produced.
func decodeLoop(r bitSource, dst []byte, m int) (int, error) {
	pos := 0
	for pos < m {
		tag, ok := r.get(1)
		if !ok {
			return 0, ErrCorruptStream
		}
		if tag == 0 {
			v, ok := r.get(8)
			if !ok {
				return 0, ErrCorruptStream
			}
			if pos >= m {
				return 0, ErrCorruptStream
			}
			dst[pos] = byte(v)
			pos++
			continue
		}

		length, ok := decodeLengthFrom(r)
		if !ok {
			return 0, ErrCorruptStream
		}
		offs, ok := decodeOffsetFrom(r)
		if !ok {
			return 0, ErrCorruptStream
		}
		if offs > pos {
			return 0, ErrCorruptStream
		}
		if pos+length > m {
			return 0, ErrCorruptStream
		}
		if err := copyBackRef(dst, pos, offs, length); err != nil {
			return 0, err
		}
		pos += length
	}
	return pos, nil
}

// DepackFromStream decompresses from r, reading packed bytes lazily since
// the CRUSH format carries no packed-size field: it pulls exactly as many
// bytes as the token stream needs and never over-reads past the final
// token that completes dst. dst must have length exactly m.
func DepackFromStream(r io.Reader, dst []byte) (int, error) {
	m := len(dst)
	if m == 0 {
		return 0, nil
	}
	br := newStreamBitReader(r)
	return decodeLoop(br, dst, m)
}
