// SPDX-License-Identifier: GPL-2.0-only

package crush

import "io"

// LSB-first bit writer and reader over a byte buffer. The accumulator is 64
// bits wide so a single put/get can carry up to the full [0,32] bit range
// without the caller having to pre-split calls that would straddle a 32-bit
// boundary; the emitted byte stream is the same as with a 32-bit
// flush-before-put accumulator.

type bitWriter struct {
	dst  []byte
	tag  uint64
	bits uint // number of valid bits currently buffered in tag, 0..63
}

func newBitWriter(dst []byte) *bitWriter {
	return &bitWriter{dst: dst[:0]}
}

// put appends the low num bits of v to the stream, LSB first. num must be
// in [0, 32]; bits of v above position num are ignored.
func (w *bitWriter) put(v uint32, num uint) {
	if num == 0 {
		return
	}
	w.tag |= uint64(v&((1<<num)-1)) << w.bits
	w.bits += num
	for w.bits >= 8 {
		w.dst = append(w.dst, byte(w.tag))
		w.tag >>= 8
		w.bits -= 8
	}
}

// finalize flushes any partial trailing byte (high bits zero-padded) and
// returns the total number of bytes written.
func (w *bitWriter) finalize() int {
	if w.bits > 0 {
		w.dst = append(w.dst, byte(w.tag))
		w.tag = 0
		w.bits = 0
	}
	return len(w.dst)
}

// bitSource is implemented by both bitReader (whole packed slice known
// up front, used by Depack) and streamBitReader (packed bytes pulled
// lazily from an io.Reader, used by DepackFromStream since the CRUSH
// format carries no packed-size field).
type bitSource interface {
	get(num uint) (uint32, bool)
	get1() (uint32, bool)
}

type bitReader struct {
	src  []byte
	pos  int
	tag  uint64
	bits uint
}

func newBitReader(src []byte) *bitReader {
	return &bitReader{src: src}
}

// get consumes and returns the next num bits, LSB first. num must be in
// [0, 32]. Returns false if the input ran out before num bits could be
// filled.
func (r *bitReader) get(num uint) (uint32, bool) {
	for r.bits < num {
		if r.pos >= len(r.src) {
			return 0, false
		}
		r.tag |= uint64(r.src[r.pos]) << r.bits
		r.pos++
		r.bits += 8
	}
	if num == 0 {
		return 0, true
	}
	v := uint32(r.tag & ((1 << num) - 1))
	r.tag >>= num
	r.bits -= num
	return v, true
}

// get1 reads a single bit; it is the hot path for the length-bucket selector.
func (r *bitReader) get1() (uint32, bool) {
	return r.get(1)
}

// streamBitReader is the lazy counterpart to bitReader: it refills its
// accumulator one byte at a time from an io.Reader instead of from a
// fully-buffered slice, so DepackFromStream never reads past the byte that
// completes the final token of an m-byte decode.
type streamBitReader struct {
	r    io.Reader
	buf  [1]byte
	tag  uint64
	bits uint
}

func newStreamBitReader(r io.Reader) *streamBitReader {
	return &streamBitReader{r: r}
}

func (r *streamBitReader) get(num uint) (uint32, bool) {
	for r.bits < num {
		if _, err := io.ReadFull(r.r, r.buf[:]); err != nil {
			return 0, false
		}
		r.tag |= uint64(r.buf[0]) << r.bits
		r.bits += 8
	}
	if num == 0 {
		return 0, true
	}
	v := uint32(r.tag & ((1 << num) - 1))
	r.tag >>= num
	r.bits -= num
	return v, true
}

func (r *streamBitReader) get1() (uint32, bool) {
	return r.get(1)
}
