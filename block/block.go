// SPDX-License-Identifier: GPL-2.0-only

// Package block frames a stream of CRUSH-compressed chunks into the
// container format consumed by the crush CLI: a sequence of
// independent blocks, each a 4-byte little-endian uncompressed-length
// header followed by the packed bytes crush.Pack produced for that chunk.
// There is no global header, no trailer, and no checksum; end of file is
// the end of the last block.
package block

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/crushlz/crush"
)

// MaxBlockSize is the largest uncompressed chunk WriteBlock accepts, per
// the container format's 64 MiB block bound.
const MaxBlockSize = 64 << 20

// ErrChunkTooLarge is returned by WriteBlock when data exceeds MaxBlockSize.
var ErrChunkTooLarge = errors.New("block: chunk exceeds 64 MiB maximum block size")

// Writer packs successive chunks and frames each with a 4-byte
// little-endian length header. Callers are
// responsible for splitting input into <=64 MiB chunks; Writer rejects
// oversized chunks rather than silently splitting them, since the split
// point affects compression ratio and is a caller decision.
type Writer struct {
	w     io.Writer
	level int
	dst   []byte
	wm    crush.Workmem
}

// NewWriter returns a Writer that packs each chunk at level (5..10) and
// writes framed blocks to w.
func NewWriter(w io.Writer, level int) *Writer {
	return &Writer{w: w, level: level}
}

// WriteBlock packs data at the writer's level, writes the 4-byte header,
// then the packed bytes. Returns the number of packed bytes written after
// the header (not counting the 4-byte header itself).
func (bw *Writer) WriteBlock(data []byte) (int, error) {
	if len(data) > MaxBlockSize {
		return 0, ErrChunkTooLarge
	}

	need := crush.MaxPackedSize(len(data))
	if cap(bw.dst) < need {
		bw.dst = make([]byte, need)
	}

	wmWords, err := crush.WorkmemSize(len(data), bw.level)
	if err != nil {
		return 0, err
	}
	if cap(bw.wm)*4 < wmWords {
		bw.wm, err = crush.NewWorkmem(len(data), bw.level)
		if err != nil {
			return 0, err
		}
	}

	n, err := crush.Pack(data, bw.dst[:need], bw.wm, bw.level)
	if err != nil {
		return 0, err
	}

	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(data)))
	if _, err := bw.w.Write(hdr[:]); err != nil {
		return 0, err
	}
	if _, err := bw.w.Write(bw.dst[:n]); err != nil {
		return 0, err
	}
	return n, nil
}

// Reader unframes and depacks successive blocks written by Writer.
type Reader struct {
	r io.Reader
}

// NewReader returns a Reader pulling framed blocks from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadBlock reads one block's 4-byte header and depacks its payload into
// dst, growing dst as needed, returning the uncompressed byte count.
// io.EOF with zero bytes consumed signals a clean end of stream; any other
// read error, or a short/corrupt trailing block, is reported as
// crush.ErrCorruptStream or a wrapped I/O error.
func (br *Reader) ReadBlock(dst []byte) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(br.r, hdr[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, crush.ErrCorruptStream
		}
		return nil, err
	}
	n := int(binary.LittleEndian.Uint32(hdr[:]))
	if n > MaxBlockSize {
		return nil, crush.ErrCorruptStream
	}

	if cap(dst) < n {
		dst = make([]byte, n)
	} else {
		dst = dst[:n]
	}

	m, err := crush.DepackFromStream(br.r, dst)
	if err != nil {
		return nil, err
	}
	return dst[:m], nil
}
