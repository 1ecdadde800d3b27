// SPDX-License-Identifier: GPL-2.0-only

package crush

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestBitIO_PutGetRoundTrip(t *testing.T) {
	type put struct {
		v   uint32
		num uint
	}
	puts := []put{
		{0, 0},
		{1, 1},
		{0, 1},
		{0xFF, 8},
		{0x1, 32},
		{0xFFFFFFFF, 32},
		{0x5A5A5A5A, 29},
		{3, 2},
		{0, 5},
	}

	dst := make([]byte, 0, 64)
	w := newBitWriter(dst)
	for _, p := range puts {
		w.put(p.v, p.num)
	}
	w.finalize()

	r := newBitReader(w.dst)
	for i, p := range puts {
		got, ok := r.get(p.num)
		if !ok {
			t.Fatalf("put %d: get(%d) failed", i, p.num)
		}
		want := p.v
		if p.num < 32 {
			want &= (1 << p.num) - 1
		}
		if got != want {
			t.Fatalf("put %d: got %#x want %#x (num=%d)", i, got, want, p.num)
		}
	}
}

func TestBitIO_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var widths []uint
	var values []uint32
	for i := 0; i < 2000; i++ {
		num := uint(rng.Intn(33))
		v := rng.Uint32()
		widths = append(widths, num)
		values = append(values, v)
	}

	dst := make([]byte, 0, 16*1024)
	w := newBitWriter(dst)
	for i := range widths {
		w.put(values[i], widths[i])
	}
	w.finalize()

	r := newBitReader(w.dst)
	for i := range widths {
		got, ok := r.get(widths[i])
		if !ok {
			t.Fatalf("index %d: get(%d) failed", i, widths[i])
		}
		want := values[i]
		if widths[i] < 32 {
			want &= (1 << widths[i]) - 1
		} else {
			want = values[i]
		}
		if got != want {
			t.Fatalf("index %d: got %#x want %#x (num=%d)", i, got, want, widths[i])
		}
	}
}

func TestBitIO_StreamReaderMatchesBufferedReader(t *testing.T) {
	dst := make([]byte, 0, 256)
	w := newBitWriter(dst)
	for i := 0; i < 100; i++ {
		w.put(uint32(i), 9)
	}
	w.finalize()

	br := newBitReader(w.dst)
	sr := newStreamBitReader(bytes.NewReader(w.dst))
	for i := 0; i < 100; i++ {
		a, okA := br.get(9)
		b, okB := sr.get(9)
		if !okA || !okB || a != b {
			t.Fatalf("index %d: buffered=%d(%v) stream=%d(%v)", i, a, okA, b, okB)
		}
	}
}

func TestBitIO_ReaderRunsOutGracefully(t *testing.T) {
	r := newBitReader([]byte{0xFF})
	if _, ok := r.get(8); !ok {
		t.Fatal("expected first 8 bits to be available")
	}
	if _, ok := r.get(1); ok {
		t.Fatal("expected get to fail once input is exhausted")
	}
}
