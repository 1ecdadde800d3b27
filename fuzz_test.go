// SPDX-License-Identifier: GPL-2.0-only

package crush

import "testing"

func FuzzPackDepackRoundTrip(f *testing.F) {
	f.Add([]byte{}, 5)
	f.Add([]byte{0x41}, 10)
	f.Add([]byte("hello, hello, hello, world"), 7)
	f.Add(make([]byte, 300), 9)

	f.Fuzz(func(t *testing.T, data []byte, levelSeed int) {
		level := MinLevel + (levelSeed%(MaxLevel-MinLevel+1)+(MaxLevel-MinLevel+1))%(MaxLevel-MinLevel+1)

		packed, err := Compress(data, level)
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}
		if len(packed) > MaxPackedSize(len(data)) {
			t.Fatalf("packed size %d exceeds bound %d", len(packed), MaxPackedSize(len(data)))
		}

		out, err := Decompress(packed, len(data))
		if err != nil {
			t.Fatalf("Decompress failed: %v", err)
		}
		if string(out) != string(data) {
			t.Fatalf("round-trip mismatch at level %d", level)
		}
	})
}
