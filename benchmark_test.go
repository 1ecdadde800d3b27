// SPDX-License-Identifier: GPL-2.0-only

package crush

import (
	"bytes"
	"fmt"
	"testing"
)

func benchmarkInputSets() map[string][]byte {
	return map[string][]byte{
		"small-text-4k":   bytes.Repeat([]byte("crush benchmark text payload "), 160),
		"pattern-128k":    bytes.Repeat([]byte("ABCDEF0123456789"), 8192),
		"byte-cycle-256k": bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 26214),
	}
}

func BenchmarkCompress(b *testing.B) {
	levels := []int{5, 7, 10}
	for inputName, inputData := range benchmarkInputSets() {
		for _, level := range levels {
			name := fmt.Sprintf("%s/level-%d", inputName, level)
			b.Run(name, func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(inputData)))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := Compress(inputData, level); err != nil {
						b.Fatalf("Compress failed: %v", err)
					}
				}
			})
		}
	}
}

func BenchmarkDecompress(b *testing.B) {
	levels := []int{5, 7, 10}
	for inputName, inputData := range benchmarkInputSets() {
		for _, level := range levels {
			packed, err := Compress(inputData, level)
			if err != nil {
				b.Fatalf("setup Compress failed for %s level %d: %v", inputName, level, err)
			}

			name := fmt.Sprintf("%s/from-level-%d", inputName, level)
			b.Run(name, func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(inputData)))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := Decompress(packed, len(inputData)); err != nil {
						b.Fatalf("Decompress failed: %v", err)
					}
				}
			})
		}
	}
}
