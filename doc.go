// SPDX-License-Identifier: GPL-2.0-only

/*
Package crush implements the CRUSH container format: a lossless
LZ-family byte compressor using dictionary match finding and
BriefLZ-style optimal parsing. Output is bit-compatible with the
CRUSH format (originally by Ilya Muravyov).

Levels 5 through 7 run a backwards dynamic-programming parse over
hash chains with match left-extension. Levels 8 through 10 (10 is
selected with --optimal in the CLI, level 10 (MaxLevel) in the library) run a
forwards dynamic-programming parse over per-hash binary search trees
re-rooted at each search position, trading parse time for ratio.

# Compress

	out, err := crush.Compress(data, crush.MinLevel)
	out, err := crush.Compress(data, crush.MaxLevel)

# Decompress

The exact decompressed length must be known up front (the format
carries no length field of its own):

	out, err := crush.Decompress(packed, len(data))

From an io.Reader, when the packed bytes are read lazily and the
length is known some other way (e.g. the block container in
package block):

	dst := make([]byte, m)
	n, err := crush.DepackFromStream(r, dst)
	out := dst[:n]

# Low-level buffers

Callers that want to avoid per-call allocation use the buffer-and-
workmem primitives directly:

	wm, err := crush.NewWorkmem(len(data), level)
	dst := make([]byte, crush.MaxPackedSize(len(data)))
	n, err := crush.Pack(data, dst, wm, level)
	packed := dst[:n]
*/
package crush
