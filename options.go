// SPDX-License-Identifier: GPL-2.0-only

package crush

// Options configures compression. Level selects a match finder and its
// search depth: 5-7 use the backwards hash-chain parse, 8-10 the forwards
// binary-tree parse (slower, better ratio; 10 is unbounded search depth).
type Options struct {
	// Level is the compression level, 5..10. See MinLevel/MaxLevel.
	Level int
}

// DefaultOptions returns options for the fastest level (5).
func DefaultOptions() *Options {
	return &Options{Level: MinLevel}
}
