// SPDX-License-Identifier: GPL-2.0-only

package crush

// parseKind distinguishes the backwards hash-chain parse (LE) from the
// forwards binary-tree parse (BT).
type parseKind int

const (
	parseKindLE parseKind = iota
	parseKindBT
)

// levelParams holds the per-level (max_depth, accept_len) pair and which
// parse kind realizes it, for levels 5 through 10.
type levelParams struct {
	kind parseKind
	le   leParseParams
	bt   btParseParams
}

// MinLevel and MaxLevel bound the accepted compression levels.
const (
	MinLevel = 5
	MaxLevel = 10
)

var fixedLevels = map[int]levelParams{
	5:  {kind: parseKindLE, le: leParseParams{maxDepth: 1, acceptLen: 16}},
	6:  {kind: parseKindLE, le: leParseParams{maxDepth: 8, acceptLen: 32}},
	7:  {kind: parseKindLE, le: leParseParams{maxDepth: 64, acceptLen: 64}},
	8:  {kind: parseKindBT, bt: btParseParams{maxDepth: 16, acceptLen: 96}},
	9:  {kind: parseKindBT, bt: btParseParams{maxDepth: 32, acceptLen: 224}},
	10: {kind: parseKindBT, bt: btParseParams{maxDepth: 0, acceptLen: 0}}, // unbounded
}

func validLevel(level int) bool {
	_, ok := fixedLevels[level]
	return ok
}
