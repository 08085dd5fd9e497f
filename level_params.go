// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package deflate

// levelParams holds the match-finder tuning for one compression level.
// All fields are unexported; the type is used only inside the package.
//
// Matching is always greedy (no lazy one-step lookahead, see DESIGN.md); levels
// only change how hard the match finder looks for the current position.
type levelParams struct {
	niceLen  uint // stop searching once a match at least this long is found
	maxChain uint // max hash chain length to walk per position
}

// fixedLevels defines match-finder parameters for levels 1-9. Level 0 bypasses
// the match finder entirely (BlockStored is forced).
var fixedLevels = [9]levelParams{
	{niceLen: 8, maxChain: 4},
	{niceLen: 16, maxChain: 8},
	{niceLen: 32, maxChain: 16},
	{niceLen: 16, maxChain: 16},
	{niceLen: 32, maxChain: 32},
	{niceLen: 128, maxChain: 128},
	{niceLen: 128, maxChain: 256},
	{niceLen: maxMatchLength, maxChain: 1024},
	{niceLen: maxMatchLength, maxChain: 4096},
}

// levelParamsFor clamps level to [1, 9] and returns its tuning.
func levelParamsFor(level int) levelParams {
	level = max(level, 1)
	level = min(level, 9)
	return fixedLevels[level-1]
}
