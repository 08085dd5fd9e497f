// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package deflate

// BlockStrategy selects how Compress chooses the block type (BTYPE) to emit.
type BlockStrategy int

const (
	// BlockAuto encodes a fixed, a stored and a dynamic block and keeps the smallest
	// (on equal size fixed wins, then stored).
	BlockAuto BlockStrategy = iota
	// BlockDynamic always builds per-input Huffman tables with package-merge.
	BlockDynamic
	// BlockFixed always uses the RFC 1951 fixed (predefined) Huffman tables.
	BlockFixed
	// BlockStored always copies the input uncompressed (BTYPE=00).
	BlockStored
)

// DecompressOptions configures decompression.
// OutLen is required (expected decompressed size); MaxInputSize limits reads when using DecompressFromReader.
type DecompressOptions struct {
	// OutLen is the expected decompressed size (required for buffer allocation and safety).
	OutLen int
	// MaxInputSize limits how many bytes DecompressFromReader may read (0 = no limit).
	MaxInputSize int
}

// DefaultDecompressOptions returns options with the given output length and no input limit.
func DefaultDecompressOptions(outLen int) *DecompressOptions {
	return &DecompressOptions{OutLen: outLen}
}

// CompressOptions configures compression.
type CompressOptions struct {
	// Level: 0 = store only; 1–9 = match-finder search effort from fixedLevels (higher levels
	// generally give a better ratio and run slower; level 4 stops at a shorter niceLen than level 3).
	Level int
	// Strategy selects the block type. Zero value is BlockAuto.
	Strategy BlockStrategy
	// MaxCodeLength overrides the package-merge length bound (0 = use the alphabet default, 15).
	MaxCodeLength int
}

// DefaultCompressOptions returns options for balanced compression (level 6, BlockAuto).
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{Level: 6, Strategy: BlockAuto}
}
