// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package deflate

import "errors"

// Sentinel errors for decompression and compression. Callers can compare with
// errors.Is, including against errors returned wrapped by pkg/errors.
var (
	// ErrEmptyInput is returned when the input slice or stream is empty.
	ErrEmptyInput = errors.New("empty input")
	// ErrInputOverrun is returned when the decoder reads past the end of input.
	ErrInputOverrun = errors.New("input overrun")
	// ErrOutputOverrun is returned when the decoder would write past the output buffer.
	ErrOutputOverrun = errors.New("output overrun")
	// ErrLookBehindUnderrun is returned when a back-reference points before the start of the output.
	ErrLookBehindUnderrun = errors.New("lookbehind underrun")
	// ErrUnexpectedEOF is returned when the stream ends before the end-of-block symbol.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrOptionsRequired is returned when Decompress is called with nil options (OutLen is required).
	ErrOptionsRequired = errors.New("options required: OutLen must be set")
	// ErrInputTooLarge is returned when DecompressFromReader reads more than MaxInputSize bytes.
	ErrInputTooLarge = errors.New("input exceeds MaxInputSize")
	// ErrCorruptBlock is returned when a block header or code table fails a structural check
	// (reserved BTYPE, oversubscribed Kraft sum, a zero-length code appearing in the stream).
	ErrCorruptBlock = errors.New("corrupt block")
	// ErrInvalidCodeLengthBound is returned when PackageMerge is asked for a bound L that
	// cannot represent n symbols (2^L <= n).
	ErrInvalidCodeLengthBound = errors.New("code length bound too small for alphabet size")

	// ErrCompressInternal is returned when the compressor hits an internal invariant violation
	// (e.g. invalid match state, invalid window state). Callers can use errors.Is(err, deflate.ErrCompressInternal).
	ErrCompressInternal = errors.New("internal compressor error")
)
