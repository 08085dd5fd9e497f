// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflate

package deflate

// Compress compresses src into a single DEFLATE-family block. opts may be nil
// (uses DefaultCompressOptions: level 6, BlockAuto).
func Compress(src []byte, opts *CompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}

	w := newBitWriter(len(src)/2 + 16)

	limit := uint8(maxCodeLength)
	if opts.MaxCodeLength > 0 && opts.MaxCodeLength < maxCodeLength {
		limit = uint8(opts.MaxCodeLength)
	}

	if opts.Level <= 0 {
		if err := emitBlock(w, nil, src, btypeStored, true, limit); err != nil {
			return nil, err
		}
		w.padToByte()
		return w.bytes(), nil
	}

	params := levelParamsFor(opts.Level)
	mf := acquireMatchFinder(src, params)
	tokens := encodeTokens(src, mf)
	releaseMatchFinder(mf)

	switch opts.Strategy {
	case BlockStored:
		if err := emitBlock(w, nil, src, btypeStored, true, limit); err != nil {
			return nil, err
		}

	case BlockFixed:
		if err := emitBlock(w, tokens, nil, btypeFixed, true, limit); err != nil {
			return nil, err
		}

	case BlockDynamic:
		if err := emitBlock(w, tokens, nil, btypeDynamic, true, limit); err != nil {
			return nil, err
		}

	default: // BlockAuto
		// Try all three block types and keep the smallest. Ties favor the
		// earlier candidate in this list (fixed, then stored, then dynamic):
		// this is what makes an empty (or otherwise tiny) block resolve to
		// BTYPE=fixed rather than always losing to a stored block's smaller
		// per-block overhead once a dynamic table's cost is also in play.
		fixed := newBitWriter(len(src)/2 + 16)
		if err := emitBlock(fixed, tokens, nil, btypeFixed, true, limit); err != nil {
			return nil, err
		}

		stored := newBitWriter(len(src) + 8)
		if err := emitBlock(stored, nil, src, btypeStored, true, limit); err != nil {
			return nil, err
		}

		dynamic := newBitWriter(len(src)/2 + 16)
		if err := emitBlock(dynamic, tokens, nil, btypeDynamic, true, limit); err != nil {
			return nil, err
		}

		w = fixed
		if len(stored.bytes()) < len(w.bytes()) {
			w = stored
		}
		if len(dynamic.bytes()) < len(w.bytes()) {
			w = dynamic
		}
	}

	w.padToByte()
	return w.bytes(), nil
}
