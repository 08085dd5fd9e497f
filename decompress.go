// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflate

package deflate

import (
	"io"

	pkgerrors "github.com/pkg/errors"
)

// Decompress decompresses a DEFLATE-family stream from src into a buffer of
// length opts.OutLen. Returns ErrOptionsRequired if opts is nil; ErrEmptyInput
// if src is empty. On success returns the decompressed slice (length may be
// less than OutLen if the stream held less data than expected).
func Decompress(src []byte, opts *DecompressOptions) ([]byte, error) {
	out, _, err := DecompressN(src, opts)
	return out, err
}

// DecompressN decompresses a DEFLATE-family stream from src and returns the
// decoded slice, the number of whole input bytes consumed (nRead, byte-aligned
// since this implementation never packs multiple blocks into a shared byte),
// and an error. nRead is 0 on error.
func DecompressN(src []byte, opts *DecompressOptions) ([]byte, int, error) {
	if opts == nil {
		return nil, 0, ErrOptionsRequired
	}
	if len(src) == 0 {
		return nil, 0, ErrEmptyInput
	}
	if opts.OutLen < 0 {
		return nil, 0, ErrOptionsRequired
	}

	r := newBitReader(src)
	dst := make([]byte, 0, opts.OutLen)

	for {
		var err error
		var final bool
		dst, final, err = decodeBlock(r, dst)
		if err != nil {
			return nil, 0, err
		}
		if final {
			break
		}
	}

	r.alignToByte()
	return dst, int(r.bytePos()), nil
}

// DecompressFromReader reads the full stream then calls Decompress. No
// decoding logic of its own. If opts.MaxInputSize > 0 and more bytes are
// read, returns ErrInputTooLarge.
func DecompressFromReader(r io.Reader, opts *DecompressOptions) ([]byte, error) {
	if opts == nil {
		return nil, ErrOptionsRequired
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "deflate: reading compressed stream")
	}

	if opts.MaxInputSize > 0 && len(src) > opts.MaxInputSize {
		return nil, ErrInputTooLarge
	}

	return Decompress(src, opts)
}
