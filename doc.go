// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

/*
Package deflate implements a DEFLATE-family (RFC 1951) compressor and decompressor
built from three components: a hash-chain LZ77 match finder over a 32 KiB sliding
window, a length-limited canonical Huffman coder built with the package-merge
algorithm, and a bit-granular stream used for the wire format.

# Compress

Options may be nil (defaults to level 6 with BlockAuto, which keeps the smallest of a
fixed, a stored and a dynamic block):

	out, err := deflate.Compress(data, nil)
	out, err := deflate.Compress(data, &deflate.CompressOptions{Level: 9})

# Decompress

	out, err := deflate.Decompress(compressed, deflate.DefaultDecompressOptions(expectedLen))

DecompressN additionally reports how many input bytes were consumed, for callers
chaining independently-framed blocks:

	out, n, err := deflate.DecompressN(compressed, deflate.DefaultDecompressOptions(expectedLen))
*/
package deflate
