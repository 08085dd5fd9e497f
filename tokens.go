// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package deflate

// Alphabet sizes and special symbols shared by the litlen and distance coders.
const (
	litlenAlphabetSize = 286 // 0-255 literals, 256 end-of-block, 257-285 length codes
	distAlphabetSize   = 30
	endOfBlockSymbol   = 256

	minMatchLength = 3
	maxMatchLength = 258

	windowSize = 1 << 15 // 32768, maximum back-reference distance

	maxCodeLength = 15 // bound for litlen/dist canonical codes (RFC 1951 section 3.2.7)

	// clenAlphabetSize is the 19-symbol alphabet used to RLE-encode the litlen/dist
	// code length sequences themselves (RFC 1951 section 3.2.7).
	clenAlphabetSize = 19
	maxClenLength    = 7
)

// lengthCode describes one litlen length-code entry (symbols 257..285).
type lengthCode struct {
	base  int
	extra uint
}

// lengthCodes maps length-code index (0 = symbol 257) to its base length and
// extra-bit count. Matches RFC 1951's table exactly: symbol 284 covers 227-257
// with 5 extra bits, symbol 285 is the single fixed encoding of length 258.
var lengthCodes = [29]lengthCode{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// distCode describes one distance-code entry.
type distCode struct {
	base  int
	extra uint
}

// distCodes maps distance-code index (0..29) to its base distance and extra bits.
var distCodes = [30]distCode{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

// lengthSymbol returns the litlen alphabet symbol (257..285) for a raw match
// length, along with the extra bits to emit and how many of them there are.
func lengthSymbol(length int) (symbol int, extra uint32, extraBits uint) {
	for i := len(lengthCodes) - 1; i >= 0; i-- {
		if length >= lengthCodes[i].base {
			extra = uint32(length - lengthCodes[i].base)
			return 257 + i, extra, lengthCodes[i].extra
		}
	}
	// unreachable for length >= minMatchLength
	return 257, 0, 0
}

// lengthFromSymbol reconstructs a raw match length from a litlen length-symbol
// and its extra-bit value.
func lengthFromSymbol(symbol int, extra uint32) int {
	idx := symbol - 257
	return lengthCodes[idx].base + int(extra)
}

// distSymbol returns the distance alphabet symbol for a raw distance, along
// with the extra bits to emit and how many of them there are.
func distSymbol(distance int) (symbol int, extra uint32, extraBits uint) {
	for i := len(distCodes) - 1; i >= 0; i-- {
		if distance >= distCodes[i].base {
			extra = uint32(distance - distCodes[i].base)
			return i, extra, distCodes[i].extra
		}
	}
	return 0, 0, 0
}

// distFromSymbol reconstructs a raw distance from a distance symbol and its
// extra-bit value.
func distFromSymbol(symbol int, extra uint32) int {
	return distCodes[symbol].base + int(extra)
}

// clenOrder is the fixed, RFC-mandated permutation in which code-length-alphabet
// symbol lengths are transmitted in a dynamic block header.
var clenOrder = [clenAlphabetSize]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// token is one emitted unit of the LZ encoder's output: either a literal byte
// or a length/distance back-reference. Exactly one of the two forms is valid,
// discriminated by isMatch.
type token struct {
	isMatch  bool
	literal  byte
	length   int // valid length range: [minMatchLength, maxMatchLength]
	distance int // valid range: [1, windowSize]
}

func literalToken(b byte) token {
	return token{literal: b}
}

func matchToken(length, distance int) token {
	return token{isMatch: true, length: length, distance: distance}
}
