// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package deflate

// canonicalCoder is a length-limited canonical prefix code over an alphabet of
// fixed size. One instance serves the litlen alphabet, one the distance
// alphabet, and one the 19-symbol code-length alphabet used to RLE-transmit
// the other two tables (see block.go).
type canonicalCoder struct {
	lengths []uint32 // per-symbol code length, 0 = unused
	codes   []uint32 // per-symbol canonical codeword, valid where lengths[s] > 0

	// decode table: a small root-bit lookup plus an overflow chain for any
	// code longer than the root. Built lazily by buildDecodeTable.
	rootBits   uint
	table      []decodeEntry
	overflow   []decodeEntry // codes longer than rootBits, walked linearly (small in practice)
	overflowAt int           // first symbol index sharing overflow (unused, kept for clarity)
}

type decodeEntry struct {
	symbol int
	length uint32 // 0 means "incomplete / invalid" for root-table entries
}

// newCanonicalCoder builds the canonical codewords for the given per-symbol
// lengths, following the standard bl_count -> next_code construction.
func newCanonicalCoder(lengths []uint32) *canonicalCoder {
	c := &canonicalCoder{lengths: lengths, codes: make([]uint32, len(lengths))}

	var maxLen uint32
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen == 0 {
		return c
	}

	blCount := make([]uint32, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}

	nextCode := make([]uint32, maxLen+1)
	var code uint32
	for bits := uint32(1); bits <= maxLen; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
	}

	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		c.codes[sym] = nextCode[l]
		nextCode[l]++
	}

	return c
}

// encode writes the codeword for symbol s to w, MSB-first.
func (c *canonicalCoder) encode(w *bitWriter, s int) {
	w.appendBitsMSB(c.codes[s], uint(c.lengths[s]))
}

// decodeBrute is the reference decoder: read one bit at a time, MSB-first,
// and stop as soon as the accumulated bits match some symbol's codeword of
// that exact length. O(bits * alphabet size) but trivially correct, and kept
// independent of buildDecodeTable so the table-driven fast path always has
// something to be checked against.
func (c *canonicalCoder) decodeBrute(r *bitReader) (int, bool) {
	var code uint32
	var length uint32
	for length < maxClenLength+8 { // generous bound; real codes never exceed maxCodeLength
		bit, ok := r.readBit()
		if !ok {
			return 0, false
		}
		code = (code << 1) | bit
		length++

		for sym, l := range c.lengths {
			if l == length && c.codes[sym] == code {
				return sym, true
			}
		}
	}
	return 0, false
}

// buildDecodeTable constructs a root-bits lookup table for fast decoding: any
// code of length <= rootBits decodes in one table probe; longer codes fall
// back to a linear scan over the (few) symbols whose length exceeds rootBits.
// This mirrors the "small-root table plus overflow" shape used by production
// DEFLATE decoders, built fresh here rather than reusing any existing table
// implementation.
func (c *canonicalCoder) buildDecodeTable(rootBits uint) {
	c.rootBits = rootBits
	c.table = make([]decodeEntry, 1<<rootBits)
	c.overflow = c.overflow[:0]

	for sym, l := range c.lengths {
		if l == 0 {
			continue
		}
		if l <= uint32(rootBits) {
			// A codeword shorter than the root is ambiguous over the low bits;
			// fill every table slot whose high bits match it.
			code := c.codes[sym]
			shift := uint(rootBits) - uint(l)
			base := reverseBits(code, uint(l)) // table is probed MSB-first-reversed, see decodeTable
			for fill := uint32(0); fill < (1 << shift); fill++ {
				idx := base | (fill << l)
				c.table[idx] = decodeEntry{symbol: sym, length: l}
			}
		} else {
			c.overflow = append(c.overflow, decodeEntry{symbol: sym, length: l})
		}
	}
}

// reverseBits reverses the low n bits of v (used because the root table is
// probed by peeking the next rootBits bits LSB-first off the stream, while
// codewords themselves are defined MSB-first).
func reverseBits(v uint32, n uint) uint32 {
	var r uint32
	for i := uint(0); i < n; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}

// decodeTable decodes one symbol using the root lookup table built by
// buildDecodeTable, falling back to a linear probe of the overflow list (and,
// failing that, the brute-force path) for codes longer than rootBits.
func (c *canonicalCoder) decodeTable(r *bitReader) (int, bool) {
	if c.table == nil {
		return c.decodeBrute(r)
	}

	save := r.pos
	peek, haveRoot := peekBitsLSB(r, c.rootBits)
	if haveRoot {
		entry := c.table[peek]
		if entry.length > 0 && save+uint(entry.length) <= r.size {
			r.pos = save + uint(entry.length)
			return entry.symbol, true
		}
	}

	// Overflow: codes longer than rootBits. Try each directly against the bit
	// stream starting at save.
	for _, e := range c.overflow {
		r.pos = save
		code, ok := r.readBitsMSB(uint(e.length))
		if ok && code == c.codes[e.symbol] {
			return e.symbol, true
		}
	}

	r.pos = save
	return c.decodeBrute(r)
}

// peekBitsLSB reads up to n bits without requiring all of them to be present
// (a short final block may have fewer than rootBits remaining); missing bits
// are treated as zero, matching how a root table built over a Kraft-complete
// code only relies on as many bits as the shortest live codeword needs.
func peekBitsLSB(r *bitReader, n uint) (uint32, bool) {
	save := r.pos
	var v uint32
	got := uint(0)
	for i := uint(0); i < n; i++ {
		b, ok := r.readBit()
		if !ok {
			break
		}
		v |= b << i
		got++
	}
	r.pos = save
	if got == 0 && n > 0 {
		return 0, false
	}
	return v, true
}
