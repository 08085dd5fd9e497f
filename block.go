// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package deflate

const (
	btypeStored  = 0
	btypeFixed   = 1
	btypeDynamic = 2
	btypeInvalid = 3
)

// fixedLitlenLengths/fixedDistLengths are the RFC 1951 predefined code
// lengths used by BlockFixed, so a dynamic-table header is never required.
var fixedLitlenLengths = buildFixedLitlenLengths()
var fixedDistLengths = buildFixedDistLengths()

func buildFixedLitlenLengths() []uint32 {
	lengths := make([]uint32, litlenAlphabetSize)
	for i := 0; i <= 143; i++ {
		lengths[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lengths[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lengths[i] = 7
	}
	for i := 280; i < litlenAlphabetSize; i++ {
		lengths[i] = 8
	}
	return lengths
}

func buildFixedDistLengths() []uint32 {
	lengths := make([]uint32, distAlphabetSize)
	for i := range lengths {
		lengths[i] = 5
	}
	return lengths
}

// emitBlock appends one complete block (header, tables if any, token stream,
// EOB) to w. isFinal sets BFINAL; btype selects BTYPE. codeLengthLimit bounds
// the litlen/dist canonical code lengths package-merge may produce for a
// dynamic block (ignored by the other block types). Returns
// ErrInvalidCodeLengthBound if codeLengthLimit is too small to represent the
// block's litlen or distance alphabet.
func emitBlock(w *bitWriter, tokens []token, stored []byte, btype int, isFinal bool, codeLengthLimit uint8) error {
	var final uint32
	if isFinal {
		final = 1
	}
	w.appendBitsMSB(final, 1)
	w.appendBitsMSB(uint32(btype), 2)

	switch btype {
	case btypeStored:
		w.padToByte()
		n := uint32(len(stored))
		w.appendBitsMSB(n, 32)
		w.appendAlignedBytes(stored)

	case btypeFixed:
		litlenCoder := newCanonicalCoder(fixedLitlenLengths)
		distCoder := newCanonicalCoder(fixedDistLengths)
		emitTokenStream(w, tokens, litlenCoder, distCoder)

	case btypeDynamic:
		var freq frequencyCounter
		freq.count(tokens)
		litlenLengths, err := packageMergeAny(trimTrailingZeros(freq.litlen[:], 257), codeLengthLimit)
		if err != nil {
			return err
		}
		distLengths, err := packageMergeAny(ensureAtLeastOne(trimTrailingZeros(freq.dist[:], 1)), codeLengthLimit)
		if err != nil {
			return err
		}

		writeDynamicHeader(w, litlenLengths, distLengths)

		litlenCoder := newCanonicalCoder(litlenLengths)
		distCoder := newCanonicalCoder(distLengths)
		emitTokenStream(w, tokens, litlenCoder, distCoder)
	}

	return nil
}

// trimTrailingZeros returns freqs with trailing zero entries dropped, down to
// a minimum length of minLen (so the alphabet always covers at least the
// symbols a caller depends on, e.g. litlen must cover through EOB=256).
func trimTrailingZeros(freqs []uint32, minLen int) []uint32 {
	n := len(freqs)
	for n > minLen && freqs[n-1] == 0 {
		n--
	}
	out := make([]uint32, n)
	copy(out, freqs[:n])
	return out
}

// ensureAtLeastOne guarantees at least one non-zero frequency so PackageMerge
// never sees an all-zero vector (the distance alphabet of a literal-only
// block has no real usage; a single placeholder keeps the coder well-formed).
func ensureAtLeastOne(freqs []uint32) []uint32 {
	for _, f := range freqs {
		if f > 0 {
			return freqs
		}
	}
	if len(freqs) == 0 {
		freqs = make([]uint32, 1)
	}
	freqs[0] = 1
	return freqs
}

// writeDynamicHeader serialises HLIT/HDIST/HCLEN counts, the code-length
// alphabet's own lengths, then the RLE-compressed litlen+dist length sequence.
func writeDynamicHeader(w *bitWriter, litlenLengths, distLengths []uint32) {
	hlit := len(litlenLengths) - 257
	hdist := len(distLengths) - 1

	combined := make([]uint32, 0, len(litlenLengths)+len(distLengths))
	combined = append(combined, litlenLengths...)
	combined = append(combined, distLengths...)

	symbols, extras, extraBits := rleEncodeLengths(combined)

	var clenFreq [clenAlphabetSize]uint32
	for _, s := range symbols {
		clenFreq[s]++
	}
	clenLengths, _ := packageMergeAny(clenFreq[:], maxClenLength)

	hclen := clenAlphabetSize
	for hclen > 4 && clenLengths[clenOrder[hclen-1]] == 0 {
		hclen--
	}

	w.appendBitsMSB(uint32(hlit), 5)
	w.appendBitsMSB(uint32(hdist), 5)
	w.appendBitsMSB(uint32(hclen-4), 4)

	for i := 0; i < hclen; i++ {
		w.appendBitsMSB(clenLengths[clenOrder[i]], 3)
	}

	clenCoder := newCanonicalCoder(clenLengths)
	for i, s := range symbols {
		clenCoder.encode(w, s)
		if extraBits[i] > 0 {
			w.appendBitsLSB(extras[i], extraBits[i])
		}
	}
}

// rleEncodeLengths run-length encodes a concatenated litlen+dist code-length
// sequence using the RFC 1951 section 3.2.7 auxiliary alphabet (0-15 literal, 16
// repeat-previous 3-6, 17 repeat-zero 3-10, 18 repeat-zero 11-138).
func rleEncodeLengths(lengths []uint32) (symbols []int, extras []uint32, extraBits []uint) {
	emit := func(sym int, extra uint32, bits uint) {
		symbols = append(symbols, sym)
		extras = append(extras, extra)
		extraBits = append(extraBits, bits)
	}

	i := 0
	for i < len(lengths) {
		value := lengths[i]
		runLen := 1
		for i+runLen < len(lengths) && lengths[i+runLen] == value {
			runLen++
		}

		if value == 0 {
			n := runLen
			for n > 0 {
				switch {
				case n < 3:
					for k := 0; k < n; k++ {
						emit(0, 0, 0)
					}
					n = 0
				case n <= 10:
					emit(17, uint32(n-3), 3)
					n = 0
				default:
					take := min(n, 138)
					emit(18, uint32(take-11), 7)
					n -= take
				}
			}
		} else {
			emit(int(value), 0, 0)
			n := runLen - 1
			for n > 0 {
				if n < 3 {
					for k := 0; k < n; k++ {
						emit(int(value), 0, 0)
					}
					n = 0
				} else {
					take := min(n, 6)
					emit(16, uint32(take-3), 2)
					n -= take
				}
			}
		}

		i += runLen
	}

	return symbols, extras, extraBits
}

// emitTokenStream writes every token's symbol(s) using the given coders,
// followed by the end-of-block symbol.
func emitTokenStream(w *bitWriter, tokens []token, litlenCoder, distCoder *canonicalCoder) {
	for _, t := range tokens {
		if !t.isMatch {
			litlenCoder.encode(w, int(t.literal))
			continue
		}

		lsym, lextra, lbits := lengthSymbol(t.length)
		litlenCoder.encode(w, lsym)
		if lbits > 0 {
			w.appendBitsLSB(lextra, lbits)
		}

		dsym, dextra, dbits := distSymbol(t.distance)
		distCoder.encode(w, dsym)
		if dbits > 0 {
			w.appendBitsLSB(dextra, dbits)
		}
	}
	litlenCoder.encode(w, endOfBlockSymbol)
}

// checkKraft reports whether the Kraft sum of lengths (each either 0 or in
// [1, maxCodeLength]) does not exceed 1. Computed as an integer numerator over
// a common denominator of 2^maxCodeLength to avoid floating point.
func checkKraft(lengths []uint32, maxLen uint32) bool {
	var sum uint64
	denom := uint64(1) << maxLen
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		if l > maxLen {
			return false
		}
		sum += denom >> l
	}
	return sum <= denom
}

// decodeBlock decodes one block from r into dst (appending), returning
// whether BFINAL was set.
func decodeBlock(r *bitReader, dst []byte) (out []byte, final bool, err error) {
	finalBit, ok := r.readBitsMSB(1)
	if !ok {
		return dst, false, ErrUnexpectedEOF
	}
	btype, ok := r.readBitsMSB(2)
	if !ok {
		return dst, false, ErrUnexpectedEOF
	}

	switch btype {
	case btypeStored:
		r.alignToByte()
		n, ok := r.readBitsMSB(32)
		if !ok {
			return dst, false, ErrUnexpectedEOF
		}
		raw, ok := r.readAlignedBytes(int(n))
		if !ok {
			return dst, false, ErrInputOverrun
		}
		dst = append(dst, raw...)

	case btypeFixed:
		litlenCoder := newCanonicalCoder(fixedLitlenLengths)
		litlenCoder.buildDecodeTable(9)
		distCoder := newCanonicalCoder(fixedDistLengths)
		distCoder.buildDecodeTable(9)
		dst, err = decodeTokenStream(r, dst, litlenCoder, distCoder)
		if err != nil {
			return dst, false, err
		}

	case btypeDynamic:
		litlenCoder, distCoder, derr := readDynamicHeader(r)
		if derr != nil {
			return dst, false, derr
		}
		dst, err = decodeTokenStream(r, dst, litlenCoder, distCoder)
		if err != nil {
			return dst, false, err
		}

	default:
		return dst, false, ErrCorruptBlock
	}

	return dst, finalBit == 1, nil
}

// readDynamicHeader parses HLIT/HDIST/HCLEN, the code-length alphabet's own
// lengths, and the RLE-compressed litlen+dist length sequence, returning
// ready-to-use decoders for both alphabets.
func readDynamicHeader(r *bitReader) (litlenCoder, distCoder *canonicalCoder, err error) {
	hlitRaw, ok := r.readBitsMSB(5)
	if !ok {
		return nil, nil, ErrUnexpectedEOF
	}
	hdistRaw, ok := r.readBitsMSB(5)
	if !ok {
		return nil, nil, ErrUnexpectedEOF
	}
	hclenRaw, ok := r.readBitsMSB(4)
	if !ok {
		return nil, nil, ErrUnexpectedEOF
	}

	hlit := int(hlitRaw) + 257
	hdist := int(hdistRaw) + 1
	hclen := int(hclenRaw) + 4

	var clenLengths [clenAlphabetSize]uint32
	for i := 0; i < hclen; i++ {
		v, ok := r.readBitsMSB(3)
		if !ok {
			return nil, nil, ErrUnexpectedEOF
		}
		clenLengths[clenOrder[i]] = v
	}

	if !checkKraft(clenLengths[:], maxClenLength) {
		return nil, nil, ErrCorruptBlock
	}

	clenCoder := newCanonicalCoder(clenLengths[:])
	clenCoder.buildDecodeTable(maxClenLength)

	total := hlit + hdist
	combined := make([]uint32, total)
	i := 0
	for i < total {
		sym, ok := clenCoder.decodeTable(r)
		if !ok {
			return nil, nil, ErrCorruptBlock
		}

		switch {
		case sym <= 15:
			combined[i] = uint32(sym)
			i++

		case sym == 16:
			if i == 0 {
				return nil, nil, ErrCorruptBlock
			}
			extra, ok := r.readBitsLSB(2)
			if !ok {
				return nil, nil, ErrUnexpectedEOF
			}
			count := int(extra) + 3
			prev := combined[i-1]
			for k := 0; k < count && i < total; k++ {
				combined[i] = prev
				i++
			}

		case sym == 17:
			extra, ok := r.readBitsLSB(3)
			if !ok {
				return nil, nil, ErrUnexpectedEOF
			}
			count := int(extra) + 3
			for k := 0; k < count && i < total; k++ {
				combined[i] = 0
				i++
			}

		case sym == 18:
			extra, ok := r.readBitsLSB(7)
			if !ok {
				return nil, nil, ErrUnexpectedEOF
			}
			count := int(extra) + 11
			for k := 0; k < count && i < total; k++ {
				combined[i] = 0
				i++
			}

		default:
			return nil, nil, ErrCorruptBlock
		}
	}

	litlenLengths := combined[:hlit]
	distLengths := combined[hlit:]

	if !checkKraft(litlenLengths, maxCodeLength) || !checkKraft(distLengths, maxCodeLength) {
		return nil, nil, ErrCorruptBlock
	}

	litlenCoder = newCanonicalCoder(litlenLengths)
	litlenCoder.buildDecodeTable(9)
	distCoder = newCanonicalCoder(distLengths)
	distCoder.buildDecodeTable(9)

	return litlenCoder, distCoder, nil
}

// decodeTokenStream decodes litlen/distance symbols until the end-of-block
// symbol is reached, appending decoded bytes to dst.
func decodeTokenStream(r *bitReader, dst []byte, litlenCoder, distCoder *canonicalCoder) ([]byte, error) {
	for {
		sym, ok := litlenCoder.decodeTable(r)
		if !ok {
			return dst, ErrUnexpectedEOF
		}

		switch {
		case sym < 256:
			dst = append(dst, byte(sym))

		case sym == endOfBlockSymbol:
			return dst, nil

		case sym <= 285:
			lbits := lengthCodes[sym-257].extra
			var extra uint32
			if lbits > 0 {
				var ok bool
				extra, ok = r.readBitsLSB(lbits)
				if !ok {
					return dst, ErrUnexpectedEOF
				}
			}
			length := lengthFromSymbol(sym, extra)

			dsym, ok := distCoder.decodeTable(r)
			if !ok {
				return dst, ErrUnexpectedEOF
			}
			if dsym >= distAlphabetSize {
				return dst, ErrCorruptBlock
			}
			dbits := distCodes[dsym].extra
			var dextra uint32
			if dbits > 0 {
				dextra, ok = r.readBitsLSB(dbits)
				if !ok {
					return dst, ErrUnexpectedEOF
				}
			}
			distance := distFromSymbol(dsym, dextra)

			outPos := len(dst)
			dst = append(dst, make([]byte, length)...)
			if err := copyBackRef(dst, outPos, distance, length); err != nil {
				return dst, err
			}

		default:
			return dst, ErrCorruptBlock
		}
	}
}
