// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflate

package deflate

import (
	"bytes"
	"fmt"
	"testing"
)

func testInputSet() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "single-byte", data: []byte{0xAB}},
		{name: "short-text", data: []byte("hello world, deflate test")},
		{name: "abracadabra", data: []byte("abracadabra")},
		{name: "repeated-pattern", data: bytes.Repeat([]byte("abc123"), 2000)},
		{name: "long-run", data: bytes.Repeat([]byte{0xFF}, 12000)},
		{name: "byte-cycle", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1200)},
	}
}

func TestCompressDecompress_RoundTripAcrossLevels(t *testing.T) {
	levels := []int{-7, 0, 1, 2, 5, 9, 15}

	for _, in := range testInputSet() {
		for _, level := range levels {
			name := fmt.Sprintf("%s/level-%d", in.name, level)
			t.Run(name, func(t *testing.T) {
				cmp, err := Compress(in.data, &CompressOptions{Level: level})
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}

				out, err := Decompress(cmp, DefaultDecompressOptions(len(in.data)))
				if err != nil {
					t.Fatalf("Decompress failed: %v", err)
				}
				if !bytes.Equal(out, in.data) {
					t.Fatalf("round-trip mismatch: got=%d want=%d", len(out), len(in.data))
				}

				outReader, err := DecompressFromReader(bytes.NewReader(cmp), DefaultDecompressOptions(len(in.data)))
				if err != nil {
					t.Fatalf("DecompressFromReader failed: %v", err)
				}
				if !bytes.Equal(outReader, in.data) {
					t.Fatalf("reader round-trip mismatch: got=%d want=%d", len(outReader), len(in.data))
				}
			})
		}
	}
}

func TestCompressDecompress_AllBlockStrategies(t *testing.T) {
	data := []byte("abracadabra, the quick brown fox jumps over the lazy dog, abracadabra")
	strategies := []BlockStrategy{BlockAuto, BlockDynamic, BlockFixed, BlockStored}

	for _, strategy := range strategies {
		t.Run(fmt.Sprintf("strategy-%d", strategy), func(t *testing.T) {
			cmp, err := Compress(data, &CompressOptions{Level: 6, Strategy: strategy})
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			out, err := Decompress(cmp, DefaultDecompressOptions(len(data)))
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(out, data) {
				t.Fatalf("round-trip mismatch for strategy %d", strategy)
			}
		})
	}
}

func TestCompress_DefaultOptions(t *testing.T) {
	data := bytes.Repeat([]byte("ABCDEF123456"), 1024)

	cmpDefault, err := Compress(data, nil)
	if err != nil {
		t.Fatalf("Compress default failed: %v", err)
	}

	out, err := Decompress(cmpDefault, DefaultDecompressOptions(len(data)))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("default-options round trip mismatch")
	}
}

// TestCompress_AbracadabraFindsExpectedMatch exercises S5: the encoder must
// find the length->=4, distance=7 match re-using "abra" at position 7.
func TestCompress_AbracadabraFindsExpectedMatch(t *testing.T) {
	input := []byte("abracadabra")
	mf := newMatchFinder(input, levelParamsFor(9))
	tokens := encodeTokens(input, mf)

	found := false
	pos := 0
	for _, tok := range tokens {
		if tok.isMatch && pos == 7 {
			if tok.length < 4 || tok.distance != 7 {
				t.Fatalf("unexpected match at pos 7: length=%d distance=%d", tok.length, tok.distance)
			}
			found = true
		}
		if tok.isMatch {
			pos += tok.length
		} else {
			pos++
		}
	}
	if !found {
		t.Fatal("expected a match token at input position 7")
	}
}

// TestCompress_HighlyRepetitiveInputCompressesWell exercises S7.
func TestCompress_HighlyRepetitiveInputCompressesWell(t *testing.T) {
	pattern := bytes.Repeat([]byte("compress-me-please"), 6)[:100]
	data := bytes.Repeat(pattern, 10000)

	cmp, err := Compress(data, &CompressOptions{Level: 9})
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	if len(cmp) > len(data)/50 {
		t.Fatalf("compressed size too large: %d bytes for %d byte input", len(cmp), len(data))
	}

	out, err := Decompress(cmp, DefaultDecompressOptions(len(data)))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("round-trip mismatch for highly repetitive input")
	}
}

func TestCompress_EmptyInputRoundTrips(t *testing.T) {
	cmp, err := Compress(nil, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	out, err := Decompress(cmp, DefaultDecompressOptions(0))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(out))
	}
}

// TestCompress_EmptyInputMatchesS1 exercises S1 literally: compress("") must
// equal [BFINAL=1, BTYPE=fixed, EOB, pad to byte], not merely round-trip to
// an empty result. A fixed block is the smallest encoding of an all-EOB
// token stream, so BlockAuto must choose it over a dynamic or stored block.
func TestCompress_EmptyInputMatchesS1(t *testing.T) {
	cmp, err := Compress(nil, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	if len(cmp) != 2 {
		t.Fatalf("expected the minimal fixed-block encoding of empty input to be 2 bytes, got %d: %x", len(cmp), cmp)
	}

	r := newBitReader(cmp)
	final, ok := r.readBitsMSB(1)
	if !ok || final != 1 {
		t.Fatalf("expected BFINAL=1, got %d ok=%v", final, ok)
	}
	btype, ok := r.readBitsMSB(2)
	if !ok || btype != btypeFixed {
		t.Fatalf("expected BTYPE=fixed (%d), got %d ok=%v", btypeFixed, btype, ok)
	}

	coder := newCanonicalCoder(fixedLitlenLengths)
	sym, ok := coder.decodeBrute(r)
	if !ok || sym != endOfBlockSymbol {
		t.Fatalf("expected the end-of-block symbol, got %d ok=%v", sym, ok)
	}

	r.alignToByte()
	if r.bytePos() != uint(len(cmp)) {
		t.Fatalf("expected nothing beyond BFINAL+BTYPE+EOB+pad: consumed %d of %d bytes", r.bytePos(), len(cmp))
	}

	want := []byte{0x05, 0x00}
	if !bytes.Equal(cmp, want) {
		t.Fatalf("exact S1 byte sequence mismatch: got=%x want=%x", cmp, want)
	}
}
