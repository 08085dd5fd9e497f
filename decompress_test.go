// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package deflate

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDecompress_OptionsRequired(t *testing.T) {
	_, err := Decompress([]byte{0x11, 0x00}, nil)
	if !errors.Is(err, ErrOptionsRequired) {
		t.Fatalf("expected ErrOptionsRequired, got %v", err)
	}

	_, err = DecompressFromReader(strings.NewReader("\x00"), nil)
	if !errors.Is(err, ErrOptionsRequired) {
		t.Fatalf("expected ErrOptionsRequired (reader), got %v", err)
	}
}

func TestDecompress_EmptyInput(t *testing.T) {
	_, err := Decompress(nil, DefaultDecompressOptions(0))
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestDecompress_TruncatedInputAlwaysFails(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 256)
	cmp, err := Compress(data, &CompressOptions{Level: 9})
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if len(cmp) < 4 {
		t.Fatalf("compressed data unexpectedly short: %d", len(cmp))
	}

	maxCut := min(32, len(cmp)-1)
	for cut := 1; cut <= maxCut; cut++ {
		truncated := cmp[:len(cmp)-cut]
		_, decErr := Decompress(truncated, DefaultDecompressOptions(len(data)))
		if decErr == nil {
			t.Fatalf("expected error for cut=%d", cut)
		}
	}
}

func TestDecompressFromReader_MaxInputSize(t *testing.T) {
	data := bytes.Repeat([]byte("xyz"), 200)
	cmp, err := Compress(data, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	opts := DefaultDecompressOptions(len(data))
	opts.MaxInputSize = len(cmp) - 1
	_, err = DecompressFromReader(bytes.NewReader(cmp), opts)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
}

func TestDecompressN_ReturnsConsumedBytes(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 100)
	cmp, err := Compress(data, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	decoded, nRead, err := DecompressN(cmp, DefaultDecompressOptions(len(data)))
	if err != nil {
		t.Fatalf("DecompressN failed: %v", err)
	}

	if nRead != len(cmp) {
		t.Errorf("nRead = %d, want %d (full compressed length)", nRead, len(cmp))
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("decoded mismatch")
	}

	// Back-to-back: extra bytes after the block should not be consumed.
	extra := []byte("trailing")
	src := append(append([]byte(nil), cmp...), extra...)
	decoded2, nRead2, err := DecompressN(src, DefaultDecompressOptions(len(data)))
	if err != nil {
		t.Fatalf("DecompressN with trailing failed: %v", err)
	}
	if nRead2 != len(cmp) {
		t.Errorf("nRead with trailing = %d, want %d", nRead2, len(cmp))
	}
	if !bytes.Equal(decoded2, data) {
		t.Errorf("decoded with trailing mismatch")
	}
	if nRead2 < len(src) && !bytes.Equal(src[nRead2:], extra) {
		t.Errorf("advancing by nRead should leave trailing bytes unchanged")
	}
}

func TestDecompress_StoredBlockRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("AABBCCDDEEFF"), 512)
	cmp, err := Compress(data, &CompressOptions{Level: 1, Strategy: BlockStored})
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	out, err := Decompress(cmp, DefaultDecompressOptions(len(data)))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("stored block round-trip mismatch")
	}
}

func TestDecompress_RejectsReservedBlockType(t *testing.T) {
	// BFINAL=1, BTYPE=11 (reserved): bits are packed bit 0 first, so the
	// three header bits 1 1 1 occupy the low bits of the first byte: 0x07.
	src := []byte{0x07}
	_, err := Decompress(src, DefaultDecompressOptions(16))
	if !errors.Is(err, ErrCorruptBlock) {
		t.Fatalf("expected ErrCorruptBlock, got %v", err)
	}
}

func TestCopyBackRef(t *testing.T) {
	t.Run("non-overlapping", func(t *testing.T) {
		dst := []byte("abcdefghXXXXXXXX")
		if err := copyBackRef(dst, 8, 8, 4); err != nil {
			t.Fatalf("copyBackRef failed: %v", err)
		}
		if got, want := string(dst), "abcdefghabcdXXXX"; got != want {
			t.Fatalf("unexpected dst: got %q want %q", got, want)
		}
	})

	t.Run("overlapping", func(t *testing.T) {
		dst := []byte{'A', 'B', 'C', 0, 0, 0, 0, 0}
		if err := copyBackRef(dst, 3, 3, 5); err != nil {
			t.Fatalf("copyBackRef failed: %v", err)
		}
		if got, want := string(dst), "ABCABCAB"; got != want {
			t.Fatalf("unexpected dst: got %q want %q", got, want)
		}
	})

	t.Run("lookbehind-underrun", func(t *testing.T) {
		dst := make([]byte, 8)
		err := copyBackRef(dst, 2, 3, 2)
		if !errors.Is(err, ErrLookBehindUnderrun) {
			t.Fatalf("expected ErrLookBehindUnderrun, got %v", err)
		}
	})

	t.Run("output-overrun", func(t *testing.T) {
		dst := make([]byte, 8)
		err := copyBackRef(dst, 7, 1, 2)
		if !errors.Is(err, ErrOutputOverrun) {
			t.Fatalf("expected ErrOutputOverrun, got %v", err)
		}
	})
}
