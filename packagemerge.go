// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package deflate

import "sort"

// packageMerge computes length-limited optimal code lengths for n sorted,
// strictly positive frequencies freqs[0:n] (ascending), bounded by limit.
// It is a direct port of the lazy/bitmask boundary package-merge variant: per
// list scalars w/c/j track the two rightmost chains, and a bitmask records
// which chains are "packages" (sums of the list below) versus "take the next
// symbol" steps, avoiding the need to materialise a recursive merge tree.
func packageMerge(freqs []uint32, limit uint8) []uint32 {
	n := uint32(len(freqs))
	codeLengths := make([]uint32, n)

	if n <= 2 {
		for i := range codeLengths {
			codeLengths[i] = 1
		}
		return codeLengths
	}

	L := uint32(limit)
	w := make([]uint32, L) // weight of the two rightmost chains of list l
	c := make([]uint32, L) // count of next-unused symbol in list l
	j := make([]uint32, L) // total chains materialised in list l so far

	// isPackage[l] holds one bit per chain index in list l (bit set => package).
	numChains := 2*n - 2
	isPackage := make([][]bool, L)
	for l := range isPackage {
		isPackage[l] = make([]bool, numChains+2)
	}

	for l := uint32(0); l < L; l++ {
		w[l] = freqs[0] + freqs[1]
		c[l] = 2
		j[l] = 2
	}

	// Explicit stack simulating the recursive "package the list below" calls.
	stack := make([]uint32, 0, L*(L+1)/2+1)

	l := L - 1
	for i := uint32(2); i < 2*n-2; {
		var freq uint32
		if c[l] < n {
			freq = freqs[c[l]]
		} else {
			freq = ^uint32(0)
		}

		var s uint32
		if l != 0 {
			s = w[l-1]
		}

		if l == 0 || s > freq {
			// Take the next symbol.
			c[l]++
			if w[l] > ^uint32(0)-freq {
				w[l] = ^uint32(0) // list l is out of symbols: saturate rather than wrap
			} else {
				w[l] += freq
			}
		} else {
			// Form a package from the two rightmost chains of list l-1.
			w[l-1] = 0
			w[l] += s
			isPackage[l][j[l]] = true
			stack = append(stack, l-1, l-1)
		}
		j[l]++

		if l == L-1 {
			i++
		}

		if len(stack) > 0 {
			l = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		} else {
			l = L - 1
		}
	}

	// Walk lists top-down, counting packages via the bitmask to find how many
	// chains of each list are "real" symbols (active leaves) at that depth.
	activeLeaves := make([]uint32, L)
	numToUse := numChains
	for depth := int(L) - 1; depth >= 0; depth-- {
		numPackages := uint32(0)
		for idx := uint32(2); idx < numToUse; idx++ {
			if isPackage[depth][idx] {
				numPackages++
			}
		}
		activeLeaves[depth] = numToUse - numPackages
		numToUse = 2 * numPackages
	}

	// Assign lengths: depth 0 (shallowest, length = limit) down to depth L-1
	// (length = 1), peeling the lowest-frequency symbols off first.
	sym := uint32(0)
	for depth := uint32(0); depth < L; depth++ {
		var count uint32
		if depth == 0 {
			count = activeLeaves[0]
		} else {
			count = activeLeaves[depth] - activeLeaves[depth-1]
		}
		for k := uint32(0); k < count && sym < n; k++ {
			codeLengths[sym] = L - depth
			sym++
		}
	}

	return codeLengths
}

// packageMergeAny is the public-facing wrapper: it accepts an arbitrary
// (unsorted, possibly-zero) frequency vector indexed by symbol, sorts the
// non-zero tail by (frequency, index), runs packageMerge on it, and scatters
// the resulting lengths back to the caller's original symbol order. Symbols
// with zero frequency are assigned length 0 (unused).
func packageMergeAny(freqs []uint32, limit uint8) ([]uint32, error) {
	n := len(freqs)
	lengths := make([]uint32, n)

	type indexed struct {
		freq uint32
		idx  int
	}
	sorted := make([]indexed, 0, n)
	for i, f := range freqs {
		if f > 0 {
			sorted = append(sorted, indexed{f, i})
		}
	}
	if len(sorted) == 0 {
		return lengths, nil
	}
	if len(sorted) == 1 {
		lengths[sorted[0].idx] = 1
		return lengths, nil
	}

	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].freq != sorted[b].freq {
			return sorted[a].freq < sorted[b].freq
		}
		return sorted[a].idx < sorted[b].idx
	})

	if uint32(1)<<limit <= uint32(len(sorted)) {
		return nil, ErrInvalidCodeLengthBound
	}

	sortedFreqs := make([]uint32, len(sorted))
	for i, e := range sorted {
		sortedFreqs[i] = e.freq
	}

	sortedLengths := packageMerge(sortedFreqs, limit)
	for i, e := range sorted {
		lengths[e.idx] = sortedLengths[i]
	}
	return lengths, nil
}
