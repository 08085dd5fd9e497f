// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package deflate

const (
	hashBits     = 15
	hashTableLen = 1 << hashBits
	hashMask     = hashTableLen - 1

	emptySlot = -1 // sentinel meaning "no position recorded"

	// rebaseThreshold bounds how large a relative position is allowed to grow
	// before the hash chains are rebased against a new anchor. Kept well below
	// the MaxInt32 overflow point so the rebase path is exercised by ordinary
	// multi-megabyte inputs, not just pathological ones.
	rebaseThreshold = 1 << 20
)

// matchFinder is a hash-chain LZ77 dictionary over the last windowSize bytes
// of input. head/prev hold positions relative to base rather than absolute
// input offsets, so stored values stay below rebaseThreshold; base is
// advanced by rebase when a relative position would otherwise grow without
// bound.
type matchFinder struct {
	input    []byte
	base     int               // anchor: head/prev entries are (absolutePos - base)
	head     [hashTableLen]int32
	prev     [windowSize]int32 // indexed by absolutePos & (windowSize-1)
	maxChain uint
	niceLen  uint
}

// newMatchFinder returns a matchFinder over input, ready to record/search from
// position 0. params controls how hard findLongestMatch searches.
func newMatchFinder(input []byte, params levelParams) *matchFinder {
	m := &matchFinder{input: input, maxChain: params.maxChain, niceLen: params.niceLen}
	m.reset(input)
	return m
}

// reset rebinds the matchFinder to a new input buffer and clears all state,
// for reuse from a sync.Pool.
func (m *matchFinder) reset(input []byte) {
	m.input = input
	m.base = 0
	for i := range m.head {
		m.head[i] = emptySlot
	}
	for i := range m.prev {
		m.prev[i] = emptySlot
	}
}

// hash3 mixes the 3-byte prefix at input[p:p+3] into a hashTableLen-sized bucket.
// The mixing constants follow the shape of the reference hash-chain matcher
// (three distinct odd multipliers folded together), not a cryptographic hash.
func hash3(b []byte) uint32 {
	h := uint32(b[0])*2654435761 + uint32(b[1])*2246822519 + uint32(b[2])*3266489917
	return (h >> (32 - hashBits)) & hashMask
}

// rebase shifts every head/prev entry down by cur-windowSize (cur is the
// current absolute position expressed relative to base), so positions still
// inside the window keep non-negative relative values; any entry that would
// fall negative (i.e. now outside the window) saturates to emptySlot. base
// advances by the same amount.
func (m *matchFinder) rebase(cur int) {
	delta := int32(cur - windowSize)
	for i := range m.head {
		if m.head[i] != emptySlot {
			v := m.head[i] - delta
			if v < 0 {
				v = emptySlot
			}
			m.head[i] = v
		}
	}
	for i := range m.prev {
		if m.prev[i] != emptySlot {
			v := m.prev[i] - delta
			if v < 0 {
				v = emptySlot
			}
			m.prev[i] = v
		}
	}
	m.base += int(delta)
}

// recordPosition inserts absolute position p into the hash chain for the
// 3-byte prefix at p, provided at least minMatchLength bytes remain (the
// end-of-input guard: the last couple of bytes of input never need to be
// findable, since a match starting there couldn't reach minMatchLength anyway).
func (m *matchFinder) recordPosition(p int) {
	if p+minMatchLength > len(m.input) {
		return
	}

	rel := p - m.base
	if rel >= rebaseThreshold {
		m.rebase(rel)
		rel = p - m.base
	}

	h := hash3(m.input[p:])
	slot := p & (windowSize - 1)
	m.prev[slot] = m.head[h]
	m.head[h] = int32(rel)
}

// findLongestMatch searches the hash chain for the longest prior occurrence of
// the bytes starting at absolute position p. It returns length 0 if fewer than
// minMatchLength bytes remain, or if no qualifying match is found.
func (m *matchFinder) findLongestMatch(p int) (distance, length int) {
	remaining := len(m.input) - p
	if remaining < minMatchLength {
		return 0, 0
	}

	maxLen := min(remaining, maxMatchLength)
	h := hash3(m.input[p:])
	candidateRel := m.head[h]

	bestLen := 0
	bestDist := 0

	chain := m.maxChain
	for candidateRel != emptySlot && chain > 0 {
		chain--
		candidatePos := int(candidateRel) + m.base
		dist := p - candidatePos
		if dist <= 0 || dist > windowSize {
			break
		}

		length := matchLengthAt(m.input, candidatePos, p, maxLen)
		if length > bestLen {
			bestLen = length
			bestDist = dist
			if bestLen >= int(m.niceLen) || bestLen >= maxLen {
				break
			}
		}

		candidateRel = m.prev[candidatePos&(windowSize-1)]
	}

	if bestLen < minMatchLength {
		return 0, 0
	}
	return bestDist, bestLen
}

// matchLengthAt counts how many leading bytes of input[cur:cur+maxLen] equal
// input[cand:cand+maxLen].
func matchLengthAt(input []byte, cand, cur, maxLen int) int {
	n := 0
	for n < maxLen && input[cand+n] == input[cur+n] {
		n++
	}
	return n
}
