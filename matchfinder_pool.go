// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package deflate

import "sync"

// matchFinderPool is a pool of match finders, reused across Compress calls to
// avoid re-allocating the windowSize-sized hash tables on every invocation.
var matchFinderPool = sync.Pool{
	New: func() any {
		return &matchFinder{}
	},
}

// acquireMatchFinder gets a matchFinder from the pool and rebinds it to input.
func acquireMatchFinder(input []byte, params levelParams) *matchFinder {
	m := matchFinderPool.Get().(*matchFinder)
	m.reset(input)
	m.maxChain = params.maxChain
	m.niceLen = params.niceLen
	return m
}

// releaseMatchFinder returns a matchFinder to the pool.
func releaseMatchFinder(m *matchFinder) {
	if m == nil {
		return
	}
	m.input = nil
	matchFinderPool.Put(m)
}
