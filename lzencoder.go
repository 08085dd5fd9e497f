// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/deflate

package deflate

// encodeTokens drives the match finder greedily over the whole input and
// returns the token stream: a literal for every byte not covered by a match,
// and a single match token for every back-reference taken. No lazy one-step
// lookahead is performed (see DESIGN.md): at each position the longest match
// the finder reports is taken immediately.
func encodeTokens(input []byte, m *matchFinder) []token {
	tokens := make([]token, 0, len(input)/4+8)

	p := 0
	for p < len(input) {
		dist, length := m.findLongestMatch(p)
		if length < minMatchLength {
			tokens = append(tokens, literalToken(input[p]))
			m.recordPosition(p)
			p++
			continue
		}

		tokens = append(tokens, matchToken(length, dist))
		end := p + length
		for ; p < end; p++ {
			m.recordPosition(p)
		}
	}

	return tokens
}
