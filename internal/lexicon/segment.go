package lexicon

import "unicode/utf8"

// Segment splits text into dictionary words by greedy longest match over the
// simplified and traditional headwords. Characters that start no known word
// become single-character tokens, so the tokens always concatenate back to
// text. Invalid UTF-8 bytes are kept as one-byte tokens.
func (s *Store) Segment(text string) []string {
	// bounds[i] is the byte offset of the i-th rune; the last element is len(text).
	bounds := make([]int, 0, len(text)+1)
	for i := 0; i < len(text); {
		bounds = append(bounds, i)
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	bounds = append(bounds, len(text))

	runes := len(bounds) - 1
	tokens := make([]string, 0, runes)
	for i := 0; i < runes; {
		n := min(s.maxKeyRunes, runes-i)
		for ; n > 1; n-- {
			if s.HasKey(text[bounds[i]:bounds[i+n]]) {
				break
			}
		}
		if n < 1 {
			n = 1
		}
		tokens = append(tokens, text[bounds[i]:bounds[i+n]])
		i += n
	}
	return tokens
}
