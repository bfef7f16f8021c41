package pinyin

import (
	"strings"
	"unicode"
)

// IsPinyin reports whether text is a sequence of valid syllables, each
// optionally tone-marked or followed by a tone digit, separated by spaces,
// apostrophes or hyphens. Empty text is not pinyin.
func IsPinyin(text string) bool {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || isSeparator(r)
	})
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if _, ok := Split(tok); !ok {
			return false
		}
	}
	return true
}

// Split breaks a single compact token ("tian1qi4", "xiànzài", "shiyan")
// into syllables. Each returned syllable keeps its original spelling,
// including any trailing tone digit. Longer syllables are preferred and the
// parser backtracks when a longer choice leaves an unparsable rest.
func Split(token string) ([]string, bool) {
	orig := []rune(strings.NewReplacer("u:", "ü", "U:", "Ü").Replace(token))
	if len(orig) == 0 {
		return nil, false
	}
	// plain[i] is the toneless lowercase form of orig[i].
	plain := make([]rune, len(orig))
	for i, r := range orig {
		plain[i] = plainRune(r)
	}
	failed := make([]bool, len(orig)+1)
	var out []string
	var walk func(pos int) bool
	walk = func(pos int) bool {
		if pos == len(orig) {
			return true
		}
		if failed[pos] {
			return false
		}
		limit := min(maxSyllableRunes, len(orig)-pos)
		for n := limit; n >= 1; n-- {
			cand := string(plain[pos : pos+n])
			end := pos + n
			hasDigit := end < len(orig) && isToneDigit(orig[end])
			if !acceptSyllable(cand, hasDigit) {
				continue
			}
			if hasDigit {
				end++
			}
			out = append(out, string(orig[pos:end]))
			if walk(end) {
				return true
			}
			out = out[:len(out)-1]
		}
		failed[pos] = true
		return false
	}
	if !walk(0) {
		return nil, false
	}
	return out, true
}

func acceptSyllable(s string, hasDigit bool) bool {
	if _, ok := syllables[s]; ok {
		return true
	}
	if !hasDigit {
		return false
	}
	_, ok := digitSyllables[s]
	return ok
}

func isToneDigit(r rune) bool {
	return r >= '0' && r <= '5'
}

// plainRune lowercases r, drops its tone mark and spells v as ü.
func plainRune(r rune) rune {
	r = unicode.ToLower(r)
	if r == 'v' {
		return 'ü'
	}
	for base, forms := range toneVowels {
		for _, f := range forms {
			if f == r {
				return base
			}
		}
	}
	return r
}
