package pinyin

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize turns a pinyin string into its compact index form: lowercase,
// NFC, ü spelled as ü, separators (spaces, apostrophes, hyphens) removed.
func Normalize(s string) string {
	s = strings.ToLower(spellU(norm.NFC.String(s)))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isSeparator(r) || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isSeparator(r rune) bool {
	switch r {
	case '\'', '’', '-', '·':
		return true
	}
	return false
}

func removeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}

// Keys returns the distinct lookup keys of an entry's numbered pinyin:
// numbered ("tian1qi4"), marked ("tiānqì"), toneless ("tianqi", ü kept) and
// ASCII folded (ü -> u).
func Keys(numbers string) []string {
	numbered := Normalize(numbers)
	if numbered == "" {
		return nil
	}
	marked := Normalize(NumbersToMarks(numbers))
	toneless := removeDigits(numbered)
	folded := FoldASCII(toneless)

	keys := make([]string, 0, 4)
	seen := make(map[string]struct{}, 4)
	for _, k := range []string{numbered, marked, toneless, folded} {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}
