package pinyin

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NeutralTone is the tone number used for unstressed syllables.
const NeutralTone uint8 = 5

var toneVowels = map[rune][4]rune{
	'a': {'ā', 'á', 'ǎ', 'à'},
	'e': {'ē', 'é', 'ě', 'è'},
	'i': {'ī', 'í', 'ǐ', 'ì'},
	'o': {'ō', 'ó', 'ǒ', 'ò'},
	'u': {'ū', 'ú', 'ǔ', 'ù'},
	'ü': {'ǖ', 'ǘ', 'ǚ', 'ǜ'},
}

// Combining marks that carry tone: macron, acute, caron, grave.
var toneMarkSet = runes.Predicate(func(r rune) bool {
	switch r {
	case '\u0304', '\u0301', '\u030c', '\u0300':
		return true
	}
	return false
})

// markTone returns the tone encoded by a precomposed vowel, or 0.
func markTone(r rune) uint8 {
	lower := unicode.ToLower(r)
	for _, forms := range toneVowels {
		for i, f := range forms {
			if f == lower {
				return uint8(i + 1)
			}
		}
	}
	return 0
}

// newStripTones removes tone diacritics and keeps the ü umlaut.
// transform.Transformer values are stateful, so every call builds its own.
func newStripTones() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(toneMarkSet), norm.NFC)
}

func newFoldASCII() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// StripTones removes tone diacritics, e.g. "lǜ" -> "lü".
func StripTones(s string) string {
	out, _, err := transform.String(newStripTones(), s)
	if err != nil {
		return s
	}
	return out
}

// FoldASCII removes every diacritic, e.g. "lǜ" -> "lu".
func FoldASCII(s string) string {
	out, _, err := transform.String(newFoldASCII(), s)
	if err != nil {
		return s
	}
	return out
}

// spellU replaces the CC-CEDICT and keyboard spellings of ü.
func spellU(s string) string {
	if !strings.ContainsAny(s, "vV:") {
		return s
	}
	r := strings.NewReplacer("u:", "ü", "U:", "Ü", "v", "ü", "V", "Ü")
	return r.Replace(s)
}

// splitTone separates a numbered syllable like "hao3" into "hao" and 3.
// A syllable without a digit has tone 0.
func splitTone(syl string) (string, uint8) {
	if syl == "" {
		return syl, 0
	}
	last := syl[len(syl)-1]
	if last >= '0' && last <= '5' {
		tone := last - '0'
		if tone == 0 {
			tone = NeutralTone
		}
		return syl[:len(syl)-1], tone
	}
	return syl, 0
}

// SyllableToMarks converts one numbered syllable ("lu:4") to its marked
// spelling ("lǜ"). Tokens that are not syllables are returned unchanged.
func SyllableToMarks(syl string) string {
	base, tone := splitTone(syl)
	base = spellU(base)
	if tone == 0 || tone == NeutralTone {
		return base
	}

	rs := []rune(base)
	idx := markIndex(rs)
	if idx < 0 {
		return syl
	}
	lower := unicode.ToLower(rs[idx])
	marked := toneVowels[lower][tone-1]
	if unicode.IsUpper(rs[idx]) {
		marked = unicode.ToUpper(marked)
	}
	rs[idx] = marked
	return string(rs)
}

// markIndex picks the vowel that carries the tone mark: a or e if present,
// o in "ou", otherwise the last vowel.
func markIndex(rs []rune) int {
	last := -1
	for i, r := range rs {
		lr := unicode.ToLower(r)
		if lr == 'a' || lr == 'e' {
			return i
		}
		if lr == 'o' && i+1 < len(rs) && unicode.ToLower(rs[i+1]) == 'u' {
			return i
		}
		if _, ok := toneVowels[lr]; ok {
			last = i
		}
	}
	return last
}

// NumbersToMarks converts space separated numbered pinyin ("ni3 hao3")
// into tone-marked pinyin ("nǐ hǎo").
func NumbersToMarks(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = SyllableToMarks(f)
	}
	return strings.Join(fields, " ")
}

// Tones returns one tone per syllable of numbered pinyin. Tokens without
// letters (punctuation such as "," or "·") are not syllables. A syllable
// without a digit is treated as neutral.
func Tones(numbers string) []uint8 {
	fields := strings.Fields(numbers)
	tones := make([]uint8, 0, len(fields))
	for _, f := range fields {
		if !hasLetter(f) {
			continue
		}
		_, tone := splitTone(f)
		if tone == 0 {
			tone = NeutralTone
		}
		tones = append(tones, tone)
	}
	return tones
}

// SyllableCount returns the number of syllables in numbered pinyin.
func SyllableCount(numbers string) int {
	n := 0
	for _, f := range strings.Fields(numbers) {
		if hasLetter(f) {
			n++
		}
	}
	return n
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
