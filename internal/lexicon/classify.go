package lexicon

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/pinyin"
)

// classify decides whether text is Chinese, Pinyin, English or Unknown.
//
// Han characters win when they outnumber both Latin letters and other
// symbols. Otherwise text that parses as pinyin syllables is Pinyin, and
// printable ASCII containing a letter is English. Whitespace, digits and
// punctuation are not counted toward any script. Toneless text made only of
// common English words that happen to spell pinyin ("dance", "you") is
// English.
func classify(text string) domain.Classification {
	text = domain.NormalizeText(text)
	if text == "" {
		return domain.ClassificationUnknown
	}

	var han, latin, other int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.IsLetter(r) && unicode.In(r, unicode.Latin):
			latin++
		case unicode.IsSpace(r), unicode.IsDigit(r), unicode.IsPunct(r):
		default:
			other++
		}
	}

	switch {
	case han > 0 && han > latin && han > other:
		return domain.ClassificationChinese
	case han == 0 && pinyin.IsPinyin(text):
		if isPlainLetters(text) && allEnglishLookalikes(text) {
			return domain.ClassificationEnglish
		}
		return domain.ClassificationPinyin
	case isEnglish(text):
		return domain.ClassificationEnglish
	}
	return domain.ClassificationUnknown
}

// isEnglish reports whether text is printable ASCII with at least one letter.
func isEnglish(text string) bool {
	letters := 0
	for _, r := range text {
		if r > unicode.MaxASCII || (r < ' ' && r != '\t') || r == 0x7f {
			return false
		}
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			letters++
		}
	}
	return letters > 0
}

// isPlainLetters reports whether text holds only ASCII letters and spaces,
// i.e. it reads the same as a pinyin spelling and as an English word.
func isPlainLetters(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		return r != ' ' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z')
	}) < 0
}

// englishLookalikes are common English words that also parse as toneless
// pinyin. Short syllables people actually type as pinyin (hen, men, ma,
// he, shi) are left out.
var englishLookalikes = func() map[string]struct{} {
	words := strings.Fields(`
ace ache age bake banana cake cane chance change china chinese dance dense
die dune ease fade game gate hate june kale keen lake lame lane lean lie
line long make man mane mango mean mine name nine one pace page panda pane
pen pie pine queen run sage sake same sane sea see seen sense shake shine
sun take tale tango tea teen tie tuna tune wage wake woman women you zeta
`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

func allEnglishLookalikes(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	for _, w := range words {
		if _, ok := englishLookalikes[w]; !ok {
			return false
		}
	}
	return len(words) > 0
}
