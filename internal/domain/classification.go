package domain

// Classification is the detected script or language of a piece of text.
type Classification int

const (
	ClassificationUnknown Classification = iota
	ClassificationChinese
	ClassificationPinyin
	ClassificationEnglish
)

// String returns the two-letter code used on the wire.
func (c Classification) String() string {
	switch c {
	case ClassificationChinese:
		return "ZH"
	case ClassificationPinyin:
		return "PY"
	case ClassificationEnglish:
		return "EN"
	default:
		return "UN"
	}
}

// ParseClassification converts a two-letter code back into a Classification.
func ParseClassification(s string) (Classification, bool) {
	switch s {
	case "ZH":
		return ClassificationChinese, true
	case "PY":
		return ClassificationPinyin, true
	case "EN":
		return ClassificationEnglish, true
	case "UN":
		return ClassificationUnknown, true
	}
	return ClassificationUnknown, false
}

// Script identifies a target character set for conversion.
type Script string

const (
	ScriptSimplified  Script = "simplified"
	ScriptTraditional Script = "traditional"
)

func (s Script) String() string { return string(s) }

func (s Script) IsValid() bool {
	switch s {
	case ScriptSimplified, ScriptTraditional:
		return true
	}
	return false
}
