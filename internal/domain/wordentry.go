package domain

import "github.com/heartmarshall/zhdict/internal/pinyin"

// HSKUnranked marks an entry that is not part of any HSK vocabulary list.
const HSKUnranked uint8 = 0

// MaxHSKLevel is the highest HSK level assigned by the bundled lists.
const MaxHSKLevel uint8 = 6

// MeasureWord is a classifier used when counting the noun of a WordEntry.
type MeasureWord struct {
	Traditional   string `json:"traditional"`
	Simplified    string `json:"simplified"`
	PinyinMarks   string `json:"pinyinMarks"`
	PinyinNumbers string `json:"pinyinNumbers"`
}

// WordEntry is one dictionary sense.
type WordEntry struct {
	Traditional   string        `json:"traditional"`
	Simplified    string        `json:"simplified"`
	PinyinMarks   string        `json:"pinyinMarks"`
	PinyinNumbers string        `json:"pinyinNumbers"`
	Hash          uint64        `json:"hash,string"`
	HSK           uint8         `json:"hsk"`
	WordID        uint32        `json:"wordId"`
	English       []string      `json:"english"`
	MeasureWords  []MeasureWord `json:"measureWords"`
	ToneMarks     []uint8       `json:"toneMarks"`
}

// IsRanked reports whether the entry belongs to an HSK level.
func (e *WordEntry) IsRanked() bool {
	return e.HSK != HSKUnranked
}

// HSKRank returns a sort key where ranked levels come first in ascending
// order and unranked entries sort last.
func (e *WordEntry) HSKRank() int {
	if e.HSK == HSKUnranked {
		return int(MaxHSKLevel) + 1
	}
	return int(e.HSK)
}

// PrimaryGloss returns the first English definition or "".
func (e *WordEntry) PrimaryGloss() string {
	if len(e.English) == 0 {
		return ""
	}
	return e.English[0]
}

// Validate checks the structural invariants of a dictionary entry.
func (e *WordEntry) Validate() error {
	var errs []FieldError
	if e.Traditional == "" {
		errs = append(errs, FieldError{Field: "traditional", Message: "required"})
	}
	if e.Simplified == "" {
		errs = append(errs, FieldError{Field: "simplified", Message: "required"})
	}
	if e.PinyinNumbers == "" || e.PinyinMarks == "" {
		errs = append(errs, FieldError{Field: "pinyin", Message: "marks and numbers are required"})
	}
	if len(e.English) == 0 {
		errs = append(errs, FieldError{Field: "english", Message: "at least one gloss required"})
	}
	if n := pinyin.SyllableCount(e.PinyinNumbers); len(e.ToneMarks) != n {
		errs = append(errs, FieldError{Field: "tone_marks", Message: "one tone per syllable required"})
	} else {
		for _, t := range e.ToneMarks {
			if t > pinyin.NeutralTone {
				errs = append(errs, FieldError{Field: "tone_marks", Message: "tone out of range"})
				break
			}
		}
	}
	if e.HSK > MaxHSKLevel {
		errs = append(errs, FieldError{Field: "hsk", Message: "out of range"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
