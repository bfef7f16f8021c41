package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestWordEntry_HSKRank(t *testing.T) {
	t.Parallel()

	ranked := WordEntry{HSK: 1}
	unranked := WordEntry{HSK: HSKUnranked}
	top := WordEntry{HSK: MaxHSKLevel}

	if ranked.HSKRank() >= top.HSKRank() {
		t.Fatalf("level 1 should rank before level %d", MaxHSKLevel)
	}
	if top.HSKRank() >= unranked.HSKRank() {
		t.Fatal("unranked entries should sort after every ranked level")
	}
	if unranked.IsRanked() {
		t.Fatal("IsRanked() = true for unranked entry")
	}
}

func TestWordEntry_Validate(t *testing.T) {
	t.Parallel()

	valid := WordEntry{
		Traditional:   "你好",
		Simplified:    "你好",
		PinyinMarks:   "nǐ hǎo",
		PinyinNumbers: "ni3 hao3",
		English:       []string{"hello"},
		ToneMarks:     []uint8{3, 3},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	invalid := WordEntry{HSK: 9}
	err := invalid.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Validate() = %v, want ErrValidation", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Errors) != 5 {
		t.Fatalf("expected 5 field errors, got %v", err)
	}
}

func TestWordEntry_ValidateToneMarks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		tones []uint8
		ok    bool
	}{
		{"one per syllable", []uint8{3, 3}, true},
		{"neutral tone", []uint8{3, 5}, true},
		{"missing", nil, false},
		{"too few", []uint8{3}, false},
		{"too many", []uint8{3, 3, 1}, false},
		{"out of range", []uint8{3, 7}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := WordEntry{
				Traditional:   "你好",
				Simplified:    "你好",
				PinyinMarks:   "nǐ hǎo",
				PinyinNumbers: "ni3 hao3",
				English:       []string{"hello"},
				ToneMarks:     tt.tones,
			}
			err := e.Validate()
			if tt.ok {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || len(ve.Errors) != 1 || ve.Errors[0].Field != "tone_marks" {
				t.Fatalf("Validate() = %v, want a single tone_marks field error", err)
			}
		})
	}
}

func TestWordEntry_JSONFieldNames(t *testing.T) {
	t.Parallel()

	e := WordEntry{Traditional: "實驗", Simplified: "实验", Hash: 1<<63 + 5, WordID: 7}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{
		"traditional", "simplified", "pinyinMarks", "pinyinNumbers", "hash",
		"hsk", "wordId", "english", "measureWords", "toneMarks",
	} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing JSON field %q", key)
		}
	}
	if m["hash"] != "9223372036854775813" {
		t.Errorf("hash should be encoded as a decimal string, got %v", m["hash"])
	}
}

func TestClassification_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		c    Classification
		want string
	}{
		{ClassificationChinese, "ZH"},
		{ClassificationPinyin, "PY"},
		{ClassificationEnglish, "EN"},
		{ClassificationUnknown, "UN"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		back, ok := ParseClassification(tt.want)
		if !ok || back != tt.c {
			t.Errorf("ParseClassification(%q) = %v, %v", tt.want, back, ok)
		}
	}
}
