package dictionary

import (
	"unicode/utf8"

	"github.com/heartmarshall/zhdict/internal/domain"
)

// QueryMode selects the index a query runs against.
type QueryMode string

const (
	QueryAuto    QueryMode = "auto"
	QueryChinese QueryMode = "chinese"
	QueryPinyin  QueryMode = "pinyin"
	QueryEnglish QueryMode = "english"
)

// IsValid reports whether m names a known mode.
func (m QueryMode) IsValid() bool {
	switch m {
	case QueryAuto, QueryChinese, QueryPinyin, QueryEnglish:
		return true
	}
	return false
}

// ParseQueryMode maps the empty string to QueryAuto.
func ParseQueryMode(s string) (QueryMode, error) {
	if s == "" {
		return QueryAuto, nil
	}
	m := QueryMode(s)
	if !m.IsValid() {
		return "", domain.NewValidationError("by", "must be one of auto, chinese, pinyin, english")
	}
	return m, nil
}

// ParseScript validates a conversion target.
func ParseScript(s string) (domain.Script, error) {
	script := domain.Script(s)
	if !script.IsValid() {
		return "", domain.NewValidationError("to", "must be simplified or traditional")
	}
	return script, nil
}

func (s *Service) validateText(field, text string) error {
	var errs []domain.FieldError

	if !utf8.ValidString(text) {
		errs = append(errs, domain.FieldError{Field: field, Message: "must be valid UTF-8"})
	}
	if n := utf8.RuneCountInString(text); s.cfg.MaxInputRunes > 0 && n > s.cfg.MaxInputRunes {
		errs = append(errs, domain.FieldError{Field: field, Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
