package dictionary

import "github.com/heartmarshall/zhdict/internal/domain"

// QueryResult is a routed lookup. Entries is nil only when the text could
// not be classified.
type QueryResult struct {
	Classification domain.Classification
	Entries        []domain.WordEntry
	Found          bool
	Total          int
	Truncated      bool
}

// ScriptInfo reports which character sets a text is consistent with. Text
// without convertible characters is both.
type ScriptInfo struct {
	IsSimplified  bool
	IsTraditional bool
}

// Token is one segment of annotated text.
type Token struct {
	Text    string
	Pinyin  string
	Known   bool
	Entries []domain.WordEntry
}
