package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"

	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/lexicon"
)

// ---------------------------------------------------------------------------
// 1. Classify
// ---------------------------------------------------------------------------

// Classify reports whether text reads as Chinese, pinyin or English.
func (s *Service) Classify(ctx context.Context, text string) (domain.Classification, error) {
	if err := s.validateText("text", text); err != nil {
		return domain.ClassificationUnknown, err
	}
	e, err := s.engine(ctx)
	if err != nil {
		return domain.ClassificationUnknown, err
	}
	return e.Classify(text), nil
}

// ---------------------------------------------------------------------------
// 2. Convert / DetectScript
// ---------------------------------------------------------------------------

// Convert rewrites text into the target script.
func (s *Service) Convert(ctx context.Context, text string, to domain.Script) (string, error) {
	if !to.IsValid() {
		return "", domain.NewValidationError("to", "must be simplified or traditional")
	}
	if err := s.validateText("text", text); err != nil {
		return "", err
	}
	e, err := s.engine(ctx)
	if err != nil {
		return "", err
	}

	if s.conv == nil {
		if to == domain.ScriptSimplified {
			return e.ConvertToSimplified(text), nil
		}
		return e.ConvertToTraditional(text), nil
	}

	var out string
	if to == domain.ScriptSimplified {
		out, err = s.conv.ToSimplified(text)
	} else {
		out, err = s.conv.ToTraditional(text)
	}
	if err != nil {
		s.log.ErrorContext(ctx, "converter failed", slog.String("to", to.String()), slog.String("error", err.Error()))
		return "", fmt.Errorf("convert to %s: %w", to, err)
	}
	return out, nil
}

// DetectScript reports which character sets text is consistent with.
func (s *Service) DetectScript(ctx context.Context, text string) (ScriptInfo, error) {
	if err := s.validateText("text", text); err != nil {
		return ScriptInfo{}, err
	}
	e, err := s.engine(ctx)
	if err != nil {
		return ScriptInfo{}, err
	}
	return ScriptInfo{
		IsSimplified:  e.IsSimplified(text),
		IsTraditional: e.IsTraditional(text),
	}, nil
}

// ---------------------------------------------------------------------------
// 3. Segment / Annotate
// ---------------------------------------------------------------------------

// Segment splits text into dictionary words by greedy longest match.
func (s *Service) Segment(ctx context.Context, text string) ([]string, error) {
	if err := s.validateText("text", text); err != nil {
		return nil, err
	}
	e, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	return e.Segment(text), nil
}

// Annotate segments text and attaches pinyin and entries to each segment.
// Han segments missing from the dictionary get a character-by-character
// reading from go-pinyin.
func (s *Service) Annotate(ctx context.Context, text string) ([]Token, error) {
	if err := s.validateText("text", text); err != nil {
		return nil, err
	}
	e, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}

	segments := e.Segment(text)
	tokens := make([]Token, 0, len(segments))
	for _, seg := range segments {
		tok := Token{Text: seg}
		if entries := e.QueryByChinese(seg); len(entries) > 0 {
			tok.Known = true
			tok.Pinyin = entries[0].PinyinMarks
			tok.Entries, _ = s.truncate(entries)
		} else if hasHan(seg) {
			tok.Pinyin = strings.Join(gopinyin.LazyPinyin(seg, fallbackArgs()), " ")
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func fallbackArgs() gopinyin.Args {
	a := gopinyin.NewArgs()
	a.Style = gopinyin.Tone
	return a
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// 4. Query
// ---------------------------------------------------------------------------

// Query looks text up. QueryAuto routes by classification; the other modes
// force one index.
func (s *Service) Query(ctx context.Context, text string, by QueryMode) (QueryResult, error) {
	if !by.IsValid() {
		return QueryResult{}, domain.NewValidationError("by", "must be one of auto, chinese, pinyin, english")
	}
	if err := s.validateText("q", text); err != nil {
		return QueryResult{}, err
	}
	e, err := s.engine(ctx)
	if err != nil {
		return QueryResult{}, err
	}

	key := cacheKey(by, text)
	if s.queries != nil {
		if res, ok := s.queries.Get(key); ok {
			return res, nil
		}
	}

	res := s.route(e, text, by)
	s.log.DebugContext(ctx, "query",
		slog.String("by", string(by)),
		slog.String("classification", res.Classification.String()),
		slog.Int("total", res.Total),
	)

	if s.queries != nil {
		s.queries.Add(key, res)
	}
	return res, nil
}

func (s *Service) route(e *lexicon.Engine, text string, by QueryMode) QueryResult {
	var (
		cls     domain.Classification
		entries []domain.WordEntry
		found   = true
	)

	switch by {
	case QueryChinese:
		cls, entries = domain.ClassificationChinese, e.QueryByChinese(text)
	case QueryPinyin:
		cls, entries = domain.ClassificationPinyin, e.QueryByPinyin(text)
	case QueryEnglish:
		cls, entries = domain.ClassificationEnglish, e.QueryByEnglish(text)
	default:
		r := e.Query(text)
		cls, entries, found = r.Classification, r.Entries, r.Found
	}

	res := QueryResult{Classification: cls, Found: found, Total: len(entries)}
	if found {
		res.Entries, res.Truncated = s.truncate(entries)
	}
	return res
}

func (s *Service) truncate(entries []domain.WordEntry) ([]domain.WordEntry, bool) {
	if s.cfg.MaxResults > 0 && len(entries) > s.cfg.MaxResults {
		return entries[:s.cfg.MaxResults:s.cfg.MaxResults], true
	}
	return entries, false
}

// ---------------------------------------------------------------------------
// 5. Stats
// ---------------------------------------------------------------------------

// Stats returns index sizes of the loaded dictionary.
func (s *Service) Stats(ctx context.Context) (lexicon.Stats, error) {
	e, err := s.engine(ctx)
	if err != nil {
		return lexicon.Stats{}, err
	}
	return e.Stats(), nil
}
