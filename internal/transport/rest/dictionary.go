package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/lexicon"
	"github.com/heartmarshall/zhdict/internal/service/dictionary"
)

// dictionaryService defines the lookups exposed over HTTP.
type dictionaryService interface {
	Classify(ctx context.Context, text string) (domain.Classification, error)
	Convert(ctx context.Context, text string, to domain.Script) (string, error)
	DetectScript(ctx context.Context, text string) (dictionary.ScriptInfo, error)
	Segment(ctx context.Context, text string) ([]string, error)
	Annotate(ctx context.Context, text string) ([]dictionary.Token, error)
	Query(ctx context.Context, text string, by dictionary.QueryMode) (dictionary.QueryResult, error)
	Stats(ctx context.Context) (lexicon.Stats, error)
}

// DictionaryHandler serves the read-only lookup API under /api/v1.
type DictionaryHandler struct {
	svc dictionaryService
	log *slog.Logger
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(svc dictionaryService, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{svc: svc, log: logger.With("handler", "dictionary")}
}

type classifyResponse struct {
	Text           string `json:"text"`
	Classification string `json:"classification"`
}

type convertResponse struct {
	Text   string `json:"text"`
	To     string `json:"to"`
	Result string `json:"result"`
}

type scriptResponse struct {
	Text          string `json:"text"`
	IsSimplified  bool   `json:"is_simplified"`
	IsTraditional bool   `json:"is_traditional"`
}

type segmentResponse struct {
	Text     string   `json:"text"`
	Segments []string `json:"segments"`
}

type tokenResponse struct {
	Text    string             `json:"text"`
	Pinyin  string             `json:"pinyin"`
	Known   bool               `json:"known"`
	Entries []domain.WordEntry `json:"entries"`
}

type annotateResponse struct {
	Text   string          `json:"text"`
	Tokens []tokenResponse `json:"tokens"`
}

// queryResponse keeps Entries without omitempty: null means the text could
// not be classified, [] means nothing matched.
type queryResponse struct {
	Query          string             `json:"query"`
	By             string             `json:"by"`
	Classification string             `json:"classification"`
	Total          int                `json:"total"`
	Truncated      bool               `json:"truncated"`
	Entries        []domain.WordEntry `json:"entries"`
}

type statsResponse struct {
	Entries         int `json:"entries"`
	Skipped         int `json:"skipped"`
	SimplifiedKeys  int `json:"simplifiedKeys"`
	TraditionalKeys int `json:"traditionalKeys"`
	PinyinKeys      int `json:"pinyinKeys"`
	GlossKeys       int `json:"glossKeys"`
	ToTraditional   int `json:"toTraditional"`
	ToSimplified    int `json:"toSimplified"`
	MaxKeyRunes     int `json:"maxKeyRunes"`
}

// Classify handles GET /api/v1/classify?text=.
func (h *DictionaryHandler) Classify(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	c, err := h.svc.Classify(r.Context(), text)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, classifyResponse{Text: text, Classification: c.String()})
}

// Convert handles GET /api/v1/convert?text=&to=.
func (h *DictionaryHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("text")
	to, err := dictionary.ParseScript(q.Get("to"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out, err := h.svc.Convert(r.Context(), text, to)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{Text: text, To: to.String(), Result: out})
}

// Script handles GET /api/v1/script?text=.
func (h *DictionaryHandler) Script(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	info, err := h.svc.DetectScript(r.Context(), text)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scriptResponse{
		Text:          text,
		IsSimplified:  info.IsSimplified,
		IsTraditional: info.IsTraditional,
	})
}

// Segment handles GET /api/v1/segment?text=.
func (h *DictionaryHandler) Segment(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	segs, err := h.svc.Segment(r.Context(), text)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if segs == nil {
		segs = []string{}
	}
	writeJSON(w, http.StatusOK, segmentResponse{Text: text, Segments: segs})
}

// Annotate handles GET /api/v1/annotate?text=.
func (h *DictionaryHandler) Annotate(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	tokens, err := h.svc.Annotate(r.Context(), text)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := annotateResponse{Text: text, Tokens: make([]tokenResponse, 0, len(tokens))}
	for _, t := range tokens {
		entries := t.Entries
		if entries == nil {
			entries = []domain.WordEntry{}
		}
		resp.Tokens = append(resp.Tokens, tokenResponse{
			Text:    t.Text,
			Pinyin:  t.Pinyin,
			Known:   t.Known,
			Entries: entries,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Query handles GET /api/v1/query?q=&by=.
func (h *DictionaryHandler) Query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("q")
	by, err := dictionary.ParseQueryMode(q.Get("by"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	res, err := h.svc.Query(r.Context(), text, by)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{
		Query:          text,
		By:             string(by),
		Classification: res.Classification.String(),
		Total:          res.Total,
		Truncated:      res.Truncated,
		Entries:        res.Entries,
	})
}

// Stats handles GET /api/v1/stats.
func (h *DictionaryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Entries:         s.Entries,
		Skipped:         s.Skipped,
		SimplifiedKeys:  s.SimplifiedKeys,
		TraditionalKeys: s.TraditionalKeys,
		PinyinKeys:      s.PinyinKeys,
		GlossKeys:       s.GlossKeys,
		ToTraditional:   s.ToTraditional,
		ToSimplified:    s.ToSimplified,
		MaxKeyRunes:     s.MaxKeyRunes,
	})
}
