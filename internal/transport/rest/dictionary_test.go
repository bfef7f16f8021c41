package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/zhdict/internal/config"
	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/lexicon"
	"github.com/heartmarshall/zhdict/internal/seeder/cedict"
	"github.com/heartmarshall/zhdict/internal/service/dictionary"
)

func fixtureEntries() []domain.WordEntry {
	mk := func(id uint32, trad, simp, numbers, marks string, english ...string) domain.WordEntry {
		return domain.WordEntry{
			Traditional:   trad,
			Simplified:    simp,
			PinyinNumbers: numbers,
			PinyinMarks:   marks,
			Hash:          cedict.Hash(trad, simp, numbers),
			HSK:           1,
			WordID:        id,
			English:       english,
		}
	}
	return []domain.WordEntry{
		mk(1, "你好", "你好", "ni3 hao3", "nǐ hǎo", "hello", "hi"),
		mk(2, "中國", "中国", "Zhong1 guo2", "Zhōngguó", "China"),
		mk(3, "天氣", "天气", "tian1 qi4", "tiānqì", "weather"),
	}
}

func fixtureEngine(t *testing.T) *lexicon.Engine {
	t.Helper()
	e, err := lexicon.New(fixtureEntries(), lexicon.DefaultOptions())
	require.NoError(t, err)
	return e
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter wires the real service over a fixture engine.
func newTestRouter(t *testing.T, gate *engineStateMock) http.Handler {
	t.Helper()
	svc, err := dictionary.NewService(discardLogger(), gate, nil, config.DictionaryConfig{
		CacheSize:     8,
		MaxInputRunes: 16,
		MaxResults:    10,
	})
	require.NoError(t, err)
	return NewRouter(
		NewDictionaryHandler(svc, discardLogger()),
		NewHealthHandler(gate, nil, "test"),
	)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestDictionaryHandler_Classify(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	rec := get(t, h, "/api/v1/classify?text=%E4%BD%A0%E5%A5%BD")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeMap(t, rec)
	assert.Equal(t, "你好", body["text"])
	assert.Equal(t, "ZH", body["classification"])
}

func TestDictionaryHandler_Convert(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	rec := get(t, h, "/api/v1/convert?text=%E4%B8%AD%E5%9B%BD&to=traditional")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "中國", decodeMap(t, rec)["result"])
}

func TestDictionaryHandler_Convert_BadScript(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	rec := get(t, h, "/api/v1/convert?text=abc&to=cantonese")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "VALIDATION", resp.Code)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "to", resp.Fields[0].Field)
}

func TestDictionaryHandler_Script(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	rec := get(t, h, "/api/v1/script?text=%E5%A4%A9%E6%B0%A3")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, false, body["is_simplified"])
	assert.Equal(t, true, body["is_traditional"])
}

func TestDictionaryHandler_Segment(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	rec := get(t, h, "/api/v1/segment?text=%E4%BD%A0%E5%A5%BD%E4%B8%AD%E5%9B%BD")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"你好", "中国"}, decodeMap(t, rec)["segments"])
}

func TestDictionaryHandler_Annotate(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	rec := get(t, h, "/api/v1/annotate?text=%E4%BD%A0%E5%A5%BD%E5%90%97")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp annotateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Tokens, 2)
	assert.True(t, resp.Tokens[0].Known)
	assert.Equal(t, "nǐ hǎo", resp.Tokens[0].Pinyin)
	assert.False(t, resp.Tokens[1].Known)
	assert.Equal(t, "ma", resp.Tokens[1].Pinyin)
	assert.NotNil(t, resp.Tokens[1].Entries)
}

func TestDictionaryHandler_Query(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	rec := get(t, h, "/api/v1/query?q=weather")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeMap(t, rec)
	assert.Equal(t, "EN", body["classification"])
	assert.Equal(t, "auto", body["by"])
	entries, ok := body["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)

	first := entries[0].(map[string]any)
	assert.Equal(t, "天气", first["simplified"])
	assert.Equal(t, "tiānqì", first["pinyinMarks"])
	assert.Contains(t, first, "wordId")
	assert.Contains(t, first, "hash")
}

func TestDictionaryHandler_Query_NullVersusEmpty(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	rec := get(t, h, "/api/v1/query?q=")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, "UN", body["classification"])
	assert.Nil(t, body["entries"])
	assert.Contains(t, body, "entries")

	rec = get(t, h, "/api/v1/query?q=xyzzy+plugh&by=english")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeMap(t, rec)
	assert.Equal(t, []any{}, body["entries"])
}

func TestDictionaryHandler_Query_BadMode(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	rec := get(t, h, "/api/v1/query?q=hello&by=fuzzy")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDictionaryHandler_InputTooLong(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	rec := get(t, h, "/api/v1/classify?text=aaaaaaaaaaaaaaaaaaaa")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDictionaryHandler_NotReady(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, &engineStateMock{state: lexicon.StateInitializing})

	for _, target := range []string{
		"/api/v1/classify?text=hi",
		"/api/v1/query?q=hi",
		"/api/v1/stats",
	} {
		rec := get(t, h, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"), target)
	}
}

func TestDictionaryHandler_Stats(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	rec := get(t, h, "/api/v1/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, len(fixtureEntries()), decodeMap(t, rec)["entries"])
}

func TestDictionaryHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, readyGate(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/query?q=hi", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type failingService struct {
	dictionaryService
}

func (failingService) Stats(context.Context) (lexicon.Stats, error) {
	return lexicon.Stats{}, errors.New("boom")
}

func TestDictionaryHandler_InternalError(t *testing.T) {
	t.Parallel()

	h := NewDictionaryHandler(failingService{}, discardLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "INTERNAL", resp.Code)
	assert.NotContains(t, resp.Error, "boom")
}
