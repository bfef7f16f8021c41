// Package lexicon is the Chinese dictionary engine: script classification,
// Simplified/Traditional conversion, greedy segmentation and the query router
// over an immutable in-memory store.
package lexicon

import (
	"context"
	"fmt"

	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/pinyin"
)

// Source produces the entries an engine is built from.
type Source interface {
	Load(ctx context.Context) ([]domain.WordEntry, error)
}

// Options tunes query policy.
type Options struct {
	// PinyinFallbackEnglish covers toneless queries that read both as pinyin
	// and as English ("he", "long"): the results of the other index are
	// appended after those of the classified one.
	PinyinFallbackEnglish bool
}

// DefaultOptions returns the policy used when none is given.
func DefaultOptions() Options {
	return Options{PinyinFallbackEnglish: true}
}

// Result is the outcome of Engine.Query. Found is false only when the text
// could not be classified; a classified query without matches has Found set
// and an empty Entries slice.
type Result struct {
	Classification domain.Classification
	Entries        []domain.WordEntry
	Found          bool
}

// Engine answers lookups over one immutable Store. It is safe for concurrent
// use. The zero value is not ready and panics on use.
type Engine struct {
	store *Store
	opts  Options
}

// New builds an engine over entries.
func New(entries []domain.WordEntry, opts Options) (*Engine, error) {
	store, err := BuildStore(entries)
	if err != nil {
		return nil, err
	}
	return &Engine{store: store, opts: opts}, nil
}

// Load builds an engine from src.
func Load(ctx context.Context, src Source, opts Options) (*Engine, error) {
	entries, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return New(entries, opts)
}

func (e *Engine) mustStore() *Store {
	if e == nil || e.store == nil {
		panic(fmt.Errorf("lexicon: %w: engine used before initialization", domain.ErrUninitialized))
	}
	return e.store
}

// Store exposes the underlying store.
func (e *Engine) Store() *Store { return e.mustStore() }

// Stats reports index sizes.
func (e *Engine) Stats() Stats { return e.mustStore().Stats() }

// Classify decides the script of text.
func (e *Engine) Classify(text string) domain.Classification {
	e.mustStore()
	return classify(text)
}

func (e *Engine) ConvertToSimplified(text string) string {
	return e.mustStore().ToSimplified(text)
}

func (e *Engine) ConvertToTraditional(text string) string {
	return e.mustStore().ToTraditional(text)
}

func (e *Engine) IsSimplified(text string) bool {
	return e.mustStore().IsSimplified(text)
}

func (e *Engine) IsTraditional(text string) bool {
	return e.mustStore().IsTraditional(text)
}

// Segment partitions text into dictionary words.
func (e *Engine) Segment(text string) []string {
	return e.mustStore().Segment(text)
}

func (e *Engine) QueryByEnglish(text string) []domain.WordEntry {
	return e.mustStore().QueryByEnglish(text)
}

func (e *Engine) QueryByPinyin(text string) []domain.WordEntry {
	return e.mustStore().QueryByPinyin(text)
}

func (e *Engine) QueryByChinese(text string) []domain.WordEntry {
	return e.mustStore().QueryByChinese(text)
}

// Query classifies text and dispatches it to the matching index.
func (e *Engine) Query(text string) Result {
	s := e.mustStore()
	text = domain.NormalizeText(text)
	class := classify(text)

	switch class {
	case domain.ClassificationChinese:
		return Result{Classification: class, Entries: s.QueryByChinese(text), Found: true}
	case domain.ClassificationPinyin:
		entries := s.QueryByPinyin(text)
		if e.opts.PinyinFallbackEnglish && isPlainLetters(text) {
			entries = mergeByHash(entries, s.QueryByEnglish(text))
		}
		return Result{Classification: class, Entries: entries, Found: true}
	case domain.ClassificationEnglish:
		entries := s.QueryByEnglish(text)
		if e.opts.PinyinFallbackEnglish && isPlainLetters(text) && pinyin.IsPinyin(text) {
			entries = mergeByHash(entries, s.QueryByPinyin(text))
		}
		return Result{Classification: class, Entries: entries, Found: true}
	case domain.ClassificationUnknown:
		return Result{Classification: class}
	}
	return Result{Classification: domain.ClassificationUnknown}
}
