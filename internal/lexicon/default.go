package lexicon

import (
	"context"

	"github.com/heartmarshall/zhdict/internal/domain"
)

var std Gate

// Initialize builds the process-wide engine from src. It must be called
// before any other package-level function; later calls are no-ops.
func Initialize(ctx context.Context, src Source, opts Options) error {
	_, err := std.Initialize(ctx, func(ctx context.Context) (*Engine, error) {
		return Load(ctx, src, opts)
	})
	return err
}

// Ready reports whether the process-wide engine has been built.
func Ready() bool { return std.State() == StateReady }

// DefaultGate exposes the process-wide gate for callers that must not panic
// while initialization is still running.
func DefaultGate() *Gate { return &std }

// Default returns the process-wide engine. It panics with ErrUninitialized
// if Initialize has not completed.
func Default() *Engine { return std.Engine() }

func Classify(text string) domain.Classification { return Default().Classify(text) }

func ConvertToSimplified(text string) string { return Default().ConvertToSimplified(text) }

func ConvertToTraditional(text string) string { return Default().ConvertToTraditional(text) }

func IsSimplified(text string) bool { return Default().IsSimplified(text) }

func IsTraditional(text string) bool { return Default().IsTraditional(text) }

func Segment(text string) []string { return Default().Segment(text) }

func QueryByEnglish(text string) []domain.WordEntry { return Default().QueryByEnglish(text) }

func QueryByPinyin(text string) []domain.WordEntry { return Default().QueryByPinyin(text) }

func QueryByChinese(text string) []domain.WordEntry { return Default().QueryByChinese(text) }

func Query(text string) Result { return Default().Query(text) }
