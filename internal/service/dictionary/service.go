// Package dictionary is the lookup service in front of the lexicon engine:
// input limits, result caps, caching and optional OpenCC conversion.
package dictionary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartmarshall/zhdict/internal/config"
	"github.com/heartmarshall/zhdict/internal/lexicon"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type engineGate interface {
	Current() (*lexicon.Engine, error)
}

type scriptConverter interface {
	ToSimplified(text string) (string, error)
	ToTraditional(text string) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the lookup use cases.
type Service struct {
	log     *slog.Logger
	gate    engineGate
	conv    scriptConverter
	cfg     config.DictionaryConfig
	queries *lru.Cache[uint64, QueryResult]
}

// NewService creates a new lookup service. conv may be nil, in which case
// conversion uses the engine's own tables. A zero cfg.CacheSize disables
// the query cache.
func NewService(logger *slog.Logger, gate engineGate, conv scriptConverter, cfg config.DictionaryConfig) (*Service, error) {
	s := &Service{
		log:  logger.With("service", "dictionary"),
		gate: gate,
		conv: conv,
		cfg:  cfg,
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New[uint64, QueryResult](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("query cache: %w", err)
		}
		s.queries = cache
	}

	return s, nil
}

func (s *Service) engine(ctx context.Context) (*lexicon.Engine, error) {
	e, err := s.gate.Current()
	if err != nil {
		s.log.WarnContext(ctx, "lookup before dictionary is ready", slog.String("error", err.Error()))
		return nil, err
	}
	return e, nil
}

func cacheKey(by QueryMode, text string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(by))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(text)
	return d.Sum64()
}
