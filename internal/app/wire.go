package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/zhdict/internal/adapter/opencc"
	"github.com/heartmarshall/zhdict/internal/adapter/postgres"
	"github.com/heartmarshall/zhdict/internal/adapter/postgres/wordentry"
	"github.com/heartmarshall/zhdict/internal/config"
	"github.com/heartmarshall/zhdict/internal/dataset"
	"github.com/heartmarshall/zhdict/internal/lexicon"
	"github.com/heartmarshall/zhdict/internal/service/dictionary"
	"github.com/heartmarshall/zhdict/internal/transport/middleware"
	"github.com/heartmarshall/zhdict/internal/transport/rest"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type scriptConverter interface {
	ToSimplified(text string) (string, error)
	ToTraditional(text string) (string, error)
}

// namedSource is a lexicon.Source that can identify itself in logs.
type namedSource interface {
	lexicon.Source
	Name() string
}

// newSource selects where the dictionary is loaded from. db is required
// only for the postgres source. The auto source prefers a CC-CEDICT file on
// disk, with hsk.tsv next to it unless hsk_path says otherwise.
func newSource(cfg config.DictionaryConfig, db postgres.Querier) (namedSource, error) {
	switch cfg.Source {
	case config.SourceAuto:
		if !isFile(cfg.CedictPath) {
			return dataset.Embedded{}, nil
		}
		hskPath := cfg.HSKPath
		if hskPath == "" {
			if sibling := filepath.Join(filepath.Dir(cfg.CedictPath), "hsk.tsv"); isFile(sibling) {
				hskPath = sibling
			}
		}
		return dataset.File{DictPath: cfg.CedictPath, HSKPath: hskPath}, nil
	case config.SourceEmbedded, "":
		return dataset.Embedded{}, nil
	case config.SourceFile:
		return dataset.File{DictPath: cfg.CedictPath, HSKPath: cfg.HSKPath}, nil
	case config.SourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("dictionary source %q requires database.enabled", cfg.Source)
		}
		return wordentry.New(db), nil
	default:
		return nil, fmt.Errorf("unknown dictionary source %q", cfg.Source)
	}
}

func isFile(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// newConverter returns nil for the table converter: the service then uses
// the character tables of the loaded engine.
func newConverter(name string) (scriptConverter, error) {
	switch name {
	case config.ConverterTable, "":
		return nil, nil
	case config.ConverterOpenCC:
		c, err := opencc.New()
		if err != nil {
			return nil, fmt.Errorf("converter: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown converter %q", name)
	}
}

// initEngine builds the engine behind gate, bounded by timeout.
func initEngine(ctx context.Context, logger *slog.Logger, gate *lexicon.Gate, src namedSource, opts lexicon.Options, timeout time.Duration) error {
	log := logger.With(slog.String("component", "lexicon"), slog.String("source", src.Name()))

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Info("building dictionary")
	start := time.Now()

	e, err := gate.Initialize(ctx, func(ctx context.Context) (*lexicon.Engine, error) {
		return lexicon.Load(ctx, src, opts)
	})
	if err != nil {
		log.Error("dictionary build failed", slog.String("error", err.Error()), slog.Duration("duration", time.Since(start)))
		return fmt.Errorf("initialize dictionary from %s: %w", src.Name(), err)
	}

	st := e.Stats()
	log.Info("dictionary ready",
		slog.Int("entries", st.Entries),
		slog.Int("skipped", st.Skipped),
		slog.Int("simplified_keys", st.SimplifiedKeys),
		slog.Int("traditional_keys", st.TraditionalKeys),
		slog.Int("pinyin_keys", st.PinyinKeys),
		slog.Int("gloss_keys", st.GlossKeys),
		slog.Int("conversions", st.ToTraditional+st.ToSimplified),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// newHandler assembles the router and the middleware stack. ping may be nil.
func newHandler(
	logger *slog.Logger,
	cfg *config.Config,
	svc *dictionary.Service,
	gate *lexicon.Gate,
	ping pinger,
	limiter *middleware.RateLimiter,
) http.Handler {
	router := rest.NewRouter(
		rest.NewDictionaryHandler(svc, logger),
		rest.NewHealthHandler(gate, ping, BuildVersion()),
	)

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.RateLimit.RequestsPerMinute),
	)(router)
}
