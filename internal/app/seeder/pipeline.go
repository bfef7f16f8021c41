package seeder

import (
	"cmp"
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/heartmarshall/zhdict/internal/dataset"
	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/seeder/hsk"
)

// Phase names in canonical execution order.
const (
	PhaseCedict = "cedict"
	PhaseHSK    = "hsk"
)

var allPhases = []string{PhaseCedict, PhaseHSK}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Updated  int
	Skipped  int
	Duration time.Duration
	Err      error
}

// Pipeline orchestrates the seeding process.
type Pipeline struct {
	log     *slog.Logger
	repo    WordEntryBulkRepo
	tx      TxRunner
	cfg     Config
	results map[string]PhaseResult

	source   string
	entries  int
	checksum string
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo WordEntryBulkRepo, tx TxRunner, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		repo:    repo,
		tx:      tx,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase failed.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases
// run. Unknown phase names are rejected.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun, err := selectPhases(phases)
	if err != nil {
		return err
	}

	for _, phase := range toRun {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseCedict:
			result = p.runCedict(ctx)
		case PhaseHSK:
			result = p.runHSK(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("inserted", result.Inserted),
				slog.Int("updated", result.Updated),
				slog.Int("skipped", result.Skipped),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	if !p.cfg.DryRun && !p.HasErrors() {
		id, err := p.repo.RecordImport(ctx, domain.DatasetImport{
			Source:     p.sourceName(),
			Checksum:   p.checksum,
			Entries:    p.entries,
			Inserted:   p.results[PhaseCedict].Inserted,
			HSKUpdated: p.results[PhaseHSK].Updated,
		})
		if err != nil {
			return fmt.Errorf("record import: %w", err)
		}
		p.log.Info("import recorded", slog.String("import_id", id.String()))
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func selectPhases(phases []string) ([]string, error) {
	if len(phases) == 0 {
		return allPhases, nil
	}
	filter := make(map[string]bool, len(phases))
	for _, ph := range phases {
		if !slices.Contains(allPhases, ph) {
			return nil, fmt.Errorf("unknown phase %q (known: %v)", ph, allPhases)
		}
		filter[ph] = true
	}
	var filtered []string
	for _, ph := range allPhases {
		if filter[ph] {
			filtered = append(filtered, ph)
		}
	}
	return filtered, nil
}

func (p *Pipeline) sourceName() string {
	if p.source != "" {
		return p.source
	}
	if p.cfg.CedictPath != "" {
		return "file:" + p.cfg.CedictPath
	}
	return "embedded"
}

// runCedict parses the dictionary and inserts it in one transaction. New
// entries get word ids after the highest stored one so a re-seed with a
// newer file keeps existing ids stable.
func (p *Pipeline) runCedict(ctx context.Context) PhaseResult {
	var (
		entries []domain.WordEntry
		err     error
	)
	if p.cfg.CedictPath != "" {
		src := dataset.File{DictPath: p.cfg.CedictPath, HSKPath: p.cfg.HSKPath}
		p.source = src.Name()
		entries, err = src.Load(ctx)
	} else {
		src := dataset.Embedded{}
		p.source = src.Name()
		entries, err = src.Load(ctx)
	}
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("load dictionary: %w", err)}
	}

	p.entries = len(entries)
	p.checksum = checksum(entries)
	p.log.Info("dictionary parsed",
		slog.String("source", p.source),
		slog.Int("entries", len(entries)),
		slog.String("checksum", p.checksum),
	)

	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(entries)}
	}

	base, err := p.repo.MaxWordID(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("max word id: %w", err)}
	}
	if base > 0 {
		for i := range entries {
			entries[i].WordID += base
		}
	}

	var inserted int
	err = p.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		inserted, err = batchProcess(entries, p.cfg.BatchSize, func(batch []domain.WordEntry) (int, error) {
			return p.repo.BulkInsert(ctx, batch)
		})
		return err
	})
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("insert entries: %w", err)}
	}

	return PhaseResult{Inserted: inserted, Skipped: len(entries) - inserted}
}

// runHSK applies HSK levels to already stored entries.
func (p *Pipeline) runHSK(ctx context.Context) PhaseResult {
	var (
		levels map[string]uint8
		err    error
	)
	if p.cfg.HSKPath != "" {
		var stats hsk.Stats
		levels, stats, err = hsk.ParseFile(p.cfg.HSKPath)
		if err == nil && stats.InvalidLines > 0 {
			p.log.Warn("hsk list has invalid lines", slog.Int("invalid", stats.InvalidLines))
		}
	} else {
		levels, err = dataset.HSKLevels()
	}
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("load hsk list: %w", err)}
	}

	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(levels)}
	}

	words := slices.Sorted(maps.Keys(levels))
	updated, err := batchProcess(words, p.cfg.BatchSize, func(batch []string) (int, error) {
		chunk := make(map[string]uint8, len(batch))
		for _, w := range batch {
			chunk[w] = levels[w]
		}
		return p.repo.UpdateHSK(ctx, chunk)
	})
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("update hsk: %w", err)}
	}

	return PhaseResult{Updated: updated}
}

// checksum fingerprints a dataset by its entry hashes in word id order.
func checksum(entries []domain.WordEntry) string {
	sorted := slices.SortedFunc(slices.Values(entries), func(a, b domain.WordEntry) int {
		return cmp.Compare(a.WordID, b.WordID)
	})

	d := xxhash.New()
	var buf [8]byte
	for _, e := range sorted {
		binary.LittleEndian.PutUint64(buf[:], e.Hash)
		_, _ = d.Write(buf[:])
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
