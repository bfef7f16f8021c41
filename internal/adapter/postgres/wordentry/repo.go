// Package wordentry persists dictionary entries in PostgreSQL. The table is
// written by the seeder and read once at startup to build the in-memory
// lexicon; queries never hit the database.
package wordentry

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/zhdict/internal/adapter/postgres"
	"github.com/heartmarshall/zhdict/internal/domain"
)

const table = "word_entries"

var columns = []string{
	"word_id", "hash", "traditional", "simplified", "pinyin_numbers",
	"pinyin_marks", "english", "measure_words", "tone_marks", "hsk",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides word entry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word entry repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// row mirrors one word_entries record.
type row struct {
	WordID        int32    `db:"word_id"`
	Hash          int64    `db:"hash"`
	Traditional   string   `db:"traditional"`
	Simplified    string   `db:"simplified"`
	PinyinNumbers string   `db:"pinyin_numbers"`
	PinyinMarks   string   `db:"pinyin_marks"`
	English       []string `db:"english"`
	MeasureWords  []byte   `db:"measure_words"`
	ToneMarks     []int16  `db:"tone_marks"`
	HSK           int16    `db:"hsk"`
}

// importRow mirrors one dataset_imports record.
type importRow struct {
	ID         uuid.UUID `db:"id"`
	Source     string    `db:"source"`
	Checksum   string    `db:"checksum"`
	Entries    int32     `db:"entries"`
	Inserted   int32     `db:"inserted"`
	HSKUpdated int32     `db:"hsk_updated"`
	ImportedAt time.Time `db:"imported_at"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Name identifies the repository as a lexicon source in logs.
func (r *Repo) Name() string { return "postgres" }

// Load returns every stored entry ordered by word_id. An empty table is
// reported as domain.ErrInvalidDataset so the engine never starts empty.
func (r *Repo) Load(ctx context.Context) ([]domain.WordEntry, error) {
	entries, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s is empty: %w", table, domain.ErrInvalidDataset)
	}
	return entries, nil
}

// ListAll returns every stored entry ordered by word_id.
func (r *Repo) ListAll(ctx context.Context) ([]domain.WordEntry, error) {
	query, args, err := psql.Select(columns...).From(table).OrderBy("word_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "word_entry", "list")
	}

	return toDomainEntries(rows)
}

// GetByHash returns the entry with the given identity hash.
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetByHash(ctx context.Context, hash uint64) (*domain.WordEntry, error) {
	query, args, err := psql.Select(columns...).From(table).
		Where(sq.Eq{"hash": int64(hash)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "word_entry", strconv.FormatUint(hash, 10))
	}

	e, err := toDomainEntry(rw)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindBySimplified returns the entries whose simplified headword equals word.
func (r *Repo) FindBySimplified(ctx context.Context, word string) ([]domain.WordEntry, error) {
	query, args, err := psql.Select(columns...).From(table).
		Where(sq.Eq{"simplified": word}).
		OrderBy("word_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "word_entry", word)
	}

	return toDomainEntries(rows)
}

// Count returns the number of stored entries.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "word_entry", "count")
	}
	return int(n), nil
}

// MaxWordID returns the highest stored word_id, or 0 for an empty table.
func (r *Repo) MaxWordID(ctx context.Context) (uint32, error) {
	query, args, err := psql.Select("coalesce(max(word_id), 0)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int32
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "word_entry", "max_word_id")
	}
	return uint32(n), nil
}

// LatestImport returns the most recent seeder run.
// Returns domain.ErrNotFound if the database was never seeded.
func (r *Repo) LatestImport(ctx context.Context) (*domain.DatasetImport, error) {
	query, args, err := psql.
		Select("id", "source", "checksum", "entries", "inserted", "hsk_updated", "imported_at").
		From("dataset_imports").
		OrderBy("imported_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rw importRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "dataset_import", "latest")
	}
	return &domain.DatasetImport{
		ID:         rw.ID,
		Source:     rw.Source,
		Checksum:   rw.Checksum,
		Entries:    int(rw.Entries),
		Inserted:   int(rw.Inserted),
		HSKUpdated: int(rw.HSKUpdated),
		ImportedAt: rw.ImportedAt,
	}, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// BulkInsert inserts entries using pgx.Batch. Entries whose hash is already
// stored are skipped via ON CONFLICT DO NOTHING.
// Returns the number of actually inserted rows.
func (r *Repo) BulkInsert(ctx context.Context, entries []domain.WordEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		mw, err := json.Marshal(measureWordsOrEmpty(e.MeasureWords))
		if err != nil {
			return 0, fmt.Errorf("marshal measure words for %s: %w", e.Simplified, err)
		}

		batch.Queue(
			`INSERT INTO word_entries (word_id, hash, traditional, simplified, pinyin_numbers, pinyin_marks, english, measure_words, tone_marks, hsk)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (hash) DO NOTHING`,
			int32(e.WordID), int64(e.Hash), e.Traditional, e.Simplified,
			e.PinyinNumbers, e.PinyinMarks, e.English, mw, toInt16s(e.ToneMarks), int16(e.HSK),
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// UpdateHSK sets the HSK level of every entry whose simplified headword is
// in levels. Rows that already carry the level are left untouched.
// Returns the number of updated rows.
func (r *Repo) UpdateHSK(ctx context.Context, levels map[string]uint8) (int, error) {
	if len(levels) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for word, level := range levels {
		batch.Queue(
			`UPDATE word_entries SET hsk = $2 WHERE simplified = $1 AND hsk <> $2`,
			word, int16(level),
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// RecordImport stores a seeder run and returns its id.
func (r *Repo) RecordImport(ctx context.Context, rec domain.DatasetImport) (uuid.UUID, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.ImportedAt.IsZero() {
		rec.ImportedAt = time.Now().UTC()
	}

	query, args, err := psql.Insert("dataset_imports").
		Columns("id", "source", "checksum", "entries", "inserted", "hsk_updated", "imported_at").
		Values(rec.ID, rec.Source, rec.Checksum, int32(rec.Entries), int32(rec.Inserted), int32(rec.HSKUpdated), rec.ImportedAt).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return uuid.Nil, postgres.MapError(err, "dataset_import", rec.ID.String())
	}
	return rec.ID, nil
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("batch exec: %w", postgres.MapError(err, "word_entry", "batch"))
		}
		affected += int(tag.RowsAffected())
	}

	return affected, nil
}

// ---------------------------------------------------------------------------
// Domain converters
// ---------------------------------------------------------------------------

func toDomainEntries(rows []row) ([]domain.WordEntry, error) {
	entries := make([]domain.WordEntry, 0, len(rows))
	for _, rw := range rows {
		e, err := toDomainEntry(rw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func toDomainEntry(rw row) (domain.WordEntry, error) {
	e := domain.WordEntry{
		Traditional:   rw.Traditional,
		Simplified:    rw.Simplified,
		PinyinMarks:   rw.PinyinMarks,
		PinyinNumbers: rw.PinyinNumbers,
		Hash:          uint64(rw.Hash),
		HSK:           uint8(rw.HSK),
		WordID:        uint32(rw.WordID),
		English:       rw.English,
		ToneMarks:     make([]uint8, len(rw.ToneMarks)),
	}
	for i, t := range rw.ToneMarks {
		e.ToneMarks[i] = uint8(t)
	}
	if len(rw.MeasureWords) > 0 {
		if err := json.Unmarshal(rw.MeasureWords, &e.MeasureWords); err != nil {
			return domain.WordEntry{}, fmt.Errorf("word_entry %d: decode measure_words: %w", rw.WordID, err)
		}
	}
	if len(e.MeasureWords) == 0 {
		e.MeasureWords = nil
	}
	return e, nil
}

func toInt16s(tones []uint8) []int16 {
	out := make([]int16, len(tones))
	for i, t := range tones {
		out[i] = int16(t)
	}
	return out
}

func measureWordsOrEmpty(mw []domain.MeasureWord) []domain.MeasureWord {
	if mw == nil {
		return []domain.MeasureWord{}
	}
	return mw
}
