package testhelper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/zhdict/internal/domain"
)

// Truncate empties the dictionary tables so a test starts from a known state.
func Truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), `TRUNCATE word_entries, dataset_imports`); err != nil {
		t.Fatalf("testhelper: truncate: %v", err)
	}
}

// SeedWordEntries inserts entries verbatim, bypassing the repository.
func SeedWordEntries(t *testing.T, pool *pgxpool.Pool, entries ...domain.WordEntry) {
	t.Helper()
	ctx := context.Background()

	for _, e := range entries {
		mw, err := json.Marshal(e.MeasureWords)
		if err != nil {
			t.Fatalf("testhelper: marshal measure words: %v", err)
		}
		tones := make([]int16, len(e.ToneMarks))
		for i, tone := range e.ToneMarks {
			tones[i] = int16(tone)
		}

		_, err = pool.Exec(ctx,
			`INSERT INTO word_entries (word_id, hash, traditional, simplified, pinyin_numbers, pinyin_marks, english, measure_words, tone_marks, hsk)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			int32(e.WordID), int64(e.Hash), e.Traditional, e.Simplified, e.PinyinNumbers, e.PinyinMarks,
			e.English, mw, tones, int16(e.HSK),
		)
		if err != nil {
			t.Fatalf("testhelper: SeedWordEntries %s: %v", e.Simplified, err)
		}
	}
}
