//go:build integration

package testhelper

import (
	"context"
	"testing"

	"github.com/heartmarshall/zhdict/internal/domain"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)
	Truncate(t, pool)

	SeedWordEntries(t, pool, domain.WordEntry{
		Traditional:   "你好",
		Simplified:    "你好",
		PinyinNumbers: "ni3 hao3",
		PinyinMarks:   "nǐ hǎo",
		Hash:          1,
		WordID:        1,
		HSK:           1,
		English:       []string{"hello"},
		ToneMarks:     []uint8{3, 3},
	})

	var simplified string
	err := pool.QueryRow(context.Background(),
		`SELECT simplified FROM word_entries WHERE word_id = $1`, 1,
	).Scan(&simplified)
	if err != nil {
		t.Fatalf("expected entry in DB, got error: %v", err)
	}
	if simplified != "你好" {
		t.Fatalf("expected simplified %q, got %q", "你好", simplified)
	}
}
