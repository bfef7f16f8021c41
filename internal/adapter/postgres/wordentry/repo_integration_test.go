//go:build integration

package wordentry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/zhdict/internal/adapter/postgres"
	"github.com/heartmarshall/zhdict/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/zhdict/internal/adapter/postgres/wordentry"
	"github.com/heartmarshall/zhdict/internal/domain"
)

func sampleEntries() []domain.WordEntry {
	return []domain.WordEntry{
		{
			Traditional: "你好", Simplified: "你好", PinyinNumbers: "ni3 hao3", PinyinMarks: "nǐ hǎo",
			Hash: 101, WordID: 1, English: []string{"hello"}, ToneMarks: []uint8{3, 3},
		},
		{
			Traditional: "書", Simplified: "书", PinyinNumbers: "shu1", PinyinMarks: "shū",
			Hash: 102, WordID: 2, English: []string{"book"}, ToneMarks: []uint8{1},
			MeasureWords: []domain.MeasureWord{{Traditional: "本", Simplified: "本", PinyinNumbers: "ben3", PinyinMarks: "běn"}},
		},
	}
}

func TestRepo_BulkInsert_RoundTrip(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)
	repo := wordentry.New(pool)
	ctx := context.Background()

	inserted, err := repo.BulkInsert(ctx, sampleEntries())
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	again, err := repo.BulkInsert(ctx, sampleEntries())
	require.NoError(t, err)
	assert.Zero(t, again, "re-insert by hash must be a no-op")

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, sampleEntries()[1].MeasureWords, got[1].MeasureWords)
	assert.Equal(t, []uint8{3, 3}, got[0].ToneMarks)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	maxID, err := repo.MaxWordID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), maxID)
}

func TestRepo_UpdateHSK_InTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)
	testhelper.SeedWordEntries(t, pool, sampleEntries()...)
	repo := wordentry.New(pool)
	txm := postgres.NewTxManager(pool)
	ctx := context.Background()

	var updated int
	err := txm.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = repo.UpdateHSK(ctx, map[string]uint8{"你好": 1, "书": 1, "不存在": 3})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	e, err := repo.GetByHash(ctx, 102)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), e.HSK)
}

func TestRepo_RecordImport_Latest(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)
	repo := wordentry.New(pool)
	ctx := context.Background()

	_, err := repo.LatestImport(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	id, err := repo.RecordImport(ctx, domain.DatasetImport{Source: "cedict", Checksum: "x", Entries: 2, Inserted: 2})
	require.NoError(t, err)

	rec, err := repo.LatestImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, 2, rec.Inserted)
}
