//go:build integration

package seeder

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/zhdict/internal/adapter/postgres"
	"github.com/heartmarshall/zhdict/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/zhdict/internal/adapter/postgres/wordentry"
	"github.com/heartmarshall/zhdict/internal/dataset"
	"github.com/heartmarshall/zhdict/internal/lexicon"
)

func TestIntegration_SeedEmbeddedThenServeFromPostgres(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := wordentry.New(pool)
	p := NewPipeline(logger, repo, postgres.NewTxManager(pool), Config{BatchSize: 50})

	require.NoError(t, p.Run(ctx, nil))
	require.False(t, p.HasErrors())

	bundled, err := dataset.Embedded{}.Load(ctx)
	require.NoError(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(bundled), n)
	assert.Equal(t, len(bundled), p.Results()[PhaseCedict].Inserted)

	imp, err := repo.LatestImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "embedded", imp.Source)
	assert.Equal(t, checksum(bundled), imp.Checksum)

	e, err := lexicon.Load(ctx, repo, lexicon.DefaultOptions())
	require.NoError(t, err)

	res := e.Query("你好")
	require.NotEmpty(t, res.Entries)
	assert.Equal(t, "nǐ hǎo", res.Entries[0].PinyinMarks)

	// A second run inserts nothing new.
	p2 := NewPipeline(logger, repo, postgres.NewTxManager(pool), Config{BatchSize: 50})
	require.NoError(t, p2.Run(ctx, []string{PhaseCedict}))
	assert.Zero(t, p2.Results()[PhaseCedict].Inserted)

	n2, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, n2)
}
