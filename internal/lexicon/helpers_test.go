package lexicon

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/zhdict/internal/dataset"
	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/seeder/cedict"
)

var (
	bundledOnce   sync.Once
	bundledEngine *Engine
	bundledErr    error
)

// bundled returns an engine over the embedded dataset, built once per test binary.
func bundled(t *testing.T) *Engine {
	t.Helper()
	bundledOnce.Do(func() {
		bundledEngine, bundledErr = Load(context.Background(), dataset.Embedded{}, DefaultOptions())
	})
	require.NoError(t, bundledErr)
	return bundledEngine
}

// entry builds a valid WordEntry for fixtures.
func entry(id uint32, trad, simp, numbers string, hsk uint8, english ...string) domain.WordEntry {
	return domain.WordEntry{
		Traditional:   trad,
		Simplified:    simp,
		PinyinMarks:   numbers,
		PinyinNumbers: numbers,
		Hash:          cedict.Hash(trad, simp, numbers),
		HSK:           hsk,
		WordID:        id,
		English:       english,
	}
}

func simplifiedOf(entries []domain.WordEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Simplified
	}
	return out
}
