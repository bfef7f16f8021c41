// Package seeder loads CC-CEDICT and HSK data into PostgreSQL.
package seeder

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/zhdict/internal/domain"
)

// WordEntryBulkRepo defines the batch repository contract consumed by the seeder pipeline.
// All methods use only domain types; no adapter imports.
// Implemented by wordentry.Repo.
type WordEntryBulkRepo interface {
	// BulkInsert skips entries whose hash is already stored.
	BulkInsert(ctx context.Context, entries []domain.WordEntry) (int, error)
	UpdateHSK(ctx context.Context, levels map[string]uint8) (int, error)
	MaxWordID(ctx context.Context) (uint32, error)
	RecordImport(ctx context.Context, rec domain.DatasetImport) (uuid.UUID, error)
}

// TxRunner runs fn inside one database transaction.
// Implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
