package domain

import (
	"time"

	"github.com/google/uuid"
)

// DatasetImport records one run of the seeder against the database.
type DatasetImport struct {
	ID         uuid.UUID
	Source     string
	Checksum   string
	Entries    int
	Inserted   int
	HSKUpdated int
	ImportedAt time.Time
}
