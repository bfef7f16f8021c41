// Package dataset provides the word-entry sources the dictionary engine is
// built from: the bundled CC-CEDICT subset and CC-CEDICT files on disk.
package dataset

import (
	"bytes"
	"context"
	"embed"
	"fmt"

	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/seeder/cedict"
	"github.com/heartmarshall/zhdict/internal/seeder/hsk"
)

const (
	embeddedDictPath = "data/cedict_ts.u8"
	embeddedHSKPath  = "data/hsk.tsv"
)

//go:embed data/cedict_ts.u8 data/hsk.tsv
var bundle embed.FS

// Embedded loads the dictionary bundled into the binary.
type Embedded struct{}

// Name identifies the source in logs.
func (Embedded) Name() string { return "embedded" }

// Load parses the bundled dictionary and HSK list.
func (Embedded) Load(ctx context.Context) ([]domain.WordEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	levels, err := HSKLevels()
	if err != nil {
		return nil, err
	}
	dict, err := bundle.ReadFile(embeddedDictPath)
	if err != nil {
		return nil, fmt.Errorf("read bundled dictionary: %w", err)
	}
	parsed, err := cedict.Parse(bytes.NewReader(dict))
	if err != nil {
		return nil, fmt.Errorf("parse bundled dictionary: %w", err)
	}

	entries := parsed.ToDomainEntries(levels)
	if len(entries) == 0 {
		return nil, fmt.Errorf("bundled dictionary: %w", domain.ErrInvalidDataset)
	}
	return entries, nil
}

// HSKLevels returns the bundled HSK list keyed by simplified headword.
func HSKLevels() (map[string]uint8, error) {
	list, err := bundle.ReadFile(embeddedHSKPath)
	if err != nil {
		return nil, fmt.Errorf("read bundled hsk list: %w", err)
	}
	levels, _, err := hsk.Parse(bytes.NewReader(list))
	if err != nil {
		return nil, fmt.Errorf("parse bundled hsk list: %w", err)
	}
	return levels, nil
}

// File loads a CC-CEDICT file from disk, with an optional HSK list.
type File struct {
	DictPath string
	HSKPath  string
}

// Name identifies the source in logs.
func (f File) Name() string { return "file:" + f.DictPath }

// Load parses the files named by f.
func (f File) Load(ctx context.Context) ([]domain.WordEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var levels map[string]uint8
	if f.HSKPath != "" {
		var err error
		levels, _, err = hsk.ParseFile(f.HSKPath)
		if err != nil {
			return nil, fmt.Errorf("parse hsk list %s: %w", f.HSKPath, err)
		}
	}

	parsed, err := cedict.ParseFile(f.DictPath)
	if err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", f.DictPath, err)
	}

	entries := parsed.ToDomainEntries(levels)
	if len(entries) == 0 {
		return nil, fmt.Errorf("dictionary %s: %w", f.DictPath, domain.ErrInvalidDataset)
	}
	return entries, nil
}
