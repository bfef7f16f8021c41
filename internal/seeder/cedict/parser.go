// Package cedict parses CC-CEDICT dictionary files into word entries.
// Pure function: reader in, domain structs out. No database dependencies.
package cedict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/pinyin"
)

const measureWordPrefix = "CL:"

// maxLineBytes bounds a single dictionary line; a few entries carry long gloss lists.
const maxLineBytes = 1 << 20

var (
	// errSkipLine signals that a line should be skipped (comment, empty).
	errSkipLine = errors.New("skip line")
	// errMalformed signals a line that does not follow the entry format.
	errMalformed = errors.New("malformed line")
)

// RawEntry is one parsed dictionary line.
type RawEntry struct {
	Traditional  string
	Simplified   string
	Pinyin       string // numbered, as written in the file: "ni3 hao3"
	Glosses      []string
	MeasureWords []domain.MeasureWord
}

// ParseResult holds the parsed dictionary lines in file order.
type ParseResult struct {
	Entries []RawEntry
	Stats   Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines     int
	CommentLines   int
	ParsedLines    int
	MalformedLines int
}

// ParseFile opens a CC-CEDICT file and parses it.
func ParseFile(filePath string) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads CC-CEDICT lines of the form
//
//	傳統 传统 [chuan2 tong3] /tradition/traditional/CL:個|个[ge4]/
//
// Comment and blank lines are skipped; malformed lines are counted and skipped.
func Parse(r io.Reader) (ParseResult, error) {
	var result ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		result.Stats.TotalLines++
		line := scanner.Text()

		entry, err := parseLine(line)
		if errors.Is(err, errSkipLine) {
			if strings.HasPrefix(line, "#") {
				result.Stats.CommentLines++
			}
			continue
		}
		if err != nil {
			result.Stats.MalformedLines++
			continue
		}

		result.Stats.ParsedLines++
		result.Entries = append(result.Entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("scanner error: %w", err)
	}
	return result, nil
}

// parseLine parses a single dictionary line.
func parseLine(line string) (RawEntry, error) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
	if line == "" || strings.HasPrefix(line, "#") {
		return RawEntry{}, errSkipLine
	}

	open := strings.IndexByte(line, '[')
	closeIdx := strings.IndexByte(line, ']')
	if open < 0 || closeIdx < open {
		return RawEntry{}, errMalformed
	}

	heads := strings.Fields(line[:open])
	if len(heads) != 2 {
		return RawEntry{}, errMalformed
	}
	pinyinNumbers := strings.Join(strings.Fields(line[open+1:closeIdx]), " ")
	if pinyinNumbers == "" {
		return RawEntry{}, errMalformed
	}

	rest := strings.TrimSpace(line[closeIdx+1:])
	if !strings.HasPrefix(rest, "/") {
		return RawEntry{}, errMalformed
	}

	entry := RawEntry{
		Traditional: heads[0],
		Simplified:  heads[1],
		Pinyin:      pinyinNumbers,
	}
	for _, g := range strings.Split(strings.Trim(rest, "/"), "/") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if strings.HasPrefix(g, measureWordPrefix) {
			entry.MeasureWords = append(entry.MeasureWords, parseMeasureWords(g)...)
			continue
		}
		entry.Glosses = append(entry.Glosses, g)
	}
	if len(entry.Glosses) == 0 {
		return RawEntry{}, errMalformed
	}
	return entry, nil
}

// parseMeasureWords parses "CL:個|个[ge4],隻|只[zhi1]". A classifier without a
// separate traditional form is written as "次[ci4]".
func parseMeasureWords(gloss string) []domain.MeasureWord {
	var out []domain.MeasureWord
	for _, item := range strings.Split(strings.TrimPrefix(gloss, measureWordPrefix), ",") {
		item = strings.TrimSpace(item)
		open := strings.IndexByte(item, '[')
		if open <= 0 || !strings.HasSuffix(item, "]") {
			continue
		}
		chars := item[:open]
		numbers := item[open+1 : len(item)-1]

		trad, simp := chars, chars
		if i := strings.IndexByte(chars, '|'); i >= 0 {
			trad, simp = chars[:i], chars[i+1:]
		}
		out = append(out, domain.MeasureWord{
			Traditional:   trad,
			Simplified:    simp,
			PinyinMarks:   pinyin.NumbersToMarks(numbers),
			PinyinNumbers: numbers,
		})
	}
	return out
}

// Hash returns the stable identity of a lexical item.
func Hash(traditional, simplified, pinyinNumbers string) uint64 {
	return xxhash.Sum64String(traditional + "|" + simplified + "|" + pinyinNumbers)
}

// ToDomainEntries converts parsed lines to domain entries. Word ids follow
// file order starting at 1. hskLevels maps a simplified form to its level;
// missing forms are unranked. Repeated lines (same hash) are kept once.
func (r ParseResult) ToDomainEntries(hskLevels map[string]uint8) []domain.WordEntry {
	out := make([]domain.WordEntry, 0, len(r.Entries))
	seen := make(map[uint64]struct{}, len(r.Entries))

	for _, raw := range r.Entries {
		hash := Hash(raw.Traditional, raw.Simplified, raw.Pinyin)
		if _, dup := seen[hash]; dup {
			continue
		}
		seen[hash] = struct{}{}

		out = append(out, domain.WordEntry{
			Traditional:   raw.Traditional,
			Simplified:    raw.Simplified,
			PinyinMarks:   pinyin.NumbersToMarks(raw.Pinyin),
			PinyinNumbers: raw.Pinyin,
			Hash:          hash,
			HSK:           hskLevels[raw.Simplified],
			WordID:        uint32(len(out) + 1),
			English:       raw.Glosses,
			MeasureWords:  raw.MeasureWords,
			ToneMarks:     pinyin.Tones(raw.Pinyin),
		})
	}
	return out
}
