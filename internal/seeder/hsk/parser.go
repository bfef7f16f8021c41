// Package hsk parses HSK vocabulary lists into simplified-form levels.
// Pure function: reader in, level map out. No database dependencies.
package hsk

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/zhdict/internal/domain"
)

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines   int
	ParsedLines  int
	InvalidLines int
}

// ParseFile opens an HSK list file and parses it.
func ParseFile(filePath string) (map[string]uint8, Stats, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads "<simplified>\t<level>" lines. Blank lines and lines starting
// with '#' are ignored. A word listed under several levels keeps the lowest.
func Parse(r io.Reader) (map[string]uint8, Stats, error) {
	var stats Stats
	levels := make(map[string]uint8)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.TotalLines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, level, ok := parseLine(line)
		if !ok {
			stats.InvalidLines++
			continue
		}
		stats.ParsedLines++

		if prev, exists := levels[word]; !exists || level < prev {
			levels[word] = level
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, Stats{}, fmt.Errorf("scanner error: %w", err)
	}
	return levels, stats, nil
}

func parseLine(line string) (string, uint8, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > int(domain.MaxHSKLevel) {
		return "", 0, false
	}
	return fields[0], uint8(n), true
}
