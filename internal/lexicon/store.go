package lexicon

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/pinyin"
)

// Store is the immutable collection of entries and its lookup indices.
// Every index bucket holds positions into entries, already ranked.
type Store struct {
	entries []domain.WordEntry // ordered by WordID

	bySimplified  map[string][]int
	byTraditional map[string][]int
	byPinyin      map[string][]int
	byGloss       map[string][]glossHit
	byToken       map[string][]glossHit

	maxKeyRunes int
	conv        *conversionTable
	skipped     int
}

// glossHit points at one gloss of one entry.
type glossHit struct {
	entry int
	pos   int // gloss position, 0 is the primary sense
}

// Stats describes the size of a built store.
type Stats struct {
	Entries         int
	Skipped         int
	SimplifiedKeys  int
	TraditionalKeys int
	PinyinKeys      int
	GlossKeys       int
	TokenKeys       int
	ToTraditional   int
	ToSimplified    int
	SingleFormChars int
	MaxKeyRunes     int
}

// BuildStore indexes entries. Missing tone marks are derived from the
// numbered pinyin. Entries failing validation are skipped, as are entries
// repeating an already seen hash or word id. At least one valid entry
// is required.
func BuildStore(entries []domain.WordEntry) (*Store, error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b domain.WordEntry) int {
		return int64Cmp(int64(a.WordID), int64(b.WordID))
	})

	s := &Store{
		bySimplified:  make(map[string][]int),
		byTraditional: make(map[string][]int),
		byPinyin:      make(map[string][]int),
		byGloss:       make(map[string][]glossHit),
		byToken:       make(map[string][]glossHit),
	}

	seenHash := make(map[uint64]struct{}, len(sorted))
	seenID := make(map[uint32]struct{}, len(sorted))
	s.entries = make([]domain.WordEntry, 0, len(sorted))
	for _, e := range sorted {
		if len(e.ToneMarks) == 0 {
			e.ToneMarks = pinyin.Tones(e.PinyinNumbers)
		}
		if e.Validate() != nil {
			s.skipped++
			continue
		}
		if _, dup := seenHash[e.Hash]; dup {
			s.skipped++
			continue
		}
		if _, dup := seenID[e.WordID]; dup {
			s.skipped++
			continue
		}
		seenHash[e.Hash] = struct{}{}
		seenID[e.WordID] = struct{}{}
		s.entries = append(s.entries, e)
	}
	if len(s.entries) == 0 {
		return nil, fmt.Errorf("build store: no usable entries: %w", domain.ErrInvalidDataset)
	}

	for i := range s.entries {
		s.index(i)
	}
	s.rank()
	base, err := baseCharTable()
	if err != nil {
		return nil, fmt.Errorf("build store: character table: %w", err)
	}
	s.conv = buildConversionTable(s.entries, base)
	return s, nil
}

func (s *Store) index(i int) {
	e := &s.entries[i]

	s.bySimplified[e.Simplified] = append(s.bySimplified[e.Simplified], i)
	s.byTraditional[e.Traditional] = append(s.byTraditional[e.Traditional], i)
	s.maxKeyRunes = max(s.maxKeyRunes,
		utf8.RuneCountInString(e.Simplified),
		utf8.RuneCountInString(e.Traditional))

	for _, k := range pinyin.Keys(e.PinyinNumbers) {
		s.byPinyin[k] = append(s.byPinyin[k], i)
	}

	for pos, g := range e.English {
		for _, k := range glossKeys(g) {
			s.byGloss[k] = appendHit(s.byGloss[k], glossHit{entry: i, pos: pos})
		}
		for _, tok := range glossTokens(g) {
			s.byToken[tok] = appendHit(s.byToken[tok], glossHit{entry: i, pos: pos})
		}
	}
}

// appendHit keeps one hit per entry, the one with the lowest gloss position.
// Entries are indexed in order, so a repeat can only be the last element.
func appendHit(hits []glossHit, h glossHit) []glossHit {
	if n := len(hits); n > 0 && hits[n-1].entry == h.entry {
		return hits
	}
	return append(hits, h)
}

// rank orders every bucket: ranked HSK levels ascending, unranked last,
// then word id. English buckets also order by gloss position before word id.
func (s *Store) rank() {
	byEntry := func(a, b int) int { return s.compareEntries(a, b) }
	for _, idx := range []map[string][]int{s.bySimplified, s.byTraditional, s.byPinyin} {
		for _, bucket := range idx {
			slices.SortStableFunc(bucket, byEntry)
		}
	}
	for _, idx := range []map[string][]glossHit{s.byGloss, s.byToken} {
		for _, bucket := range idx {
			slices.SortStableFunc(bucket, s.compareHits)
		}
	}
}

func (s *Store) compareEntries(a, b int) int {
	ea, eb := &s.entries[a], &s.entries[b]
	if c := ea.HSKRank() - eb.HSKRank(); c != 0 {
		return c
	}
	return int64Cmp(int64(ea.WordID), int64(eb.WordID))
}

func (s *Store) compareHits(a, b glossHit) int {
	ea, eb := &s.entries[a.entry], &s.entries[b.entry]
	if c := ea.HSKRank() - eb.HSKRank(); c != 0 {
		return c
	}
	if c := a.pos - b.pos; c != 0 {
		return c
	}
	return int64Cmp(int64(ea.WordID), int64(eb.WordID))
}

func int64Cmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Len returns the number of indexed entries.
func (s *Store) Len() int { return len(s.entries) }

// Entries returns all entries in word id order. The slice is shared and
// must not be modified.
func (s *Store) Entries() []domain.WordEntry { return s.entries }

// HasKey reports whether text is a simplified or traditional headword.
func (s *Store) HasKey(text string) bool {
	if _, ok := s.bySimplified[text]; ok {
		return true
	}
	_, ok := s.byTraditional[text]
	return ok
}

// IsSingleForm reports whether r is written the same in both scripts.
func (s *Store) IsSingleForm(r rune) bool {
	_, ok := s.conv.singleForm[r]
	return ok
}

// Stats reports index sizes.
func (s *Store) Stats() Stats {
	return Stats{
		Entries:         len(s.entries),
		Skipped:         s.skipped,
		SimplifiedKeys:  len(s.bySimplified),
		TraditionalKeys: len(s.byTraditional),
		PinyinKeys:      len(s.byPinyin),
		GlossKeys:       len(s.byGloss),
		TokenKeys:       len(s.byToken),
		ToTraditional:   len(s.conv.toTraditional),
		ToSimplified:    len(s.conv.toSimplified),
		SingleFormChars: len(s.conv.singleForm),
		MaxKeyRunes:     s.maxKeyRunes,
	}
}

// glossKeys returns the exact-match keys of one gloss: the lowercased gloss,
// the gloss without parenthetical remarks, and both without a leading "to ".
func glossKeys(g string) []string {
	full := collapseSpaces(strings.ToLower(g))
	bare := collapseSpaces(stripParens(full))

	keys := make([]string, 0, 4)
	add := func(k string) {
		if k == "" || slices.Contains(keys, k) {
			return
		}
		keys = append(keys, k)
	}
	for _, k := range []string{full, bare} {
		add(k)
		add(strings.TrimPrefix(k, "to "))
	}
	return keys
}

// glossTokens splits a gloss into distinct lowercase words.
func glossTokens(g string) []string {
	fields := strings.FieldsFunc(strings.ToLower(g), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func stripParens(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
