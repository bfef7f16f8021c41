package lexicon

import (
	"slices"
	"strings"

	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/pinyin"
)

// QueryByChinese returns the entries whose simplified or traditional
// headword equals text.
func (s *Store) QueryByChinese(text string) []domain.WordEntry {
	key := strings.TrimSpace(text)
	simp, trad := s.bySimplified[key], s.byTraditional[key]
	if len(trad) == 0 {
		return s.collect(simp)
	}
	if len(simp) == 0 {
		return s.collect(trad)
	}

	merged := make([]int, 0, len(simp)+len(trad))
	merged = append(merged, simp...)
	for _, i := range trad {
		if !slices.Contains(simp, i) {
			merged = append(merged, i)
		}
	}
	slices.SortStableFunc(merged, s.compareEntries)
	return s.collect(merged)
}

// QueryByPinyin returns the entries whose reading matches text written with
// tone numbers, tone marks or no tones at all.
func (s *Store) QueryByPinyin(text string) []domain.WordEntry {
	return s.collect(s.byPinyin[pinyin.Normalize(text)])
}

// QueryByEnglish returns entries with a gloss equal to text first, followed by
// entries whose glosses contain every word of text as a substring match.
func (s *Store) QueryByEnglish(text string) []domain.WordEntry {
	q := collapseSpaces(strings.ToLower(text))
	if q == "" {
		return []domain.WordEntry{}
	}

	exact := s.byGloss[q]
	if len(exact) == 0 {
		exact = s.byGloss[strings.TrimPrefix(q, "to ")]
	}
	out := make([]int, 0, len(exact))
	taken := make(map[int]struct{}, len(exact))
	for _, h := range exact {
		if _, dup := taken[h.entry]; dup {
			continue
		}
		taken[h.entry] = struct{}{}
		out = append(out, h.entry)
	}

	for _, h := range s.partialGlossHits(q) {
		if _, dup := taken[h.entry]; dup {
			continue
		}
		taken[h.entry] = struct{}{}
		out = append(out, h.entry)
	}
	return s.collect(out)
}

// partialGlossHits intersects the token postings of q and keeps entries
// whose glosses contain q.
func (s *Store) partialGlossHits(q string) []glossHit {
	tokens := glossTokens(q)
	if len(tokens) == 0 {
		return nil
	}

	// Start from the rarest token.
	slices.SortFunc(tokens, func(a, b string) int { return len(s.byToken[a]) - len(s.byToken[b]) })
	candidates := s.byToken[tokens[0]]
	if len(candidates) == 0 {
		return nil
	}

	var hits []glossHit
	for _, h := range candidates {
		if pos, ok := s.containingGloss(h.entry, q, tokens); ok {
			hits = append(hits, glossHit{entry: h.entry, pos: pos})
		}
	}
	slices.SortStableFunc(hits, s.compareHits)
	return hits
}

// containingGloss returns the first gloss of entry that contains q, or for
// multi-word queries a gloss holding every query token.
func (s *Store) containingGloss(entry int, q string, tokens []string) (int, bool) {
	for pos, g := range s.entries[entry].English {
		lg := strings.ToLower(g)
		if strings.Contains(lg, q) {
			return pos, true
		}
		if len(tokens) > 1 && containsAllTokens(lg, tokens) {
			return pos, true
		}
	}
	return 0, false
}

func containsAllTokens(gloss string, tokens []string) bool {
	have := glossTokens(gloss)
	for _, t := range tokens {
		if !slices.Contains(have, t) {
			return false
		}
	}
	return true
}

// collect copies the indexed entries into a new slice. The result is never
// nil so that an empty match is distinguishable from no result.
func (s *Store) collect(idx []int) []domain.WordEntry {
	out := make([]domain.WordEntry, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.entries[i])
	}
	return out
}

// mergeByHash appends the entries of extra not already present in base.
func mergeByHash(base, extra []domain.WordEntry) []domain.WordEntry {
	if len(extra) == 0 {
		return base
	}
	seen := make(map[uint64]struct{}, len(base))
	for i := range base {
		seen[base[i].Hash] = struct{}{}
	}
	for _, e := range extra {
		if _, dup := seen[e.Hash]; dup {
			continue
		}
		seen[e.Hash] = struct{}{}
		base = append(base, e)
	}
	return base
}
