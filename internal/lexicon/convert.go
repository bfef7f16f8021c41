package lexicon

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/zhdict/internal/domain"
)

// conversionTable holds the character-level script maps.
//
// Invariants established by buildConversionTable:
//   - no value of toSimplified is itself a key of toSimplified
//   - for every s -> t in toTraditional, toSimplified maps t back to s
//
// Together they make both conversions idempotent and keep
// simplified -> traditional -> simplified stable.
type conversionTable struct {
	toTraditional map[rune]rune
	toSimplified  map[rune]rune
	singleForm    map[rune]struct{}
}

// votes counts how often a character is aligned with each counterpart,
// remembering first-seen order for ties.
type votes struct {
	counts map[rune]map[rune]int
	order  map[rune][]rune
}

func newVotes() *votes {
	return &votes{counts: make(map[rune]map[rune]int), order: make(map[rune][]rune)}
}

func (v *votes) add(from, to rune) {
	m, ok := v.counts[from]
	if !ok {
		m = make(map[rune]int)
		v.counts[from] = m
	}
	if _, seen := m[to]; !seen {
		v.order[from] = append(v.order[from], to)
	}
	m[to]++
}

// best returns the most frequent counterpart of from among those accepted
// by keep; ties go to the first seen.
func (v *votes) best(from rune, keep func(rune) bool) (rune, bool) {
	var (
		winner rune
		top    int
	)
	for _, to := range v.order[from] {
		if !keep(to) {
			continue
		}
		if n := v.counts[from][to]; n > top {
			winner, top = to, n
		}
	}
	return winner, top > 0
}

// buildConversionTable starts from the base character table and lets the
// dictionary decide every character it has alignments for: a headword
// character keeps the counterpart it is most often paired with, or stays as
// it is when that is its most frequent pairing.
func buildConversionTable(entries []domain.WordEntry, base *charTable) *conversionTable {
	t2s, s2t := newVotes(), newVotes()
	var tradOrder, simpOrder []rune

	for i := range entries {
		trad, simp := []rune(entries[i].Traditional), []rune(entries[i].Simplified)
		if len(trad) != len(simp) {
			continue
		}
		for j := range trad {
			if _, ok := t2s.counts[trad[j]]; !ok {
				tradOrder = append(tradOrder, trad[j])
			}
			if _, ok := s2t.counts[simp[j]]; !ok {
				simpOrder = append(simpOrder, simp[j])
			}
			t2s.add(trad[j], simp[j])
			s2t.add(simp[j], trad[j])
		}
	}

	ct := &conversionTable{
		toTraditional: make(map[rune]rune, len(base.toTraditional)),
		toSimplified:  make(map[rune]rune, len(base.toSimplified)),
		singleForm:    make(map[rune]struct{}),
	}

	for t, s := range base.toSimplified {
		ct.toSimplified[t] = s
	}
	all := func(rune) bool { return true }
	for _, t := range tradOrder {
		if s, ok := t2s.best(t, all); ok && s != t {
			ct.toSimplified[t] = s
		} else {
			delete(ct.toSimplified, t)
		}
	}
	ct.resolveChains()

	simplify := func(r rune) rune {
		if s, ok := ct.toSimplified[r]; ok {
			return s
		}
		return r
	}
	for _, s := range simpOrder {
		consistent := func(t rune) bool { return simplify(t) == s }
		t, ok := s2t.best(s, consistent)
		if !ok {
			t, ok = base.toTraditional[s]
			ok = ok && consistent(t)
		}
		if ok && t != s {
			ct.toTraditional[s] = t
		}
	}
	for s, t := range base.toTraditional {
		if _, decided := s2t.counts[s]; decided || simplify(t) != s {
			continue
		}
		ct.toTraditional[s] = t
	}

	for _, r := range append(tradOrder, simpOrder...) {
		_, a := ct.toSimplified[r]
		_, b := ct.toTraditional[r]
		if !a && !b {
			ct.singleForm[r] = struct{}{}
		}
	}
	return ct
}

// resolveChains replaces a -> b -> c with a -> c and drops mappings that
// take part in a cycle.
func (ct *conversionTable) resolveChains() {
	resolved := make(map[rune]rune, len(ct.toSimplified))
	for k := range ct.toSimplified {
		visited := map[rune]struct{}{k: {}}
		cur := ct.toSimplified[k]
		cycle := false
		for {
			next, ok := ct.toSimplified[cur]
			if !ok {
				break
			}
			if _, seen := visited[cur]; seen {
				cycle = true
				break
			}
			visited[cur] = struct{}{}
			cur = next
		}
		if !cycle && cur != k {
			resolved[k] = cur
		}
	}
	ct.toSimplified = resolved
}

func convert(text string, m map[rune]rune) string {
	idx := strings.IndexFunc(text, func(r rune) bool {
		_, ok := m[r]
		return ok
	})
	if idx < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	b.WriteString(text[:idx])
	for i := idx; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString(text[i : i+1])
			i++
			continue
		}
		if mapped, ok := m[r]; ok {
			b.WriteRune(mapped)
		} else {
			b.WriteString(text[i : i+size])
		}
		i += size
	}
	return b.String()
}

func containsKey(text string, m map[rune]rune) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		_, ok := m[r]
		return ok
	}) >= 0
}

// ToSimplified converts every traditional-only character of text.
func (s *Store) ToSimplified(text string) string {
	return convert(text, s.conv.toSimplified)
}

// ToTraditional converts every simplified-only character of text.
func (s *Store) ToTraditional(text string) string {
	return convert(text, s.conv.toTraditional)
}

// IsSimplified reports whether no character of text needs simplification.
func (s *Store) IsSimplified(text string) bool {
	return !containsKey(text, s.conv.toSimplified)
}

// IsTraditional reports whether no character of text needs conversion to
// traditional.
func (s *Store) IsTraditional(text string) bool {
	return !containsKey(text, s.conv.toTraditional)
}
