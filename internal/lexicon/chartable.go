package lexicon

import (
	"fmt"
	"strings"
	"sync"

	"github.com/longbridgeapp/opencc"
)

// charTable is a complete character-level Simplified/Traditional table. It
// seeds the conversion maps; alignments from the loaded dictionary are
// layered on top of it.
type charTable struct {
	toSimplified  map[rune]rune
	toTraditional map[rune]rune
}

// hanBlocks are the BMP ideograph blocks covered by the OpenCC character
// dictionaries (STCharacters, TSCharacters).
var hanBlocks = [][2]rune{
	{0x3400, 0x4dbf}, // CJK Unified Ideographs Extension A
	{0x4e00, 0x9fff}, // CJK Unified Ideographs
	{0xf900, 0xfaff}, // CJK Compatibility Ideographs
}

// baseCharTable is read once per process from the dictionaries embedded in
// the opencc module.
var baseCharTable = sync.OnceValues(loadCharTable)

func loadCharTable() (*charTable, error) {
	var chars []rune
	for _, b := range hanBlocks {
		for r := b[0]; r <= b[1]; r++ {
			chars = append(chars, r)
		}
	}

	t2s, err := opencc.New("t2s")
	if err != nil {
		return nil, fmt.Errorf("opencc t2s: %w", err)
	}
	s2t, err := opencc.New("s2t")
	if err != nil {
		return nil, fmt.Errorf("opencc s2t: %w", err)
	}

	ct := &charTable{}
	if ct.toSimplified, err = charPairs(t2s, chars); err != nil {
		return nil, fmt.Errorf("opencc t2s: %w", err)
	}
	if ct.toTraditional, err = charPairs(s2t, chars); err != nil {
		return nil, fmt.Errorf("opencc s2t: %w", err)
	}
	return ct, nil
}

// charPairs converts every character on its own line so no phrase entry can
// span two of them, and keeps the one-to-one results that differ from the
// input. If the converter does not preserve the line structure, characters
// are converted one by one.
func charPairs(cc *opencc.OpenCC, chars []rune) (map[rune]rune, error) {
	var b strings.Builder
	b.Grow(len(chars) * 4)
	for _, r := range chars {
		b.WriteRune(r)
		b.WriteByte('\n')
	}
	out, err := cc.Convert(b.String())
	if err != nil {
		return nil, err
	}

	lines := strings.Split(out, "\n")
	if len(lines) != len(chars)+1 {
		lines = lines[:0]
		for _, r := range chars {
			conv, err := cc.Convert(string(r))
			if err != nil {
				return nil, err
			}
			lines = append(lines, conv)
		}
	}

	pairs := make(map[rune]rune)
	for i, r := range chars {
		rs := []rune(lines[i])
		if len(rs) == 1 && rs[0] != r {
			pairs[r] = rs[0]
		}
	}
	return pairs, nil
}
