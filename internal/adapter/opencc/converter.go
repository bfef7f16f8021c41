// Package opencc converts between Simplified and Traditional Chinese with
// the OpenCC phrase dictionaries. It is an alternative to the character
// tables derived from the loaded dictionary.
package opencc

import (
	"fmt"

	"github.com/longbridgeapp/opencc"
)

// Converter holds one OpenCC instance per direction.
type Converter struct {
	s2t *opencc.OpenCC
	t2s *opencc.OpenCC
}

// New loads the s2t and t2s OpenCC configurations.
func New() (*Converter, error) {
	s2t, err := opencc.New("s2t")
	if err != nil {
		return nil, fmt.Errorf("opencc s2t: %w", err)
	}
	t2s, err := opencc.New("t2s")
	if err != nil {
		return nil, fmt.Errorf("opencc t2s: %w", err)
	}
	return &Converter{s2t: s2t, t2s: t2s}, nil
}

// ToSimplified converts text to Simplified characters.
func (c *Converter) ToSimplified(text string) (string, error) {
	out, err := c.t2s.Convert(text)
	if err != nil {
		return "", fmt.Errorf("opencc t2s: %w", err)
	}
	return out, nil
}

// ToTraditional converts text to Traditional characters.
func (c *Converter) ToTraditional(text string) (string, error) {
	out, err := c.s2t.Convert(text)
	if err != nil {
		return "", fmt.Errorf("opencc s2t: %w", err)
	}
	return out, nil
}
