package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyllableToMarks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"ni3", "nǐ"},
		{"hao3", "hǎo"},
		{"tian1", "tiān"},
		{"qi4", "qì"},
		{"zhuang4", "zhuàng"},
		{"gou3", "gǒu"},
		{"liu2", "liú"},
		{"gui4", "guì"},
		{"lu:4", "lǜ"},
		{"nv3", "nǚ"},
		{"lu:e4", "lüè"},
		{"ma5", "ma"},
		{"de0", "de"},
		{"Bei3", "Běi"},
		{"Ou1", "Ōu"},
		{"r5", "r"},
		{"xx5", "xx"},
		{",", ","},
		{"A", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SyllableToMarks(tt.in))
		})
	}
}

func TestNumbersToMarks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nǐ hǎo", NumbersToMarks("ni3 hao3"))
	assert.Equal(t, "shí yàn", NumbersToMarks("shi2 yan4"))
	assert.Equal(t, "", NumbersToMarks(""))
}

func TestTones(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []uint8{3, 3}, Tones("ni3 hao3"))
	assert.Equal(t, []uint8{1, 4}, Tones("tian1 qi4"))
	assert.Equal(t, []uint8{4, 5}, Tones("xie4 xie5"))
	assert.Equal(t, []uint8{5, 5, 4}, Tones("A A zhi4"))
	assert.Equal(t, []uint8{1, 1, 3}, Tones("yi1 · yi1 ge3"))
	assert.Equal(t, 3, SyllableCount("yi1 · yi1 ge3"))
	assert.Empty(t, Tones(""))
}

func TestStripAndFold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lü", StripTones("lǜ"))
	assert.Equal(t, "lu", FoldASCII("lǜ"))
	assert.Equal(t, "ni hao", StripTones("nǐ hǎo"))
	assert.Equal(t, "tianqi", FoldASCII("tiānqì"))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tian1qi4", Normalize("Tian1 Qi4"))
	assert.Equal(t, "xian", Normalize("Xi'an"))
	assert.Equal(t, "lü4", Normalize("lu:4"))
	assert.Equal(t, "lü4", Normalize("lv4"))
	assert.Equal(t, "nǐhǎo", Normalize("nǐ hǎo"))
}

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"tian1qi4", "tiānqì", "tianqi"}, Keys("tian1 qi4"))
	assert.Equal(t, []string{"lü4", "lǜ", "lü", "lu"}, Keys("lu:4"))
	assert.Nil(t, Keys(""))
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
		ok   bool
	}{
		{"shiyan", []string{"shi", "yan"}, true},
		{"tian1qi4", []string{"tian1", "qi4"}, true},
		{"xiànzài", []string{"xiàn", "zài"}, true},
		{"nihao", []string{"ni", "hao"}, true},
		{"zhongguo", []string{"zhong", "guo"}, true},
		{"lv4", []string{"lv4"}, true},
		{"lu:4", []string{"lü4"}, true},
		{"r5", []string{"r5"}, true},
		{"hello", nil, false},
		{"test", nil, false},
		{"r", nil, false},
		{"ni6", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := Split(tt.in)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsPinyin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"ni3 hao3", true},
		{"shiyan", true},
		{"tianqi", true},
		{"nǐ hǎo", true},
		{"xi'an", true},
		{"Bei3jing1", true},
		{"hello", false},
		{"test", false},
		{"weather", false},
		{"ni hao!", false},
		{"", false},
		{"   ", false},
		{"你好", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsPinyin(tt.in))
		})
	}
}
