package lexicon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment_Bundled(t *testing.T) {
	t.Parallel()
	e := bundled(t)

	tests := []struct {
		text string
		want []string
	}{
		{"我是学生", []string{"我", "是", "学生"}},
		{"今天的天气还可以吧", []string{"今天", "的", "天气", "还可以", "吧"}},
		{"今天的天氣還可以吧", []string{"今天", "的", "天氣", "還可以", "吧"}},
		{"我爱你!", []string{"我爱你", "!"}},
		{"去卡拉OK", []string{"去", "卡拉OK"}},
		{"abc", []string{"a", "b", "c"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, e.Segment(tt.text))
		})
	}
}

func TestSegment_Partition(t *testing.T) {
	t.Parallel()
	e := bundled(t)

	inputs := []string{
		"我们今天去北京的长城吧",
		"簡體字和繁体字",
		"hello 世界, 你好!",
		"invalid \xff\xfe bytes 汉语",
		"🙂🙂学生",
		"   ",
	}
	for _, in := range inputs {
		tokens := e.Segment(in)
		assert.Equal(t, in, strings.Join(tokens, ""), "concat(segment(%q))", in)
		for _, tok := range tokens {
			assert.NotEmpty(t, tok)
		}
		assert.Equal(t, tokens, e.Segment(in), "deterministic")
	}
}
