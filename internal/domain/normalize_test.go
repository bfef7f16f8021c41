package domain

import "testing"

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  hello  ", want: "hello"},
		{name: "lowercase", input: "Hello World", want: "hello world"},
		{name: "compress multiple spaces", input: "hello   world", want: "hello world"},
		{name: "tone marks preserved", input: "Nǐ Hǎo", want: "nǐ hǎo"},
		{name: "decomposed marks composed", input: "ni\u030c", want: "n\u01d0"},
		{name: "apostrophes preserved", input: "Xi'an", want: "xi'an"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "tabs and spaces", input: "\t ni3 \t hao3 ", want: "ni3 hao3"},
		{name: "ideographic space", input: "你好　世界", want: "你好 世界"},
		{name: "han untouched", input: "天气", want: "天气"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
