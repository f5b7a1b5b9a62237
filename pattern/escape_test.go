package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a.b", `a\.b`},
		{"1+1=2", `1\+1=2`},
		{"(a|b)", `\(a\|b\)`},
		{"[x]{2}", `\[x\]\{2\}`},
		{`^\$`, `\^\\\$`},
		{"a\tb", "a\\\tb"},
		{"über", `\über`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.text), "text %q", tt.text)
	}
}

func TestEscapeParsesAsLiteral(t *testing.T) {
	tests := []string{"", "plain", "a.b*c", "$^", "(x|y)", `back\slash`, "[[:alpha:]]", "tab\there", "ünïcödé", "a{1,2}?", "a\uFFFDb"}

	for _, text := range tests {
		expr, err := Parse(Escape(text))
		require.NoError(t, err, "text %q", text)

		s, ok := expr.Literal()
		assert.True(t, ok, "text %q", text)
		assert.Equal(t, text, s)
	}
}

func TestIsMeta(t *testing.T) {
	for _, c := range `\.[]()^$+*?{}` {
		assert.True(t, isMeta(c), "%q", c)
		assert.False(t, isLiteralChar(c), "%q", c)
	}

	for _, c := range "aZ09 -|~!_" {
		assert.False(t, isMeta(c), "%q", c)
		assert.True(t, isLiteralChar(c), "%q", c)
	}

	for _, c := range "\t\n\x7fé" {
		assert.False(t, isLiteralChar(c), "%q", c)
	}
}
