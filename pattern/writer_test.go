package pattern

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntax(t *testing.T) {
	tests := []struct {
		str string
		re2 string
		net string
	}{
		{"", "", ""},
		{"^abc$", "^abc$", "^abc$"},
		{`a\.b`, `a\.b`, `a\.b`},
		{"a.b", "a.b", "a.b"},
		{"a b_c", "a b_c", "a b_c"},
		{`\$\^\|`, `\$\^\|`, `\$\^\|`},
		{"x?y+z*", "x?y+z*", "x?y+z*"},
		{"a{2}b{3,}c{,4}d{1,5}", "a{2}b{3,}c{0,4}d{1,5}", "a{2}b{3,}c{0,4}d{1,5}"},
		{"[a-z]", "[a-z]", "[a-z]"},
		{"[^-x]", `[^\-x]`, `[^\-x]`},
		{`[]\\]`, `[\]\\]`, `[\]\\]`},
		{"[[:alpha:]_]", "[[:alpha:]_]", "[A-Za-z_]"},
		{"[[:space:]]", "[[:space:]]", `[\x09-\x0d ]`},
		{"(cat|dog)*", "(?:cat|dog)*", "(?:cat|dog)*"},
		{"(a|)", "(?:a|)", "(?:a|)"},
		{`\é\	`, `é\x09`, `é\x09`},
		{`\` + "\u0085", `\x85`, `\x85`},
		{`\` + "\u200b", `\x{200b}`, `\u200b`},
	}

	for _, tt := range tests {
		expr, err := Parse(tt.str)
		require.NoError(t, err, "pattern %q", tt.str)

		assert.Equal(t, tt.re2, expr.String(), "pattern %q", tt.str)
		assert.Equal(t, tt.re2, expr.Syntax(DialectRE2), "pattern %q", tt.str)
		assert.Equal(t, tt.net, expr.Syntax(DialectNET), "pattern %q", tt.str)
	}
}

func TestSyntaxCompiles(t *testing.T) {
	tests := []struct {
		str     string
		match   []string
		noMatch []string
	}{
		{"^abc$", []string{"abc"}, []string{"xabc", "abcx", ""}},
		{"a.c", []string{"abc", "xa-cx"}, []string{"ac"}},
		{`\(\)\[\]\{\}\*\+\?\.`, []string{"()[]{}*+?."}, []string{"()"}},
		{"[[:digit:]]{3}-[[:digit:]]{4}", []string{"555-1234"}, []string{"55-1234", "abc-defg"}},
		{"^[^[:space:]]+$", []string{"word"}, []string{"two words", ""}},
		{"gr(a|e)y", []string{"gray", "grey"}, []string{"griy"}},
		{"^(ab|c){2}$", []string{"abab", "abc", "cc"}, []string{"ab", "abcab"}},
		{"[]-]", []string{"]", "-"}, []string{"a"}},
		{"[[:punct:]]", []string{"!", "`", "~"}, []string{"a", " "}},
		{`^a{,2}$`, []string{"", "a", "aa"}, []string{"aaa"}},
	}

	for _, tt := range tests {
		expr := MustParse(tt.str)

		re, err := regexp.Compile(expr.String())
		require.NoError(t, err, "pattern %q", tt.str)

		for _, line := range tt.match {
			assert.True(t, re.MatchString(line), "%q should match %q", tt.str, line)
		}
		for _, line := range tt.noMatch {
			assert.False(t, re.MatchString(line), "%q should not match %q", tt.str, line)
		}
	}
}
