package pattern

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(s string) []Pattern {
	var seq []Pattern
	for _, c := range s {
		seq = append(seq, Pattern{Sub: Literal{C: c}})
	}
	return seq
}

func rep(sub SubPattern, r Repetition) Pattern {
	return Pattern{Sub: sub, Repetition: r}
}

func requireParse(t *testing.T, str string, want *Expression) {
	t.Helper()

	got, err := Parse(str)
	require.NoError(t, err, "pattern %q", str)

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", str, diff)
	}
}

func TestParseLiterals(t *testing.T) {
	tests := []string{"", "a", "abc", "hello world", "a-b,c;d", "a|b", "~!@#%&=<>", "x y z"}

	for _, str := range tests {
		requireParse(t, str, &Expression{Patterns: lit(str)})
	}
}

func TestParseAnchors(t *testing.T) {
	tests := []struct {
		str    string
		anchor Anchor
		seq    string
	}{
		{"abc", AnchorNone, "abc"},
		{"^abc", AnchorStart, "abc"},
		{"abc$", AnchorEnd, "abc"},
		{"^abc$", AnchorBoth, "abc"},
		{"^", AnchorStart, ""},
		{"$", AnchorEnd, ""},
		{"^$", AnchorBoth, ""},
		{`a\$`, AnchorNone, "a$"},
		{`\^a`, AnchorNone, "^a"},
	}

	for _, tt := range tests {
		requireParse(t, tt.str, &Expression{Anchor: tt.anchor, Patterns: lit(tt.seq)})
	}
}

func TestParseMisusedAnchors(t *testing.T) {
	for _, str := range []string{"^^a", "a^", "a$b", "a$$", "^a$$", "(a$)", "(^a)", "$$"} {
		_, err := Parse(str)
		assert.ErrorIs(t, err, MisusedAnchorCharacter, "pattern %q", str)
	}
}

func TestParseRepetitions(t *testing.T) {
	tests := []struct {
		str string
		rep Repetition
	}{
		{"a", Repetition{}},
		{"a?", newRepetition(RepeatAtMostOnce)},
		{"a+", newRepetition(RepeatAtLeastOnce)},
		{"a*", newRepetition(RepeatZeroOrMore)},
		{"a{3}", Exactly(3)},
		{"a{0}", Exactly(0)},
		{"a{2,}", AtLeast(2)},
		{"a{,4}", AtMost(4)},
		{"a{2,4}", InRange(2, 4)},
		{"a{3,3}", InRange(3, 3)},
		{"a{007}", Exactly(7)},
	}

	for _, tt := range tests {
		requireParse(t, tt.str, &Expression{
			Patterns: []Pattern{rep(Literal{C: 'a'}, tt.rep)},
		})
	}
}

func TestParseRepetitionErrors(t *testing.T) {
	tests := []struct {
		str  string
		kind ErrorKind
	}{
		{"a{}", MalformedExpression},
		{"a{,}", MalformedExpression},
		{"a{1,2,3}", MalformedExpression},
		{"a{1a}", MalformedExpression},
		{"a{1", MalformedExpression},
		{"a{", MalformedExpression},
		{"*a", MalformedExpression},
		{"a**", MalformedExpression},
		{"a{5,2}", IncorrectRepetitionLimits},
		{"a{99999999999999999999}", NotANumber},
		{"a{1,99999999999999999999}", NotANumber},
		{"a{١}", NotANumber},
	}

	for _, tt := range tests {
		_, err := Parse(tt.str)
		assert.ErrorIs(t, err, tt.kind, "pattern %q", tt.str)
	}
}

func TestParseWildcardAndEscapes(t *testing.T) {
	requireParse(t, "a.c", &Expression{
		Patterns: []Pattern{
			{Sub: Literal{C: 'a'}},
			{Sub: Wildcard{}},
			{Sub: Literal{C: 'c'}},
		},
	})

	requireParse(t, `\.\*\\\(\[`, &Expression{Patterns: lit(`.*\([`)})

	requireParse(t, `\.+`, &Expression{
		Patterns: []Pattern{rep(Literal{C: '.'}, newRepetition(RepeatAtLeastOnce))},
	})

	// escaping makes every character a literal, even non-ASCII ones
	requireParse(t, `\é`, &Expression{Patterns: lit("é")})
	requireParse(t, `\`+"\uFFFD", &Expression{Patterns: lit("\uFFFD")})

	// an invalid byte is read as the character with the same value
	requireParse(t, `\`+"\xff", &Expression{Patterns: lit("\u00ff")})
}

func TestParseBrackets(t *testing.T) {
	set := func(negated bool, items ...SetItem) *Expression {
		return &Expression{Patterns: []Pattern{{Sub: BracketedSet{Items: items, Negated: negated}}}}
	}

	requireParse(t, "[a-z]", set(false, CharRange{Lo: 'a', Hi: 'z'}))
	requireParse(t, "[-az]", set(false, CustomChars{'-', 'a', 'z'}))
	requireParse(t, "[az-]", set(false, CustomChars{'a', 'z', '-'}))
	requireParse(t, "[abca]", set(false, CustomChars{'a', 'b', 'c'}))
	requireParse(t, "[]a]", set(false, CustomChars{']', 'a'}))
	requireParse(t, "[^]a]", set(true, CustomChars{']', 'a'}))
	requireParse(t, `[\]\\]`, set(false, CustomChars{']', '\\'}))
	requireParse(t, "[a-c-e]", set(false, CharRange{Lo: 'a', Hi: 'c'}, CustomChars{'-', 'e'}))
	requireParse(t, "[.*+]", set(false, CustomChars{'.', '*', '+'}))
	requireParse(t, "[[:alnum:][:xdigit:]]", set(false, ClassAlnum, ClassXDigit))
	requireParse(t, "[^[:alnum:][:xdigit:]]", set(true, ClassAlnum, ClassXDigit))
	requireParse(t, "[^[:alnum:]]", set(true, ClassAlnum))
	requireParse(t, "[0-9a-f[:space:]xX]", set(false,
		CharRange{Lo: '0', Hi: '9'},
		CharRange{Lo: 'a', Hi: 'f'},
		ClassSpace,
		CustomChars{'x', 'X'},
	))

	requireParse(t, "[\uFFFD]", set(false, CustomChars{0xFFFD}))
	requireParse(t, "[\xef\xbf]", set(false, CustomChars{0xef, 0xbf}))

	requireParse(t, "[ab]{2}", &Expression{
		Patterns: []Pattern{rep(BracketedSet{Items: []SetItem{CustomChars{'a', 'b'}}}, Exactly(2))},
	})
}

func TestParseBracketErrors(t *testing.T) {
	tests := []struct {
		str  string
		kind ErrorKind
	}{
		{"[z-a]", IncorrectRepetitionLimits},
		{"[a-a]", IncorrectRepetitionLimits},
		{"[abc", NotTerminatedProperly},
		{"[", NotTerminatedProperly},
		{"[]", NotTerminatedProperly},
		{"[^", NotTerminatedProperly},
		{"[[:alpha:]", NotTerminatedProperly},
		{"[[:alpha]]", NotTerminatedProperly},
		{"[[:alpha:", NotTerminatedProperly},
		{"[[:cntrl:]]", UnknownPredefinedSetName},
		{"[[:ALPHA:]]", UnknownPredefinedSetName},
		{"[[:foo:]]", UnknownPredefinedSetName},
		{"[[.a.]]", UnknownGuardCharacter},
		{"[[=a=]]", UnknownGuardCharacter},
		{"[[a]", UnknownGuardCharacter},
		{`[a\`, MalformedExpression},
	}

	for _, tt := range tests {
		_, err := Parse(tt.str)
		assert.ErrorIs(t, err, tt.kind, "pattern %q", tt.str)
	}
}

func TestParseAlternatives(t *testing.T) {
	requireParse(t, "(cat|dog)*", &Expression{
		Patterns: []Pattern{
			rep(Alternative{Branches: [][]Pattern{lit("cat"), lit("dog")}}, newRepetition(RepeatZeroOrMore)),
		},
	})

	requireParse(t, "^x(a|b+|)y$", &Expression{
		Anchor: AnchorBoth,
		Patterns: []Pattern{
			{Sub: Literal{C: 'x'}},
			{Sub: Alternative{Branches: [][]Pattern{
				lit("a"),
				{rep(Literal{C: 'b'}, newRepetition(RepeatAtLeastOnce))},
				nil,
			}}},
			{Sub: Literal{C: 'y'}},
		},
	})

	requireParse(t, `([|)]|\))`, &Expression{
		Patterns: []Pattern{
			{Sub: Alternative{Branches: [][]Pattern{
				{{Sub: BracketedSet{Items: []SetItem{CustomChars{'|', ')'}}}}},
				lit(")"),
			}}},
		},
	})
}

func TestParseAlternativeErrors(t *testing.T) {
	tests := []struct {
		str  string
		kind ErrorKind
	}{
		{"(ab", NotTerminatedProperly},
		{"(a|b", NotTerminatedProperly},
		{"(a(b))", MalformedExpression},
		{"a)", MalformedExpression},
		{`(a\`, MalformedExpression},
	}

	for _, tt := range tests {
		_, err := Parse(tt.str)
		assert.ErrorIs(t, err, tt.kind, "pattern %q", tt.str)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		str  string
		kind ErrorKind
		pos  int
		msg  string
	}{
		{`ab\`, MalformedExpression, 2, "bad escape (end of pattern) at position 2"},
		{"aé", NotASCIICharacter, 1, "bad character 'é' at position 1"},
		{"a\tb", NotASCIICharacter, 1, `bad character '\t' at position 1`},
		{"a]", MalformedExpression, 1, "unbalanced ']' at position 1"},
		{"ab[", NotTerminatedProperly, 2, "unterminated bracket expression at position 2"},
		{"[b-a]", IncorrectRepetitionLimits, 1, "bad character range b-a at position 1"},
		{"x[[:foo:]]", UnknownPredefinedSetName, 2, "unknown class name 'foo' at position 2"},
		{"a\\\n$b", MisusedAnchorCharacter, 3, "anchor '$' is only allowed at the edges of the pattern at position 3 (line 2, column 1)"},
	}

	for _, tt := range tests {
		_, err := Parse(tt.str)
		require.Error(t, err, "pattern %q", tt.str)

		var perr *Error
		require.True(t, errors.As(err, &perr), "pattern %q", tt.str)

		assert.Equal(t, tt.kind, perr.Kind, "pattern %q", tt.str)
		assert.Equal(t, tt.pos, perr.Pos, "pattern %q", tt.str)
		assert.Equal(t, tt.msg, perr.Error(), "pattern %q", tt.str)
		assert.Equal(t, tt.str, perr.Pattern)
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "malformed expression", MalformedExpression.Error())
	assert.Equal(t, "IncorrectRepetitionLimits", IncorrectRepetitionLimits.String())
	assert.False(t, errors.Is(&Error{Kind: NotANumber}, MalformedExpression))
}

func TestParseDeterministic(t *testing.T) {
	for _, str := range []string{"", "^a.b*[[:digit:]x-z]{2,5}(foo|ba?r)$", `\[x\]`} {
		e1, err := Parse(str)
		require.NoError(t, err)

		e2, err := Parse(str)
		require.NoError(t, err)

		assert.True(t, e1.Equal(e2), "pattern %q", str)
		assert.Empty(t, cmp.Diff(e1, e2))
	}
}

func TestEqual(t *testing.T) {
	a := MustParse("[ab]c(d|e)")

	assert.True(t, a.Equal(MustParse("[ab]c(d|e)")))
	assert.False(t, a.Equal(MustParse("[ba]c(d|e)")))
	assert.False(t, a.Equal(MustParse("[ab]c(d|f)")))
	assert.False(t, a.Equal(MustParse("^[ab]c(d|e)")))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Expression)(nil).Equal(nil))
}

func TestMustParsePanics(t *testing.T) {
	assert.PanicsWithValue(t, `pattern: Parse('a{'): missing }, unterminated repetition at position 1`, func() {
		MustParse("a{")
	})
}

func TestLiteral(t *testing.T) {
	s, ok := MustParse(`a\.b`).Literal()
	assert.True(t, ok)
	assert.Equal(t, "a.b", s)

	for _, str := range []string{"^ab", "a.b", "ab*", "[a]"} {
		_, ok := MustParse(str).Literal()
		assert.False(t, ok, "pattern %q", str)
	}
}

func TestSetContains(t *testing.T) {
	set := MustParse("[a-c[:digit:]xy]").Patterns[0].Sub.(BracketedSet)

	for _, c := range "abc0189xy" {
		assert.True(t, set.Contains(c), "%q", c)
	}
	for _, c := range "dAz-_ " {
		assert.False(t, set.Contains(c), "%q", c)
	}

	neg := MustParse("[^[:space:]]").Patterns[0].Sub.(BracketedSet)
	assert.False(t, neg.Contains('\t'))
	assert.True(t, neg.Contains('x'))
}

func TestClasses(t *testing.T) {
	tests := []struct {
		class PredefinedClass
		in    string
		out   string
	}{
		{ClassAlnum, "aZ09", " _-"},
		{ClassAlpha, "aZ", "0_"},
		{ClassBlank, " \t", "\n\r"},
		{ClassDigit, "09", "aF"},
		{ClassGraph, "!~a", " \x7f"},
		{ClassLower, "az", "AZ"},
		{ClassUpper, "AZ", "az"},
		{ClassPrint, " ~", "\t\x7f"},
		{ClassPunct, "!/:@[`{~", "a0 "},
		{ClassSpace, " \t\n\v\f\r", "a"},
		{ClassXDigit, "09afAF", "gG"},
	}

	for _, tt := range tests {
		for _, c := range tt.in {
			assert.True(t, tt.class.Contains(c), "%s contains %q", tt.class, c)
		}
		for _, c := range tt.out {
			assert.False(t, tt.class.Contains(c), "%s does not contain %q", tt.class, c)
		}

		c, ok := lookupClass(tt.class.String())
		assert.True(t, ok)
		assert.Equal(t, tt.class, c)
	}
}

func TestDump(t *testing.T) {
	expr := MustParse("^a.[^x-z[:digit:]_]{2,}(b|cd?)$")

	want := `ANCHOR both
LITERAL 'a'
ANY
MAX_REPEAT 2 MAXREPEAT
  IN
    NEGATE
    RANGE 'x' 'z'
    CLASS digit
    CHARS '_'
BRANCH
  LITERAL 'b'
OR
  LITERAL 'c'
  MAX_REPEAT 0 1
    LITERAL 'd'`

	assert.Equal(t, want, expr.Dump())
	assert.Equal(t, "", MustParse("").Dump())
}
