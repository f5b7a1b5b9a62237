package pattern

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Dialect selects the regular expression syntax produced by `Syntax`.
type Dialect uint8

const (
	// DialectRE2 is the syntax of the Go `regexp` package.
	DialectRE2 Dialect = iota
	// DialectNET is the syntax of `regexp2` (RE2 compatible .NET syntax).
	// It has no POSIX classes, so predefined classes are expanded to ranges.
	DialectNET
)

// String converts the expression into a regex string for the Go `regexp` package.
func (e *Expression) String() string {
	return e.Syntax(DialectRE2)
}

// Syntax converts the expression into a regex string of the given dialect.
// The string matches exactly the same lines as the expression.
func (e *Expression) Syntax(d Dialect) string {
	w := syntaxWriter{dialect: d}

	if e.Anchor.HasStart() {
		w.WriteByte('^')
	}

	w.writePatterns(e.Patterns)

	if e.Anchor.HasEnd() {
		w.WriteByte('$')
	}

	return w.String()
}

// syntaxWriter is a type to write the regex string.
// It uses a `strings.Builder` and provides functions to write patterns, atoms, repetitions and literals.
type syntaxWriter struct {
	strings.Builder
	dialect Dialect
}

// writePatterns writes a pattern sequence.
func (w *syntaxWriter) writePatterns(seq []Pattern) {
	for _, p := range seq {
		w.writeSub(p.Sub)
		w.writeRepetition(p.Repetition)
	}
}

// writeSub writes a single atom.
// Alternatives are always wrapped inside of a non-capturing group, so a following repetition applies to the whole group.
func (w *syntaxWriter) writeSub(sub SubPattern) {
	switch t := sub.(type) {
	case Wildcard:
		w.WriteByte('.')
	case Literal:
		w.writeLiteral(t.C)
	case BracketedSet:
		w.WriteByte('[')
		if t.Negated {
			w.WriteByte('^')
		}

		for _, item := range t.Items {
			w.writeItem(item)
		}
		w.WriteByte(']')
	case Alternative:
		w.WriteString("(?:")
		for i, branch := range t.Branches {
			if i > 0 {
				w.WriteByte('|')
			}
			w.writePatterns(branch)
		}
		w.WriteByte(')')
	}
}

// writeItem writes a member of a bracket expression.
func (w *syntaxWriter) writeItem(item SetItem) {
	switch t := item.(type) {
	case PredefinedClass:
		if w.dialect == DialectRE2 {
			w.WriteString("[:")
			w.WriteString(t.String())
			w.WriteString(":]")
			return
		}

		for _, r := range t.Ranges() {
			w.writeRange(r)
		}
	case CharRange:
		w.writeRange(t)
	case CustomChars:
		for _, c := range t {
			w.writeLiteral(c)
		}
	}
}

// writeRange writes a range inside of a set. Ranges with equal bounds are written as single character.
func (w *syntaxWriter) writeRange(r CharRange) {
	w.writeLiteral(r.Lo)
	if r.Hi != r.Lo {
		w.WriteByte('-')
		w.writeLiteral(r.Hi)
	}
}

// writeRepetition writes the quantifier of a pattern.
func (w *syntaxWriter) writeRepetition(r Repetition) {
	switch r.Kind {
	case RepeatAtMostOnce:
		w.WriteByte('?')
	case RepeatAtLeastOnce:
		w.WriteByte('+')
	case RepeatZeroOrMore:
		w.WriteByte('*')
	case RepeatExactly:
		w.WriteByte('{')
		w.writeInt(r.Min)
		w.WriteByte('}')
	case RepeatAtLeast:
		w.WriteByte('{')
		w.writeInt(r.Min)
		w.WriteString(",}")
	case RepeatAtMost:
		// `{,m}` is not supported by both engines
		w.WriteString("{0,")
		w.writeInt(r.Max)
		w.WriteByte('}')
	case RepeatInRange:
		w.WriteByte('{')
		w.writeInt(r.Min)
		w.WriteByte(',')
		w.writeInt(r.Max)
		w.WriteByte('}')
	}
}

// writeInt writes the integer to the writer.
func (w *syntaxWriter) writeInt(i int) {
	w.WriteString(strconv.Itoa(i))
}

// writeLiteral writes a character, that must be matched literally.
// Word characters, the space and printable non-ASCII characters are written as-is.
// Other printable ASCII characters are escaped with a backslash, which is valid inside and outside of sets
// in both dialects. Everything else is written as hexadecimal escape.
func (w *syntaxWriter) writeLiteral(c rune) {
	switch {
	case c == ' ' || c == '_' || ClassAlnum.Contains(c):
		w.WriteRune(c)
	case '!' <= c && c <= '~':
		w.WriteByte('\\')
		w.WriteRune(c)
	case c >= utf8.RuneSelf && unicode.IsPrint(c):
		w.WriteRune(c)
	default:
		w.writeHex(c)
	}
}

// writeHex writes the character as hexadecimal escape.
// Characters up to 0xff use the format "\x..", that is understood by both engines.
// Larger characters use "\x{...}" for RE2 and "\u...." for .NET.
func (w *syntaxWriter) writeHex(c rune) {
	s := strconv.FormatInt(int64(c), 16)

	switch {
	case c <= 0xff:
		w.WriteString(`\x`)
		if len(s) < 2 {
			w.WriteByte('0')
		}
		w.WriteString(s)
	case w.dialect == DialectRE2:
		w.WriteString(`\x{`)
		w.WriteString(s)
		w.WriteByte('}')
	case c <= 0xffff:
		w.WriteString(`\u`)
		w.WriteString(strings.Repeat("0", 4-len(s)))
		w.WriteString(s)
	default:
		// .NET has no escape for characters outside of the BMP
		w.WriteRune(c)
	}
}
