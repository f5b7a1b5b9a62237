package pattern

import (
	"strconv"
	"strings"

	"github.com/magnetde/starlark-grep/util"
)

// Dump returns debug information about the parsed expression.
// Each pattern is written on its own line; nested items are indented by two spaces per level.
func (e *Expression) Dump() string {
	var b strings.Builder

	if e.Anchor != AnchorNone {
		b.WriteString("ANCHOR ")
		b.WriteString(e.Anchor.String())
		b.WriteByte('\n')
	}

	dumpPatterns(&b, e.Patterns, 0)
	return strings.TrimRight(b.String(), "\n ") // trim newlines and spaces at the end
}

// dumpPatterns writes the debug information of a pattern sequence to the string builder.
// The `level` parameter is used to indent the debug information.
func dumpPatterns(b *strings.Builder, seq []Pattern, level int) {
	for _, p := range seq {
		if p.Repetition.Kind == RepeatNone {
			dumpSub(b, p.Sub, level)
			continue
		}

		indent(b, level)
		b.WriteString("MAX_REPEAT ")

		lo, hi := p.Repetition.Bounds()
		b.WriteString(strconv.Itoa(lo))
		b.WriteByte(' ')
		if hi < 0 {
			b.WriteString("MAXREPEAT")
		} else {
			b.WriteString(strconv.Itoa(hi))
		}
		b.WriteByte('\n')

		dumpSub(b, p.Sub, level+1)
	}
}

// dumpSub writes the debug information of a single atom.
func dumpSub(b *strings.Builder, sub SubPattern, level int) {
	indent(b, level)

	switch t := sub.(type) {
	case Wildcard:
		b.WriteString("ANY\n")
	case Literal:
		b.WriteString("LITERAL ")
		b.WriteString(util.RuneRepr(t.C))
		b.WriteByte('\n')
	case BracketedSet:
		b.WriteString("IN\n")
		if t.Negated {
			indent(b, level+1)
			b.WriteString("NEGATE\n")
		}

		// members are either of type CLASS, RANGE or CHARS
		for _, item := range t.Items {
			indent(b, level+1)

			switch v := item.(type) {
			case PredefinedClass:
				b.WriteString("CLASS ")
				b.WriteString(v.String())
			case CharRange:
				b.WriteString("RANGE ")
				b.WriteString(util.RuneRepr(v.Lo))
				b.WriteByte(' ')
				b.WriteString(util.RuneRepr(v.Hi))
			case CustomChars:
				b.WriteString("CHARS ")
				b.WriteString(util.Repr(string(v)))
			}
			b.WriteByte('\n')
		}
	case Alternative:
		b.WriteString("BRANCH\n")
		for i, branch := range t.Branches {
			if i != 0 {
				indent(b, level)
				b.WriteString("OR\n")
			}
			dumpPatterns(b, branch, level+1)
		}
	}
}

func indent(b *strings.Builder, level int) {
	b.WriteString(strings.Repeat("  ", level))
}
