package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/magnetde/starlark-grep/util"
)

// scanState is the state of the atom scanner, that is passed from one atom to the next.
// A backslash switches to stateEscaped, the following character switches back to stateNormal.
type scanState uint8

const (
	stateNormal scanState = iota
	stateEscaped
)

// Parse parses a pattern into an expression.
// The parser is a recursive descent scanner with one character of lookahead.
// The first malformed construct aborts the parse and is returned as an `*Error`.
// Parse holds no state between calls and is safe for concurrent use.
func Parse(str string) (*Expression, error) {
	var s source
	s.init(str)

	expr := &Expression{}

	if s.match('^') {
		expr.Anchor = AnchorStart
	}

	p, err := parseSequence(&s, false)
	if err != nil {
		return nil, err
	}

	expr.Patterns = p

	// the top level sequence only stops early at a trailing '$'
	if !s.eof() {
		pos := s.tell()
		s.read()

		switch expr.Anchor {
		case AnchorNone:
			expr.Anchor = AnchorEnd
		case AnchorStart:
			expr.Anchor = AnchorBoth
		default:
			return nil, s.errorp(MisusedAnchorCharacter, "multiple end anchors", pos)
		}
	}

	return expr, nil
}

// MustParse is like Parse but panics if the pattern cannot be parsed.
// It simplifies safe initialization of global variables holding patterns.
func MustParse(str string) *Expression {
	expr, err := Parse(str)
	if err != nil {
		panic(`pattern: Parse(` + util.Repr(str) + `): ` + err.Error())
	}

	return expr
}

// parseSequence parses atoms until the end of the pattern.
// At top level, a trailing '$' also ends the sequence; inside of a group ('nested' is true), '|' and ')' end it.
func parseSequence(s *source, nested bool) ([]Pattern, error) {
	var seq []Pattern

	state := stateNormal
	for {
		c, ok := s.peek()
		if !ok {
			break // end of pattern
		}

		if state == stateNormal {
			if nested && (c == '|' || c == ')') {
				break // end of branch
			}
			if !nested && c == '$' && s.isLast('$') {
				break // end anchor
			}
		}

		var (
			p     Pattern
			found bool
			err   error
		)

		p, found, state, err = parseAtom(s, state, nested)
		if err != nil {
			return nil, err
		}

		if found {
			seq = append(seq, p)
		}
	}

	if state == stateEscaped {
		return nil, s.errorp(MalformedExpression, "bad escape (end of pattern)", s.tell()-1)
	}

	return seq, nil
}

// parseAtom reads one character and parses the atom starting with it, followed by its repetition.
// If the character is a backslash, no atom is produced and the returned state is stateEscaped.
func parseAtom(s *source, state scanState, nested bool) (Pattern, bool, scanState, error) {
	start := s.tell()
	c, _ := s.read()

	if state == stateEscaped {
		// escaping strips all special meaning
		rep, err := parseRepetition(s)
		if err != nil {
			return Pattern{}, false, stateNormal, err
		}

		return newPattern(Literal{C: c}, rep), true, stateNormal, nil
	}

	var (
		sub SubPattern
		err error
	)

	switch {
	case c == '\\':
		return Pattern{}, false, stateEscaped, nil
	case c == '.':
		sub = Wildcard{}
	case c == '[':
		sub, err = parseBracket(s, start)
	case c == '(':
		if nested {
			return Pattern{}, false, state, s.errorp(MalformedExpression, "nested groups are not supported", start)
		}

		sub, err = parseAlternative(s, start)
	case c == '^' || c == '$':
		err = s.errorc(MisusedAnchorCharacter, "anchor %s is only allowed at the edges of the pattern", c, start)
	case c == '?' || c == '*' || c == '+' || c == '{':
		err = s.errorc(MalformedExpression, "nothing to repeat with %s", c, start)
	case c == ')':
		err = s.errorp(MalformedExpression, "unbalanced parenthesis", start)
	case c == ']' || c == '}':
		err = s.errorc(MalformedExpression, "unbalanced %s", c, start)
	case isLiteralChar(c):
		sub = Literal{C: c}
	default:
		err = s.errorc(NotASCIICharacter, "bad character %s", c, start)
	}

	if err != nil {
		return Pattern{}, false, state, err
	}

	rep, err := parseRepetition(s)
	if err != nil {
		return Pattern{}, false, state, err
	}

	return newPattern(sub, rep), true, stateNormal, nil
}

// parseBracket parses a bracket expression.
// This function is called after the opening '[' at position `start` has been consumed.
// Predefined classes, ranges and single characters may be freely mixed.
func parseBracket(s *source, start int) (SubPattern, error) {
	negated := s.match('^')

	var items []SetItem

	for first := true; ; first = false {
		here := s.tell()

		c, ok := s.read()
		if !ok {
			return nil, s.errorp(NotTerminatedProperly, "unterminated bracket expression", start)
		}

		switch {
		case c == ']' && !first:
			return BracketedSet{Items: items, Negated: negated}, nil

		case c == '[':
			next, ok := s.peek()
			switch {
			case !ok:
				return nil, s.errorp(NotTerminatedProperly, "unterminated bracket expression", start)
			case next == ':':
				s.read()

				class, err := parseClass(s, here)
				if err != nil {
					return nil, err
				}

				items = append(items, class)
			case next == '.':
				return nil, s.errorp(UnknownGuardCharacter, "collating symbols are not supported", here)
			case next == '=':
				return nil, s.errorp(UnknownGuardCharacter, "equivalence classes are not supported", here)
			default:
				return nil, s.errorc(UnknownGuardCharacter, "unknown guard character %s", next, here+1)
			}

		case c == '\\':
			e, ok := s.read()
			if !ok {
				return nil, s.errorp(MalformedExpression, "bad escape (end of pattern)", here)
			}

			items = appendChar(items, e)

		case c == '-':
			// a '-' starting an item cannot open a range
			items = appendChar(items, '-')

		default:
			if hi, ok := rangeEnd(s); ok {
				s.read() // '-'
				s.read() // hi

				if c >= hi {
					return nil, s.errorp(IncorrectRepetitionLimits, "bad character range "+s.orig[here:s.tell()], here)
				}

				items = append(items, CharRange{Lo: c, Hi: hi})
			} else {
				items = appendChar(items, c)
			}
		}
	}
}

// rangeEnd checks, if the next characters form the end of a range `-hi`.
// A '-' directly before the closing ']' is a literal.
func rangeEnd(s *source) (rune, bool) {
	if next, ok := s.peek(); !ok || next != '-' {
		return 0, false
	}

	hi, ok := s.peek2()
	if !ok || hi == ']' {
		return 0, false
	}

	return hi, true
}

// parseClass parses a predefined class.
// This function is called after "[:" at position `start` has been consumed.
func parseClass(s *source, start int) (PredefinedClass, error) {
	name := s.nextFunc(unicode.IsLetter)

	if !s.match(':') || !s.match(']') {
		return 0, s.errorp(NotTerminatedProperly, "missing :], unterminated class name", start)
	}

	class, ok := lookupClass(name)
	if !ok {
		return 0, s.errorp(UnknownPredefinedSetName, "unknown class name "+util.Repr(name), start)
	}

	return class, nil
}

// parseAlternative parses the branches of a group.
// This function is called after the opening '(' at position `start` has been consumed.
// The group is closed by the first ')' outside of a bracket expression or escape.
func parseAlternative(s *source, start int) (SubPattern, error) {
	var branches [][]Pattern

	for {
		branch, err := parseSequence(s, true)
		if err != nil {
			return nil, err
		}

		branches = append(branches, branch)

		if s.match('|') {
			continue
		}
		if s.match(')') {
			return Alternative{Branches: branches}, nil
		}

		return nil, s.errorp(NotTerminatedProperly, "missing ), unterminated group", start)
	}
}

// parseRepetition parses the optional quantifier after an atom.
// If no quantifier follows, nothing is consumed and RepeatNone is returned.
func parseRepetition(s *source) (Repetition, error) {
	c, ok := s.peek()
	if !ok {
		return newRepetition(RepeatNone), nil
	}

	switch c {
	case '+':
		s.read()
		return newRepetition(RepeatAtLeastOnce), nil
	case '?':
		s.read()
		return newRepetition(RepeatAtMostOnce), nil
	case '*':
		s.read()
		return newRepetition(RepeatZeroOrMore), nil
	case '{':
		return parseBraces(s)
	default:
		return newRepetition(RepeatNone), nil
	}
}

// parseBraces parses a counted repetition `{n}`, `{n,}`, `{,m}` or `{n,m}`.
func parseBraces(s *source) (Repetition, error) {
	here := s.tell()
	s.read() // '{'

	lo := s.nextFunc(unicode.IsDigit)

	var hi string
	comma := s.match(',')
	if comma {
		hi = s.nextFunc(unicode.IsDigit)
	}

	pos := s.tell()
	c, ok := s.read()
	if !ok {
		return Repetition{}, s.errorp(MalformedExpression, "missing }, unterminated repetition", here)
	}
	if c != '}' {
		if c == ',' {
			return Repetition{}, s.errorp(MalformedExpression, "multiple commas in repetition", pos)
		}

		return Repetition{}, s.errorc(MalformedExpression, "bad character %s in repetition", c, pos)
	}

	switch {
	case !comma:
		if lo == "" {
			return Repetition{}, s.errorp(MalformedExpression, "missing repetition count", here)
		}

		n, err := parseCount(s, lo, here+1)
		if err != nil {
			return Repetition{}, err
		}

		return Exactly(n), nil

	case lo == "" && hi == "":
		return Repetition{}, s.errorp(MalformedExpression, "missing repetition count", here)

	case lo == "":
		m, err := parseCount(s, hi, here+2)
		if err != nil {
			return Repetition{}, err
		}

		return AtMost(m), nil

	case hi == "":
		n, err := parseCount(s, lo, here+1)
		if err != nil {
			return Repetition{}, err
		}

		return AtLeast(n), nil

	default:
		n, err := parseCount(s, lo, here+1)
		if err != nil {
			return Repetition{}, err
		}

		m, err := parseCount(s, hi, here+1+len(lo)+1)
		if err != nil {
			return Repetition{}, err
		}

		if n > m {
			return Repetition{}, s.errorp(IncorrectRepetitionLimits, "min repeat greater than max repeat", here)
		}

		return InRange(n, m), nil
	}
}

// parseCount converts the digits of a repetition into an integer.
// Digits outside of the ASCII range and values that overflow are reported as NotANumber.
func parseCount(s *source, digits string, pos int) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil || n >= maxRepeat {
		return 0, s.errorp(NotANumber, fmt.Sprintf("repetition count %s is not a number", util.Repr(digits)), pos)
	}

	return n, nil
}

// Literal returns the matched text, if the expression only consists of single literals
// without anchors and quantifiers.
func (e *Expression) Literal() (string, bool) {
	if e.Anchor != AnchorNone {
		return "", false
	}

	var b strings.Builder
	for _, p := range e.Patterns {
		l, ok := p.Sub.(Literal)
		if !ok || p.Repetition.Kind != RepeatNone {
			return "", false
		}

		b.WriteRune(l.C)
	}

	return b.String(), true
}
