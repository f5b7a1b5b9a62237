package pattern

import "math"

// Generate string representations of constants.
// To install stringer: go install golang.org/x/tools/cmd/stringer@latest
//go:generate stringer -type=Anchor,RepetitionKind,PredefinedClass,ErrorKind -linecomment -output=constants_string.go

// maxRepeat is the largest count accepted inside `{...}`; the regex engines may have a lower maximum.
const maxRepeat = math.MaxInt

// Anchor is the positional constraint of an expression.
type Anchor uint8

// Possible anchors. A leading `^` sets AnchorStart, a trailing `$` sets AnchorEnd and both together AnchorBoth.
const (
	AnchorNone  Anchor = iota // none
	AnchorStart               // start
	AnchorEnd                 // end
	AnchorBoth                // both
)

// HasStart reports whether the anchor ties the expression to the start of the line.
func (a Anchor) HasStart() bool {
	return a == AnchorStart || a == AnchorBoth
}

// HasEnd reports whether the anchor ties the expression to the end of the line.
func (a Anchor) HasEnd() bool {
	return a == AnchorEnd || a == AnchorBoth
}

// RepetitionKind is the type of the quantifier following an atom.
type RepetitionKind uint8

// Available repetitions:
//
//   - RepeatNone: no quantifier, match exactly once
//   - RepeatAtMostOnce: `?`
//   - RepeatAtLeastOnce: `+`
//   - RepeatZeroOrMore: `*`
//   - RepeatExactly: `{n}`
//   - RepeatAtLeast: `{n,}`
//   - RepeatAtMost: `{,m}`
//   - RepeatInRange: `{n,m}`
const (
	RepeatNone        RepetitionKind = iota // none
	RepeatAtMostOnce                        // at_most_once
	RepeatAtLeastOnce                       // at_least_once
	RepeatZeroOrMore                        // zero_or_more
	RepeatExactly                           // exactly
	RepeatAtLeast                           // at_least
	RepeatAtMost                            // at_most
	RepeatInRange                           // in_range
)

// PredefinedClass is a named POSIX character class, usable inside a bracket expression as `[:name:]`.
type PredefinedClass uint8

// Recognized classes. There is no `cntrl` class.
const (
	ClassAlnum  PredefinedClass = iota // alnum
	ClassAlpha                         // alpha
	ClassBlank                         // blank
	ClassDigit                         // digit
	ClassGraph                         // graph
	ClassLower                         // lower
	ClassUpper                         // upper
	ClassPrint                         // print
	ClassPunct                         // punct
	ClassSpace                         // space
	ClassXDigit                        // xdigit
)

// classNames maps the names between `[:` and `:]` to their class.
var classNames = map[string]PredefinedClass{
	"alnum":  ClassAlnum,
	"alpha":  ClassAlpha,
	"blank":  ClassBlank,
	"digit":  ClassDigit,
	"graph":  ClassGraph,
	"lower":  ClassLower,
	"upper":  ClassUpper,
	"print":  ClassPrint,
	"punct":  ClassPunct,
	"space":  ClassSpace,
	"xdigit": ClassXDigit,
}

// classRanges holds the ASCII ranges of every class, ordered by code point.
var classRanges = [...][]CharRange{
	ClassAlnum:  {{'0', '9'}, {'A', 'Z'}, {'a', 'z'}},
	ClassAlpha:  {{'A', 'Z'}, {'a', 'z'}},
	ClassBlank:  {{'\t', '\t'}, {' ', ' '}},
	ClassDigit:  {{'0', '9'}},
	ClassGraph:  {{'!', '~'}},
	ClassLower:  {{'a', 'z'}},
	ClassUpper:  {{'A', 'Z'}},
	ClassPrint:  {{' ', '~'}},
	ClassPunct:  {{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'}},
	ClassSpace:  {{'\t', '\r'}, {' ', ' '}},
	ClassXDigit: {{'0', '9'}, {'A', 'F'}, {'a', 'f'}},
}

// lookupClass returns the class with the given name.
// Names are case-sensitive.
func lookupClass(name string) (PredefinedClass, bool) {
	c, ok := classNames[name]
	return c, ok
}

// Ranges returns the ASCII code point ranges covered by the class.
// Single characters are represented as ranges with equal bounds.
func (c PredefinedClass) Ranges() []CharRange {
	if int(c) >= len(classRanges) {
		return nil
	}
	return classRanges[c]
}

// Contains reports whether the character belongs to the class.
func (c PredefinedClass) Contains(r rune) bool {
	for _, rg := range c.Ranges() {
		if rg.Lo <= r && r <= rg.Hi {
			return true
		}
	}
	return false
}
