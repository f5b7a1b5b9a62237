package pattern

import "slices"

// Expression is the result of a parse: an anchor and the ordered sequence of patterns.
// The order of the patterns is the match order.
type Expression struct {
	Anchor   Anchor
	Patterns []Pattern
}

// Pattern is one atomic matchable unit together with its repetition.
type Pattern struct {
	Sub        SubPattern
	Repetition Repetition
}

// Repetition describes how many consecutive occurrences of an atom are matched.
// Min and Max are only meaningful for the kinds, that carry counts:
// RepeatExactly and RepeatAtLeast use Min, RepeatAtMost uses Max and RepeatInRange uses both.
type Repetition struct {
	Kind RepetitionKind
	Min  int
	Max  int
}

// SubPattern is the atom of a pattern.
// Its implementations are Wildcard, Literal, BracketedSet and Alternative.
type SubPattern interface {
	subPattern()
}

// Wildcard matches any single character; `.`.
type Wildcard struct{}

// Literal matches exactly one character.
type Literal struct {
	C rune
}

// BracketedSet matches one character of the union of its items; `[...]`.
// If Negated is set, it matches one character outside of that union; `[^...]`.
type BracketedSet struct {
	Items   []SetItem
	Negated bool
}

// Alternative matches one of its branches; `(a|b|c)`.
// Each branch is a full sequence of patterns.
type Alternative struct {
	Branches [][]Pattern
}

func (Wildcard) subPattern()     {}
func (Literal) subPattern()      {}
func (BracketedSet) subPattern() {}
func (Alternative) subPattern()  {}

// SetItem is a member of a bracket expression.
// Its implementations are PredefinedClass, CharRange and CustomChars.
type SetItem interface {
	setItem()
}

// CharRange is a character range with inclusive bounds; `a-z`.
// The parser guarantees `Lo < Hi`.
type CharRange struct {
	Lo rune
	Hi rune
}

// CustomChars is an ordered set of individual characters of a bracket expression.
type CustomChars []rune

func (PredefinedClass) setItem() {}
func (CharRange) setItem()       {}
func (CustomChars) setItem()     {}

// Contains reports whether the character lies within the range.
func (r CharRange) Contains(c rune) bool {
	return r.Lo <= c && c <= r.Hi
}

// Contains reports whether the character is a member of the set.
func (cc CustomChars) Contains(c rune) bool {
	return slices.Contains(cc, c)
}

// Contains reports whether the set matches the character.
// Negated sets match every character not contained in any item.
func (b BracketedSet) Contains(c rune) bool {
	found := false
	for _, item := range b.Items {
		if itemContains(item, c) {
			found = true
			break
		}
	}

	return found != b.Negated
}

// itemContains reports whether the set item contains the character.
func itemContains(item SetItem, c rune) bool {
	switch t := item.(type) {
	case PredefinedClass:
		return t.Contains(c)
	case CharRange:
		return t.Contains(c)
	case CustomChars:
		return t.Contains(c)
	}

	return false
}

// Equal checks, if two expressions are structurally equal.
func (e *Expression) Equal(o *Expression) bool {
	if e == nil || o == nil {
		return e == o
	}

	return e.Anchor == o.Anchor && patternsEqual(e.Patterns, o.Patterns)
}

// patternsEqual compares two pattern sequences element by element.
func patternsEqual(a, b []Pattern) bool {
	return slices.EqualFunc(a, b, func(p1, p2 Pattern) bool {
		return p1.equals(p2)
	})
}

// equals checks, if two patterns are equal by comparing their repetition and their subpatterns.
func (p Pattern) equals(o Pattern) bool {
	if p.Repetition != o.Repetition {
		return false
	}

	switch t := p.Sub.(type) {
	case Wildcard:
		_, ok := o.Sub.(Wildcard)
		return ok
	case Literal:
		u, ok := o.Sub.(Literal)
		return ok && t == u
	case BracketedSet:
		u, ok := o.Sub.(BracketedSet)
		return ok && t.Negated == u.Negated && slices.EqualFunc(t.Items, u.Items, itemsEqual)
	case Alternative:
		u, ok := o.Sub.(Alternative)
		return ok && slices.EqualFunc(t.Branches, u.Branches, patternsEqual)
	}

	return false
}

// itemsEqual compares two set items.
func itemsEqual(a, b SetItem) bool {
	switch t := a.(type) {
	case PredefinedClass, CharRange:
		return a == b
	case CustomChars:
		u, ok := b.(CustomChars)
		return ok && slices.Equal(t, u)
	}

	return false
}

// newPattern creates a new pattern from an atom and its repetition.
func newPattern(sub SubPattern, rep Repetition) Pattern {
	return Pattern{
		Sub:        sub,
		Repetition: rep,
	}
}

// newRepetition creates a repetition without counts.
// Valid kinds are RepeatNone, RepeatAtMostOnce, RepeatAtLeastOnce and RepeatZeroOrMore.
func newRepetition(kind RepetitionKind) Repetition {
	return Repetition{Kind: kind}
}

// Exactly returns the repetition `{n}`.
func Exactly(n int) Repetition {
	return Repetition{Kind: RepeatExactly, Min: n, Max: n}
}

// AtLeast returns the repetition `{n,}`.
func AtLeast(n int) Repetition {
	return Repetition{Kind: RepeatAtLeast, Min: n}
}

// AtMost returns the repetition `{,m}`.
func AtMost(m int) Repetition {
	return Repetition{Kind: RepeatAtMost, Max: m}
}

// InRange returns the repetition `{n,m}`.
func InRange(n, m int) Repetition {
	return Repetition{Kind: RepeatInRange, Min: n, Max: m}
}

// Bounds returns the minimum and maximum number of occurrences of the repetition.
// An unbounded maximum is reported as -1.
func (r Repetition) Bounds() (int, int) {
	switch r.Kind {
	case RepeatAtMostOnce:
		return 0, 1
	case RepeatAtLeastOnce:
		return 1, -1
	case RepeatZeroOrMore:
		return 0, -1
	case RepeatExactly:
		return r.Min, r.Min
	case RepeatAtLeast:
		return r.Min, -1
	case RepeatAtMost:
		return 0, r.Max
	case RepeatInRange:
		return r.Min, r.Max
	default:
		return 1, 1
	}
}

// appendChar adds the character to the last item of the set, if it is a CustomChars item.
// Otherwise a new CustomChars item is appended. Characters, that are already part of the item, are skipped.
func appendChar(items []SetItem, c rune) []SetItem {
	if n := len(items); n > 0 {
		if cc, ok := items[n-1].(CustomChars); ok {
			if !cc.Contains(c) {
				items[n-1] = append(cc, c)
			}
			return items
		}
	}

	return append(items, CustomChars{c})
}
