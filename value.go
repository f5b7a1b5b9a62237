package grep

import (
	"fmt"
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/magnetde/starlark-grep/engine"
	"github.com/magnetde/starlark-grep/util"
)

// Pattern is a starlark representation of a compiled pattern.
type Pattern struct {
	pattern string
	matcher *engine.Matcher
}

// newPattern creates a new pattern object, which is also a Starlark value.
func newPattern(str string, m *engine.Matcher) *Pattern {
	return &Pattern{
		pattern: str,
		matcher: m,
	}
}

// Check, if the type satisfies the interfaces.
var (
	_ starlark.Value      = (*Pattern)(nil)
	_ starlark.HasAttrs   = (*Pattern)(nil)
	_ starlark.Comparable = (*Pattern)(nil)
)

// patternValue returns the original pattern string.
func (p *Pattern) patternValue() starlark.String { return starlark.String(p.pattern) }

func (p *Pattern) String() string {
	r := util.Repr(p.pattern)
	if len(r) > 200 {
		r = r[:200]
	}

	return "grep.compile(" + r + ")"
}

func (p *Pattern) Type() string          { return "pattern" }
func (p *Pattern) Freeze()               {}
func (p *Pattern) Truth() starlark.Bool  { return p.pattern != "" }
func (p *Pattern) Hash() (uint32, error) { return p.patternValue().Hash() }

// Methods of the pattern object.
var patternMethods = map[string]*starlark.Builtin{
	"match":   starlark.NewBuiltin("match", patternMatch),
	"search":  starlark.NewBuiltin("search", patternSearch),
	"findall": starlark.NewBuiltin("findall", patternFindall),
	"filter":  starlark.NewBuiltin("filter", patternFilter),
}

// patternMembers contains members of the pattern object.
var patternMembers = map[string]func(p *Pattern) starlark.Value{
	"pattern": func(p *Pattern) starlark.Value { return p.patternValue() },
	"anchor":  func(p *Pattern) starlark.Value { return starlark.String(p.matcher.Expression().Anchor.String()) },
	"backend": func(p *Pattern) starlark.Value { return starlark.String(p.matcher.Backend().String()) },
}

// Attr gets a value for a string attribute.
func (p *Pattern) Attr(name string) (starlark.Value, error) {
	if o, ok := patternMethods[name]; ok {
		return o.BindReceiver(p), nil
	}

	if o, ok := patternMembers[name]; ok {
		return o(p), nil
	}

	return nil, nil
}

// AttrNames lists available dot expression strings.
func (p *Pattern) AttrNames() []string {
	names := make([]string, 0, len(patternMethods)+len(patternMembers))

	for name := range patternMethods {
		names = append(names, name)
	}
	for name := range patternMembers {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

func (p *Pattern) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	o := y.(*Pattern)

	switch op {
	case syntax.EQL:
		return p.pattern == o.pattern, nil
	case syntax.NEQ:
		return p.pattern != o.pattern, nil
	default:
		return false, fmt.Errorf("%s %s %s not implemented", p.Type(), op, o.Type())
	}
}

// match - see `grepMatch`.
func (p *Pattern) match(line string) (starlark.Value, error) {
	ok, err := p.matcher.MatchString(line)
	if err != nil {
		return nil, err
	}

	return starlark.Bool(ok), nil
}

// search - see `grepSearch`.
func (p *Pattern) search(line string) (starlark.Value, error) {
	loc, err := p.matcher.Find(line)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return starlark.None, nil
	}

	return newMatch(p, line, loc[0], loc[1]), nil
}

// findall - see `grepFindall`.
func (p *Pattern) findall(line string) (starlark.Value, error) {
	locs, err := p.matcher.FindAll(line)
	if err != nil {
		return nil, err
	}

	res := make([]starlark.Value, 0, len(locs))
	for _, loc := range locs {
		res = append(res, starlark.String(line[loc[0]:loc[1]]))
	}

	return starlark.NewList(res), nil
}

// filter - see `grepFilter`.
func (p *Pattern) filter(lines starlark.Iterable, invert bool) (starlark.Value, error) {
	iter := lines.Iterate()
	defer iter.Done()

	var res []starlark.Value

	var v starlark.Value
	for iter.Next(&v) {
		line, ok := starlark.AsString(v)
		if !ok {
			return nil, fmt.Errorf("filter: got %s, want str", v.Type())
		}

		ok, err := p.matcher.MatchString(line)
		if err != nil {
			return nil, err
		}

		if ok != invert {
			res = append(res, v)
		}
	}

	return starlark.NewList(res), nil
}

// patternMatch - see `grepMatch`.
func patternMatch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var line string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "line", &line); err != nil {
		return nil, err
	}

	return b.Receiver().(*Pattern).match(line)
}

// patternSearch - see `grepSearch`.
func patternSearch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var line string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "line", &line); err != nil {
		return nil, err
	}

	return b.Receiver().(*Pattern).search(line)
}

// patternFindall - see `grepFindall`.
func patternFindall(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var line string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "line", &line); err != nil {
		return nil, err
	}

	return b.Receiver().(*Pattern).findall(line)
}

// patternFilter - see `grepFilter`.
func patternFilter(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		lines  starlark.Iterable
		invert bool
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "lines", &lines, "invert?", &invert); err != nil {
		return nil, err
	}

	return b.Receiver().(*Pattern).filter(lines, invert)
}

// Match is the result of a successful search.
// Start and end are byte offsets into the searched line.
type Match struct {
	pattern *Pattern
	line    string
	start   int
	end     int
}

// newMatch creates a new match object.
func newMatch(p *Pattern, line string, start, end int) *Match {
	return &Match{
		pattern: p,
		line:    line,
		start:   start,
		end:     end,
	}
}

// Check, if the type satisfies the interfaces.
var (
	_ starlark.Value      = (*Match)(nil)
	_ starlark.HasAttrs   = (*Match)(nil)
	_ starlark.Comparable = (*Match)(nil)
)

// text returns the matched part of the line.
func (m *Match) text() string {
	return m.line[m.start:m.end]
}

func (m *Match) String() string {
	return fmt.Sprintf("<grep.match object; span=(%d, %d), match=%s>", m.start, m.end, util.Repr(m.text()))
}

func (m *Match) Type() string         { return "match" }
func (m *Match) Freeze()              {}
func (m *Match) Truth() starlark.Bool { return true }

func (m *Match) Hash() (uint32, error) {
	h, _ := m.pattern.Hash() // string type; no error possible

	tmp, _ := starlark.String(m.text()).Hash() // string type; no error possible
	tmp ^= uint32(m.start) ^ uint32(m.end)

	h ^= tmp
	h *= 16777619

	return h, nil
}

// matchMethods contains methods of the match object.
var matchMethods = map[string]*starlark.Builtin{
	"group": starlark.NewBuiltin("group", matchGroup),
	"start": starlark.NewBuiltin("start", matchStart),
	"end":   starlark.NewBuiltin("end", matchEnd),
	"span":  starlark.NewBuiltin("span", matchSpan),
}

// matchMembers contains members of the match object.
var matchMembers = map[string]func(m *Match) starlark.Value{
	"string": func(m *Match) starlark.Value { return starlark.String(m.line) },
	"re":     func(m *Match) starlark.Value { return m.pattern },
}

// Attr gets a value for a string attribute.
func (m *Match) Attr(name string) (starlark.Value, error) {
	if o, ok := matchMethods[name]; ok {
		return o.BindReceiver(m), nil
	}

	if o, ok := matchMembers[name]; ok {
		return o(m), nil
	}

	return nil, nil
}

// AttrNames lists available dot expression strings.
func (m *Match) AttrNames() []string {
	names := make([]string, 0, len(matchMethods)+len(matchMembers))

	for name := range matchMethods {
		names = append(names, name)
	}
	for name := range matchMembers {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

func (m *Match) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	o := y.(*Match)

	switch op {
	case syntax.EQL:
		return matchEquals(m, o), nil
	case syntax.NEQ:
		return !matchEquals(m, o), nil
	default:
		return false, fmt.Errorf("%s %s %s not implemented", m.Type(), op, o.Type())
	}
}

func matchEquals(x, y *Match) bool {
	return x.pattern.pattern == y.pattern.pattern && x.line == y.line && x.start == y.start && x.end == y.end
}

// matchGroup returns the matched text.
func matchGroup(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.String(b.Receiver().(*Match).text()), nil
}

// matchStart returns the byte offset of the start of the match.
func matchStart(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.MakeInt(b.Receiver().(*Match).start), nil
}

// matchEnd returns the byte offset of the end of the match.
func matchEnd(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.MakeInt(b.Receiver().(*Match).end), nil
}

// matchSpan returns the tuple `(start, end)`.
func matchSpan(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	m := b.Receiver().(*Match)
	return starlark.Tuple{starlark.MakeInt(m.start), starlark.MakeInt(m.end)}, nil
}
