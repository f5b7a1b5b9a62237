package grep

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.starlark.net/starlark"

	"github.com/magnetde/starlark-grep/engine"
	"github.com/magnetde/starlark-grep/pattern"
)

// Default cache size; 32 should be more than enough, because Starlark scripts stay relatively small.
const defaultCacheSize = 32

// Module is a module type used for the grep module.
// A new type is implemented instead of using the previous `starlarkstruct.Module` type,
// since the module contains a LRU cache for compiled patterns.
// When the cache exceeds the maximum size, the oldest used element is purged.
// The cache is safe for concurrent use, so one module may be shared by multiple threads.
type Module struct {
	members starlark.StringDict

	cache *lru.Cache[string, *Pattern] // nil, if caching is disabled
	opts  []engine.Option
}

// NewModule creates a new grep module.
// The options are passed to the engine on every compilation.
func NewModule(opts ...engine.Option) *Module {
	members := starlark.StringDict{
		"parse":   starlark.NewBuiltin("parse", grepParse),
		"dump":    starlark.NewBuiltin("dump", grepDump),
		"compile": starlark.NewBuiltin("compile", grepCompile),
		"purge":   starlark.NewBuiltin("purge", grepPurge),

		"match":   starlark.NewBuiltin("match", grepMatch),
		"search":  starlark.NewBuiltin("search", grepSearch),
		"findall": starlark.NewBuiltin("findall", grepFindall),
		"filter":  starlark.NewBuiltin("filter", grepFilter),
		"escape":  starlark.NewBuiltin("escape", grepEscape),
	}

	m := &Module{
		members: members,
		opts:    opts,
	}
	m.SetCacheSize(defaultCacheSize)

	return m
}

// SetCacheSize replaces the pattern cache with an empty one of the given size.
// A size of zero disables caching.
func (m *Module) SetCacheSize(size int) {
	if size <= 0 {
		m.cache = nil
		return
	}

	m.cache, _ = lru.New[string, *Pattern](size) // only fails for non-positive sizes
}

// Check, if the type satisfies the interfaces.
var (
	_ starlark.Value    = (*Module)(nil)
	_ starlark.HasAttrs = (*Module)(nil)
)

func (m *Module) Freeze()               { m.members.Freeze() }
func (m *Module) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable: %s", m.Type()) }
func (m *Module) String() string        { return "<module grep>" }
func (m *Module) Truth() starlark.Bool  { return true }
func (m *Module) Type() string          { return "module" }

func (m *Module) Attr(name string) (starlark.Value, error) {
	if v, ok := m.members[name]; ok {
		if b, ok := v.(*starlark.Builtin); ok {
			return b.BindReceiver(m), nil
		}

		return v, nil
	}

	return nil, nil
}
func (m *Module) AttrNames() []string { return m.members.Keys() }

// compile compiles a pattern. If the pattern is already in the cache,
// the compiled pattern is returned from the cache.
// Else, the pattern is compiled and then added to the cache.
func (m *Module) compile(str string) (*Pattern, error) {
	if m.cache != nil {
		if p, ok := m.cache.Get(str); ok {
			return p, nil
		}
	}

	matcher, err := engine.CompileString(str, m.opts...)
	if err != nil {
		return nil, err
	}

	p := newPattern(str, matcher)

	if m.cache != nil {
		m.cache.Add(str, p)
	}

	return p, nil
}

// purge clears the pattern cache.
func (m *Module) purge() {
	if m.cache != nil {
		m.cache.Purge()
	}
}

// patternParam is a Starlark type, representing the possible types of the pattern parameter.
type patternParam struct {
	compiled *Pattern
	raw      string
}

var _ starlark.Unpacker = (*patternParam)(nil)

func (p *patternParam) Unpack(v starlark.Value) error {
	switch t := v.(type) {
	case *Pattern:
		p.compiled = t
	case starlark.String:
		p.raw = string(t)
	default:
		return errors.New("first argument must be string or compiled pattern")
	}

	return nil
}

// compilePattern compiles a pattern by using the cache of the module.
// The builtin receiver of the first parameter must be of type `*Module`.
func compilePattern(b *starlark.Builtin, p patternParam) (*Pattern, error) {
	if p.compiled != nil {
		return p.compiled, nil
	}

	return b.Receiver().(*Module).compile(p.raw)
}

// grepParse parses the pattern and returns its syntax tree as frozen struct.
func grepParse(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var str string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &str); err != nil {
		return nil, err
	}

	expr, err := pattern.Parse(str)
	if err != nil {
		return nil, err
	}

	return expressionValue(expr), nil
}

// grepDump returns the debug tree of the pattern.
func grepDump(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var p patternParam
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &p); err != nil {
		return nil, err
	}

	if p.compiled != nil {
		return starlark.String(p.compiled.matcher.Expression().Dump()), nil
	}

	expr, err := pattern.Parse(p.raw)
	if err != nil {
		return nil, err
	}

	return starlark.String(expr.Dump()), nil
}

// grepCompile compiles a pattern into a pattern object,
// which can be used for matching using its `match`, `search` and other methods.
// Because all member functions of the `grep` module cache compiled patterns,
// this function is only necessary, if the number of patterns exceeds the cache size.
func grepCompile(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var p patternParam
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &p); err != nil {
		return nil, err
	}

	return compilePattern(b, p)
}

// grepPurge clears the pattern cache.
func grepPurge(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	b.Receiver().(*Module).purge()

	return starlark.None, nil
}

// grepMatch reports whether the line contains a match of the pattern.
func grepMatch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		p    patternParam
		line string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &p, "line", &line); err != nil {
		return nil, err
	}

	c, err := compilePattern(b, p)
	if err != nil {
		return nil, err
	}

	return c.match(line)
}

// grepSearch scans through the line looking for the first location where the pattern produces a match,
// and returns a corresponding `Match`. Returns `None` if no position in the line matches the pattern.
func grepSearch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		p    patternParam
		line string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &p, "line", &line); err != nil {
		return nil, err
	}

	c, err := compilePattern(b, p)
	if err != nil {
		return nil, err
	}

	return c.search(line)
}

// grepFindall returns all non-overlapping matches of the pattern in the line as list of strings.
func grepFindall(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		p    patternParam
		line string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &p, "line", &line); err != nil {
		return nil, err
	}

	c, err := compilePattern(b, p)
	if err != nil {
		return nil, err
	}

	return c.findall(line)
}

// grepFilter returns the lines, that match the pattern.
// If `invert` is true, the lines, that do not match, are returned instead.
func grepFilter(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		p      patternParam
		lines  starlark.Iterable
		invert bool
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &p, "lines", &lines, "invert?", &invert); err != nil {
		return nil, err
	}

	c, err := compilePattern(b, p)
	if err != nil {
		return nil, err
	}

	return c.filter(lines, invert)
}

// grepEscape escapes all special characters in the text.
func grepEscape(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "text", &text); err != nil {
		return nil, err
	}

	return starlark.String(pattern.Escape(text)), nil
}
