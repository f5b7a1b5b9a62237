package engine

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/magnetde/starlark-grep/internal/logger"
	"github.com/magnetde/starlark-grep/pattern"
)

// Backend selects the regex engine used for matching.
type Backend uint8

const (
	// BackendAuto uses the Go `regexp` package and switches to `regexp2`,
	// if the expression cannot be compiled by `regexp`.
	BackendAuto Backend = iota
	// BackendStd always uses the Go `regexp` package.
	BackendStd
	// BackendFallback always uses `regexp2`.
	BackendFallback
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendStd:
		return "std"
	case BackendFallback:
		return "fallback"
	default:
		return "Backend(" + strconv.Itoa(int(b)) + ")"
	}
}

// ParseBackend returns the backend with the given name.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return BackendAuto, nil
	case "std", "re2", "regexp":
		return BackendStd, nil
	case "fallback", "regexp2":
		return BackendFallback, nil
	default:
		return BackendAuto, xerrors.Errorf("unknown engine \"%s\"", name)
	}
}

// options holds the settings of `Compile`.
type options struct {
	backend    Backend
	timeout    time.Duration
	ignoreCase bool
}

// Option configures the compilation of a matcher.
type Option func(*options)

// WithBackend selects the regex engine.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithMatchTimeout limits the duration of a single match.
// Only `regexp2` supports timeouts; the Go `regexp` package runs in linear time and ignores it.
func WithMatchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithIgnoreCase enables case-insensitive matching.
func WithIgnoreCase(enabled bool) Option {
	return func(o *options) {
		o.ignoreCase = enabled
	}
}

// Matcher matches lines against a parsed expression.
// A Matcher is safe for concurrent use.
type Matcher struct {
	expr    *pattern.Expression
	backend Backend
	engine  engine
}

// engine is implemented by both backends.
// All indices are byte offsets into the line.
type engine interface {
	matchString(s string) (bool, error)
	findAll(s string, n int) ([][]int, error)
}

// CompileString parses the pattern and compiles it into a matcher.
func CompileString(str string, opts ...Option) (*Matcher, error) {
	expr, err := pattern.Parse(str)
	if err != nil {
		return nil, err
	}

	return Compile(expr, opts...)
}

// Compile compiles the expression into a matcher.
// With BackendAuto, the Go `regexp` package is tried first. If it rejects the expression,
// for example because of a repetition count above 1000, `regexp2` is used instead.
func Compile(expr *pattern.Expression, opts ...Option) (*Matcher, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := &Matcher{expr: expr}

	switch o.backend {
	case BackendStd:
		e, err := compileStd(expr, &o)
		if err != nil {
			return nil, err
		}

		m.backend, m.engine = BackendStd, e
	case BackendFallback:
		e, err := compileFallback(expr, &o)
		if err != nil {
			return nil, err
		}

		m.backend, m.engine = BackendFallback, e
	case BackendAuto:
		e, err := compileStd(expr, &o)
		if err == nil {
			m.backend, m.engine = BackendStd, e
			break
		}

		logger.Log.Debug("regexp rejected the expression, switching to regexp2",
			zap.String("expr", expr.String()), zap.Error(err))

		f, ferr := compileFallback(expr, &o)
		if ferr != nil {
			return nil, ferr
		}

		m.backend, m.engine = BackendFallback, f
	default:
		return nil, xerrors.Errorf("unknown engine %s", o.backend)
	}

	return m, nil
}

// compileStd compiles the expression with the Go `regexp` package.
func compileStd(expr *pattern.Expression, o *options) (*stdRegex, error) {
	s := expr.Syntax(pattern.DialectRE2)
	if o.ignoreCase {
		s = "(?i)" + s
	}

	r, err := regexp.Compile(s)
	if err != nil {
		return nil, xerrors.Errorf("unable to compile %s: %w", s, err)
	}
	r.Longest() // POSIX leftmost-longest, as grep reports matches

	return &stdRegex{re: r}, nil
}

// compileFallback compiles the expression with `regexp2`.
func compileFallback(expr *pattern.Expression, o *options) (*fallbEngine, error) {
	s := expr.Syntax(pattern.DialectNET)

	flags := regexp2.None | regexp2.RE2
	if o.ignoreCase {
		flags |= regexp2.IgnoreCase
	}

	r, err := regexp2.Compile(s, flags)
	if err != nil {
		return nil, xerrors.Errorf("unable to compile %s with regexp2: %w", s, err)
	}

	if o.timeout > 0 {
		r.MatchTimeout = o.timeout
	}

	return &fallbEngine{re: r}, nil
}

// Expression returns the expression, the matcher was compiled from.
func (m *Matcher) Expression() *pattern.Expression {
	return m.expr
}

// Backend returns the engine, that was selected at compile time.
// It is never BackendAuto.
func (m *Matcher) Backend() Backend {
	return m.backend
}

// String returns the engine syntax of the matcher.
func (m *Matcher) String() string {
	if m.backend == BackendFallback {
		return m.expr.Syntax(pattern.DialectNET)
	}
	return m.expr.String()
}

// MatchString reports whether the line contains a match.
func (m *Matcher) MatchString(line string) (bool, error) {
	ok, err := m.engine.matchString(line)
	if err != nil {
		return false, xerrors.Errorf("match failed: %w", err)
	}

	return ok, nil
}

// Find returns the byte offsets of the leftmost match as pair `[start, end]`.
// If the line does not match, nil is returned.
func (m *Matcher) Find(line string) ([]int, error) {
	a, err := m.engine.findAll(line, 1)
	if err != nil {
		return nil, xerrors.Errorf("match failed: %w", err)
	}
	if len(a) == 0 {
		return nil, nil
	}

	return a[0], nil
}

// FindAll returns the byte offsets of all successive, non-overlapping matches.
func (m *Matcher) FindAll(line string) ([][]int, error) {
	a, err := m.engine.findAll(line, -1)
	if err != nil {
		return nil, xerrors.Errorf("match failed: %w", err)
	}

	return a, nil
}
