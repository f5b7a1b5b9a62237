package pattern

import (
	"fmt"
	"unicode/utf8"

	"github.com/magnetde/starlark-grep/util"
)

// source represents a forward-only reader over the pattern string with one character of lookahead.
// The attributes may only be changed by using its functions.
type source struct {
	orig string // original string
	cur  string // current cursor
}

// init initializes the reader.
func (s *source) init(src string) {
	s.orig = src
	s.cur = src
}

// tell returns the current read position.
func (s *source) tell() int {
	return len(s.orig) - len(s.cur)
}

// eof reports whether all characters were consumed.
func (s *source) eof() bool {
	return len(s.cur) == 0
}

// read reads the next UTF-8 character.
// If the current read position is at the end of the string, then the second return value is false.
// If the next character does not represent a valid UTF-8 character, then the next byte is returned.
// After reading, the current read position is increased.
func (s *source) read() (rune, bool) {
	if len(s.cur) == 0 {
		return 0, false
	}

	c, size := utf8.DecodeRuneInString(s.cur)
	if c == utf8.RuneError && size <= 1 {
		c = rune(s.cur[0])
		size = 1
	}

	s.cur = s.cur[size:]

	return c, true
}

// peek determines the next UTF-8 character.
// This function is equivalent with `read()`, except, that the current read position is not increased.
func (s *source) peek() (rune, bool) {
	if len(s.cur) == 0 {
		return 0, false
	}

	c, size := utf8.DecodeRuneInString(s.cur)
	if c == utf8.RuneError && size <= 1 {
		c = rune(s.cur[0])
	}

	return c, true
}

// peek2 determines the character following the next one, without moving the read position.
func (s *source) peek2() (rune, bool) {
	if len(s.cur) == 0 {
		return 0, false
	}

	_, size := utf8.DecodeRuneInString(s.cur)

	rest := source{cur: s.cur[size:]}
	return rest.peek()
}

// isLast reports whether the next character is the given character and nothing follows it.
func (s *source) isLast(c rune) bool {
	ch, width := utf8.DecodeRuneInString(s.cur)
	return ch == c && width == len(s.cur)
}

// match returns, whether the next character matches the given character.
// If it does, the read position is then moved to the next character.
func (s *source) match(c rune) bool {
	if len(s.cur) == 0 {
		return false
	}

	ch, width := utf8.DecodeRuneInString(s.cur)
	if ch == c {
		s.cur = s.cur[width:]
		return true
	}

	return false
}

// nextFunc returns the string at the current read position, where each character matches the function `fn`.
// The read position is then moved to the first character, that does not match.
func (s *source) nextFunc(fn func(r rune) bool) string {
	e := len(s.cur)
	for i, c := range s.cur {
		if !fn(c) {
			e = i
			break
		}
	}

	res := s.cur[:e]
	s.cur = s.cur[e:]

	return res
}

// errorp returns a new error of the given kind at the given position.
func (s *source) errorp(kind ErrorKind, msg string, pos int) error {
	return &Error{
		Kind:    kind,
		Msg:     msg,
		Pos:     pos,
		Pattern: s.orig,
	}
}

// errorc returns an error about the character `c`, which was read at position `pos`.
// The format must contain exactly one verb, which receives the quoted character.
func (s *source) errorc(kind ErrorKind, format string, c rune, pos int) error {
	return s.errorp(kind, fmt.Sprintf(format, util.RuneRepr(c)), pos)
}
