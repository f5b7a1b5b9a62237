package engine

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// stdRegex is the engine of the Go `regexp` package.
type stdRegex struct {
	re *regexp.Regexp
}

// fallbEngine is the engine of `regexp2`, that matches on runes instead of bytes.
type fallbEngine struct {
	re *regexp2.Regexp
}

var (
	_ engine = (*stdRegex)(nil)
	_ engine = (*fallbEngine)(nil)
)

func (r *stdRegex) matchString(s string) (bool, error) {
	s, _ = replaceInvalidChars(s)
	return r.re.MatchString(s), nil
}

func (r *stdRegex) findAll(s string, n int) ([][]int, error) {
	s, offsets := replaceInvalidChars(s)

	a := r.re.FindAllStringIndex(s, n)
	for _, loc := range a {
		applyOffsets(loc, offsets)
	}

	return a, nil
}

// replaceInvalidChars replaces invalid UTF-8 codepoints with legal ones.
// Each invalid byte `b` is replaced by the character `rune(b)`, which is also how the parser reads
// invalid bytes of a pattern. Without the replacement, the Go regex engine would decode them as `utf8.RuneError`.
// The returned offsets convert indices of the new string back into indices of the original one.
// If the string does not contain any invalid UTF-8 codepoints, the string is returned unchanged,
// and `nil` is returned for the offset slice.
func replaceInvalidChars(s string) (string, []int) {
	if utf8.ValidString(s) { // if no invalid utf8 values exists, we can skip the everything else
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s) + 4) // reserve 4 extra bytes

	offsets := make([]int, 0, len(s)+4+1) // reserve 4 extra offsets (+1 for the last offset)
	offset := 0

	for len(s) > 0 {
		ch, size := utf8.DecodeRuneInString(s)

		if ch != utf8.RuneError || size > 1 {
			b.WriteRune(ch)

			for i := 0; i < size; i++ {
				offsets = append(offsets, offset)
			}
		} else {
			b.WriteRune(rune(s[0]))

			// At this point, `s[0]` is in range 128-255, so the replacement is two bytes long.
			// The second byte does not exist in the original string, so all following offsets
			// must be decreased by one.
			offsets = append(offsets, offset, offset-1)
			offset--
		}

		s = s[size:] // if the rune is not valid, the size returned is 1, so slicing with `size` is correct
	}

	// append a last offset value, that corresponds to `len(s)`
	offsets = append(offsets, offset)

	return b.String(), offsets
}

// applyOffsets converts the indices of a match using the offset slice.
func applyOffsets(a []int, offsets []int) {
	if a == nil || offsets == nil {
		return
	}
	for i, v := range a {
		if v >= 0 {
			a[i] = v + offsets[v]
		}
	}
}

func (r *fallbEngine) matchString(s string) (bool, error) {
	chars, _ := getRuneOffsets(s)
	return r.re.MatchRunes(chars)
}

func (r *fallbEngine) findAll(s string, n int) ([][]int, error) {
	chars, offsets := getRuneOffsets(s)

	m, err := r.re.FindRunesMatch(chars)
	if err != nil {
		return nil, err
	}

	var res [][]int
	for m != nil && (n < 0 || len(res) < n) {
		loc := []int{m.Index, m.Index + m.Length}
		applyOffsets(loc, offsets)

		res = append(res, loc)

		m, err = r.re.FindNextMatch(m)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

// getRuneOffsets splits the string into runes.
// Invalid bytes are converted into the rune with the same value.
// The returned offsets convert rune indices into byte indices.
// For ASCII strings, both indices are equal, so `nil` is returned for the offsets.
func getRuneOffsets(s string) ([]rune, []int) {
	if isASCIIString(s) { // if the string has only ASCII characters, offsets are not necessary
		return []rune(s), nil
	}

	chars := make([]rune, 0, len(s))
	offsets := make([]int, 0, len(s)+1)
	offset := 0

	for len(s) > 0 {
		ch, size := utf8.DecodeRuneInString(s)
		if ch == utf8.RuneError && size <= 1 {
			ch = rune(s[0])
		}

		chars = append(chars, ch)

		offsets = append(offsets, offset)
		offset += size - 1

		s = s[size:]
	}

	offsets = append(offsets, offset)

	return chars, offsets
}

// isASCIIString checks, if the string only contains ASCII characters.
func isASCIIString(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
