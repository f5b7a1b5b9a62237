package pattern

import (
	"strings"
	"unicode/utf8"
)

// metaBytes contains 16 * 8 = 128 bits, where each bit represents one byte value.
// If the i-th bit is 1, the i-th byte is a metacharacter of the pattern grammar.
// This array represents the following bytes: "\\.[]()^$+*?{}".
var metaBytes = [16]byte{
	0x00, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00,
	0x04, 0x04, 0x04, 0xa4, 0x20, 0xa0, 0x24, 0x08,
}

// isMeta reports whether the character has a special meaning outside of bracket expressions.
func isMeta(c rune) bool {
	if c < 0 || c >= utf8.RuneSelf {
		return false
	}

	b := byte(c)
	return metaBytes[b%16]&(1<<(b/16)) != 0
}

// isLiteralChar reports whether the character stands for itself without escaping.
// These are all printable ASCII characters except the metacharacters.
func isLiteralChar(c rune) bool {
	return ' ' <= c && c <= '~' && !isMeta(c)
}

// Escape returns a pattern that matches the text literally.
// Every character, that would not be parsed as a literal, is prefixed with a backslash.
// The alternation separator `|` is escaped as well, so the result can be embedded in a group.
func Escape(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, c := range text {
		if !isLiteralChar(c) || c == '|' {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}

	return b.String()
}
