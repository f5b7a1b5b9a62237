package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Digits of hex strings.
var hexDigits = "0123456789abcdef"

// Repr returns a quoted representation of a pattern string.
// Quotes, backslashes and non-printable characters are escaped.
func Repr(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)

	quote := quoteFor(s)

	b.WriteByte(quote)
	writeEscaped(&b, s, quote)
	b.WriteByte(quote)

	return b.String()
}

// RuneRepr returns a quoted representation of a single character, as it is used in error messages.
func RuneRepr(c rune) string {
	var b strings.Builder

	s := string(c)
	quote := quoteFor(s)

	b.WriteByte(quote)
	writeEscaped(&b, s, quote)
	b.WriteByte(quote)

	return b.String()
}

// quoteFor selects the quote character for a string.
// Single quotes are preferred, unless the string contains a single quote and no double quote.
func quoteFor(s string) byte {
	if strings.IndexByte(s, '\'') < 0 || strings.IndexByte(s, '"') >= 0 {
		return '\''
	}

	return '"'
}

// writeEscaped writes the string to the builder and escapes the quote, backslashes and non-printable characters.
func writeEscaped(b *strings.Builder, s string, quote byte) {
	var ch rune
	for size := 0; len(s) > 0; s = s[size:] {
		ch, size = utf8.DecodeRuneInString(s)

		// Handle utf8 errors
		if ch == utf8.RuneError && size <= 1 {
			b.WriteString(`\x`)
			b.WriteByte(hexDigits[(s[0]>>4)&0xf])
			b.WriteByte(hexDigits[s[0]&0xf])

			size = 1
			continue
		}

		// Escape quotes and backslashes
		if ch == rune(quote) || ch == '\\' {
			b.WriteByte('\\')
			b.WriteByte(byte(ch))
			continue
		}

		// Map special whitespace to '\t', \n', '\r'
		if ch == '\t' {
			b.WriteString(`\t`)
		} else if ch == '\n' {
			b.WriteString(`\n`)
		} else if ch == '\r' {
			b.WriteString(`\r`)
		} else if ch < ' ' || ch == unicode.MaxASCII { // Map non-printable US ASCII to '\xhh'
			b.WriteString(`\x`)
			b.WriteByte(hexDigits[(ch>>4)&0xf])
			b.WriteByte(hexDigits[ch&0xf])
		} else if !unicode.IsPrint(ch) { // Escape non-printable characters
			hexEscape(b, ch)
		} else { // Copy characters as-is
			b.WriteRune(ch)
		}
	}
}

// hexEscape escapes the character to a hex sequence and writes it to the string builder.
func hexEscape(w *strings.Builder, ch rune) {
	w.WriteByte('\\')
	if ch <= 0xff { // Map 8-bit characters to '\xhh'
		w.WriteByte('x')
		w.WriteByte(hexDigits[(ch>>4)&0xf])
		w.WriteByte(hexDigits[ch&0xf])
	} else if ch <= 0xffff { // Map 16-bit characters to '\uxxxx'
		w.WriteByte('u')
		w.WriteByte(hexDigits[(ch>>12)&0xf])
		w.WriteByte(hexDigits[(ch>>8)&0xf])
		w.WriteByte(hexDigits[(ch>>4)&0xf])
		w.WriteByte(hexDigits[ch&0xf])
	} else { // Map 21-bit characters to '\U00xxxxxx'
		w.WriteByte('U')
		w.WriteByte(hexDigits[(ch>>28)&0xf])
		w.WriteByte(hexDigits[(ch>>24)&0xf])
		w.WriteByte(hexDigits[(ch>>20)&0xf])
		w.WriteByte(hexDigits[(ch>>16)&0xf])
		w.WriteByte(hexDigits[(ch>>12)&0xf])
		w.WriteByte(hexDigits[(ch>>8)&0xf])
		w.WriteByte(hexDigits[(ch>>4)&0xf])
		w.WriteByte(hexDigits[ch&0xf])
	}
}
