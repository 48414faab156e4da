// escape.go hides backslash-escaped marker characters from the inline patterns.

package md

import (
	"strings"
	"unicode/utf8"
)

// escapable lists the characters a backslash may escape.
const escapable = "\\`*_~[]()#>+-.!{}|"

// Masked text uses a block of private-use runes: maskQuote followed by any
// rune is that rune verbatim, maskQuote+1+i stands for escaped escapable[i].
// User text that already contains a rune from the block is quoted, so the
// encoding is reversible for every input.
const (
	maskQuote rune = '\uE000'
	maskFirst      = maskQuote + 1
	maskLast       = maskFirst + rune(len(escapable)) - 1
)

func inMaskBlock(r rune) bool {
	return r >= maskQuote && r <= maskLast
}

// Mask replaces every backslash escape of an escapable character with a
// sentinel rune that none of the inline patterns match.
func Mask(s string) string {
	if !strings.ContainsRune(s, '\\') && !strings.ContainsFunc(s, inMaskBlock) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == '\\' && i+1 < len(s) && strings.IndexByte(escapable, s[i+1]) >= 0 {
			sb.WriteRune(maskFirst + rune(strings.IndexByte(escapable, s[i+1])))
			i += 2
			continue
		}
		if inMaskBlock(r) {
			sb.WriteRune(maskQuote)
		}
		sb.WriteString(s[i : i+size])
		i += size
	}
	return sb.String()
}

// Unmask decodes masked text, turning each escape into its literal character.
func Unmask(s string) string {
	return unmask(s, false)
}

// unmaskSource decodes masked text back to exactly what Mask was given.
func unmaskSource(s string) string {
	return unmask(s, true)
}

func unmask(s string, keepBackslash bool) string {
	if !strings.ContainsFunc(s, inMaskBlock) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == maskQuote:
			if i < len(s) {
				_, next := utf8.DecodeRuneInString(s[i:])
				sb.WriteString(s[i : i+next])
				i += next
			}
		case inMaskBlock(r):
			if keepBackslash {
				sb.WriteByte('\\')
			}
			sb.WriteByte(escapable[r-maskFirst])
		default:
			sb.WriteString(s[i-size : i])
		}
	}
	return sb.String()
}

// Unescape resolves backslash escapes without interpreting any other markup.
func Unescape(s string) string {
	return Unmask(Mask(s))
}
