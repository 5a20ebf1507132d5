package tourism

import (
	"strings"
	"unicode/utf16"

	databridge "github.com/opendatakr/databridge"
)

// decodeResultStrings repairs every string field of a normalized result in
// place. Some upstream service variants double-escape non-ASCII text,
// returning literal \uXXXX sequences inside already-decoded JSON strings.
func decodeResultStrings(result *databridge.NormalizedResult) {
	for _, record := range result.Items {
		for field, value := range record {
			record[field] = decodeUnicodeEscapes(value)
		}
	}
}

// decodeUnicodeEscapes resolves literal \uXXXX sequences (including
// surrogate pairs) embedded in s. Strings without such sequences are
// returned unchanged, and if any sequence is malformed the whole string is
// returned as-is rather than half-decoded.
func decodeUnicodeEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	decoded, ok := tryDecodeEscapes(s)
	if !ok {
		return s
	}
	return decoded
}

func tryDecodeEscapes(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) || s[i+1] != 'u' {
			b.WriteByte(s[i])
			i++
			continue
		}
		r, width, ok := parseEscape(s[i:])
		if !ok {
			return "", false
		}
		b.WriteRune(r)
		i += width
	}
	return b.String(), true
}

// parseEscape decodes one \uXXXX sequence at the start of s, consuming a
// following low surrogate when the first code unit is a high surrogate.
func parseEscape(s string) (rune, int, bool) {
	u1, ok := parseHex4(s)
	if !ok {
		return 0, 0, false
	}
	if !utf16.IsSurrogate(rune(u1)) {
		return rune(u1), 6, true
	}
	// A lone surrogate cannot be represented; require a valid pair.
	if len(s) < 12 || s[6] != '\\' || s[7] != 'u' {
		return 0, 0, false
	}
	u2, ok := parseHex4(s[6:])
	if !ok {
		return 0, 0, false
	}
	r := utf16.DecodeRune(rune(u1), rune(u2))
	if r == 0xFFFD {
		return 0, 0, false
	}
	return r, 12, true
}

// parseHex4 reads the four hex digits of a \uXXXX prefix.
func parseHex4(s string) (uint16, bool) {
	if len(s) < 6 {
		return 0, false
	}
	var v uint16
	for i := 2; i < 6; i++ {
		c := s[i]
		var d uint16
		switch {
		case c >= '0' && c <= '9':
			d = uint16(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint16(c-'A') + 10
		default:
			return 0, false
		}
		v = v<<4 | d
	}
	return v, true
}
