package routepath

import (
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// Encode percent-encodes s so that it can be embedded in any position of a
// navigation string (path, outlet name, matrix key or value, query key or
// value, fragment) without being mistaken for grammar.
//
// Unreserved characters and the sub-delimiters that carry no meaning in the
// grammar (! $ ' * , @) are kept as is. Everything else, including
// / ( ) ; = & # ? : % and +, is escaped.
func Encode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func shouldEscape(c byte) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
		return false
	}
	switch c {
	case '-', '_', '.', '~', '!', '$', '\'', '*', ',', '@':
		return false
	}
	return true
}

// Decode reverses Encode. A '+' is kept literally; it never means space.
func Decode(s string) (string, error) {
	if !strings.Contains(s, "%") {
		return s, nil
	}
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	return decoded, nil
}
