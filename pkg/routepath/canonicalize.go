// Package routepath holds the low-level character rules shared by the URL
// serializer and link resolution: which bytes may appear in a navigation
// string, how percent-escapes are validated, and how "." and ".." segments
// resolve against a base path.
package routepath

import (
	"errors"
	"strings"
)

// Path errors.
var (
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrForbiddenChar        = errors.New("forbidden character")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
)

// CheckChars reports the offset of the first byte that may never appear in a
// navigation string, along with the matching error. Control characters,
// spaces and backslashes are rejected, and every '%' must start a valid
// two-digit hex escape.
//
// Returns -1 and nil when the input is clean.
func CheckChars(input string) (int, error) {
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c < 0x20 || c == 0x7f:
			return i, ErrForbiddenChar
		case c == ' ' || c == '\\':
			return i, ErrForbiddenChar
		case c == '%':
			if i+2 >= len(input) || !isHexDigit(input[i+1]) || !isHexDigit(input[i+2]) {
				return i, ErrInvalidPercentEscape
			}
			i += 2
		}
	}
	return -1, nil
}

// isHexDigit returns true if c is a valid hex digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Resolve applies a slash-separated relative path to base.
//
// A leading "/" makes rel absolute and base is ignored. Empty and "."
// segments are dropped; ".." pops the previous segment and fails with
// ErrPathEscapesRoot when nothing is left to pop.
//
//	Resolve([]string{"team", "22", "link"}, "../simple") // [team 22 simple]
func Resolve(base []string, rel string) ([]string, error) {
	var result []string
	if !strings.HasPrefix(rel, "/") {
		result = append(result, base...)
	}

	for _, seg := range strings.Split(rel, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(result) == 0 {
				return nil, ErrPathEscapesRoot
			}
			result = result[:len(result)-1]
		default:
			result = append(result, seg)
		}
	}

	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}

// SplitPathAndQuery splits a navigation string at the first '?'.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}
