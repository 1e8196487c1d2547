// Package routepath canonicalizes URL paths and resolves link hrefs against
// compiled route patterns.
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Path canonicalization errors.
var (
	ErrBackslashInPath       = errors.New("path contains backslash")
	ErrNullByteInPath        = errors.New("path contains null byte")
	ErrInvalidPercentEscape  = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot       = errors.New("path escapes root via ..")
	ErrEncodedSlashInSegment = errors.New("encoded slash (%2F) in non-catch-all segment")
)

// Href is a link target split into its parts.
type Href struct {
	Path  string
	Query string
	Hash  string
}

// ParseHref splits s into path, query (without "?") and hash (without "#").
func ParseHref(s string) Href {
	var h Href
	s, h.Hash, _ = strings.Cut(s, "#")
	h.Path, h.Query, _ = strings.Cut(s, "?")
	return h
}

// String reassembles the href.
func (h Href) String() string {
	s := h.Path
	if h.Query != "" {
		s += "?" + h.Query
	}
	if h.Hash != "" {
		s += "#" + h.Hash
	}
	return s
}

// Canonicalize normalizes an absolute URL path:
//   - a missing leading slash is added
//   - repeated slashes collapse (/blog//post → /blog/post)
//   - "." segments are removed and ".." segments resolved
//   - the trailing slash is removed (except for "/")
//
// Paths containing a backslash, a NUL byte, an invalid percent-escape, or a
// ".." that would climb above the root are rejected.
func Canonicalize(path string) (string, error) {
	if err := checkPath(path); err != nil {
		return "", err
	}

	var out []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return "", ErrPathEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/"), nil
}

func checkPath(path string) error {
	if strings.Contains(path, "\\") {
		return ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		return validatePercentEscapes(path)
	}
	return nil
}

// validatePercentEscapes checks that every "%" starts a %XX hex escape.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// DecodeSegment decodes a single matched path segment. Outside catch-all
// segments a decoded "/" is rejected, since it would smuggle an extra
// segment past the matcher.
func DecodeSegment(segment string, isCatchAll bool) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	if !isCatchAll && strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInSegment
	}
	return decoded, nil
}
