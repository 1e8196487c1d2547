package routetree

import (
	"fmt"
	"regexp"
	"strings"
)

// Conventions configures how file names map to route segments.
type Conventions struct {
	// IndexName marks an index route (default "index").
	IndexName string

	// LayoutName marks a pathless layout route (default "_layout").
	LayoutName string

	// ParamPrefix marks a dynamic segment, "$id" (default "$").
	ParamPrefix string

	// SplatName marks a catch-all segment (default "$").
	SplatName string

	// NestingDelimiter splits a file name into nested segments (default ".").
	NestingDelimiter string

	// Extensions are the recognized route file extensions, with dot.
	Extensions []string
}

// DefaultExtensions are the route file extensions recognized by default.
var DefaultExtensions = []string{".go", ".templ", ".tsx", ".ts", ".jsx", ".js", ".mdx", ".md"}

// DefaultConventions returns the standard naming conventions.
func DefaultConventions() Conventions {
	return Conventions{
		IndexName:        "index",
		LayoutName:       "_layout",
		ParamPrefix:      "$",
		SplatName:        "$",
		NestingDelimiter: ".",
		Extensions:       append([]string(nil), DefaultExtensions...),
	}
}

// withDefaults fills empty fields from DefaultConventions.
func (c Conventions) withDefaults() Conventions {
	d := DefaultConventions()
	if c.IndexName == "" {
		c.IndexName = d.IndexName
	}
	if c.LayoutName == "" {
		c.LayoutName = d.LayoutName
	}
	if c.ParamPrefix == "" {
		c.ParamPrefix = d.ParamPrefix
	}
	if c.SplatName == "" {
		c.SplatName = d.SplatName
	}
	if c.NestingDelimiter == "" {
		c.NestingDelimiter = d.NestingDelimiter
	}
	if len(c.Extensions) == 0 {
		c.Extensions = d.Extensions
	}
	return c
}

// HasExtension reports whether file ends in a recognized extension.
func (c Conventions) HasExtension(file string) bool {
	_, ok := c.trimExtension(file)
	return ok
}

// trimExtension removes the longest matching recognized extension.
func (c Conventions) trimExtension(file string) (string, bool) {
	best := ""
	for _, ext := range c.Extensions {
		if strings.HasSuffix(file, ext) && len(ext) > len(best) {
			best = ext
		}
	}
	if best == "" {
		return file, false
	}
	return strings.TrimSuffix(file, best), true
}

var paramNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// invalidStaticChars may not appear in a static segment.
const invalidStaticChars = "*:{}?#%\\ \t\r\n"

// Classify classifies one segment token. Classification happens once per
// token; tree insertion only looks at the returned Segment.
func (c Conventions) Classify(token string) (Segment, error) {
	c = c.withDefaults()
	seg := Segment{Raw: token}

	switch {
	case token == "":
		return seg, fmt.Errorf("empty segment")
	case token == c.IndexName:
		seg.Kind = KindIndex
		return seg, nil
	case token == c.LayoutName:
		seg.Kind = KindLayout
		return seg, nil
	case token == c.SplatName:
		seg.Kind = KindSplat
		return seg, nil
	case strings.HasPrefix(token, c.ParamPrefix):
		name := strings.TrimPrefix(token, c.ParamPrefix)
		if !paramNameRe.MatchString(name) {
			return seg, fmt.Errorf("invalid parameter name %q", name)
		}
		seg.Kind = KindDynamic
		seg.Value = name
		return seg, nil
	case strings.HasPrefix(token, "_"):
		return seg, fmt.Errorf("names starting with _ are reserved")
	case isSigil(c.ParamPrefix) && strings.Contains(token, c.ParamPrefix):
		return seg, fmt.Errorf("%q may only start a segment", c.ParamPrefix)
	case c.SplatName != c.ParamPrefix && isSigil(c.SplatName) && strings.Contains(token, c.SplatName):
		return seg, fmt.Errorf("%q may only be a whole segment", c.SplatName)
	case strings.ContainsAny(token, invalidStaticChars):
		return seg, fmt.Errorf("invalid character in segment")
	}

	seg.Kind = KindStatic
	seg.Value = token
	return seg, nil
}

// isSigil reports whether marker has no characters a static segment
// commonly uses. Only sigil markers ("$", "+") are reserved inside a token;
// word markers such as "p_" may appear in ordinary names.
func isSigil(marker string) bool {
	for _, r := range marker {
		if r == '_' || r == '-' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return false
		}
	}
	return marker != ""
}

// Split splits a route file path into raw segment tokens with the
// extension removed. Directory names and file names are both split on the
// nesting delimiter.
func (c Conventions) Split(file string) ([]string, bool) {
	c = c.withDefaults()
	file = strings.ReplaceAll(file, "\\", "/")
	file = strings.TrimPrefix(file, "./")

	trimmed, ok := c.trimExtension(file)
	if !ok {
		return nil, false
	}

	var tokens []string
	for _, part := range strings.Split(trimmed, "/") {
		tokens = append(tokens, strings.Split(part, c.NestingDelimiter)...)
	}
	return tokens, true
}
