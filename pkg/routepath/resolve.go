package routepath

import "strings"

// IsExternal reports whether href points outside the application
// (scheme-qualified or protocol-relative).
func IsExternal(href string) bool {
	if strings.HasPrefix(href, "//") {
		return true
	}
	colon := strings.Index(href, ":")
	if colon <= 0 {
		return false
	}
	// A scheme must come before any path, query or hash character.
	if i := strings.IndexAny(href, "/?#"); i >= 0 && i < colon {
		return false
	}
	for i, c := range href[:colon] {
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !isAlpha && (i == 0 || !strings.ContainsRune("0123456789+-.", c)) {
			return false
		}
	}
	return true
}

// Resolve resolves the link target to against the current path from, the
// way a router resolves a link rendered inside a route:
//
//	Resolve("/about", "/messages/1")   → "/about"
//	Resolve("edit", "/messages/1")     → "/messages/1/edit"
//	Resolve("../2", "/messages/1")     → "/messages/2"
//	Resolve("?tab=a", "/messages/1")   → "/messages/1?tab=a"
//	Resolve("", "/messages/1")         → "/messages/1"
//
// Relative ".." segments stop at the root. Query and hash of to are kept;
// those of from are dropped. External hrefs are returned unchanged.
func Resolve(to, from string) (string, error) {
	if IsExternal(to) {
		return to, nil
	}

	target := ParseHref(to)
	base := ParseHref(from)
	if err := checkPath(target.Path); err != nil {
		return "", err
	}
	if err := checkPath(base.Path); err != nil {
		return "", err
	}

	joined := target.Path
	if !strings.HasPrefix(joined, "/") {
		joined = base.Path + "/" + joined
	}
	segs := splitSegments(joined)

	target.Path = "/" + strings.Join(segs, "/")
	return target.String(), nil
}

// splitSegments splits a path into its non-empty, non-"." segments,
// resolving ".." as it goes.
func splitSegments(path string) []string {
	var segs []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, seg)
		}
	}
	return segs
}

// JoinPattern joins a child route pattern onto its parent pattern.
// Absolute child patterns replace the parent.
func JoinPattern(parent, child string) string {
	if strings.HasPrefix(child, "/") {
		return cleanPattern(child)
	}
	return cleanPattern(parent + "/" + child)
}

// Interpolate fills a route pattern with parameter values, producing a
// concrete href. ":name" segments take params[name]; a trailing "*" takes
// params["*"], whose "/" separators are kept and whose parts are escaped.
// Missing or empty parameters are reported in the second return value.
func Interpolate(pattern string, params map[string]string) (string, []string) {
	var out, missing []string
	for _, seg := range splitSegments(pattern) {
		switch {
		case seg == "*":
			v, ok := params["*"]
			if !ok {
				missing = append(missing, "*")
				continue
			}
			for _, part := range strings.Split(v, "/") {
				if part != "" {
					out = append(out, escapeSegment(part))
				}
			}
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if v := params[name]; v != "" {
				out = append(out, escapeSegment(v))
			} else {
				missing = append(missing, name)
			}
		default:
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/"), missing
}

func cleanPattern(p string) string {
	segs := splitSegments(p)
	return "/" + strings.Join(segs, "/")
}

func escapeSegment(v string) string {
	return strings.NewReplacer("%", "%25", "/", "%2F", "?", "%3F", "#", "%23", " ", "%20").Replace(v)
}
