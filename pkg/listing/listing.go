// Package listing supplies the route file listings consumed by the route
// tree compiler.
//
// A Provider returns relative, "/"-separated paths under a routes root,
// sorted lexically and filtered to route file extensions. Test files and
// hidden entries are never listed.
package listing

import (
	"context"
	"path"
	"sort"
	"strings"
)

// Provider lists route files.
type Provider interface {
	List(ctx context.Context) ([]string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]string, error)

// List implements Provider.
func (f ProviderFunc) List(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// Filter decides which relative paths are route files.
type Filter struct {
	// Extensions are the accepted extensions, with dot. Empty accepts all.
	Extensions []string
}

// Match reports whether rel should be listed.
func (f Filter) Match(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}
	base := path.Base(rel)
	if strings.HasSuffix(base, "_test.go") {
		return false
	}
	if len(f.Extensions) == 0 {
		return true
	}
	for _, ext := range f.Extensions {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}

// finish filters and sorts a raw listing.
func (f Filter) finish(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "./")
		if p == "" || !f.Match(p) {
			continue
		}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Static is a fixed in-memory listing.
type Static struct {
	Filter
	Paths []string
}

// NewStatic creates a static provider for paths.
func NewStatic(paths ...string) *Static {
	return &Static{Paths: paths}
}

// List implements Provider.
func (s *Static) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.finish(s.Paths), nil
}
