package routetree

import (
	"errors"
	"strings"
)

// SkipChildren may be returned by a WalkFunc to skip the node's children.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node. ancestors runs from the root to the
// node's parent and must not be retained.
type WalkFunc func(n *Node, ancestors []*Node) error

// Walk visits the tree depth-first in pre-order.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	err := walk(root, nil, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walk(n *Node, ancestors []*Node, fn WalkFunc) error {
	if err := fn(n, ancestors); err != nil {
		return err
	}
	chain := append(ancestors, n)
	for _, child := range n.Children {
		err := walk(child, chain, fn)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Route is a routable leaf of a compiled tree.
type Route struct {
	// Pattern is the full URL pattern (e.g. "/messages/:id").
	Pattern string `json:"pattern"`

	// File is the route file rendering this route.
	File string `json:"file"`

	// ID is File without its extension.
	ID string `json:"id"`

	// Index reports whether the route is an index route.
	Index bool `json:"index,omitempty"`

	// CatchAll reports whether the route ends in a splat segment.
	CatchAll bool `json:"catchAll,omitempty"`

	// Params are the parameter names in path order. A catch-all
	// contributes "*".
	Params []string `json:"params,omitempty"`

	// Layouts are the IDs of the ancestors that define an element,
	// outermost first.
	Layouts []string `json:"layouts,omitempty"`
}

// Pattern returns the full URL pattern of a node given its ancestors.
func Pattern(ancestors []*Node, n *Node) string {
	var parts []string
	for _, a := range ancestors {
		if a.Path != "" {
			parts = append(parts, a.Path)
		}
	}
	if n.Path != "" {
		parts = append(parts, n.Path)
	}
	return "/" + strings.Join(parts, "/")
}

// Flatten lists every routable leaf in tree order. Layout nodes are never
// routes themselves.
func Flatten(root *Node) []Route {
	var routes []Route
	_ = Walk(root, func(n *Node, ancestors []*Node) error {
		if !n.IsLeaf() || !n.HasElement() || n.Kind == KindLayout {
			return nil
		}

		r := Route{
			Pattern:  Pattern(ancestors, n),
			File:     n.File,
			ID:       n.ID,
			Index:    n.Index,
			CatchAll: n.Kind == KindSplat,
		}
		for _, a := range append(ancestors[:len(ancestors):len(ancestors)], n) {
			switch a.Kind {
			case KindDynamic:
				r.Params = append(r.Params, a.Param)
			case KindSplat:
				r.Params = append(r.Params, "*")
			}
		}
		for _, a := range ancestors {
			if a.HasElement() {
				r.Layouts = append(r.Layouts, a.ID)
			}
		}
		routes = append(routes, r)
		return nil
	})
	return routes
}

// Find returns the route whose pattern equals pattern. When an index route
// and a leaf share a pattern the first in tree order wins.
func (n *Node) Find(pattern string) (Route, bool) {
	if pattern == "" {
		pattern = "/"
	}
	for _, r := range Flatten(n) {
		if r.Pattern == pattern {
			return r, true
		}
	}
	return Route{}, false
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Path != b.Path || a.Param != b.Param ||
		a.ID != b.ID || a.File != b.File || a.Index != b.Index ||
		len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the tree, root included.
func Count(root *Node) int {
	count := 0
	_ = Walk(root, func(*Node, []*Node) error {
		count++
		return nil
	})
	return count
}
