package routetree

import "fmt"

// SegmentKind classifies a single path segment.
type SegmentKind int

const (
	// KindRoot is the implicit root of a compiled tree.
	KindRoot SegmentKind = iota

	// KindStatic matches a literal path segment ("about").
	KindStatic

	// KindDynamic captures one path segment as a named parameter ("$id").
	KindDynamic

	// KindIndex renders at its parent's path ("index").
	KindIndex

	// KindLayout wraps its siblings without contributing a segment ("_layout").
	KindLayout

	// KindSplat captures the remaining path ("$").
	KindSplat
)

// String returns the lower-case name of the kind.
func (k SegmentKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindStatic:
		return "static"
	case KindDynamic:
		return "dynamic"
	case KindIndex:
		return "index"
	case KindLayout:
		return "layout"
	case KindSplat:
		return "splat"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SegmentKind) UnmarshalText(text []byte) error {
	for c := KindRoot; c <= KindSplat; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("routetree: unknown segment kind %q", text)
}

// Segment is one classified token of a route file path.
type Segment struct {
	// Kind is the classification of the token.
	Kind SegmentKind

	// Value is the static text or the parameter name. Empty for index,
	// layout and splat segments.
	Value string

	// Raw is the token as it appeared in the file path (e.g. "$id").
	Raw string
}

// key returns the identity used to merge segments into one tree node.
// Dynamic segments share a key regardless of name so that sibling
// parameters with different names can be detected.
func (s Segment) key() string {
	switch s.Kind {
	case KindStatic:
		return "s:" + s.Value
	case KindDynamic:
		return "d:"
	case KindSplat:
		return "*"
	case KindIndex:
		return "i:"
	case KindLayout:
		return "l:"
	}
	return ""
}

// pattern returns the router-notation contribution of the segment.
func (s Segment) pattern() string {
	switch s.Kind {
	case KindStatic:
		return s.Value
	case KindDynamic:
		return ":" + s.Value
	case KindSplat:
		return "*"
	}
	return ""
}

// Node is a node of a compiled route tree.
type Node struct {
	// Kind is the segment kind this node was created from.
	Kind SegmentKind `json:"kind"`

	// Path is the segment this node contributes in router notation:
	// "messages", ":id" or "*". Empty for root, index and layout nodes.
	Path string `json:"path,omitempty"`

	// Param is the parameter name for dynamic nodes.
	Param string `json:"param,omitempty"`

	// ID is File without its extension (e.g. "messages/$id").
	ID string `json:"id,omitempty"`

	// File is the route file that defines this node's element. Empty for
	// directories that only group other routes.
	File string `json:"file,omitempty"`

	// Index reports whether this is an index route. Index nodes have no
	// children.
	Index bool `json:"index,omitempty"`

	// Children are the nested routes in discovery order.
	Children []*Node `json:"children,omitempty"`
}

// HasElement reports whether a route file defines this node.
func (n *Node) HasElement() bool {
	return n.File != ""
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}
