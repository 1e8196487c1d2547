package routetree

import (
	"fmt"
	"strings"
)

// Compiler turns route file listings into route trees.
type Compiler struct {
	conv Conventions
}

// NewCompiler creates a compiler using the given conventions. Empty fields
// fall back to DefaultConventions.
func NewCompiler(conv Conventions) *Compiler {
	return &Compiler{conv: conv.withDefaults()}
}

// Conventions returns the conventions in effect.
func (c *Compiler) Conventions() Conventions {
	return c.conv
}

// Compile compiles paths with the default conventions.
func Compile(paths []string) (*Node, error) {
	return NewCompiler(DefaultConventions()).Compile(paths)
}

// Compile builds the route tree for paths. Children keep the order in which
// they were first discovered, so the same input always yields the same tree.
// All configuration errors are collected and returned together as
// *ConfigurationErrors.
func (c *Compiler) Compile(paths []string) (*Node, error) {
	root := newBuilder(Segment{Kind: KindRoot}, "")
	var errs []*ConfigurationError

	for _, p := range paths {
		if err := c.insert(root, p); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, &ConfigurationErrors{Errors: errs}
	}
	return root.emit(), nil
}

// builder is the mutable prefix-tree node used during compilation.
type builder struct {
	seg     Segment
	pattern string

	// file is the route file defining this node; source is the first file
	// that caused the node to exist.
	file   string
	id     string
	source string

	children []*builder
	byKey    map[string]*builder
	layout   *builder
}

func newBuilder(seg Segment, pattern string) *builder {
	return &builder{
		seg:     seg,
		pattern: pattern,
		byKey:   make(map[string]*builder),
	}
}

// insert classifies one file path and merges it into the tree.
func (c *Compiler) insert(root *builder, file string) *ConfigurationError {
	file = strings.TrimPrefix(strings.ReplaceAll(file, "\\", "/"), "./")

	tokens, ok := c.conv.Split(file)
	if !ok {
		return &ConfigurationError{
			Kind:    ErrorUnsupportedExtension,
			Message: fmt.Sprintf("Unrecognized route file extension in %s", file),
			Files:   []string{file},
		}
	}
	id, _ := c.conv.trimExtension(file)

	segs := make([]Segment, len(tokens))
	for i, tok := range tokens {
		seg, err := c.conv.Classify(tok)
		if err != nil {
			return &ConfigurationError{
				Kind:    ErrorUnclassifiable,
				Message: fmt.Sprintf("Cannot classify segment %q: %v", tok, err),
				Files:   []string{file},
				Segment: tok,
			}
		}
		segs[i] = seg
	}

	last := len(segs) - 1
	for i, seg := range segs[:last] {
		switch seg.Kind {
		case KindSplat:
			return &ConfigurationError{
				Kind:    ErrorSegmentAfterSplat,
				Message: fmt.Sprintf("Segment %q follows a catch-all", segs[i+1].Raw),
				Files:   []string{file},
				Segment: segs[i+1].Raw,
			}
		case KindIndex, KindLayout:
			return &ConfigurationError{
				Kind:    ErrorMisplacedSegment,
				Message: fmt.Sprintf("%s segment %q must be the last segment", seg.Kind, seg.Raw),
				Files:   []string{file},
				Segment: seg.Raw,
			}
		}
	}

	cur := root
	for i, seg := range segs {
		leaf := i == last

		if seg.Kind == KindLayout {
			if cur.layout != nil {
				return duplicateError(cur.layout.file, file, patternOrRoot(cur.pattern))
			}
			cur.layout = &builder{seg: seg, pattern: cur.pattern, file: file, id: id, source: file}
			return nil
		}

		child := cur.byKey[seg.key()]
		if child == nil {
			child = newBuilder(seg, joinPattern(cur.pattern, seg.pattern()))
			child.source = file
			cur.byKey[seg.key()] = child
			cur.children = append(cur.children, child)
		} else if seg.Kind == KindDynamic && child.seg.Value != seg.Value {
			return &ConfigurationError{
				Kind: ErrorDynamicSibling,
				Message: fmt.Sprintf("Conflicting parameters %q and %q at %s",
					child.seg.Raw, seg.Raw, patternOrRoot(cur.pattern)),
				Files:   []string{child.source, file},
				Pattern: patternOrRoot(cur.pattern),
				Segment: seg.Raw,
			}
		}

		if leaf {
			if child.file != "" {
				return duplicateError(child.file, file, patternOrRoot(child.pattern))
			}
			child.file = file
			child.id = id
		}
		cur = child
	}
	return nil
}

func duplicateError(first, second, pattern string) *ConfigurationError {
	return &ConfigurationError{
		Kind:    ErrorDuplicateRoute,
		Message: fmt.Sprintf("Duplicate route detected at %s", pattern),
		Files:   []string{first, second},
		Pattern: pattern,
	}
}

// emit converts the builder into an immutable Node tree.
func (b *builder) emit() *Node {
	n := &Node{
		Kind:  b.seg.Kind,
		Path:  b.seg.pattern(),
		File:  b.file,
		ID:    b.id,
		Index: b.seg.Kind == KindIndex,
	}
	if b.seg.Kind == KindDynamic {
		n.Param = b.seg.Value
	}

	var children []*Node
	if len(b.children) > 0 {
		children = make([]*Node, len(b.children))
		for i, child := range b.children {
			children[i] = child.emit()
		}
	}

	if b.layout != nil {
		children = []*Node{{
			Kind:     KindLayout,
			File:     b.layout.file,
			ID:       b.layout.id,
			Children: children,
		}}
	}

	n.Children = children
	return n
}

// joinPattern appends a segment pattern to a parent pattern. Index and
// layout segments contribute nothing.
func joinPattern(parent, seg string) string {
	if seg == "" {
		return parent
	}
	return parent + "/" + seg
}

func patternOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
