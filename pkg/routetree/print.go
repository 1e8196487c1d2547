package routetree

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented outline of the tree:
//
//	/
//	├── (index) index.go
//	└── messages
//	    ├── (index) messages/index.go
//	    └── :id messages/$id.go
func Fprint(w io.Writer, root *Node) error {
	if _, err := fmt.Fprintln(w, "/"); err != nil {
		return err
	}
	return fprintChildren(w, root.Children, "")
}

func fprintChildren(w io.Writer, children []*Node, prefix string) error {
	for i, child := range children {
		branch, next := "├── ", "│   "
		if i == len(children)-1 {
			branch, next = "└── ", "    "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, label(child)); err != nil {
			return err
		}
		if err := fprintChildren(w, child.Children, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

func label(n *Node) string {
	var parts []string
	switch n.Kind {
	case KindIndex:
		parts = append(parts, "(index)")
	case KindLayout:
		parts = append(parts, "(layout)")
	default:
		parts = append(parts, n.Path)
	}
	if n.File != "" {
		parts = append(parts, n.File)
	}
	return strings.Join(parts, " ")
}

// String returns the Fprint outline of the tree.
func (n *Node) String() string {
	var sb strings.Builder
	_ = Fprint(&sb, n)
	return sb.String()
}
