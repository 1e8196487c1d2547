// Package routetree compiles a flat listing of route files into a nested
// route tree.
//
// # File Structure Convention
//
// Route files live under a routes directory. Each file path maps to a chain
// of segments, and the whole listing is merged into one tree:
//
//	routes/
//	├── index.go            → index of /
//	├── _layout.go          → pathless layout wrapping everything below
//	├── about.go            → /about
//	├── messages.go         → /messages (wraps messages/*)
//	├── messages/
//	│   ├── index.go        → index of /messages
//	│   └── $id.go          → /messages/:id
//	├── docs.$.go           → /docs/*
//	└── $.go                → /* (catch-all)
//
// The "." delimiter inside a file name is a synthetic folder, so
// "messages.$id.go" and "messages/$id.go" describe the same route.
//
// # Usage
//
//	root, err := routetree.Compile([]string{"index.go", "messages/$id.go"})
//	if err != nil {
//	    var cfgErr *routetree.ConfigurationError
//	    if errors.As(err, &cfgErr) {
//	        // cfgErr.Files names the offending sources
//	    }
//	}
//	for _, r := range routetree.Flatten(root) {
//	    fmt.Println(r.Pattern, r.File)
//	}
//
// The returned tree is never mutated after Compile returns and may be shared
// between goroutines.
package routetree
