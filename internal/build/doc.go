// Package build lists route files from a provider and compiles them into a
// route tree.
//
// Each build is traced with OpenTelemetry (spans fileroutes.build,
// fileroutes.list and fileroutes.compile) and, when Options.Metrics is set,
// recorded in Prometheus.
//
// # Usage
//
//	builder := build.New(listing.NewDir("app/routes", nil), nil, build.Options{})
//	result, err := builder.Build(ctx)
//	if err != nil {
//	    errors.Print(os.Stderr, err)
//	    os.Exit(1)
//	}
//
//	fmt.Printf("Compiled %d routes in %s\n", len(result.Routes), result.Duration)
//
// # Manifest
//
// WriteManifest stores the result as JSON:
//
//	{
//	  "hash": "3f1c...",
//	  "files": ["_layout.go", "index.go", "messages/$id.go"],
//	  "routes": [{"pattern": "/", "file": "index.go", ...}],
//	  "tree": {"kind": "root", "children": [...]}
//	}
package build
