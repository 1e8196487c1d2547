// Package dev provides the development server for route trees.
//
// The server compiles the route files once, serves the result, and when
// watching recompiles after every debounced batch of file changes. A failed
// recompile keeps the previous tree serving and reports the errors.
//
// # Architecture
//
//   - Watcher: fsnotify watches on the routes directory, debounced
//   - build.Builder: lists and compiles the route files
//   - Server: serves the compiled routes and the inspection endpoints
//   - ReloadServer: pushes tree and error messages via WebSocket
//
// # Usage
//
//	srv := dev.NewServer(dev.ServerOptions{
//	    Config:  cfg,
//	    Builder: builder,
//	})
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Reload Protocol
//
// Subscribers connect to /__routes/ws. Messages are JSON-encoded and the
// latest one is replayed on connect:
//
//	{"type": "tree", "hash": "...", "routes": [...], "tree": {...}}
//	{"type": "error", "errors": [{"code": "R001", ...}]}
package dev
