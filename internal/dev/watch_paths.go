package dev

import (
	"path/filepath"

	"github.com/vango-dev/fileroutes/internal/config"
)

// CollectWatchPaths returns the paths to watch for a project: the routes
// directory and the config file. Sources other than a local directory have
// nothing to watch.
func CollectWatchPaths(cfg *config.Config) []string {
	if cfg.Source.Type != config.SourceDir {
		return nil
	}

	paths := []string{cfg.RoutesPath()}
	if cfg.Path() != "" {
		paths = append(paths, cfg.Path())
	}

	unique := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		clean := filepath.Clean(p)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		unique = append(unique, clean)
	}

	return unique
}
