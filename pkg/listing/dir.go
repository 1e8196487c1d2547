package listing

import (
	"context"
	"fmt"
	"io/fs"
	"os"
)

// Dir lists route files from a directory tree.
type Dir struct {
	Filter

	fsys fs.FS
	name string
}

// NewDir lists route files under the directory root.
func NewDir(root string, extensions []string) *Dir {
	return NewFS(os.DirFS(root), root, extensions)
}

// NewFS lists route files from fsys. name is used in error messages.
func NewFS(fsys fs.FS, name string, extensions []string) *Dir {
	return &Dir{
		Filter: Filter{Extensions: extensions},
		fsys:   fsys,
		name:   name,
	}
}

// List implements Provider.
func (d *Dir) List(ctx context.Context) ([]string, error) {
	var paths []string

	err := fs.WalkDir(d.fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if p != "." && entry.Name()[0] == '.' {
				return fs.SkipDir
			}
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", d.name, err)
	}

	return d.finish(paths), nil
}
