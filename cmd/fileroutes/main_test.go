package main

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/fileroutes/internal/errors"
	"github.com/vango-dev/fileroutes/pkg/routetree"
)

// newProject writes fileroutes.json and the given route files into a
// temporary directory and returns the config path.
func newProject(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fileroutes.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"routes": "routes"}`), 0644))
	for _, f := range files {
		path := filepath.Join(dir, "routes", filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
	return cfgPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestCompileTree(t *testing.T) {
	cfg := newProject(t, "_layout.go", "index.go", "messages/$id.go")

	out, err := run(t, "compile", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "(layout)")
	assert.Contains(t, out, "messages")
	assert.Contains(t, out, ":id")
}

func TestCompileJSON(t *testing.T) {
	cfg := newProject(t, "index.go", "users.$id.go")

	out, err := run(t, "compile", "--config", cfg, "--format", "json")
	require.NoError(t, err)

	var manifest struct {
		Routes []routetree.Route `json:"routes"`
		Tree   *routetree.Node   `json:"tree"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &manifest))
	require.Len(t, manifest.Routes, 2)
	assert.Equal(t, "/users/:id", manifest.Routes[1].Pattern)
	assert.Equal(t, routetree.KindRoot, manifest.Tree.Kind)
}

func TestCompileOutputFile(t *testing.T) {
	cfg := newProject(t, "index.go")
	output := filepath.Join(t.TempDir(), "routes.json")

	out, err := run(t, "compile", "--config", cfg, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 routes")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pattern": "/"`)
}

func TestCompileInvalidFormat(t *testing.T) {
	cfg := newProject(t, "index.go")

	_, err := run(t, "compile", "--config", cfg, "--format", "yaml")
	var coded *errors.Error
	require.True(t, stderrors.As(err, &coded))
	assert.Equal(t, "C003", coded.Code)
}

func TestCheckReportsAllErrors(t *testing.T) {
	cfg := newProject(t, "a.go", "a/index.go", "$/x.go", "_private.go")

	_, err := run(t, "check", "--config", cfg)
	require.Error(t, err)

	errs := errors.Expand(err, "S001")
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.ElementsMatch(t, []string{"R002", "R003"}, codes)
}

func TestCheckSuccess(t *testing.T) {
	cfg := newProject(t, "index.go", "about.go")

	out, err := run(t, "check", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "2 routes from 2 files")
}

func TestCheckEmpty(t *testing.T) {
	cfg := newProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(filepath.Dir(cfg), "routes"), 0755))

	out, err := run(t, "check", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No routes found")
}

func TestRoutesDirArgument(t *testing.T) {
	cfg := newProject(t, "index.go")
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(other, "about.go"), nil, 0644))

	out, err := run(t, "routes", other, "--config", cfg, "--json")
	require.NoError(t, err)

	var routes []routetree.Route
	require.NoError(t, json.Unmarshal([]byte(out), &routes))
	require.Len(t, routes, 1)
	assert.Equal(t, "/about", routes[0].Pattern)
}

func TestRoutesTable(t *testing.T) {
	cfg := newProject(t, "_layout.go", "index.go")

	out, err := run(t, "routes", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "PATTERN")
	assert.Contains(t, out, "[_layout]")
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, "compile", "--config", filepath.Join(t.TempDir(), "nope.json"))
	var coded *errors.Error
	require.True(t, stderrors.As(err, &coded))
	assert.Equal(t, "C001", coded.Code)
}

func TestMissingRoutesDir(t *testing.T) {
	cfg := newProject(t)

	_, err := run(t, "check", "--config", cfg)
	var coded *errors.Error
	require.True(t, stderrors.As(err, &coded))
	assert.Equal(t, "L001", coded.Code)
}

func TestS3SourceRequiresBucket(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fileroutes.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"source": {"type": "s3"}}`), 0644))

	_, err := run(t, "check", "--config", cfgPath)
	var coded *errors.Error
	require.True(t, stderrors.As(err, &coded))
	assert.Equal(t, "C003", coded.Code)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
