package routetree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompileMessagesTree(t *testing.T) {
	root, err := Compile([]string{"index.go", "messages/index.go", "messages/$id.go"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := &Node{
		Kind: KindRoot,
		Children: []*Node{
			{Kind: KindIndex, ID: "index", File: "index.go", Index: true},
			{
				Kind: KindStatic,
				Path: "messages",
				Children: []*Node{
					{Kind: KindIndex, ID: "messages/index", File: "messages/index.go", Index: true},
					{Kind: KindDynamic, Path: ":id", Param: "id", ID: "messages/$id", File: "messages/$id.go"},
				},
			},
		},
	}

	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileEmpty(t *testing.T) {
	for _, paths := range [][]string{nil, {}} {
		root, err := Compile(paths)
		if err != nil {
			t.Fatalf("Compile(%v) error = %v", paths, err)
		}
		if root.Kind != KindRoot {
			t.Errorf("root.Kind = %v, want root", root.Kind)
		}
		if len(root.Children) != 0 {
			t.Errorf("len(root.Children) = %d, want 0", len(root.Children))
		}
	}
}

func TestCompileNestingDelimiter(t *testing.T) {
	flat, err := Compile([]string{"messages.$id.edit.go"})
	if err != nil {
		t.Fatalf("Compile(flat) error = %v", err)
	}
	nested, err := Compile([]string{"messages/$id/edit.go"})
	if err != nil {
		t.Fatalf("Compile(nested) error = %v", err)
	}

	got := Flatten(flat)
	if len(got) != 1 || got[0].Pattern != "/messages/:id/edit" {
		t.Fatalf("Flatten(flat) = %+v, want single /messages/:id/edit", got)
	}
	if Flatten(nested)[0].Pattern != got[0].Pattern {
		t.Errorf("nested pattern = %q, want %q", Flatten(nested)[0].Pattern, got[0].Pattern)
	}
}

func TestCompileLayout(t *testing.T) {
	root, err := Compile([]string{
		"_layout.go",
		"index.go",
		"settings/_layout.go",
		"settings/profile.go",
		"about.go",
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := &Node{
		Kind: KindRoot,
		Children: []*Node{{
			Kind: KindLayout,
			ID:   "_layout",
			File: "_layout.go",
			Children: []*Node{
				{Kind: KindIndex, ID: "index", File: "index.go", Index: true},
				{
					Kind: KindStatic,
					Path: "settings",
					Children: []*Node{{
						Kind: KindLayout,
						ID:   "settings/_layout",
						File: "settings/_layout.go",
						Children: []*Node{
							{Kind: KindStatic, Path: "profile", ID: "settings/profile", File: "settings/profile.go"},
						},
					}},
				},
				{Kind: KindStatic, Path: "about", ID: "about", File: "about.go"},
			},
		}},
	}

	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileParentRouteFile(t *testing.T) {
	root, err := Compile([]string{"messages.go", "messages/$id.go"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("len(root.Children) = %d, want 1", len(root.Children))
	}
	messages := root.Children[0]
	if messages.File != "messages.go" {
		t.Errorf("messages.File = %q, want messages.go", messages.File)
	}
	if len(messages.Children) != 1 || messages.Children[0].Path != ":id" {
		t.Errorf("messages.Children = %+v, want [:id]", messages.Children)
	}
}

func TestCompileSplat(t *testing.T) {
	root, err := Compile([]string{"docs/$.go", "$.go"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	routes := Flatten(root)
	want := []string{"/docs/*", "/*"}
	if len(routes) != len(want) {
		t.Fatalf("len(routes) = %d, want %d", len(routes), len(want))
	}
	for i, r := range routes {
		if r.Pattern != want[i] {
			t.Errorf("routes[%d].Pattern = %q, want %q", i, r.Pattern, want[i])
		}
		if !r.CatchAll {
			t.Errorf("routes[%d].CatchAll = false, want true", i)
		}
	}
}

func TestCompileStaticAndDynamicSiblingsKeepOrder(t *testing.T) {
	root, err := Compile([]string{"users/$id.go", "users/new.go", "users/$.go"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	users := root.Children[0]
	var got []string
	for _, c := range users.Children {
		got = append(got, c.Path)
	}
	want := []string{":id", "new", "*"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sibling order mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileBackslashPaths(t *testing.T) {
	root, err := Compile([]string{`messages\$id.go`})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if r, ok := root.Find("/messages/:id"); !ok || r.File != "messages/$id.go" {
		t.Errorf("Find(/messages/:id) = %+v, %v", r, ok)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name      string
		paths     []string
		wantKind  ErrorKind
		wantFiles []string
	}{
		{
			name:      "duplicate file",
			paths:     []string{"a.go", "a.go"},
			wantKind:  ErrorDuplicateRoute,
			wantFiles: []string{"a.go", "a.go"},
		},
		{
			name:      "duplicate via nesting delimiter",
			paths:     []string{"messages/$id.go", "messages.$id.go"},
			wantKind:  ErrorDuplicateRoute,
			wantFiles: []string{"messages/$id.go", "messages.$id.go"},
		},
		{
			name:      "duplicate index across extensions",
			paths:     []string{"index.go", "index.templ"},
			wantKind:  ErrorDuplicateRoute,
			wantFiles: []string{"index.go", "index.templ"},
		},
		{
			name:      "duplicate layout",
			paths:     []string{"_layout.go", "_layout.tsx"},
			wantKind:  ErrorDuplicateRoute,
			wantFiles: []string{"_layout.go", "_layout.tsx"},
		},
		{
			name:      "segment after splat",
			paths:     []string{"$.go", "$/extra.go"},
			wantKind:  ErrorSegmentAfterSplat,
			wantFiles: []string{"$/extra.go"},
		},
		{
			name:      "segment after splat via delimiter",
			paths:     []string{"docs.$.more.go"},
			wantKind:  ErrorSegmentAfterSplat,
			wantFiles: []string{"docs.$.more.go"},
		},
		{
			name:      "two dynamic siblings",
			paths:     []string{"users/$id.go", "users/$name.go"},
			wantKind:  ErrorDynamicSibling,
			wantFiles: []string{"users/$id.go", "users/$name.go"},
		},
		{
			name:      "reserved underscore name",
			paths:     []string{"_private.go"},
			wantKind:  ErrorUnclassifiable,
			wantFiles: []string{"_private.go"},
		},
		{
			name:      "empty segment",
			paths:     []string{"a..b.go"},
			wantKind:  ErrorUnclassifiable,
			wantFiles: []string{"a..b.go"},
		},
		{
			name:      "index not last",
			paths:     []string{"index/about.go"},
			wantKind:  ErrorMisplacedSegment,
			wantFiles: []string{"index/about.go"},
		},
		{
			name:      "unsupported extension",
			paths:     []string{"readme.txt"},
			wantKind:  ErrorUnsupportedExtension,
			wantFiles: []string{"readme.txt"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root, err := Compile(tc.paths)
			if err == nil {
				t.Fatalf("Compile(%v) = %v, want error", tc.paths, root)
			}
			if root != nil {
				t.Errorf("Compile(%v) returned a tree alongside an error", tc.paths)
			}

			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("errors.As(%T, *ConfigurationError) = false", err)
			}
			if cfgErr.Kind != tc.wantKind {
				t.Errorf("Kind = %s, want %s", cfgErr.Kind, tc.wantKind)
			}
			if diff := cmp.Diff(tc.wantFiles, cfgErr.Files); diff != "" {
				t.Errorf("Files mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileCollectsAllErrors(t *testing.T) {
	_, err := Compile([]string{"a.go", "a.go", "_x.go", "ok.go", "$/b.go"})
	var errs *ConfigurationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("error type = %T, want *ConfigurationErrors", err)
	}
	var kinds []ErrorKind
	for _, e := range errs.Errors {
		kinds = append(kinds, e.Kind)
	}
	want := []ErrorKind{ErrorDuplicateRoute, ErrorUnclassifiable, ErrorSegmentAfterSplat}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileDeterministic(t *testing.T) {
	paths := []string{"index.go", "about.go", "messages/index.go", "messages/$id.go", "docs.$.go"}
	a, err := Compile(paths)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compile(append([]string(nil), paths...))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(a, b) {
		t.Errorf("Compile is not deterministic:\n%s\n%s", a, b)
	}
}

func TestCompilerCustomConventions(t *testing.T) {
	c := NewCompiler(Conventions{
		IndexName:        "page",
		LayoutName:       "_shell",
		ParamPrefix:      "+",
		SplatName:        "+",
		NestingDelimiter: "~",
		Extensions:       []string{".vue"},
	})

	root, err := c.Compile([]string{"page.vue", "posts~+slug.vue", "_shell.vue", "files/+.vue"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	var patterns []string
	for _, r := range Flatten(root) {
		patterns = append(patterns, r.Pattern)
	}
	want := []string{"/", "/posts/:slug", "/files/*"}
	if diff := cmp.Diff(want, patterns); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
	if root.Children[0].Kind != KindLayout {
		t.Errorf("root.Children[0].Kind = %v, want layout", root.Children[0].Kind)
	}
}

func TestCompilerWordMarkers(t *testing.T) {
	c := NewCompiler(Conventions{ParamPrefix: "p_", SplatName: "all"})

	tests := []struct {
		file    string
		pattern string
	}{
		{"gallery.go", "/gallery"},
		{"help_me.go", "/help_me"},
		{"photos/p_id.go", "/photos/:id"},
		{"files/all.go", "/files/*"},
	}
	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			root, err := c.Compile([]string{tc.file})
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tc.file, err)
			}
			if _, ok := root.Find(tc.pattern); !ok {
				t.Errorf("Compile(%q) has no route %s:\n%s", tc.file, tc.pattern, root)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	_, err := Compile([]string{"messages/$id.go", "messages.$id.go"})
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("errors.As failed for %v", err)
	}
	want := "ERROR: Duplicate route detected at /messages/:id\n" +
		"  messages/$id.go → /messages/:id\n" +
		"  messages.$id.go → /messages/:id\n"
	if got := FormatError(cfgErr); got != want {
		t.Errorf("FormatError() =\n%s\nwant\n%s", got, want)
	}
}
