package routetree

import (
	"reflect"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	conv := DefaultConventions()

	tests := []struct {
		token     string
		wantKind  SegmentKind
		wantValue string
		wantErr   bool
	}{
		{"about", KindStatic, "about", false},
		{"user-settings", KindStatic, "user-settings", false},
		{"index", KindIndex, "", false},
		{"_layout", KindLayout, "", false},
		{"$", KindSplat, "", false},
		{"$id", KindDynamic, "id", false},
		{"$user_id", KindDynamic, "user_id", false},
		{"$1abc", 0, "", true},
		{"$a-b", 0, "", true},
		{"_private", 0, "", true},
		{"a$b", 0, "", true},
		{"", 0, "", true},
		{"a b", 0, "", true},
		{"a:b", 0, "", true},
		{"{id}", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			seg, err := conv.Classify(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Classify(%q) = %+v, want error", tt.token, seg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Classify(%q) unexpected error = %v", tt.token, err)
			}
			if seg.Kind != tt.wantKind {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.token, seg.Kind, tt.wantKind)
			}
			if seg.Value != tt.wantValue {
				t.Errorf("Classify(%q).Value = %q, want %q", tt.token, seg.Value, tt.wantValue)
			}
			if seg.Raw != tt.token {
				t.Errorf("Classify(%q).Raw = %q", tt.token, seg.Raw)
			}
		})
	}
}

func TestClassifyWordMarkers(t *testing.T) {
	conv := Conventions{ParamPrefix: "p_", SplatName: "all"}

	tests := []struct {
		token     string
		wantKind  SegmentKind
		wantValue string
		wantErr   bool
	}{
		{"gallery", KindStatic, "gallery", false},
		{"help_me", KindStatic, "help_me", false},
		{"all", KindSplat, "", false},
		{"p_id", KindDynamic, "id", false},
		{"p_1x", 0, "", true},
		{"_draft", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			seg, err := conv.Classify(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Classify(%q) = %+v, want error", tt.token, seg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Classify(%q) unexpected error = %v", tt.token, err)
			}
			if seg.Kind != tt.wantKind || seg.Value != tt.wantValue {
				t.Errorf("Classify(%q) = %v %q, want %v %q", tt.token, seg.Kind, seg.Value, tt.wantKind, tt.wantValue)
			}
		})
	}
}

func TestClassifySigilSplatName(t *testing.T) {
	conv := Conventions{ParamPrefix: "$", SplatName: "~"}

	if seg, err := conv.Classify("~"); err != nil || seg.Kind != KindSplat {
		t.Errorf("Classify(~) = %+v, %v, want splat", seg, err)
	}
	_, err := conv.Classify("a~b")
	if err == nil {
		t.Fatal("Classify(a~b) should fail")
	}
	if !strings.Contains(err.Error(), `"~"`) {
		t.Errorf("error %q should name the splat marker", err)
	}
}

func TestSplit(t *testing.T) {
	conv := DefaultConventions()

	tests := []struct {
		file   string
		want   []string
		wantOK bool
	}{
		{"index.go", []string{"index"}, true},
		{"messages/$id.go", []string{"messages", "$id"}, true},
		{"messages.$id.edit.tsx", []string{"messages", "$id", "edit"}, true},
		{"docs/v1.2/intro.md", []string{"docs", "v1", "2", "intro"}, true},
		{"./about.templ", []string{"about"}, true},
		{`a\b.go`, []string{"a", "b"}, true},
		{"$.go", []string{"$"}, true},
		{"notes.txt", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, ok := conv.Split(tt.file)
			if ok != tt.wantOK {
				t.Fatalf("Split(%q) ok = %v, want %v", tt.file, ok, tt.wantOK)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestConventionsWithDefaults(t *testing.T) {
	c := Conventions{IndexName: "home"}.withDefaults()
	if c.IndexName != "home" {
		t.Errorf("IndexName = %q, want home", c.IndexName)
	}
	if c.LayoutName != "_layout" || c.ParamPrefix != "$" || c.NestingDelimiter != "." {
		t.Errorf("defaults not applied: %+v", c)
	}
	if !c.HasExtension("x.go") || c.HasExtension("x.txt") {
		t.Errorf("HasExtension mismatch for %v", c.Extensions)
	}
}

func TestSegmentKindString(t *testing.T) {
	tests := map[SegmentKind]string{
		KindRoot:        "root",
		KindStatic:      "static",
		KindDynamic:     "dynamic",
		KindIndex:       "index",
		KindLayout:      "layout",
		KindSplat:       "splat",
		SegmentKind(99): "unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("SegmentKind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}
