package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/vango-dev/fileroutes/pkg/routetree"
)

func init() {
	DisableColors()
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"duplicate route", "R001", "Duplicate route", CategoryRoutes},
		{"config missing", "C001", "Config file not found", CategoryConfig},
		{"listing", "L001", "Could not list route files", CategoryListing},
		{"unknown error code", "X999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
		})
	}
}

func TestRegistryComplete(t *testing.T) {
	for kind, code := range kindCodes {
		tmpl, ok := Lookup(code)
		if !ok {
			t.Errorf("kind %s maps to unregistered code %s", kind, code)
			continue
		}
		if tmpl.Category != CategoryRoutes {
			t.Errorf("code %s category = %s, want routes", code, tmpl.Category)
		}
		if !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("code %s DocURL = %s", code, tmpl.DocURL)
		}
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := New("L001").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if got := err.Error(); got != "L001: Could not list route files" {
		t.Errorf("Error() = %q", got)
	}
	if FromError(err, "S001") != err {
		t.Error("FromError should return an existing *Error unchanged")
	}
	if FromError(nil, "S001") != nil {
		t.Error("FromError(nil) should be nil")
	}
	if got := FromError(cause, "S001"); got.Code != "S001" || got.Wrapped != cause {
		t.Errorf("FromError(cause) = %+v", got)
	}
}

func TestExpandConfigurationErrors(t *testing.T) {
	_, compileErr := routetree.Compile([]string{"a.go", "a.go", "$/x.go"})
	if compileErr == nil {
		t.Fatal("expected compile error")
	}

	errs := Expand(compileErr, "S001")
	if len(errs) != 2 {
		t.Fatalf("len(Expand()) = %d, want 2", len(errs))
	}
	if errs[0].Code != "R001" || errs[1].Code != "R002" {
		t.Errorf("codes = %s, %s; want R001, R002", errs[0].Code, errs[1].Code)
	}
	if strings.Join(errs[0].Files, ",") != "a.go,a.go" {
		t.Errorf("Files = %v", errs[0].Files)
	}

	var cfgErr *routetree.ConfigurationError
	if !stderrors.As(errs[0], &cfgErr) {
		t.Error("coded error should unwrap to *routetree.ConfigurationError")
	}
}

func TestFormat(t *testing.T) {
	err := New("R001").WithFiles("messages/$id.go", "messages.$id.go")
	got := err.Format()

	for _, want := range []string{
		"ERROR R001: Duplicate route",
		"  messages/$id.go\n  messages.$id.go\n",
		"Two route files resolve to the same route.",
		"Hint: Keep one file per route",
		"Learn more: https://vango.dev/docs/fileroutes/errors/R001",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q:\n%s", want, got)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("R002").WithDetail(`Segment "x" follows a catch-all`).WithFiles("$/x.go")
	want := `R002: Segment after catch-all (Segment "x" follows a catch-all) [$/x.go]`
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(New("C002").WithDetail("unexpected EOF"))
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["code"] != "C002" || decoded["detail"] != "unexpected EOF" || decoded["category"] != "config" {
		t.Errorf("json = %s", data)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Print(plain) = %q", buf.String())
	}

	buf.Reset()
	_, compileErr := routetree.Compile([]string{"_x.go"})
	Print(&buf, compileErr)
	if !strings.Contains(buf.String(), "ERROR R003") || !strings.Contains(buf.String(), "_x.go") {
		t.Errorf("Print(config) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range wrapText(text, 20) {
		if len(line) > 20 {
			t.Errorf("line %q longer than 20", line)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}
