package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/dgallion1/docmath/internal/diag"
	"github.com/dgallion1/docmath/internal/mathtransform"
	"github.com/dgallion1/docmath/internal/typeset"
)

func TestReadColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    colorMode
		wantErr bool
	}{
		{"", colorAuto, false},
		{"AUTO", colorAuto, false},
		{" on ", colorOn, false},
		{"off", colorOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readColorMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("readColorMode(%q): expected error %v, got %v", tt.in, tt.wantErr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("readColorMode(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"docs/notes.md", "notes.html"},
		{"page.htm", "page.html"},
		{"a.b.markdown", "a.b.html"},
	}
	for _, tt := range tests {
		if got := outputName(tt.in); got != tt.want {
			t.Errorf("outputName(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestWriteDiff(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	writeDiff(&buf, "a.html", "<p>same</p>\n<p>old</p>\n", "<p>same</p>\n<p>new</p>\n")

	out := buf.String()
	for _, want := range []string{"--- a.html", "-<p>old</p>", "+<p>new</p>"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected diff to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "same") {
		t.Errorf("expected unchanged lines to be omitted, got:\n%s", out)
	}
}

func TestPrintDiagnostics(t *testing.T) {
	color.NoColor = true
	file := diag.NewFile("doc.md")
	file.Message("Could not render math", diag.MessageOptions{
		Cause:  errors.New("ParseError: bad"),
		Place:  "/p[1]/code[1]",
		RuleID: "parseerror",
		Source: "mathtransform",
	})

	var buf bytes.Buffer
	if n := printDiagnostics(&buf, file); n != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", n)
	}
	want := "doc.md:/p[1]/code[1]: warning: Could not render math: ParseError: bad [mathtransform:parseerror]\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func testRunOptions() runOptions {
	engine := typeset.EngineFunc(func(src string, opts typeset.Options) (string, error) {
		return "<b>" + src + "</b>", nil
	})
	return runOptions{
		fragment: true,
		jobs:     2,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		tr:       mathtransform.New(mathtransform.WithEngine(engine), mathtransform.WithAsciiMath(false)),
	}
}

func TestRenderFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.html": `<p><span class="math-inline">a</span></p>`,
		"b.md":   "$b$\n",
		"c.html": `<p>plain</p>`,
	}
	var paths []string
	for _, name := range []string{"a.html", "b.md", "c.html"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(files[name]), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	results, err := renderFiles(context.Background(), testRunOptions(), paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	wants := []string{"<p><b>a</b></p>", "<b>b</b>", "<p>plain</p>"}
	for i, want := range wants {
		if results[i].path != paths[i] {
			t.Errorf("expected result %d for %q, got %q", i, paths[i], results[i].path)
		}
		if !strings.Contains(results[i].output.HTML, want) {
			t.Errorf("expected %q in output of %s, got %q", want, paths[i], results[i].output.HTML)
		}
	}
}

func TestRenderFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := renderFiles(context.Background(), testRunOptions(), []string{filepath.Join(dir, "x.pdf")}); err == nil {
		t.Error("expected error for unsupported file")
	}
	if _, err := renderFiles(context.Background(), testRunOptions(), []string{filepath.Join(dir, "missing.html")}); err == nil {
		t.Error("expected error for missing file")
	}
}
