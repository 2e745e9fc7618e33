package mathtransform

import (
	"strings"
	"testing"

	"github.com/dgallion1/docmath/internal/diag"
	"github.com/dgallion1/docmath/internal/doctree"
	"github.com/dgallion1/docmath/internal/typeset"
)

type call struct {
	src  string
	opts typeset.Options
}

// fakeEngine renders src as <x-math mode="...">src</x-math>. Sources listed
// in fail return the matching error while ThrowOnError is set; lenient calls
// for a source in failLenient fail too.
type fakeEngine struct {
	calls       []call
	fail        map[string]error
	failLenient map[string]error
	markup      map[string]string
}

func (e *fakeEngine) RenderToString(src string, opts typeset.Options) (string, error) {
	e.calls = append(e.calls, call{src: src, opts: opts})
	if opts.ThrowOnError {
		if err := e.fail[src]; err != nil {
			return "", err
		}
	} else if err := e.failLenient[src]; err != nil {
		return "", err
	}
	if m, ok := e.markup[src]; ok {
		return m, nil
	}
	mode := "inline"
	if opts.DisplayMode {
		mode = "display"
	}
	if !opts.ThrowOnError {
		mode += "-lenient"
	}
	return `<x-math mode="` + mode + `">` + src + `</x-math>`, nil
}

func parseError(msg string) error {
	return &typeset.Error{Name: typeset.NameParseError, Message: msg}
}

func run(t *testing.T, tr *Transformer, markup string) (string, *diag.File) {
	t.Helper()
	nodes, err := doctree.ParseFragment(markup)
	if err != nil {
		t.Fatal(err)
	}
	tree := doctree.NewRoot(nodes...)
	file := diag.NewFile("test.html")
	tr.Transform(tree, file)
	out, err := doctree.RenderString(tree)
	if err != nil {
		t.Fatal(err)
	}
	return out, file
}

func TestTransform_NoMathUnchanged(t *testing.T) {
	eng := &fakeEngine{}
	tr := New(WithEngine(eng))
	src := `<p>Hello <code class="language-go">x</code> <span class="mathinline">y</span></p>`

	out, file := run(t, tr, src)
	if out != src {
		t.Errorf("expected %q, got %q", src, out)
	}
	if len(eng.calls) != 0 || file.Len() != 0 {
		t.Errorf("expected no engine calls and no diagnostics, got %d and %d", len(eng.calls), file.Len())
	}
}

func TestTransform_Modes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "inline",
			in:   `<p>a <span class="math-inline">x</span> b</p>`,
			want: `<p>a <x-math mode="inline">x</x-math> b</p>`,
		},
		{
			name: "display",
			in:   `<div class="math-display">y</div>`,
			want: `<x-math mode="display">y</x-math>`,
		},
		{
			name: "language-math without pre is inline",
			in:   `<p><code class="language-math">z</code></p>`,
			want: `<p><x-math mode="inline">z</x-math></p>`,
		},
		{
			name: "language-math in pre collapses",
			in:   `<p>before</p><pre><code class="language-math">w</code></pre><p>after</p>`,
			want: `<p>before</p><x-math mode="display">w</x-math><p>after</p>`,
		},
		{
			name: "inline class on non-code element",
			in:   `<p><em class="math-inline">v</em></p>`,
			want: `<p><x-math mode="inline">v</x-math></p>`,
		},
		{
			name: "display wins over inline",
			in:   `<span class="math-inline math-display">u</span>`,
			want: `<x-math mode="display">u</x-math>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(WithEngine(&fakeEngine{}), WithAsciiMath(false))
			out, file := run(t, tr, tt.in)
			if out != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out)
			}
			if file.Len() != 0 {
				t.Errorf("expected no diagnostics, got %d", file.Len())
			}
		})
	}
}

func TestTransform_PreCollapseDetails(t *testing.T) {
	eng := &fakeEngine{}
	tr := New(WithEngine(eng), WithAsciiMath(false))

	// Other text inside <pre> is part of the replaced scope.
	out, _ := run(t, tr, `<div><pre>A<code class="language-math">b</code>C</pre><hr></div>`)
	want := `<div><x-math mode="display">AbC</x-math><hr/></div>`
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	if len(eng.calls) != 1 || !eng.calls[0].opts.DisplayMode {
		t.Errorf("expected one display-mode call, got %+v", eng.calls)
	}
}

func TestTransform_PreWithoutGrandparentSkipped(t *testing.T) {
	eng := &fakeEngine{}
	tr := New(WithEngine(eng))

	pre := doctree.NewElement("pre", nil,
		doctree.NewElement("code", map[string]any{doctree.ClassNameProp: []string{"language-math"}}, doctree.NewText("x")))
	file := diag.NewFile("")
	tr.Transform(pre, file)

	if len(eng.calls) != 0 || file.Len() != 0 {
		t.Errorf("expected the element to be skipped silently, got %d calls and %d diagnostics", len(eng.calls), file.Len())
	}
	if !pre.Children[0].IsElement("code") {
		t.Error("expected the tree to be unchanged")
	}
}

func TestTransform_RootElementSkipped(t *testing.T) {
	eng := &fakeEngine{}
	el := doctree.NewElement("span", map[string]any{doctree.ClassNameProp: []string{"math-inline"}}, doctree.NewText("x"))
	New(WithEngine(eng)).Transform(el, nil)
	if len(eng.calls) != 0 {
		t.Errorf("expected no engine calls, got %d", len(eng.calls))
	}
}

func TestTransform_WhitespacePreserved(t *testing.T) {
	eng := &fakeEngine{}
	tr := New(WithEngine(eng), WithAsciiMath(false))
	run(t, tr, "<p><span class=\"math-inline\">  a\n <b>\tb</b> </span></p>")

	if len(eng.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(eng.calls))
	}
	if want := "  a\n \tb "; eng.calls[0].src != want {
		t.Errorf("expected source %q, got %q", want, eng.calls[0].src)
	}
}

func TestTransform_EngineOptions(t *testing.T) {
	eng := &fakeEngine{}
	settings := map[string]any{"macros": map[string]string{`\RR`: `\mathbb{R}`}}
	tr := New(WithEngine(eng), WithEngineSettings(settings), WithAsciiMath(false))
	run(t, tr, `<span class="math-inline">x</span>`)

	opts := eng.calls[0].opts
	if !opts.ThrowOnError || opts.DisplayMode || opts.Strict != typeset.StrictDefault {
		t.Errorf("unexpected first call options %+v", opts)
	}
	if opts.Settings["macros"] == nil {
		t.Error("expected settings to be passed through")
	}
}

func TestTransform_NotationResolution(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"tex command", `\frac{a}{b}`, `\frac{a}{b}`},
		{"digits count as command", `\d2x`, `\d2x`},
		{"asciimath", `x^2`, `\displaystyle{ x^{2} }`},
		{"embedded tex directive", `tex"\mathrm{d}" x`, `\displaystyle{ \mathrm{d} x }`},
		{"plain text", `a+b`, `\displaystyle{ a + b }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &fakeEngine{}
			tr := New(WithEngine(eng))
			run(t, tr, `<span class="math-inline">`+escape(tt.text)+`</span>`)
			if len(eng.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(eng.calls))
			}
			if eng.calls[0].src != tt.want {
				t.Errorf("expected source %q, got %q", tt.want, eng.calls[0].src)
			}
		})
	}
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

func TestTransform_AsciiMathDisabled(t *testing.T) {
	eng := &fakeEngine{}
	tr := New(WithEngine(eng), WithAsciiMath(false))
	run(t, tr, `<span class="math-inline">x^2</span>`)
	if eng.calls[0].src != "x^2" {
		t.Errorf("expected untranslated source, got %q", eng.calls[0].src)
	}
}

func TestTransform_ParseFailureRecovers(t *testing.T) {
	eng := &fakeEngine{fail: map[string]error{`\bad{`: parseError("unexpected end of input")}}
	tr := New(WithEngine(eng))

	tree, err := doctree.Parse(strings.NewReader(`<html><body><p>x</p><p><code class="language-math math-inline">\bad{</code></p></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	file := diag.NewFile("test.html")
	tr.Transform(tree, file)
	out, _ := doctree.RenderString(tree)

	want := `<x-math mode="inline-lenient">\bad{</x-math>`
	if !strings.Contains(out, want) {
		t.Errorf("expected lenient markup %q in %q", want, out)
	}
	if len(eng.calls) != 2 {
		t.Fatalf("expected 2 engine calls, got %d", len(eng.calls))
	}
	lenient := eng.calls[1].opts
	if lenient.ThrowOnError || lenient.Strict != typeset.StrictIgnore {
		t.Errorf("expected lenient options, got %+v", lenient)
	}

	if file.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", file.Len())
	}
	m := file.Messages[0]
	if m.Reason != "Could not render math" {
		t.Errorf("unexpected reason %q", m.Reason)
	}
	if m.RuleID != "parseerror" || m.Source != Source {
		t.Errorf("expected parseerror from %s, got %s from %s", Source, m.RuleID, m.Source)
	}
	if typeset.NameOf(m.Cause) != typeset.NameParseError {
		t.Errorf("expected the engine error as cause, got %v", m.Cause)
	}
	last := m.Ancestors[len(m.Ancestors)-1]
	if !last.IsElement("code") || m.Ancestors[0].Type != doctree.RootNode {
		t.Errorf("expected ancestors from root to the code element, got %d nodes ending in %q", len(m.Ancestors), last.Tag)
	}
	if m.Place != "/html[1]/body[1]/p[2]/code[1]" {
		t.Errorf("unexpected place %q", m.Place)
	}
}

func TestTransform_OtherFailureMarker(t *testing.T) {
	eng := &fakeEngine{fail: map[string]error{
		`\x{1}`: &typeset.Error{Name: "QuotaError", Message: "too many"},
	}}
	tr := New(WithEngine(eng), WithErrorColor("#ff00ff"), WithAsciiMath(false))

	nodes, _ := doctree.ParseFragment(`<p><span class="math-display">\x{1}</span></p>`)
	tree := doctree.NewRoot(nodes...)
	file := diag.NewFile("")
	tr.Transform(tree, file)

	if len(eng.calls) != 1 {
		t.Errorf("expected no lenient retry, got %d calls", len(eng.calls))
	}
	marker := tree.Children[0].Children[0]
	if !marker.IsElement("span") {
		t.Fatalf("expected span marker, got %+v", marker)
	}
	if classes := doctree.ClassList(marker); len(classes) != 1 || classes[0] != ErrorClass {
		t.Errorf("expected class %q, got %v", ErrorClass, classes)
	}
	if marker.Props["style"] != "color:#ff00ff" {
		t.Errorf("unexpected style %v", marker.Props["style"])
	}
	if marker.Props["title"] != "QuotaError: too many" {
		t.Errorf("unexpected title %v", marker.Props["title"])
	}
	if len(marker.Children) != 1 || marker.Children[0].Type != doctree.TextNode || marker.Children[0].Value != `\x{1}` {
		t.Errorf("expected one text child with the source, got %+v", marker.Children)
	}
	if file.Len() != 1 || file.Messages[0].RuleID != "quotaerror" {
		t.Errorf("expected one quotaerror diagnostic, got %d", file.Len())
	}
}

func TestTransform_PlainErrorMarker(t *testing.T) {
	eng := &fakeEngine{fail: map[string]error{`\ok`: errString("disk full")}}
	out, file := run(t, New(WithEngine(eng)), `<span class="math-inline">\ok</span>`)

	want := `<span class="math-error" style="color:#cc0000" title="disk full">\ok</span>`
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	if file.Messages[0].RuleID != "error" {
		t.Errorf("expected rule id %q, got %q", "error", file.Messages[0].RuleID)
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestTransform_LenientFailureFallsBackToMarker(t *testing.T) {
	eng := &fakeEngine{
		fail:        map[string]error{`\z{`: parseError("bad")},
		failLenient: map[string]error{`\z{`: &typeset.Error{Name: typeset.NameInternalError, Message: "crash"}},
	}
	out, file := run(t, New(WithEngine(eng), WithAsciiMath(false)), `<span class="math-inline">\z{</span>`)

	if !strings.Contains(out, `class="math-error"`) || !strings.Contains(out, `title="InternalError: crash"`) {
		t.Errorf("expected error marker, got %q", out)
	}
	if file.Len() != 1 {
		t.Errorf("expected a single diagnostic, got %d", file.Len())
	}
}

func TestTransform_MultipleSiblingsAndNesting(t *testing.T) {
	eng := &fakeEngine{markup: map[string]string{
		// Output that itself carries a math class must not be visited again.
		"a": `<span class="math-inline">A</span><span>A2</span>`,
	}}
	tr := New(WithEngine(eng), WithAsciiMath(false))

	out, _ := run(t, tr, `<p><code class="math-inline">a</code><code class="math-inline">b</code></p>`+
		`<pre><code class="language-math">c</code></pre><pre><code class="language-math">d</code></pre>`)

	want := `<p><span class="math-inline">A</span><span>A2</span><x-math mode="inline">b</x-math></p>` +
		`<x-math mode="display">c</x-math><x-math mode="display">d</x-math>`
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	if len(eng.calls) != 4 {
		t.Errorf("expected 4 engine calls, got %d", len(eng.calls))
	}
}

func TestTransform_SecondPassIsNoop(t *testing.T) {
	eng := &fakeEngine{}
	tr := New(WithEngine(eng), WithAsciiMath(false))
	nodes, _ := doctree.ParseFragment(`<p><span class="math-inline">x</span></p>`)
	tree := doctree.NewRoot(nodes...)

	tr.Transform(tree, nil)
	first, _ := doctree.RenderString(tree)
	tr.Transform(tree, nil)
	second, _ := doctree.RenderString(tree)

	if first != second {
		t.Errorf("expected second pass to change nothing, got %q then %q", first, second)
	}
	if len(eng.calls) != 1 {
		t.Errorf("expected 1 engine call across both passes, got %d", len(eng.calls))
	}
}

func TestTransform_MathMLEngine(t *testing.T) {
	tr := New(WithAsciiMath(false))
	src := `\frac{a}{b}`

	out, file := run(t, tr, `<p><span class="math-display">`+src+`</span></p>`)
	if file.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", file.Messages)
	}

	markup, err := typeset.NewMathML(nil).RenderToString(src, typeset.Options{DisplayMode: true, ThrowOnError: true})
	if err != nil {
		t.Fatal(err)
	}
	nodes, err := doctree.ParseFragment(markup)
	if err != nil {
		t.Fatal(err)
	}
	expected, _ := doctree.RenderString(doctree.NewElement("p", nil, nodes...))
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
	if !strings.Contains(out, "<math") {
		t.Errorf("expected MathML in %q", out)
	}
}

func TestTransform_MathMLOptionError(t *testing.T) {
	tr := New(WithAsciiMath(false), WithEngineSettings(map[string]any{"trust": true}))
	out, file := run(t, tr, `<span class="math-inline">\alpha</span>`)

	if file.Len() != 1 || file.Messages[0].RuleID != "optionerror" {
		t.Fatalf("expected one optionerror diagnostic, got %v", file.Messages)
	}
	if !strings.Contains(out, `class="math-error"`) {
		t.Errorf("expected error marker, got %q", out)
	}
}
