package doctree

import (
	"slices"
	"testing"
)

func TestClassList(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]any
		want  []string
	}{
		{"string list", map[string]any{ClassNameProp: []string{"a", "math-inline"}}, []string{"a", "math-inline"}},
		{"any list", map[string]any{ClassNameProp: []any{"a", 3, "b"}}, []string{"a", "b"}},
		{"plain string", map[string]any{ClassNameProp: "math-inline"}, nil},
		{"number", map[string]any{ClassNameProp: 7}, nil},
		{"absent", map[string]any{}, nil},
		{"nil props", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Node{Type: ElementNode, Tag: "span", Props: tt.props}
			got := ClassList(n)
			if len(got) != len(tt.want) || (len(got) > 0 && !slices.Equal(got, tt.want)) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHasClass(t *testing.T) {
	n := NewElement("code", map[string]any{ClassNameProp: []string{"language-math"}})
	if !HasClass(n, "language-math") {
		t.Error("expected language-math class")
	}
	if HasClass(n, "math") {
		t.Error("expected no partial class match")
	}
}

func TestTextContent(t *testing.T) {
	n := NewElement("span", nil,
		NewText("  a"),
		NewElement("b", nil, NewText("\n b ")),
		&Node{Type: CommentNode, Value: "ignored"},
		NewText("c\t"),
	)
	want := "  a\n b c\t"
	if got := TextContent(n); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReplace(t *testing.T) {
	a, b, c := NewText("a"), NewText("b"), NewText("c")
	parent := NewElement("p", nil, a, b, c)

	x, y := NewText("x"), NewText("y")
	if !parent.Replace(b, x, y) {
		t.Fatal("expected Replace to find the child")
	}
	if got := TextContent(parent); got != "axyc" {
		t.Errorf("expected %q, got %q", "axyc", got)
	}

	if !parent.Replace(a) {
		t.Fatal("expected Replace with no nodes to remove the child")
	}
	if got := TextContent(parent); got != "xyc" {
		t.Errorf("expected %q, got %q", "xyc", got)
	}

	if parent.Replace(NewText("stranger"), x) {
		t.Error("expected Replace to report a missing child")
	}
}

func TestClone(t *testing.T) {
	orig := NewElement("span", map[string]any{ClassNameProp: []string{"a"}}, NewText("x"))
	c := Clone(orig)

	c.Props[ClassNameProp].([]string)[0] = "changed"
	c.Children[0].Value = "changed"

	if ClassList(orig)[0] != "a" {
		t.Error("expected clone class list to be independent")
	}
	if orig.Children[0].Value != "x" {
		t.Error("expected clone children to be independent")
	}
}
