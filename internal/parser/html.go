package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/docmath/internal/doctree"
)

// HTMLParser handles HTML files.
type HTMLParser struct {
	// Fragment parses the input as a body fragment instead of a full
	// document, so no <html>, <head> or <body> is synthesized.
	Fragment bool
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	if p.Fragment {
		return doctree.ParseFragmentRoot(r)
	}
	return doctree.Parse(r)
}

// Title returns the text of the document's <title>, or of its first <h1>
// when there is no title.
func Title(tree *doctree.Node) string {
	if t := findElement(tree, "title"); t != nil {
		if s := strings.TrimSpace(doctree.TextContent(t)); s != "" {
			return s
		}
	}
	if h := findElement(tree, "h1"); h != nil {
		return strings.TrimSpace(doctree.TextContent(h))
	}
	return ""
}

func findElement(n *doctree.Node, tag string) *doctree.Node {
	if n.IsElement(tag) {
		return n
	}
	for _, c := range n.Children {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
