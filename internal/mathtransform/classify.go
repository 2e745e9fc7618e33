package mathtransform

import (
	"github.com/dgallion1/docmath/internal/doctree"
)

// Class tokens marking math elements.
const (
	classLanguageMath = "language-math" // ```math fenced blocks
	classMathDisplay  = "math-display"  // $$ block math
	classMathInline   = "math-inline"   // $ inline math
)

// unit is the subtree to replace and the parent holding it.
type unit struct {
	scope   *doctree.Node
	parent  *doctree.Node
	display bool
}

// classify decides whether el is a math element. A <code class="language-math">
// directly inside <pre> is replaced together with the <pre>, in display mode.
func classify(el *doctree.Node, ancestors []*doctree.Node) (unit, bool) {
	var languageMath, mathDisplay, mathInline bool
	for _, c := range doctree.ClassList(el) {
		switch c {
		case classLanguageMath:
			languageMath = true
		case classMathDisplay:
			mathDisplay = true
		case classMathInline:
			mathInline = true
		}
	}
	if !languageMath && !mathDisplay && !mathInline {
		return unit{}, false
	}

	u := unit{scope: el, display: mathDisplay}
	if n := len(ancestors); n > 0 {
		u.parent = ancestors[n-1]
	}

	if el.Tag == "code" && languageMath && u.parent.IsElement("pre") {
		u.scope = u.parent
		u.parent = nil
		if n := len(ancestors); n > 1 {
			u.parent = ancestors[n-2]
		}
		u.display = true
	}

	if u.parent == nil {
		return unit{}, false
	}
	return u, true
}
