package mathtransform

import (
	"strings"

	"github.com/dgallion1/docmath/internal/diag"
	"github.com/dgallion1/docmath/internal/doctree"
	"github.com/dgallion1/docmath/internal/typeset"
)

// ErrorClass marks the element shown in place of math that failed to render.
const ErrorClass = "math-error"

// outcome is either engine markup or ready-made nodes.
type outcome interface {
	isOutcome()
}

type markupOutcome string

type nodesOutcome []*doctree.Node

func (markupOutcome) isOutcome() {}
func (nodesOutcome) isOutcome()  {}

// render typesets value and returns the nodes that replace the unit.
func (t *Transformer) render(value string, u unit, el *doctree.Node, ancestors []*doctree.Node, file *diag.File) []*doctree.Node {
	opts := typeset.Options{
		DisplayMode:  u.display,
		ThrowOnError: true,
		Settings:     t.settings,
	}

	var out outcome
	markup, err := t.engine.RenderToString(value, opts)
	if err != nil {
		out = t.recoverFrom(err, value, opts, el, ancestors, file)
	} else {
		out = markupOutcome(markup)
	}

	nodes, err := toNodes(out)
	if err != nil {
		t.report(file, err, el, ancestors)
		return []*doctree.Node{t.errorMarker(value, err)}
	}
	return nodes
}

// recoverFrom reports err and produces replacement output for it. Parse
// failures are rendered again leniently; anything else becomes an error
// marker.
func (t *Transformer) recoverFrom(err error, value string, opts typeset.Options, el *doctree.Node, ancestors []*doctree.Node, file *diag.File) outcome {
	t.report(file, err, el, ancestors)

	if typeset.CategoryOf(err) != typeset.ParseFailure {
		return nodesOutcome{t.errorMarker(value, err)}
	}

	opts.ThrowOnError = false
	opts.Strict = typeset.StrictIgnore
	markup, lerr := t.engine.RenderToString(value, opts)
	if lerr != nil {
		t.log.Warn("lenient math render failed", "error", lerr)
		return nodesOutcome{t.errorMarker(value, lerr)}
	}
	return markupOutcome(markup)
}

func toNodes(out outcome) ([]*doctree.Node, error) {
	switch o := out.(type) {
	case markupOutcome:
		return doctree.ParseFragment(string(o))
	case nodesOutcome:
		return o, nil
	}
	return nil, nil
}

func (t *Transformer) report(file *diag.File, err error, el *doctree.Node, ancestors []*doctree.Node) {
	chain := make([]*doctree.Node, 0, len(ancestors)+1)
	chain = append(chain, ancestors...)
	chain = append(chain, el)

	ruleID := strings.ToLower(typeset.NameOf(err))
	place := doctree.Path(ancestors, el)
	file.Message("Could not render math", diag.MessageOptions{
		Cause:     err,
		Ancestors: chain,
		Place:     place,
		RuleID:    ruleID,
		Source:    Source,
	})
	t.log.Debug("math render failed", "rule_id", ruleID, "place", place, "error", err)
}

func (t *Transformer) errorMarker(value string, err error) *doctree.Node {
	return doctree.NewElement("span", map[string]any{
		doctree.ClassNameProp: []string{ErrorClass},
		"style":               "color:" + t.errorColor,
		"title":               err.Error(),
	}, doctree.NewText(value))
}
