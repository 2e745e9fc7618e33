package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dgallion1/docmath/internal/diag"
	"github.com/dgallion1/docmath/internal/doctree"
	"github.com/dgallion1/docmath/internal/mathtransform"
	"github.com/dgallion1/docmath/internal/parser"
)

// Rendered is the output of a single document render.
type Rendered struct {
	HTML  string
	Title string
	File  *diag.File
}

// RenderDocument parses data according to filename, typesets every math
// element and serializes the result. Diagnostics are collected on the
// returned file; only parse and serialization problems are errors.
func RenderDocument(ctx context.Context, tr *mathtransform.Transformer, filename string, fragment bool, data []byte) (*Rendered, error) {
	tree, err := parseDocument(filename, fragment, data)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return typesetTree(tr, filename, tree)
}

func parseDocument(filename string, fragment bool, data []byte) (*doctree.Node, error) {
	p, err := parser.ForFile(filename, fragment)
	if err != nil {
		return nil, err
	}
	tree, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return tree, nil
}

func typesetTree(tr *mathtransform.Transformer, filename string, tree *doctree.Node) (*Rendered, error) {
	file := diag.NewFile(filename)
	tr.Transform(tree, file)
	out, err := doctree.RenderString(tree)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return &Rendered{HTML: out, Title: parser.Title(tree), File: file}, nil
}
