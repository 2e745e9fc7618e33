package asciimath

import (
	"strings"
)

// expr is a translated expression.
type expr struct {
	tex     string
	inner   string   // tex without the outer brackets, for groups
	grouped bool     // expr is a bracketed group
	cells   []string // comma separated cells of a single-row group
}

// arg is the form used as an argument of fractions, scripts and commands:
// the outer brackets of a group are dropped.
func (e expr) arg() string {
	if e.grouped {
		return e.inner
	}
	return e.tex
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) accept(k kind) bool {
	if tok, ok := p.peek(); ok && tok.kind == k {
		p.pos++
		return true
	}
	return false
}

// parseSeq parses expressions up to the end of input or, inside a group, up
// to the next separator or closing bracket.
func (p *parser) parseSeq(inGroup bool) []expr {
	var items []expr
	for {
		tok, ok := p.peek()
		if !ok {
			return items
		}
		if tok.kind == kRight || tok.kind == kSep {
			if inGroup {
				return items
			}
			p.pos++
			items = append(items, expr{tex: tok.tex})
			continue
		}

		it := p.parseIntermediate()
		if p.accept(kDiv) {
			den := p.parseIntermediate()
			it = expr{tex: `\frac{` + it.arg() + `}{` + den.arg() + `}`}
		}
		items = append(items, it)
	}
}

func (p *parser) parseIntermediate() expr {
	base := p.parseSimple()
	tex := base.tex
	scripted := false
	if p.accept(kSub) {
		tex += "_{" + p.parseSimple().arg() + "}"
		scripted = true
	}
	if p.accept(kSup) {
		tex += "^{" + p.parseSimple().arg() + "}"
		scripted = true
	}
	if scripted {
		return expr{tex: tex}
	}
	return base
}

func (p *parser) parseSimple() expr {
	tok, ok := p.peek()
	if !ok || tok.kind == kRight || tok.kind == kSep {
		return expr{}
	}
	p.pos++

	switch tok.kind {
	case kText:
		return expr{tex: `\text{` + tok.tex + `}`}
	case kLeft:
		return p.parseGroup(tok.tex)
	case kUnary:
		return unaryExpr(tok.tex, p.parseSimple())
	case kBinary:
		a := p.parseSimple()
		b := p.parseSimple()
		return binaryExpr(tok.tex, a, b)
	case kSub:
		return expr{tex: `\_`}
	case kSup:
		return expr{tex: `\hat{}`}
	case kDiv:
		return expr{tex: "/"}
	}
	return expr{tex: tok.tex}
}

// parseGroup parses everything up to the bracket closing left. Rows are
// separated by ';' and cells by ','.
func (p *parser) parseGroup(left string) expr {
	var rows [][][]expr
	var row [][]expr
	var cell []expr
	right := "."
	semis := false

	for {
		cell = append(cell, p.parseSeq(true)...)
		tok, ok := p.peek()
		if !ok {
			break
		}
		p.pos++
		if tok.kind == kRight {
			right = tok.tex
			break
		}
		row = append(row, cell)
		cell = nil
		if tok.tex == ";" {
			rows = append(rows, row)
			row = nil
			semis = true
		}
	}
	row = append(row, cell)
	if !(semis && len(row) == 1 && len(row[0]) == 0) {
		rows = append(rows, row)
	}

	rendered := make([][]string, len(rows))
	for i, r := range rows {
		rendered[i] = make([]string, len(r))
		for j, c := range r {
			rendered[i][j] = joinExprs(c)
		}
	}

	if semis {
		return matrixExpr(left, right, rendered)
	}
	if m, ok := nestedRows(rows[0]); ok {
		return matrixExpr(left, right, m)
	}

	inner := strings.Join(rendered[0], " , ")
	return expr{
		tex:     wrap(left, inner, right),
		inner:   inner,
		grouped: true,
		cells:   rendered[0],
	}
}

// nestedRows recognizes [[a,b],[c,d]]: two or more cells, each a single
// group with the same number of cells.
func nestedRows(cells [][]expr) ([][]string, bool) {
	if len(cells) < 2 {
		return nil, false
	}
	var rows [][]string
	for _, c := range cells {
		if len(c) != 1 || !c[0].grouped || len(c[0].cells) == 0 {
			return nil, false
		}
		if len(rows) > 0 && len(c[0].cells) != len(rows[0]) {
			return nil, false
		}
		rows = append(rows, c[0].cells)
	}
	return rows, true
}

func matrixExpr(left, right string, rows [][]string) expr {
	cols := 0
	lines := make([]string, len(rows))
	for i, r := range rows {
		cols = max(cols, len(r))
		lines[i] = strings.Join(r, " & ")
	}
	inner := `\begin{array}{` + strings.Repeat("c", cols) + `} ` +
		strings.Join(lines, ` \\ `) + ` \end{array}`
	return expr{tex: wrap(left, inner, right), inner: inner, grouped: true}
}

func wrap(left, inner, right string) string {
	if inner == "" {
		return `\left` + left + ` \right` + right
	}
	return `\left` + left + " " + inner + ` \right` + right
}

func unaryExpr(cmd string, a expr) expr {
	arg := a.arg()
	switch cmd {
	case "abs":
		return expr{tex: `\left| ` + arg + ` \right|`}
	case "floor":
		return expr{tex: `\left\lfloor ` + arg + ` \right\rfloor`}
	case "ceil":
		return expr{tex: `\left\lceil ` + arg + ` \right\rceil`}
	case "norm":
		return expr{tex: `\left\| ` + arg + ` \right\|`}
	case `\text`:
		if strings.HasPrefix(a.tex, `\text{`) {
			return a
		}
		return expr{tex: `\text{` + strings.ReplaceAll(arg, " ", "") + `}`}
	}
	return expr{tex: cmd + "{" + arg + "}"}
}

func binaryExpr(cmd string, a, b expr) expr {
	switch cmd {
	case `\sqrt`:
		return expr{tex: `\sqrt[` + a.arg() + `]{` + b.arg() + `}`}
	case `\color`:
		return expr{tex: `{\color{` + strings.ReplaceAll(a.arg(), " ", "") + `} ` + b.arg() + `}`}
	}
	return expr{tex: cmd + "{" + a.arg() + "}{" + b.arg() + "}"}
}

func joinExprs(items []expr) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it.tex != "" {
			parts = append(parts, it.tex)
		}
	}
	return strings.Join(parts, " ")
}
