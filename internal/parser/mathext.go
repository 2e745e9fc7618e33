package parser

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Math node kinds.
var (
	KindInlineMath = ast.NewNodeKind("InlineMath")
	KindMathBlock  = ast.NewNodeKind("MathBlock")
)

// InlineMath is $...$ (or $$...$$ within a line).
type InlineMath struct {
	ast.BaseInline
	Value []byte
}

func (n *InlineMath) Kind() ast.NodeKind {
	return KindInlineMath
}

func (n *InlineMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.Value)}, nil)
}

// MathBlock is a $$ fenced block.
type MathBlock struct {
	ast.BaseBlock
}

func (n *MathBlock) Kind() ast.NodeKind {
	return KindMathBlock
}

func (n *MathBlock) IsRaw() bool {
	return true
}

func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

var mathFence = []byte("$$")

type inlineMathParser struct{}

func (p *inlineMathParser) Trigger() []byte {
	return []byte{'$'}
}

// Parse follows the pandoc rules: the opening run may not be followed by a
// space, the closing run may not follow a space or be followed by a digit.
func (p *inlineMathParser) Parse(parent ast.Node, block text.Reader, pc gmparser.Context) ast.Node {
	line, _ := block.PeekLine()
	open := 0
	for open < len(line) && line[open] == '$' {
		open++
	}
	if open > 2 || open >= len(line) || isSpace(line[open]) {
		return nil
	}

	rest := line[open:]
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '\\':
			i++
			continue
		case '$':
		default:
			continue
		}
		j := i
		for j < len(rest) && rest[j] == '$' {
			j++
		}
		if j-i == open && i > 0 && !isSpace(rest[i-1]) && (j >= len(rest) || !isDigit(rest[j])) {
			node := &InlineMath{Value: bytes.Clone(rest[:i])}
			block.Advance(open + j)
			return node
		}
		i = j - 1
	}
	return nil
}

type mathBlockParser struct{}

func (p *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc gmparser.Context) (ast.Node, gmparser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.HasPrefix(line[pos:], mathFence) {
		return nil, gmparser.NoChildren
	}
	// $$x$$ on a single line is inline math.
	if bytes.Contains(line[pos+2:], mathFence) {
		return nil, gmparser.NoChildren
	}
	reader.Advance(segment.Len() - 1)
	return &MathBlock{}, gmparser.NoChildren
}

func (p *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc gmparser.Context) gmparser.State {
	line, segment := reader.PeekLine()
	if len(line) == 0 {
		return gmparser.Close
	}
	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w < 4 && bytes.HasPrefix(line[pos:], mathFence) && util.IsBlank(line[pos+2:]) {
		newline := 1
		if line[len(line)-1] != '\n' {
			newline = 0
		}
		reader.Advance(segment.Stop - segment.Start - newline + segment.Padding)
		return gmparser.Close
	}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return gmparser.Continue | gmparser.NoChildren
}

func (p *mathBlockParser) Close(node ast.Node, reader text.Reader, pc gmparser.Context) {}

func (p *mathBlockParser) CanInterruptParagraph() bool {
	return true
}

func (p *mathBlockParser) CanAcceptIndentedLine() bool {
	return false
}

// mathRenderer writes math nodes the way remark-math does, so the math
// transform picks them up: inline math as code.math-inline, blocks as
// pre > code.math-display.
type mathRenderer struct{}

func (r *mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindInlineMath, r.renderInline)
	reg.Register(KindMathBlock, r.renderBlock)
}

func (r *mathRenderer) renderInline(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		node := n.(*InlineMath)
		_, _ = w.WriteString(`<code class="language-math math-inline">`)
		_, _ = w.Write(util.EscapeHTML(node.Value))
		_, _ = w.WriteString("</code>")
	}
	return ast.WalkSkipChildren, nil
}

func (r *mathRenderer) renderBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	value := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	_, _ = w.WriteString(`<pre><code class="language-math math-display">`)
	_, _ = w.Write(util.EscapeHTML(value))
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

type mathExtension struct{}

// MathExtension adds $ and $$ math to goldmark.
var MathExtension goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		gmparser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 701)),
		gmparser.WithInlineParsers(util.Prioritized(&inlineMathParser{}, 501)),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mathRenderer{}, 501),
	))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
