// Package asciimath translates AsciiMath notation to TeX.
package asciimath

import (
	"strings"
	"unicode/utf8"
)

// Config controls a Translator.
type Config struct {
	// DisableDisplay drops the \displaystyle{ ... } wrapper around output.
	DisableDisplay bool
	// Symbols adds or overrides constant symbols, AsciiMath text to TeX.
	Symbols map[string]string
}

// Translator converts AsciiMath to TeX. It is safe for concurrent use.
type Translator struct {
	table   map[string]symbol
	maxLen  int
	display bool
}

// New builds a Translator from cfg.
func New(cfg Config) *Translator {
	t := &Translator{
		table:   make(map[string]symbol, len(builtins)+len(cfg.Symbols)),
		display: !cfg.DisableDisplay,
	}
	for k, v := range builtins {
		t.table[k] = v
	}
	for k, v := range cfg.Symbols {
		t.table[k] = symbol{kind: kConst, tex: v}
	}
	for k := range t.table {
		t.maxLen = max(t.maxLen, len(k))
	}
	return t
}

// ToTeX translates src. Empty or blank input yields "".
func (t *Translator) ToTeX(src string) string {
	p := &parser{toks: t.lex(src)}
	body := joinExprs(p.parseSeq(false))
	if body == "" {
		return ""
	}
	if !t.display {
		return body
	}
	return `\displaystyle{ ` + body + ` }`
}

type token struct {
	kind kind
	tex  string
}

func (t *Translator) lex(src string) []token {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
			continue
		case strings.HasPrefix(src[i:], `tex"`):
			if end := strings.IndexByte(src[i+4:], '"'); end >= 0 {
				toks = append(toks, token{kind: kRaw, tex: src[i+4 : i+4+end]})
				i += 4 + end + 1
				continue
			}
		case c == '"':
			if end := strings.IndexByte(src[i+1:], '"'); end >= 0 {
				toks = append(toks, token{kind: kText, tex: src[i+1 : i+1+end]})
				i += end + 2
				continue
			}
		case isDigit(c):
			j := i + 1
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			if j+1 < len(src) && src[j] == '.' && isDigit(src[j+1]) {
				j++
				for j < len(src) && isDigit(src[j]) {
					j++
				}
			}
			toks = append(toks, token{kind: kConst, tex: src[i:j]})
			i = j
			continue
		}

		if sym, n := t.match(src[i:]); n > 0 {
			if sym.kind == kUnary && sym.tex == `\text` {
				if raw, m := parenText(src[i+n:]); m > 0 {
					toks = append(toks, token{kind: kText, tex: raw})
					i += n + m
					continue
				}
			}
			toks = append(toks, token{kind: sym.kind, tex: sym.tex})
			i += n
			continue
		}

		r, size := utf8.DecodeRuneInString(src[i:])
		toks = append(toks, token{kind: kConst, tex: string(r)})
		i += size
	}
	return toks
}

// match finds the longest symbol at the start of s.
func (t *Translator) match(s string) (symbol, int) {
	for l := min(t.maxLen, len(s)); l > 0; l-- {
		if sym, ok := t.table[s[:l]]; ok {
			return sym, l
		}
	}
	return symbol{}, 0
}

// parenText reads "( ... )" after optional spaces and returns its raw content
// and the number of bytes consumed.
func parenText(s string) (string, int) {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	if i >= len(s) || s[i] != '(' {
		return "", 0
	}
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[i+1 : j], j + 1
			}
		}
	}
	return "", 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
