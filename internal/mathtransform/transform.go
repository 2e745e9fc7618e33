// Package mathtransform replaces math nodes in a document tree with rendered
// math markup.
package mathtransform

import (
	"log/slog"

	"github.com/dgallion1/docmath/internal/asciimath"
	"github.com/dgallion1/docmath/internal/diag"
	"github.com/dgallion1/docmath/internal/doctree"
	"github.com/dgallion1/docmath/internal/typeset"
)

// Source identifies this transform on diagnostics.
const Source = "mathtransform"

// DefaultErrorColor is the text color of the error marker.
const DefaultErrorColor = "#cc0000"

// Transformer renders math nodes. It holds no per-document state, so one
// Transformer may process many trees concurrently.
type Transformer struct {
	engine     typeset.Engine
	settings   map[string]any
	errorColor string
	amEnabled  bool
	amConfig   asciimath.Config
	am         *asciimath.Translator
	log        *slog.Logger
}

// Option configures a Transformer.
type Option interface {
	apply(t *Transformer)
}

type optionFunc func(t *Transformer)

func (fn optionFunc) apply(t *Transformer) {
	fn(t)
}

// WithEngine sets the typesetting engine. The default is typeset.MathML.
func WithEngine(e typeset.Engine) Option {
	return optionFunc(func(t *Transformer) { t.engine = e })
}

// WithEngineSettings sets settings passed through to the engine on every
// call. Display mode, error throwing and strictness are always set by the
// transform itself.
func WithEngineSettings(settings map[string]any) Option {
	return optionFunc(func(t *Transformer) { t.settings = settings })
}

// WithErrorColor sets the color of the error marker.
func WithErrorColor(color string) Option {
	return optionFunc(func(t *Transformer) {
		if color != "" {
			t.errorColor = color
		}
	})
}

// WithAsciiMath enables or disables AsciiMath detection and translation.
// It is enabled by default.
func WithAsciiMath(enabled bool) Option {
	return optionFunc(func(t *Transformer) { t.amEnabled = enabled })
}

// WithAsciiMathConfig configures the AsciiMath translator.
func WithAsciiMathConfig(cfg asciimath.Config) Option {
	return optionFunc(func(t *Transformer) { t.amConfig = cfg })
}

// WithLogger sets the logger used for render failures.
func WithLogger(log *slog.Logger) Option {
	return optionFunc(func(t *Transformer) {
		if log != nil {
			t.log = log
		}
	})
}

// New builds a Transformer.
func New(opts ...Option) *Transformer {
	t := &Transformer{
		errorColor: DefaultErrorColor,
		amEnabled:  true,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o.apply(t)
	}
	if t.engine == nil {
		t.engine = typeset.NewMathML(t.log)
	}
	if t.amEnabled {
		t.am = asciimath.New(t.amConfig)
	}
	return t
}

// Transform replaces every math element of tree, in place. Render problems
// are reported on file, which may be nil.
func (t *Transformer) Transform(tree *doctree.Node, file *diag.File) {
	doctree.VisitParents(tree, func(el *doctree.Node, ancestors []*doctree.Node) doctree.Action {
		u, ok := classify(el, ancestors)
		if !ok {
			return doctree.Continue
		}

		value := t.resolve(doctree.TextContent(u.scope))
		nodes := t.render(value, u, el, ancestors, file)

		u.parent.Replace(u.scope, nodes...)
		return doctree.Skip
	})
}
