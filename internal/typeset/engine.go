// Package typeset defines the math typesetting engine contract and a
// TeX-to-MathML implementation of it.
package typeset

import "errors"

// Strictness controls how an engine treats input that is valid but not
// portable TeX.
type Strictness string

const (
	StrictDefault Strictness = ""
	StrictWarn    Strictness = "warn"
	StrictIgnore  Strictness = "ignore"
	StrictError   Strictness = "error"
)

// Options are the per-call engine options.
type Options struct {
	DisplayMode  bool
	ThrowOnError bool
	Strict       Strictness
	// Settings are engine specific and passed through untouched.
	Settings map[string]any
}

// Engine renders TeX source to markup.
type Engine interface {
	RenderToString(src string, opts Options) (string, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(src string, opts Options) (string, error)

func (f EngineFunc) RenderToString(src string, opts Options) (string, error) {
	return f(src, opts)
}

// Error names reported by engines.
const (
	NameParseError    = "ParseError"
	NameOptionError   = "OptionError"
	NameInternalError = "InternalError"
)

// Error is a categorized engine failure. Name is the discriminator.
type Error struct {
	Name    string
	Message string
	Source  string
	Err     error
}

func (e *Error) Error() string {
	return e.Name + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Category is the failure class seen by callers of an Engine.
type Category int

const (
	// Other covers every failure that is not a parse failure, including
	// error names an engine adds later.
	Other Category = iota
	// ParseFailure means the engine can still produce degraded output when
	// asked not to throw.
	ParseFailure
)

// CategoryOf classifies err.
func CategoryOf(err error) Category {
	if NameOf(err) == NameParseError {
		return ParseFailure
	}
	return Other
}

// NameOf returns the discriminator of err, or "Error" when err is not an
// engine error.
func NameOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Name != "" {
		return e.Name
	}
	return "Error"
}
