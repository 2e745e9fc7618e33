package typeset

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/wyatt915/treeblood"
	"golang.org/x/net/html"
)

// MathML renders TeX to MathML with treeblood.
//
// Recognized settings:
//
//	macros        map of macro name to expansion, e.g. {"\\RR": "\\mathbb{R}"}
//	displayStyle  bool, use display style for inline math
//	strict        "warn" (default), "ignore" or "error"
//
// Any other setting fails with an OptionError.
type MathML struct {
	log *slog.Logger
}

// NewMathML returns a MathML engine. log may be nil.
func NewMathML(log *slog.Logger) *MathML {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &MathML{log: log}
}

type mathMLSettings struct {
	macros       map[string]string
	displayStyle bool
	strict       Strictness
}

func (m *MathML) RenderToString(src string, opts Options) (string, error) {
	settings, err := parseSettings(opts.Settings)
	if err != nil {
		return "", err
	}
	strict := opts.Strict
	if strict == StrictDefault {
		strict = settings.strict
	}

	if err := m.checkStrict(src, strict); err != nil && opts.ThrowOnError {
		return "", err
	}

	out, err := texToMML(src, settings.macros, opts.DisplayMode, settings.displayStyle)
	if err == nil {
		return out, nil
	}
	if !opts.ThrowOnError && CategoryOf(err) == ParseFailure {
		return fallbackMathML(src, opts.DisplayMode), nil
	}
	return "", err
}

func texToMML(src string, macros map[string]string, block, displayStyle bool) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Name: NameInternalError, Message: fmt.Sprint(r), Source: src}
		}
	}()
	out, err = treeblood.TexToMML(src, macros, block, displayStyle)
	if err != nil {
		return "", &Error{Name: NameParseError, Message: err.Error(), Source: src, Err: err}
	}
	return out, nil
}

// fallbackMathML wraps the raw source in <merror> so something readable is
// still shown.
func fallbackMathML(src string, display bool) string {
	mode := "inline"
	if display {
		mode = "block"
	}
	return `<math xmlns="http://www.w3.org/1998/Math/MathML" display="` + mode + `"><merror><mtext>` +
		html.EscapeString(src) + `</mtext></merror></math>`
}

func (m *MathML) checkStrict(src string, strict Strictness) error {
	if strict == StrictIgnore {
		return nil
	}
	for i, r := range src {
		if r < utf8.RuneSelf {
			continue
		}
		msg := fmt.Sprintf("LaTeX-incompatible input and strict mode is set to '%s': unicode text character %q used in math mode", strictOrWarn(strict), r)
		if strict == StrictError {
			return &Error{Name: NameParseError, Message: msg, Source: src}
		}
		m.log.Warn("strict mode", "offset", i, "message", msg)
		return nil
	}
	return nil
}

func strictOrWarn(s Strictness) Strictness {
	if s == StrictDefault {
		return StrictWarn
	}
	return s
}

func parseSettings(in map[string]any) (mathMLSettings, error) {
	var s mathMLSettings
	for key, v := range in {
		switch key {
		case "macros":
			macros, err := toStringMap(v)
			if err != nil {
				return s, &Error{Name: NameOptionError, Message: "macros: " + err.Error()}
			}
			s.macros = macros
		case "displayStyle":
			b, ok := v.(bool)
			if !ok {
				return s, &Error{Name: NameOptionError, Message: fmt.Sprintf("displayStyle must be a bool, got %T", v)}
			}
			s.displayStyle = b
		case "strict":
			str, _ := v.(string)
			switch Strictness(str) {
			case StrictWarn, StrictIgnore, StrictError:
				s.strict = Strictness(str)
			default:
				return s, &Error{Name: NameOptionError, Message: fmt.Sprintf("unsupported strict mode %v", v)}
			}
		default:
			return s, &Error{Name: NameOptionError, Message: fmt.Sprintf("unsupported option %q", key)}
		}
	}
	return s, nil
}

func toStringMap(v any) (map[string]string, error) {
	switch m := v.(type) {
	case map[string]string:
		return m, nil
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("value for %q must be a string, got %T", k, val)
			}
			out[k] = s
		}
		return out, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("expected a map, got %T", v)
}

// ValidateSettings checks settings the way MathML does on every render.
func ValidateSettings(settings map[string]any) error {
	_, err := parseSettings(settings)
	return err
}
