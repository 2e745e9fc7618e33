package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/dgallion1/docmath/internal/asciimath"
	"github.com/dgallion1/docmath/internal/mathtransform"
	"github.com/dgallion1/docmath/internal/typeset"
)

// MathOptions is the content of the math options file:
//
//	errorColor: "#b00020"
//	amEnabled: true
//	engine:
//	  strict: warn
//	  macros:
//	    \RR: \mathbb{R}
//	amConfig:
//	  display: false
//	  symbols:
//	    dx: \mathrm{d}x
type MathOptions struct {
	ErrorColor       string         `yaml:"errorColor"`
	AsciiMathEnabled *bool          `yaml:"amEnabled"`
	Engine           map[string]any `yaml:"engine"`
	AsciiMath        AsciiMathFile  `yaml:"amConfig"`
}

// AsciiMathFile configures the AsciiMath translator.
type AsciiMathFile struct {
	Display *bool             `yaml:"display"`
	Symbols map[string]string `yaml:"symbols"`
}

// LoadMathOptions reads and decodes a math options file.
func LoadMathOptions(path string) (MathOptions, error) {
	var opts MathOptions
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read math options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("decode math options %s: %w", path, err)
	}
	return opts, nil
}

// TransformOptions builds the transformer options for c. Values from the
// options file are applied first; ErrorColor and an explicitly set
// AsciiMathEnabled override them.
func (c Config) TransformOptions(log *slog.Logger) ([]mathtransform.Option, error) {
	var file MathOptions
	if c.MathOptionsFile != "" {
		var err error
		if file, err = LoadMathOptions(c.MathOptionsFile); err != nil {
			return nil, err
		}
	}

	if err := typeset.ValidateSettings(file.Engine); err != nil {
		return nil, fmt.Errorf("engine settings in %s: %w", c.MathOptionsFile, err)
	}

	amEnabled := c.AsciiMathEnabled
	if file.AsciiMathEnabled != nil && !c.AsciiMathSet {
		amEnabled = *file.AsciiMathEnabled
	}
	color := file.ErrorColor
	if c.ErrorColor != "" {
		color = c.ErrorColor
	}

	am := asciimath.Config{Symbols: file.AsciiMath.Symbols}
	if file.AsciiMath.Display != nil {
		am.DisableDisplay = !*file.AsciiMath.Display
	}

	return []mathtransform.Option{
		mathtransform.WithLogger(log),
		mathtransform.WithEngineSettings(file.Engine),
		mathtransform.WithErrorColor(color),
		mathtransform.WithAsciiMath(amEnabled),
		mathtransform.WithAsciiMathConfig(am),
	}, nil
}
