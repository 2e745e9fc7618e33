package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dgallion1/docmath/internal/config"
	"github.com/dgallion1/docmath/internal/mathtransform"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func useColor(mode colorMode, f *os.File) bool {
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// runOptions is the flag state shared by every subcommand.
type runOptions struct {
	fragment bool
	jobs     int
	log      *slog.Logger
	tr       *mathtransform.Transformer
}

func setup(cmd *cobra.Command) (runOptions, error) {
	flags := cmd.Root().PersistentFlags()

	colorValue, err := flags.GetString("color")
	if err != nil {
		return runOptions{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readColorMode(colorValue)
	if err != nil {
		return runOptions{}, err
	}
	color.NoColor = !useColor(mode, os.Stderr)

	verbose, _ := flags.GetBool("verbose")
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fragment, _ := flags.GetBool("fragment")
	noAsciiMath, _ := flags.GetBool("no-asciimath")
	errorColor, _ := flags.GetString("error-color")
	optionsFile, _ := flags.GetString("options")
	jobs, _ := flags.GetInt("jobs")

	cfg := config.Config{
		ErrorColor:       errorColor,
		AsciiMathEnabled: !noAsciiMath,
		AsciiMathSet:     noAsciiMath,
		MathOptionsFile:  optionsFile,
	}
	opts, err := cfg.TransformOptions(log)
	if err != nil {
		return runOptions{}, err
	}

	return runOptions{
		fragment: fragment,
		jobs:     jobs,
		log:      log,
		tr:       mathtransform.New(opts...),
	}, nil
}
