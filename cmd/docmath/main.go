package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "docmath",
	Short:         "Typeset math in HTML and Markdown documents",
	Long:          `docmath replaces math elements in HTML and Markdown documents with rendered MathML`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errDiagnostics signals that rendering succeeded but reported problems.
var errDiagnostics = errors.New("diagnostics reported")

func main() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log engine activity to stderr")
	rootCmd.PersistentFlags().Bool("fragment", false, "parse HTML input as a body fragment")
	rootCmd.PersistentFlags().Bool("no-asciimath", false, "treat all math as TeX")
	rootCmd.PersistentFlags().String("error-color", "", "color of the error marker")
	rootCmd.PersistentFlags().String("options", "", "YAML math options file")
	rootCmd.PersistentFlags().Int("jobs", 0, "max files processed in parallel (0=auto)")

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "docmath:", err)
		}
		os.Exit(1)
	}
}
