package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <file...>",
	Short: "Render math in documents to HTML",
	Long: `Render replaces every math element of the given HTML or Markdown files with MathML.
Output goes to stdout, or to one .html file per input with --out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("out", "", "directory for rendered files")
	renderCmd.Flags().Bool("diff", false, "print a line diff of input and output instead of the output")
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := setup(cmd)
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return fmt.Errorf("failed to get diff flag: %w", err)
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}

	results, err := renderFiles(cmd.Context(), opts, args)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	for _, r := range results {
		printDiagnostics(cmd.ErrOrStderr(), r.output.File)
		switch {
		case showDiff:
			writeDiff(stdout, r.path, string(r.input), r.output.HTML)
		case outDir != "":
			dest := filepath.Join(outDir, outputName(r.path))
			if err := os.WriteFile(dest, []byte(r.output.HTML), 0o644); err != nil {
				return err
			}
		default:
			fmt.Fprint(stdout, r.output.HTML)
		}
	}
	return nil
}

// outputName maps an input path to the file name written under --out.
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}
