package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file...>",
	Short: "Report math that fails to render",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := setup(cmd)
	if err != nil {
		return err
	}
	results, err := renderFiles(cmd.Context(), opts, args)
	if err != nil {
		return err
	}

	total := 0
	for _, r := range results {
		total += printDiagnostics(cmd.ErrOrStderr(), r.output.File)
	}
	if total > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d problem(s) in %d file(s)\n", total, len(results))
		return errDiagnostics
	}
	return nil
}
