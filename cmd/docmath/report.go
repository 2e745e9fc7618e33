package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dgallion1/docmath/internal/diag"
)

var (
	warnLabel  = color.New(color.FgYellow, color.Bold).SprintFunc()
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	infoLabel  = color.New(color.FgCyan).SprintFunc()
	locStyle   = color.New(color.Bold).SprintFunc()
	ruleStyle  = color.New(color.Faint).SprintFunc()
	addStyle   = color.New(color.FgGreen).SprintFunc()
	delStyle   = color.New(color.FgRed).SprintFunc()
)

// printDiagnostics writes one line per message and returns how many there
// were.
func printDiagnostics(w io.Writer, file *diag.File) int {
	for _, m := range file.Messages {
		var label string
		switch m.Severity {
		case diag.SevError:
			label = errorLabel("error")
		case diag.SevInfo:
			label = infoLabel("info")
		default:
			label = warnLabel("warning")
		}
		line := fmt.Sprintf("%s: %s: %s", locStyle(file.Location(m)), label, m.Reason)
		if m.Cause != nil {
			line += ": " + m.Cause.Error()
		}
		if m.Source != "" || m.RuleID != "" {
			line += " " + ruleStyle(fmt.Sprintf("[%s:%s]", m.Source, m.RuleID))
		}
		fmt.Fprintln(w, line)
	}
	return file.Len()
}

// writeDiff prints the changed lines between before and after.
func writeDiff(w io.Writer, name, before, after string) {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	fmt.Fprintf(w, "%s\n", locStyle("--- "+name))
	fmt.Fprintf(w, "%s\n", locStyle("+++ "+name+" (rendered)"))
	for _, d := range diffs {
		var prefix string
		var style func(a ...any) string
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, style = "+", addStyle
		case diffpatch.DiffDelete:
			prefix, style = "-", delStyle
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintln(w, style(prefix+strings.TrimSuffix(line, "\n")))
		}
	}
}
