package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/tbasset/glot/glot"
	"github.com/tbasset/glot/output"
)

// reportDiagnostics prints omitted-link warnings to stderr so they never
// interleave with structured output on stdout.
func reportDiagnostics(diags []glot.Diagnostic, quiet, colorize bool) {
	if quiet || len(diags) == 0 {
		return
	}

	warn := color.New(color.FgYellow)
	if !colorize {
		warn.DisableColor()
	}
	for _, d := range diags {
		warn.Fprintf(os.Stderr, "warning: %s\n", d)
	}
}

func writeJSON(v any, compact bool) error {
	return output.New(output.Config{Compact: compact}).Write(v)
}
