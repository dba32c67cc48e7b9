package cli

import (
	"fmt"
	"io"

	"github.com/doeshing/blackline/internal/domain"
)

// RenderOutcome prints the result of one format invocation.
func RenderOutcome(out io.Writer, file string, outcome domain.FormatOutcome) {
	switch outcome.Status {
	case domain.StatusReformatted:
		fmt.Fprintf(out, "reformatted %s\n", file)
	case domain.StatusUnchanged:
		fmt.Fprintf(out, "%s left unchanged\n", file)
	case domain.StatusCached:
		fmt.Fprintf(out, "%s left unchanged (cached)\n", file)
	case domain.StatusDiffed:
		// diff output is rendered separately by the caller
	case domain.StatusSkipped:
		fmt.Fprintf(out, "skipped %s: %s\n", file, outcome.Diagnostics)
	case domain.StatusFailed:
		fmt.Fprintf(out, "error: %s\n", outcome.Diagnostics)
	}
	if outcome.Hint != "" {
		fmt.Fprintf(out, "hint: %s\n", outcome.Hint)
	}
}

// RenderProjectReport prints the summary of a project run.
func RenderProjectReport(out io.Writer, report domain.ProjectReport, check bool) {
	for _, diff := range report.Diffs {
		fmt.Fprint(out, diff)
		fmt.Fprintln(out)
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(out, "error: %s\n", failure)
	}
	verb := "reformatted"
	if check {
		verb = "would reformat"
	}
	fmt.Fprintf(out, "%d %s, %d unchanged, %d cached, %d failed\n",
		report.Reformatted, verb, report.Unchanged, report.Cached, report.Failed)
}

// RenderHealthReport prints doctor checks in a friendly, ASCII-only format.
func RenderHealthReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		var tag string
		switch check.Status {
		case domain.HealthOK:
			tag = "[ OK ]"
		case domain.HealthWarn:
			tag = "[WARN]"
		default:
			tag = "[FAIL]"
		}
		fmt.Fprintf(out, "%s %s: %s\n", tag, check.Name, check.Details)
	}
}
