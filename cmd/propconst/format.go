package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/oxbow3d/propconst/analysis"
	"github.com/oxbow3d/propconst/pass"
)

// validateFormat checks the --format flag value.
func validateFormat(format string) error {
	switch format {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("invalid format %q, want json or text", format)
	}
}

// outputReport writes the report in the requested format.
func outputReport(w io.Writer, report *pass.Report, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	formatReportText(w, report)
	return nil
}

// formatReportText formats report rows as aligned columns.
func formatReportText(w io.Writer, report *pass.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OBJECT\tPROPERTY\tVERDICT\tALWAYS\tSOURCES")
	for _, res := range report.Results {
		verdict := "variable"
		if res.Constant {
			verdict = fmt.Sprintf("constant %g", res.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n",
			res.Object.Name, res.Property, verdict, res.AlwaysApplied, formatRefs(res.Sources))
	}
	tw.Flush()
}

// formatRefs renders diagnostic references as "kind:name" joined by commas.
func formatRefs(refs []analysis.ObjectRef) string {
	if len(refs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		parts = append(parts, ref.Kind+":"+ref.Name)
	}
	return strings.Join(parts, ",")
}
