package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leapcheck/internal/dataset"
	"github.com/leapstack-labs/leapcheck/internal/expect"
)

// renderResults writes evaluation results in the requested format.
func renderResults(w io.Writer, results []expect.EntryResult, format string) error {
	switch format {
	case "json":
		return renderResultsJSON(w, results)
	case "csv":
		return renderResultsCSV(w, results)
	case "md", "markdown":
		return renderResultsMarkdown(w, results)
	default:
		return renderResultsTable(w, results)
	}
}

func renderResultsTable(w io.Writer, results []expect.EntryResult) error {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "(no expectations)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"RESULT", "COLUMN", "EXPECTATION", "DETAILS"})

	for _, r := range results {
		status := "PASS"
		if !r.Result.Success {
			status = "FAIL"
		}
		t.AppendRow(table.Row{
			status,
			r.Entry.Column,
			r.Entry.Check,
			resultDetails(r),
		})
	}
	t.Render()

	failed := expect.Failed(results)
	_, _ = fmt.Fprintf(w, "(%d passed, %d failed)\n", len(results)-failed, failed)
	return nil
}

func renderResultsJSON(w io.Writer, results []expect.EntryResult) error {
	type jsonResult struct {
		Expectation  string         `json:"expectation"`
		TargetColumn string         `json:"target_column"`
		Args         map[string]any `json:"args,omitempty"`
		Success      bool           `json:"success"`
		Details      map[string]any `json:"details,omitempty"`
	}

	out := make([]jsonResult, len(results))
	for i, r := range results {
		out[i] = jsonResult{
			Expectation:  r.Entry.Check,
			TargetColumn: r.Entry.Column,
			Args:         r.Entry.Args,
			Success:      r.Result.Success,
			Details:      r.Result.Details,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderResultsCSV(w io.Writer, results []expect.EntryResult) error {
	_, _ = fmt.Fprintln(w, "result,column,expectation,details")
	for _, r := range results {
		status := "pass"
		if !r.Result.Success {
			status = "fail"
		}
		_, _ = fmt.Fprintf(w, "%s,%s,%s,%s\n",
			status,
			escapeCSV(r.Entry.Column),
			escapeCSV(r.Entry.Check),
			escapeCSV(resultDetails(r)),
		)
	}
	return nil
}

func renderResultsMarkdown(w io.Writer, results []expect.EntryResult) error {
	_, _ = fmt.Fprintln(w, "| Result | Column | Expectation | Details |")
	_, _ = fmt.Fprintln(w, "| --- | --- | --- | --- |")
	for _, r := range results {
		status := "✅"
		if !r.Result.Success {
			status = "❌"
		}
		_, _ = fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
			status, r.Entry.Column, r.Entry.Check, resultDetails(r))
	}
	return nil
}

// resultDetails summarizes a result's diagnostics plus the entry's arguments
// on one line.
func resultDetails(r expect.EntryResult) string {
	var parts []string

	if len(r.Entry.Args) > 0 {
		keys := make([]string, 0, len(r.Entry.Args))
		for k := range r.Entry.Args {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		args := make([]string, len(keys))
		for i, k := range keys {
			args[i] = fmt.Sprintf("%s=%s", k, dataset.FormatCell(r.Entry.Args[k]))
		}
		parts = append(parts, strings.Join(args, " "))
	}

	if v, ok := r.Result.Details["observed_value"]; ok && v != nil {
		parts = append(parts, fmt.Sprintf("observed=%s", dataset.FormatCell(v)))
	}
	if v, ok := r.Result.Details["unexpected_count"]; ok {
		if n, isInt := v.(int); isInt && n > 0 {
			parts = append(parts, fmt.Sprintf("unexpected=%d", n))
		}
	}

	return strings.Join(parts, ", ")
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
