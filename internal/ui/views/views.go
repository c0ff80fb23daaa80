// Package views renders the editor UI as templ components. The components
// are assembled programmatically rather than generated from .templ sources;
// each one writes a self-contained HTML fragment that datastar patches by
// element id.
package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/leapcheck/internal/expect"
)

// EditorData carries everything the editor view renders: the current table,
// the evaluated expectation results, and the add-expectation form state.
type EditorData struct {
	Dataset    string
	Columns    []string
	Rows       [][]string
	Results    []expect.EntryResult
	CheckNames []string

	// Add-expectation form state.
	SelectedCheck string
	Params        []expect.ParamSpec
}

// component wraps an HTML-producing function as a templ.Component.
func component(f func(sb *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		f(&sb)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func esc(s string) string { return html.EscapeString(s) }

// Page renders the full HTML document around the editor app.
func Page(title string, app templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var head strings.Builder
		head.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
		head.WriteString("<meta charset=\"utf-8\">\n")
		head.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		fmt.Fprintf(&head, "<title>%s</title>\n", esc(title))
		head.WriteString("<script type=\"module\" src=\"https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js\"></script>\n")
		head.WriteString("<style>\n" + pageCSS + "</style>\n")
		head.WriteString("</head>\n<body>\n")
		head.WriteString("<header><h1>leapcheck</h1><p>Modify the data table and expectations to see the resulting effect on data quality checks.</p></header>\n")
		if _, err := io.WriteString(w, head.String()); err != nil {
			return err
		}

		if err := app.Render(ctx, w); err != nil {
			return err
		}

		// Long-lived SSE subscription for source-file change pushes.
		_, err := io.WriteString(w, "<div data-on-load=\"@get('/editor/updates')\"></div>\n</body>\n</html>\n")
		return err
	})
}

// EditorApp renders the editable table, the expectation results, and the
// add-expectation form inside the morph target.
func EditorApp(d EditorData) templ.Component {
	return component(func(sb *strings.Builder) {
		sb.WriteString("<main id=\"app\">\n")
		writeDataTable(sb, d)
		writeResults(sb, d)
		writeAddForm(sb, d)
		sb.WriteString("</main>\n")
	})
}

func writeDataTable(sb *strings.Builder, d EditorData) {
	fmt.Fprintf(sb, "<section class=\"data\"><h2>%s</h2>\n", esc(d.Dataset))
	sb.WriteString("<table class=\"editor\">\n<thead><tr>")
	for _, col := range d.Columns {
		fmt.Fprintf(sb, "<th>%s</th>", esc(col))
	}
	sb.WriteString("<th></th></tr></thead>\n<tbody>\n")

	for r, row := range d.Rows {
		sb.WriteString("<tr>")
		for c, cell := range row {
			fmt.Fprintf(sb,
				"<td><input value=\"%s\" data-bind-cell_%d_%d data-on-change=\"@post('/editor/cell/%d/%d')\"></td>",
				esc(cell), r, c, r, c)
		}
		fmt.Fprintf(sb,
			"<td><button class=\"danger\" title=\"Delete row\" data-on-click=\"@delete('/editor/rows/%d')\">&minus;</button></td>",
			r)
		sb.WriteString("</tr>\n")
	}

	sb.WriteString("</tbody>\n</table>\n")
	sb.WriteString("<div class=\"actions\">")
	sb.WriteString("<button data-on-click=\"@post('/editor/rows')\">+ Add row</button> ")
	sb.WriteString("<button data-on-click=\"@post('/editor/reset')\">Reset data</button>")
	sb.WriteString("</div>\n</section>\n")
}

func writeResults(sb *strings.Builder, d EditorData) {
	sb.WriteString("<section class=\"results\"><h2>Expectations</h2>\n")
	sb.WriteString("<table class=\"expectations\">\n")
	sb.WriteString("<thead><tr><th></th><th>Validated</th><th>Column</th><th>Expectation</th></tr></thead>\n<tbody>\n")

	for _, r := range d.Results {
		status := "<span class=\"pass\">&#10004;</span>"
		if !r.Result.Success {
			status = "<span class=\"fail\">&#10008;</span>"
		}
		tooltip := argsTooltip(r.Entry.Args)
		sb.WriteString("<tr>")
		fmt.Fprintf(sb,
			"<td><button class=\"danger\" title=\"Delete expectation\" data-on-click=\"@delete('/editor/expectations/%s')\">&minus;</button></td>",
			esc(r.Entry.ID))
		fmt.Fprintf(sb, "<td>%s</td>", status)
		fmt.Fprintf(sb, "<td>%s</td>", esc(r.Entry.Column))
		fmt.Fprintf(sb, "<td title=\"%s\">%s</td>", esc(tooltip), esc(r.Entry.Check))
		sb.WriteString("</tr>\n")
	}

	sb.WriteString("</tbody>\n</table>\n</section>\n")
}

func writeAddForm(sb *strings.Builder, d EditorData) {
	sb.WriteString("<section class=\"add\"><h2>Add expectation</h2>\n")
	sb.WriteString("<div class=\"add-row\">\n")

	// Check selector re-fetches the parameter inputs on change.
	sb.WriteString("<select data-bind-newcheck data-on-change=\"@get('/editor/params')\">")
	for _, name := range d.CheckNames {
		selected := ""
		if name == d.SelectedCheck {
			selected = " selected"
		}
		fmt.Fprintf(sb, "<option value=\"%s\"%s>%s</option>", esc(name), selected, esc(name))
	}
	sb.WriteString("</select>\n")

	sb.WriteString("<select data-bind-newcolumn>")
	for _, col := range d.Columns {
		fmt.Fprintf(sb, "<option value=\"%s\">%s</option>", esc(col), esc(col))
	}
	sb.WriteString("</select>\n")

	sb.WriteString("<button data-on-click=\"@post('/editor/expectations')\">+ Add</button>\n")
	sb.WriteString("</div>\n")

	ParamInputsHTML(sb, d.SelectedCheck, d.Params)
	sb.WriteString("</section>\n")
}

// ParamInputs renders the parameter input widgets for the selected check as
// a patchable fragment.
func ParamInputs(check string, params []expect.ParamSpec) templ.Component {
	return component(func(sb *strings.Builder) {
		ParamInputsHTML(sb, check, params)
	})
}

// ParamInputsHTML writes one input control per tunable parameter plus the
// full signature disclosure.
func ParamInputsHTML(sb *strings.Builder, check string, params []expect.ParamSpec) {
	sb.WriteString("<div id=\"param-inputs\">\n")
	for _, p := range params {
		placeholder := p.Kind.String()
		if p.HasDefault && p.Default != nil {
			placeholder = fmt.Sprintf("%s (default %v)", p.Kind, p.Default)
		}
		fmt.Fprintf(sb,
			"<label>%s <input data-bind-param_%s placeholder=\"%s\"></label>\n",
			esc(p.Name), esc(p.Name), esc(placeholder))
	}
	writeSignature(sb, check, params)
	sb.WriteString("</div>\n")
}

func writeSignature(sb *strings.Builder, check string, params []expect.ParamSpec) {
	sb.WriteString("<details><summary>Full check signature</summary><pre>")
	fmt.Fprintf(sb, "%s(column", esc(check))
	for _, p := range params {
		if p.HasDefault {
			fmt.Fprintf(sb, ", %s=%v", esc(p.Name), p.Default)
		} else {
			fmt.Fprintf(sb, ", %s", esc(p.Name))
		}
	}
	sb.WriteString(")</pre></details>\n")
}

func argsTooltip(args map[string]any) string {
	if len(args) == 0 {
		return "no arguments"
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, args[k])
	}
	return "args: " + strings.Join(parts, ", ")
}

const pageCSS = `
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 64rem; color: #1a1a2e; }
header p { color: #666; }
section { margin-bottom: 2rem; }
table { border-collapse: collapse; }
th, td { padding: 0.3rem 0.6rem; border: 1px solid #ddd; text-align: left; }
table.editor input { border: none; width: 8rem; font: inherit; }
.pass { color: #1a7f37; } .fail { color: #cf222e; }
button { cursor: pointer; }
button.danger { color: #cf222e; }
.add-row { display: flex; gap: 0.5rem; margin-bottom: 0.5rem; }
#param-inputs label { display: block; margin: 0.25rem 0; }
details pre { background: #f6f8fa; padding: 0.5rem; }
.actions { margin-top: 0.5rem; }
`
