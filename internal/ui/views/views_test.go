package views

import (
	"context"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapcheck/internal/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderEditor(t *testing.T, d EditorData) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, EditorApp(d).Render(context.Background(), &sb))
	return sb.String()
}

func TestEditorAppRendersTable(t *testing.T) {
	html := renderEditor(t, EditorData{
		Dataset: "static_expectations_dataset.csv",
		Columns: []string{"column_1", "column_2"},
		Rows: [][]string{
			{"1", "apple"},
			{"2", "banana"},
		},
	})

	assert.Contains(t, html, `id="app"`)
	assert.Contains(t, html, "static_expectations_dataset.csv")
	assert.Contains(t, html, "<th>column_1</th>")
	assert.Contains(t, html, "data-bind-cell_0_0")
	assert.Contains(t, html, "data-bind-cell_1_1")
	assert.Contains(t, html, `@post('/editor/cell/1/1')`)
	assert.Contains(t, html, `@delete('/editor/rows/0')`)
	assert.Contains(t, html, `@post('/editor/rows')`)
}

func TestEditorAppRendersResults(t *testing.T) {
	html := renderEditor(t, EditorData{
		Results: []expect.EntryResult{
			{
				Entry:  expect.Entry{ID: "id-1", Check: "expect_column_values_to_be_unique", Column: "column_1"},
				Result: expect.Result{Success: true},
			},
			{
				Entry:  expect.Entry{ID: "id-2", Check: "expect_column_values_to_not_be_null", Column: "column_2"},
				Result: expect.Result{Success: false},
			},
		},
	})

	assert.Contains(t, html, `class="pass"`)
	assert.Contains(t, html, `class="fail"`)
	assert.Contains(t, html, `@delete('/editor/expectations/id-1')`)
	assert.Contains(t, html, "expect_column_values_to_not_be_null")
}

func TestEditorAppEscapesCellValues(t *testing.T) {
	html := renderEditor(t, EditorData{
		Columns: []string{"c"},
		Rows:    [][]string{{`<script>"x"</script>`}},
	})

	assert.NotContains(t, html, "<script>\"x\"")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestParamInputs(t *testing.T) {
	var sb strings.Builder
	params := []expect.ParamSpec{
		{Name: "min_value", Kind: expect.KindFloat, HasDefault: true},
		{Name: "mostly", Kind: expect.KindFloat, Default: 1.0, HasDefault: true},
	}
	require.NoError(t, ParamInputs("expect_column_values_to_be_between", params).
		Render(context.Background(), &sb))
	html := sb.String()

	assert.Contains(t, html, `id="param-inputs"`)
	assert.Contains(t, html, "data-bind-param_min_value")
	assert.Contains(t, html, "data-bind-param_mostly")
	assert.Contains(t, html, "default 1")
	assert.Contains(t, html, "expect_column_values_to_be_between(column")
}

func TestArgsTooltipSortsKeys(t *testing.T) {
	tip := argsTooltip(map[string]any{
		"mostly":    0.5,
		"min_value": int64(1),
		"max_value": int64(10),
	})
	assert.Equal(t, "args: max_value=10, min_value=1, mostly=0.5", tip)

	assert.Equal(t, "no arguments", argsTooltip(nil))
}

func TestPageWrapsApp(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Page("leapcheck", EditorApp(EditorData{})).
		Render(context.Background(), &sb))
	html := sb.String()

	assert.Contains(t, html, "<!doctype html>")
	assert.Contains(t, html, "<title>leapcheck</title>")
	assert.Contains(t, html, "datastar.js")
	assert.Contains(t, html, `@get('/editor/updates')`)
	assert.Contains(t, html, `id="app"`)
}
