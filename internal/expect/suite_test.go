package expect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuiteAdd(t *testing.T) {
	var s Suite

	s1 := s.Add(Entry{Check: "expect_column_values_to_be_unique", Column: "a"})
	s2 := s1.Add(Entry{Check: "expect_column_values_to_not_be_null", Column: "b"})

	// Pure: earlier values are untouched.
	assert.Len(t, s, 0)
	assert.Len(t, s1, 1)
	assert.Len(t, s2, 2)

	assert.NotEmpty(t, s2[0].ID)
	assert.NotEmpty(t, s2[1].ID)
	assert.NotEqual(t, s2[0].ID, s2[1].ID)
}

func TestSuiteAddIgnoresCallerID(t *testing.T) {
	s := Suite{}.Add(Entry{ID: "stale", Check: "expect_column_values_to_be_unique", Column: "a"})
	assert.NotEqual(t, "stale", s[0].ID)
}

func TestSuiteRemove(t *testing.T) {
	s := Suite{}.
		Add(Entry{Check: "expect_column_values_to_be_unique", Column: "a"}).
		Add(Entry{Check: "expect_column_values_to_not_be_null", Column: "b"})

	removed := s.Remove(s[0].ID)
	assert.Len(t, removed, 1)
	assert.Equal(t, "b", removed[0].Column)

	// The original is untouched and unknown ids are a no-op copy.
	assert.Len(t, s, 2)
	assert.Len(t, s.Remove("no-such-id"), 2)
}

func TestSuiteGet(t *testing.T) {
	s := Suite{}.Add(Entry{Check: "expect_column_values_to_be_unique", Column: "a"})

	e, ok := s.Get(s[0].ID)
	require.True(t, ok)
	assert.Equal(t, "a", e.Column)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func writeSuiteFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "expectations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSuite(t *testing.T) {
	path := writeSuiteFile(t, `
expectations:
  - expectation: expect_column_values_to_be_increasing
    target_column: column_1
  - expectation: expect_column_sum_to_be_between
    target_column: column_3
    args:
      min_value: 1
      max_value: 10
`)

	suite, err := LoadSuite(path)
	require.NoError(t, err)
	require.Len(t, suite, 2)

	assert.Equal(t, "expect_column_values_to_be_increasing", suite[0].Check)
	assert.Equal(t, "column_1", suite[0].Column)
	assert.NotEmpty(t, suite[0].ID)

	// YAML ints are normalized to int64.
	assert.Equal(t, int64(1), suite[1].Args["min_value"])
	assert.Equal(t, int64(10), suite[1].Args["max_value"])
}

func TestLoadSuiteValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "unknown check",
			content: `
expectations:
  - expectation: expect_column_to_levitate
    target_column: column_1
`,
			wantErr: "unknown check",
		},
		{
			name: "missing target column",
			content: `
expectations:
  - expectation: expect_column_values_to_be_increasing
`,
			wantErr: "target_column is required",
		},
		{
			name: "undeclared argument",
			content: `
expectations:
  - expectation: expect_column_values_to_be_increasing
    target_column: column_1
    args:
      wibble: 3
`,
			wantErr: `unknown argument "wibble"`,
		},
		{
			name:    "malformed yaml",
			content: "expectations: [",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSuite(writeSuiteFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSuiteMissingFile(t *testing.T) {
	_, err := LoadSuite(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read suite file")
}

func TestNormalizeArgs(t *testing.T) {
	args := NormalizeArgs(map[string]any{
		"a": 3,
		"b": int32(4),
		"c": float32(1.5),
		"d": []any{1, "x"},
		"e": "kept",
	})

	assert.Equal(t, int64(3), args["a"])
	assert.Equal(t, int64(4), args["b"])
	assert.Equal(t, 1.5, args["c"])
	assert.Equal(t, []any{int64(1), "x"}, args["d"])
	assert.Equal(t, "kept", args["e"])

	assert.Nil(t, NormalizeArgs(nil))
}
