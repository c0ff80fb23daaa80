package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapcheck/internal/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runChecksCommand(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewChecksCommand()
	var buf strings.Builder
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestChecksList(t *testing.T) {
	out := runChecksCommand(t)

	assert.Contains(t, out, "expect_column_values_to_be_increasing")
	assert.Contains(t, out, "expect_column_sum_to_be_between")
	assert.Contains(t, out, "checks registered")
}

func TestChecksListJSON(t *testing.T) {
	out := runChecksCommand(t, "--format", "json")

	var infos []checkInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	assert.Equal(t, expect.Count(), len(infos))

	byName := make(map[string]checkInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}

	inSet, ok := byName["expect_column_values_to_be_in_set"]
	require.True(t, ok)
	require.NotEmpty(t, inSet.Params)
	assert.Equal(t, "value_set", inSet.Params[0].Name)
	assert.True(t, inSet.Params[0].Required)
}

func TestChecksShowOne(t *testing.T) {
	out := runChecksCommand(t, "expect_column_values_to_be_increasing")

	assert.Contains(t, out, "expect_column_values_to_be_increasing")
	assert.Contains(t, out, "Parameters:")
	assert.Contains(t, out, "strictly (bool) default: true")
}

func TestChecksShowUnknown(t *testing.T) {
	cmd := NewChecksCommand()
	cmd.SetOut(&strings.Builder{})
	cmd.SetErr(&strings.Builder{})
	cmd.SetArgs([]string{"expect_column_bogus"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestParamLine(t *testing.T) {
	assert.Equal(t, "mostly (float) default: 1",
		paramLine(expect.ParamSpec{Name: "mostly", Kind: expect.KindFloat, Default: 1.0, HasDefault: true}))
	assert.Equal(t, "regex (string) required",
		paramLine(expect.ParamSpec{Name: "regex", Kind: expect.KindString}))
	assert.Equal(t, "min_value (float) default: none",
		paramLine(expect.ParamSpec{Name: "min_value", Kind: expect.KindFloat, HasDefault: true}))
}
