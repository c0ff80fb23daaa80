package expect

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leapcheck/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *dataset.Table {
	t.Helper()
	table := dataset.New(
		[]string{"column_1", "column_2", "column_3"},
		[]dataset.Kind{dataset.KindInt, dataset.KindString, dataset.KindInt},
	)
	require.NoError(t, table.AppendRawRow([]any{int64(1), "apple", int64(1)}))
	require.NoError(t, table.AppendRawRow([]any{int64(2), "banana", int64(2)}))
	require.NoError(t, table.AppendRawRow([]any{int64(3), "cherry", int64(3)}))
	return table
}

func sampleSuite() Suite {
	return Suite{}.
		Add(Entry{Check: "expect_column_values_to_be_increasing", Column: "column_1"}).
		Add(Entry{Check: "expect_column_values_to_not_be_null", Column: "column_2"}).
		Add(Entry{Check: "expect_column_sum_to_be_between", Column: "column_3",
			Args: map[string]any{"min_value": int64(1), "max_value": int64(10)}})
}

func TestRunAllPassing(t *testing.T) {
	results, err := Run(sampleTable(t), sampleSuite())
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 0, Failed(results))

	for _, r := range results {
		assert.True(t, r.Result.Success, r.Entry.Check)
	}
}

// Editing one cell flips exactly the check that depends on it.
func TestRunFlipsAfterEdit(t *testing.T) {
	table := sampleTable(t)
	suite := sampleSuite()

	require.NoError(t, table.SetCell(1, "column_1", "1"))

	results, err := Run(table, suite)
	require.NoError(t, err)
	assert.Equal(t, 1, Failed(results))
	assert.False(t, results[0].Result.Success)
	assert.True(t, results[1].Result.Success)
	assert.True(t, results[2].Result.Success)

	// Restoring the cell restores the result.
	require.NoError(t, table.SetCell(1, "column_1", "2"))
	results, err = Run(table, suite)
	require.NoError(t, err)
	assert.Equal(t, 0, Failed(results))
}

func TestRunEntryUnknownCheck(t *testing.T) {
	_, err := RunEntry(sampleTable(t), Entry{Check: "expect_column_bogus", Column: "column_1"})
	assert.ErrorIs(t, err, ErrUnknownCheck)
}

func TestRunEntryUnknownColumn(t *testing.T) {
	_, err := RunEntry(sampleTable(t), Entry{
		Check:  "expect_column_values_to_be_increasing",
		Column: "column_9",
	})
	assert.ErrorIs(t, err, dataset.ErrUnknownColumn)
}

// A fault inside a check passes through Run untouched.
func TestRunPropagatesFault(t *testing.T) {
	table := sampleTable(t)
	suite := Suite{}.Add(Entry{
		Check:  "expect_column_sum_to_be_between",
		Column: "column_2",
		Args:   map[string]any{"max_value": int64(10)},
	})

	_, err := Run(table, suite)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnknownCheck))
	assert.Contains(t, err.Error(), "non-numeric")
}

func TestRunEmptySuite(t *testing.T) {
	results, err := Run(sampleTable(t), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
