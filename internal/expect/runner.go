package expect

import (
	"fmt"

	"github.com/leapstack-labs/leapcheck/internal/dataset"
)

// EntryResult pairs a suite entry with its evaluation outcome for one pass.
type EntryResult struct {
	Entry  Entry
	Result Result
}

// Failed returns how many entries did not succeed.
func Failed(results []EntryResult) int {
	var n int
	for _, r := range results {
		if !r.Result.Success {
			n++
		}
	}
	return n
}

// Run evaluates every entry in the suite against the table, in suite order.
// Lookup failures and missing target columns are caller errors; an error
// returned by a check itself is a fault and is passed through untouched.
func Run(table *dataset.Table, suite Suite) ([]EntryResult, error) {
	results := make([]EntryResult, 0, len(suite))
	for _, entry := range suite {
		res, err := RunEntry(table, entry)
		if err != nil {
			return nil, err
		}
		results = append(results, EntryResult{Entry: entry, Result: res})
	}
	return results, nil
}

// RunEntry evaluates a single entry against the table.
func RunEntry(table *dataset.Table, entry Entry) (Result, error) {
	def, ok := Get(entry.Check)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCheck, entry.Check)
	}

	col, err := table.Column(entry.Column)
	if err != nil {
		return Result{}, fmt.Errorf("check %s: %w", entry.Check, err)
	}

	return def.Fn(col, entry.Args)
}
