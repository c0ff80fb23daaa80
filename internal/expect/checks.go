package expect

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/leapcheck/internal/dataset"
)

// Builtin column checks. Each is registered as a data-driven Def; the
// parameter specs double as the schema the UIs build input widgets from.

const maxUnexpectedList = 20

func init() {
	Register(Def{
		Name:        "expect_column_values_to_be_increasing",
		Description: "Expect column values to be increasing from row to row.",
		Params: []ParamSpec{
			{Name: "strictly", Kind: KindBool, Default: true, HasDefault: true},
		},
		Fn: checkValuesIncreasing,
	})
	Register(Def{
		Name:        "expect_column_values_to_not_be_null",
		Description: "Expect column values to not be null.",
		Params: []ParamSpec{
			{Name: "mostly", Kind: KindFloat, Default: 1.0, HasDefault: true},
		},
		Fn: checkValuesNotNull,
	})
	Register(Def{
		Name:        "expect_column_sum_to_be_between",
		Description: "Expect the column sum to be between a minimum and maximum value.",
		Params: []ParamSpec{
			{Name: "min_value", Kind: KindFloat, HasDefault: true},
			{Name: "max_value", Kind: KindFloat, HasDefault: true},
		},
		Fn: aggregateBetween("sum", aggSum),
	})
	Register(Def{
		Name:        "expect_column_mean_to_be_between",
		Description: "Expect the column mean to be between a minimum and maximum value.",
		Params: []ParamSpec{
			{Name: "min_value", Kind: KindFloat, HasDefault: true},
			{Name: "max_value", Kind: KindFloat, HasDefault: true},
		},
		Fn: aggregateBetween("mean", aggMean),
	})
	Register(Def{
		Name:        "expect_column_max_to_be_between",
		Description: "Expect the column maximum to be between a minimum and maximum value.",
		Params: []ParamSpec{
			{Name: "min_value", Kind: KindFloat, HasDefault: true},
			{Name: "max_value", Kind: KindFloat, HasDefault: true},
		},
		Fn: aggregateBetween("max", aggMax),
	})
	Register(Def{
		Name:        "expect_column_min_to_be_between",
		Description: "Expect the column minimum to be between a minimum and maximum value.",
		Params: []ParamSpec{
			{Name: "min_value", Kind: KindFloat, HasDefault: true},
			{Name: "max_value", Kind: KindFloat, HasDefault: true},
		},
		Fn: aggregateBetween("min", aggMin),
	})
	Register(Def{
		Name:        "expect_column_values_to_be_between",
		Description: "Expect column values to be between a minimum and maximum value.",
		Params: []ParamSpec{
			{Name: "min_value", Kind: KindFloat, HasDefault: true},
			{Name: "max_value", Kind: KindFloat, HasDefault: true},
			{Name: "mostly", Kind: KindFloat, Default: 1.0, HasDefault: true},
		},
		Fn: checkValuesBetween,
	})
	Register(Def{
		Name:        "expect_column_values_to_be_unique",
		Description: "Expect each column value to appear exactly once.",
		Params: []ParamSpec{
			{Name: "mostly", Kind: KindFloat, Default: 1.0, HasDefault: true},
		},
		Fn: checkValuesUnique,
	})
	Register(Def{
		Name:        "expect_column_values_to_be_in_set",
		Description: "Expect column values to belong to a given set.",
		Params: []ParamSpec{
			{Name: "value_set", Kind: KindList},
			{Name: "mostly", Kind: KindFloat, Default: 1.0, HasDefault: true},
		},
		Fn: checkValuesInSet,
	})
	Register(Def{
		Name:        "expect_column_values_to_match_regex",
		Description: "Expect column values to match a regular expression.",
		Params: []ParamSpec{
			{Name: "regex", Kind: KindString},
			{Name: "mostly", Kind: KindFloat, Default: 1.0, HasDefault: true},
		},
		Fn: checkValuesMatchRegex,
	})
	Register(Def{
		Name:        "expect_column_value_lengths_to_be_between",
		Description: "Expect column value lengths to be between a minimum and maximum.",
		Params: []ParamSpec{
			{Name: "min_value", Kind: KindInt, HasDefault: true},
			{Name: "max_value", Kind: KindInt, HasDefault: true},
			{Name: "mostly", Kind: KindFloat, Default: 1.0, HasDefault: true},
		},
		Fn: checkValueLengthsBetween,
	})
}

// ---------------------------------------------------------------------------
// argument helpers

// asFloat widens a cell or argument value to float64.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// argNumber reads an optional numeric argument. A present but non-numeric
// value is a check fault.
func argNumber(args map[string]any, name string) (*float64, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}
	f, ok := asFloat(v)
	if !ok {
		return nil, fmt.Errorf("argument %q: expected a number, got %T (%v)", name, v, v)
	}
	return &f, nil
}

// argBool reads an optional bool argument with a default.
func argBool(args map[string]any, name string, def bool) (bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("argument %q: expected a bool, got %T (%v)", name, v, v)
	}
	return b, nil
}

// argMostly reads the shared "mostly" threshold (fraction of values that must
// pass), defaulting to 1.0.
func argMostly(args map[string]any) (float64, error) {
	m, err := argNumber(args, "mostly")
	if err != nil {
		return 0, err
	}
	if m == nil {
		return 1.0, nil
	}
	if *m < 0 || *m > 1 {
		return 0, fmt.Errorf("argument \"mostly\": must be between 0 and 1, got %v", *m)
	}
	return *m, nil
}

func inBounds(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

// ---------------------------------------------------------------------------
// value-level checks

// evalValues applies a per-value predicate over the column's non-null values
// and assembles the standard result shape. Success requires the passing
// fraction to reach the "mostly" threshold.
func evalValues(col dataset.Column, mostly float64, pred func(v any) bool) Result {
	var elementCount, unexpectedCount int
	var unexpected []any

	for _, v := range col.Values {
		if v == nil {
			continue
		}
		elementCount++
		if !pred(v) {
			unexpectedCount++
			if len(unexpected) < maxUnexpectedList {
				unexpected = append(unexpected, v)
			}
		}
	}

	success := true
	if elementCount > 0 {
		success = float64(elementCount-unexpectedCount)/float64(elementCount) >= mostly
	}

	return Result{
		Success: success,
		Details: map[string]any{
			"element_count":    elementCount,
			"unexpected_count": unexpectedCount,
			"unexpected_list":  unexpected,
		},
	}
}

func checkValuesNotNull(col dataset.Column, args map[string]any) (Result, error) {
	mostly, err := argMostly(args)
	if err != nil {
		return Result{}, err
	}

	elementCount := len(col.Values)
	var unexpectedCount int
	for _, v := range col.Values {
		if v == nil {
			unexpectedCount++
		}
	}

	success := true
	if elementCount > 0 {
		success = float64(elementCount-unexpectedCount)/float64(elementCount) >= mostly
	}
	return Result{
		Success: success,
		Details: map[string]any{
			"element_count":    elementCount,
			"unexpected_count": unexpectedCount,
		},
	}, nil
}

func checkValuesIncreasing(col dataset.Column, args map[string]any) (Result, error) {
	strictly, err := argBool(args, "strictly", true)
	if err != nil {
		return Result{}, err
	}

	var violations int
	var prev any
	for _, v := range col.Values {
		if v == nil {
			continue
		}
		if prev != nil && !increasingPair(prev, v, strictly) {
			violations++
		}
		prev = v
	}

	return Result{
		Success: violations == 0,
		Details: map[string]any{
			"element_count":    len(col.Values),
			"unexpected_count": violations,
		},
	}, nil
}

// increasingPair compares two adjacent values: numerically when both sides
// are numeric, lexicographically otherwise.
func increasingPair(prev, cur any, strictly bool) bool {
	pf, pok := asFloat(prev)
	cf, cok := asFloat(cur)
	if pok && cok {
		if strictly {
			return cf > pf
		}
		return cf >= pf
	}
	ps := dataset.FormatCell(prev)
	cs := dataset.FormatCell(cur)
	if strictly {
		return cs > ps
	}
	return cs >= ps
}

func checkValuesBetween(col dataset.Column, args map[string]any) (Result, error) {
	min, err := argNumber(args, "min_value")
	if err != nil {
		return Result{}, err
	}
	max, err := argNumber(args, "max_value")
	if err != nil {
		return Result{}, err
	}
	mostly, err := argMostly(args)
	if err != nil {
		return Result{}, err
	}

	return evalValues(col, mostly, func(v any) bool {
		f, ok := asFloat(v)
		if !ok {
			return false
		}
		return inBounds(f, min, max)
	}), nil
}

func checkValuesUnique(col dataset.Column, args map[string]any) (Result, error) {
	mostly, err := argMostly(args)
	if err != nil {
		return Result{}, err
	}

	counts := make(map[any]int)
	for _, v := range col.Values {
		if v == nil {
			continue
		}
		counts[v]++
	}

	return evalValues(col, mostly, func(v any) bool {
		return counts[v] == 1
	}), nil
}

func checkValuesInSet(col dataset.Column, args map[string]any) (Result, error) {
	raw, ok := args["value_set"]
	if !ok || raw == nil {
		return Result{}, fmt.Errorf("argument \"value_set\" is required")
	}
	values, ok := raw.([]any)
	if !ok {
		return Result{}, fmt.Errorf("argument \"value_set\": expected a list, got %T", raw)
	}
	mostly, err := argMostly(args)
	if err != nil {
		return Result{}, err
	}

	// Match on the display form so int edits still hit string set members.
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[dataset.FormatCell(v)] = struct{}{}
	}

	return evalValues(col, mostly, func(v any) bool {
		_, found := set[dataset.FormatCell(v)]
		return found
	}), nil
}

func checkValuesMatchRegex(col dataset.Column, args map[string]any) (Result, error) {
	raw, ok := args["regex"]
	if !ok || raw == nil {
		return Result{}, fmt.Errorf("argument \"regex\" is required")
	}
	pattern, ok := raw.(string)
	if !ok {
		return Result{}, fmt.Errorf("argument \"regex\": expected a string, got %T", raw)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Result{}, fmt.Errorf("argument \"regex\": %w", err)
	}
	mostly, err := argMostly(args)
	if err != nil {
		return Result{}, err
	}

	return evalValues(col, mostly, func(v any) bool {
		return re.MatchString(dataset.FormatCell(v))
	}), nil
}

func checkValueLengthsBetween(col dataset.Column, args map[string]any) (Result, error) {
	min, err := argNumber(args, "min_value")
	if err != nil {
		return Result{}, err
	}
	max, err := argNumber(args, "max_value")
	if err != nil {
		return Result{}, err
	}
	mostly, err := argMostly(args)
	if err != nil {
		return Result{}, err
	}

	return evalValues(col, mostly, func(v any) bool {
		length := float64(len([]rune(dataset.FormatCell(v))))
		return inBounds(length, min, max)
	}), nil
}

// ---------------------------------------------------------------------------
// aggregate checks

type aggregateFunc func(values []float64) (float64, bool)

func aggSum(values []float64) (float64, bool) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum, true
}

func aggMean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum, _ := aggSum(values)
	return sum / float64(len(values)), true
}

func aggMax(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max, true
}

func aggMin(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min, true
}

// aggregateBetween builds a check comparing a column aggregate against
// optional min_value/max_value bounds. A non-numeric value in the column is a
// check fault, matching the strictness of summing a mixed column.
func aggregateBetween(name string, agg aggregateFunc) CheckFunc {
	return func(col dataset.Column, args map[string]any) (Result, error) {
		min, err := argNumber(args, "min_value")
		if err != nil {
			return Result{}, err
		}
		max, err := argNumber(args, "max_value")
		if err != nil {
			return Result{}, err
		}

		var values []float64
		for _, v := range col.Values {
			if v == nil {
				continue
			}
			f, ok := asFloat(v)
			if !ok {
				return Result{}, fmt.Errorf("column %q: cannot compute %s of non-numeric value %v", col.Name, name, v)
			}
			values = append(values, f)
		}

		observed, ok := agg(values)
		if !ok {
			// No values to aggregate: only vacuously true when unbounded.
			return Result{
				Success: min == nil && max == nil,
				Details: map[string]any{"element_count": 0, "observed_value": nil},
			}, nil
		}

		return Result{
			Success: inBounds(observed, min, max),
			Details: map[string]any{
				"element_count":  len(values),
				"observed_value": observed,
			},
		}, nil
	}
}
