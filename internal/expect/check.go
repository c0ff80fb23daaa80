// Package expect implements named, parameterized data-quality checks
// ("expectations") over table columns, a validated registry for discovering
// them, and the runner that evaluates a suite of expectation entries against
// the current dataset.
package expect

import (
	"github.com/leapstack-labs/leapcheck/internal/dataset"
)

// ParamKind is the declared type of a tunable check parameter. Input widgets
// and coercion key off it; KindAny falls back to syntactic coercion.
type ParamKind int

const (
	KindAny ParamKind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindList
)

// String returns the display name of the kind.
func (k ParamKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "any"
	}
}

// ParamSpec describes one tunable parameter of a check: its name, declared
// kind, and default. A nil Default with HasDefault set means the parameter is
// optional and unbounded/disabled when omitted.
type ParamSpec struct {
	Name       string
	Kind       ParamKind
	Default    any
	HasDefault bool
}

// Result is the outcome of evaluating one check against one column.
// Details carries structured diagnostics (observed_value, unexpected_count,
// unexpected_list, element_count) for display; it is derived state and is
// never persisted.
type Result struct {
	Success bool
	Details map[string]any
}

// CheckFunc evaluates a check against a column with the given keyword
// arguments. A returned error is a check fault: the glue layer does not
// catch it, it propagates to the caller.
type CheckFunc func(col dataset.Column, args map[string]any) (Result, error)

// Def is a data-driven check definition. Checks are stateless; everything
// they need arrives through the column view and the argument map.
type Def struct {
	Name        string
	Description string
	Params      []ParamSpec
	Fn          CheckFunc
}

// Param returns the spec for a named parameter of this check.
func (d Def) Param(name string) (ParamSpec, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}
