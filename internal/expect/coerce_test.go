package expect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceArg(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
		ok   bool
	}{
		{name: "integer", raw: "42", want: int64(42), ok: true},
		{name: "negative integer", raw: "-7", want: int64(-7), ok: true},
		{name: "float", raw: "3.14", want: 3.14, ok: true},
		{name: "scientific float", raw: "1e3", want: 1000.0, ok: true},
		{name: "bool true", raw: "true", want: true, ok: true},
		{name: "bool mixed case", raw: "TRUE", want: true, ok: true},
		{name: "bool false", raw: "False", want: false, ok: true},
		{name: "plain string", raw: "hello", want: "hello", ok: true},
		{name: "yes is not a bool", raw: "yes", want: "yes", ok: true},
		{name: "empty omitted", raw: "", want: nil, ok: false},
		{name: "whitespace omitted", raw: "   ", want: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceArg(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// "1" must become an int, never a bool: the attempt order is fixed.
func TestCoerceArgOrdering(t *testing.T) {
	got, ok := CoerceArg("1")
	assert.True(t, ok)
	assert.Equal(t, int64(1), got)

	got, ok = CoerceArg("0")
	assert.True(t, ok)
	assert.Equal(t, int64(0), got)
}

func TestCoerceArgAs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind ParamKind
		want any
		ok   bool
	}{
		{name: "declared int", raw: "5", kind: KindInt, want: int64(5), ok: true},
		{name: "declared float widens int input", raw: "5", kind: KindFloat, want: 5.0, ok: true},
		{name: "declared bool", raw: "true", kind: KindBool, want: true, ok: true},
		{name: "declared string keeps digits", raw: "123", kind: KindString, want: "123", ok: true},
		{name: "list splits commas", raw: "1, 2, x", kind: KindList, want: []any{int64(1), int64(2), "x"}, ok: true},
		{name: "non-parsing falls back silently", raw: "abc", kind: KindInt, want: "abc", ok: true},
		{name: "empty omitted regardless of kind", raw: "", kind: KindFloat, want: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceArgAs(tt.raw, tt.kind)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
