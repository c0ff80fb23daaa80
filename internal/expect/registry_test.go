package expect

import (
	"testing"

	"github.com/leapstack-labs/leapcheck/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopCheck(_ dataset.Column, _ map[string]any) (Result, error) {
	return Result{Success: true}, nil
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		def     Def
		wantErr string
	}{
		{
			name:    "missing prefix",
			def:     Def{Name: "column_values_check", Fn: nopCheck},
			wantErr: "name must start with",
		},
		{
			name:    "nil function",
			def:     Def{Name: "expect_column_nil_fn"},
			wantErr: "nil check function",
		},
		{
			name: "empty param name",
			def: Def{
				Name:   "expect_column_empty_param",
				Params: []ParamSpec{{Name: ""}},
				Fn:     nopCheck,
			},
			wantErr: "empty name",
		},
		{
			name: "ignored param name",
			def: Def{
				Name:   "expect_column_ignored_param",
				Params: []ParamSpec{{Name: "result_format"}},
				Fn:     nopCheck,
			},
			wantErr: "ignore-set",
		},
		{
			name: "duplicate param",
			def: Def{
				Name:   "expect_column_dup_param",
				Params: []ParamSpec{{Name: "mostly"}, {Name: "mostly"}},
				Fn:     nopCheck,
			},
			wantErr: "duplicate parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Registry{defs: make(map[string]Def)}
			err := r.register(tt.def)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	r := &Registry{defs: make(map[string]Def)}
	def := Def{Name: "expect_column_once", Fn: nopCheck}

	require.NoError(t, r.register(def))
	err := r.register(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestParamsFiltersIgnoreSet(t *testing.T) {
	// Every builtin check must expose only tunable parameters.
	for _, name := range Names() {
		params, err := Params(name)
		require.NoError(t, err, name)
		for _, p := range params {
			assert.False(t, IsIgnoredParam(p.Name),
				"check %s exposes ignored param %s", name, p.Name)
			assert.NotEmpty(t, p.Name)
		}
	}
}

func TestParamsUnknownCheck(t *testing.T) {
	_, err := Params("expect_column_no_such_check")
	assert.ErrorIs(t, err, ErrUnknownCheck)
}

func TestNamesSortedAndPrefixed(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	assert.Equal(t, Count(), len(names))

	for i, name := range names {
		assert.Contains(t, name, CheckPrefix)
		if i > 0 {
			assert.Less(t, names[i-1], name)
		}
	}
}

func TestGet(t *testing.T) {
	def, ok := Get("expect_column_values_to_be_increasing")
	require.True(t, ok)
	assert.NotNil(t, def.Fn)

	p, ok := def.Param("strictly")
	require.True(t, ok)
	assert.Equal(t, KindBool, p.Kind)

	_, ok = Get("expect_column_bogus")
	assert.False(t, ok)
}
