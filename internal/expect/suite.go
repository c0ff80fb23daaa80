package expect

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Entry binds one check to one target column with optional arguments. Entries
// live only for the session; IDs are generated, never persisted.
type Entry struct {
	ID     string         `yaml:"-"`
	Check  string         `yaml:"expectation"`
	Column string         `yaml:"target_column"`
	Args   map[string]any `yaml:"args,omitempty"`
}

// Suite is an ordered, owned collection of expectation entries. Add and
// Remove are pure: they return a new collection and never mutate shared
// state, so a caller can hold the previous value across a render pass.
type Suite []Entry

// Add returns a new suite with the entry appended. The entry is assigned a
// fresh unique id.
func (s Suite) Add(e Entry) Suite {
	e.ID = uuid.NewString()
	out := make(Suite, len(s)+1)
	copy(out, s)
	out[len(s)] = e
	return out
}

// Remove returns a new suite without the entry carrying the given id.
// Removing an unknown id is a no-op copy.
func (s Suite) Remove(id string) Suite {
	out := make(Suite, 0, len(s))
	for _, e := range s {
		if e.ID == id {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Get returns the entry with the given id.
func (s Suite) Get(id string) (Entry, bool) {
	for _, e := range s {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// suiteFile is the YAML shape of a suite file.
type suiteFile struct {
	Expectations []Entry `yaml:"expectations"`
}

// LoadSuite reads a YAML suite file and validates every entry against the
// registry: unknown checks and undeclared argument names fail at load, not
// at evaluation time. Entries get fresh ids.
func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var sf suiteFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse suite file %s: %w", path, err)
	}

	var suite Suite
	for i, e := range sf.Expectations {
		def, ok := Get(e.Check)
		if !ok {
			return nil, fmt.Errorf("suite entry %d: %w: %q", i, ErrUnknownCheck, e.Check)
		}
		if e.Column == "" {
			return nil, fmt.Errorf("suite entry %d (%s): target_column is required", i, e.Check)
		}
		for name := range e.Args {
			if _, ok := def.Param(name); !ok {
				return nil, fmt.Errorf("suite entry %d (%s): unknown argument %q", i, e.Check, name)
			}
		}
		e.Args = NormalizeArgs(e.Args)
		suite = suite.Add(e)
	}

	return suite, nil
}

// NormalizeArgs collapses YAML/JSON decoded argument values onto the value
// set checks expect (ints widen to int64, slices to []any).
func NormalizeArgs(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = normalizeArg(v)
	}
	return out
}

func normalizeArg(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float32:
		return float64(n)
	case []any:
		out := make([]any, len(n))
		for i, item := range n {
			out[i] = normalizeArg(item)
		}
		return out
	default:
		return v
	}
}
