package expect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownCheck is returned when a suite entry or caller names a check
// that was never registered.
var ErrUnknownCheck = errors.New("unknown check")

// CheckPrefix is the required name prefix for registered checks. Discovery
// by prefix mirrors how the check set is surfaced to users.
const CheckPrefix = "expect_column"

// ignoreParams is the fixed set of identity/metadata parameter names that are
// never exposed as tunable inputs. The target column arrives positionally and
// the rest are evaluation plumbing irrelevant to end-user tuning.
var ignoreParams = map[string]struct{}{
	"column":                     {},
	"column_index":               {},
	"meta":                       {},
	"catch_exceptions":           {},
	"include_config":             {},
	"result_format":              {},
	"output_strftime_format":     {},
	"parse_strings_as_datetimes": {},
}

// IsIgnoredParam reports whether a parameter name is in the fixed ignore-set.
func IsIgnoredParam(name string) bool {
	_, ok := ignoreParams[name]
	return ok
}

// globalRegistry holds all registered checks, keyed by name.
var globalRegistry = &Registry{defs: make(map[string]Def)}

// Registry stores check definitions for discovery and lookup. Registration
// is validated up front so unknown names and malformed definitions fail fast
// instead of surfacing at call time.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Def
}

// Register adds a check to the global registry. Call from init() in the
// package defining the check. It panics on malformed definitions, which is a
// programming error caught on first use.
func Register(def Def) {
	if err := globalRegistry.register(def); err != nil {
		panic(err)
	}
}

func (r *Registry) register(def Def) error {
	if !strings.HasPrefix(def.Name, CheckPrefix) {
		return fmt.Errorf("check %q: name must start with %q", def.Name, CheckPrefix)
	}
	if def.Fn == nil {
		return fmt.Errorf("check %q: nil check function", def.Name)
	}
	seen := make(map[string]struct{}, len(def.Params))
	for _, p := range def.Params {
		if p.Name == "" {
			return fmt.Errorf("check %q: parameter with empty name", def.Name)
		}
		if IsIgnoredParam(p.Name) {
			return fmt.Errorf("check %q: parameter %q is in the ignore-set", def.Name, p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("check %q: duplicate parameter %q", def.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("check %q: already registered", def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// Get returns a check definition by name.
func Get(name string) (Def, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	def, ok := globalRegistry.defs[name]
	return def, ok
}

// All returns every registered check, sorted by name.
func All() []Def {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	defs := make([]Def, 0, len(globalRegistry.defs))
	for _, def := range globalRegistry.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Names returns the sorted names of all registered checks.
func Names() []string {
	defs := All()
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	return names
}

// Params returns the ordered tunable parameters of the named check. The
// fixed ignore-set is filtered out, so the result maps one-to-one onto the
// input widgets a UI should build.
func Params(name string) ([]ParamSpec, error) {
	def, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
	}
	params := make([]ParamSpec, 0, len(def.Params))
	for _, p := range def.Params {
		if IsIgnoredParam(p.Name) {
			continue
		}
		params = append(params, p)
	}
	return params, nil
}

// Count returns the number of registered checks.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.defs)
}
