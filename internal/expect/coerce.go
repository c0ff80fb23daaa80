package expect

import (
	"strconv"
	"strings"
)

// CoerceArg converts a raw string parameter value into its best-guess typed
// form. The second return is false when the argument should be omitted
// entirely (empty input), letting the check fall back to its own default.
//
// The attempt order is int, then float, then bool ("true"/"false" literals
// only, case-insensitive), then string. The ordering is deliberate: "1"
// becomes an int, never a bool. Coercion is best-effort and silent; a string
// that matches nothing is kept as a string unchanged.
func CoerceArg(raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, true
	}
	switch strings.ToLower(raw) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return raw, true
}

// CoerceArgAs converts a raw string against a declared parameter kind. The
// declared kind wins when the value parses; otherwise the legacy syntactic
// order applies, keeping coercion silent either way.
func CoerceArgAs(raw string, kind ParamKind) (any, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	switch kind {
	case KindInt:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n, true
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f, true
		}
	case KindBool:
		switch strings.ToLower(trimmed) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	case KindString:
		return trimmed, true
	case KindList:
		parts := strings.Split(trimmed, ",")
		values := make([]any, 0, len(parts))
		for _, p := range parts {
			if v, ok := CoerceArg(p); ok {
				values = append(values, v)
			}
		}
		return values, true
	}

	return CoerceArg(trimmed)
}
