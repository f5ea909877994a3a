package geometry

import (
	"encoding/json"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Coerce converts one raw parameter value into a float64. Numbers pass
// through; strings are evaluated as restricted arithmetic ("2*π", "3^2").
// The boolean reports success. Failures are logged, never returned as
// errors: raw values are untrusted model output, and an unusable value is
// treated the same as an absent one.
func (e *Engine) Coerce(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			e.log.Warn("uncoercible numeric value", zap.String("value", v.String()), zap.Error(err))
			return 0, false
		}
		return f, true
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if s == "" {
			return 0, false
		}
		f, err := evalExpr(s)
		if err != nil {
			e.log.Warn("uncoercible string value", zap.String("value", v), zap.Error(err))
			return 0, false
		}
		return f, true
	case nil:
		return 0, false
	}
	e.log.Warn("uncoercible value of unsupported type", zap.Any("value", value))
	return 0, false
}

// coerceAngles converts a raw angles value into degree floats. Any
// uncoercible element rejects the whole list.
func (e *Engine) coerceAngles(value any) ([]float64, bool) {
	switch v := value.(type) {
	case []float64:
		return slices.Clone(v), true
	case []any:
		out := make([]float64, 0, len(v))
		for _, elem := range v {
			f, ok := e.Coerce(elem)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, true
	}
	return nil, false
}
