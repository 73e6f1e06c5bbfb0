package service

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"oncodx/internal/model"
)

var (
	ErrWrongFeatureCount = errors.New("exactly 30 features required")
	ErrFeatureNotNumeric = errors.New("all features must be numeric")
)

// ParseFeatures valida y coacciona la entrada cruda del request a un
// vector de model.NumFeatures números finitos. El orden se preserva:
// cada posición identifica una medición concreta del entrenamiento.
func ParseFeatures(raw []any) ([]float64, error) {
	if len(raw) != model.NumFeatures {
		return nil, ErrWrongFeatureCount
	}
	features := make([]float64, len(raw))
	for i, v := range raw {
		f, ok := coerceFloat(v)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, ErrFeatureNotNumeric
		}
		features[i] = f
	}
	return features, nil
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
