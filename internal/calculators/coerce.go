package calculators

import (
	"math"
	"strconv"
	"strings"

	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/finmath"
)

// Input coercion never fails: anything that is not a usable value of the
// expected kind is replaced by the caller's fallback.

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// parseNumber parses decimal text. Blank or non-finite text is rejected.
func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}

func asNumber(in domain.Inputs, key string, fallback float64) float64 {
	v, ok := in[key]
	if !ok {
		return fallback
	}
	switch v.Kind {
	case domain.FieldNumber:
		if isFinite(v.Num) {
			return v.Num
		}
	case domain.FieldSelect:
		if n, ok := parseNumber(v.Str); ok {
			return n
		}
	}
	return fallback
}

func asString(in domain.Inputs, key, fallback string) string {
	if v, ok := in[key]; ok && v.Kind == domain.FieldSelect {
		return v.Str
	}
	return fallback
}

func asBool(in domain.Inputs, key string, fallback bool) bool {
	if v, ok := in[key]; ok && v.Kind == domain.FieldBoolean {
		return v.Bool
	}
	return fallback
}

// asMonthGrid returns a complete m1..m12 grid. Missing or non-finite
// months become 0; a value that is not a grid yields all zeros.
func asMonthGrid(in domain.Inputs, key string) domain.MonthGrid {
	v, ok := in[key]
	if !ok || v.Kind != domain.FieldMonthGrid || v.Grid == nil {
		return finmath.DefaultMonthGrid(0)
	}
	grid := make(domain.MonthGrid, len(finmath.MonthKeys))
	for _, k := range finmath.MonthKeys {
		if n := v.Grid[k]; isFinite(n) {
			grid[k] = n
		} else {
			grid[k] = 0
		}
	}
	return grid
}

// asTaxYear reads a tax-year select. Numbers are accepted too; anything
// that is not a whole year falls back.
func asTaxYear(in domain.Inputs, key string, fallback int) int {
	v, ok := in[key]
	if !ok {
		return fallback
	}
	var n float64
	switch v.Kind {
	case domain.FieldSelect:
		parsed, ok := parseNumber(v.Str)
		if !ok {
			return fallback
		}
		n = parsed
	case domain.FieldNumber:
		n = v.Num
	default:
		return fallback
	}
	if !isFinite(n) || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return fallback
	}
	return int(n)
}
