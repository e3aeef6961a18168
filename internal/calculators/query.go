package calculators

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/finmath"
)

// DefaultInputs returns a fresh copy of every field's default value.
func DefaultInputs(fields []domain.Field) domain.Inputs {
	out := make(domain.Inputs, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Default.Clone()
	}
	return out
}

// MergeInputs starts from the field defaults and applies overrides for
// known fields. Unknown keys are dropped.
func MergeInputs(fields []domain.Field, overrides domain.Inputs) domain.Inputs {
	out := DefaultInputs(fields)
	for _, f := range fields {
		if v, ok := overrides[f.Key]; ok && !v.IsZero() {
			out[f.Key] = v.Clone()
		}
	}
	return out
}

// EncodeQuery renders inputs as URL query values so a scenario can be
// shared and reproduced. Fields missing from inputs use their defaults.
func EncodeQuery(fields []domain.Field, inputs domain.Inputs) url.Values {
	q := make(url.Values, len(fields))
	for _, f := range fields {
		v, ok := inputs[f.Key]
		if !ok || v.IsZero() {
			v = f.Default
		}
		q.Set(f.Key, encodeValue(f, v))
	}
	return q
}

func encodeValue(f domain.Field, v domain.Value) string {
	if f.Type == domain.FieldMonthGrid {
		parts := make([]string, len(finmath.MonthKeys))
		for i, k := range finmath.MonthKeys {
			parts[i] = formatPlain(v.Grid[k])
		}
		return strings.Join(parts, ",")
	}
	switch v.Kind {
	case domain.FieldNumber:
		return formatPlain(v.Num)
	case domain.FieldBoolean:
		return strconv.FormatBool(v.Bool)
	case domain.FieldSelect:
		return v.Str
	default:
		return ""
	}
}

// formatPlain writes the shortest decimal text that parses back to v.
func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DecodeQuery rebuilds inputs from query values through the field schema.
// Absent keys keep their defaults; unparseable numbers fall back to the
// field default, and unparseable grid entries to that month's default.
func DecodeQuery(fields []domain.Field, q url.Values) domain.Inputs {
	return ApplyQuery(fields, DefaultInputs(fields), q)
}

// ApplyQuery overlays query values onto a copy of base. Keys that are not
// fields are ignored.
func ApplyQuery(fields []domain.Field, base domain.Inputs, q url.Values) domain.Inputs {
	out := make(domain.Inputs, len(base))
	for k, v := range base {
		out[k] = v.Clone()
	}
	for _, f := range fields {
		if !q.Has(f.Key) {
			continue
		}
		out[f.Key] = decodeValue(f, q.Get(f.Key))
	}
	return out
}

func decodeValue(f domain.Field, raw string) domain.Value {
	switch f.Type {
	case domain.FieldNumber:
		if n, ok := parseNumber(raw); ok {
			return domain.NumberValue(n)
		}
		return f.Default.Clone()
	case domain.FieldBoolean:
		return domain.BoolValue(raw == "true")
	case domain.FieldMonthGrid:
		entries := strings.Split(raw, ",")
		grid := make(domain.MonthGrid, len(finmath.MonthKeys))
		for i, k := range finmath.MonthKeys {
			if i < len(entries) {
				if n, ok := parseNumber(entries[i]); ok {
					grid[k] = n
					continue
				}
			}
			grid[k] = f.Default.Grid[k]
		}
		return domain.GridValue(grid)
	default:
		return domain.StringValue(raw)
	}
}
