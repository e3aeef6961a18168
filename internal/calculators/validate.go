package calculators

import (
	"fmt"
	"net/url"

	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/finmath"
)

// ValidateInputs checks inputs against the field ranges and returns a
// message per invalid field key. An empty map means the inputs are valid.
// Calculators accept invalid inputs anyway; this is for form layers.
func ValidateInputs(fields []domain.Field, inputs domain.Inputs) map[string]string {
	problems := make(map[string]string)
	for _, f := range fields {
		v, ok := inputs[f.Key]
		if !ok {
			continue
		}
		if msg := validateField(f, v); msg != "" {
			problems[f.Key] = msg
		}
	}
	return problems
}

func validateField(f domain.Field, v domain.Value) string {
	switch f.Type {
	case domain.FieldNumber:
		n, ok := numericValue(v)
		if !ok {
			return "Enter a valid number."
		}
		if f.Min != nil && n < *f.Min {
			return fmt.Sprintf("Minimum value is %s.", formatPlain(*f.Min))
		}
		if f.Max != nil && n > *f.Max {
			return fmt.Sprintf("Maximum value is %s.", formatPlain(*f.Max))
		}
	case domain.FieldMonthGrid:
		if v.Kind != domain.FieldMonthGrid {
			return "Each month requires a valid number."
		}
		for _, k := range finmath.MonthKeys {
			n, present := v.Grid[k]
			if !present || !isFinite(n) {
				return "Each month requires a valid number."
			}
		}
	}
	return ""
}

func numericValue(v domain.Value) (float64, bool) {
	switch v.Kind {
	case domain.FieldNumber:
		return v.Num, isFinite(v.Num)
	case domain.FieldSelect:
		return parseNumber(v.Str)
	default:
		return 0, false
	}
}

// ValidateQuery validates query-string inputs. Number fields are checked
// against the text the caller sent, before decoding would replace bad
// values with defaults. Keys absent from q are not checked.
func ValidateQuery(fields []domain.Field, q url.Values) map[string]string {
	decoded := DecodeQuery(fields, q)
	raw := make(domain.Inputs)
	for _, f := range fields {
		if _, present := q[f.Key]; !present {
			continue
		}
		if f.Type == domain.FieldNumber {
			raw[f.Key] = domain.StringValue(q.Get(f.Key))
			continue
		}
		raw[f.Key] = decoded[f.Key]
	}
	return ValidateInputs(fields, raw)
}
