package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldType identifies how an input control is rendered and decoded.
type FieldType string

const (
	FieldNumber    FieldType = "number"
	FieldSelect    FieldType = "select"
	FieldBoolean   FieldType = "boolean"
	FieldMonthGrid FieldType = "monthGrid"
)

// Category groups calculators for listing.
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryBusiness Category = "business"
	CategoryPayroll  Category = "payroll"
	CategoryTax      Category = "tax"
)

// MonthGrid holds one value per calendar month keyed m1..m12.
type MonthGrid map[string]float64

// Clone returns an independent copy of the grid.
func (g MonthGrid) Clone() MonthGrid {
	if g == nil {
		return nil
	}
	out := make(MonthGrid, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}

// Value is a raw input value. Kind records which of the payload fields is
// meaningful; the zero Value (empty Kind) means "absent".
type Value struct {
	Kind FieldType
	Num  float64
	Str  string
	Bool bool
	Grid MonthGrid
}

// NumberValue wraps a number.
func NumberValue(v float64) Value { return Value{Kind: FieldNumber, Num: v} }

// StringValue wraps a select/text value.
func StringValue(v string) Value { return Value{Kind: FieldSelect, Str: v} }

// BoolValue wraps a boolean.
func BoolValue(v bool) Value { return Value{Kind: FieldBoolean, Bool: v} }

// GridValue wraps a month grid.
func GridValue(v MonthGrid) Value { return Value{Kind: FieldMonthGrid, Grid: v} }

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool { return v.Kind == "" }

// Clone deep-copies grid payloads.
func (v Value) Clone() Value {
	v.Grid = v.Grid.Clone()
	return v
}

// ValueOf converts a decoded JSON/YAML scalar or mapping into a Value.
// Unknown shapes yield the absent Value rather than an error so that
// downstream coercion can substitute defaults.
func ValueOf(raw any) Value {
	switch t := raw.(type) {
	case float64:
		return NumberValue(t)
	case float32:
		return NumberValue(float64(t))
	case int:
		return NumberValue(float64(t))
	case int64:
		return NumberValue(float64(t))
	case uint64:
		return NumberValue(float64(t))
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case map[string]any:
		grid := make(MonthGrid, len(t))
		for key, entry := range t {
			grid[key] = gridEntry(entry)
		}
		return GridValue(grid)
	default:
		return Value{}
	}
}

func gridEntry(raw any) float64 {
	switch n := raw.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// Interface returns the payload as a plain Go value.
func (v Value) Interface() any {
	switch v.Kind {
	case FieldNumber:
		return finiteOrZero(v.Num)
	case FieldSelect:
		return v.Str
	case FieldBoolean:
		return v.Bool
	case FieldMonthGrid:
		out := make(map[string]float64, len(v.Grid))
		for k, n := range v.Grid {
			out[k] = finiteOrZero(n)
		}
		return out
	default:
		return nil
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler. Any well-formed JSON is accepted.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}

// Inputs maps field keys to raw values for one calculator invocation.
type Inputs map[string]Value

// FieldOption is one choice of a select field.
type FieldOption struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Field declares one input control.
type Field struct {
	Key      string        `json:"key" yaml:"key"`
	Label    string        `json:"label" yaml:"label"`
	Type     FieldType     `json:"type" yaml:"type"`
	Default  Value         `json:"defaultValue" yaml:"default_value"`
	Min      *float64      `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64      `json:"max,omitempty" yaml:"max,omitempty"`
	Step     *float64      `json:"step,omitempty" yaml:"step,omitempty"`
	Slider   bool          `json:"slider,omitempty" yaml:"slider,omitempty"`
	Prefix   string        `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix   string        `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	HelpText string        `json:"helpText,omitempty" yaml:"help_text,omitempty"`
	Options  []FieldOption `json:"options,omitempty" yaml:"options,omitempty"`
}

// SummaryItem is one headline figure, already formatted for display.
type SummaryItem struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// ChartType selects the visualization.
type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
	ChartArea ChartType = "area"
)

// ChartSeries names one numeric column of the chart rows.
type ChartSeries struct {
	Key   string `json:"key" yaml:"key"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// ChartRow holds float64 or string cells keyed by column.
type ChartRow map[string]any

// Chart is a renderer-agnostic description of a small chart.
type Chart struct {
	Type   ChartType     `json:"type" yaml:"type"`
	XKey   string        `json:"xKey" yaml:"x_key"`
	Data   []ChartRow    `json:"data" yaml:"data"`
	Series []ChartSeries `json:"series" yaml:"series"`
}

// Output is what every calculator returns. It is built fresh per call.
type Output struct {
	Summary   []SummaryItem `json:"summary" yaml:"summary"`
	Narrative []string      `json:"narrative" yaml:"narrative"`
	Warnings  []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Chart     *Chart        `json:"chart,omitempty" yaml:"chart,omitempty"`
}

// CatalogItem describes a calculator to the layers that render it.
type CatalogItem struct {
	Slug             string   `json:"slug" yaml:"slug"`
	Title            string   `json:"title" yaml:"title"`
	ShortDescription string   `json:"shortDescription" yaml:"short_description"`
	Category         Category `json:"category" yaml:"category"`
	Fields           []Field  `json:"fields" yaml:"fields"`
	HowItWorks       []string `json:"howItWorks,omitempty" yaml:"how_it_works,omitempty"`
	Disclaimers      []string `json:"disclaimers,omitempty" yaml:"disclaimers,omitempty"`
}

// Field returns the field with the given key.
func (c CatalogItem) Field(key string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
