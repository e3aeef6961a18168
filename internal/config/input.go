package config

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/domain"
	"gopkg.in/yaml.v3"
)

// ScenarioFile is a saved calculator run: which calculator and the inputs
// that differ from its defaults. JSON files parse too.
type ScenarioFile struct {
	Calculator string        `yaml:"calculator" json:"calculator"`
	Inputs     domain.Inputs `yaml:"inputs" json:"inputs"`
}

// ValidationError lists field problems keyed by input name.
type ValidationError struct {
	Calculator string
	Fields     map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return fmt.Sprintf("invalid inputs for %s: %s", e.Calculator, strings.Join(parts, "; "))
}

// InputParser handles parsing of scenario input files
type InputParser struct {
	registry *calculators.Registry
}

// NewInputParser creates a parser that checks scenarios against reg. A nil
// registry uses the default one.
func NewInputParser(reg *calculators.Registry) *InputParser {
	if reg == nil {
		reg = calculators.Default()
	}
	return &InputParser{registry: reg}
}

// LoadFromFile loads a scenario from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	scenario, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return scenario, nil
}

// Parse decodes and validates a scenario document.
func (ip *InputParser) Parse(data []byte) (*ScenarioFile, error) {
	var scenario ScenarioFile
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateScenario(&scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// ValidateScenario checks the calculator slug, rejects unknown input keys
// and applies the field range checks.
func (ip *InputParser) ValidateScenario(s *ScenarioFile) error {
	if s.Calculator == "" {
		return fmt.Errorf("calculator is required")
	}
	item, ok := ip.registry.Item(s.Calculator)
	if !ok {
		return fmt.Errorf("%w: %s", calculators.ErrUnknownCalculator, s.Calculator)
	}
	for key := range s.Inputs {
		if _, ok := item.Field(key); !ok {
			return fmt.Errorf("unknown input %q for %s", key, s.Calculator)
		}
	}
	if problems := calculators.ValidateInputs(item.Fields, s.Inputs); len(problems) > 0 {
		return &ValidationError{Calculator: s.Calculator, Fields: problems}
	}
	return nil
}

// ParseAssignments turns key=value pairs into query values. Month grids
// are written as twelve comma-separated numbers.
func ParseAssignments(pairs []string) (url.Values, error) {
	q := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected key=value", pair)
		}
		q.Set(key, strings.TrimSpace(value))
	}
	return q, nil
}

// UnknownKeys returns the query keys that are not fields of item, sorted.
func UnknownKeys(item domain.CatalogItem, q url.Values) []string {
	var unknown []string
	for key := range q {
		if _, ok := item.Field(key); !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}
