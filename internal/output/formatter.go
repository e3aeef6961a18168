// Package output renders calculator reports in the supported formats.
package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/domain"
)

// Report is one calculator run ready for rendering.
type Report struct {
	Slug        string          `json:"slug" yaml:"slug"`
	Title       string          `json:"title" yaml:"title"`
	Category    domain.Category `json:"category" yaml:"category"`
	Inputs      domain.Inputs   `json:"inputs" yaml:"inputs"`
	Result      domain.Output   `json:"result" yaml:"result"`
	Disclaimers []string        `json:"disclaimers,omitempty" yaml:"disclaimers,omitempty"`
	Query       string          `json:"query,omitempty" yaml:"query,omitempty"`
}

// NewReport assembles a report from a catalog entry, the effective inputs
// and the calculator output.
func NewReport(item domain.CatalogItem, inputs domain.Inputs, out domain.Output) *Report {
	disclaimers := item.Disclaimers
	if len(disclaimers) == 0 {
		disclaimers = DefaultDisclaimers
	}
	return &Report{
		Slug:        item.Slug,
		Title:       item.Title,
		Category:    item.Category,
		Inputs:      calculators.MergeInputs(item.Fields, inputs),
		Result:      out,
		Disclaimers: append([]string(nil), disclaimers...),
		Query:       calculators.EncodeQuery(item.Fields, inputs).Encode(),
	}
}

// Formatter renders a report.
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(r *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(r *Report) ([]byte, error) { return f.F(r) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{},
	"csv":     CSVFormatter{},
	"yaml":    YAMLFormatter{},
	"pdf":     PDFFormatter{},
}

var formatAliases = map[string]string{
	"text":  "console",
	"table": "console",
	"yml":   "yaml",
}

var extensions = map[string]string{
	"console": "txt",
	"json":    "json",
	"csv":     "csv",
	"yaml":    "yaml",
	"pdf":     "pdf",
}

// GetFormatterByName returns the formatter for a name or alias, or nil.
func GetFormatterByName(name string) Formatter {
	return formatters[canonicalFormat(name)]
}

// AvailableFormatterNames lists the canonical format names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(formatAliases))
	for n := range formatAliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Extension returns the file extension used for a formatter's output.
func Extension(f Formatter) string {
	if ext, ok := extensions[f.Name()]; ok {
		return ext
	}
	return "txt"
}

// WriteFormatted renders r and writes it to path. An empty path writes to
// <slug>_report_<timestamp>.<ext> in the working directory. It returns the
// file written.
func WriteFormatted(f Formatter, r *Report, path string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = fmt.Sprintf("%s_report_%s.%s", r.Slug, time.Now().Format("20060102_150405"), Extension(f))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}

// cellText renders one chart cell.
func cellText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return calculators.PlainNumber(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
