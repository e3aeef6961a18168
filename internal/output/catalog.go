package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/domain"
	"gopkg.in/yaml.v3"
)

// CatalogEntry is the listing form of a calculator.
type CatalogEntry struct {
	Slug             string          `json:"slug" yaml:"slug"`
	Title            string          `json:"title" yaml:"title"`
	Category         domain.Category `json:"category" yaml:"category"`
	ShortDescription string          `json:"shortDescription" yaml:"short_description"`
}

// FormatCatalog renders a calculator listing as console, json, csv or yaml.
func FormatCatalog(items []domain.CatalogItem, format string) ([]byte, error) {
	entries := make([]CatalogEntry, len(items))
	for i, item := range items {
		entries[i] = CatalogEntry{
			Slug:             item.Slug,
			Title:            item.Title,
			Category:         item.Category,
			ShortDescription: item.ShortDescription,
		}
	}

	switch canonicalFormat(format) {
	case "console":
		rows := make([][]string, len(entries))
		for i, e := range entries {
			rows[i] = []string{e.Slug, e.Title, calculators.CategoryLabel(e.Category)}
		}
		return []byte(consoleTable([]string{"Slug", "Title", "Category"}, rows) + "\n"), nil
	case "json":
		return marshalJSON(entries)
	case "yaml":
		return yaml.Marshal(entries)
	case "csv":
		records := [][]string{{"Slug", "Title", "Category", "Description"}}
		for _, e := range entries {
			records = append(records, []string{e.Slug, e.Title, string(e.Category), e.ShortDescription})
		}
		return writeCSV(records)
	default:
		return nil, fmt.Errorf("unsupported listing format: %s", format)
	}
}

// FormatFields renders a calculator's field schema.
func FormatFields(item domain.CatalogItem, format string) ([]byte, error) {
	switch canonicalFormat(format) {
	case "console":
		rows := make([][]string, len(item.Fields))
		for i, f := range item.Fields {
			rows[i] = []string{f.Key, f.Label, string(f.Type), fieldDefault(f), fieldRange(f)}
		}
		header := TitleStyle.Render(item.Title) + "\n" + MutedStyle.Render(item.ShortDescription) + "\n"
		return []byte(header + consoleTable([]string{"Key", "Label", "Type", "Default", "Allowed"}, rows) + "\n"), nil
	case "json":
		return marshalJSON(item.Fields)
	case "yaml":
		return yaml.Marshal(item.Fields)
	case "csv":
		records := [][]string{{"Key", "Label", "Type", "Default", "Allowed"}}
		for _, f := range item.Fields {
			records = append(records, []string{f.Key, f.Label, string(f.Type), fieldDefault(f), fieldRange(f)})
		}
		return writeCSV(records)
	default:
		return nil, fmt.Errorf("unsupported field format: %s", format)
	}
}

// fieldDefault renders a default the way it would appear in a share link.
func fieldDefault(f domain.Field) string {
	return calculators.EncodeQuery([]domain.Field{f}, nil).Get(f.Key)
}

func fieldRange(f domain.Field) string {
	switch f.Type {
	case domain.FieldSelect:
		values := make([]string, len(f.Options))
		for i, o := range f.Options {
			values[i] = o.Value
		}
		return strings.Join(values, " | ")
	case domain.FieldBoolean:
		return "true | false"
	case domain.FieldMonthGrid:
		return "12 comma-separated numbers"
	}
	switch {
	case f.Min != nil && f.Max != nil:
		return calculators.PlainNumber(*f.Min) + " to " + calculators.PlainNumber(*f.Max)
	case f.Min != nil:
		return ">= " + calculators.PlainNumber(*f.Min)
	case f.Max != nil:
		return "<= " + calculators.PlainNumber(*f.Max)
	}
	return "any number"
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func writeCSV(records [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
