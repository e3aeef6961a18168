package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/olsonco/calckit/internal/calculators"
	"gopkg.in/yaml.v3"
)

var comparisonHeaders = []string{"Calculator", "Category", "Best For", "Primary Outcome", "Input Depth", "Time"}

// FormatComparison renders comparison rows as console, json, csv or yaml.
func FormatComparison(rows []calculators.ComparisonRow, format string) ([]byte, error) {
	switch canonicalFormat(format) {
	case "console":
		cells := make([][]string, len(rows))
		for i, r := range rows {
			cells[i] = []string{r.Title, calculators.CategoryLabel(r.Category), r.BestFor, r.PrimaryOutcome, r.InputDepth, r.EstimatedTime}
		}
		return []byte(consoleTable(comparisonHeaders, cells) + "\n"), nil
	case "json":
		return marshalJSON(rows)
	case "yaml":
		return yaml.Marshal(rows)
	case "csv":
		records := [][]string{append([]string{"Slug"}, comparisonHeaders...)}
		for _, r := range rows {
			records = append(records, []string{r.Slug, r.Title, calculators.CategoryLabel(r.Category), r.BestFor, r.PrimaryOutcome, r.InputDepth, r.EstimatedTime})
		}
		return writeCSV(records)
	default:
		return nil, fmt.Errorf("unsupported comparison format: %s", format)
	}
}

func canonicalFormat(format string) string {
	name := strings.ToLower(strings.TrimSpace(format))
	if canonical, ok := formatAliases[name]; ok {
		return canonical
	}
	return name
}

func consoleTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range rows {
		t.Row(r...)
	}
	return t.String()
}
