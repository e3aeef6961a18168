package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter writes two tables: the summary, narrative and warnings as
// Section,Label,Value rows, then a blank line and the chart data with one
// column per series.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	records := [][]string{{"Section", "Label", "Value"}}
	for _, s := range r.Result.Summary {
		records = append(records, []string{"Summary", s.Label, s.Value})
	}
	for i, n := range r.Result.Narrative {
		records = append(records, []string{"Narrative", strconv.Itoa(i + 1), n})
	}
	for i, warning := range r.Result.Warnings {
		records = append(records, []string{"Warning", strconv.Itoa(i + 1), warning})
	}
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}

	chart := r.Result.Chart
	if chart == nil || len(chart.Data) == 0 {
		return buf.Bytes(), nil
	}
	buf.WriteString("\n")

	header := []string{chart.XKey}
	for _, s := range chart.Series {
		header = append(header, s.Name)
	}
	records = [][]string{header}
	for _, row := range chart.Data {
		record := []string{cellText(row[chart.XKey])}
		for _, s := range chart.Series {
			record = append(record, cellText(row[s.Key]))
		}
		records = append(records, record)
	}
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
