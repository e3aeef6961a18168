package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olsonco/calckit/internal/calculators"
)

// ConsoleFormatter renders a terminal report with a text chart.
type ConsoleFormatter struct {
	// ChartWidth overrides the chart width; 0 uses the default.
	ChartWidth int
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, TitleStyle.Render(strings.ToUpper(r.Title)))
	fmt.Fprintln(&buf, LabelStyle.Render(fmt.Sprintf("%s calculator · %s", calculators.CategoryLabel(r.Category), r.Slug)))
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, SectionStyle.Render("SUMMARY"))
	width := 0
	for _, s := range r.Result.Summary {
		width = max(width, lipgloss.Width(s.Label))
	}
	label := LabelStyle.Width(width + 2)
	for _, s := range r.Result.Summary {
		fmt.Fprintf(&buf, "  %s %s\n", label.Render(s.Label+":"), ValueStyle.Render(s.Value))
	}
	fmt.Fprintln(&buf)

	if len(r.Result.Narrative) > 0 {
		fmt.Fprintln(&buf, SectionStyle.Render("NOTES"))
		for _, n := range r.Result.Narrative {
			fmt.Fprintf(&buf, "  • %s\n", n)
		}
		fmt.Fprintln(&buf)
	}

	if len(r.Result.Warnings) > 0 {
		fmt.Fprintln(&buf, SectionStyle.Render("WARNINGS"))
		for _, w := range r.Result.Warnings {
			fmt.Fprintf(&buf, "  %s\n", WarningStyle.Render("! "+w))
		}
		fmt.Fprintln(&buf)
	}

	if r.Result.Chart != nil && len(r.Result.Chart.Data) > 0 {
		chart := ChartFromOutput("CHART", r.Result.Chart)
		if c.ChartWidth > 0 {
			chart.Width = c.ChartWidth
		}
		fmt.Fprintln(&buf, chart.Render())
		fmt.Fprintln(&buf)
	}

	if len(r.Disclaimers) > 0 {
		fmt.Fprintln(&buf, SectionStyle.Render("DISCLAIMERS"))
		for _, d := range r.Disclaimers {
			fmt.Fprintf(&buf, "  %s\n", MutedStyle.Render(d))
		}
	}
	if r.Query != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Share: ?%s\n", r.Query)
	}
	return buf.Bytes(), nil
}
