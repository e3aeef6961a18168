package output

import (
	"strings"
	"testing"

	"github.com/olsonco/calckit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestChartFromOutput(t *testing.T) {
	c := ChartFromOutput("Test", &domain.Chart{
		Type: domain.ChartLine,
		XKey: "year",
		Data: []domain.ChartRow{
			{"year": "Y1", "a": 10.0, "b": "oops"},
			{"year": "Y2", "a": 20.0, "b": 5.0},
		},
		Series: []domain.ChartSeries{{Key: "a", Name: "A"}, {Key: "b", Name: "B"}},
	})

	assert.Equal(t, []string{"Y1", "Y2"}, c.Labels)
	assert.Len(t, c.Series, 2)
	assert.Equal(t, []float64{10, 20}, c.Series[0].Points)
	assert.Equal(t, []float64{0, 5}, c.Series[1].Points)
}

func TestASCIIChart_RenderLine(t *testing.T) {
	out := NewASCIIChart("Balance").
		AddSeries("Balance", []float64{100, 80, 60, 40}, ColorPrimary).
		WithLabels([]string{"Y1", "Y2", "Y3", "Y4"}).
		WithSize(40, 6).
		Render()

	assert.Contains(t, out, "Balance")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "└")
	assert.Contains(t, out, "Y1")
	assert.Contains(t, out, "Y4")
	assert.NotContains(t, out, "Legend")
}

func TestASCIIChart_RenderBars(t *testing.T) {
	c := NewASCIIChart("")
	c.Type = domain.ChartBar
	out := c.AddSeries("Amount", []float64{1000, 500}, ColorPrimary).
		AddSeries("Other", []float64{0, 250}, ColorMuted).
		WithLabels([]string{"Federal", "BC"}).
		Render()

	assert.Contains(t, out, "Federal")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "1K")
	assert.Contains(t, out, "Legend")
}

func TestASCIIChart_Degenerate(t *testing.T) {
	assert.Contains(t, NewASCIIChart("x").Render(), "No data")

	assert.NotPanics(t, func() {
		single := NewASCIIChart("").AddSeries("s", []float64{5}, ColorPrimary).Render()
		assert.Contains(t, single, "●")

		flat := NewASCIIChart("").AddSeries("s", []float64{3, 3, 3}, ColorPrimary).WithSize(5, 1).Render()
		assert.NotEmpty(t, flat)
	})
}

func TestCompactNumber(t *testing.T) {
	assert.Equal(t, "1.5M", compactNumber(1_500_000))
	assert.Equal(t, "15K", compactNumber(15_000))
	assert.Equal(t, "-2K", compactNumber(-2_000))
	assert.Equal(t, "300", compactNumber(300))
	assert.True(t, strings.HasSuffix(compactNumber(999_999), "K"))
}
