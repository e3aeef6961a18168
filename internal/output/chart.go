package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olsonco/calckit/internal/domain"
)

// DataSeries is one plotted column.
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws a calculator chart in a terminal. Line and area charts
// are plotted on a grid; bar charts become one horizontal bar per row.
type ASCIIChart struct {
	Title  string
	Type   domain.ChartType
	Series []*DataSeries
	Labels []string
	Width  int
	Height int
}

// NewASCIIChart creates an empty line chart.
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:  title,
		Type:   domain.ChartLine,
		Width:  60,
		Height: 12,
	}
}

// ChartFromOutput converts a calculator chart. Non-numeric cells plot as 0.
func ChartFromOutput(title string, c *domain.Chart) *ASCIIChart {
	chart := NewASCIIChart(title)
	if c == nil {
		return chart
	}
	chart.Type = c.Type
	labels := make([]string, len(c.Data))
	for i, row := range c.Data {
		labels[i] = cellText(row[c.XKey])
	}
	chart.Labels = labels
	for _, s := range c.Series {
		points := make([]float64, len(c.Data))
		for i, row := range c.Data {
			if v, ok := row[s.Key].(float64); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
				points[i] = v
			}
		}
		chart.AddSeries(s.Name, points, lipgloss.Color(s.Color))
	}
	return chart
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

func (c *ASCIIChart) points() int {
	n := 0
	for _, s := range c.Series {
		if len(s.Points) > n {
			n = len(s.Points)
		}
	}
	return n
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if c.points() == 0 {
		return MutedStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(TitleStyle.Render(c.Title))
		b.WriteString("\n\n")
	}
	if c.Type == domain.ChartBar {
		b.WriteString(c.renderBars())
	} else {
		b.WriteString(c.renderGrid())
	}
	if len(c.Series) > 1 {
		b.WriteString("\n")
		b.WriteString(c.renderLegend())
	}
	return b.String()
}

const yAxisWidth = 10

func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func (c *ASCIIChart) renderGrid() string {
	width := max(c.Width-yAxisWidth-3, 2)
	height := max(c.Height, 2)
	lo, hi := c.bounds()
	n := c.points()

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	col := func(i int) int {
		if n == 1 {
			return 0
		}
		return int(float64(i) / float64(n-1) * float64(width-1))
	}
	row := func(v float64) int {
		return height - 1 - int((v-lo)/(hi-lo)*float64(height-1))
	}

	for si, s := range c.Series {
		mark := seriesChar(si)
		for i, p := range s.Points {
			x, y := col(i), row(p)
			if i > 0 {
				drawLine(grid, col(i-1), row(s.Points[i-1]), x, y, mark)
			}
			grid[y][x] = mark
		}
	}

	var b strings.Builder
	axis := lipgloss.NewStyle().Foreground(ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for i, line := range grid {
		v := hi - float64(i)/float64(height-1)*(hi-lo)
		b.WriteString(axis.Render(compactNumber(v)))
		b.WriteString(" │ ")
		b.WriteString(string(line))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", width+1))
	b.WriteString("\n")
	if len(c.Labels) > 0 {
		first, last := c.Labels[0], c.Labels[len(c.Labels)-1]
		gap := max(width-len(first)-len(last), 1)
		b.WriteString(strings.Repeat(" ", yAxisWidth+3))
		b.WriteString(LabelStyle.Render(first + strings.Repeat(" ", gap) + last))
		b.WriteString("\n")
	}
	return b.String()
}

func (c *ASCIIChart) renderBars() string {
	labelWidth := 0
	for _, l := range c.Labels {
		labelWidth = max(labelWidth, len(l))
	}
	peak := 0.0
	for _, s := range c.Series {
		for _, p := range s.Points {
			peak = math.Max(peak, math.Abs(p))
		}
	}
	barWidth := max(c.Width-labelWidth-yAxisWidth-4, 4)

	var b strings.Builder
	label := lipgloss.NewStyle().Width(labelWidth).Foreground(ColorMuted)
	for i := 0; i < c.points(); i++ {
		name := ""
		if i < len(c.Labels) {
			name = c.Labels[i]
		}
		for si, s := range c.Series {
			if i >= len(s.Points) {
				continue
			}
			p := s.Points[i]
			length := 0
			if peak > 0 {
				length = int(math.Round(math.Abs(p) / peak * float64(barWidth)))
			}
			bar := lipgloss.NewStyle().Foreground(s.Color).Render(strings.Repeat("█", length))
			if si > 0 {
				name = ""
			}
			fmt.Fprintf(&b, "%s │ %s %s\n", label.Render(name), bar, compactNumber(p))
		}
	}
	return b.String()
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, len(c.Series))
	for i, s := range c.Series {
		mark := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items[i] = mark + " " + s.Name
	}
	return LabelStyle.Render("Legend: " + strings.Join(items, " • "))
}

func seriesChar(i int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[i%len(chars)]
}

// drawLine connects two grid cells with Bresenham's algorithm.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, mark rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) && grid[y0][x0] == ' ' {
			grid[y0][x0] = mark
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// compactNumber abbreviates axis values: 1.2M, 15K, 300.
func compactNumber(v float64) string {
	switch a := math.Abs(v); {
	case a >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case a >= 1_000:
		return fmt.Sprintf("%.0fK", v/1_000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
