package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.renderHome()
	case SceneForm:
		content = m.renderForm()
	case SceneResults:
		content = m.renderResults()
	default:
		content = "Unknown scene"
	}
	if m.err != nil {
		content = ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" + content
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTitleBar(), content, m.renderStatusBar())
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("calckit")
	breadcrumb := m.currentScene.String()
	if m.form != nil && m.currentScene != SceneHome {
		breadcrumb = fmt.Sprintf("%s / %s", m.form.Item().Title, breadcrumb)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb), "")
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneHome:
		shortcuts = []string{
			formatShortcut("↑/↓", "move"),
			formatShortcut("enter", "open"),
			formatShortcut("q", "quit"),
		}
	case SceneForm:
		shortcuts = []string{
			formatShortcut("↑/↓", "field"),
			formatShortcut("←/→", "choose"),
			formatShortcut("enter", "calculate"),
			formatShortcut("ctrl+r", "reset"),
			formatShortcut("esc", "back"),
		}
	case SceneResults:
		shortcuts = []string{
			formatShortcut("e", "edit"),
			formatShortcut("h", "calculators"),
			formatShortcut("q", "quit"),
		}
	}
	return StatusBarStyle.Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderHome() string {
	var b strings.Builder
	var category string
	for i, item := range m.items {
		if label := calculators.CategoryLabel(item.Category); label != category {
			if category != "" {
				b.WriteString("\n")
			}
			category = label
			b.WriteString(LabelStyle.Render(strings.ToUpper(label)) + "\n")
		}
		if i == m.cursor {
			b.WriteString(SelectedItemStyle.Render("> "+item.Title) + "\n")
			b.WriteString("    " + MutedStyle.Render(item.ShortDescription) + "\n")
			continue
		}
		b.WriteString("  " + item.Title + "\n")
	}
	return b.String()
}

func (m Model) renderForm() string {
	if m.form == nil {
		return "No calculator selected"
	}
	item := m.form.Item()
	return TitleStyle.Render(item.Title) + "\n" +
		MutedStyle.Render(item.ShortDescription) + "\n\n" +
		m.form.View()
}

func (m Model) renderResults() string {
	r := m.report
	if r == nil {
		return "No results yet"
	}

	var b strings.Builder
	width := 0
	for _, s := range r.Result.Summary {
		width = max(width, len(s.Label))
	}
	for _, s := range r.Result.Summary {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", width+1, s.Label+":")) + " " + ValueStyle.Render(s.Value) + "\n")
	}
	summary := BorderStyle.Render(strings.TrimRight(b.String(), "\n"))

	sections := []string{summary}
	if len(r.Result.Narrative) > 0 {
		sections = append(sections, "• "+strings.Join(r.Result.Narrative, "\n• "))
	}
	for _, w := range r.Result.Warnings {
		sections = append(sections, WarningStyle.Render("! "+w))
	}
	if r.Result.Chart != nil && len(r.Result.Chart.Data) > 0 {
		chartWidth := min(max(m.width-16, 20), 80)
		chartHeight := min(max(m.height-20, 6), 14)
		sections = append(sections, output.ChartFromOutput("", r.Result.Chart).WithSize(chartWidth, chartHeight).Render())
	}
	sections = append(sections, MutedStyle.Render("Share: ?"+r.Query))
	return strings.Join(sections, "\n\n")
}
