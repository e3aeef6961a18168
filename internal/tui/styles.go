package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/olsonco/calckit/internal/output"
)

var (
	TitleStyle   = output.TitleStyle
	LabelStyle   = output.LabelStyle
	ValueStyle   = output.ValueStyle
	WarningStyle = output.WarningStyle
	MutedStyle   = output.MutedStyle

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(output.ColorMuted)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(output.ColorPrimary).
				Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(output.ColorMuted).
			PaddingTop(1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(output.ColorPrimary).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(output.ColorDanger).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(output.ColorMuted).
			Padding(0, 1)
)
