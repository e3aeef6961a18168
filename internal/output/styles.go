package output

import "github.com/charmbracelet/lipgloss"

// Colors shared by the console report and the terminal form.
var (
	ColorPrimary = lipgloss.Color("#0284C7")
	ColorMuted   = lipgloss.Color("#64748B")
	ColorWarning = lipgloss.Color("#D97706")
	ColorDanger  = lipgloss.Color("#DC2626")
	ColorText    = lipgloss.Color("#0F172A")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)
