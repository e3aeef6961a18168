// Package tui is an interactive terminal form over the calculator catalog.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/output"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	registry *calculators.Registry
	items    []domain.CatalogItem
	cursor   int

	form   *FormModel
	report *output.Report

	err error
}

// NewModel creates the application model. A non-empty slug opens that
// calculator's form directly.
func NewModel(registry *calculators.Registry, slug string) (Model, error) {
	if registry == nil {
		registry = calculators.Default()
	}
	m := Model{
		currentScene: SceneHome,
		registry:     registry,
		items:        registry.Items(),
		width:        80,
		height:       24,
	}
	if slug == "" {
		return m, nil
	}
	for i, item := range m.items {
		if item.Slug == slug {
			m.cursor = i
			m.form = NewFormModel(item, nil)
			m.currentScene = SceneForm
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("%w: %s", calculators.ErrUnknownCalculator, slug)
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return textinput.Blink
	}
	return nil
}

// Scene returns the active scene.
func (m Model) Scene() Scene { return m.currentScene }

// Form returns the active form, if any.
func (m Model) Form() *FormModel { return m.form }

// Report returns the last calculated report, if any.
func (m Model) Report() *output.Report { return m.report }

// calculateCmd runs a calculator off the update loop.
func calculateCmd(registry *calculators.Registry, item domain.CatalogItem, inputs domain.Inputs) tea.Cmd {
	return func() tea.Msg {
		out, err := registry.Run(item.Slug, inputs)
		if err != nil {
			return CalculationCompleteMsg{Err: err}
		}
		return CalculationCompleteMsg{Report: output.NewReport(item, inputs, out)}
	}
}
