package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case CalculationCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.report = msg.Report
		m.previousScene = m.currentScene
		m.currentScene = SceneResults
		return m, nil
	}

	if m.currentScene == SceneForm && m.form != nil {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return m, tea.Quit
	}
	// "q" is typed text on the form
	if m.currentScene != SceneForm && key.Matches(msg, key.NewBinding(key.WithKeys("q"))) {
		return m, tea.Quit
	}

	switch m.currentScene {
	case SceneHome:
		return m.updateHome(msg)
	case SceneForm:
		return m.updateForm(msg)
	case SceneResults:
		return m.updateResults(msg)
	}
	return m, nil
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("g"))):
		m.cursor = 0
	case key.Matches(msg, key.NewBinding(key.WithKeys("G"))):
		m.cursor = len(m.items) - 1
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if m.cursor < len(m.items) {
			item := m.items[m.cursor]
			if m.form == nil || m.form.Item().Slug != item.Slug {
				m.form = NewFormModel(item, nil)
				m.report = nil
			}
			m.err = nil
			m.previousScene = m.currentScene
			m.currentScene = SceneForm
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.previousScene = m.currentScene
		m.currentScene = SceneHome
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if !m.form.Validate() {
			return m, nil
		}
		return m, calculateCmd(m.registry, m.form.Item(), m.form.Inputs())
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "e"))):
		m.previousScene = m.currentScene
		m.currentScene = SceneForm
		return m, textinput.Blink
	case key.Matches(msg, key.NewBinding(key.WithKeys("h"))):
		m.previousScene = m.currentScene
		m.currentScene = SceneHome
	}
	return m, nil
}
