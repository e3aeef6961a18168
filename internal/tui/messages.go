package tui

import "github.com/olsonco/calckit/internal/output"

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneForm
	SceneResults
)

func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Calculators"
	case SceneForm:
		return "Inputs"
	case SceneResults:
		return "Results"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CalculationCompleteMsg carries the rendered report of a finished run.
type CalculationCompleteMsg struct {
	Report *output.Report
	Err    error
}
