package tui

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/domain"
)

// fieldInput is the editing state of one catalog field. Number and month
// grid fields are typed; selects cycle through their options; booleans
// toggle.
type fieldInput struct {
	field  domain.Field
	input  textinput.Model
	choice int
	on     bool
}

// FormModel edits the inputs of one calculator.
type FormModel struct {
	item   domain.CatalogItem
	fields []fieldInput
	focus  int
	errors map[string]string
}

// NewFormModel builds a form prefilled from inputs; missing keys use the
// field defaults.
func NewFormModel(item domain.CatalogItem, inputs domain.Inputs) *FormModel {
	m := &FormModel{item: item, errors: map[string]string{}}
	m.load(calculators.EncodeQuery(item.Fields, inputs))
	return m
}

func (m *FormModel) load(q url.Values) {
	m.fields = make([]fieldInput, len(m.item.Fields))
	for i, f := range m.item.Fields {
		fi := fieldInput{field: f}
		text := q.Get(f.Key)
		switch f.Type {
		case domain.FieldSelect:
			for j, opt := range f.Options {
				if opt.Value == text {
					fi.choice = j
				}
			}
		case domain.FieldBoolean:
			fi.on = text == "true"
		default:
			ti := textinput.New()
			ti.Prompt = ""
			ti.CharLimit = 160
			ti.Width = 40
			if f.Type == domain.FieldMonthGrid {
				ti.Placeholder = "Jan,Feb,...,Dec"
			}
			ti.SetValue(text)
			fi.input = ti
		}
		m.fields[i] = fi
	}
	m.errors = map[string]string{}
	m.setFocus(m.focus)
}

// Item returns the calculator being edited.
func (m *FormModel) Item() domain.CatalogItem { return m.item }

// Focused returns the index of the focused field.
func (m *FormModel) Focused() int { return m.focus }

// Errors returns the validation messages from the last Validate call.
func (m *FormModel) Errors() map[string]string { return m.errors }

// SetText replaces the text of a typed field.
func (m *FormModel) SetText(key, text string) bool {
	for i := range m.fields {
		fi := &m.fields[i]
		if fi.field.Key != key {
			continue
		}
		if !fi.typed() {
			return false
		}
		fi.input.SetValue(text)
		return true
	}
	return false
}

// Query returns the current field values in query-string form.
func (m *FormModel) Query() url.Values {
	q := url.Values{}
	for _, fi := range m.fields {
		switch fi.field.Type {
		case domain.FieldSelect:
			if fi.choice < len(fi.field.Options) {
				q.Set(fi.field.Key, fi.field.Options[fi.choice].Value)
			}
		case domain.FieldBoolean:
			if fi.on {
				q.Set(fi.field.Key, "true")
			} else {
				q.Set(fi.field.Key, "false")
			}
		default:
			q.Set(fi.field.Key, strings.TrimSpace(fi.input.Value()))
		}
	}
	return q
}

// Inputs decodes the current values the same way a shared link would.
func (m *FormModel) Inputs() domain.Inputs {
	return calculators.DecodeQuery(m.item.Fields, m.Query())
}

// Validate records per-field problems and reports whether there are none.
func (m *FormModel) Validate() bool {
	m.errors = calculators.ValidateQuery(m.item.Fields, m.Query())
	return len(m.errors) == 0
}

// Reset restores every field to its default.
func (m *FormModel) Reset() {
	m.load(calculators.EncodeQuery(m.item.Fields, nil))
}

func (m *FormModel) setFocus(i int) {
	if len(m.fields) == 0 {
		m.focus = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(m.fields) {
		i = len(m.fields) - 1
	}
	m.focus = i
	for j := range m.fields {
		if !m.fields[j].typed() {
			continue
		}
		if j == i {
			m.fields[j].input.Focus()
		} else {
			m.fields[j].input.Blur()
		}
	}
}

func (fi fieldInput) typed() bool {
	return fi.field.Type != domain.FieldSelect && fi.field.Type != domain.FieldBoolean
}

// Update handles messages for the form. Enter is left to the parent model.
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.fields) == 0 {
		return m, nil
	}
	fi := &m.fields[m.focus]

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "shift+tab"))):
		m.setFocus(m.focus - 1)
		return m, nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "tab"))):
		m.setFocus(m.focus + 1)
		return m, nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("ctrl+r"))):
		m.Reset()
		return m, nil
	}

	switch fi.field.Type {
	case domain.FieldSelect:
		n := len(fi.field.Options)
		if n == 0 {
			return m, nil
		}
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "h"))):
			fi.choice = (fi.choice + n - 1) % n
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l", " "))):
			fi.choice = (fi.choice + 1) % n
		}
		return m, nil

	case domain.FieldBoolean:
		if key.Matches(keyMsg, key.NewBinding(key.WithKeys(" ", "left", "right", "x"))) {
			fi.on = !fi.on
		}
		return m, nil
	}

	var cmd tea.Cmd
	fi.input, cmd = fi.input.Update(msg)
	delete(m.errors, fi.field.Key)
	return m, cmd
}

// View renders the form fields with their labels and any errors.
func (m *FormModel) View() string {
	var b strings.Builder
	for i, fi := range m.fields {
		label := fi.field.Label
		cursor := "  "
		if i == m.focus {
			cursor = SelectedItemStyle.Render("> ")
			label = SelectedItemStyle.Render(label)
		} else {
			label = LabelStyle.Render(label)
		}

		b.WriteString(cursor + label + "\n    ")
		switch fi.field.Type {
		case domain.FieldSelect:
			if fi.choice < len(fi.field.Options) {
				b.WriteString("< " + ValueStyle.Render(fi.field.Options[fi.choice].Label) + " >")
			}
		case domain.FieldBoolean:
			mark := "[ ]"
			if fi.on {
				mark = "[x]"
			}
			b.WriteString(mark)
		default:
			b.WriteString(fi.field.Prefix + fi.input.View() + fi.field.Suffix)
		}
		b.WriteString("\n")

		if msg, bad := m.errors[fi.field.Key]; bad {
			b.WriteString("    " + ErrorStyle.Render(msg) + "\n")
		} else if i == m.focus && fi.field.HelpText != "" {
			b.WriteString("    " + MutedStyle.Render(fi.field.HelpText) + "\n")
		}
	}
	return b.String()
}
