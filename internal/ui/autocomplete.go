package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/fator/internal/constants"
)

// Suggestion is a raw filter value, how it is displayed and the criterion it applies.
type Suggestion struct {
	Value     string
	Label     string
	Criterion constants.Criterion
}

// AutocompleteModel is a text input that narrows a fixed set of candidate values.
type AutocompleteModel struct {
	input          textinput.Model
	candidates     []Suggestion
	suggestions    []Suggestion
	selected       int
	maxSuggestions int
	style          lipgloss.Style
	active         lipgloss.Style
}

// NewAutocomplete creates an autocomplete input showing at most maxSuggestions rows.
func NewAutocomplete(maxSuggestions int) AutocompleteModel {
	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 64

	return AutocompleteModel{
		input:          input,
		maxSuggestions: maxSuggestions,
		style:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		active:         lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// Reset clears the input, installs new candidates and focuses it.
func (m *AutocompleteModel) Reset(placeholder string, candidates []Suggestion) tea.Cmd {
	m.candidates = candidates
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.refresh()
	return m.input.Focus()
}

// Blur unfocuses the input.
func (m *AutocompleteModel) Blur() {
	m.input.Blur()
	m.suggestions = nil
	m.selected = 0
}

// Update handles the autocomplete logic
func (m AutocompleteModel) Update(msg tea.Msg) (AutocompleteModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyTab, tea.KeyDown:
			if n := m.shown(); n > 0 {
				m.selected = (m.selected + 1) % n
			}
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			if n := m.shown(); n > 0 {
				m.selected = (m.selected - 1 + n) % n
			}
			return m, nil
		}
	}

	old := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != old {
		m.refresh()
	}
	return m, cmd
}

// shown is the number of suggestion rows View draws; the highlight never leaves them.
func (m AutocompleteModel) shown() int {
	return min(len(m.suggestions), m.maxSuggestions)
}

// refresh matches the query against values and labels by substring, falling
// back to the closest value by edit distance.
func (m *AutocompleteModel) refresh() {
	m.selected = 0
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.suggestions = append([]Suggestion(nil), m.candidates...)
		return
	}

	m.suggestions = nil
	for _, c := range m.candidates {
		if strings.Contains(strings.ToLower(c.Value), query) || strings.Contains(strings.ToLower(c.Label), query) {
			m.suggestions = append(m.suggestions, c)
		}
	}
	if len(m.suggestions) > 0 {
		return
	}

	values := make([]string, len(m.candidates))
	for i, c := range m.candidates {
		values[i] = c.Value
	}
	if best, ok := constants.Suggest(query, values); ok {
		for _, c := range m.candidates {
			if c.Value == best {
				m.suggestions = append(m.suggestions, c)
			}
		}
	}
}

// Accept returns the highlighted suggestion.
func (m AutocompleteModel) Accept() (Suggestion, bool) {
	if m.shown() == 0 {
		return Suggestion{}, false
	}
	return m.suggestions[m.selected], true
}

// View renders the autocomplete input and suggestions
func (m AutocompleteModel) View() string {
	var content strings.Builder
	content.WriteString(m.input.View())

	for i, s := range m.suggestions {
		if i >= m.maxSuggestions {
			break
		}
		content.WriteString("\n")
		text := s.Label
		if text != s.Value {
			text += " (" + s.Value + ")"
		}
		if i == m.selected {
			content.WriteString(m.active.Render("▶ " + text))
		} else {
			content.WriteString(m.style.Render("  " + text))
		}
	}
	return content.String()
}

// Value returns the current input value
func (m AutocompleteModel) Value() string {
	return m.input.Value()
}

// Suggestions returns the current suggestions
func (m AutocompleteModel) Suggestions() []Suggestion {
	return m.suggestions
}
