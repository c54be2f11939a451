package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ramanasai/fator/internal/constants"
	"github.com/ramanasai/fator/internal/picker"
)

// Labeler supplies every user-visible string. *labels.Catalog implements it.
type Labeler interface {
	Attribute(a constants.Attribute) string
	ConstantType(t string) string
	Value(a constants.Attribute, v string) string
	Criterion(a constants.Attribute, c constants.Criterion) string
	RecordAttr(r constants.Record, a constants.Attribute) string
	Text(key string) string
}

type focusPane int
type mode int

const (
	focusFilters focusPane = iota
	focusCards
)

const (
	modeNormal mode = iota
	modeSearch
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// title, filter box (six rows plus heading and border), result count, help
	chromeHeight = 14
)

// cardOrder is the order attributes appear on a result card.
var cardOrder = []constants.Attribute{
	constants.AttrClimate,
	constants.AttrBiome,
	constants.AttrCountry,
	constants.AttrSoil,
	constants.AttrIrrigation,
	constants.AttrCultivationSystem,
}

// Options configure a Model.
type Options struct {
	// Theme names a theme, see ThemeByName.
	Theme     string
	StartOpen bool
	// StayOpen keeps the program running after the modal closes.
	StayOpen  bool
	Logger    *zap.Logger
}

type Model struct {
	picker   *picker.Picker
	labels   Labeler
	theme    Theme
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	search   AutocompleteModel
	log      *zap.Logger

	facets   []constants.Facet
	focus    focusPane
	mode     mode
	row      int
	cursor   int
	width    int
	height   int
	stayOpen bool
	quitting bool
	status   string
}

// New builds the model around p. The picker stays owned by the caller, which
// can inspect it after the program exits.
func New(p *picker.Picker, labels Labeler, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		picker:   p,
		labels:   labels,
		theme:    ThemeByName(opts.Theme),
		keys:     defaultKeys(),
		help:     help.New(),
		viewport: viewport.New(defaultWidth-4, defaultHeight-chromeHeight),
		search:   NewAutocomplete(6),
		log:      log,
		width:    defaultWidth,
		height:   defaultHeight,
		stayOpen: opts.StayOpen,
	}
	if opts.StartOpen {
		m.open()
	}
	return m
}

// Run starts the program on the alternate screen of stderr and returns the final model.
func Run(m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

// Picker exposes the wrapped state machine.
func (m Model) Picker() *picker.Picker { return m.picker }

// Quitting reports whether the model asked the program to exit.
func (m Model) Quitting() bool { return m.quitting }

func (m *Model) open() {
	m.picker.Open()
	m.facets = constants.Facets(m.picker.Records())
	m.focus = focusFilters
	m.mode = modeNormal
	m.row = 0
	m.cursor = 0
	m.status = ""
	m.syncViewport()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = max(msg.Width-4, 10)
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			if m.picker.IsOpen() {
				m.picker.Cancel(picker.DismissClose)
			}
			m.quitting = true
			return m, tea.Quit
		}
		if !m.picker.IsOpen() {
			return m.updateClosed(msg)
		}
		if m.mode == modeSearch {
			return m.updateSearch(msg)
		}
		return m.updateOpen(msg)
	}

	if m.mode == modeSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateClosed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.open()
		return m, nil
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Dismiss):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateOpen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Tab):
		if m.focus == focusFilters {
			m.focus = focusCards
		} else {
			m.focus = focusFilters
		}
	case key.Matches(msg, m.keys.Up):
		if m.focus == focusFilters {
			m.row = max(m.row-1, 0)
		} else {
			m.cursor = max(m.cursor-1, 0)
		}
	case key.Matches(msg, m.keys.Down):
		if m.focus == focusFilters {
			m.row = min(m.row+1, len(constants.Attributes)-1)
		} else {
			m.cursor = min(m.cursor+1, max(len(m.picker.Visible())-1, 0))
		}
	case key.Matches(msg, m.keys.Prev):
		if m.focus == focusFilters {
			m.cycle(-1)
		}
	case key.Matches(msg, m.keys.Next):
		if m.focus == focusFilters {
			m.cycle(1)
		}
	case key.Matches(msg, m.keys.Clear):
		m.picker.SetCriterion(constants.Attributes[m.row], constants.Any())
	case key.Matches(msg, m.keys.ClearAll):
		m.picker.ResetFilter()
	case key.Matches(msg, m.keys.Search):
		if m.focus == focusFilters {
			m.mode = modeSearch
			a := constants.Attributes[m.row]
			cmd := m.search.Reset(m.labels.Attribute(a), m.suggestions(a))
			return m, cmd
		}
	case key.Matches(msg, m.keys.Select):
		if m.picker.Empty() {
			return m, nil
		}
		if m.focus == focusFilters {
			m.focus = focusCards
			break
		}
		rec := m.picker.Visible()[m.cursor]
		m.picker.Confirm(rec.ID)
		return m.afterClose()
	case key.Matches(msg, m.keys.Close):
		m.picker.Cancel(picker.DismissClose)
		return m.afterClose()
	case key.Matches(msg, m.keys.Back):
		m.picker.Cancel(picker.DismissBack)
		return m.afterClose()
	case key.Matches(msg, m.keys.Dismiss):
		m.picker.Cancel(picker.DismissBackdrop)
		return m.afterClose()
	}
	m.clampCursor()
	m.syncViewport()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		s, ok := m.search.Accept()
		if !ok {
			m.status = fmt.Sprintf("%q: %s", m.search.Value(), m.labels.Text("empty"))
			return m, nil
		}
		m.picker.SetCriterion(constants.Attributes[m.row], s.Criterion)
		m.mode = modeNormal
		m.search.Blur()
		m.clampCursor()
		m.syncViewport()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) afterClose() (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.focus = focusFilters
	m.cursor = 0
	if rec, ok := m.picker.Selected(); ok {
		m.log.Debug("modal closed", zap.Int64("selected", rec.ID))
	}
	if !m.stayOpen {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// cycle moves the focused filter row through Any, Absent and the observed values.
func (m *Model) cycle(delta int) {
	a := constants.Attributes[m.row]
	choices := m.facets[m.row].Criteria()
	cur := m.picker.Filter().Get(a)
	idx := 0
	for i, c := range choices {
		if c == cur {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(choices)) % len(choices)
	m.picker.SetCriterion(a, choices[idx])
}

func (m Model) suggestions(a constants.Attribute) []Suggestion {
	out := []Suggestion{{Value: constants.NotInformed, Label: m.labels.Text("not_informed"), Criterion: constants.Absent()}}
	for _, v := range m.facets[m.row].Values() {
		out = append(out, Suggestion{Value: v, Label: m.labels.Value(a, v), Criterion: constants.Equals(v)})
	}
	return out
}

func (m *Model) clampCursor() {
	n := len(m.picker.Visible())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *Model) syncViewport() {
	if !m.picker.IsOpen() {
		return
	}
	visible := m.picker.Visible()
	if len(visible) == 0 {
		m.viewport.SetContent(m.theme.Absent.Render(m.labels.Text("empty")))
		m.viewport.GotoTop()
		return
	}

	cards := make([]string, len(visible))
	offsets := make([]int, len(visible))
	line := 0
	for i, r := range visible {
		cards[i] = m.renderCard(i, r)
		offsets[i] = line
		line += lipgloss.Height(cards[i])
	}
	m.viewport.SetContent(strings.Join(cards, "\n"))

	top := offsets[m.cursor]
	h := lipgloss.Height(cards[m.cursor])
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case top+h > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(top + h - m.viewport.Height)
	}
}

func (m Model) renderCard(i int, r constants.Record) string {
	var b strings.Builder
	field := func(label, value string, style lipgloss.Style) {
		b.WriteString(m.theme.Label.Render(label + ": "))
		b.WriteString(style.Render(value))
		b.WriteString("\n")
	}

	field(m.labels.Text("value"), r.ValueText(), m.theme.Title)
	for _, a := range cardOrder {
		style := m.theme.Value
		if _, ok := r.Attr(a); !ok {
			style = m.theme.Absent
		}
		field(m.labels.Attribute(a), m.labels.RecordAttr(r, a), style)
	}
	if r.Reference != "" {
		field(m.labels.Text("reference"), r.Reference, m.theme.Value)
	}
	if r.Comment != "" {
		field(m.labels.Text("comment"), r.Comment, m.theme.Value)
	}

	style := m.theme.Card
	if i == m.cursor && m.focus == focusCards {
		style = m.theme.Cursor
	}
	return style.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.picker.IsOpen() {
		return m.viewClosed()
	}
	return m.viewOpen()
}

func (m Model) viewClosed() string {
	value := m.theme.Absent.Render(m.labels.Text("unset"))
	if rec, ok := m.picker.Selected(); ok {
		value = m.theme.Success.Render(rec.ValueText())
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(m.labels.ConstantType(m.picker.ConstantType())),
		m.theme.Label.Render(m.labels.Text("value")+": ")+value,
	)
	return m.theme.Border.Render(body) + "\n" + m.help.View(closedHelp{m.keys}) + "\n"
}

func (m Model) viewOpen() string {
	var b strings.Builder

	title := m.labels.Text("title") + " - " + m.labels.ConstantType(m.picker.ConstantType())
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n")

	b.WriteString(m.theme.Border.Render(m.viewFilters()))
	b.WriteString("\n")

	count := fmt.Sprintf(m.labels.Text("results"), len(m.picker.Visible()), len(m.picker.Records()))
	b.WriteString(m.theme.Hint.Render(count))
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(m.theme.Error.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewFilters() string {
	width := 0
	for _, a := range constants.Attributes {
		width = max(width, lipgloss.Width(m.labels.Attribute(a)))
	}

	var rows []string
	heading := m.labels.Text("filters")
	if m.focus == focusFilters {
		heading = m.theme.Focused.Render(heading)
	} else {
		heading = m.theme.Label.Render(heading)
	}
	rows = append(rows, heading)

	filter := m.picker.Filter()
	for i, a := range constants.Attributes {
		label := m.labels.Attribute(a)
		label += strings.Repeat(" ", width-lipgloss.Width(label))
		choice := "‹ " + m.labels.Criterion(a, filter.Get(a)) + " ›"

		marker := "  "
		if i == m.row && m.focus == focusFilters {
			marker = "▸ "
			choice = m.theme.Focused.Render(choice)
		} else if filter.Get(a).Kind == constants.Unconstrained {
			choice = m.theme.Absent.Render(choice)
		} else {
			choice = m.theme.Value.Render(choice)
		}
		rows = append(rows, marker+m.theme.Label.Render(label)+"  "+choice)
		if i == m.row && m.mode == modeSearch {
			rows = append(rows, m.search.View())
		}
	}
	return strings.Join(rows, "\n")
}
