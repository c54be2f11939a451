package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/fator/internal/constants"
	"github.com/ramanasai/fator/internal/labels"
	"github.com/ramanasai/fator/internal/picker"
)

type harness struct {
	model Model
	calls []string
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	return newHarnessWith(t, []constants.Record{
		{ID: 1, Type: "harvestIndex", Value: 0.45, Country: constants.Ptr("Brasil"), Climate: constants.Ptr("tropical")},
		{ID: 2, Type: "harvestIndex", Value: 0.38, Climate: constants.Ptr("temperate"), Reference: "FAO"},
		{ID: 3, Type: "harvestIndex", Value: 0.5},
	}, opts)
}

func newHarnessWith(t *testing.T, records []constants.Record, opts Options) *harness {
	t.Helper()
	cat, err := labels.Load("en")
	require.NoError(t, err)

	h := &harness{}
	p := picker.New("harvestIndex", records, func(v string) { h.calls = append(h.calls, v) })
	h.model = New(p, cat, opts)
	return h
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func (h *harness) press(t *testing.T, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = h.model.Update(msg)
		m, ok := next.(Model)
		require.True(t, ok)
		h.model = m
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestStartOpenShowsAllCards(t *testing.T) {
	h := newHarness(t, Options{StartOpen: true})
	require.True(t, h.model.Picker().IsOpen())
	h.press(t, tea.WindowSizeMsg{Width: 100, Height: 60})

	view := h.model.View()
	assert.Contains(t, view, "Choose conversion factor - Harvest index")
	assert.Contains(t, view, "3 of 3 factors")
	assert.Contains(t, view, "Tropical")
	assert.Contains(t, view, "Reference: FAO")
}

func TestCyclingCountryToNotInformed(t *testing.T) {
	h := newHarness(t, Options{StartOpen: true})

	h.press(t, tea.KeyMsg{Type: tea.KeyRight})

	f := h.model.Picker().Filter()
	assert.Equal(t, constants.Absent(), f.Get(constants.AttrCountry))
	assert.Len(t, h.model.Picker().Visible(), 2)
	assert.Contains(t, h.model.View(), "‹ Not informed ›")
}

func TestCombinedFiltersCanEmptyTheView(t *testing.T) {
	h := newHarness(t, Options{StartOpen: true})

	// country: not informed; climate: wraps from All back to the last value, tropical
	h.press(t, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyLeft})

	f := h.model.Picker().Filter()
	assert.Equal(t, constants.Equals("tropical"), f.Get(constants.AttrClimate))
	assert.True(t, h.model.Picker().Empty())
	assert.Contains(t, h.model.View(), "No conversion factor found...")

	cmd := h.press(t, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, h.calls)
	assert.True(t, h.model.Picker().IsOpen())
}

func TestClearRowAndClearAll(t *testing.T) {
	h := newHarness(t, Options{StartOpen: true})

	h.press(t, tea.KeyMsg{Type: tea.KeyRight}, keyRunes("x"))
	assert.True(t, h.model.Picker().Filter().IsEmpty())

	h.press(t, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight}, keyRunes("r"))
	assert.True(t, h.model.Picker().Filter().IsEmpty())
	assert.Len(t, h.model.Picker().Visible(), 3)
}

func TestSelectInvokesCallbackOnceAndQuits(t *testing.T) {
	h := newHarness(t, Options{StartOpen: true})

	cmd := h.press(t, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, isQuit(cmd))
	assert.Equal(t, []string{"0.38"}, h.calls)
	assert.False(t, h.model.Picker().IsOpen())
	rec, ok := h.model.Picker().Selected()
	require.True(t, ok)
	assert.Equal(t, int64(2), rec.ID)
	assert.Empty(t, h.model.View())
}

func TestDismissKeysNeverInvokeCallback(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyBackspace},
		keyRunes("q"),
	} {
		h := newHarness(t, Options{StartOpen: true})
		cmd := h.press(t, k)
		assert.True(t, isQuit(cmd), k.String())
		assert.False(t, h.model.Picker().IsOpen(), k.String())
		assert.Empty(t, h.calls, k.String())
	}
}

func TestStayOpenReturnsToClosedViewAndReopensClean(t *testing.T) {
	h := newHarness(t, Options{StartOpen: true, StayOpen: true})

	h.press(t, tea.KeyMsg{Type: tea.KeyRight})
	cmd := h.press(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, h.model.Picker().IsOpen())
	assert.Contains(t, h.model.View(), "(no value)")

	h.press(t, keyRunes("e"))
	require.True(t, h.model.Picker().IsOpen())
	assert.True(t, h.model.Picker().Filter().IsEmpty())

	h.press(t, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"0.45"}, h.calls)
	assert.Contains(t, h.model.View(), "0.45")

	cmd = h.press(t, keyRunes("q"))
	assert.True(t, isQuit(cmd))
}

func TestSearchSetsCriterionFromTypedValue(t *testing.T) {
	h := newHarness(t, Options{StartOpen: true})

	h.press(t, tea.KeyMsg{Type: tea.KeyDown}, keyRunes("/"), keyRunes("trop"))
	assert.Contains(t, h.model.View(), "Tropical (tropical)")

	h.press(t, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, constants.Equals("tropical"), h.model.Picker().Filter().Get(constants.AttrClimate))
	assert.Len(t, h.model.Picker().Visible(), 1)
	assert.True(t, h.model.Picker().IsOpen(), "enter in the search box does not select a card")
}

func TestSearchNotInformedAndEscape(t *testing.T) {
	h := newHarness(t, Options{StartOpen: true})

	h.press(t, keyRunes("/"), keyRunes("not inf"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, constants.Absent(), h.model.Picker().Filter().Get(constants.AttrCountry))

	h.press(t, keyRunes("/"), keyRunes("zzzz"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, constants.Absent(), h.model.Picker().Filter().Get(constants.AttrCountry))
	assert.True(t, h.model.Picker().IsOpen())
}

func TestSearchEmptyValueMatchesOnlyThatValue(t *testing.T) {
	h := newHarnessWith(t, []constants.Record{
		{ID: 1, Type: "harvestIndex", Value: 0.45, Country: constants.Ptr("")},
		{ID: 2, Type: "harvestIndex", Value: 0.38, Country: constants.Ptr("Brasil")},
	}, Options{StartOpen: true})

	// suggestions: not informed, "", Brasil
	h.press(t, keyRunes("/"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, constants.Equals(""), h.model.Picker().Filter().Get(constants.AttrCountry))
	visible := h.model.Picker().Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, int64(1), visible[0].ID)
}

func TestCtrlCQuitsWithoutSelecting(t *testing.T) {
	h := newHarness(t, Options{StartOpen: true})
	cmd := h.press(t, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
	assert.Empty(t, h.calls)
	assert.True(t, h.model.Quitting())
}

func TestAutocompleteFallsBackToEditDistance(t *testing.T) {
	ac := NewAutocomplete(3)
	ac.Reset("climate", []Suggestion{
		{Value: "tropical", Label: "Tropical", Criterion: constants.Equals("tropical")},
		{Value: "arid", Label: "Arid", Criterion: constants.Equals("arid")},
	})
	assert.Len(t, ac.Suggestions(), 2)

	ac, _ = ac.Update(keyRunes("tropcal"))
	s, ok := ac.Accept()
	require.True(t, ok)
	assert.Equal(t, constants.Equals("tropical"), s.Criterion)

	ac, _ = ac.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, _ = ac.Accept()
	assert.Equal(t, "tropical", s.Value, "single suggestion wraps onto itself")
}

func TestAutocompleteHighlightStaysOnVisibleRows(t *testing.T) {
	ac := NewAutocomplete(2)
	var candidates []Suggestion
	for _, v := range []string{"a1", "a2", "a3", "a4"} {
		candidates = append(candidates, Suggestion{Value: v, Label: v, Criterion: constants.Equals(v)})
	}
	ac.Reset("soil", candidates)
	require.Len(t, ac.Suggestions(), 4)

	ac, _ = ac.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, _ := ac.Accept()
	assert.Equal(t, "a2", s.Value)
	assert.Contains(t, ac.View(), "▶ a2")

	ac, _ = ac.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, _ = ac.Accept()
	assert.Equal(t, "a1", s.Value, "wraps within the rows on screen")
	assert.NotContains(t, ac.View(), "a3")

	ac, _ = ac.Update(tea.KeyMsg{Type: tea.KeyUp})
	s, _ = ac.Accept()
	assert.Equal(t, "a2", s.Value)
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, MonoTheme.Border.GetBorderStyle(), ThemeByName("MONO").Border.GetBorderStyle())
	assert.Equal(t, DefaultTheme.Border.GetBorderStyle(), ThemeByName("whatever").Border.GetBorderStyle())
}
