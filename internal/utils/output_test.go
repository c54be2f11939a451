package utils

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/fator/internal/constants"
	"github.com/ramanasai/fator/internal/labels"
)

func sampleList(t *testing.T) *ConstantList {
	t.Helper()
	return &ConstantList{
		Type: "harvestIndex",
		Constants: []constants.Record{
			{ID: 1, Type: "harvestIndex", Value: 0.45, Climate: constants.Ptr("tropical"), Reference: "Embrapa"},
			{ID: 2, Type: "harvestIndex", Value: 0.5, Soil: constants.Ptr("clay"), Comment: "soja"},
		},
		Total: 2,
	}
}

func plainRenderer(t *testing.T, format OutputFormat) *Renderer {
	t.Helper()
	cat, err := labels.Load("en")
	require.NoError(t, err)
	return NewRenderer(&RenderConfig{Format: format, Width: 60, ShowID: true, ShowMeta: true, Labels: cat})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatDefault, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestRenderDefaultShowsCardsAndUnsetAttributes(t *testing.T) {
	out, err := plainRenderer(t, FormatDefault).RenderConstantList(sampleList(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Harvest index")
	assert.Contains(t, out, "0.45")
	assert.Contains(t, out, "Tropical")
	assert.Contains(t, out, "Reference: Embrapa")
	assert.Contains(t, out, "Comment: soja")
	assert.Contains(t, out, "(no value)")
}

func TestRenderDefaultEmptyListShowsPlaceholder(t *testing.T) {
	out, err := plainRenderer(t, FormatDefault).RenderConstantList(&ConstantList{Type: "harvestIndex", Constants: []constants.Record{}})
	require.NoError(t, err)
	assert.Contains(t, out, "No conversion factor found...")
}

func TestRenderJSONKeepsNullAttributes(t *testing.T) {
	out, err := plainRenderer(t, FormatJSON).RenderConstantList(sampleList(t))
	require.NoError(t, err)

	var decoded ConstantList
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Constants, 2)
	assert.Nil(t, decoded.Constants[0].Soil)
	require.NotNil(t, decoded.Constants[1].Soil)
	assert.Equal(t, "clay", *decoded.Constants[1].Soil)
}

func TestRenderCSV(t *testing.T) {
	out, err := plainRenderer(t, FormatCSV).RenderConstantList(sampleList(t))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	want := []string{"id", "type", "value", "country", "climate", "biome", "irrigation", "soil", "cultivationSystem", "reference", "comment"}
	if diff := cmp.Diff(want, rows[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "0.45", rows[1][2])
	assert.Equal(t, "tropical", rows[1][4])
}

func TestRenderQuietPrintsValuesOnly(t *testing.T) {
	out, err := plainRenderer(t, FormatQuiet).RenderConstantList(sampleList(t))
	require.NoError(t, err)
	assert.Equal(t, "0.45\n0.5\n", out)
}

func TestRenderCompactAndTable(t *testing.T) {
	out, err := plainRenderer(t, FormatCompact).RenderConstantList(sampleList(t))
	require.NoError(t, err)
	assert.Contains(t, out, "#1 0.45 Tropical")

	out, err = plainRenderer(t, FormatTable).RenderConstantList(sampleList(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "1\t0.45\t-\tTropical"))
}

func TestPagination(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := NewPagination(len(items), 2, 3)
	assert.Equal(t, []int{5}, Paginate(items, p))
	assert.False(t, p.HasNext())
	assert.Equal(t, "use --page 2 for previous", p.FormatNavigation())

	p = NewPagination(len(items), 2, 99)
	assert.Equal(t, 3, p.Current)

	p = NewPagination(len(items), 0, 1)
	assert.Equal(t, items, Paginate(items, p))
	assert.Equal(t, 1, p.TotalPages)

	p = NewPagination(0, 10, 1)
	assert.Empty(t, Paginate([]int{}, p))
	assert.Equal(t, "No results", p.FormatSummary())
}

func TestParseSince(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"today":      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		"":           time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		"Yesterday":  time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		"7d":         time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		"2w":         time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC),
		"2025-01-31": time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		"all":        {},
	}
	for in, want := range cases {
		got, err := ParseSince(in, now)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%q: got %v want %v", in, got, want)
	}

	got, err := ParseSince("2025-03-01T08:00:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())

	_, err = ParseSince("last tuesday", now)
	assert.Error(t, err)
}
