package constants

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(records []Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func sampleRecords() []Record {
	return []Record{
		{ID: 1, Value: 0.45, Country: Ptr("Brasil"), Climate: Ptr("tropical"), Biome: Ptr("Cerrado"), Irrigation: Ptr("rainfed")},
		{ID: 2, Value: 0.5, Country: Ptr("Brasil"), Climate: Ptr("temperate"), Soil: Ptr("clay"), CultivationSystem: Ptr("no_till")},
		{ID: 3, Value: 0.38, Climate: Ptr("tropical"), Soil: Ptr("sandy"), Irrigation: Ptr("irrigated")},
		{ID: 4, Value: 1.2},
		{ID: 5, Value: 0.41, Country: Ptr("Argentina"), Climate: Ptr(""), Soil: Ptr("clay")},
	}
}

func TestFilterScenarioFromCatalog(t *testing.T) {
	records := []Record{
		{ID: 1, Climate: Ptr("tropical")},
		{ID: 2, Climate: Ptr("temperate"), Soil: Ptr("clay")},
	}

	var f Filter
	assert.Equal(t, []int64{1}, ids(f.With(AttrClimate, Equals("tropical")).Apply(records)))
	assert.Equal(t, []int64{1}, ids(f.With(AttrSoil, Absent()).Apply(records)))
	assert.Equal(t, []int64{1, 2}, ids(f.Apply(records)))
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	var f Filter
	require.True(t, f.IsEmpty())
	for _, r := range sampleRecords() {
		assert.True(t, f.Matches(r), "record %d", r.ID)
	}
}

func TestAbsentCriterionMatchesOnlyMissingAttribute(t *testing.T) {
	records := sampleRecords()
	for _, a := range Attributes {
		t.Run(a.Key(), func(t *testing.T) {
			f := Filter{}.With(a, Absent())
			for _, r := range records {
				_, present := r.Attr(a)
				assert.Equal(t, !present, f.Matches(r), "record %d", r.ID)
			}
		})
	}
}

func TestValueCriterionIsExactEquality(t *testing.T) {
	records := sampleRecords()
	for _, a := range Attributes {
		for _, v := range []string{"tropical", "clay", "Brasil", "brasil", "", "irrigated"} {
			f := Filter{}.With(a, Equals(v))
			for _, r := range records {
				got, present := r.Attr(a)
				assert.Equal(t, present && got == v, f.Matches(r), "%s=%q record %d", a, v, r.ID)
			}
		}
	}
}

func TestEmptyStringValueIsNotAbsent(t *testing.T) {
	r := Record{ID: 9, Climate: Ptr("")}
	assert.False(t, Filter{}.With(AttrClimate, Absent()).Matches(r))
	assert.True(t, Filter{}.With(AttrClimate, Equals("")).Matches(r))
}

func TestCombinedCriteriaAreConjunction(t *testing.T) {
	records := sampleRecords()
	climate := Equals("tropical")
	soil := Absent()

	ab := Filter{}.With(AttrClimate, climate).With(AttrSoil, soil)
	ba := Filter{}.With(AttrSoil, soil).With(AttrClimate, climate)
	onlyA := Filter{}.With(AttrClimate, climate)
	onlyB := Filter{}.With(AttrSoil, soil)

	for _, r := range records {
		want := onlyA.Matches(r) && onlyB.Matches(r)
		assert.Equal(t, want, ab.Matches(r), "record %d", r.ID)
		assert.Equal(t, want, ba.Matches(r), "record %d", r.ID)
	}
	if diff := cmp.Diff([]int64{1}, ids(ab.Apply(records))); diff != "" {
		t.Fatalf("filtered ids mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterWithNoMatchesIsEmptyNotNil(t *testing.T) {
	got := Filter{}.With(AttrClimate, Equals("polar")).Apply(sampleRecords())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApplyKeepsInputOrder(t *testing.T) {
	records := sampleRecords()
	records[0], records[2] = records[2], records[0]
	got := Filter{}.With(AttrClimate, Equals("tropical")).Apply(records)
	assert.Equal(t, []int64{3, 1}, ids(got))
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	var base Filter
	_ = base.With(AttrBiome, Equals("Cerrado"))
	assert.True(t, base.IsEmpty())
}

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		in   string
		want Criterion
	}{
		{"", Any()},
		{"not_informed", Absent()},
		{"NOT_INFORMED", Equals("NOT_INFORMED")},
		{"tropical", Equals("tropical")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCriterion(tt.in), "input %q", tt.in)
	}
}

func TestFilterString(t *testing.T) {
	f := Filter{}.With(AttrSoil, Absent()).With(AttrClimate, Equals("tropical"))
	assert.Equal(t, "climate=tropical soil=not_informed", f.String())
	assert.Equal(t, []Attribute{AttrClimate, AttrSoil}, f.Active())
}
