package constants

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Option is one concrete value an attribute takes across a set of records.
type Option struct {
	Value string
	Count int
}

// Facet summarises an attribute over a set of records.
type Facet struct {
	Attribute Attribute
	Options   []Option // sorted by value
	Absent    int      // records with no value for the attribute
}

// Criteria returns the choices offered by a filter control, in cycling order:
// Any, Absent, then every observed value.
func (f Facet) Criteria() []Criterion {
	out := make([]Criterion, 0, len(f.Options)+2)
	out = append(out, Any(), Absent())
	for _, o := range f.Options {
		out = append(out, Equals(o.Value))
	}
	return out
}

// Values returns the observed values without counts.
func (f Facet) Values() []string {
	out := make([]string, len(f.Options))
	for i, o := range f.Options {
		out[i] = o.Value
	}
	return out
}

// Options builds the facet for attribute a.
func Options(records []Record, a Attribute) Facet {
	counts := map[string]int{}
	facet := Facet{Attribute: a}
	for _, r := range records {
		v, ok := r.Attr(a)
		if !ok {
			facet.Absent++
			continue
		}
		counts[v]++
	}
	for v, n := range counts {
		facet.Options = append(facet.Options, Option{Value: v, Count: n})
	}
	sort.Slice(facet.Options, func(i, j int) bool {
		return facet.Options[i].Value < facet.Options[j].Value
	})
	return facet
}

// Facets builds one facet per attribute, in display order.
func Facets(records []Record) []Facet {
	out := make([]Facet, 0, len(Attributes))
	for _, a := range Attributes {
		out = append(out, Options(records, a))
	}
	return out
}

// Suggest returns the known value closest to input, if one is close enough to be a typo.
func Suggest(input string, known []string) (string, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" || len(known) == 0 {
		return "", false
	}
	best, bestDist := "", -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(in, strings.ToLower(k))
		if bestDist < 0 || d < bestDist || (d == bestDist && k < best) {
			best, bestDist = k, d
		}
	}
	// allow roughly one edit per three characters
	limit := len(in)/3 + 1
	if bestDist > limit {
		return "", false
	}
	return best, true
}
