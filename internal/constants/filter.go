package constants

import (
	"fmt"
	"strings"
)

// NotInformed is the textual sentinel accepted on the command line and in saved
// filters for "only records without this attribute".
const NotInformed = "not_informed"

// MatchKind says how a single attribute constrains a record.
type MatchKind int

const (
	Unconstrained MatchKind = iota
	MatchAbsent
	MatchValue
)

// Criterion is the per-attribute entry of a Filter.
type Criterion struct {
	Kind  MatchKind
	Value string
}

func Any() Criterion                { return Criterion{} }
func Absent() Criterion             { return Criterion{Kind: MatchAbsent} }
func Equals(value string) Criterion { return Criterion{Kind: MatchValue, Value: value} }

// IsNotInformed reports whether s is the sentinel. The match is exact, so
// "NOT_INFORMED" is an ordinary value.
func IsNotInformed(s string) bool { return s == NotInformed }

// ParseCriterion maps "" to Any, NotInformed to Absent and anything else to Equals.
func ParseCriterion(s string) Criterion {
	switch {
	case s == "":
		return Any()
	case IsNotInformed(s):
		return Absent()
	default:
		return Equals(s)
	}
}

// Admits reports whether an attribute value (v, present) satisfies c.
func (c Criterion) Admits(v string, present bool) bool {
	switch c.Kind {
	case MatchAbsent:
		return !present
	case MatchValue:
		return present && v == c.Value
	default:
		return true
	}
}

func (c Criterion) String() string {
	switch c.Kind {
	case MatchAbsent:
		return NotInformed
	case MatchValue:
		return c.Value
	default:
		return ""
	}
}

// Filter holds one Criterion per attribute. The zero value constrains nothing.
type Filter struct {
	criteria [numAttributes]Criterion
}

// Get returns the criterion for a.
func (f Filter) Get(a Attribute) Criterion {
	if a < 0 || a >= numAttributes {
		return Any()
	}
	return f.criteria[a]
}

// With returns a copy of f with a constrained by c.
func (f Filter) With(a Attribute, c Criterion) Filter {
	if a >= 0 && a < numAttributes {
		f.criteria[a] = c
	}
	return f
}

// IsEmpty reports whether no attribute is constrained.
func (f Filter) IsEmpty() bool {
	return len(f.Active()) == 0
}

// Active lists the constrained attributes in display order.
func (f Filter) Active() []Attribute {
	var out []Attribute
	for _, a := range Attributes {
		if f.criteria[a].Kind != Unconstrained {
			out = append(out, a)
		}
	}
	return out
}

// Matches is the conjunction of every constrained attribute's criterion.
func (f Filter) Matches(r Record) bool {
	for _, a := range Attributes {
		c := f.criteria[a]
		if c.Kind == Unconstrained {
			continue
		}
		v, ok := r.Attr(a)
		if !c.Admits(v, ok) {
			return false
		}
	}
	return true
}

// Apply returns the records f matches, keeping their order.
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// String renders the active criteria as key=value pairs, e.g. "climate=tropical soil=not_informed".
func (f Filter) String() string {
	var parts []string
	for _, a := range f.Active() {
		parts = append(parts, fmt.Sprintf("%s=%s", a.Key(), f.criteria[a]))
	}
	return strings.Join(parts, " ")
}
