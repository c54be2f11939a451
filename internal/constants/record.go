package constants

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Attribute identifies one of the categorical fields a record can be filtered on.
type Attribute int

const (
	AttrCountry Attribute = iota
	AttrClimate
	AttrBiome
	AttrIrrigation
	AttrSoil
	AttrCultivationSystem

	numAttributes
)

// Attributes lists every filterable attribute in display order.
var Attributes = []Attribute{
	AttrCountry,
	AttrClimate,
	AttrBiome,
	AttrIrrigation,
	AttrSoil,
	AttrCultivationSystem,
}

var ErrUnknownAttribute = errors.New("unknown attribute")

var attributeKeys = [numAttributes]string{
	AttrCountry:           "country",
	AttrClimate:           "climate",
	AttrBiome:             "biome",
	AttrIrrigation:        "irrigation",
	AttrSoil:              "soil",
	AttrCultivationSystem: "cultivationSystem",
}

// Key returns the wire name used in files, flags and label tables.
func (a Attribute) Key() string {
	if a < 0 || a >= numAttributes {
		return fmt.Sprintf("attribute(%d)", int(a))
	}
	return attributeKeys[a]
}

// Column returns the snake_case name used by the SQLite schema.
func (a Attribute) Column() string {
	if a == AttrCultivationSystem {
		return "cultivation_system"
	}
	return a.Key()
}

func (a Attribute) String() string { return a.Key() }

// ParseAttribute accepts the camelCase key, snake_case or kebab-case forms, ignoring case.
func ParseAttribute(s string) (Attribute, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "", "-", "", " ", "").Replace(norm)
	for _, a := range Attributes {
		if strings.ToLower(a.Key()) == norm {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, s)
}

// Record is one selectable conversion constant.
// A nil attribute means the source did not inform it, which is not the same as "".
type Record struct {
	ID                int64   `json:"id"`
	Type              string  `json:"type"`
	Value             float64 `json:"value"`
	Country           *string `json:"country"`
	Climate           *string `json:"climate"`
	Biome             *string `json:"biome"`
	Irrigation        *string `json:"irrigation"`
	Soil              *string `json:"soil"`
	CultivationSystem *string `json:"cultivationSystem"`
	Reference         string  `json:"reference"`
	Comment           string  `json:"comment"`
}

func (r *Record) field(a Attribute) **string {
	switch a {
	case AttrCountry:
		return &r.Country
	case AttrClimate:
		return &r.Climate
	case AttrBiome:
		return &r.Biome
	case AttrIrrigation:
		return &r.Irrigation
	case AttrSoil:
		return &r.Soil
	case AttrCultivationSystem:
		return &r.CultivationSystem
	}
	return nil
}

// Attr returns the value of a and whether it is present.
func (r Record) Attr(a Attribute) (string, bool) {
	p := r.field(a)
	if p == nil || *p == nil {
		return "", false
	}
	return **p, true
}

// SetAttr sets a to v; a nil v marks the attribute as absent.
func (r *Record) SetAttr(a Attribute, v *string) {
	if p := r.field(a); p != nil {
		*p = v
	}
}

// ValueText is the record value as handed to the selection callback.
func (r Record) ValueText() string { return FormatValue(r.Value) }

// FormatValue renders v with the shortest decimal that round-trips. Magnitudes
// from 1e21 up or below 1e-6 use exponent form without padding, e.g. "1e+21"
// and "1.5e-7", the way JavaScript numbers print.
func FormatValue(v float64) string {
	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) || math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

// Ptr is a small helper for building records in code and tests.
func Ptr(s string) *string { return &s }
