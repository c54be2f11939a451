package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/fator/internal/constants"
)

// attrFlags binds one string flag per attribute.
type attrFlags map[constants.Attribute]*string

func newAttrFlags() attrFlags {
	f := attrFlags{}
	for _, a := range constants.Attributes {
		f[a] = new(string)
	}
	return f
}

func attrFlagName(a constants.Attribute) string {
	return strings.ReplaceAll(a.Column(), "_", "-")
}

func (f attrFlags) register(c *cobra.Command, usage string) {
	for _, a := range constants.Attributes {
		c.Flags().StringVar(f[a], attrFlagName(a), "", fmt.Sprintf(usage, a.Key()))
	}
}

// changed yields the attributes whose flag was given on the command line.
func (f attrFlags) changed(c *cobra.Command) []constants.Attribute {
	var out []constants.Attribute
	for _, a := range constants.Attributes {
		if c.Flags().Changed(attrFlagName(a)) {
			out = append(out, a)
		}
	}
	return out
}

// filter turns the given flags into criteria; not_informed selects absent values.
func (f attrFlags) filter(c *cobra.Command) constants.Filter {
	var filter constants.Filter
	for _, a := range f.changed(c) {
		filter = filter.With(a, constants.ParseCriterion(*f[a]))
	}
	return filter
}

// stored maps a given flag to the value saved on a record. The sentinel and an
// empty flag both mean "no value", so add and edit never store "".
func (f attrFlags) stored(a constants.Attribute) *string {
	v := *f[a]
	if v == "" || constants.IsNotInformed(v) {
		return nil
	}
	return &v
}

// parseValue accepts a decimal point or a decimal comma.
func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: must be a number", s)
	}
	return v, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid constant ID: %v", err)
	}
	return id, nil
}
