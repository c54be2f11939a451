// Package labels translates categories, attribute names and UI strings for display.
// Catalogs are read-only once loaded; a missing entry falls back to the raw key.
package labels

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ramanasai/fator/internal/constants"
)

//go:embed locales/*.yaml
var localeFS embed.FS

const DefaultLocale = "pt_BR"

// Table maps a raw key to its display string.
type Table map[string]string

// Lookup returns the translation of key, or key itself when missing.
func (t Table) Lookup(key string) string {
	if s, ok := t[key]; ok && s != "" {
		return s
	}
	return key
}

// Catalog is the set of lookup tables for one locale.
type Catalog struct {
	Locale     string           `yaml:"locale"`
	Attributes Table            `yaml:"attributes"`
	Types      Table            `yaml:"types"`
	Values     map[string]Table `yaml:"values"`
	Messages   Table            `yaml:"messages"`
}

// Locales lists the built-in locale names.
func Locales() []string {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out
}

// Load returns the built-in catalog for locale ("" means DefaultLocale).
func Load(locale string) (*Catalog, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	locale = strings.ReplaceAll(locale, "-", "_")
	b, err := localeFS.ReadFile("locales/" + locale + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown locale %q (available: %s)", locale, strings.Join(Locales(), ", "))
	}
	return Parse(b)
}

// Parse decodes a catalog from YAML.
func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	c.ensure()
	return &c, nil
}

// LoadFile reads a YAML catalog from disk and layers it over base.
func LoadFile(base *Catalog, path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels file: %w", err)
	}
	over, err := Parse(b)
	if err != nil {
		return nil, err
	}
	return base.Merge(over), nil
}

// Merge returns a new catalog with every entry of over replacing c's.
func (c *Catalog) Merge(over *Catalog) *Catalog {
	out := &Catalog{Locale: c.Locale}
	out.ensure()
	if over.Locale != "" {
		out.Locale = over.Locale
	}
	for _, src := range []*Catalog{c, over} {
		copyInto(out.Attributes, src.Attributes)
		copyInto(out.Types, src.Types)
		copyInto(out.Messages, src.Messages)
		for attr, t := range src.Values {
			if out.Values[attr] == nil {
				out.Values[attr] = Table{}
			}
			copyInto(out.Values[attr], t)
		}
	}
	return out
}

func copyInto(dst, src Table) {
	for k, v := range src {
		dst[k] = v
	}
}

func (c *Catalog) ensure() {
	if c.Attributes == nil {
		c.Attributes = Table{}
	}
	if c.Types == nil {
		c.Types = Table{}
	}
	if c.Values == nil {
		c.Values = map[string]Table{}
	}
	if c.Messages == nil {
		c.Messages = Table{}
	}
}

// Attribute returns the display name of a.
func (c *Catalog) Attribute(a constants.Attribute) string {
	return c.Attributes.Lookup(a.Key())
}

// ConstantType returns the display name of a constant type.
func (c *Catalog) ConstantType(t string) string {
	return c.Types.Lookup(t)
}

// Value translates a category of attribute a.
func (c *Catalog) Value(a constants.Attribute, v string) string {
	return c.Values[a.Key()].Lookup(v)
}

// Text returns a UI message.
func (c *Catalog) Text(key string) string {
	return c.Messages.Lookup(key)
}

// Criterion renders a filter choice for a.
func (c *Catalog) Criterion(a constants.Attribute, cr constants.Criterion) string {
	switch cr.Kind {
	case constants.MatchAbsent:
		return c.Text("not_informed")
	case constants.MatchValue:
		return c.Value(a, cr.Value)
	default:
		return c.Text("any")
	}
}

// RecordAttr renders an attribute of r, using the "unset" message when absent.
func (c *Catalog) RecordAttr(r constants.Record, a constants.Attribute) string {
	v, ok := r.Attr(a)
	if !ok {
		return c.Text("unset")
	}
	return c.Value(a, v)
}
