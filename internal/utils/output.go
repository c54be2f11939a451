package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/fator/internal/constants"
	"github.com/ramanasai/fator/internal/labels"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatDefault, nil
	case FormatDefault, FormatTable, FormatJSON, FormatCSV, FormatCompact, FormatQuiet:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (use default, table, json, csv, compact, quiet)", s)
}

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format   OutputFormat
	Width    int
	ShowID   bool
	ShowMeta bool
	Color    bool
	Labels   *labels.Catalog
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}

	return &RenderConfig{
		Format:   FormatDefault,
		Width:    width,
		ShowID:   true,
		ShowMeta: true,
		Color:    true,
	}
}

// ConstantList is a page of records plus what produced it.
type ConstantList struct {
	Type       string             `json:"type"`
	TypeLabel  string             `json:"type_label,omitempty"`
	Constants  []constants.Record `json:"constants"`
	Total      int                `json:"total"`
	Page       int                `json:"page,omitempty"`
	PerPage    int                `json:"per_page,omitempty"`
	TotalPages int                `json:"total_pages,omitempty"`
	Filters    map[string]string  `json:"filters,omitempty"`
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
	labels *labels.Catalog
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	ID        lipgloss.Style
	Value     lipgloss.Style
	Label     lipgloss.Style
	Text      lipgloss.Style
	Absent    lipgloss.Style
	Warning   lipgloss.Style
}

// NewRenderer creates a new renderer with the given config
func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	cat := config.Labels
	if cat == nil {
		cat, _ = labels.Load("")
	}
	return &Renderer{
		config: config,
		styles: initStyles(config.Color),
		labels: cat,
	}
}

func initStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title:     plain.Bold(true),
			Separator: plain,
			Meta:      plain,
			ID:        plain,
			Value:     plain.Bold(true),
			Label:     plain.Underline(true),
			Text:      plain,
			Absent:    plain,
			Warning:   plain,
		}
	}
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Meta:      lipgloss.NewStyle().Faint(true),
		ID:        lipgloss.NewStyle().Faint(true),
		Value:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")),
		Text:      lipgloss.NewStyle(),
		Absent:    lipgloss.NewStyle().Faint(true).Italic(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")),
	}
}

// RenderConstantList renders records according to the configured format
func (r *Renderer) RenderConstantList(list *ConstantList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(list)
	case FormatCSV:
		return r.renderCSV(list)
	case FormatTable:
		return r.renderTable(list)
	case FormatCompact:
		return r.renderCompact(list)
	case FormatQuiet:
		return r.renderQuiet(list)
	default:
		return r.renderDefault(list)
	}
}

func (r *Renderer) rule() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120)))
}

func (r *Renderer) renderDefault(list *ConstantList) (string, error) {
	var b strings.Builder

	title := list.TypeLabel
	if title == "" {
		title = r.labels.ConstantType(list.Type)
	}
	b.WriteString(r.styles.Title.Render(r.labels.Text("title") + " - " + title))
	if f := formatFilters(list.Filters); f != "" {
		b.WriteString("  ")
		b.WriteString(r.styles.Meta.Render(f))
	}
	b.WriteString("\n")
	b.WriteString(r.rule())
	b.WriteString("\n")

	if list.TotalPages > 1 {
		p := NewPagination(list.Total, list.PerPage, list.Page)
		b.WriteString(r.styles.Meta.Render(p.FormatSummary()))
		b.WriteString("\n")
		b.WriteString(r.rule())
		b.WriteString("\n")
	}

	if len(list.Constants) == 0 {
		b.WriteString(r.styles.Meta.Render(r.labels.Text("empty")))
		b.WriteString("\n")
		return b.String(), nil
	}

	for _, c := range list.Constants {
		b.WriteString(r.renderCard(c))
		b.WriteString(r.rule())
		b.WriteString("\n")
	}

	if list.TotalPages > 1 {
		p := NewPagination(list.Total, list.PerPage, list.Page)
		if nav := p.FormatNavigation(); nav != "" {
			b.WriteString(r.styles.Meta.Render(nav))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// renderCard lays a record out the way the picker modal does.
func (r *Renderer) renderCard(c constants.Record) string {
	var b strings.Builder
	line := func(label, value string, style lipgloss.Style) {
		b.WriteString("  ")
		b.WriteString(r.styles.Label.Render(label + ":"))
		b.WriteString(" ")
		b.WriteString(style.Render(value))
		b.WriteString("\n")
	}

	head := r.styles.Label.Render(r.labels.Text("value")+":") + " " + r.styles.Value.Render(c.ValueText())
	if r.config.ShowID {
		head = r.styles.ID.Render(fmt.Sprintf("[%d]", c.ID)) + " " + head
	}
	b.WriteString(head)
	b.WriteString("\n")

	for _, a := range constants.Attributes {
		style := r.styles.Text
		if _, ok := c.Attr(a); !ok {
			style = r.styles.Absent
		}
		line(r.labels.Attribute(a), r.labels.RecordAttr(c, a), style)
	}
	if r.config.ShowMeta {
		if c.Reference != "" {
			line(r.labels.Text("reference"), c.Reference, r.styles.Text)
		}
		if c.Comment != "" {
			line(r.labels.Text("comment"), c.Comment, r.styles.Text)
		}
	}
	return b.String()
}

func (r *Renderer) renderJSON(list *ConstantList) (string, error) {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func csvHeader() []string {
	h := []string{"id", "type", "value"}
	for _, a := range constants.Attributes {
		h = append(h, a.Key())
	}
	return append(h, "reference", "comment")
}

func (r *Renderer) renderCSV(list *ConstantList) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(csvHeader()); err != nil {
		return "", err
	}
	for _, c := range list.Constants {
		row := []string{strconv.FormatInt(c.ID, 10), c.Type, c.ValueText()}
		for _, a := range constants.Attributes {
			v, _ := c.Attr(a)
			row = append(row, v)
		}
		row = append(row, c.Reference, c.Comment)
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

func (r *Renderer) renderTable(list *ConstantList) (string, error) {
	var b strings.Builder

	header := []string{"ID", r.labels.Text("value")}
	for _, a := range constants.Attributes {
		header = append(header, r.labels.Attribute(a))
	}
	b.WriteString(strings.Join(header, "\t"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", r.config.Width))
	b.WriteString("\n")

	for _, c := range list.Constants {
		row := []string{strconv.FormatInt(c.ID, 10), c.ValueText()}
		for _, a := range constants.Attributes {
			v, ok := c.Attr(a)
			if !ok {
				v = "-"
			} else {
				v = r.labels.Value(a, v)
			}
			row = append(row, v)
		}
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (r *Renderer) renderCompact(list *ConstantList) (string, error) {
	var b strings.Builder
	for _, c := range list.Constants {
		var parts []string
		for _, a := range constants.Attributes {
			if v, ok := c.Attr(a); ok && v != "" {
				parts = append(parts, r.labels.Value(a, v))
			}
		}
		text := strings.Join(parts, " · ")
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			r.styles.ID.Render(fmt.Sprintf("#%d", c.ID)),
			r.styles.Value.Render(c.ValueText()),
			text))
	}
	return b.String(), nil
}

// renderQuiet prints only values, one per line, for scripting.
func (r *Renderer) renderQuiet(list *ConstantList) (string, error) {
	var b strings.Builder
	for _, c := range list.Constants {
		b.WriteString(c.ValueText())
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Warn styles a warning line.
func (r *Renderer) Warn(msg string) string {
	return r.styles.Warning.Render(msg)
}

func formatFilters(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}
	var parts []string
	for _, a := range constants.Attributes {
		if v, ok := filters[a.Key()]; ok {
			parts = append(parts, a.Key()+"="+v)
		}
	}
	return strings.Join(parts, " · ")
}
