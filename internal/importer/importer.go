// Package importer reads conversion-constant catalogs from CSV, JSON and XLSX files.
package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ramanasai/fator/internal/constants"
)

var (
	ErrMissingValue = errors.New("missing value column")
	ErrUnknownType  = errors.New("unsupported file type")
)

// RowError points at the offending line (1-based, header included) of a tabular file.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Row, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }

// Options control how rows become records.
type Options struct {
	// DefaultType is used for rows without a type column or with an empty type.
	DefaultType string
}

// ReadFile picks a reader from the file extension.
func ReadFile(path string, opts Options) ([]constants.Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f, opts)
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadJSON(f, opts)
	case ".xlsx":
		return ReadXLSX(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, filepath.Ext(path))
	}
}

// ReadCSV reads a comma separated file with a header row.
func ReadCSV(r io.Reader, opts Options) ([]constants.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(rows, opts)
}

// ReadXLSX reads the first sheet of a workbook; the first row is the header.
func ReadXLSX(path string, opts Options) ([]constants.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows, opts)
}

type jsonRecord struct {
	Type              string   `json:"type"`
	Value             *float64 `json:"value"`
	Country           *string  `json:"country"`
	Climate           *string  `json:"climate"`
	Biome             *string  `json:"biome"`
	Irrigation        *string  `json:"irrigation"`
	Soil              *string  `json:"soil"`
	CultivationSystem *string  `json:"cultivationSystem"`
	Reference         string   `json:"reference"`
	Comment           string   `json:"comment"`
}

// ReadJSON reads an array of objects; null or missing attributes are absent.
func ReadJSON(r io.Reader, opts Options) ([]constants.Record, error) {
	var in []jsonRecord
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	out := make([]constants.Record, 0, len(in))
	for i, j := range in {
		if j.Value == nil {
			return nil, fmt.Errorf("item %d: %w", i+1, ErrMissingValue)
		}
		rec := constants.Record{
			Type:              j.Type,
			Value:             *j.Value,
			Country:           j.Country,
			Climate:           j.Climate,
			Biome:             j.Biome,
			Irrigation:        j.Irrigation,
			Soil:              j.Soil,
			CultivationSystem: j.CultivationSystem,
			Reference:         j.Reference,
			Comment:           j.Comment,
		}
		if rec.Type == "" {
			rec.Type = opts.DefaultType
		}
		if rec.Type == "" {
			return nil, fmt.Errorf("item %d: missing type", i+1)
		}
		out = append(out, rec)
	}
	return out, nil
}

type columns struct {
	typ, value, reference, comment int
	attrs                          map[constants.Attribute]int
}

func headerIndex(header []string) (columns, error) {
	cols := columns{typ: -1, value: -1, reference: -1, comment: -1, attrs: map[constants.Attribute]int{}}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch name {
		case "type", "constant_type", "constanttype":
			cols.typ = i
		case "value":
			cols.value = i
		case "reference":
			cols.reference = i
		case "comment":
			cols.comment = i
		default:
			if a, err := constants.ParseAttribute(name); err == nil {
				cols.attrs[a] = i
			}
		}
	}
	if cols.value < 0 {
		return cols, ErrMissingValue
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func fromRows(rows [][]string, opts Options) ([]constants.Record, error) {
	if len(rows) == 0 {
		return []constants.Record{}, nil
	}
	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, &RowError{Row: 1, Err: err}
	}

	out := make([]constants.Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		if isBlank(row) {
			continue
		}
		raw := cell(row, cols.value)
		value, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err != nil {
			return nil, &RowError{Row: line, Err: fmt.Errorf("invalid value %q", raw)}
		}
		rec := constants.Record{
			Type:      cell(row, cols.typ),
			Value:     value,
			Reference: cell(row, cols.reference),
			Comment:   cell(row, cols.comment),
		}
		if rec.Type == "" {
			rec.Type = opts.DefaultType
		}
		if rec.Type == "" {
			return nil, &RowError{Row: line, Err: errors.New("missing type")}
		}
		for a, i := range cols.attrs {
			if v := cell(row, i); v != "" {
				rec.SetAttr(a, &v)
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
