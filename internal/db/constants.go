package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ramanasai/fator/internal/constants"
)

var ErrNotFound = errors.New("constant not found")

const constantColumnsSQL = `id, constant_type, value, country, climate, biome, irrigation, soil, cultivation_system, reference, comment`

type scanner interface {
	Scan(dest ...any) error
}

func scanConstant(s scanner) (constants.Record, error) {
	var r constants.Record
	var attrs [6]sql.NullString
	err := s.Scan(&r.ID, &r.Type, &r.Value,
		&attrs[0], &attrs[1], &attrs[2], &attrs[3], &attrs[4], &attrs[5],
		&r.Reference, &r.Comment)
	if err != nil {
		return r, err
	}
	for i, a := range constants.Attributes {
		if attrs[i].Valid {
			v := attrs[i].String
			r.SetAttr(a, &v)
		}
	}
	return r, nil
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// ListConstants returns every record of constantType ordered by id.
// An empty constantType lists all records.
func ListConstants(dbh *sql.DB, constantType string) ([]constants.Record, error) {
	query := `SELECT ` + constantColumnsSQL + ` FROM constants`
	var args []any
	if constantType != "" {
		query += ` WHERE constant_type = ?`
		args = append(args, constantType)
	}
	query += ` ORDER BY id`

	rows, err := dbh.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]constants.Record, 0)
	for rows.Next() {
		r, err := scanConstant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetConstant returns one record by id.
func GetConstant(dbh *sql.DB, id int64) (constants.Record, error) {
	r, err := scanConstant(dbh.QueryRow(`SELECT `+constantColumnsSQL+` FROM constants WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return r, err
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertConstant(ex execer, r constants.Record) (int64, error) {
	if strings.TrimSpace(r.Type) == "" {
		return 0, errors.New("constant type is required")
	}
	res, err := ex.Exec(`
		INSERT INTO constants (constant_type, value, country, climate, biome, irrigation, soil, cultivation_system, reference, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.Type, r.Value,
		nullable(r.Country), nullable(r.Climate), nullable(r.Biome),
		nullable(r.Irrigation), nullable(r.Soil), nullable(r.CultivationSystem),
		r.Reference, r.Comment)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertConstant stores r (its ID is ignored) and returns the new id.
func InsertConstant(dbh *sql.DB, r constants.Record) (int64, error) {
	return insertConstant(dbh, r)
}

// InsertConstants stores every record in one transaction.
func InsertConstants(dbh *sql.DB, records []constants.Record) (int, error) {
	tx, err := dbh.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for i, r := range records {
		if _, err := insertConstant(tx, r); err != nil {
			return 0, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ConstantPatch lists the fields to change. In Attrs a nil value clears the attribute.
type ConstantPatch struct {
	Type      *string
	Value     *float64
	Attrs     map[constants.Attribute]*string
	Reference *string
	Comment   *string
}

func (p ConstantPatch) IsEmpty() bool {
	return p.Type == nil && p.Value == nil && len(p.Attrs) == 0 && p.Reference == nil && p.Comment == nil
}

// UpdateConstant applies patch to the record with id.
func UpdateConstant(dbh *sql.DB, id int64, patch ConstantPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to update")
	}

	var updates []string
	var args []any
	if patch.Type != nil {
		updates = append(updates, "constant_type = ?")
		args = append(args, *patch.Type)
	}
	if patch.Value != nil {
		updates = append(updates, "value = ?")
		args = append(args, *patch.Value)
	}
	for _, a := range constants.Attributes {
		v, ok := patch.Attrs[a]
		if !ok {
			continue
		}
		updates = append(updates, a.Column()+" = ?")
		args = append(args, nullable(v))
	}
	if patch.Reference != nil {
		updates = append(updates, "reference = ?")
		args = append(args, *patch.Reference)
	}
	if patch.Comment != nil {
		updates = append(updates, "comment = ?")
		args = append(args, *patch.Comment)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE constants SET %s WHERE id = ?", strings.Join(updates, ", "))
	res, err := dbh.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("update constant %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// DeleteConstant removes the record with id.
func DeleteConstant(dbh *sql.DB, id int64) error {
	res, err := dbh.Exec(`DELETE FROM constants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// TypeCount is the number of records stored for a constant type.
type TypeCount struct {
	Type  string
	Count int
}

// ListTypes returns every constant type with its record count, by name.
func ListTypes(dbh *sql.DB) ([]TypeCount, error) {
	rows, err := dbh.Query(`SELECT constant_type, COUNT(*) FROM constants GROUP BY constant_type ORDER BY constant_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
