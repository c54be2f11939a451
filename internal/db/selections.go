package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// tsLayout has a fixed width so stored timestamps sort lexically.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// Selection is one confirmed pick, kept as history.
type Selection struct {
	ID           string
	ConstantType string
	ConstantID   int64
	Value        string
	At           time.Time
}

// RecordSelection stores s, filling in the id and timestamp when missing.
func RecordSelection(dbh *sql.DB, s Selection) (Selection, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.At.IsZero() {
		s.At = time.Now()
	}
	var constantID any
	if s.ConstantID > 0 {
		constantID = s.ConstantID
	}
	_, err := dbh.Exec(`INSERT INTO selections (id, constant_type, constant_id, value, ts) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.ConstantType, constantID, s.Value, s.At.UTC().Format(tsLayout))
	if err != nil {
		return s, fmt.Errorf("record selection: %w", err)
	}
	return s, nil
}

// RecentSelections returns selections newest first. Empty constantType and zero
// since disable the respective filter; limit <= 0 means no limit.
func RecentSelections(dbh *sql.DB, constantType string, since time.Time, limit int) ([]Selection, error) {
	query := `SELECT id, constant_type, COALESCE(constant_id, 0), value, ts FROM selections WHERE 1=1`
	var args []any
	if constantType != "" {
		query += ` AND constant_type = ?`
		args = append(args, constantType)
	}
	if !since.IsZero() {
		query += ` AND ts >= ?`
		args = append(args, since.UTC().Format(tsLayout))
	}
	query += ` ORDER BY ts DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := dbh.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Selection
	for rows.Next() {
		var s Selection
		var ts string
		if err := rows.Scan(&s.ID, &s.ConstantType, &s.ConstantID, &s.Value, &ts); err != nil {
			return nil, err
		}
		if t, err := time.Parse(tsLayout, ts); err == nil {
			s.At = t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
