package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/todate/internal/domain"
)

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// encodeDateValue serializes v in its wire shape for a JSON column.
func encodeDateValue(v domain.DateValue) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// nullableDateValue converts an optional DateValue to a value suitable for
// SQLite storage: NULL when v is nil.
func nullableDateValue(v *domain.DateValue) (any, error) {
	if v == nil {
		return nil, nil
	}
	return encodeDateValue(*v)
}

func decodeDateValue(field, s string) (domain.DateValue, error) {
	var v domain.DateValue
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return v, fmt.Errorf("decoding %s: %w", field, err)
	}
	return v, nil
}

func decodeNullableDateValue(field string, s sql.NullString) (*domain.DateValue, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	v, err := decodeDateValue(field, s.String)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func encodeGrades(grades []int) (string, error) {
	if grades == nil {
		grades = []int{}
	}
	data, err := json.Marshal(grades)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeGrades(field, s string) ([]int, error) {
	var grades []int
	if s == "" {
		return grades, nil
	}
	if err := json.Unmarshal([]byte(s), &grades); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", field, err)
	}
	return grades, nil
}

// requireAffected turns an UPDATE or DELETE that touched no row into ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("counting affected %s rows: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
