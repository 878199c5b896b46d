package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/todate/internal/db"
	"github.com/alexanderramin/todate/internal/domain"
)

// SQLiteTodateRepo implements TodateRepo using a SQLite database.
type SQLiteTodateRepo struct {
	db db.DBTX
}

func NewSQLiteTodateRepo(conn db.DBTX) *SQLiteTodateRepo {
	return &SQLiteTodateRepo{db: conn}
}

const todateColumns = `id, title, date, date_display, end_date_display, comment, created_at, updated_at`

func (r *SQLiteTodateRepo) Create(ctx context.Context, t *domain.Todate) error {
	start, end, err := encodeTodateDates(t)
	if err != nil {
		return err
	}
	query := `INSERT INTO todates (` + todateColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Date,
		start,
		end,
		t.Comment,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting todate: %w", err)
	}
	return r.replaceTags(ctx, t)
}

func (r *SQLiteTodateRepo) GetByID(ctx context.Context, id string) (*domain.Todate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todateColumns+` FROM todates WHERE id = ?`, id)
	t, err := scanTodate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("todate: %w", ErrNotFound)
		}
		return nil, err
	}
	tags, err := r.loadTags(ctx, `WHERE tt.todate_id = ?`, id)
	if err != nil {
		return nil, err
	}
	t.Tags = tags[t.ID]
	return t, nil
}

// List returns every todate ordered by canonical date, newest first.
func (r *SQLiteTodateRepo) List(ctx context.Context) ([]*domain.Todate, error) {
	return r.list(ctx, ``)
}

// ListByKind returns the todates whose start value is of the given kind.
func (r *SQLiteTodateRepo) ListByKind(ctx context.Context, kind domain.DateKind) ([]*domain.Todate, error) {
	return r.list(ctx, `WHERE json_extract(date_display, '$.kind') = ?`, string(kind))
}

func (r *SQLiteTodateRepo) list(ctx context.Context, where string, args ...any) ([]*domain.Todate, error) {
	query := `SELECT ` + todateColumns + ` FROM todates ` + where + ` ORDER BY date DESC, id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing todates: %w", err)
	}

	var todates []*domain.Todate
	for rows.Next() {
		t, err := scanTodate(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		todates = append(todates, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating todates: %w", err)
	}
	rows.Close()

	if len(todates) == 0 {
		return todates, nil
	}
	tags, err := r.loadTags(ctx, ``)
	if err != nil {
		return nil, err
	}
	for _, t := range todates {
		t.Tags = tags[t.ID]
	}
	return todates, nil
}

func (r *SQLiteTodateRepo) Update(ctx context.Context, t *domain.Todate) error {
	start, end, err := encodeTodateDates(t)
	if err != nil {
		return err
	}
	query := `UPDATE todates SET title = ?, date = ?, date_display = ?, end_date_display = ?, comment = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Date,
		start,
		end,
		t.Comment,
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todate: %w", err)
	}
	if err := requireAffected(res, "todate"); err != nil {
		return err
	}
	return r.replaceTags(ctx, t)
}

func (r *SQLiteTodateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting todate: %w", err)
	}
	return requireAffected(res, "todate")
}

func (r *SQLiteTodateRepo) replaceTags(ctx context.Context, t *domain.Todate) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM todate_tags WHERE todate_id = ?`, t.ID); err != nil {
		return fmt.Errorf("clearing todate tags: %w", err)
	}
	if len(t.Tags) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(`INSERT OR IGNORE INTO todate_tags (todate_id, tag_id, position) VALUES `)
	args := make([]any, 0, len(t.Tags)*3)
	for i, tag := range t.Tags {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?, ?)")
		args = append(args, t.ID, tag.ID, i)
	}
	if _, err := r.db.ExecContext(ctx, b.String(), args...); err != nil {
		return fmt.Errorf("linking todate tags: %w", err)
	}
	return nil
}

// loadTags returns the tags of the matching todates keyed by todate ID.
func (r *SQLiteTodateRepo) loadTags(ctx context.Context, where string, args ...any) (map[string][]domain.Tag, error) {
	query := `SELECT tt.todate_id, t.id, t.name, t.color
		FROM todate_tags tt JOIN tags t ON t.id = tt.tag_id ` + where + `
		ORDER BY tt.todate_id, tt.position`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading todate tags: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Tag)
	for rows.Next() {
		var todateID string
		var tag domain.Tag
		if err := rows.Scan(&todateID, &tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, fmt.Errorf("scanning todate tag row: %w", err)
		}
		out[todateID] = append(out[todateID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todate tags: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTodate reads one todate row. sql.ErrNoRows is returned unwrapped.
func scanTodate(row rowScanner) (*domain.Todate, error) {
	var t domain.Todate
	var startStr, createdAtStr, updatedAtStr string
	var endStr sql.NullString

	err := row.Scan(&t.ID, &t.Title, &t.Date, &startStr, &endStr, &t.Comment, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning todate: %w", err)
	}

	if t.Start, err = decodeDateValue("date_display", startStr); err != nil {
		return nil, err
	}
	if t.End, err = decodeNullableDateValue("end_date_display", endStr); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &t, nil
}

func encodeTodateDates(t *domain.Todate) (start string, end any, err error) {
	if start, err = encodeDateValue(t.Start); err != nil {
		return "", nil, fmt.Errorf("encoding date_display: %w", err)
	}
	if end, err = nullableDateValue(t.End); err != nil {
		return "", nil, fmt.Errorf("encoding end_date_display: %w", err)
	}
	return start, end, nil
}
