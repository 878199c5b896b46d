package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/todate/internal/db"
	"github.com/alexanderramin/todate/internal/domain"
)

// SQLiteTagRepo implements TagRepo using a SQLite database.
type SQLiteTagRepo struct {
	db db.DBTX
}

func NewSQLiteTagRepo(conn db.DBTX) *SQLiteTagRepo {
	return &SQLiteTagRepo{db: conn}
}

const tagColumns = `id, name, color`

func (r *SQLiteTagRepo) Create(ctx context.Context, t *domain.Tag) error {
	now := formatTime(time.Now())
	query := `INSERT INTO tags (id, name, color, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Color, now, now); err != nil {
		return fmt.Errorf("inserting tag: %w", err)
	}
	return nil
}

func (r *SQLiteTagRepo) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)
	return scanTag(row)
}

// GetByName matches case-insensitively.
func (r *SQLiteTagRepo) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE name = ? COLLATE NOCASE`, name)
	return scanTag(row)
}

func (r *SQLiteTagRepo) List(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

func (r *SQLiteTagRepo) Update(ctx context.Context, t *domain.Tag) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tags SET name = ?, color = ?, updated_at = ? WHERE id = ?`,
		t.Name, t.Color, formatTime(time.Now()), t.ID)
	if err != nil {
		return fmt.Errorf("updating tag: %w", err)
	}
	return requireAffected(res, "tag")
}

// Delete removes the tag and, through the foreign key cascade, its links.
func (r *SQLiteTagRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return requireAffected(res, "tag")
}

func scanTag(row *sql.Row) (*domain.Tag, error) {
	var t domain.Tag
	if err := row.Scan(&t.ID, &t.Name, &t.Color); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tag: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	return &t, nil
}
