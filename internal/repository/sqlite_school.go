package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/todate/internal/db"
	"github.com/alexanderramin/todate/internal/domain"
)

// SQLiteSchoolCalendarRepo implements SchoolCalendarRepo using a SQLite database.
type SQLiteSchoolCalendarRepo struct {
	db db.DBTX
}

func NewSQLiteSchoolCalendarRepo(conn db.DBTX) *SQLiteSchoolCalendarRepo {
	return &SQLiteSchoolCalendarRepo{db: conn}
}

func (r *SQLiteSchoolCalendarRepo) Get(ctx context.Context) (*domain.SchoolCalendar, error) {
	query := `SELECT reference_year, start_month, start_day, period_type,
		repeated_grades, gap_years, skipped_grades, updated_at
		FROM school_calendar WHERE id = 'default'`

	var c domain.SchoolCalendar
	var periodType, repeated, gaps, skipped, updatedAt string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&c.ReferenceYear, &c.StartMonth, &c.StartDay, &periodType,
		&repeated, &gaps, &skipped, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("school calendar: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning school calendar: %w", err)
	}

	c.PeriodType = domain.PeriodType(periodType)
	if c.RepeatedGrades, err = decodeGrades("repeated_grades", repeated); err != nil {
		return nil, err
	}
	if c.GapYears, err = decodeGrades("gap_years", gaps); err != nil {
		return nil, err
	}
	if c.SkippedGrades, err = decodeGrades("skipped_grades", skipped); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert normalizes c before writing it.
func (r *SQLiteSchoolCalendarRepo) Upsert(ctx context.Context, c *domain.SchoolCalendar) error {
	c.Normalize()
	repeated, err := encodeGrades(c.RepeatedGrades)
	if err != nil {
		return fmt.Errorf("encoding repeated_grades: %w", err)
	}
	gaps, err := encodeGrades(c.GapYears)
	if err != nil {
		return fmt.Errorf("encoding gap_years: %w", err)
	}
	skipped, err := encodeGrades(c.SkippedGrades)
	if err != nil {
		return fmt.Errorf("encoding skipped_grades: %w", err)
	}

	query := `INSERT OR REPLACE INTO school_calendar (id, reference_year, start_month, start_day,
		period_type, repeated_grades, gap_years, skipped_grades, updated_at)
		VALUES ('default', ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		c.ReferenceYear,
		c.StartMonth,
		c.StartDay,
		string(c.PeriodType),
		repeated,
		gaps,
		skipped,
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting school calendar: %w", err)
	}
	return nil
}

func (r *SQLiteSchoolCalendarRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM school_calendar WHERE id = 'default'`); err != nil {
		return fmt.Errorf("deleting school calendar: %w", err)
	}
	return nil
}
