package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/todate/internal/db"
)

// FailingExecUoW runs work in a real transaction but makes one write fail:
// the FailOn-th ExecContext whose statement contains Match (every statement
// when Match is empty). Reads are never counted.
type FailingExecUoW struct {
	DB     *sql.DB
	Match  string
	FailOn int32
	Err    error

	attempts atomic.Int32
}

// Attempts returns how many matching writes were seen across all transactions.
func (u *FailingExecUoW) Attempts() int { return int(u.attempts.Load()) }

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingExec{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingExec struct {
	db.DBTX
	uow *FailingExecUoW
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.uow.Match) {
		if f.uow.attempts.Add(1) == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
