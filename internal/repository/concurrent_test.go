package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/todate/internal/db"
	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// Readers listing todates while a writer inserts must only ever see
// complete rows, tags included.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	tagRepo := NewSQLiteTagRepo(database)
	todateRepo := NewSQLiteTodateRepo(database)

	tag := testutil.NewTestTag("shared")
	require.NoError(t, tagRepo.Create(ctx, tag))

	const writes = 20
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			td := testutil.NewTestTodate(fmt.Sprintf("Item-%d", i),
				testutil.WithStart(domain.MonthDate(2000+i, 1)),
				testutil.WithTags(tag),
			)
			if err := todateRepo.Create(ctx, td); err != nil {
				t.Errorf("writer: create todate %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				todates, err := todateRepo.List(ctx)
				if err != nil {
					t.Errorf("reader %d: list: %v", reader, err)
					return
				}
				for _, td := range todates {
					if td.ID == "" || td.Date == "" || td.Start.IsZero() {
						t.Errorf("reader %d: incomplete todate %+v", reader, td)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	todates, err := todateRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, todates, writes)
	for _, td := range todates {
		assert.Len(t, td.Tags, 1)
	}
}

// Transactions from several goroutines serialize on SQLite's single writer
// without losing updates or returning SQLITE_BUSY.
func TestConcurrentAccess_ParallelUnitsOfWork(t *testing.T) {
	database := newConcurrentTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				tag := testutil.NewTestTag(fmt.Sprintf("w%d", worker))
				if err := NewSQLiteTagRepo(tx).Create(ctx, tag); err != nil {
					return err
				}
				td := testutil.NewTestTodate(fmt.Sprintf("Worker-%d", worker), testutil.WithTags(tag))
				return NewSQLiteTodateRepo(tx).Create(ctx, td)
			})
			if err != nil {
				t.Errorf("worker %d: %v", worker, err)
			}
		}(w)
	}
	wg.Wait()

	todates, err := NewSQLiteTodateRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Len(t, todates, workers)
}

// Foreign keys hold on every pooled connection, not just the first one.
func TestConcurrentAccess_TagDeleteCascadesOnAnyConnection(t *testing.T) {
	database := newConcurrentTestDB(t)
	database.SetMaxIdleConns(4)
	ctx := context.Background()

	tagRepo := NewSQLiteTagRepo(database)
	todateRepo := NewSQLiteTodateRepo(database)

	// Hold a few connections open so later statements run on fresh ones.
	var conns []*sql.Conn
	for i := 0; i < 3; i++ {
		c, err := database.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, c)
	}

	tag := testutil.NewTestTag("gone")
	require.NoError(t, tagRepo.Create(ctx, tag))
	td := testutil.NewTestTodate("Keeps going", testutil.WithTags(tag))
	require.NoError(t, todateRepo.Create(ctx, td))

	for _, c := range conns {
		var fk int
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
		assert.Equal(t, 1, fk)
		require.NoError(t, c.Close())
	}

	require.NoError(t, tagRepo.Delete(ctx, tag.ID))
	fetched, err := todateRepo.GetByID(ctx, td.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Tags)
}
