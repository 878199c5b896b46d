package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/todate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTagRepo(db)
	ctx := context.Background()

	tag := testutil.NewTestTag("Family", testutil.WithTagColor("#ff8800"))
	require.NoError(t, repo.Create(ctx, tag))

	fetched, err := repo.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, tag, fetched)

	byName, err := repo.GetByName(ctx, tag.Name)
	require.NoError(t, err)
	assert.Equal(t, tag.ID, byName.ID)
}

func TestTagRepo_GetByName_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTagRepo(db)
	ctx := context.Background()

	tag := testutil.NewTestTag("Travel")
	require.NoError(t, repo.Create(ctx, tag))

	fetched, err := repo.GetByName(ctx, "TRAVEL"+tag.Name[len("Travel"):])
	require.NoError(t, err)
	assert.Equal(t, tag.ID, fetched.ID)
}

func TestTagRepo_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTagRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByName(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nonexistent"), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, testutil.NewTestTag("x")), ErrNotFound)
}

func TestTagRepo_DuplicateNameRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTagRepo(db)
	ctx := context.Background()

	a := testutil.NewTestTag("Work")
	require.NoError(t, repo.Create(ctx, a))
	b := testutil.NewTestTag("Work")
	b.Name = a.Name
	assert.Error(t, repo.Create(ctx, b))
}

func TestTagRepo_ListSortedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTagRepo(db)
	ctx := context.Background()

	for _, name := range []string{"zoo", "Alpha", "middle"} {
		tag := testutil.NewTestTag(name)
		tag.Name = name
		require.NoError(t, repo.Create(ctx, tag))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "middle", list[1].Name)
	assert.Equal(t, "zoo", list[2].Name)
}

func TestTagRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTagRepo(db)
	ctx := context.Background()

	tag := testutil.NewTestTag("Old")
	require.NoError(t, repo.Create(ctx, tag))

	tag.Name = "New"
	tag.Color = "#000000"
	require.NoError(t, repo.Update(ctx, tag))

	fetched, err := repo.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", fetched.Name)
	assert.Equal(t, "#000000", fetched.Color)

	require.NoError(t, repo.Delete(ctx, tag.ID))
	_, err = repo.GetByID(ctx, tag.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
