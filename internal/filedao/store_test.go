package filedao

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/haierkeys/note-capsule-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "notes.yaml"))
	require.NoError(t, err)
	return store
}

func TestNoteRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestStore(t))

	created, err := repo.Create(ctx, &domain.Note{
		ID:      "n1",
		Content: "hello future",
		Author:  domain.AnonymousAuthor,
		Email:   "me@example.com",
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.EmailSent)

	got, err := repo.GetByID(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "hello future", got.Content)
	assert.Equal(t, "me@example.com", got.Email)
}

func TestNoteRepository_GetMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestStore(t))

	_, err := repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestNoteRepository_UpdateResetsEmailSent(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestStore(t))

	_, err := repo.Create(ctx, &domain.Note{ID: "n1", Content: "c", Email: "old@example.com"})
	require.NoError(t, err)
	require.NoError(t, repo.SetEmailSent(ctx, "n1", true))

	// 邮箱变化必须复位投递标记
	newEmail := "new@example.com"
	updated, err := repo.Update(ctx, "n1", &domain.NoteUpdate{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.False(t, updated.EmailSent)
}

func TestNoteRepository_UpdateSameEmailKeepsFlag(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestStore(t))

	_, err := repo.Create(ctx, &domain.Note{ID: "n1", Content: "c", Email: "same@example.com"})
	require.NoError(t, err)
	require.NoError(t, repo.SetEmailSent(ctx, "n1", true))

	sameEmail := "same@example.com"
	content := "edited"
	updated, err := repo.Update(ctx, "n1", &domain.NoteUpdate{Email: &sameEmail, Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.True(t, updated.EmailSent)
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestStore(t))

	_, err := repo.Create(ctx, &domain.Note{ID: "n1", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "n1"))
	assert.True(t, errors.Is(repo.Delete(ctx, "n1"), domain.ErrNotFound))
}

func TestNoteRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.yaml")

	store, err := NewStore(path)
	require.NoError(t, err)
	_, err = NewNoteRepository(store).Create(ctx, &domain.Note{ID: "n1", Content: "persisted"})
	require.NoError(t, err)

	// 重新打开同一文件
	reopened, err := NewStore(path)
	require.NoError(t, err)
	got, err := NewNoteRepository(reopened).GetByID(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Content)
}

func TestUnsentNoteRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewUnsentNoteRepository(store)

	_, err := repo.Create(ctx, &domain.UnsentNote{ID: "u1", Content: "draft"})
	require.NoError(t, err)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "draft", list[0].Content)

	require.NoError(t, repo.Delete(ctx, "u1"))

	list, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_SharedFileKeepsCollectionsSeparate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	notes := NewNoteRepository(store)
	unsent := NewUnsentNoteRepository(store)

	_, err := notes.Create(ctx, &domain.Note{ID: "n1", Content: "note"})
	require.NoError(t, err)
	_, err = unsent.Create(ctx, &domain.UnsentNote{ID: "u1", Content: "draft"})
	require.NoError(t, err)

	noteList, err := notes.ListAll(ctx)
	require.NoError(t, err)
	unsentList, err := unsent.ListAll(ctx)
	require.NoError(t, err)

	assert.Len(t, noteList, 1)
	assert.Len(t, unsentList, 1)
}
