package dao

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/haierkeys/note-capsule-service/global"
	"github.com/haierkeys/note-capsule-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestDao 基于临时 sqlite 库构建 Dao
func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:        "sqlite",
		Path:        filepath.Join(t.TempDir(), "capsule_test.db"),
		TablePrefix: "capsule_",
		AutoMigrate: true,
	}, zap.NewNop())
	require.NoError(t, err)
	return New(db, zap.NewNop())
}

func TestNoteRepositoryCreateAndGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{
		ID:      "dao-note-1",
		Content: "remember the lighthouse",
		Author:  domain.AnonymousAuthor,
		Email:   "keeper@example.com",
	})

	global.Dump(note)

	require.NoError(t, err)
	assert.Equal(t, "dao-note-1", note.ID)
	assert.Equal(t, "remember the lighthouse", note.Content)
	assert.False(t, note.EmailSent)
	assert.False(t, note.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, "dao-note-1")
	require.NoError(t, err)
	assert.Equal(t, note.Content, got.Content)
	assert.Equal(t, note.Email, got.Email)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoteRepositoryUpdateEmailResetsSent(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note, err := repo.Create(ctx, &domain.Note{
		ID:      "dao-note-2",
		Content: "see you next year",
		Author:  domain.AnonymousAuthor,
		Email:   "old@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetEmailSent(ctx, note.ID, true))

	// 换邮箱复位投递标记
	newEmail := "new@example.com"
	updated, err := repo.Update(ctx, note.ID, &domain.NoteUpdate{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.False(t, updated.EmailSent)

	// 相同邮箱保持标记
	require.NoError(t, repo.SetEmailSent(ctx, note.ID, true))
	updated, err = repo.Update(ctx, note.ID, &domain.NoteUpdate{Email: &newEmail})
	require.NoError(t, err)
	assert.True(t, updated.EmailSent)
}

func TestNoteRepositoryDelete(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Note{ID: "dao-note-3", Content: "gone soon", Author: domain.AnonymousAuthor})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "dao-note-3"))
	assert.ErrorIs(t, repo.Delete(ctx, "dao-note-3"), domain.ErrNotFound)
}

func TestUnsentNoteRepositoryLifecycle(t *testing.T) {
	d := newTestDao(t)
	repo := NewUnsentNoteRepository(d)
	ctx := context.Background()

	staged, err := repo.Create(ctx, &domain.UnsentNote{ID: "dao-draft-1", Content: "half a thought"})
	require.NoError(t, err)
	assert.False(t, staged.CreatedAt.IsZero())

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "half a thought", list[0].Content)

	require.NoError(t, repo.Delete(ctx, staged.ID))
	assert.ErrorIs(t, repo.Delete(ctx, staged.ID), domain.ErrNotFound)
}
