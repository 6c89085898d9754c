package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/haierkeys/note-capsule-service/internal/domain"
	"github.com/haierkeys/note-capsule-service/internal/dto"
	pkgapp "github.com/haierkeys/note-capsule-service/pkg/app"
	"github.com/haierkeys/note-capsule-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteServiceCreate(t *testing.T) {
	repo := newMemNoteRepo()
	svc := NewNoteService(repo, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.NoteCreateRequest{
		Content: "remember the garden",
		Name:    "Ada",
		Email:   "ada@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "remember the garden", created.Content)
	assert.Equal(t, domain.AnonymousAuthor, created.Author)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.False(t, created.EmailSent)

	got, err := svc.Get(ctx, &dto.NoteGetRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestNoteServiceCreateRejectsEmptyContent(t *testing.T) {
	svc := NewNoteService(newMemNoteRepo(), testLogger())

	_, err := svc.Create(context.Background(), &dto.NoteCreateRequest{Content: "   "})
	assert.ErrorIs(t, err, code.ErrorEmptyContent)
}

func TestNoteServiceCreateRejectsInvalidEmail(t *testing.T) {
	repo := newMemNoteRepo()
	svc := NewNoteService(repo, testLogger())

	_, err := svc.Create(context.Background(), &dto.NoteCreateRequest{
		Content: "valid content",
		Email:   "not-an-address",
	})
	assert.ErrorIs(t, err, code.ErrorInvalidEmail)

	// 非法请求不得落库
	list, count, err := svc.List(context.Background(), &pkgapp.Pager{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, count)
}

func TestNoteServiceListPagination(t *testing.T) {
	repo := newMemNoteRepo()
	svc := NewNoteService(repo, testLogger())
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, &domain.Note{
			ID:        fmt.Sprintf("n-%d", i),
			Content:   fmt.Sprintf("note %d", i),
			Author:    domain.AnonymousAuthor,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	// 第二页取第 3、4 条, 总数不受分页影响
	list, count, err := svc.List(ctx, &pkgapp.Pager{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	require.Len(t, list, 2)
	assert.Equal(t, "note 2", list[0].Content)
	assert.Equal(t, "note 3", list[1].Content)

	// 末页不足一整页
	list, count, err = svc.List(ctx, &pkgapp.Pager{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	require.Len(t, list, 1)
	assert.Equal(t, "note 4", list[0].Content)

	// 超出范围的页码返回空列表
	list, count, err = svc.List(ctx, &pkgapp.Pager{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Empty(t, list)
}

func TestNoteServiceUpdateEmailChangeResetsSentFlag(t *testing.T) {
	repo := newMemNoteRepo()
	svc := NewNoteService(repo, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.NoteCreateRequest{
		Content: "hello future",
		Email:   "old@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetEmailSent(ctx, created.ID, true))

	newEmail := "new@example.com"
	updated, err := svc.Update(ctx, &dto.NoteUpdateRequest{ID: created.ID, Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.False(t, updated.EmailSent)

	// 相同邮箱不重置
	require.NoError(t, repo.SetEmailSent(ctx, created.ID, true))
	updated, err = svc.Update(ctx, &dto.NoteUpdateRequest{ID: created.ID, Email: &newEmail})
	require.NoError(t, err)
	assert.True(t, updated.EmailSent)
}

func TestNoteServiceUpdateTrimsContent(t *testing.T) {
	repo := newMemNoteRepo()
	svc := NewNoteService(repo, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.NoteCreateRequest{Content: "first draft"})
	require.NoError(t, err)

	// 更新与创建一致, 落库前去除首尾空白
	newContent := "  second draft\n"
	updated, err := svc.Update(ctx, &dto.NoteUpdateRequest{ID: created.ID, Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Content)

	got, err := svc.Get(ctx, &dto.NoteGetRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "second draft", got.Content)

	onlySpace := " \t "
	_, err = svc.Update(ctx, &dto.NoteUpdateRequest{ID: created.ID, Content: &onlySpace})
	assert.ErrorIs(t, err, code.ErrorEmptyContent)
}

func TestNoteServiceGetMissing(t *testing.T) {
	svc := NewNoteService(newMemNoteRepo(), testLogger())

	_, err := svc.Get(context.Background(), &dto.NoteGetRequest{ID: "nope"})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteServiceDelete(t *testing.T) {
	repo := newMemNoteRepo()
	svc := NewNoteService(repo, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.NoteCreateRequest{Content: "short lived"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, &dto.NoteDeleteRequest{ID: created.ID}))
	assert.ErrorIs(t, svc.Delete(ctx, &dto.NoteDeleteRequest{ID: created.ID}), code.ErrorNoteNotFound)
}

func TestUnsentNoteServicePromote(t *testing.T) {
	noteRepo := newMemNoteRepo()
	unsentRepo := newMemUnsentRepo()
	svc := NewUnsentNoteService(unsentRepo, noteRepo, testLogger())
	ctx := context.Background()

	staged, err := svc.Stage(ctx, &dto.UnsentNoteCreateRequest{Content: "draft thought"})
	require.NoError(t, err)

	promoted, err := svc.Send(ctx, &dto.UnsentNoteSendRequest{ID: staged.ID})
	require.NoError(t, err)
	assert.Equal(t, "draft thought", promoted.Content)
	assert.Empty(t, promoted.Email)
	assert.Empty(t, promoted.Name)

	// 暂存记录已被清理
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// 正式笔记存在
	notes, err := noteRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, promoted.ID, notes[0].ID)
}

func TestUnsentNoteServiceSendCleanupFailure(t *testing.T) {
	noteRepo := newMemNoteRepo()
	mem := newMemUnsentRepo()
	unsentRepo := &failDeleteUnsentRepo{memUnsentRepo: mem, deleteErr: domain.ErrStoreUnavailable}
	svc := NewUnsentNoteService(unsentRepo, noteRepo, testLogger())
	ctx := context.Background()

	staged, err := svc.Stage(ctx, &dto.UnsentNoteCreateRequest{Content: "sticky draft"})
	require.NoError(t, err)

	// 暂存清理失败不回滚已创建的正式笔记
	promoted, err := svc.Send(ctx, &dto.UnsentNoteSendRequest{ID: staged.ID})
	require.NoError(t, err)
	assert.Equal(t, "sticky draft", promoted.Content)

	notes, err := noteRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, promoted.ID, notes[0].ID)

	// 草稿残留可见, 留待人工丢弃
	drafts, err := mem.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestUnsentNoteServiceSendMissing(t *testing.T) {
	svc := NewUnsentNoteService(newMemUnsentRepo(), newMemNoteRepo(), testLogger())

	_, err := svc.Send(context.Background(), &dto.UnsentNoteSendRequest{ID: "gone"})
	assert.ErrorIs(t, err, code.ErrorUnsentNoteNotFound)
}

func TestUnsentNoteServiceDiscard(t *testing.T) {
	svc := NewUnsentNoteService(newMemUnsentRepo(), newMemNoteRepo(), testLogger())
	ctx := context.Background()

	staged, err := svc.Stage(ctx, &dto.UnsentNoteCreateRequest{Content: "never mind"})
	require.NoError(t, err)

	require.NoError(t, svc.Discard(ctx, &dto.UnsentNoteDiscardRequest{ID: staged.ID}))
	assert.ErrorIs(t, svc.Discard(ctx, &dto.UnsentNoteDiscardRequest{ID: staged.ID}), code.ErrorUnsentNoteNotFound)
}
