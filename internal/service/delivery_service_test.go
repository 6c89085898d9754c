package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/note-capsule-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deliveryNow = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func seedNote(t *testing.T, repo *memNoteRepo, id string, email string, ageDays int, sent bool) *domain.Note {
	t.Helper()
	created := deliveryNow.Add(-time.Duration(ageDays) * 24 * time.Hour)
	note, err := repo.Create(context.Background(), &domain.Note{
		ID:        id,
		Content:   "content of " + id,
		Author:    domain.AnonymousAuthor,
		Email:     email,
		EmailSent: sent,
		CreatedAt: created,
		UpdatedAt: created,
	})
	require.NoError(t, err)
	return note
}

func newTestDelivery(repo *memNoteRepo, transport Transport) *deliveryService {
	svc := NewDeliveryService(repo, transport, testLogger(),
		WithSendInterval(0),
		WithClock(func() time.Time { return deliveryNow }),
	).(*deliveryService)
	svc.sleep = func(time.Duration) {}
	return svc
}

func TestRunOnceDeliversDueNotes(t *testing.T) {
	repo := newMemNoteRepo()
	transport := &fakeTransport{configured: true}
	svc := newTestDelivery(repo, transport)
	ctx := context.Background()

	seedNote(t, repo, "due-1", "one@example.com", 364, false)
	seedNote(t, repo, "due-2", "two@example.com", 400, false)
	seedNote(t, repo, "young", "three@example.com", 100, false)
	seedNote(t, repo, "no-email", "", 400, false)
	seedNote(t, repo, "already", "four@example.com", 400, true)

	summary, err := svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, transport.sent, 2)

	for _, id := range []string{"due-1", "due-2"} {
		note, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, note.EmailSent, id)
	}
	for _, id := range []string{"young", "no-email", "already"} {
		note, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id == "already", note.EmailSent, id)
	}
}

func TestRunOnceIsIdempotent(t *testing.T) {
	repo := newMemNoteRepo()
	transport := &fakeTransport{configured: true}
	svc := newTestDelivery(repo, transport)
	ctx := context.Background()

	seedNote(t, repo, "due", "one@example.com", 400, false)

	first, err := svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Sent)

	// 第二轮不得重复投递
	second, err := svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Sent)
	assert.Len(t, transport.sent, 1)
}

func TestRunOnceUnconfiguredSkips(t *testing.T) {
	repo := newMemNoteRepo()
	transport := &fakeTransport{configured: false}
	svc := newTestDelivery(repo, transport)
	ctx := context.Background()

	seedNote(t, repo, "due", "one@example.com", 400, false)

	summary, err := svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Sent)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, transport.sent)

	// 跳过不修改笔记状态
	note, err := repo.GetByID(ctx, "due")
	require.NoError(t, err)
	assert.False(t, note.EmailSent)
}

func TestRunOnceSendFailureKeepsNotePending(t *testing.T) {
	repo := newMemNoteRepo()
	transport := &fakeTransport{configured: true, sendErr: errSendBoom}
	svc := newTestDelivery(repo, transport)
	ctx := context.Background()

	seedNote(t, repo, "due-1", "one@example.com", 400, false)
	seedNote(t, repo, "due-2", "two@example.com", 400, false)

	summary, err := svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Sent)
	assert.Equal(t, 2, summary.Failed)

	for _, id := range []string{"due-1", "due-2"} {
		note, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, note.EmailSent, id)
	}
}

func TestRunOnceProbeFailureStillSends(t *testing.T) {
	repo := newMemNoteRepo()
	transport := &fakeTransport{configured: true, probeErr: errSendBoom}
	svc := newTestDelivery(repo, transport)

	seedNote(t, repo, "due", "one@example.com", 400, false)

	summary, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
}

func TestRunOnceListFailureAborts(t *testing.T) {
	repo := newMemNoteRepo()
	repo.listErr = errSendBoom
	svc := newTestDelivery(repo, &fakeTransport{configured: true})

	_, err := svc.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestDeliveryBodyIsDeterministic(t *testing.T) {
	note := &domain.Note{
		ID:        "n1",
		Content:   "plant the apple tree",
		Name:      "Ada",
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	first := renderDeliveryBody(note)
	second := renderDeliveryBody(note)
	assert.Equal(t, first, second)
	assert.True(t, strings.Contains(first, "Hello Ada"))
	assert.True(t, strings.Contains(first, "2025-03-01"))
	assert.True(t, strings.Contains(first, "plant the apple tree"))

	note.Name = ""
	assert.True(t, strings.HasPrefix(renderDeliveryBody(note), "Hello,"))
}

func TestStatusAggregates(t *testing.T) {
	repo := newMemNoteRepo()
	svc := newTestDelivery(repo, &fakeTransport{configured: true})
	ctx := context.Background()

	seedNote(t, repo, "pending-due", "one@example.com", 400, false)
	seedNote(t, repo, "pending-young", "two@example.com", 30, false)
	seedNote(t, repo, "sent", "three@example.com", 400, true)
	seedNote(t, repo, "no-email", "", 400, false)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Configured)
	assert.Equal(t, 4, status.Total)
	assert.Equal(t, 2, status.Pending)
	assert.Equal(t, 1, status.Sent)
	require.Len(t, status.PendingNotes, 2)

	byID := map[string]*PendingNoteDTO{}
	for _, p := range status.PendingNotes {
		byID[p.ID] = p
	}
	assert.True(t, byID["pending-due"].Due)
	assert.Equal(t, 400, byID["pending-due"].AgeDays)
	assert.False(t, byID["pending-young"].Due)
}
