package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/haierkeys/note-capsule-service/internal/domain"
	"github.com/haierkeys/note-capsule-service/internal/mailer"

	"go.uber.org/zap"
)

// memNoteRepo 内存版 NoteRepository, 测试用
type memNoteRepo struct {
	mu      sync.Mutex
	notes   map[string]*domain.Note
	listErr error
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{notes: make(map[string]*domain.Note)}
}

func (r *memNoteRepo) clone(n *domain.Note) *domain.Note {
	c := *n
	return &c
}

func (r *memNoteRepo) ListAll(ctx context.Context) ([]*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	list := make([]*domain.Note, 0, len(r.notes))
	for _, n := range r.notes {
		list = append(list, r.clone(n))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *memNoteRepo) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.clone(n), nil
}

func (r *memNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.clone(note)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
		c.UpdatedAt = c.CreatedAt
	}
	r.notes[c.ID] = c
	return r.clone(c), nil
}

func (r *memNoteRepo) Update(ctx context.Context, id string, update *domain.NoteUpdate) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if update.Content != nil {
		n.Content = *update.Content
	}
	if update.Name != nil {
		n.Name = *update.Name
	}
	if update.Email != nil && *update.Email != n.Email {
		n.Email = *update.Email
		n.EmailSent = false
	}
	n.UpdatedAt = time.Now()
	return r.clone(n), nil
}

func (r *memNoteRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *memNoteRepo) SetEmailSent(ctx context.Context, id string, sent bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok {
		return domain.ErrNotFound
	}
	n.EmailSent = sent
	return nil
}

// memUnsentRepo 内存版 UnsentNoteRepository, 测试用
type memUnsentRepo struct {
	mu    sync.Mutex
	notes map[string]*domain.UnsentNote
}

func newMemUnsentRepo() *memUnsentRepo {
	return &memUnsentRepo{notes: make(map[string]*domain.UnsentNote)}
}

func (r *memUnsentRepo) ListAll(ctx context.Context) ([]*domain.UnsentNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*domain.UnsentNote, 0, len(r.notes))
	for _, n := range r.notes {
		c := *n
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *memUnsentRepo) GetByID(ctx context.Context, id string) (*domain.UnsentNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *n
	return &c, nil
}

func (r *memUnsentRepo) Create(ctx context.Context, note *domain.UnsentNote) (*domain.UnsentNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *note
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.notes[c.ID] = &c
	out := c
	return &out, nil
}

func (r *memUnsentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

// failDeleteUnsentRepo 删除永远失败的暂存仓储, 测试用
type failDeleteUnsentRepo struct {
	*memUnsentRepo
	deleteErr error
}

func (r *failDeleteUnsentRepo) Delete(ctx context.Context, id string) error {
	return r.deleteErr
}

// fakeTransport 可编程投递通道, 测试用
type fakeTransport struct {
	configured bool
	probeErr   error
	sendErr    error
	sent       []*mailer.Message
}

func (t *fakeTransport) IsConfigured() bool { return t.configured }

func (t *fakeTransport) Probe() error { return t.probeErr }

func (t *fakeTransport) Send(m *mailer.Message) error {
	if t.sendErr != nil {
		return t.sendErr
	}
	t.sent = append(t.sent, m)
	return nil
}

var errSendBoom = errors.New("smtp connection reset")

func testLogger() *zap.Logger { return zap.NewNop() }
