package filedao

import (
	"context"
	"time"

	"github.com/haierkeys/note-capsule-service/internal/domain"
	"github.com/haierkeys/note-capsule-service/pkg/timex"
)

// unsentNoteRepository 实现 domain.UnsentNoteRepository 接口（平面文件后端）
type unsentNoteRepository struct {
	store *Store
}

// NewUnsentNoteRepository 创建 UnsentNoteRepository 实例
func NewUnsentNoteRepository(store *Store) domain.UnsentNoteRepository {
	return &unsentNoteRepository{store: store}
}

func (r *unsentNoteRepository) toDomain(m *unsentRecord) *domain.UnsentNote {
	return &domain.UnsentNote{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Time(),
	}
}

// ListAll 获取全部暂存笔记
func (r *unsentNoteRepository) ListAll(ctx context.Context) ([]*domain.UnsentNote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, err := r.store.load()
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.UnsentNote, 0, len(c.UnsentNotes))
	for _, m := range c.UnsentNotes {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// GetByID 根据 ID 获取暂存笔记
func (r *unsentNoteRepository) GetByID(ctx context.Context, id string) (*domain.UnsentNote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, err := r.store.load()
	if err != nil {
		return nil, err
	}

	for _, m := range c.UnsentNotes {
		if m.ID == id {
			return r.toDomain(m), nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create 创建暂存笔记
func (r *unsentNoteRepository) Create(ctx context.Context, note *domain.UnsentNote) (*domain.UnsentNote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, err := r.store.load()
	if err != nil {
		return nil, err
	}

	record := &unsentRecord{
		ID:        note.ID,
		Content:   note.Content,
		CreatedAt: timex.Time(time.Now()),
	}
	c.UnsentNotes = append(c.UnsentNotes, record)

	if err := r.store.save(c); err != nil {
		return nil, err
	}
	return r.toDomain(record), nil
}

// Delete 删除暂存笔记
func (r *unsentNoteRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, err := r.store.load()
	if err != nil {
		return err
	}

	for i, m := range c.UnsentNotes {
		if m.ID == id {
			c.UnsentNotes = append(c.UnsentNotes[:i], c.UnsentNotes[i+1:]...)
			return r.store.save(c)
		}
	}
	return domain.ErrNotFound
}
