package filedao

import (
	"context"
	"time"

	"github.com/haierkeys/note-capsule-service/internal/domain"
	"github.com/haierkeys/note-capsule-service/pkg/timex"
)

// noteRepository 实现 domain.NoteRepository 接口（平面文件后端）
type noteRepository struct {
	store *Store
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(store *Store) domain.NoteRepository {
	return &noteRepository{store: store}
}

func (r *noteRepository) toDomain(m *noteRecord) *domain.Note {
	return &domain.Note{
		ID:        m.ID,
		Content:   m.Content,
		Author:    m.Author,
		Name:      m.Name,
		Email:     m.Email,
		EmailSent: m.EmailSent,
		CreatedAt: m.CreatedAt.Time(),
		UpdatedAt: m.UpdatedAt.Time(),
	}
}

// ListAll 获取全部笔记
func (r *noteRepository) ListAll(ctx context.Context) ([]*domain.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, err := r.store.load()
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(c.Notes))
	for _, m := range c.Notes {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// GetByID 根据 ID 获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, err := r.store.load()
	if err != nil {
		return nil, err
	}

	for _, m := range c.Notes {
		if m.ID == id {
			return r.toDomain(m), nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create 创建笔记，时间戳由存储层写入
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, err := r.store.load()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &noteRecord{
		ID:        note.ID,
		Content:   note.Content,
		Author:    note.Author,
		Name:      note.Name,
		Email:     note.Email,
		EmailSent: note.EmailSent,
		CreatedAt: timex.Time(now),
		UpdatedAt: timex.Time(now),
	}
	c.Notes = append(c.Notes, record)

	if err := r.store.save(c); err != nil {
		return nil, err
	}
	return r.toDomain(record), nil
}

// Update 部分更新笔记
// 邮箱地址与存量不同（含清空）时复位 EmailSent，投递承诺随目标地址一起重置
func (r *noteRepository) Update(ctx context.Context, id string, update *domain.NoteUpdate) (*domain.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, err := r.store.load()
	if err != nil {
		return nil, err
	}

	for _, m := range c.Notes {
		if m.ID != id {
			continue
		}

		if update.Content != nil {
			m.Content = *update.Content
		}
		if update.Name != nil {
			m.Name = *update.Name
		}
		if update.Email != nil && *update.Email != m.Email {
			m.Email = *update.Email
			m.EmailSent = false
		}
		m.UpdatedAt = timex.Now()

		if err := r.store.save(c); err != nil {
			return nil, err
		}
		return r.toDomain(m), nil
	}
	return nil, domain.ErrNotFound
}

// Delete 删除笔记
func (r *noteRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, err := r.store.load()
	if err != nil {
		return err
	}

	for i, m := range c.Notes {
		if m.ID == id {
			c.Notes = append(c.Notes[:i], c.Notes[i+1:]...)
			return r.store.save(c)
		}
	}
	return domain.ErrNotFound
}

// SetEmailSent 持久化投递完成标记
func (r *noteRepository) SetEmailSent(ctx context.Context, id string, sent bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, err := r.store.load()
	if err != nil {
		return err
	}

	for _, m := range c.Notes {
		if m.ID == id {
			m.EmailSent = sent
			m.UpdatedAt = timex.Now()
			return r.store.save(c)
		}
	}
	return domain.ErrNotFound
}
