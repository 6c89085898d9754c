package dao

import (
	"context"
	"time"

	"github.com/haierkeys/note-capsule-service/internal/domain"
	"github.com/haierkeys/note-capsule-service/internal/model"
	"github.com/haierkeys/note-capsule-service/pkg/timex"
)

// unsentNoteRepository 实现 domain.UnsentNoteRepository 接口（关系型后端）
type unsentNoteRepository struct {
	dao *Dao
}

// NewUnsentNoteRepository 创建 UnsentNoteRepository 实例
func NewUnsentNoteRepository(dao *Dao) domain.UnsentNoteRepository {
	return &unsentNoteRepository{dao: dao}
}

func (r *unsentNoteRepository) toDomain(m *model.UnsentNote) *domain.UnsentNote {
	if m == nil {
		return nil
	}
	return &domain.UnsentNote{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Time(),
	}
}

// ListAll 获取全部暂存笔记
func (r *unsentNoteRepository) ListAll(ctx context.Context) ([]*domain.UnsentNote, error) {
	var rows []*model.UnsentNote
	if err := r.dao.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	notes := make([]*domain.UnsentNote, 0, len(rows))
	for _, m := range rows {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// GetByID 根据 ID 获取暂存笔记
func (r *unsentNoteRepository) GetByID(ctx context.Context, id string) (*domain.UnsentNote, error) {
	var m model.UnsentNote
	if err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, storeErr(err)
	}
	return r.toDomain(&m), nil
}

// Create 创建暂存笔记
func (r *unsentNoteRepository) Create(ctx context.Context, note *domain.UnsentNote) (*domain.UnsentNote, error) {
	note.CreatedAt = time.Now()
	m := &model.UnsentNote{
		ID:        note.ID,
		Content:   note.Content,
		CreatedAt: timex.Time(note.CreatedAt),
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, storeErr(err)
	}
	return r.toDomain(m), nil
}

// Delete 删除暂存笔记
func (r *unsentNoteRepository) Delete(ctx context.Context, id string) error {
	result := r.dao.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UnsentNote{})
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
