// Package dao 实现数据访问层
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haierkeys/note-capsule-service/internal/domain"
	"github.com/haierkeys/note-capsule-service/internal/model"
	"github.com/haierkeys/note-capsule-service/pkg/timex"

	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口（关系型后端）
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// storeErr 将 GORM 错误映射为领域错误
func storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
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

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(n *domain.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		ID:        n.ID,
		Content:   n.Content,
		Author:    n.Author,
		Name:      n.Name,
		Email:     n.Email,
		EmailSent: n.EmailSent,
		CreatedAt: timex.Time(n.CreatedAt),
		UpdatedAt: timex.Time(n.UpdatedAt),
	}
}

// ListAll 获取全部笔记
func (r *noteRepository) ListAll(ctx context.Context) ([]*domain.Note, error) {
	var rows []*model.Note
	if err := r.dao.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	notes := make([]*domain.Note, 0, len(rows))
	for _, m := range rows {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// GetByID 根据 ID 获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	var m model.Note
	if err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, storeErr(err)
	}
	return r.toDomain(&m), nil
}

// Create 创建笔记，时间戳由存储层写入
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	m := r.toModel(note)
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, storeErr(err)
	}
	return r.toDomain(m), nil
}

// Update 部分更新笔记
// 邮箱地址与存量不同（含清空）时复位 EmailSent，投递承诺随目标地址一起重置
func (r *noteRepository) Update(ctx context.Context, id string, update *domain.NoteUpdate) (*domain.Note, error) {
	var m model.Note
	if err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, storeErr(err)
	}

	values := map[string]interface{}{
		"updated_at": timex.Now(),
	}
	if update.Content != nil {
		values["content"] = *update.Content
	}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Email != nil && *update.Email != m.Email {
		values["email"] = *update.Email
		values["email_sent"] = false
	}

	if err := r.dao.db.WithContext(ctx).Model(&model.Note{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, storeErr(err)
	}

	return r.GetByID(ctx, id)
}

// Delete 删除笔记
func (r *noteRepository) Delete(ctx context.Context, id string) error {
	result := r.dao.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{})
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetEmailSent 持久化投递完成标记
func (r *noteRepository) SetEmailSent(ctx context.Context, id string, sent bool) error {
	result := r.dao.db.WithContext(ctx).Model(&model.Note{}).Where("id = ?", id).Updates(map[string]interface{}{
		"email_sent": sent,
		"updated_at": timex.Now(),
	})
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
