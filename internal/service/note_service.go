// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/haierkeys/note-capsule-service/internal/domain"
	"github.com/haierkeys/note-capsule-service/internal/dto"
	"github.com/haierkeys/note-capsule-service/pkg/app"
	"github.com/haierkeys/note-capsule-service/pkg/code"
	"github.com/haierkeys/note-capsule-service/pkg/timex"
	"github.com/haierkeys/note-capsule-service/pkg/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Get 获取单条笔记
	Get(ctx context.Context, params *dto.NoteGetRequest) (*NoteDTO, error)

	// List 获取笔记列表, 按创建时间正序分页, 返回本页数据与总条数
	List(ctx context.Context, pager *app.Pager) ([]*NoteDTO, int, error)

	// Create 创建笔记
	Create(ctx context.Context, params *dto.NoteCreateRequest) (*NoteDTO, error)

	// Update 更新笔记
	Update(ctx context.Context, params *dto.NoteUpdateRequest) (*NoteDTO, error)

	// Delete 删除笔记
	Delete(ctx context.Context, params *dto.NoteDeleteRequest) error
}

// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Author    string     `json:"author"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	EmailSent bool       `json:"emailSent"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// noteService NoteService 默认实现
type noteService struct {
	noteRepo domain.NoteRepository
	logger   *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, lg *zap.Logger) NoteService {
	return &noteService{noteRepo: noteRepo, logger: lg}
}

// toDTO 将领域模型转换为 DTO
func toDTO(n *domain.Note) *NoteDTO {
	if n == nil {
		return nil
	}
	return &NoteDTO{
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

// mapStoreErr 将仓储错误映射为业务错误码
func mapStoreErr(err error, notFound *code.Code) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return notFound
	}
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return code.ErrorStoreUnavailable.WithDetails(err.Error())
	}
	return err
}

func (s *noteService) Get(ctx context.Context, params *dto.NoteGetRequest) (*NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, params.ID)
	if err != nil {
		return nil, mapStoreErr(err, code.ErrorNoteNotFound)
	}
	return toDTO(note), nil
}

func (s *noteService) List(ctx context.Context, pager *app.Pager) ([]*NoteDTO, int, error) {
	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		return nil, 0, mapStoreErr(err, code.ErrorNoteNotFound)
	}

	count := len(notes)
	offset := app.GetPageOffset(pager.Page, pager.PageSize)
	if offset > count {
		offset = count
	}
	end := offset + pager.PageSize
	if pager.PageSize <= 0 || end > count {
		end = count
	}

	list := make([]*NoteDTO, 0, end-offset)
	for _, n := range notes[offset:end] {
		list = append(list, toDTO(n))
	}
	return list, count, nil
}

func (s *noteService) Create(ctx context.Context, params *dto.NoteCreateRequest) (*NoteDTO, error) {
	content := strings.TrimSpace(params.Content)
	if content == "" {
		return nil, code.ErrorEmptyContent
	}
	// 非法邮箱立即拒绝，永不落库
	if params.Email != "" && !util.IsValidEmail(params.Email) {
		return nil, code.ErrorInvalidEmail
	}

	author := strings.TrimSpace(params.Author)
	if author == "" {
		author = domain.AnonymousAuthor
	}

	note := &domain.Note{
		ID:      uuid.NewString(),
		Content: content,
		Author:  author,
		Name:    strings.TrimSpace(params.Name),
		Email:   params.Email,
	}

	created, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, mapStoreErr(err, code.ErrorNoteNotFound)
	}

	s.logger.Info("note created",
		zap.String("noteId", created.ID),
		zap.Bool("hasEmail", created.HasEmail()))

	return toDTO(created), nil
}

func (s *noteService) Update(ctx context.Context, params *dto.NoteUpdateRequest) (*NoteDTO, error) {
	var content *string
	if params.Content != nil {
		trimmed := strings.TrimSpace(*params.Content)
		if trimmed == "" {
			return nil, code.ErrorEmptyContent
		}
		content = &trimmed
	}
	if params.Email != nil && *params.Email != "" && !util.IsValidEmail(*params.Email) {
		return nil, code.ErrorInvalidEmail
	}

	update := &domain.NoteUpdate{
		Content: content,
		Name:    params.Name,
		Email:   params.Email,
	}

	updated, err := s.noteRepo.Update(ctx, params.ID, update)
	if err != nil {
		return nil, mapStoreErr(err, code.ErrorNoteNotFound)
	}
	return toDTO(updated), nil
}

func (s *noteService) Delete(ctx context.Context, params *dto.NoteDeleteRequest) error {
	if err := s.noteRepo.Delete(ctx, params.ID); err != nil {
		return mapStoreErr(err, code.ErrorNoteNotFound)
	}
	s.logger.Info("note deleted", zap.String("noteId", params.ID))
	return nil
}
