package service

import (
	"context"
	"strings"

	"github.com/haierkeys/note-capsule-service/internal/domain"
	"github.com/haierkeys/note-capsule-service/internal/dto"
	"github.com/haierkeys/note-capsule-service/pkg/code"
	"github.com/haierkeys/note-capsule-service/pkg/timex"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UnsentNoteService 定义暂存笔记业务服务接口
type UnsentNoteService interface {
	// Stage 暂存一条笔记草稿
	Stage(ctx context.Context, params *dto.UnsentNoteCreateRequest) (*UnsentNoteDTO, error)

	// List 获取全部暂存笔记
	List(ctx context.Context) ([]*UnsentNoteDTO, error)

	// Send 将暂存笔记提升为正式笔记并删除暂存记录
	Send(ctx context.Context, params *dto.UnsentNoteSendRequest) (*NoteDTO, error)

	// Discard 丢弃暂存笔记
	Discard(ctx context.Context, params *dto.UnsentNoteDiscardRequest) error
}

// UnsentNoteDTO 暂存笔记数据传输对象
type UnsentNoteDTO struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	CreatedAt timex.Time `json:"createdAt"`
}

type unsentNoteService struct {
	unsentRepo domain.UnsentNoteRepository
	noteRepo   domain.NoteRepository
	logger     *zap.Logger
}

// NewUnsentNoteService 创建 UnsentNoteService 实例
func NewUnsentNoteService(unsentRepo domain.UnsentNoteRepository, noteRepo domain.NoteRepository, lg *zap.Logger) UnsentNoteService {
	return &unsentNoteService{unsentRepo: unsentRepo, noteRepo: noteRepo, logger: lg}
}

func toUnsentDTO(n *domain.UnsentNote) *UnsentNoteDTO {
	if n == nil {
		return nil
	}
	return &UnsentNoteDTO{
		ID:        n.ID,
		Content:   n.Content,
		CreatedAt: timex.Time(n.CreatedAt),
	}
}

func (s *unsentNoteService) Stage(ctx context.Context, params *dto.UnsentNoteCreateRequest) (*UnsentNoteDTO, error) {
	content := strings.TrimSpace(params.Content)
	if content == "" {
		return nil, code.ErrorEmptyContent
	}

	staged, err := s.unsentRepo.Create(ctx, &domain.UnsentNote{
		ID:      uuid.NewString(),
		Content: content,
	})
	if err != nil {
		return nil, mapStoreErr(err, code.ErrorUnsentNoteNotFound)
	}
	return toUnsentDTO(staged), nil
}

func (s *unsentNoteService) List(ctx context.Context) ([]*UnsentNoteDTO, error) {
	notes, err := s.unsentRepo.ListAll(ctx)
	if err != nil {
		return nil, mapStoreErr(err, code.ErrorUnsentNoteNotFound)
	}
	list := make([]*UnsentNoteDTO, 0, len(notes))
	for _, n := range notes {
		list = append(list, toUnsentDTO(n))
	}
	return list, nil
}

// Send 提升流程: 暂存记录必须存在, 正式笔记落库后再清理暂存
func (s *unsentNoteService) Send(ctx context.Context, params *dto.UnsentNoteSendRequest) (*NoteDTO, error) {
	staged, err := s.unsentRepo.GetByID(ctx, params.ID)
	if err != nil {
		return nil, mapStoreErr(err, code.ErrorUnsentNoteNotFound)
	}

	note := &domain.Note{
		ID:      uuid.NewString(),
		Content: staged.Content,
		Author:  domain.AnonymousAuthor,
	}
	created, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, mapStoreErr(err, code.ErrorNoteNotFound)
	}

	if err := s.unsentRepo.Delete(ctx, staged.ID); err != nil {
		// 正式笔记已创建, 暂存清理失败只记录不回滚
		s.logger.Warn("promoted note staged copy cleanup failed",
			zap.String("unsentNoteId", staged.ID),
			zap.String("noteId", created.ID),
			zap.Error(err))
	}

	s.logger.Info("unsent note promoted",
		zap.String("unsentNoteId", staged.ID),
		zap.String("noteId", created.ID))

	return toDTO(created), nil
}

func (s *unsentNoteService) Discard(ctx context.Context, params *dto.UnsentNoteDiscardRequest) error {
	if err := s.unsentRepo.Delete(ctx, params.ID); err != nil {
		return mapStoreErr(err, code.ErrorUnsentNoteNotFound)
	}
	return nil
}
