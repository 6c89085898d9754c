package service

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/note-capsule-service/internal/domain"
	"github.com/haierkeys/note-capsule-service/internal/mailer"
	"github.com/haierkeys/note-capsule-service/pkg/code"

	"go.uber.org/zap"
)

// DispatchOutcome 单条投递结果
type DispatchOutcome string

const (
	// OutcomeSent 邮件已成功投递
	OutcomeSent DispatchOutcome = "sent"
	// OutcomeSkipped 投递通道未配置, 本条跳过
	OutcomeSkipped DispatchOutcome = "skipped"
	// OutcomeFailed 投递失败, 笔记状态保持不变
	OutcomeFailed DispatchOutcome = "failed"
)

// Transport 投递通道抽象, 由 mailer 实现
type Transport interface {
	IsConfigured() bool
	Probe() error
	Send(m *mailer.Message) error
}

// DeliveryService 定义时间胶囊投递服务接口
type DeliveryService interface {
	// Dispatch 尝试投递单条笔记
	Dispatch(ctx context.Context, note *domain.Note) (DispatchOutcome, error)

	// RunOnce 执行一轮完整投递检查
	RunOnce(ctx context.Context) (*RunSummary, error)

	// Status 汇总投递状态
	Status(ctx context.Context) (*CapsuleStatusDTO, error)
}

// RunSummary 单轮投递检查汇总
type RunSummary struct {
	Checked int `json:"checked"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// CapsuleStatusDTO 投递状态汇总
type CapsuleStatusDTO struct {
	Configured   bool              `json:"configured"`
	Total        int               `json:"total"`
	Pending      int               `json:"pending"`
	Sent         int               `json:"sent"`
	PendingNotes []*PendingNoteDTO `json:"pendingNotes"`
}

// PendingNoteDTO 待投递笔记摘要
type PendingNoteDTO struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	AgeDays int    `json:"ageDays"`
	Due     bool   `json:"due"`
}

// DeliveryOption 投递服务可选参数
type DeliveryOption func(*deliveryService)

// WithSendInterval 设置两次投递之间的间隔
func WithSendInterval(d time.Duration) DeliveryOption {
	return func(s *deliveryService) {
		s.sendInterval = d
	}
}

// WithDeliveryWait 覆盖投递等待窗口
func WithDeliveryWait(d time.Duration) DeliveryOption {
	return func(s *deliveryService) {
		s.wait = d
	}
}

// WithClock 注入时钟, 测试用
func WithClock(now func() time.Time) DeliveryOption {
	return func(s *deliveryService) {
		s.now = now
	}
}

type deliveryService struct {
	noteRepo     domain.NoteRepository
	transport    Transport
	logger       *zap.Logger
	sendInterval time.Duration
	wait         time.Duration
	now          func() time.Time
	sleep        func(time.Duration)
}

// NewDeliveryService 创建 DeliveryService 实例
func NewDeliveryService(noteRepo domain.NoteRepository, transport Transport, lg *zap.Logger, opts ...DeliveryOption) DeliveryService {
	s := &deliveryService{
		noteRepo:     noteRepo,
		transport:    transport,
		logger:       lg,
		sendInterval: time.Second,
		wait:         domain.DeliveryAfter - domain.DeliveryTolerance,
		now:          time.Now,
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch 投递单条笔记, 失败不修改笔记状态
func (s *deliveryService) Dispatch(ctx context.Context, note *domain.Note) (DispatchOutcome, error) {
	if !s.transport.IsConfigured() {
		return OutcomeSkipped, nil
	}

	// 探测失败只告警, 发送仍会尝试
	if err := s.transport.Probe(); err != nil {
		s.logger.Warn("mail transport probe failed",
			zap.String("noteId", note.ID),
			zap.Error(err))
	}

	msg := &mailer.Message{
		To:      note.Email,
		Subject: deliverySubject,
		Body:    renderDeliveryBody(note),
	}
	if err := s.transport.Send(msg); err != nil {
		s.logger.Error("note delivery failed",
			zap.String("noteId", note.ID),
			zap.String("email", note.Email),
			zap.Error(err))
		return OutcomeFailed, err
	}

	// 先标记后返回, 崩溃窗口内的重复投递可接受
	if err := s.noteRepo.SetEmailSent(ctx, note.ID, true); err != nil {
		s.logger.Error("note delivered but flag update failed",
			zap.String("noteId", note.ID),
			zap.Error(err))
		return OutcomeSent, err
	}

	s.logger.Info("note delivered",
		zap.String("noteId", note.ID),
		zap.String("email", note.Email))
	return OutcomeSent, nil
}

// RunOnce 顺序遍历全部笔记并投递到期项
func (s *deliveryService) RunOnce(ctx context.Context) (*RunSummary, error) {
	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("delivery check aborted, note listing failed", zap.Error(err))
		return nil, code.ErrorDeliveryCheck.WithDetails(err.Error())
	}

	now := s.now()
	summary := &RunSummary{}
	first := true
	for _, note := range notes {
		if !note.IsDueAfter(now, s.wait) {
			continue
		}
		summary.Checked++

		if !first && s.sendInterval > 0 {
			s.sleep(s.sendInterval)
		}
		first = false

		// Dispatch 已记录单条错误, 失败不中断整轮
		outcome, _ := s.Dispatch(ctx, note)
		switch outcome {
		case OutcomeSent:
			summary.Sent++
		case OutcomeSkipped:
			summary.Skipped++
		case OutcomeFailed:
			summary.Failed++
		}
	}

	s.logger.Info("delivery check finished",
		zap.Int("checked", summary.Checked),
		zap.Int("sent", summary.Sent),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

func (s *deliveryService) Status(ctx context.Context) (*CapsuleStatusDTO, error) {
	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		return nil, code.ErrorDeliveryCheck.WithDetails(err.Error())
	}

	now := s.now()
	status := &CapsuleStatusDTO{
		Configured:   s.transport.IsConfigured(),
		Total:        len(notes),
		PendingNotes: make([]*PendingNoteDTO, 0),
	}
	for _, note := range notes {
		if note.EmailSent {
			status.Sent++
			continue
		}
		if !note.HasEmail() {
			continue
		}
		status.Pending++
		status.PendingNotes = append(status.PendingNotes, &PendingNoteDTO{
			ID:      note.ID,
			Email:   note.Email,
			AgeDays: note.AgeDays(now),
			Due:     note.IsDueAfter(now, s.wait),
		})
	}
	return status, nil
}

const deliverySubject = "A note from your past self"

// renderDeliveryBody 渲染投递邮件正文, 同一笔记始终产生相同文本
func renderDeliveryBody(note *domain.Note) string {
	greeting := "Hello"
	if note.Name != "" {
		greeting = fmt.Sprintf("Hello %s", note.Name)
	}
	return fmt.Sprintf("%s,\n\nOne year ago, on %s, you wrote yourself this note:\n\n%s\n",
		greeting,
		note.CreatedAt.Format("2006-01-02"),
		note.Content)
}
