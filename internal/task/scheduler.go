package task

import (
	"context"

	"github.com/haierkeys/note-capsule-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	Schedule() string              // cron 表达式
	IsStartupRun() bool            // 是否立即执行一次
}

// Scheduler 任务调度器, 基于 cron 表达式触发
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	cron   *cron.Cron
	sc     *safe_close.SafeClose
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
		cron:   cron.New(),
		sc:     sc,
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 启动所有任务
func (s *Scheduler) Start() error {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return nil
	}

	for _, task := range s.tasks {
		task := task
		if _, err := s.cron.AddFunc(task.Schedule(), func() {
			s.runTask(task)
		}); err != nil {
			s.logger.Error("task schedule invalid",
				zap.String("name", task.Name()),
				zap.String("schedule", task.Schedule()),
				zap.Error(err))
			return err
		}
		s.logger.Info("task scheduled",
			zap.String("name", task.Name()),
			zap.String("schedule", task.Schedule()))
	}

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		// 启动时需要立即执行的任务
		for _, task := range s.tasks {
			if task.IsStartupRun() {
				task := task
				go s.runTask(task)
			}
		}

		s.cron.Start()

		go func() {
			defer done()
			<-closeSignal
			ctx := s.cron.Stop()
			<-ctx.Done()
			s.logger.Info("tasks stopped", zap.Int("count", len(s.tasks)))
		}()
	})

	s.logger.Info("tasks starting ", zap.Int("count", len(s.tasks)))
	return nil
}

// runTask 执行单个任务, panic 不得拖垮调度器
func (s *Scheduler) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task run panic",
				zap.String("name", task.Name()),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	s.logger.Info("task running", zap.String("name", task.Name()))
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.Error(err))
	}
}
