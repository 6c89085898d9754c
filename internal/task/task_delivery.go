package task

import (
	"context"

	"github.com/haierkeys/note-capsule-service/internal/app"

	"go.uber.org/zap"
)

// DeliveryTask 定时执行时间胶囊投递检查
type DeliveryTask struct {
	app    *app.App
	logger *zap.Logger
}

// Name returns the task name
func (t *DeliveryTask) Name() string {
	return "CapsuleDelivery"
}

// Schedule returns the cron expression from config
func (t *DeliveryTask) Schedule() string {
	return t.app.Config().Capsule.Schedule
}

// IsStartupRun returns whether to run on startup
func (t *DeliveryTask) IsStartupRun() bool {
	return false
}

// Run executes one delivery check round
func (t *DeliveryTask) Run(ctx context.Context) error {
	summary, err := t.app.DeliveryService.RunOnce(ctx)
	if err != nil {
		return err
	}
	t.logger.Info("capsule delivery task finished",
		zap.Int("sent", summary.Sent),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return nil
}

// NewDeliveryTask creates a new DeliveryTask instance
func NewDeliveryTask(appContainer *app.App) (Task, error) {
	return &DeliveryTask{
		app:    appContainer,
		logger: appContainer.Logger(),
	}, nil
}

// init registers the delivery task
func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewDeliveryTask(appContainer)
	})
}
