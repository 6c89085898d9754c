// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/note-capsule-service/internal/dao"
	"github.com/haierkeys/note-capsule-service/internal/domain"
	"github.com/haierkeys/note-capsule-service/internal/filedao"
	"github.com/haierkeys/note-capsule-service/internal/mailer"
	"github.com/haierkeys/note-capsule-service/internal/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DatabaseTypeFile 平面文件存储类型
const DatabaseTypeFile = "file"

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao
	Store  *filedao.Store
	Mailer *mailer.Mailer

	// Repository 层
	NoteRepo   domain.NoteRepository
	UnsentRepo domain.UnsentNoteRepository

	// Service 层
	NoteService       service.NoteService
	UnsentNoteService service.UnsentNoteService
	DeliveryService   service.DeliveryService

	// StartTime 服务启动时间
	StartTime time.Time

	// 关闭控制
	shutdownCh chan struct{}
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接, database.type 为 file 时可为空
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	// 初始化 Repository 层, file 类型使用平面文件后端
	if cfg.Database.Type == DatabaseTypeFile {
		store, err := filedao.NewStore(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open note store: %w", err)
		}
		a.Store = store
		a.NoteRepo = filedao.NewNoteRepository(store)
		a.UnsentRepo = filedao.NewUnsentNoteRepository(store)
	} else {
		if db == nil {
			return nil, fmt.Errorf("database is required for type %q", cfg.Database.Type)
		}
		a.Dao = dao.New(db, logger)
		a.NoteRepo = dao.NewNoteRepository(a.Dao)
		a.UnsentRepo = dao.NewUnsentNoteRepository(a.Dao)
	}

	// 初始化 Mailer
	a.Mailer = mailer.New(cfg.GetMailerConfig(), logger)

	// 初始化 Service 层（依赖注入）
	a.NoteService = service.NewNoteService(a.NoteRepo, logger)
	a.UnsentNoteService = service.NewUnsentNoteService(a.UnsentRepo, a.NoteRepo, logger)
	a.DeliveryService = service.NewDeliveryService(a.NoteRepo, a.Mailer, logger,
		service.WithSendInterval(cfg.GetSendInterval()),
		service.WithDeliveryWait(cfg.GetSendAfter()-cfg.GetSendTolerance()),
	)

	logger.Info("App container initialized successfully",
		zap.String("backend", cfg.Database.Type),
		zap.Bool("mailConfigured", a.Mailer.IsConfigured()))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	if err := a.Close(); err != nil {
		a.logger.Warn("App container shutdown completed with errors", zap.Error(err))
		return err
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}
