// Package routers 组装 gin 引擎与中间件链
package routers

import (
	"time"

	"github.com/haierkeys/note-capsule-service/internal/app"
	"github.com/haierkeys/note-capsule-service/internal/middleware"
	"github.com/haierkeys/note-capsule-service/internal/routers/api_router"
	"github.com/haierkeys/note-capsule-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/note",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/capsule/check",
		FillInterval: time.Second,
		Capacity:     2,
		Quantum:      2,
	},
)

// NewRouter 创建 HTTP 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()

	healthHandler := api_router.NewHealthHandler(appContainer)
	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		noteHandler := api_router.NewNoteHandler(appContainer)
		unsentHandler := api_router.NewUnsentNoteHandler(appContainer)
		capsuleHandler := api_router.NewCapsuleHandler(appContainer)

		api.GET("/note", noteHandler.Get)
		api.GET("/notes", noteHandler.List)
		api.POST("/note", noteHandler.Create)
		api.PUT("/note", noteHandler.Update)
		api.DELETE("/note", noteHandler.Delete)

		api.GET("/unsent-notes", unsentHandler.List)
		api.POST("/unsent-note", unsentHandler.Stage)
		api.POST("/unsent-note/send", unsentHandler.Send)
		api.DELETE("/unsent-note", unsentHandler.Discard)

		api.POST("/capsule/check", capsuleHandler.Check)
		api.GET("/capsule/status", capsuleHandler.Status)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
