package api_router

import (
	"time"

	"github.com/haierkeys/note-capsule-service/internal/app"
	pkgapp "github.com/haierkeys/note-capsule-service/pkg/app"
	"github.com/haierkeys/note-capsule-service/pkg/code"
	"github.com/haierkeys/note-capsule-service/pkg/fileurl"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string  `json:"status"`  // "healthy" 或 "unhealthy"
	Version string  `json:"version"` // 服务版本号
	Uptime  float64 `json:"uptime"`  // 运行时间（秒）
	Store   string  `json:"store"`   // "connected" 或 "error"
}

// Check 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括存储后端可用性
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status:  "healthy",
		Version: h.App.Version().Version,
		Uptime:  time.Since(h.App.StartTime).Seconds(),
		Store:   "connected",
	}

	// 检查存储后端
	if h.App.DB != nil {
		if err := h.App.DB.Raw("SELECT 1").Error; err != nil {
			response.Status = "unhealthy"
			response.Store = "error"
		}
	} else if h.App.Store != nil {
		if !fileurl.IsExist(h.App.Store.Path()) {
			// 集合文件在首次写入前不存在, 属正常状态
			response.Store = "empty"
		}
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}
