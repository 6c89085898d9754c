package api_router

import (
	"github.com/haierkeys/note-capsule-service/internal/app"
	pkgapp "github.com/haierkeys/note-capsule-service/pkg/app"
	"github.com/haierkeys/note-capsule-service/pkg/code"
	apperrors "github.com/haierkeys/note-capsule-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// CapsuleHandler 时间胶囊投递 API 路由处理器
type CapsuleHandler struct {
	*Handler
}

// NewCapsuleHandler 创建 CapsuleHandler 实例
func NewCapsuleHandler(a *app.App) *CapsuleHandler {
	return &CapsuleHandler{
		Handler: NewHandler(a),
	}
}

// Check 手动触发一轮投递检查
// @Summary 手动触发投递检查
// @Description 与定时任务走同一条投递路径, 返回本轮汇总
// @Tags 投递
// @Produce json
// @Success 200 {object} pkgapp.Res{data=service.RunSummary} "成功"
// @Router /api/capsule/check [post]
func (h *CapsuleHandler) Check(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	summary, err := h.App.DeliveryService.RunOnce(ctx)
	if err != nil {
		h.logError(ctx, "CapsuleHandler.Check", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(summary))
}

// Status 查询投递状态
// @Summary 查询投递状态
// @Description 返回投递通道配置情况与各笔记的投递进度
// @Tags 投递
// @Produce json
// @Success 200 {object} pkgapp.Res{data=service.CapsuleStatusDTO} "成功"
// @Router /api/capsule/status [get]
func (h *CapsuleHandler) Status(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	status, err := h.App.DeliveryService.Status(ctx)
	if err != nil {
		h.logError(ctx, "CapsuleHandler.Status", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(status))
}
