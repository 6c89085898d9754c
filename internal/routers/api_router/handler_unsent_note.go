package api_router

import (
	"github.com/haierkeys/note-capsule-service/internal/app"
	"github.com/haierkeys/note-capsule-service/internal/dto"
	pkgapp "github.com/haierkeys/note-capsule-service/pkg/app"
	"github.com/haierkeys/note-capsule-service/pkg/code"
	apperrors "github.com/haierkeys/note-capsule-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UnsentNoteHandler 暂存笔记 API 路由处理器
type UnsentNoteHandler struct {
	*Handler
}

// NewUnsentNoteHandler 创建 UnsentNoteHandler 实例
func NewUnsentNoteHandler(a *app.App) *UnsentNoteHandler {
	return &UnsentNoteHandler{
		Handler: NewHandler(a),
	}
}

// List 获取暂存笔记列表
// @Summary 获取暂存笔记列表
// @Tags 暂存笔记
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]service.UnsentNoteDTO} "成功"
// @Router /api/unsent-notes [get]
func (h *UnsentNoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	notes, err := h.App.UnsentNoteService.List(ctx)
	if err != nil {
		h.logError(ctx, "UnsentNoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(notes))
}

// Stage 暂存笔记草稿
// @Summary 暂存笔记草稿
// @Description 暂存一条仅有内容的笔记草稿, 后续可提升为正式笔记
// @Tags 暂存笔记
// @Accept json
// @Produce json
// @Param params body dto.UnsentNoteCreateRequest true "暂存参数"
// @Success 200 {object} pkgapp.Res{data=service.UnsentNoteDTO} "成功"
// @Router /api/unsent-note [post]
func (h *UnsentNoteHandler) Stage(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UnsentNoteCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UnsentNoteHandler.Stage.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	staged, err := h.App.UnsentNoteService.Stage(ctx, params)
	if err != nil {
		h.logError(ctx, "UnsentNoteHandler.Stage", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(staged))
}

// Send 提升暂存笔记
// @Summary 提升暂存笔记
// @Description 将暂存笔记提升为正式笔记并删除暂存记录
// @Tags 暂存笔记
// @Accept json
// @Produce json
// @Param params body dto.UnsentNoteSendRequest true "提升参数"
// @Success 200 {object} pkgapp.Res{data=service.NoteDTO} "成功"
// @Router /api/unsent-note/send [post]
func (h *UnsentNoteHandler) Send(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UnsentNoteSendRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UnsentNoteHandler.Send.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.UnsentNoteService.Send(ctx, params)
	if err != nil {
		h.logError(ctx, "UnsentNoteHandler.Send", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Discard 丢弃暂存笔记
// @Summary 丢弃暂存笔记
// @Tags 暂存笔记
// @Produce json
// @Param params query dto.UnsentNoteDiscardRequest true "丢弃参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/unsent-note [delete]
func (h *UnsentNoteHandler) Discard(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UnsentNoteDiscardRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UnsentNoteHandler.Discard.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.UnsentNoteService.Discard(ctx, params); err != nil {
		h.logError(ctx, "UnsentNoteHandler.Discard", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
