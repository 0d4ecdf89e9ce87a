package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fleet-tracker/backend/internal/dto"
	"fleet-tracker/backend/internal/model"
	"fleet-tracker/backend/internal/service"
	pkgerrors "fleet-tracker/backend/pkg/errors"
	"fleet-tracker/backend/pkg/response"
)

// LookupHandler 字典表 HTTP 处理器，机器 / 司机 / 交易对手各一个实例
type LookupHandler struct {
	lookupSvc service.LookupService
	kind      model.LookupKind
}

// NewLookupHandler 创建指定类型的 LookupHandler
func NewLookupHandler(lookupSvc service.LookupService, kind model.LookupKind) *LookupHandler {
	return &LookupHandler{lookupSvc: lookupSvc, kind: kind}
}

// List 获取列表（按 id 升序）
// GET /api/v1/{machines|drivers|counterparties}
func (h *LookupHandler) List(c *gin.Context) {
	items, err := h.lookupSvc.List(c.Request.Context(), h.kind)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// Get 获取详情
// GET /api/v1/{machines|drivers|counterparties}/:id
func (h *LookupHandler) Get(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	item, err := h.lookupSvc.GetByID(c.Request.Context(), h.kind, id)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}

	response.OK(c, item)
}

// Create 新建
// POST /api/v1/{machines|drivers|counterparties}
func (h *LookupHandler) Create(c *gin.Context) {
	var req dto.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	item, err := h.lookupSvc.Create(c.Request.Context(), h.kind, &req)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}

	response.Created(c, item)
}

// Rename 重命名
// PUT /api/v1/{machines|drivers|counterparties}/:id
func (h *LookupHandler) Rename(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	item, err := h.lookupSvc.Rename(c.Request.Context(), h.kind, id, &req)
	if err != nil {
		h.handleLookupError(c, err)
		return
	}

	response.OK(c, item)
}

// Delete 删除，引用它的记录保留并显示为已删除
// DELETE /api/v1/{machines|drivers|counterparties}/:id
func (h *LookupHandler) Delete(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	if err := h.lookupSvc.Delete(c.Request.Context(), h.kind, id); err != nil {
		h.handleLookupError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleLookupError 统一处理字典表业务错误
func (h *LookupHandler) handleLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLookupNotFound):
		response.NotFound(c, 12001, h.kind.Label()+" not found")
	case errors.Is(err, service.ErrLookupNameEmpty):
		response.BadRequest(c, 12002, "名称不能为空")
	case errors.Is(err, service.ErrUnknownLookupKind):
		response.BadRequest(c, 12003, "未知的字典表类型")
	case errors.Is(err, pkgerrors.ErrConflict):
		response.Conflict(c, 40900, "操作失败，数据冲突")
	default:
		response.InternalError(c)
	}
}
