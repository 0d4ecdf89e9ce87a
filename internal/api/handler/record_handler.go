package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fleet-tracker/backend/internal/dto"
	"fleet-tracker/backend/internal/repository"
	"fleet-tracker/backend/internal/service"
	pkgerrors "fleet-tracker/backend/pkg/errors"
	"fleet-tracker/backend/pkg/response"
)

// RecordHandler 使用记录 HTTP 处理器
type RecordHandler struct {
	recordSvc service.RecordService
}

// NewRecordHandler 创建 RecordHandler
func NewRecordHandler(recordSvc service.RecordService) *RecordHandler {
	return &RecordHandler{recordSvc: recordSvc}
}

// ListRecords 分页查询记录
// GET /api/v1/records?date_from=&date_to=&mach=&driv=&cpar=&status=&comment_sub=&sort=&page=
func (h *RecordHandler) ListRecords(c *gin.Context) {
	var req dto.RecordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	rows, total, page, err := h.recordSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OKPage(c, rows, total, page, repository.PageSize)
}

// GetRecord 获取记录详情
// GET /api/v1/records/:id
func (h *RecordHandler) GetRecord(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	row, err := h.recordSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, row)
}

// CreateRecord 新建记录
// POST /api/v1/records
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var req dto.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	row, err := h.recordSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.Created(c, row)
}

// UpdateRecord 更新记录
// PUT /api/v1/records/:id
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	row, err := h.recordSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, row)
}

// DeleteRecord 删除记录
// DELETE /api/v1/records/:id
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	if err := h.recordSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleRecordError 统一处理记录模块业务错误
func (h *RecordHandler) handleRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		response.NotFound(c, 13001, "记录不存在")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 13002, "状态必须为 work / stop / repair / holiday 之一")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13003, "日期格式必须为 YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidReference):
		response.BadRequest(c, 13004, "引用的机器、司机或交易对手不存在")
	case errors.Is(err, pkgerrors.ErrConflict):
		response.Conflict(c, 40900, "操作失败，数据冲突")
	default:
		response.InternalError(c)
	}
}
