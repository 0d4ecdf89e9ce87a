package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fleet-tracker/backend/internal/dto"
	"fleet-tracker/backend/internal/service"
	"fleet-tracker/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRecords 导出记录为 Excel
// GET /api/v1/export                     全量，按日期升序
// GET /api/v1/export?export=filtered&... 沿用列表的筛选与排序，不分页
func (h *ExportHandler) ExportRecords(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	artifact, err := h.exportSvc.Export(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	defer h.exportSvc.Release(artifact)

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Type", service.XLSXContentType)
	c.FileAttachment(artifact.Path, artifact.Filename)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, 500, 14001, "生成 Excel 文件失败")
	default:
		response.InternalError(c)
	}
}
