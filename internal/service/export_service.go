package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"fleet-tracker/backend/config"
	"fleet-tracker/backend/internal/dto"
	"fleet-tracker/backend/internal/model"
	"fleet-tracker/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// XLSXContentType 导出文件的 MIME 类型
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportOptions 渲染参数
type ExportOptions struct {
	SheetTitle string
	Headers    []string // 必须为 9 项，顺序与列顺序一致
}

// ExportArtifact 已落盘的导出文件
type ExportArtifact struct {
	Path     string
	Filename string
}

// ExportService 导出业务接口
//
// 设计说明：
//   - 全量导出与筛选导出共用 RenderWorkbook，行结构与列表一致
//   - 全量导出按 date ASC, id ASC；筛选导出沿用列表的筛选与排序，不分页
//   - 文件先写入 export.dir 再由 Handler 以附件形式返回
type ExportService interface {
	// Build 查询并渲染工作簿，调用方负责 Close
	Build(ctx context.Context, req *dto.ExportRequest) (*excelize.File, error)
	// Export 渲染并写入导出目录
	Export(ctx context.Context, req *dto.ExportRequest) (*ExportArtifact, error)
	// Release 返回文件后清理，export.keep_files=true 时保留
	Release(artifact *ExportArtifact)
}

type exportService struct {
	repo   *repository.Repository
	cfg    config.ExportConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, cfg config.ExportConfig, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, cfg: cfg, logger: logger, now: time.Now}
}

func (s *exportService) options() ExportOptions {
	return ExportOptions{SheetTitle: s.cfg.SheetTitle, Headers: s.cfg.Headers}
}

func (s *exportService) Build(ctx context.Context, req *dto.ExportRequest) (*excelize.File, error) {
	filter := repository.RecordFilter{}
	sort := repository.SortDateAsc
	if req.Filtered() {
		filter = ToRecordFilter(&req.RecordListRequest)
		sort = req.Sort
	}

	rows, err := s.repo.Record.ListAll(ctx, filter, sort)
	if err != nil {
		s.logger.Error("查询导出数据失败", zap.Error(err))
		return nil, err
	}

	f, err := RenderWorkbook(rows, s.options())
	if err != nil {
		s.logger.Error("渲染 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return f, nil
}

func (s *exportService) Export(ctx context.Context, req *dto.ExportRequest) (*ExportArtifact, error) {
	f, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		s.logger.Error("创建导出目录失败", zap.String("dir", s.cfg.Dir), zap.Error(err))
		return nil, ErrExportGenerateFail
	}

	filename := ExportFilename(s.now())
	path := filepath.Join(s.cfg.Dir, filename)
	if err := f.SaveAs(path); err != nil {
		s.logger.Error("写入 Excel 失败", zap.String("path", path), zap.Error(err))
		return nil, ErrExportGenerateFail
	}

	s.logger.Info("导出完成", zap.String("file", filename), zap.Bool("filtered", req.Filtered()))
	return &ExportArtifact{Path: path, Filename: filename}, nil
}

func (s *exportService) Release(artifact *ExportArtifact) {
	if artifact == nil || s.cfg.KeepFiles {
		return
	}
	if err := os.Remove(artifact.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("清理导出文件失败", zap.String("path", artifact.Path), zap.Error(err))
	}
}

// ExportFilename 分钟级时间戳加随机后缀，同一分钟内的并发导出互不覆盖
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("report_%s_%s.xlsx", now.Format("20060102_1504"), uuid.NewString()[:8])
}

// ═══════════════════════════════════════════════════════════
// RenderWorkbook 渲染记录表
// ═══════════════════════════════════════════════════════════
//
// 列顺序：Date, Machine, Driver, Status, Start, End, Hours, Counterparty, Comment
//   - 表头深灰底、白色粗体，列宽 20
//   - 日期渲染为 DD.MM.YYYY，无法解析时原样输出
//   - Status 单元格按状态着色，文本首字母大写
//   - 起止时间缺失输出空串，备注缺失输出 "-"

func RenderWorkbook(rows []model.RecordRow, opts ExportOptions) (*excelize.File, error) {
	headers := opts.Headers
	if len(headers) == 0 {
		headers = config.DefaultExportHeaders
	}
	if len(headers) != config.ExportColumnCount {
		return nil, fmt.Errorf("表头数量必须为 %d，实际 %d", config.ExportColumnCount, len(headers))
	}
	sheet := opts.SheetTitle
	if sheet == "" {
		sheet = "AN-30 Report"
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("设置工作表名称失败: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#444444"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("创建表头样式失败: %w", err)
	}

	lastCol := colName(config.ExportColumnCount - 1)
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", cell(lastCol, 1), headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	// 每种颜色只创建一次样式
	statusStyles := make(map[string]int)
	statusStyle := func(color string) (int, error) {
		if id, ok := statusStyles[color]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#" + color}, Pattern: 1},
		})
		if err != nil {
			return 0, err
		}
		statusStyles[color] = id
		return id, nil
	}

	for i, row := range rows {
		r := i + 2
		status := model.RecordStatus(row.Status)
		values := []interface{}{
			row.Date.Display(),
			row.MachineName,
			row.DriverName,
			status.Title(),
			deref(row.StartTime, ""),
			deref(row.EndTime, ""),
			row.Hours,
			row.CounterpartyName,
			deref(row.Comment, "-"),
		}
		if err := f.SetSheetRow(sheet, cell("A", r), &values); err != nil {
			f.Close()
			return nil, err
		}

		styleID, err := statusStyle(status.Color())
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell("D", r), cell("D", r), styleID); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
