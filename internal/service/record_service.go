package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleet-tracker/backend/internal/dto"
	"fleet-tracker/backend/internal/model"
	"fleet-tracker/backend/internal/repository"
	pkgerrors "fleet-tracker/backend/pkg/errors"
)

// ── 记录模块业务错误 ──

var (
	ErrRecordNotFound   = errors.New("记录不存在")
	ErrInvalidStatus    = errors.New("状态必须为 work / stop / repair / holiday 之一")
	ErrInvalidDate      = errors.New("日期格式必须为 YYYY-MM-DD")
	ErrInvalidReference = errors.New("引用的机器、司机或交易对手不存在")
)

// RecordService 使用记录业务接口
type RecordService interface {
	Create(ctx context.Context, req *dto.RecordRequest) (*model.RecordRow, error)
	GetByID(ctx context.Context, id int64) (*model.RecordRow, error)
	Update(ctx context.Context, id int64, req *dto.RecordRequest) (*model.RecordRow, error)
	Delete(ctx context.Context, id int64) error
	// List 返回当前页行、筛选后总数以及实际使用的页码
	List(ctx context.Context, req *dto.RecordListRequest) ([]model.RecordRow, int64, int, error)
}

type recordService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRecordService 创建 RecordService 实例
func NewRecordService(repo *repository.Repository, logger *zap.Logger) RecordService {
	return &recordService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *recordService) Create(ctx context.Context, req *dto.RecordRequest) (*model.RecordRow, error) {
	rec, err := s.buildRecord(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Record.Create(ctx, rec); err != nil {
		if !errors.Is(err, pkgerrors.ErrConflict) {
			s.logger.Error("创建记录失败", zap.Error(err))
		}
		return nil, err
	}

	return s.GetByID(ctx, rec.ID)
}

// ────────────────────── GetByID ──────────────────────

func (s *recordService) GetByID(ctx context.Context, id int64) (*model.RecordRow, error) {
	row, err := s.repo.Record.GetRow(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		s.logger.Error("查询记录失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return row, nil
}

// ────────────────────── Update ──────────────────────

func (s *recordService) Update(ctx context.Context, id int64, req *dto.RecordRequest) (*model.RecordRow, error) {
	existing, err := s.repo.Record.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		s.logger.Error("查询记录失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	rec, err := s.buildRecord(ctx, req)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	// 引用仍为空时保留“已删除”标记，重新指定引用后清除
	rec.MachineDeleted = rec.MachineID == nil && existing.MachineDeleted
	rec.DriverDeleted = rec.DriverID == nil && existing.DriverDeleted
	rec.CounterpartyDeleted = rec.CounterpartyID == nil && existing.CounterpartyDeleted

	if err := s.repo.Record.Update(ctx, rec); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		if !errors.Is(err, pkgerrors.ErrConflict) {
			s.logger.Error("更新记录失败", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *recordService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Record.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		s.logger.Error("删除记录失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── List ──────────────────────

func (s *recordService) List(ctx context.Context, req *dto.RecordListRequest) ([]model.RecordRow, int64, int, error) {
	page := req.GetPage()
	rows, total, err := s.repo.Record.List(ctx, ToRecordFilter(req), req.Sort, page)
	if err != nil {
		s.logger.Error("查询记录列表失败", zap.Error(err))
		return nil, 0, 0, err
	}
	return rows, total, page, nil
}

// ── 内部辅助方法 ──

// ToRecordFilter 列表查询参数转换为仓储层筛选条件
func ToRecordFilter(req *dto.RecordListRequest) repository.RecordFilter {
	return repository.RecordFilter{
		DateFrom:       req.DateFrom,
		DateTo:         req.DateTo,
		MachineID:      req.MachineID(),
		DriverID:       req.DriverID(),
		CounterpartyID: req.CounterpartyID(),
		Status:         req.Status,
		CommentSub:     req.CommentSub,
	}
}

// buildRecord 校验请求并构造记录，hours 由起止时间计算
func (s *recordService) buildRecord(ctx context.Context, req *dto.RecordRequest) (*model.Record, error) {
	status := model.RecordStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		return nil, ErrInvalidDate
	}

	refs := []struct {
		kind model.LookupKind
		id   *int64
	}{
		{model.KindMachine, req.MachineID},
		{model.KindDriver, req.DriverID},
		{model.KindCounterparty, req.CounterpartyID},
	}
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		if _, err := s.repo.Lookup(ref.kind).GetByID(ctx, *ref.id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidReference
			}
			return nil, err
		}
	}

	start := blankToNil(req.StartTime)
	end := blankToNil(req.EndTime)

	return &model.Record{
		Date:           model.DateText(req.Date),
		MachineID:      req.MachineID,
		DriverID:       req.DriverID,
		StartTime:      start,
		EndTime:        end,
		Hours:          ComputeHours(start, end),
		Comment:        req.Comment,
		CounterpartyID: req.CounterpartyID,
		Status:         status,
	}, nil
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
