package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleet-tracker/backend/internal/dto"
	"fleet-tracker/backend/internal/model"
	"fleet-tracker/backend/internal/repository"
	pkgerrors "fleet-tracker/backend/pkg/errors"
)

// ── 字典表模块业务错误 ──

var (
	ErrLookupNotFound    = errors.New("字典项不存在")
	ErrLookupNameEmpty   = errors.New("名称不能为空")
	ErrUnknownLookupKind = errors.New("未知的字典表类型")
)

// LookupService 字典表（机器 / 司机 / 交易对手）业务接口
//
// 列表结果进程内缓存，同类型的新建 / 重命名 / 删除会使缓存失效。
type LookupService interface {
	Create(ctx context.Context, kind model.LookupKind, req *dto.LookupRequest) (*dto.LookupResponse, error)
	GetByID(ctx context.Context, kind model.LookupKind, id int64) (*dto.LookupResponse, error)
	List(ctx context.Context, kind model.LookupKind) ([]dto.LookupResponse, error)
	Rename(ctx context.Context, kind model.LookupKind, id int64, req *dto.LookupRequest) (*dto.LookupResponse, error)
	Delete(ctx context.Context, kind model.LookupKind, id int64) error
}

type lookupService struct {
	repo   *repository.Repository
	cache  *cache.Cache
	logger *zap.Logger
}

// NewLookupService 创建 LookupService 实例，ttl<=0 时不缓存
func NewLookupService(repo *repository.Repository, ttl time.Duration, logger *zap.Logger) LookupService {
	s := &lookupService{repo: repo, logger: logger}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

func (s *lookupService) repoFor(kind model.LookupKind) (repository.LookupRepository, error) {
	r := s.repo.Lookup(kind)
	if r == nil {
		return nil, ErrUnknownLookupKind
	}
	return r, nil
}

func (s *lookupService) invalidate(kind model.LookupKind) {
	if s.cache != nil {
		s.cache.Delete(string(kind))
	}
}

// ────────────────────── Create ──────────────────────

func (s *lookupService) Create(ctx context.Context, kind model.LookupKind, req *dto.LookupRequest) (*dto.LookupResponse, error) {
	r, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrLookupNameEmpty
	}

	item, err := r.Create(ctx, name)
	if err != nil {
		if !errors.Is(err, pkgerrors.ErrConflict) {
			s.logger.Error("创建字典项失败", zap.String("kind", string(kind)), zap.Error(err))
		}
		return nil, err
	}
	s.invalidate(kind)

	return toLookupResponse(item), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *lookupService) GetByID(ctx context.Context, kind model.LookupKind, id int64) (*dto.LookupResponse, error) {
	r, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}

	item, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLookupNotFound
		}
		s.logger.Error("查询字典项失败", zap.String("kind", string(kind)), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return toLookupResponse(item), nil
}

// ────────────────────── List ──────────────────────

func (s *lookupService) List(ctx context.Context, kind model.LookupKind) ([]dto.LookupResponse, error) {
	r, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(string(kind)); ok {
			return cached.([]dto.LookupResponse), nil
		}
	}

	items, err := r.List(ctx)
	if err != nil {
		s.logger.Error("列出字典项失败", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}

	result := make([]dto.LookupResponse, 0, len(items))
	for i := range items {
		result = append(result, *toLookupResponse(&items[i]))
	}
	if s.cache != nil {
		s.cache.SetDefault(string(kind), result)
	}

	return result, nil
}

// ────────────────────── Rename ──────────────────────

func (s *lookupService) Rename(ctx context.Context, kind model.LookupKind, id int64, req *dto.LookupRequest) (*dto.LookupResponse, error) {
	r, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrLookupNameEmpty
	}

	if err := r.Rename(ctx, id, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLookupNotFound
		}
		if !errors.Is(err, pkgerrors.ErrConflict) {
			s.logger.Error("重命名字典项失败", zap.String("kind", string(kind)), zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	s.invalidate(kind)

	return &dto.LookupResponse{ID: id, Name: name}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *lookupService) Delete(ctx context.Context, kind model.LookupKind, id int64) error {
	r, err := s.repoFor(kind)
	if err != nil {
		return err
	}

	if err := r.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLookupNotFound
		}
		s.logger.Error("删除字典项失败", zap.String("kind", string(kind)), zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.invalidate(kind)

	s.logger.Info("字典项已删除，引用记录保留", zap.String("kind", string(kind)), zap.Int64("id", id))
	return nil
}

// ── 内部辅助方法 ──

func mapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLookupNotFound
	}
	return err
}

func toLookupResponse(item *model.Lookup) *dto.LookupResponse {
	return &dto.LookupResponse{ID: item.ID, Name: item.Name}
}
