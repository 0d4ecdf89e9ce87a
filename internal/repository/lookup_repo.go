package repository

import (
	"context"

	"gorm.io/gorm"

	"fleet-tracker/backend/internal/model"
	pkgerrors "fleet-tracker/backend/pkg/errors"
)

// LookupRepository 字典表（机器 / 司机 / 交易对手）数据访问接口
type LookupRepository interface {
	Create(ctx context.Context, name string) (*model.Lookup, error)
	GetByID(ctx context.Context, id int64) (*model.Lookup, error)
	List(ctx context.Context) ([]model.Lookup, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type lookupRepo struct {
	db   *gorm.DB
	kind model.LookupKind
}

// NewLookupRepo 创建指定类型的 LookupRepository 实例
func NewLookupRepo(db *gorm.DB, kind model.LookupKind) LookupRepository {
	return &lookupRepo{db: db, kind: kind}
}

func (r *lookupRepo) Create(ctx context.Context, name string) (*model.Lookup, error) {
	item := &model.Lookup{Name: name}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := NextFreeID(ctx, tx, r.kind.Table())
		if err != nil {
			return err
		}
		item.ID = id
		return tx.Table(r.kind.Table()).Create(item).Error
	})
	if err != nil {
		return nil, pkgerrors.TranslateConstraint(err)
	}
	return item, nil
}

func (r *lookupRepo) GetByID(ctx context.Context, id int64) (*model.Lookup, error) {
	var item model.Lookup
	err := r.db.WithContext(ctx).
		Table(r.kind.Table()).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *lookupRepo) List(ctx context.Context) ([]model.Lookup, error) {
	var items []model.Lookup
	err := r.db.WithContext(ctx).
		Table(r.kind.Table()).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *lookupRepo) Rename(ctx context.Context, id int64, name string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table(r.kind.Table()).Where("id = ?", id).Update("name", name)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return pkgerrors.TranslateConstraint(err)
}

// Delete 删除字典项，引用它的记录保留
// 同一事务内先给引用记录打上删除标记，再删除字典行（外键 ON DELETE SET NULL 置空引用）
func (r *lookupRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Record{}).
			Where(r.kind.RefColumn()+" = ?", id).
			Update(r.kind.DeletedColumn(), true).Error; err != nil {
			return err
		}

		result := tx.Table(r.kind.Table()).Where("id = ?", id).Delete(&model.Lookup{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return pkgerrors.TranslateConstraint(err)
}
