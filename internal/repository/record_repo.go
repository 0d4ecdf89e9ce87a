package repository

import (
	"context"
	"math"

	"gorm.io/gorm"

	"fleet-tracker/backend/internal/model"
	pkgerrors "fleet-tracker/backend/pkg/errors"
)

// RecordRepository 使用记录数据访问接口
type RecordRepository interface {
	Create(ctx context.Context, rec *model.Record) error
	GetByID(ctx context.Context, id int64) (*model.Record, error)
	GetRow(ctx context.Context, id int64) (*model.RecordRow, error)
	Update(ctx context.Context, rec *model.Record) error
	Delete(ctx context.Context, id int64) error
	// List 按筛选、排序分页查询，返回当前页行与筛选后的总数
	List(ctx context.Context, filter RecordFilter, sort string, page int) ([]model.RecordRow, int64, error)
	// ListAll 按筛选、排序查询全部行（导出用，不分页）
	ListAll(ctx context.Context, filter RecordFilter, sort string) ([]model.RecordRow, error)
	// ListForMachine 查询某台机器在日期区间内的记录，按日期升序
	ListForMachine(ctx context.Context, machineID int64, from, to string) ([]model.RecordRow, error)
}

type recordRepo struct {
	db *gorm.DB
}

// NewRecordRepo 创建 RecordRepository 实例
func NewRecordRepo(db *gorm.DB) RecordRepository {
	return &recordRepo{db: db}
}

// rows 带三张字典表左连接的基础查询
func (r *recordRepo) rows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("records AS r").
		Joins("LEFT JOIN machines m ON m.id = r.machine_id").
		Joins("LEFT JOIN drivers d ON d.id = r.driver_id").
		Joins("LEFT JOIN counterparties c ON c.id = r.counterparty_id")
}

func (r *recordRepo) Create(ctx context.Context, rec *model.Record) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := NextFreeID(ctx, tx, "records")
		if err != nil {
			return err
		}
		rec.ID = id
		return tx.Create(rec).Error
	})
	return pkgerrors.TranslateConstraint(err)
}

func (r *recordRepo) GetByID(ctx context.Context, id int64) (*model.Record, error) {
	var rec model.Record
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepo) GetRow(ctx context.Context, id int64) (*model.RecordRow, error) {
	var rows []model.RecordRow
	err := r.rows(ctx).
		Select(recordRowSelect, recordRowSelectArgs()...).
		Where("r.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *recordRepo) Update(ctx context.Context, rec *model.Record) error {
	result := r.db.WithContext(ctx).
		Model(&model.Record{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"date":                 rec.Date,
			"machine_id":           rec.MachineID,
			"driver_id":            rec.DriverID,
			"start_time":           rec.StartTime,
			"end_time":             rec.EndTime,
			"hours":                rec.Hours,
			"comment":              rec.Comment,
			"counterparty_id":      rec.CounterpartyID,
			"status":               rec.Status,
			"machine_deleted":      rec.MachineDeleted,
			"driver_deleted":       rec.DriverDeleted,
			"counterparty_deleted": rec.CounterpartyDeleted,
		})
	if result.Error != nil {
		return pkgerrors.TranslateConstraint(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recordRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Record{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recordRepo) List(ctx context.Context, filter RecordFilter, sort string, page int) ([]model.RecordRow, int64, error) {
	var total int64
	if err := filter.apply(r.rows(ctx)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page = NormalizePage(page)
	rows := make([]model.RecordRow, 0, PageSize)
	// 偏移量溢出时必然越过最后一页
	if page > (math.MaxInt-1)/PageSize {
		return rows, total, nil
	}
	err := filter.apply(r.rows(ctx)).
		Select(recordRowSelect, recordRowSelectArgs()...).
		Order(recordSortOrders[NormalizeSort(sort)]).
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *recordRepo) ListAll(ctx context.Context, filter RecordFilter, sort string) ([]model.RecordRow, error) {
	rows := make([]model.RecordRow, 0)
	err := filter.apply(r.rows(ctx)).
		Select(recordRowSelect, recordRowSelectArgs()...).
		Order(recordSortOrders[NormalizeSort(sort)]).
		Scan(&rows).Error
	return rows, err
}

func (r *recordRepo) ListForMachine(ctx context.Context, machineID int64, from, to string) ([]model.RecordRow, error) {
	return r.ListAll(ctx, RecordFilter{MachineID: machineID, DateFrom: from, DateTo: to}, SortDateAsc)
}
