package service

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"fleet-tracker/backend/internal/model"
	"fleet-tracker/backend/internal/repository"
	pkgerrors "fleet-tracker/backend/pkg/errors"
)

// ── Mock LookupRepository ──

type mockLookupRepo struct {
	items    map[int64]*model.Lookup
	listHits int
}

func newMockLookupRepo() *mockLookupRepo {
	return &mockLookupRepo{items: make(map[int64]*model.Lookup)}
}

func (m *mockLookupRepo) nextID() int64 {
	id := int64(1)
	for {
		if _, ok := m.items[id]; !ok {
			return id
		}
		id++
	}
}

func (m *mockLookupRepo) Create(_ context.Context, name string) (*model.Lookup, error) {
	for _, it := range m.items {
		if it.Name == name {
			return nil, pkgerrors.ErrConflict
		}
	}
	item := &model.Lookup{ID: m.nextID(), Name: name}
	m.items[item.ID] = item
	return item, nil
}

func (m *mockLookupRepo) GetByID(_ context.Context, id int64) (*model.Lookup, error) {
	if it, ok := m.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLookupRepo) List(_ context.Context) ([]model.Lookup, error) {
	m.listHits++
	result := make([]model.Lookup, 0, len(m.items))
	for _, it := range m.items {
		result = append(result, *it)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockLookupRepo) Rename(_ context.Context, id int64, name string) error {
	it, ok := m.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, other := range m.items {
		if other.ID != id && other.Name == name {
			return pkgerrors.ErrConflict
		}
	}
	it.Name = name
	return nil
}

func (m *mockLookupRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock RecordRepository ──

type mockRecordRepo struct {
	records  map[int64]*model.Record
	lookups  map[model.LookupKind]*mockLookupRepo
	lastSort string
}

func newMockRecordRepo(lookups map[model.LookupKind]*mockLookupRepo) *mockRecordRepo {
	return &mockRecordRepo{records: make(map[int64]*model.Record), lookups: lookups}
}

func (m *mockRecordRepo) Create(_ context.Context, rec *model.Record) error {
	id := int64(1)
	for {
		if _, ok := m.records[id]; !ok {
			break
		}
		id++
	}
	rec.ID = id
	cp := *rec
	m.records[id] = &cp
	return nil
}

func (m *mockRecordRepo) GetByID(_ context.Context, id int64) (*model.Record, error) {
	if r, ok := m.records[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecordRepo) name(kind model.LookupKind, id *int64, deleted bool) string {
	if id == nil {
		if deleted {
			return kind.DeletedLabel()
		}
		return model.NoneLabel
	}
	if it, ok := m.lookups[kind].items[*id]; ok {
		return it.Name
	}
	return kind.DeletedLabel()
}

func (m *mockRecordRepo) toRow(r *model.Record) model.RecordRow {
	return model.RecordRow{
		ID:               r.ID,
		Date:             r.Date,
		MachineID:        r.MachineID,
		MachineName:      m.name(model.KindMachine, r.MachineID, r.MachineDeleted),
		DriverID:         r.DriverID,
		DriverName:       m.name(model.KindDriver, r.DriverID, r.DriverDeleted),
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Hours:            r.Hours,
		Comment:          r.Comment,
		CounterpartyID:   r.CounterpartyID,
		CounterpartyName: m.name(model.KindCounterparty, r.CounterpartyID, r.CounterpartyDeleted),
		Status:           string(r.Status),
	}
}

func (m *mockRecordRepo) GetRow(ctx context.Context, id int64) (*model.RecordRow, error) {
	r, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row := m.toRow(r)
	return &row, nil
}

func (m *mockRecordRepo) Update(_ context.Context, rec *model.Record) error {
	if _, ok := m.records[rec.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *rec
	m.records[rec.ID] = &cp
	return nil
}

func (m *mockRecordRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *mockRecordRepo) match(r *model.Record, f repository.RecordFilter) bool {
	d := string(r.Date)
	if f.DateFrom != "" && d < f.DateFrom {
		return false
	}
	if f.DateTo != "" && d > f.DateTo {
		return false
	}
	if f.MachineID > 0 && (r.MachineID == nil || *r.MachineID != f.MachineID) {
		return false
	}
	if f.DriverID > 0 && (r.DriverID == nil || *r.DriverID != f.DriverID) {
		return false
	}
	if f.CounterpartyID > 0 && (r.CounterpartyID == nil || *r.CounterpartyID != f.CounterpartyID) {
		return false
	}
	if model.RecordStatus(f.Status).Valid() && string(r.Status) != f.Status {
		return false
	}
	if sub := strings.TrimSpace(f.CommentSub); sub != "" {
		if r.Comment == nil || !strings.Contains(strings.ToLower(*r.Comment), strings.ToLower(sub)) {
			return false
		}
	}
	return true
}

// ListAll 仅实现日期排序，足以覆盖服务层用例
func (m *mockRecordRepo) ListAll(_ context.Context, f repository.RecordFilter, sortKey string) ([]model.RecordRow, error) {
	m.lastSort = sortKey
	rows := make([]model.RecordRow, 0)
	for _, r := range m.records {
		if m.match(r, f) {
			rows = append(rows, m.toRow(r))
		}
	}
	desc := repository.NormalizeSort(sortKey) == repository.SortDateDesc
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			if desc {
				return rows[i].Date > rows[j].Date
			}
			return rows[i].Date < rows[j].Date
		}
		if desc {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

func (m *mockRecordRepo) List(ctx context.Context, f repository.RecordFilter, sortKey string, page int) ([]model.RecordRow, int64, error) {
	all, _ := m.ListAll(ctx, f, sortKey)
	page = repository.NormalizePage(page)
	start := (page - 1) * repository.PageSize
	if start >= len(all) {
		return []model.RecordRow{}, int64(len(all)), nil
	}
	end := start + repository.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (m *mockRecordRepo) ListForMachine(ctx context.Context, machineID int64, from, to string) ([]model.RecordRow, error) {
	return m.ListAll(ctx, repository.RecordFilter{MachineID: machineID, DateFrom: from, DateTo: to}, repository.SortDateAsc)
}

// ── 测试辅助 ──

type mockRepos struct {
	machine      *mockLookupRepo
	driver       *mockLookupRepo
	counterparty *mockLookupRepo
	record       *mockRecordRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		machine:      newMockLookupRepo(),
		driver:       newMockLookupRepo(),
		counterparty: newMockLookupRepo(),
	}
	m.record = newMockRecordRepo(map[model.LookupKind]*mockLookupRepo{
		model.KindMachine:      m.machine,
		model.KindDriver:       m.driver,
		model.KindCounterparty: m.counterparty,
	})
	return &repository.Repository{
		Machine:      m.machine,
		Driver:       m.driver,
		Counterparty: m.counterparty,
		Record:       m.record,
	}, m
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
