package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"fleet-tracker/backend/internal/model"
)

// PageSize 记录列表固定每页条数
const PageSize = 10

// 排序键
const (
	SortDateAsc    = "date_asc"
	SortDateDesc   = "date_desc"
	SortHoursAsc   = "hours_asc"
	SortHoursDesc  = "hours_desc"
	SortMachineAsc = "machine_asc"
	SortDriverAsc  = "driver_asc"
)

// DefaultSort 未指定或无法识别时的排序
const DefaultSort = SortDateDesc

var recordSortOrders = map[string]string{
	SortDateAsc:    "r.date ASC, r.id ASC",
	SortDateDesc:   "r.date DESC, r.id DESC",
	SortHoursAsc:   "r.hours ASC, r.date ASC",
	SortHoursDesc:  "r.hours DESC, r.date DESC",
	SortMachineAsc: "machine_name ASC, r.date DESC",
	SortDriverAsc:  "driver_name ASC, r.date DESC",
}

// NormalizeSort 无法识别的排序键回退为 DefaultSort
func NormalizeSort(sort string) string {
	if _, ok := recordSortOrders[sort]; ok {
		return sort
	}
	return DefaultSort
}

// NormalizePage 页码从 1 开始，小于 1 时按 1 处理；不做上限截断
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// RecordFilter 记录筛选条件，零值字段不参与筛选，条件之间为 AND
type RecordFilter struct {
	DateFrom       string // 含当天，YYYY-MM-DD
	DateTo         string // 含当天，YYYY-MM-DD
	MachineID      int64
	DriverID       int64
	CounterpartyID int64
	Status         string // 非法状态忽略
	CommentSub     string // 备注子串，不区分大小写
}

// apply 在查询链上追加筛选条件
// 统计总数与分页查询各自调用一次，避免共享同一条语句链
func (f RecordFilter) apply(db *gorm.DB) *gorm.DB {
	if f.DateFrom != "" {
		db = db.Where("r.date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		db = db.Where("r.date <= ?", f.DateTo)
	}
	if f.MachineID > 0 {
		db = db.Where("r.machine_id = ?", f.MachineID)
	}
	if f.DriverID > 0 {
		db = db.Where("r.driver_id = ?", f.DriverID)
	}
	if f.CounterpartyID > 0 {
		db = db.Where("r.counterparty_id = ?", f.CounterpartyID)
	}
	if model.RecordStatus(f.Status).Valid() {
		db = db.Where("r.status = ?", f.Status)
	}
	if sub := strings.TrimSpace(f.CommentSub); sub != "" {
		db = db.Where(`LOWER(r.comment) LIKE LOWER(?) ESCAPE '\'`, "%"+escapeLike(sub)+"%")
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 通配符，使用户输入按字面匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// resolvedName 生成名称三态解析表达式：
// 外键为空且有删除标记 → 已删除；外键为空 → —；外键非空但关联行缺失 → 已删除；否则为名称
func resolvedName(kind model.LookupKind, alias string) string {
	col := "r." + kind.RefColumn()
	return fmt.Sprintf(
		"CASE WHEN %s IS NULL THEN (CASE WHEN r.%s THEN ? ELSE ? END) WHEN %s.id IS NULL THEN ? ELSE %s.name END AS %s_name",
		col, kind.DeletedColumn(), alias, alias, string(kind),
	)
}

var recordRowSelect = strings.Join([]string{
	"r.id, r.date, r.machine_id, r.driver_id, r.start_time, r.end_time, r.hours, r.comment, r.counterparty_id, r.status",
	resolvedName(model.KindMachine, "m"),
	resolvedName(model.KindDriver, "d"),
	resolvedName(model.KindCounterparty, "c"),
}, ", ")

func recordRowSelectArgs() []interface{} {
	args := make([]interface{}, 0, 9)
	for _, kind := range model.LookupKinds {
		args = append(args, kind.DeletedLabel(), model.NoneLabel, kind.DeletedLabel())
	}
	return args
}
