package model

import "fmt"

// LookupKind 字典表类型：机器 / 司机 / 交易对手
type LookupKind string

const (
	KindMachine      LookupKind = "machine"
	KindDriver       LookupKind = "driver"
	KindCounterparty LookupKind = "counterparty"
)

// LookupKinds 全部字典表类型，顺序固定
var LookupKinds = []LookupKind{KindMachine, KindDriver, KindCounterparty}

var lookupMeta = map[LookupKind]struct {
	table string
	label string
}{
	KindMachine:      {table: "machines", label: "Machine"},
	KindDriver:       {table: "drivers", label: "Driver"},
	KindCounterparty: {table: "counterparties", label: "Counterparty"},
}

// Valid 是否为已知类型
func (k LookupKind) Valid() bool {
	_, ok := lookupMeta[k]
	return ok
}

// Table 对应的数据表名
func (k LookupKind) Table() string { return lookupMeta[k].table }

// Label 展示名称
func (k LookupKind) Label() string { return lookupMeta[k].label }

// DeletedLabel 引用对象已被删除时的展示文本
func (k LookupKind) DeletedLabel() string { return fmt.Sprintf("%s deleted", lookupMeta[k].label) }

// RefColumn records 表中对应的外键列
func (k LookupKind) RefColumn() string { return string(k) + "_id" }

// DeletedColumn records 表中对应的删除标记列
func (k LookupKind) DeletedColumn() string { return string(k) + "_deleted" }

// Lookup 字典表行，对应 machines / drivers / counterparties
// 三张表结构一致，表名由 LookupKind 决定，查询时通过 db.Table() 指定
type Lookup struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"not null;unique"                json:"name"`
}

// NoneLabel 引用从未设置时的展示文本
const NoneLabel = "—"
