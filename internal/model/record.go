package model

import "strings"

// RecordStatus 记录状态
type RecordStatus string

const (
	StatusWork    RecordStatus = "work"
	StatusStop    RecordStatus = "stop"
	StatusRepair  RecordStatus = "repair"
	StatusHoliday RecordStatus = "holiday"
)

// StatusColors 状态对应的单元格背景色；未知状态使用 DefaultStatusColor
var StatusColors = map[RecordStatus]string{
	StatusWork:    "C8E6C9",
	StatusStop:    "FFCDD2",
	StatusRepair:  "FFF9C4",
	StatusHoliday: "E1BEE7",
}

// DefaultStatusColor 未知状态的背景色
const DefaultStatusColor = "FFFFFF"

// Valid 是否为合法状态
func (s RecordStatus) Valid() bool {
	_, ok := StatusColors[s]
	return ok
}

// Color 背景色（不含 #）
func (s RecordStatus) Color() string {
	if c, ok := StatusColors[s]; ok {
		return c
	}
	return DefaultStatusColor
}

// Title 首字母大写的展示文本，如 work → Work
func (s RecordStatus) Title() string {
	if s == "" {
		return ""
	}
	v := string(s)
	return strings.ToUpper(v[:1]) + v[1:]
}

// Record 机器使用记录，对应 records
//
// Date 以 ISO 文本（YYYY-MM-DD）存储，StartTime/EndTime 为 HH:MM；
// 三个 *Deleted 标记在引用对象被删除时置为 true，用于区分“从未设置”与“已删除”。
type Record struct {
	ID                  int64        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Date                DateText     `gorm:"column:date;not null"           json:"date"`
	MachineID           *int64       `gorm:"column:machine_id"              json:"machine_id"`
	DriverID            *int64       `gorm:"column:driver_id"               json:"driver_id"`
	StartTime           *string      `gorm:"column:start_time"              json:"start_time"`
	EndTime             *string      `gorm:"column:end_time"                json:"end_time"`
	Hours               int          `gorm:"column:hours;default:0"         json:"hours"`
	Comment             *string      `gorm:"column:comment"                 json:"comment"`
	CounterpartyID      *int64       `gorm:"column:counterparty_id"         json:"counterparty_id"`
	Status              RecordStatus `gorm:"column:status;not null"         json:"status"`
	MachineDeleted      bool         `gorm:"column:machine_deleted"         json:"-"`
	DriverDeleted       bool         `gorm:"column:driver_deleted"          json:"-"`
	CounterpartyDeleted bool         `gorm:"column:counterparty_deleted"    json:"-"`
}

// TableName 指定表名
func (Record) TableName() string { return "records" }
