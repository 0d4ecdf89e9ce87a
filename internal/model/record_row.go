package model

// RecordRow 记录列表 / 导出共用的行结构，引用已解析为展示名称
//
// 名称三态：从未设置为 NoneLabel，引用对象已删除为 LookupKind.DeletedLabel()，否则为当前名称。
type RecordRow struct {
	ID               int64    `json:"id"`
	Date             DateText `json:"date"`
	MachineID        *int64   `json:"machine_id"`
	MachineName      string   `json:"machine_name"`
	DriverID         *int64   `json:"driver_id"`
	DriverName       string   `json:"driver_name"`
	StartTime        *string  `json:"start_time"`
	EndTime          *string  `json:"end_time"`
	Hours            int      `json:"hours"`
	Comment          *string  `json:"comment"`
	CounterpartyID   *int64   `json:"counterparty_id"`
	CounterpartyName string   `json:"counterparty_name"`
	Status           string   `json:"status"`
}
