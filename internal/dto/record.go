package dto

// ── 使用记录 DTO ──

// RecordRequest 新建 / 更新记录请求
// hours 由服务端根据起止时间计算，不接受客户端传入
type RecordRequest struct {
	Date           string  `json:"date"            binding:"required,datetime=2006-01-02"`
	MachineID      *int64  `json:"machine_id"      binding:"omitempty,min=1"`
	DriverID       *int64  `json:"driver_id"       binding:"omitempty,min=1"`
	Status         string  `json:"status"          binding:"required"`
	StartTime      *string `json:"start_time"      binding:"omitempty,max=5"`
	EndTime        *string `json:"end_time"        binding:"omitempty,max=5"`
	Comment        *string `json:"comment"         binding:"omitempty,max=2000"`
	CounterpartyID *int64  `json:"counterparty_id" binding:"omitempty,min=1"`
}

// RecordListRequest 记录列表查询参数
// mach / driv / cpar 按字符串接收，非正整数视为未筛选
type RecordListRequest struct {
	PaginationRequest
	DateFrom   string `form:"date_from"   binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to"     binding:"omitempty,datetime=2006-01-02"`
	Mach       string `form:"mach"`
	Driv       string `form:"driv"`
	Cpar       string `form:"cpar"`
	Status     string `form:"status"`
	CommentSub string `form:"comment_sub"`
	Sort       string `form:"sort"`
}

// MachineID 机器筛选 id，0 表示不筛选
func (r *RecordListRequest) MachineID() int64 { return optionalID(r.Mach) }

// DriverID 司机筛选 id，0 表示不筛选
func (r *RecordListRequest) DriverID() int64 { return optionalID(r.Driv) }

// CounterpartyID 交易对手筛选 id，0 表示不筛选
func (r *RecordListRequest) CounterpartyID() int64 { return optionalID(r.Cpar) }

// ExportRequest 导出参数：export=filtered 时按列表筛选条件导出，否则导出全部
type ExportRequest struct {
	RecordListRequest
	Export string `form:"export"`
}

// Filtered 是否为筛选导出
func (r *ExportRequest) Filtered() bool {
	return r.Export == "filtered"
}
