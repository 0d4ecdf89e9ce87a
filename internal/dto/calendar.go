package dto

// ── 机器月历 DTO ──

// CalendarRequest 月历查询参数，未传时为当月；显式传入的值（含 0）按范围截断
type CalendarRequest struct {
	Year  *int `form:"year"`
	Month *int `form:"month"`
}

// YearMonth 年月
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CalendarEntry 月历中某天的一条记录
type CalendarEntry struct {
	ID           int64   `json:"id"`
	DriverName   string  `json:"driver_name"`
	Status       string  `json:"status"`
	StatusColor  string  `json:"status_color"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	Hours        int     `json:"hours"`
	Counterparty string  `json:"counterparty"`
}

// CalendarDay 月历中的一天
type CalendarDay struct {
	Date    string          `json:"date"`
	Day     int             `json:"day"`
	Weekday int             `json:"weekday"` // 1=周一 … 7=周日
	Entries []CalendarEntry `json:"entries"`
}

// CalendarResponse 机器月历响应
type CalendarResponse struct {
	Machine LookupResponse `json:"machine"`
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	Prev    YearMonth      `json:"prev"`
	Next    YearMonth      `json:"next"`
	Days    []CalendarDay  `json:"days"`
}
