package dto

// ── 字典表（机器 / 司机 / 交易对手）DTO ──

// LookupRequest 新建 / 重命名请求
type LookupRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// LookupResponse 字典项响应
type LookupResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
