package service

import "time"

// TimeLayout 起止时间格式（24 小时制，无秒）
const TimeLayout = "15:04"

// ComputeHours 计算起止时间之间的整小时数
//
// 任一时间缺失或无法解析时返回 0，记录照常保存；
// 结束早于开始视为跨午夜，结束时间加 24 小时；不足一小时的部分截断。
func ComputeHours(start, end *string) int {
	if start == nil || end == nil {
		return 0
	}
	s, err := time.Parse(TimeLayout, *start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(TimeLayout, *end)
	if err != nil {
		return 0
	}
	if e.Before(s) {
		e = e.Add(24 * time.Hour)
	}
	return int(e.Sub(s) / time.Hour)
}
