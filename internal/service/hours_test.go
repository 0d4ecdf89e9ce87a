package service

import "testing"

func TestComputeHours(t *testing.T) {
	str := func(s string) *string { return &s }

	cases := []struct {
		name       string
		start, end *string
		want       int
	}{
		{"整小时", str("08:00"), str("17:00"), 9},
		{"截断分钟", str("08:00"), str("17:59"), 9},
		{"跨午夜", str("22:00"), str("02:00"), 4},
		{"跨午夜截断", str("23:30"), str("01:15"), 1},
		{"相同时间", str("10:00"), str("10:00"), 0},
		{"不足一小时", str("10:00"), str("10:59"), 0},
		{"缺少开始", nil, str("10:00"), 0},
		{"缺少结束", str("10:00"), nil, 0},
		{"空字符串", str(""), str("10:00"), 0},
		{"格式错误", str("8am"), str("10:00"), 0},
		{"越界小时", str("25:00"), str("10:00"), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeHours(tc.start, tc.end); got != tc.want {
				t.Errorf("ComputeHours = %d, 期望 %d", got, tc.want)
			}
		})
	}
}
