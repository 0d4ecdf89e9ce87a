package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"fleet-tracker/backend/internal/dto"
	"fleet-tracker/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestCalendarService(now time.Time) (CalendarService, *mockRepos) {
	repo, mocks := newMockRepository()
	svc := &calendarService{repo: repo, logger: zap.NewNop(), now: func() time.Time { return now }}
	return svc, mocks
}

func TestCalendarService_MachineNotFound(t *testing.T) {
	svc, _ := setupTestCalendarService(time.Now())

	_, err := svc.MachineMonth(context.Background(), 1, &dto.CalendarRequest{})
	if !errors.Is(err, ErrLookupNotFound) {
		t.Errorf("期望 ErrLookupNotFound，实际: %v", err)
	}
}

func TestCalendarService_DefaultsToCurrentMonth(t *testing.T) {
	svc, mocks := setupTestCalendarService(time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC))
	mocks.machine.items[1] = &model.Lookup{ID: 1, Name: "AN-30"}

	cal, err := svc.MachineMonth(context.Background(), 1, &dto.CalendarRequest{})
	if err != nil {
		t.Fatalf("MachineMonth 应成功: %v", err)
	}
	if cal.Year != 2024 || cal.Month != 2 {
		t.Errorf("期望 2024-02，实际 %d-%d", cal.Year, cal.Month)
	}
	if len(cal.Days) != 29 {
		t.Errorf("2024 年 2 月应有 29 天，实际 %d", len(cal.Days))
	}
	if cal.Days[0].Weekday != 4 {
		t.Errorf("2024-02-01 为周四，实际 weekday=%d", cal.Days[0].Weekday)
	}
}

func TestCalendarService_ClampAndRollover(t *testing.T) {
	svc, mocks := setupTestCalendarService(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	mocks.machine.items[1] = &model.Lookup{ID: 1, Name: "AN-30"}
	ctx := context.Background()

	cal, err := svc.MachineMonth(ctx, 1, &dto.CalendarRequest{Year: intPtr(2019), Month: intPtr(1)})
	if err != nil {
		t.Fatalf("MachineMonth 应成功: %v", err)
	}
	if cal.Year != 2020 || cal.Month != 1 {
		t.Errorf("年份应截断为 2020，实际 %d-%d", cal.Year, cal.Month)
	}
	if cal.Prev != (dto.YearMonth{Year: 2019, Month: 12}) || cal.Next != (dto.YearMonth{Year: 2020, Month: 2}) {
		t.Errorf("prev/next 错误: %+v %+v", cal.Prev, cal.Next)
	}

	cal, _ = svc.MachineMonth(ctx, 1, &dto.CalendarRequest{Year: intPtr(2031), Month: intPtr(13)})
	if cal.Year != 2030 || cal.Month != 12 {
		t.Errorf("期望截断为 2030-12，实际 %d-%d", cal.Year, cal.Month)
	}
	if cal.Next != (dto.YearMonth{Year: 2031, Month: 1}) {
		t.Errorf("12 月的下一月应跨年，实际 %+v", cal.Next)
	}

	// 显式传 0 与未传不同：截断到下限而不是取当前年月
	cal, _ = svc.MachineMonth(ctx, 1, &dto.CalendarRequest{Year: intPtr(0), Month: intPtr(0)})
	if cal.Year != 2020 || cal.Month != 1 {
		t.Errorf("year=0 month=0 期望截断为 2020-01，实际 %d-%d", cal.Year, cal.Month)
	}
}

func intPtr(v int) *int { return &v }

func TestCalendarService_Entries(t *testing.T) {
	svc, mocks := setupTestCalendarService(time.Now())
	mocks.machine.items[1] = &model.Lookup{ID: 1, Name: "AN-30"}
	mocks.driver.items[4] = &model.Lookup{ID: 4, Name: "Petrov"}
	mocks.record.records[1] = &model.Record{ID: 1, Date: "2024-03-05", MachineID: int64Ptr(1), DriverID: int64Ptr(4), Status: model.StatusRepair}
	mocks.record.records[2] = &model.Record{ID: 2, Date: "2024-03-05", MachineID: int64Ptr(1), Status: model.StatusWork}
	mocks.record.records[3] = &model.Record{ID: 3, Date: "2024-04-01", MachineID: int64Ptr(1), Status: model.StatusWork}

	cal, err := svc.MachineMonth(context.Background(), 1, &dto.CalendarRequest{Year: intPtr(2024), Month: intPtr(3)})
	if err != nil {
		t.Fatalf("MachineMonth 应成功: %v", err)
	}

	day := cal.Days[4]
	if day.Date != "2024-03-05" || len(day.Entries) != 2 {
		t.Fatalf("3 月 5 日应有 2 条记录，实际 %+v", day)
	}
	if day.Entries[0].DriverName != "Petrov" || day.Entries[0].StatusColor != "#FFF9C4" {
		t.Errorf("条目错误: %+v", day.Entries[0])
	}
	if day.Entries[1].DriverName != model.NoneLabel || day.Entries[1].Counterparty != "" {
		t.Errorf("未设置司机应为 —，未设置交易对手应为空串: %+v", day.Entries[1])
	}
	for _, d := range cal.Days {
		if d.Date != "2024-03-05" && len(d.Entries) != 0 {
			t.Errorf("%s 不应有记录", d.Date)
		}
	}
}
