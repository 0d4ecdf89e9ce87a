package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fleet-tracker/backend/internal/dto"
	"fleet-tracker/backend/internal/model"
	"fleet-tracker/backend/internal/repository"
)

// 月历可浏览的年份范围
const (
	CalendarMinYear = 2020
	CalendarMaxYear = 2030
)

// CalendarService 机器月历业务接口
type CalendarService interface {
	// MachineMonth 某台机器某月的逐日记录；机器不存在时返回 ErrLookupNotFound
	MachineMonth(ctx context.Context, machineID int64, req *dto.CalendarRequest) (*dto.CalendarResponse, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// MachineMonth 机器月历
// ═══════════════════════════════════════════════════════════
//
// 年份截断到 [2020, 2030]，月份截断到 [1, 12]，未传时取当前年月；
// prev/next 跨年时年份随之进退。

func (s *calendarService) MachineMonth(ctx context.Context, machineID int64, req *dto.CalendarRequest) (*dto.CalendarResponse, error) {
	machine, err := s.repo.Machine.GetByID(ctx, machineID)
	if err != nil {
		return nil, mapLookupErr(err)
	}

	year, month := s.resolveYearMonth(req)
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	rows, err := s.repo.Record.ListForMachine(ctx, machineID, first.Format(model.DateLayout), last.Format(model.DateLayout))
	if err != nil {
		s.logger.Error("查询机器月历失败", zap.Int64("machine_id", machineID), zap.Error(err))
		return nil, err
	}

	byDate := make(map[string][]dto.CalendarEntry)
	for _, row := range rows {
		byDate[string(row.Date)] = append(byDate[string(row.Date)], toCalendarEntry(row))
	}

	days := make([]dto.CalendarDay, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(model.DateLayout)
		entries := byDate[key]
		if entries == nil {
			entries = []dto.CalendarEntry{}
		}
		weekday := int(d.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		days = append(days, dto.CalendarDay{
			Date:    key,
			Day:     d.Day(),
			Weekday: weekday,
			Entries: entries,
		})
	}

	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	return &dto.CalendarResponse{
		Machine: *toLookupResponse(machine),
		Year:    year,
		Month:   month,
		Prev:    dto.YearMonth{Year: prev.Year(), Month: int(prev.Month())},
		Next:    dto.YearMonth{Year: next.Year(), Month: int(next.Month())},
		Days:    days,
	}, nil
}

func (s *calendarService) resolveYearMonth(req *dto.CalendarRequest) (int, int) {
	now := s.now()
	year, month := now.Year(), int(now.Month())
	if req.Year != nil {
		year = *req.Year
	}
	if req.Month != nil {
		month = *req.Month
	}
	return clamp(year, CalendarMinYear, CalendarMaxYear), clamp(month, 1, 12)
}

func toCalendarEntry(row model.RecordRow) dto.CalendarEntry {
	counterparty := row.CounterpartyName
	if counterparty == model.NoneLabel {
		counterparty = ""
	}
	status := model.RecordStatus(row.Status)
	return dto.CalendarEntry{
		ID:           row.ID,
		DriverName:   row.DriverName,
		Status:       row.Status,
		StatusColor:  "#" + status.Color(),
		StartTime:    row.StartTime,
		EndTime:      row.EndTime,
		Hours:        row.Hours,
		Counterparty: counterparty,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
