package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fleet-tracker/backend/internal/dto"
	"fleet-tracker/backend/internal/service"
	"fleet-tracker/backend/pkg/response"
)

// CalendarHandler 机器月历 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// MachineCalendar 机器月历
// GET /api/v1/machines/:id/calendar?year=&month=
func (h *CalendarHandler) MachineCalendar(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}

	var req dto.CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	cal, err := h.calendarSvc.MachineMonth(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLookupNotFound):
			response.NotFound(c, 12001, "Machine not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, cal)
}
