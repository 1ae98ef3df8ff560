package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/rotation"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/utils"
)

// queryDate 读取查询参数中的日期，参数为空时使用当前时间
func (h *Handler) queryDate(r *http.Request, key string) (time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return time.Now().In(h.calendar.Location()), nil
	}
	return h.calendar.ParseDate(value)
}

func queryTeam(r *http.Request) (rotation.Team, error) {
	value := strings.TrimSpace(r.URL.Query().Get("team"))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &rotation.InvalidTeamError{Team: n}
	}
	return rotation.ParseTeam(n)
}

type shiftResponse struct {
	Date      string              `json:"date"`
	WeekIndex int                 `json:"weekIndex"`
	Team      rotation.Team       `json:"team"`
	Shift     rotation.ShiftLabel `json:"shift"`
}

type shiftsResponse struct {
	Date      string                                `json:"date"`
	WeekIndex int                                   `json:"weekIndex"`
	Shifts    map[rotation.Team]rotation.ShiftLabel `json:"shifts"`
}

func (h *Handler) GetRotationWeek(w http.ResponseWriter, r *http.Request) {
	date, err := h.queryDate(r, "date")
	if err != nil {
		h.rotationError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取轮班周信息成功", h.calendar.WeekOf(date))
}

func (h *Handler) GetRotationShift(w http.ResponseWriter, r *http.Request) {
	date, err := h.queryDate(r, "date")
	if err != nil {
		h.rotationError(w, r, err)
		return
	}

	team, err := queryTeam(r)
	if err != nil {
		h.rotationError(w, r, err)
		return
	}

	shift, err := h.calendar.ShiftFor(date, team)
	if err != nil {
		h.rotationError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次成功", shiftResponse{
		Date:      date.Format(time.DateOnly),
		WeekIndex: h.calendar.WeekIndexOf(date),
		Team:      team,
		Shift:     shift,
	})
}

func (h *Handler) GetRotationShifts(w http.ResponseWriter, r *http.Request) {
	date, err := h.queryDate(r, "date")
	if err != nil {
		h.rotationError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次成功", shiftsResponse{
		Date:      date.Format(time.DateOnly),
		WeekIndex: h.calendar.WeekIndexOf(date),
		Shifts:    h.calendar.ShiftsFor(date),
	})
}

func (h *Handler) GetRotationCalendar(w http.ResponseWriter, r *http.Request) {
	from, err := h.calendar.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		h.rotationError(w, r, err)
		return
	}
	to, err := h.calendar.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		h.rotationError(w, r, err)
		return
	}

	if err := utils.ValidateDateRange(from, to, h.config.Rotation.MaxRangeDays); err != nil {
		h.badRequest(w, r, err)
		return
	}

	days, err := h.calendar.Days(from, to)
	if err != nil {
		h.rotationError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取轮班日历成功", days)
}

// NotifyWeeklyShift 向每一位已分配团队的在职员工发送指定周的班次通知
func (h *Handler) NotifyWeeklyShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}

	if r.ContentLength != 0 {
		if err := h.readJSON(r, &req); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	date := time.Now().In(h.calendar.Location())
	if req.Date != "" {
		var err error
		if date, err = h.calendar.ParseDate(req.Date); err != nil {
			h.rotationError(w, r, err)
			return
		}
	}

	week := h.calendar.WeekOf(date)

	employees, err := h.repository.GetActiveEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	sent := 0
	for _, e := range employees {
		shift, ok := week.Shifts[rotation.Team(e.Team)]
		if !ok {
			continue
		}

		if err := h.publishMail(r.Context(), domain.MailMessage{
			Type: domain.MailTypeWeeklyShift,
			To:   e.Email,
			Data: domain.WeeklyShiftMailData{
				FullName:  e.FullName,
				Team:      e.Team,
				WeekIndex: week.Index,
				WeekStart: week.Start.Format("2006-01-02 15:04"),
				WeekEnd:   week.End.Format("2006-01-02 15:04"),
				Shift:     string(shift),
			},
		}); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		sent++
	}

	h.successResponse(w, r, "班次通知已发送", map[string]int{
		"weekIndex": week.Index,
		"sent":      sent,
	})
}
