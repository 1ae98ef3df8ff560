package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/utils"
)

const maxAutoFillDays = 31

func (h *Handler) GetAttendancesByDate(w http.ResponseWriter, r *http.Request) {
	date, err := h.queryDate(r, "date")
	if err != nil {
		h.rotationError(w, r, err)
		return
	}

	records, err := h.repository.GetAttendancesByDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取出勤记录成功", records)
}

// AutoFillAttendance 按轮班日历为在职员工生成排班记录，已存在的记录不会被覆盖
func (h *Handler) AutoFillAttendance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date" validate:"required_without_all=From To"`
		From string `json:"from" validate:"required_with=To"`
		To   string `json:"to" validate:"required_with=From"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	fromInput, toInput := req.From, req.To
	if req.Date != "" {
		fromInput, toInput = req.Date, req.Date
	}

	from, err := h.calendar.ParseDate(fromInput)
	if err != nil {
		h.rotationError(w, r, err)
		return
	}
	to, err := h.calendar.ParseDate(toInput)
	if err != nil {
		h.rotationError(w, r, err)
		return
	}

	if err := utils.ValidateDateRange(from, to, maxAutoFillDays); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employees, err := h.repository.GetActiveEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	records, err := utils.BuildScheduledAttendances(h.calendar, employees, from, to)
	if err != nil {
		h.rotationError(w, r, err)
		return
	}

	inserted, err := h.repository.InsertScheduledAttendances(records)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "自动排班成功", map[string]int64{
		"total":    int64(len(records)),
		"inserted": inserted,
	})
}

func (h *Handler) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status *string `json:"status"`
		Note   *string `json:"note" validate:"omitempty,max=200"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Status != nil {
		if err := utils.ValidateAttendanceStatus(*req.Status); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	record := r.Context().Value(AttendanceCtx).(*domain.AttendanceRecord)

	if req.Status != nil {
		record.Status = domain.AttendanceStatus(*req.Status)
	}
	if req.Note != nil {
		record.Note = *req.Note
	}

	if err := h.repository.UpdateAttendance(record); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新出勤记录失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新出勤记录成功", record)
}

func (h *Handler) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(AttendanceCtx).(*domain.AttendanceRecord)

	if err := h.repository.DeleteAttendance(record.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除出勤记录成功", nil)
}
