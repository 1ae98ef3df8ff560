package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/rotation"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)
	h.successResponse(w, r, "获取个人信息成功", myInfo)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(myInfo.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.errorResponse(w, r, "旧密码错误")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	myInfo.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateEmployee(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新密码失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新密码成功", nil)
}

// GetMyAttendance 默认返回本轮班周的出勤记录
func (h *Handler) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	week := h.calendar.WeekOf(time.Now())
	from, to := week.Start, week.Start.AddDate(0, 0, 6)

	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = h.calendar.ParseDate(v); err != nil {
			h.rotationError(w, r, err)
			return
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = h.calendar.ParseDate(v); err != nil {
			h.rotationError(w, r, err)
			return
		}
	}

	if err := utils.ValidateDateRange(from, to, h.config.Rotation.MaxRangeDays); err != nil {
		h.badRequest(w, r, err)
		return
	}

	records, err := h.repository.GetAttendancesByEmployee(myInfo.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取出勤记录成功", records)
}

func (h *Handler) GetMyShift(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	if !myInfo.HasTeam() {
		h.errorResponse(w, r, "尚未分配团队")
		return
	}

	date, err := h.queryDate(r, "date")
	if err != nil {
		h.rotationError(w, r, err)
		return
	}

	team := rotation.Team(myInfo.Team)
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
