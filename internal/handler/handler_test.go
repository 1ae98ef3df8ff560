package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/rotation"
)

type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestHandler 创建一个不依赖数据库、消息队列和 redis 的 Handler
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 1
	cfg.Rotation.MaxRangeDays = 62

	h, err := NewHandler(cfg, nil, nil, nil, rotation.Default())
	require.NoError(t, err)
	h.RegisterRoutes()

	return h
}

func tokenCookie(t *testing.T, h *Handler, role domain.Role) *http.Cookie {
	t.Helper()

	ss, _, err := h.issueToken(&domain.Employee{ID: 1, Role: role})
	require.NoError(t, err)

	return &http.Cookie{Name: tokenCookieName, Value: ss}
}

func doRequest(t *testing.T, h *Handler, method, target, body string, cookie *http.Cookie) testResponse {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAuth_RequiresToken(t *testing.T) {
	h := newTestHandler(t)

	resp := doRequest(t, h, http.MethodGet, "/rotation/week?date=2025-09-08", "", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "用户未登录", resp.Message)

	resp = doRequest(t, h, http.MethodGet, "/rotation/week?date=2025-09-08", "", &http.Cookie{Name: tokenCookieName, Value: "garbage"})
	assert.False(t, resp.Success)
	assert.Equal(t, "无效的令牌", resp.Message)
}

func TestGetRotationWeek(t *testing.T) {
	h := newTestHandler(t)
	cookie := tokenCookie(t, h, domain.RoleEmployee)

	resp := doRequest(t, h, http.MethodGet, "/rotation/week?date=2025-09-08", "", cookie)
	require.True(t, resp.Success, resp.Message)

	var week rotation.Week
	require.NoError(t, json.Unmarshal(resp.Data, &week))
	assert.Equal(t, 1, week.Index)
	assert.Equal(t, 0, week.Cycle)
	assert.Equal(t, rotation.ShiftEveningEntry, week.Shifts[rotation.Team1])
	assert.Equal(t, rotation.ShiftNight, week.Shifts[rotation.Team2])
	assert.Equal(t, rotation.ShiftDay, week.Shifts[rotation.Team3])

	resp = doRequest(t, h, http.MethodGet, "/rotation/week?date=not-a-date", "", cookie)
	assert.False(t, resp.Success)
	assert.Equal(t, "无效的日期", resp.Message)
}

func TestGetRotationShift(t *testing.T) {
	h := newTestHandler(t)
	cookie := tokenCookie(t, h, domain.RoleEmployee)

	resp := doRequest(t, h, http.MethodGet, "/rotation/shift?date=2025-10-27&team=2", "", cookie)
	require.True(t, resp.Success, resp.Message)

	var shift shiftResponse
	require.NoError(t, json.Unmarshal(resp.Data, &shift))
	assert.Equal(t, "2025-10-27", shift.Date)
	assert.Equal(t, 8, shift.WeekIndex)
	assert.Equal(t, rotation.Team2, shift.Team)
	assert.Equal(t, rotation.ShiftEveningEntry, shift.Shift)

	for _, team := range []string{"4", "0", "abc", ""} {
		resp = doRequest(t, h, http.MethodGet, "/rotation/shift?date=2025-10-27&team="+team, "", cookie)
		assert.False(t, resp.Success, team)
		assert.Equal(t, "无效的团队", resp.Message, team)
	}
}

func TestGetRotationShifts(t *testing.T) {
	h := newTestHandler(t)
	cookie := tokenCookie(t, h, domain.RoleEmployee)

	resp := doRequest(t, h, http.MethodGet, "/rotation/shifts?date=2025-09-07", "", cookie)
	require.True(t, resp.Success, resp.Message)

	var shifts shiftsResponse
	require.NoError(t, json.Unmarshal(resp.Data, &shifts))
	assert.Equal(t, 0, shifts.WeekIndex)
	assert.Equal(t, map[rotation.Team]rotation.ShiftLabel{
		rotation.Team1: rotation.ShiftNight,
		rotation.Team2: rotation.ShiftDay,
		rotation.Team3: rotation.ShiftEveningEntry,
	}, shifts.Shifts)
}

func TestGetRotationCalendar(t *testing.T) {
	h := newTestHandler(t)
	cookie := tokenCookie(t, h, domain.RoleEmployee)

	resp := doRequest(t, h, http.MethodGet, "/rotation/calendar?from=2025-09-01&to=2025-09-14", "", cookie)
	require.True(t, resp.Success, resp.Message)

	var days []rotation.Day
	require.NoError(t, json.Unmarshal(resp.Data, &days))
	require.Len(t, days, 14)
	assert.Equal(t, 0, days[0].WeekIndex)
	assert.Equal(t, 0, days[6].WeekIndex)
	assert.Equal(t, 1, days[7].WeekIndex)
	assert.Equal(t, "2025-09-08", days[7].Date)

	resp = doRequest(t, h, http.MethodGet, "/rotation/calendar?from=2025-09-14&to=2025-09-01", "", cookie)
	assert.False(t, resp.Success)

	resp = doRequest(t, h, http.MethodGet, "/rotation/calendar?from=2025-01-01&to=2025-12-31", "", cookie)
	assert.False(t, resp.Success)
	assert.Equal(t, "日期范围不能超过 62 天", resp.Message)

	resp = doRequest(t, h, http.MethodGet, "/rotation/calendar?from=2025-09-01", "", cookie)
	assert.False(t, resp.Success)
	assert.Equal(t, "无效的日期", resp.Message)
}

func TestAdminOnlyRoutes(t *testing.T) {
	h := newTestHandler(t)
	cookie := tokenCookie(t, h, domain.RoleEmployee)

	resp := doRequest(t, h, http.MethodPost, "/rotation/notify", "", cookie)
	assert.False(t, resp.Success)
	assert.Equal(t, "权限不足", resp.Message)

	resp = doRequest(t, h, http.MethodPost, "/attendance/auto-fill", `{"date":"2025-09-08"}`, cookie)
	assert.False(t, resp.Success)
	assert.Equal(t, "权限不足", resp.Message)
}

func TestAutoFillAttendance_Validation(t *testing.T) {
	h := newTestHandler(t)
	cookie := tokenCookie(t, h, domain.RoleAdmin)

	resp := doRequest(t, h, http.MethodPost, "/attendance/auto-fill", `{"date":"2025-13-40"}`, cookie)
	assert.False(t, resp.Success)
	assert.Equal(t, "无效的日期", resp.Message)

	resp = doRequest(t, h, http.MethodPost, "/attendance/auto-fill", `{"from":"2025-09-01","to":"2025-10-15"}`, cookie)
	assert.False(t, resp.Success)
	assert.Equal(t, "日期范围不能超过 31 天", resp.Message)

	resp = doRequest(t, h, http.MethodPost, "/attendance/auto-fill", `{}`, cookie)
	assert.False(t, resp.Success)

	resp = doRequest(t, h, http.MethodPost, "/attendance/auto-fill", `{"from":"2025-09-01"}`, cookie)
	assert.False(t, resp.Success)

	resp = doRequest(t, h, http.MethodPost, "/attendance/auto-fill", ``, cookie)
	assert.False(t, resp.Success)
	assert.Equal(t, "请求体不能为空", resp.Message)
}
