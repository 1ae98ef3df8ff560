package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/rotation"
)

func TestValidateDateRange(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	day := func(d int) time.Time {
		return time.Date(2025, time.September, d, 0, 0, 0, 0, kst)
	}

	assert.NoError(t, ValidateDateRange(day(8), day(8), 1))
	assert.NoError(t, ValidateDateRange(day(1), day(30), 30))
	assert.Error(t, ValidateDateRange(day(1), day(30), 29))
	assert.Error(t, ValidateDateRange(day(9), day(8), 31))
	assert.NoError(t, ValidateDateRange(day(1), day(30), 0))

	// 同一个本地日期的不同时刻
	assert.NoError(t, ValidateDateRange(day(8).Add(23*time.Hour), day(8).Add(time.Hour), 1))
}

func TestValidateAttendanceStatus(t *testing.T) {
	for _, status := range []string{"已排班", "出勤", "缺勤", "请假"} {
		assert.NoError(t, ValidateAttendanceStatus(status))
	}
	assert.Error(t, ValidateAttendanceStatus("迟到"))
	assert.Error(t, ValidateAttendanceStatus(""))
}

func TestValidateTeamNumber(t *testing.T) {
	for _, team := range []int32{0, 1, 2, 3} {
		assert.NoError(t, ValidateTeamNumber(team))
	}
	assert.ErrorIs(t, ValidateTeamNumber(4), rotation.ErrInvalidTeam)
	assert.ErrorIs(t, ValidateTeamNumber(-1), rotation.ErrInvalidTeam)
}
