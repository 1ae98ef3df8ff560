package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/rotation"
)

func TestBuildScheduledAttendances(t *testing.T) {
	cal := rotation.Default()
	loc := cal.Location()

	employees := []*domain.Employee{
		{ID: 1, FullName: "王伟", Team: 1, IsActive: true},
		{ID: 2, FullName: "李娜", Team: 2, IsActive: true},
		{ID: 3, FullName: "张强", Team: 3, IsActive: false},
		{ID: 4, FullName: "刘洋", Team: 0, IsActive: true},
	}

	from := time.Date(2025, time.September, 7, 0, 0, 0, 0, loc)
	to := time.Date(2025, time.September, 8, 0, 0, 0, 0, loc)

	records, err := BuildScheduledAttendances(cal, employees, from, to)
	require.NoError(t, err)
	require.Len(t, records, 4)

	// 2025-09-07 属于第 0 周，2025-09-08 属于第 1 周
	assert.Equal(t, int64(1), records[0].EmployeeID)
	assert.Equal(t, int32(0), records[0].WeekIndex)
	assert.Equal(t, string(rotation.ShiftNight), records[0].Shift)
	assert.Equal(t, int64(2), records[1].EmployeeID)
	assert.Equal(t, string(rotation.ShiftDay), records[1].Shift)

	assert.Equal(t, int32(1), records[2].WeekIndex)
	assert.Equal(t, string(rotation.ShiftEveningEntry), records[2].Shift)
	assert.Equal(t, string(rotation.ShiftNight), records[3].Shift)
	assert.Equal(t, "2025-09-08", records[3].WorkDate.Format(time.DateOnly))

	for _, record := range records {
		assert.Equal(t, domain.AttendanceScheduled, record.Status)
	}
}

func TestBuildScheduledAttendances_InvalidRange(t *testing.T) {
	cal := rotation.Default()
	now := time.Now()

	_, err := BuildScheduledAttendances(cal, nil, now, now.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, rotation.ErrInvalidRange)
}
