package utils

import (
	"time"

	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/rotation"
)

// BuildScheduledAttendances 为 [from, to] 的每一天、每一位已分配团队的在职员工生成一条排班记录
func BuildScheduledAttendances(cal *rotation.Calendar, employees []*domain.Employee, from, to time.Time) ([]*domain.AttendanceRecord, error) {
	days, err := cal.Days(from, to)
	if err != nil {
		return nil, err
	}

	records := make([]*domain.AttendanceRecord, 0, len(days)*len(employees))
	for _, day := range days {
		workDate, err := time.ParseInLocation(time.DateOnly, day.Date, cal.Location())
		if err != nil {
			return nil, err
		}

		for _, e := range employees {
			if !e.IsActive || !e.HasTeam() {
				continue
			}
			shift, ok := day.Shifts[rotation.Team(e.Team)]
			if !ok {
				continue
			}
			records = append(records, &domain.AttendanceRecord{
				EmployeeID:   e.ID,
				EmployeeName: e.FullName,
				WorkDate:     workDate,
				WeekIndex:    int32(day.WeekIndex),
				Team:         e.Team,
				Shift:        string(shift),
				Status:       domain.AttendanceScheduled,
			})
		}
	}

	return records, nil
}
