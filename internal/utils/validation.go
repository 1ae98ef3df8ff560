package utils

import (
	"fmt"
	"slices"
	"time"

	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/rotation"
)

// ValidateDateRange 检查 [from, to] 是否合法，天数按 from 所在时区的日历日期计算且包含首尾两天
func ValidateDateRange(from, to time.Time, maxDays int) error {
	to = to.In(from.Location())
	first := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	if last.Before(first) {
		return fmt.Errorf("结束日期不能早于开始日期")
	}

	days := int(last.Sub(first).Hours()/24) + 1
	if maxDays > 0 && days > maxDays {
		return fmt.Errorf("日期范围不能超过 %d 天", maxDays)
	}

	return nil
}

func ValidateAttendanceStatus(status string) error {
	if !slices.Contains(domain.AttendanceStatuses, domain.AttendanceStatus(status)) {
		return fmt.Errorf("无效的出勤状态 %q", status)
	}
	return nil
}

// ValidateTeamNumber 允许 0（未分配）以及 1~3
func ValidateTeamNumber(team int32) error {
	if team == 0 {
		return nil
	}
	if _, err := rotation.ParseTeam(int(team)); err != nil {
		return err
	}
	return nil
}
