package domain

import (
	"time"
)

type AttendanceStatus string

const (
	AttendanceScheduled AttendanceStatus = "已排班"
	AttendancePresent   AttendanceStatus = "出勤"
	AttendanceAbsent    AttendanceStatus = "缺勤"
	AttendanceLeave     AttendanceStatus = "请假"
)

var AttendanceStatuses = []AttendanceStatus{
	AttendanceScheduled,
	AttendancePresent,
	AttendanceAbsent,
	AttendanceLeave,
}

type AttendanceRecord struct {
	ID           int64            `json:"id"`
	EmployeeID   int64            `json:"employeeID"`
	EmployeeName string           `json:"employeeName"`
	WorkDate     time.Time        `json:"workDate"`
	WeekIndex    int32            `json:"weekIndex"`
	Team         int32            `json:"team"`
	Shift        string           `json:"shift"`
	Status       AttendanceStatus `json:"status"`
	Note         string           `json:"note"`
	CreatedAt    time.Time        `json:"createdAt"`
	Version      int32            `json:"-"`
}
