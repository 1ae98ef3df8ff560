package domain

const (
	MailTypeCreateEmployee = "create_employee"
	MailTypeResetPassword  = "reset_password"
	MailTypeWeeklyShift    = "weekly_shift"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateEmployeeMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
	Team     int32  `json:"team"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type WeeklyShiftMailData struct {
	FullName  string `json:"fullName"`
	Team      int32  `json:"team"`
	WeekIndex int    `json:"weekIndex"`
	WeekStart string `json:"weekStart"`
	WeekEnd   string `json:"weekEnd"`
	Shift     string `json:"shift"`
}
