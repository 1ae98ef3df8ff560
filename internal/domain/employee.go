package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "管理员"
	RoleEmployee Role = "员工"
)

// Employee 中的 Team 为 0 表示尚未分配团队
type Employee struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Team         int32     `json:"team"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

func (e *Employee) HasTeam() bool {
	return e.Team > 0
}
