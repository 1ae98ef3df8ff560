package rotation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTeam   = errors.New("无效的团队")
	ErrInvalidDate   = errors.New("无效的日期")
	ErrInvalidRange  = errors.New("结束日期不能早于开始日期")
	ErrInvalidConfig = errors.New("无效的轮班配置")
)

type InvalidTeamError struct {
	Team int
}

func (e *InvalidTeamError) Error() string {
	return fmt.Sprintf("无效的团队 %d，只允许 1、2、3", e.Team)
}

func (e *InvalidTeamError) Is(target error) bool {
	return target == ErrInvalidTeam
}

type InvalidDateError struct {
	Input string
	Err   error
}

func (e *InvalidDateError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("无效的日期 %q", e.Input)
	}
	return fmt.Sprintf("无效的日期 %q: %v", e.Input, e.Err)
}

func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}
