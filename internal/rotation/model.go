package rotation

import (
	"strings"
	"time"
)

// Team: 三个固定的轮班团队
type Team int

const (
	Team1 Team = 1
	Team2 Team = 2
	Team3 Team = 3
)

// Teams 按编号顺序列出所有团队
var Teams = [3]Team{Team1, Team2, Team3}

func ParseTeam(n int) (Team, error) {
	switch Team(n) {
	case Team1, Team2, Team3:
		return Team(n), nil
	default:
		return 0, &InvalidTeamError{Team: n}
	}
}

// ShiftLabel: 班次类型
type ShiftLabel string

const (
	ShiftEveningEntry ShiftLabel = "초야"
	ShiftDay          ShiftLabel = "주간"
	ShiftNight        ShiftLabel = "심야"
)

var shiftKeys = map[string]ShiftLabel{
	"evening-entry": ShiftEveningEntry,
	"day":           ShiftDay,
	"night":         ShiftNight,
}

// Key 返回班次的英文标识
func (l ShiftLabel) Key() string {
	for key, label := range shiftKeys {
		if label == l {
			return key
		}
	}
	return ""
}

// ParseShiftLabel 同时接受韩文标签和英文标识
func ParseShiftLabel(s string) (ShiftLabel, bool) {
	s = strings.TrimSpace(s)
	switch ShiftLabel(s) {
	case ShiftEveningEntry, ShiftDay, ShiftNight:
		return ShiftLabel(s), true
	}
	label, ok := shiftKeys[strings.ToLower(s)]
	return label, ok
}

// Config: 日历的构造参数
type Config struct {
	EpochAnchor  time.Time              // 第 1 周所在的时刻
	Location     *time.Location         // 所有日期计算使用的时区
	BoundaryHour int                    // 每周的分界时刻（周一几点），为 0 时使用 DefaultBoundaryHour
	Cycles       map[Team][3]ShiftLabel // 为 nil 时使用 DefaultCycles
}

// Week: 某一周的轮班信息
type Week struct {
	Index  int                 `json:"index"`
	Cycle  int                 `json:"cycle"`
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"` // 下一周的开始时刻（不包含）
	Shifts map[Team]ShiftLabel `json:"shifts"`
}

// Day: 日历视图中的一天
type Day struct {
	Date      string              `json:"date"`
	WeekIndex int                 `json:"weekIndex"`
	Shifts    map[Team]ShiftLabel `json:"shifts"`
}
