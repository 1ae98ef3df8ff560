package rotation

import "fmt"

// DefaultCycles 返回每个团队在 3 周循环中依次担任的班次
// 任意一个循环位置上，三个团队的班次恰好覆盖三种班次
func DefaultCycles() map[Team][3]ShiftLabel {
	return map[Team][3]ShiftLabel{
		Team1: {ShiftEveningEntry, ShiftDay, ShiftNight},
		Team2: {ShiftNight, ShiftEveningEntry, ShiftDay},
		Team3: {ShiftDay, ShiftNight, ShiftEveningEntry},
	}
}

// ShiftAssigner 根据周序号和团队给出该团队当周的班次
type ShiftAssigner struct {
	table [3][3]ShiftLabel // [team-1][cycle]
}

func NewShiftAssigner(cycles map[Team][3]ShiftLabel) (*ShiftAssigner, error) {
	if cycles == nil {
		cycles = DefaultCycles()
	}

	a := &ShiftAssigner{}

	for team := range cycles {
		if _, err := ParseTeam(int(team)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	for _, team := range Teams {
		labels, ok := cycles[team]
		if !ok {
			return nil, fmt.Errorf("%w: 团队 %d 没有配置班次循环", ErrInvalidConfig, team)
		}
		for cycle, label := range labels {
			parsed, ok := ParseShiftLabel(string(label))
			if !ok {
				return nil, fmt.Errorf("%w: 团队 %d 第 %d 个班次 %q 不存在", ErrInvalidConfig, team, cycle+1, label)
			}
			a.table[team-1][cycle] = parsed
		}
	}

	// 每个循环位置上三个团队的班次必须互不相同
	for cycle := 0; cycle < 3; cycle++ {
		seen := make(map[ShiftLabel]Team, 3)
		for _, team := range Teams {
			label := a.table[team-1][cycle]
			if other, exists := seen[label]; exists {
				return nil, fmt.Errorf("%w: 第 %d 个循环位置上团队 %d 和团队 %d 的班次都是 %s", ErrInvalidConfig, cycle+1, other, team, label)
			}
			seen[label] = team
		}
	}

	return a, nil
}

// CyclePosition 返回周序号在 3 周循环中的位置，总是 0、1、2 之一
func CyclePosition(week int) int {
	m := week % 3
	if m < 0 {
		m += 3
	}
	// 等价于 (week - 1) mod 3，但不会因为 week - 1 溢出
	return (m + 2) % 3
}

func (a *ShiftAssigner) ShiftFor(week int, team Team) (ShiftLabel, error) {
	if _, err := ParseTeam(int(team)); err != nil {
		return "", err
	}
	return a.table[team-1][CyclePosition(week)], nil
}

func (a *ShiftAssigner) ShiftsFor(week int) map[Team]ShiftLabel {
	cycle := CyclePosition(week)
	shifts := make(map[Team]ShiftLabel, len(Teams))
	for _, team := range Teams {
		shifts[team] = a.table[team-1][cycle]
	}
	return shifts
}
