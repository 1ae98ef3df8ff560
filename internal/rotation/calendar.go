package rotation

import (
	"fmt"
	"strings"
	"time"
)

// Calendar 组合 WeekResolver 和 ShiftAssigner，是轮班计算的唯一入口
// Calendar 创建后不可变，可以被任意多个 goroutine 并发使用
type Calendar struct {
	loc      *time.Location
	resolver *WeekResolver
	assigner *ShiftAssigner
}

func New(cfg Config) (*Calendar, error) {
	if cfg.Location == nil {
		return nil, fmt.Errorf("%w: 未指定时区", ErrInvalidConfig)
	}
	if cfg.EpochAnchor.IsZero() {
		return nil, fmt.Errorf("%w: 未指定纪元锚点", ErrInvalidConfig)
	}

	boundaryHour := cfg.BoundaryHour
	if boundaryHour == 0 {
		boundaryHour = DefaultBoundaryHour
	}
	if boundaryHour < 0 || boundaryHour > 23 {
		return nil, fmt.Errorf("%w: 分界时刻 %d 不在 0~23 之间", ErrInvalidConfig, boundaryHour)
	}

	assigner, err := NewShiftAssigner(cfg.Cycles)
	if err != nil {
		return nil, err
	}

	return &Calendar{
		loc:      cfg.Location,
		resolver: NewWeekResolver(cfg.EpochAnchor, cfg.Location, boundaryHour),
		assigner: assigner,
	}, nil
}

// Default 返回以 2025-09-08 06:00（KST，周一）为第 1 周的日历
func Default() *Calendar {
	kst := time.FixedZone("KST", 9*60*60)
	c, err := New(Config{
		EpochAnchor: time.Date(2025, time.September, 8, DefaultBoundaryHour, 0, 0, 0, kst),
		Location:    kst,
	})
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

func (c *Calendar) WeekIndexOf(t time.Time) int {
	return c.resolver.WeekIndexOf(t)
}

func (c *Calendar) ShiftForWeek(week int, team Team) (ShiftLabel, error) {
	return c.assigner.ShiftFor(week, team)
}

func (c *Calendar) ShiftFor(t time.Time, team Team) (ShiftLabel, error) {
	return c.assigner.ShiftFor(c.resolver.WeekIndexOf(t), team)
}

func (c *Calendar) ShiftsFor(t time.Time) map[Team]ShiftLabel {
	return c.assigner.ShiftsFor(c.resolver.WeekIndexOf(t))
}

func (c *Calendar) WeekOf(t time.Time) Week {
	index := c.resolver.WeekIndexOf(t)
	start := c.resolver.WeekStartOf(index)

	return Week{
		Index:  index,
		Cycle:  CyclePosition(index),
		Start:  start,
		End:    c.resolver.WeekStartOf(index + 1),
		Shifts: c.assigner.ShiftsFor(index),
	}
}

// Days 返回 [from, to] 之间每一天（按本地零点计算）的轮班
func (c *Calendar) Days(from, to time.Time) ([]Day, error) {
	first := c.dateOf(from)
	last := c.dateOf(to)
	if last.Before(first) {
		return nil, ErrInvalidRange
	}

	days := make([]Day, 0, int(last.Sub(first).Hours()/24)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		local := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, c.loc)
		week := c.resolver.WeekIndexOf(local)
		days = append(days, Day{
			Date:      d.Format(time.DateOnly),
			WeekIndex: week,
			Shifts:    c.assigner.ShiftsFor(week),
		})
	}

	return days, nil
}

// dateOf 返回 t 在本地时区的日历日期（UTC 零点表示）
func (c *Calendar) dateOf(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var localLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006-01-02 15:04",
}

// ParseDate 按日历时区解析日期，带时区偏移的 RFC 3339 时间保留其偏移
func (c *Calendar) ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &InvalidDateError{Input: s}
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(c.loc), nil
	}

	var firstErr error
	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, s, c.loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return time.Time{}, &InvalidDateError{Input: s, Err: firstErr}
}
