package rotation

import "time"

const DefaultBoundaryHour = 6

const secondsPerDay = 24 * 60 * 60

// WeekResolver 把任意时刻映射为相对纪元锚点的周序号
//
// 每周从周一的分界时刻开始。周日以及周六分界时刻之前的时间会先回退一天再计算所属的周，
// 锚点所在的周为第 1 周，锚点之前的周序号可以为 0 或负数。
type WeekResolver struct {
	loc          *time.Location
	boundaryHour int
	anchorMonday time.Time // 锚点所在周的周一，UTC 零点表示的日历日期
}

func NewWeekResolver(anchor time.Time, loc *time.Location, boundaryHour int) *WeekResolver {
	r := &WeekResolver{
		loc:          loc,
		boundaryHour: boundaryHour,
	}
	r.anchorMonday = r.mondayOf(anchor)
	return r
}

// mondayOf 返回 t 所属周的周一
// 结果只表示日历日期（UTC 零点），这样天数差不会受到夏令时的影响
func (r *WeekResolver) mondayOf(t time.Time) time.Time {
	t = t.In(r.loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	if t.Weekday() == time.Sunday || (t.Weekday() == time.Saturday && t.Hour() < r.boundaryHour) {
		day = day.AddDate(0, 0, -1)
	}

	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

func (r *WeekResolver) WeekIndexOf(t time.Time) int {
	days := (r.mondayOf(t).Unix() - r.anchorMonday.Unix()) / secondsPerDay
	return int(floorDiv(days, 7)) + 1
}

// WeekStart 返回 t 所属周的开始时刻（周一分界时刻，本地时区）
func (r *WeekResolver) WeekStart(t time.Time) time.Time {
	return r.atBoundary(r.mondayOf(t))
}

// WeekStartOf 返回第 index 周的开始时刻
func (r *WeekResolver) WeekStartOf(index int) time.Time {
	return r.atBoundary(r.anchorMonday.AddDate(0, 0, (index-1)*7))
}

func (r *WeekResolver) atBoundary(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), r.boundaryHour, 0, 0, 0, r.loc)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
