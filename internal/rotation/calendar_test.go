package rotation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCalendar_AnchorScenario(t *testing.T) {
	c := Default()

	date, err := c.ParseDate("2025-09-08")
	require.NoError(t, err)
	assert.Equal(t, 1, c.WeekIndexOf(date))

	tests := []struct {
		team Team
		want ShiftLabel
	}{
		{Team1, ShiftEveningEntry},
		{Team2, ShiftNight},
		{Team3, ShiftDay},
	}
	for _, tt := range tests {
		label, err := c.ShiftFor(date, tt.team)
		require.NoError(t, err)
		assert.Equal(t, tt.want, label, "team %d", tt.team)
	}

	sunday, err := c.ParseDate("2025-09-07")
	require.NoError(t, err)
	assert.Equal(t, 0, c.WeekIndexOf(sunday))
}

func TestCalendar_ShiftsFor(t *testing.T) {
	c := Default()

	shifts := c.ShiftsFor(at(2025, time.October, 27, 9, 0)) // 第 8 周
	assert.Equal(t, map[Team]ShiftLabel{Team1: ShiftDay, Team2: ShiftEveningEntry, Team3: ShiftNight}, shifts)

	for _, team := range Teams {
		label, err := c.ShiftFor(at(2025, time.October, 27, 9, 0), team)
		require.NoError(t, err)
		assert.Equal(t, shifts[team], label)
	}
}

func TestCalendar_Periodicity(t *testing.T) {
	c := Default()

	for d := at(2025, time.June, 1, 0, 0); d.Before(at(2026, time.June, 1, 0, 0)); d = d.Add(29 * time.Hour) {
		week := c.WeekIndexOf(d)
		for _, team := range Teams {
			now, err := c.ShiftForWeek(week, team)
			require.NoError(t, err)
			later, err := c.ShiftForWeek(week+3, team)
			require.NoError(t, err)
			assert.Equal(t, now, later)
		}
	}
}

func TestCalendar_InvalidTeam(t *testing.T) {
	c := Default()

	label, err := c.ShiftFor(at(2025, time.September, 8, 6, 0), Team(4))
	assert.Empty(t, label)

	var teamErr *InvalidTeamError
	require.True(t, errors.As(err, &teamErr))
	assert.Equal(t, 4, teamErr.Team)
}

func TestCalendar_WeekOf(t *testing.T) {
	c := Default()

	week := c.WeekOf(at(2025, time.September, 13, 12, 0))
	assert.Equal(t, 1, week.Index)
	assert.Equal(t, 0, week.Cycle)
	assert.True(t, week.Start.Equal(at(2025, time.September, 8, 6, 0)))
	assert.True(t, week.End.Equal(at(2025, time.September, 15, 6, 0)))
	assert.Equal(t, ShiftEveningEntry, week.Shifts[Team1])
}

func TestCalendar_Days(t *testing.T) {
	c := Default()

	days, err := c.Days(at(2025, time.September, 6, 0, 0), at(2025, time.September, 9, 23, 0))
	require.NoError(t, err)
	require.Len(t, days, 4)

	assert.Equal(t, "2025-09-06", days[0].Date)
	assert.Equal(t, 0, days[0].WeekIndex)
	assert.Equal(t, "2025-09-07", days[1].Date)
	assert.Equal(t, 0, days[1].WeekIndex)
	assert.Equal(t, "2025-09-08", days[2].Date)
	assert.Equal(t, 1, days[2].WeekIndex)
	assert.Equal(t, ShiftNight, days[2].Shifts[Team2])

	_, err = c.Days(at(2025, time.September, 9, 0, 0), at(2025, time.September, 8, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCalendar_ParseDate(t *testing.T) {
	c := Default()

	tests := []struct {
		input string
		want  time.Time
	}{
		{"2025-09-08", at(2025, time.September, 8, 0, 0)},
		{"2025-09-08T06:30", at(2025, time.September, 8, 6, 30)},
		{"2025-09-08 06:30:00", at(2025, time.September, 8, 6, 30)},
		{"2025-09-07T21:30:00Z", at(2025, time.September, 8, 6, 30)},
	}
	for _, tt := range tests {
		got, err := c.ParseDate(tt.input)
		require.NoError(t, err, tt.input)
		assert.True(t, tt.want.Equal(got), "%s: got %v", tt.input, got)
	}

	for _, input := range []string{"", "not-a-date", "2025-02-30", "2025-13-01"} {
		_, err := c.ParseDate(input)
		assert.ErrorIs(t, err, ErrInvalidDate, input)

		var dateErr *InvalidDateError
		require.True(t, errors.As(err, &dateErr), input)
	}
}

func TestNew_Validation(t *testing.T) {
	anchor := at(2025, time.September, 8, 6, 0)

	_, err := New(Config{EpochAnchor: anchor})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(Config{Location: kst})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(Config{EpochAnchor: anchor, Location: kst, BoundaryHour: 24})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	c, err := New(Config{EpochAnchor: anchor, Location: kst, BoundaryHour: 8})
	require.NoError(t, err)
	// 分界时刻为 08:00 时，周六 07:00 仍算作周五所在的周
	assert.Equal(t, c.WeekIndexOf(at(2025, time.September, 12, 9, 0)), c.WeekIndexOf(at(2025, time.September, 13, 7, 0)))
	assert.True(t, c.WeekOf(anchor).Start.Equal(at(2025, time.September, 8, 8, 0)))
}

func TestCalendar_ConcurrentCalls(t *testing.T) {
	c := Default()
	date := at(2025, time.November, 19, 14, 0)

	want, err := c.ShiftFor(date, Team2)
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 64; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				got, err := c.ShiftFor(date, Team2)
				if err != nil {
					return err
				}
				if got != want {
					return errors.New("并发调用得到了不同的结果")
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
