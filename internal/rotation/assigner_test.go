package rotation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCyclePosition(t *testing.T) {
	tests := map[int]int{
		1:  0,
		2:  1,
		3:  2,
		4:  0,
		0:  2,
		-1: 1,
		-2: 0,
		-3: 2,
	}

	for week, want := range tests {
		assert.Equal(t, want, CyclePosition(week), "week %d", week)
	}
}

func TestShiftAssigner_Coverage(t *testing.T) {
	a, err := NewShiftAssigner(nil)
	require.NoError(t, err)

	for week := -30; week <= 30; week++ {
		seen := map[ShiftLabel]bool{}
		for _, team := range Teams {
			label, err := a.ShiftFor(week, team)
			require.NoError(t, err)
			seen[label] = true
		}
		assert.Len(t, seen, 3, "week %d", week)
		assert.True(t, seen[ShiftEveningEntry] && seen[ShiftDay] && seen[ShiftNight], "week %d", week)
	}
}

func TestShiftAssigner_Periodicity(t *testing.T) {
	a, err := NewShiftAssigner(nil)
	require.NoError(t, err)

	for week := -10; week <= 10; week++ {
		assert.Equal(t, a.ShiftsFor(week), a.ShiftsFor(week+3), "week %d", week)
	}
}

func TestShiftAssigner_DefaultTable(t *testing.T) {
	a, err := NewShiftAssigner(nil)
	require.NoError(t, err)

	assert.Equal(t, map[Team]ShiftLabel{Team1: ShiftEveningEntry, Team2: ShiftNight, Team3: ShiftDay}, a.ShiftsFor(1))
	assert.Equal(t, map[Team]ShiftLabel{Team1: ShiftDay, Team2: ShiftEveningEntry, Team3: ShiftNight}, a.ShiftsFor(2))
	assert.Equal(t, map[Team]ShiftLabel{Team1: ShiftNight, Team2: ShiftDay, Team3: ShiftEveningEntry}, a.ShiftsFor(3))
	assert.Equal(t, a.ShiftsFor(3), a.ShiftsFor(0))
}

func TestShiftAssigner_InvalidTeam(t *testing.T) {
	a, err := NewShiftAssigner(nil)
	require.NoError(t, err)

	for _, team := range []Team{0, 4, -1} {
		label, err := a.ShiftFor(1, team)
		assert.Empty(t, label)
		assert.ErrorIs(t, err, ErrInvalidTeam)

		var teamErr *InvalidTeamError
		require.True(t, errors.As(err, &teamErr))
		assert.Equal(t, int(team), teamErr.Team)
	}
}

func TestNewShiftAssigner_Validation(t *testing.T) {
	t.Run("英文标识会被规范化", func(t *testing.T) {
		a, err := NewShiftAssigner(map[Team][3]ShiftLabel{
			Team1: {"day", "night", "evening-entry"},
			Team2: {"night", "evening-entry", "day"},
			Team3: {"evening-entry", "day", "night"},
		})
		require.NoError(t, err)

		label, err := a.ShiftFor(1, Team1)
		require.NoError(t, err)
		assert.Equal(t, ShiftDay, label)
	})

	t.Run("缺少团队", func(t *testing.T) {
		_, err := NewShiftAssigner(map[Team][3]ShiftLabel{
			Team1: {ShiftEveningEntry, ShiftDay, ShiftNight},
			Team2: {ShiftNight, ShiftEveningEntry, ShiftDay},
		})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("多余的团队", func(t *testing.T) {
		cycles := DefaultCycles()
		cycles[Team(4)] = [3]ShiftLabel{ShiftDay, ShiftDay, ShiftDay}
		_, err := NewShiftAssigner(cycles)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("未知班次", func(t *testing.T) {
		cycles := DefaultCycles()
		cycles[Team2] = [3]ShiftLabel{"오후", ShiftEveningEntry, ShiftDay}
		_, err := NewShiftAssigner(cycles)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("同一周两个团队同一班次", func(t *testing.T) {
		cycles := DefaultCycles()
		cycles[Team3] = [3]ShiftLabel{ShiftNight, ShiftDay, ShiftEveningEntry}
		_, err := NewShiftAssigner(cycles)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestParseTeam(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		team, err := ParseTeam(n)
		require.NoError(t, err)
		assert.Equal(t, Team(n), team)
	}

	_, err := ParseTeam(4)
	assert.ErrorIs(t, err, ErrInvalidTeam)
}

func TestParseShiftLabel(t *testing.T) {
	label, ok := ParseShiftLabel("심야")
	assert.True(t, ok)
	assert.Equal(t, ShiftNight, label)

	label, ok = ParseShiftLabel(" Evening-Entry ")
	assert.True(t, ok)
	assert.Equal(t, ShiftEveningEntry, label)
	assert.Equal(t, "evening-entry", label.Key())

	_, ok = ParseShiftLabel("afternoon")
	assert.False(t, ok)
}
