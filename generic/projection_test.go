package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/heads-planner/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func heads(n int) generic.Amount {
	return generic.NewAmountFromInt(n, generic.UnitHeads)
}

func newEngine() *generic.ProjectionEngine {
	return &generic.ProjectionEngine{Unit: generic.UnitHeads}
}

// =============================================================================
// PROJECTION ENGINE
// =============================================================================

func TestProject_RecurringFromDayZero(t *testing.T) {
	// GIVEN: 2 heads per day over 30 days
	points := newEngine().Project(generic.ProjectionInput{
		Schedule: generic.DailyAccrual{Rate: heads(2)},
		Horizon:  30,
	})

	// THEN: days 0..30, day 0 already credited
	require.Len(t, points, 31)
	assert.Equal(t, 2, points[0].Recurring.Int())
	assert.Equal(t, 62, points[30].Recurring.Int())
	assert.Equal(t, 62, points[30].Total.Int())
}

func TestProject_LumpsAreFrontLoaded(t *testing.T) {
	// GIVEN: an event lump on day 5 and a spin lump on day 3
	points := newEngine().Project(generic.ProjectionInput{
		Horizon: 10,
		Lumps: []generic.Lump{
			{Offset: 5, Channel: generic.ChannelEvents, Amount: heads(10)},
			{Offset: 3, Channel: generic.ChannelSpins, Amount: heads(7)},
			{Offset: 5, Channel: generic.ChannelEvents, Amount: heads(2)},
		},
	})

	// THEN: each lump lands in full on its offset
	assert.Equal(t, 0, points[4].Events.Int())
	assert.Equal(t, 12, points[5].Events.Int())
	assert.Equal(t, 12, points[10].Events.Int())
	assert.Equal(t, 0, points[2].Spins.Int())
	assert.Equal(t, 7, points[3].Spins.Int())
	assert.Equal(t, 19, points[10].Total.Int())
}

func TestProject_NegativeOffsetLandsOnDayZero(t *testing.T) {
	points := newEngine().Project(generic.ProjectionInput{
		Horizon: 3,
		Lumps:   []generic.Lump{{Offset: -2, Channel: generic.ChannelEvents, Amount: heads(5)}},
	})
	assert.Equal(t, 5, points[0].Events.Int())
}

func TestProject_LumpPastHorizonNeverLands(t *testing.T) {
	points := newEngine().Project(generic.ProjectionInput{
		Horizon: 3,
		Lumps:   []generic.Lump{{Offset: 4, Channel: generic.ChannelEvents, Amount: heads(5)}},
	})
	assert.Equal(t, 0, generic.Final(points, generic.UnitHeads).Total.Int())
}

func TestProject_ZeroHorizonYieldsTwoPoints(t *testing.T) {
	points := newEngine().Project(generic.ProjectionInput{
		Schedule: generic.DailyAccrual{Rate: heads(1)},
		Horizon:  0,
	})
	require.Len(t, points, 2)
	assert.Equal(t, 0, points[0].Day)
	assert.Equal(t, 1, points[1].Day)
}

func TestProject_ChannelsNonDecreasingAndTotalIsSum(t *testing.T) {
	points := newEngine().Project(generic.ProjectionInput{
		Schedule: generic.DailyAccrual{Rate: heads(3)},
		Horizon:  20,
		Lumps: []generic.Lump{
			{Offset: 1, Channel: generic.ChannelEvents, Amount: heads(10)},
			{Offset: 7, Channel: generic.ChannelSpins, Amount: heads(4)},
			{Offset: 15, Channel: generic.ChannelEvents, Amount: heads(2)},
		},
	})

	for i, p := range points {
		assert.True(t, p.Total.Equal(p.Recurring.Add(p.Events).Add(p.Spins)), "day %d", i)
		if i == 0 {
			continue
		}
		prev := points[i-1]
		assert.False(t, p.Recurring.LessThan(prev.Recurring))
		assert.False(t, p.Events.LessThan(prev.Events))
		assert.False(t, p.Spins.LessThan(prev.Spins))
	}
}

func TestFinal_EmptySeries(t *testing.T) {
	p := generic.Final(nil, generic.UnitHeads)
	assert.True(t, p.Total.IsZero())
	assert.Equal(t, generic.UnitHeads, p.Total.Unit)
}

// =============================================================================
// ACCRUAL AND TIME
// =============================================================================

func TestDailyAccrual_GenerateAccruals(t *testing.T) {
	from := generic.NewTimePoint(2025, time.March, 1)
	to := generic.NewTimePoint(2025, time.March, 10)
	sched := generic.DailyAccrual{Rate: heads(2), Reason: "vip"}

	accruals := sched.GenerateAccruals(from, to)
	require.Len(t, accruals, 10)
	assert.Equal(t, "vip", accruals[0].Reason)
	assert.Equal(t, 20, generic.Total(sched, from, to, generic.UnitHeads).Int())

	assert.Empty(t, generic.DailyAccrual{Rate: heads(0)}.GenerateAccruals(from, to))
}

func TestDayOffset(t *testing.T) {
	today := generic.MustParseDate("2025-03-10")
	assert.Equal(t, 0, generic.DayOffset(today, generic.MustParseDate("2025-03-10")))
	assert.Equal(t, 5, generic.DayOffset(today, generic.MustParseDate("2025-03-15")))
	assert.Equal(t, 0, generic.DayOffset(today, generic.MustParseDate("2025-03-01")), "floored at 0")
	assert.Equal(t, -9, generic.DaysBetween(today, generic.MustParseDate("2025-03-01")))
}

func TestParseDate(t *testing.T) {
	tp, err := generic.ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", tp.String())

	tp, err = generic.ParseDate("2025-03-10T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", tp.String())

	_, err = generic.ParseDate("10/03/2025")
	assert.Error(t, err)
}

func TestPeriod(t *testing.T) {
	p := generic.Period{Start: generic.MustParseDate("2025-03-10"), End: generic.MustParseDate("2025-03-12")}
	assert.NoError(t, p.Validate())
	assert.Equal(t, 3, p.Days())
	assert.True(t, p.Contains(generic.MustParseDate("2025-03-12")))
	assert.False(t, p.Contains(generic.MustParseDate("2025-03-13")))

	bad := generic.Period{Start: p.End, End: p.Start}
	assert.ErrorIs(t, bad.Validate(), generic.ErrInvalidPeriod)
	assert.Equal(t, 0, bad.Days())

	h := generic.HorizonFrom(p.Start, 30)
	assert.Equal(t, "2025-04-09", h.End.String())
	assert.Equal(t, "2025-03-10", generic.HorizonFrom(p.Start, -5).End.String())
}
