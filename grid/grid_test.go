package grid_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborops/crewboard/grid"
	"github.com/harborops/crewboard/schedule"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

// 2026-03-01 is a Sunday; the fixture week runs Mar 1-7.
var (
	sunday    = schedule.NewDate(2026, time.March, 1)
	wednesday = schedule.NewDate(2026, time.March, 4)
)

func clock(h, m int) schedule.ClockTime { return schedule.ClockTime{Hour: h, Minute: m} }

func fixtureSnapshot() *schedule.Snapshot {
	return &schedule.Snapshot{
		Roster: []schedule.Employee{
			{ID: "emp-a", Name: "Bri Ghallager", Color: "#3b82f6", PTOHours: decimal.NewFromInt(40)},
			{ID: "emp-b", Name: "Tony Piggot", Color: "#f97316", PTOHours: decimal.NewFromInt(40)},
		},
		Templates: []schedule.WeeklyShiftTemplate{
			// Legacy misspelling: must still resolve to Bri's roster entry.
			{EmployeeName: "Bri Galagher", Shifts: []schedule.Shift{
				{Weekday: time.Wednesday, Start: clock(8, 0), End: clock(16, 0)},
			}},
			{EmployeeName: "Tony Piggot", Shifts: []schedule.Shift{
				{Weekday: time.Wednesday, Start: clock(9, 0), End: clock(17, 0)},
			}},
			// No roster match: rendered under a synthetic name lane.
			{EmployeeName: "Seasonal Temp", Shifts: []schedule.Shift{
				{Weekday: time.Wednesday, Start: clock(10, 0), End: clock(14, 0)},
			}},
		},
	}
}

func timeOff(id schedule.EmployeeID, kind schedule.Kind, start, end time.Time) schedule.TimeOffRequest {
	return schedule.TimeOffRequest{
		ID:         "req-" + string(id),
		EmployeeID: id,
		Kind:       kind,
		Start:      start,
		End:        end,
		Hours:      decimal.NewFromInt(8),
		Status:     schedule.StatusApproved,
	}
}

// =============================================================================
// WINDOW GEOMETRY
// =============================================================================

func TestMinutesFrom_ClipsAndFloors(t *testing.T) {
	w := grid.DefaultWindow()
	day := wednesday

	// Before the window clips to zero, after clips to the full width.
	assert.Equal(t, 0, w.MinutesFrom(day, day.At(clock(5, 0))))
	assert.Equal(t, 660, w.MinutesFrom(day, day.At(clock(19, 30))))

	assert.Equal(t, 30, w.MinutesFrom(day, day.At(clock(7, 30))))
	assert.Equal(t, 135, w.MinutesFrom(day, day.At(clock(9, 15))))

	// Seconds floor rather than round: 10:20:45 is still minute 200.
	at := time.Date(2026, time.March, 4, 10, 20, 45, 0, time.UTC)
	assert.Equal(t, 200, w.MinutesFrom(day, at))
}

func TestMetrics_Geometry(t *testing.T) {
	m := grid.DefaultMetrics()

	// Empty days still reserve a single-lane track.
	assert.Equal(t, 36, m.TrackHeight(0))
	assert.Equal(t, 36, m.TrackHeight(1))
	assert.Equal(t, 66, m.TrackHeight(2))

	assert.Equal(t, 6, m.LaneTop(0))
	assert.Equal(t, 36, m.LaneTop(1))
}

func TestWeekOf_NormalizesToSunday(t *testing.T) {
	assert.Equal(t, sunday, grid.WeekOf(wednesday))
	assert.Equal(t, sunday, grid.WeekOf(sunday))
	assert.Equal(t, sunday, grid.WeekOf(schedule.NewDate(2026, time.March, 7)))
}

// =============================================================================
// SEGMENT SPLITTING
// =============================================================================

func TestSplitSegments_MultiDayClipping(t *testing.T) {
	// GIVEN: A request from Tue 10:00 through Thu 12:00
	// WHEN: Split across the view window
	// THEN: Three segments; the edges keep their own bounds, the interior
	//       day spans the full window

	req := timeOff("emp-a", schedule.KindPTO,
		time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC))

	segs := grid.SplitSegments(req, grid.DefaultWindow())

	require.Len(t, segs, 3)
	assert.Equal(t, schedule.NewDate(2026, time.March, 3), segs[0].Day)
	assert.Equal(t, 10, segs[0].Start.Hour())
	assert.Equal(t, 18, segs[0].End.Hour())

	assert.Equal(t, schedule.NewDate(2026, time.March, 4), segs[1].Day)
	assert.Equal(t, 7, segs[1].Start.Hour())
	assert.Equal(t, 18, segs[1].End.Hour())

	assert.Equal(t, schedule.NewDate(2026, time.March, 5), segs[2].Day)
	assert.Equal(t, 7, segs[2].Start.Hour())
	assert.Equal(t, 12, segs[2].End.Hour())
}

func TestSplitSegments_EntirelyOutsideWindow_Dropped(t *testing.T) {
	w := grid.DefaultWindow()

	early := timeOff("emp-a", schedule.KindPTO,
		time.Date(2026, time.March, 4, 5, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 4, 6, 30, 0, 0, time.UTC))
	assert.Empty(t, grid.SplitSegments(early, w))

	late := timeOff("emp-a", schedule.KindPTO,
		time.Date(2026, time.March, 4, 18, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 4, 19, 0, 0, 0, time.UTC))
	assert.Empty(t, grid.SplitSegments(late, w))
}

// =============================================================================
// RENDERING
// =============================================================================

func TestRender_WednesdayLayout(t *testing.T) {
	// GIVEN: Two roster shifts, one unresolved template shift and one
	//        full-day time-off record, all on Wednesday
	// WHEN: The week is rendered
	// THEN: Lanes follow roster order with the synthetic lane trailing, the
	//       time-off bar shares its employee's lane, and shift geometry is
	//       percentage-positioned on the 07:00-18:00 axis

	snap := fixtureSnapshot()
	requests := []schedule.TimeOffRequest{
		timeOff("emp-b", schedule.KindPTO, wednesday.At(clock(7, 0)), wednesday.At(clock(18, 0))),
	}

	g := grid.NewRenderer().Render(sunday, snap, requests)

	require.Equal(t, sunday, g.WeekStart)
	day := g.Days[3]
	require.Equal(t, wednesday, day.Date)

	assert.Equal(t, 3, day.Lanes)
	assert.Equal(t, 96, day.TrackHeight)
	require.Len(t, day.Bars, 4)

	// Shifts render first as the background layer.
	bri, tony, temp := day.Bars[0], day.Bars[1], day.Bars[2]
	assert.Equal(t, grid.LayerShift, bri.Layer)
	assert.Equal(t, "Bri Ghallager", bri.Label, "misspelled template name resolves to roster spelling")
	assert.Equal(t, "#3b82f6", bri.Color)
	assert.Equal(t, 0, bri.Lane)
	assert.InDelta(t, 9.0909, bri.LeftPct, 0.001)
	assert.InDelta(t, 72.7272, bri.WidthPct, 0.001)

	assert.Equal(t, 1, tony.Lane)
	assert.Equal(t, "#f97316", tony.Color)

	assert.Equal(t, 2, temp.Lane, "unresolved template names get a trailing lane")
	assert.Equal(t, "Seasonal Temp", temp.Label)
	assert.Empty(t, temp.Color)

	// The time-off bar overlays Tony's lane and spans the full window.
	off := day.Bars[3]
	assert.Equal(t, grid.LayerTimeOff, off.Layer)
	assert.Equal(t, 1, off.Lane, "time-off shares the employee's shift lane")
	assert.Equal(t, "PTO – Tony Piggot", off.Label)
	assert.InDelta(t, 0.0, off.LeftPct, 0.001)
	assert.InDelta(t, 100.0, off.WidthPct, 0.001)
	assert.Equal(t, 36, off.Top)
}

func TestRender_NormalizesWeekStart(t *testing.T) {
	snap := fixtureSnapshot()
	fromWednesday := grid.NewRenderer().Render(wednesday, snap, nil)
	fromSunday := grid.NewRenderer().Render(sunday, snap, nil)

	assert.Equal(t, fromSunday, fromWednesday)
}

func TestRender_IsDeterministic(t *testing.T) {
	// Two renders of the same inputs must be identical; lane assignment
	// sorts its keys rather than ranging over a map.
	snap := fixtureSnapshot()
	requests := []schedule.TimeOffRequest{
		timeOff("emp-a", schedule.KindSick, wednesday.At(clock(9, 0)), wednesday.At(clock(13, 0))),
		timeOff("emp-b", schedule.KindPTO, wednesday.At(clock(7, 0)), wednesday.At(clock(18, 0))),
	}

	r := grid.NewRenderer()
	first := r.Render(sunday, snap, requests)
	second := r.Render(sunday, snap, requests)

	assert.Equal(t, first, second)
}

func TestRender_ZeroWidthBarsOmitted(t *testing.T) {
	// A record entirely before the window produces neither a bar nor a lane.
	snap := &schedule.Snapshot{Roster: fixtureSnapshot().Roster}
	requests := []schedule.TimeOffRequest{
		timeOff("emp-a", schedule.KindPTO, wednesday.At(clock(5, 0)), wednesday.At(clock(6, 30))),
	}

	g := grid.NewRenderer().Render(sunday, snap, requests)
	day := g.Days[3]

	assert.Empty(t, day.Bars)
	assert.Equal(t, 0, day.Lanes)
	assert.Equal(t, 36, day.TrackHeight, "empty day keeps the single-lane minimum height")
}
