/*
Package grid lays out the employee week schedule as horizontal bars.

PURPOSE:
  Given a week start, a roster/template snapshot and the time-off records,
  Render produces seven day rows of positioned bars on a shared
  07:00-18:00 axis. Baseline template shifts form a background layer
  tinted with the employee's color; time-off bars draw on top, sharing the
  employee's lane so one person's bars always stack in the same band.

PURITY:
  Render is a pure function of its inputs. Nothing persists between
  renders; week navigation and mutations simply call Render again.

GEOMETRY:
  Horizontal positions are percentages of the view window, computed with a
  floor (never round-up) minute conversion so a bar never extends past its
  true end time. Vertical positions derive from the lane index and fixed
  per-lane pixel metrics.

SEE ALSO:
  - lanes.go: lane key collection and index assignment
*/
package grid

import (
	"time"

	"github.com/harborops/crewboard/schedule"
)

// =============================================================================
// VIEW WINDOW - Shared 07:00-18:00 time axis
// =============================================================================

type Window struct {
	Start schedule.ClockTime
	End   schedule.ClockTime
}

// DefaultWindow returns the portal's fixed daily axis.
func DefaultWindow() Window {
	return Window{Start: schedule.ViewStart, End: schedule.ViewEnd}
}

// TotalMinutes returns the width of the window in minutes.
func (w Window) TotalMinutes() int {
	return w.End.Minutes() - w.Start.Minutes()
}

// MinutesFrom converts an instant to minutes past the window start on the
// given day, clipped to [0, total]. The conversion floors so a bar never
// visually spills past its true end time.
func (w Window) MinutesFrom(day schedule.Date, t time.Time) int {
	start := day.At(w.Start)
	end := day.At(w.End)
	if !t.After(start) {
		return 0
	}
	if !t.Before(end) {
		return w.TotalMinutes()
	}
	return int(t.Sub(start) / time.Minute)
}

// =============================================================================
// LANE METRICS - Fixed per-lane pixel geometry
// =============================================================================

type Metrics struct {
	LaneHeight int
	LaneGap    int
	RowPad     int
}

func DefaultMetrics() Metrics {
	return Metrics{LaneHeight: 24, LaneGap: 6, RowPad: 6}
}

// LaneTop returns the pixel offset of a lane within its track.
func (m Metrics) LaneTop(lane int) int {
	return m.RowPad + lane*(m.LaneHeight+m.LaneGap)
}

// TrackHeight returns the pixel height of a day track with the given lane
// count, with a single-lane minimum for empty days.
func (m Metrics) TrackHeight(lanes int) int {
	if lanes <= 0 {
		return m.RowPad*2 + m.LaneHeight
	}
	return m.RowPad*2 + lanes*m.LaneHeight + (lanes-1)*m.LaneGap
}

// =============================================================================
// SEGMENTS - One per calendar day of a request
// =============================================================================

// Segment is the portion of a time-off request falling on one day,
// clipped to that day's view window.
type Segment struct {
	Day   schedule.Date
	Start time.Time
	End   time.Time
}

// SplitSegments splits a request into per-day segments. The first and last
// day keep the request's own bounds; interior days span the full window.
// Segments with no net width are dropped.
func SplitSegments(req schedule.TimeOffRequest, w Window) []Segment {
	var out []Segment
	startDay := schedule.DateOf(req.Start)
	endDay := schedule.DateOf(req.End)
	for d := startDay; !d.After(endDay); d = d.AddDays(1) {
		segStart := d.At(w.Start)
		segEnd := d.At(w.End)
		if d == startDay && req.Start.After(segStart) {
			segStart = req.Start
		}
		if d == endDay && req.End.Before(segEnd) {
			segEnd = req.End
		}
		if segEnd.After(segStart) {
			out = append(out, Segment{Day: d, Start: segStart, End: segEnd})
		}
	}
	return out
}

// =============================================================================
// BARS AND DAYS
// =============================================================================

type Layer string

const (
	LayerShift   Layer = "shift"   // baseline template shift, background
	LayerTimeOff Layer = "timeoff" // time-off record, foreground
)

// Bar is one positioned rectangle on a day track.
type Bar struct {
	Key      LaneKey
	Lane     int
	Layer    Layer
	Kind     schedule.Kind // empty for shift bars
	Label    string
	Color    string // employee color, tints shift bars
	LeftPct  float64
	WidthPct float64
	Top      int
	Start    time.Time
	End      time.Time
}

// Day is one rendered row of the week.
type Day struct {
	Date        schedule.Date
	Lanes       int
	TrackHeight int
	Bars        []Bar
}

// WeekGrid is the full rendered week.
type WeekGrid struct {
	WeekStart schedule.Date
	Days      [7]Day
}

// WeekOf normalizes a date to the Sunday starting its week.
func WeekOf(d schedule.Date) schedule.Date {
	return d.AddDays(-int(d.Weekday()))
}

// =============================================================================
// RENDERER
// =============================================================================

type Renderer struct {
	Window  Window
	Metrics Metrics
}

func NewRenderer() *Renderer {
	return &Renderer{Window: DefaultWindow(), Metrics: DefaultMetrics()}
}

// Render lays out the seven days starting at weekStart. weekStart is
// normalized to its week's Sunday first.
func (r *Renderer) Render(weekStart schedule.Date, snap *schedule.Snapshot, requests []schedule.TimeOffRequest) *WeekGrid {
	weekStart = WeekOf(weekStart)
	out := &WeekGrid{WeekStart: weekStart}
	for i := 0; i < 7; i++ {
		out.Days[i] = r.renderDay(weekStart.AddDays(i), snap, requests)
	}
	return out
}

func (r *Renderer) renderDay(day schedule.Date, snap *schedule.Snapshot, requests []schedule.TimeOffRequest) Day {
	lanes := BuildDayLanes(day, snap, requests, r.Window)
	total := float64(r.Window.TotalMinutes())
	var bars []Bar

	// Baseline shifts first: they form the background layer.
	for _, tpl := range snap.Templates {
		for _, shift := range tpl.Shifts {
			if shift.Weekday != day.Weekday() {
				continue
			}
			segStart := day.At(shift.Start)
			segEnd := day.At(shift.End)
			left := r.Window.MinutesFrom(day, segStart)
			width := r.Window.MinutesFrom(day, segEnd) - left
			if width <= 0 {
				continue
			}

			key := KeyForName(tpl.EmployeeName)
			label := tpl.EmployeeName
			color := ""
			if id, ok := snap.ResolveName(tpl.EmployeeName); ok {
				key = KeyForEmployee(id)
				label = snap.EmployeeName(id)
				if emp := snap.EmployeeByID(id); emp != nil {
					color = emp.Color
				}
			}
			lane := lanes.Extend(key)

			bars = append(bars, Bar{
				Key:      key,
				Lane:     lane,
				Layer:    LayerShift,
				Label:    label,
				Color:    color,
				LeftPct:  float64(left) / total * 100,
				WidthPct: float64(width) / total * 100,
				Top:      r.Metrics.LaneTop(lane),
				Start:    segStart,
				End:      segEnd,
			})
		}
	}

	// Time-off bars overlay in the same lane as the employee's shift.
	for _, req := range requests {
		for _, seg := range SplitSegments(req, r.Window) {
			if seg.Day != day {
				continue
			}
			left := r.Window.MinutesFrom(day, seg.Start)
			width := r.Window.MinutesFrom(day, seg.End) - left
			if width <= 0 {
				continue
			}
			lane := lanes.Extend(KeyForEmployee(req.EmployeeID))
			bars = append(bars, Bar{
				Key:      KeyForEmployee(req.EmployeeID),
				Lane:     lane,
				Layer:    LayerTimeOff,
				Kind:     req.Kind,
				Label:    req.Kind.Label() + " – " + snap.EmployeeName(req.EmployeeID),
				LeftPct:  float64(left) / total * 100,
				WidthPct: float64(width) / total * 100,
				Top:      r.Metrics.LaneTop(lane),
				Start:    seg.Start,
				End:      seg.End,
			})
		}
	}

	return Day{
		Date:        day,
		Lanes:       lanes.Len(),
		TrackHeight: r.Metrics.TrackHeight(lanes.Len()),
		Bars:        bars,
	}
}
