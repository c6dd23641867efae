/*
lanes.go - Per-day lane assignment

PURPOSE:
  A lane is the horizontal band reserved for one employee's bars within a
  day row, so bars for different people never overlap. Lane indices are
  assigned in two passes: collect every key the day needs, sort them into
  a stable order, then index. A key never loses or changes its index
  within a render pass.

ORDERING:
  Roster order first, lexical tie-break for keys absent from the roster.

FALLBACK KEYS:
  Template entries whose employee name does not resolve to a roster ID get
  a synthetic "name:<label>" key instead of being dropped. Extend appends
  a trailing lane for such keys when they were not anticipated.
*/
package grid

import (
	"sort"

	"github.com/harborops/crewboard/schedule"
)

// LaneKey identifies a lane within a day: an employee ID, or a synthetic
// per-name key for template entries that do not resolve to the roster.
type LaneKey string

func KeyForEmployee(id schedule.EmployeeID) LaneKey { return LaneKey(id) }
func KeyForName(label string) LaneKey               { return LaneKey("name:" + label) }

// LaneMap holds the key-to-index assignment for one day's render pass.
type LaneMap struct {
	index map[LaneKey]int
	order []LaneKey
}

// BuildDayLanes collects every lane key the day needs: employees with a
// template shift on that weekday, and employees with a time-off segment
// intersecting the day. Keys are indexed up front in stable order.
func BuildDayLanes(day schedule.Date, snap *schedule.Snapshot, requests []schedule.TimeOffRequest, w Window) *LaneMap {
	seen := make(map[LaneKey]bool)

	for _, tpl := range snap.Templates {
		for _, shift := range tpl.Shifts {
			if shift.Weekday != day.Weekday() {
				continue
			}
			if id, ok := snap.ResolveName(tpl.EmployeeName); ok {
				seen[KeyForEmployee(id)] = true
			}
		}
	}

	for _, req := range requests {
		for _, seg := range SplitSegments(req, w) {
			if seg.Day == day {
				seen[KeyForEmployee(req.EmployeeID)] = true
			}
		}
	}

	keys := make([]LaneKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}

	rosterOrder := snap.RosterOrder()
	rank := func(k LaneKey) int {
		if i, ok := rosterOrder[schedule.EmployeeID(k)]; ok {
			return i
		}
		return len(rosterOrder) + 1
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})

	lm := &LaneMap{index: make(map[LaneKey]int, len(keys))}
	for _, k := range keys {
		lm.index[k] = len(lm.order)
		lm.order = append(lm.order, k)
	}
	return lm
}

// Index returns the lane index for a key, if assigned.
func (lm *LaneMap) Index(k LaneKey) (int, bool) {
	i, ok := lm.index[k]
	return i, ok
}

// Extend returns the key's lane index, appending a trailing lane when the
// key was not anticipated by the collection pass. An index, once given,
// never changes for the remainder of the pass.
func (lm *LaneMap) Extend(k LaneKey) int {
	if i, ok := lm.index[k]; ok {
		return i
	}
	i := len(lm.order)
	lm.index[k] = i
	lm.order = append(lm.order, k)
	return i
}

// Len returns the number of lanes assigned so far.
func (lm *LaneMap) Len() int { return len(lm.order) }
