/*
policy.go - Time-off policy configuration

PURPOSE:
  Policy is plain data so the business rules stay visible in one place:
  the PTO notice period, the summer PTO cap, and the fixed daily view
  window that full-day requests span.

POLICY RULES:
  Lead time:   PTO needs 14 days of notice before its start date
  Summer cap:  at most 3 PTO days inside June 1 - September 30, counted
               per calendar year across all of an employee's PTO records
  Full day:    8 hours per full day requested

SEE ALSO:
  - eligibility.go: applies these rules in order
*/
package schedule

import "time"

// HoursPerFullDay is the paid length of one full-day request.
const HoursPerFullDay = 8

// View window bounds for the daily time axis (07:00-18:00). Full-day
// requests span exactly this window; the grid renderer clips to it.
var (
	ViewStart = ClockTime{Hour: 7}
	ViewEnd   = ClockTime{Hour: 18}
)

// =============================================================================
// POLICY
// =============================================================================

// SeasonBoundary is a recurring month/day boundary evaluated against the
// calendar year of the date in question.
type SeasonBoundary struct {
	Month time.Month
	Day   int
}

type Policy struct {
	LeadTimeDaysForPTO int
	SummerCapDays      int
	SummerStart        SeasonBoundary
	SummerEnd          SeasonBoundary
}

// DefaultPolicy returns the marina's standing time-off policy.
func DefaultPolicy() Policy {
	return Policy{
		LeadTimeDaysForPTO: 14,
		SummerCapDays:      3,
		SummerStart:        SeasonBoundary{Month: time.June, Day: 1},
		SummerEnd:          SeasonBoundary{Month: time.September, Day: 30},
	}
}

// InSummerWindow reports whether a date falls inside the summer window of
// its own calendar year, both boundaries inclusive.
func (p Policy) InSummerWindow(d Date) bool {
	start := NewDate(d.Year, p.SummerStart.Month, p.SummerStart.Day)
	end := NewDate(d.Year, p.SummerEnd.Month, p.SummerEnd.Day)
	return !d.Before(start) && !d.After(end)
}

// SummerPTODays counts, across all of an employee's existing PTO records,
// every calendar day that falls in the summer window for the given year.
// Records touching neither endpoint year are skipped, matching how the
// admin totals bucket requests by year.
func (p Policy) SummerPTODays(requests []TimeOffRequest, id EmployeeID, year int) int {
	total := 0
	for _, req := range requests {
		if req.EmployeeID != id || req.Kind != KindPTO {
			continue
		}
		if req.Start.Year() != year && req.End.Year() != year {
			continue
		}
		end := DateOf(req.End)
		for d := DateOf(req.Start); !d.After(end); d = d.AddDays(1) {
			if p.InSummerWindow(d) {
				total++
			}
		}
	}
	return total
}
