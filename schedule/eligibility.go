/*
eligibility.go - Time-off request validation and record construction

PURPOSE:
  The eligibility engine turns a submitted request form into either an
  approved TimeOffRequest or a Rejection listing the failed checks. All
  checks are local, synchronous and deterministic; a rejection is terminal
  for that submission attempt.

CHECK ORDER:
  1. End instant must be after start instant
  2. Employee must exist in the roster snapshot
  3. PTO: notice period, summer cap, balance
  4. SICK: balance; spanning more than 3 days flags verification

SIDE EFFECTS:
  None. The engine never mutates the snapshot. Callers apply the balance
  decrement with Apply after persisting the record.

SEE ALSO:
  - policy.go: the rules applied here
  - ../api/handlers.go: caller that persists and applies the record
*/
package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// REQUEST FORM - Raw submission input
// =============================================================================

// RequestForm is the parsed submission. StartTime/EndTime are ignored when
// FullDay is set; full-day requests span the 07:00-18:00 view window.
type RequestForm struct {
	Kind       Kind
	EmployeeID EmployeeID
	FullDay    bool
	StartDate  Date
	EndDate    Date
	StartTime  ClockTime
	EndTime    ClockTime
	Notes      string
}

// Instants resolves the form's start and end instants.
func (f RequestForm) Instants() (start, end time.Time) {
	if f.FullDay {
		return f.StartDate.At(ViewStart), f.EndDate.At(ViewEnd)
	}
	return f.StartDate.At(f.StartTime), f.EndDate.At(f.EndTime)
}

// =============================================================================
// ELIGIBILITY ENGINE
// =============================================================================

type Engine struct {
	Policy Policy

	// Now is injectable for tests; defaults to time.Now in UTC.
	Now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{
		Policy: DefaultPolicy(),
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate validates a form against the roster snapshot and the employee's
// existing records. On success it returns a fully-formed approved record;
// on failure it returns a Rejection with the reasons for this branch.
func (e *Engine) Evaluate(form RequestForm, snap *Snapshot, existing []TimeOffRequest) (*TimeOffRequest, *Rejection) {
	now := e.Now()
	start, end := form.Instants()

	if !end.After(start) {
		return nil, reject("End must be after start")
	}

	emp := snap.EmployeeByID(form.EmployeeID)
	if emp == nil {
		return nil, reject("Employee not found")
	}

	hours := requestHours(form, start, end)

	if form.Kind == KindPTO {
		lead := time.Duration(e.Policy.LeadTimeDaysForPTO) * 24 * time.Hour
		if form.StartDate.Time().Sub(now) < lead {
			return nil, reject(fmt.Sprintf("PTO requires at least %d days of notice", e.Policy.LeadTimeDaysForPTO))
		}

		if e.Policy.InSummerWindow(form.StartDate) || e.Policy.InSummerWindow(form.EndDate) {
			used := e.Policy.SummerPTODays(existing, form.EmployeeID, form.StartDate.Year)
			if used+requestDays(form, hours) > e.Policy.SummerCapDays {
				return nil, reject(fmt.Sprintf("Summer PTO cap of %d day(s) exceeded", e.Policy.SummerCapDays))
			}
		}

		if hours.GreaterThan(emp.PTOHours) {
			return nil, reject("Insufficient PTO balance")
		}
	}

	verificationNeeded := false
	if form.Kind == KindSick {
		if hours.GreaterThan(emp.SickHours) {
			return nil, reject("Insufficient WA Paid Sick Leave balance")
		}
		if requestDays(form, hours) > 3 {
			verificationNeeded = true
		}
	}

	return &TimeOffRequest{
		ID:                 uuid.NewString(),
		EmployeeID:         form.EmployeeID,
		Kind:               form.Kind,
		Start:              start,
		End:                end,
		Hours:              hours,
		Notes:              form.Notes,
		Status:             StatusApproved,
		CreatedAt:          now,
		VerificationNeeded: verificationNeeded,
	}, nil
}

// requestHours computes consumed hours: inclusive day count times eight for
// full-day requests, otherwise the clock span floored at half an hour.
func requestHours(form RequestForm, start, end time.Time) decimal.Decimal {
	if form.FullDay {
		days := InclusiveDays(form.StartDate, form.EndDate)
		return decimal.NewFromInt(int64(days * HoursPerFullDay))
	}
	span := decimal.NewFromFloat(end.Sub(start).Hours())
	min := decimal.NewFromFloat(0.5)
	if span.LessThan(min) {
		return min
	}
	return span
}

// requestDays is the day count used by the summer cap and the sick-leave
// verification threshold. Partial-day requests round UP to whole days here
// even though balances stay hour-based; the asymmetry is longstanding
// behavior and is kept as-is.
func requestDays(form RequestForm, hours decimal.Decimal) int {
	if form.FullDay {
		return InclusiveDays(form.StartDate, form.EndDate)
	}
	return int(hours.Div(decimal.NewFromInt(HoursPerFullDay)).Ceil().IntPart())
}

// =============================================================================
// BALANCE APPLICATION - Caller-side effect on acceptance
// =============================================================================

// Apply decrements the employee's matching balance by the record's hours,
// floored at zero. OTHER records consume no balance.
func Apply(emp *Employee, rec *TimeOffRequest) {
	switch rec.Kind {
	case KindPTO:
		emp.PTOHours = decimal.Max(decimal.Zero, emp.PTOHours.Sub(rec.Hours))
	case KindSick:
		emp.SickHours = decimal.Max(decimal.Zero, emp.SickHours.Sub(rec.Hours))
	}
}
