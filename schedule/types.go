/*
Package schedule implements the staff scheduling domain for the marina portal.

PURPOSE:
  This package contains the domain types and the time-off eligibility engine.
  The roster, baseline weekly shift templates and time-off records defined here
  feed both the eligibility checks and the week-grid renderer.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: roster entry carrying accrued PTO and paid-sick-leave balances
  - TimeOffRequest: immutable record produced by the eligibility engine
  - WeeklyShiftTemplate: read-only baseline shifts keyed by employee name
  - Snapshot: explicitly passed read-only view of roster + templates

DESIGN PRINCIPLES:
  1. Snapshots over globals: roster and template state is threaded through
     the engine and renderer, never read from package-level caches
  2. Precision: balances and hours use decimal.Decimal
  3. Type safety: EmployeeID is a distinct type, never a bare string
  4. Immutability: a TimeOffRequest is never edited after creation

SEE ALSO:
  - eligibility.go: request validation and record construction
  - policy.go: notice-period and summer-cap policy
  - totals.go: yearly per-employee aggregation
*/
package schedule

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// EMPLOYEE - Roster entry with accrued balances
// =============================================================================

type EmployeeID string

type Employee struct {
	ID        EmployeeID      `json:"id"`
	Name      string          `json:"name"`
	Position  string          `json:"position,omitempty"`
	PTOHours  decimal.Decimal `json:"ptoHours"`
	SickHours decimal.Decimal `json:"pslHours"`
	Color     string          `json:"color,omitempty"`
}

// =============================================================================
// TIME-OFF REQUEST
// =============================================================================

type Kind string

const (
	KindPTO   Kind = "PTO"
	KindSick  Kind = "SICK"
	KindOther Kind = "OTHER"
)

// Label returns the display label for a kind.
func (k Kind) Label() string {
	switch k {
	case KindPTO:
		return "PTO"
	case KindSick:
		return "Sick"
	default:
		return string(k)
	}
}

type Status string

const (
	// StatusApproved is the only status the engine emits today. The field
	// exists so future approval workflows can add pending/denied without a
	// data migration.
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
	StatusDenied   Status = "denied"
)

// TimeOffRequest is an accepted time-off record. Invariant: End > Start.
// Immutable once created; there is no edit or cancel flow.
type TimeOffRequest struct {
	ID                 string          `json:"id"`
	EmployeeID         EmployeeID      `json:"employeeId"`
	Kind               Kind            `json:"kind"`
	Start              time.Time       `json:"startISO"`
	End                time.Time       `json:"endISO"`
	Hours              decimal.Decimal `json:"hours"`
	Notes              string          `json:"notes,omitempty"`
	Status             Status          `json:"status"`
	CreatedAt          time.Time       `json:"createdAtISO"`
	VerificationNeeded bool            `json:"verificationNeeded"`
}

// =============================================================================
// WEEKLY SHIFT TEMPLATES - Baseline recurring shifts
// =============================================================================

// Shift is a recurring weekly shift. Weekday follows time.Weekday
// (0=Sunday..6=Saturday).
type Shift struct {
	Weekday time.Weekday `json:"weekday"`
	Start   ClockTime    `json:"start"`
	End     ClockTime    `json:"end"`
}

// WeeklyShiftTemplate is the baseline schedule for one named employee.
// Templates are keyed by display name, not ID: the upstream data file
// predates stable employee identifiers.
type WeeklyShiftTemplate struct {
	EmployeeName string  `json:"employeeName"`
	Shifts       []Shift `json:"shifts"`
}

// =============================================================================
// SNAPSHOT - Read-only roster + template view
// =============================================================================

// Snapshot bundles the roster and shift templates for one render or
// validation pass. Callers refresh it explicitly; nothing here is cached
// at package level.
type Snapshot struct {
	Roster    []Employee
	Templates []WeeklyShiftTemplate
}

// EmployeeByID resolves an employee, or nil if absent.
func (s *Snapshot) EmployeeByID(id EmployeeID) *Employee {
	for i := range s.Roster {
		if s.Roster[i].ID == id {
			return &s.Roster[i]
		}
	}
	return nil
}

// EmployeeName returns the display name for an ID, falling back to a
// synthetic label when the roster has no match.
func (s *Snapshot) EmployeeName(id EmployeeID) string {
	if e := s.EmployeeByID(id); e != nil {
		return e.Name
	}
	return "Emp " + string(id)
}

// ResolveName maps a template employee name to a roster ID,
// case-insensitively. One legacy misspelling of a crew member's name is
// normalized so old template files keep resolving.
func (s *Snapshot) ResolveName(name string) (EmployeeID, bool) {
	norm := strings.ToLower(strings.TrimSpace(name))
	if norm == "" {
		return "", false
	}
	for i := range s.Roster {
		if strings.ToLower(strings.TrimSpace(s.Roster[i].Name)) == norm {
			return s.Roster[i].ID, true
		}
	}
	if strings.ReplaceAll(norm, " ", "") == "brigalagher" {
		for i := range s.Roster {
			if strings.ToLower(strings.TrimSpace(s.Roster[i].Name)) == "bri ghallager" {
				return s.Roster[i].ID, true
			}
		}
	}
	return "", false
}

// RosterOrder returns each employee's position in the roster, used for
// stable lane ordering.
func (s *Snapshot) RosterOrder() map[EmployeeID]int {
	order := make(map[EmployeeID]int, len(s.Roster))
	for i, e := range s.Roster {
		order[e.ID] = i
	}
	return order
}
