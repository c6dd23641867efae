/*
totals.go - Yearly per-employee time-off totals for the admin panel

PURPOSE:
  Aggregates requested, approved and taken hours per employee for a
  calendar year, split by PTO and sick leave. Feeds the admin totals table
  and the CSV/XLSX exports.

BUCKETING:
  A record belongs to a year when its start or end falls in that year.
  "Taken" means approved and already ended at evaluation time.
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeTotals holds one roster row of the yearly totals table.
type EmployeeTotals struct {
	EmployeeID EmployeeID
	Name       string
	Position   string

	PTORequested decimal.Decimal
	PTOApproved  decimal.Decimal
	PTOTaken     decimal.Decimal

	SickRequested decimal.Decimal
	SickApproved  decimal.Decimal
	SickTaken     decimal.Decimal
}

func (t EmployeeTotals) Requested() decimal.Decimal { return t.PTORequested.Add(t.SickRequested) }
func (t EmployeeTotals) Approved() decimal.Decimal  { return t.PTOApproved.Add(t.SickApproved) }
func (t EmployeeTotals) Taken() decimal.Decimal     { return t.PTOTaken.Add(t.SickTaken) }

// YearlyTotals aggregates requests for one calendar year, one row per
// roster employee in roster order. Records for employees no longer on the
// roster and OTHER-kind records are skipped.
func YearlyTotals(roster []Employee, requests []TimeOffRequest, year int, now time.Time) []EmployeeTotals {
	totals := make([]EmployeeTotals, len(roster))
	index := make(map[EmployeeID]int, len(roster))
	for i, e := range roster {
		totals[i] = EmployeeTotals{EmployeeID: e.ID, Name: e.Name, Position: e.Position}
		index[e.ID] = i
	}

	for _, req := range requests {
		if req.Start.Year() != year && req.End.Year() != year {
			continue
		}
		i, ok := index[req.EmployeeID]
		if !ok {
			continue
		}
		t := &totals[i]
		past := req.End.Before(now)
		switch req.Kind {
		case KindPTO:
			t.PTORequested = t.PTORequested.Add(req.Hours)
			if req.Status == StatusApproved {
				t.PTOApproved = t.PTOApproved.Add(req.Hours)
				if past {
					t.PTOTaken = t.PTOTaken.Add(req.Hours)
				}
			}
		case KindSick:
			t.SickRequested = t.SickRequested.Add(req.Hours)
			if req.Status == StatusApproved {
				t.SickApproved = t.SickApproved.Add(req.Hours)
				if past {
					t.SickTaken = t.SickTaken.Add(req.Hours)
				}
			}
		}
	}
	return totals
}
