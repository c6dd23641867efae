/*
Package export produces the portal's downloadable reports.

PURPOSE:
  Two CSV reports and one XLSX workbook, all generated server-side from
  the same aggregates the admin panel displays:
  - weekly schedule export (time-off records touching the visible week)
  - yearly admin totals (per-employee requested/approved/taken hours)

QUOTING:
  CSV output follows RFC 4180: fields containing a comma, quote or
  newline are wrapped in double quotes with internal quotes doubled,
  which is exactly what encoding/csv emits.

SEE ALSO:
  - xlsx.go: workbook variant of the totals report
  - ../schedule/totals.go: the aggregation behind the totals rows
*/
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/harborops/crewboard/schedule"
)

// WeekCSVFilename names the weekly download, e.g.
// employee_schedule_week_2026-08-23.csv.
func WeekCSVFilename(weekStart schedule.Date) string {
	return "employee_schedule_week_" + weekStart.String() + ".csv"
}

// TotalsFilename names the admin totals download for a year.
func TotalsFilename(year int, ext string) string {
	return "employee_timeoff_totals_" + strconv.Itoa(year) + "." + ext
}

// WeekCSV renders the time-off records intersecting the seven days from
// weekStart: header row then one row per record, instants in RFC 3339.
func WeekCSV(weekStart schedule.Date, snap *schedule.Snapshot, requests []schedule.TimeOffRequest) ([]byte, error) {
	start := weekStart.Time()
	end := weekStart.AddDays(7).Time()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Start", "End", "Type", "Employee", "Status"}); err != nil {
		return nil, err
	}
	for _, r := range requests {
		if r.End.Before(start) || !r.Start.Before(end) {
			continue
		}
		row := []string{
			r.Start.Format(time.RFC3339),
			r.End.Format(time.RFC3339),
			r.Kind.Label(),
			snap.EmployeeName(r.EmployeeID),
			string(r.Status),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// TotalsCSV renders the yearly admin totals, hours at one decimal place.
func TotalsCSV(year int, totals []schedule.EmployeeTotals) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(totalsHeader(year)); err != nil {
		return nil, err
	}
	for _, t := range totals {
		if err := w.Write(totalsRow(year, t)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func totalsHeader(int) []string {
	return []string{"Year", "Employee", "Position", "Requested (hrs)", "Approved (hrs)", "Taken (hrs)"}
}

func totalsRow(year int, t schedule.EmployeeTotals) []string {
	return []string{
		strconv.Itoa(year),
		t.Name,
		t.Position,
		t.Requested().StringFixed(1),
		t.Approved().StringFixed(1),
		t.Taken().StringFixed(1),
	}
}
