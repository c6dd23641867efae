/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the HTTP surface, decoupled from the domain types so
  field names can evolve without touching the schedule package. Hours are
  serialized as plain numbers here; the domain keeps them as decimals.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients

SEE ALSO:
  - handlers.go: uses these types
*/
package api

import (
	"time"

	"github.com/harborops/crewboard/grid"
	"github.com/harborops/crewboard/schedule"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents a roster entry in API responses.
type EmployeeDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Position  string  `json:"position,omitempty"`
	PTOHours  float64 `json:"pto_hours"`
	SickHours float64 `json:"sick_hours"`
	Color     string  `json:"color,omitempty"`
}

// SubmitRequestDTO is the time-off request form. Clock times are ignored
// when full_day is set.
type SubmitRequestDTO struct {
	Kind       string `json:"kind"`
	EmployeeID string `json:"employee_id"`
	FullDay    bool   `json:"full_day"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`
	StartTime  string `json:"start_time,omitempty"` // HH:MM
	EndTime    string `json:"end_time,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// RequestDTO represents an accepted time-off record.
type RequestDTO struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	Kind               string  `json:"kind"`
	Start              string  `json:"start"`
	End                string  `json:"end"`
	Hours              float64 `json:"hours"`
	Notes              string  `json:"notes,omitempty"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	VerificationNeeded bool    `json:"verification_needed"`
}

// RejectionResponse lists the failed checks for a 422 response.
type RejectionResponse struct {
	Approved bool     `json:"approved"`
	Reasons  []string `json:"reasons"`
}

// BarDTO is one positioned bar on a day track.
type BarDTO struct {
	Lane     int     `json:"lane"`
	Layer    string  `json:"layer"`
	Kind     string  `json:"kind,omitempty"`
	Label    string  `json:"label"`
	Color    string  `json:"color,omitempty"`
	LeftPct  float64 `json:"left_pct"`
	WidthPct float64 `json:"width_pct"`
	Top      int     `json:"top"`
	Start    string  `json:"start"`
	End      string  `json:"end"`
}

// DayDTO is one rendered day row.
type DayDTO struct {
	Date        string   `json:"date"`
	Lanes       int      `json:"lanes"`
	TrackHeight int      `json:"track_height"`
	Bars        []BarDTO `json:"bars"`
}

// WeekDTO is the rendered week grid.
type WeekDTO struct {
	WeekStart string    `json:"week_start"`
	Days      [7]DayDTO `json:"days"`
}

// TotalsRowDTO is one employee's yearly totals.
type TotalsRowDTO struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Position   string  `json:"position,omitempty"`
	Requested  float64 `json:"requested_hours"`
	Approved   float64 `json:"approved_hours"`
	Taken      float64 `json:"taken_hours"`
}

// TotalsDTO is the admin yearly totals table.
type TotalsDTO struct {
	Year int            `json:"year"`
	Rows []TotalsRowDTO `json:"rows"`
}

// SyncResultDTO reports the snapshot sizes after a refresh.
type SyncResultDTO struct {
	Employees int `json:"employees"`
	Templates int `json:"templates"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e schedule.Employee) EmployeeDTO {
	pto, _ := e.PTOHours.Float64()
	sick, _ := e.SickHours.Float64()
	return EmployeeDTO{
		ID:        string(e.ID),
		Name:      e.Name,
		Position:  e.Position,
		PTOHours:  pto,
		SickHours: sick,
		Color:     e.Color,
	}
}

func toRequestDTO(r schedule.TimeOffRequest) RequestDTO {
	hours, _ := r.Hours.Float64()
	return RequestDTO{
		ID:                 r.ID,
		EmployeeID:         string(r.EmployeeID),
		Kind:               string(r.Kind),
		Start:              r.Start.Format(time.RFC3339),
		End:                r.End.Format(time.RFC3339),
		Hours:              hours,
		Notes:              r.Notes,
		Status:             string(r.Status),
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
		VerificationNeeded: r.VerificationNeeded,
	}
}

func toWeekDTO(g *grid.WeekGrid) WeekDTO {
	out := WeekDTO{WeekStart: g.WeekStart.String()}
	for i, day := range g.Days {
		bars := make([]BarDTO, len(day.Bars))
		for j, b := range day.Bars {
			bars[j] = BarDTO{
				Lane:     b.Lane,
				Layer:    string(b.Layer),
				Kind:     string(b.Kind),
				Label:    b.Label,
				Color:    b.Color,
				LeftPct:  b.LeftPct,
				WidthPct: b.WidthPct,
				Top:      b.Top,
				Start:    b.Start.Format(time.RFC3339),
				End:      b.End.Format(time.RFC3339),
			}
		}
		out.Days[i] = DayDTO{
			Date:        day.Date.String(),
			Lanes:       day.Lanes,
			TrackHeight: day.TrackHeight,
			Bars:        bars,
		}
	}
	return out
}

func toTotalsDTO(year int, totals []schedule.EmployeeTotals) TotalsDTO {
	rows := make([]TotalsRowDTO, len(totals))
	for i, t := range totals {
		req, _ := t.Requested().Float64()
		app, _ := t.Approved().Float64()
		tak, _ := t.Taken().Float64()
		rows[i] = TotalsRowDTO{
			EmployeeID: string(t.EmployeeID),
			Name:       t.Name,
			Position:   t.Position,
			Requested:  req,
			Approved:   app,
			Taken:      tak,
		}
	}
	return TotalsDTO{Year: year, Rows: rows}
}
