/*
handlers.go - HTTP handlers for the staff scheduling portal

PURPOSE:
  Exposes the roster, time-off submission, week grid and admin exports
  over REST. Handlers parse input, thread a fresh snapshot through the
  domain logic, and serialize responses.

ENDPOINTS:
  GET  /api/employees            Roster
  GET  /api/requests             All time-off records
  POST /api/requests             Submit a request (eligibility-checked)
  GET  /api/week                 Rendered week grid (?start=YYYY-MM-DD)
  GET  /api/week.csv             Weekly schedule export
  GET  /api/admin/totals         Yearly totals (?year=, admin=1)
  GET  /api/admin/totals.csv     Totals CSV download
  GET  /api/admin/totals.xlsx    Totals workbook download
  POST /api/sync                 Refresh roster/templates from sources

ERROR HANDLING:
  Validation rejections are user-correctable and return 422 with every
  failed reason for that branch. Environment failures (unreachable
  source, malformed cache) are logged and degrade to cached or empty
  data; they never fail the page.

ADMIN GATE:
  The admin=1 query parameter is a display toggle, not an auth boundary;
  it mirrors the frontend's panel visibility and nothing more.

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: routing and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/harborops/crewboard/export"
	"github.com/harborops/crewboard/grid"
	"github.com/harborops/crewboard/schedule"
	"github.com/harborops/crewboard/source"
	"github.com/harborops/crewboard/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Engine   *schedule.Engine
	Renderer *grid.Renderer
	Syncer   *source.Syncer
	Log      *slog.Logger
}

// NewHandler creates a handler with default engine and renderer.
func NewHandler(store *sqlite.Store, syncer *source.Syncer) *Handler {
	return &Handler{
		Store:    store,
		Engine:   schedule.NewEngine(),
		Renderer: grid.NewRenderer(),
		Syncer:   syncer,
		Log:      slog.Default(),
	}
}

// snapshot loads the current roster/template view. Never fails: malformed
// cache data degrades to empty collections inside the syncer.
func (h *Handler) snapshot(r *http.Request) *schedule.Snapshot {
	snap, _ := h.Syncer.Snapshot(r.Context())
	return snap
}

// requests loads the time-off collection, degrading to empty on a
// malformed cache.
func (h *Handler) requests(r *http.Request) []schedule.TimeOffRequest {
	reqs, err := h.Store.LoadRequests(r.Context())
	if err != nil {
		h.Log.Warn("request cache unreadable, using empty list", "err", err)
		return nil
	}
	return reqs
}

// =============================================================================
// ROSTER AND REQUESTS
// =============================================================================

// ListEmployees returns the roster.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot(r)
	dtos := make([]EmployeeDTO, len(snap.Roster))
	for i, e := range snap.Roster {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListRequests returns all time-off records.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	reqs := h.requests(r)
	dtos := make([]RequestDTO, len(reqs))
	for i, rec := range reqs {
		dtos[i] = toRequestDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SubmitRequest runs the eligibility engine on a submitted form. On
// acceptance the record is persisted and the employee's balance is
// decremented; on rejection nothing is written.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var dto SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form, err := parseForm(dto)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := h.snapshot(r)
	existing := h.requests(r)

	rec, rejection := h.Engine.Evaluate(form, snap, existing)
	if rejection != nil {
		writeJSON(w, http.StatusUnprocessableEntity, RejectionResponse{Reasons: rejection.Reasons})
		return
	}

	if err := h.Store.AppendRequest(r.Context(), *rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save request")
		return
	}

	// Balance decrement is the caller-side effect of acceptance.
	if emp := snap.EmployeeByID(rec.EmployeeID); emp != nil {
		schedule.Apply(emp, rec)
		if err := h.Store.SaveRoster(r.Context(), snap.Roster); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update balances")
			return
		}
	}

	writeJSON(w, http.StatusCreated, toRequestDTO(*rec))
}

func parseForm(dto SubmitRequestDTO) (schedule.RequestForm, error) {
	form := schedule.RequestForm{
		Kind:       schedule.Kind(dto.Kind),
		EmployeeID: schedule.EmployeeID(dto.EmployeeID),
		FullDay:    dto.FullDay,
		Notes:      dto.Notes,
	}

	var err error
	if form.StartDate, err = schedule.ParseDate(dto.StartDate); err != nil {
		return form, err
	}
	if form.EndDate, err = schedule.ParseDate(dto.EndDate); err != nil {
		return form, err
	}
	if !dto.FullDay {
		if form.StartTime, err = schedule.ParseClock(dto.StartTime); err != nil {
			return form, err
		}
		if form.EndTime, err = schedule.ParseClock(dto.EndTime); err != nil {
			return form, err
		}
	}
	return form, nil
}

// =============================================================================
// WEEK GRID
// =============================================================================

// GetWeek renders the week containing the start parameter (default: the
// current week).
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	weekStart, err := weekParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g := h.Renderer.Render(weekStart, h.snapshot(r), h.requests(r))
	writeJSON(w, http.StatusOK, toWeekDTO(g))
}

// GetWeekCSV downloads the weekly schedule export.
func (h *Handler) GetWeekCSV(w http.ResponseWriter, r *http.Request) {
	weekStart, err := weekParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	weekStart = grid.WeekOf(weekStart)

	data, err := export.WeekCSV(weekStart, h.snapshot(r), h.requests(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build export")
		return
	}
	writeDownload(w, export.WeekCSVFilename(weekStart), "text/csv", data)
}

func weekParam(r *http.Request) (schedule.Date, error) {
	if s := r.URL.Query().Get("start"); s != "" {
		return schedule.ParseDate(s)
	}
	return schedule.Today(), nil
}

// =============================================================================
// ADMIN TOTALS
// =============================================================================

// isAdmin mirrors the frontend's display toggle.
func isAdmin(r *http.Request) bool {
	return r.URL.Query().Get("admin") == "1"
}

func (h *Handler) yearlyTotals(r *http.Request) (int, []schedule.EmployeeTotals, error) {
	year := time.Now().UTC().Year()
	if s := r.URL.Query().Get("year"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return 0, nil, errors.New("invalid year")
		}
		year = parsed
	}
	snap := h.snapshot(r)
	totals := schedule.YearlyTotals(snap.Roster, h.requests(r), year, h.Engine.Now())
	return year, totals, nil
}

// GetAdminTotals returns the yearly totals table.
func (h *Handler) GetAdminTotals(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "Admin view only")
		return
	}
	year, totals, err := h.yearlyTotals(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toTotalsDTO(year, totals))
}

// GetAdminTotalsCSV downloads the totals as CSV.
func (h *Handler) GetAdminTotalsCSV(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "Admin view only")
		return
	}
	year, totals, err := h.yearlyTotals(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := export.TotalsCSV(year, totals)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build export")
		return
	}
	writeDownload(w, export.TotalsFilename(year, "csv"), "text/csv", data)
}

// GetAdminTotalsXLSX downloads the totals as a workbook.
func (h *Handler) GetAdminTotalsXLSX(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "Admin view only")
		return
	}
	year, totals, err := h.yearlyTotals(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := export.TotalsXLSX(year, totals)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build export")
		return
	}
	writeDownload(w, export.TotalsFilename(year, "xlsx"),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// =============================================================================
// SYNC
// =============================================================================

// SyncNow refreshes the roster and template caches from their sources.
// Best-effort: fetch failures keep the cached copies.
func (h *Handler) SyncNow(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Syncer.Sync(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Sync failed")
		return
	}
	writeJSON(w, http.StatusOK, SyncResultDTO{
		Employees: len(snap.Roster),
		Templates: len(snap.Templates),
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeDownload(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
