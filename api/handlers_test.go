package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborops/crewboard/api"
	"github.com/harborops/crewboard/schedule"
	"github.com/harborops/crewboard/source"
	"github.com/harborops/crewboard/store/sqlite"
)

// =============================================================================
// TEST SERVER SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.SaveRoster(context.Background(), []schedule.Employee{
		{ID: "emp-1", Name: "Tony Piggot", Position: "Dockhand",
			PTOHours: decimal.NewFromInt(40), SickHours: decimal.NewFromInt(24)},
		{ID: "emp-2", Name: "Karli Rich", Position: "Office",
			PTOHours: decimal.NewFromInt(80), SickHours: decimal.NewFromInt(40)},
	}))

	handler := api.NewHandler(store, source.NewSyncer(store, "", ""))
	// Frozen clock so notice-period and totals checks are deterministic.
	handler.Engine.Now = func() time.Time {
		return time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	}

	srv := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv, store
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func postJSON(t *testing.T, url, body string, out any) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// =============================================================================
// ROSTER
// =============================================================================

func TestListEmployees(t *testing.T) {
	srv, _ := newTestServer(t)

	var got []map[string]any
	resp := getJSON(t, srv.URL+"/api/employees", &got)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, got, 2)
	assert.Equal(t, "Tony Piggot", got[0]["name"])
	assert.Equal(t, float64(40), got[0]["pto_hours"])
}

// =============================================================================
// REQUEST SUBMISSION
// =============================================================================

func TestSubmitRequest_AcceptedAndBalanceDecremented(t *testing.T) {
	// GIVEN: 40 PTO hours and a 5-day full-day request 20 days out
	// WHEN: Submitted
	// THEN: 201 with the approved record; the roster balance drains to zero

	srv, _ := newTestServer(t)

	body := `{"kind":"PTO","employee_id":"emp-1","full_day":true,
		"start_date":"2026-01-25","end_date":"2026-01-29","notes":"cabin trip"}`

	var rec map[string]any
	resp := postJSON(t, srv.URL+"/api/requests", body, &rec)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "approved", rec["status"])
	assert.Equal(t, float64(40), rec["hours"])
	assert.NotEmpty(t, rec["id"])
	assert.Equal(t, "2026-01-25T07:00:00Z", rec["start"])
	assert.Equal(t, "2026-01-29T18:00:00Z", rec["end"])

	var roster []map[string]any
	getJSON(t, srv.URL+"/api/employees", &roster)
	assert.Equal(t, float64(0), roster[0]["pto_hours"])

	var requests []map[string]any
	getJSON(t, srv.URL+"/api/requests", &requests)
	require.Len(t, requests, 1)
	assert.Equal(t, rec["id"], requests[0]["id"])
}

func TestSubmitRequest_ShortNoticeRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"kind":"PTO","employee_id":"emp-1","full_day":true,
		"start_date":"2026-01-10","end_date":"2026-01-10"}`

	var rejection map[string]any
	resp := postJSON(t, srv.URL+"/api/requests", body, &rejection)

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, false, rejection["approved"])
	assert.Equal(t, []any{"PTO requires at least 14 days of notice"}, rejection["reasons"])

	// Nothing is persisted on rejection.
	var requests []map[string]any
	getJSON(t, srv.URL+"/api/requests", &requests)
	assert.Empty(t, requests)
}

func TestSubmitRequest_BadInput(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/requests", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/requests",
		`{"kind":"PTO","employee_id":"emp-1","full_day":true,
		  "start_date":"01/25/2026","end_date":"2026-01-29"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// WEEK GRID
// =============================================================================

func TestGetWeek_NormalizedToSunday(t *testing.T) {
	srv, _ := newTestServer(t)

	var week map[string]any
	resp := getJSON(t, srv.URL+"/api/week?start=2026-03-04", &week)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2026-03-01", week["week_start"])
	days, ok := week["days"].([]any)
	require.True(t, ok)
	assert.Len(t, days, 7)
}

func TestGetWeekCSV_Download(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/week.csv?start=2026-03-04")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"),
		"employee_schedule_week_2026-03-01.csv")
}

// =============================================================================
// ADMIN TOTALS
// =============================================================================

func TestAdminTotals_GateAndRows(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := getJSON(t, srv.URL+"/api/admin/totals?year=2026", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var totals map[string]any
	resp = getJSON(t, srv.URL+"/api/admin/totals?year=2026&admin=1", &totals)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2026), totals["year"])
	rows, ok := totals["rows"].([]any)
	require.True(t, ok)
	assert.Len(t, rows, 2, "one row per roster employee even with no requests")
}

func TestAdminTotalsCSV_Gate(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/admin/totals.csv?year=2026")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/admin/totals.csv?year=2026&admin=1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"),
		"employee_timeoff_totals_2026.csv")
}

// =============================================================================
// SYNC
// =============================================================================

func TestSyncNow_ReportsSnapshotSizes(t *testing.T) {
	srv, _ := newTestServer(t)

	var result map[string]any
	resp := postJSON(t, srv.URL+"/api/sync", ``, &result)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), result["employees"])
	assert.Equal(t, float64(0), result["templates"])
}
