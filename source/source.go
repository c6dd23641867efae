/*
Package source refreshes the roster and weekly-shift templates from their
external JSON sources.

PURPOSE:
  Both sources are best-effort, attempt-once refreshes: on success the
  fetched data fully replaces the persisted collection; on failure the
  failure is logged and the previously cached copy is used silently. No
  retry, no user-visible error.

WIRE FORMATS:
  Roster:    JSON array of employee objects
  Templates: JSON object with a "data" array of
             {employeeName, shifts:[{weekday, start, end}]}
  Missing shift clock times default to 07:00-17:00, matching the legacy
  data files.

SOURCES:
  A source is an http(s) URL or a local file path; the fetch timeout is
  the HTTP client's own.

SEE ALSO:
  - ../store/sqlite: the cache the sync writes into
  - ../schedule/types.go: the decoded domain types
*/
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/harborops/crewboard/schedule"
)

// Store is the cache the syncer reads from and writes into.
type Store interface {
	LoadRoster(ctx context.Context) ([]schedule.Employee, error)
	SaveRoster(ctx context.Context, roster []schedule.Employee) error
	LoadTemplates(ctx context.Context) ([]schedule.WeeklyShiftTemplate, error)
	SaveTemplates(ctx context.Context, templates []schedule.WeeklyShiftTemplate) error
}

// Syncer refreshes the roster and template collections.
type Syncer struct {
	Client    *http.Client
	RosterSrc string
	ShiftsSrc string
	Store     Store
	Log       *slog.Logger
}

func NewSyncer(store Store, rosterSrc, shiftsSrc string) *Syncer {
	return &Syncer{
		Client:    &http.Client{Timeout: 10 * time.Second},
		RosterSrc: rosterSrc,
		ShiftsSrc: shiftsSrc,
		Store:     store,
		Log:       slog.Default(),
	}
}

// Sync refreshes both collections and returns the resulting snapshot.
// Each refresh is independent: a failed roster fetch does not stop the
// template fetch, and either failure falls back to the cached copy.
func (s *Syncer) Sync(ctx context.Context) (*schedule.Snapshot, error) {
	if err := s.syncRoster(ctx); err != nil {
		s.Log.Warn("roster sync skipped", "err", err)
	}
	if err := s.syncTemplates(ctx); err != nil {
		s.Log.Warn("weekly shifts sync skipped", "err", err)
	}
	return s.Snapshot(ctx)
}

// Snapshot loads the cached roster and templates. Malformed cache entries
// degrade to empty collections, logged but never surfaced.
func (s *Syncer) Snapshot(ctx context.Context) (*schedule.Snapshot, error) {
	roster, err := s.Store.LoadRoster(ctx)
	if err != nil {
		s.Log.Warn("roster cache unreadable, using empty roster", "err", err)
		roster = nil
	}
	templates, err := s.Store.LoadTemplates(ctx)
	if err != nil {
		s.Log.Warn("template cache unreadable, using empty templates", "err", err)
		templates = nil
	}
	return &schedule.Snapshot{Roster: roster, Templates: templates}, nil
}

func (s *Syncer) syncRoster(ctx context.Context) error {
	if s.RosterSrc == "" {
		return nil
	}
	raw, err := s.fetch(ctx, s.RosterSrc)
	if err != nil {
		return err
	}
	var roster []schedule.Employee
	if err := json.Unmarshal(raw, &roster); err != nil {
		return fmt.Errorf("decode roster: %w", err)
	}
	return s.Store.SaveRoster(ctx, roster)
}

func (s *Syncer) syncTemplates(ctx context.Context) error {
	if s.ShiftsSrc == "" {
		return nil
	}
	raw, err := s.fetch(ctx, s.ShiftsSrc)
	if err != nil {
		return err
	}
	templates, err := decodeTemplates(raw)
	if err != nil {
		return err
	}
	return s.Store.SaveTemplates(ctx, templates)
}

// fetch retrieves the raw bytes of a source: an http(s) URL or a file path.
func (s *Syncer) fetch(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %d", src, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(src)
}

// =============================================================================
// TEMPLATE WIRE FORMAT
// =============================================================================

type templateFile struct {
	Data []templateEntry `json:"data"`
}

type templateEntry struct {
	EmployeeName string      `json:"employeeName"`
	Shifts       []shiftWire `json:"shifts"`
}

type shiftWire struct {
	Weekday int    `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

func decodeTemplates(raw []byte) ([]schedule.WeeklyShiftTemplate, error) {
	var file templateFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode weekly shifts: %w", err)
	}
	if file.Data == nil {
		return nil, fmt.Errorf("decode weekly shifts: missing data array")
	}

	out := make([]schedule.WeeklyShiftTemplate, 0, len(file.Data))
	for _, entry := range file.Data {
		tpl := schedule.WeeklyShiftTemplate{EmployeeName: entry.EmployeeName}
		for _, sw := range entry.Shifts {
			start, err := clockOrDefault(sw.Start, schedule.ClockTime{Hour: 7})
			if err != nil {
				return nil, fmt.Errorf("shift for %s: %w", entry.EmployeeName, err)
			}
			end, err := clockOrDefault(sw.End, schedule.ClockTime{Hour: 17})
			if err != nil {
				return nil, fmt.Errorf("shift for %s: %w", entry.EmployeeName, err)
			}
			tpl.Shifts = append(tpl.Shifts, schedule.Shift{
				Weekday: time.Weekday(sw.Weekday),
				Start:   start,
				End:     end,
			})
		}
		out = append(out, tpl)
	}
	return out, nil
}

func clockOrDefault(s string, def schedule.ClockTime) (schedule.ClockTime, error) {
	if s == "" {
		return def, nil
	}
	return schedule.ParseClock(s)
}
