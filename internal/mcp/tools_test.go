package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/intervalsmcp/internal/config"
	"github.com/claude/intervalsmcp/internal/icu"
	"github.com/mark3labs/mcp-go/mcp"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestHandlers wires a handlers value against a stub API server.
func newTestHandlers(t *testing.T, handler http.Handler) *handlers {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := testLogger()
	return &handlers{
		client: icu.NewClient(srv.URL, "test-key", log),
		cfg:    &config.Config{BaseURL: srv.URL, APIKey: "test-key", AthleteID: "123"},
		log:    log,
	}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if len(result.Content) != 1 {
		t.Fatalf("got %d content items, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", result.Content[0])
	}
	return text.Text
}

// TestAthleteIDResolution verifies the override, the config default, and
// the error when neither is set.
func TestAthleteIDResolution(t *testing.T) {
	h := &handlers{cfg: &config.Config{AthleteID: "123"}, log: testLogger()}

	id, err := h.athleteID(callRequest(map[string]any{"athlete_id": "i999"}))
	if err != nil || id != "i999" {
		t.Errorf("override: id = %q, err = %v", id, err)
	}

	id, err = h.athleteID(callRequest(nil))
	if err != nil || id != "123" {
		t.Errorf("default: id = %q, err = %v", id, err)
	}

	h.cfg = &config.Config{}
	if _, err := h.athleteID(callRequest(nil)); err == nil {
		t.Error("expected error with no athlete ID anywhere")
	}
}

// TestValidateDateFormat verifies the strict YYYY-MM-DD check.
func TestValidateDateFormat(t *testing.T) {
	if _, err := validateDate("2025-03-01"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"03/01/2025", "2025-3-1", "yesterday", "2025-03-01T00:00:00"} {
		_, err := validateDate(bad)
		if err == nil {
			t.Errorf("validateDate(%q) = nil, want error", bad)
			continue
		}
		if err.Error() != "Invalid date format. Please use YYYY-MM-DD." {
			t.Errorf("validateDate(%q) error = %q", bad, err)
		}
	}
}

// TestResolveWorkoutType verifies keyword resolution from event names and
// that an explicit type wins.
func TestResolveWorkoutType(t *testing.T) {
	tests := []struct {
		name, explicit, want string
	}{
		{"Morning Bike Intervals", "", "Ride"},
		{"Tempo Run", "", "Run"},
		{"Pool Session", "", "Swim"},
		{"Evening hike", "", "Walk"},
		{"Rowing Machine", "", "Row"},
		{"Mystery Session", "", "Ride"},
		{"Tempo Run", "Swim", "Swim"},
	}
	for _, tt := range tests {
		if got := resolveWorkoutType(tt.name, tt.explicit); got != tt.want {
			t.Errorf("resolveWorkoutType(%q, %q) = %q, want %q", tt.name, tt.explicit, got, tt.want)
		}
	}
}

// TestGetActivitiesNoResults verifies the empty-result hint about
// include_unnamed.
func TestGetActivitiesNoResults(t *testing.T) {
	h := newTestHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	result, err := h.getActivities(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	got := resultText(t, result)
	want := "No named activities found for athlete 123 in the specified date range. Try with include_unnamed=true to see all activities."
	if got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

// TestGetActivitiesErrorMessage verifies that API failures surface the
// canned status message as an error result.
func TestGetActivitiesErrorMessage(t *testing.T) {
	h := newTestHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	result, err := h.getActivities(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result")
	}
	got := resultText(t, result)
	want := "Error fetching activities: 404 Not Found: The requested endpoint or ID doesn't exist."
	if got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

// TestGetActivitiesInvalidDate verifies date validation happens before
// any API call.
func TestGetActivitiesInvalidDate(t *testing.T) {
	h := newTestHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("API should not be called with an invalid date")
	}))

	result, err := h.getActivities(context.Background(), callRequest(map[string]any{"start_date": "bogus"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := resultText(t, result); got != "Error: Invalid date format. Please use YYYY-MM-DD." {
		t.Errorf("text = %q", got)
	}
}

// TestDeleteEventsByDateRangePartialFailure verifies that individual
// delete failures are collected instead of aborting the batch.
func TestDeleteEventsByDateRangePartialFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/athlete/123/events", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{
			map[string]any{"id": float64(1)},
			map[string]any{"id": float64(2)},
			map[string]any{"id": float64(3)},
			map[string]any{"id": float64(4)},
			map[string]any{"id": float64(5)},
		})
	})
	mux.HandleFunc("/athlete/123/events/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/athlete/123/events/")
		if id == "2" || id == "4" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{}`))
	})

	h := newTestHandlers(t, mux)
	result, err := h.deleteEventsByDateRange(context.Background(), callRequest(map[string]any{
		"start_date": "2025-03-01",
		"end_date":   "2025-03-31",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	got := resultText(t, result)
	want := "Deleted 3 events. Failed to delete 2 events: [2, 4]"
	if got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

// TestDeleteEventsByDateRangeAllSucceed verifies the success-only report.
func TestDeleteEventsByDateRangeAllSucceed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/athlete/123/events", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{map[string]any{"id": float64(9)}})
	})
	mux.HandleFunc("/athlete/123/events/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	h := newTestHandlers(t, mux)
	result, err := h.deleteEventsByDateRange(context.Background(), callRequest(map[string]any{
		"start_date": "2025-03-01",
		"end_date":   "2025-03-31",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := resultText(t, result); got != "Deleted 1 events. Failed to delete 0 events: []" {
		t.Errorf("text = %q", got)
	}
}

// TestAddOrUpdateEventCreates verifies the event payload shape and the
// success message for a create.
func TestAddOrUpdateEventCreates(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any
	h := newTestHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id": 55}`))
	}))

	result, err := h.addOrUpdateEvent(context.Background(), callRequest(map[string]any{
		"name":       "Threshold Bike Session",
		"start_date": "2025-04-01",
		"workout_doc": map[string]any{
			"description": "2x20",
			"steps":       []any{},
		},
		"moving_time": float64(3600),
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotBody["start_date_local"] != "2025-04-01T00:00:00" {
		t.Errorf("start_date_local = %v", gotBody["start_date_local"])
	}
	if gotBody["category"] != "WORKOUT" {
		t.Errorf("category = %v", gotBody["category"])
	}
	if gotBody["type"] != "Ride" {
		t.Errorf("type = %v, want Ride (from name keywords)", gotBody["type"])
	}
	desc, _ := gotBody["description"].(string)
	if !strings.Contains(desc, `"description":"2x20"`) {
		t.Errorf("description = %q, want embedded workout doc JSON", desc)
	}

	got := resultText(t, result)
	if !strings.HasPrefix(got, "Successfully created event:") {
		t.Errorf("text = %q", got)
	}
}

// TestAddOrUpdateEventUpdates verifies that event_id switches to PUT.
func TestAddOrUpdateEventUpdates(t *testing.T) {
	var gotMethod, gotPath string
	h := newTestHandlers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"id": 55}`))
	}))

	result, err := h.addOrUpdateEvent(context.Background(), callRequest(map[string]any{
		"name":     "Recovery Run",
		"event_id": "55",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %q, want PUT", gotMethod)
	}
	if gotPath != "/athlete/123/events/55" {
		t.Errorf("path = %q", gotPath)
	}
	if got := resultText(t, result); !strings.HasPrefix(got, "Successfully updated event:") {
		t.Errorf("text = %q", got)
	}
}

// TestWellnessEntriesKeyedMap verifies the date-keyed wellness payload is
// flattened with dates injected.
func TestWellnessEntriesKeyedMap(t *testing.T) {
	raw := map[string]any{
		"2025-03-02": map[string]any{"ctl": float64(50)},
		"2025-03-01": map[string]any{"ctl": float64(49), "date": "2025-03-01"},
	}

	entries := wellnessEntries(raw)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0]["date"] != "2025-03-01" || entries[1]["date"] != "2025-03-02" {
		t.Errorf("entries = %v", entries)
	}
}
