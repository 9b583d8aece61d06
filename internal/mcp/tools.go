package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/claude/intervalsmcp/internal/icu"
	"github.com/mark3labs/mcp-go/mcp"
)

const dateLayout = "2006-01-02"

// athleteID resolves the per-call athlete_id override, falling back to
// the configured default.
func (h *handlers) athleteID(req mcp.CallToolRequest) (string, error) {
	if id := req.GetString("athlete_id", ""); id != "" {
		return id, nil
	}
	if h.cfg.AthleteID != "" {
		return h.cfg.AthleteID, nil
	}
	return "", errors.New("No athlete ID provided and no default INTERVALS_ATHLETE_ID configured.")
}

func validateDate(s string) (string, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", errors.New("Invalid date format. Please use YYYY-MM-DD.")
	}
	return s, nil
}

// dateRange validates the supplied dates, substituting defaults relative
// to today when either is empty.
func dateRange(startStr, endStr string, defaultStartOffset, defaultEndOffset int) (string, string, error) {
	now := time.Now()

	start := now.AddDate(0, 0, defaultStartOffset).Format(dateLayout)
	if startStr != "" {
		var err error
		if start, err = validateDate(startStr); err != nil {
			return "", "", err
		}
	}

	end := now.AddDate(0, 0, defaultEndOffset).Format(dateLayout)
	if endStr != "" {
		var err error
		if end, err = validateDate(endStr); err != nil {
			return "", "", err
		}
	}

	return start, end, nil
}

// errorText extracts the human-readable message from a gateway error.
func errorText(err error) string {
	var apiErr *icu.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// recordID renders a record's id field, which the API types as either a
// number or a string depending on the entity.
func recordID(rec icu.Record) string {
	switch v := rec["id"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

// --- Tool definitions ---

var toolGetActivities = mcp.NewTool("get_activities",
	mcp.WithDescription("List activities for an athlete. Unnamed activities are filtered out by default; when too few named activities remain, one earlier 60-day page is fetched to fill the list."),
	mcp.WithString("athlete_id", mcp.Description("Athlete ID (defaults to the configured INTERVALS_ATHLETE_ID)")),
	mcp.WithString("api_key", mcp.Description("API key override (defaults to the configured INTERVALS_API_KEY)")),
	mcp.WithString("start_date", mcp.Description("Start date (YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end_date", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of activities to return. Defaults to 10.")),
	mcp.WithBoolean("include_unnamed", mcp.Description("Include unnamed activities. Defaults to false.")),
)

var toolGetActivityDetails = mcp.NewTool("get_activity_details",
	mcp.WithDescription("Get detailed information for a single activity, including power and heart rate zone breakdowns when available."),
	mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
	mcp.WithString("api_key", mcp.Description("API key override")),
)

var toolGetActivityIntervals = mcp.NewTool("get_activity_intervals",
	mcp.WithDescription("Get per-interval metrics for an activity: power, heart rate, cadence, speed, plus grouped interval aggregates."),
	mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity ID")),
	mcp.WithString("api_key", mcp.Description("API key override")),
)

var toolGetEvents = mcp.NewTool("get_events",
	mcp.WithDescription("List calendar events (planned workouts, races, notes) for an athlete."),
	mcp.WithString("athlete_id", mcp.Description("Athlete ID (defaults to the configured default)")),
	mcp.WithString("api_key", mcp.Description("API key override")),
	mcp.WithString("start_date", mcp.Description("Start date (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("end_date", mcp.Description("End date (YYYY-MM-DD). Defaults to 30 days from today.")),
)

var toolGetEventByID = mcp.NewTool("get_event_by_id",
	mcp.WithDescription("Get detailed information for a single calendar event."),
	mcp.WithString("event_id", mcp.Required(), mcp.Description("Event ID")),
	mcp.WithString("athlete_id", mcp.Description("Athlete ID (defaults to the configured default)")),
	mcp.WithString("api_key", mcp.Description("API key override")),
)

var toolGetWellnessData = mcp.NewTool("get_wellness_data",
	mcp.WithDescription("Get wellness entries (fitness/fatigue, resting HR, HRV, sleep, weight, subjective scores) for an athlete."),
	mcp.WithString("athlete_id", mcp.Description("Athlete ID (defaults to the configured default)")),
	mcp.WithString("api_key", mcp.Description("API key override")),
	mcp.WithString("start_date", mcp.Description("Start date (YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end_date", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
)

var toolAddOrUpdateEvent = mcp.NewTool("add_or_update_event",
	mcp.WithDescription("Create a calendar event, or update one when event_id is given. The optional workout_doc defines structured steps: each step carries duration (seconds) or distance (meters), an intensity (power/hr/pace with value or start/end plus units such as %ftp, w, %lthr, pace_zone), and repeats use reps with nested steps."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Event name")),
	mcp.WithString("workout_type", mcp.Description("Workout type (Ride, Run, Swim, Walk, Row). Resolved from the name when omitted.")),
	mcp.WithString("athlete_id", mcp.Description("Athlete ID (defaults to the configured default)")),
	mcp.WithString("api_key", mcp.Description("API key override")),
	mcp.WithString("event_id", mcp.Description("Existing event ID. When set the event is updated instead of created.")),
	mcp.WithString("start_date", mcp.Description("Start date (YYYY-MM-DD). Defaults to today.")),
	mcp.WithObject("workout_doc", mcp.Description("Structured workout document: description plus a steps list")),
	mcp.WithNumber("moving_time", mcp.Description("Expected moving time in seconds")),
	mcp.WithNumber("distance", mcp.Description("Expected distance in meters")),
)

var toolDeleteEvent = mcp.NewTool("delete_event",
	mcp.WithDescription("Delete a single calendar event."),
	mcp.WithString("event_id", mcp.Required(), mcp.Description("Event ID")),
	mcp.WithString("athlete_id", mcp.Description("Athlete ID (defaults to the configured default)")),
	mcp.WithString("api_key", mcp.Description("API key override")),
)

var toolDeleteEventsByDateRange = mcp.NewTool("delete_events_by_date_range",
	mcp.WithDescription("Delete every calendar event in a date range. Reports a success count and the IDs that failed; a failed deletion never aborts the rest."),
	mcp.WithString("start_date", mcp.Required(), mcp.Description("Start date (YYYY-MM-DD)")),
	mcp.WithString("end_date", mcp.Required(), mcp.Description("End date (YYYY-MM-DD)")),
	mcp.WithString("athlete_id", mcp.Description("Athlete ID (defaults to the configured default)")),
	mcp.WithString("api_key", mcp.Description("API key override")),
)

// --- Tool handlers ---

func (h *handlers) getActivities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	athleteID, err := h.athleteID(req)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	start, end, err := dateRange(req.GetString("start_date", ""), req.GetString("end_date", ""), -30, 0)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	limit := req.GetInt("limit", 10)
	includeUnnamed := req.GetBool("include_unnamed", false)

	activities, err := h.client.NamedActivities(ctx, athleteID, start, end, limit, includeUnnamed, req.GetString("api_key", ""))
	if err != nil {
		h.log.Error("mcp get_activities", "error", err)
		return mcp.NewToolResultError("Error fetching activities: " + errorText(err)), nil
	}

	if len(activities) == 0 {
		if includeUnnamed {
			return mcp.NewToolResultText(fmt.Sprintf(
				"No valid activities found for athlete %s in the specified date range.", athleteID)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"No named activities found for athlete %s in the specified date range. Try with include_unnamed=true to see all activities.", athleteID)), nil
	}

	var b strings.Builder
	b.WriteString("Activities:\n\n")
	for _, activity := range activities {
		b.WriteString(icu.FormatActivitySummary(activity))
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *handlers) getActivityDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return mcp.NewToolResultError("activity_id parameter is required"), nil
	}

	raw, err := h.client.Activity(ctx, activityID, req.GetString("api_key", ""))
	if err != nil {
		h.log.Error("mcp get_activity_details", "error", err)
		return mcp.NewToolResultError("Error fetching activity details: " + errorText(err)), nil
	}

	var activity icu.Record
	switch v := raw.(type) {
	case map[string]any:
		activity = v
	case []any:
		if len(v) > 0 {
			activity, _ = v[0].(map[string]any)
		}
	}
	if len(activity) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No details found for activity %s.", activityID)), nil
	}

	return mcp.NewToolResultText(icu.FormatActivityDetails(activity)), nil
}

func (h *handlers) getActivityIntervals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activityID, err := req.RequireString("activity_id")
	if err != nil {
		return mcp.NewToolResultError("activity_id parameter is required"), nil
	}

	raw, err := h.client.ActivityIntervals(ctx, activityID, req.GetString("api_key", ""))
	if err != nil {
		h.log.Error("mcp get_activity_intervals", "error", err)
		return mcp.NewToolResultError("Error fetching intervals: " + errorText(err)), nil
	}

	result, ok := raw.(map[string]any)
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("No interval data or unrecognized format for activity %s.", activityID)), nil
	}
	_, hasIntervals := result["icu_intervals"]
	_, hasGroups := result["icu_groups"]
	if !hasIntervals && !hasGroups {
		return mcp.NewToolResultText(fmt.Sprintf("No interval data or unrecognized format for activity %s.", activityID)), nil
	}

	return mcp.NewToolResultText(icu.FormatIntervals(result)), nil
}

func (h *handlers) getEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	athleteID, err := h.athleteID(req)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	start, end, err := dateRange(req.GetString("start_date", ""), req.GetString("end_date", ""), 0, 30)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	raw, err := h.client.Events(ctx, athleteID, start, end, req.GetString("api_key", ""))
	if err != nil {
		h.log.Error("mcp get_events", "error", err)
		return mcp.NewToolResultError("Error fetching events: " + errorText(err)), nil
	}

	events, _ := raw.([]any)
	if len(events) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No events found for athlete %s in the specified date range.", athleteID)), nil
	}

	var b strings.Builder
	b.WriteString("Events:\n\n")
	for _, item := range events {
		event, ok := item.(map[string]any)
		if !ok {
			continue
		}
		b.WriteString(icu.FormatEventSummary(event))
		b.WriteString("\n\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *handlers) getEventByID(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := req.RequireString("event_id")
	if err != nil {
		return mcp.NewToolResultError("event_id parameter is required"), nil
	}
	athleteID, err := h.athleteID(req)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	raw, err := h.client.Event(ctx, athleteID, eventID, req.GetString("api_key", ""))
	if err != nil {
		h.log.Error("mcp get_event_by_id", "error", err)
		return mcp.NewToolResultError("Error fetching event details: " + errorText(err)), nil
	}

	event, ok := raw.(map[string]any)
	if !ok || len(event) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No details found for event %s.", eventID)), nil
	}
	return mcp.NewToolResultText(icu.FormatEventDetails(event)), nil
}

func (h *handlers) getWellnessData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	athleteID, err := h.athleteID(req)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	start, end, err := dateRange(req.GetString("start_date", ""), req.GetString("end_date", ""), -30, 0)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	raw, err := h.client.Wellness(ctx, athleteID, start, end, req.GetString("api_key", ""))
	if err != nil {
		h.log.Error("mcp get_wellness_data", "error", err)
		return mcp.NewToolResultError("Error fetching wellness data: " + errorText(err)), nil
	}

	entries := wellnessEntries(raw)
	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No wellness data found for athlete %s in the specified date range.", athleteID)), nil
	}

	var b strings.Builder
	b.WriteString("Wellness Data:\n\n")
	for _, entry := range entries {
		b.WriteString(icu.FormatWellnessEntry(entry))
		b.WriteString("\n\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// wellnessEntries flattens the wellness payload, which arrives either as
// a list of entries or as a map keyed by date. In the keyed form the date
// is injected into each entry that lacks one.
func wellnessEntries(raw any) []icu.Record {
	switch v := raw.(type) {
	case []any:
		var entries []icu.Record
		for _, item := range v {
			if entry, ok := item.(map[string]any); ok {
				entries = append(entries, entry)
			}
		}
		return entries
	case map[string]any:
		dates := make([]string, 0, len(v))
		for date := range v {
			dates = append(dates, date)
		}
		// Stable output order for a map payload.
		sort.Strings(dates)
		var entries []icu.Record
		for _, date := range dates {
			entry, ok := v[date].(map[string]any)
			if !ok {
				continue
			}
			if _, ok := entry["date"]; !ok {
				entry["date"] = date
			}
			entries = append(entries, entry)
		}
		return entries
	}
	return nil
}

// workoutTypeKeywords resolves a workout type from event-name keywords
// when the caller does not supply one.
var workoutTypeKeywords = []struct {
	workoutType string
	keywords    []string
}{
	{"Ride", []string{"bike", "cycle", "cycling", "ride"}},
	{"Run", []string{"run", "running", "jog", "jogging"}},
	{"Swim", []string{"swim", "swimming", "pool"}},
	{"Walk", []string{"walk", "walking", "hike", "hiking"}},
	{"Row", []string{"row", "rowing"}},
}

func resolveWorkoutType(name, workoutType string) string {
	if workoutType != "" {
		return workoutType
	}
	nameLower := strings.ToLower(name)
	for _, entry := range workoutTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(nameLower, keyword) {
				return entry.workoutType
			}
		}
	}
	return "Ride"
}

func (h *handlers) addOrUpdateEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	athleteID, err := h.athleteID(req)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	startDate := req.GetString("start_date", "")
	if startDate == "" {
		startDate = time.Now().Format(dateLayout)
	} else if startDate, err = validateDate(startDate); err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	event := map[string]any{
		"start_date_local": startDate + "T00:00:00",
		"category":         "WORKOUT",
		"name":             name,
		"type":             resolveWorkoutType(name, req.GetString("workout_type", "")),
	}
	if doc, ok := req.GetArguments()["workout_doc"].(map[string]any); ok {
		desc, err := json.Marshal(doc)
		if err != nil {
			return mcp.NewToolResultError("Error: invalid workout_doc: " + err.Error()), nil
		}
		event["description"] = string(desc)
	}
	if movingTime := req.GetInt("moving_time", 0); movingTime > 0 {
		event["moving_time"] = movingTime
	}
	if distance := req.GetInt("distance", 0); distance > 0 {
		event["distance"] = distance
	}

	eventID := req.GetString("event_id", "")
	apiKey := req.GetString("api_key", "")

	var raw any
	action := "created"
	if eventID != "" {
		action = "updated"
		raw, err = h.client.UpdateEvent(ctx, athleteID, eventID, event, apiKey)
	} else {
		raw, err = h.client.CreateEvent(ctx, athleteID, event, apiKey)
	}
	if err != nil {
		h.log.Error("mcp add_or_update_event", "action", action, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error %s event: %s", action, errorText(err))), nil
	}

	if result, ok := raw.(map[string]any); ok && len(result) > 0 {
		pretty, err := json.MarshalIndent(result, "", "  ")
		if err == nil {
			return mcp.NewToolResultText(fmt.Sprintf("Successfully %s event: %s", action, pretty)), nil
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("Event %s successfully at %s", action, startDate)), nil
}

func (h *handlers) deleteEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := req.RequireString("event_id")
	if err != nil {
		return mcp.NewToolResultError("event_id parameter is required"), nil
	}
	athleteID, err := h.athleteID(req)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	raw, err := h.client.DeleteEvent(ctx, athleteID, eventID, req.GetString("api_key", ""))
	if err != nil {
		h.log.Error("mcp delete_event", "error", err)
		return mcp.NewToolResultError("Error deleting event: " + errorText(err)), nil
	}

	pretty, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Event %s deleted.", eventID)), nil
	}
	return mcp.NewToolResultText(string(pretty)), nil
}

func (h *handlers) deleteEventsByDateRange(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startStr, err := req.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError("start_date parameter is required"), nil
	}
	endStr, err := req.RequireString("end_date")
	if err != nil {
		return mcp.NewToolResultError("end_date parameter is required"), nil
	}
	athleteID, err := h.athleteID(req)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	start, err := validateDate(startStr)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}
	end, err := validateDate(endStr)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}

	apiKey := req.GetString("api_key", "")
	raw, err := h.client.Events(ctx, athleteID, start, end, apiKey)
	if err != nil {
		h.log.Error("mcp delete_events_by_date_range", "error", err)
		return mcp.NewToolResultError("Error deleting events: " + errorText(err)), nil
	}

	events, _ := raw.([]any)
	var failed []string
	total := 0
	for _, item := range events {
		event, ok := item.(map[string]any)
		if !ok {
			continue
		}
		total++
		id := recordID(event)
		if _, err := h.client.DeleteEvent(ctx, athleteID, id, apiKey); err != nil {
			h.log.Error("mcp delete_events_by_date_range: delete failed", "event_id", id, "error", err)
			failed = append(failed, id)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Deleted %d events. Failed to delete %d events: [%s]",
		total-len(failed), len(failed), strings.Join(failed, ", "))), nil
}
