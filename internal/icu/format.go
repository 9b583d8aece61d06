package icu

import (
	"fmt"
	"strconv"
	"strings"
)

// Formatters turn single records into fixed-layout text blocks. They are
// presentation-only: a missing field renders as "N/A" (or is omitted for
// optional sections), never as a failure.

// str returns the first present string field, or "N/A".
func str(rec Record, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok && s != "" {
			return s
		}
	}
	return "N/A"
}

// num returns the first present numeric field formatted without trailing
// zeros, or "N/A". JSON numbers decode as float64; string-typed numbers
// pass through untouched.
func num(rec Record, keys ...string) string {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			if v != "" {
				return v
			}
		}
	}
	return "N/A"
}

// FormatActivitySummary renders one activity record.
func FormatActivitySummary(a Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Activity: %s\n", str(a, "name"))
	fmt.Fprintf(&b, "ID: %s\n", num(a, "id"))
	fmt.Fprintf(&b, "Type: %s\n", str(a, "type"))
	fmt.Fprintf(&b, "Date: %s\n", str(a, "start_date_local", "startTime"))
	fmt.Fprintf(&b, "Distance: %s meters\n", num(a, "distance"))
	fmt.Fprintf(&b, "Duration: %s seconds\n", num(a, "elapsed_time", "duration"))
	fmt.Fprintf(&b, "Moving Time: %s seconds\n", num(a, "moving_time"))
	fmt.Fprintf(&b, "Elevation Gain: %s meters\n", num(a, "total_elevation_gain", "elevation_gain"))
	fmt.Fprintf(&b, "Avg Power: %s watts\n", num(a, "icu_average_watts", "average_watts"))
	fmt.Fprintf(&b, "Avg Heart Rate: %s bpm\n", num(a, "average_heartrate"))
	fmt.Fprintf(&b, "Training Load: %s\n", num(a, "icu_training_load"))
	return b.String()
}

// FormatActivityDetails renders the summary plus power and heart-rate
// zone breakdowns when the record carries a zones map of
// {number, secondsInZone} lists.
func FormatActivityDetails(a Record) string {
	detail := FormatActivitySummary(a)

	zones, ok := a["zones"].(map[string]any)
	if !ok {
		return detail
	}
	detail += "\nPower Zones:\n" + zoneLines(zones["power"])
	detail += "\nHeart Rate Zones:\n" + zoneLines(zones["hr"])
	return detail
}

func zoneLines(v any) string {
	list, ok := v.([]any)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, item := range list {
		zone, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "Zone %s: %s seconds\n", num(zone, "number"), num(zone, "secondsInZone"))
	}
	return b.String()
}

// FormatEventSummary renders one calendar event record as a short block.
func FormatEventSummary(e Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", str(e, "start_date_local", "date"))
	fmt.Fprintf(&b, "ID: %s\n", num(e, "id"))
	fmt.Fprintf(&b, "Name: %s\n", str(e, "name"))
	fmt.Fprintf(&b, "Type: %s\n", str(e, "type"))
	fmt.Fprintf(&b, "Category: %s", str(e, "category"))
	return b.String()
}

// FormatEventDetails renders a full event view including the planned
// workout description when one is attached.
func FormatEventDetails(e Record) string {
	var b strings.Builder
	b.WriteString("Event Details:\n\n")
	b.WriteString(FormatEventSummary(e))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Start Date: %s\n", str(e, "start_date_local"))
	fmt.Fprintf(&b, "Planned Moving Time: %s seconds\n", num(e, "moving_time"))
	fmt.Fprintf(&b, "Planned Distance: %s meters\n", num(e, "distance"))
	if desc, ok := e["description"].(string); ok && desc != "" {
		fmt.Fprintf(&b, "Description: %s\n", desc)
	}
	return b.String()
}

// FormatWellnessEntry renders one wellness record.
func FormatWellnessEntry(w Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", str(w, "date", "id"))
	fmt.Fprintf(&b, "Fitness (CTL): %s\n", num(w, "ctl"))
	fmt.Fprintf(&b, "Fatigue (ATL): %s\n", num(w, "atl"))
	fmt.Fprintf(&b, "Resting HR: %s bpm\n", num(w, "restingHR"))
	fmt.Fprintf(&b, "HRV: %s\n", num(w, "hrv"))
	fmt.Fprintf(&b, "Sleep: %s seconds\n", num(w, "sleepSecs"))
	fmt.Fprintf(&b, "Weight: %s kg\n", num(w, "weight"))
	fmt.Fprintf(&b, "Soreness: %s\n", num(w, "soreness"))
	fmt.Fprintf(&b, "Fatigue Score: %s\n", num(w, "fatigue"))
	fmt.Fprintf(&b, "Stress: %s\n", num(w, "stress"))
	fmt.Fprintf(&b, "Mood: %s", num(w, "mood"))
	return b.String()
}

// FormatIntervals renders an interval set: one block per entry in
// icu_intervals, then aggregation rows from icu_groups.
func FormatIntervals(result Record) string {
	var b strings.Builder
	b.WriteString("Activity Intervals:\n")

	if intervals, ok := result["icu_intervals"].([]any); ok && len(intervals) > 0 {
		for i, item := range intervals {
			rec, ok := item.(map[string]any)
			if !ok {
				continue
			}
			b.WriteString("\n")
			b.WriteString(formatInterval(rec, fmt.Sprintf("Interval %d", i+1)))
		}
	}

	if groups, ok := result["icu_groups"].([]any); ok && len(groups) > 0 {
		b.WriteString("\nInterval Groups:\n")
		for _, item := range groups {
			rec, ok := item.(map[string]any)
			if !ok {
				continue
			}
			b.WriteString("\n")
			b.WriteString(formatInterval(rec, "Group"))
		}
	}
	return b.String()
}

func formatInterval(rec Record, fallbackLabel string) string {
	label, ok := rec["label"].(string)
	if !ok || label == "" {
		label = fallbackLabel
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s):\n", label, str(rec, "type"))
	fmt.Fprintf(&b, "  Duration: %s seconds\n", num(rec, "elapsed_time", "moving_time"))
	fmt.Fprintf(&b, "  Distance: %s meters\n", num(rec, "distance"))
	fmt.Fprintf(&b, "  Power: %s watts avg, %s watts max\n", num(rec, "average_watts"), num(rec, "max_watts"))
	fmt.Fprintf(&b, "  Heart Rate: %s bpm avg, %s bpm max\n", num(rec, "average_heartrate"), num(rec, "max_heartrate"))
	fmt.Fprintf(&b, "  Cadence: %s rpm avg\n", num(rec, "average_cadence"))
	fmt.Fprintf(&b, "  Speed: %s m/s avg\n", num(rec, "average_speed"))
	fmt.Fprintf(&b, "  Intensity: %s\n", num(rec, "intensity"))
	return b.String()
}
