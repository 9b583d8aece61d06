package icu

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Record is one decoded domain entity (activity, event, wellness entry).
// The API enforces no schema beyond a handful of well-known keys, so
// records stay untyped and are consumed once for formatting.
type Record = map[string]any

// recordMarkers are the keys that make a bare object look like a record
// rather than an envelope.
var recordMarkers = []string{"name", "startTime", "distance"}

// ExtractRecords pulls a flat record list out of the three payload shapes
// the API produces: a list of records, an envelope object whose first
// list-valued field holds the records, or a single record object.
// Anything else yields an empty result. Envelope fields are visited in
// sorted key order; real payloads carry at most one list value, so the
// ordering only pins down behavior for malformed input.
func ExtractRecords(raw any) []Record {
	switch v := raw.(type) {
	case []any:
		return recordsFromList(v)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if list, ok := v[k].([]any); ok {
				return recordsFromList(list)
			}
		}
		for _, marker := range recordMarkers {
			if _, ok := v[marker]; ok {
				return []Record{v}
			}
		}
	}
	return nil
}

func recordsFromList(list []any) []Record {
	records := make([]Record, 0, len(list))
	for _, item := range list {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records
}

// FilterNamed drops records whose name is absent, empty, or the literal
// placeholder "Unnamed", preserving order. Idempotent.
func FilterNamed(records []Record) []Record {
	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		name, _ := rec["name"].(string)
		if name == "" || name == "Unnamed" {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// backfillWindowDays is how far before the requested range the one-shot
// backfill page reaches. Heuristic, not load-bearing: 60 days is usually
// enough to make up for filtered-out unnamed activities.
const backfillWindowDays = 60

// NamedActivities lists activities between oldest and newest (YYYY-MM-DD),
// normalizes the payload, and truncates to limit. With includeUnnamed
// false it over-fetches (3x limit), drops unnamed records, and when the
// filtered page still falls short it fetches one additional page covering
// the 60 days before oldest. The backfill never chains: a short second
// page is returned as-is.
func (c *Client) NamedActivities(ctx context.Context, athleteID, oldest, newest string, limit int, includeUnnamed bool, apiKey string) ([]Record, error) {
	apiLimit := limit
	if !includeUnnamed {
		apiLimit = limit * 3
	}

	raw, err := c.Activities(ctx, athleteID, oldest, newest, apiLimit, apiKey)
	if err != nil {
		return nil, err
	}

	activities := ExtractRecords(raw)
	if !includeUnnamed {
		activities = FilterNamed(activities)
		if len(activities) < limit {
			more, err := c.backfillActivities(ctx, athleteID, oldest, apiLimit, apiKey)
			if err != nil {
				return nil, err
			}
			activities = append(activities, more...)
		}
	}

	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func (c *Client) backfillActivities(ctx context.Context, athleteID, oldest string, apiLimit int, apiKey string) ([]Record, error) {
	anchor, err := time.Parse("2006-01-02", oldest)
	if err != nil {
		return nil, fmt.Errorf("parse backfill anchor date: %w", err)
	}
	olderStart := anchor.AddDate(0, 0, -backfillWindowDays)
	olderEnd := anchor.AddDate(0, 0, -1)
	if !olderStart.Before(olderEnd) {
		return nil, nil
	}

	raw, err := c.Activities(ctx, athleteID,
		olderStart.Format("2006-01-02"), olderEnd.Format("2006-01-02"), apiLimit, apiKey)
	if err != nil {
		return nil, err
	}
	if list, ok := raw.([]any); ok {
		return FilterNamed(recordsFromList(list)), nil
	}
	return nil, nil
}
