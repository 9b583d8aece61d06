package workouts

import (
	"fmt"
	"strings"
)

// workoutTypes maps catalog categories to Intervals.icu workout types.
var workoutTypes = map[string]string{
	"Bike": "Ride",
	"Run":  "Run",
	"Swim": "Swim",
}

// Render converts a workout document into readable step-by-step
// instructions: name, type, total duration, cleaned description, then a
// fenced block of interval lines.
func Render(doc *Doc, category, filename string) string {
	var lines []string

	name := strings.ReplaceAll(strings.TrimSuffix(filename, ".json"), "_", " ")
	lines = append(lines, "Workout Name: "+name, "")

	workoutType, ok := workoutTypes[category]
	if !ok {
		workoutType = category
	}
	lines = append(lines, "Workout Type: "+workoutType, "")

	lines = append(lines, "Total Duration: "+formatTotalDuration(doc.Duration.Int()), "")

	description := doc.Description
	if description == "" {
		description = "No description available"
	}
	lines = append(lines, "Description:", "```", cleanDescription(description), "```", "")

	if len(doc.Steps) > 0 {
		lines = append(lines, "```")
		isSwim := category == "Swim"
		for i, step := range doc.Steps {
			lines = append(lines, renderTopStep(step, i, isSwim)...)
		}
		lines = append(lines, "```")
	}

	return strings.Join(lines, "\n")
}

// renderTopStep renders one top-level step: a repeat group, a labeled
// group of sub-steps, or a single labeled interval.
func renderTopStep(step Step, index int, isSwim bool) []string {
	var lines []string

	if step.Reps > 1 {
		lines = append(lines, fmt.Sprintf("Repeat %dx", step.Reps))
		if len(step.Steps) > 0 {
			for _, sub := range step.Steps {
				lines = append(lines, renderLeaf(sub, isSwim))
			}
		} else {
			// A repeat group without a nested body repeats itself.
			lines = append(lines, renderLeaf(step, isSwim))
		}
		return append(lines, "")
	}

	label := step.Text
	if label == "" || label == "Active" {
		label = fmt.Sprintf("Interval %d", index+1)
	}
	lines = append(lines, label)
	if len(step.Steps) > 0 {
		for _, sub := range step.Steps {
			lines = append(lines, renderLeaf(sub, isSwim))
		}
	} else {
		lines = append(lines, renderLeaf(step, isSwim))
	}
	return append(lines, "")
}

// renderLeaf renders a single instruction line: quoted text, duration or
// distance, and the intensity zone.
func renderLeaf(step Step, isSwim bool) string {
	instruction := step.Text
	if instruction == "" || instruction == "Active" {
		instruction = "Maintain effort"
	}

	var extent string
	if isSwim && step.Distance.Int() > 0 {
		extent = fmt.Sprintf("%d meter", step.Distance.Int())
	} else {
		extent = formatDuration(step.Duration.Int())
	}

	var zone string
	switch {
	case step.Power != nil:
		zone = formatZone(step.Power, "% FTP")
	case step.HR != nil:
		zone = formatZone(step.HR, "% LTHR")
	case step.Pace != nil:
		zone = formatZone(step.Pace, "% pace")
	}

	return strings.TrimSpace(fmt.Sprintf(`- "%s" %s %s`, instruction, extent, zone))
}

// formatZone renders an intensity as a fixed value or a start-end range
// with the given unit suffix.
func formatZone(z *Zone, suffix string) string {
	if z == nil {
		return ""
	}
	if z.Start == "" && z.End == "" {
		if z.Value == "" {
			return ""
		}
		return z.Value.String() + suffix
	}
	if z.Start == z.End {
		return z.Start.String() + suffix
	}
	return z.Start.String() + "-" + z.End.String() + suffix
}

// formatDuration renders a step duration as Ns, Nm, NmNs, Nh, or NhNm.
func formatDuration(seconds int) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		minutes := seconds / 60
		if rem := seconds % 60; rem != 0 {
			return fmt.Sprintf("%dm%ds", minutes, rem)
		}
		return fmt.Sprintf("%dm", minutes)
	default:
		hours := seconds / 3600
		if minutes := (seconds % 3600) / 60; minutes != 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
}

// formatTotalDuration renders the workout total as HH:MM when at least an
// hour, plain minutes otherwise.
func formatTotalDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// cleanDescription strips formatting artifacts that break downstream
// markdown rendering: backtick runs and the collection's "- - - -" step
// separator.
func cleanDescription(description string) string {
	s := strings.TrimSpace(description)
	s = strings.ReplaceAll(s, "`- - - -", "----")
	s = strings.ReplaceAll(s, "- - - -", "----")
	return strings.ReplaceAll(s, "`", "")
}
