package workouts

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestRenderRepeatWorkout verifies a full rendering: name, type, total
// duration, and a repeat block with zone-annotated lines.
func TestRenderRepeatWorkout(t *testing.T) {
	raw := `{
		"description": "Short VO2 session.",
		"duration": 2600,
		"target": "Power",
		"steps": [
			{"text": "Warmup", "duration": 600, "power": {"start": "50", "end": "70", "units": "%ftp"}},
			{"reps": 2, "steps": [
				{"text": "Hard", "duration": 60, "power": {"value": "110", "units": "%ftp"}},
				{"text": "Easy", "duration": 120, "power": {"value": "55", "units": "%ftp"}}
			]},
			{"text": "Cooldown", "duration": 300, "power": {"value": "50", "units": "%ftp"}}
		]
	}`
	var doc Doc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatal(err)
	}

	got := Render(&doc, "Bike", "CVO2M1_VO2_Session.json")

	for _, want := range []string{
		"Workout Name: CVO2M1 VO2 Session",
		"Workout Type: Ride",
		"Total Duration: 43m",
		"Short VO2 session.",
		"Repeat 2x",
		`- "Hard" 1m 110% FTP`,
		`- "Easy" 2m 55% FTP`,
		`- "Warmup" 10m 50-70% FTP`,
		`- "Cooldown" 5m 50% FTP`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

// TestRenderSwimDistance verifies that swim steps with a distance render
// in meters instead of a duration.
func TestRenderSwimDistance(t *testing.T) {
	doc := &Doc{
		Duration: "1800",
		Steps: []Step{
			{Text: "Drill", Distance: "400", Pace: &Zone{Value: "85", Units: "%pace"}},
		},
	}

	got := Render(doc, "Swim", "SAe1_Aerobic.json")
	if !strings.Contains(got, `- "Drill" 400 meter 85% pace`) {
		t.Errorf("missing swim distance line:\n%s", got)
	}
	if !strings.Contains(got, "Workout Type: Swim") {
		t.Errorf("missing type:\n%s", got)
	}
}

// TestRenderLabelFallbacks verifies the placeholder handling: empty or
// "Active" labels become positional interval names and "Maintain effort"
// instructions.
func TestRenderLabelFallbacks(t *testing.T) {
	doc := &Doc{
		Duration: "900",
		Steps: []Step{
			{Text: "Active", Duration: "300", HR: &Zone{Value: "75", Units: "%lthr"}},
			{Duration: "600"},
		},
	}

	got := Render(doc, "Run", "RAe1_Test.json")
	if !strings.Contains(got, "Interval 1\n") {
		t.Errorf("missing Interval 1 label:\n%s", got)
	}
	if !strings.Contains(got, "Interval 2\n") {
		t.Errorf("missing Interval 2 label:\n%s", got)
	}
	if !strings.Contains(got, `- "Maintain effort" 5m 75% LTHR`) {
		t.Errorf("missing maintain-effort line:\n%s", got)
	}
	if !strings.Contains(got, `- "Maintain effort" 10m`) {
		t.Errorf("missing zoneless line:\n%s", got)
	}
}

// TestRenderRepeatWithoutBody verifies that a repeat group with no nested
// steps repeats its own instruction.
func TestRenderRepeatWithoutBody(t *testing.T) {
	doc := &Doc{
		Duration: "600",
		Steps: []Step{
			{Text: "Strides", Reps: 4, Duration: "30", Pace: &Zone{Value: "120", Units: "%pace"}},
		},
	}

	got := Render(doc, "Run", "RA1_Strides.json")
	if !strings.Contains(got, "Repeat 4x\n") {
		t.Errorf("missing repeat header:\n%s", got)
	}
	if !strings.Contains(got, `- "Strides" 30s 120% pace`) {
		t.Errorf("missing repeated line:\n%s", got)
	}
}

// TestFormatZone verifies value, collapsed range, and full range forms.
func TestFormatZone(t *testing.T) {
	tests := []struct {
		zone *Zone
		want string
	}{
		{&Zone{Value: "110"}, "110% FTP"},
		{&Zone{Start: "80", End: "80"}, "80% FTP"},
		{&Zone{Start: "50", End: "70"}, "50-70% FTP"},
		{&Zone{}, ""},
	}
	for _, tt := range tests {
		if got := formatZone(tt.zone, "% FTP"); got != tt.want {
			t.Errorf("formatZone(%+v) = %q, want %q", tt.zone, got, tt.want)
		}
	}
}

// TestFormatDuration verifies the compact duration forms.
func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{30, "30s"},
		{60, "1m"},
		{90, "1m30s"},
		{600, "10m"},
		{3600, "1h"},
		{5400, "1h30m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

// TestFormatTotalDuration verifies minutes below an hour and zero-padded
// H:MM from one hour up.
func TestFormatTotalDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{2600, "43m"},
		{0, "0m"},
		{3600, "01:00"},
		{5400, "01:30"},
		{36000, "10:00"},
	}
	for _, tt := range tests {
		if got := formatTotalDuration(tt.seconds); got != tt.want {
			t.Errorf("formatTotalDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

// TestCleanDescription verifies separator normalization and backtick
// stripping.
func TestCleanDescription(t *testing.T) {
	in := "Session plan:\n`- - - -\nMain set uses `hard` efforts.\n- - - -"
	got := cleanDescription(in)
	if strings.Contains(got, "`") {
		t.Errorf("backticks survived: %q", got)
	}
	if !strings.Contains(got, "----") {
		t.Errorf("separator not normalized: %q", got)
	}
}

// TestFlexNumber verifies string and numeric JSON forms decode alike.
func TestFlexNumber(t *testing.T) {
	var doc Doc
	if err := json.Unmarshal([]byte(`{"duration": "2600"}`), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Duration.Int() != 2600 {
		t.Errorf("string duration = %d, want 2600", doc.Duration.Int())
	}

	if err := json.Unmarshal([]byte(`{"duration": 2600.5}`), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Duration.Int() != 2600 {
		t.Errorf("float duration = %d, want 2600 (floored)", doc.Duration.Int())
	}

	if err := json.Unmarshal([]byte(`{"duration": null}`), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Duration.Int() != 0 {
		t.Errorf("null duration = %d, want 0", doc.Duration.Int())
	}
}
