package workouts

import (
	"strconv"
	"strings"
)

// FlexNumber is a numeric field that the workout collection encodes
// sometimes as a JSON number and sometimes as a quoted string ("900",
// "110"). The raw text is kept so zone bounds render exactly as written.
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*n = FlexNumber(s)
	return nil
}

func (n FlexNumber) String() string { return string(n) }

func (n FlexNumber) IsZero() bool {
	return n == "" || n == "0"
}

// Int parses the value as an integer, flooring fractional input. Returns
// 0 for empty or unparseable values.
func (n FlexNumber) Int() int {
	if n == "" {
		return 0
	}
	if i, err := strconv.Atoi(string(n)); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(string(n), 64); err == nil {
		return int(f)
	}
	return 0
}

// Zone is a step intensity specifier: either a fixed value or a
// start/end range, tagged with units (%ftp, w, %hr, %lthr, %pace,
// pace_zone and friends).
type Zone struct {
	Value FlexNumber `json:"value,omitempty"`
	Start FlexNumber `json:"start,omitempty"`
	End   FlexNumber `json:"end,omitempty"`
	Units string     `json:"units,omitempty"`
}

// Step is one node of a workout plan: a leaf instruction with a duration
// or distance and an intensity, or a repeat group (Reps > 1) whose body
// is the nested Steps. A repeat group without nested steps repeats
// itself.
type Step struct {
	Text     string     `json:"text,omitempty"`
	Reps     int        `json:"reps,omitempty"`
	Duration FlexNumber `json:"duration,omitempty"`
	Distance FlexNumber `json:"distance,omitempty"`
	Power    *Zone      `json:"power,omitempty"`
	HR       *Zone      `json:"hr,omitempty"`
	Pace     *Zone      `json:"pace,omitempty"`
	Cadence  *Zone      `json:"cadence,omitempty"`
	Warmup   bool       `json:"warmup,omitempty"`
	Cooldown bool       `json:"cooldown,omitempty"`
	Ramp     bool       `json:"ramp,omitempty"`
	Free     bool       `json:"free,omitempty"`
	Steps    []Step     `json:"steps,omitempty"`
}

// Doc is a complete workout document as stored in the collection.
type Doc struct {
	Description string     `json:"description,omitempty"`
	Duration    FlexNumber `json:"duration,omitempty"`
	Distance    FlexNumber `json:"distance,omitempty"`
	Target      string     `json:"target,omitempty"`
	Steps       []Step     `json:"steps,omitempty"`
}
