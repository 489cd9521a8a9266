package model

import (
	"encoding/json"
	"fmt"

	apperrors "slotly/pkg/errors"
)

// TimeOfDay is a naive local time within a single calendar date, stored as
// minutes since midnight. It carries no time zone; all comparisons are plain
// integer comparisons.
type TimeOfDay int

const MinutesPerDay = 1440

// ParseTimeOfDay parses a "HH:MM" string (24-hour clock). All four digit
// positions must be digits; Sscanf-style partial matches are not accepted.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time of day %q: out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Interval is a half-open time range [Start, End) on one calendar date.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewInterval builds an interval, rejecting ranges where start is not
// strictly before end.
func NewInterval(start, end TimeOfDay) (Interval, error) {
	if start >= end {
		return Interval{}, apperrors.InvalidInterval(
			fmt.Sprintf("start time %s must be before end time %s", start, end),
		)
	}
	return Interval{Start: start, End: end}, nil
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start, iv.End)
}

// Overlaps reports whether the two half-open intervals share at least one
// instant. Intervals that only touch at an endpoint do not overlap: a booking
// ending at 10:00 and another starting at 10:00 are both admissible.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}
