package model

import (
	"encoding/json"
	"testing"

	apperrors "slotly/pkg/errors"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return tod
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9:30", 0, true},
		{"0930", 0, true},
		{"09:3a", 0, true},
		{"0a:30", 0, true},
		{"-9:30", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTimeOfDay_String(t *testing.T) {
	if got := TimeOfDay(570).String(); got != "09:30" {
		t.Errorf("String() = %q, want %q", got, "09:30")
	}
	if got := TimeOfDay(0).String(); got != "00:00" {
		t.Errorf("String() = %q, want %q", got, "00:00")
	}
}

func TestTimeOfDay_JSONRoundTrip(t *testing.T) {
	type payload struct {
		At TimeOfDay `json:"at"`
	}

	data, err := json.Marshal(payload{At: mustTime(t, "14:45")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"at":"14:45"}` {
		t.Errorf("marshal = %s", data)
	}

	var decoded payload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.At != mustTime(t, "14:45") {
		t.Errorf("round trip = %v", decoded.At)
	}

	if err := json.Unmarshal([]byte(`{"at":"25:00"}`), &decoded); err == nil {
		t.Error("expected error for out-of-range time")
	}
}

func TestNewInterval(t *testing.T) {
	iv, err := NewInterval(mustTime(t, "09:00"), mustTime(t, "10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv.Start != 540 || iv.End != 600 {
		t.Errorf("interval = %+v", iv)
	}

	// start == end and start > end both fail, regardless of anything else
	if _, err := NewInterval(mustTime(t, "10:00"), mustTime(t, "10:00")); !apperrors.HasCode(err, apperrors.CodeInvalidInterval) {
		t.Errorf("equal endpoints: got %v, want INVALID_INTERVAL", err)
	}
	if _, err := NewInterval(mustTime(t, "11:00"), mustTime(t, "10:00")); !apperrors.HasCode(err, apperrors.CodeInvalidInterval) {
		t.Errorf("reversed endpoints: got %v, want INVALID_INTERVAL", err)
	}
}

func TestInterval_Overlaps(t *testing.T) {
	mk := func(start, end string) Interval {
		iv, err := NewInterval(mustTime(t, start), mustTime(t, end))
		if err != nil {
			t.Fatalf("NewInterval(%s, %s): %v", start, end, err)
		}
		return iv
	}

	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", mk("09:00", "10:00"), mk("09:00", "10:00"), true},
		{"partial overlap", mk("09:00", "10:00"), mk("09:30", "10:30"), true},
		{"contained", mk("09:00", "12:00"), mk("10:00", "11:00"), true},
		{"touching endpoints", mk("09:00", "10:00"), mk("10:00", "11:00"), false},
		{"disjoint", mk("09:00", "10:00"), mk("11:00", "12:00"), false},
		{"one minute shared", mk("09:00", "10:01"), mk("10:00", "11:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			// overlap is symmetric
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}
