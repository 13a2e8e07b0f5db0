package timeutil

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"09:30", 570, true},
		{"9:30", 570, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"13:00:00", 780, true},
		{"13:00:45", 780, true},
		{" 10:15 ", 615, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"12:00:99", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, test := range tests {
		got, ok := ParseClock(test.in)
		if ok != test.ok || got != test.want {
			t.Errorf("ParseClock(%q) = (%d, %v), want (%d, %v)", test.in, got, ok, test.want, test.ok)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{570, "09:30"},
		{1439, "23:59"},
		{1440, "24:00"},
		{-5, "00:00"},
		{2000, "24:00"},
	}
	for _, test := range tests {
		if got := FormatClock(test.in); got != test.want {
			t.Errorf("FormatClock(%d) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestDayOfWeek(t *testing.T) {
	// 2025-04-13 is a Sunday.
	day, ok := DayOfWeek("2025-04-13")
	if !ok || day != 0 {
		t.Errorf("Expected Sunday (0), got (%d, %v)", day, ok)
	}
	day, ok = DayOfWeek("2025-04-14")
	if !ok || day != 1 {
		t.Errorf("Expected Monday (1), got (%d, %v)", day, ok)
	}
	if _, ok := DayOfWeek("14/04/2025"); ok {
		t.Errorf("Expected failure for non-ISO date")
	}
}

func TestDateRange(t *testing.T) {
	dates := DateRange("2025-04-29", "2025-05-02")
	want := []string{"2025-04-29", "2025-04-30", "2025-05-01", "2025-05-02"}
	if len(dates) != len(want) {
		t.Fatalf("Expected %d dates, got %d", len(want), len(dates))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %q, want %q", i, dates[i], want[i])
		}
	}

	if got := DateRange("2025-05-02", "2025-04-29"); got != nil {
		t.Errorf("Expected nil for inverted range, got %v", got)
	}
	if got := DateRange("bad", "2025-04-29"); got != nil {
		t.Errorf("Expected nil for malformed start, got %v", got)
	}
}

func TestParseDurationToMinutes(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int
		ok   bool
	}{
		{"bare int", 90, 90, true},
		{"bare float", 45.0, 45, true},
		{"numeric string", "75", 75, true},
		{"minutes text", "45 minutes", 45, true},
		{"single minute", "1 minute", 1, true},
		{"mins text", "30 mins", 30, true},
		{"hours text", "2 hours", 120, true},
		{"fractional hours", "1.5 hours", 90, true},
		{"clock duration", "01:30:00", 90, true},
		{"zero", 0, 0, false},
		{"negative", -30, 0, false},
		{"nil", nil, 0, false},
		{"garbage", "a while", 0, false},
		{"bad clock", "01:75:00", 0, false},
	}
	for _, test := range tests {
		got, ok := ParseDurationToMinutes(test.in)
		if ok != test.ok || got != test.want {
			t.Errorf("%s: ParseDurationToMinutes(%v) = (%d, %v), want (%d, %v)",
				test.name, test.in, got, ok, test.want, test.ok)
		}
	}
}
