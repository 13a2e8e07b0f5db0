package timeutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const MINUTES_PER_DAY = 1440

const isoDateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// ParseClock converts "HH:MM" or "HH:MM:SS" wall-clock text into
// minutes-since-midnight. Seconds are accepted and dropped.
func ParseClock(s string) (int, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, false
	}
	if m[3] != "" {
		if sec, _ := strconv.Atoi(m[3]); sec > 59 {
			return 0, false
		}
	}
	return hour*60 + minute, true
}

// FormatClock renders minutes-since-midnight as "HH:MM". Out-of-range values
// are clamped into the day.
func FormatClock(min int) string {
	if min < 0 {
		min = 0
	}
	if min > MINUTES_PER_DAY {
		min = MINUTES_PER_DAY
	}
	return twoDigits(min/60) + ":" + twoDigits(min%60)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// DayOfWeek returns the weekday (0=Sunday .. 6=Saturday) of an ISO date.
func DayOfWeek(isoDate string) (int, bool) {
	t, err := time.Parse(isoDateLayout, strings.TrimSpace(isoDate))
	if err != nil {
		return 0, false
	}
	return int(t.Weekday()), true
}

// ValidISODate reports whether s parses as an ISO calendar date.
func ValidISODate(s string) bool {
	_, err := time.Parse(isoDateLayout, strings.TrimSpace(s))
	return err == nil
}

// DateRange expands [startDate, endDate] into the ordered list of ISO dates it
// covers. Returns nil when either bound is malformed or the range is inverted.
func DateRange(startDate, endDate string) []string {
	start, err := time.Parse(isoDateLayout, strings.TrimSpace(startDate))
	if err != nil {
		return nil
	}
	end, err := time.Parse(isoDateLayout, strings.TrimSpace(endDate))
	if err != nil {
		return nil
	}
	if end.Before(start) {
		return nil
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(isoDateLayout))
	}
	return dates
}

var (
	durationUnitPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(minutes?|mins?|m|hours?|hrs?|h)$`)
	bareNumberPattern   = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// ParseDurationToMinutes normalizes the duration shapes seen upstream: a bare
// number of minutes (string or numeric), "HH:MM:SS", or "<n> minutes"/"<n>
// hours". Returns false for anything unparseable or non-positive.
func ParseDurationToMinutes(v interface{}) (int, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case int:
		return positiveMinutes(float64(val))
	case int64:
		return positiveMinutes(float64(val))
	case float64:
		return positiveMinutes(val)
	case string:
		return parseDurationString(val)
	default:
		return 0, false
	}
}

func parseDurationString(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if bareNumberPattern.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return positiveMinutes(f)
	}
	if strings.Count(s, ":") == 2 {
		parts := strings.Split(s, ":")
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		_, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || h < 0 || m < 0 || m > 59 {
			return 0, false
		}
		return positiveMinutes(float64(h*60 + m))
	}
	if m := durationUnitPattern.FindStringSubmatch(s); m != nil {
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		unit := strings.ToLower(m[2])
		if strings.HasPrefix(unit, "h") {
			f *= 60
		}
		return positiveMinutes(f)
	}
	return 0, false
}

func positiveMinutes(f float64) (int, bool) {
	min := int(f + 0.5)
	if min <= 0 {
		return 0, false
	}
	return min, true
}
