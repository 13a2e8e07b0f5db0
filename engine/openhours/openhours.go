package openhours

import (
	"sort"

	"tp-server/engine/timeutil"
	"tp-server/models"
)

// Interval is a half-open [StartMin, EndMin) window inside one day, in
// minutes-since-midnight. Intervals produced by this package are always merged:
// no two touch or overlap.
type Interval struct {
	StartMin int `json:"start_min"`
	EndMin   int `json:"end_min"`
}

// IntervalsForDay converts the raw rows for one weekday into merged intervals.
// Malformed rows (nil fields, out-of-range values) are skipped silently, and
// overnight windows (close < open) are split at midnight into two intervals.
func IntervalsForDay(rows []models.OpenHoursRow, dayOfWeek int) []Interval {
	var intervals []Interval
	for _, row := range rows {
		if row.Day == nil || *row.Day != dayOfWeek {
			continue
		}
		openMin, closeMin, ok := rowToMinutes(row)
		if !ok {
			continue
		}
		if openMin == closeMin {
			continue
		}
		if closeMin < openMin {
			// Spans midnight: [open, 24h) today plus [0, close) as a second window.
			intervals = append(intervals, Interval{StartMin: openMin, EndMin: timeutil.MINUTES_PER_DAY})
			if closeMin > 0 {
				intervals = append(intervals, Interval{StartMin: 0, EndMin: closeMin})
			}
			continue
		}
		intervals = append(intervals, Interval{StartMin: openMin, EndMin: closeMin})
	}
	return mergeIntervals(intervals)
}

func rowToMinutes(row models.OpenHoursRow) (openMin, closeMin int, ok bool) {
	if row.OpenHour == nil || row.OpenMinute == nil || row.CloseHour == nil || row.CloseMinute == nil {
		return 0, 0, false
	}
	if !validHourMinute(*row.OpenHour, *row.OpenMinute) || !validHourMinute(*row.CloseHour, *row.CloseMinute) {
		return 0, 0, false
	}
	openMin = *row.OpenHour*60 + *row.OpenMinute
	closeMin = *row.CloseHour*60 + *row.CloseMinute
	if openMin > timeutil.MINUTES_PER_DAY || closeMin > timeutil.MINUTES_PER_DAY {
		return 0, 0, false
	}
	if openMin == timeutil.MINUTES_PER_DAY {
		// A window cannot start at end-of-day.
		return 0, 0, false
	}
	return openMin, closeMin, true
}

func validHourMinute(hour, minute int) bool {
	return hour >= 0 && hour <= 24 && minute >= 0 && minute <= 59
}

func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].StartMin != intervals[j].StartMin {
			return intervals[i].StartMin < intervals[j].StartMin
		}
		return intervals[i].EndMin < intervals[j].EndMin
	})
	merged := []Interval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if iv.StartMin <= last.EndMin {
			if iv.EndMin > last.EndMin {
				last.EndMin = iv.EndMin
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// IsOpenForWindow reports whether some single merged interval fully contains
// [startMin, endMin). Partial coverage does not count as open.
func IsOpenForWindow(intervals []Interval, startMin, endMin int) bool {
	if startMin >= endMin {
		return false
	}
	for _, iv := range intervals {
		if iv.StartMin <= startMin && endMin <= iv.EndMin {
			return true
		}
	}
	return false
}

// SuggestNextOpenStart returns the feasible start time closest to
// desiredStartMin that keeps a window of durationMin fully inside one interval.
// Within each interval the candidate start is desiredStartMin clamped to
// [start, end-duration]. Returns false when no interval can fit the duration.
func SuggestNextOpenStart(intervals []Interval, desiredStartMin, durationMin int) (int, bool) {
	if durationMin <= 0 {
		return 0, false
	}
	best := 0
	bestDist := -1
	for _, iv := range intervals {
		if iv.EndMin-iv.StartMin < durationMin {
			continue
		}
		candidate := clamp(desiredStartMin, iv.StartMin, iv.EndMin-durationMin)
		dist := candidate - desiredStartMin
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	if bestDist < 0 {
		return 0, false
	}
	return best, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
