package segments

import (
	"sort"

	"tp-server/engine/timeutil"
	"tp-server/models"
)

// Segment is a derived consecutive (from, to) pair within one date's schedule.
// GapMinutes may be negative, which signals an overlap; callers decide how to
// react.
type Segment struct {
	Date       string `json:"date"`
	FromID     string `json:"from_id"`
	ToID       string `json:"to_id"`
	FromEndMin int    `json:"from_end_min"`
	ToStartMin int    `json:"to_start_min"`
	GapMinutes int    `json:"gap_minutes"`
}

type timedRow struct {
	id       string
	startMin int
	endMin   int
}

// Build orders the given date's scheduled activities by start time and emits a
// segment between every consecutive pair. Rows with missing, unparseable, or
// inverted times are dropped.
func Build(date string, activities []models.ItineraryActivity) []Segment {
	var rows []timedRow
	for i := range activities {
		a := &activities[i]
		if a.Date == nil || *a.Date != date || a.StartTime == nil || a.EndTime == nil {
			continue
		}
		startMin, sok := timeutil.ParseClock(*a.StartTime)
		endMin, eok := timeutil.ParseClock(*a.EndTime)
		if !sok || !eok || endMin <= startMin {
			continue
		}
		rows = append(rows, timedRow{id: a.ID, startMin: startMin, endMin: endMin})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].startMin != rows[j].startMin {
			return rows[i].startMin < rows[j].startMin
		}
		return rows[i].id < rows[j].id
	})

	var segs []Segment
	for i := 1; i < len(rows); i++ {
		prev, next := rows[i-1], rows[i]
		segs = append(segs, Segment{
			Date:       date,
			FromID:     prev.id,
			ToID:       next.id,
			FromEndMin: prev.endMin,
			ToStartMin: next.startMin,
			GapMinutes: next.startMin - prev.endMin,
		})
	}
	return segs
}
