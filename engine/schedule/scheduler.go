package schedule

import (
	"sort"

	"tp-server/engine/openhours"
	"tp-server/engine/timeutil"
	"tp-server/models"
)

// Candidate is an activity not yet bound to a slot.
type Candidate struct {
	ID          string
	Name        string
	Lat         float64
	Lng         float64
	HasCoords   bool
	Types       []string
	DurationMin int

	// PreferredDate, when set, is tried before the general date walk. With
	// Locked the candidate is never placed on any other date.
	PreferredDate string
	Locked        bool

	// OpenHours nil means open all day; non-nil rows constrain placement.
	OpenHours []models.OpenHoursRow
}

// FixedPlacement is an already-scheduled item the scheduler treats as
// immovable occupancy on its date.
type FixedPlacement struct {
	ID       string
	Date     string
	StartMin int
	EndMin   int
}

// Placement binds one candidate to a date and a [StartMin, EndMin) slot.
type Placement struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	StartMin int    `json:"start_min"`
	EndMin   int    `json:"end_min"`
}

// Options configures one scheduling run. The same day window applies to every
// date in the pool.
type Options struct {
	Dates               []string
	DayStartMin         int
	DayEndMin           int
	ClusterRadiusMeters float64
}

// Result carries the placements plus the ids of candidates that fit nowhere.
// Infeasible candidates are reported, never silently dropped.
type Result struct {
	Placements []Placement `json:"placements"`
	Unplaced   []string    `json:"unplaced"`
}

// Plan assigns candidates to dates and slots. Candidates are grouped into
// geographic clusters, clusters are processed largest-first, and each cluster
// walks the date pool in order, spilling members onto later dates when a day
// fills up. Output is deterministic given the same input order and date pool.
func Plan(candidates []Candidate, fixed []FixedPlacement, opts Options) Result {
	if opts.DayEndMin <= opts.DayStartMin {
		ids := make([]string, 0, len(candidates))
		for _, c := range candidates {
			ids = append(ids, c.ID)
		}
		return Result{Unplaced: ids}
	}

	dateIndex := map[string]int{}
	for i, d := range opts.Dates {
		dateIndex[d] = i
	}

	// The day cursor starts after whatever fixed occupancy already ends latest.
	cursor := map[string]int{}
	for _, d := range opts.Dates {
		cursor[d] = opts.DayStartMin
	}
	for _, f := range fixed {
		if _, ok := cursor[f.Date]; !ok {
			continue
		}
		if f.EndMin > cursor[f.Date] {
			cursor[f.Date] = f.EndMin
		}
	}

	result := Result{}
	clusters := buildClusters(candidates, opts.ClusterRadiusMeters)
	for _, cl := range clusters {
		startIdx := 0
		for _, cand := range cl.members {
			placed := false

			if cand.PreferredDate != "" {
				if _, ok := dateIndex[cand.PreferredDate]; ok {
					placed = tryPlace(&result, cursor, cand, cand.PreferredDate, opts)
				}
				if !placed && cand.Locked {
					result.Unplaced = append(result.Unplaced, cand.ID)
					continue
				}
			}

			for idx := startIdx; !placed && idx < len(opts.Dates); idx++ {
				if tryPlace(&result, cursor, cand, opts.Dates[idx], opts) {
					placed = true
					startIdx = idx
				}
			}
			if !placed {
				result.Unplaced = append(result.Unplaced, cand.ID)
			}
		}
	}

	sort.Slice(result.Placements, func(i, j int) bool {
		a, b := result.Placements[i], result.Placements[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StartMin != b.StartMin {
			return a.StartMin < b.StartMin
		}
		return a.ID < b.ID
	})
	return result
}

// tryPlace finds the earliest admissible start for cand on date, at or after
// the day's occupancy cursor, inside the day window and the candidate's
// opening hours. On success it records the placement and advances the cursor.
func tryPlace(result *Result, cursor map[string]int, cand Candidate, date string, opts Options) bool {
	if cand.DurationMin <= 0 {
		return false
	}
	c, ok := cursor[date]
	if !ok {
		return false
	}

	intervals := fullDayIntervals
	if cand.OpenHours != nil {
		weekday, ok := timeutil.DayOfWeek(date)
		if !ok {
			return false
		}
		intervals = openhours.IntervalsForDay(cand.OpenHours, weekday)
		if len(intervals) == 0 {
			return false
		}
	}

	for _, iv := range intervals {
		start := maxInt(c, opts.DayStartMin, iv.StartMin)
		end := start + cand.DurationMin
		if end <= iv.EndMin && end <= opts.DayEndMin {
			result.Placements = append(result.Placements, Placement{
				ID:       cand.ID,
				Date:     date,
				StartMin: start,
				EndMin:   end,
			})
			cursor[date] = end
			return true
		}
	}
	return false
}

var fullDayIntervals = []openhours.Interval{{StartMin: 0, EndMin: timeutil.MINUTES_PER_DAY}}

func maxInt(vals ...int) int {
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
