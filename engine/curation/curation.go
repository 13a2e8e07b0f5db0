package curation

import (
	"sort"

	"tp-server/engine/schedule"
	"tp-server/engine/themes"
	"tp-server/engine/timeutil"
	"tp-server/models"
)

// DEFAULT_DURATION_MIN is assumed when a candidate's duration is missing or
// unparseable. A bad duration narrows confidence, it does not drop the
// candidate from planning.
const DEFAULT_DURATION_MIN = 60

// Candidate is an activity eligible for a themed day plan. Duration carries
// the raw upstream value ("45 minutes", "01:30:00", or a bare number) and is
// normalized through timeutil.ParseDurationToMinutes.
type Candidate struct {
	ID         string
	Name       string
	Lat        float64
	Lng        float64
	HasCoords  bool
	Types      []string
	Duration   interface{}
	LockedDate string
	OpenHours  []models.OpenHoursRow
}

// Request describes one curation run over an explicit date range.
type Request struct {
	Candidates          []Candidate
	Fixed               []schedule.FixedPlacement
	StartDate           string
	EndDate             string
	RequestedTheme      themes.Theme // empty means infer from the candidate pool
	MaxOperations       int
	DayStartMin         int
	DayEndMin           int
	ClusterRadiusMeters float64
}

// PlanItem is one scheduled entry of the day-by-day plan view.
type PlanItem struct {
	ActivityID string `json:"activity_id"`
	Name       string `json:"name"`
	StartMin   int    `json:"start_min"`
	EndMin     int    `json:"end_min"`
}

// DayPlan groups the plan view for a single date.
type DayPlan struct {
	Date  string     `json:"date"`
	Items []PlanItem `json:"items"`
}

// Result is the curation output: update operations capped at MaxOperations
// plus the derived plan view and the ids that fit nowhere.
type Result struct {
	Theme      themes.Theme       `json:"theme"`
	Operations []models.Operation `json:"operations"`
	Days       []DayPlan          `json:"days"`
	Unplaced   []string           `json:"unplaced"`
}

// BuildThemedPlan builds a day plan across [StartDate, EndDate] biased toward
// the requested or inferred theme. Theme-matching candidates are scheduled
// first; everything else fills the remaining space. The output is identical
// for any permutation of the candidate input: all internal ordering uses
// explicit comparators, never insertion order.
func BuildThemedPlan(req Request) Result {
	dates := timeutil.DateRange(req.StartDate, req.EndDate)
	if len(dates) == 0 {
		return Result{Theme: req.RequestedTheme}
	}

	candidates := append([]Candidate(nil), req.Candidates...)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	theme := req.RequestedTheme
	if theme == "" {
		theme = dominantTheme(candidates)
	}

	var themed, rest []schedule.Candidate
	for _, cand := range candidates {
		sc := toScheduleCandidate(cand)
		if theme != "" && matchesTheme(cand, theme) {
			themed = append(themed, sc)
		} else {
			rest = append(rest, sc)
		}
	}

	opts := schedule.Options{
		Dates:               dates,
		DayStartMin:         req.DayStartMin,
		DayEndMin:           req.DayEndMin,
		ClusterRadiusMeters: req.ClusterRadiusMeters,
	}

	first := schedule.Plan(themed, req.Fixed, opts)

	// Second pass fills leftover space around both the caller's fixed items and
	// the themed placements.
	secondFixed := append([]schedule.FixedPlacement(nil), req.Fixed...)
	for _, p := range first.Placements {
		secondFixed = append(secondFixed, schedule.FixedPlacement{
			ID: p.ID, Date: p.Date, StartMin: p.StartMin, EndMin: p.EndMin,
		})
	}
	second := schedule.Plan(rest, secondFixed, opts)

	placements := append(first.Placements, second.Placements...)
	sort.Slice(placements, func(i, j int) bool {
		a, b := placements[i], placements[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StartMin != b.StartMin {
			return a.StartMin < b.StartMin
		}
		return a.ID < b.ID
	})

	unplaced := append(first.Unplaced, second.Unplaced...)
	sort.Strings(unplaced)

	names := map[string]string{}
	for _, cand := range candidates {
		names[cand.ID] = cand.Name
	}

	result := Result{Theme: theme, Unplaced: unplaced}
	maxOps := req.MaxOperations
	if maxOps <= 0 || maxOps > models.MAX_OPERATIONS_PER_BATCH {
		maxOps = models.MAX_OPERATIONS_PER_BATCH
	}
	for _, p := range placements {
		if len(result.Operations) < maxOps {
			date := p.Date
			start := timeutil.FormatClock(p.StartMin)
			end := timeutil.FormatClock(p.EndMin)
			result.Operations = append(result.Operations, models.Operation{
				Type:       models.OP_UPDATE_ACTIVITY,
				ActivityID: p.ID,
				Date:       &date,
				StartTime:  &start,
				EndTime:    &end,
			})
		}
		if n := len(result.Days); n == 0 || result.Days[n-1].Date != p.Date {
			result.Days = append(result.Days, DayPlan{Date: p.Date})
		}
		day := &result.Days[len(result.Days)-1]
		day.Items = append(day.Items, PlanItem{
			ActivityID: p.ID,
			Name:       names[p.ID],
			StartMin:   p.StartMin,
			EndMin:     p.EndMin,
		})
	}
	return result
}

func toScheduleCandidate(cand Candidate) schedule.Candidate {
	duration, ok := timeutil.ParseDurationToMinutes(cand.Duration)
	if !ok {
		duration = DEFAULT_DURATION_MIN
	}
	return schedule.Candidate{
		ID:            cand.ID,
		Name:          cand.Name,
		Lat:           cand.Lat,
		Lng:           cand.Lng,
		HasCoords:     cand.HasCoords,
		Types:         cand.Types,
		DurationMin:   duration,
		PreferredDate: cand.LockedDate,
		Locked:        cand.LockedDate != "",
		OpenHours:     cand.OpenHours,
	}
}

func matchesTheme(cand Candidate, theme themes.Theme) bool {
	if theme == themes.THEME_MIXED {
		return true
	}
	for _, t := range themes.ClassifyTypes(cand.Types) {
		if t == theme {
			return true
		}
	}
	return false
}

// dominantTheme votes with each candidate's primary theme and returns the most
// common one, ties broken by theme name.
func dominantTheme(candidates []Candidate) themes.Theme {
	counts := map[themes.Theme]int{}
	for _, cand := range candidates {
		if theme, ok := themes.PrimaryTheme(cand.Types); ok {
			counts[theme]++
		}
	}
	ranked := themes.RankByCount(counts)
	if len(ranked) == 0 {
		return ""
	}
	return ranked[0]
}
