package alternatives

import (
	"fmt"
	"sort"

	"tp-server/engine/geodist"
	"tp-server/engine/openhours"
	"tp-server/engine/timeutil"
	"tp-server/models"
)

// MAX_SUGGESTIONS is the hard cap on ranked substitutes per request.
const MAX_SUGGESTIONS = 3

// Scoring weights. Proximity decays linearly to zero at PROXIMITY_CUTOFF_METERS.
const (
	PROXIMITY_MAX_POINTS    = 10.0
	PROXIMITY_CUTOFF_METERS = 10000.0
	SHARED_TYPE_POINTS      = 1.5
	OPEN_DURING_SLOT_POINTS = 3.0
)

// Suggestion is one explainable ranked substitute.
type Suggestion struct {
	CandidateID    string   `json:"candidate_id"`
	Score          float64  `json:"score"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	OpenDuringSlot *bool    `json:"open_during_slot,omitempty"`
	Reasons        []string `json:"reasons"`
}

// Params describes one ranking request. OpenHours is keyed by activity id;
// missing entries mean the hours are unknown.
type Params struct {
	Target    models.ItineraryActivity
	Pool      []models.ItineraryActivity
	OpenHours map[string][]models.OpenHoursRow
	Max       int
}

// Rank returns at most Max (clamped to 3) substitute candidates for the
// target, highest score first. Eligibility is hard: same destination, and the
// candidate is either fully unscheduled or occupies exactly the target's slot.
// A candidate whose known opening hours exclude the target's window is dropped
// outright.
func Rank(p Params) []Suggestion {
	max := p.Max
	if max <= 0 || max > MAX_SUGGESTIONS {
		max = MAX_SUGGESTIONS
	}

	slotWeekday, slotStart, slotEnd, slotKnown := targetSlot(p.Target)

	var suggestions []Suggestion
	for i := range p.Pool {
		cand := &p.Pool[i]
		if !eligible(&p.Target, cand) {
			continue
		}

		s := Suggestion{CandidateID: cand.ID}

		if d, ok := distanceBetween(&p.Target.Activity, &cand.Activity); ok {
			s.DistanceMeters = &d
			if d < PROXIMITY_CUTOFF_METERS {
				s.Score += PROXIMITY_MAX_POINTS * (1 - d/PROXIMITY_CUTOFF_METERS)
				s.Reasons = append(s.Reasons, fmt.Sprintf("%.0fm from %s", d, p.Target.Activity.Name))
			}
		}

		if shared := sharedTypes(p.Target.Activity.Types, cand.Activity.Types); shared > 0 {
			s.Score += SHARED_TYPE_POINTS * float64(shared)
			s.Reasons = append(s.Reasons, fmt.Sprintf("shares %d place type(s)", shared))
		}

		if slotKnown {
			if rows, ok := p.OpenHours[cand.ID]; ok && rows != nil {
				intervals := openhours.IntervalsForDay(rows, slotWeekday)
				open := openhours.IsOpenForWindow(intervals, slotStart, slotEnd)
				if !open {
					// Known to be closed during the exact window: excluded, not down-scored.
					continue
				}
				isOpen := true
				s.OpenDuringSlot = &isOpen
				s.Score += OPEN_DURING_SLOT_POINTS
				s.Reasons = append(s.Reasons, "open during the target time slot")
			}
		}

		suggestions = append(suggestions, s)
	}

	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if c := compareDistance(a.DistanceMeters, b.DistanceMeters); c != 0 {
			return c < 0
		}
		return a.CandidateID < b.CandidateID
	})

	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return suggestions
}

func eligible(target, cand *models.ItineraryActivity) bool {
	if cand.ID == target.ID || cand.DestinationID != target.DestinationID {
		return false
	}
	if cand.Date == nil && cand.StartTime == nil && cand.EndTime == nil {
		return true
	}
	// Scheduled candidates only qualify as a same-slot swap.
	return cand.IsScheduled() && target.IsScheduled() &&
		*cand.Date == *target.Date &&
		*cand.StartTime == *target.StartTime &&
		*cand.EndTime == *target.EndTime
}

func targetSlot(target models.ItineraryActivity) (weekday, startMin, endMin int, ok bool) {
	if !target.IsScheduled() {
		return 0, 0, 0, false
	}
	weekday, wok := timeutil.DayOfWeek(*target.Date)
	startMin, sok := timeutil.ParseClock(*target.StartTime)
	endMin, eok := timeutil.ParseClock(*target.EndTime)
	if !wok || !sok || !eok || startMin >= endMin {
		return 0, 0, 0, false
	}
	return weekday, startMin, endMin, true
}

func distanceBetween(a, b *models.Place) (float64, bool) {
	aLat, aOK := a.Lat()
	bLat, bOK := b.Lat()
	if !aOK || !bOK {
		return 0, false
	}
	aLng, _ := a.Lng()
	bLng, _ := b.Lng()
	return geodist.HaversineMeters(aLat, aLng, bLat, bLng), true
}

func sharedTypes(a, b []string) int {
	set := map[string]bool{}
	for _, t := range a {
		set[t] = true
	}
	seen := map[string]bool{}
	shared := 0
	for _, t := range b {
		if set[t] && !seen[t] {
			shared++
			seen[t] = true
		}
	}
	return shared
}

// compareDistance orders known distances ascending and sorts unknown last.
func compareDistance(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
