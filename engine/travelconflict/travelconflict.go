package travelconflict

import "tp-server/engine/timeutil"

// Status classifies the gap between two consecutive activities.
type Status string

const (
	STATUS_OK       Status = "ok"
	STATUS_TIGHT    Status = "tight"
	STATUS_CONFLICT Status = "conflict"
)

// DEFAULT_TIGHT_THRESHOLD_MINUTES separates "ok" from "tight" slack.
const DEFAULT_TIGHT_THRESHOLD_MINUTES = 5

// DEFAULT_MAX_SHIFT_MINUTES bounds how far a shift suggestion may push the
// next activity.
const DEFAULT_MAX_SHIFT_MINUTES = 90

// Conflict is the pure classification of one gap. It carries no identity and
// is recomputed on demand.
type Conflict struct {
	Status             Status `json:"status"`
	RequiredGapMinutes int    `json:"required_gap_minutes"`
	SlackMinutes       int    `json:"slack_minutes"`
	ShortByMinutes     int    `json:"short_by_minutes"`
}

// ClassifyParams feeds Classify. TightThresholdMinutes zero means the default.
type ClassifyParams struct {
	GapMinutes           int
	TravelMinutes        int
	BufferMinutes        int
	TightThresholdMinutes int
}

// Classify compares the available gap against travel + buffer. A gap below the
// requirement is a conflict short by the difference; otherwise slack at or
// under the threshold is tight, anything more is ok.
func Classify(p ClassifyParams) Conflict {
	threshold := p.TightThresholdMinutes
	if threshold <= 0 {
		threshold = DEFAULT_TIGHT_THRESHOLD_MINUTES
	}
	required := p.TravelMinutes + p.BufferMinutes
	if p.GapMinutes < required {
		return Conflict{
			Status:             STATUS_CONFLICT,
			RequiredGapMinutes: required,
			ShortByMinutes:     required - p.GapMinutes,
		}
	}
	slack := p.GapMinutes - required
	status := STATUS_OK
	if slack <= threshold {
		status = STATUS_TIGHT
	}
	return Conflict{
		Status:             status,
		RequiredGapMinutes: required,
		SlackMinutes:       slack,
	}
}

// ShiftParams feeds SuggestShift. NextStartMin and DayEndMin are optional
// neighboring constraints; MaxShiftMin zero means the default.
type ShiftParams struct {
	FromEndMin     int
	ToStartMin     int
	ToEndMin       int
	RequiredGapMin int
	NextStartMin   *int
	DayEndMin      *int
	MaxShiftMin    int
}

// Shift is the single forward move that resolves a conflict.
type Shift struct {
	ShiftMin    int `json:"shift_min"`
	NewStartMin int `json:"new_start_min"`
	NewEndMin   int `json:"new_end_min"`
}

// SuggestShift computes the minimal forward shift of the next activity so its
// gap to the previous one meets RequiredGapMin. Plain arithmetic, no search.
// Returns nil when no shift is needed, when the shift would exceed
// MaxShiftMin, when the shifted activity could no longer keep the required gap
// to a following activity, or when it would run past DayEndMin or end-of-day.
func SuggestShift(p ShiftParams) *Shift {
	maxShift := p.MaxShiftMin
	if maxShift <= 0 {
		maxShift = DEFAULT_MAX_SHIFT_MINUTES
	}

	needed := p.RequiredGapMin - (p.ToStartMin - p.FromEndMin)
	if needed <= 0 {
		return nil
	}
	if needed > maxShift {
		return nil
	}

	newStart := p.ToStartMin + needed
	newEnd := p.ToEndMin + needed
	if newEnd > timeutil.MINUTES_PER_DAY {
		return nil
	}
	if p.DayEndMin != nil && newEnd > *p.DayEndMin {
		return nil
	}
	if p.NextStartMin != nil && newEnd+p.RequiredGapMin > *p.NextStartMin {
		return nil
	}
	return &Shift{ShiftMin: needed, NewStartMin: newStart, NewEndMin: newEnd}
}
