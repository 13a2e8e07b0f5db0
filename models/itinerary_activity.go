package models

import "fmt"

// Place holds the static details of a place attached to an itinerary activity.
// Coordinates come from the catalog source as a [lng, lat] pair.
type Place struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Types       []string    `json:"types,omitempty"`
	Coordinates *[2]float64 `json:"coordinates,omitempty"`
}

// Lat returns the latitude of the place, second element of the [lng, lat] pair.
func (p *Place) Lat() (float64, bool) {
	if p.Coordinates == nil {
		return 0, false
	}
	return p.Coordinates[1], true
}

// Lng returns the longitude of the place, first element of the [lng, lat] pair.
func (p *Place) Lng() (float64, bool) {
	if p.Coordinates == nil {
		return 0, false
	}
	return p.Coordinates[0], true
}

// ItineraryActivity represents one activity row of a destination's itinerary.
// Date/StartTime/EndTime are nil while the activity is unscheduled.
type ItineraryActivity struct {
	ID            string  `json:"id"`
	DestinationID string  `json:"destination_id"`
	Date          *string `json:"date,omitempty"`       // ISO date, e.g. "2025-04-12"
	StartTime     *string `json:"start_time,omitempty"` // "HH:MM" or "HH:MM:SS"
	EndTime       *string `json:"end_time,omitempty"`

	// DurationMinutes is the planned visit length for unscheduled rows. Scheduled
	// rows derive it from start/end instead.
	DurationMinutes *int `json:"duration_minutes,omitempty"`

	Activity Place `json:"activity"`
}

// IsScheduled reports whether the activity is bound to a slot.
func (a *ItineraryActivity) IsScheduled() bool {
	return a.Date != nil && a.StartTime != nil && a.EndTime != nil
}

func (a *ItineraryActivity) ToString() string {
	return fmt.Sprintf("ItineraryActivity(id=%s, destination=%s, name=%s)",
		a.ID, a.DestinationID, a.Activity.Name)
}
