package models

// CustomEvent is a fixed trip block (flight, hotel check-in/out) that planned
// activities must not silently overlap.
type CustomEvent struct {
	ID            string `json:"id"`
	DestinationID string `json:"destination_id"`
	Title         string `json:"title"`
	Kind          string `json:"kind"` // e.g. "flight", "hotel"
	Date          string `json:"date"` // ISO date
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}
