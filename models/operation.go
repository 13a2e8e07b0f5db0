package models

import (
	"fmt"
	"regexp"
)

// Operation types the engine can propose. Operations are never executed here;
// callers apply them transactionally.
const (
	OP_UPDATE_ACTIVITY = "update_activity"
	OP_REMOVE_ACTIVITY = "remove_activity"
	OP_ADD_PLACE       = "add_place"
)

// MAX_OPERATIONS_PER_BATCH bounds any operation list handed downstream.
const MAX_OPERATIONS_PER_BATCH = 25

var numericIDPattern = regexp.MustCompile(`^[0-9]+$`)

// Operation is a proposed itinerary mutation.
type Operation struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	ActivityID string  `json:"activity_id,omitempty"`
	PlaceID    string  `json:"place_id,omitempty"`
	PlaceName  string  `json:"place_name,omitempty"`
	Date       *string `json:"date,omitempty"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
}

// Validate checks the operation against the downstream schema: known type,
// numeric-string activity ids, and paired date/time fields (times never appear
// without a date, and start/end always travel together).
func (o *Operation) Validate() error {
	switch o.Type {
	case OP_UPDATE_ACTIVITY:
		if !numericIDPattern.MatchString(o.ActivityID) {
			return fmt.Errorf("update_activity requires a numeric activity id, got %q", o.ActivityID)
		}
		if err := o.validateSlotFields(); err != nil {
			return err
		}
	case OP_REMOVE_ACTIVITY:
		if !numericIDPattern.MatchString(o.ActivityID) {
			return fmt.Errorf("remove_activity requires a numeric activity id, got %q", o.ActivityID)
		}
	case OP_ADD_PLACE:
		if o.PlaceID == "" || o.PlaceName == "" {
			return fmt.Errorf("add_place requires place_id and place_name")
		}
		if err := o.validateSlotFields(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown operation type %q", o.Type)
	}
	return nil
}

func (o *Operation) validateSlotFields() error {
	if (o.StartTime == nil) != (o.EndTime == nil) {
		return fmt.Errorf("start_time and end_time must be set together")
	}
	if o.StartTime != nil && o.Date == nil {
		return fmt.Errorf("start_time/end_time require a date")
	}
	return nil
}

// ValidateOperations validates a whole batch, including the batch size cap.
func ValidateOperations(ops []Operation) error {
	if len(ops) > MAX_OPERATIONS_PER_BATCH {
		return fmt.Errorf("operation batch too large: %d > %d", len(ops), MAX_OPERATIONS_PER_BATCH)
	}
	for i := range ops {
		if err := ops[i].Validate(); err != nil {
			return fmt.Errorf("operation %d invalid: %w", i, err)
		}
	}
	return nil
}
