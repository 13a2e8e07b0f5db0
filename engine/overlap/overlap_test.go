package overlap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-server/models"
)

func strPtr(s string) *string { return &s }

func scheduled(id, name, date, start, end string) models.ItineraryActivity {
	return models.ItineraryActivity{
		ID:        id,
		Date:      strPtr(date),
		StartTime: strPtr(start),
		EndTime:   strPtr(end),
		Activity:  models.Place{Name: name},
	}
}

func flight(id, title, date, start, end string) models.CustomEvent {
	return models.CustomEvent{ID: id, Title: title, Kind: "flight", Date: date, StartTime: start, EndTime: end}
}

func TestBuildWarnings_ReportsOverlap(t *testing.T) {
	activities := []models.ItineraryActivity{
		scheduled("1", "Louvre", "2025-04-14", "10:00", "12:00"),
	}
	events := []models.CustomEvent{
		flight("f1", "Flight to Rome", "2025-04-14", "11:00", "13:00"),
	}

	warnings := BuildWarnings(activities, events, 0)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Louvre")
	assert.Contains(t, warnings[0], "Flight to Rome")
	assert.Contains(t, warnings[0], "2025-04-14")
}

func TestBuildWarnings_NoOverlapNoWarnings(t *testing.T) {
	activities := []models.ItineraryActivity{
		scheduled("1", "Louvre", "2025-04-14", "09:00", "10:00"),
		// Touching boundaries do not overlap under half-open semantics.
		scheduled("2", "Orsay", "2025-04-14", "13:00", "14:00"),
	}
	events := []models.CustomEvent{
		flight("f1", "Flight", "2025-04-14", "10:00", "13:00"),
	}

	warnings := BuildWarnings(activities, events, 0)

	assert.Empty(t, warnings)
}

func TestBuildWarnings_TouchingBoundaryCrossedByOneMinute(t *testing.T) {
	activities := []models.ItineraryActivity{
		scheduled("1", "Louvre", "2025-04-14", "09:00", "10:01"),
	}
	events := []models.CustomEvent{
		flight("f1", "Flight", "2025-04-14", "10:00", "13:00"),
	}

	warnings := BuildWarnings(activities, events, 0)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Louvre")
}

func TestBuildWarnings_CapAndSummary(t *testing.T) {
	activities := []models.ItineraryActivity{
		scheduled("1", "Louvre", "2025-04-14", "10:00", "12:00"),
		scheduled("2", "Orsay", "2025-04-14", "11:00", "13:00"),
	}
	events := []models.CustomEvent{
		flight("f1", "Flight", "2025-04-14", "10:30", "12:30"),
	}

	warnings := BuildWarnings(activities, events, 1)

	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "Louvre")
	assert.Equal(t, "...omitted for 1 other item(s).", warnings[1])
}

func TestBuildWarnings_DeterministicOrder(t *testing.T) {
	activities := []models.ItineraryActivity{
		scheduled("2", "B", "2025-04-14", "10:00", "12:00"),
		scheduled("1", "A", "2025-04-14", "10:00", "12:00"),
	}
	events := []models.CustomEvent{
		flight("f1", "Flight", "2025-04-14", "10:30", "11:00"),
	}

	warnings := BuildWarnings(activities, events, 0)

	require.Len(t, warnings, 2)
	assert.True(t, strings.Contains(warnings[0], `"A"`), "expected A first, got %q", warnings[0])
	assert.True(t, strings.Contains(warnings[1], `"B"`), "expected B second, got %q", warnings[1])
}

func TestBuildWarnings_SkipsMalformedRows(t *testing.T) {
	activities := []models.ItineraryActivity{
		scheduled("1", "Bad", "2025-04-14", "bad", "12:00"),
		{ID: "2", Activity: models.Place{Name: "Unscheduled"}},
	}
	events := []models.CustomEvent{
		flight("f1", "Flight", "2025-04-14", "10:00", "12:00"),
		flight("f2", "Inverted", "2025-04-14", "14:00", "13:00"),
	}

	warnings := BuildWarnings(activities, events, 0)

	assert.Empty(t, warnings)
}

func TestBuildWarnings_ClampsMaxWarnings(t *testing.T) {
	var activities []models.ItineraryActivity
	for i := 0; i < 30; i++ {
		id := string(rune('a' + i%26))
		activities = append(activities, scheduled(id+"x", "Item "+id, "2025-04-14", "10:00", "12:00"))
	}
	events := []models.CustomEvent{
		flight("f1", "Flight", "2025-04-14", "10:30", "11:00"),
	}

	warnings := BuildWarnings(activities, events, 100)

	// 25 warnings max plus the summary line.
	require.Len(t, warnings, 26)
	assert.Equal(t, "...omitted for 5 other item(s).", warnings[25])
}
