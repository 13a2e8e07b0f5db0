package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"tp-server/dao/redis"
	"tp-server/db"
	"tp-server/engine/travelconflict"
	"tp-server/models"
)

// stubPlacesApi serves a fixed catalog without touching the network.
type stubPlacesApi struct {
	place *models.CatalogPlace
}

func (s *stubPlacesApi) SetCredentials(apiKey string) {}

func (s *stubPlacesApi) GetNearbyPlaces(ctx context.Context, lat, lng float64) (*models.NearbyPlacesResponse, error) {
	resp := &models.NearbyPlacesResponse{Status: "OK"}
	if s.place != nil {
		resp.Places = []models.CatalogPlace{*s.place}
	}
	return resp, nil
}

func (s *stubPlacesApi) GetPlace(ctx context.Context, placeID string) (*models.CatalogPlace, error) {
	return s.place, nil
}

func newTestPlannerService() (*PlannerService, *redis.RedisItineraryDAO) {
	dao := redis.NewRedisItineraryDAO(db.NewMockRedisClient(context.Background()))
	stub := &stubPlacesApi{place: &models.CatalogPlace{
		PlaceID:            "poi-x",
		Name:               "Pantheon",
		Lat:                48.8462,
		Lng:                2.3464,
		Types:              []string{"monument"},
		TypicalDurationMin: 45,
	}}
	return NewPlannerService(dao, stub), dao
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func seedActivity(t *testing.T, dao *redis.RedisItineraryDAO, a models.ItineraryActivity) {
	t.Helper()
	assert.NoError(t, dao.UpsertActivity(a))
}

func TestSchedulePlan_PlacesUnscheduledAroundFixed(t *testing.T) {
	ps, dao := newTestPlannerService()

	seedActivity(t, dao, models.ItineraryActivity{
		ID: "100", DestinationID: "paris",
		Date: strPtr("2025-04-14"), StartTime: strPtr("09:00"), EndTime: strPtr("11:00"),
		Activity: models.Place{Name: "Louvre", Coordinates: &[2]float64{2.3376, 48.8606}},
	})
	seedActivity(t, dao, models.ItineraryActivity{
		ID: "101", DestinationID: "paris",
		DurationMinutes: intPtr(90),
		Activity:        models.Place{Name: "Orsay", Coordinates: &[2]float64{2.3266, 48.8600}},
	})

	resp, err := ps.SchedulePlan("paris", SchedulePlanRequest{
		StartDate: "2025-04-14", EndDate: "2025-04-14",
		DayStartMin: 540, DayEndMin: 1260,
	})
	assert.NoError(t, err)
	assert.Empty(t, resp.Unplaced)
	assert.Len(t, resp.Placements, 1)
	assert.Equal(t, "101", resp.Placements[0].ID)
	// Fixed activity occupies until 11:00.
	assert.GreaterOrEqual(t, resp.Placements[0].StartMin, 660)
	assert.NotEmpty(t, resp.Profile)
}

func TestCurate_ReturnsOperationsAndBatchID(t *testing.T) {
	ps, dao := newTestPlannerService()

	seedActivity(t, dao, models.ItineraryActivity{
		ID: "200", DestinationID: "paris", DurationMinutes: intPtr(120),
		Activity: models.Place{Name: "Louvre", Types: []string{"museum"}, Coordinates: &[2]float64{2.3376, 48.8606}},
	})
	seedActivity(t, dao, models.ItineraryActivity{
		ID: "201", DestinationID: "paris", DurationMinutes: intPtr(60),
		Activity: models.Place{Name: "Tuileries", Types: []string{"park"}, Coordinates: &[2]float64{2.3275, 48.8635}},
	})

	resp, err := ps.Curate("paris", CurateRequest{
		StartDate: "2025-04-14", EndDate: "2025-04-15",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.BatchID)
	assert.Len(t, resp.Operations, 2)
	assert.NoError(t, models.ValidateOperations(resp.Operations))
	assert.NotEmpty(t, resp.Days)
}

func TestAlternatives_RanksUnscheduledPool(t *testing.T) {
	ps, dao := newTestPlannerService()

	seedActivity(t, dao, models.ItineraryActivity{
		ID: "300", DestinationID: "paris",
		Date: strPtr("2025-04-14"), StartTime: strPtr("10:00"), EndTime: strPtr("12:00"),
		Activity: models.Place{Name: "Louvre", Types: []string{"museum"}, Coordinates: &[2]float64{2.3376, 48.8606}},
	})
	seedActivity(t, dao, models.ItineraryActivity{
		ID: "301", DestinationID: "paris",
		Activity: models.Place{Name: "Orsay", Types: []string{"museum"}, Coordinates: &[2]float64{2.3266, 48.8600}},
	})

	suggestions, err := ps.Alternatives("paris", "300", 3)
	assert.NoError(t, err)
	assert.Len(t, suggestions, 1)
	assert.Equal(t, "301", suggestions[0].CandidateID)
	assert.Greater(t, suggestions[0].Score, 0.0)
}

func TestAlternatives_UnknownActivity(t *testing.T) {
	ps, _ := newTestPlannerService()

	_, err := ps.Alternatives("paris", "missing", 3)
	assert.Error(t, err)
}

func TestConflicts_ClassifiesTightGapAndOverlap(t *testing.T) {
	ps, dao := newTestPlannerService()

	// ~2.5km apart with a 20 minute gap: walking estimate plus buffer exceeds it.
	seedActivity(t, dao, models.ItineraryActivity{
		ID: "400", DestinationID: "paris",
		Date: strPtr("2025-04-14"), StartTime: strPtr("10:00"), EndTime: strPtr("11:00"),
		Activity: models.Place{Name: "Louvre", Coordinates: &[2]float64{2.3376, 48.8606}},
	})
	seedActivity(t, dao, models.ItineraryActivity{
		ID: "401", DestinationID: "paris",
		Date: strPtr("2025-04-14"), StartTime: strPtr("11:20"), EndTime: strPtr("12:20"),
		Activity: models.Place{Name: "Eiffel Tower", Coordinates: &[2]float64{2.2945, 48.8584}},
	})
	assert.NoError(t, dao.UpsertCustomEvent(models.CustomEvent{
		ID: "e1", DestinationID: "paris", Title: "Lunch reservation", Kind: "reservation",
		Date: "2025-04-14", StartTime: "11:30", EndTime: "12:30",
	}))

	report, err := ps.Conflicts("paris", "2025-04-14")
	assert.NoError(t, err)
	assert.Len(t, report.Segments, 1)

	seg := report.Segments[0]
	assert.Equal(t, "400", seg.FromID)
	assert.Equal(t, "401", seg.ToID)
	assert.Greater(t, seg.TravelMinutes, 20)
	assert.Equal(t, travelconflict.STATUS_CONFLICT, seg.Conflict.Status)
	assert.NotNil(t, seg.SuggestedShift)

	assert.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "Lunch reservation")
}

func TestApplyOperations_FullBatch(t *testing.T) {
	ps, dao := newTestPlannerService()

	seedActivity(t, dao, models.ItineraryActivity{
		ID: "500", DestinationID: "paris",
		Activity: models.Place{Name: "Louvre"},
	})
	seedActivity(t, dao, models.ItineraryActivity{
		ID: "501", DestinationID: "paris",
		Activity: models.Place{Name: "Orsay"},
	})

	ops := []models.Operation{
		{Type: models.OP_UPDATE_ACTIVITY, ActivityID: "500",
			Date: strPtr("2025-04-14"), StartTime: strPtr("10:00"), EndTime: strPtr("12:00")},
		{Type: models.OP_REMOVE_ACTIVITY, ActivityID: "501"},
		{Type: models.OP_ADD_PLACE, PlaceID: "poi-x", PlaceName: "Pantheon"},
	}
	assert.NoError(t, ps.ApplyOperations(context.Background(), "paris", ops))

	updated, err := ps.itineraryDao.GetActivity("paris", "500")
	assert.NoError(t, err)
	assert.True(t, updated.IsScheduled())

	all, err := dao.ListActivities("paris")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	var added *models.ItineraryActivity
	for i := range all {
		if all[i].Activity.ID == "poi-x" {
			added = &all[i]
		}
	}
	if assert.NotNil(t, added, "add_place should insert a hydrated activity") {
		assert.Equal(t, []string{"monument"}, added.Activity.Types)
		assert.Equal(t, 45, *added.DurationMinutes)
	}
}

func TestApplyOperations_RejectsInvalidBatch(t *testing.T) {
	ps, _ := newTestPlannerService()

	ops := []models.Operation{
		{Type: models.OP_UPDATE_ACTIVITY, ActivityID: "abc"},
	}
	assert.Error(t, ps.ApplyOperations(context.Background(), "paris", ops))
}
