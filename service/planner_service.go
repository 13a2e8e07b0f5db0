package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/google/uuid"

	"tp-server/api/places"
	"tp-server/config"
	"tp-server/dao/redis"
	"tp-server/engine/alternatives"
	"tp-server/engine/curation"
	"tp-server/engine/geodist"
	"tp-server/engine/overlap"
	"tp-server/engine/prefs"
	"tp-server/engine/schedule"
	"tp-server/engine/segments"
	"tp-server/engine/themes"
	"tp-server/engine/timeutil"
	"tp-server/engine/travelconflict"
	"tp-server/models"
	"tp-server/util"
)

// PlannerService orchestrates itinerary storage and the planning engine.
type PlannerService struct {
	itineraryDao *redis.RedisItineraryDAO
	placesApi    places.PlacesAPI
}

// NewPlannerService constructs a new PlannerService with its dependencies.
func NewPlannerService(
	itineraryDao *redis.RedisItineraryDAO,
	placesApi places.PlacesAPI) *PlannerService {

	return &PlannerService{
		itineraryDao: itineraryDao,
		placesApi:    placesApi,
	}
}

// SchedulePlanRequest describes one scheduling run over a date range. Zero
// window bounds fall back to the traveler's profile.
type SchedulePlanRequest struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	DayStartMin int    `json:"day_start_min,omitempty"`
	DayEndMin   int    `json:"day_end_min,omitempty"`
	Message     string `json:"message,omitempty"`
}

// SchedulePlanResponse carries the placements plus the profile that shaped them.
type SchedulePlanResponse struct {
	Placements []schedule.Placement `json:"placements"`
	Unplaced   []string             `json:"unplaced"`
	Profile    string               `json:"profile"`
}

// SchedulePlan places every unscheduled activity of the destination into the
// requested date range. Already-scheduled activities stay fixed.
func (ps *PlannerService) SchedulePlan(destinationID string, req SchedulePlanRequest) (*SchedulePlanResponse, error) {
	activities, err := ps.itineraryDao.ListActivities(destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load itinerary for %s: %w", destinationID, err)
	}

	profile := ps.resolveProfile(activities, req.Message)
	dayStart, dayEnd := resolveWindow(req.DayStartMin, req.DayEndMin, profile)

	candidates, fixed := ps.splitActivities(activities)
	result := schedule.Plan(candidates, fixed, schedule.Options{
		Dates:               timeutil.DateRange(req.StartDate, req.EndDate),
		DayStartMin:         dayStart,
		DayEndMin:           dayEnd,
		ClusterRadiusMeters: config.CLUSTER_RADIUS_METERS,
	})

	return &SchedulePlanResponse{
		Placements: result.Placements,
		Unplaced:   result.Unplaced,
		Profile:    profile.Describe(),
	}, nil
}

// CurateRequest describes one themed curation run.
type CurateRequest struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Theme         string `json:"theme,omitempty"`
	MaxOperations int    `json:"max_operations,omitempty"`
	DayStartMin   int    `json:"day_start_min,omitempty"`
	DayEndMin     int    `json:"day_end_min,omitempty"`
	Message       string `json:"message,omitempty"`
}

// CurateResponse wraps the curation result with a batch id so callers can
// reference the proposed operations later.
type CurateResponse struct {
	BatchID string `json:"batch_id"`
	curation.Result
	Profile string `json:"profile"`
}

// Curate builds a themed day-by-day plan for the destination and returns the
// update operations that would realize it. Nothing is written to storage.
func (ps *PlannerService) Curate(destinationID string, req CurateRequest) (*CurateResponse, error) {
	activities, err := ps.itineraryDao.ListActivities(destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load itinerary for %s: %w", destinationID, err)
	}

	profile := ps.resolveProfile(activities, req.Message)
	dayStart, dayEnd := resolveWindow(req.DayStartMin, req.DayEndMin, profile)

	var candidates []curation.Candidate
	var fixed []schedule.FixedPlacement
	for i := range activities {
		a := &activities[i]
		if fp, ok := toFixedPlacement(a); ok {
			fixed = append(fixed, fp)
			continue
		}
		cand := curation.Candidate{
			ID:    a.ID,
			Name:  a.Activity.Name,
			Types: a.Activity.Types,
		}
		// A date without times pins the candidate to that day.
		if a.Date != nil {
			cand.LockedDate = *a.Date
		}
		if lat, ok := a.Activity.Lat(); ok {
			lng, _ := a.Activity.Lng()
			cand.Lat, cand.Lng, cand.HasCoords = lat, lng, true
		}
		if a.DurationMinutes != nil {
			cand.Duration = *a.DurationMinutes
		}
		if rows, err := ps.itineraryDao.GetOpenHours(a.ID); err == nil && rows != nil {
			cand.OpenHours = rows
		}
		candidates = append(candidates, cand)
	}

	theme := themes.Theme(req.Theme)
	if theme == "" && req.Message != "" {
		if inferred, ok := themes.InferFromMessage(req.Message); ok {
			theme = inferred
		}
	}

	result := curation.BuildThemedPlan(curation.Request{
		Candidates:          candidates,
		Fixed:               fixed,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		RequestedTheme:      theme,
		MaxOperations:       req.MaxOperations,
		DayStartMin:         dayStart,
		DayEndMin:           dayEnd,
		ClusterRadiusMeters: config.CLUSTER_RADIUS_METERS,
	})

	for i := range result.Operations {
		result.Operations[i].ID = uuid.NewString()
	}

	if config.PLOT_DAY_UTILIZATION {
		util.PlotDayUtilization(result.Days, config.DAY_UTILIZATION_CHART_FILE)
	}

	return &CurateResponse{
		BatchID: uuid.NewString(),
		Result:  result,
		Profile: profile.Describe(),
	}, nil
}

// Alternatives ranks substitute candidates for one activity of the itinerary.
func (ps *PlannerService) Alternatives(destinationID, activityID string, max int) ([]alternatives.Suggestion, error) {
	activities, err := ps.itineraryDao.ListActivities(destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load itinerary for %s: %w", destinationID, err)
	}

	var target *models.ItineraryActivity
	for i := range activities {
		if activities[i].ID == activityID {
			target = &activities[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("activity %s not found in destination %s", activityID, destinationID)
	}

	openHours := map[string][]models.OpenHoursRow{}
	for i := range activities {
		if rows, err := ps.itineraryDao.GetOpenHours(activities[i].ID); err == nil && rows != nil {
			openHours[activities[i].ID] = rows
		}
	}

	return alternatives.Rank(alternatives.Params{
		Target:    *target,
		Pool:      activities,
		OpenHours: openHours,
		Max:       max,
	}), nil
}

// SegmentConflict pairs one derived segment with its travel-time classification
// and, for conflicts, the minimal shift that would resolve it.
type SegmentConflict struct {
	segments.Segment
	TravelMinutes  int                     `json:"travel_minutes"`
	Conflict       travelconflict.Conflict `json:"conflict"`
	SuggestedShift *travelconflict.Shift   `json:"suggested_shift,omitempty"`
}

// ConflictReport is the conflict view of one itinerary date.
type ConflictReport struct {
	Date     string            `json:"date"`
	Segments []SegmentConflict `json:"segments"`
	Warnings []string          `json:"warnings,omitempty"`
}

// Conflicts classifies every consecutive pair of one date's schedule against
// the walking-time estimate plus buffer, and reports overlaps with fixed trip
// blocks.
func (ps *PlannerService) Conflicts(destinationID, date string) (*ConflictReport, error) {
	activities, err := ps.itineraryDao.ListActivities(destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load itinerary for %s: %w", destinationID, err)
	}

	byID := map[string]*models.ItineraryActivity{}
	for i := range activities {
		byID[activities[i].ID] = &activities[i]
	}

	segs := segments.Build(date, activities)
	report := &ConflictReport{Date: date}
	dayEnd := config.DAY_END_MIN
	for i, seg := range segs {
		travel := ps.travelMinutes(byID[seg.FromID], byID[seg.ToID])
		conflict := travelconflict.Classify(travelconflict.ClassifyParams{
			GapMinutes:            seg.GapMinutes,
			TravelMinutes:         travel,
			BufferMinutes:         config.TRAVEL_BUFFER_MINUTES,
			TightThresholdMinutes: config.TIGHT_GAP_THRESHOLD_MINUTES,
		})

		sc := SegmentConflict{Segment: seg, TravelMinutes: travel, Conflict: conflict}
		if conflict.Status == travelconflict.STATUS_CONFLICT {
			params := travelconflict.ShiftParams{
				FromEndMin:     seg.FromEndMin,
				ToStartMin:     seg.ToStartMin,
				ToEndMin:       activityEndMin(byID[seg.ToID], seg.ToStartMin),
				RequiredGapMin: conflict.RequiredGapMinutes,
				DayEndMin:      &dayEnd,
			}
			if i+1 < len(segs) {
				next := segs[i+1].ToStartMin
				params.NextStartMin = &next
			}
			sc.SuggestedShift = travelconflict.SuggestShift(params)
		}
		report.Segments = append(report.Segments, sc)
	}

	events, err := ps.itineraryDao.ListCustomEvents(destinationID)
	if err != nil {
		log.Printf("[PlannerService] Failed to load custom events for %s: %v", destinationID, err)
	} else {
		report.Warnings = overlap.BuildWarnings(activities, events, 0)
	}
	return report, nil
}

// GetNearbyPlaces returns catalog places around a point from the local catalog.
func (ps *PlannerService) GetNearbyPlaces(lat, lng, radius float64) ([]models.CatalogPlace, error) {
	return ps.itineraryDao.GetNearbyCatalogPlaces(lat, lng, radius)
}

// GetPreferences resolves the traveler profile for a destination, optionally
// biased by a free-text message.
func (ps *PlannerService) GetPreferences(destinationID, message string) (*prefs.Profile, error) {
	activities, err := ps.itineraryDao.ListActivities(destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load itinerary for %s: %w", destinationID, err)
	}
	profile := ps.resolveProfile(activities, message)
	return &profile, nil
}

// ApplyOperations validates a batch of itinerary operations and applies it to
// storage. add_place operations hydrate place details from the catalog provider.
func (ps *PlannerService) ApplyOperations(ctx context.Context, destinationID string, ops []models.Operation) error {
	if err := models.ValidateOperations(ops); err != nil {
		return err
	}
	for _, op := range ops {
		switch op.Type {
		case models.OP_UPDATE_ACTIVITY:
			existing, err := ps.itineraryDao.GetActivity(destinationID, op.ActivityID)
			if err != nil {
				return err
			}
			if op.Date != nil {
				existing.Date = op.Date
				existing.StartTime = op.StartTime
				existing.EndTime = op.EndTime
			}
			if err := ps.itineraryDao.UpsertActivity(*existing); err != nil {
				return err
			}
		case models.OP_REMOVE_ACTIVITY:
			if err := ps.itineraryDao.DeleteActivity(destinationID, op.ActivityID); err != nil {
				return err
			}
		case models.OP_ADD_PLACE:
			activity := models.ItineraryActivity{
				ID:            uuid.NewString(),
				DestinationID: destinationID,
				Activity:      models.Place{ID: op.PlaceID, Name: op.PlaceName},
			}
			if place, err := ps.placesApi.GetPlace(ctx, op.PlaceID); err != nil {
				log.Printf("[PlannerService] Could not hydrate place %s: %v", op.PlaceID, err)
			} else {
				activity.Activity.Types = place.Types
				activity.Activity.Coordinates = &[2]float64{place.Lng, place.Lat}
				if place.TypicalDurationMin > 0 {
					duration := place.TypicalDurationMin
					activity.DurationMinutes = &duration
				}
			}
			if err := ps.itineraryDao.UpsertActivity(activity); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ps *PlannerService) resolveProfile(activities []models.ItineraryActivity, message string) prefs.Profile {
	explicit := prefs.ExtractFromMessage(message)
	inferred := prefs.InferFromHistory(activities)
	return prefs.Merge(explicit, inferred)
}

func resolveWindow(dayStart, dayEnd int, profile prefs.Profile) (int, int) {
	if dayStart > 0 || dayEnd > 0 {
		return dayStart, dayEnd
	}
	return profile.DayStartMin, profile.DayEndMin
}

// splitActivities separates scheduled rows (fixed occupancy) from unscheduled
// ones (candidates), hydrating candidate opening hours from the cache.
func (ps *PlannerService) splitActivities(activities []models.ItineraryActivity) ([]schedule.Candidate, []schedule.FixedPlacement) {
	var candidates []schedule.Candidate
	var fixed []schedule.FixedPlacement
	for i := range activities {
		a := &activities[i]
		if fp, ok := toFixedPlacement(a); ok {
			fixed = append(fixed, fp)
			continue
		}
		cand := schedule.Candidate{
			ID:          a.ID,
			Name:        a.Activity.Name,
			Types:       a.Activity.Types,
			DurationMin: config.DEFAULT_ACTIVITY_DURATION_MIN,
		}
		// A date without times pins the candidate to that day.
		if a.Date != nil {
			cand.PreferredDate = *a.Date
			cand.Locked = true
		}
		if a.DurationMinutes != nil && *a.DurationMinutes > 0 {
			cand.DurationMin = *a.DurationMinutes
		}
		if lat, ok := a.Activity.Lat(); ok {
			lng, _ := a.Activity.Lng()
			cand.Lat, cand.Lng, cand.HasCoords = lat, lng, true
		}
		if rows, err := ps.itineraryDao.GetOpenHours(a.ID); err == nil && rows != nil {
			cand.OpenHours = rows
		}
		candidates = append(candidates, cand)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates, fixed
}

func toFixedPlacement(a *models.ItineraryActivity) (schedule.FixedPlacement, bool) {
	if !a.IsScheduled() {
		return schedule.FixedPlacement{}, false
	}
	startMin, sok := timeutil.ParseClock(*a.StartTime)
	endMin, eok := timeutil.ParseClock(*a.EndTime)
	if !sok || !eok || endMin <= startMin {
		return schedule.FixedPlacement{}, false
	}
	return schedule.FixedPlacement{ID: a.ID, Date: *a.Date, StartMin: startMin, EndMin: endMin}, true
}

// travelMinutes estimates walking time between two activities, rounded up.
// Unknown coordinates yield zero so only the buffer applies.
func (ps *PlannerService) travelMinutes(from, to *models.ItineraryActivity) int {
	if from == nil || to == nil {
		return 0
	}
	fromLat, fok := from.Activity.Lat()
	toLat, tok := to.Activity.Lat()
	if !fok || !tok {
		return 0
	}
	fromLng, _ := from.Activity.Lng()
	toLng, _ := to.Activity.Lng()
	meters := geodist.HaversineMeters(fromLat, fromLng, toLat, toLng)
	return int(math.Ceil(meters / config.WALKING_METERS_PER_MINUTE))
}

func activityEndMin(a *models.ItineraryActivity, startMin int) int {
	if a != nil && a.EndTime != nil {
		if endMin, ok := timeutil.ParseClock(*a.EndTime); ok {
			return endMin
		}
	}
	return startMin
}
