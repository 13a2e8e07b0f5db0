package redis

import (
	"encoding/json"
	"fmt"
	"log"

	"tp-server/db"
	"tp-server/models"
)

const ITINERARY_GEO_KEY_FORMAT_V1 = "itinerary_geo_v1:%s"                    // destination id
const ITINERARY_ACTIVITY_MEMBER_FORMAT_V1 = "itinerary_activity_v1:%s:%s"   // destination id, activity id
const OPEN_HOURS_KEY_FORMAT_V1 = "open_hours_v1:%s"                         // activity id
const CUSTOM_EVENT_KEY_FORMAT_V1 = "custom_event_v1:%s:%s"                  // destination id, event id
const PLACE_CATALOG_GEO_KEY_V1 = "place_catalog_geo_v1"
const PLACE_CATALOG_MEMBER_FORMAT_V1 = "place_catalog_place_v1:%s" // place id

// RedisItineraryDAO stores itinerary rows, opening hours, trip blocks, and the
// place catalog in Redis. Activities with coordinates are geo-indexed per
// destination.
type RedisItineraryDAO struct {
	client db.RedisClient
}

// NewRedisItineraryDAO initializes a RedisItineraryDAO with the Redis client.
func NewRedisItineraryDAO(client db.RedisClient) *RedisItineraryDAO {
	return &RedisItineraryDAO{client: client}
}

// UpsertActivity stores the activity JSON, geo-indexed when coordinates exist.
func (dao *RedisItineraryDAO) UpsertActivity(a models.ItineraryActivity) error {
	memberKey := fmt.Sprintf(ITINERARY_ACTIVITY_MEMBER_FORMAT_V1, a.DestinationID, a.ID)
	lat, latOK := a.Activity.Lat()
	lng, _ := a.Activity.Lng()
	if latOK {
		geoKey := fmt.Sprintf(ITINERARY_GEO_KEY_FORMAT_V1, a.DestinationID)
		return dao.client.AddLocationWithJSON(dao.client.GetContext(), geoKey, memberKey, lat, lng, a)
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal activity %s: %w", a.ID, err)
	}
	return dao.client.Set(memberKey, string(data))
}

// GetActivity loads one activity row.
func (dao *RedisItineraryDAO) GetActivity(destinationID, activityID string) (*models.ItineraryActivity, error) {
	key := fmt.Sprintf(ITINERARY_ACTIVITY_MEMBER_FORMAT_V1, destinationID, activityID)
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity %s: %w", activityID, err)
	}
	var a models.ItineraryActivity
	if err := json.Unmarshal([]byte(str), &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activity JSON: %w", err)
	}
	return &a, nil
}

// ListActivities returns every activity row of a destination.
func (dao *RedisItineraryDAO) ListActivities(destinationID string) ([]models.ItineraryActivity, error) {
	pattern := fmt.Sprintf(ITINERARY_ACTIVITY_MEMBER_FORMAT_V1, destinationID, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("[RedisItineraryDAO] failed to list activity keys: %w", err)
	}
	activities := make([]models.ItineraryActivity, 0, len(keys))
	for _, key := range keys {
		str, err := dao.client.Get(key)
		if err != nil {
			log.Printf("[RedisItineraryDAO] Skipping activity key %s: %v", key, err)
			continue
		}
		var a models.ItineraryActivity
		if err := json.Unmarshal([]byte(str), &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity JSON: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, nil
}

// GetNearbyActivities retrieves a destination's activities within radius
// meters of a point.
func (dao *RedisItineraryDAO) GetNearbyActivities(destinationID string, lat, lng, radius float64) ([]models.ItineraryActivity, error) {
	geoKey := fmt.Sprintf(ITINERARY_GEO_KEY_FORMAT_V1, destinationID)
	rowsJSON, err := dao.client.GetLocationsWithinRadius(geoKey, lat, lng, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisItineraryDAO] failed to get nearby activities: %w", err)
	}
	activities := make([]models.ItineraryActivity, len(rowsJSON))
	for i, rowJSON := range rowsJSON {
		if err := json.Unmarshal([]byte(rowJSON), &activities[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity JSON: %w", err)
		}
	}
	return activities, nil
}

// DeleteActivity removes one activity row together with its geo membership, so
// radius queries stop returning the deleted member.
func (dao *RedisItineraryDAO) DeleteActivity(destinationID, activityID string) error {
	key := fmt.Sprintf(ITINERARY_ACTIVITY_MEMBER_FORMAT_V1, destinationID, activityID)
	geoKey := fmt.Sprintf(ITINERARY_GEO_KEY_FORMAT_V1, destinationID)
	if err := dao.client.RemoveGeoMember(geoKey, key); err != nil {
		return fmt.Errorf("failed to remove activity geo member %s: %w", key, err)
	}
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete activity key %s: %w", key, err)
	}
	return nil
}

// SetOpenHours caches the raw opening-hours rows for an activity.
func (dao *RedisItineraryDAO) SetOpenHours(activityID string, rows []models.OpenHoursRow) error {
	key := fmt.Sprintf(OPEN_HOURS_KEY_FORMAT_V1, activityID)
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal open hours for activity %s: %w", activityID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set open hours in redis: %w", err)
	}
	return nil
}

// GetOpenHours returns the opening-hours rows for an activity, or nil when
// none are stored. Missing hours are not an error: the planner treats them as
// unknown.
func (dao *RedisItineraryDAO) GetOpenHours(activityID string) ([]models.OpenHoursRow, error) {
	key := fmt.Sprintf(OPEN_HOURS_KEY_FORMAT_V1, activityID)
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, nil
	}
	var rows []models.OpenHoursRow
	if err := json.Unmarshal([]byte(str), &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal open hours JSON: %w", err)
	}
	return rows, nil
}

// UpsertCustomEvent stores one fixed trip block.
func (dao *RedisItineraryDAO) UpsertCustomEvent(e models.CustomEvent) error {
	key := fmt.Sprintf(CUSTOM_EVENT_KEY_FORMAT_V1, e.DestinationID, e.ID)
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal custom event %s: %w", e.ID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set custom event in redis: %w", err)
	}
	return nil
}

// ListCustomEvents returns every trip block of a destination.
func (dao *RedisItineraryDAO) ListCustomEvents(destinationID string) ([]models.CustomEvent, error) {
	pattern := fmt.Sprintf(CUSTOM_EVENT_KEY_FORMAT_V1, destinationID, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("[RedisItineraryDAO] failed to list custom event keys: %w", err)
	}
	events := make([]models.CustomEvent, 0, len(keys))
	for _, key := range keys {
		str, err := dao.client.Get(key)
		if err != nil {
			log.Printf("[RedisItineraryDAO] Skipping custom event key %s: %v", key, err)
			continue
		}
		var e models.CustomEvent
		if err := json.Unmarshal([]byte(str), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal custom event JSON: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}

// UpsertCatalogPlace stores a catalog place in the shared geo index.
func (dao *RedisItineraryDAO) UpsertCatalogPlace(p models.CatalogPlace) error {
	memberKey := fmt.Sprintf(PLACE_CATALOG_MEMBER_FORMAT_V1, p.PlaceID)
	return dao.client.AddLocationWithJSON(dao.client.GetContext(), PLACE_CATALOG_GEO_KEY_V1, memberKey, p.Lat, p.Lng, p)
}

// GetNearbyCatalogPlaces retrieves catalog places within radius meters.
func (dao *RedisItineraryDAO) GetNearbyCatalogPlaces(lat, lng, radius float64) ([]models.CatalogPlace, error) {
	rowsJSON, err := dao.client.GetLocationsWithinRadius(PLACE_CATALOG_GEO_KEY_V1, lat, lng, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisItineraryDAO] failed to get nearby catalog places: %w", err)
	}
	places := make([]models.CatalogPlace, len(rowsJSON))
	for i, rowJSON := range rowsJSON {
		if err := json.Unmarshal([]byte(rowJSON), &places[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal catalog place JSON: %w", err)
		}
	}
	return places, nil
}
