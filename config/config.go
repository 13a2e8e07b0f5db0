package config

import (
	"os"
	"path/filepath"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Planning window defaults (minutes since midnight)
const DAY_START_MIN = 540  // 09:00
const DAY_END_MIN = 1260   // 21:00
const DEFAULT_ACTIVITY_DURATION_MIN = 60
const CLUSTER_RADIUS_METERS = 2000.0

// Travel estimate config
const WALKING_METERS_PER_MINUTE = 80.0
const TRAVEL_BUFFER_MINUTES = 10
const TIGHT_GAP_THRESHOLD_MINUTES = 5

// Catalog Refresher config
const CATALOG_REFRESHER_SCHEDULE_MINUTES = 60

// Places API config
const PLACES_API_KEY = ""
const PLACES_ENDPOINT_BASE_V1 = "https://places.example.com/api/v1"

// Plotting
const PLOT_DAY_UTILIZATION = false
const DAY_UTILIZATION_CHART_FILE = "day_utilization.html"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const NEARBY_PLACES_RESPONSE_RESOURCE = "nearby_places_response.json"
const PLACE_STATIC_RESOURCE = "place_static.json"
const ITINERARY_ACTIVITIES_RESOURCE = "itinerary_activities.json"
const SEED_DESTINATIONS_RESOURCE = "seed_destinations.json"

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
