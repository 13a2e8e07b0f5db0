package services

import (
	"context"
	"log"
	"time"

	"tp-server/api/places"
	"tp-server/config"
	"tp-server/dao/redis"
	"tp-server/util"
)

// CatalogRefresherService periodically refreshes the place catalog from the
// places provider for a seed list of destinations.
type CatalogRefresherService struct {
	itineraryDao *redis.RedisItineraryDAO
	placesApi    places.PlacesAPI
}

// NewCatalogRefresherService constructs a new refresher with its dependencies.
func NewCatalogRefresherService(
	itineraryDao *redis.RedisItineraryDAO,
	placesApi places.PlacesAPI) *CatalogRefresherService {

	return &CatalogRefresherService{
		itineraryDao: itineraryDao,
		placesApi:    placesApi,
	}
}

// StartPeriodicJob launches the background refresh loop at the given interval.
func (cr *CatalogRefresherService) StartPeriodicJob(interval time.Duration) {
	go cr.startPeriodicJob(interval)
}

func (cr *CatalogRefresherService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[CatalogRefresherService] Running periodic catalog refresher job.")
		if err := cr.RefreshCatalog(context.Background()); err != nil {
			log.Printf("[CatalogRefresherService] RefreshCatalog returned error: %v", err)
		} else {
			log.Println("[CatalogRefresherService] RefreshCatalog completed successfully.")
		}
	}
}

// RefreshCatalog queries the provider around each seed destination, dedupes the
// returned places, and upserts them into the geo-indexed catalog.
func (cr *CatalogRefresherService) RefreshCatalog(ctx context.Context) error {
	seeds, err := util.ReadSeedDestinationsFromJSON(config.GetResourcePath(config.SEED_DESTINATIONS_RESOURCE))
	if err != nil {
		log.Printf("[CatalogRefresherService] Could not read seed destinations: %v", err)
		return err
	}
	log.Printf("[CatalogRefresherService] Refreshing catalog for %d destinations", len(seeds))

	seen := make(map[string]struct{})
	for _, seed := range seeds {
		log.Printf("[CatalogRefresherService] Querying places near %s (%.6f, %.6f)",
			seed.DestinationID, seed.Lat, seed.Lng)
		resp, err := cr.placesApi.GetNearbyPlaces(ctx, seed.Lat, seed.Lng)
		if err != nil {
			log.Printf("[CatalogRefresherService] Nearby query failed for %s: %v", seed.DestinationID, err)
			continue
		}

		for _, place := range resp.Places {
			if _, dup := seen[place.PlaceID]; dup {
				log.Printf("[CatalogRefresherService] Skipping duplicate place id=%s", place.PlaceID)
				continue
			}
			seen[place.PlaceID] = struct{}{}

			if err := cr.itineraryDao.UpsertCatalogPlace(place); err != nil {
				log.Printf("[CatalogRefresherService] Upsert failed for %s: %v", place.PlaceID, err)
			}
		}
	}
	log.Printf("[CatalogRefresherService] Catalog refresh stored %d places", len(seen))
	return nil
}
