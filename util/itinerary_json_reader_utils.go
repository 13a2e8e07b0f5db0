package util

import (
	"encoding/json"
	"fmt"
	"os"

	"tp-server/models"
)

// ReadNearbyPlacesResponseFromJSON loads a NearbyPlacesResponse from JSON on disk.
func ReadNearbyPlacesResponseFromJSON(filePath string) (*models.NearbyPlacesResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.NearbyPlacesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal NearbyPlacesResponse: %w", err)
	}
	return &resp, nil
}

// ReadCatalogPlaceFromJSON loads a single CatalogPlace from JSON on disk.
func ReadCatalogPlaceFromJSON(filePath string) (*models.CatalogPlace, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var p models.CatalogPlace
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CatalogPlace: %w", err)
	}
	return &p, nil
}

// ReadItineraryActivitiesFromJSON loads itinerary activity rows from JSON on disk.
func ReadItineraryActivitiesFromJSON(filePath string) ([]models.ItineraryActivity, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var activities []models.ItineraryActivity
	if err := json.Unmarshal(data, &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal itinerary activities: %w", err)
	}
	return activities, nil
}

// SeedDestination is one entry of the catalog refresher's seed list.
type SeedDestination struct {
	DestinationID string  `json:"destination_id"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
}

// ReadSeedDestinationsFromJSON loads the refresher's seed destinations from JSON on disk.
func ReadSeedDestinationsFromJSON(filePath string) ([]SeedDestination, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var seeds []SeedDestination
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed destinations: %w", err)
	}
	return seeds, nil
}
