package places

import (
	"context"

	"tp-server/models"
)

// PlacesAPI defines the interface for interacting with the places catalog provider
type PlacesAPI interface {
	GetNearbyPlaces(ctx context.Context, lat float64, lng float64) (*models.NearbyPlacesResponse, error)
	GetPlace(ctx context.Context, placeID string) (*models.CatalogPlace, error)
	SetCredentials(apiKey string)
}
