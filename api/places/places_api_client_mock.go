package places

import (
	"context"
	"fmt"

	"tp-server/config"
	"tp-server/models"
	"tp-server/util"
)

// PlacesApiClientMock embeds mocked logic for the places api client
type PlacesApiClientMock struct {
}

// NewPlacesApiClientMock creates a new instance of PlacesApiClientMock
func NewPlacesApiClientMock() *PlacesApiClientMock {
	return &PlacesApiClientMock{}
}

// SetCredentials is a no-op for the mock
func (c *PlacesApiClientMock) SetCredentials(apiKey string) {}

// GetNearbyPlaces retrieves nearby catalog places from the bundled fixture
func (c *PlacesApiClientMock) GetNearbyPlaces(ctx context.Context, lat float64, lng float64) (*models.NearbyPlacesResponse, error) {
	response, err := util.ReadNearbyPlacesResponseFromJSON(config.GetResourcePath(config.NEARBY_PLACES_RESPONSE_RESOURCE))
	if err != nil {
		fmt.Println("Could not read nearby places response from json")
		return nil, err
	}
	return response, nil
}

// GetPlace retrieves a catalog place from the bundled fixture
func (c *PlacesApiClientMock) GetPlace(ctx context.Context, placeID string) (*models.CatalogPlace, error) {
	response, err := util.ReadCatalogPlaceFromJSON(config.GetResourcePath(config.PLACE_STATIC_RESOURCE))
	if err != nil {
		fmt.Println("Could not read catalog place from json")
		return nil, err
	}
	return response, nil
}
