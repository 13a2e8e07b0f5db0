package places

import (
	"context"
	"fmt"

	"tp-server/api"
	"tp-server/models"
)

// PlacesApiClient embeds the common HTTPClient
type PlacesApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties

	apiKey string
}

// NewPlacesApiClient creates a new instance of PlacesApiClient
func NewPlacesApiClient(httpClient *api.HTTPClient) *PlacesApiClient {
	return &PlacesApiClient{
		HTTPClient: httpClient,
	}
}

// SetCredentials sets the API key sent with every provider request
func (c *PlacesApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

func (c *PlacesApiClient) authHeaders() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"X-Api-Key": c.apiKey}
}

// GetNearbyPlaces retrieves catalog places around a point and decodes the response
func (c *PlacesApiClient) GetNearbyPlaces(ctx context.Context, lat float64, lng float64) (*models.NearbyPlacesResponse, error) {
	var response models.NearbyPlacesResponse
	endpoint := fmt.Sprintf("/places/nearby?lat=%f&lng=%f", lat, lng)
	err := c.Request(ctx, "GET", endpoint, c.authHeaders(), nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetPlace retrieves one catalog place given a place id
func (c *PlacesApiClient) GetPlace(ctx context.Context, placeID string) (*models.CatalogPlace, error) {
	var response models.CatalogPlace
	err := c.Request(ctx, "GET", "/places/"+placeID, c.authHeaders(), nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}
