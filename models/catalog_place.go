package models

import "fmt"

// CatalogPlace is a place candidate coming from the places catalog provider,
// used to seed add_place suggestions.
type CatalogPlace struct {
	PlaceID            string   `json:"place_id"`
	Name               string   `json:"name"`
	Address            string   `json:"address,omitempty"`
	Lat                float64  `json:"lat"`
	Lng                float64  `json:"lng"`
	Types              []string `json:"types,omitempty"`
	TypicalDurationMin int      `json:"typical_duration_min,omitempty"`
	Rating             float64  `json:"rating,omitempty"`
}

func (p *CatalogPlace) ToString() string {
	return fmt.Sprintf("CatalogPlace(id=%s, name=%s, lat=%f, lng=%f)",
		p.PlaceID, p.Name, p.Lat, p.Lng)
}

// NearbyPlacesResponse is the provider payload for a nearby-places search.
type NearbyPlacesResponse struct {
	Status      string         `json:"status"`
	BoundingBox BoundingBox    `json:"bounding_box"`
	Places      []CatalogPlace `json:"places"`
}
