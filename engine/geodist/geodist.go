package geodist

import "math"

// EARTH_RADIUS_METERS is the mean Earth radius used by the haversine formula.
const EARTH_RADIUS_METERS = 6371000.0

// HaversineMeters computes the great-circle distance in meters between two
// latitude/longitude pairs.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lng2 - lng1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EARTH_RADIUS_METERS * c
}

// FromLngLat unpacks an ordered [lng, lat] pair, the axis order used by the
// catalog source, into (lat, lng).
func FromLngLat(pair [2]float64) (lat, lng float64) {
	return pair[1], pair[0]
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
