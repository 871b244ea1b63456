// Package qibla computes the great-circle bearing and distance from a
// point to the Kaaba in Mecca.
package qibla

import (
	"fmt"
	"math"
)

// Kaaba coordinates.
const (
	KaabaLatitude  = 21.4225
	KaabaLongitude = 39.8262

	earthRadiusKm = 6371
)

// Direction is the qibla from one location.
type Direction struct {
	Bearing    float64 `json:"bearing"`    // degrees clockwise from true north
	DistanceKm float64 `json:"distanceKm"` // great-circle distance
}

// From computes the qibla direction from the given coordinates.
func From(latitude, longitude float64) (Direction, error) {
	if latitude < -90 || latitude > 90 {
		return Direction{}, fmt.Errorf("qibla: latitude %f out of range", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return Direction{}, fmt.Errorf("qibla: longitude %f out of range", longitude)
	}

	lat1 := radians(latitude)
	lat2 := radians(KaabaLatitude)
	dLon := radians(KaabaLongitude - longitude)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	bearing := math.Atan2(y, x) * 180 / math.Pi
	if bearing < 0 {
		bearing += 360
	}

	return Direction{
		Bearing:    bearing,
		DistanceKm: distance(lat1, radians(longitude), lat2, radians(KaabaLongitude)),
	}, nil
}

// distance applies the haversine formula. All arguments are radians.
func distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
