package geo

import (
	"math"
	"time"
)

const earthRadiusKm = 6371.0

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance returns the great-circle distance between two coordinates in
// kilometers, using the haversine formula.
func Distance(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// TravelTime estimates how long it takes to travel between two coordinates at
// the given speed, rounded up to the next whole minute.
func TravelTime(a, b Coordinate, speedKmh float64) time.Duration {
	if speedKmh <= 0 {
		return 0
	}
	hours := Distance(a, b) / speedKmh
	minutes := math.Ceil(hours * 60)
	return time.Duration(minutes) * time.Minute
}

// Centroid returns the arithmetic mean of the given coordinates. This is a
// naive centroid: fine at city scale, increasingly wrong at continental scale
// and near the antimeridian. Callers that need a geodesic centroid should
// swap this implementation, not work around it.
func Centroid(points []Coordinate) Coordinate {
	if len(points) == 0 {
		return Coordinate{}
	}
	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	n := float64(len(points))
	return Coordinate{Lat: sumLat / n, Lon: sumLon / n}
}
