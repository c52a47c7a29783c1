package geo_test

import (
	"testing"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/geo"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		p := geo.Coordinate{Lat: 40.7128, Lon: -74.0060}
		assert.Equal(t, 0.0, geo.Distance(p, p))
	})

	t.Run("known city pair", func(t *testing.T) {
		// NYC to Philadelphia is roughly 130 km.
		nyc := geo.Coordinate{Lat: 40.7128, Lon: -74.0060}
		philly := geo.Coordinate{Lat: 39.9526, Lon: -75.1652}
		d := geo.Distance(nyc, philly)
		assert.InDelta(t, 130, d, 5)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := geo.Coordinate{Lat: 51.5074, Lon: -0.1278}
		b := geo.Coordinate{Lat: 48.8566, Lon: 2.3522}
		assert.InDelta(t, geo.Distance(a, b), geo.Distance(b, a), 1e-9)
	})
}

func TestTravelTime(t *testing.T) {
	t.Run("rounds up to whole minutes", func(t *testing.T) {
		// ~1.112 km of latitude at the equator: 0.01 degrees.
		a := geo.Coordinate{Lat: 0, Lon: 0}
		b := geo.Coordinate{Lat: 0.01, Lon: 0}
		// At 50 km/h this is ~1.33 minutes, so it must round up to 2.
		assert.Equal(t, 2*time.Minute, geo.TravelTime(a, b, 50))
	})

	t.Run("zero for coincident points", func(t *testing.T) {
		p := geo.Coordinate{Lat: 10, Lon: 10}
		assert.Equal(t, time.Duration(0), geo.TravelTime(p, p, 50))
	})

	t.Run("non-positive speed yields zero", func(t *testing.T) {
		a := geo.Coordinate{Lat: 0, Lon: 0}
		b := geo.Coordinate{Lat: 1, Lon: 1}
		assert.Equal(t, time.Duration(0), geo.TravelTime(a, b, 0))
	})
}

func TestCentroid(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, geo.Coordinate{}, geo.Centroid(nil))
	})

	t.Run("arithmetic mean", func(t *testing.T) {
		points := []geo.Coordinate{
			{Lat: 0, Lon: 0},
			{Lat: 2, Lon: 4},
		}
		c := geo.Centroid(points)
		assert.Equal(t, geo.Coordinate{Lat: 1, Lon: 2}, c)
	})

	t.Run("single point is its own centroid", func(t *testing.T) {
		p := geo.Coordinate{Lat: 55.95, Lon: -3.19}
		assert.Equal(t, p, geo.Centroid([]geo.Coordinate{p}))
	})
}
