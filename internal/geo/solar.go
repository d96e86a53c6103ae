package geo

import (
	"math"
	"time"
)

// Subsolar returns the geographic point directly under the sun at the
// given instant: longitude from the UTC hour angle, latitude from the
// seasonal declination (23.5 degree tilt, day 80 is the March equinox).
func Subsolar(t time.Time) (lon, lat float64) {
	utc := t.UTC()

	hours := float64(utc.Hour()) + float64(utc.Minute())/60.0
	lon = normalizeLon(-(hours - 12) * 15)

	lat = 23.5 * math.Sin(2*math.Pi*float64(utc.YearDay()-80)/365.0)
	return lon, lat
}

// Antisolar returns the point opposite the sun, the center of the
// night hemisphere
func Antisolar(t time.Time) (lon, lat float64) {
	sunLon, sunLat := Subsolar(t)
	return normalizeLon(sunLon + 180), -sunLat
}

// Night reports whether a geographic point is on the night side of the
// terminator at the given instant
func Night(lon, lat float64, t time.Time) bool {
	nightLon, nightLat := Antisolar(t)
	return Distance(lon, lat, nightLon, nightLat) < math.Pi/2
}
