package engine

import (
	"firstglobe/internal/geo"
)

// PickKind classifies what a confirmed tap landed on
type PickKind int

const (
	PickOffGlobe PickKind = iota // missed the sphere entirely
	PickOcean                    // on the globe, open water
	PickStory                    // hit a story marker
	PickCountry                  // hit land
)

// Pick is the resolved result of a tap. Lat/Lon are filled for every
// on-globe pick; Country only for land, StoryID only for markers.
type Pick struct {
	Kind    PickKind
	StoryID string
	Country *geo.Country
	Lat     float64
	Lon     float64
}

// markerPickRadius is how close, in cells, a tap must land to a
// marker to count as hitting it
const markerPickRadius = 1

// Resolve turns a tap position into a pick against the current scene.
// Markers win over land, land over water; a tap off the silhouette
// resolves to PickOffGlobe so the caller can clear hover and focus.
func Resolve(scene *Scene, world *geo.World, x, y int) Pick {
	lon, lat, onGlobe := scene.Camera.Invert(float64(x), float64(y))
	if !onGlobe {
		return Pick{Kind: PickOffGlobe}
	}

	if id, ok := markerAt(scene, x, y); ok {
		return Pick{Kind: PickStory, StoryID: id, Lat: lat, Lon: lon}
	}

	if country := world.CountryAt(lon, lat); country != nil {
		return Pick{Kind: PickCountry, Country: country, Lat: lat, Lon: lon}
	}

	return Pick{Kind: PickOcean, Lat: lat, Lon: lon}
}

func markerAt(scene *Scene, x, y int) (string, bool) {
	bestID := ""
	bestDist := markerPickRadius*markerPickRadius + 1

	for _, id := range scene.MarkerOrder {
		m := scene.Markers[id]
		dx := m.Cell.X - x
		dy := m.Cell.Y - y
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			bestID = id
		}
	}

	return bestID, bestID != ""
}
