package geo

import (
	"errors"
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"
	geom "github.com/peterstace/simplefeatures/geom"
)

// ErrNoGeometry is returned when a country has no usable rings
var ErrNoGeometry = errors.New("country has no boundary rings")

// Country is one admin-0 polygon with its name. Rings hold the raw
// boundary vertices for drawing; the simplefeatures geometry backs
// containment queries and the label centroid.
type Country struct {
	Name     string
	Rings    [][]LonLat
	Centroid LonLat

	boundary geom.MultiPolygon
}

// NewCountry builds a country from boundary rings. Each ring is
// closed if the source left it open.
func NewCountry(name string, rings [][]LonLat) (*Country, error) {
	polys := make([]geom.Polygon, 0, len(rings))
	kept := make([][]LonLat, 0, len(rings))

	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		closed := ring
		if ring[0] != ring[len(ring)-1] {
			closed = append(append([]LonLat{}, ring...), ring[0])
		}

		coords := make([]float64, 0, len(closed)*2)
		for _, pt := range closed {
			coords = append(coords, pt.Lon, pt.Lat)
		}

		seq := geom.NewSequence(coords, geom.DimXY)
		shell, err := geom.NewLineString(seq)
		if err != nil {
			continue
		}
		poly, err := geom.NewPolygon([]geom.LineString{shell})
		if err != nil {
			continue
		}
		polys = append(polys, poly)
		kept = append(kept, ring)
	}

	if len(polys) == 0 {
		return nil, ErrNoGeometry
	}

	boundary, err := geom.NewMultiPolygon(polys)
	if err != nil {
		return nil, fmt.Errorf("invalid boundary for %s: %w", name, err)
	}

	centroid := LonLat{}
	if xy, ok := boundary.Centroid().XY(); ok {
		centroid = LonLat{Lon: xy.X, Lat: xy.Y}
	}

	return &Country{
		Name:     name,
		Rings:    kept,
		Centroid: centroid,
		boundary: boundary,
	}, nil
}

// Contains reports whether the geographic point lies inside the
// country's boundary
func (c *Country) Contains(lon, lat float64) bool {
	pt, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: lon, Y: lat}})
	if err != nil {
		return false
	}
	return geom.Intersects(pt.AsGeometry(), c.boundary.AsGeometry())
}

// World is the immutable set of country polygons shared by land
// rendering and hit-testing
type World struct {
	Countries []*Country
}

// Ready reports whether boundary geometry is available. A world that
// failed to load still supports rotation and ocean rendering, just
// without land or country hit-testing.
func (w *World) Ready() bool {
	return w != nil && len(w.Countries) > 0
}

// CountryAt returns the country containing the geographic point, or
// nil for open water
func (w *World) CountryAt(lon, lat float64) *Country {
	if w == nil {
		return nil
	}
	for _, c := range w.Countries {
		if c.Contains(lon, lat) {
			return c
		}
	}
	return nil
}

// LoadWorld reads admin-0 country polygons from a shapefile.
// Ring parts are split per the shapefile part index so islands and
// mainland render as separate outlines.
func LoadWorld(path string) (*World, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open countries shapefile: %w", err)
	}
	defer shape.Close()

	nameIdx := nameFieldIndex(shape.Fields())

	countries := make([]*Country, 0, 256)
	for shape.Next() {
		n, p := shape.Shape()

		poly, ok := p.(*shp.Polygon)
		if !ok {
			continue
		}

		name := ""
		if nameIdx >= 0 {
			name = strings.TrimSpace(shape.ReadAttribute(n, nameIdx))
		}

		country, err := NewCountry(name, splitRings(poly))
		if err != nil {
			continue
		}
		countries = append(countries, country)
	}

	if len(countries) == 0 {
		return nil, fmt.Errorf("no country polygons in %s", path)
	}

	return &World{Countries: countries}, nil
}

// nameFieldIndex finds the country name attribute column.
// Field names in shapefiles are fixed-size byte arrays padded with nulls.
func nameFieldIndex(fields []shp.Field) int {
	for i, field := range fields {
		fieldName := strings.TrimRight(string(field.Name[:]), "\x00 ")
		if fieldName == "NAME" || fieldName == "NAME_EN" || fieldName == "ADMIN" {
			return i
		}
	}
	return -1
}

// splitRings slices a shapefile polygon's flat point array into rings
// using the part offsets
func splitRings(poly *shp.Polygon) [][]LonLat {
	rings := make([][]LonLat, 0, len(poly.Parts))

	for i, start := range poly.Parts {
		end := int32(len(poly.Points))
		if i+1 < len(poly.Parts) {
			end = poly.Parts[i+1]
		}
		if end-start < 3 {
			continue
		}

		ring := make([]LonLat, 0, end-start)
		for _, pt := range poly.Points[start:end] {
			ring = append(ring, LonLat{Lon: pt.X, Lat: pt.Y})
		}
		rings = append(rings, ring)
	}

	return rings
}
