package geo

import (
	"math"
)

// Cell represents a terminal cell coordinate, (0, 0) at top-left
type Cell struct {
	X int
	Y int
}

// LonLat is a geographic coordinate in decimal degrees
type LonLat struct {
	Lon float64
	Lat float64
}

const degToRad = math.Pi / 180.0
const radToDeg = 180.0 / math.Pi

// Camera parameterizes the orthographic projection for one frame:
// the current rotation, the globe radius in cells, the viewport size
// and the character aspect correction. It is a value type with no
// internal state; every method is a pure function of its fields.
//
// Rotation follows the convention of the rendered globe: the
// geographic point (-RotLon, -RotLat) sits at the viewport center.
type Camera struct {
	RotLon float64
	RotLat float64
	Scale  float64 // globe radius in cell widths
	Width  int
	Height int
	Aspect float64 // cell height / cell width, typically 2.0
}

// Center returns the geographic coordinate at the viewport center
func (c Camera) Center() (lon, lat float64) {
	return normalizeLon(-c.RotLon), -c.RotLat
}

// ProjectF maps a geographic coordinate to fractional viewport
// coordinates. ok is false when the point lies on the far hemisphere.
func (c Camera) ProjectF(lon, lat float64) (x, y float64, ok bool) {
	lon0, lat0 := c.Center()

	lam := (lon - lon0) * degToRad
	phi := lat * degToRad
	phi0 := lat0 * degToRad

	sinPhi, cosPhi := math.Sincos(phi)
	sinPhi0, cosPhi0 := math.Sincos(phi0)
	cosLam := math.Cos(lam)

	// Angular distance from the viewport center; the far hemisphere
	// projects on top of the near one and must be culled.
	cosC := sinPhi0*sinPhi + cosPhi0*cosPhi*cosLam
	if cosC < 0 {
		return 0, 0, false
	}

	px := cosPhi * math.Sin(lam)
	py := cosPhi0*sinPhi - sinPhi0*cosPhi*cosLam

	x = float64(c.Width)/2 + px*c.Scale
	y = float64(c.Height)/2 - py*c.Scale/c.aspect()

	return x, y, true
}

// Project maps a geographic coordinate to a terminal cell.
// ok is false when the point lies on the far hemisphere.
func (c Camera) Project(lon, lat float64) (Cell, bool) {
	x, y, ok := c.ProjectF(lon, lat)
	if !ok {
		return Cell{}, false
	}
	return Cell{X: int(math.Round(x)), Y: int(math.Round(y))}, true
}

// Invert maps fractional viewport coordinates back to a geographic
// coordinate. ok is false when the position falls outside the
// projected sphere's silhouette (the click missed the globe).
func (c Camera) Invert(x, y float64) (lon, lat float64, ok bool) {
	lon0, lat0 := c.Center()
	phi0 := lat0 * degToRad

	px := (x - float64(c.Width)/2) / c.Scale
	py := (float64(c.Height)/2 - y) * c.aspect() / c.Scale

	rho := math.Hypot(px, py)
	if rho > 1 {
		return 0, 0, false
	}
	if rho == 0 {
		return lon0, lat0, true
	}

	sinC := rho // asin(rho) has sin(c) = rho for the orthographic case
	cosC := math.Sqrt(1 - rho*rho)
	sinPhi0, cosPhi0 := math.Sincos(phi0)

	phi := math.Asin(cosC*sinPhi0 + py*sinC*cosPhi0/rho)
	lam := math.Atan2(px*sinC, rho*cosC*cosPhi0-py*sinC*sinPhi0)

	return normalizeLon(lon0 + lam*radToDeg), phi * radToDeg, true
}

// Visible reports whether a geographic point lies on the near
// hemisphere: its great-circle distance from the viewport center is
// at most 90 degrees.
func (c Camera) Visible(lon, lat float64) bool {
	lon0, lat0 := c.Center()
	return Distance(lon, lat, lon0, lat0) <= math.Pi/2
}

// OnDisc reports whether a viewport position falls inside the
// projected sphere's silhouette
func (c Camera) OnDisc(x, y float64) bool {
	px := (x - float64(c.Width)/2) / c.Scale
	py := (float64(c.Height)/2 - y) * c.aspect() / c.Scale
	return px*px+py*py <= 1
}

func (c Camera) aspect() float64 {
	if c.Aspect <= 0 {
		return 1
	}
	return c.Aspect
}

// Distance returns the great-circle distance between two geographic
// points in radians
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dLam := (lon2 - lon1) * degToRad

	// Vincenty form, stable at small and antipodal distances
	sinPhi1, cosPhi1 := math.Sincos(phi1)
	sinPhi2, cosPhi2 := math.Sincos(phi2)
	sinLam, cosLam := math.Sincos(dLam)

	a := cosPhi2 * sinLam
	b := cosPhi1*sinPhi2 - sinPhi1*cosPhi2*cosLam
	num := math.Hypot(a, b)
	den := sinPhi1*sinPhi2 + cosPhi1*cosPhi2*cosLam

	return math.Atan2(num, den)
}

// Interpolate returns the point a fraction t along the great circle
// from (lon1, lat1) to (lon2, lat2). Used to sample geodesic paths so
// overlay lines curve with the globe instead of cutting across it.
func Interpolate(lon1, lat1, lon2, lat2, t float64) (lon, lat float64) {
	x1, y1, z1 := toVector(lon1, lat1)
	x2, y2, z2 := toVector(lon2, lat2)

	omega := Distance(lon1, lat1, lon2, lat2)
	if omega < 1e-12 {
		return lon1, lat1
	}

	sinOmega := math.Sin(omega)
	f1 := math.Sin((1-t)*omega) / sinOmega
	f2 := math.Sin(t*omega) / sinOmega

	x := f1*x1 + f2*x2
	y := f1*y1 + f2*y2
	z := f1*z1 + f2*z2

	return fromVector(x, y, z)
}

func toVector(lon, lat float64) (x, y, z float64) {
	phi := lat * degToRad
	lam := lon * degToRad
	cosPhi := math.Cos(phi)
	return cosPhi * math.Cos(lam), cosPhi * math.Sin(lam), math.Sin(phi)
}

func fromVector(x, y, z float64) (lon, lat float64) {
	return math.Atan2(y, x) * radToDeg, math.Atan2(z, math.Hypot(x, y)) * radToDeg
}

// normalizeLon wraps a longitude into [-180, 180)
func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// AngularDiff normalizes the angular difference b-a into [-180, 180),
// so easing toward a target always takes the short way around
func AngularDiff(a, b float64) float64 {
	return normalizeLon(b - a)
}
