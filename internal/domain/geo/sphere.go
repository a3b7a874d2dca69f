// Package geo implements radius search on a spherical Earth.
//
// Distances are converted to angular radii by dividing by a mean Earth radius of 6378 km.
// The sphere approximation is accurate to well under one percent for city-scale radii;
// the error against the WGS84 ellipsoid grows with distance and towards the poles.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusKm is the mean radius used for every km <-> radian conversion.
const EarthRadiusKm = 6378.0

// boundPadDeg widens prefilter rectangles so points lying exactly on the cap edge survive rounding.
const boundPadDeg = 1e-9

// RadiusFromKm converts a surface distance to the angular radius of a spherical cap, in radians.
func RadiusFromKm(distanceKm float64) float64 {
	return distanceKm / EarthRadiusKm
}

// KmFromRadius converts an angular radius back to a surface distance.
func KmFromRadius(radius float64) float64 {
	return radius * EarthRadiusKm
}

// AngularDistance returns the central angle between a and b in radians (haversine form).
func AngularDistance(a, b orb.Point) float64 {
	lat1 := deg2rad(a.Lat())
	lat2 := deg2rad(b.Lat())
	dLat := lat2 - lat1
	dLng := deg2rad(b.Lon() - a.Lon())

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	// h may drift past 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * math.Asin(math.Sqrt(h))
}

// Cap is the set of points within Radius radians of Center.
type Cap struct {
	Center orb.Point
	Radius float64
}

// NewCap builds the cap covering distanceKm around center.
func NewCap(center orb.Point, distanceKm float64) Cap {
	return Cap{Center: center, Radius: RadiusFromKm(distanceKm)}
}

// CoversSphere reports whether the cap contains every point on the sphere.
func (c Cap) CoversSphere() bool {
	return c.Radius >= math.Pi
}

// Contains reports whether p lies inside the cap, boundary included.
func (c Cap) Contains(p orb.Point) bool {
	if c.CoversSphere() {
		return true
	}

	return AngularDistance(c.Center, p) <= c.Radius
}

// DistanceKm returns the surface distance from the cap center to p.
func (c Cap) DistanceKm(p orb.Point) float64 {
	return KmFromRadius(AngularDistance(c.Center, p))
}

// Bound returns a longitude/latitude rectangle enclosing the cap, usable as an index prefilter.
// When the cap reaches a pole or crosses the antimeridian the rectangle spans every longitude.
func (c Cap) Bound() orb.Bound {
	if c.CoversSphere() {
		return world()
	}

	radiusDeg := rad2deg(c.Radius)
	minLat := c.Center.Lat() - radiusDeg - boundPadDeg
	maxLat := c.Center.Lat() + radiusDeg + boundPadDeg

	if minLat <= -90 || maxLat >= 90 {
		return orb.Bound{
			Min: orb.Point{-180, math.Max(minLat, -90)},
			Max: orb.Point{180, math.Min(maxLat, 90)},
		}
	}

	ratio := math.Sin(c.Radius) / math.Cos(deg2rad(c.Center.Lat()))
	deltaLng := rad2deg(math.Asin(math.Min(1, ratio))) + boundPadDeg
	minLng := c.Center.Lon() - deltaLng
	maxLng := c.Center.Lon() + deltaLng

	if minLng < -180 || maxLng > 180 {
		minLng, maxLng = -180, 180
	}

	return orb.Bound{
		Min: orb.Point{minLng, minLat},
		Max: orb.Point{maxLng, maxLat},
	}
}

func world() orb.Bound {
	return orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}

func rad2deg(r float64) float64 {
	return r * 180 / math.Pi
}
