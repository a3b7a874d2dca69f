package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestRadiusFromKm(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 10.0/6378.0, RadiusFromKm(10), 1e-12)
	assert.InDelta(t, math.Pi, RadiusFromKm(math.Pi*EarthRadiusKm), 1e-12)
	assert.InDelta(t, 25.0, KmFromRadius(RadiusFromKm(25)), 1e-9)
}

func TestAngularDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     orb.Point
		expected float64
	}{
		{name: "same point", a: orb.Point{121.5, 25.03}, b: orb.Point{121.5, 25.03}, expected: 0},
		{name: "one degree along equator", a: orb.Point{0, 0}, b: orb.Point{1, 0}, expected: math.Pi / 180},
		{name: "quarter meridian", a: orb.Point{0, 0}, b: orb.Point{0, 90}, expected: math.Pi / 2},
		{name: "antipodal", a: orb.Point{0, 0}, b: orb.Point{180, 0}, expected: math.Pi},
		{name: "antipodal off equator", a: orb.Point{-73.98, 40.75}, b: orb.Point{106.02, -40.75}, expected: math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tt.expected, AngularDistance(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.expected, AngularDistance(tt.b, tt.a), 1e-9)
		})
	}
}

func TestCap_Contains(t *testing.T) {
	t.Parallel()

	center := orb.Point{-73.98, 40.75}

	// One degree of latitude is 6378*pi/180 ~= 111.32 km on this sphere.
	north := orb.Point{-73.98, 41.75}

	assert.True(t, NewCap(center, 112).Contains(north))
	assert.False(t, NewCap(center, 111).Contains(north))
	assert.True(t, NewCap(center, 0).Contains(center))
	assert.False(t, NewCap(center, 0).Contains(north))
}

func TestCap_ContainsBoundary(t *testing.T) {
	t.Parallel()

	center := orb.Point{0, 0}
	edge := orb.Point{1, 0}
	c := Cap{Center: center, Radius: AngularDistance(center, edge)}

	assert.True(t, c.Contains(edge))
}

func TestCap_CoversSphere(t *testing.T) {
	t.Parallel()

	c := NewCap(orb.Point{10, 10}, math.Pi*EarthRadiusKm)
	assert.True(t, c.CoversSphere())
	assert.True(t, c.Contains(orb.Point{-170, -10}))
	assert.True(t, NewCap(orb.Point{10, 10}, 1e6).Contains(orb.Point{0, -89}))

	assert.False(t, NewCap(orb.Point{10, 10}, 1000).CoversSphere())
}

func TestCap_DistanceKm(t *testing.T) {
	t.Parallel()

	c := NewCap(orb.Point{0, 0}, 1)
	assert.InDelta(t, EarthRadiusKm*math.Pi/180, c.DistanceKm(orb.Point{0, 1}), 1e-6)
}

func TestCap_Bound(t *testing.T) {
	t.Parallel()

	t.Run("mid latitude encloses cap", func(t *testing.T) {
		t.Parallel()

		c := NewCap(orb.Point{-73.98, 40.75}, 50)
		b := c.Bound()

		assert.Less(t, b.Min.Lon(), -73.98)
		assert.Greater(t, b.Max.Lon(), -73.98)
		assert.Less(t, b.Min.Lat(), 40.75)
		assert.Greater(t, b.Max.Lat(), 40.75)

		// Points on the cap edge in each cardinal direction must fall inside the box.
		dLat := 50 / (EarthRadiusKm * math.Pi / 180)
		assert.True(t, b.Contains(orb.Point{-73.98, 40.75 + dLat*0.999}))
		assert.True(t, b.Contains(orb.Point{-73.98, 40.75 - dLat*0.999}))
		assert.False(t, b.Contains(orb.Point{-73.98, 40.75 + dLat*1.01}))
	})

	t.Run("polar cap spans all longitudes", func(t *testing.T) {
		t.Parallel()

		b := NewCap(orb.Point{0, 89.5}, 200).Bound()

		assert.Equal(t, -180.0, b.Min.Lon())
		assert.Equal(t, 180.0, b.Max.Lon())
		assert.Equal(t, 90.0, b.Max.Lat())
	})

	t.Run("antimeridian crossing spans all longitudes", func(t *testing.T) {
		t.Parallel()

		b := NewCap(orb.Point{179.9, 0}, 100).Bound()

		assert.Equal(t, -180.0, b.Min.Lon())
		assert.Equal(t, 180.0, b.Max.Lon())
		assert.Less(t, b.Max.Lat(), 2.0)
	})

	t.Run("whole sphere", func(t *testing.T) {
		t.Parallel()

		b := NewCap(orb.Point{0, 0}, 4*EarthRadiusKm).Bound()

		assert.Equal(t, orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}, b)
	})
}
