// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTransformation(t *testing.T, src, dst *SpatialReference) *Transformation {
	tr, err := NewTransformation(src, dst)
	require.NoError(t, err)
	return tr
}

func mustProj4(t *testing.T, s string) *SpatialReference {
	r, err := FromProj4(s)
	require.NoError(t, err)
	return r
}

func TestTransformation_TransformPoint(t *testing.T) {
	auto := func(s string) *SpatialReference {
		r, err := FromWMSAUTO(s)
		require.NoError(t, err)
		return r
	}
	wgs84 := mustEPSG(t, 4326)

	testCases := []struct {
		name     string
		src, dst *SpatialReference
		in       Point
		expected Point
		delta    float64
	}{
		{
			name: "UTMCentralMeridian",
			src:  wgs84, dst: mustEPSG(t, 32631),
			in: Point{3, 0, 0}, expected: Point{500000, 0, 0}, delta: 1e-6,
		},
		{
			name: "UTMSouthFalseNorthing",
			src:  wgs84, dst: mustEPSG(t, 32731),
			in: Point{3, 0, 0}, expected: Point{500000, 10000000, 0}, delta: 1e-6,
		},
		{
			name: "QuarterMeridian",
			src:  wgs84, dst: mustProj4(t, "+proj=tmerc +lat_0=0 +lon_0=0 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs"),
			in: Point{0, 90, 0}, expected: Point{0, 10001965.729, 0}, delta: 1e-3,
		},
		{
			name: "PseudoMercatorAntimeridian",
			src:  wgs84, dst: mustEPSG(t, 3857),
			in: Point{180, 0, 0}, expected: Point{20037508.342789244, 0, 0}, delta: 1e-6,
		},
		{
			name: "PseudoMercatorInverse",
			src:  mustEPSG(t, 3857), dst: wgs84,
			in: Point{-20037508.342789244, 0, 5}, expected: Point{-180, 0, 5}, delta: 1e-9,
		},
		{
			name: "Equirectangular",
			src:  wgs84, dst: mustEPSG(t, 4087),
			in: Point{180, 0, 0}, expected: Point{math.Pi * 6378137, 0, 0}, delta: 1e-6,
		},
		{
			name: "LambertOrigin",
			src:  mustEPSG(t, 4171), dst: mustEPSG(t, 2154),
			in: Point{3, 46.5, 0}, expected: Point{700000, 6600000, 0}, delta: 1e-6,
		},
		{
			name: "LambertOneParallelOrigin",
			src:  wgs84, dst: mustProj4(t, "+proj=lcc +lat_1=45 +lat_0=45 +lon_0=0 +k_0=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs"),
			in: Point{0, 45, 0}, expected: Point{0, 0, 0}, delta: 1e-6,
		},
		{
			name: "MollweidePole",
			src:  wgs84, dst: auto("AUTO:42005,9001,0"),
			in: Point{0, 90, 0}, expected: Point{0, math.Sqrt2 * 6378137, 0}, delta: 1e-3,
		},
		{
			name: "OrthographicCentre",
			src:  wgs84, dst: auto("AUTO:42003,9001,10,20"),
			in: Point{10, 20, 0}, expected: Point{0, 0, 0}, delta: 1e-6,
		},
		{
			name: "Geocentric",
			src:  wgs84, dst: mustEPSG(t, 4978),
			in: Point{0, 0, 0}, expected: Point{6378137, 0, 0}, delta: 1e-6,
		},
		{
			name: "GeocentricPole",
			src:  wgs84, dst: mustEPSG(t, 4978),
			in: Point{0, 90, 0}, expected: Point{0, 0, 6356752.3142}, delta: 1e-3,
		},
		{
			name: "GeocentricInverse",
			src:  mustEPSG(t, 4978), dst: wgs84,
			in: Point{6378237, 0, 0}, expected: Point{0, 0, 100}, delta: 1e-6,
		},
		{
			name: "AxisSwap",
			src:  mustEPSGA(t, 4326), dst: wgs84,
			in: Point{10, 20, 0}, expected: Point{20, 10, 0}, delta: 1e-12,
		},
		{
			name: "Feet",
			src:  wgs84, dst: auto("AUTO:42001,9002,3,0"),
			in: Point{3, 0, 0}, expected: Point{500000 / footFactor, 0, 0}, delta: 1e-6,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			tr := mustTransformation(t, testCase.src, testCase.dst)

			p, err := tr.TransformPoint(testCase.in.X, testCase.in.Y, testCase.in.Z)

			require.NoError(t, err)
			assert.InDelta(t, testCase.expected.X, p.X, testCase.delta, "X")
			assert.InDelta(t, testCase.expected.Y, p.Y, testCase.delta, "Y")
			assert.InDelta(t, testCase.expected.Z, p.Z, testCase.delta, "Z")
		})
	}
}

func mustEPSGA(t *testing.T, code int) *SpatialReference {
	r, err := FromEPSGA(code)
	require.NoError(t, err)
	return r
}

func TestTransformation_RoundTrip(t *testing.T) {
	// metresPerDegree is one degree of latitude, near enough for
	// expressing round trip error as a ground distance.
	const metresPerDegree = 111320

	testCases := []struct {
		name string
		code int
		lon  float64
		lat  float64
		tol  float64 // metres
	}{
		{"UTM", 32633, 14.2, 51.1, 2e-4},
		{"UTMSouth", 32733, 16.9, -33.4, 2e-4},
		{"WorldMercator", 3395, -70.5, 60.25, 2e-4},
		{"PseudoMercator", 3857, 139.7, 35.7, 2e-4},
		{"Lambert93", 2154, 2.35, 48.85, 2e-3},
		{"BritishNationalGrid", 27700, -0.1, 51.5, 5e-3},
		{"GaussKruger", 31467, 9.2, 48.8, 5e-3},
		{"SWEREF99", 3006, 18.1, 59.3, 2e-4},
		{"CGCS2000", 4517, 87.6, 43.8, 2e-4},
		{"Geocentric", 4978, 45, 45, 2e-4},
	}

	wgs84 := mustEPSG(t, 4326)
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			dst := mustEPSG(t, testCase.code)
			fwd := mustTransformation(t, wgs84, dst)
			inv := mustTransformation(t, dst, wgs84)

			p, err := fwd.TransformPoint(testCase.lon, testCase.lat, 0)
			require.NoError(t, err)
			q, err := inv.TransformPoint(p.X, p.Y, p.Z)
			require.NoError(t, err)

			dx := (q.X - testCase.lon) * math.Cos(testCase.lat*math.Pi/180)
			dy := q.Y - testCase.lat
			assert.Less(t, math.Hypot(dx, dy)*metresPerDegree, testCase.tol, "got %v %v", q.X, q.Y)
		})
	}
}

func TestTransformation_DatumShift(t *testing.T) {
	t.Run("BritishNationalGrid", func(t *testing.T) {
		tr := mustTransformation(t, mustEPSG(t, 4326), mustEPSG(t, 27700))

		p, err := tr.TransformPoint(-0.1, 51.5, 0)

		require.NoError(t, err)
		assert.InDelta(t, 531800, p.X, 3000)
		assert.InDelta(t, 179500, p.Y, 3000)
	})

	t.Run("NAD27", func(t *testing.T) {
		tr := mustTransformation(t, mustEPSG(t, 4267), mustEPSG(t, 4326))

		p, err := tr.TransformPoint(-100, 40, 0)

		require.NoError(t, err)
		assert.NotEqual(t, -100.0, p.X)
		assert.InDelta(t, -100, p.X, 0.01)
		assert.InDelta(t, 40, p.Y, 0.01)
	})

	t.Run("FarFromCentralMeridian", func(t *testing.T) {
		tr := mustTransformation(t, mustEPSG(t, 26910), mustEPSG(t, 4326))

		p, err := tr.TransformPoint(0, 0, 0)

		require.NoError(t, err)
		assert.InDelta(t, 0, p.Y, 1e-9)
		assert.Less(t, p.X, -127.0)
		assert.Greater(t, p.X, -128.0)
	})
}

func TestTransformation_Identity(t *testing.T) {
	src := mustEPSG(t, 5773)
	tr := mustTransformation(t, src, mustEPSG(t, 5773))

	p, err := tr.TransformPoint(1, 2, 3)

	require.NoError(t, err)
	assert.Equal(t, Point{1, 2, 3}, p)
	assert.Equal(t, "Point{X:1,Y:2,Z:3}", p.String())
	assert.Same(t, src, tr.Source())
	assert.Equal(t, "EGM96 height", tr.Target().Name())
}

func TestNewTransformation_Errors(t *testing.T) {
	bessel := `GEOGCS["x",DATUM["Foo",SPHEROID["Bessel 1841",6377397.155,299.1528128]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]]`
	noShift, err := FromWKT(bessel)
	require.NoError(t, err)
	unknownMethod, err := FromWKT(`PROJCS["p",` + bessel + `,PROJECTION["Foo"],UNIT["metre",1]]`)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		src, dst *SpatialReference
	}{
		{"Empty", New(), mustEPSG(t, 4326)},
		{"VerticalAndGeographic", mustEPSG(t, 5773), mustEPSG(t, 4326)},
		{"DifferentVertical", mustEPSG(t, 5773), mustEPSG(t, 5703)},
		{"NoDatumShift", noShift, mustEPSG(t, 4326)},
		{"InvalidTarget", mustEPSG(t, 4326), unknownMethod},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := NewTransformation(testCase.src, testCase.dst)

			assert.ErrorIs(t, err, ErrIncompatibleReference)
		})
	}

	t.Run("Nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "srs: nil spatial reference", func() {
			_, _ = NewTransformation(nil, mustEPSG(t, 4326))
		})
	})
}

func TestTransformation_OutOfDomain(t *testing.T) {
	ortho, err := FromWMSAUTO("AUTO:42003,9001,0,0")
	require.NoError(t, err)

	testCases := []struct {
		name string
		dst  *SpatialReference
		x, y float64
	}{
		{"FarSide", ortho, 180, 0},
		{"MercatorPole", mustEPSG(t, 3395), 0, 90},
		{"TransverseMercatorFarSide", mustEPSG(t, 32631), -177, 0},
		{"Latitude", mustEPSG(t, 32631), 3, 91},
	}

	wgs84 := mustEPSG(t, 4326)
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			tr := mustTransformation(t, wgs84, testCase.dst)

			_, err := tr.TransformPoint(testCase.x, testCase.y, 0)

			assert.ErrorIs(t, err, ErrOutOfDomain)
		})
	}
}

func TestTransformation_TransformPoints(t *testing.T) {
	tr := mustTransformation(t, mustEPSG(t, 4326), mustEPSG(t, 32631))

	t.Run("Success", func(t *testing.T) {
		x, y, z := []float64{3, 3}, []float64{0, 0}, []float64{7, 8}

		require.NoError(t, tr.TransformPoints(x, y, z))
		assert.InDelta(t, 500000, x[0], 1e-6)
		assert.InDelta(t, 500000, x[1], 1e-6)
		assert.Equal(t, []float64{7, 8}, z)
	})

	t.Run("NilZ", func(t *testing.T) {
		x, y := []float64{3}, []float64{0}

		require.NoError(t, tr.TransformPoints(x, y, nil))
		assert.InDelta(t, 500000, x[0], 1e-6)
	})

	t.Run("AllOrNothing", func(t *testing.T) {
		x, y := []float64{3, 3, 3}, []float64{0, 95, 0}

		err := tr.TransformPoints(x, y, nil)

		assert.ErrorIs(t, err, ErrOutOfDomain)
		assert.Contains(t, err.Error(), "point 1")
		assert.Equal(t, []float64{3, 3, 3}, x)
		assert.Equal(t, []float64{0, 95, 0}, y)
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = tr.TransformPoints([]float64{1}, []float64{1, 2}, nil)
		})
	})
}

func TestGeodetic_RoundTrip(t *testing.T) {
	g := newGeodetic(&ellWGS84)
	testCases := []struct {
		lam, phi, h float64
	}{
		{0, 0, 0},
		{0.3, 0.7, 1500},
		{-2.5, -1.2, -30},
		{1, math.Pi / 2, 10},
		{1, -math.Pi / 2, 0},
	}

	for _, testCase := range testCases {
		x, y, z := g.toECEF(testCase.lam, testCase.phi, testCase.h)
		lam, phi, h := g.fromECEF(x, y, z)

		assert.InDelta(t, testCase.phi, phi, 1e-12)
		assert.InDelta(t, testCase.h, h, 1e-6)
		if math.Abs(testCase.phi) < math.Pi/2 {
			assert.InDelta(t, testCase.lam, lam, 1e-12)
		}
	}
}

func TestHelmert_Inverse(t *testing.T) {
	h := newHelmert([7]float64{446.448, -125.157, 542.06, 0.15, 0.247, 0.842, -20.489})

	x, y, z := h.forward(3980000, -7000, 4970000)
	x, y, z = h.inverse(x, y, z)

	assert.InDelta(t, 3980000, x, 1e-6)
	assert.InDelta(t, -7000, y, 1e-6)
	assert.InDelta(t, 4970000, z, 1e-6)

	zero := newHelmert([7]float64{})
	x, y, z = zero.forward(1, 2, 3)
	assert.Equal(t, []float64{1, 2, 3}, []float64{x, y, z})
}

func TestTransverseMercator_Inverse(t *testing.T) {
	tm := newTransverseMercator(projParams{
		a: ellWGS84.a, es: ellWGS84.es(), e: math.Sqrt(ellWGS84.es()),
		lon0: 9 * math.Pi / 180, k0: 0.9996, fe: 500000,
	})

	for _, deg := range [][2]float64{{9, 0}, {12, 45}, {5, -60}, {11.5, 80}} {
		lam, phi := deg[0]*math.Pi/180, deg[1]*math.Pi/180
		x, y, err := tm.forward(lam, phi)
		require.NoError(t, err)
		lam2, phi2, err := tm.inverse(x, y)
		require.NoError(t, err)

		assert.InDelta(t, lam, lam2, 1e-11)
		assert.InDelta(t, phi, phi2, 1e-11)
	}
}
