// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWKB_RoundTrip(t *testing.T) {
	samples := append([]string{"POINT EMPTY", "POINT Z EMPTY"}, sampleWKT...)

	for _, order := range []ByteOrder{BigEndian, LittleEndian} {
		for _, variant := range []WKBVariant{WKBVariantISO, WKBVariantExtended} {
			for _, s := range samples {
				t.Run(fmt.Sprintf("%d/%d/%s", order, variant, s), func(t *testing.T) {
					g := mustWKT(t, s)
					b, err := g.WKB(order, variant)
					require.NoError(t, err)
					assert.Len(t, b, g.WKBSize())

					h, err := FromWKB(b)
					require.NoError(t, err)
					assert.True(t, g.EqualsExact(h, 0), h.WKT())
				})
			}
		}
	}
}

func TestGeometry_WKB(t *testing.T) {
	testCases := []struct {
		name    string
		g       *Geometry
		order   ByteOrder
		variant WKBVariant
		want    string
	}{
		{
			name:  "PointNDR",
			g:     NewPoint(1, 2),
			order: NDR,
			want:  "0101000000000000000000f03f0000000000000040",
		},
		{
			name:  "PointXDR",
			g:     NewPoint(1, 2),
			order: XDR,
			want:  "00000000013ff00000000000004000000000000000",
		},
		{
			name:  "PointZISO",
			g:     NewPointZ(1, 2, 3),
			order: NDR,
			want:  "01e9030000000000000000f03f00000000000000400000000000000840",
		},
		{
			name:    "PointZExtended",
			g:       NewPointZ(1, 2, 3),
			order:   NDR,
			variant: WKBVariantExtended,
			want:    "0101000080000000000000f03f00000000000000400000000000000840",
		},
		{
			name:  "EmptyPoint",
			g:     Create(Point),
			order: NDR,
			want:  "0101000000000000000000f87f000000000000f87f",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			b, err := testCase.g.WKB(testCase.order, testCase.variant)

			require.NoError(t, err)
			assert.Equal(t, testCase.want, hex.EncodeToString(b))
		})
	}

	t.Run("LinearRingIsLineString", func(t *testing.T) {
		b, err := NewLinearRing(square(0, 0, 1)...).WKB(NDR, WKBVariantISO)
		require.NoError(t, err)

		g, err := FromWKB(b)
		require.NoError(t, err)
		assert.Equal(t, LineString, g.Type())
		assert.Equal(t, 5, g.NumPoints())
	})
}

func TestFromWKB(t *testing.T) {
	t.Run("Errors", func(t *testing.T) {
		testCases := []string{
			"",
			"01",
			"0201000000000000000000f03f0000000000000040",
			"0101000000000000000000f03f",
			"01ff000000",
		}

		for _, testCase := range testCases {
			b, err := hex.DecodeString(testCase)
			require.NoError(t, err)

			_, err = FromWKB(b)
			assert.ErrorIs(t, err, ErrParse, testCase)
		}
	})

	t.Run("EmptyPointAnyNaN", func(t *testing.T) {
		testCases := []string{
			"0101000000010000000000f87f010000000000f87f",
			"0101000000000000000000f8ff000000000000f8ff",
			"00000000017ff80000000000007ff8000000000000",
			"01e9030000000000000000f87f000000000000f87f000000000000f87f",
		}

		for _, testCase := range testCases {
			b, err := hex.DecodeString(testCase)
			require.NoError(t, err)

			g, err := FromWKB(b)
			require.NoError(t, err, testCase)
			assert.Equal(t, Point, g.Type())
			assert.True(t, g.IsEmpty(), testCase)
		}
	})

	t.Run("EmptyPointCanonicalNaN", func(t *testing.T) {
		for _, order := range []ByteOrder{XDR, NDR} {
			b, err := Create(Point | Wkb25DBit).WKB(order, WKBVariantExtended)
			require.NoError(t, err)
			require.Len(t, b, 29)

			bo := binary.ByteOrder(binary.BigEndian)
			if order == NDR {
				bo = binary.LittleEndian
			}
			for i := 0; i < 3; i++ {
				assert.Equal(t, uint64(0x7ff8000000000000), bo.Uint64(b[5+8*i:]))
			}
		}
	})

	t.Run("SRID", func(t *testing.T) {
		// EWKB point with SRID 4326.
		b, err := hex.DecodeString("0101000020e6100000000000000000f03f0000000000000040")
		require.NoError(t, err)

		g, err := FromWKB(b)
		require.NoError(t, err)
		require.NotNil(t, g.SRS())
		assert.Equal(t, "4326", g.SRS().AuthorityCode(""))
		assert.Equal(t, 1.0, g.X())
		assert.Equal(t, 2.0, g.Y())
	})
}
