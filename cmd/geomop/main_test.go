// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/gogama/geokit/internal/config"
	"github.com/gogama/geokit/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	squareA = "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))"
	squareB = "POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))"
)

func options(op, a, b string) Options {
	var opts Options
	opts.Args.Operation, opts.Args.A, opts.Args.B = op, a, b
	opts.Distance, opts.Segments = 1, 8
	return opts
}

func TestApply(t *testing.T) {
	testCases := []struct {
		name string
		opts Options
		want string
	}{
		{"Area", options("area", squareA, ""), "4"},
		{"Length", options("length", "LINESTRING (0 0, 3 4)", ""), "5"},
		{"Centroid", options("centroid", squareA, ""), "POINT (1 1)"},
		{"IsValid", options("is-valid", "POLYGON ((0 0, 1 1, 1 0, 0 1, 0 0))", ""), "false"},
		{"IsRing", options("is-ring", "LINESTRING (0 0, 1 0, 1 1, 0 0)", ""), "true"},
		{"Intersects", options("intersects", squareA, squareB), "true"},
		{"Touches", options("touches", squareA, squareB), "false"},
		{"Relate", options("relate", squareA, squareB), "212101212"},
		{"Distance", options("distance", "POINT (0 0)", "POINT (3 4)"), "5"},
		{"Simplify", options("simplify", "LINESTRING (0 0, 1 0.1, 2 0)", ""), "LINESTRING (0 0, 2 0)"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := apply(testCase.opts, nil, config.Output{})

			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}

	t.Run("RelatePattern", func(t *testing.T) {
		opts := options("relate", squareA, squareB)
		opts.Pattern = "T*T***T**"

		got, err := apply(opts, nil, config.Output{})

		require.NoError(t, err)
		assert.Equal(t, "true", got)
	})

	t.Run("WKB", func(t *testing.T) {
		opts := options("centroid", "POINT (1 2)", "")
		opts.Format = "wkb"

		got, err := apply(opts, nil, config.Output{ByteOrder: "ndr"})

		require.NoError(t, err)
		assert.Equal(t, "0101000000000000000000f03f0000000000000040", got)
	})

	t.Run("GeodesicLength", func(t *testing.T) {
		ref, err := srs.FromEPSG(4326)
		require.NoError(t, err)

		got, err := apply(options("geodesic-length", "LINESTRING (0 0, 0 0)", ""), ref, config.Output{})

		require.NoError(t, err)
		assert.Equal(t, "0", got)
	})

	t.Run("Errors", func(t *testing.T) {
		testCases := []Options{
			options("teleport", squareA, ""),
			options("area", "SQUARE", ""),
			options("union", squareA, ""),
			options("union", squareA, "NOT WKT"),
			options("geodesic-area", squareA, ""),
		}

		for _, opts := range testCases {
			_, err := apply(opts, nil, config.Output{})
			assert.Error(t, err, opts.Args.Operation)
		}
	})
}

func TestOperationNames(t *testing.T) {
	names := operationNames()

	assert.Len(t, names, len(operations))
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "sym-difference")
}
