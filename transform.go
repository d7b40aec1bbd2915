// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import "github.com/gogama/geokit/srs"

// Transform transforms every coordinate of the geometry in place with
// t and assigns t's target reference to the geometry. The
// transformation is all or nothing: if any coordinate fails, the
// geometry is left unchanged and the error is returned. Z values are
// only written back if the geometry is three-dimensional.
func (g *Geometry) Transform(t *srs.Transformation) error {
	if t == nil {
		textPanic("nil transformation")
	}
	var x, y, z []float64
	g.eachCoord(func(c *Coord) {
		x = append(x, c.X)
		y = append(y, c.Y)
		z = append(z, c.Z)
	})
	if err := t.TransformPoints(x, y, z); err != nil {
		return wrapErr("transform", err)
	}
	i := 0
	g.eachCoord(func(c *Coord) {
		c.X, c.Y = x[i], y[i]
		if g.is3D {
			c.Z = z[i]
		}
		i++
	})
	g.AssignSRS(t.Target())
	return nil
}

// TransformTo transforms the geometry in place from its own spatial
// reference to ref. Returns an error wrapping ErrMissingReference if
// the geometry has no spatial reference, or the error of
// srs.NewTransformation if the references cannot be paired.
func (g *Geometry) TransformTo(ref *srs.SpatialReference) error {
	if ref == nil {
		textPanic("nil spatial reference")
	}
	if g.ref == nil {
		return kindErr(ErrMissingReference, "cannot transform to %s", ref.Name())
	}
	t, err := srs.NewTransformation(g.ref, ref)
	if err != nil {
		return wrapErr("transform", err)
	}
	return g.Transform(t)
}
