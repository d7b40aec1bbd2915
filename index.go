// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"math"

	"github.com/gogama/geokit/packedrtree"
)

const indexNodeSize = 16

// spatialIndex is a static index over the bounding boxes of a list of
// items, typically segments, identified by their position in the
// caller's slice. The zero value indexes nothing.
type spatialIndex struct {
	tree *packedrtree.PackedRTree
}

func newSpatialIndex(n int, bounds func(i int) packedrtree.Box) spatialIndex {
	if n == 0 {
		return spatialIndex{}
	}
	refs := make([]packedrtree.Ref, n)
	extent := packedrtree.EmptyBox
	for i := range refs {
		refs[i] = packedrtree.Ref{Box: bounds(i), ID: i}
		extent.Expand(&refs[i].Box)
	}
	packedrtree.HilbertSort(refs, extent)
	tree, err := packedrtree.New(refs, indexNodeSize)
	if err != nil {
		fmtPanic("index of %d items: %v", n, err)
	}
	return spatialIndex{tree}
}

// visit calls f with every item whose box intersects b, stopping early
// if f returns false.
func (x spatialIndex) visit(b packedrtree.Box, f func(i int) bool) {
	if x.tree == nil {
		return
	}
	x.tree.Visit(b, func(r packedrtree.Result) bool {
		return f(r.ID)
	})
}

func segmentBox(a, b Coord, pad float64) packedrtree.Box {
	return packedrtree.Box{
		XMin: math.Min(a.X, b.X) - pad,
		YMin: math.Min(a.Y, b.Y) - pad,
		XMax: math.Max(a.X, b.X) + pad,
		YMax: math.Max(a.Y, b.Y) + pad,
	}
}

func pointBox(c Coord, pad float64) packedrtree.Box {
	return segmentBox(c, c, pad)
}

// rayBox is the box swept by a ray from c towards positive X.
func rayBox(c Coord) packedrtree.Box {
	return packedrtree.Box{XMin: c.X, YMin: c.Y, XMax: math.Inf(1), YMax: c.Y}
}

// segment is a pair of coordinates tagged with the path it came from.
type segment struct {
	a, b Coord
	// path identifies the line or ring the segment belongs to, and i is
	// the position of the segment within that path.
	path, i int
}

func indexSegments(segs []segment, pad float64) spatialIndex {
	return newSpatialIndex(len(segs), func(i int) packedrtree.Box {
		return segmentBox(segs[i].a, segs[i].b, pad)
	})
}

// pathSegments appends the non-degenerate segments of each path.
func pathSegments(segs []segment, paths [][]Coord, firstPath int) []segment {
	for p, path := range paths {
		for i := 1; i < len(path); i++ {
			if path[i-1].equal2D(path[i]) {
				continue
			}
			segs = append(segs, segment{a: path[i-1], b: path[i], path: firstPath + p, i: i - 1})
		}
	}
	return segs
}
