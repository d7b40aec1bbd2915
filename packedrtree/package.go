// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package packedrtree provides a static packed Hilbert R-Tree over
// two-dimensional bounding boxes.
//
// The tree is built once from a complete list of references and is
// read-only afterward, so a single tree may be searched from many
// goroutines at once. Package geokit uses it to find candidate segment
// pairs when noding geometries, but it has no dependency on geokit and
// can index anything that has a bounding box.
package packedrtree
