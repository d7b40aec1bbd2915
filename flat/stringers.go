// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package flat holds the FlatBuffers table accessors for the FlatGeobuf
// Geometry table. Apart from this file, the package is generated by
// flatc from the Geometry table of the FlatGeobuf schema.
package flat

import (
	"fmt"
	"strings"

	"github.com/gogama/geokit/packedrtree"
)

// String returns a string summarizing the Geometry. The returned value
// is a summary and not meant to be exhaustive.
func (rcv *Geometry) String() string {
	var b strings.Builder
	if err := safeFlatBuffersInteraction(func() error {
		rcv.string(&b)
		return nil
	}); err != nil {
		return "error: " + err.Error()
	}
	return b.String()
}

func (rcv *Geometry) string(b *strings.Builder) {
	b.WriteString("Geometry{Type:")
	b.WriteString(rcv.Type().String())
	if rcv.ZLength() > 0 {
		b.WriteString(",Z")
	}
	b.WriteString(",Bounds:")
	bounds := packedrtree.EmptyBox
	rcv.Bounds(&bounds)
	if bounds == packedrtree.EmptyBox {
		b.WriteString("<nil>")
	} else {
		b.WriteString(bounds.String())
	}
	if n := rcv.EndsLength(); n > 0 {
		fmt.Fprintf(b, ",Ends:%d", n)
	}
	if n := rcv.PartsLength(); n > 0 {
		fmt.Fprintf(b, ",Parts:%d", n)
	}
	b.WriteByte('}')
}

// Bounds expands b to include every XY coordinate of the geometry and
// its parts.
func (rcv *Geometry) Bounds(b *packedrtree.Box) {
	n := rcv.XyLength()
	for i := 0; i+1 < n; i += 2 {
		b.ExpandXY(rcv.Xy(i+0), rcv.Xy(i+1))
	}
	n = rcv.PartsLength()
	for i := 0; i < n; i++ {
		var h Geometry
		if rcv.Parts(&h, i) {
			h.Bounds(b)
		}
	}
}

func safeFlatBuffersInteraction(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: flatbuffers: %v", r)
		}
	}()
	err = f()
	return
}
