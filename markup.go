// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"strings"
)

// GML returns the geometry as a GML 2 fragment, for example
// <gml:Point><gml:coordinates>1,2</gml:coordinates></gml:Point>. The
// outermost element carries an srsName attribute such as "EPSG:4326"
// when the geometry's reference has an EPSG authority code.
func (g *Geometry) GML() string {
	var b strings.Builder
	srsName := ""
	if g.ref != nil && g.ref.AuthorityName("") == "EPSG" {
		if code := g.ref.AuthorityCode(""); code != "" {
			srsName = "EPSG:" + code
		}
	}
	g.writeMarkup(&b, gmlDialect, srsName)
	return b.String()
}

// KML returns the geometry as a KML geometry element. Coordinates are
// written as they are; KML expects longitude and latitude on WGS 84, so
// callers should transform first. Every collection is written as a
// MultiGeometry.
func (g *Geometry) KML() string {
	var b strings.Builder
	g.writeMarkup(&b, kmlDialect, "")
	return b.String()
}

// dialect holds the element names of one XML geometry encoding.
type dialect struct {
	prefix      string
	multi       map[Type]string
	member      map[Type]string
	outer       string
	inner       string
	coordinates string
}

var gmlDialect = &dialect{
	prefix: "gml:",
	multi: map[Type]string{
		MultiPoint:         "MultiPoint",
		MultiLineString:    "MultiLineString",
		MultiPolygon:       "MultiPolygon",
		GeometryCollection: "MultiGeometry",
	},
	member: map[Type]string{
		MultiPoint:         "pointMember",
		MultiLineString:    "lineStringMember",
		MultiPolygon:       "polygonMember",
		GeometryCollection: "geometryMember",
	},
	outer:       "outerBoundaryIs",
	inner:       "innerBoundaryIs",
	coordinates: "coordinates",
}

var kmlDialect = &dialect{
	multi: map[Type]string{
		MultiPoint:         "MultiGeometry",
		MultiLineString:    "MultiGeometry",
		MultiPolygon:       "MultiGeometry",
		GeometryCollection: "MultiGeometry",
	},
	outer:       "outerBoundaryIs",
	inner:       "innerBoundaryIs",
	coordinates: "coordinates",
}

func (d *dialect) open(b *strings.Builder, name, srsName string) {
	b.WriteByte('<')
	b.WriteString(d.prefix)
	b.WriteString(name)
	if srsName != "" {
		b.WriteString(` srsName="`)
		b.WriteString(srsName)
		b.WriteByte('"')
	}
	b.WriteByte('>')
}

func (d *dialect) close(b *strings.Builder, name string) {
	b.WriteString("</")
	b.WriteString(d.prefix)
	b.WriteString(name)
	b.WriteByte('>')
}

func (g *Geometry) writeMarkup(b *strings.Builder, d *dialect, srsName string) {
	switch g.typ {
	case Point, LineString, LinearRing:
		name := typeNames[g.typ]
		d.open(b, name, srsName)
		if len(g.coords) > 0 {
			d.writeCoordinates(b, g.coords, g.is3D)
		}
		d.close(b, name)
	case Polygon:
		d.open(b, "Polygon", srsName)
		for i, r := range g.parts {
			boundary := d.outer
			if i > 0 {
				boundary = d.inner
			}
			d.open(b, boundary, "")
			d.open(b, "LinearRing", "")
			d.writeCoordinates(b, r.coords, g.is3D)
			d.close(b, "LinearRing")
			d.close(b, boundary)
		}
		d.close(b, "Polygon")
	default:
		name := d.multi[g.typ]
		member := d.member[g.typ]
		d.open(b, name, srsName)
		for _, p := range g.parts {
			if member != "" {
				d.open(b, member, "")
			}
			p.writeMarkup(b, d, "")
			if member != "" {
				d.close(b, member)
			}
		}
		d.close(b, name)
	}
}

func (d *dialect) writeCoordinates(b *strings.Builder, coords []Coord, is3D bool) {
	d.open(b, d.coordinates, "")
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatNumber(c.X))
		b.WriteByte(',')
		b.WriteString(formatNumber(c.Y))
		if is3D {
			b.WriteByte(',')
			b.WriteString(formatNumber(c.Z))
		}
	}
	d.close(b, d.coordinates)
}
