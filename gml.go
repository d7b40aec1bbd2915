// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/gogama/geokit/srs"
)

// xmlNode is a parsed XML element with namespace prefixes dropped.
type xmlNode struct {
	name     string
	attrs    map[string]string
	text     strings.Builder
	children []*xmlNode
}

func parseXML(s string) (*xmlNode, error) {
	dec := xml.NewDecoder(strings.NewReader(s))
	var stack []*xmlNode
	var root *xmlNode
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{name: t.Name.Local, attrs: make(map[string]string)}
			for _, a := range t.Attr {
				n.attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, xml.UnmarshalError("no root element")
	}
	return root, nil
}

func (n *xmlNode) child(names ...string) *xmlNode {
	for _, c := range n.children {
		for _, name := range names {
			if c.name == name {
				return c
			}
		}
	}
	return nil
}

var markupGeometries = map[string]bool{
	"Point":           true,
	"LineString":      true,
	"LinearRing":      true,
	"Polygon":         true,
	"Surface":         true,
	"MultiPoint":      true,
	"MultiLineString": true,
	"MultiCurve":      true,
	"MultiPolygon":    true,
	"MultiSurface":    true,
	"MultiGeometry":   true,
}

// FromGML parses a GML 2 or GML 3 geometry fragment: Point,
// LineString, LinearRing, Polygon, MultiPoint, MultiLineString,
// MultiCurve, MultiPolygon, MultiSurface and MultiGeometry, with
// coordinates given by coordinates, pos or posList elements. An
// srsName attribute that the default catalog can resolve becomes the
// geometry's spatial reference. KML geometry elements are accepted too.
// Returns an error wrapping ErrParse on malformed input.
func FromGML(s string) (*Geometry, error) {
	root, err := parseXML(s)
	if err != nil {
		return nil, kindErr(ErrParse, "GML: %v", err)
	}
	g, err := fromGMLNode(root)
	if err != nil {
		return nil, err
	}
	if name := root.attrs["srsName"]; name != "" {
		if ref, err := srs.FromUserInput(name); err == nil {
			g.AssignSRS(ref)
		}
	}
	return g, nil
}

func fromGMLNode(n *xmlNode) (*Geometry, error) {
	var g *Geometry
	switch n.name {
	case "Point":
		g = Create(Point)
		coords, is3D, err := gmlCoords(n)
		if err != nil {
			return nil, err
		}
		if len(coords) > 1 {
			return nil, kindErr(ErrParse, "GML: point has %d coordinates", len(coords))
		}
		g.coords, g.is3D = coords, is3D
	case "LineString", "LinearRing":
		g = Create(LineString)
		if n.name == "LinearRing" {
			g = Create(LinearRing)
		}
		coords, is3D, err := gmlCoords(n)
		if err != nil {
			return nil, err
		}
		g.coords, g.is3D = coords, is3D
	case "Polygon", "Surface":
		g = Create(Polygon)
		for _, c := range n.children {
			switch c.name {
			case "outerBoundaryIs", "exterior", "innerBoundaryIs", "interior":
			default:
				continue
			}
			ringNode := c.child("LinearRing")
			if ringNode == nil {
				return nil, kindErr(ErrParse, "GML: %s without LinearRing", c.name)
			}
			r, err := fromGMLNode(ringNode)
			if err != nil {
				return nil, err
			}
			if err = g.AddGeometry(r); err != nil {
				return nil, kindErr(ErrParse, "GML: %v", err)
			}
		}
	case "MultiPoint", "MultiLineString", "MultiCurve", "MultiPolygon", "MultiSurface", "MultiGeometry":
		g = Create(map[string]Type{
			"MultiPoint":      MultiPoint,
			"MultiLineString": MultiLineString,
			"MultiCurve":      MultiLineString,
			"MultiPolygon":    MultiPolygon,
			"MultiSurface":    MultiPolygon,
			"MultiGeometry":   GeometryCollection,
		}[n.name])
		for _, m := range n.children {
			// A member element holds one geometry; a members element
			// holds several. KML nests geometries directly.
			members := m.children
			if !strings.HasSuffix(m.name, "Member") && !strings.HasSuffix(m.name, "Members") {
				if !markupGeometries[m.name] {
					continue
				}
				members = []*xmlNode{m}
			}
			for _, c := range members {
				p, err := fromGMLNode(c)
				if err != nil {
					return nil, err
				}
				if err = g.AddGeometry(p); err != nil {
					return nil, kindErr(ErrParse, "GML: %v", err)
				}
			}
		}
	default:
		return nil, kindErr(ErrParse, "GML: unsupported element %s", n.name)
	}
	return g, nil
}

// gmlCoords reads the coordinates of a primitive from its coordinates,
// pos or posList children.
func gmlCoords(n *xmlNode) ([]Coord, bool, error) {
	if c := n.child("coordinates"); c != nil {
		return parseTuples(c.text.String(), c.attrs["cs"], c.attrs["ts"])
	}
	var values []string
	dim := 0
	for _, c := range n.children {
		if c.name != "pos" && c.name != "posList" {
			continue
		}
		fields := strings.Fields(c.text.String())
		if d, err := strconv.Atoi(c.attrs["srsDimension"]); err == nil {
			dim = d
		} else if c.name == "pos" {
			dim = len(fields)
		}
		values = append(values, fields...)
	}
	if len(values) == 0 {
		return nil, false, nil
	}
	if dim == 0 {
		dim = 2
	}
	if dim != 2 && dim != 3 || len(values)%dim != 0 {
		return nil, false, kindErr(ErrParse, "GML: %d values in dimension %d", len(values), dim)
	}
	coords := make([]Coord, len(values)/dim)
	for i := range coords {
		v := make([]float64, dim)
		for j := range v {
			f, err := strconv.ParseFloat(values[i*dim+j], 64)
			if err != nil {
				return nil, false, kindErr(ErrParse, "GML: %v", err)
			}
			v[j] = f
		}
		coords[i].X, coords[i].Y = v[0], v[1]
		if dim == 3 {
			coords[i].Z = v[2]
		}
	}
	return coords, dim == 3, nil
}

// parseTuples parses "x,y[,z] x,y[,z] ..." with the given separators,
// which default to a comma and white space.
func parseTuples(s, cs, ts string) ([]Coord, bool, error) {
	if cs == "" {
		cs = ","
	}
	var tuples []string
	if ts == "" || strings.TrimSpace(ts) == "" {
		tuples = strings.Fields(s)
	} else {
		tuples = strings.Split(strings.TrimSpace(s), ts)
	}
	var coords []Coord
	is3D := false
	for _, t := range tuples {
		fields := strings.Split(strings.TrimSpace(t), cs)
		if len(fields) < 2 || len(fields) > 3 {
			return nil, false, kindErr(ErrParse, "GML: bad coordinate tuple %q", t)
		}
		var v [3]float64
		for i, field := range fields {
			f, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, false, kindErr(ErrParse, "GML: %v", err)
			}
			v[i] = f
		}
		is3D = is3D || len(fields) == 3
		coords = append(coords, Coord{X: v[0], Y: v[1], Z: v[2]})
	}
	return coords, is3D, nil
}
