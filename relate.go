// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import "strings"

// IntersectionMatrix is a DE-9IM matrix. Entry [a][b] is the dimension
// of the intersection of location a of the first geometry with
// location b of the second, or -1 if they do not intersect.
type IntersectionMatrix [3][3]int

func newIntersectionMatrix() IntersectionMatrix {
	m := IntersectionMatrix{{-1, -1, -1}, {-1, -1, -1}, {-1, -1, -1}}
	m[Exterior][Exterior] = 2
	return m
}

// At returns the dimension of the intersection of location a of the
// first geometry with location b of the second, or -1.
func (m IntersectionMatrix) At(a, b Location) int {
	return m[a][b]
}

func (m *IntersectionMatrix) atLeast(a, b Location, d int) {
	if m[a][b] < d {
		m[a][b] = d
	}
}

// String returns the matrix in row-major order, for example
// "212101212", using F for an empty intersection.
func (m IntersectionMatrix) String() string {
	var b strings.Builder
	for i := range m {
		for j := range m[i] {
			if m[i][j] < 0 {
				b.WriteByte('F')
			} else {
				b.WriteByte(byte('0' + m[i][j]))
			}
		}
	}
	return b.String()
}

// Matches reports whether the matrix matches a nine-character DE-9IM
// pattern. Each character is one of T (non-empty), F (empty), * (any),
// or a dimension 0, 1 or 2. An invalid pattern matches nothing.
func (m IntersectionMatrix) Matches(pattern string) bool {
	if !validPattern(pattern) {
		return false
	}
	for k := 0; k < 9; k++ {
		d := m[k/3][k%3]
		switch c := pattern[k]; c {
		case '*':
		case 'T', 't':
			if d < 0 {
				return false
			}
		case 'F', 'f':
			if d >= 0 {
				return false
			}
		default:
			if d != int(c-'0') {
				return false
			}
		}
	}
	return true
}

func validPattern(pattern string) bool {
	if len(pattern) != 9 {
		return false
	}
	for i := 0; i < 9; i++ {
		if !strings.ContainsRune("TtFf*012", rune(pattern[i])) {
			return false
		}
	}
	return true
}

// relate computes the intersection matrix of two operands.
func relate(pa, pb *parts) IntersectionMatrix {
	m := newIntersectionMatrix()
	eps := tolerance(pa, pb)
	arr := newArrangement(eps)
	arr.add(0, pa)
	arr.add(1, pb)
	arr.build()
	la, lb := newLocator(pa, eps), newLocator(pb, eps)

	for i := range arr.edges {
		e := &arr.edges[i]
		ea := arr.locateEdge(e, 0, la)
		eb := arr.locateEdge(e, 1, lb)
		m.atLeast(ea.on, eb.on, 1)
		m.atLeast(ea.left, eb.left, 2)
		m.atLeast(ea.right, eb.right, 2)
	}
	for _, c := range arr.nodes {
		m.atLeast(la.locate(c), lb.locate(c), 0)
	}
	return m
}

// Relate returns the DE-9IM intersection matrix of g and o. Returns an
// error wrapping ErrInvalidGeometry if a polygonal operand is invalid,
// or ErrGeometryOperation if the operands have different spatial
// references.
func (g *Geometry) Relate(o *Geometry) (IntersectionMatrix, error) {
	if err := checkOperands(g, o, false); err != nil {
		return IntersectionMatrix{}, wrapErr("relate", err)
	}
	return relate(g.flatten(), o.flatten()), nil
}

// RelatePattern reports whether the intersection matrix of g and o
// matches pattern. See IntersectionMatrix.Matches.
func (g *Geometry) RelatePattern(o *Geometry, pattern string) (bool, error) {
	if !validPattern(pattern) {
		return false, kindErr(ErrGeometryOperation, "invalid DE-9IM pattern %q", pattern)
	}
	m, err := g.Relate(o)
	if err != nil {
		return false, err
	}
	return m.Matches(pattern), nil
}

// predicate evaluates f on the intersection matrix of two non-empty
// operands. The result is false if either is empty.
func (g *Geometry) predicate(name string, o *Geometry, f func(m IntersectionMatrix, da, db int) bool) (bool, error) {
	if err := checkOperands(g, o, false); err != nil {
		return false, wrapErr("%s", err, name)
	}
	pa, pb := g.flatten(), o.flatten()
	if pa.isEmpty() || pb.isEmpty() {
		return false, nil
	}
	return f(relate(pa, pb), pa.dimension(), pb.dimension()), nil
}

// Equals reports whether g and o are topologically equal: every point
// of each lies in the other.
func (g *Geometry) Equals(o *Geometry) (bool, error) {
	return g.predicate("equals", o, func(m IntersectionMatrix, _, _ int) bool {
		return m.Matches("T*F**FFF*")
	})
}

// Disjoint reports whether g and o have no point in common. It is true
// if either is empty.
func (g *Geometry) Disjoint(o *Geometry) (bool, error) {
	if err := checkOperands(g, o, false); err != nil {
		return false, wrapErr("disjoint", err)
	}
	pa, pb := g.flatten(), o.flatten()
	if pa.isEmpty() || pb.isEmpty() || !g.Envelope().Intersects(o.Envelope()) {
		return true, nil
	}
	return relate(pa, pb).Matches("FF*FF****"), nil
}

// Intersects reports whether g and o have at least one point in
// common. It is always the negation of Disjoint.
func (g *Geometry) Intersects(o *Geometry) (bool, error) {
	d, err := g.Disjoint(o)
	return !d && err == nil, err
}

// Touches reports whether g and o meet only at their boundaries.
func (g *Geometry) Touches(o *Geometry) (bool, error) {
	return g.predicate("touches", o, func(m IntersectionMatrix, da, db int) bool {
		if da == 0 && db == 0 {
			return false
		}
		return m.Matches("FT*******") || m.Matches("F**T*****") || m.Matches("F***T****")
	})
}

// Crosses reports whether g and o have some but not all interior
// points in common, and the intersection has a lower dimension than
// the higher-dimensional operand.
func (g *Geometry) Crosses(o *Geometry) (bool, error) {
	return g.predicate("crosses", o, func(m IntersectionMatrix, da, db int) bool {
		switch {
		case da < db:
			return m.Matches("T*T******")
		case da > db:
			return m.Matches("T*****T**")
		case da == 1:
			return m.Matches("0********")
		default:
			return false
		}
	})
}

// Within reports whether g lies inside o.
func (g *Geometry) Within(o *Geometry) (bool, error) {
	return g.predicate("within", o, func(m IntersectionMatrix, _, _ int) bool {
		return m.Matches("T*F**F***")
	})
}

// Contains reports whether o lies inside g.
func (g *Geometry) Contains(o *Geometry) (bool, error) {
	return g.predicate("contains", o, func(m IntersectionMatrix, _, _ int) bool {
		return m.Matches("T*****FF*")
	})
}

// Overlaps reports whether g and o have the same dimension, share some
// interior points, and each has points outside the other.
func (g *Geometry) Overlaps(o *Geometry) (bool, error) {
	return g.predicate("overlaps", o, func(m IntersectionMatrix, da, db int) bool {
		switch {
		case da != db:
			return false
		case da == 1:
			return m.Matches("1*T***T**")
		default:
			return m.Matches("T*T***T**")
		}
	})
}

// Covers reports whether no point of o lies outside g.
func (g *Geometry) Covers(o *Geometry) (bool, error) {
	return g.predicate("covers", o, func(m IntersectionMatrix, _, _ int) bool {
		return m.Matches("T*****FF*") || m.Matches("*T****FF*") ||
			m.Matches("***T**FF*") || m.Matches("****T*FF*")
	})
}

// CoveredBy reports whether no point of g lies outside o.
func (g *Geometry) CoveredBy(o *Geometry) (bool, error) {
	return o.Covers(g)
}

// checkOperands verifies that two geometries may take part in a binary
// operation. If strict, a reference on only one side is an error.
func checkOperands(g, o *Geometry, strict bool) error {
	if g == nil || o == nil {
		textPanic("nil geometry")
	}
	switch {
	case g.ref != nil && o.ref != nil:
		if g.ref != o.ref && !g.ref.IsSame(o.ref) {
			return kindErr(ErrGeometryOperation, "operands have different spatial references")
		}
	case strict && (g.ref != nil || o.ref != nil):
		return kindErr(ErrGeometryOperation, "only one operand has a spatial reference")
	}
	if err := g.validatePolygonal(); err != nil {
		return err
	}
	return o.validatePolygonal()
}
