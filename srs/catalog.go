// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"sort"
	"strconv"
	"sync"
)

// An Entry is one coordinate reference system definition in a Catalog,
// keyed by its EPSG code. Exactly one of Proj4 and WKT should be set;
// WKT wins when both are.
type Entry struct {
	Code  int
	Name  string
	Kind  Kind
	Proj4 string
	WKT   string
	// LatLong marks a geographic entry whose authority axis order is
	// latitude first.
	LatLong bool
	// NorthingEasting marks a projected entry whose authority axis
	// order is northing first.
	NorthingEasting bool
}

// Catalog is an immutable lookup table of EPSG definitions. A Catalog
// is safe for concurrent use.
type Catalog struct {
	entries map[int]Entry
	defs    map[int]*definition
	codes   []int
}

// NewCatalog creates a catalog holding the given entries. Later
// entries replace earlier entries with the same code. An error
// wrapping ErrParse is returned if an entry cannot be parsed.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[int]Entry, len(entries)),
		defs:    make(map[int]*definition, len(entries)),
	}
	if err := c.add(entries); err != nil {
		return nil, err
	}
	return c, nil
}

// With returns a new catalog containing the entries of c plus the
// given entries, which replace entries of c having the same code. The
// receiver is not modified.
func (c *Catalog) With(entries ...Entry) (*Catalog, error) {
	n := &Catalog{
		entries: make(map[int]Entry, len(c.entries)+len(entries)),
		defs:    make(map[int]*definition, len(c.defs)+len(entries)),
	}
	for code, e := range c.entries {
		n.entries[code] = e
		n.defs[code] = c.defs[code]
	}
	if err := n.add(entries); err != nil {
		return nil, err
	}
	return n, nil
}

func (c *Catalog) add(entries []Entry) error {
	for _, e := range entries {
		d, err := c.parseEntry(e)
		if err != nil {
			return wrapErr("catalog entry %d", err, e.Code)
		}
		if e.Kind == KindEmpty {
			e.Kind = d.kind
		}
		c.entries[e.Code] = e
		c.defs[e.Code] = d
	}
	c.codes = make([]int, 0, len(c.entries))
	for code := range c.entries {
		c.codes = append(c.codes, code)
	}
	sort.Ints(c.codes)
	return nil
}

func (c *Catalog) parseEntry(e Entry) (*definition, error) {
	var d *definition
	if e.WKT != "" {
		n, err := parseWKTTree(e.WKT)
		if err != nil {
			return nil, err
		}
		if d, err = parseDefinition(n); err != nil {
			return nil, err
		}
	} else if e.Proj4 != "" {
		var err error
		if d, err = c.parseProj4(e.Proj4); err != nil {
			return nil, err
		}
		if e.Name != "" {
			d.setName(e.Name)
		}
		if e.LatLong && d.kind == KindGeographic {
			d.geog.axes = latLongAxes()
		} else if e.NorthingEasting && d.kind == KindProjected {
			d.axes = northEastAxes()
		}
	} else {
		return nil, parseErr("entry has neither WKT nor proj4")
	}
	d.setAuthority(epsg(strconv.Itoa(e.Code)))
	return d, nil
}

// Entry returns the entry with the given code.
func (c *Catalog) Entry(code int) (Entry, bool) {
	e, ok := c.entries[code]
	return e, ok
}

// Codes returns the codes of all entries in ascending order.
func (c *Catalog) Codes() []int {
	return append([]int(nil), c.codes...)
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int {
	return len(c.codes)
}

// lookup returns a private copy of the definition for code. If
// authorityAxes is false, axis declarations that would make a
// reference latitude-first or northing-first are removed, giving the
// traditional GIS axis order.
func (c *Catalog) lookup(code int, authorityAxes bool) (*definition, error) {
	d, ok := c.defs[code]
	if !ok {
		return nil, parseErr("EPSG code %d not in catalog", code)
	}
	d = d.clone()
	if authorityAxes {
		return d, nil
	}
	e := c.entries[code]
	d.stripLatLongAxes()
	if e.NorthingEasting && d.kind == KindProjected {
		d.axes = nil
	}
	return d, nil
}

func (d *definition) stripLatLongAxes() {
	switch d.kind {
	case KindGeographic, KindProjected:
		d.geog.axes = nil
	case KindCompound:
		if d.head != nil {
			d.head.stripLatLongAxes()
		}
	}
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog()
	if err != nil {
		panic(err)
	}
	for _, b := range defaultEntries() {
		d := b.def
		e := Entry{
			Code:            b.code,
			Name:            d.name,
			Kind:            d.kind,
			WKT:             d.tree().String(),
			LatLong:         b.latLong,
			NorthingEasting: b.northingEasting,
		}
		if p4, err := d.proj4(); err == nil {
			e.Proj4 = p4
		}
		c.entries[b.code] = e
		c.defs[b.code] = d
		c.codes = append(c.codes, b.code)
	}
	sort.Ints(c.codes)
	return c
})

// DefaultCatalog returns the built-in catalog. It is built on first use
// and never modified afterwards.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}
