// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"strconv"
	"strings"
)

// A node is one element of a WKT tree. Keyword nodes have a name and
// children; value nodes are leaves holding a quoted string or a bare
// token such as a number or an axis direction.
type node struct {
	value    string
	quoted   bool
	children []*node
}

func keyword(name string, children ...*node) *node {
	return &node{value: name, children: children}
}

func quoted(s string) *node {
	return &node{value: s, quoted: true}
}

func bare(s string) *node {
	return &node{value: s}
}

func number(f float64) *node {
	return &node{value: formatNumber(f)}
}

// formatNumber renders a float the way WKT writers conventionally do:
// shortest exact decimal, no exponent for ordinary magnitudes.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	a := f
	if a < 0 {
		a = -a
	}
	if a >= 1e-6 && a < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func authorityNode(a authority) *node {
	return keyword("AUTHORITY", quoted(a.name), quoted(a.code))
}

// isKeyword reports whether n is a keyword node, i.e. has children.
func (n *node) isKeyword() bool {
	return len(n.children) > 0
}

// child returns the first child keyword node with the given name,
// ignoring case, or nil.
func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.isKeyword() && strings.EqualFold(c.value, name) {
			return c
		}
	}
	return nil
}

// find searches the tree rooted at n depth-first for a keyword node
// with the given name, ignoring case. n itself is a candidate.
func (n *node) find(name string) *node {
	if n.isKeyword() && strings.EqualFold(n.value, name) {
		return n
	}
	for _, c := range n.children {
		if f := c.find(name); f != nil {
			return f
		}
	}
	return nil
}

// path resolves a "|" separated node path such as "PROJCS|GEOGCS|DATUM".
// The first element may match n itself. An empty path is n.
func (n *node) path(p string) *node {
	if p == "" {
		return n
	}
	parts := strings.Split(p, "|")
	if len(parts) == 1 {
		return n.find(parts[0])
	}
	cur := n
	if strings.EqualFold(cur.value, parts[0]) {
		parts = parts[1:]
	}
	for _, part := range parts {
		cur = cur.child(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// strip removes, recursively, every child keyword node whose name is
// in names.
func (n *node) strip(names ...string) {
	kept := n.children[:0]
	for _, c := range n.children {
		drop := false
		if c.isKeyword() {
			for _, name := range names {
				if strings.EqualFold(c.value, name) {
					drop = true
					break
				}
			}
		}
		if !drop {
			c.strip(names...)
			kept = append(kept, c)
		}
	}
	n.children = kept
}

// String returns the single line WKT of the tree.
func (n *node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *node) write(b *strings.Builder) {
	n.writeValue(b)
	if !n.isKeyword() {
		return
	}
	b.WriteByte('[')
	for i, c := range n.children {
		if i > 0 {
			b.WriteByte(',')
		}
		c.write(b)
	}
	b.WriteByte(']')
}

func (n *node) writeValue(b *strings.Builder) {
	if !n.quoted {
		b.WriteString(n.value)
		return
	}
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(n.value, `"`, `""`))
	b.WriteByte('"')
}

// pretty returns multi-line WKT. Keyword children start on a new line
// indented four spaces deeper than their parent.
func (n *node) pretty() string {
	var b strings.Builder
	n.writePretty(&b, 0)
	return b.String()
}

func (n *node) writePretty(b *strings.Builder, depth int) {
	n.writeValue(b)
	if !n.isKeyword() {
		return
	}
	b.WriteByte('[')
	for i, c := range n.children {
		if i > 0 {
			b.WriteByte(',')
		}
		if c.isKeyword() {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("    ", depth+1))
		}
		c.writePretty(b, depth+1)
	}
	b.WriteByte(']')
}

// wktParser is a recursive descent parser for OGC WKT1. Both square
// brackets and parentheses delimit child lists.
type wktParser struct {
	s   string
	pos int
}

func parseWKTTree(s string) (*node, error) {
	p := wktParser{s: s}
	n, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, parseErr("unexpected text after WKT at offset %d", p.pos)
	}
	if !n.isKeyword() {
		return nil, parseErr("WKT root %q is not a keyword", n.value)
	}
	return n, nil
}

func (p *wktParser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *wktParser) parseNode() (*node, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return nil, parseErr("unexpected end of WKT")
	}

	if p.s[p.pos] == '"' {
		v, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		return quoted(v), nil
	}

	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune(",[]() \t\n\r\"", rune(p.s[p.pos])) {
		p.pos++
	}
	if start == p.pos {
		return nil, parseErr("unexpected %q at offset %d", p.s[p.pos], p.pos)
	}
	n := bare(p.s[start:p.pos])

	p.skipSpace()
	if p.pos >= len(p.s) || (p.s[p.pos] != '[' && p.s[p.pos] != '(') {
		return n, nil
	}
	open := p.s[p.pos]
	closer := byte(']')
	if open == '(' {
		closer = ')'
	}
	p.pos++
	n.children = make([]*node, 0, 4)
	for {
		c, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, c)
		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil, parseErr("unterminated %s node", n.value)
		}
		switch p.s[p.pos] {
		case ',':
			p.pos++
		case closer:
			p.pos++
			return n, nil
		default:
			return nil, parseErr("unexpected %q in %s node at offset %d", p.s[p.pos], n.value, p.pos)
		}
	}
}

func (p *wktParser) parseQuoted() (string, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		p.pos++
		if c != '"' {
			b.WriteByte(c)
		} else if p.pos < len(p.s) && p.s[p.pos] == '"' {
			b.WriteByte('"')
			p.pos++
		} else {
			return b.String(), nil
		}
	}
	return "", parseErr("unterminated quoted string")
}
