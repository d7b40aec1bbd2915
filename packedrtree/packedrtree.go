// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"fmt"
	"math"
)

// A Ref is a single item within the PackedRTree. Each Ref consists of
// the bounding box of the indexed item plus an ID chosen by the caller
// to locate the item again, typically its index in the caller's own
// slice.
type Ref struct {
	Box

	// ID identifies the referenced item.
	ID int
}

// String returns a summary of the reference.
func (r Ref) String() string {
	return fmt.Sprintf("Ref{%s,ID:%d}", r.Box, r.ID)
}

// A node is a private version of Ref used to (hopefully) reduce
// confusion. A leaf node is exactly the same as a Ref and has the
// same meaning. A non-leaf node is subtly different: the Box is the
// extent of the entire subtree rooted at the non-leaf node; and the
// ID is the node index of the node's first child node.
type node struct {
	Ref
}

func validateParams(numRefs int, nodeSize uint16) {
	if numRefs < 1 {
		fmtPanic("empty tree not allowed (num refs is %d, must be > 0)", numRefs)
	} else if nodeSize < 2 {
		fmtPanic("node size must be at least 2 (got %d)", nodeSize)
	}
}

// NumNodes returns the total number of nodes, leaf and internal, in a
// packed Hilbert R-Tree having a given reference count and node size.
// Panics if numRefs is less than 1 or nodeSize is less than 2, and
// returns an error if integer overflow occurs.
func NumNodes(numRefs int, nodeSize uint16) (int, error) {
	validateParams(numRefs, nodeSize)
	levels, err := levelify(numRefs, int(nodeSize))
	if err != nil {
		return 0, err
	}
	return levels[0].end, nil
}

// totalNodes sums numRefs and numInternal, returning an error if
// integer overflow occurs.
func totalNodes(numRefs, numInternal int) (n int, err error) {
	if numInternal > math.MaxInt-numRefs {
		err = ErrTooLarge
	} else {
		n = numRefs + numInternal
	}
	return
}

// A levelRange represents the range of node indices that comprise a
// level. Each levelRange is a closed/open node index pair [start, end)
// where start is the index (into packedRTree's nodes list) of the first
// node in the level and end is the index that is one past the last node
// in the level.
type levelRange struct {
	start, end int
}

// levelify creates the list of levelRange structures which
// deterministically results from a given leaf node count (numRefs) and
// child node count (nodeSize).
//
// For example, assume numRefs = 4, nodeSize = 2. The output of this
// function will be [[3, 7], [1, 3], [0, 1]], where first item in the
// list represents the leaf node level, and the last item in the list is
// the root level.
func levelify(numRefs, nodeSize int) ([]levelRange, error) {
	var numInternal int

	// Node counts per level, leaf level first. For numRefs = 4,
	// nodeSize = 2 this is [4, 2, 1].
	nodesThisLevel := numRefs
	nodesPerLevel := make([]int, 1, 16)
	nodesPerLevel[0] = nodesThisLevel
	for {
		if nodesThisLevel%nodeSize == 0 {
			nodesThisLevel /= nodeSize
		} else {
			nodesThisLevel = nodesThisLevel/nodeSize + 1
		}
		nodesPerLevel = append(nodesPerLevel, nodesThisLevel)
		numInternal += nodesThisLevel
		if nodesThisLevel == 1 {
			break
		}
	}

	numNodes, err := totalNodes(numRefs, numInternal)
	if err != nil {
		return nil, err
	}

	// The root is stored first and the leaves last, so each level
	// starts where the sum of the levels above it ends.
	levels := make([]levelRange, len(nodesPerLevel))
	nodesRemaining := numNodes
	for i := range nodesPerLevel {
		nodesRemaining -= nodesPerLevel[i]
		levels[i].start = nodesRemaining
		levels[i].end = nodesRemaining + nodesPerLevel[i]
	}
	return levels, nil
}

// A ticket is a pending work item to be executed during a search loop.
type ticket struct {
	// nodeIndex is the index of the first node to search.
	nodeIndex int
	// level is the R-Tree level that nodeIndex belongs to. Recall that
	// level 0 contains the leaf nodes.
	level int
}

// Result is a single index search result.
type Result struct {
	// ID is the ID of the matching Ref.
	ID int
	// RefIndex of the matching Ref in the Hilbert-sorted list of Ref
	// values passed to New when creating the PackedRTree.
	RefIndex int
}

// Results is a slice of Result structures which implements
// sort.Interface. The sort.Sort function will sort Results in
// ascending order of Result.ID.
type Results []Result

// Len returns the length of the slice. It implements the corresponding
// method of sort.Interface.
func (rs Results) Len() int {
	return len(rs)
}

// Less establishes an absolute ordering by ascending order of
// Result.ID. It implements the corresponding method of sort.Interface.
func (rs Results) Less(i, j int) bool {
	return rs[i].ID < rs[j].ID
}

// Swap swaps two elements of the slice. It implements the corresponding
// method of sort.Interface.
func (rs Results) Swap(i, j int) {
	rs[i], rs[j] = rs[j], rs[i]
}

// PackedRTree is a packed Hilbert R-Tree.
type PackedRTree struct {
	// numRefs is the number of leaf nodes, i.e. Ref values, in the
	// tree.
	numRefs int
	// nodeSize is the number of child nodes per parent node.
	nodeSize int
	// levels is the list of levelRange boundaries. The leaf nodes are
	// at levels[0] and the root node is at levels[len(levels)-1].
	levels []levelRange
	// nodes is the complete list of nodes in the tree, including
	// internal and leaf nodes.
	nodes []node
}

// New creates a new packed Hilbert R-Tree from a non-empty list of
// references and a given R-Tree node size. Panics if the reference list
// is empty or node size is less than 2.
//
// Search results are correct for any input order, but the tree is only
// efficient if refs is Hilbert-sorted. Use HilbertSort to sort it.
func New(refs []Ref, nodeSize uint16) (*PackedRTree, error) {
	validateParams(len(refs), nodeSize)

	levels, err := levelify(len(refs), int(nodeSize))
	if err != nil {
		return nil, err
	}

	prt := &PackedRTree{
		numRefs:  len(refs),
		nodeSize: int(nodeSize),
		levels:   levels,
		nodes:    make([]node, levels[0].end),
	}

	// Save copies of the leaf nodes.
	i := prt.levels[0].start
	for j := range refs {
		prt.nodes[i] = node{refs[j]}
		i++
	}

	// Generate the internal nodes, bottom up.
	for i = 0; i < len(prt.levels)-1; i++ {
		level := prt.levels[i]
		nodeIndex := level.start
		parentIndex := prt.levels[i+1].start
		for nodeIndex < level.end {
			parent := &prt.nodes[parentIndex]
			*parent = node{Ref: Ref{Box: EmptyBox, ID: nodeIndex}}
			for j := 0; j < prt.nodeSize && nodeIndex < level.end; j++ {
				parent.Expand(&prt.nodes[nodeIndex].Box)
				nodeIndex++
			}
			parentIndex++
		}
	}

	return prt, nil
}

// Bounds returns the bounding box around all references in the tree.
func (prt *PackedRTree) Bounds() Box {
	return prt.nodes[0].Box
}

// NumRefs returns the number of references stored in the tree.
func (prt *PackedRTree) NumRefs() int {
	return prt.numRefs
}

// NodeSize returns the child node count of the tree.
func (prt *PackedRTree) NodeSize() uint16 {
	return uint16(prt.nodeSize)
}

// String returns a summary description of the tree.
func (prt *PackedRTree) String() string {
	return fmt.Sprintf("PackedRTree{Bounds:%s,NumRefs:%d,NodeSize:%d}", prt.Bounds(), prt.numRefs, prt.nodeSize)
}

// Visit calls f for every reference whose box intersects b, stopping
// early if f returns false. The visiting order is not defined.
func (prt *PackedRTree) Visit(b Box, f func(r Result) bool) {
	if f == nil {
		fmtPanic("nil visitor")
	}

	q := make([]ticket, 1, 16)
	q[0] = ticket{nodeIndex: 0, level: len(prt.levels) - 1}
	leafStart := prt.levels[0].start

	for len(q) > 0 {
		t := q[len(q)-1]
		q = q[:len(q)-1]

		end := t.nodeIndex + prt.nodeSize
		if prt.levels[t.level].end < end {
			end = prt.levels[t.level].end
		}
		isLeafLevel := t.nodeIndex >= leafStart

		for pos := t.nodeIndex; pos < end; pos++ {
			n := &prt.nodes[pos]
			if !b.Intersects(&n.Box) {
				continue
			} else if isLeafLevel {
				if !f(Result{ID: n.ID, RefIndex: pos - leafStart}) {
					return
				}
			} else {
				q = append(q, ticket{nodeIndex: n.ID, level: t.level - 1})
			}
		}
	}
}

// Search returns every reference whose box intersects b. The order of
// the search results is not defined.
func (prt *PackedRTree) Search(b Box) Results {
	r := make(Results, 0)
	prt.Visit(b, func(x Result) bool {
		r = append(r, x)
		return true
	})
	return r
}
