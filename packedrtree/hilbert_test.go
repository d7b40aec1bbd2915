// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hilbertInputs are spread over the four quadrants of the extent
// [-10,-10,10,10].
//
// ...	[B]                 ^                  [C]
// ...	                    |
// ... <--------------------+-------------------->
// ...                      | [D]
// ...                      |                  [E]
// ... [A]                  v                  [F]
var hilbertInputs = []struct {
	name string
	b    Box
}{
	{"A", Box{-10, -10, -8, -8}},
	{"B", Box{-10, 8, -8, 10}},
	{"C", Box{8, 8, 10, 10}},
	{"D", Box{1, -2, 2, -1}},
	{"E", Box{8, -8, 10, -6}},
	{"F", Box{8, -10, 10, -8}},
}

func hilbertInputRefs() ([]Ref, Box) {
	refs := make([]Ref, len(hilbertInputs))
	bounds := EmptyBox
	for i := range hilbertInputs {
		refs[i] = Ref{Box: hilbertInputs[i].b, ID: i}
		bounds.Expand(&hilbertInputs[i].b)
	}
	return refs, bounds
}

func TestHilbertSortable(t *testing.T) {
	t.Run("Len", func(t *testing.T) {
		var zero hilbertSortable
		value := hilbertSortable{refs: make([]Ref, 6), keys: make([]uint32, 6)}

		assert.Equal(t, 0, zero.Len())
		assert.Equal(t, 6, value.Len())
	})

	t.Run("Less", func(t *testing.T) {
		hs := hilbertSortable{refs: make([]Ref, 3), keys: []uint32{5, 9, 5}}

		assert.True(t, hs.Less(1, 0))
		assert.False(t, hs.Less(0, 1))
		assert.False(t, hs.Less(0, 2))
		assert.False(t, hs.Less(0, 0))
	})

	t.Run("Swap", func(t *testing.T) {
		zero := Ref{}
		one := Ref{Box{1, 1, 1, 1}, 1}
		hs := hilbertSortable{refs: []Ref{zero, one}, keys: []uint32{10, 20}}

		hs.Swap(0, 1)

		assert.Equal(t, []Ref{one, zero}, hs.refs)
		assert.Equal(t, []uint32{20, 10}, hs.keys)
	})
}

func TestHilbertSort(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		var refs []Ref

		HilbertSort(refs, EmptyBox)

		assert.Empty(t, refs)
	})

	t.Run("Singleton", func(t *testing.T) {
		ref := Ref{
			Box: Box{XMin: -1, YMin: -1, XMax: 1, YMax: 1},
			ID:  555,
		}
		refs := []Ref{ref}

		HilbertSort(refs, ref.Box)

		assert.Equal(t, []Ref{ref}, refs)
	})

	t.Run("hilbertInputs", func(t *testing.T) {
		refs, bounds := hilbertInputRefs()

		HilbertSort(refs, bounds)

		require.Len(t, refs, len(hilbertInputs))
		ids := make([]int, len(refs))
		for i := range refs {
			ids[i] = refs[i].ID
			assert.Equal(t, hilbertInputs[refs[i].ID].b, refs[i].Box)
		}
		sort.Ints(ids)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, ids, "Sort must be a permutation.")

		isReverseSorted := sort.SliceIsSorted(refs, func(i, j int) bool {
			hi := hilbertFromBox(&refs[i].Box, bounds.XMin, bounds.YMin, bounds.Width(), bounds.Height())
			hj := hilbertFromBox(&refs[j].Box, bounds.XMin, bounds.YMin, bounds.Width(), bounds.Height())
			return hi > hj
		})
		assert.True(t, isReverseSorted, "Slice should be sorted by descending Hilbert index, but is not.")
	})
}

func TestHilbertFromBox(t *testing.T) {
	t.Run("ZeroWidth", func(t *testing.T) {
		actual := hilbertFromBox(&Box{0, 0, 0, 0}, 0, 0, 0, 10)

		assert.Equal(t, uint32(0), actual)
	})

	t.Run("ZeroHeight", func(t *testing.T) {
		actual := hilbertFromBox(&Box{0, 0, 0, 0}, 0, 0, 10, 0)

		assert.Equal(t, uint32(0), actual)
	})

	t.Run("Distinct", func(t *testing.T) {
		refs, bounds := hilbertInputRefs()
		seen := make(map[uint32]string)
		for i := range refs {
			h := hilbertFromBox(&refs[i].Box, bounds.XMin, bounds.YMin, bounds.Width(), bounds.Height())
			prev, ok := seen[h]
			assert.False(t, ok, "%s has the same Hilbert index as %s", hilbertInputs[i].name, prev)
			seen[h] = hilbertInputs[i].name
		}
	})
}

func TestHilbertCoord(t *testing.T) {
	testCases := []struct {
		name     string
		input    float64
		expected uint32
	}{
		{"Zero", 0, 0},
		{"Negative", -0.5, 0},
		{"One", 1, hilbertMax},
		{"AboveOne", 2, hilbertMax},
		{"Half", 0.5, hilbertMax / 2},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, hilbertCoord(testCase.input))
		})
	}
}

func TestHilbertFromXY(t *testing.T) {
	testCases := []struct {
		name     string
		x, y     uint32
		expected uint32
	}{
		{name: "Zero"},
		{name: "OneX", x: 1, y: 0, expected: 1},
		{name: "OneXY", x: 1, y: 1, expected: 2},
		{name: "OneY", x: 0, y: 1, expected: 3},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := hilbertFromXY(testCase.x, testCase.y)

			assert.Equal(t, testCase.expected, actual)
		})
	}
}
