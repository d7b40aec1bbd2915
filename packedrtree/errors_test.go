// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("textErr", func(t *testing.T) {
		assert.EqualError(t, textErr("foo"), "packedrtree: foo")
	})

	t.Run("fmtPanic", func(t *testing.T) {
		assert.PanicsWithValue(t, "packedrtree: node size 1 is less than 2", func() {
			fmtPanic("node size %d is less than %d", 1, 2)
		})
	})

	t.Run("ErrTooLarge", func(t *testing.T) {
		_, err := New(make([]Ref, 1), 2)
		assert.NoError(t, err)

		_, err = NumNodes(math.MaxInt, 2)
		assert.ErrorIs(t, err, ErrTooLarge)
	})
}
