// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"errors"
	"fmt"
)

// ErrTooLarge is returned when the node count of a requested tree
// cannot be represented as an int.
var ErrTooLarge = textErr("total node count overflows int")

const packageName = "packedrtree: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
