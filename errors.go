// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is returned when an operation requires a
	// topologically valid operand and the operand is not valid, for
	// example a self-intersecting polygon passed to Union.
	ErrInvalidGeometry = textErr("invalid geometry")
	// ErrGeometryOperation is returned when an operation is undefined
	// for its operands, for example when the operands have different
	// spatial references.
	ErrGeometryOperation = textErr("geometry operation failed")
	// ErrMissingReference is returned when an operation needs the
	// spatial reference of a geometry and the geometry has none.
	ErrMissingReference = textErr("missing spatial reference")
	// ErrParse is returned when a geometry encoding cannot be decoded.
	ErrParse = textErr("parse error")
)

const packageName = "geokit: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func fmtErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format, a...)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

func kindErr(kind error, format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{kind}, a...)...)
}

func textPanic(text string) {
	panic(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
