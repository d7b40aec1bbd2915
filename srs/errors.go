// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"errors"
	"fmt"
)

const packageName = "srs: "

var (
	// ErrParse is the error wrapped by every factory function when its
	// input cannot be interpreted as a spatial reference.
	ErrParse = textErr("parse error")

	// ErrIncompatibleReference is returned by NewTransformation when
	// no transformation between the two references can be built.
	ErrIncompatibleReference = textErr("incompatible references")

	// ErrUnsupported indicates that a reference uses a feature, for
	// example a projection method, that the requested operation does
	// not support.
	ErrUnsupported = textErr("unsupported")

	// ErrOutOfDomain indicates a coordinate lies outside the domain of
	// a projection, for example on the far side of an orthographic
	// projection.
	ErrOutOfDomain = textErr("coordinate out of domain")
)

func textErr(text string) error {
	return errors.New(packageName + text)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

// kindErr returns an error wrapping one of the package sentinel
// errors, which already carry the package prefix.
func kindErr(kind error, format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{kind}, a...)...)
}

func parseErr(format string, a ...interface{}) error {
	return kindErr(ErrParse, format, a...)
}

func textPanic(text string) {
	panic(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
