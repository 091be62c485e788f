/*
Copyright © 2019 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package transform implements math transforms: functions that convert
// coordinate tuples between two coordinate spaces. Transforms are immutable
// and safe for concurrent use.
package transform

import (
	"fmt"
	"math"

	"github.com/spatialmodel/georef"
	"github.com/spatialmodel/georef/matrix"
)

// MathTransform converts points from a source coordinate space with
// SourceDimensions ordinates to a target space with TargetDimensions
// ordinates.
type MathTransform interface {
	SourceDimensions() int
	TargetDimensions() int

	// Transform converts numPts points read from src starting at srcOff
	// and writes them to dst starting at dstOff. src and dst may be the
	// same slice. If some points cannot be converted their output ordinates
	// are set to NaN, the remaining points are still converted, and the
	// first error is returned.
	Transform(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error

	// Inverse returns the inverse transform. The result is computed once
	// and cached, and the inverse of the inverse is the receiver.
	Inverse() (MathTransform, error)

	// Derivative returns the TargetDimensions x SourceDimensions Jacobian
	// matrix of the transform at point.
	Derivative(point []float64) (*matrix.Matrix, error)

	IsIdentity() bool
}

// TransformPoint converts a single point.
func TransformPoint(t MathTransform, point []float64) ([]float64, error) {
	if len(point) != t.SourceDimensions() {
		return nil, &georef.DimensionMismatchError{Op: "transform.TransformPoint", Want: t.SourceDimensions(), Got: len(point)}
	}
	out := make([]float64, t.TargetDimensions())
	if err := t.Transform(point, 0, out, 0, 1); err != nil {
		return out, err
	}
	return out, nil
}

// TransformAll converts a packed slice of points and returns a new slice.
func TransformAll(t MathTransform, coords []float64) ([]float64, error) {
	sd := t.SourceDimensions()
	if len(coords)%sd != 0 {
		return nil, &georef.DimensionMismatchError{Op: "transform.TransformAll", Want: sd, Got: len(coords) % sd}
	}
	n := len(coords) / sd
	out := make([]float64, n*t.TargetDimensions())
	err := t.Transform(coords, 0, out, 0, n)
	return out, err
}

// pointFunc converts one point from in to out. in and out never overlap.
type pointFunc func(in, out []float64) error

// transformPoints drives a pointFunc over a batch, checking the buffer
// bounds and handling overlapping source and destination regions.
func transformPoints(op string, srcDim, dstDim int, f pointFunc, src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	if err := checkBuffers(op, srcDim, dstDim, src, srcOff, dst, dstOff, numPts); err != nil {
		return err
	}
	if numPts == 0 {
		return nil
	}
	if sameArray(src, dst) {
		tmp := make([]float64, numPts*srcDim)
		copy(tmp, src[srcOff:srcOff+numPts*srcDim])
		src, srcOff = tmp, 0
	}
	var firstErr error
	out := make([]float64, dstDim)
	for i := 0; i < numPts; i++ {
		in := src[srcOff+i*srcDim : srcOff+(i+1)*srcDim]
		if err := f(in, out); err != nil {
			for j := range out {
				out[j] = math.NaN()
			}
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: point %d: %w", op, i, err)
			}
		}
		copy(dst[dstOff+i*dstDim:], out)
	}
	return firstErr
}

func checkBuffers(op string, srcDim, dstDim int, src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	if numPts < 0 || srcOff < 0 || dstOff < 0 {
		return fmt.Errorf("georef: %s: negative offset or point count", op)
	}
	if need := srcOff + numPts*srcDim; need > len(src) {
		return &georef.DimensionMismatchError{Op: op + " source", Want: need, Got: len(src)}
	}
	if need := dstOff + numPts*dstDim; need > len(dst) {
		return &georef.DimensionMismatchError{Op: op + " destination", Want: need, Got: len(dst)}
	}
	return nil
}

// sameArray reports whether a and b share a backing array.
func sameArray(a, b []float64) bool {
	if cap(a) == 0 || cap(b) == 0 {
		return false
	}
	return &a[:cap(a)][cap(a)-1] == &b[:cap(b)][cap(b)-1]
}
