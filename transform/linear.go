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

package transform

import (
	"fmt"
	"sync"

	"github.com/spatialmodel/georef"
	"github.com/spatialmodel/georef/matrix"
)

// identityTolerance is the element tolerance below which a linear matrix
// is treated as the identity.
const identityTolerance = 1e-14

// Linear is an affine or projective transform represented by a
// (TargetDimensions+1) x (SourceDimensions+1) matrix acting on
// homogeneous coordinates.
type Linear struct {
	m      *matrix.Matrix
	affine bool

	invOnce sync.Once
	inv     MathTransform
	invErr  error
}

// NewLinear creates a transform from the homogeneous matrix m, which is
// copied. An identity matrix results in an Identity transform.
func NewLinear(m *matrix.Matrix) (MathTransform, error) {
	if m.Rows() < 1 || m.Cols() < 1 {
		return nil, &georef.DimensionMismatchError{Op: "transform.NewLinear", Want: 1, Got: 0}
	}
	if matrix.IsIdentity(m, identityTolerance) {
		return NewIdentity(m.Rows() - 1), nil
	}
	return newLinear(m.Clone()), nil
}

func newLinear(m *matrix.Matrix) *Linear {
	return &Linear{m: m, affine: matrix.IsAffine(m)}
}

// NewScaleTranslate creates the affine transform that computes
// out[i] = in[i]*scale[i] + offset[i].
func NewScaleTranslate(scale, offset []float64) (MathTransform, error) {
	if len(scale) != len(offset) {
		return nil, &georef.DimensionMismatchError{Op: "transform.NewScaleTranslate", Want: len(scale), Got: len(offset)}
	}
	n := len(scale)
	m := matrix.Identity(n + 1)
	for i := range scale {
		m.Set(i, i, scale[i])
		m.Set(i, n, offset[i])
	}
	return NewLinear(m)
}

// Matrix returns a copy of the homogeneous matrix.
func (t *Linear) Matrix() *matrix.Matrix { return t.m.Clone() }

// SourceDimensions implements MathTransform.
func (t *Linear) SourceDimensions() int { return t.m.Cols() - 1 }

// TargetDimensions implements MathTransform.
func (t *Linear) TargetDimensions() int { return t.m.Rows() - 1 }

// IsAffine reports whether the transform has no perspective component.
func (t *Linear) IsAffine() bool { return t.affine }

// IsIdentity implements MathTransform.
func (t *Linear) IsIdentity() bool { return matrix.IsIdentity(t.m, identityTolerance) }

// Transform implements MathTransform.
func (t *Linear) Transform(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	return transformPoints("linear", t.SourceDimensions(), t.TargetDimensions(), t.point,
		src, srcOff, dst, dstOff, numPts)
}

func (t *Linear) point(in, out []float64) error {
	w := 1.0
	if !t.affine {
		w = t.row(len(out), in)
	}
	for i := range out {
		v := t.row(i, in)
		if !t.affine {
			v /= w
		}
		out[i] = v
	}
	return nil
}

// row returns the dot product of matrix row i with the homogeneous point.
func (t *Linear) row(i int, in []float64) float64 {
	n := len(in)
	v := t.m.At(i, n)
	for j, x := range in {
		v += t.m.At(i, j) * x
	}
	return v
}

// Derivative implements MathTransform.
func (t *Linear) Derivative(point []float64) (*matrix.Matrix, error) {
	sd, td := t.SourceDimensions(), t.TargetDimensions()
	d := matrix.New(td, sd)
	if t.affine {
		for i := 0; i < td; i++ {
			for j := 0; j < sd; j++ {
				d.Set(i, j, t.m.At(i, j))
			}
		}
		return d, nil
	}
	if len(point) != sd {
		return nil, &georef.DimensionMismatchError{Op: "linear derivative", Want: sd, Got: len(point)}
	}
	w := t.row(td, point)
	for i := 0; i < td; i++ {
		y := t.row(i, point)
		for j := 0; j < sd; j++ {
			d.Set(i, j, (t.m.At(i, j)*w-y*t.m.At(td, j))/(w*w))
		}
	}
	return d, nil
}

// Inverse implements MathTransform.
func (t *Linear) Inverse() (MathTransform, error) {
	t.invOnce.Do(func() {
		if t.m.Rows() != t.m.Cols() {
			t.invErr = &georef.NoninvertibleError{Op: fmt.Sprintf("%dD to %dD linear transform", t.SourceDimensions(), t.TargetDimensions())}
			return
		}
		m, err := matrix.Inverse(t.m)
		if err != nil {
			t.invErr = err
			return
		}
		if t.affine {
			// Remove rounding noise so the inverse stays affine.
			n := m.Rows() - 1
			for j := 0; j < n; j++ {
				m.Set(n, j, 0)
			}
			m.Set(n, n, 1)
		}
		inv := newLinear(m)
		inv.invOnce.Do(func() { inv.inv = t })
		t.inv = inv
	})
	return t.inv, t.invErr
}

func (t *Linear) String() string { return fmt.Sprintf("Linear%v", t.m) }
