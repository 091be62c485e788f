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

package matrix

import (
	"math"

	"github.com/spatialmodel/georef"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Mul returns the product a·b.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.Cols() != b.Rows() {
		return nil, &georef.DimensionMismatchError{Op: "matrix.Mul", Want: a.Cols(), Got: b.Rows()}
	}
	out := mat.NewDense(a.Rows(), b.Cols(), nil)
	out.Mul(a.d, b.d)
	return &Matrix{d: out}, nil
}

// Inverse returns the inverse of the square matrix a. Singular or
// numerically ill-conditioned matrices result in a NoninvertibleError.
func Inverse(a *Matrix) (*Matrix, error) {
	if a.Rows() != a.Cols() {
		return nil, &georef.DimensionMismatchError{Op: "matrix.Inverse", Want: a.Rows(), Got: a.Cols()}
	}
	if a.Rows() == 1 {
		v := a.At(0, 0)
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &georef.NoninvertibleError{Op: "matrix.Inverse"}
		}
		return &Matrix{d: mat.NewDense(1, 1, []float64{1 / v})}, nil
	}
	if IsAffine(a) {
		return inverseAffine(a)
	}
	var inv mat.Dense
	if err := inv.Inverse(a.d); err != nil {
		return nil, &georef.NoninvertibleError{Op: "matrix.Inverse", Err: err}
	}
	return &Matrix{d: &inv}, nil
}

// inverseAffine inverts the linear block of an affine matrix separately
// from its translation, so that large offsets such as false eastings do
// not degrade the condition number.
func inverseAffine(a *Matrix) (*Matrix, error) {
	n := a.Rows() - 1
	lin := a.d.Slice(0, n, 0, n)
	var inv mat.Dense
	if err := inv.Inverse(lin); err != nil {
		return nil, &georef.NoninvertibleError{Op: "matrix.Inverse", Err: err}
	}
	off := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		off.SetVec(i, a.At(i, n))
	}
	var t mat.VecDense
	t.MulVec(&inv, off)
	out := mat.NewDense(n+1, n+1, nil)
	out.Slice(0, n, 0, n).(*mat.Dense).Copy(&inv)
	for i := 0; i < n; i++ {
		out.Set(i, n, -t.AtVec(i))
	}
	out.Set(n, n, 1)
	return &Matrix{d: out}, nil
}

// Equal reports whether a and b have the same shape and identical elements.
func Equal(a, b *Matrix) bool {
	return mat.Equal(a.d, b.d)
}

// EqualApprox reports whether a and b have the same shape and all elements
// equal within the absolute or relative tolerance.
func EqualApprox(a, b *Matrix, absTol, relTol float64) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			if !scalar.EqualWithinAbsOrRel(a.At(i, j), b.At(i, j), absTol, relTol) {
				return false
			}
		}
	}
	return true
}

// IsIdentity reports whether m is square and within tol of the identity.
func IsIdentity(m *Matrix, tol float64) bool {
	if m.Rows() != m.Cols() {
		return false
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(m.At(i, j)-want) > tol {
				return false
			}
		}
	}
	return true
}

// IsAffine reports whether the last row of m is [0 ... 0 1], so that it
// represents an affine transform in homogeneous coordinates.
func IsAffine(m *Matrix) bool {
	r, c := m.Rows(), m.Cols()
	for j := 0; j < c-1; j++ {
		if m.At(r-1, j) != 0 {
			return false
		}
	}
	return m.At(r-1, c-1) == 1
}
