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

// Package matrix provides the small dense matrices used to represent
// linear and affine coordinate transforms. Storage and arithmetic are
// delegated to gonum.
package matrix

import (
	"fmt"

	"github.com/spatialmodel/georef"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense row-major matrix with dimensions fixed at construction.
// A Matrix may be modified through Set; transforms that keep a Matrix
// store their own copy.
type Matrix struct {
	d *mat.Dense
}

// New returns a rows x cols matrix of zeros. It panics if either
// dimension is not positive.
func New(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("matrix: invalid dimensions %dx%d", rows, cols))
	}
	return &Matrix{d: mat.NewDense(rows, cols, nil)}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.d.Set(i, i, 1)
	}
	return m
}

// NewFromRows creates a matrix from a slice of equal-length rows.
func NewFromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &georef.DimensionMismatchError{Op: "matrix.NewFromRows", Want: 1, Got: 0}
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		if len(r) != cols {
			return nil, &georef.DimensionMismatchError{Op: "matrix.NewFromRows", Want: cols, Got: len(r)}
		}
		data = append(data, r...)
	}
	return &Matrix{d: mat.NewDense(len(rows), cols, data)}, nil
}

// NewFromData creates a rows x cols matrix from row-major data. The data
// are copied.
func NewFromData(rows, cols int, data []float64) (*Matrix, error) {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return nil, &georef.DimensionMismatchError{Op: "matrix.NewFromData", Want: rows * cols, Got: len(data)}
	}
	d := make([]float64, len(data))
	copy(d, data)
	return &Matrix{d: mat.NewDense(rows, cols, d)}, nil
}

// FromDense copies a gonum matrix.
func FromDense(a mat.Matrix) *Matrix {
	return &Matrix{d: mat.DenseCopyOf(a)}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	r, _ := m.d.Dims()
	return r
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	_, c := m.d.Dims()
	return c
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.d.At(i, j) }

// Set sets the element at row i, column j.
func (m *Matrix) Set(i, j int, v float64) { m.d.Set(i, j, v) }

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 { return mat.Row(nil, i, m.d) }

// Data returns a row-major copy of the matrix elements.
func (m *Matrix) Data() []float64 {
	r, c := m.d.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		out = append(out, m.Row(i)...)
	}
	return out
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix { return &Matrix{d: mat.DenseCopyOf(m.d)} }

// Dense returns a copy of m as a gonum matrix.
func (m *Matrix) Dense() *mat.Dense { return mat.DenseCopyOf(m.d) }

func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.d, mat.Squeeze()))
}
