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
	"github.com/spatialmodel/georef"
	"github.com/spatialmodel/georef/matrix"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// numericDerivative estimates the Jacobian of t at point using central
// differences with the given step.
func numericDerivative(t MathTransform, point []float64, step float64) (*matrix.Matrix, error) {
	sd, td := t.SourceDimensions(), t.TargetDimensions()
	if len(point) != sd {
		return nil, &georef.DimensionMismatchError{Op: "derivative", Want: sd, Got: len(point)}
	}
	var ferr error
	f := func(y, x []float64) {
		if err := t.Transform(x, 0, y, 0, 1); err != nil && ferr == nil {
			ferr = err
		}
	}
	jac := mat.NewDense(td, sd, nil)
	x := append([]float64(nil), point...)
	fd.Jacobian(jac, f, x, &fd.JacobianSettings{
		Formula: fd.Central,
		Step:    step,
	})
	if ferr != nil {
		return nil, ferr
	}
	return matrix.FromDense(jac), nil
}
