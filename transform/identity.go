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

	"github.com/spatialmodel/georef/matrix"
)

// Identity is the transform that returns its input unchanged.
type Identity struct {
	dim int
}

// NewIdentity returns the identity transform in dim dimensions.
func NewIdentity(dim int) *Identity { return &Identity{dim: dim} }

// SourceDimensions implements MathTransform.
func (t *Identity) SourceDimensions() int { return t.dim }

// TargetDimensions implements MathTransform.
func (t *Identity) TargetDimensions() int { return t.dim }

// Transform implements MathTransform.
func (t *Identity) Transform(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	if err := checkBuffers("identity", t.dim, t.dim, src, srcOff, dst, dstOff, numPts); err != nil {
		return err
	}
	copy(dst[dstOff:dstOff+numPts*t.dim], src[srcOff:srcOff+numPts*t.dim])
	return nil
}

// Inverse implements MathTransform.
func (t *Identity) Inverse() (MathTransform, error) { return t, nil }

// Derivative implements MathTransform.
func (t *Identity) Derivative([]float64) (*matrix.Matrix, error) { return matrix.Identity(t.dim), nil }

// IsIdentity implements MathTransform.
func (t *Identity) IsIdentity() bool { return true }

func (t *Identity) String() string { return fmt.Sprintf("Identity[%d]", t.dim) }
