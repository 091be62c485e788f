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
	"math"
	"sync"

	"github.com/spatialmodel/georef"
	"github.com/spatialmodel/georef/matrix"
)

// kernel is the non-linear part of a map projection. It works in radians
// on an ellipsoid with a semi-major axis of 1, with longitudes relative to
// the central meridian. Scale factor, false origin and unit conversions
// are applied by linear transforms around the kernel.
type kernel interface {
	forward(lam, phi float64) (x, y float64, err error)
	inverse(x, y float64) (lam, phi float64, err error)
}

// jacobianKernel is implemented by kernels with an analytic derivative of
// forward, returned in row-major order.
type jacobianKernel interface {
	jacobian(lam, phi float64) [4]float64
}

// projection adapts a kernel to MathTransform.
type projection struct {
	method  string
	params  Parameters
	k       kernel
	inverse bool

	invOnce sync.Once
	inv     *projection
}

// ellipsoid reads the ellipsoid from p and returns the semi-major axis
// and the first eccentricity.
func ellipsoid(method string, p Parameters) (a, e float64, err error) {
	a, ok := p[SemiMajor]
	if !ok || !(a > 0) {
		return 0, 0, fmt.Errorf("georef: %s: missing or invalid %s", method, SemiMajor)
	}
	b := p.Value(SemiMinor, a)
	if !(b > 0) || b > a {
		return 0, 0, fmt.Errorf("georef: %s: invalid %s %g", method, SemiMinor, b)
	}
	return a, math.Sqrt(1 - (b*b)/(a*a)), nil
}

// newMapProjection builds the chain normalize, kernel, denormalize. The
// normalization converts degrees to radians relative to the central
// meridian; the denormalization applies the semi-major axis, the scale
// factor and the false origin.
func newMapProjection(method string, k kernel, p Parameters, a, scale float64) (MathTransform, error) {
	lon0 := p.Value(CentralMeridian, 0)
	normalize, err := NewScaleTranslate([]float64{deg2rad, deg2rad}, []float64{-lon0 * deg2rad, 0})
	if err != nil {
		return nil, err
	}
	denormalize, err := NewScaleTranslate([]float64{a * scale, a * scale},
		[]float64{p.Value(FalseEasting, 0), p.Value(FalseNorthing, 0)})
	if err != nil {
		return nil, err
	}
	return Concatenate(normalize, &projection{method: method, params: p.Clone(), k: k}, denormalize)
}

// SourceDimensions implements MathTransform.
func (t *projection) SourceDimensions() int { return 2 }

// TargetDimensions implements MathTransform.
func (t *projection) TargetDimensions() int { return 2 }

// IsIdentity implements MathTransform.
func (t *projection) IsIdentity() bool { return false }

// Transform implements MathTransform.
func (t *projection) Transform(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	return transformPoints(t.method, 2, 2, t.point, src, srcOff, dst, dstOff, numPts)
}

func (t *projection) point(in, out []float64) error {
	var err error
	if t.inverse {
		out[0], out[1], err = t.k.inverse(in[0], in[1])
	} else {
		if math.Abs(in[1]) > halfPi+1e-12 {
			return domainError(t.method, in[0], in[1])
		}
		out[0], out[1], err = t.k.forward(in[0], in[1])
	}
	return err
}

// Derivative implements MathTransform. The inverse derivative is the
// inverse of the forward Jacobian at the corresponding geographic point.
func (t *projection) Derivative(point []float64) (*matrix.Matrix, error) {
	if len(point) != 2 {
		return nil, &georef.DimensionMismatchError{Op: t.method + " derivative", Want: 2, Got: len(point)}
	}
	if !t.inverse {
		return t.forwardJacobian(point[0], point[1])
	}
	lam, phi, err := t.k.inverse(point[0], point[1])
	if err != nil {
		return nil, err
	}
	j, err := t.forwardJacobian(lam, phi)
	if err != nil {
		return nil, err
	}
	return matrix.Inverse(j)
}

func (t *projection) forwardJacobian(lam, phi float64) (*matrix.Matrix, error) {
	if jk, ok := t.k.(jacobianKernel); ok {
		j := jk.jacobian(lam, phi)
		return matrix.NewFromData(2, 2, j[:])
	}
	fwd := MathTransform(t)
	if t.inverse {
		fwd, _ = t.Inverse()
	}
	return numericDerivative(fwd, []float64{lam, phi}, 1e-7)
}

// Inverse implements MathTransform.
func (t *projection) Inverse() (MathTransform, error) {
	t.invOnce.Do(func() {
		inv := &projection{method: t.method, params: t.params, k: t.k, inverse: !t.inverse}
		inv.invOnce.Do(func() { inv.inv = t })
		t.inv = inv
	})
	return t.inv, nil
}

func (t *projection) String() string {
	if t.inverse {
		return fmt.Sprintf("Inverse_%s[%v]", t.method, t.params)
	}
	return fmt.Sprintf("%s[%v]", t.method, t.params)
}
