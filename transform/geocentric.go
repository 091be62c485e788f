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

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi

	// geocentricMaxIter caps the latitude iteration when converting
	// geocentric coordinates back to geographic ones.
	geocentricMaxIter = 10
	geocentricTol     = 1e-12
)

// Geocentric converts between geographic coordinates (longitude and
// latitude in degrees, optionally ellipsoidal height in metres) and
// earth-centred cartesian coordinates in metres.
type Geocentric struct {
	a, b      float64
	es        float64
	hasHeight bool
	inverse   bool

	invOnce sync.Once
	inv     *Geocentric
}

// NewGeographicToGeocentric returns the conversion from geographic to
// geocentric coordinates on the ellipsoid with semi-axes a and b. If
// hasHeight is false the source is two dimensional and heights are zero.
func NewGeographicToGeocentric(a, b float64, hasHeight bool) (*Geocentric, error) {
	if !(a > 0) || !(b > 0) || b > a {
		return nil, fmt.Errorf("georef: invalid ellipsoid axes a=%g, b=%g", a, b)
	}
	return &Geocentric{a: a, b: b, es: (a*a - b*b) / (a * a), hasHeight: hasHeight}, nil
}

// NewGeocentricToGeographic returns the inverse of
// NewGeographicToGeocentric.
func NewGeocentricToGeographic(a, b float64, hasHeight bool) (*Geocentric, error) {
	g, err := NewGeographicToGeocentric(a, b, hasHeight)
	if err != nil {
		return nil, err
	}
	inv, _ := g.Inverse()
	return inv.(*Geocentric), nil
}

func (t *Geocentric) geographicDim() int {
	if t.hasHeight {
		return 3
	}
	return 2
}

// SourceDimensions implements MathTransform.
func (t *Geocentric) SourceDimensions() int {
	if t.inverse {
		return 3
	}
	return t.geographicDim()
}

// TargetDimensions implements MathTransform.
func (t *Geocentric) TargetDimensions() int {
	if t.inverse {
		return t.geographicDim()
	}
	return 3
}

// IsIdentity implements MathTransform.
func (t *Geocentric) IsIdentity() bool { return false }

// Transform implements MathTransform.
func (t *Geocentric) Transform(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	f := t.toGeocentric
	if t.inverse {
		f = t.toGeographic
	}
	return transformPoints("geocentric", t.SourceDimensions(), t.TargetDimensions(), f,
		src, srcOff, dst, dstOff, numPts)
}

func (t *Geocentric) toGeocentric(in, out []float64) error {
	lon, lat := in[0]*deg2rad, in[1]*deg2rad
	h := 0.0
	if t.hasHeight {
		h = in[2]
	}
	if math.Abs(lat) > math.Pi/2+1e-12 {
		return fmt.Errorf("%w: latitude %g", georef.ErrProjectionDomain, in[1])
	}
	sinLat, cosLat := math.Sincos(lat)
	n := t.a / math.Sqrt(1-t.es*sinLat*sinLat)
	out[0] = (n + h) * cosLat * math.Cos(lon)
	out[1] = (n + h) * cosLat * math.Sin(lon)
	out[2] = (n*(1-t.es) + h) * sinLat
	return nil
}

func (t *Geocentric) toGeographic(in, out []float64) error {
	x, y, z := in[0], in[1], in[2]
	p := math.Hypot(x, y)
	lon := math.Atan2(y, x)
	lat := math.Atan2(z, p*(1-t.es))
	for i := 0; i < geocentricMaxIter; i++ {
		sinLat := math.Sin(lat)
		n := t.a / math.Sqrt(1-t.es*sinLat*sinLat)
		next := math.Atan2(z+t.es*n*sinLat, p)
		done := math.Abs(next-lat) < geocentricTol
		lat = next
		if done {
			break
		}
	}
	sinLat, cosLat := math.Sincos(lat)
	out[0] = lon * rad2deg
	out[1] = lat * rad2deg
	if t.hasHeight {
		out[2] = p*cosLat + z*sinLat - t.a*math.Sqrt(1-t.es*sinLat*sinLat)
	}
	return nil
}

// Derivative implements MathTransform.
func (t *Geocentric) Derivative(point []float64) (*matrix.Matrix, error) {
	return numericDerivative(t, point, 1e-7)
}

// Inverse implements MathTransform.
func (t *Geocentric) Inverse() (MathTransform, error) {
	t.invOnce.Do(func() {
		inv := &Geocentric{a: t.a, b: t.b, es: t.es, hasHeight: t.hasHeight, inverse: !t.inverse}
		inv.invOnce.Do(func() { inv.inv = t })
		t.inv = inv
	})
	return t.inv, nil
}

func (t *Geocentric) String() string {
	dir := "Ellipsoid_To_Geocentric"
	if t.inverse {
		dir = "Geocentric_To_Ellipsoid"
	}
	return fmt.Sprintf("%s[a=%g, b=%g, dim=%d]", dir, t.a, t.b, t.geographicDim())
}
