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
	"math"

	"github.com/spatialmodel/georef/matrix"
)

// BursaWolf holds the seven parameters of a Helmert transformation between
// geocentric coordinates, using the position vector convention of the
// proj "towgs84" parameter. Translations are in metres, rotations in
// arc-seconds and the scale difference in parts per million.
type BursaWolf struct {
	Dx, Dy, Dz float64
	Ex, Ey, Ez float64
	PPM        float64
}

// NewBursaWolf creates parameters from a proj "towgs84" list of either
// three or seven values.
func NewBursaWolf(towgs84 []float64) (BursaWolf, bool) {
	var p BursaWolf
	switch len(towgs84) {
	case 3:
		p.Dx, p.Dy, p.Dz = towgs84[0], towgs84[1], towgs84[2]
	case 7:
		p.Dx, p.Dy, p.Dz = towgs84[0], towgs84[1], towgs84[2]
		p.Ex, p.Ey, p.Ez = towgs84[3], towgs84[4], towgs84[5]
		p.PPM = towgs84[6]
	default:
		return p, false
	}
	return p, true
}

// IsIdentity reports whether all parameters are zero.
func (p BursaWolf) IsIdentity() bool { return p == BursaWolf{} }

// Matrix returns the 4x4 affine matrix acting on geocentric coordinates.
func (p BursaWolf) Matrix() *matrix.Matrix {
	s := 1 + p.PPM/1e6
	rs := math.Pi / (180 * 3600) * s
	m := matrix.Identity(4)
	m.Set(0, 0, s)
	m.Set(1, 1, s)
	m.Set(2, 2, s)
	m.Set(0, 1, -p.Ez*rs)
	m.Set(0, 2, p.Ey*rs)
	m.Set(1, 0, p.Ez*rs)
	m.Set(1, 2, -p.Ex*rs)
	m.Set(2, 0, -p.Ey*rs)
	m.Set(2, 1, p.Ex*rs)
	m.Set(0, 3, p.Dx)
	m.Set(1, 3, p.Dy)
	m.Set(2, 3, p.Dz)
	return m
}

// Transform returns the Helmert transformation as a linear transform.
func (p BursaWolf) Transform() (MathTransform, error) {
	return NewLinear(p.Matrix())
}
