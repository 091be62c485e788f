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
)

// mercator is the normal aspect Mercator projection.
type mercator struct {
	e float64
}

func (k mercator) forward(lam, phi float64) (x, y float64, err error) {
	if math.Abs(math.Abs(phi)-halfPi) <= 1e-10 {
		return math.NaN(), math.NaN(), domainError("Mercator", lam, phi)
	}
	x = adjustLon(lam)
	if k.e == 0 {
		return x, math.Log(math.Tan(math.Pi/4 + 0.5*phi)), nil
	}
	return x, -math.Log(tsfn(k.e, phi, math.Sin(phi))), nil
}

func (k mercator) inverse(x, y float64) (lam, phi float64, err error) {
	if k.e == 0 {
		return x, halfPi - 2*math.Atan(math.Exp(-y)), nil
	}
	phi, err = phi2z(k.e, math.Exp(-y))
	return x, phi, err
}

func (k mercator) jacobian(lam, phi float64) [4]float64 {
	sinphi, cosphi := math.Sincos(phi)
	es := k.e * k.e
	dy := (1 - es) / ((1 - es*sinphi*sinphi) * cosphi)
	return [4]float64{1, 0, 0, dy}
}

func newMercator1SP(p Parameters) (MathTransform, error) {
	a, e, err := ellipsoid("Mercator_1SP", p)
	if err != nil {
		return nil, err
	}
	return newMapProjection("Mercator_1SP", mercator{e: e}, p, a, p.Value(ScaleFactor, 1))
}

func newMercator2SP(p Parameters) (MathTransform, error) {
	a, e, err := ellipsoid("Mercator_2SP", p)
	if err != nil {
		return nil, err
	}
	phi1 := p.Value(StandardParallel1, 0) * deg2rad
	sinphi, cosphi := math.Sincos(phi1)
	return newMapProjection("Mercator_2SP", mercator{e: e}, p, a, msfn(e, sinphi, cosphi))
}
