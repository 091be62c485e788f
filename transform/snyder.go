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

	"github.com/spatialmodel/georef"
)

// Helper functions for ellipsoidal map projections, following
// J.P. Snyder, "Map Projections: A Working Manual", USGS PP 1395.

const (
	halfPi = math.Pi / 2

	// phiMaxIter caps the latitude iterations.
	phiMaxIter = 15
	phiTol     = 1e-12
)

// msfn computes cos(phi)/sqrt(1-e² sin²(phi)).
func msfn(e, sinphi, cosphi float64) float64 {
	con := e * sinphi
	return cosphi / math.Sqrt(1-con*con)
}

// tsfn computes the conformal latitude function t of Snyder eq. 15-9.
func tsfn(e, phi, sinphi float64) float64 {
	con := e * sinphi
	com := 0.5 * e
	con = math.Pow((1-con)/(1+con), com)
	return math.Tan(0.5*(halfPi-phi)) / con
}

// phi2z computes latitude from the conformal function t.
func phi2z(e, ts float64) (float64, error) {
	eccnth := 0.5 * e
	phi := halfPi - 2*math.Atan(ts)
	for i := 0; i < phiMaxIter; i++ {
		con := e * math.Sin(phi)
		dphi := halfPi - 2*math.Atan(ts*math.Pow((1-con)/(1+con), eccnth)) - phi
		phi += dphi
		if math.Abs(dphi) <= phiTol {
			return phi, nil
		}
	}
	return math.NaN(), fmt.Errorf("%w: latitude iteration did not converge", georef.ErrProjectionDomain)
}

// qsfn computes the authalic function q of Snyder eq. 3-12.
func qsfn(e, sinphi float64) float64 {
	if e < 1e-7 {
		return 2 * sinphi
	}
	con := e * sinphi
	return (1 - e*e) * (sinphi/(1-con*con) - (0.5/e)*math.Log((1-con)/(1+con)))
}

// phi1z computes latitude from the authalic function q.
func phi1z(e, qs float64) (float64, error) {
	if e < 1e-7 {
		return math.Asin(clamp(0.5 * qs)), nil
	}
	qp := qsfn(e, 1)
	if math.Abs(math.Abs(qs)-qp) < 1e-10 {
		return math.Copysign(halfPi, qs), nil
	}
	es := e * e
	phi := math.Asin(clamp(0.5 * qs))
	for i := 0; i < 25; i++ {
		sinphi, cosphi := math.Sincos(phi)
		con := e * sinphi
		com := 1 - con*con
		dphi := 0.5 * com * com / cosphi * (qs/(1-es) - sinphi/com + 0.5/e*math.Log((1-con)/(1+con)))
		phi += dphi
		if math.Abs(dphi) <= phiTol {
			return phi, nil
		}
	}
	return math.NaN(), fmt.Errorf("%w: authalic latitude iteration did not converge", georef.ErrProjectionDomain)
}

// meridian arc coefficients of Snyder eq. 3-21.
type mlfnCoef struct{ e0, e1, e2, e3 float64 }

func newMlfn(es float64) mlfnCoef {
	return mlfnCoef{
		e0: 1 - 0.25*es*(1+es/16*(3+1.25*es)),
		e1: 0.375 * es * (1 + 0.25*es*(1+0.46875*es)),
		e2: 0.05859375 * es * es * (1 + 0.75*es),
		e3: es * es * es * (35.0 / 3072.0),
	}
}

// arc returns the meridian distance from the equator on the unit ellipsoid.
func (c mlfnCoef) arc(phi float64) float64 {
	return c.e0*phi - c.e1*math.Sin(2*phi) + c.e2*math.Sin(4*phi) - c.e3*math.Sin(6*phi)
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// adjustLon folds a longitude difference in radians into [-π, π].
func adjustLon(lam float64) float64 {
	if math.Abs(lam) <= math.Pi {
		return lam
	}
	return math.Remainder(lam, 2*math.Pi)
}

func domainError(method string, lam, phi float64) error {
	return fmt.Errorf("%w: %s: longitude offset %g, latitude %g", georef.ErrProjectionDomain,
		method, lam*rad2deg, phi*rad2deg)
}
