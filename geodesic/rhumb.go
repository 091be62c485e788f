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

package geodesic

import "math"

// meridianArc returns the distance in metres along a meridian from the
// equator to latitude phi in radians, from Helmert's series in the third
// flattening n.
func (g solver) meridianArc(phi float64) float64 {
	n := (g.a - g.b) / (g.a + g.b)
	n2 := n * n
	n3 := n2 * n
	n4 := n2 * n2
	return g.a / (1 + n) * (1 + n2/4 + n4/64) * (phi -
		3*n/2*(1-n2/8)*math.Sin(2*phi) +
		15*n2/16*(1-n2/4)*math.Sin(4*phi) -
		35*n3/48*math.Sin(6*phi) +
		315*n4/512*math.Sin(8*phi))
}

// isometricLatitude returns the isometric latitude of phi in radians.
func (g solver) isometricLatitude(phi float64) float64 {
	e := math.Sqrt(g.f * (2 - g.f))
	sinPhi := math.Sin(phi)
	return math.Atanh(sinPhi) - e*math.Atanh(e*sinPhi)
}

// rhumb returns the length of the loxodrome between two points and its
// constant azimuth.
func (g solver) rhumb(lat1, lon1, lat2, lon2 float64) (s, az float64) {
	phi1, phi2 := lat1*deg2rad, lat2*deg2rad
	dLambda := math.Remainder(lon2-lon1, 360) * deg2rad
	dPsi := g.isometricLatitude(phi2) - g.isometricLatitude(phi1)
	if math.IsInf(dPsi, 0) || math.IsNaN(dPsi) {
		// A pole: the loxodrome is a meridian.
		dLambda = 0
	}
	az = math.Atan2(dLambda, dPsi)
	if math.Abs(phi2-phi1) < 1e-12 {
		// Along a parallel.
		es := g.f * (2 - g.f)
		sinPhi, cosPhi := math.Sincos(phi1)
		nu := g.a / math.Sqrt(1-es*sinPhi*sinPhi)
		return math.Abs(dLambda) * nu * cosPhi, normalizeAzimuth(az * rad2deg)
	}
	s = (g.meridianArc(phi2) - g.meridianArc(phi1)) / math.Cos(az)
	return s, normalizeAzimuth(az * rad2deg)
}
