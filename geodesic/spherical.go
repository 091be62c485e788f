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

// inverseSpherical solves the inverse problem on a sphere of radius g.a
// with the haversine formula.
func (g solver) inverseSpherical(lat1, lon1, lat2, lon2 float64) (s, az1, az2 float64) {
	phi1, phi2 := lat1*deg2rad, lat2*deg2rad
	dLambda := math.Remainder(lon2-lon1, 360) * deg2rad
	sinPhi1, cosPhi1 := math.Sincos(phi1)
	sinPhi2, cosPhi2 := math.Sincos(phi2)
	sinDL, cosDL := math.Sincos(dLambda)

	sinHalfDPhi := math.Sin((phi2 - phi1) / 2)
	sinHalfDL := math.Sin(dLambda / 2)
	h := sinHalfDPhi*sinHalfDPhi + cosPhi1*cosPhi2*sinHalfDL*sinHalfDL
	h = math.Min(1, math.Max(0, h))
	s = 2 * g.a * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	if s == 0 {
		return 0, 0, 0
	}
	az1 = math.Atan2(sinDL*cosPhi2, cosPhi1*sinPhi2-sinPhi1*cosPhi2*cosDL) * rad2deg
	az2 = math.Atan2(sinDL*cosPhi1, -cosPhi2*sinPhi1+sinPhi2*cosPhi1*cosDL) * rad2deg
	return s, normalizeAzimuth(az1), normalizeAzimuth(az2)
}

// directSpherical solves the direct problem on a sphere of radius g.a.
func (g solver) directSpherical(lat1, lon1, az1, s float64) (lat2, lon2, az2 float64) {
	phi1 := lat1 * deg2rad
	sinPhi1, cosPhi1 := math.Sincos(phi1)
	sinA, cosA := math.Sincos(az1 * deg2rad)
	sinD, cosD := math.Sincos(s / g.a)

	// atan2 keeps full precision for end points near the poles.
	x := cosPhi1*cosD - sinPhi1*sinD*cosA
	y := sinD * sinA
	phi2 := math.Atan2(sinPhi1*cosD+cosPhi1*sinD*cosA, math.Hypot(x, y))
	dLambda := math.Atan2(y, x)
	lat2 = phi2 * rad2deg
	lon2 = normalizeAzimuth(lon1 + dLambda*rad2deg)
	az2 = normalizeAzimuth(math.Atan2(sinA*cosPhi1, cosPhi1*cosD*cosA-sinPhi1*sinD) * rad2deg)
	return lat2, lon2, az2
}
