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

import (
	"fmt"
	"math"

	"github.com/spatialmodel/georef"
	"github.com/spatialmodel/georef/crs"
)

const (
	// MaxIterations bounds the iterative ellipsoidal solvers.
	MaxIterations = 100

	// convergence is the angular tolerance in radians of the iterative
	// solvers, about 6e-6 m on the earth.
	convergence = 1e-12

	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// solver solves geodesic problems on one ellipsoid. Angles are in degrees
// and distances in metres.
type solver struct {
	a, b, f float64
	sphere  bool
}

func newSolver(e crs.Ellipsoid) solver {
	return solver{a: e.SemiMajor(), b: e.SemiMinor(), f: e.Flattening(), sphere: e.IsSphere()}
}

// normalizeAzimuth folds an angle in degrees into (-180, 180].
func normalizeAzimuth(a float64) float64 {
	a = math.Remainder(a, 360)
	if a <= -180 {
		a += 360
	}
	if a == 0 {
		return 0
	}
	return a
}

func (g solver) inverse(lat1, lon1, lat2, lon2 float64) (s, az1, az2 float64, err error) {
	if g.sphere {
		s, az1, az2 = g.inverseSpherical(lat1, lon1, lat2, lon2)
		return s, az1, az2, nil
	}
	return g.inverseVincenty(lat1, lon1, lat2, lon2)
}

func (g solver) direct(lat1, lon1, az1, s float64) (lat2, lon2, az2 float64, err error) {
	if g.sphere {
		lat2, lon2, az2 = g.directSpherical(lat1, lon1, az1, s)
		return lat2, lon2, az2, nil
	}
	return g.directVincenty(lat1, lon1, az1, s)
}

// reducedLatitude returns the sine and cosine of the reduced latitude of
// phi in radians.
func (g solver) reducedLatitude(phi float64) (sinU, cosU float64) {
	tanU := (1 - g.f) * math.Tan(phi)
	cosU = 1 / math.Sqrt(1+tanU*tanU)
	sinU = tanU * cosU
	return sinU, cosU
}

// inverseVincenty solves the inverse problem on the ellipsoid with the
// method of T. Vincenty (1975). It fails for nearly antipodal points,
// where the longitude iteration does not converge.
func (g solver) inverseVincenty(lat1, lon1, lat2, lon2 float64) (s, az1, az2 float64, err error) {
	fail := func(iter int, reason string) (float64, float64, float64, error) {
		return math.NaN(), math.NaN(), math.NaN(), &georef.GeodesicError{
			Lat1: lat1, Lon1: lon1, Lat2: lat2, Lon2: lon2,
			Iterations: iter, Reason: reason,
		}
	}
	L := math.Remainder(lon2-lon1, 360) * deg2rad
	sinU1, cosU1 := g.reducedLatitude(lat1 * deg2rad)
	sinU2, cosU2 := g.reducedLatitude(lat2 * deg2rad)

	lambda := L
	var sinLambda, cosLambda, sinSigma, cosSigma, sigma, cos2Alpha, cos2SigmaM float64
	converged := false
	iter := 0
	for ; iter < MaxIterations; iter++ {
		sinLambda, cosLambda = math.Sincos(lambda)
		t1 := cosU2 * sinLambda
		t2 := cosU1*sinU2 - sinU1*cosU2*cosLambda
		sinSigma = math.Sqrt(t1*t1 + t2*t2)
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		if sinSigma == 0 {
			if cosSigma > 0 {
				// Coincident points.
				return 0, 0, 0, nil
			}
			return fail(iter, "antipodal points")
		}
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cos2Alpha = 1 - sinAlpha*sinAlpha
		cos2SigmaM = 0
		if cos2Alpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cos2Alpha
		}
		c := g.f / 16 * cos2Alpha * (4 + g.f*(4-3*cos2Alpha))
		prev := lambda
		lambda = L + (1-c)*g.f*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.IsNaN(lambda) {
			return fail(iter+1, "no solution")
		}
		if math.Abs(lambda) > math.Pi {
			return fail(iter+1, "nearly antipodal points")
		}
		if math.Abs(lambda-prev) < convergence {
			converged = true
			break
		}
	}
	if !converged {
		return fail(iter, "no convergence")
	}
	sinLambda, cosLambda = math.Sincos(lambda)

	u2 := cos2Alpha * (g.a*g.a - g.b*g.b) / (g.b * g.b)
	A := 1 + u2/16384*(4096+u2*(-768+u2*(320-175*u2)))
	B := u2 / 1024 * (256 + u2*(-128+u2*(74-47*u2)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
	s = g.b * A * (sigma - deltaSigma)
	az1 = math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda) * rad2deg
	az2 = math.Atan2(cosU1*sinLambda, -sinU1*cosU2+cosU1*sinU2*cosLambda) * rad2deg
	return s, normalizeAzimuth(az1), normalizeAzimuth(az2), nil
}

// directVincenty solves the direct problem on the ellipsoid.
func (g solver) directVincenty(lat1, lon1, az1, s float64) (lat2, lon2, az2 float64, err error) {
	sinAlpha1, cosAlpha1 := math.Sincos(az1 * deg2rad)
	sinU1, cosU1 := g.reducedLatitude(lat1 * deg2rad)
	sigma1 := math.Atan2(sinU1/cosU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cos2Alpha := 1 - sinAlpha*sinAlpha
	u2 := cos2Alpha * (g.a*g.a - g.b*g.b) / (g.b * g.b)
	A := 1 + u2/16384*(4096+u2*(-768+u2*(320-175*u2)))
	B := u2 / 1024 * (256 + u2*(-128+u2*(74-47*u2)))

	sigma := s / (g.b * A)
	var sinSigma, cosSigma, cos2SigmaM float64
	converged := false
	iter := 0
	for ; iter < MaxIterations; iter++ {
		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma, cosSigma = math.Sincos(sigma)
		deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
		prev := sigma
		sigma = s/(g.b*A) + deltaSigma
		if math.Abs(sigma-prev) < convergence {
			converged = true
			break
		}
	}
	if !converged || math.IsNaN(sigma) {
		return math.NaN(), math.NaN(), math.NaN(), &georef.GeodesicError{
			Lat1: lat1, Lon1: lon1, Lat2: math.NaN(), Lon2: math.NaN(),
			Iterations: iter,
			Reason:     fmt.Sprintf("no convergence for azimuth %g and distance %g", az1, s),
		}
	}
	cos2SigmaM = math.Cos(2*sigma1 + sigma)
	sinSigma, cosSigma = math.Sincos(sigma)

	tmp := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	phi2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1, (1-g.f)*math.Hypot(sinAlpha, tmp))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	c := g.f / 16 * cos2Alpha * (4 + g.f*(4-3*cos2Alpha))
	L := lambda - (1-c)*g.f*sinAlpha*
		(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
	lat2 = phi2 * rad2deg
	lon2 = normalizeAzimuth(lon1 + L*rad2deg)
	az2 = normalizeAzimuth(math.Atan2(sinAlpha, -tmp) * rad2deg)
	return lat2, lon2, az2, nil
}
