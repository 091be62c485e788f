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
)

// lambertConformal is the Lambert conformal conic projection of Snyder
// eqs. 15-1 to 15-11.
type lambertConformal struct {
	e, n, f, rho0 float64
}

func newLambertConformalKernel(e, phi0, phi1, phi2 float64) (*lambertConformal, error) {
	sin1, cos1 := math.Sincos(phi1)
	m1, t1 := msfn(e, sin1, cos1), tsfn(e, phi1, sin1)
	var n float64
	if math.Abs(phi1-phi2) > 1e-10 {
		sin2, cos2 := math.Sincos(phi2)
		m2, t2 := msfn(e, sin2, cos2), tsfn(e, phi2, sin2)
		n = math.Log(m1/m2) / math.Log(t1/t2)
	} else {
		n = sin1
	}
	if math.Abs(n) < 1e-10 || math.IsNaN(n) {
		return nil, fmt.Errorf("georef: Lambert_Conformal_Conic: standard parallels %g and %g do not define a cone",
			phi1*rad2deg, phi2*rad2deg)
	}
	k := &lambertConformal{e: e, n: n, f: m1 / (n * math.Pow(t1, n))}
	k.rho0 = k.rho(phi0)
	if math.IsInf(k.rho0, 0) {
		return nil, fmt.Errorf("georef: Lambert_Conformal_Conic: latitude of origin %g is outside of the projection domain", phi0*rad2deg)
	}
	return k, nil
}

func (k *lambertConformal) rho(phi float64) float64 {
	if math.Abs(math.Abs(phi)-halfPi) <= 1e-10 {
		if phi*k.n <= 0 {
			return math.Inf(1)
		}
		return 0
	}
	return k.f * math.Pow(tsfn(k.e, phi, math.Sin(phi)), k.n)
}

func (k *lambertConformal) forward(lam, phi float64) (x, y float64, err error) {
	rho := k.rho(phi)
	if math.IsInf(rho, 0) {
		return math.NaN(), math.NaN(), domainError("Lambert_Conformal_Conic", lam, phi)
	}
	theta := k.n * adjustLon(lam)
	sin, cos := math.Sincos(theta)
	return rho * sin, k.rho0 - rho*cos, nil
}

func (k *lambertConformal) inverse(x, y float64) (lam, phi float64, err error) {
	sign := 1.0
	if k.n < 0 {
		sign = -1
	}
	dy := k.rho0 - y
	rho := sign * math.Hypot(x, dy)
	if rho == 0 {
		return 0, math.Copysign(halfPi, k.n), nil
	}
	theta := math.Atan2(sign*x, sign*dy)
	phi, err = phi2z(k.e, math.Pow(rho/k.f, 1/k.n))
	return theta / k.n, phi, err
}

func newLambertConformal(method string, twoSP bool) func(Parameters) (MathTransform, error) {
	return func(p Parameters) (MathTransform, error) {
		a, e, err := ellipsoid(method, p)
		if err != nil {
			return nil, err
		}
		phi0 := p.Value(LatitudeOfOrigin, 0) * deg2rad
		phi1, phi2 := phi0, phi0
		_, has1 := p[StandardParallel1]
		if twoSP || has1 {
			phi1 = p.Value(StandardParallel1, 0) * deg2rad
			phi2 = p.Value(StandardParallel2, phi1*rad2deg) * deg2rad
		}
		k, err := newLambertConformalKernel(e, phi0, phi1, phi2)
		if err != nil {
			return nil, err
		}
		return newMapProjection(method, k, p, a, p.Value(ScaleFactor, 1))
	}
}

// albersEqualArea is the Albers equal area conic projection of Snyder
// eqs. 14-1 to 14-21.
type albersEqualArea struct {
	e, n, c, rho0 float64
}

func newAlbersKernel(e, phi0, phi1, phi2 float64) (*albersEqualArea, error) {
	sin1, cos1 := math.Sincos(phi1)
	m1, q1 := msfn(e, sin1, cos1), qsfn(e, sin1)
	var n float64
	if math.Abs(phi1-phi2) > 1e-10 {
		sin2, cos2 := math.Sincos(phi2)
		m2, q2 := msfn(e, sin2, cos2), qsfn(e, sin2)
		n = (m1*m1 - m2*m2) / (q2 - q1)
	} else {
		n = sin1
	}
	if math.Abs(n) < 1e-10 || math.IsNaN(n) {
		return nil, fmt.Errorf("georef: Albers_Conic_Equal_Area: standard parallels %g and %g do not define a cone",
			phi1*rad2deg, phi2*rad2deg)
	}
	k := &albersEqualArea{e: e, n: n, c: m1*m1 + n*q1}
	rho0, err := k.rho(phi0)
	if err != nil {
		return nil, err
	}
	k.rho0 = rho0
	return k, nil
}

func (k *albersEqualArea) rho(phi float64) (float64, error) {
	v := k.c - k.n*qsfn(k.e, math.Sin(phi))
	if v < 0 {
		if v < -1e-12 {
			return math.NaN(), domainError("Albers_Conic_Equal_Area", 0, phi)
		}
		v = 0
	}
	return math.Sqrt(v) / k.n, nil
}

func (k *albersEqualArea) forward(lam, phi float64) (x, y float64, err error) {
	rho, err := k.rho(phi)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	theta := k.n * adjustLon(lam)
	sin, cos := math.Sincos(theta)
	return rho * sin, k.rho0 - rho*cos, nil
}

func (k *albersEqualArea) inverse(x, y float64) (lam, phi float64, err error) {
	sign := 1.0
	if k.n < 0 {
		sign = -1
	}
	dy := k.rho0 - y
	rho := sign * math.Hypot(x, dy)
	theta := 0.0
	if rho != 0 {
		theta = math.Atan2(sign*x, sign*dy)
	}
	rn := rho * k.n
	phi, err = phi1z(k.e, (k.c-rn*rn)/k.n)
	return theta / k.n, phi, err
}

func newAlbers(p Parameters) (MathTransform, error) {
	const method = "Albers_Conic_Equal_Area"
	a, e, err := ellipsoid(method, p)
	if err != nil {
		return nil, err
	}
	phi0 := p.Value(LatitudeOfOrigin, 0) * deg2rad
	phi1 := p.Value(StandardParallel1, 0) * deg2rad
	phi2 := p.Value(StandardParallel2, phi1*rad2deg) * deg2rad
	k, err := newAlbersKernel(e, phi0, phi1, phi2)
	if err != nil {
		return nil, err
	}
	return newMapProjection(method, k, p, a, 1)
}

// newEquirectangular returns the spherical equidistant cylindrical
// projection, which is a single affine transform.
func newEquirectangular(p Parameters) (MathTransform, error) {
	const method = "Equirectangular"
	a, _, err := ellipsoid(method, p)
	if err != nil {
		return nil, err
	}
	sx := a * math.Cos(p.Value(StandardParallel1, 0)*deg2rad) * deg2rad
	sy := a * deg2rad
	return NewScaleTranslate([]float64{sx, sy}, []float64{
		p.Value(FalseEasting, 0) - sx*p.Value(CentralMeridian, 0),
		p.Value(FalseNorthing, 0) - sy*p.Value(LatitudeOfOrigin, 0),
	})
}
