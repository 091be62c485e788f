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

// transverseMercator uses the series of Snyder eqs. 8-9 to 8-10 on the
// ellipsoid and the closed form on the sphere. Accuracy degrades away
// from the central meridian, and longitude offsets beyond 90° are
// rejected.
type transverseMercator struct {
	e, es, ep2 float64
	lat0, ml0  float64
	ml         mlfnCoef
}

func newTransverseMercatorKernel(e, lat0 float64) *transverseMercator {
	es := e * e
	k := &transverseMercator{e: e, es: es, ep2: es / (1 - es), lat0: lat0, ml: newMlfn(es)}
	k.ml0 = k.ml.arc(lat0)
	return k
}

func (k *transverseMercator) forward(lam, phi float64) (x, y float64, err error) {
	lam = adjustLon(lam)
	if math.Abs(lam) > halfPi {
		return math.NaN(), math.NaN(), domainError("Transverse_Mercator", lam, phi)
	}
	sinphi, cosphi := math.Sincos(phi)
	if k.es == 0 {
		b := cosphi * math.Sin(lam)
		if math.Abs(math.Abs(b)-1) < 1e-10 {
			return math.NaN(), math.NaN(), domainError("Transverse_Mercator", lam, phi)
		}
		x = 0.5 * math.Log((1+b)/(1-b))
		con := math.Acos(clamp(cosphi * math.Cos(lam) / math.Sqrt(1-b*b)))
		if phi < 0 {
			con = -con
		}
		return x, con - k.lat0, nil
	}
	al := cosphi * lam
	als := al * al
	c := k.ep2 * cosphi * cosphi
	tq := math.Tan(phi)
	t := tq * tq
	n := 1 / math.Sqrt(1-k.es*sinphi*sinphi)
	ml := k.ml.arc(phi)
	x = n * al * (1 + als/6*(1-t+c+als/20*(5-18*t+t*t+72*c-58*k.ep2)))
	y = ml - k.ml0 + n*tq*(als*(0.5+als/24*(5-t+9*c+4*c*c+als/30*(61-58*t+t*t+600*c-330*k.ep2))))
	return x, y, nil
}

func (k *transverseMercator) inverse(x, y float64) (lam, phi float64, err error) {
	if k.es == 0 {
		f := math.Exp(x)
		g := 0.5 * (f - 1/f)
		temp := k.lat0 + y
		h := math.Cos(temp)
		phi = math.Asin(clamp(math.Sqrt((1 - h*h) / (1 + g*g))))
		if temp < 0 {
			phi = -phi
		}
		if g == 0 && h == 0 {
			return 0, phi, nil
		}
		return math.Atan2(g, h), phi, nil
	}
	con := k.ml0 + y
	phi = con
	converged := false
	for i := 0; i < phiMaxIter; i++ {
		dphi := (con+k.ml.e1*math.Sin(2*phi)-k.ml.e2*math.Sin(4*phi)+k.ml.e3*math.Sin(6*phi))/k.ml.e0 - phi
		phi += dphi
		if math.Abs(dphi) <= phiTol {
			converged = true
			break
		}
	}
	if !converged {
		return math.NaN(), math.NaN(), fmt.Errorf("%w: Transverse_Mercator: footpoint latitude did not converge", georef.ErrProjectionDomain)
	}
	if math.Abs(phi) >= halfPi {
		return 0, math.Copysign(halfPi, y), nil
	}
	sinphi, cosphi := math.Sincos(phi)
	tanphi := math.Tan(phi)
	c := k.ep2 * cosphi * cosphi
	cs := c * c
	t := tanphi * tanphi
	ts := t * t
	cn := 1 - k.es*sinphi*sinphi
	n := 1 / math.Sqrt(cn)
	r := n * (1 - k.es) / cn
	d := x / n
	ds := d * d
	phi = phi - (n*tanphi*ds/r)*(0.5-ds/24*(5+3*t+10*c-4*cs-9*k.ep2-ds/30*(61+90*t+298*c+45*ts-252*k.ep2-3*cs)))
	lam = d * (1 - ds/6*(1+2*t+c-ds/20*(5-2*c+28*t-3*cs+8*k.ep2+24*ts))) / cosphi
	return lam, phi, nil
}

func newTransverseMercator(p Parameters) (MathTransform, error) {
	a, e, err := ellipsoid("Transverse_Mercator", p)
	if err != nil {
		return nil, err
	}
	k := newTransverseMercatorKernel(e, p.Value(LatitudeOfOrigin, 0)*deg2rad)
	return newMapProjection("Transverse_Mercator", k, p, a, p.Value(ScaleFactor, 1))
}
