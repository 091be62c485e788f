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

package crs

import (
	"fmt"
	"math"
)

// Ellipsoid is an oblate ellipsoid of revolution. It is an immutable
// value that may be shared between reference systems.
type Ellipsoid struct {
	name                 string
	semiMajor, semiMinor float64
	invFlattening        float64
}

// Predefined ellipsoids.
var (
	WGS84Ellipsoid      = mustEllipsoid("WGS 84", 6378137, 298.257223563)
	GRS80               = mustEllipsoid("GRS 1980", 6378137, 298.257222101)
	Clarke1866          = mustEllipsoidAB("Clarke 1866", 6378206.4, 6356583.8)
	International1924   = mustEllipsoid("International 1924", 6378388, 297)
	Airy1830            = mustEllipsoid("Airy 1830", 6377563.396, 299.3249646)
	Bessel1841          = mustEllipsoid("Bessel 1841", 6377397.155, 299.1528128)
	Sphere              = NewSphere("Sphere", 6371000)
	AuthalicSphereGRS80 = NewSphere("GRS 1980 Authalic Sphere", 6371007)
)

// NewEllipsoid creates an ellipsoid from its semi-major axis in metres and
// its inverse flattening. An inverse flattening of zero or infinity
// describes a sphere.
func NewEllipsoid(name string, semiMajor, invFlattening float64) (Ellipsoid, error) {
	if !(semiMajor > 0) || math.IsInf(semiMajor, 0) {
		return Ellipsoid{}, fmt.Errorf("georef: ellipsoid %q: invalid semi-major axis %g", name, semiMajor)
	}
	if invFlattening == 0 || math.IsInf(invFlattening, 1) {
		return NewSphere(name, semiMajor), nil
	}
	if !(invFlattening >= 1) {
		return Ellipsoid{}, fmt.Errorf("georef: ellipsoid %q: invalid inverse flattening %g", name, invFlattening)
	}
	return Ellipsoid{
		name:          name,
		semiMajor:     semiMajor,
		semiMinor:     semiMajor * (1 - 1/invFlattening),
		invFlattening: invFlattening,
	}, nil
}

// NewEllipsoidAB creates an ellipsoid from its semi-axes in metres.
func NewEllipsoidAB(name string, semiMajor, semiMinor float64) (Ellipsoid, error) {
	if !(semiMajor > 0) || !(semiMinor > 0) || semiMinor > semiMajor || math.IsInf(semiMajor, 0) {
		return Ellipsoid{}, fmt.Errorf("georef: ellipsoid %q: invalid semi-axes %g, %g", name, semiMajor, semiMinor)
	}
	if semiMinor == semiMajor {
		return NewSphere(name, semiMajor), nil
	}
	return Ellipsoid{
		name:          name,
		semiMajor:     semiMajor,
		semiMinor:     semiMinor,
		invFlattening: semiMajor / (semiMajor - semiMinor),
	}, nil
}

// NewSphere creates a sphere with the given radius in metres.
func NewSphere(name string, radius float64) Ellipsoid {
	return Ellipsoid{name: name, semiMajor: radius, semiMinor: radius, invFlattening: math.Inf(1)}
}

func mustEllipsoid(name string, a, invf float64) Ellipsoid {
	e, err := NewEllipsoid(name, a, invf)
	if err != nil {
		panic(err)
	}
	return e
}

func mustEllipsoidAB(name string, a, b float64) Ellipsoid {
	e, err := NewEllipsoidAB(name, a, b)
	if err != nil {
		panic(err)
	}
	return e
}

// Name returns the ellipsoid name.
func (e Ellipsoid) Name() string { return e.name }

// SemiMajor returns the semi-major axis in metres.
func (e Ellipsoid) SemiMajor() float64 { return e.semiMajor }

// SemiMinor returns the semi-minor axis in metres.
func (e Ellipsoid) SemiMinor() float64 { return e.semiMinor }

// InverseFlattening returns 1/f, which is +Inf for a sphere.
func (e Ellipsoid) InverseFlattening() float64 { return e.invFlattening }

// Flattening returns (a-b)/a.
func (e Ellipsoid) Flattening() float64 {
	if e.IsSphere() {
		return 0
	}
	return 1 / e.invFlattening
}

// EccentricitySquared returns the square of the first eccentricity.
func (e Ellipsoid) EccentricitySquared() float64 {
	f := e.Flattening()
	return f * (2 - f)
}

// IsSphere reports whether both semi-axes are equal.
func (e Ellipsoid) IsSphere() bool { return e.semiMajor == e.semiMinor }

// Equal reports whether e and o have the same axes, ignoring names.
func (e Ellipsoid) Equal(o Ellipsoid) bool {
	return e.semiMajor == o.semiMajor && e.semiMinor == o.semiMinor
}

func (e Ellipsoid) String() string {
	if e.IsSphere() {
		return fmt.Sprintf("%s[r=%g]", e.name, e.semiMajor)
	}
	return fmt.Sprintf("%s[a=%g, 1/f=%g]", e.name, e.semiMajor, e.invFlattening)
}
