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
	"math"
	"testing"

	"github.com/spatialmodel/georef/transform"
)

func TestEllipsoid(t *testing.T) {
	if b := WGS84Ellipsoid.SemiMinor(); math.Abs(b-6356752.314245) > 1e-6 {
		t.Errorf("WGS84 semi-minor = %.6f", b)
	}
	if !Sphere.IsSphere() || Sphere.Flattening() != 0 || !math.IsInf(Sphere.InverseFlattening(), 1) {
		t.Errorf("sphere: %v", Sphere)
	}
	e, err := NewEllipsoidAB("clarke", 6378206.4, 6356583.8)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(e.InverseFlattening()-294.978698) > 1e-5 {
		t.Errorf("1/f = %g", e.InverseFlattening())
	}
	if !e.Equal(Clarke1866) {
		t.Error("equal axes should compare equal")
	}
	for _, bad := range [][2]float64{{-1, 300}, {6378137, 0.5}, {math.NaN(), 300}} {
		if _, err := NewEllipsoid("bad", bad[0], bad[1]); err == nil {
			t.Errorf("%v should fail", bad)
		}
	}
	if _, err := NewEllipsoidAB("bad", 6356752, 6378137); err == nil {
		t.Error("b > a should fail")
	}
	if s, err := NewEllipsoid("s", 6371000, 0); err != nil || !s.IsSphere() {
		t.Errorf("zero inverse flattening should give a sphere: %v, %v", s, err)
	}
}

func TestUnitScale(t *testing.T) {
	s, err := Kilometre.ScaleTo(Metre)
	if err != nil || s != 1000 {
		t.Errorf("km to m = %g, %v", s, err)
	}
	s, err = Degree.ScaleTo(Radian)
	if err != nil || math.Abs(s-math.Pi/180) > 1e-18 {
		t.Errorf("deg to rad = %g, %v", s, err)
	}
	if _, err := Degree.ScaleTo(Metre); err == nil {
		t.Error("angle to length should fail")
	}
	if !Foot.IsLinear() || Foot.IsAngular() || !Grad.IsAngular() {
		t.Error("unit dimensions")
	}
}

func TestCoordinateSystem(t *testing.T) {
	if !CartesianEN.IsRightHanded() || CartesianNE.IsRightHanded() {
		t.Error("handedness")
	}
	if !EllipsoidalLonLat.IsRightHanded() || EllipsoidalLatLon.IsRightHanded() {
		t.Error("geographic handedness")
	}
	_, err := NewCoordinateSystem("bad",
		Axis{Name: "a", Direction: East, Unit: Metre},
		Axis{Name: "b", Direction: West, Unit: Metre})
	if err == nil {
		t.Error("colinear axes should fail")
	}
	x, _ := NewAxis("x", "X", "South along 90 deg East", Metre)
	y, _ := NewAxis("y", "Y", "South along 180 deg", Metre)
	polar, err := NewCoordinateSystem("polar", x, y)
	if err != nil {
		t.Fatal(err)
	}
	if !polar.IsRightHanded() {
		t.Errorf("(S along 90E, S along 180) should be right-handed, angle %g", AngleBetween(x, y))
	}
}

func TestCRSConstruction(t *testing.T) {
	if _, err := NewGeographic("bad", WGS84Datum, CartesianEN); err == nil {
		t.Error("geographic CRS with linear axes should fail")
	}
	if _, err := NewProjected("bad", WGS84, Conversion{Method: "Mercator_1SP"}, EllipsoidalLonLat); err == nil {
		t.Error("projected CRS with angular axes should fail")
	}
	if _, err := NewGeocentric("bad", WGS84Datum, CartesianEN); err == nil {
		t.Error("geocentric CRS with two axes should fail")
	}
	utm, err := UTM(33, true, WGS84Datum)
	if err != nil {
		t.Fatal(err)
	}
	conv := utm.Conversion()
	if conv.Parameters[transform.CentralMeridian] != 15 || conv.Parameters[transform.FalseNorthing] != 1e7 {
		t.Errorf("UTM 33S parameters: %v", conv.Parameters)
	}
	conv.Parameters[transform.CentralMeridian] = 0
	if utm.Conversion().Parameters[transform.CentralMeridian] != 15 {
		t.Error("conversion parameters should be copied")
	}
	if _, err := UTM(61, false, WGS84Datum); err == nil {
		t.Error("zone 61 should fail")
	}
	if n := EPSG4326.Normalized(); n.CoordinateSystem() != EllipsoidalLonLat || n.Datum() != WGS84Datum {
		t.Errorf("normalized: %v", n)
	}
	if WGS84.Normalized() != WGS84 {
		t.Error("normalized CRS should be returned unchanged")
	}
}

func TestDatumEquivalent(t *testing.T) {
	if !WGS84Datum.Equivalent(NewDatum("WGS84", WGS84Ellipsoid, Greenwich, &transform.BursaWolf{})) {
		t.Error("same realization should be equivalent")
	}
	if WGS84Datum.Equivalent(NAD83) {
		t.Error("different ellipsoids should not be equivalent")
	}
	a := NewDatum("a", Sphere, Greenwich, nil)
	b := NewDatum("b", Sphere, Greenwich, nil)
	if a.Equivalent(b) {
		t.Error("unrelated datums without parameters should not be equivalent")
	}
	if _, ok := a.ToWGS84(); ok {
		t.Error("unexpected parameters")
	}
}

func TestFromProj(t *testing.T) {
	tests := []struct {
		def    string
		kind   string
		method string
		check  func(t *testing.T, c CRS)
	}{
		{def: "+proj=longlat +datum=WGS84 +no_defs", kind: "geographic", check: func(t *testing.T, c CRS) {
			if a := c.Datum().Ellipsoid().SemiMajor(); a != 6378137 {
				t.Errorf("semi-major %g", a)
			}
			if c.CoordinateSystem().Axis(0).Direction != East {
				t.Error("longitude should come first")
			}
		}},
		{def: "+proj=utm +zone=32 +south +ellps=intl +towgs84=-87,-98,-121,0,0,0,0", kind: "projected", method: "Transverse_Mercator",
			check: func(t *testing.T, c CRS) {
				p := c.(*Projected).Conversion().Parameters
				if p[transform.CentralMeridian] != 9 || p[transform.FalseNorthing] != 1e7 || p[transform.ScaleFactor] != 0.9996 {
					t.Errorf("parameters %v", p)
				}
				bw, ok := c.Datum().ToWGS84()
				if !ok || bw.Dx != -87 {
					t.Errorf("towgs84 %v", bw)
				}
				if c.Datum().Ellipsoid().InverseFlattening() != 297 {
					t.Errorf("ellipsoid %v", c.Datum().Ellipsoid())
				}
			}},
		{def: "+proj=lcc +lat_1=33 +lat_2=45 +lat_0=23 +lon_0=-96 +x_0=0 +y_0=0 +ellps=clrk66 +units=us-ft", kind: "projected",
			method: "Lambert_Conformal_Conic_2SP", check: func(t *testing.T, c CRS) {
				p := c.(*Projected).Conversion().Parameters
				if math.Abs(p[transform.StandardParallel2]-45) > 1e-12 || math.Abs(p[transform.CentralMeridian]+96) > 1e-12 {
					t.Errorf("parameters %v", p)
				}
				if u := c.CoordinateSystem().Axis(0).Unit; math.Abs(u.Factor-1200.0/3937.0) > 1e-15 {
					t.Errorf("unit %v", u)
				}
			}},
		{def: "+proj=merc +lat_ts=30 +ellps=WGS84", kind: "projected", method: "Mercator_2SP"},
		{def: "+proj=aea +lat_1=29.5 +lat_2=45.5 +lat_0=23 +lon_0=-96 +datum=NAD83", kind: "projected", method: "Albers_Conic_Equal_Area"},
		{def: "+proj=geocent +datum=WGS84", kind: "geocentric"},
		{def: "+proj=longlat +ellps=WGS84 +axis=neu", kind: "geographic", check: func(t *testing.T, c CRS) {
			if c.CoordinateSystem().Axis(0).Direction != North {
				t.Error("latitude should come first")
			}
		}},
	}
	for _, test := range tests {
		t.Run(test.def, func(t *testing.T) {
			c, err := FromProj(test.def)
			if err != nil {
				t.Fatal(err)
			}
			var kind string
			switch cc := c.(type) {
			case *Geographic:
				kind = "geographic"
			case *Projected:
				kind = "projected"
				if cc.Conversion().Method != test.method {
					t.Errorf("method %q, want %q", cc.Conversion().Method, test.method)
				}
			case *Geocentric:
				kind = "geocentric"
			}
			if kind != test.kind {
				t.Fatalf("kind %q, want %q", kind, test.kind)
			}
			if test.check != nil {
				test.check(t, c)
			}
		})
	}
	if _, err := FromProj("+proj=krovak +ellps=bessel"); err == nil {
		t.Error("unsupported projection should fail")
	}
	if _, err := FromProj("not a projection"); err == nil {
		t.Error("garbage should fail")
	}
}
