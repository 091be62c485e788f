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
	"testing"
)

func TestGeocentric(t *testing.T) {
	g, err := NewGeographicToGeocentric(wgs84A, wgs84B, true)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		lon, lat, h float64
		x, y, z     float64
	}{
		{0, 0, 0, wgs84A, 0, 0},
		{90, 0, 100, 0, wgs84A + 100, 0},
		{0, 90, 0, 0, 0, wgs84B},
		{180, -90, 0, 0, 0, -wgs84B},
	}
	for _, test := range tests {
		out, err := TransformPoint(g, []float64{test.lon, test.lat, test.h})
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(out[0]-test.x) > 1e-6 || math.Abs(out[1]-test.y) > 1e-6 || math.Abs(out[2]-test.z) > 1e-6 {
			t.Errorf("(%g, %g, %g): have %v, want (%g, %g, %g)", test.lon, test.lat, test.h, out, test.x, test.y, test.z)
		}
	}
}

func TestGeocentricRoundTrip(t *testing.T) {
	for _, hasHeight := range []bool{true, false} {
		g, err := NewGeographicToGeocentric(wgs84A, wgs84B, hasHeight)
		if err != nil {
			t.Fatal(err)
		}
		inv, err := g.Inverse()
		if err != nil {
			t.Fatal(err)
		}
		if inv.SourceDimensions() != 3 || inv.TargetDimensions() != g.SourceDimensions() {
			t.Fatalf("inverse dimensions %d->%d", inv.SourceDimensions(), inv.TargetDimensions())
		}
		pts := [][]float64{{10, 45, 1500}, {-120.5, -33.3, -20}, {179.9, 89.99, 0}, {0, 0, 8000}}
		for _, p := range pts {
			in := p[:g.SourceDimensions()]
			xyz, err := TransformPoint(g, in)
			if err != nil {
				t.Fatal(err)
			}
			back, err := TransformPoint(inv, xyz)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(back[0]-in[0]) > 1e-9 || math.Abs(back[1]-in[1]) > 1e-9 {
				t.Errorf("have %v, want %v", back, in)
			}
			if hasHeight && math.Abs(back[2]-in[2]) > 1e-5 {
				t.Errorf("height: have %g, want %g", back[2], in[2])
			}
		}
	}
}

func TestGeocentricInvalidAxes(t *testing.T) {
	if _, err := NewGeographicToGeocentric(6356752, 6378137, false); err == nil {
		t.Error("semi-minor larger than semi-major should fail")
	}
}
