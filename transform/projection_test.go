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
	"errors"
	"math"
	"testing"

	"github.com/spatialmodel/georef"
)

const (
	wgs84A = 6378137.0
	wgs84B = 6378137.0 * (1 - 1/298.257223563)

	clarke1866A = 6378206.4
	clarke1866B = 6356583.8
)

func TestProjectionKnownValues(t *testing.T) {
	f := NewFactory()
	tests := []struct {
		name      string
		method    string
		params    Parameters
		lon, lat  float64
		x, y, tol float64
	}{
		{
			name:   "UTM 31N on central meridian",
			method: "Transverse_Mercator",
			params: Parameters{SemiMajor: wgs84A, SemiMinor: wgs84B, CentralMeridian: 3, ScaleFactor: 0.9996, FalseEasting: 500000},
			lon:    3, lat: 45, x: 500000, y: 4982950.400, tol: 1e-3,
		},
		{
			name:   "UTM 31N off central meridian",
			method: "tmerc",
			params: Parameters{SemiMajor: wgs84A, SemiMinor: wgs84B, CentralMeridian: 3, ScaleFactor: 0.9996, FalseEasting: 500000},
			lon:    6, lat: 45, x: 736446.026, y: 4987329.505, tol: 1e-3,
		},
		{
			name:   "world Mercator",
			method: "Mercator_1SP",
			params: Parameters{SemiMajor: wgs84A, SemiMinor: wgs84B},
			lon:    10, lat: 45, x: 1113194.908, y: 5591295.919, tol: 1e-3,
		},
		{
			name:   "spherical Mercator",
			method: "merc",
			params: Parameters{SemiMajor: wgs84A},
			lon:    0, lat: 45, x: 0, y: 5621521.486, tol: 1e-3,
		},
		{
			name:   "Lambert conformal conic, Snyder example",
			method: "Lambert_Conformal_Conic_2SP",
			params: Parameters{SemiMajor: clarke1866A, SemiMinor: clarke1866B, CentralMeridian: -96,
				LatitudeOfOrigin: 23, StandardParallel1: 33, StandardParallel2: 45},
			lon: -75, lat: 35, x: 1894410.898, y: 1564649.478, tol: 1e-2,
		},
		{
			name:   "Albers equal area, Snyder example",
			method: "Albers",
			params: Parameters{SemiMajor: clarke1866A, SemiMinor: clarke1866B, CentralMeridian: -96,
				LatitudeOfOrigin: 23, StandardParallel1: 29.5, StandardParallel2: 45.5},
			lon: -75, lat: 35, x: 1885472.726, y: 1535925.005, tol: 1e-2,
		},
		{
			name:   "equirectangular",
			method: "Equidistant_Cylindrical",
			params: Parameters{SemiMajor: 6371007, StandardParallel1: 60, FalseEasting: 100},
			lon:    90, lat: -45, x: 100 + 6371007*0.5*math.Pi/2, y: -6371007 * math.Pi / 4, tol: 1e-6,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tr, err := f.Create(test.method, test.params)
			if err != nil {
				t.Fatal(err)
			}
			out, err := TransformPoint(tr, []float64{test.lon, test.lat})
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(out[0]-test.x) > test.tol || math.Abs(out[1]-test.y) > test.tol {
				t.Errorf("have (%.4f, %.4f), want (%.4f, %.4f)", out[0], out[1], test.x, test.y)
			}
		})
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	f := NewFactory()
	tests := []struct {
		method string
		params Parameters
		pts    []float64
		tol    float64
	}{
		{"Mercator_1SP", Parameters{SemiMajor: wgs84A, SemiMinor: wgs84B, CentralMeridian: -60, FalseNorthing: 1e6},
			[]float64{-60, 0, -10, 80, -170, -75, 0, 33}, 1e-9},
		{"Mercator_2SP", Parameters{SemiMajor: wgs84A, SemiMinor: wgs84B, StandardParallel1: 42},
			[]float64{5, 42, 30, -60}, 1e-9},
		{"Transverse_Mercator", Parameters{SemiMajor: wgs84A, SemiMinor: wgs84B, CentralMeridian: 9, ScaleFactor: 0.9996,
			FalseEasting: 500000, FalseNorthing: 10000000}, []float64{9, -33, 11.5, -45, 6.5, 10, 8, -80}, 1e-7},
		{"Transverse_Mercator", Parameters{SemiMajor: 6371000, LatitudeOfOrigin: 49, CentralMeridian: -2}, []float64{-2, 49, 5, 55, -8, 40}, 1e-9},
		{"Lambert_Conformal_Conic_1SP", Parameters{SemiMajor: wgs84A, SemiMinor: wgs84B, LatitudeOfOrigin: 46.8,
			CentralMeridian: 2.337, ScaleFactor: 0.99987742, FalseEasting: 600000, FalseNorthing: 2200000},
			[]float64{2.337, 46.8, -4, 48, 7, 43}, 1e-9},
		{"lcc", Parameters{SemiMajor: wgs84A, SemiMinor: wgs84B, LatitudeOfOrigin: -32, StandardParallel1: -28,
			StandardParallel2: -36, CentralMeridian: 135}, []float64{135, -32, 120, -20, 150, -44}, 1e-9},
		{"Albers_Conic_Equal_Area", Parameters{SemiMajor: 6378137, SemiMinor: 6356752.314140356,
			LatitudeOfOrigin: 23, StandardParallel1: 29.5, StandardParallel2: 45.5, CentralMeridian: -96},
			[]float64{-96, 23, -120, 48, -70, 30, -100, 89.9}, 1e-9},
		{"Equirectangular", Parameters{SemiMajor: wgs84A, LatitudeOfOrigin: 10, CentralMeridian: 20},
			[]float64{20, 10, -179, -89, 179, 89}, 1e-9},
	}
	for _, test := range tests {
		t.Run(test.method, func(t *testing.T) {
			tr, err := f.Create(test.method, test.params)
			if err != nil {
				t.Fatal(err)
			}
			inv, err := tr.Inverse()
			if err != nil {
				t.Fatal(err)
			}
			xy, err := TransformAll(tr, test.pts)
			if err != nil {
				t.Fatal(err)
			}
			back, err := TransformAll(inv, xy)
			if err != nil {
				t.Fatal(err)
			}
			for i := range test.pts {
				if math.Abs(back[i]-test.pts[i]) > test.tol {
					t.Errorf("ordinate %d: have %.12f, want %.12f", i, back[i], test.pts[i])
				}
			}
		})
	}
}

func TestProjectionDomain(t *testing.T) {
	f := NewFactory()
	tm, err := f.Create("Transverse_Mercator", Parameters{SemiMajor: wgs84A, SemiMinor: wgs84B})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := TransformPoint(tm, []float64{120, 10}); !errors.Is(err, georef.ErrProjectionDomain) {
		t.Errorf("far from central meridian: have %v", err)
	}
	lcc, err := f.Create("lcc", Parameters{SemiMajor: wgs84A, StandardParallel1: 30, StandardParallel2: 60})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := TransformPoint(lcc, []float64{0, -90}); !errors.Is(err, georef.ErrProjectionDomain) {
		t.Errorf("opposite pole: have %v", err)
	}
	if _, err := f.Create("lcc", Parameters{SemiMajor: wgs84A, StandardParallel1: 30, StandardParallel2: -30}); err == nil {
		t.Error("symmetric standard parallels should fail")
	}
}

func TestMercatorAnalyticDerivative(t *testing.T) {
	k := mercator{e: math.Sqrt(1 - wgs84B*wgs84B/(wgs84A*wgs84A))}
	p := &projection{method: "Mercator_1SP", k: k}
	pt := []float64{0.3, 0.8}
	d, err := p.Derivative(pt)
	if err != nil {
		t.Fatal(err)
	}
	num, err := numericDerivative(p, pt, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(d.At(i, j)-num.At(i, j)) > 1e-7 {
				t.Errorf("(%d,%d): analytic %g, numeric %g", i, j, d.At(i, j), num.At(i, j))
			}
		}
	}
}
