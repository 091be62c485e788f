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
	"context"
	"math"
	"testing"

	"github.com/spatialmodel/georef/crs"
	"github.com/spatialmodel/georef/operation"
	"github.com/spatialmodel/georef/transform"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		resolution             float64
	}{
		{name: "Valparaiso to Shanghai", lat1: -33, lon1: -71.6, lat2: 31.4, lon2: 121.8, resolution: 1000},
		{name: "across the antimeridian", lat1: 10, lon1: 170, lat2: -20, lon2: -150, resolution: 100},
		{name: "short", lat1: 48.85, lon1: 2.35, lat2: 48.86, lon2: 2.36, resolution: 1},
		{name: "over the pole", lat1: 80, lon1: 0, lat2: 80, lon2: 179, resolution: 500},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := NewCalculator(crs.WGS84Ellipsoid)
			c.SetStartGeographicPoint(test.lat1, test.lon1)
			c.SetEndGeographicPoint(test.lat2, test.lon2)
			az, err := c.StartingAzimuth()
			if err != nil {
				t.Fatal(err)
			}
			p, err := c.CreateGeodesicPath2D(test.resolution)
			if err != nil {
				t.Fatal(err)
			}
			ls, err := p.LineString()
			if err != nil {
				t.Fatal(err)
			}
			if len(ls) < 2 {
				t.Fatalf("only %d points", len(ls))
			}
			first, last := ls[0], ls[len(ls)-1]
			if first.X != test.lon1 || first.Y != test.lat1 {
				t.Errorf("first point %v", first)
			}
			if math.Abs(last.Y-test.lat2) > 1e-8 || angleDiff(last.X, test.lon2) > 1e-8 {
				t.Errorf("last point %v", last)
			}
			g := newSolver(crs.WGS84Ellipsoid)
			for i := 1; i < len(ls); i++ {
				a, b := ls[i-1], ls[i]
				if math.Abs(b.X-a.X) > 180 {
					t.Fatalf("longitude jumps from %g to %g", a.X, b.X)
				}
				// Every point lies on the geodesic.
				_, az1, _, err := g.inverse(test.lat1, test.lon1, b.Y, b.X)
				if err != nil {
					t.Fatal(err)
				}
				if angleDiff(az1, az) > 1e-6 {
					t.Errorf("point %d %v is off the geodesic: azimuth %g, want %g", i, b, az1, az)
				}
				// The chord between points stays within the resolution.
				sa, _, _, _ := g.inverse(test.lat1, test.lon1, a.Y, a.X)
				sb, _, _, _ := g.inverse(test.lat1, test.lon1, b.Y, b.X)
				mlat, mlon, _, err := g.direct(test.lat1, test.lon1, az, (sa+sb)/2)
				if err != nil {
					t.Fatal(err)
				}
				dev, _, _, err := g.inverse((a.Y+b.Y)/2, (a.X+b.X)/2, mlat, mlon)
				if err != nil {
					t.Fatal(err)
				}
				if dev >= test.resolution {
					t.Errorf("segment %d deviates by %g m", i, dev)
				}
			}

			// The path is restartable.
			again, err := p.LineString()
			if err != nil {
				t.Fatal(err)
			}
			if len(again) != len(ls) || again[len(again)-1] != last {
				t.Error("second pass differs")
			}
		})
	}
}

func TestPathAntimeridianUnwrap(t *testing.T) {
	c := NewCalculator(crs.WGS84Ellipsoid)
	c.SetStartGeographicPoint(0, 170)
	c.SetEndGeographicPoint(0, -170)
	p, err := c.CreateGeodesicPath2D(10)
	if err != nil {
		t.Fatal(err)
	}
	prev := math.Inf(-1)
	n := 0
	for pt := range p.All() {
		if pt.X <= prev {
			t.Fatalf("longitude %g after %g", pt.X, prev)
		}
		prev = pt.X
		n++
	}
	if p.Err() != nil {
		t.Fatal(p.Err())
	}
	if math.Abs(prev-190) > 1e-8 {
		t.Errorf("path should end at longitude 190, have %g", prev)
	}
	if n != 4 {
		t.Errorf("a path along the equator needs only its seed points, have %d points", n)
	}
}

func TestPathErrors(t *testing.T) {
	c := NewCalculator(crs.WGS84Ellipsoid)
	if _, err := c.CreateGeodesicPath2D(100); err == nil {
		t.Error("path without points should fail")
	}
	c.SetStartGeographicPoint(0, 0)
	c.SetEndGeographicPoint(1, 1)
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := c.CreateGeodesicPath2D(r); err == nil {
			t.Errorf("resolution %g should fail", r)
		}
	}
	c.SetEndGeographicPoint(0.5, 179.5)
	if _, err := c.CreateGeodesicPath2D(100); err == nil {
		t.Error("nearly antipodal path should fail")
	}

	c.SetEndGeographicPoint(0, 0)
	p, err := c.CreateGeodesicPath2D(100)
	if err != nil {
		t.Fatal(err)
	}
	ls, err := p.LineString()
	if err != nil || len(ls) != 1 || ls[0].X != 0 || ls[0].Y != 0 {
		t.Errorf("a zero-length path should have a single point: %v, %v", ls, err)
	}
}

func TestCalculatorForCRS(t *testing.T) {
	ops := operation.NewFactory(nil)
	c, err := NewCalculatorForCRS(crs.EPSG4326, ops)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetStartingPosition([]float64{-33, -71.6}); err != nil {
		t.Fatal(err)
	}
	if err := c.SetEndPosition([]float64{31.4, 121.8}); err != nil {
		t.Fatal(err)
	}
	s, err := c.GeodesicDistance()
	if err != nil || math.Abs(s-18752493.521) > 1e-3 {
		t.Errorf("distance %.4f, %v", s, err)
	}
	c.SetDirection(90, 1113194.908)
	if err := c.SetStartingPosition([]float64{0, 0}); err != nil {
		t.Fatal(err)
	}
	end, err := c.EndPosition()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(end[0]) > 1e-9 || math.Abs(end[1]-10) > 1e-8 {
		t.Errorf("end position %v should be (latitude, longitude)", end)
	}

	utm, err := crs.UTM(31, false, crs.WGS84Datum)
	if err != nil {
		t.Fatal(err)
	}
	pc, err := NewCalculatorForCRS(utm, ops)
	if err != nil {
		t.Fatal(err)
	}
	if pc.Ellipsoid() != crs.WGS84Ellipsoid || pc.CRS() != utm {
		t.Error("calculator should use the datum ellipsoid")
	}
	pc.SetStartingPosition([]float64{500000, 4982950.400})
	pc.SetEndPosition([]float64{736446.026, 4987329.505})
	lat, lon, err := pc.EndPoint()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lat-45) > 1e-7 || math.Abs(lon-6) > 1e-7 {
		t.Errorf("end point (%g, %g)", lat, lon)
	}
	p, err := pc.CreateGeodesicPath2D(10)
	if err != nil {
		t.Fatal(err)
	}
	ls, err := p.LineString()
	if err != nil {
		t.Fatal(err)
	}
	if last := ls[len(ls)-1]; math.Abs(last.X-736446.026) > 1e-2 || math.Abs(last.Y-4987329.505) > 1e-2 {
		t.Errorf("projected path ends at %v", last)
	}
	// The deviation is measured geographically, so the projected path has
	// the points of the geographic one.
	lat1, lon1, err := pc.StartPoint()
	if err != nil {
		t.Fatal(err)
	}
	gc := NewCalculator(crs.WGS84Ellipsoid)
	gc.SetStartGeographicPoint(lat1, lon1)
	gc.SetEndGeographicPoint(lat, lon)
	gp, err := gc.CreateGeodesicPath2D(10)
	if err != nil {
		t.Fatal(err)
	}
	gls, err := gp.LineString()
	if err != nil {
		t.Fatal(err)
	}
	if len(gls) != len(ls) {
		t.Errorf("projected path has %d points, geographic path %d", len(ls), len(gls))
	}

	geocent, err := crs.NewGeocentric("geocentric", crs.WGS84Datum, crs.GeocentricXYZ)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewCalculatorForCRS(geocent, ops); err == nil {
		t.Error("geocentric CRS should be rejected")
	}
	if _, err := NewCalculator(crs.Sphere).EndPosition(); err == nil {
		t.Error("calculator without CRS has no positions")
	}
}

func TestPathInUserCRS(t *testing.T) {
	ops := operation.NewFactory(nil)
	c, err := NewCalculatorForCRS(crs.EPSG4326, ops)
	if err != nil {
		t.Fatal(err)
	}
	c.SetStartGeographicPoint(0, 170)
	c.SetEndGeographicPoint(0, -170)
	p, err := c.CreateGeodesicPath2D(10)
	if err != nil {
		t.Fatal(err)
	}
	ls, err := p.LineString()
	if err != nil {
		t.Fatal(err)
	}
	op, err := ops.CreateOperation(context.Background(), crs.WGS84, crs.EPSG4326)
	if err != nil {
		t.Fatal(err)
	}
	want, err := transform.TransformPoint(op.Transform, []float64{190, 0})
	if err != nil {
		t.Fatal(err)
	}
	last := ls[len(ls)-1]
	if math.Abs(last.X-want[0]) > 1e-8 || math.Abs(last.Y-want[1]) > 1e-8 {
		t.Errorf("last point %v, want %v", last, want)
	}
}
