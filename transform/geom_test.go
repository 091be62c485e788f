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
	"testing"

	"github.com/ctessum/geom"
)

func TestTransformGeom(t *testing.T) {
	shift, err := NewScaleTranslate([]float64{1, 2}, []float64{10, 0})
	if err != nil {
		t.Fatal(err)
	}
	poly := geom.Polygon{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}}
	g, err := TransformGeom(shift, poly)
	if err != nil {
		t.Fatal(err)
	}
	want := geom.Polygon{{{X: 10, Y: 0}, {X: 11, Y: 0}, {X: 11, Y: 2}, {X: 10, Y: 0}}}
	if !g.Similar(want, 1e-12) {
		t.Errorf("have %v, want %v", g, want)
	}
	// The input must not be modified.
	if poly[0][2].Y != 1 {
		t.Error("input polygon modified")
	}
	ls, err := TransformGeom(shift, geom.LineString{{X: 1, Y: 1}, {X: 2, Y: 3}})
	if err != nil {
		t.Fatal(err)
	}
	if l := ls.(geom.LineString); l[1].X != 12 || l[1].Y != 6 {
		t.Errorf("have %v", l)
	}
	if _, err := TransformGeom(shift, geom.GeometryCollection{}); err == nil {
		t.Error("unsupported geometry should fail")
	}
}

func TestProjTransformer(t *testing.T) {
	merc, err := NewFactory().Create("Mercator_1SP", Parameters{SemiMajor: wgs84A})
	if err != nil {
		t.Fatal(err)
	}
	pt, err := ProjTransformer(merc)
	if err != nil {
		t.Fatal(err)
	}
	g, err := geom.Point{X: 10, Y: 0}.Transform(pt)
	if err != nil {
		t.Fatal(err)
	}
	p := g.(geom.Point)
	if different(p.X, 1113194.9079327357, 1e-12) || p.Y > 1e-6 {
		t.Errorf("have %v", p)
	}
}
