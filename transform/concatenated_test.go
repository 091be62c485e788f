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
	"github.com/spatialmodel/georef/matrix"
)

func utm31(t *testing.T) MathTransform {
	t.Helper()
	tm, err := NewFactory().Create("Transverse_Mercator", Parameters{
		SemiMajor:       6378137,
		SemiMinor:       6378137 * (1 - 1/298.257223563),
		CentralMeridian: 3,
		ScaleFactor:     0.9996,
		FalseEasting:    500000,
	})
	if err != nil {
		t.Fatal(err)
	}
	return tm
}

func TestConcatenateCollapse(t *testing.T) {
	a := mustLinear(t, [][]float64{{2, 0, 1}, {0, 2, 1}, {0, 0, 1}})
	b := mustLinear(t, [][]float64{{0.5, 0, -0.5}, {0, 0.5, -0.5}, {0, 0, 1}})
	c, err := Concatenate(a, NewIdentity(2), b)
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsIdentity() {
		t.Errorf("a then its inverse should collapse to identity, have %v", c)
	}
	scale := mustLinear(t, [][]float64{{3, 0, 0}, {0, 3, 0}, {0, 0, 1}})
	c, err = Concatenate(a, scale)
	if err != nil {
		t.Fatal(err)
	}
	l, ok := c.(*Linear)
	if !ok {
		t.Fatalf("have %T, want *Linear", c)
	}
	want := mustMatrix(t, [][]float64{{6, 0, 3}, {0, 6, 3}, {0, 0, 1}})
	if !matrix.Equal(l.Matrix(), want) {
		t.Errorf("have %v, want %v", l.Matrix(), want)
	}
}

func TestConcatenateDimensionMismatch(t *testing.T) {
	drop := mustLinear(t, [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 0, 1}})
	_, err := Concatenate(drop, drop)
	if !errors.Is(err, georef.ErrDimensionMismatch) {
		t.Errorf("have %v", err)
	}
}

func TestConcatenateGrouping(t *testing.T) {
	a := mustLinear(t, [][]float64{{1, 0, 0.25}, {0, 1, -0.5}, {0, 0, 1}})
	b := utm31(t)
	c := mustLinear(t, [][]float64{{0.001, 0, 0}, {0, 0.001, 0}, {0, 0, 1}})
	ab, err := Concatenate(a, b)
	if err != nil {
		t.Fatal(err)
	}
	left, err := Concatenate(ab, c)
	if err != nil {
		t.Fatal(err)
	}
	bc, err := Concatenate(b, c)
	if err != nil {
		t.Fatal(err)
	}
	right, err := Concatenate(a, bc)
	if err != nil {
		t.Fatal(err)
	}
	pts := []float64{3, 45, 4.5, 50, 1, -20, 2.75, 0}
	l, err := TransformAll(left, pts)
	if err != nil {
		t.Fatal(err)
	}
	r, err := TransformAll(right, pts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range l {
		if math.Abs(l[i]-r[i]) > 1e-9 {
			t.Errorf("ordinate %d: (A·B)·C = %g, A·(B·C) = %g", i, l[i], r[i])
		}
	}
}

func TestConcatenatedInverseAndDerivative(t *testing.T) {
	tm := utm31(t)
	if _, ok := tm.(*Concatenated); !ok {
		t.Fatalf("projection should be a concatenation, have %T", tm)
	}
	inv, err := tm.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if again, _ := inv.Inverse(); again != tm {
		t.Error("inverse of inverse should be the original transform")
	}
	pt := []float64{4, 46}
	d, err := tm.Derivative(pt)
	if err != nil {
		t.Fatal(err)
	}
	num, err := numericDerivative(tm, pt, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if !matrix.EqualApprox(d, num, 1e-3, 1e-6) {
		t.Errorf("chain rule %v, numeric %v", d, num)
	}
	xy, err := TransformPoint(tm, pt)
	if err != nil {
		t.Fatal(err)
	}
	di, err := inv.Derivative(xy)
	if err != nil {
		t.Fatal(err)
	}
	p, err := matrix.Mul(di, d)
	if err != nil {
		t.Fatal(err)
	}
	if !matrix.IsIdentity(p, 1e-6) {
		t.Errorf("inverse derivative times derivative = %v", p)
	}
}

func TestConcatenatedBatchErrors(t *testing.T) {
	merc, err := NewFactory().Create("Mercator_1SP", Parameters{SemiMajor: 6378137})
	if err != nil {
		t.Fatal(err)
	}
	src := []float64{0, 0, 10, 90, 20, 45}
	dst := make([]float64, len(src))
	err = merc.Transform(src, 0, dst, 0, 3)
	if !errors.Is(err, georef.ErrProjectionDomain) {
		t.Fatalf("have %v", err)
	}
	if !math.IsNaN(dst[2]) || !math.IsNaN(dst[3]) {
		t.Errorf("failed point should be NaN, have %v", dst[2:4])
	}
	if dst[0] != 0 || math.IsNaN(dst[5]) {
		t.Errorf("remaining points should be converted, have %v", dst)
	}
}
