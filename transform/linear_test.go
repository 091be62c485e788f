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

func different(a, b, tolerance float64) bool {
	if a == b {
		return false
	}
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func mustMatrix(t *testing.T, rows [][]float64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func mustLinear(t *testing.T, rows [][]float64) MathTransform {
	t.Helper()
	l, err := NewLinear(mustMatrix(t, rows))
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestLinearAffine(t *testing.T) {
	l := mustLinear(t, [][]float64{
		{2, 0, 10},
		{0, -3, 5},
		{0, 0, 1},
	})
	src := []float64{1, 1, -2, 4, 0, 0}
	dst := make([]float64, 6)
	if err := l.Transform(src, 0, dst, 0, 3); err != nil {
		t.Fatal(err)
	}
	want := []float64{12, 2, 6, -7, 10, 5}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("ordinate %d: have %g, want %g", i, dst[i], want[i])
		}
	}
	inv, err := l.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if err := inv.Transform(dst, 0, dst, 0, 3); err != nil {
		t.Fatal(err)
	}
	for i := range src {
		if math.Abs(dst[i]-src[i]) > 1e-12 {
			t.Errorf("round trip ordinate %d: have %g, want %g", i, dst[i], src[i])
		}
	}
	again, err := inv.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if again != l {
		t.Error("inverse of inverse should be the original transform")
	}
	d, err := l.Derivative([]float64{3, 3})
	if err != nil {
		t.Fatal(err)
	}
	if d.At(0, 0) != 2 || d.At(1, 1) != -3 || d.At(0, 1) != 0 {
		t.Errorf("derivative = %v", d)
	}
}

func TestLinearOverlappingBuffers(t *testing.T) {
	l := mustLinear(t, [][]float64{{1, 0, 1}, {0, 1, 1}, {0, 0, 1}})
	buf := []float64{0, 0, 1, 1, 2, 2, 0, 0}
	// Shift the points one position to the right in place.
	if err := l.Transform(buf, 0, buf, 2, 3); err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0, 1, 1, 2, 2, 3, 3}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("have %v, want %v", buf, want)
		}
	}
}

func TestLinearProjective(t *testing.T) {
	l := mustLinear(t, [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0.5, 0, 1},
	})
	out, err := TransformPoint(l, []float64{2, 4})
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != 1 || out[1] != 2 {
		t.Errorf("have %v, want [1 2]", out)
	}
	d, err := l.Derivative([]float64{2, 4})
	if err != nil {
		t.Fatal(err)
	}
	num, err := numericDerivative(l, []float64{2, 4}, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if !matrix.EqualApprox(d, num, 1e-7, 1e-7) {
		t.Errorf("analytic %v, numeric %v", d, num)
	}
}

func TestLinearNoninvertible(t *testing.T) {
	l := mustLinear(t, [][]float64{{1, 2, 0}, {2, 4, 0}, {0, 0, 1}})
	if _, err := l.Inverse(); !errors.Is(err, georef.ErrNoninvertible) {
		t.Errorf("singular: have %v", err)
	}
	drop := mustLinear(t, [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 0, 1}})
	if drop.SourceDimensions() != 3 || drop.TargetDimensions() != 2 {
		t.Fatalf("dimensions %d->%d", drop.SourceDimensions(), drop.TargetDimensions())
	}
	if _, err := drop.Inverse(); !errors.Is(err, georef.ErrNoninvertible) {
		t.Errorf("non-square: have %v", err)
	}
}

func TestLinearIdentity(t *testing.T) {
	l, err := NewLinear(matrix.Identity(3))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l.(*Identity); !ok || !l.IsIdentity() {
		t.Errorf("have %T", l)
	}
}

func TestBufferBounds(t *testing.T) {
	l := mustLinear(t, [][]float64{{2, 0, 0}, {0, 2, 0}, {0, 0, 1}})
	err := l.Transform(make([]float64, 4), 0, make([]float64, 2), 0, 2)
	if !errors.Is(err, georef.ErrDimensionMismatch) {
		t.Errorf("have %v", err)
	}
	if _, err := TransformPoint(l, []float64{1, 2, 3}); !errors.Is(err, georef.ErrDimensionMismatch) {
		t.Errorf("have %v", err)
	}
}

func TestBursaWolf(t *testing.T) {
	p, ok := NewBursaWolf([]float64{-87, -98, -121})
	if !ok {
		t.Fatal("three parameters should be accepted")
	}
	tr, err := p.Transform()
	if err != nil {
		t.Fatal(err)
	}
	out, err := TransformPoint(tr, []float64{4e6, 5e5, 4.8e6})
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != 4e6-87 || out[1] != 5e5-98 || out[2] != 4.8e6-121 {
		t.Errorf("have %v", out)
	}
	if _, ok := NewBursaWolf([]float64{1, 2}); ok {
		t.Error("two parameters should be rejected")
	}
	rot := BursaWolf{Ez: 1}
	m := rot.Matrix()
	rs := math.Pi / (180 * 3600)
	if m.At(0, 1) != -rs || m.At(1, 0) != rs {
		t.Errorf("rotation matrix %v", m)
	}
}
