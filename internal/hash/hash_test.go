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

package hash

import (
	"math"
	"testing"
)

type datum struct {
	name   string
	params *[3]float64
	extra  map[string]float64
}

func TestHash(t *testing.T) {
	a := datum{name: "a", params: &[3]float64{1, 2, 3}, extra: map[string]float64{"x": 1, "y": 2}}
	b := datum{name: "a", params: &[3]float64{1, 2, 3}, extra: map[string]float64{"y": 2, "x": 1}}
	if Hash(a) != Hash(b) {
		t.Error("equal contents should give equal keys")
	}
	b.params[2] = 4
	if Hash(a) == Hash(b) {
		t.Error("different pointed-to contents should give different keys")
	}
	if Hash(a, b) == Hash(b, a) {
		t.Error("order should matter")
	}
	n := datum{params: &[3]float64{math.NaN(), 0, 0}}
	if Hash(n) != Hash(n) {
		t.Error("NaN values should hash consistently")
	}
}
