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
	"sort"
	"strings"
)

// Parameter names understood by the built-in operation methods. Angles
// are in degrees and lengths in metres.
const (
	SemiMajor         = "semi_major"
	SemiMinor         = "semi_minor"
	CentralMeridian   = "central_meridian"
	LatitudeOfOrigin  = "latitude_of_origin"
	StandardParallel1 = "standard_parallel_1"
	StandardParallel2 = "standard_parallel_2"
	ScaleFactor       = "scale_factor"
	FalseEasting      = "false_easting"
	FalseNorthing     = "false_northing"

	// Dim is the number of geographic dimensions (2 or 3) of the geocentric
	// conversions.
	Dim = "dim"

	// Helmert parameters in metres, arc-seconds and parts per million.
	Dx  = "dx"
	Dy  = "dy"
	Dz  = "dz"
	Ex  = "ex"
	Ey  = "ey"
	Ez  = "ez"
	PPM = "ppm"
)

// Parameters holds named parameter values for an operation method.
type Parameters map[string]float64

// Value returns the named parameter, or def if it is not set.
func (p Parameters) Value(name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// Clone returns a copy of p.
func (p Parameters) Clone() Parameters {
	o := make(Parameters, len(p))
	for k, v := range p {
		o[k] = v
	}
	return o
}

func (p Parameters) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = fmt.Sprintf("%s=%g", k, p[k])
	}
	return strings.Join(s, ", ")
}
