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

	"github.com/ctessum/unit"
)

// Unit is a unit of measure for coordinate system axes. Factor converts a
// value in the unit to the SI unit of its dimension (metres or radians).
type Unit struct {
	Name       string
	Factor     float64
	Dimensions unit.Dimensions
}

// Predefined units.
var (
	Metre         = Unit{Name: "metre", Factor: 1, Dimensions: unit.Dimensions{unit.LengthDim: 1}}
	Kilometre     = Unit{Name: "kilometre", Factor: 1000, Dimensions: unit.Dimensions{unit.LengthDim: 1}}
	Foot          = Unit{Name: "foot", Factor: 0.3048, Dimensions: unit.Dimensions{unit.LengthDim: 1}}
	USSurveyFoot  = Unit{Name: "US survey foot", Factor: 1200.0 / 3937.0, Dimensions: unit.Dimensions{unit.LengthDim: 1}}
	Radian        = Unit{Name: "radian", Factor: 1, Dimensions: unit.Dimensions{unit.AngleDim: 1}}
	Degree        = Unit{Name: "degree", Factor: math.Pi / 180, Dimensions: unit.Dimensions{unit.AngleDim: 1}}
	Grad          = Unit{Name: "grad", Factor: math.Pi / 200, Dimensions: unit.Dimensions{unit.AngleDim: 1}}
	ArcSecond     = Unit{Name: "arc-second", Factor: math.Pi / (180 * 3600), Dimensions: unit.Dimensions{unit.AngleDim: 1}}
	Dimensionless = Unit{Name: "unity", Factor: 1, Dimensions: unit.Dimless}
)

// IsLinear reports whether u measures length.
func (u Unit) IsLinear() bool { return u.Dimensions.Matches(unit.Dimensions{unit.LengthDim: 1}) }

// IsAngular reports whether u measures plane angle.
func (u Unit) IsAngular() bool { return u.Dimensions.Matches(unit.Dimensions{unit.AngleDim: 1}) }

// Quantity returns v in u as an SI quantity.
func (u Unit) Quantity(v float64) *unit.Unit {
	return unit.New(v*u.Factor, u.Dimensions)
}

// ScaleTo returns the factor that converts values in u to values in o. It
// fails if the units have different dimensions.
func (u Unit) ScaleTo(o Unit) (float64, error) {
	if err := u.Quantity(1).Check(o.Dimensions); err != nil {
		return math.NaN(), fmt.Errorf("georef: cannot convert %s to %s: %v", u.Name, o.Name, err)
	}
	return u.Factor / o.Factor, nil
}

func (u Unit) String() string { return u.Name }
