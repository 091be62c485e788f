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
	"strings"
)

// CoordinateSystem is an ordered set of axes.
type CoordinateSystem struct {
	name string
	axes []Axis
}

// NewCoordinateSystem creates a coordinate system from its axes.
func NewCoordinateSystem(name string, axes ...Axis) (*CoordinateSystem, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("georef: coordinate system %q has no axes", name)
	}
	for i := range axes {
		for j := i + 1; j < len(axes); j++ {
			if a := AngleBetween(axes[i], axes[j]); a == 0 || a == 180 {
				return nil, fmt.Errorf("georef: coordinate system %q: axes %q and %q are colinear",
					name, axes[i].Name, axes[j].Name)
			}
		}
	}
	return &CoordinateSystem{name: name, axes: append([]Axis(nil), axes...)}, nil
}

func mustCS(name string, axes ...Axis) *CoordinateSystem {
	cs, err := NewCoordinateSystem(name, axes...)
	if err != nil {
		panic(err)
	}
	return cs
}

// Predefined coordinate systems.
var (
	// EllipsoidalLonLat is the normalized geographic coordinate system used
	// internally: longitude east then latitude north, in degrees.
	EllipsoidalLonLat = mustCS("Ellipsoidal 2D (lon, lat)",
		Axis{Name: "Geodetic longitude", Abbreviation: "Lon", Direction: East, Unit: Degree},
		Axis{Name: "Geodetic latitude", Abbreviation: "Lat", Direction: North, Unit: Degree})

	// EllipsoidalLatLon is the axis order of EPSG geographic systems.
	EllipsoidalLatLon = mustCS("Ellipsoidal 2D (lat, lon)",
		Axis{Name: "Geodetic latitude", Abbreviation: "Lat", Direction: North, Unit: Degree},
		Axis{Name: "Geodetic longitude", Abbreviation: "Lon", Direction: East, Unit: Degree})

	EllipsoidalLonLatHeight = mustCS("Ellipsoidal 3D (lon, lat, h)",
		Axis{Name: "Geodetic longitude", Abbreviation: "Lon", Direction: East, Unit: Degree},
		Axis{Name: "Geodetic latitude", Abbreviation: "Lat", Direction: North, Unit: Degree},
		Axis{Name: "Ellipsoidal height", Abbreviation: "h", Direction: Up, Unit: Metre})

	// CartesianEN is the normalized projected coordinate system.
	CartesianEN = mustCS("Cartesian 2D (E, N)",
		Axis{Name: "Easting", Abbreviation: "E", Direction: East, Unit: Metre},
		Axis{Name: "Northing", Abbreviation: "N", Direction: North, Unit: Metre})

	CartesianNE = mustCS("Cartesian 2D (N, E)",
		Axis{Name: "Northing", Abbreviation: "N", Direction: North, Unit: Metre},
		Axis{Name: "Easting", Abbreviation: "E", Direction: East, Unit: Metre})

	GeocentricXYZ = mustCS("Cartesian 3D (X, Y, Z)",
		Axis{Name: "Geocentric X", Abbreviation: "X", Direction: GeocentricX, Unit: Metre},
		Axis{Name: "Geocentric Y", Abbreviation: "Y", Direction: GeocentricY, Unit: Metre},
		Axis{Name: "Geocentric Z", Abbreviation: "Z", Direction: GeocentricZ, Unit: Metre})
)

// Name returns the coordinate system name.
func (cs *CoordinateSystem) Name() string { return cs.name }

// Dimension returns the number of axes.
func (cs *CoordinateSystem) Dimension() int { return len(cs.axes) }

// Axis returns axis i.
func (cs *CoordinateSystem) Axis(i int) Axis { return cs.axes[i] }

// Axes returns a copy of the axes.
func (cs *CoordinateSystem) Axes() []Axis { return append([]Axis(nil), cs.axes...) }

// IsRightHanded reports whether the first two axes form a right-handed
// pair, such as (East, North) or
// ("North along 90 deg East", "North along 0 deg").
func (cs *CoordinateSystem) IsRightHanded() bool {
	return len(cs.axes) >= 2 && AngleBetween(cs.axes[0], cs.axes[1]) == 90
}

func (cs *CoordinateSystem) String() string {
	s := make([]string, len(cs.axes))
	for i, a := range cs.axes {
		s[i] = a.String()
	}
	return cs.name + "[" + strings.Join(s, "; ") + "]"
}
