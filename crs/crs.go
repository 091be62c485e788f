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

// Package crs defines coordinate reference systems: geodetic datums,
// ellipsoids, coordinate systems and their axes, and the three kinds of
// reference system (geographic, projected and geocentric) between which
// coordinate operations are resolved.
package crs

import (
	"fmt"

	"github.com/spatialmodel/georef/transform"
)

// CRS is a coordinate reference system. It is implemented by *Geographic,
// *Projected and *Geocentric only.
type CRS interface {
	Name() string
	Datum() *Datum
	CoordinateSystem() *CoordinateSystem
	Dimension() int

	isCRS()
}

// Geographic is a reference system of longitude and latitude, optionally
// with ellipsoidal height, on a datum.
type Geographic struct {
	name  string
	datum *Datum
	cs    *CoordinateSystem
}

// NewGeographic creates a geographic reference system. The first two axes
// must be angular and the optional third linear.
func NewGeographic(name string, datum *Datum, cs *CoordinateSystem) (*Geographic, error) {
	if datum == nil || cs == nil {
		return nil, fmt.Errorf("georef: geographic CRS %q: missing datum or coordinate system", name)
	}
	if d := cs.Dimension(); d != 2 && d != 3 {
		return nil, fmt.Errorf("georef: geographic CRS %q: %d axes", name, d)
	}
	for i, a := range cs.axes {
		if (i < 2 && !a.Unit.IsAngular()) || (i == 2 && !a.Unit.IsLinear()) {
			return nil, fmt.Errorf("georef: geographic CRS %q: axis %q has unit %s", name, a.Name, a.Unit)
		}
	}
	return &Geographic{name: name, datum: datum, cs: cs}, nil
}

func mustGeographic(name string, datum *Datum, cs *CoordinateSystem) *Geographic {
	g, err := NewGeographic(name, datum, cs)
	if err != nil {
		panic(err)
	}
	return g
}

// Predefined geographic reference systems.
var (
	// WGS84 uses (longitude, latitude) order in degrees.
	WGS84 = mustGeographic("WGS 84", WGS84Datum, EllipsoidalLonLat)
	// EPSG4326 is WGS 84 with the (latitude, longitude) axis order of the
	// EPSG registry.
	EPSG4326 = mustGeographic("EPSG:4326", WGS84Datum, EllipsoidalLatLon)
)

// Name implements CRS.
func (g *Geographic) Name() string { return g.name }

// Datum implements CRS.
func (g *Geographic) Datum() *Datum { return g.datum }

// CoordinateSystem implements CRS.
func (g *Geographic) CoordinateSystem() *CoordinateSystem { return g.cs }

// Dimension implements CRS.
func (g *Geographic) Dimension() int { return g.cs.Dimension() }

func (g *Geographic) isCRS() {}

// Normalized returns the equivalent reference system with (longitude,
// latitude) axes in degrees on the same datum.
func (g *Geographic) Normalized() *Geographic {
	if g.cs == EllipsoidalLonLat {
		return g
	}
	return &Geographic{name: g.name + " (lon, lat)", datum: g.datum, cs: EllipsoidalLonLat}
}

func (g *Geographic) String() string {
	return fmt.Sprintf("GEOGCRS[%q, %v, %v]", g.name, g.datum, g.cs)
}

// Conversion is the map projection of a projected reference system. Its
// Parameters need not include the ellipsoid, which is taken from the base
// reference system.
type Conversion struct {
	Method     string
	Parameters transform.Parameters
}

// Projected is a reference system of planar coordinates obtained by
// projecting a geographic reference system.
type Projected struct {
	name       string
	base       *Geographic
	conversion Conversion
	cs         *CoordinateSystem
}

// NewProjected creates a projected reference system with two linear axes.
func NewProjected(name string, base *Geographic, conv Conversion, cs *CoordinateSystem) (*Projected, error) {
	if base == nil || cs == nil {
		return nil, fmt.Errorf("georef: projected CRS %q: missing base CRS or coordinate system", name)
	}
	if cs.Dimension() != 2 {
		return nil, fmt.Errorf("georef: projected CRS %q: %d axes", name, cs.Dimension())
	}
	for _, a := range cs.axes {
		if !a.Unit.IsLinear() {
			return nil, fmt.Errorf("georef: projected CRS %q: axis %q has unit %s", name, a.Name, a.Unit)
		}
	}
	conv.Parameters = conv.Parameters.Clone()
	return &Projected{name: name, base: base, conversion: conv, cs: cs}, nil
}

// UTM returns the Universal Transverse Mercator zone on the given datum,
// with easting and northing in metres.
func UTM(zone int, south bool, datum *Datum) (*Projected, error) {
	if zone < 1 || zone > 60 {
		return nil, fmt.Errorf("georef: invalid UTM zone %d", zone)
	}
	base, err := NewGeographic(datum.Name(), datum, EllipsoidalLonLat)
	if err != nil {
		return nil, err
	}
	p := transform.Parameters{
		transform.CentralMeridian: float64(6*zone - 183),
		transform.ScaleFactor:     0.9996,
		transform.FalseEasting:    500000,
	}
	hemi := "N"
	if south {
		p[transform.FalseNorthing] = 10000000
		hemi = "S"
	}
	return NewProjected(fmt.Sprintf("%s / UTM zone %d%s", datum.Name(), zone, hemi), base,
		Conversion{Method: "Transverse_Mercator", Parameters: p}, CartesianEN)
}

// Name implements CRS.
func (p *Projected) Name() string { return p.name }

// Datum implements CRS.
func (p *Projected) Datum() *Datum { return p.base.datum }

// CoordinateSystem implements CRS.
func (p *Projected) CoordinateSystem() *CoordinateSystem { return p.cs }

// Dimension implements CRS.
func (p *Projected) Dimension() int { return 2 }

// Base returns the projected geographic reference system.
func (p *Projected) Base() *Geographic { return p.base }

// Conversion returns the map projection.
func (p *Projected) Conversion() Conversion {
	return Conversion{Method: p.conversion.Method, Parameters: p.conversion.Parameters.Clone()}
}

func (p *Projected) isCRS() {}

func (p *Projected) String() string {
	return fmt.Sprintf("PROJCRS[%q, %v, %s[%v], %v]", p.name, p.base, p.conversion.Method, p.conversion.Parameters, p.cs)
}

// Geocentric is an earth-centred cartesian reference system.
type Geocentric struct {
	name  string
	datum *Datum
	cs    *CoordinateSystem
}

// NewGeocentric creates a geocentric reference system with three linear
// axes.
func NewGeocentric(name string, datum *Datum, cs *CoordinateSystem) (*Geocentric, error) {
	if datum == nil || cs == nil || cs.Dimension() != 3 {
		return nil, fmt.Errorf("georef: geocentric CRS %q needs a datum and three axes", name)
	}
	for _, a := range cs.axes {
		if !a.Unit.IsLinear() {
			return nil, fmt.Errorf("georef: geocentric CRS %q: axis %q has unit %s", name, a.Name, a.Unit)
		}
	}
	return &Geocentric{name: name, datum: datum, cs: cs}, nil
}

// Name implements CRS.
func (g *Geocentric) Name() string { return g.name }

// Datum implements CRS.
func (g *Geocentric) Datum() *Datum { return g.datum }

// CoordinateSystem implements CRS.
func (g *Geocentric) CoordinateSystem() *CoordinateSystem { return g.cs }

// Dimension implements CRS.
func (g *Geocentric) Dimension() int { return 3 }

func (g *Geocentric) isCRS() {}

func (g *Geocentric) String() string {
	return fmt.Sprintf("GEOCCRS[%q, %v, %v]", g.name, g.datum, g.cs)
}
