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
	"strings"

	"github.com/ctessum/geom/proj"
	"github.com/spatialmodel/georef/transform"
)

// FromProj creates a reference system from a proj4 string such as
// "+proj=utm +zone=33 +datum=WGS84" or from OGC WKT.
func FromProj(def string) (CRS, error) {
	sr, err := proj.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("georef: parsing %q: %w", def, err)
	}
	datum, err := datumFromSR(sr)
	if err != nil {
		return nil, err
	}
	name := sr.Title
	if name == "" {
		name = strings.TrimSpace(def)
	}
	switch strings.ToLower(sr.Name) {
	case "longlat", "latlong", "lonlat", "latlon", "identity":
		cs, err := axesFromSR(sr, Degree, "Geodetic longitude", "Geodetic latitude")
		if err != nil {
			return nil, err
		}
		return NewGeographic(name, datum, cs)
	case "geocent":
		return NewGeocentric(name, datum, GeocentricXYZ)
	}
	conv, err := conversionFromSR(sr)
	if err != nil {
		return nil, err
	}
	base, err := NewGeographic(datum.Name(), datum, EllipsoidalLonLat)
	if err != nil {
		return nil, err
	}
	u := Metre
	if sr.ToMeter != 1 && !math.IsNaN(sr.ToMeter) {
		u = Unit{Name: sr.Units, Factor: sr.ToMeter, Dimensions: Metre.Dimensions}
		if u.Name == "" {
			u.Name = fmt.Sprintf("%g m", sr.ToMeter)
		}
	}
	cs, err := axesFromSR(sr, u, "Easting", "Northing")
	if err != nil {
		return nil, err
	}
	return NewProjected(name, base, conv, cs)
}

func datumFromSR(sr *proj.SR) (*Datum, error) {
	ename := sr.EllipseName
	if ename == "" {
		ename = sr.Ellps
	}
	var e Ellipsoid
	var err error
	if !math.IsNaN(sr.Rf) {
		e, err = NewEllipsoid(ename, sr.A, sr.Rf)
	} else {
		e, err = NewEllipsoidAB(ename, sr.A, sr.B)
	}
	if err != nil {
		return nil, err
	}
	pm := Greenwich
	if !math.IsNaN(sr.FromGreenwich) && sr.FromGreenwich != 0 {
		pm = PrimeMeridian{Name: "unnamed", Longitude: sr.FromGreenwich * 180 / math.Pi}
	}
	dname := sr.DatumName
	if dname == "" {
		dname = sr.DatumCode
	}
	if dname == "" {
		dname = "Unknown datum based upon " + ename
	}
	var toWGS84 *transform.BursaWolf
	if bw, ok := transform.NewBursaWolf(sr.DatumParams); ok {
		toWGS84 = &bw
	}
	return NewDatum(dname, e, pm, toWGS84), nil
}

// axesFromSR builds a two-dimensional coordinate system from the proj
// "+axis" setting, such as "enu" or "neu".
func axesFromSR(sr *proj.SR, u Unit, eastName, northName string) (*CoordinateSystem, error) {
	order := sr.Axis
	if len(order) < 2 {
		order = "enu"
	}
	var axes []Axis
	for _, c := range order[:2] {
		var a Axis
		switch c {
		case 'e':
			a = Axis{Name: eastName, Direction: East}
		case 'w':
			a = Axis{Name: eastName, Direction: West}
		case 'n':
			a = Axis{Name: northName, Direction: North}
		case 's':
			a = Axis{Name: northName, Direction: South}
		default:
			return nil, fmt.Errorf("georef: unsupported axis order %q", sr.Axis)
		}
		a.Unit = u
		axes = append(axes, a)
	}
	return NewCoordinateSystem(order[:2], axes...)
}

// conversionFromSR maps a proj projection to an operation method. The
// parameter names follow the OGC conventions used by transform.Factory.
func conversionFromSR(sr *proj.SR) (Conversion, error) {
	deg := func(rad float64) float64 { return rad * 180 / math.Pi }
	set := func(p transform.Parameters, name string, v float64, toDeg bool) {
		if math.IsNaN(v) {
			return
		}
		if toDeg {
			v = deg(v)
		}
		p[name] = v
	}
	p := transform.Parameters{}
	set(p, transform.CentralMeridian, sr.Long0, true)
	set(p, transform.FalseEasting, sr.X0, false)
	set(p, transform.FalseNorthing, sr.Y0, false)
	scale := func() { set(p, transform.ScaleFactor, sr.K0, false) }
	origin := func() { set(p, transform.LatitudeOfOrigin, sr.Lat0, true) }
	parallels := func() {
		set(p, transform.StandardParallel1, sr.Lat1, true)
		set(p, transform.StandardParallel2, sr.Lat2, true)
	}

	method := sr.Name
	switch strings.ToLower(sr.Name) {
	case "utm":
		if math.IsNaN(sr.Zone) {
			return Conversion{}, fmt.Errorf("georef: UTM projection without zone")
		}
		zone := math.Abs(sr.Zone)
		p = transform.Parameters{
			transform.CentralMeridian: 6*zone - 183,
			transform.ScaleFactor:     0.9996,
			transform.FalseEasting:    500000,
		}
		if sr.UTMSouth {
			p[transform.FalseNorthing] = 10000000
		}
		method = "Transverse_Mercator"
	case "merc", "mercator", "mercator_1sp":
		if !math.IsNaN(sr.LatTS) {
			method = "Mercator_2SP"
			set(p, transform.StandardParallel1, sr.LatTS, true)
		} else {
			method = "Mercator_1SP"
			scale()
		}
	case "mercator_2sp":
		set(p, transform.StandardParallel1, sr.Lat1, true)
	case "tmerc", "transverse_mercator", "transverse mercator":
		method = "Transverse_Mercator"
		scale()
		origin()
	case "lcc", "lambert_conformal_conic", "lambert_conformal_conic_2sp":
		method = "Lambert_Conformal_Conic_2SP"
		origin()
		parallels()
		if _, ok := p[transform.StandardParallel1]; !ok {
			method = "Lambert_Conformal_Conic_1SP"
			scale()
		}
	case "lambert_conformal_conic_1sp":
		origin()
		scale()
	case "aea", "albers", "albers_conic_equal_area":
		method = "Albers_Conic_Equal_Area"
		origin()
		parallels()
	case "eqc", "equirectangular", "equidistant_cylindrical", "plate_carree":
		method = "Equirectangular"
		origin()
		set(p, transform.StandardParallel1, sr.LatTS, true)
	default:
		return Conversion{}, fmt.Errorf("georef: unsupported projection %q", sr.Name)
	}
	return Conversion{Method: method, Parameters: p}, nil
}
