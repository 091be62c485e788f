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

	"github.com/spatialmodel/georef/transform"
)

// PrimeMeridian is the origin of longitudes, given in degrees east of
// Greenwich.
type PrimeMeridian struct {
	Name      string
	Longitude float64
}

// Predefined prime meridians.
var (
	Greenwich = PrimeMeridian{Name: "Greenwich"}
	Paris     = PrimeMeridian{Name: "Paris", Longitude: 2.33722917}
)

// Datum is a geodetic datum: an ellipsoid and prime meridian, optionally
// with the Helmert parameters that shift it to WGS 84.
type Datum struct {
	name          string
	ellipsoid     Ellipsoid
	primeMeridian PrimeMeridian
	toWGS84       *transform.BursaWolf
}

// Predefined datums.
var (
	WGS84Datum = NewDatum("WGS 84", WGS84Ellipsoid, Greenwich, &transform.BursaWolf{})
	NAD83      = NewDatum("North American Datum 1983", GRS80, Greenwich, &transform.BursaWolf{})
	NAD27      = NewDatum("North American Datum 1927", Clarke1866, Greenwich,
		&transform.BursaWolf{Dx: -8, Dy: 160, Dz: 176})
	ED50 = NewDatum("European Datum 1950", International1924, Greenwich,
		&transform.BursaWolf{Dx: -87, Dy: -98, Dz: -121})
	OSGB36 = NewDatum("OSGB 1936", Airy1830, Greenwich,
		&transform.BursaWolf{Dx: 446.448, Dy: -125.157, Dz: 542.06, Ex: 0.15, Ey: 0.247, Ez: 0.842, PPM: -20.489})
	SphereDatum = NewDatum("Sphere", Sphere, Greenwich, nil)
)

// NewDatum creates a datum. toWGS84 may be nil if the relation to WGS 84
// is unknown.
func NewDatum(name string, e Ellipsoid, pm PrimeMeridian, toWGS84 *transform.BursaWolf) *Datum {
	d := &Datum{name: name, ellipsoid: e, primeMeridian: pm}
	if toWGS84 != nil {
		p := *toWGS84
		d.toWGS84 = &p
	}
	return d
}

// Name returns the datum name.
func (d *Datum) Name() string { return d.name }

// Ellipsoid returns the datum ellipsoid.
func (d *Datum) Ellipsoid() Ellipsoid { return d.ellipsoid }

// PrimeMeridian returns the datum prime meridian.
func (d *Datum) PrimeMeridian() PrimeMeridian { return d.primeMeridian }

// ToWGS84 returns the Helmert parameters to WGS 84, if known.
func (d *Datum) ToWGS84() (transform.BursaWolf, bool) {
	if d.toWGS84 == nil {
		return transform.BursaWolf{}, false
	}
	return *d.toWGS84, true
}

// Equivalent reports whether two datums describe the same realization:
// the same ellipsoid axes and the same shift to WGS 84. Names and prime
// meridians are not compared.
func (d *Datum) Equivalent(o *Datum) bool {
	if d == o {
		return true
	}
	if d == nil || o == nil || !d.ellipsoid.Equal(o.ellipsoid) {
		return false
	}
	p1, ok1 := d.ToWGS84()
	p2, ok2 := o.ToWGS84()
	if ok1 && ok2 {
		return p1 == p2
	}
	return !ok1 && !ok2 && d.name == o.name
}

func (d *Datum) String() string {
	return fmt.Sprintf("%s[%v]", d.name, d.ellipsoid)
}
