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

package operation

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/georef/crs"
	"github.com/spatialmodel/georef/matrix"
	"github.com/spatialmodel/georef/transform"
)

// hub describes the intermediate space between the two halves of an
// operation: normalized geographic coordinates relative to Greenwich, or
// geocentric coordinates, on a datum.
type hub struct {
	datum      *crs.Datum
	geocentric bool
	dim        int
}

// chain accumulates the steps of an operation. reverse holds the name of
// each step when the chain is applied backwards.
type chain struct {
	ts      []transform.MathTransform
	steps   []string
	reverse []string
}

func (c *chain) add(t transform.MathTransform, step, reverse string) {
	if t.IsIdentity() {
		return
	}
	c.ts = append(c.ts, t)
	c.steps = append(c.steps, step)
	c.reverse = append(c.reverse, reverse)
}

// transform concatenates the steps of c, which start in a space of dim
// dimensions.
func (c *chain) transform(dim int) (transform.MathTransform, error) {
	if len(c.ts) == 0 {
		return transform.NewIdentity(dim), nil
	}
	return transform.Concatenate(c.ts...)
}

// toHub returns the steps from coordinates in c to its hub.
func (f *Factory) toHub(c crs.CRS) (*chain, hub, error) {
	ch := new(chain)
	axes, err := axisChange(c.CoordinateSystem(), normalizedCS(c))
	if err != nil {
		return nil, hub{}, err
	}
	ch.add(axes, "axis normalization", "axis denormalization")
	h := hub{datum: c.Datum(), dim: c.Dimension()}
	switch cc := c.(type) {
	case *crs.Geocentric:
		h.geocentric = true
		return ch, h, nil
	case *crs.Projected:
		proj, err := f.projection(cc)
		if err != nil {
			return nil, hub{}, err
		}
		inv, err := proj.Inverse()
		if err != nil {
			return nil, hub{}, err
		}
		method := cc.Conversion().Method
		ch.add(inv, "inverse "+method, method)
	}
	if pm := h.datum.PrimeMeridian(); pm.Longitude != 0 {
		offset := make([]float64, h.dim)
		scale := make([]float64, h.dim)
		offset[0] = pm.Longitude
		for i := range scale {
			scale[i] = 1
		}
		t, err := transform.NewScaleTranslate(scale, offset)
		if err != nil {
			return nil, hub{}, err
		}
		ch.add(t, "prime meridian "+pm.Name+" to Greenwich", "prime meridian Greenwich to "+pm.Name)
	}
	return ch, h, nil
}

// projection creates the map projection of p on the ellipsoid of its base
// reference system.
func (f *Factory) projection(p *crs.Projected) (transform.MathTransform, error) {
	conv := p.Conversion()
	params := conv.Parameters
	if params == nil {
		params = transform.Parameters{}
	}
	e := p.Datum().Ellipsoid()
	if _, ok := params[transform.SemiMajor]; !ok {
		params[transform.SemiMajor] = e.SemiMajor()
		params[transform.SemiMinor] = e.SemiMinor()
	}
	return f.Transforms.Create(conv.Method, params)
}

// datumShift returns the steps between two hubs. Hubs on equivalent datums
// only need a change of coordinate type; other datums are related through
// geocentric coordinates and their Bursa-Wolf parameters to WGS 84.
func (f *Factory) datumShift(src, dst hub, log logrus.FieldLogger) (*chain, error) {
	ch := new(chain)
	if src.datum.Equivalent(dst.datum) {
		if err := f.changeType(ch, src, dst, src.datum.Ellipsoid()); err != nil {
			return nil, err
		}
		return ch, nil
	}
	bs, ok1 := src.datum.ToWGS84()
	bd, ok2 := dst.datum.ToWGS84()
	if !ok1 || !ok2 {
		if !f.lenient {
			return nil, fmt.Errorf("no Bursa-Wolf parameters between datums %q and %q",
				src.datum.Name(), dst.datum.Name())
		}
		log.WithFields(logrus.Fields{
			"source datum": src.datum.Name(),
			"target datum": dst.datum.Name(),
		}).Warn("datum shift parameters unknown; changing ellipsoid only")
		bs, bd = transform.BursaWolf{}, transform.BursaWolf{}
	}

	if !src.geocentric {
		e := src.datum.Ellipsoid()
		t, err := transform.NewGeographicToGeocentric(e.SemiMajor(), e.SemiMinor(), src.dim == 3)
		if err != nil {
			return nil, err
		}
		ch.add(t, "geographic to geocentric", "geocentric to geographic")
	}
	toWGS84, err := bs.Transform()
	if err != nil {
		return nil, err
	}
	ch.add(toWGS84, "Bursa-Wolf "+src.datum.Name()+" to WGS 84", "Bursa-Wolf WGS 84 to "+src.datum.Name())
	fromWGS84, err := bd.Transform()
	if err != nil {
		return nil, err
	}
	if fromWGS84, err = fromWGS84.Inverse(); err != nil {
		return nil, err
	}
	ch.add(fromWGS84, "Bursa-Wolf WGS 84 to "+dst.datum.Name(), "Bursa-Wolf "+dst.datum.Name()+" to WGS 84")
	if !dst.geocentric {
		e := dst.datum.Ellipsoid()
		t, err := transform.NewGeocentricToGeographic(e.SemiMajor(), e.SemiMinor(), dst.dim == 3)
		if err != nil {
			return nil, err
		}
		ch.add(t, "geocentric to geographic", "geographic to geocentric")
	}
	return ch, nil
}

// changeType appends the conversion between two hubs on the same
// ellipsoid.
func (f *Factory) changeType(ch *chain, src, dst hub, e crs.Ellipsoid) error {
	switch {
	case src.geocentric && dst.geocentric:
		return nil
	case !src.geocentric && dst.geocentric:
		t, err := transform.NewGeographicToGeocentric(e.SemiMajor(), e.SemiMinor(), src.dim == 3)
		if err != nil {
			return err
		}
		ch.add(t, "geographic to geocentric", "geocentric to geographic")
	case src.geocentric && !dst.geocentric:
		t, err := transform.NewGeocentricToGeographic(e.SemiMajor(), e.SemiMinor(), dst.dim == 3)
		if err != nil {
			return err
		}
		ch.add(t, "geocentric to geographic", "geographic to geocentric")
	case src.dim != dst.dim:
		// Add or drop the ellipsoidal height.
		m := matrix.New(dst.dim+1, src.dim+1)
		m.Set(0, 0, 1)
		m.Set(1, 1, 1)
		m.Set(dst.dim, src.dim, 1)
		t, err := transform.NewLinear(m)
		if err != nil {
			return err
		}
		ch.add(t, fmt.Sprintf("geographic %dD to %dD", src.dim, dst.dim), fmt.Sprintf("geographic %dD to %dD", dst.dim, src.dim))
	}
	return nil
}
