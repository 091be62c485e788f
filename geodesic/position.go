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

package geodesic

import (
	"context"
	"fmt"
	"math"

	"github.com/spatialmodel/georef/crs"
	"github.com/spatialmodel/georef/operation"
	"github.com/spatialmodel/georef/transform"
)

// NewCalculatorForCRS returns a calculator whose positions are given in
// the two-dimensional geographic or projected reference system c. ops
// resolves the operation between c and geographic coordinates on its
// datum.
func NewCalculatorForCRS(c crs.CRS, ops *operation.Factory) (*Calculator, error) {
	var geo *crs.Geographic
	switch cc := c.(type) {
	case *crs.Geographic:
		geo = cc.Normalized()
	case *crs.Projected:
		geo = cc.Base().Normalized()
	default:
		return nil, fmt.Errorf("georef: geodesic calculation needs a geographic or projected CRS, not %q", c.Name())
	}
	if c.Dimension() != 2 {
		return nil, fmt.Errorf("georef: geodesic calculation needs a two-dimensional CRS, %q has %d dimensions",
			c.Name(), c.Dimension())
	}
	op, err := ops.CreateOperation(context.TODO(), c, geo)
	if err != nil {
		return nil, err
	}
	inv, err := op.Transform.Inverse()
	if err != nil {
		return nil, err
	}
	calc := NewCalculator(c.Datum().Ellipsoid())
	calc.user = c
	calc.toGeo, calc.fromGeo = op.Transform, inv
	return calc, nil
}

// CRS returns the reference system of positions, or nil if the calculator
// only accepts geographic points.
func (c *Calculator) CRS() crs.CRS { return c.user }

// toGeographic converts a position in the user reference system to
// (latitude, longitude) in degrees.
func (c *Calculator) toGeographic(position []float64) (lat, lon float64, err error) {
	if c.user == nil {
		return math.NaN(), math.NaN(), fmt.Errorf("georef: calculator has no coordinate reference system")
	}
	p, err := transform.TransformPoint(c.toGeo, position)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	return p[1], p[0], nil
}

// fromGeographic converts (latitude, longitude) in degrees to a position
// in the user reference system.
func (c *Calculator) fromGeographic(lat, lon float64) ([]float64, error) {
	if c.user == nil {
		return nil, fmt.Errorf("georef: calculator has no coordinate reference system")
	}
	return transform.TransformPoint(c.fromGeo, []float64{lon, lat})
}

// SetStartingPosition sets the starting point from a position in the
// reference system of c.
func (c *Calculator) SetStartingPosition(position []float64) error {
	lat, lon, err := c.toGeographic(position)
	if err != nil {
		return err
	}
	return c.SetStartGeographicPoint(lat, lon)
}

// SetEndPosition sets the end point from a position in the reference
// system of c.
func (c *Calculator) SetEndPosition(position []float64) error {
	lat, lon, err := c.toGeographic(position)
	if err != nil {
		return err
	}
	return c.SetEndGeographicPoint(lat, lon)
}

// StartPosition returns the starting point in the reference system of c.
func (c *Calculator) StartPosition() ([]float64, error) {
	lat, lon, err := c.StartPoint()
	if err != nil {
		return nil, err
	}
	return c.fromGeographic(lat, lon)
}

// EndPosition returns the end point in the reference system of c.
func (c *Calculator) EndPosition() ([]float64, error) {
	lat, lon, err := c.EndPoint()
	if err != nil {
		return nil, err
	}
	return c.fromGeographic(lat, lon)
}
