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

// Package geodesic solves the direct and inverse geodesic problems on a
// sphere or an ellipsoid of revolution and discretizes geodesic paths.
package geodesic

import (
	"errors"
	"fmt"
	"math"

	"github.com/spatialmodel/georef"
	"github.com/spatialmodel/georef/crs"
	"github.com/spatialmodel/georef/transform"
)

// authority records which input determines the other properties of a
// Calculator.
type authority int

const (
	noDestination authority = iota
	endPointSet
	directionSet
)

// Calculator computes distances and azimuths between points on an
// ellipsoid. Either the end point or the starting azimuth and distance is
// the authoritative input; the other properties are computed from it on
// demand. A Calculator is not safe for concurrent use; each goroutine
// should use its own.
type Calculator struct {
	ellipsoid crs.Ellipsoid
	g         solver

	// user is the reference system of positions, if any. toGeo and
	// fromGeo convert between it and (longitude, latitude) in degrees.
	user           crs.CRS
	toGeo, fromGeo transform.MathTransform

	startSet   bool
	lat1, lon1 float64

	source     authority
	lat2, lon2 float64
	azimuth    float64
	endAzimuth float64
	distance   float64

	// dirty is set when the derived properties must be recomputed.
	dirty bool
}

// NewCalculator returns a calculator for the given ellipsoid.
func NewCalculator(e crs.Ellipsoid) *Calculator {
	return &Calculator{ellipsoid: e, g: newSolver(e), dirty: true}
}

// Ellipsoid returns the ellipsoid of c.
func (c *Calculator) Ellipsoid() crs.Ellipsoid { return c.ellipsoid }

// MaxDistance returns the length in metres of half a meridian, the
// longest geodesic distance accepted by SetDirection.
func (c *Calculator) MaxDistance() float64 { return 2 * c.g.meridianArc(math.Pi/2) }

// checkPoint validates a geographic point and returns its longitude in
// (-180, 180].
func checkPoint(lat, lon float64) (float64, error) {
	if !(lat >= -90 && lat <= 90) {
		return 0, fmt.Errorf("georef: latitude %g is out of range [-90, 90]", lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, fmt.Errorf("georef: invalid longitude %g", lon)
	}
	return normalizeAzimuth(lon), nil
}

// SetStartGeographicPoint sets the starting point in degrees.
func (c *Calculator) SetStartGeographicPoint(lat, lon float64) error {
	lon, err := checkPoint(lat, lon)
	if err != nil {
		return err
	}
	c.lat1, c.lon1 = lat, lon
	c.startSet = true
	c.dirty = true
	return nil
}

// StartPoint returns the starting point in degrees.
func (c *Calculator) StartPoint() (lat, lon float64, err error) {
	if !c.startSet {
		return math.NaN(), math.NaN(), errors.New("georef: starting point is not set")
	}
	return c.lat1, c.lon1, nil
}

// SetEndGeographicPoint sets the end point in degrees. The azimuths and
// distance are then computed from the start and end points.
func (c *Calculator) SetEndGeographicPoint(lat, lon float64) error {
	lon, err := checkPoint(lat, lon)
	if err != nil {
		return err
	}
	c.lat2, c.lon2 = lat, lon
	c.source = endPointSet
	c.dirty = true
	return nil
}

// SetDirection sets the starting azimuth in degrees and the geodesic
// distance in metres. The end point is then computed from them.
// A geodesic is at most half a meridian long (MaxDistance); longer
// distances return a georef.GeodesicError rather than wrapping around the
// ellipsoid.
func (c *Calculator) SetDirection(azimuth, distance float64) error {
	if math.IsNaN(azimuth) || math.IsInf(azimuth, 0) {
		return fmt.Errorf("georef: invalid azimuth %g", azimuth)
	}
	if !(distance >= 0) || math.IsInf(distance, 1) {
		return fmt.Errorf("georef: invalid geodesic distance %g", distance)
	}
	if limit := c.MaxDistance(); distance > limit {
		return &georef.GeodesicError{
			Lat1: c.lat1, Lon1: c.lon1, Lat2: math.NaN(), Lon2: math.NaN(),
			Reason: fmt.Sprintf("distance %g m is longer than half a meridian (%g m)", distance, limit),
		}
	}
	c.azimuth = normalizeAzimuth(azimuth)
	c.distance = distance
	c.source = directionSet
	c.dirty = true
	return nil
}

// SetStartingAzimuth sets the starting azimuth in degrees, keeping the
// current geodesic distance, and makes the direction authoritative.
func (c *Calculator) SetStartingAzimuth(azimuth float64) error {
	d, err := c.currentDistance()
	if err != nil {
		return err
	}
	return c.SetDirection(azimuth, d)
}

// SetGeodesicDistance sets the geodesic distance in metres, keeping the
// current starting azimuth, and makes the direction authoritative.
func (c *Calculator) SetGeodesicDistance(distance float64) error {
	az, err := c.currentAzimuth()
	if err != nil {
		return err
	}
	return c.SetDirection(az, distance)
}

func (c *Calculator) currentDistance() (float64, error) {
	if c.source == endPointSet {
		return c.GeodesicDistance()
	}
	return c.distance, nil
}

func (c *Calculator) currentAzimuth() (float64, error) {
	if c.source == endPointSet {
		return c.StartingAzimuth()
	}
	return c.azimuth, nil
}

// update recomputes the derived properties if an input changed.
func (c *Calculator) update() error {
	if !c.dirty {
		return nil
	}
	if !c.startSet {
		return errors.New("georef: starting point is not set")
	}
	switch c.source {
	case endPointSet:
		s, az1, az2, err := c.g.inverse(c.lat1, c.lon1, c.lat2, c.lon2)
		if err != nil {
			return err
		}
		c.distance, c.azimuth, c.endAzimuth = s, az1, az2
		if s == 0 {
			c.endAzimuth = c.azimuth
		}
	case directionSet:
		lat2, lon2, az2, err := c.g.direct(c.lat1, c.lon1, c.azimuth, c.distance)
		if err != nil {
			return err
		}
		c.lat2, c.lon2, c.endAzimuth = lat2, lon2, az2
	default:
		return errors.New("georef: neither end point nor direction is set")
	}
	c.dirty = false
	return nil
}

// StartingAzimuth returns the azimuth of the geodesic at the starting
// point in degrees, in (-180, 180].
func (c *Calculator) StartingAzimuth() (float64, error) {
	if err := c.update(); err != nil {
		return math.NaN(), err
	}
	return c.azimuth, nil
}

// EndingAzimuth returns the azimuth of the geodesic at the end point in
// degrees, in (-180, 180]. It is the direction of travel when arriving,
// not the azimuth back to the starting point.
func (c *Calculator) EndingAzimuth() (float64, error) {
	if err := c.update(); err != nil {
		return math.NaN(), err
	}
	return c.endAzimuth, nil
}

// GeodesicDistance returns the length of the geodesic in metres.
func (c *Calculator) GeodesicDistance() (float64, error) {
	if err := c.update(); err != nil {
		return math.NaN(), err
	}
	return c.distance, nil
}

// EndPoint returns the end point in degrees.
func (c *Calculator) EndPoint() (lat, lon float64, err error) {
	if err := c.update(); err != nil {
		return math.NaN(), math.NaN(), err
	}
	return c.lat2, c.lon2, nil
}

// InverseSpherical solves the inverse problem between the start and end
// points on the sphere of mean radius (2a+b)/3. It never fails to
// converge and can replace the ellipsoidal result when that fails, at a
// cost in accuracy of up to about 0.5%.
func (c *Calculator) InverseSpherical() (distance, azimuth, endAzimuth float64, err error) {
	if !c.startSet {
		return math.NaN(), math.NaN(), math.NaN(), errors.New("georef: starting point is not set")
	}
	if c.source != endPointSet {
		return math.NaN(), math.NaN(), math.NaN(), errors.New("georef: end point is not set")
	}
	r := (2*c.g.a + c.g.b) / 3
	sphere := solver{a: r, b: r, sphere: true}
	distance, azimuth, endAzimuth = sphere.inverseSpherical(c.lat1, c.lon1, c.lat2, c.lon2)
	return distance, azimuth, endAzimuth, nil
}

// MeridianArcLength returns the distance in metres along a meridian
// between two latitudes in degrees. It is negative if lat2 < lat1.
func (c *Calculator) MeridianArcLength(lat1, lat2 float64) (float64, error) {
	for _, lat := range []float64{lat1, lat2} {
		if _, err := checkPoint(lat, 0); err != nil {
			return math.NaN(), err
		}
	}
	return c.g.meridianArc(lat2*deg2rad) - c.g.meridianArc(lat1*deg2rad), nil
}

// RhumbLine returns the length in metres and the constant azimuth in
// degrees of the loxodrome between the start and end points.
func (c *Calculator) RhumbLine() (distance, azimuth float64, err error) {
	if !c.startSet {
		return math.NaN(), math.NaN(), errors.New("georef: starting point is not set")
	}
	lat2, lon2, err := c.EndPoint()
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	distance, azimuth = c.g.rhumb(c.lat1, c.lon1, lat2, lon2)
	return distance, azimuth, nil
}
