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
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/ctessum/geom"
	"github.com/spatialmodel/georef"
	"github.com/spatialmodel/georef/crs"
)

const (
	// maxPathDepth bounds the bisection of a path segment.
	maxPathDepth = 24

	// seedSpacing is the largest distance in metres between the points
	// that a path is first divided into, so that no seed segment spans
	// half a revolution of longitude.
	seedSpacing = 1e6
)

// pathPoint is a point of a path in degrees, with an unwrapped longitude.
type pathPoint struct {
	s        float64 // distance from the start
	lat, lon float64
}

type pathSegment struct {
	p0, p1 pathPoint
	depth  int
}

// Path is a discretized geodesic. It yields points lazily, in order from
// the start point to the end point, such that the midpoint of the
// straight (longitude, latitude) chord between consecutive points is
// within the path resolution of the geodesic. The deviation is always
// measured on the ellipsoid between geographic chord and geodesic
// midpoints, also when the points are written in a projected reference
// system; a projected chord may deviate more where the projection is
// strongly curved. A zero-length path has a single point.
//
// Longitudes are unwrapped: consecutive points never differ by more than
// 180 degrees, so a path crossing the antimeridian has longitudes beyond
// ±180.
//
// Use a Path like a bufio.Scanner:
//
//	for p.Next() {
//		pt := p.Point()
//	}
//	if err := p.Err(); err != nil {
//
// A Path is restartable through Reset and, like the Calculator it was
// created from, not safe for concurrent use.
type Path struct {
	g          solver
	resolution float64
	lat1, lon1 float64
	azimuth    float64
	distance   float64
	convert    func(lat, lon float64) ([]float64, error)
	wrap       bool

	started bool
	stack   []pathSegment
	current geom.Point
	err     error
}

// CreateGeodesicPath2D returns the path from the start point to the end
// point, discretized so that the deviation between the path and the
// geodesic is less than resolution metres. If the calculator has a
// reference system, points are in that system, with unwrapped longitudes
// if it is geographic. Otherwise X is the longitude and Y the latitude in
// degrees.
func (c *Calculator) CreateGeodesicPath2D(resolution float64) (*Path, error) {
	if !(resolution > 0) || math.IsInf(resolution, 1) {
		return nil, fmt.Errorf("georef: invalid path resolution %g", resolution)
	}
	az, err := c.StartingAzimuth()
	if err != nil {
		return nil, err
	}
	p := &Path{
		g:          c.g,
		resolution: resolution,
		lat1:       c.lat1,
		lon1:       c.lon1,
		azimuth:    az,
		distance:   c.distance,
	}
	if c.user != nil {
		p.convert = c.fromGeographic
		_, projected := c.user.(*crs.Projected)
		p.wrap = projected
	}
	p.Reset()
	return p, nil
}

// Reset restarts the path from the start point.
func (p *Path) Reset() {
	p.started = false
	p.stack = p.stack[:0]
	p.err = nil
}

// pointAt returns the point at distance s along the geodesic, with its
// longitude unwrapped relative to ref.
func (p *Path) pointAt(s, ref float64) (pathPoint, error) {
	lat, lon, _, err := p.g.direct(p.lat1, p.lon1, p.azimuth, s)
	if err != nil {
		return pathPoint{}, err
	}
	return pathPoint{s: s, lat: lat, lon: ref + math.Remainder(lon-ref, 360)}, nil
}

// seed divides the path into segments no longer than seedSpacing.
func (p *Path) seed() error {
	n := int(math.Ceil(p.distance / seedSpacing))
	if n < 1 {
		n = 1
	}
	pts := make([]pathPoint, n+1)
	pts[0] = pathPoint{lat: p.lat1, lon: p.lon1}
	for i := 1; i <= n; i++ {
		var err error
		if pts[i], err = p.pointAt(p.distance*float64(i)/float64(n), pts[i-1].lon); err != nil {
			return err
		}
	}
	// Pushed in reverse so the first segment is on top.
	for i := n; i > 0; i-- {
		p.stack = append(p.stack, pathSegment{p0: pts[i-1], p1: pts[i]})
	}
	return nil
}

// Next advances to the next point and reports whether there is one.
func (p *Path) Next() bool {
	if p.err != nil {
		return false
	}
	if !p.started {
		p.started = true
		if err := p.seed(); err != nil {
			p.err = err
			return false
		}
		return p.set(pathPoint{lat: p.lat1, lon: p.lon1})
	}
	for len(p.stack) > 0 {
		seg := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		if seg.p1.s-seg.p0.s == 0 {
			continue
		}
		mid, err := p.pointAt((seg.p0.s+seg.p1.s)/2, seg.p0.lon)
		if err != nil {
			p.err = err
			return false
		}
		dev, err := p.deviation(seg, mid)
		if err != nil {
			p.err = err
			return false
		}
		if dev < p.resolution || seg.depth >= maxPathDepth {
			return p.set(seg.p1)
		}
		p.stack = append(p.stack,
			pathSegment{p0: mid, p1: seg.p1, depth: seg.depth + 1},
			pathSegment{p0: seg.p0, p1: mid, depth: seg.depth + 1})
	}
	return false
}

// deviation returns the distance in metres between the midpoint of the
// chord of seg and the geodesic midpoint mid.
func (p *Path) deviation(seg pathSegment, mid pathPoint) (float64, error) {
	lat := (seg.p0.lat + seg.p1.lat) / 2
	lon := (seg.p0.lon + seg.p1.lon) / 2
	s, _, _, err := p.g.inverse(lat, lon, mid.lat, mid.lon)
	if err != nil {
		if errors.Is(err, georef.ErrGeodesic) {
			// Too far from the geodesic to converge: not flat.
			return math.Inf(1), nil
		}
		return math.NaN(), err
	}
	return s, nil
}

func (p *Path) set(pt pathPoint) bool {
	if p.convert == nil {
		p.current = geom.Point{X: pt.lon, Y: pt.lat}
		return true
	}
	lon := pt.lon
	if p.wrap {
		lon = normalizeAzimuth(lon)
	}
	c, err := p.convert(pt.lat, lon)
	if err != nil {
		p.err = err
		return false
	}
	p.current = geom.Point{X: c[0], Y: c[1]}
	return true
}

// Point returns the current point.
func (p *Path) Point() geom.Point { return p.current }

// Err returns the first error encountered while computing the path.
func (p *Path) Err() error { return p.err }

// All returns an iterator over the points of the path from the start. It
// resets the path.
func (p *Path) All() iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		p.Reset()
		for p.Next() {
			if !yield(p.Point()) {
				return
			}
		}
	}
}

// LineString returns all points of the path.
func (p *Path) LineString() (geom.LineString, error) {
	var ls geom.LineString
	for pt := range p.All() {
		ls = append(ls, pt)
	}
	return ls, p.Err()
}
