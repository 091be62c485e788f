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
	"math"

	"github.com/spatialmodel/georef/crs"
	"github.com/spatialmodel/georef/matrix"
	"github.com/spatialmodel/georef/transform"
)

// normalizedCS returns the coordinate system in which c is handled
// internally: (longitude, latitude[, height]) in degrees and metres for
// geographic systems, (easting, northing) in metres for projected systems
// and (X, Y, Z) in metres for geocentric systems.
func normalizedCS(c crs.CRS) *crs.CoordinateSystem {
	switch c.(type) {
	case *crs.Projected:
		return crs.CartesianEN
	case *crs.Geocentric:
		return crs.GeocentricXYZ
	}
	if c.Dimension() == 3 {
		return crs.EllipsoidalLonLatHeight
	}
	return crs.EllipsoidalLonLat
}

// axisCosine returns the cosine of the angle between a source axis and a
// normalized target axis. Horizontal axes may be rotated by any angle;
// other axes must point the same or the opposite way.
func axisCosine(src, dst crs.Axis) float64 {
	bs, ok1 := src.Bearing()
	bd, ok2 := dst.Bearing()
	switch {
	case ok1 && ok2:
		a := math.Remainder(bs-bd, 360)
		switch a {
		case 0:
			return 1
		case 90, -90:
			return 0
		case 180, -180:
			return -1
		}
		return math.Cos(a * math.Pi / 180)
	case ok1 || ok2:
		return 0
	case src.Direction == dst.Direction:
		return 1
	case src.Direction.Opposite() == dst.Direction && src.Direction != crs.OtherDirection:
		return -1
	}
	return 0
}

// axisChange returns the affine transform that converts coordinates in
// cs to coordinates in the normalized coordinate system norm, whose axes
// must be mutually orthogonal. It handles axis order, axis direction and
// unit changes, and rotation of polar axes.
func axisChange(cs, norm *crs.CoordinateSystem) (transform.MathTransform, error) {
	n := cs.Dimension()
	if norm.Dimension() != n {
		return nil, fmt.Errorf("coordinate systems %q and %q have %d and %d axes",
			cs.Name(), norm.Name(), n, norm.Dimension())
	}
	m := matrix.New(n+1, n+1)
	m.Set(n, n, 1)
	for j := 0; j < n; j++ {
		dst := norm.Axis(j)
		found := false
		for i := 0; i < n; i++ {
			src := cs.Axis(i)
			c := axisCosine(src, dst)
			if c == 0 {
				continue
			}
			scale, err := src.Unit.ScaleTo(dst.Unit)
			if err != nil {
				return nil, fmt.Errorf("axis %q: %v", src.Name, err)
			}
			m.Set(j, i, c*scale)
			found = true
		}
		if !found {
			return nil, fmt.Errorf("no axis of %q maps to %s", cs.Name(), dst.DirectionName())
		}
	}
	return transform.NewLinear(m)
}
