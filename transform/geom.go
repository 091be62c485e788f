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

package transform

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
	"github.com/spatialmodel/georef"
)

// ProjTransformer adapts a two-dimensional transform to a proj.Transformer
// so it can be passed to geom.Geom.Transform.
func ProjTransformer(t MathTransform) (proj.Transformer, error) {
	if t.SourceDimensions() != 2 || t.TargetDimensions() != 2 {
		return nil, &georef.DimensionMismatchError{Op: "transform.ProjTransformer", Want: 2, Got: t.SourceDimensions()}
	}
	return func(x, y float64) (float64, float64, error) {
		pt := [2]float64{x, y}
		err := t.Transform(pt[:], 0, pt[:], 0, 1)
		return pt[0], pt[1], err
	}, nil
}

// TransformGeom converts the vertices of g with the two-dimensional
// transform t. Each ring or line is converted with a single batch call.
func TransformGeom(t MathTransform, g geom.Geom) (geom.Geom, error) {
	if t.SourceDimensions() != 2 || t.TargetDimensions() != 2 {
		return nil, &georef.DimensionMismatchError{Op: "transform.TransformGeom", Want: 2, Got: t.SourceDimensions()}
	}
	switch gg := g.(type) {
	case geom.Point:
		pts, err := transformPoints2D(t, []geom.Point{gg})
		if err != nil {
			return nil, err
		}
		return pts[0], nil
	case *geom.Point:
		return TransformGeom(t, *gg)
	case geom.MultiPoint:
		pts, err := transformPoints2D(t, gg)
		return geom.MultiPoint(pts), err
	case geom.LineString:
		pts, err := transformPoints2D(t, gg)
		return geom.LineString(pts), err
	case geom.MultiLineString:
		out := make(geom.MultiLineString, len(gg))
		for i, l := range gg {
			pts, err := transformPoints2D(t, l)
			if err != nil {
				return nil, err
			}
			out[i] = pts
		}
		return out, nil
	case geom.Polygon:
		return transformPolygon(t, gg)
	case geom.MultiPolygon:
		out := make(geom.MultiPolygon, len(gg))
		for i, p := range gg {
			pp, err := transformPolygon(t, p)
			if err != nil {
				return nil, err
			}
			out[i] = pp
		}
		return out, nil
	}
	return nil, fmt.Errorf("georef: transform.TransformGeom: unsupported geometry type %T", g)
}

func transformPolygon(t MathTransform, p geom.Polygon) (geom.Polygon, error) {
	out := make(geom.Polygon, len(p))
	for i, r := range p {
		pts, err := transformPoints2D(t, r)
		if err != nil {
			return nil, err
		}
		out[i] = pts
	}
	return out, nil
}

func transformPoints2D(t MathTransform, pts []geom.Point) ([]geom.Point, error) {
	buf := make([]float64, 2*len(pts))
	for i, p := range pts {
		buf[2*i], buf[2*i+1] = p.X, p.Y
	}
	if err := t.Transform(buf, 0, buf, 0, len(pts)); err != nil {
		return nil, err
	}
	out := make([]geom.Point, len(pts))
	for i := range out {
		out[i] = geom.Point{X: buf[2*i], Y: buf[2*i+1]}
	}
	return out, nil
}
