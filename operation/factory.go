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

// Package operation resolves the coordinate operation between two
// coordinate reference systems and caches the results.
package operation

import (
	"context"
	"runtime"
	"sync"

	"github.com/ctessum/geom"
	"github.com/ctessum/requestcache"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/georef"
	"github.com/spatialmodel/georef/crs"
	"github.com/spatialmodel/georef/internal/hash"
	"github.com/spatialmodel/georef/transform"
)

// DefaultCacheSize is the number of operations kept in memory by default.
const DefaultCacheSize = 256

// Factory creates coordinate operations. Operations are cached by the
// contents of their source and target reference systems, and concurrent
// requests for the same pair are computed once. A Factory is safe for
// concurrent use.
//
// The zero value is ready to use: it logs to the standard logrus logger,
// creates its own transform.Factory, and caches without limit. Fields
// must not be changed after the first call to CreateOperation.
type Factory struct {
	// Transforms creates the map projections of projected reference
	// systems.
	Transforms *transform.Factory

	// Log receives resolution events.
	Log logrus.FieldLogger

	cacheSize int
	lenient   bool

	cacheInit sync.Once
	cache     *requestcache.Cache
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger of the factory.
func WithLogger(l logrus.FieldLogger) Option {
	return func(f *Factory) { f.Log = l }
}

// WithCacheSize sets the maximum number of cached operations. A size of
// zero or less removes the limit.
func WithCacheSize(n int) Option {
	return func(f *Factory) {
		if n < 0 {
			n = 0
		}
		f.cacheSize = n
	}
}

// WithLenientDatumShift makes the factory change ellipsoids without a
// Bursa-Wolf shift when a datum has no known parameters to WGS 84,
// instead of failing.
func WithLenientDatumShift() Option {
	return func(f *Factory) { f.lenient = true }
}

// NewFactory returns an operation factory that creates projections with
// tf, or with a new transform.Factory if tf is nil.
func NewFactory(tf *transform.Factory, opts ...Option) *Factory {
	if tf == nil {
		tf = transform.NewFactory()
	}
	f := &Factory{
		Transforms: tf,
		Log:        logrus.StandardLogger(),
		cacheSize:  DefaultCacheSize,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

type pairRequest struct {
	source, target crs.CRS
}

// CreateOperation returns the operation that converts coordinates in
// source to coordinates in target. It returns an error matching
// georef.ErrOperationNotFound if no operation can be built. The returned
// Operation may share its transform with other callers; transforms are
// immutable.
func (f *Factory) CreateOperation(ctx context.Context, source, target crs.CRS) (*Operation, error) {
	if source == nil || target == nil {
		return nil, &georef.OperationNotFoundError{Reason: "missing reference system"}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.cacheInit.Do(func() {
		if f.Transforms == nil {
			f.Transforms = transform.NewFactory()
		}
		if f.Log == nil {
			f.Log = logrus.StandardLogger()
		}
		f.cache = requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
			r := request.(pairRequest)
			return f.createOperation(ctx, r.source, r.target)
		}, runtime.GOMAXPROCS(-1),
			requestcache.Deduplicate(), requestcache.Memory(f.cacheSize))
	})
	req := f.cache.NewRequest(ctx, pairRequest{source: source, target: target}, hash.Hash(source, target))
	result, err := req.Result()
	if err != nil {
		return nil, err
	}
	op := *result.(*Operation)
	op.Source, op.Target = source, target
	op.Steps = append([]string(nil), op.Steps...)
	return &op, nil
}

// createOperation builds the operation without consulting the cache.
func (f *Factory) createOperation(ctx context.Context, source, target crs.CRS) (*Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := f.Log.WithFields(logrus.Fields{
		"source": source.Name(),
		"target": target.Name(),
	})
	notFound := func(reason string, err error) error {
		return &georef.OperationNotFoundError{
			Source: source.Name(),
			Target: target.Name(),
			Reason: reason,
			Err:    err,
		}
	}
	if hash.Hash(source) == hash.Hash(target) {
		log.Debug("identical reference systems")
		return &Operation{Source: source, Target: target, Transform: transform.NewIdentity(source.Dimension())}, nil
	}

	src, srcHub, err := f.toHub(source)
	if err != nil {
		return nil, notFound("source", err)
	}
	dst, dstHub, err := f.toHub(target)
	if err != nil {
		return nil, notFound("target", err)
	}
	shift, err := f.datumShift(srcHub, dstHub, log)
	if err != nil {
		return nil, notFound("datum shift", err)
	}
	toTarget, err := dst.transform(target.Dimension())
	if err != nil {
		return nil, notFound("target", err)
	}
	if toTarget, err = toTarget.Inverse(); err != nil {
		return nil, notFound("target", err)
	}

	ts := append(append(src.ts, shift.ts...), toTarget)
	t, err := transform.Concatenate(ts...)
	if err != nil {
		return nil, notFound("", err)
	}
	steps := append(append([]string(nil), src.steps...), shift.steps...)
	for i := len(dst.reverse) - 1; i >= 0; i-- {
		steps = append(steps, dst.reverse[i])
	}
	log.WithField("steps", steps).Debug("created coordinate operation")
	return &Operation{Source: source, Target: target, Transform: t, Steps: steps}, nil
}

// TransformCoords converts interleaved coordinates from source to target.
func (f *Factory) TransformCoords(ctx context.Context, source, target crs.CRS, coords []float64) ([]float64, error) {
	op, err := f.CreateOperation(ctx, source, target)
	if err != nil {
		return nil, err
	}
	return transform.TransformAll(op.Transform, coords)
}

// TransformGeom converts a two-dimensional geometry from source to target.
func (f *Factory) TransformGeom(ctx context.Context, source, target crs.CRS, g geom.Geom) (geom.Geom, error) {
	op, err := f.CreateOperation(ctx, source, target)
	if err != nil {
		return nil, err
	}
	return transform.TransformGeom(op.Transform, g)
}
