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
	"strings"
	"sync"

	"github.com/spatialmodel/georef"
	"github.com/spatialmodel/georef/matrix"
)

// Concatenated applies a sequence of transforms in order.
type Concatenated struct {
	steps []MathTransform

	invOnce sync.Once
	inv     MathTransform
	invErr  error
}

// Concatenate returns the transform that applies ts in order. Nested
// concatenations are flattened, identity steps are dropped and adjacent
// linear steps are collapsed into a single matrix, so the result may be
// an Identity, a Linear or any single step rather than a *Concatenated.
func Concatenate(ts ...MathTransform) (MathTransform, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("georef: transform.Concatenate: no transforms")
	}
	for i := 1; i < len(ts); i++ {
		if ts[i-1].TargetDimensions() != ts[i].SourceDimensions() {
			return nil, &georef.DimensionMismatchError{Op: fmt.Sprintf("transform.Concatenate step %d", i),
				Want: ts[i-1].TargetDimensions(), Got: ts[i].SourceDimensions()}
		}
	}
	var flat []MathTransform
	for _, t := range ts {
		if c, ok := t.(*Concatenated); ok {
			flat = append(flat, c.steps...)
		} else {
			flat = append(flat, t)
		}
	}
	var steps []MathTransform
	for _, t := range flat {
		if t.IsIdentity() && t.SourceDimensions() == t.TargetDimensions() {
			continue
		}
		if n := len(steps); n > 0 {
			if merged, ok, err := mergeLinear(steps[n-1], t); err != nil {
				return nil, err
			} else if ok {
				if merged.IsIdentity() {
					steps = steps[:n-1]
				} else {
					steps[n-1] = merged
				}
				continue
			}
		}
		steps = append(steps, t)
	}
	switch len(steps) {
	case 0:
		return NewIdentity(ts[0].SourceDimensions()), nil
	case 1:
		return steps[0], nil
	}
	return &Concatenated{steps: steps}, nil
}

// mergeLinear collapses a followed by b when both are matrix transforms.
func mergeLinear(a, b MathTransform) (MathTransform, bool, error) {
	ma, ok := linearMatrix(a)
	if !ok {
		return nil, false, nil
	}
	mb, ok := linearMatrix(b)
	if !ok {
		return nil, false, nil
	}
	m, err := matrix.Mul(mb, ma)
	if err != nil {
		return nil, false, err
	}
	t, err := NewLinear(m)
	return t, err == nil, err
}

func linearMatrix(t MathTransform) (*matrix.Matrix, bool) {
	switch tt := t.(type) {
	case *Linear:
		return tt.m, true
	case *Identity:
		return matrix.Identity(tt.dim + 1), true
	}
	return nil, false
}

// Steps returns the transforms applied in order.
func (t *Concatenated) Steps() []MathTransform {
	return append([]MathTransform(nil), t.steps...)
}

// SourceDimensions implements MathTransform.
func (t *Concatenated) SourceDimensions() int { return t.steps[0].SourceDimensions() }

// TargetDimensions implements MathTransform.
func (t *Concatenated) TargetDimensions() int { return t.steps[len(t.steps)-1].TargetDimensions() }

// IsIdentity implements MathTransform. A collapsed chain is never the
// identity.
func (t *Concatenated) IsIdentity() bool { return false }

// Transform implements MathTransform.
func (t *Concatenated) Transform(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	if err := checkBuffers("concatenated", t.SourceDimensions(), t.TargetDimensions(), src, srcOff, dst, dstOff, numPts); err != nil {
		return err
	}
	maxDim := 0
	for _, s := range t.steps {
		if d := s.TargetDimensions(); d > maxDim {
			maxDim = d
		}
	}
	buf := make([]float64, numPts*maxDim)
	var firstErr error
	in, inOff := src, srcOff
	for i, s := range t.steps {
		out, outOff := buf, 0
		if i == len(t.steps)-1 {
			out, outOff = dst, dstOff
		}
		if err := s.Transform(in, inOff, out, outOff, numPts); err != nil && firstErr == nil {
			firstErr = err
		}
		in, inOff = out, outOff
	}
	return firstErr
}

// Derivative implements MathTransform using the chain rule.
func (t *Concatenated) Derivative(point []float64) (*matrix.Matrix, error) {
	if len(point) != t.SourceDimensions() {
		return nil, &georef.DimensionMismatchError{Op: "concatenated derivative", Want: t.SourceDimensions(), Got: len(point)}
	}
	p := append([]float64(nil), point...)
	var d *matrix.Matrix
	for _, s := range t.steps {
		ds, err := s.Derivative(p)
		if err != nil {
			return nil, err
		}
		if d == nil {
			d = ds
		} else if d, err = matrix.Mul(ds, d); err != nil {
			return nil, err
		}
		if p, err = TransformPoint(s, p); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Inverse implements MathTransform.
func (t *Concatenated) Inverse() (MathTransform, error) {
	t.invOnce.Do(func() {
		inv := make([]MathTransform, len(t.steps))
		for i, s := range t.steps {
			si, err := s.Inverse()
			if err != nil {
				t.invErr = err
				return
			}
			inv[len(t.steps)-1-i] = si
		}
		c := &Concatenated{steps: inv}
		c.invOnce.Do(func() { c.inv = t })
		t.inv = c
	})
	return t.inv, t.invErr
}

func (t *Concatenated) String() string {
	s := make([]string, len(t.steps))
	for i, step := range t.steps {
		s[i] = fmt.Sprint(step)
	}
	return "Concatenated[" + strings.Join(s, ", ") + "]"
}
