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
	"sort"
	"strings"
	"sync"

	"github.com/spatialmodel/georef"
	"github.com/spatialmodel/georef/matrix"
)

// Param describes a parameter accepted by a Method.
type Param struct {
	Name     string
	Default  float64
	Required bool
}

// Method is a named operation method that creates transforms from
// parameter values.
type Method struct {
	Name    string
	Aliases []string
	Params  []Param
	Create  func(Parameters) (MathTransform, error)
}

// Factory creates transforms from operation method names and parameters.
// It is safe for concurrent use.
type Factory struct {
	mu      sync.RWMutex
	methods map[string]*Method
	names   []string
}

// NewFactory returns a factory with the built-in methods registered.
func NewFactory() *Factory {
	f := &Factory{methods: make(map[string]*Method)}
	for _, m := range builtinMethods() {
		if err := f.Register(m); err != nil {
			panic(err)
		}
	}
	return f
}

// methodKey normalizes a method name so that "Transverse Mercator",
// "transverse_mercator" and "Transverse-Mercator" match.
func methodKey(name string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(name))
}

// Register adds a method. It fails if the name or an alias is already
// registered.
func (f *Factory) Register(m Method) error {
	if m.Create == nil {
		return fmt.Errorf("georef: method %q has no constructor", m.Name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	mm := m
	for _, n := range append([]string{m.Name}, m.Aliases...) {
		if _, ok := f.methods[methodKey(n)]; ok {
			return fmt.Errorf("georef: method name %q is already registered", n)
		}
	}
	for _, n := range append([]string{m.Name}, m.Aliases...) {
		f.methods[methodKey(n)] = &mm
	}
	f.names = append(f.names, m.Name)
	sort.Strings(f.names)
	return nil
}

// Method returns the method registered under name or one of its aliases.
func (f *Factory) Method(name string) (*Method, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	m, ok := f.methods[methodKey(name)]
	return m, ok
}

// Methods returns the primary names of the registered methods.
func (f *Factory) Methods() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.names...)
}

// Create creates a transform using the named method. Missing optional
// parameters take their defaults; unknown parameters are an error.
func (f *Factory) Create(method string, p Parameters) (MathTransform, error) {
	m, ok := f.Method(method)
	if !ok {
		return nil, fmt.Errorf("%w: unknown operation method %q", georef.ErrOperationNotFound, method)
	}
	full := make(Parameters, len(m.Params))
	known := make(map[string]bool, len(m.Params))
	for _, pp := range m.Params {
		known[pp.Name] = true
		v, ok := p[pp.Name]
		switch {
		case ok:
			full[pp.Name] = v
		case pp.Required:
			return nil, fmt.Errorf("georef: %s: missing parameter %q", m.Name, pp.Name)
		default:
			full[pp.Name] = pp.Default
		}
	}
	for name := range p {
		if !known[name] {
			return nil, fmt.Errorf("georef: %s: unknown parameter %q", m.Name, name)
		}
	}
	// Optional parameters without a meaningful default are only passed on
	// when set.
	if _, ok := p[StandardParallel2]; !ok && known[StandardParallel2] {
		delete(full, StandardParallel2)
	}
	if _, ok := p[SemiMinor]; !ok && known[SemiMinor] {
		delete(full, SemiMinor)
	}
	return m.Create(full)
}

// CreateAffine creates a linear transform from a homogeneous matrix.
func (f *Factory) CreateAffine(m *matrix.Matrix) (MathTransform, error) {
	return NewLinear(m)
}

// CreateConcatenated creates the transform that applies ts in order.
func (f *Factory) CreateConcatenated(ts ...MathTransform) (MathTransform, error) {
	return Concatenate(ts...)
}

func builtinMethods() []Method {
	ellps := []Param{{Name: SemiMajor, Required: true}, {Name: SemiMinor}}
	origin := []Param{
		{Name: CentralMeridian},
		{Name: LatitudeOfOrigin},
		{Name: FalseEasting},
		{Name: FalseNorthing},
	}
	params := func(extra ...Param) []Param {
		out := append(append([]Param(nil), ellps...), origin...)
		return append(out, extra...)
	}
	scale := Param{Name: ScaleFactor, Default: 1}
	sp1 := Param{Name: StandardParallel1}
	sp2 := Param{Name: StandardParallel2}
	helmert := []Param{{Name: Dx}, {Name: Dy}, {Name: Dz}, {Name: Ex}, {Name: Ey}, {Name: Ez}, {Name: PPM}}
	return []Method{
		{Name: "Mercator_1SP", Aliases: []string{"Mercator", "merc"}, Params: params(scale), Create: newMercator1SP},
		{Name: "Mercator_2SP", Params: params(sp1), Create: newMercator2SP},
		{Name: "Transverse_Mercator", Aliases: []string{"tmerc", "Gauss_Kruger"}, Params: params(scale), Create: newTransverseMercator},
		{Name: "Lambert_Conformal_Conic_1SP", Params: params(scale),
			Create: newLambertConformal("Lambert_Conformal_Conic_1SP", false)},
		{Name: "Lambert_Conformal_Conic_2SP", Aliases: []string{"Lambert_Conformal_Conic", "lcc"}, Params: params(scale, sp1, sp2),
			Create: newLambertConformal("Lambert_Conformal_Conic_2SP", true)},
		{Name: "Albers_Conic_Equal_Area", Aliases: []string{"Albers", "aea"}, Params: params(sp1, sp2), Create: newAlbers},
		{Name: "Equirectangular", Aliases: []string{"Equidistant_Cylindrical", "Plate_Carree", "eqc"}, Params: params(sp1), Create: newEquirectangular},
		{Name: "Ellipsoid_To_Geocentric", Params: append(append([]Param(nil), ellps...), Param{Name: Dim, Default: 3}),
			Create: func(p Parameters) (MathTransform, error) {
				a := p[SemiMajor]
				g, err := NewGeographicToGeocentric(a, p.Value(SemiMinor, a), p.Value(Dim, 3) == 3)
				if err != nil {
					return nil, err
				}
				return g, nil
			}},
		{Name: "Geocentric_To_Ellipsoid", Params: append(append([]Param(nil), ellps...), Param{Name: Dim, Default: 3}),
			Create: func(p Parameters) (MathTransform, error) {
				a := p[SemiMajor]
				g, err := NewGeocentricToGeographic(a, p.Value(SemiMinor, a), p.Value(Dim, 3) == 3)
				if err != nil {
					return nil, err
				}
				return g, nil
			}},
		{Name: "Position_Vector_Transformation", Aliases: []string{"Bursa_Wolf", "Helmert"}, Params: helmert,
			Create: func(p Parameters) (MathTransform, error) {
				return BursaWolf{Dx: p[Dx], Dy: p[Dy], Dz: p[Dz], Ex: p[Ex], Ey: p[Ey], Ez: p[Ez], PPM: p[PPM]}.Transform()
			}},
	}
}
