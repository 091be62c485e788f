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
	"strings"

	"github.com/spatialmodel/georef/crs"
	"github.com/spatialmodel/georef/transform"
)

// Operation converts coordinates from Source to Target.
type Operation struct {
	Source, Target crs.CRS
	Transform      transform.MathTransform

	// Steps names the steps of Transform in order, before adjacent
	// linear steps were merged.
	Steps []string
}

// Inverse returns the operation from Target to Source.
func (o *Operation) Inverse() (*Operation, error) {
	inv, err := o.Transform.Inverse()
	if err != nil {
		return nil, fmt.Errorf("georef: inverting operation from %q to %q: %w", o.Source.Name(), o.Target.Name(), err)
	}
	steps := make([]string, len(o.Steps))
	for i, s := range o.Steps {
		steps[len(steps)-1-i] = "reverse " + s
	}
	return &Operation{Source: o.Target, Target: o.Source, Transform: inv, Steps: steps}, nil
}

func (o *Operation) String() string {
	return fmt.Sprintf("%s -> %s [%s]", o.Source.Name(), o.Target.Name(), strings.Join(o.Steps, ", "))
}
