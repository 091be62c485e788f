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

package georef

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this module that falls into one
// of these categories matches the corresponding sentinel through errors.Is.
var (
	ErrDimensionMismatch = errors.New("georef: dimension mismatch")
	ErrNoninvertible     = errors.New("georef: transform is not invertible")
	ErrGeodesic          = errors.New("georef: geodesic calculation failed")
	ErrOperationNotFound = errors.New("georef: no coordinate operation found")
	ErrProjectionDomain  = errors.New("georef: coordinate outside of projection domain")
)

// DimensionMismatchError is returned when matrix shapes or transform
// dimensions do not chain.
type DimensionMismatchError struct {
	Op        string
	Want, Got int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("georef: %s: dimension mismatch: want %d, got %d", e.Op, e.Want, e.Got)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

// NoninvertibleError is returned when a matrix or transform has no inverse.
type NoninvertibleError struct {
	Op  string
	Err error
}

func (e *NoninvertibleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("georef: %s: not invertible: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("georef: %s: not invertible", e.Op)
}

// Is reports whether target is ErrNoninvertible.
func (e *NoninvertibleError) Is(target error) bool { return target == ErrNoninvertible }

func (e *NoninvertibleError) Unwrap() error { return e.Err }

// GeodesicError is returned when an iterative geodesic solution fails,
// typically for nearly antipodal points. The coordinates are in degrees.
type GeodesicError struct {
	Lat1, Lon1 float64
	Lat2, Lon2 float64
	Iterations int
	Reason     string
}

func (e *GeodesicError) Error() string {
	msg := fmt.Sprintf("georef: geodesic from (%g, %g) to (%g, %g): %s",
		e.Lat1, e.Lon1, e.Lat2, e.Lon2, e.Reason)
	if e.Iterations > 0 {
		msg += fmt.Sprintf(" after %d iterations", e.Iterations)
	}
	return msg
}

// Is reports whether target is ErrGeodesic.
func (e *GeodesicError) Is(target error) bool { return target == ErrGeodesic }

// OperationNotFoundError is returned when no coordinate operation can be
// built between two reference systems.
type OperationNotFoundError struct {
	Source, Target string
	Reason         string
	Err            error
}

func (e *OperationNotFoundError) Error() string {
	msg := fmt.Sprintf("georef: no operation from %q to %q", e.Source, e.Target)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrOperationNotFound.
func (e *OperationNotFoundError) Is(target error) bool { return target == ErrOperationNotFound }

func (e *OperationNotFoundError) Unwrap() error { return e.Err }
