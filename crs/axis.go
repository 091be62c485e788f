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

package crs

import (
	"fmt"
	"math"
	"strings"
)

// AxisDirection is the direction of a coordinate system axis.
type AxisDirection int

// Axis directions.
const (
	OtherDirection AxisDirection = iota
	North
	East
	South
	West
	Up
	Down
	GeocentricX
	GeocentricY
	GeocentricZ
)

var axisDirectionNames = [...]string{
	OtherDirection: "Other",
	North:          "North",
	East:           "East",
	South:          "South",
	West:           "West",
	Up:             "Up",
	Down:           "Down",
	GeocentricX:    "Geocentric X",
	GeocentricY:    "Geocentric Y",
	GeocentricZ:    "Geocentric Z",
}

func (d AxisDirection) String() string {
	if d < 0 || int(d) >= len(axisDirectionNames) {
		return fmt.Sprintf("AxisDirection(%d)", int(d))
	}
	return axisDirectionNames[d]
}

// ParseAxisDirection parses a direction name, ignoring case and spaces.
func ParseAxisDirection(name string) (AxisDirection, bool) {
	key := strings.ToLower(strings.Replace(name, " ", "", -1))
	for i, n := range axisDirectionNames {
		if strings.ToLower(strings.Replace(n, " ", "", -1)) == key {
			return AxisDirection(i), true
		}
	}
	return OtherDirection, false
}

// Absolute returns the positive direction of the axis line: North, East
// or Up for their opposites, and d itself otherwise.
func (d AxisDirection) Absolute() AxisDirection {
	switch d {
	case South:
		return North
	case West:
		return East
	case Down:
		return Up
	}
	return d
}

// Opposite returns the direction pointing the other way, or
// OtherDirection if d has no opposite in this enumeration.
func (d AxisDirection) Opposite() AxisDirection {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	}
	return OtherDirection
}

// compass returns the bearing of a horizontal direction in degrees.
func (d AxisDirection) compass() (float64, bool) {
	switch d {
	case North:
		return 0, true
	case East:
		return 90, true
	case South:
		return 180, true
	case West:
		return 270, true
	}
	return 0, false
}

// Axis is a coordinate system axis. Polar axes whose direction follows a
// meridian carry it in Meridian.
type Axis struct {
	Name         string
	Abbreviation string
	Direction    AxisDirection
	Meridian     *DirectionAlongMeridian
	Unit         Unit
}

// NewAxis creates an axis whose direction is either a plain direction
// name such as "East" or a direction along a meridian such as
// "North along 90 deg East".
func NewAxis(name, abbreviation, direction string, u Unit) (Axis, error) {
	a := Axis{Name: name, Abbreviation: abbreviation, Unit: u}
	if d, ok := ParseAxisDirection(direction); ok {
		a.Direction = d
		return a, nil
	}
	if dm, ok := ParseDirection(direction); ok {
		a.Direction = dm.Base
		a.Meridian = &dm
		return a, nil
	}
	return Axis{}, fmt.Errorf("georef: axis %q: unknown direction %q", name, direction)
}

// DirectionName returns the direction as it was written for the axis.
func (a Axis) DirectionName() string {
	if a.Meridian != nil {
		return a.Meridian.String()
	}
	return a.Direction.String()
}

// Bearing returns the direction of a horizontal axis as a bearing in
// degrees clockwise from North in the plane of its coordinate system. An
// axis "North along M" points away from the south pole along meridian M
// and has bearing M; "South along M" has bearing 180-M.
func (a Axis) Bearing() (float64, bool) {
	if m := a.Meridian; m != nil {
		if m.Base == South {
			return normalizeAngle(180 - m.Meridian), true
		}
		return m.Meridian, true
	}
	return a.Direction.compass()
}

// AngleBetween returns the angle in degrees from axis a to axis b, in
// (-180, 180], positive when (a, b) is a right-handed pair such as
// (East, North). Two directions along meridians are compared with
// DirectionAlongMeridian.Angle and other horizontal directions by Bearing.
// It returns NaN when the directions cannot be compared.
func AngleBetween(a, b Axis) float64 {
	if a.Meridian != nil && b.Meridian != nil {
		return a.Meridian.Angle(*b.Meridian)
	}
	ca, ok1 := a.Bearing()
	cb, ok2 := b.Bearing()
	if !ok1 || !ok2 {
		switch {
		case ok1 != ok2:
			return math.NaN()
		case a.Direction == b.Direction:
			return 0
		case a.Direction.Opposite() == b.Direction && a.Direction != OtherDirection:
			return 180
		}
		return math.NaN()
	}
	return normalizeAngle(ca - cb)
}

func (a Axis) String() string {
	return fmt.Sprintf("%s (%s, %s)", a.Name, a.DirectionName(), a.Unit)
}
