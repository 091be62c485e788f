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
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// DirectionAlongMeridian is an axis direction of the form
// "South along 90 deg East", used by polar projections. The base direction
// is North or South and the meridian is in degrees east of the prime
// meridian, in (-180, 180].
type DirectionAlongMeridian struct {
	Base     AxisDirection
	Meridian float64
}

var directionPattern = regexp.MustCompile(`(?i)^\s*(\S+)\s+along\s+([+-]?[0-9]*\.?[0-9]+)\s*(?:deg|°)\s*(\S+)?\s*$`)

// directionCacheSize bounds the number of parsed names kept in memory.
const directionCacheSize = 256

var directions = struct {
	sync.Mutex
	cache *lru.Cache
}{cache: lru.New(directionCacheSize)}

// ParseDirection parses names such as "North along 90 deg East",
// "south along 180°" or "North along 45 deg W". It returns false if name
// is not a direction along a meridian. Results are cached.
func ParseDirection(name string) (DirectionAlongMeridian, bool) {
	directions.Lock()
	v, ok := directions.cache.Get(name)
	directions.Unlock()
	if ok {
		d, found := v.(*DirectionAlongMeridian)
		if !found || d == nil {
			return DirectionAlongMeridian{}, false
		}
		return *d, true
	}
	d, found := parseDirection(name)
	var entry *DirectionAlongMeridian
	if found {
		entry = &d
	}
	directions.Lock()
	directions.cache.Add(name, entry)
	directions.Unlock()
	return d, found
}

func parseDirection(name string) (DirectionAlongMeridian, bool) {
	m := directionPattern.FindStringSubmatch(name)
	if m == nil {
		return DirectionAlongMeridian{}, false
	}
	base, ok := ParseAxisDirection(m[1])
	if !ok || (base != North && base != South) {
		return DirectionAlongMeridian{}, false
	}
	meridian, err := strconv.ParseFloat(m[2], 64)
	if err != nil || math.Abs(meridian) > 180 {
		return DirectionAlongMeridian{}, false
	}
	switch strings.ToLower(m[3]) {
	case "", "east", "e":
	case "west", "w":
		meridian = -meridian
	default:
		return DirectionAlongMeridian{}, false
	}
	switch meridian {
	case 0:
		meridian = 0 // no negative zero
	case -180:
		meridian = 180 // one antimeridian
	}
	return DirectionAlongMeridian{Base: base, Meridian: meridian}, true
}

// Angle returns the angle in degrees from d to o, in (-180, 180]. The
// angle is positive when (d, o) is a right-handed pair of axes: for
// example the angle from "North along 90 deg East" to "North along 0 deg"
// is +90. It returns NaN if the base directions differ.
func (d DirectionAlongMeridian) Angle(o DirectionAlongMeridian) float64 {
	if d.Base != o.Base {
		return math.NaN()
	}
	angle := normalizeAngle(d.Meridian - o.Meridian)
	if d.Base == South {
		angle = -angle
		if angle == -180 {
			angle = 180
		}
	}
	return angle
}

// Compare orders directions by base direction and then by meridian. It
// returns -1, 0 or +1.
func (d DirectionAlongMeridian) Compare(o DirectionAlongMeridian) int {
	switch {
	case d.Base < o.Base:
		return -1
	case d.Base > o.Base:
		return 1
	case d.Meridian < o.Meridian:
		return -1
	case d.Meridian > o.Meridian:
		return 1
	}
	return 0
}

func (d DirectionAlongMeridian) String() string {
	s := d.Base.String() + " along " + strconv.FormatFloat(math.Abs(d.Meridian), 'f', -1, 64) + " deg"
	switch {
	case d.Meridian > 0:
		s += " East"
	case d.Meridian < 0:
		s += " West"
	}
	return s
}

// normalizeAngle folds an angle in degrees into (-180, 180].
func normalizeAngle(a float64) float64 {
	a = math.Remainder(a, 360)
	if a <= -180 {
		a += 360
	}
	return a
}
