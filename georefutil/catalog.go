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

package georefutil

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/georef/crs"
)

// CatalogEntry is a named reference system in a catalogue file.
type CatalogEntry struct {
	// Definition is a proj4 string or WKT.
	Definition string

	// Description is free text shown by the list command.
	Description string
}

// Catalog holds named coordinate reference systems. A catalogue file is
// TOML with one table per entry:
//
//	[CRS.lambert]
//	Definition = "+proj=lcc +lat_1=33 +lat_2=45 +lat_0=40 +lon_0=-97 +datum=NAD83"
//	Description = "Continental US Lambert conformal conic"
type Catalog struct {
	CRS map[string]CatalogEntry
}

// builtins are the reference systems available without a catalogue.
var builtins = map[string]crs.CRS{
	"WGS84":     crs.WGS84,
	"EPSG:4326": crs.EPSG4326,
}

// LoadCatalog reads a catalogue from r.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	c := new(Catalog)
	if _, err := toml.DecodeReader(r, c); err != nil {
		return nil, fmt.Errorf("georefutil: reading catalog: %w", err)
	}
	for name, e := range c.CRS {
		if strings.TrimSpace(e.Definition) == "" {
			return nil, fmt.Errorf("georefutil: catalog entry %q has no definition", name)
		}
	}
	return c, nil
}

// LoadCatalogFile reads a catalogue from the named file. Environment
// variables in the path are expanded. An empty path gives an empty
// catalogue.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return new(Catalog), nil
	}
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("georefutil: opening catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Lookup resolves a reference system by built-in name, catalogue entry,
// UTM shorthand ("UTM31N", "UTM33S") or a literal proj4 or WKT definition,
// in that order.
func (c *Catalog) Lookup(name string) (crs.CRS, error) {
	if b, ok := builtins[strings.ToUpper(name)]; ok {
		return b, nil
	}
	if c != nil {
		if e, ok := c.CRS[name]; ok {
			r, err := crs.FromProj(e.Definition)
			if err != nil {
				return nil, fmt.Errorf("georefutil: catalog entry %q: %w", name, err)
			}
			return r, nil
		}
	}
	if zone, south, ok := parseUTM(name); ok {
		return crs.UTM(zone, south, crs.WGS84Datum)
	}
	r, err := crs.FromProj(name)
	if err != nil {
		return nil, fmt.Errorf("georefutil: unknown reference system %q: %w", name, err)
	}
	return r, nil
}

// Names returns the sorted names of the built-in and catalogued systems.
func (c *Catalog) Names() []string {
	var names []string
	for n := range builtins {
		names = append(names, n)
	}
	if c != nil {
		for n := range c.CRS {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

func parseUTM(name string) (zone int, south, ok bool) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(s, "UTM") || len(s) < 5 {
		return 0, false, false
	}
	switch s[len(s)-1] {
	case 'N':
	case 'S':
		south = true
	default:
		return 0, false, false
	}
	zone, err := strconv.Atoi(s[3 : len(s)-1])
	if err != nil {
		return 0, false, false
	}
	return zone, south, true
}

// ellipsoids are the names accepted by the --ellipsoid option.
var ellipsoids = map[string]crs.Ellipsoid{
	"WGS84":    crs.WGS84Ellipsoid,
	"GRS80":    crs.GRS80,
	"CLRK66":   crs.Clarke1866,
	"INTL":     crs.International1924,
	"AIRY":     crs.Airy1830,
	"BESSEL":   crs.Bessel1841,
	"SPHERE":   crs.Sphere,
	"AUTHALIC": crs.AuthalicSphereGRS80,
}

func ellipsoidByName(name string) (crs.Ellipsoid, error) {
	e, ok := ellipsoids[strings.ToUpper(name)]
	if !ok {
		return crs.Ellipsoid{}, fmt.Errorf("georefutil: unknown ellipsoid %q", name)
	}
	return e, nil
}
