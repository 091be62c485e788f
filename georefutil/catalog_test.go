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
	"strings"
	"testing"

	"github.com/spatialmodel/georef/crs"
)

func TestCatalogLookup(t *testing.T) {
	cat, err := LoadCatalogFile("testdata/catalog.toml")
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.CRS) != 2 {
		t.Fatalf("catalog has %d entries", len(cat.CRS))
	}
	for _, name := range []string{"wgs84", "EPSG:4326", "utm31", "ed50", "UTM33S", "+proj=longlat +datum=WGS84"} {
		if _, err := cat.Lookup(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	r, err := cat.Lookup("utm33s")
	if err != nil {
		t.Fatal(err)
	}
	p, ok := r.(*crs.Projected)
	if !ok {
		t.Fatalf("UTM33S is a %T", r)
	}
	if fn := p.Conversion().Parameters["false_northing"]; fn != 10000000 {
		t.Errorf("false northing %g", fn)
	}
	for _, name := range []string{"UTM61N", "UTM31X", "UTMN", "nowhere"} {
		if _, err := cat.Lookup(name); err == nil {
			t.Errorf("%s should not resolve", name)
		}
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	if _, err := LoadCatalog(strings.NewReader("[CRS.empty]\nDescription = \"nothing\"\n")); err == nil {
		t.Error("an entry without a definition should fail")
	}
	if _, err := LoadCatalog(strings.NewReader("[CRS\n")); err == nil {
		t.Error("malformed TOML should fail")
	}
	if _, err := LoadCatalogFile("testdata/missing.toml"); err == nil {
		t.Error("a missing file should fail")
	}
	var nilCatalog *Catalog
	if _, err := nilCatalog.Lookup("WGS84"); err != nil {
		t.Error(err)
	}
}
