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

// Package georef is the core of a coordinate reference system framework.
// It holds the error taxonomy shared by its subpackages:
// matrix (dense matrix primitives), transform (math transforms and map
// projections), crs (reference system definitions and axis directions),
// operation (resolution of transforms between reference systems) and
// geodesic (direct and inverse geodesic problems).
package georef

// Version gives the version number.
const Version = "0.3.0"
