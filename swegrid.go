/*
Copyright © 2024 the SWEGrid authors.
This file is part of SWEGrid.

SWEGrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SWEGrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SWEGrid.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package swegrid reads and writes NetCDF containers that describe a
// rectangular shallow-water simulation grid: the grid shape and extent as
// global attributes, and up to four physical fields (bathymetry H, surface
// elevation eta, and the staggered velocity components U and V) as variables.
//
// A container is valid input for a simulation when its nx and ny attributes
// are integers of at least 2 and its physical extent can be determined either
// from the width/height attributes or from the dx/dy cell spacings. The four
// fields are all optional, but a field that is present must have the exact
// shape the staggered grid requires for it.
package swegrid

// GridSpec describes the shape and physical extent of a simulation grid.
// Nx and Ny count grid cells; Width and Height are in meters.
type GridSpec struct {
	Nx, Ny        int
	Width, Height float64
}

// Dx returns the grid spacing in the x direction.
func (g GridSpec) Dx() float64 { return g.Width / float64(g.Nx-1) }

// Dy returns the grid spacing in the y direction.
func (g GridSpec) Dy() float64 { return g.Height / float64(g.Ny-1) }

// fieldDims returns the variable shape (ny, nx) that the staggered grid
// requires for the named field, or ok=false if name is not one of the four
// supported fields. H and eta live on cell corners; U and V are staggered
// in x and y respectively.
func (g GridSpec) fieldDims(name string) (ny, nx int, ok bool) {
	switch name {
	case "H", "eta":
		return g.Ny + 1, g.Nx + 1, true
	case "U":
		return g.Ny - 1, g.Nx + 2, true
	case "V":
		return g.Ny + 2, g.Nx - 1, true
	}
	return 0, 0, false
}

// FieldNames lists the supported field variables in the order they are read.
var FieldNames = []string{"H", "eta", "U", "V"}
