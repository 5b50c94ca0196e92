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

package swegrid

import "github.com/ctessum/sparse"

// FieldInfo holds one 2D field extracted from a grid container. Data has
// shape [Ny][Nx] with y as the outer (row) dimension, matching the storage
// order in the container. Dx and Dy are the grid spacings copied from the
// grid at extraction time, so a field remains self-describing after the
// reader that produced it is closed.
//
// The zero value is the absent sentinel, returned when the container does
// not hold the corresponding variable.
type FieldInfo struct {
	Data   *sparse.DenseArray
	Nx, Ny int
	Dx, Dy float64
}

// Empty reports whether the field was absent from the container.
func (f FieldInfo) Empty() bool { return f.Data == nil }
