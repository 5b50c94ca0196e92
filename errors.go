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

import (
	"fmt"
	"strings"
)

// OpenError is returned when a container cannot be opened or is not a
// readable NetCDF file.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("swegrid: opening %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// InvalidMetadataError is returned when a mandatory global attribute is
// missing, has no usable value, or is out of range. Name is "nx", "ny",
// "width/dx" or "height/dy".
type InvalidMetadataError struct {
	Name string
}

func (e *InvalidMetadataError) Error() string {
	switch e.Name {
	case "nx", "ny":
		return fmt.Sprintf("swegrid: attribute %s is not a valid integer >= 2", e.Name)
	}
	return fmt.Sprintf("swegrid: neither %s is a valid float attribute > 0",
		strings.Replace(e.Name, "/", " nor ", 1))
}

// FieldTypeError is returned when a field variable is present but its
// element type is not FLOAT.
type FieldTypeError struct {
	Field string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("swegrid: field %s: element type is not FLOAT", e.Field)
}

// FieldShapeError is returned when a dimension of a field variable does not
// have the size the staggered grid requires. Axis is "nx" or "ny".
type FieldShapeError struct {
	Field     string
	Axis      string
	Got, Want int
}

func (e *FieldShapeError) Error() string {
	return fmt.Sprintf("swegrid: field %s: %s (%d) != %d", e.Field, e.Axis, e.Got, e.Want)
}

// TimeDimensionError is returned when a 3-dimensional field variable's
// outermost dimension is not named "T".
type TimeDimensionError struct {
	Field string
	Dim   string
}

func (e *TimeDimensionError) Error() string {
	return fmt.Sprintf("swegrid: field %s: name of time dimension (%s) != T", e.Field, e.Dim)
}

// UnsupportedDimensionalityError is returned when a field variable has
// neither 2 nor 3 dimensions.
type UnsupportedDimensionalityError struct {
	Field string
	Dims  int
}

func (e *UnsupportedDimensionalityError) Error() string {
	return fmt.Sprintf("swegrid: field %s: number of dimensions (%d) neither 2 nor 3", e.Field, e.Dims)
}

// FieldReadError is returned when the container library fails to
// materialize the values of a field variable.
type FieldReadError struct {
	Field string
	Err   error
}

func (e *FieldReadError) Error() string {
	return fmt.Sprintf("swegrid: field %s: reading values: %v", e.Field, e.Err)
}

func (e *FieldReadError) Unwrap() error { return e.Err }

// CloseError is returned when the container cannot be released cleanly at
// teardown. It indicates the underlying library still considers the file
// busy or corrupted and should be treated as fatal.
type CloseError struct {
	Path string
	Err  error
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("swegrid: closing %s: %v", e.Path, e.Err)
}

func (e *CloseError) Unwrap() error { return e.Err }
