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
	"os"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// Write writes a grid container to w: the grid shape and extent as global
// attributes and each supplied field as a 2D FLOAT variable. The fields map
// is keyed by field name (one of FieldNames); each array must have shape
// [ny][nx] as required by the staggered grid for that field. Fields may be
// omitted entirely.
func Write(w cdf.ReaderWriterAt, grid GridSpec, fields map[string]*sparse.DenseArray) error {
	if grid.Nx < 2 || grid.Ny < 2 {
		return fmt.Errorf("swegrid: grid must have nx >= 2 and ny >= 2, got %d x %d", grid.Nx, grid.Ny)
	}
	if grid.Width <= 0 || grid.Height <= 0 {
		return fmt.Errorf("swegrid: grid extent must be positive, got %g x %g", grid.Width, grid.Height)
	}
	if len(fields) == 0 {
		return fmt.Errorf("swegrid: no fields to write")
	}

	// Sort the names so the container layout is the same every time.
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)

	var dims []string
	var lengths []int
	for _, name := range names {
		ny, nx, ok := grid.fieldDims(name)
		if !ok {
			return fmt.Errorf("swegrid: unsupported field %s", name)
		}
		data := fields[name]
		if len(data.Shape) != 2 || data.Shape[0] != ny || data.Shape[1] != nx {
			return fmt.Errorf("swegrid: field %s has shape %v, want [%d %d]", name, data.Shape, ny, nx)
		}
		dims = append(dims, "y"+name, "x"+name)
		lengths = append(lengths, ny, nx)
	}

	h := cdf.NewHeader(dims, lengths)
	h.AddAttribute("", "comment", "SWEGrid shallow-water initial condition file")
	h.AddAttribute("", "nx", []int32{int32(grid.Nx)})
	h.AddAttribute("", "ny", []int32{int32(grid.Ny)})
	h.AddAttribute("", "width", []float64{grid.Width})
	h.AddAttribute("", "height", []float64{grid.Height})

	for _, name := range names {
		h.AddVariable(name, []string{"y" + name, "x" + name}, []float32{0})
	}
	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("swegrid: creating container header: %v", err)
	}

	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("swegrid: creating container: %v", err)
	}
	for _, name := range names {
		if err := writeVar(f, name, fields[name]); err != nil {
			return fmt.Errorf("swegrid: writing field %s: %v", name, err)
		}
	}
	return nil
}

// WriteFile writes a grid container to the file at path, replacing any
// existing file.
func WriteFile(path string, grid GridSpec, fields map[string]*sparse.DenseArray) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("swegrid: creating %s: %v", path, err)
	}
	if err := Write(f, grid, fields); err != nil {
		f.Close()
		return err
	}
	if err := cdf.UpdateNumRecs(f); err != nil {
		f.Close()
		return fmt.Errorf("swegrid: finalizing %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return &CloseError{Path: path, Err: err}
	}
	return nil
}

// WriteTimeSeriesFile writes a grid container holding a single field as a 3D
// time series with a fixed-length time dimension named "T". steps holds one
// [ny][nx] array per timestep, oldest first.
func WriteTimeSeriesFile(path string, grid GridSpec, name string, steps []*sparse.DenseArray) error {
	ny, nx, ok := grid.fieldDims(name)
	if !ok {
		return fmt.Errorf("swegrid: unsupported field %s", name)
	}
	if len(steps) == 0 {
		return fmt.Errorf("swegrid: field %s: time series needs at least one step", name)
	}
	for i, data := range steps {
		if len(data.Shape) != 2 || data.Shape[0] != ny || data.Shape[1] != nx {
			return fmt.Errorf("swegrid: field %s step %d has shape %v, want [%d %d]", name, i, data.Shape, ny, nx)
		}
	}

	h := cdf.NewHeader([]string{"T", "y" + name, "x" + name}, []int{len(steps), ny, nx})
	h.AddAttribute("", "nx", []int32{int32(grid.Nx)})
	h.AddAttribute("", "ny", []int32{int32(grid.Ny)})
	h.AddAttribute("", "width", []float64{grid.Width})
	h.AddAttribute("", "height", []float64{grid.Height})
	h.AddVariable(name, []string{"T", "y" + name, "x" + name}, []float32{0})
	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("swegrid: creating container header: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("swegrid: creating %s: %v", path, err)
	}
	cf, err := cdf.Create(f, h)
	if err != nil {
		f.Close()
		return fmt.Errorf("swegrid: creating container: %v", err)
	}
	for i, data := range steps {
		start, end := []int{i, 0, 0}, []int{i + 1, 0, 0}
		data32 := make([]float32, len(data.Elements))
		for j, e := range data.Elements {
			data32[j] = float32(e)
		}
		if _, err := cf.Writer(name, start, end).Write(data32); err != nil {
			f.Close()
			return fmt.Errorf("swegrid: writing field %s step %d: %v", name, i, err)
		}
	}
	if err := cdf.UpdateNumRecs(f); err != nil {
		f.Close()
		return fmt.Errorf("swegrid: finalizing %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return &CloseError{Path: path, Err: err}
	}
	return nil
}

// writeVar copies a dense array into the container variable of the same
// shape.
func writeVar(f *cdf.File, name string, data *sparse.DenseArray) error {
	n := 1
	for _, v := range data.Shape {
		n *= v
	}
	if len(data.Elements) != n {
		return fmt.Errorf("dims are %d but array length is %d", n, len(data.Elements))
	}
	data32 := make([]float32, len(data.Elements))
	for i, e := range data.Elements {
		data32[i] = float32(e)
	}
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	_, err := f.Writer(name, start, end).Write(data32)
	return err
}
