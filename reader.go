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
	"errors"
	"io"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// Reader extracts grid metadata and fields from a NetCDF grid container.
//
// All validation and extraction happens during construction: a Reader that
// was obtained without error holds a fully materialized copy of the grid
// data, and its accessors cannot fail. The four fields are optional in the
// container; an absent field yields the FieldInfo zero value.
//
// A field variable may either be a plain 2D array, or a 3D time series whose
// outermost dimension is named "T", in which case only the most recent
// timestep is extracted.
//
// The physical extent is taken from the width and height attributes when
// they are present and positive; otherwise it is derived from the dx and dy
// cell spacings as (nx-1)*dx and (ny-1)*dy. When both conventions are
// supplied, width and height win silently, with no consistency check against
// dx and dy. Producers that write inconsistent values get the width/height
// interpretation.
type Reader struct {
	file *cdf.File
	rw   cdf.ReaderWriterAt
	path string
	size int64 // container size in bytes, or 0 if unknown

	grid             GridSpec
	fH, fEta, fU, fV FieldInfo
}

// OpenFile opens the container at path read-only and extracts its contents.
// The returned Reader owns the file handle; release it with Close.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	cf, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	r := &Reader{file: cf, rw: f, path: path, size: fi.Size()}
	if err := r.init(); err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// NewReader extracts grid contents from an already open container storage,
// for example a bytes.Reader holding an in-memory container. If rw is an
// io.Closer, the Reader takes ownership of it.
func NewReader(rw cdf.ReaderWriterAt) (*Reader, error) {
	cf, err := cdf.Open(rw)
	if err != nil {
		return nil, &OpenError{Path: "<storage>", Err: err}
	}
	r := &Reader{file: cf, rw: rw, path: "<storage>", size: storageSize(rw)}
	if err := r.init(); err != nil {
		return nil, err
	}
	return r, nil
}

func storageSize(rw cdf.ReaderWriterAt) int64 {
	switch s := rw.(type) {
	case interface{ Size() int64 }:
		return s.Size()
	case interface{ Stat() (os.FileInfo, error) }:
		if fi, err := s.Stat(); err == nil {
			return fi.Size()
		}
	}
	return 0
}

// init validates the global attributes, derives the grid extent, and reads
// the fields, in a fixed order: nx, ny, width, height, then H, eta, U, V.
func (r *Reader) init() error {
	attr := func(name string) interface{} {
		return r.file.Header.GetAttribute("", name)
	}

	nx, ok := attrInt(attr("nx"))
	if !ok || nx < 2 {
		return &InvalidMetadataError{Name: "nx"}
	}
	ny, ok := attrInt(attr("ny"))
	if !ok || ny < 2 {
		return &InvalidMetadataError{Name: "ny"}
	}

	var width, height float64
	if w, ok := attrFloat(attr("width")); ok && w > 0 {
		width = w
	} else if dx, ok := attrFloat(attr("dx")); ok && dx > 0 {
		width = float64(nx-1) * dx
	} else {
		return &InvalidMetadataError{Name: "width/dx"}
	}
	if h, ok := attrFloat(attr("height")); ok && h > 0 {
		height = h
	} else if dy, ok := attrFloat(attr("dy")); ok && dy > 0 {
		height = float64(ny-1) * dy
	} else {
		return &InvalidMetadataError{Name: "height/dy"}
	}

	r.grid = GridSpec{Nx: nx, Ny: ny, Width: width, Height: height}

	vars := make(map[string]struct{})
	for _, v := range r.file.Header.Variables() {
		vars[v] = struct{}{}
	}

	for _, name := range FieldNames {
		nyExp, nxExp, _ := r.grid.fieldDims(name)
		f, err := r.readField(vars, name, nxExp, nyExp)
		if err != nil {
			return err
		}
		switch name {
		case "H":
			r.fH = f
		case "eta":
			r.fEta = f
		case "U":
			r.fU = f
		case "V":
			r.fV = f
		}
	}
	return nil
}

// readField extracts the named field, expecting an nxExp by nyExp array of
// FLOAT values. A variable absent from vars yields the zero FieldInfo and no
// error. A 3D variable is treated as a time series and only its last
// timestep is read.
func (r *Reader) readField(vars map[string]struct{}, name string, nxExp, nyExp int) (FieldInfo, error) {
	if _, ok := vars[name]; !ok {
		return FieldInfo{}, nil
	}

	if _, ok := r.file.Header.ZeroValue(name, 0).([]float32); !ok {
		return FieldInfo{}, &FieldTypeError{Field: name}
	}

	dims := r.file.Header.Dimensions(name)
	lens := r.file.Header.Lengths(name)

	var rr cdf.Reader
	switch len(dims) {
	case 2:
		if lens[0] != nyExp {
			return FieldInfo{}, &FieldShapeError{Field: name, Axis: "ny", Got: lens[0], Want: nyExp}
		}
		if lens[1] != nxExp {
			return FieldInfo{}, &FieldShapeError{Field: name, Axis: "nx", Got: lens[1], Want: nxExp}
		}
		rr = r.file.Reader(name, nil, nil)

	case 3:
		if dims[0] != "T" {
			return FieldInfo{}, &TimeDimensionError{Field: name, Dim: dims[0]}
		}
		if lens[1] != nyExp {
			return FieldInfo{}, &FieldShapeError{Field: name, Axis: "ny", Got: lens[1], Want: nyExp}
		}
		if lens[2] != nxExp {
			return FieldInfo{}, &FieldShapeError{Field: name, Axis: "nx", Got: lens[2], Want: nxExp}
		}
		nt := lens[0]
		if nt == 0 {
			// T is the record dimension; the header reports it as length
			// 0 and the true count follows from the container size.
			if r.size == 0 {
				return FieldInfo{}, &FieldReadError{Field: name,
					Err: errors.New("record count unknown for storage of unknown size")}
			}
			nt = int(r.file.Header.NumRecs(r.size))
			if nt <= 0 {
				return FieldInfo{}, &FieldReadError{Field: name,
					Err: errors.New("time series holds no complete record")}
			}
		}
		start, end := make([]int, 3), make([]int, 3)
		start[0], end[0] = nt-1, nt
		rr = r.file.Reader(name, start, end)

	default:
		return FieldInfo{}, &UnsupportedDimensionalityError{Field: name, Dims: len(dims)}
	}

	buf := make([]float32, nxExp*nyExp)
	if _, err := rr.Read(buf); err != nil {
		return FieldInfo{}, &FieldReadError{Field: name, Err: err}
	}

	data := sparse.ZerosDense(nyExp, nxExp)
	for i, v := range buf {
		data.Elements[i] = float64(v)
	}
	return FieldInfo{Data: data, Nx: nxExp, Ny: nyExp, Dx: r.grid.Dx(), Dy: r.grid.Dy()}, nil
}

// Grid returns the validated grid metadata.
func (r *Reader) Grid() GridSpec { return r.grid }

// Nx returns the number of grid cells in the x direction.
func (r *Reader) Nx() int { return r.grid.Nx }

// Ny returns the number of grid cells in the y direction.
func (r *Reader) Ny() int { return r.grid.Ny }

// Width returns the physical domain size in the x direction.
func (r *Reader) Width() float64 { return r.grid.Width }

// Height returns the physical domain size in the y direction.
func (r *Reader) Height() float64 { return r.grid.Height }

// Dx returns the grid spacing in the x direction, re-derived from the
// width so it can never diverge from it.
func (r *Reader) Dx() float64 { return r.grid.Dx() }

// Dy returns the grid spacing in the y direction.
func (r *Reader) Dy() float64 { return r.grid.Dy() }

// H returns the bathymetry field, or the absent sentinel.
func (r *Reader) H() FieldInfo { return r.fH }

// Eta returns the surface elevation field, or the absent sentinel.
func (r *Reader) Eta() FieldInfo { return r.fEta }

// U returns the x-velocity field, or the absent sentinel.
func (r *Reader) U() FieldInfo { return r.fU }

// V returns the y-velocity field, or the absent sentinel.
func (r *Reader) V() FieldInfo { return r.fV }

// Close releases the container storage. For file-backed readers the file is
// synced before it is closed. A failure here is a CloseError and should be
// treated as fatal: it means the underlying library still considers the
// container busy. Close is a no-op after the first call.
func (r *Reader) Close() error {
	if r.rw == nil {
		return nil
	}
	rw := r.rw
	r.rw = nil
	if f, ok := rw.(*os.File); ok {
		if err := f.Sync(); err != nil {
			f.Close()
			return &CloseError{Path: r.path, Err: err}
		}
		if err := f.Close(); err != nil {
			return &CloseError{Path: r.path, Err: err}
		}
		return nil
	}
	if c, ok := rw.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return &CloseError{Path: r.path, Err: err}
		}
	}
	return nil
}
