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

package sim

import (
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ctessum/sparse"

	"github.com/oceanmodel/swegrid"
)

// openGrid writes a container with the given fields and opens it.
func openGrid(t *testing.T, grid swegrid.GridSpec, fields map[string]*sparse.DenseArray) *swegrid.Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.nc")
	if err := swegrid.WriteFile(path, grid, fields); err != nil {
		t.Fatal(err)
	}
	r, err := swegrid.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := r.Close(); err != nil {
			t.Error(err)
		}
	})
	return r
}

func uniform(ny, nx int, val float64) *sparse.DenseArray {
	d := sparse.ZerosDense(ny, nx)
	for i := range d.Elements {
		d.Elements[i] = val
	}
	return d
}

func TestNewDefaults(t *testing.T) {
	grid := swegrid.GridSpec{Nx: 5, Ny: 5, Width: 400, Height: 400}
	r := openGrid(t, grid, map[string]*sparse.DenseArray{
		"eta": sparse.ZerosDense(6, 6),
	})

	s, err := New(r)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.U.Shape, []int{4, 7}) {
		t.Errorf("U shape is %v, want [4 7]", s.U.Shape)
	}
	if !reflect.DeepEqual(s.V.Shape, []int{7, 4}) {
		t.Errorf("V shape is %v, want [7 4]", s.V.Shape)
	}
	if !reflect.DeepEqual(s.H.Shape, []int{6, 6}) {
		t.Errorf("H shape is %v, want [6 6]", s.H.Shape)
	}
	for _, v := range s.H.Elements {
		if v != DefaultDepth {
			t.Fatalf("default depth is %g, want %g", v, DefaultDepth)
		}
	}

	wantDt := cfl * grid.Dx() / math.Sqrt(g*DefaultDepth)
	if math.Abs(s.Dt-wantDt) > 1e-12 {
		t.Errorf("Dt is %g, want %g", s.Dt, wantDt)
	}
}

func TestSeededStateIsACopy(t *testing.T) {
	grid := swegrid.GridSpec{Nx: 5, Ny: 5, Width: 400, Height: 400}
	r := openGrid(t, grid, map[string]*sparse.DenseArray{
		"eta": uniform(6, 6, 0.5),
		"H":   uniform(6, 6, 50),
	})
	s, err := New(r)
	if err != nil {
		t.Fatal(err)
	}
	s.Eta.Set(99, 0, 0)
	if r.Eta().Data.Get(0, 0) != 0.5 {
		t.Error("mutating the simulation state changed the reader's data")
	}
}

func TestFlatStateStaysFlat(t *testing.T) {
	grid := swegrid.GridSpec{Nx: 6, Ny: 4, Width: 500, Height: 300}
	r := openGrid(t, grid, map[string]*sparse.DenseArray{
		"eta": sparse.ZerosDense(5, 7),
		"H":   uniform(5, 7, 80),
	})
	s, err := New(r)
	if err != nil {
		t.Fatal(err)
	}
	s.Run(10)
	min, max := s.EtaRange()
	if min != 0 || max != 0 {
		t.Errorf("flat state moved: eta range [%g, %g]", min, max)
	}
	if s.Steps() != 10 {
		t.Errorf("took %d steps, want 10", s.Steps())
	}
	if want := 10 * s.Dt; math.Abs(s.Time()-want) > 1e-9 {
		t.Errorf("time is %g, want %g", s.Time(), want)
	}
}

func TestBumpSpreads(t *testing.T) {
	grid := swegrid.GridSpec{Nx: 5, Ny: 5, Width: 400, Height: 400}
	eta := sparse.ZerosDense(6, 6)
	eta.Set(1.0, 3, 3)
	r := openGrid(t, grid, map[string]*sparse.DenseArray{
		"eta": eta,
		"H":   uniform(6, 6, 100),
	})
	s, err := New(r)
	if err != nil {
		t.Fatal(err)
	}
	s.Step()
	if got := s.Eta.Get(3, 3); got >= 1.0 {
		t.Errorf("peak did not flow out: eta(3,3) = %g", got)
	}
}

func TestNewRejectsDryGrid(t *testing.T) {
	grid := swegrid.GridSpec{Nx: 5, Ny: 5, Width: 400, Height: 400}
	r := openGrid(t, grid, map[string]*sparse.DenseArray{
		"H": sparse.ZerosDense(6, 6),
	})
	if _, err := New(r); err == nil {
		t.Error("want an error for a grid with no positive depth")
	}
}
