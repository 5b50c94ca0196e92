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

// Package sim is a minimal shallow-water solver seeded from a swegrid
// container. It advances the linearized shallow-water equations on the
// staggered grid with closed walls, which is enough to smoke-test initial
// conditions before handing them to a real model.
package sim

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"

	"github.com/oceanmodel/swegrid"
)

const g = 9.81 // m/s2

// DefaultDepth is the uniform bathymetry assumed when the container holds
// no H field [m].
const DefaultDepth = 100.0

// cfl is the Courant number used for the time step.
const cfl = 0.25

// Sim holds the simulation state. Eta, U, V and H keep the shapes the grid
// container prescribes: eta and H on cell corners, U staggered in x, V
// staggered in y.
type Sim struct {
	Grid swegrid.GridSpec

	Eta *sparse.DenseArray
	U   *sparse.DenseArray
	V   *sparse.DenseArray
	H   *sparse.DenseArray

	// Dt is the CFL-limited time step [s], fixed at construction.
	Dt float64

	time  float64
	steps int
}

// New seeds a simulation from a successfully opened reader. Fields absent
// from the container default to zero, except bathymetry which defaults to a
// uniform DefaultDepth.
func New(r *swegrid.Reader) (*Sim, error) {
	grid := r.Grid()
	s := &Sim{
		Grid: grid,
		Eta:  fieldOrZero(r.Eta(), grid, "eta"),
		U:    fieldOrZero(r.U(), grid, "U"),
		V:    fieldOrZero(r.V(), grid, "V"),
	}
	if h := r.H(); !h.Empty() {
		s.H = h.Data.Copy()
	} else {
		s.H = sparse.ZerosDense(grid.Ny+1, grid.Nx+1)
		for i := range s.H.Elements {
			s.H.Elements[i] = DefaultDepth
		}
	}

	maxH := floats.Max(s.H.Elements)
	if maxH <= 0 {
		return nil, fmt.Errorf("sim: maximum depth %g is not positive", maxH)
	}
	s.Dt = cfl * math.Min(grid.Dx(), grid.Dy()) / math.Sqrt(g*maxH)
	return s, nil
}

// fieldOrZero copies the field data, or builds a zero-filled array of the
// field's catalog shape when the container did not hold it.
func fieldOrZero(f swegrid.FieldInfo, grid swegrid.GridSpec, name string) *sparse.DenseArray {
	if !f.Empty() {
		return f.Data.Copy()
	}
	switch name {
	case "eta":
		return sparse.ZerosDense(grid.Ny+1, grid.Nx+1)
	case "U":
		return sparse.ZerosDense(grid.Ny-1, grid.Nx+2)
	case "V":
		return sparse.ZerosDense(grid.Ny+2, grid.Nx-1)
	}
	panic("unknown field " + name)
}

// Time returns the model time [s].
func (s *Sim) Time() float64 { return s.time }

// Steps returns the number of steps taken.
func (s *Sim) Steps() int { return s.steps }

// EtaRange returns the minimum and maximum surface elevation.
func (s *Sim) EtaRange() (min, max float64) {
	return floats.Min(s.Eta.Elements), floats.Max(s.Eta.Elements)
}

// Step advances the state by one time step: velocities accelerate down the
// surface gradient, then the surface moves with the flux divergence.
// Boundary velocities stay fixed (closed walls).
func (s *Sim) Step() {
	dx, dy := s.Grid.Dx(), s.Grid.Dy()
	dt := s.Dt

	etaAt := func(j, i int) float64 {
		j = clamp(j, 0, s.Eta.Shape[0]-1)
		i = clamp(i, 0, s.Eta.Shape[1]-1)
		return s.Eta.Get(j, i)
	}

	// Accelerate U and V down the surface gradient.
	for j := 0; j < s.U.Shape[0]; j++ {
		for i := 1; i < s.U.Shape[1]-1; i++ {
			dEta := etaAt(j+1, i) - etaAt(j+1, i-1)
			s.U.AddVal(-g*dt/dx*dEta, j, i)
		}
	}
	for j := 1; j < s.V.Shape[0]-1; j++ {
		for i := 0; i < s.V.Shape[1]; i++ {
			dEta := etaAt(j, i+1) - etaAt(j-1, i+1)
			s.V.AddVal(-g*dt/dy*dEta, j, i)
		}
	}

	uAt := func(j, i int) float64 {
		j = clamp(j, 0, s.U.Shape[0]-1)
		i = clamp(i, 0, s.U.Shape[1]-1)
		return s.U.Get(j, i)
	}
	vAt := func(j, i int) float64 {
		j = clamp(j, 0, s.V.Shape[0]-1)
		i = clamp(i, 0, s.V.Shape[1]-1)
		return s.V.Get(j, i)
	}

	// Move the surface with the depth-scaled flux divergence.
	for j := 0; j < s.Eta.Shape[0]; j++ {
		for i := 0; i < s.Eta.Shape[1]; i++ {
			depth := s.H.Get(j, i)
			if depth <= 0 {
				continue // dry node
			}
			div := (uAt(j-1, i+1)-uAt(j-1, i))/dx + (vAt(j+1, i)-vAt(j, i))/dy
			s.Eta.AddVal(-dt*depth*div, j, i)
		}
	}

	s.time += dt
	s.steps++
}

// Run advances n steps.
func (s *Sim) Run(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
