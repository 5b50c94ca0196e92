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

// Command swegrid inspects shallow-water grid containers and runs the
// built-in demonstration solver on them.
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oceanmodel/swegrid"
	"github.com/oceanmodel/swegrid/sim"
)

var logger = logrus.StandardLogger()

func main() {
	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var root = &cobra.Command{
	Use:   "swegrid",
	Short: "swegrid inspects and runs shallow-water grid containers",
	Long: `swegrid reads NetCDF grid containers holding a simulation grid
description and optional H, eta, U and V fields. It can describe a
container, check that one is valid simulation input, and run the
built-in linearized solver on it.`,
	SilenceUsage: true,
}

func init() {
	root.AddCommand(describeCmd, checkCmd, runCmd)
	runCmd.Flags().StringVar(&runConfig, "config", "swegrid.toml", "path to the run configuration file")
}

var describeCmd = &cobra.Command{
	Use:   "describe [container]",
	Short: "print the grid metadata and fields of a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := swegrid.OpenFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("grid: %d x %d cells, %g x %g m (dx=%g, dy=%g)\n",
			r.Nx(), r.Ny(), r.Width(), r.Height(), r.Dx(), r.Dy())
		for _, f := range []struct {
			name  string
			field swegrid.FieldInfo
		}{{"H", r.H()}, {"eta", r.Eta()}, {"U", r.U()}, {"V", r.V()}} {
			if f.field.Empty() {
				fmt.Printf("%-4s absent\n", f.name)
				continue
			}
			fmt.Printf("%-4s %d x %d\n", f.name, f.field.Nx, f.field.Ny)
		}
		closeFatal(r)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [container]",
	Short: "check that a container is valid simulation input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := swegrid.OpenFile(args[0])
		if err != nil {
			return err
		}
		closeFatal(r)
		logger.Infof("%s: ok", args[0])
		return nil
	},
}

var runConfig string

// runCfg is the TOML configuration for the run command.
type runCfg struct {
	// Input is the path of the grid container to run.
	Input string
	// Steps is the number of time steps to take.
	Steps int
	// ReportEvery is the step interval between progress reports.
	ReportEvery int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the built-in solver on a container",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := runCfg{Steps: 100, ReportEvery: 10}
		if _, err := toml.DecodeFile(runConfig, &cfg); err != nil {
			return fmt.Errorf("reading configuration %s: %v", runConfig, err)
		}
		if cfg.Input == "" {
			return fmt.Errorf("configuration %s does not name an input container", runConfig)
		}
		if cfg.Steps < 1 {
			return fmt.Errorf("configuration %s: Steps must be at least 1", runConfig)
		}
		if cfg.ReportEvery < 1 {
			cfg.ReportEvery = 1
		}

		r, err := swegrid.OpenFile(os.ExpandEnv(cfg.Input))
		if err != nil {
			return err
		}
		s, err := sim.New(r)
		if err != nil {
			closeFatal(r)
			return err
		}
		closeFatal(r)

		logger.Infof("running %d steps at dt=%g s", cfg.Steps, s.Dt)
		for s.Steps() < cfg.Steps {
			n := cfg.ReportEvery
			if rem := cfg.Steps - s.Steps(); n > rem {
				n = rem
			}
			s.Run(n)
			min, max := s.EtaRange()
			logger.Infof("t=%8.2f s  eta range [%g, %g] m", s.Time(), min, max)
		}
		return nil
	},
}

// closeFatal releases the container. A close failure means the container
// library still considers the file busy, which nothing downstream can
// recover from.
func closeFatal(r *swegrid.Reader) {
	if err := r.Close(); err != nil {
		logger.Fatal(err)
	}
}
