// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/flurry/fem"
	"github.com/cpmech/flurry/geom"
	"github.com/cpmech/flurry/inp"
	"github.com/cpmech/flurry/restart"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// message
	if mpi.Rank() == 0 {
		io.PfWhite("\nFlurry -- high-order Flux Reconstruction solver\n\n")
		io.Pf("Copyright 2016 The Flurry Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
	}

	// input filenamepath
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a filename. Ex.: vortex.flr")
	}
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".flr"
	}

	// configuration
	cfg := inp.ReadConfig(fnamepath)
	if mpi.Rank() == 0 {
		cfg.Print()
	}

	// geometry
	geo := buildGeometry(cfg)

	// solver
	sol := fem.NewSolver(cfg, geo)
	if cfg.Restart {
		f := restart.Read(cfg.DataFileName)
		restart.Apply(f, sol.Eles, cfg.Order, cfg.Fluid.Gamma)
		if f.Time >= 0 {
			sol.Time = f.Time
		}
		sol.Iter = cfg.RestartIter
	}
	if mpi.Rank() == 0 {
		sol.Report()
	}

	// run
	sol.Run()

	if cfg.DataFileName != "" {
		restart.Write(io.Sf("%s.%06d.vtu", cfg.DataFileName, sol.Iter), sol.Eles,
			sol.Time, cfg.Order, cfg.Fluid.Gamma, nil,
			cfg.EntropySensor && cfg.Equation == inp.EqEulerNS,
			cfg.Fluid.RhoBound, cfg.Fluid.PBound)
		restart.SaveState(io.Sf("%s.%06d.state", cfg.DataFileName, sol.Iter), "gob", sol.Eles, sol.Time)
	}
}

// buildGeometry acquires the mesh per meshType: only the Cartesian box
// creator is built in; read and overset meshes come from the external
// geometry service.
func buildGeometry(cfg *inp.Config) geom.Service {
	if cfg.MeshType != inp.MeshCreate {
		chk.Panic("flurry: meshType %d requires an external geometry service; only meshType=1 (create) is built in", cfg.MeshType)
	}
	b := cfg.Box
	min := []float64{b.Xmin, b.Ymin, b.Zmin}
	max := []float64{b.Xmax, b.Ymax, b.Zmax}
	perX := b.TagXmin == "periodic" || b.TagXmax == "periodic"
	perY := b.TagYmin == "periodic" || b.TagYmax == "periodic"
	perZ := b.TagZmin == "periodic" || b.TagZmax == "periodic"
	return geom.NewBox(cfg.NDims, b.Nx, b.Ny, b.Nz, min[:cfg.NDims], max[:cfg.NDims], perX, perY, perZ)
}
