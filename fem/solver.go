// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fem implements the Solver: it owns the element and face
// containers and the operator cache, orchestrates the residual pipeline
// across them for one RK stage, applies the time-step updates and computes
// diagnostics and norms (spec.md §4.3).
package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/ele"
	"github.com/cpmech/flurry/face"
	"github.com/cpmech/flurry/geom"
	"github.com/cpmech/flurry/inp"
	"github.com/cpmech/flurry/physics"
	"github.com/cpmech/flurry/physics/advdiff"
	"github.com/cpmech/flurry/physics/euler"
	"github.com/cpmech/flurry/shape"
)

// OversetComm is the overset-communicator boundary (spec.md §6 "Overset
// communicator"): connectivity search, donor matching and data exchange are
// out of the core's scope, but the Solver drives them at the spec'd points
// of the residual pipeline.
type OversetComm interface {
	// SetupFringeCellPoints registers the receiver points of every fringe
	// cell; called at setup and after mesh motion.
	SetupFringeCellPoints()

	// MatchOversetPoints resolves donor cells for every registered
	// receiver point.
	MatchOversetPoints()

	// ExchangeOversetData interpolates donor fields to fringe cells
	// (spec.md §4.3 step 1).
	ExchangeOversetData()

	// PerformGalerkinProjection runs the supermesh-based L2 transfer in
	// place of plain interpolation.
	PerformGalerkinProjection()
}

// Solver owns the Elements and Faces by value and the operator cache as
// shared read-only state (spec.md §3 "Ownership").
type Solver struct {
	Cfg  *inp.Config
	Geo  geom.Service
	Phys physics.Equation

	Cache *ele.Cache
	Eles  []*ele.Element // indexed by cell id; nil for hole cells
	Faces []face.Face

	// the face lists by kind, in pipeline order (spec.md §4.3 step 8:
	// interior/boundary, then MPI, then overset)
	IntFaces  []face.Face
	MPIFaces  []*face.MPIFace
	OverFaces []*face.Overset

	Over OversetComm // nil unless meshType is overset

	LDG face.LDGConfig
	Sqz ele.SqueezeConfig

	RKa []float64 // stage coefficients a_s (a[0]=0)
	RKb []float64 // accumulation weights b_s

	// prescribed functions of time resolved from the configuration by
	// name; nil when unset
	dtFcn   fun.TimeSpace // scales the fixed dt (inp.Config.DtFcn)
	moveFcn fun.TimeSpace // ramps the mesh-motion amplitude (inp.Config.MoveFcn)

	Time float64
	Iter int
	Dt   float64 // global time step (min over elements for CFL-based runs)

	nSqueezed int // per-iteration squeeze activation counter (spec.md §7)
}

// NewSolver builds the physics, operator cache, elements and faces for the
// given configuration and geometry, then applies the initial condition
// (spec.md §3 "Lifecycle" steps 3-5).
func NewSolver(cfg *inp.Config, geo geom.Service) *Solver {
	o := &Solver{Cfg: cfg, Geo: geo}
	o.Phys = buildPhysics(cfg)

	ptSet := basis.Legendre
	if cfg.SptsTypeQuad == "Lobatto" {
		ptSet = basis.Lobatto
	}
	o.Cache = ele.NewCache(ptSet)

	o.RKa, o.RKb = rkTableau(cfg.TimeType)
	o.dtFcn = resolveFcn(cfg.Functions, cfg.DtFcn)
	o.moveFcn = resolveFcn(cfg.Functions, cfg.MoveFcn)
	o.LDG = face.LDGConfig{PenFact: cfg.LDGPenFact, Tau: cfg.LDGTau}
	o.Sqz = ele.SqueezeConfig{
		Enabled:   cfg.Squeeze,
		Exps0:     cfg.Threshold,
		Gamma:     cfg.Fluid.Gamma,
		DensTol:   1e-10,
		EntropyOK: cfg.Equation == inp.EqEulerNS && cfg.Viscous,
	}

	o.buildElements()
	o.buildFaces()
	o.InitSolution()
	return o
}

// resolveFcn looks a named prescribed function up; an empty name means
// "not configured" and an unknown name is fatal.
func resolveFcn(fns inp.FuncsData, name string) fun.TimeSpace {
	if name == "" {
		return nil
	}
	fcn, err := fns.Get(name)
	if err != nil {
		chk.Panic("fem.resolveFcn: %v", err)
	}
	return fcn
}

// buildPhysics maps the configuration to the equation model.
func buildPhysics(cfg *inp.Config) physics.Equation {
	switch cfg.Equation {
	case inp.EqAdvDiff:
		a := []float64{cfg.AdvectVx, cfg.AdvectVy}
		if cfg.NDims == 3 {
			a = append(a, cfg.AdvectVz)
		}
		return advdiff.NewModel(a, cfg.DiffD, cfg.Lambda)
	case inp.EqEulerNS:
		riemann := euler.Rusanov
		if cfg.RiemannType == 1 {
			riemann = euler.Roe
		}
		mu := 0.0
		if cfg.Viscous {
			// mu from Re: Re = rho*U*L/mu
			u := cfg.Fluid.UBound
			if u == 0 {
				u = cfg.Fluid.MachBound
			}
			mu = cfg.Fluid.RhoBound * u * cfg.Fluid.Lref / cfg.Fluid.Re
		}
		m := euler.NewModel(cfg.NDims, cfg.Viscous, mu, riemann)
		m.Gamma = cfg.Fluid.Gamma
		return m
	}
	chk.Panic("fem.buildPhysics: unknown equation %d", cfg.Equation)
	return nil
}

// elementMotion maps the configured motion kind to the element's divergence
// form: rigid motions keep the conservative form with the space-time flux
// correction; deforming meshes use the chain-rule form (spec.md §4.1
// "Divergence forms").
func elementMotion(motion int) ele.Motion {
	switch motion {
	case inp.MotionStatic:
		return ele.Static
	case inp.MotionRotation, inp.MotionTranslation:
		return ele.MovingStandard
	}
	return ele.MovingChainRule
}

// buildElements constructs one Element per non-hole cell (spec.md §3
// lifecycle step 3). Cell vertex counts pick the element type; anything but
// a quad or hex is fatal.
func (o *Solver) buildElements() {
	nc := o.Geo.NCells()
	o.Eles = make([]*ele.Element, nc)
	motion := elementMotion(o.Cfg.Motion)
	nStages := o.Cfg.NRKStages()
	for ic := 0; ic < nc; ic++ {
		if o.Geo.IBlankCell(ic) == geom.Hole {
			continue
		}
		nv := o.Geo.NVertsPerCell(ic)
		var t shape.Type
		switch {
		case nv == 4 && o.Cfg.NDims == 2:
			t = shape.Quad
		case nv == 8 && o.Cfg.NDims == 3:
			t = shape.Hex
		default:
			chk.Panic("fem.Solver.buildElements: cell %d has %d vertices in %d-D: unknown element type", ic, nv, o.Cfg.NDims)
		}
		nodes := shape.NewNodeSet(o.Cfg.NDims, nv)
		for i := 0; i < nv; i++ {
			xv := o.Geo.Xv(o.Geo.C2V(ic, i))
			for d := 0; d < o.Cfg.NDims; d++ {
				nodes.X[d][i] = xv[d]
			}
		}
		ops := o.Cache.Get(t, o.Cfg.Order)
		o.Eles[ic] = ele.NewElement(ic, ops, o.Phys, nodes, motion, nStages)
	}
}

// facFpts returns the flux-point indices of local face f of an element with
// the given operators: face f owns the contiguous block of per-face points.
func facFpts(ops *ele.Operators, f int) []int {
	perFace := ops.NFpts / shape.NFaces(ops.Type)
	out := make([]int, perFace)
	for i := range out {
		out[i] = f*perFace + i
	}
	return out
}

// permute reorders idx by perm (perm may be nil for identity).
func permute(idx []int, perm []int) []int {
	if perm == nil {
		return idx
	}
	out := make([]int, len(idx))
	for i, p := range perm {
		out[i] = idx[p]
	}
	return out
}

// buildFaces constructs the interior (and periodic) faces from the matched
// connectivity and the boundary faces from the tag table (spec.md §3
// lifecycle step 3). Fringe cells of an overset run get Overset faces wired
// later by AttachOverset.
func (o *Solver) buildFaces() {
	for _, fc := range o.Geo.InteriorFaces() {
		L, R := o.Eles[fc.CellL], o.Eles[fc.CellR]
		if L == nil || R == nil {
			continue // hole neighbor: covered by the overset boundary
		}
		lf := facFpts(L.Ops, fc.FaceL)
		rf := permute(facFpts(R.Ops, fc.FaceR), fc.FptPermR)
		o.IntFaces = append(o.IntFaces, face.NewInterior(L, fc.FaceL, lf, R, fc.FaceR, rf))
	}
	for _, bc := range o.Geo.BoundaryFaces() {
		L := o.Eles[bc.Cell]
		if L == nil {
			continue
		}
		lf := facFpts(L.Ops, bc.Face)
		kind := o.mapBC(bc.Tag)
		b := face.NewBoundary(L, bc.Face, lf, kind, o.freestream())
		if kind == face.NoSlipIsothermal {
			b.WallTemp = o.Cfg.Fluid.TWall
			if m, ok := o.Phys.(*euler.Model); ok {
				b.R = m.R
			}
		}
		o.IntFaces = append(o.IntFaces, b)
	}
	o.Faces = append(o.Faces, o.IntFaces...)
	for _, f := range o.Faces {
		f.SetupFace()
		f.SetLDG(o.LDG)
	}
}

// AttachMPIFace registers the local half of a partition-boundary face; the
// transport buffers are sized immediately.
func (o *Solver) AttachMPIFace(cell, localFace, remoteRank, remoteFace int, perm []int) {
	L := o.Eles[cell]
	mf := face.NewMPIFace(L, localFace, facFpts(L.Ops, localFace), remoteRank, remoteFace, perm)
	mf.SetupFace()
	mf.SetLDG(o.LDG)
	o.MPIFaces = append(o.MPIFaces, mf)
	o.Faces = append(o.Faces, mf)
}

// AttachOverset wires the overset communicator and the overset faces of
// this partition.
func (o *Solver) AttachOverset(comm OversetComm, faces []*face.Overset) {
	o.Over = comm
	o.OverFaces = faces
	for _, f := range faces {
		f.SetupFace()
		f.SetLDG(o.LDG)
		o.Faces = append(o.Faces, f)
	}
	if comm != nil {
		comm.SetupFringeCellPoints()
		comm.MatchOversetPoints()
	}
}

// mapBC translates a geometry boundary tag into a boundary-condition kind.
func (o *Solver) mapBC(tag string) face.BCKind {
	switch tag {
	case "slipWall", "slip_wall", "wall":
		return face.SlipWall
	case "noSlipWall", "adiabatic":
		return face.NoSlipAdiabatic
	case "isothermal", "isothermalWall":
		return face.NoSlipIsothermal
	case "supIn", "inlet_sup":
		return face.SupersonicInflow
	case "supOut", "outlet_sup":
		return face.SupersonicOutflow
	case "char", "farfield", "xmin", "xmax", "ymin", "ymax", "zmin", "zmax":
		return face.Characteristic
	}
	chk.Panic("fem.Solver.mapBC: unknown boundary tag %q", tag)
	return 0
}

// freestream returns the conserved freestream state of the configuration.
func (o *Solver) freestream() []float64 {
	if o.Cfg.Equation == inp.EqAdvDiff {
		return []float64{0}
	}
	fl := o.Cfg.Fluid
	nd := o.Cfg.NDims
	U := make([]float64, nd+2)
	U[0] = fl.RhoBound
	vel := []float64{fl.UBound, fl.VBound, fl.WBound}
	var kinetic float64
	for d := 0; d < nd; d++ {
		U[1+d] = fl.RhoBound * vel[d]
		kinetic += vel[d] * vel[d]
	}
	U[nd+1] = fl.PBound/(fl.Gamma-1) + 0.5*fl.RhoBound*kinetic
	return U
}

// Report prints a one-line setup summary in the teacher's diagnostic style.
func (o *Solver) Report() {
	nEle := 0
	for _, e := range o.Eles {
		if e != nil {
			nEle++
		}
	}
	io.Pf("flurry: %d elements, %d faces, %d mpi faces, %d overset faces, order %d\n",
		nEle, len(o.IntFaces), len(o.MPIFaces), len(o.OverFaces), o.Cfg.Order)
}
