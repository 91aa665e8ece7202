// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp implements the input data read from a (.flr) JSON file. The
// Config struct enumerates every option of the solver and is read-only
// after ReadConfig returns.
package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Equation kinds.
const (
	EqAdvDiff = 0 // linear advection-diffusion
	EqEulerNS = 1 // compressible Euler / Navier-Stokes
)

// Time-integration kinds.
const (
	TimeForwardEuler = 0
	TimeRK44         = 4
)

// Dt control kinds.
const (
	DtFixed     = 0
	DtGlobalCFL = 1
	DtLocalCFL  = 2
)

// Mesh motion kinds.
const (
	MotionStatic      = 0
	MotionKui         = 1 // Kui test-case perturbation
	MotionLiang       = 2 // Liang-Miyaji deforming mesh
	MotionRotation    = 3 // rigid rotation
	MotionTranslation = 4 // rigid translation
)

// Mesh acquisition kinds.
const (
	MeshRead    = 0
	MeshCreate  = 1
	MeshOverset = 2
)

// Overset transfer methods.
const (
	OversetFlux     = 0 // explicit common flux on overset faces
	OversetFieldInt = 1 // direct field interpolation to fringe cells
	OversetGalerkin = 2 // L2 Galerkin projection via supermesh
)

// Fluid holds the freestream/reference state (spec.md §6 "freestream").
type Fluid struct {
	RhoBound  float64 `json:"rhoBound"`  // freestream density
	UBound    float64 `json:"uBound"`    // freestream x-velocity
	VBound    float64 `json:"vBound"`    // freestream y-velocity
	WBound    float64 `json:"wBound"`    // freestream z-velocity
	PBound    float64 `json:"pBound"`    // freestream pressure
	MachBound float64 `json:"machBound"` // freestream Mach number
	Re        float64 `json:"re"`        // Reynolds number (viscous runs)
	Lref      float64 `json:"lref"`      // reference length for Re
	TBound    float64 `json:"tBound"`    // freestream temperature
	TWall     float64 `json:"tWall"`     // isothermal-wall temperature
	NxBound   float64 `json:"nxBound"`   // freestream direction (characteristic BC)
	NyBound   float64 `json:"nyBound"`
	NzBound   float64 `json:"nzBound"`
	Gamma     float64 `json:"gamma"` // ratio of specific heats; 0 => 1.4
}

// MeshBox holds the Cartesian mesh-creation parameters (meshType=1).
type MeshBox struct {
	Nx   int     `json:"nx"`
	Ny   int     `json:"ny"`
	Nz   int     `json:"nz"`
	Xmin float64 `json:"xmin"`
	Xmax float64 `json:"xmax"`
	Ymin float64 `json:"ymin"`
	Ymax float64 `json:"ymax"`
	Zmin float64 `json:"zmin"`
	Zmax float64 `json:"zmax"`

	// boundary tags per box side; only the value "periodic" is read, and it
	// pairs the side with its opposite. Any other value has no effect: the
	// non-periodic box sides carry the fixed tags xmin..zmax
	TagXmin string `json:"tagXmin"`
	TagXmax string `json:"tagXmax"`
	TagYmin string `json:"tagYmin"`
	TagYmax string `json:"tagYmax"`
	TagZmin string `json:"tagZmin"`
	TagZmax string `json:"tagZmax"`
}

// Config holds every option of spec.md §6, JSON-decoded once at startup and
// immutable afterwards.
type Config struct {

	// problem definition
	Equation int  `json:"equation"` // 0=advection-diffusion, 1=Euler/NS
	Order    int  `json:"order"`    // polynomial order p >= 1
	NDims    int  `json:"nDims"`    // 2 or 3
	Viscous  bool `json:"viscous"`

	// time integration
	TimeType int     `json:"timeType"` // 0=forward Euler, 4=RK44
	DtType   int     `json:"dtType"`   // 0=fixed, 1=global CFL, 2=local CFL
	Dt       float64 `json:"dt"`
	CFL      float64 `json:"cfl"`
	IterMax  int     `json:"iterMax"`

	// mesh
	MeshType     int     `json:"meshType"` // 0=read, 1=create, 2=overset
	MeshFileName string  `json:"meshFileName"`
	Box          MeshBox `json:"box"`
	Motion       int     `json:"motion"`  // 0..4
	MoveAx       float64 `json:"moveAx"`  // motion amplitude, x
	MoveAy       float64 `json:"moveAy"`  // motion amplitude, y
	MoveFx       float64 `json:"moveFx"`  // motion frequency, x
	MoveFy       float64 `json:"moveFy"`  // motion frequency, y
	MoveFcn      string  `json:"moveFcn"` // name of the motion ramp function; "" => no ramp

	// prescribed functions of time, matched by name (moveFcn, dtFcn)
	Functions FuncsData `json:"functions"`
	DtFcn     string    `json:"dtFcn"` // name of the dt ramp function; "" => constant dt

	// advection-diffusion parameters
	AdvectVx float64 `json:"advectVx"`
	AdvectVy float64 `json:"advectVy"`
	AdvectVz float64 `json:"advectVz"`
	Lambda   float64 `json:"lambda"` // upwind blending of the common flux
	DiffD    float64 `json:"diffD"`  // diffusivity

	// Euler/NS parameters
	RiemannType int   `json:"riemannType"` // 0=Rusanov, 1=Roe
	Fluid       Fluid `json:"fluid"`

	// initial condition / test case
	ICType   int `json:"icType"` // 0, 1, 2
	TestCase int `json:"testCase"`

	// restart
	Restart      bool   `json:"restart"`
	RestartIter  int    `json:"restartIter"`
	DataFileName string `json:"dataFileName"`

	// output and diagnostics
	PlotFreq       int  `json:"plotFreq"`
	MonitorResFreq int  `json:"monitorResFreq"`
	ResType        int  `json:"resType"` // 1=L1, 2=L2, 3=Linf
	EntropySensor  bool `json:"entropySensor"`
	WriteIBLANK    bool `json:"writeIBLANK"`

	// viscous interface scheme
	LDGPenFact float64 `json:"ldgPenFact"`
	LDGTau     float64 `json:"ldgTau"`

	// solution-point distribution: "Legendre" or "Lobatto"
	SptsTypeQuad string `json:"sptsTypeQuad"`

	// stabilization
	ShockCapture bool    `json:"shockCapture"`
	Threshold    float64 `json:"threshold"`
	Squeeze      bool    `json:"squeeze"`

	// p-multigrid
	PMG       bool  `json:"pmg"`
	PMGOrders []int `json:"pmgOrders"` // coarse orders, descending; empty => {p-1,...,0}

	// overset
	OversetMethod int `json:"oversetMethod"` // 0=flux, 1=field interpolation, 2=Galerkin projection
}

// ReadConfig reads and decodes a configuration file, applying defaults and
// validating the option ranges. An unreadable file is fatal.
func ReadConfig(fnamepath string) *Config {
	b, err := os.ReadFile(fnamepath)
	if err != nil {
		chk.Panic("inp.ReadConfig: cannot open configuration file %q: %v", fnamepath, err)
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		chk.Panic("inp.ReadConfig: cannot decode %q: %v", fnamepath, err)
	}
	cfg.SetDefaults()
	cfg.Validate()
	return &cfg
}

// SetDefaults fills the zero-valued options that have non-zero defaults.
func (o *Config) SetDefaults() {
	if o.Order == 0 {
		o.Order = 1
	}
	if o.NDims == 0 {
		o.NDims = 2
	}
	if o.SptsTypeQuad == "" {
		o.SptsTypeQuad = "Legendre"
	}
	if o.ResType == 0 {
		o.ResType = 2
	}
	if o.Lambda == 0 && o.Equation == EqAdvDiff {
		o.Lambda = 1
	}
	if o.Fluid.Gamma == 0 {
		o.Fluid.Gamma = 1.4
	}
	if o.LDGPenFact == 0 && o.Viscous {
		o.LDGPenFact = 0.5
	}
}

// Validate panics on out-of-range options.
func (o *Config) Validate() {
	if o.Equation != EqAdvDiff && o.Equation != EqEulerNS {
		chk.Panic("inp.Config: equation must be 0 or 1 (got %d)", o.Equation)
	}
	if o.NDims != 2 && o.NDims != 3 {
		chk.Panic("inp.Config: nDims must be 2 or 3 (got %d)", o.NDims)
	}
	if o.Order < 1 {
		chk.Panic("inp.Config: order must be >= 1 (got %d)", o.Order)
	}
	if o.TimeType != TimeForwardEuler && o.TimeType != TimeRK44 {
		chk.Panic("inp.Config: timeType must be 0 (forward Euler) or 4 (RK44), got %d", o.TimeType)
	}
	if o.DtType != DtFixed && o.DtType != DtGlobalCFL && o.DtType != DtLocalCFL {
		chk.Panic("inp.Config: dtType must be 0, 1 or 2 (got %d)", o.DtType)
	}
	if o.DtType == DtFixed && o.Dt <= 0 {
		chk.Panic("inp.Config: fixed-dt runs need dt > 0")
	}
	if o.DtType != DtFixed && o.CFL <= 0 {
		chk.Panic("inp.Config: CFL-based runs need cfl > 0")
	}
	if o.Motion < MotionStatic || o.Motion > MotionTranslation {
		chk.Panic("inp.Config: motion must be in 0..4 (got %d)", o.Motion)
	}
	if o.SptsTypeQuad != "Legendre" && o.SptsTypeQuad != "Lobatto" {
		chk.Panic("inp.Config: spts_type_quad must be \"Legendre\" or \"Lobatto\" (got %q)", o.SptsTypeQuad)
	}
}

// NRKStages returns the number of Runge-Kutta stages of TimeType.
func (o *Config) NRKStages() int {
	if o.TimeType == TimeRK44 {
		return 4
	}
	return 1
}

// Print dumps the configuration in gofem's grey diagnostic style.
func (o *Config) Print() {
	io.Pfgrey("equation  = %d  order = %d  nDims = %d  viscous = %v\n", o.Equation, o.Order, o.NDims, o.Viscous)
	io.Pfgrey("timeType  = %d  dtType = %d  dt = %g  CFL = %g  iterMax = %d\n", o.TimeType, o.DtType, o.Dt, o.CFL, o.IterMax)
	io.Pfgrey("meshType  = %d  motion = %d  spts = %s\n", o.MeshType, o.Motion, o.SptsTypeQuad)
	io.Pfgrey("shockCapture = %v  squeeze = %v  pmg = %v\n", o.ShockCapture, o.Squeeze, o.PMG)
}
