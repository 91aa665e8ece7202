// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/la"
	"github.com/cpmech/flurry/physics"
	"github.com/cpmech/flurry/shape"
)

// Motion selects how an Element treats mesh motion (spec.md §4.1, §6 "motion").
type Motion int

const (
	// Static meshes never move; no grid velocity, standard divergence.
	Static Motion = iota
	// MovingStandard moves the mesh and keeps the standard conservative
	// divergence, adding the -U*v_g flux correction directly.
	MovingStandard
	// MovingChainRule moves the mesh and uses the Liang-Miyaji-Zhang
	// non-conservative chain-rule divergence form.
	MovingChainRule
)

// Element holds the per-cell Flux Reconstruction state and kernels (spec.md
// §3 "Element", §4.1). It borrows the shared Operators bundle for its
// (type, order) from the Solver's Cache and never owns it.
type Element struct {
	ID    int
	Type  shape.Type
	Order int
	Motion Motion

	Ops  *Operators
	Phys physics.Equation

	Nodes   *shape.NodeSet // static geometric nodes, x[dim][node]
	NodesRK *shape.NodeSet // time-evolving copy used while moving; nil when static

	nSpts, nFpts, nMpts, nDims, nFields int

	USpts [][]float64 // [nSpts][nFields]
	UFpts [][]float64 // [nFpts][nFields]
	UMpts [][]float64 // [nMpts][nFields]

	FSpts [][][]float64 // [nDims][nSpts][nFields], reference-space flux

	DisFnFpts [][]float64 // [nFpts][nFields] discontinuous normal flux, this element's own trace
	FnFpts    [][]float64 // [nFpts][nFields] common (Riemann) normal flux, filled by the Face
	DFnFpts   [][]float64 // [nFpts][nFields] jump Fn-disFn applied by the correction operator

	DUSpts [][][]float64 // [nDims][nSpts][nFields] reference-space gradient
	DUFpts [][][]float64 // [nDims][nFpts][nFields] gradient trace at flux points

	// GradJumpFpts holds Uc-Ufpts at every flux point (spec.md §4.3 step 9),
	// written by the owning Face(s) once the common trace Uc is known, and
	// consumed in place by CorrectGradient.
	GradJumpFpts [][]float64 // [nFpts][nFields]

	DivFSpts [][][]float64 // [nRKStages][nSpts][nFields]

	// chainFluxSpts holds the untransformed physical flux per reference
	// dimension, [nDims][nSpts][nFields]; only populated when Motion is
	// MovingChainRule, consumed by chainRuleDivergence.
	chainFluxSpts [][][]float64

	U0 [][]float64 // [nSpts][nFields] beginning-of-step snapshot

	JacSpts, JacFpts   []*la.Matrix // per-point Jacobian (or space-time augmented Jacobian)
	JGinvSpts, JGinvFpts []*la.Matrix // adjoint of Jac = det(Jac)*Jac^-1
	DetJacSpts, DetJacFpts []float64

	TNormFpts [][]float64 // [nFpts][nDims] reference outward normal (constant per type/p, copied from Ops)
	NormFpts  [][]float64 // [nFpts][nDims] physical unit outward normal
	DAFpts    []float64   // [nFpts] differential area element

	GridVelNodes [][]float64 // [nDims][nnode]
	GridVelSpts  [][]float64 // [nSpts][nDims]
	GridVelFpts  [][]float64 // [nFpts][nDims]

	Sensor float64   // shock sensor, spec.md §4.3 step 2
	SSpts  []float64 // entropy bound at solution points (NS only)
	SFpts  []float64 // entropy bound at flux points (NS only)

	Dt float64
}

// NewElement allocates every array described by spec.md §3 "Element" for the
// given (type, order) operator bundle, equation, node set and RK stage
// count. Every array is sized once here and only overwritten afterwards.
func NewElement(id int, ops *Operators, phys physics.Equation, nodes *shape.NodeSet, motion Motion, nRKStages int) *Element {
	if ops.Type.NDims() != phys.NDims() {
		chk.Panic("ele.NewElement: element dimension %d does not match equation dimension %d", ops.Type.NDims(), phys.NDims())
	}
	nd := ops.NDims
	nf := phys.NFields()
	o := &Element{
		ID: id, Type: ops.Type, Order: ops.Order, Motion: motion,
		Ops: ops, Phys: phys, Nodes: nodes,
		nSpts: ops.NSpts, nFpts: ops.NFpts, nMpts: ops.NMpts, nDims: nd, nFields: nf,
	}
	if motion != Static {
		o.NodesRK = shape.NewNodeSet(nd, nodes.NNodes())
		for d := 0; d < nd; d++ {
			copy(o.NodesRK.X[d], nodes.X[d])
		}
		o.GridVelNodes = utl.Alloc(nd, nodes.NNodes())
		o.GridVelSpts = utl.Alloc(o.nSpts, nd)
		o.GridVelFpts = utl.Alloc(o.nFpts, nd)
	}

	o.USpts = utl.Alloc(o.nSpts, nf)
	o.UFpts = utl.Alloc(o.nFpts, nf)
	o.UMpts = utl.Alloc(o.nMpts, nf)
	o.U0 = utl.Alloc(o.nSpts, nf)

	o.FSpts = make([][][]float64, nd)
	o.DUSpts = make([][][]float64, nd)
	o.DUFpts = make([][][]float64, nd)
	for d := 0; d < nd; d++ {
		o.FSpts[d] = utl.Alloc(o.nSpts, nf)
		o.DUSpts[d] = utl.Alloc(o.nSpts, nf)
		o.DUFpts[d] = utl.Alloc(o.nFpts, nf)
	}

	o.DisFnFpts = utl.Alloc(o.nFpts, nf)
	o.FnFpts = utl.Alloc(o.nFpts, nf)
	o.DFnFpts = utl.Alloc(o.nFpts, nf)
	o.GradJumpFpts = utl.Alloc(o.nFpts, nf)

	o.DivFSpts = make([][][]float64, nRKStages)
	for s := range o.DivFSpts {
		o.DivFSpts[s] = utl.Alloc(o.nSpts, nf)
	}

	o.JacSpts = newMatrixSlice(o.nSpts, jacDim(nd, motion))
	o.JGinvSpts = newMatrixSlice(o.nSpts, jacDim(nd, motion))
	o.DetJacSpts = make([]float64, o.nSpts)
	o.JacFpts = newMatrixSlice(o.nFpts, jacDim(nd, motion))
	o.JGinvFpts = newMatrixSlice(o.nFpts, jacDim(nd, motion))
	o.DetJacFpts = make([]float64, o.nFpts)

	o.TNormFpts = make([][]float64, o.nFpts)
	for fp := range o.TNormFpts {
		nrm := make([]float64, nd)
		copy(nrm, ops.FptNormalRef[fp])
		o.TNormFpts[fp] = nrm
	}
	o.NormFpts = utl.Alloc(o.nFpts, nd)
	o.DAFpts = make([]float64, o.nFpts)

	if nf > 1 {
		o.SSpts = make([]float64, o.nSpts)
		o.SFpts = make([]float64, o.nFpts)
	}

	o.calcTransforms()
	return o
}

// jacDim returns the Jacobian matrix size: nDims for static meshes, nDims+1
// for the space-time augmented Jacobian used while moving (spec.md §4.1).
func jacDim(nd int, m Motion) int {
	if m == Static {
		return nd
	}
	return nd + 1
}

func newMatrixSlice(n, dim int) []*la.Matrix {
	out := make([]*la.Matrix, n)
	for i := range out {
		out[i] = la.NewMatrix(dim, dim)
	}
	return out
}

// activeNodes returns the node set currently governing the geometric map:
// NodesRK while moving, Nodes otherwise.
func (o *Element) activeNodes() *shape.NodeSet {
	if o.Motion != Static {
		return o.NodesRK
	}
	return o.Nodes
}

// calcTransforms evaluates the Jacobian, its adjoint and its determinant at
// every solution and flux point (spec.md §4.1 "Geometric transformation").
// For moving meshes it assembles the (d+1)x(d+1) space-time Jacobian whose
// extra column is the grid velocity and extra diagonal entry is 1,
// implementing the geometric conservation law.
func (o *Element) calcTransforms() {
	nodes := o.activeNodes()
	o.calcTransformsAt(o.refPointsSpts(), o.JacSpts, o.JGinvSpts, o.DetJacSpts, o.GridVelSpts, nodes)
	o.calcTransformsAt(o.Ops.FptR, o.JacFpts, o.JGinvFpts, o.DetJacFpts, o.GridVelFpts, nodes)
	o.calcFaceGeometry()
}

// refPointsSpts builds the reference coordinates of every solution point
// from the cached tensor multi-index and the 1-D point set; it is rebuilt on
// every call rather than stored on Operators (used by calcTransforms,
// SptCoords, UpdateMotion and CalcSensor).
func (o *Element) refPointsSpts() [][]float64 {
	n := o.Order + 1
	pts1D := basis.Points(o.Ops.PtSet, n)
	out := make([][]float64, o.nSpts)
	for i, idx := range o.Ops.SptIdx {
		r := make([]float64, o.nDims)
		for k, c := range idx {
			r[k] = pts1D[c]
		}
		out[i] = r
	}
	return out
}

func (o *Element) calcTransformsAt(pts [][]float64, jac, jginv []*la.Matrix, detJac []float64, gridVel [][]float64, nodes *shape.NodeSet) {
	nd := o.nDims
	for p, r := range pts {
		derivs := shape.ShapeDerivs(o.Type, r)
		J := jac[p]
		if o.Motion == Static {
			for a := 0; a < nd; a++ {
				for b := 0; b < nd; b++ {
					var sum float64
					for i, dNi := range derivs {
						sum += dNi[b] * nodes.X[a][i]
					}
					J.Set(a, b, sum)
				}
			}
		} else {
			vg := gridVel[p]
			for a := 0; a < nd; a++ {
				for b := 0; b < nd; b++ {
					var sum float64
					for i, dNi := range derivs {
						sum += dNi[b] * nodes.X[a][i]
					}
					J.Set(a, b, sum)
				}
				J.Set(a, nd, vg[a])
			}
			for b := 0; b < nd; b++ {
				J.Set(nd, b, 0)
			}
			J.Set(nd, nd, 1)
		}
		det := J.Det()
		if det <= 0 {
			chk.Panic("ele.Element.calcTransforms: non-positive Jacobian determinant %g in element %d at point %v", det, o.ID, r)
		}
		detJac[p] = det
		J.Adj(jginv[p])
	}
}

// calcFaceGeometry fills NormFpts (physical unit outward normal) and DAFpts
// (differential area) from the reference normal and JGinv, following
// JGinv^T * n_ref, with its magnitude giving the area scaling (spec.md §3
// invariant: sum|norm_fpts| ~= dA_fpts).
func (o *Element) calcFaceGeometry() {
	nd := o.nDims
	for fp := 0; fp < o.nFpts; fp++ {
		nrm := o.TNormFpts[fp]
		JG := o.JGinvFpts[fp]
		phys := make([]float64, nd)
		for a := 0; a < nd; a++ {
			var sum float64
			for b := 0; b < nd; b++ {
				sum += JG.Get(b, a) * nrm[b]
			}
			phys[a] = sum
		}
		var mag float64
		for _, v := range phys {
			mag += v * v
		}
		mag = math.Sqrt(mag)
		o.DAFpts[fp] = mag
		for a := 0; a < nd; a++ {
			if mag == 0 {
				o.NormFpts[fp][a] = 0
				continue
			}
			o.NormFpts[fp][a] = phys[a] / mag
		}
	}
}
