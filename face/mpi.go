// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package face

import (
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/flurry/ele"
)

// MPIFace couples a local element to an element owned by another partition
// (spec.md §3 Face kind=mpi). The right-hand trace lives on the remote rank;
// Communicate/CommunicateGrad move the flux-point traces through exclusive
// send/receive buffers sized once at setup (spec.md §5 "each face owns
// exclusive send and receive buffers sized at setup"). Both ranks evaluate
// the same deterministic Riemann flux from the same (UL,UR) pair, each
// against its own outward normal, so no flux needs to be sent back.
type MPIFace struct {
	base
	RemoteRank int
	RemoteFace int // remote face id, diagnostic only

	// the remote side's flux-point permutation: the i-th local flux point
	// pairs with remote slot FptPermR[i]; nil means identity
	FptPermR []int

	sendBuf []float64
	recvBuf []float64
	ur      [][]float64
	ul      [][]float64
	uc      [][]float64

	gradSendBuf []float64
	gradRecvBuf []float64
	gradR       [][][]float64
}

// NewMPIFace builds the local half of a partition-boundary face.
func NewMPIFace(left *ele.Element, leftFace int, leftFpts []int, remoteRank, remoteFace int, fptPermR []int) *MPIFace {
	if fptPermR != nil {
		requireSameLength(len(leftFpts), len(fptPermR), "MPIFace flux-point permutation")
	}
	return &MPIFace{base: newBase(left, leftFace, leftFpts), RemoteRank: remoteRank, RemoteFace: remoteFace, FptPermR: fptPermR}
}

// SetupFace sizes the send/receive buffers; spec.md §3 requires them sized
// identically on both ends, which holds because both ranks see the same
// face flux-point count and field count.
func (o *MPIFace) SetupFace() {
	n := len(o.LeftFpts) * o.nFields
	o.sendBuf = make([]float64, n)
	o.recvBuf = make([]float64, n)
	o.ur = make([][]float64, len(o.LeftFpts))
	for i := range o.ur {
		o.ur[i] = make([]float64, o.nFields)
	}
	if o.Left.Phys.Viscous() {
		g := n * o.nDims
		o.gradSendBuf = make([]float64, g)
		o.gradRecvBuf = make([]float64, g)
		o.gradR = make([][][]float64, o.nDims)
		for d := range o.gradR {
			rows := make([][]float64, len(o.LeftFpts))
			for i := range rows {
				rows[i] = make([]float64, o.nFields)
			}
			o.gradR[d] = rows
		}
	}
}

// exchange performs the paired send/receive with the remote rank. The lower
// rank sends first on every pair, so the matched blocking calls can never
// deadlock regardless of how many faces two ranks share (spec.md §5: face
// evaluation must not begin before the paired receive completes -- the
// return of this method is that completion point).
func exchange(send, recv []float64, remote int) {
	if mpi.Rank() < remote {
		mpi.DblSend(send, remote)
		mpi.DblRecv(recv, remote)
	} else {
		mpi.DblRecv(recv, remote)
		mpi.DblSend(send, remote)
	}
}

// slot returns the position of local flux point i within the exchanged
// buffers, honoring the remote side's permutation: values are packed in the
// REMOTE ordering so both ranks index their receive buffer identically.
func (o *MPIFace) slot(i int) int {
	if o.FptPermR == nil {
		return i
	}
	return o.FptPermR[i]
}

// Communicate packs UL, exchanges it with the remote rank and unpacks the
// remote trace into UR (spec.md §6 "communicate() on each MPI face").
func (o *MPIFace) Communicate() {
	nf := o.nFields
	for i, fp := range o.LeftFpts {
		s := o.slot(i) * nf
		copy(o.sendBuf[s:s+nf], o.Left.UFpts[fp])
	}
	exchange(o.sendBuf, o.recvBuf, o.RemoteRank)
	for i := range o.LeftFpts {
		s := i * nf
		copy(o.ur[i], o.recvBuf[s:s+nf])
	}
}

// CommunicateGrad exchanges the gradient traces for the viscous branch
// (spec.md §6 "communicateGrad()").
func (o *MPIFace) CommunicateGrad() {
	if o.gradSendBuf == nil {
		return
	}
	nf := o.nFields
	nd := o.nDims
	for i, fp := range o.LeftFpts {
		for d := 0; d < nd; d++ {
			s := (o.slot(i)*nd + d) * nf
			copy(o.gradSendBuf[s:s+nf], o.Left.DUFpts[d][fp])
		}
	}
	exchange(o.gradSendBuf, o.gradRecvBuf, o.RemoteRank)
	for i := range o.LeftFpts {
		for d := 0; d < nd; d++ {
			s := (i*nd + d) * nf
			copy(o.gradR[d][i], o.gradRecvBuf[s:s+nf])
		}
	}
}

// CalcInviscidFlux runs the Riemann solver against the received remote
// trace; Communicate must have completed for the current stage.
func (o *MPIFace) CalcInviscidFlux() {
	o.ul = o.leftUL()
	o.riemannInto(o.ul, o.ur, nil)
	if o.Left.Phys.Viscous() {
		o.uc = o.commonState(o.ul, o.ur, o.ldg)
	}
}

// CalcViscousFlux adds the LDG common viscous flux using the received
// remote gradient trace.
func (o *MPIFace) CalcViscousFlux(cfg LDGConfig) {
	if !o.Left.Phys.Viscous() {
		return
	}
	gradL := make([][][]float64, o.nDims)
	for d := 0; d < o.nDims; d++ {
		rows := make([][]float64, len(o.LeftFpts))
		for i, fp := range o.LeftFpts {
			rows[i] = o.Left.DUFpts[d][fp]
		}
		gradL[d] = rows
	}
	o.commonViscousFlux(o.uc, o.ul, o.ur, gradL, o.gradR, cfg)
}

// SetRightState is a no-op: the remote rank computes its own common flux
// from the identical (UL,UR) pair.
func (o *MPIFace) SetRightState() {}
