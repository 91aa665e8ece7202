// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package restart reads and writes the VTK UnstructuredGrid XML restart
// files of spec.md §6: one piece per partition per time, values laid out
// over the tensor-product plot points of every element, with the simulation
// time (and, overset runs, the iblank vector) carried in leading XML
// comments. The general-purpose plot-file writer is an external
// collaborator; this package holds the state round trip the solver needs.
package restart

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/ele"
	"github.com/cpmech/flurry/geom"
)

// Write dumps the elements' current state. UMpts are refreshed from USpts
// by the writer itself before anything is written. iblank may be nil for
// non-overset runs; gamma recovers pressure from conserved variables and is
// ignored for the scalar equation.
func Write(fname string, eles []*ele.Element, time float64, order int, gamma float64, iblank []geom.IBlank, entropyErr bool, rhoinf, pinf float64) {
	f, err := os.Create(fname)
	if err != nil {
		chk.Panic("restart.Write: cannot create %q: %v", fname, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintf(w, "<!-- TIME %.17g -->\n", time)
	if iblank != nil {
		fmt.Fprintf(w, "<!-- IBLANK_CELL")
		for _, ib := range iblank {
			fmt.Fprintf(w, " %d", ib)
		}
		fmt.Fprintf(w, " -->\n")
	}
	fmt.Fprintf(w, "<!-- ORDER %d -->\n", order)

	var nPts int
	live := make([]*ele.Element, 0, len(eles))
	for _, e := range eles {
		if e != nil {
			e.ExtrapolateToMpts()
			live = append(live, e)
			nPts += e.NMpts()
		}
	}

	fmt.Fprintf(w, "<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	fmt.Fprintf(w, "<UnstructuredGrid>\n")
	fmt.Fprintf(w, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", nPts, len(live))

	fmt.Fprintf(w, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, e := range live {
		for _, x := range e.MptCoords() {
			z := 0.0
			if len(x) == 3 {
				z = x[2]
			}
			fmt.Fprintf(w, "%.17g %.17g %.17g\n", x[0], x[1], z)
		}
	}
	fmt.Fprintf(w, "</DataArray>\n</Points>\n")

	fmt.Fprintf(w, "<PointData>\n")
	writeField(w, "Density", 1, live, func(e *ele.Element) [][]float64 {
		prim := e.GetPrimitivesPlot(gamma)
		out := make([][]float64, len(prim))
		for i, p := range prim {
			out[i] = []float64{p[0]}
		}
		return out
	})
	writeField(w, "Velocity", 3, live, func(e *ele.Element) [][]float64 {
		prim := e.GetPrimitivesPlot(gamma)
		out := make([][]float64, len(prim))
		for i, p := range prim {
			row := make([]float64, 3)
			if len(p) > 1 {
				copy(row, p[1:4])
			}
			out[i] = row
		}
		return out
	})
	writeField(w, "Pressure", 1, live, func(e *ele.Element) [][]float64 {
		prim := e.GetPrimitivesPlot(gamma)
		out := make([][]float64, len(prim))
		for i, p := range prim {
			v := 0.0
			if len(p) > 4 {
				v = p[4]
			}
			out[i] = []float64{v}
		}
		return out
	})
	if entropyErr {
		writeField(w, "EntropyErr", 1, live, func(e *ele.Element) [][]float64 {
			errs := e.GetEntropyErrPlot(gamma, rhoinf, pinf)
			out := make([][]float64, len(errs))
			for i, v := range errs {
				out[i] = []float64{v}
			}
			return out
		})
	}
	fmt.Fprintf(w, "</PointData>\n")
	fmt.Fprintf(w, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
}

func writeField(w *bufio.Writer, name string, ncomp int, live []*ele.Element, get func(e *ele.Element) [][]float64) {
	fmt.Fprintf(w, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"%d\" format=\"ascii\">\n", name, ncomp)
	for _, e := range live {
		for _, row := range get(e) {
			for c := 0; c < ncomp; c++ {
				if c > 0 {
					fmt.Fprintf(w, " ")
				}
				fmt.Fprintf(w, "%.17g", row[c])
			}
			fmt.Fprintf(w, "\n")
		}
	}
	fmt.Fprintf(w, "</DataArray>\n")
}

// File is a parsed restart file.
type File struct {
	Time    float64
	Order   int
	IBlank  []geom.IBlank
	Density []float64
	Vel     [][3]float64
	Press   []float64
}

// Read parses a restart file. An unopenable file or a missing
// UnstructuredGrid tag is fatal; a missing TIME comment is a soft warning
// (spec.md §7). A missing IBLANK_CELL comment leaves IBlank nil and prints
// no warning.
func Read(fname string) *File {
	b, err := os.ReadFile(fname)
	if err != nil {
		chk.Panic("restart.Read: cannot open restart file %q: %v", fname, err)
	}
	s := string(b)
	if !strings.Contains(s, "<UnstructuredGrid") {
		chk.Panic("restart.Read: %q is missing the UnstructuredGrid tag", fname)
	}

	out := &File{Time: -1, Order: -1}
	if v, ok := comment(s, "TIME"); ok {
		out.Time, _ = strconv.ParseFloat(strings.Fields(v)[0], 64)
	} else {
		io.Pfred("restart.Read: %q carries no TIME comment; keeping current time\n", fname)
	}
	if v, ok := comment(s, "ORDER"); ok {
		out.Order, _ = strconv.Atoi(strings.Fields(v)[0])
	}
	if v, ok := comment(s, "IBLANK_CELL"); ok {
		for _, tok := range strings.Fields(v) {
			iv, _ := strconv.Atoi(tok)
			out.IBlank = append(out.IBlank, geom.IBlank(iv))
		}
	}

	out.Density = scalarArray(s, "Density", fname)
	out.Press = scalarArray(s, "Pressure", fname)
	vel := vectorArray(s, "Velocity", fname)
	out.Vel = vel
	return out
}

// comment extracts "<!-- KEY ... -->".
func comment(s, key string) (string, bool) {
	tag := "<!-- " + key + " "
	i := strings.Index(s, tag)
	if i < 0 {
		return "", false
	}
	rest := s[i+len(tag):]
	j := strings.Index(rest, "-->")
	if j < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:j]), true
}

// dataArray extracts the body of the named DataArray.
func dataArray(s, name, fname string) []string {
	tag := "Name=\"" + name + "\""
	i := strings.Index(s, tag)
	if i < 0 {
		return nil
	}
	rest := s[i:]
	j := strings.Index(rest, ">")
	k := strings.Index(rest, "</DataArray>")
	if j < 0 || k < 0 || k < j {
		chk.Panic("restart.Read: malformed DataArray %q in %q", name, fname)
	}
	return strings.Fields(rest[j+1 : k])
}

func scalarArray(s, name, fname string) []float64 {
	toks := dataArray(s, name, fname)
	out := make([]float64, len(toks))
	for i, t := range toks {
		out[i], _ = strconv.ParseFloat(t, 64)
	}
	return out
}

func vectorArray(s, name, fname string) [][3]float64 {
	toks := dataArray(s, name, fname)
	out := make([][3]float64, len(toks)/3)
	for i := range out {
		for c := 0; c < 3; c++ {
			out[i][c], _ = strconv.ParseFloat(toks[3*i+c], 64)
		}
	}
	return out
}

// orphanValue marks the state of elements missing from the restart file, a
// distinctive filler so the rank continues (spec.md §7 soft-warn).
const orphanValue = 99.0

// Apply installs the file's state onto the elements, converting primitives
// back to conserved variables (gamma; scalar runs use Density alone) and
// remapping across orders with the tensor-product Lagrange operator when
// the file order differs from the run order.
func Apply(f *File, eles []*ele.Element, order int, gamma float64) {
	// plot-point counts per live element, in write order
	offset := 0
	pOld := f.Order
	if pOld < 0 {
		pOld = order
	}

	for _, e := range eles {
		if e == nil {
			continue
		}
		nmOld := nmptsOf(e, pOld)
		if offset+nmOld > len(f.Density) {
			io.Pfred("restart: element %d not present in restart file; filling with %g\n", e.ID, orphanValue)
			for i := range e.USpts {
				for fd := range e.USpts[i] {
					e.USpts[i][fd] = orphanValue
				}
			}
			continue
		}

		// conserved state at the OLD solution points, recovered from the
		// interior plot points of the old tensor grid
		uOld := conservedAtSpts(f, e, pOld, offset, gamma)

		if pOld == e.Order {
			for i, row := range uOld {
				copy(e.USpts[i], row)
			}
		} else {
			op := ele.InterpOperator(e.Type, e.Order, pOld, e.Ops.PtSet)
			nNew, _ := op.Dims()
			for i := 0; i < nNew; i++ {
				for fd := 0; fd < e.NFields(); fd++ {
					var sum float64
					for j := range uOld {
						sum += op.Get(i, j) * uOld[j][fd]
					}
					e.USpts[i][fd] = sum
				}
			}
		}
		offset += nmOld
	}
}

// nmptsOf returns the plot-point count of an element at order p: Legendre
// point sets gain two endpoints per direction, Lobatto sets already carry
// them (see basis.PlotPoints).
func nmptsOf(e *ele.Element, p int) int {
	n := len(basis.PlotPoints(e.Ops.PtSet, p+1))
	total := 1
	for d := 0; d < e.NDims(); d++ {
		total *= n
	}
	return total
}

// conservedAtSpts picks the interior plot points (which coincide with the
// solution points) out of the element's block and converts primitives to
// conserved variables.
func conservedAtSpts(f *File, e *ele.Element, p, offset int, gamma float64) [][]float64 {
	d := e.NDims()
	n := p + 1 // solution points per direction
	nm := len(basis.PlotPoints(e.Ops.PtSet, n))
	inner := (nm - n) / 2 // index shift of the first interior plot point

	nf := e.NFields()
	nOld := 1
	for k := 0; k < d; k++ {
		nOld *= n
	}
	out := make([][]float64, nOld)

	// walk the interior multi-indices in the same row-major order the
	// solution points use
	idx := make([]int, d)
	for s := 0; s < nOld; s++ {
		// mpt flat index of interior point (idx+inner per axis), last axis fastest
		flat := 0
		for k := 0; k < d; k++ {
			flat = flat*nm + (idx[k] + inner)
		}
		g := offset + flat
		row := make([]float64, nf)
		if nf == 1 {
			row[0] = f.Density[g]
		} else {
			rho := f.Density[g]
			row[0] = rho
			var kinetic float64
			for k := 0; k < d; k++ {
				row[1+k] = rho * f.Vel[g][k]
				kinetic += f.Vel[g][k] * f.Vel[g][k]
			}
			row[nf-1] = f.Press[g]/(gamma-1) + 0.5*rho*kinetic
		}
		out[s] = row

		for axis := d - 1; axis >= 0; axis-- {
			idx[axis]++
			if idx[axis] < n {
				break
			}
			idx[axis] = 0
		}
	}
	return out
}
