// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01. 2D connectivity, coordinates and element size")

	g, err := NewGrid([]int{3, 3}, []float64{2.0, 1.0})
	if err != nil {
		tst.Errorf("NewGrid failed:\n%v", err)
		return
	}
	chk.IntAssert(g.Nnodes, 9)
	chk.IntAssert(g.Nelems, 4)
	chk.IntAssert(g.Nen, 4)
	chk.Vector(tst, "Dx", 1e-15, g.Dx, []float64{1.0, 0.5})

	// node numbering runs x fastest
	chk.Ints(tst, "econ(0)", g.Econ[0], []int{0, 1, 4, 3})
	chk.Ints(tst, "econ(3)", g.Econ[3], []int{4, 5, 8, 7})

	// coordinates of last node
	n := g.NodeIndex(2, 2, 0)
	chk.Scalar(tst, "x(last)", 1e-15, g.Coords[0][n], 2.0)
	chk.Scalar(tst, "y(last)", 1e-15, g.Coords[1][n], 1.0)
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02. 3D connectivity")

	g, err := NewGrid([]int{3, 2, 2}, []float64{1.0, 1.0, 1.0})
	if err != nil {
		tst.Errorf("NewGrid failed:\n%v", err)
		return
	}
	chk.IntAssert(g.Nnodes, 12)
	chk.IntAssert(g.Nelems, 2)
	chk.IntAssert(g.Nen, 8)
	chk.Ints(tst, "econ(0)", g.Econ[0], []int{0, 1, 4, 3, 6, 7, 10, 9})
	chk.Ints(tst, "econ(1)", g.Econ[1], []int{1, 2, 5, 4, 7, 8, 11, 10})
}

func Test_grid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid03. coarsening hierarchy")

	g, err := NewGrid([]int{9, 9}, []float64{1.0, 1.0})
	if err != nil {
		tst.Errorf("NewGrid failed:\n%v", err)
		return
	}

	grids, err := g.Hierarchy(4)
	if err != nil {
		tst.Errorf("Hierarchy failed:\n%v", err)
		return
	}
	chk.IntAssert(len(grids), 4)

	// level 0 is coarsest; finest is the original grid
	chk.IntAssert(grids[0].Nn[0], 2)
	chk.IntAssert(grids[1].Nn[0], 3)
	chk.IntAssert(grids[2].Nn[0], 5)
	chk.IntAssert(grids[3].Nn[0], 9)
	if grids[3] != g {
		tst.Errorf("finest level must be the input grid\n")
		return
	}

	// coordinates reapplied at every level: same extents
	for _, gk := range grids {
		last := gk.NodeIndex(gk.Nn[0]-1, gk.Nn[1]-1, 0)
		chk.Scalar(tst, "xmax", 1e-15, gk.Coords[0][last], 1.0)
		chk.Scalar(tst, "ymax", 1e-15, gk.Coords[1][last], 1.0)
	}

	// a grid that cannot support 4 levels comes back shallower
	g2, _ := NewGrid([]int{5, 5}, []float64{1.0, 1.0})
	grids2, err := g2.Hierarchy(4)
	if err != nil {
		tst.Errorf("Hierarchy failed:\n%v", err)
		return
	}
	chk.IntAssert(len(grids2), 3)
}

func Test_grid04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid04. interpolation operator and field transfer")

	fine, _ := NewGrid([]int{5, 5}, []float64{1.0, 1.0})
	coarse, _ := fine.Coarsen()

	P, err := Interpolation(coarse, fine)
	if err != nil {
		tst.Errorf("Interpolation failed:\n%v", err)
		return
	}

	// interpolation preserves constant fields: row sums == 1
	vc := make([]float64, coarse.Nnodes)
	vf := make([]float64, fine.Nnodes)
	la.VecFill(vc, 1.0)
	Pm := P.ToMatrix(nil)
	la.SpMatVecMulAdd(vf, 1, Pm, vc) // vf += 1*P*vc
	for r := 0; r < fine.Nnodes; r++ {
		chk.Scalar(tst, "P row sum", 1e-15, vf[r], 1.0)
	}

	// interpolation reproduces linear fields exactly
	for n := 0; n < coarse.Nnodes; n++ {
		vc[n] = 2.0*coarse.Coords[0][n] - 3.0*coarse.Coords[1][n]
	}
	la.VecFill(vf, 0)
	la.SpMatVecMulAdd(vf, 1, Pm, vc)
	for n := 0; n < fine.Nnodes; n++ {
		chk.Scalar(tst, "P linear field", 1e-14, vf[n], 2.0*fine.Coords[0][n]-3.0*fine.Coords[1][n])
	}

	// per-element restriction averages the four children
	xf := make([]float64, fine.Nelems)
	xc := make([]float64, coarse.Nelems)
	la.VecFill(xf, 0.25)
	RestrictCellField(coarse, fine, xf, xc)
	for e := 0; e < coarse.Nelems; e++ {
		chk.Scalar(tst, "restricted density", 1e-15, xc[e], 0.25)
	}

	// node field injection picks the coincident fine values
	uf := make([]float64, fine.Nnodes)
	uc := make([]float64, coarse.Nnodes)
	for n := 0; n < fine.Nnodes; n++ {
		uf[n] = fine.Coords[0][n]
	}
	InjectNodeField(coarse, fine, uf, uc)
	for n := 0; n < coarse.Nnodes; n++ {
		chk.Scalar(tst, "injected field", 1e-15, uc[n], coarse.Coords[0][n])
	}
}

func Test_grid05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid05. 3D hierarchy and field transfer")

	fine, err := NewGrid([]int{5, 5, 5}, []float64{1.0, 2.0, 3.0})
	if err != nil {
		tst.Errorf("NewGrid failed:\n%v", err)
		return
	}
	grids, err := fine.Hierarchy(3)
	if err != nil {
		tst.Errorf("Hierarchy failed:\n%v", err)
		return
	}
	chk.IntAssert(len(grids), 3)
	chk.Ints(tst, "coarsest nn", grids[0].Nn, []int{2, 2, 2})
	chk.IntAssert(grids[0].Nen, 8)

	coarse := grids[1]

	// interpolation preserves constants and reproduces trilinear fields
	P, err := Interpolation(coarse, fine)
	if err != nil {
		tst.Errorf("Interpolation failed:\n%v", err)
		return
	}
	Pm := P.ToMatrix(nil)
	vc := make([]float64, coarse.Nnodes)
	vf := make([]float64, fine.Nnodes)
	for n := 0; n < coarse.Nnodes; n++ {
		vc[n] = 2.0*coarse.Coords[0][n] - 3.0*coarse.Coords[1][n] + 0.5*coarse.Coords[2][n]
	}
	la.SpMatVecMulAdd(vf, 1, Pm, vc) // vf += 1*P*vc
	for n := 0; n < fine.Nnodes; n++ {
		correct := 2.0*fine.Coords[0][n] - 3.0*fine.Coords[1][n] + 0.5*fine.Coords[2][n]
		chk.Scalar(tst, "P linear field 3D", 1e-14, vf[n], correct)
	}

	// restriction averages the eight children of every coarse element
	xf := make([]float64, fine.Nelems)
	xc := make([]float64, coarse.Nelems)
	for e := 0; e < fine.Nelems; e++ {
		xf[e] = float64(e % 2)
	}
	RestrictCellField(coarse, fine, xf, xc)
	sumf, sumc := 0.0, 0.0
	for e := 0; e < fine.Nelems; e++ {
		sumf += xf[e]
	}
	for e := 0; e < coarse.Nelems; e++ {
		if xc[e] < 0 || xc[e] > 1 {
			tst.Errorf("restricted density out of range: xc[%d] = %v\n", e, xc[e])
			return
		}
		sumc += xc[e]
	}
	chk.Scalar(tst, "restriction conserves volume", 1e-14, sumc*8.0, sumf)

	// injection picks the coincident fine values
	uf := make([]float64, fine.Nnodes)
	uc := make([]float64, coarse.Nnodes)
	for n := 0; n < fine.Nnodes; n++ {
		uf[n] = fine.Coords[2][n]
	}
	InjectNodeField(coarse, fine, uf, uc)
	for n := 0; n < coarse.Nnodes; n++ {
		chk.Scalar(tst, "injected field 3D", 1e-15, uc[n], coarse.Coords[2][n])
	}
}
