// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func Test_response01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("response01. objective, constraint and sentinels")

	Start(false)
	sim := testSim([]int{5, 5}, []float64{1.0, 1.0}, 3)
	pass := NewPassive(16)
	pass.Solid[0] = 1
	pass.Fixed[5] = 1
	pass.Loaded[10] = 1
	dom, err := NewDomain(sim, pass)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}

	// uniform density at the target volume fraction
	nelems := dom.Grid.Nelems
	x := make([]float64, nelems)
	la.VecFill(x, 0.5)
	dfdx := make([]float64, nelems)
	dgdx := make([]float64, nelems)
	fx, gx, err := dom.ComputeObjectiveConstraintsSensitivities(x, dfdx, dgdx, 1e-9, 1, 3, 0.5)
	if err != nil {
		tst.Errorf("evaluation failed:\n%v", err)
		return
	}
	if chk.Verbose {
		io.Pforan("fx = %v\n", fx)
		io.Pforan("gx = %v\n", gx)
	}

	// compliance of a heated plate is positive
	if fx <= 0 {
		tst.Errorf("objective must be positive: fx = %v\n", fx)
	}

	// all free elements at volfrac gives a zero volume constraint
	chk.Scalar(tst, "gx", 1e-15, gx, 0.0)

	// sentinels on the passive elements
	chk.Scalar(tst, "dfdx solid", 1e-17, dfdx[0], PassiveSens)
	chk.Scalar(tst, "dfdx fixed", 1e-17, dfdx[5], -PassiveSens)
	chk.Scalar(tst, "dfdx loaded", 1e-17, dfdx[10], -PassiveSens)
	chk.Scalar(tst, "dgdx solid", 1e-17, dgdx[0], 0.0)
	chk.Scalar(tst, "dgdx fixed", 1e-17, dgdx[5], 0.0)
	chk.Scalar(tst, "dgdx loaded", 1e-17, dgdx[10], 0.0)

	// free elements: negative compliance sensitivity, uniform volume
	// sensitivity over the 13 designable elements
	for e := 0; e < nelems; e++ {
		if !pass.IsFree(e) {
			continue
		}
		if dfdx[e] >= 0 {
			tst.Errorf("dfdx[%d] must be negative: %v\n", e, dfdx[e])
		}
		chk.Scalar(tst, io.Sf("dgdx%d", e), 1e-17, dgdx[e], 1.0/13.0)
	}
}

func Test_response02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("response02. sensitivity vs finite differences")

	Start(false)
	sim := testSim([]int{5, 5}, []float64{1.0, 1.0}, 2)
	sim.Solver.Rtol = 1e-12
	dom, err := NewDomain(sim, nil)
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}

	nelems := dom.Grid.Nelems
	x := make([]float64, nelems)
	la.VecFill(x, 0.5)
	dfdx := make([]float64, nelems)
	dgdx := make([]float64, nelems)
	emin, emax, penal, volfrac := 1e-9, 1.0, 3.0, 0.5
	_, _, err = dom.ComputeObjectiveConstraintsSensitivities(x, dfdx, dgdx, emin, emax, penal, volfrac)
	if err != nil {
		tst.Errorf("evaluation failed:\n%v", err)
		return
	}

	// central differences on a few elements
	h := 1e-5
	tmpf := make([]float64, nelems)
	tmpg := make([]float64, nelems)
	for _, e := range []int{0, 5, 10, 15} {
		x[e] = 0.5 + h
		fp, _, err := dom.ComputeObjectiveConstraintsSensitivities(x, tmpf, tmpg, emin, emax, penal, volfrac)
		if err != nil {
			tst.Errorf("evaluation failed:\n%v", err)
			return
		}
		x[e] = 0.5 - h
		fm, _, err := dom.ComputeObjectiveConstraintsSensitivities(x, tmpf, tmpg, emin, emax, penal, volfrac)
		if err != nil {
			tst.Errorf("evaluation failed:\n%v", err)
			return
		}
		x[e] = 0.5
		fd := (fp - fm) / (2.0 * h)
		if chk.Verbose {
			chk.PrintAnaNum(io.Sf("dfdx%d", e), 1e-3, dfdx[e], fd, true)
		}
		chk.Scalar(tst, io.Sf("dfdx%d", e), 1e-3*la.VecLargest(dfdx, 1), dfdx[e], fd)
	}
}
