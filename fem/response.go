// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

// PassiveSens is the sensitivity magnitude assigned to passive elements so
// that downstream density-update schemes drive them to their prescribed
// state: +PassiveSens pushes passive-solid elements towards density one,
// -PassiveSens pushes fixed and loaded elements towards density zero.
const PassiveSens = 1.0e9

// ComputeObjectiveConstraintsSensitivities solves the state problem for the
// density field x and evaluates the compliance objective fx, the volume
// constraint gx and their derivatives dfdx and dgdx with respect to the
// element densities. Passive elements receive sentinel sensitivities and do
// not enter the objective or the constraint.
func (o *Domain) ComputeObjectiveConstraintsSensitivities(x, dfdx, dgdx []float64, emin, emax, penal, volfrac float64) (fx, gx float64, err error) {

	// temperature field for the current design
	err = o.SolveState(x, emin, emax, penal)
	if err != nil {
		return
	}

	// compliance and its derivative, element by element
	nen := o.Grid.Nen
	ue := make([]float64, nen)
	ndes := 0.0
	vol := 0.0
	for e := 0; e < o.Grid.Nelems; e++ {
		if !o.Pass.IsFree(e) {
			switch {
			case o.Pass.Solid[e] == 1:
				dfdx[e] = PassiveSens
			default:
				dfdx[e] = -PassiveSens
			}
			dgdx[e] = 0
			continue
		}
		for i := 0; i < nen; i++ {
			ue[i] = o.U[o.Grid.Econ[e][i]]
		}
		uKu := 0.0
		for i := 0; i < nen; i++ {
			for j := 0; j < nen; j++ {
				uKu += ue[i] * o.KE[i][j] * ue[j]
			}
		}
		fx += SimpInterp(x[e], emin, emax, penal) * uKu
		dfdx[e] = -penal * math.Pow(x[e], penal-1.0) * (emax - emin) * uKu
		vol += x[e]
		ndes += 1.0
	}

	// global sums when running distributed
	if Global.Distr {
		sums := []float64{fx, vol, ndes}
		res := make([]float64, 3)
		mpi.AllReduceSum(sums, res)
		fx, vol, ndes = sums[0], sums[1], sums[2]
	}

	// volume constraint over the designable elements only
	neltot := float64(o.Grid.Nelems)
	gx = vol/ndes - volfrac
	for e := 0; e < o.Grid.Nelems; e++ {
		if o.Pass.IsFree(e) {
			dgdx[e] = 1.0 / ndes
		}
	}

	// report design-space composition
	if Global.Root {
		io.Pf("non designable volume: %f\n", neltot-ndes)
		io.Pf("volume: %f\n", vol)
	}
	return
}
