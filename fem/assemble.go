// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gotopo/msh"
)

// SimpInterp returns the SIMP-interpolated conductivity for density x:
//
//   E(x) = Emin + x^penal * (Emax - Emin)
//
// Density values are expected in [0,1]; penal is typically >= 1.
func SimpInterp(x, emin, emax, penal float64) float64 {
	return emin + math.Pow(x, penal)*(emax-emin)
}

// assembleK rebuilds (from zero) the global conductivity matrix of one grid
// level by scattering the cached element matrix scaled with the SIMP
// interpolation of the density field. The Dirichlet conditions are imposed
// with the mask-based elimination
//
//   K = diag(N)*K*diag(N) + diag(1-N)
//
// applied during the scatter, so fixed rows/columns come out decoupled as
// identity rows. The diagonal of the final matrix is also accumulated for
// use by the level smoothers.
//  Input:
//   grid  -- the grid of this level
//   ke    -- cached unit-conductivity element matrix of this level
//   x     -- per-element density field of this level
//   nmask -- Dirichlet mask of this level: 1.0 free, 0.0 fixed
//  Output:
//   T    -- triplet receiving the assembly (zeroed first)
//   diag -- diagonal of the assembled matrix
func assembleK(grid *msh.Grid, ke [][]float64, x []float64, nmask []float64, emin, emax, penal float64, T *la.Triplet, diag []float64) {
	T.Start()
	la.VecFill(diag, 0)
	nen := grid.Nen
	for e := 0; e < grid.Nelems; e++ {
		scale := SimpInterp(x[e], emin, emax, penal)
		con := grid.Econ[e]
		for i := 0; i < nen; i++ {
			I := con[i]
			for j := 0; j < nen; j++ {
				J := con[j]
				v := scale * ke[i][j] * nmask[I] * nmask[J]
				if v != 0 {
					T.Put(I, J, v)
					if I == J {
						diag[I] += v
					}
				}
			}
		}
	}

	// add ones at fixed rows: K += I - diag(N)
	for n := 0; n < grid.Nnodes; n++ {
		if nmask[n] == 0 {
			T.Put(n, n, 1.0)
			diag[n] += 1.0
		}
	}
}

// AssembleConductivityMatrix (re)builds the global conductivity matrix of
// the finest level from the current density field and masks the load vector
// at the fixed rows. The matrix is fully rebuilt on every call; there is no
// incremental update.
func (o *Domain) AssembleConductivityMatrix(x []float64, emin, emax, penal float64) {
	assembleK(o.Grid, o.KE, x, o.N, emin, emax, penal, o.Kt, o.Kdia)
	o.Kmat = o.Kt.ToMatrix(o.Kmat)

	// zero out possible loads coinciding with Dirichlet conditions
	for n := 0; n < o.Grid.Nnodes; n++ {
		o.RHS[n] *= o.N[n]
	}
}
