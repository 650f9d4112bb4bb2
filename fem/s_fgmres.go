// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
)

// fgmres solves A*x = b with the flexible, right-preconditioned GMRES(m)
// method. The preconditioner may change between iterations (here: one
// multigrid V-cycle), hence the Z basis is retained.
//  Input:
//   matvec -- computes y := A*x
//   prec   -- computes z := M⁻¹*r (approximate solve)
//   x      -- initial guess (nonzero allowed); overwritten with the solution
//   b      -- right-hand side
//   m      -- restart length
//   maxit  -- max number of iterations (matrix-vector products)
//   rtol   -- relative tolerance on ‖r‖/‖b‖
//   atol   -- absolute tolerance on ‖r‖
//   dtol   -- divergence tolerance (disabled if ≤ 0)
//  Output:
//   nit    -- number of iterations performed
//   relres -- relative residual at exit
func fgmres(matvec func(y, x []float64), prec func(z, r []float64), x, b []float64, m, maxit int, rtol, atol, dtol float64) (nit int, relres float64) {
	n := len(b)
	V := la.MatAlloc(m+1, n)
	Z := la.MatAlloc(m, n)
	H := la.MatAlloc(m+1, m)
	cs := make([]float64, m)
	sn := make([]float64, m)
	g := make([]float64, m+1)
	y := make([]float64, m)
	r := make([]float64, n)

	// trivial right-hand side
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		la.VecFill(x, 0)
		return 0, 0
	}

	// initial residual
	matvec(r, x)
	for i := 0; i < n; i++ {
		r[i] = b[i] - r[i]
	}
	beta := floats.Norm(r, 2)
	relres = beta / bnorm

	for nit < maxit && relres > rtol && beta > atol {

		// (re)start the Arnoldi process
		la.VecFill(g, 0)
		g[0] = beta
		copy(V[0], r)
		floats.Scale(1.0/beta, V[0])
		k := 0
		for ; k < m && nit < maxit; k++ {

			// new Krylov vector through the preconditioner
			prec(Z[k], V[k])
			matvec(V[k+1], Z[k])

			// modified Gram-Schmidt orthogonalisation
			for i := 0; i <= k; i++ {
				H[i][k] = floats.Dot(V[i], V[k+1])
				floats.AddScaled(V[k+1], -H[i][k], V[i])
			}
			H[k+1][k] = floats.Norm(V[k+1], 2)
			if H[k+1][k] > 0 {
				floats.Scale(1.0/H[k+1][k], V[k+1])
			}

			// previously computed Givens rotations
			for i := 0; i < k; i++ {
				t := cs[i]*H[i][k] + sn[i]*H[i+1][k]
				H[i+1][k] = -sn[i]*H[i][k] + cs[i]*H[i+1][k]
				H[i][k] = t
			}

			// new rotation annihilating H[k+1][k]
			d := math.Hypot(H[k][k], H[k+1][k])
			cs[k] = H[k][k] / d
			sn[k] = H[k+1][k] / d
			H[k][k] = d
			H[k+1][k] = 0
			g[k+1] = -sn[k] * g[k]
			g[k] = cs[k] * g[k]

			nit++
			relres = math.Abs(g[k+1]) / bnorm
			if relres <= rtol || (dtol > 0 && relres > dtol) {
				k++
				break
			}
		}

		// back substitution: H*y = g
		for i := k - 1; i >= 0; i-- {
			y[i] = g[i]
			for j := i + 1; j < k; j++ {
				y[i] -= H[i][j] * y[j]
			}
			y[i] /= H[i][i]
		}

		// update solution: x += Z*y
		for j := 0; j < k; j++ {
			floats.AddScaled(x, y[j], Z[j])
		}

		// true residual for the restart and the final report
		matvec(r, x)
		for i := 0; i < n; i++ {
			r[i] = b[i] - r[i]
		}
		beta = floats.Norm(r, 2)
		relres = beta / bnorm
		if dtol > 0 && relres > dtol {
			break
		}
	}
	return
}

// gmres is the plain right-preconditioned GMRES(m) used for the coarse-grid
// solve, where the preconditioner is stationary
func gmres(matvec func(y, x []float64), prec func(z, r []float64), x, b []float64, m, maxit int, rtol, atol float64) (nit int, relres float64) {
	return fgmres(matvec, prec, x, b, m, maxit, rtol, atol, 0)
}
