// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gotopo/msh"
)

// level holds the operator and scratch data of one grid of the multilevel
// hierarchy. Level 0 is the coarsest grid; the highest level is the finest
// and shares the Domain's assembled operator.
type level struct {

	// grid and operator
	grid  *msh.Grid    // this level's grid
	ke    [][]float64  // element conductivity matrix of this level
	x     []float64    // per-element density restricted to this level
	nmask []float64    // Dirichlet mask injected onto this level
	T     *la.Triplet  // operator in triplet form
	A     *la.CCMatrix // compressed operator
	diag  []float64    // operator diagonal (for the smoother)

	// inter-level transfer (nil on level 0)
	P *la.CCMatrix // interpolation from the next coarser level

	// coarse-grid direct solver (level 0 with "cholesky" only)
	chol *mat.Cholesky

	// scratch
	r  []float64 // residual
	rc []float64 // restricted residual (coarser grid size)
	ec []float64 // coarse-grid correction (coarser grid size)
}

// matVec computes y := A*x on this level
func (o *level) matVec(y, x []float64) {
	la.VecFill(y, 0)
	la.SpMatVecMulAdd(y, 1, o.A, x) // y += 1*A*x
}

// smooth runs a fixed number of weighted-Jacobi sweeps on A*x = b. There is
// no convergence-tolerance check: the smoother is iteration-count-limited
// only.
func (o *level) smooth(x, b []float64, sweeps int, omega float64) {
	for s := 0; s < sweeps; s++ {
		o.matVec(o.r, x)
		for i := 0; i < len(x); i++ {
			x[i] += omega * (b[i] - o.r[i]) / o.diag[i]
		}
	}
}

// vcycle applies one multigrid V-cycle at level l, improving x as an
// approximate solution of A*x = b. Callers pass x = 0 when using the cycle
// as a preconditioner application.
func (o *SolverContext) vcycle(l int, x, b []float64) {
	lev := o.levels[l]

	// coarsest level: solve
	if l == 0 {
		o.coarseSolve(lev, x, b)
		return
	}

	// pre-smoothing
	lev.smooth(x, b, o.sweeps, o.omega)

	// residual restriction: rc = P^T * (b - A*x), masked at fixed rows
	lev.matVec(lev.r, x)
	for i := 0; i < len(b); i++ {
		lev.r[i] = b[i] - lev.r[i]
	}
	coarse := o.levels[l-1]
	la.VecFill(lev.rc, 0)
	la.SpMatTrVecMulAdd(lev.rc, 1, lev.P, lev.r) // rc += 1*P^T*r
	for i := 0; i < len(lev.rc); i++ {
		lev.rc[i] *= coarse.nmask[i]
	}

	// coarse-grid correction
	la.VecFill(lev.ec, 0)
	o.vcycle(l-1, lev.ec, lev.rc)
	la.SpMatVecMulAdd(x, 1, lev.P, lev.ec) // x += 1*P*ec

	// post-smoothing
	lev.smooth(x, b, o.sweeps, o.omega)
}

// coarseSolve solves the coarsest-level system, either by a Jacobi-scaled
// GMRES sweep with the configured coarse tolerances or by a dense Cholesky
// factorisation refreshed at every operator rebuild
func (o *SolverContext) coarseSolve(lev *level, x, b []float64) {
	if lev.chol != nil {
		xv := mat.NewVecDense(len(x), x)
		err := lev.chol.SolveVecTo(xv, mat.NewVecDense(len(b), b))
		if err != nil {
			chk.Panic("coarse-grid Cholesky solve failed:\n%v", err)
		}
		return
	}
	prec := func(z, r []float64) {
		for i := 0; i < len(z); i++ {
			z[i] = r[i] / lev.diag[i]
		}
	}
	la.VecFill(x, 0)
	gmres(lev.matVec, prec, x, b, o.coarseNmaxIt, o.coarseNmaxIt, o.coarseRtol, 0)
}

// factorCoarse refreshes the dense Cholesky factorisation of the coarsest
// operator. The coarse matrix is symmetric positive-definite after the
// mask-based Dirichlet elimination.
func (o *SolverContext) factorCoarse(lev *level) {
	n := lev.grid.Nnodes
	dense := lev.A.ToDense()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, dense[i][j])
		}
	}
	if lev.chol == nil {
		lev.chol = new(mat.Cholesky)
	}
	if ok := lev.chol.Factorize(sym); !ok {
		chk.Panic("coarse-grid operator is not positive definite")
	}
}
