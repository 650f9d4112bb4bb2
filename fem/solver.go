// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gotopo/msh"
)

// SolverContext holds the configured multilevel iterative solver bound to
// the domain's conductivity matrix. It is created lazily on the first solve
// and reused afterwards: subsequent calls only rebind the refreshed
// operators, never reconstruct the hierarchy.
type SolverContext struct {

	// context
	dom    *Domain  // the owning domain
	levels []*level // grid hierarchy; level 0 is the coarsest

	// outer Krylov configuration
	restart int     // GMRES restart length
	nmaxIt  int     // max outer iterations
	rtol    float64 // relative tolerance
	atol    float64 // absolute tolerance
	dtol    float64 // divergence tolerance

	// multigrid configuration
	sweeps       int     // smoothing sweeps per level
	omega        float64 // weighted-Jacobi damping
	coarseKind   string  // "gmres" or "cholesky"
	coarseRtol   float64 // coarse solver relative tolerance
	coarseNmaxIt int     // coarse solver max iterations
}

// setUpSolver configures the solver on first use: reads the restart
// checkpoint (unless suppressed), builds the grid-coarsening hierarchy, the
// per-level operators and the inter-level transfer operators
func (o *Domain) setUpSolver() (err error) {

	s := new(SolverContext)
	s.dom = o
	sd := &o.Sim.Solver
	s.restart = sd.Restart
	s.nmaxIt = sd.NmaxIt
	s.rtol = sd.Rtol
	s.atol = sd.Atol
	s.dtol = sd.Dtol
	s.sweeps = sd.SmoothSweeps
	s.omega = sd.SmoothOmega
	s.coarseKind = sd.CoarseKind
	s.coarseRtol = sd.CoarseRtol
	s.coarseNmaxIt = sd.CoarseNmaxIt

	// checkpoint: read a previously saved temperature field as the initial
	// guess, unless only the design is to be loaded
	err = o.prepareRestart()
	if err != nil {
		return
	}

	// grid hierarchy: built finest-to-coarsest, delivered coarsest-first
	grids, err := o.Grid.Hierarchy(sd.Nlvls)
	if err != nil {
		return chk.Err("cannot build grid hierarchy:\n%v", err)
	}
	nlv := len(grids)
	s.levels = make([]*level, nlv)
	for l, g := range grids {
		lev := &level{grid: g}
		nn := g.Nnodes
		if l == nlv-1 {
			// the finest level shares the domain's assembled operator
			lev.ke = o.KE
			lev.T = o.Kt
			lev.diag = o.Kdia
			lev.nmask = o.N
		} else {
			lev.ke = la.MatAlloc(g.Nen, g.Nen)
			err = o.Shp.CalcConductM(lev.ke, g.ElemCoords(0), o.Sim.Problem.RedInt)
			if err != nil {
				return chk.Err("cannot compute element matrix of level %d:\n%v", l, err)
			}
			lev.T = new(la.Triplet)
			lev.T.Init(nn, nn, g.Nelems*g.Nen*g.Nen+nn)
			lev.diag = make([]float64, nn)
			lev.nmask = make([]float64, nn)
			lev.x = make([]float64, g.Nelems)
		}
		lev.r = make([]float64, nn)
		s.levels[l] = lev
	}

	// Dirichlet masks cascade down by injection at coincident nodes
	for l := nlv - 2; l >= 0; l-- {
		msh.InjectNodeField(s.levels[l].grid, s.levels[l+1].grid, s.levels[l+1].nmask, s.levels[l].nmask)
	}

	// inter-level interpolation operators, constructed once and retained
	for l := 1; l < nlv; l++ {
		P, err := msh.Interpolation(grids[l-1], grids[l])
		if err != nil {
			return chk.Err("cannot build interpolation onto level %d:\n%v", l, err)
		}
		lev := s.levels[l]
		lev.P = P.ToMatrix(nil)
		lev.rc = make([]float64, grids[l-1].Nnodes)
		lev.ec = make([]float64, grids[l-1].Nnodes)
	}

	o.Solver = s
	s.printSettings()
	return
}

// refresh rebinds the solver to the freshly assembled fine operator and
// rebuilds the coarse-level operators from the restricted density field
func (o *SolverContext) refresh(x []float64, emin, emax, penal float64) {
	nlv := len(o.levels)
	fin := o.levels[nlv-1]
	fin.x = x
	fin.A = o.dom.Kmat
	for l := nlv - 2; l >= 0; l-- {
		lev := o.levels[l]
		finer := o.levels[l+1]
		msh.RestrictCellField(lev.grid, finer.grid, finer.x, lev.x)
		assembleK(lev.grid, lev.ke, lev.x, lev.nmask, emin, emax, penal, lev.T, lev.diag)
		lev.A = lev.T.ToMatrix(lev.A)
	}
	if o.coarseKind == "cholesky" {
		o.factorCoarse(o.levels[0])
	}
}

// SolveState assembles the conductivity matrix for the given density field
// and solves for the temperature field, reusing the previous solution as
// the initial guess. Non-convergence is reported but not fatal: the caller
// proceeds with the degraded solution.
func (o *Domain) SolveState(x []float64, emin, emax, penal float64) (err error) {

	t1 := time.Now()

	// assemble the heat conductivity matrix
	o.AssembleConductivityMatrix(x, emin, emax, penal)

	// setup the solver on first use; afterwards only rebind operators
	if o.Solver == nil {
		err = o.setUpSolver()
		if err != nil {
			return
		}
	}
	o.Solver.refresh(x, emin, emax, penal)

	// solve with one V-cycle as the preconditioner application
	s := o.Solver
	top := len(s.levels) - 1
	fin := s.levels[top]
	prec := func(z, r []float64) {
		la.VecFill(z, 0)
		s.vcycle(top, z, r)
	}
	nit, relres := fgmres(fin.matVec, prec, o.U, o.RHS, s.restart, s.nmaxIt, s.rtol, s.atol, s.dtol)

	// report iteration count and relative residual every solve
	if Global.Root {
		io.Pf("State solver:  iter: %d, rerr.: %e, time: %f\n", nit, relres, time.Since(t1).Seconds())
		if relres > s.rtol {
			io.PfRed("state solver did not converge: rerr = %e > rtol = %e\n", relres, s.rtol)
		}
	}
	return
}

// printSettings reports the solver configuration, once, after setup
func (o *SolverContext) printSettings() {
	if !Global.Root {
		return
	}
	io.Pf("##############################################################\n")
	io.Pf("################# Linear solver settings #####################\n")
	io.Pf("# Main solver: fgmres(%d), prec.: mg, maxiter.: %d\n", o.restart, o.nmaxIt)
	io.Pf("# Coarse solver: %s, rtol: %g, maxiter.: %d\n", o.coarseKind, o.coarseRtol, o.coarseNmaxIt)
	for l := 1; l < len(o.levels); l++ {
		io.Pf("# Level %d smoother: jacobi(%g), sweeps: %d\n", l, o.omega, o.sweeps)
	}
	io.Pf("##############################################################\n")
}
