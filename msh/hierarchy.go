// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// CanCoarsen tells whether all axes have an even number of elements so that a
// 2:1 coarsened grid exists
func (o *Grid) CanCoarsen() bool {
	for i := 0; i < o.Ndim; i++ {
		if o.Ne[i]%2 != 0 || o.Ne[i] < 2 {
			return false
		}
	}
	return true
}

// Coarsen creates a 2:1 coarsened grid. Coarse nodes coincide with the fine
// nodes of even index along every axis. Uniform coordinates are rebuilt from
// the same domain extents, so no geometric metadata is inherited.
func (o *Grid) Coarsen() (coarse *Grid, err error) {
	if !o.CanCoarsen() {
		return nil, chk.Err("grid with elements %v cannot be coarsened 2:1", o.Ne)
	}
	nn := make([]int, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		nn[i] = o.Ne[i]/2 + 1
	}
	return NewGrid(nn, o.Xlen)
}

// Hierarchy builds the nested grid hierarchy for the multilevel solver.
// The hierarchy is built finest-to-coarsest by successive coarsening and
// then reversed: grids[0] is the COARSEST level and grids[len-1] == o is
// the finest, which is the ordering the preconditioner consumes.
// If the grid cannot be coarsened nlvls-1 times, the depth is reduced and a
// diagnostic is printed; the actual number of levels is returned.
func (o *Grid) Hierarchy(nlvls int) (grids []*Grid, err error) {
	if nlvls < 1 {
		return nil, chk.Err("number of levels must be at least 1, got %d", nlvls)
	}

	// finest-to-coarsest
	list := []*Grid{o}
	g := o
	for k := 1; k < nlvls; k++ {
		if !g.CanCoarsen() {
			io.Pf("hierarchy: grid supports %d levels only (requested %d)\n", k, nlvls)
			break
		}
		g, err = g.Coarsen()
		if err != nil {
			return nil, err
		}
		list = append(list, g)
	}

	// reverse so that level 0 is the coarsest
	n := len(list)
	grids = make([]*Grid, n)
	for k := 0; k < n; k++ {
		grids[k] = list[n-1-k]
	}
	return
}

// Interpolation builds the linear inter-level transfer operator P such that
// vf = P*vc interpolates a coarse nodal field onto the fine grid. Fine nodes
// of even index coincide with coarse nodes (weight 1); odd indices average
// the two coarse neighbours along that axis. Restriction is the transpose.
//  Output:
//   P -- sparse [fine.Nnodes][coarse.Nnodes] operator
func Interpolation(coarse, fine *Grid) (P *la.Triplet, err error) {
	for i := 0; i < fine.Ndim; i++ {
		if fine.Ne[i] != 2*coarse.Ne[i] {
			return nil, chk.Err("grids are not 2:1 nested along axis %d: fine=%d coarse=%d", i, fine.Ne[i], coarse.Ne[i])
		}
	}

	// per-axis stencils: up to 2 coarse nodes and weights per fine index
	type stencil struct {
		idx []int
		wgt []float64
	}
	axis := func(nfine int) []stencil {
		s := make([]stencil, nfine)
		for i := 0; i < nfine; i++ {
			if i%2 == 0 {
				s[i] = stencil{[]int{i / 2}, []float64{1.0}}
			} else {
				s[i] = stencil{[]int{(i - 1) / 2, (i + 1) / 2}, []float64{0.5, 0.5}}
			}
		}
		return s
	}
	sx := axis(fine.Nn[0])
	sy := axis(fine.Nn[1])
	sz := []stencil{{[]int{0}, []float64{1.0}}}
	nz := 1
	if fine.Ndim == 3 {
		sz = axis(fine.Nn[2])
		nz = fine.Nn[2]
	}

	// assemble tensor-product weights
	max := fine.Nnodes * (1 << uint(fine.Ndim))
	P = new(la.Triplet)
	P.Init(fine.Nnodes, coarse.Nnodes, max)
	for k := 0; k < nz; k++ {
		for j := 0; j < fine.Nn[1]; j++ {
			for i := 0; i < fine.Nn[0]; i++ {
				r := fine.NodeIndex(i, j, k)
				for a, ia := range sx[i].idx {
					for b, jb := range sy[j].idx {
						for c, kc := range sz[k].idx {
							w := sx[i].wgt[a] * sy[j].wgt[b] * sz[k].wgt[c]
							P.Put(r, coarse.NodeIndex(ia, jb, kc), w)
						}
					}
				}
			}
		}
	}
	return
}

// RestrictCellField restricts a per-element field from the fine grid to the
// coarse one by averaging the 2^ndim children of each coarse element
func RestrictCellField(coarse, fine *Grid, vf, vc []float64) {
	nchild := 1 << uint(fine.Ndim)
	nez := 1
	if coarse.Ndim == 3 {
		nez = coarse.Ne[2]
	}
	for k := 0; k < nez; k++ {
		for j := 0; j < coarse.Ne[1]; j++ {
			for i := 0; i < coarse.Ne[0]; i++ {
				sum := 0.0
				for c := 0; c < nchild; c++ {
					ii := 2*i + c&1
					jj := 2*j + (c>>1)&1
					kk := 2*k + (c>>2)&1
					sum += vf[fine.ElemIndex(ii, jj, kk)]
				}
				vc[coarse.ElemIndex(i, j, k)] = sum / float64(nchild)
			}
		}
	}
}

// InjectNodeField copies a per-node field from the fine grid to the coarse
// one by injection at the coincident (even index) fine nodes
func InjectNodeField(coarse, fine *Grid, vf, vc []float64) {
	nz := 1
	if coarse.Ndim == 3 {
		nz = coarse.Nn[2]
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < coarse.Nn[1]; j++ {
			for i := 0; i < coarse.Nn[0]; i++ {
				vc[coarse.NodeIndex(i, j, k)] = vf[fine.NodeIndex(2*i, 2*j, 2*k)]
			}
		}
	}
}
