// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements the structured, axis-aligned grids used by the
// conduction analyses: node coordinates, Q1 element connectivity (qua4 in
// 2D, hex8 in 3D) and the coarsening machinery consumed by the multilevel
// solver
package msh

import (
	"github.com/cpmech/gosl/chk"
)

// Grid holds a structured grid with one scalar degree of freedom per node.
// Connectivity is immutable after creation.
type Grid struct {

	// input
	Ndim int       // space dimension: 2 or 3
	Nn   []int     // [ndim] number of nodes along each axis
	Xlen []float64 // [ndim] domain extent along each axis

	// derived
	Ne     []int     // [ndim] number of elements along each axis
	Dx     []float64 // [ndim] element size along each axis
	Nnodes int       // total number of nodes
	Nelems int       // total number of elements
	Nen    int       // nodes per element: 4 (qua4) or 8 (hex8)

	// derived: coordinates and connectivity
	Coords [][]float64 // [ndim][nnodes] nodal coordinates
	Econ   [][]int     // [nelems][nen] element connectivity, counterclockwise
}

// NewGrid creates a structured grid
//  Input:
//   nn   -- number of nodes along each axis (len==2 or 3; all entries > 1)
//   xlen -- domain extent along each axis
func NewGrid(nn []int, xlen []float64) (o *Grid, err error) {

	// check
	ndim := len(nn)
	if ndim != 2 && ndim != 3 {
		return nil, chk.Err("grid must be 2D or 3D, got ndim=%d", ndim)
	}
	if len(xlen) != ndim {
		return nil, chk.Err("len(xlen)=%d must equal ndim=%d", len(xlen), ndim)
	}
	for i := 0; i < ndim; i++ {
		if nn[i] < 2 {
			return nil, chk.Err("need at least 2 nodes along axis %d, got %d", i, nn[i])
		}
		if xlen[i] <= 0 {
			return nil, chk.Err("domain extent along axis %d must be positive, got %g", i, xlen[i])
		}
	}

	// sizes
	o = &Grid{Ndim: ndim}
	o.Nn = make([]int, ndim)
	o.Ne = make([]int, ndim)
	o.Xlen = make([]float64, ndim)
	o.Dx = make([]float64, ndim)
	o.Nnodes = 1
	o.Nelems = 1
	o.Nen = 4
	if ndim == 3 {
		o.Nen = 8
	}
	for i := 0; i < ndim; i++ {
		o.Nn[i] = nn[i]
		o.Ne[i] = nn[i] - 1
		o.Xlen[i] = xlen[i]
		o.Nnodes *= o.Nn[i]
		o.Nelems *= o.Ne[i]
	}

	// uniform coordinates
	o.Coords = make([][]float64, ndim)
	for i := 0; i < ndim; i++ {
		o.Coords[i] = make([]float64, o.Nnodes)
	}
	nz := 1
	if ndim == 3 {
		nz = o.Nn[2]
	}
	h := make([]float64, 3)
	for i := 0; i < ndim; i++ {
		h[i] = xlen[i] / float64(o.Ne[i])
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < o.Nn[1]; j++ {
			for i := 0; i < o.Nn[0]; i++ {
				n := o.NodeIndex(i, j, k)
				o.Coords[0][n] = float64(i) * h[0]
				o.Coords[1][n] = float64(j) * h[1]
				if ndim == 3 {
					o.Coords[2][n] = float64(k) * h[2]
				}
			}
		}
	}

	// connectivity: node 0 at the lower-left(-front) corner of each cell,
	// counterclockwise, then repeating at +z for 3D
	o.Econ = make([][]int, o.Nelems)
	nez := 1
	if ndim == 3 {
		nez = o.Ne[2]
	}
	e := 0
	for k := 0; k < nez; k++ {
		for j := 0; j < o.Ne[1]; j++ {
			for i := 0; i < o.Ne[0]; i++ {
				con := make([]int, o.Nen)
				con[0] = o.NodeIndex(i, j, k)
				con[1] = o.NodeIndex(i+1, j, k)
				con[2] = o.NodeIndex(i+1, j+1, k)
				con[3] = o.NodeIndex(i, j+1, k)
				if ndim == 3 {
					con[4] = o.NodeIndex(i, j, k+1)
					con[5] = o.NodeIndex(i+1, j, k+1)
					con[6] = o.NodeIndex(i+1, j+1, k+1)
					con[7] = o.NodeIndex(i, j+1, k+1)
				}
				o.Econ[e] = con
				e++
			}
		}
	}

	// element size from the first element's corner nodes. uniform spacing
	// is a precondition of the structured grid, not validated here.
	o.Dx[0] = o.Coords[0][o.Econ[0][1]] - o.Coords[0][o.Econ[0][0]]
	o.Dx[1] = o.Coords[1][o.Econ[0][2]] - o.Coords[1][o.Econ[0][1]]
	if ndim == 3 {
		o.Dx[2] = o.Coords[2][o.Econ[0][4]] - o.Coords[2][o.Econ[0][0]]
	}
	return
}

// NodeIndex returns the global index of node (i,j,k); k is ignored in 2D
func (o *Grid) NodeIndex(i, j, k int) int {
	if o.Ndim == 2 {
		return i + j*o.Nn[0]
	}
	return i + j*o.Nn[0] + k*o.Nn[0]*o.Nn[1]
}

// ElemIndex returns the global index of element (i,j,k); k is ignored in 2D
func (o *Grid) ElemIndex(i, j, k int) int {
	if o.Ndim == 2 {
		return i + j*o.Ne[0]
	}
	return i + j*o.Ne[0] + k*o.Ne[0]*o.Ne[1]
}

// ShapeType returns the shape keyword corresponding to this grid
func (o *Grid) ShapeType() string {
	if o.Ndim == 2 {
		return "qua4"
	}
	return "hex8"
}

// ElemCoords returns the coordinates matrix x[ndim][nen] of one element
func (o *Grid) ElemCoords(e int) (x [][]float64) {
	x = make([][]float64, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		x[i] = make([]float64, o.Nen)
		for m, n := range o.Econ[e] {
			x[i][m] = o.Coords[i][n]
		}
	}
	return
}

// MinDx returns the smallest element edge length
func (o *Grid) MinDx() (min float64) {
	min = o.Dx[0]
	for i := 1; i < o.Ndim; i++ {
		if o.Dx[i] < min {
			min = o.Dx[i]
		}
	}
	return
}
