// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"github.com/cpmech/gosl/la"
)

// CalcConductM computes the conductivity matrix of one isoparametric element
// with unit isotropic conductivity:
//
//   ke = ∫ B^T * kcond * B dV = Σip w * det(J) * G * kcondᵀ * Gᵀ,  kcond = I
//
// The conductivity itself is left out on purpose: the caller scales ke with
// the interpolated material property afterwards. On a structured grid with
// identical element geometry this matrix is computed exactly once.
//  Input:
//   x[gndim][nverts] -- coordinates of element nodes, node 0 at the
//                       lower-left(-front) corner, counterclockwise
//   reduced          -- use reduced integration (single Gauss point)
//  Output:
//   ke[nverts][nverts] -- element conductivity matrix (symmetric)
func (o *Shape) CalcConductM(ke [][]float64, x [][]float64, reduced bool) (err error) {
	la.MatFill(ke, 0)
	for _, ip := range o.GetIps(reduced) {
		err = o.CalcAtIp(x, ip, true)
		if err != nil {
			return
		}
		weight := ip[3] * o.J
		for m := 0; m < o.Nverts; m++ {
			for n := 0; n < o.Nverts; n++ {
				for i := 0; i < o.Gndim; i++ {
					ke[m][n] += weight * o.G[m][i] * o.G[n][i]
				}
			}
		}
	}
	return
}
