// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines for the structured-grid
// elements used in conduction analyses: qua4 (2D) and hex8 (3D)
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type      string      // name; e.g. "qua4"
	Func      ShpFunc     // shape/derivs function callback function
	Gndim     int         // geometry dimension; e.g. "hex8" => 3
	Nverts    int         // number of vertices in cell; e.g. "qua4" => 4
	NatCoords [][]float64 // natural coordinates [gndim][nverts]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdR
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: returns nil if geoType is unavailable
func Get(geoType string) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	return s
}

// CalcAtIp calculates volume data such as S and G at integration point ip
//  Input:
//   x[ndim][nverts] -- coordinates matrix of element
//   ip              -- integration point (or natural coordinates)
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, ip, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	o.J, err = la.MatInv(o.DRdx, o.DxdR, MINDET)
	if err != nil {
		return chk.Err("inversion of element Jacobian failed:\n%v", err)
	}

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	la.MatMul(o.G, 1, o.DSdR, o.DRdx)
	return
}

// register adds a new shape to the factory and allocates its scratchpad
func register(name string, gndim, nverts int, natCoords [][]float64, fcn ShpFunc) {
	if _, ok := factory[name]; ok {
		chk.Panic("shape %q already registered", name)
	}
	s := &Shape{
		Type:      name,
		Func:      fcn,
		Gndim:     gndim,
		Nverts:    nverts,
		NatCoords: natCoords,
	}
	s.S = make([]float64, nverts)
	s.DSdR = la.MatAlloc(nverts, gndim)
	s.DxdR = la.MatAlloc(gndim, gndim)
	s.DRdx = la.MatAlloc(gndim, gndim)
	s.G = la.MatAlloc(nverts, gndim)
	factory[name] = s
}
