// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gosl/chk"

// Ipoint holds integration point data: natural coordinates and weight
//  2D: {r, s, 0, w}   3D: {r, s, t, w}
type Ipoint []float64

// constants
const GP = 0.577350269189626 // Gauss point coordinate for 2-point rule

// ips_qua4_4 is the full 2x2 integration rule for qua4
var ips_qua4_4 = []Ipoint{
	{-GP, -GP, 0, 1},
	{GP, -GP, 0, 1},
	{GP, GP, 0, 1},
	{-GP, GP, 0, 1},
}

// ips_qua4_1 is the reduced 1-point rule for qua4
var ips_qua4_1 = []Ipoint{
	{0, 0, 0, 4},
}

// ips_hex8_8 is the full 2x2x2 integration rule for hex8
var ips_hex8_8 = []Ipoint{
	{-GP, -GP, -GP, 1},
	{GP, -GP, -GP, 1},
	{GP, GP, -GP, 1},
	{-GP, GP, -GP, 1},
	{-GP, -GP, GP, 1},
	{GP, -GP, GP, 1},
	{GP, GP, GP, 1},
	{-GP, GP, GP, 1},
}

// ips_hex8_1 is the reduced 1-point rule for hex8
var ips_hex8_1 = []Ipoint{
	{0, 0, 0, 8},
}

// GetIps returns the integration points of a shape
//  Input:
//   reduced -- use the reduced (single point) rule instead of full integration
func (o *Shape) GetIps(reduced bool) []Ipoint {
	switch o.Type {
	case "qua4":
		if reduced {
			return ips_qua4_1
		}
		return ips_qua4_4
	case "hex8":
		if reduced {
			return ips_hex8_1
		}
		return ips_hex8_8
	}
	chk.Panic("cannot get integration points for shape %q", o.Type)
	return nil
}
