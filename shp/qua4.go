// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// shape function of qua4
//
//        3 -------- 2
//        |     s    |
//        |     |    |
//        |     +--r |
//        |          |
//        |          |
//        0 -------- 1
//
// Node 0 is at the lower-left corner; the others proceed counterclockwise.
func Qua4(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	s, t := r[0], r[1]

	S[0] = (1.0 - s) * (1.0 - t) / 4.0
	S[1] = (1.0 + s) * (1.0 - t) / 4.0
	S[2] = (1.0 + s) * (1.0 + t) / 4.0
	S[3] = (1.0 - s) * (1.0 + t) / 4.0

	if !derivs {
		return
	}

	dSdR[0][0] = -(1.0 - t) / 4.0
	dSdR[1][0] = (1.0 - t) / 4.0
	dSdR[2][0] = (1.0 + t) / 4.0
	dSdR[3][0] = -(1.0 + t) / 4.0

	dSdR[0][1] = -(1.0 - s) / 4.0
	dSdR[1][1] = -(1.0 + s) / 4.0
	dSdR[2][1] = (1.0 + s) / 4.0
	dSdR[3][1] = (1.0 - s) / 4.0
}

func init() {
	natCoords := [][]float64{
		{-1, 1, 1, -1},
		{-1, -1, 1, 1},
	}
	register("qua4", 2, 4, natCoords, Qua4)
}
