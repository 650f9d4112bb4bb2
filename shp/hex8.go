// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// shape function of hex8
//
//           4________________7
//          /|               /|
//         / |              / |
//        /  |             /  |
//       /   |            /   |
//      5----|-----------6    |
//      |    |           |    |
//      |    0___________|____3
//      |   /            |   /
//      |  /             |  /
//      | /              | /
//      |/               |/
//      1----------------2
//
// Nodes 0..3 run counterclockwise on the bottom face; 4..7 repeat at +t.
func Hex8(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	s, t, u := r[0], r[1], r[2]

	S[0] = (1.0 - s) * (1.0 - t) * (1.0 - u) / 8.0
	S[1] = (1.0 + s) * (1.0 - t) * (1.0 - u) / 8.0
	S[2] = (1.0 + s) * (1.0 + t) * (1.0 - u) / 8.0
	S[3] = (1.0 - s) * (1.0 + t) * (1.0 - u) / 8.0
	S[4] = (1.0 - s) * (1.0 - t) * (1.0 + u) / 8.0
	S[5] = (1.0 + s) * (1.0 - t) * (1.0 + u) / 8.0
	S[6] = (1.0 + s) * (1.0 + t) * (1.0 + u) / 8.0
	S[7] = (1.0 - s) * (1.0 + t) * (1.0 + u) / 8.0

	if !derivs {
		return
	}

	dSdR[0][0] = -(1.0 - t) * (1.0 - u) / 8.0
	dSdR[1][0] = (1.0 - t) * (1.0 - u) / 8.0
	dSdR[2][0] = (1.0 + t) * (1.0 - u) / 8.0
	dSdR[3][0] = -(1.0 + t) * (1.0 - u) / 8.0
	dSdR[4][0] = -(1.0 - t) * (1.0 + u) / 8.0
	dSdR[5][0] = (1.0 - t) * (1.0 + u) / 8.0
	dSdR[6][0] = (1.0 + t) * (1.0 + u) / 8.0
	dSdR[7][0] = -(1.0 + t) * (1.0 + u) / 8.0

	dSdR[0][1] = -(1.0 - s) * (1.0 - u) / 8.0
	dSdR[1][1] = -(1.0 + s) * (1.0 - u) / 8.0
	dSdR[2][1] = (1.0 + s) * (1.0 - u) / 8.0
	dSdR[3][1] = (1.0 - s) * (1.0 - u) / 8.0
	dSdR[4][1] = -(1.0 - s) * (1.0 + u) / 8.0
	dSdR[5][1] = -(1.0 + s) * (1.0 + u) / 8.0
	dSdR[6][1] = (1.0 + s) * (1.0 + u) / 8.0
	dSdR[7][1] = (1.0 - s) * (1.0 + u) / 8.0

	dSdR[0][2] = -(1.0 - s) * (1.0 - t) / 8.0
	dSdR[1][2] = -(1.0 + s) * (1.0 - t) / 8.0
	dSdR[2][2] = -(1.0 + s) * (1.0 + t) / 8.0
	dSdR[3][2] = -(1.0 - s) * (1.0 + t) / 8.0
	dSdR[4][2] = (1.0 - s) * (1.0 - t) / 8.0
	dSdR[5][2] = (1.0 + s) * (1.0 - t) / 8.0
	dSdR[6][2] = (1.0 + s) * (1.0 + t) / 8.0
	dSdR[7][2] = (1.0 - s) * (1.0 + t) / 8.0
}

func init() {
	natCoords := [][]float64{
		{-1, 1, 1, -1, -1, 1, 1, -1},
		{-1, -1, 1, 1, -1, -1, 1, 1},
		{-1, -1, -1, -1, 1, 1, 1, 1},
	}
	register("hex8", 3, 8, natCoords, Hex8)
}
