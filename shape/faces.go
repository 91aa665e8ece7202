// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "github.com/cpmech/gosl/chk"

// NFaces returns how many reference faces (edges in 2-D, faces in 3-D) an
// element type has.
func NFaces(t Type) int {
	switch t {
	case Quad:
		return 4
	case Hex:
		return 6
	}
	chk.Panic("shape.NFaces: unsupported element type %v", t)
	return 0
}

// quad edges, CCW starting at the bottom; normals are the constant
// reference outward normals (spec.md §4.1: "reference outward normals at
// flux points are constant and stored once per (type,p)").
var quadFaceNormal = [4][2]float64{
	{0, -1}, // bottom, r1 = -1
	{1, 0},  // right,  r0 = +1
	{0, 1},  // top,    r1 = +1
	{-1, 0}, // left,   r0 = -1
}

// hex faces; ordering follows the -x,+x,-y,+y,-z,+z convention.
var hexFaceNormal = [6][3]float64{
	{-1, 0, 0}, // r0 = -1
	{1, 0, 0},  // r0 = +1
	{0, -1, 0}, // r1 = -1
	{0, 1, 0},  // r1 = +1
	{0, 0, -1}, // r2 = -1
	{0, 0, 1},  // r2 = +1
}

// FaceNormal returns the constant reference outward normal of face faceID.
func FaceNormal(t Type, faceID int) []float64 {
	switch t {
	case Quad:
		n := quadFaceNormal[faceID]
		return []float64{n[0], n[1]}
	case Hex:
		n := hexFaceNormal[faceID]
		return []float64{n[0], n[1], n[2]}
	}
	chk.Panic("shape.FaceNormal: unsupported element type %v", t)
	return nil
}

// FacePoint maps a face-local coordinate s (length t.NDims()-1) on face
// faceID to the full reference-element coordinate r (length t.NDims()).
func FacePoint(t Type, faceID int, s []float64) []float64 {
	switch t {
	case Quad:
		switch faceID {
		case 0:
			return []float64{s[0], -1}
		case 1:
			return []float64{1, s[0]}
		case 2:
			return []float64{s[0], 1}
		case 3:
			return []float64{-1, s[0]}
		}
	case Hex:
		switch faceID {
		case 0:
			return []float64{-1, s[0], s[1]}
		case 1:
			return []float64{1, s[0], s[1]}
		case 2:
			return []float64{s[0], -1, s[1]}
		case 3:
			return []float64{s[0], 1, s[1]}
		case 4:
			return []float64{s[0], s[1], -1}
		case 5:
			return []float64{s[0], s[1], 1}
		}
	}
	chk.Panic("shape.FacePoint: unsupported element type %v / faceID %d", t, faceID)
	return nil
}
