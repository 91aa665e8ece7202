// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Encode encodes the element's solution state (the per-step snapshot the
// fast binary restart path saves; the VTK writer remains the portable,
// spec-mandated format).
func (o *Element) Encode(enc utl.Encoder) (err error) {
	if err = enc.Encode(o.USpts); err != nil {
		return chk.Err("cannot encode element %d USpts\n%v", o.ID, err)
	}
	return
}

// Decode decodes the element's solution state.
func (o *Element) Decode(dec utl.Decoder) (err error) {
	var u [][]float64
	if err = dec.Decode(&u); err != nil {
		return chk.Err("cannot decode element %d USpts\n%v", o.ID, err)
	}
	if len(u) != o.nSpts {
		return chk.Err("element %d state has %d solution points; expected %d", o.ID, len(u), o.nSpts)
	}
	for i, row := range u {
		copy(o.USpts[i], row)
	}
	return
}
