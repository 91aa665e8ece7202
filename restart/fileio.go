// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package restart

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/flurry/ele"
)

// GetEncoder returns a new encoder; e.g. gob or json.
func GetEncoder(w goio.Writer, enctype string) utl.Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder; e.g. gob or json.
func GetDecoder(r goio.Reader, enctype string) utl.Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// SaveState writes the fast binary state snapshot: the simulation time
// followed by every live element's encoded solution, in cell-id order. The
// VTK writer (Write) remains the portable restart format of spec.md §6;
// this is the per-step backup companion.
func SaveState(fname, enctype string, eles []*ele.Element, time float64) {
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)
	if err := enc.Encode(time); err != nil {
		chk.Panic("restart.SaveState: cannot encode time\n%v", err)
	}
	for _, e := range eles {
		if e == nil {
			continue
		}
		if err := e.Encode(enc); err != nil {
			chk.Panic("restart.SaveState: %v", err)
		}
	}
	if err := os.WriteFile(fname, buf.Bytes(), 0644); err != nil {
		chk.Panic("restart.SaveState: cannot write %q: %v", fname, err)
	}
}

// LoadState reads a SaveState snapshot back onto the elements and returns
// the stored simulation time. An unopenable file is fatal, matching the
// restart-read contract of spec.md §7.
func LoadState(fname, enctype string, eles []*ele.Element) (time float64) {
	b, err := os.ReadFile(fname)
	if err != nil {
		chk.Panic("restart.LoadState: cannot open state file %q: %v", fname, err)
	}
	dec := GetDecoder(bytes.NewReader(b), enctype)
	if err := dec.Decode(&time); err != nil {
		chk.Panic("restart.LoadState: cannot decode time\n%v", err)
	}
	for _, e := range eles {
		if e == nil {
			continue
		}
		if err := e.Decode(dec); err != nil {
			chk.Panic("restart.LoadState: %v", err)
		}
	}
	return
}
