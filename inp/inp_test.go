// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_config01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config01: decode, defaults and derived values")

	data := `{
		"equation": 1, "order": 3, "nDims": 2,
		"timeType": 4, "dtType": 0, "dt": 0.001, "iterMax": 100,
		"meshType": 1,
		"box": {"nx": 20, "ny": 20, "xmin": -5, "xmax": 5, "ymin": -5, "ymax": 5,
		        "tagXmin": "periodic", "tagXmax": "periodic",
		        "tagYmin": "periodic", "tagYmax": "periodic"},
		"icType": 1, "cfl": 0.05,
		"fluid": {"rhoBound": 1, "uBound": 0.5, "pBound": 1}
	}`
	fname := filepath.Join(tst.TempDir(), "vortex.flr")
	if err := os.WriteFile(fname, []byte(data), 0644); err != nil {
		tst.Fatalf("cannot write fixture: %v", err)
	}

	cfg := ReadConfig(fname)
	chk.IntAssert(cfg.Equation, EqEulerNS)
	chk.IntAssert(cfg.Order, 3)
	chk.IntAssert(cfg.NRKStages(), 4)
	chk.Float64(tst, "default gamma", 1e-15, cfg.Fluid.Gamma, 1.4)
	chk.StrAssert(cfg.SptsTypeQuad, "Legendre")
	chk.IntAssert(cfg.ResType, 2)
	chk.Float64(tst, "box extent", 1e-15, cfg.Box.Xmax-cfg.Box.Xmin, 10)
}

func Test_config02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config02: out-of-range options are fatal")

	cfg := &Config{Equation: 7}
	cfg.SetDefaults()
	defer func() {
		if recover() == nil {
			tst.Errorf("expected Validate to panic on equation=7")
		}
	}()
	cfg.Validate()
}

func Test_config03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config03: an unopenable file is fatal")

	defer func() {
		if recover() == nil {
			tst.Errorf("expected ReadConfig to panic on a missing file")
		}
	}()
	ReadConfig("/no/such/dir/missing.flr")
}
