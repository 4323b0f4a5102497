// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/embeddedgo/regtools/regmap"
	"github.com/embeddedgo/regtools/regtool/internal/util"
	"github.com/embeddedgo/regtools/svd"
)

const Descr = "write the SVD description of a device"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] [SVD]\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	dev := util.AddDeviceFlags(fs)
	base := fs.String("base", "0", "base `ADDR`ess of the peripheral")
	vendor := fs.String("vendor", "", "vendor name")
	fs.Parse(args)
	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(1)
	}
	addr, err := util.ParseUint(*base, 64)
	util.FatalErr("base", err)
	m, err := dev.Load()
	util.FatalErr("", err)
	w := io.Writer(os.Stdout)
	if name := fs.Arg(0); name != "" {
		f, err := os.Create(name)
		util.FatalErr("", err)
		defer func() { util.FatalErr("", f.Close()) }()
		w = f
	}
	util.FatalErr("svd", svd.Encode(w, Device(m, addr, *vendor)))
}

// Device returns an SVD device with one peripheral: m located at base.
func Device(m *regmap.Map, base uint64, vendor string) *svd.Device {
	d := &svd.Device{
		Name:            m.Name(),
		Version:         "1.0",
		Description:     m.Description(),
		AddressUnitBits: 8,
		Width:           regmap.WordBits,
		Peripherals:     []*svd.Peripheral{m.Peripheral(base)},
	}
	if vendor != "" {
		d.Vendor = svd.Str(vendor)
	}
	return d
}
