// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/embeddedgo/regtools/mt25q"
	"github.com/embeddedgo/regtools/regmap"
	"github.com/embeddedgo/regtools/svd"
)

// Devices contains the built-in register maps.
var Devices = map[string]func() *regmap.Map{
	mt25q.Name: mt25q.Map,
}

const defaultDevice = mt25q.Name

// DeviceFlags selects the register map a command works on.
type DeviceFlags struct {
	Dev string
	SVD string
}

// AddDeviceFlags defines the -dev and -svd flags in fs.
func AddDeviceFlags(fs *flag.FlagSet) *DeviceFlags {
	df := new(DeviceFlags)
	fs.StringVar(
		&df.Dev, "dev", "",
		"select the device (peripheral name if -svd is used), built-in:\n"+
			strings.Join(slices.Sorted(maps.Keys(Devices)), "\n")+
			"\n(default "+defaultDevice+")",
	)
	fs.StringVar(&df.SVD, "svd", "", "read the register map from the SVD `FILE`")
	return df
}

// Load returns the register map selected by the flags.
func (df *DeviceFlags) Load() (*regmap.Map, error) {
	return LoadDevice(df.SVD, df.Dev)
}

// LoadDevice returns the built-in device named dev if svdFile is empty.
// Otherwise it reads svdFile and returns the map of the peripheral named
// dev, which can be empty if the file describes only one peripheral.
func LoadDevice(svdFile, dev string) (*regmap.Map, error) {
	if svdFile == "" {
		if dev == "" {
			dev = defaultDevice
		}
		m := Devices[dev]
		if m == nil {
			return nil, fmt.Errorf("unknown device: %s", dev)
		}
		return m(), nil
	}
	f, err := os.Open(svdFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := svd.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", svdFile, err)
	}
	width := uint(d.Width)
	if d.RegisterPropertiesGroup != nil && d.Size != nil {
		width = uint(*d.Size)
	}
	var p *svd.Peripheral
	switch {
	case dev != "":
		for _, sp := range d.Peripherals {
			if sp.Name == dev {
				p = sp
				break
			}
		}
	case len(d.Peripherals) == 1:
		p = d.Peripherals[0]
	default:
		return nil, fmt.Errorf("%s: %d peripherals, select one with -dev", svdFile, len(d.Peripherals))
	}
	if p == nil {
		return nil, fmt.Errorf("%s: no peripheral %s", svdFile, dev)
	}
	if p.DerivedFrom != nil {
		return nil, fmt.Errorf("%s: derived peripherals not supported: %s", svdFile, p.Name)
	}
	m, err := regmap.FromPeripheral(p, width)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", svdFile, err)
	}
	return m, nil
}
