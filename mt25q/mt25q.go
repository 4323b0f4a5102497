// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mt25q describes the registers of the AXI-Lite controller of the
// Micron N25Q and MT25Q serial PROMs.
//
// Registers:
//  0x000 32  Test           Scratch Pad tester register
//  0x004  1  Addr32BitMode  Enable 32-bit PROM mode
//  0x008 32  Addr           Address Register
//  0x00C 32  Cmd            Command Register
//  0x200 32  Data[64]       Data Register Array
package mt25q

import (
	"sync"

	"github.com/embeddedgo/regtools/regmap"
)

const (
	Name  = "AxiMicronN25Q"
	Descr = "AXI-Lite Micron N25Q and Micron MT25Q PROM"

	// Size is the size of the controller address space.
	Size = 0x400

	DataLen    = 64 // number of registers in the Data array
	DataStride = 4
)

// Map returns the register map of the controller. All calls return the same
// immutable map.
var Map = sync.OnceValue(func() *regmap.Map {
	m, err := Builder().Build()
	if err != nil {
		panic("mt25q: " + err.Error())
	}
	return m
})

// Builder returns a builder that holds all register declarations of the
// controller. It can be used to extend the map of a derived device.
func Builder() *regmap.Builder {
	return regmap.New(Name, Descr, Size).
		Add(regmap.Descriptor{
			Name:        "Test",
			Description: "Scratch Pad tester register",
			Offset:      0x00,
			BitSize:     32,
			Base:        regmap.UInt,
			Mode:        regmap.RW,
		}).
		Add(regmap.Descriptor{
			Name:        "Addr32BitMode",
			Description: "Enable 32-bit PROM mode",
			Offset:      0x04,
			BitSize:     1,
			Base:        regmap.UInt,
			Mode:        regmap.RW,
			Hidden:      true,
		}).
		Add(regmap.Descriptor{
			Name:        "Addr",
			Description: "Address Register",
			Offset:      0x08,
			BitSize:     32,
			Base:        regmap.UInt,
			Mode:        regmap.RW,
			Hidden:      true,
		}).
		Add(regmap.Descriptor{
			Name:        "Cmd",
			Description: "Command Register",
			Offset:      0x0C,
			BitSize:     32,
			Base:        regmap.UInt,
			Mode:        regmap.RW,
			Hidden:      true,
		}).
		AddArray(regmap.Array{
			Descriptor: regmap.Descriptor{
				Name:        "Data",
				Description: "Data Register Array",
				Offset:      0x200,
				BitSize:     32,
				Base:        regmap.UInt,
				Mode:        regmap.RW,
				Hidden:      true,
			},
			Number: DataLen,
			Stride: DataStride,
		})
}

// DataName returns the name of the i-th register of the Data array.
func DataName(i int) string { return regmap.ElemName("Data", i) }
