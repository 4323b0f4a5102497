// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Regtool inspects register maps of memory-mapped peripherals and produces
// SVD descriptions, Go constants and Intel HEX register snapshots.
//
// Usage:
//
//	regtool COMMAND [ARGUMENTS]
//
// The commands are:
//
//	list  print the register table of a device, hidden registers with -all
//	find  print the descriptors of the named registers, exit 1 if any is unknown
//	svd   write a CMSIS-SVD file describing the device as a peripheral at -base
//	gen   generate Go constants (offsets, array lengths, field masks) for devices
//	hex   print the register values and save them as an Intel HEX snapshot
//
// Every command works on the built-in device selected with -dev (default
// AxiMicronN25Q) or on a peripheral read from the CMSIS-SVD file given with
// -svd. Run regtool COMMAND -h for the options of a command.
package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/embeddedgo/regtools/regtool/internal/cmd/find"
	"github.com/embeddedgo/regtools/regtool/internal/cmd/gen"
	"github.com/embeddedgo/regtools/regtool/internal/cmd/hex"
	"github.com/embeddedgo/regtools/regtool/internal/cmd/list"
	"github.com/embeddedgo/regtools/regtool/internal/cmd/svd"
)

type tool struct {
	descr string
	main  func(cmd string, args []string)
}

var tools = map[string]tool{
	"find": {find.Descr, find.Main},
	"gen":  {gen.Descr, gen.Main},
	"hex":  {hex.Descr, hex.Main},
	"list": {list.Descr, list.Main},
	"svd":  {svd.Descr, svd.Main},
}

func printToolList() {
	names := slices.Sorted(maps.Keys(tools))
	maxLen := 0
	for _, k := range names {
		if maxLen < len(k) {
			maxLen = len(k)
		}
	}
	uw := os.Stderr
	uw.WriteString("Usage:\n  regtool COMMAND [ARGUMENTS]\n\n")
	uw.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %*s  %s\n", maxLen, name, tools[name].descr)
	}
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		printToolList()
		return
	}
	tool, ok := tools[os.Args[1]]
	if !ok {
		printToolList()
		os.Exit(1)
	}
	tool.main(os.Args[1], os.Args[2:])
}
