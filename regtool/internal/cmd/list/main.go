// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package list

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/embeddedgo/regtools/regmap"
	"github.com/embeddedgo/regtools/regtool/internal/util"
)

const Descr = "list the registers of a device"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS]\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	dev := util.AddDeviceFlags(fs)
	all := fs.Bool("all", false, "list also the hidden registers")
	expand := fs.Bool("x", false, "list every element of register arrays")
	fs.Parse(args)
	if fs.NArg() != 0 {
		fs.Usage()
		os.Exit(1)
	}
	m, err := dev.Load()
	util.FatalErr("", err)
	Write(os.Stdout, m, *all, *expand)
}

// Write writes the register table of m to w. Arrays are listed as
// Name[Number] unless expand is true.
func Write(w io.Writer, m *regmap.Map, all, expand bool) {
	fmt.Fprintf(w, "%s: %s\n", m.Name(), m.Description())
	tw := new(tabwriter.Writer)
	tw.Init(w, 0, 0, 1, ' ', 0)
	row := func(d regmap.Descriptor, name string) {
		bits := strconv.Itoa(int(d.BitSize))
		if d.BitOffset != 0 {
			bits += "@" + strconv.Itoa(int(d.BitOffset))
		}
		fmt.Fprintf(
			tw, "  0x%03X\t%4s\t %s\t %s\t %s\n",
			d.Offset, bits, d.Mode, name, d.Description,
		)
	}
	if expand {
		for d := range m.All() {
			if all || !d.Hidden {
				row(d, d.Name)
			}
		}
	} else {
		for a := range m.Decls() {
			if !all && a.Hidden {
				continue
			}
			name := a.Name
			if a.Number != 0 {
				name += fmt.Sprintf("[%d]", a.Number)
			}
			row(a.Descriptor, name)
		}
	}
	tw.Flush()
}
