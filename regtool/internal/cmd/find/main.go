// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package find

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/embeddedgo/regtools/regmap"
	"github.com/embeddedgo/regtools/regtool/internal/util"
)

const Descr = "print the description of the named registers"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] NAME...\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	dev := util.AddDeviceFlags(fs)
	fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(1)
	}
	m, err := dev.Load()
	util.FatalErr("", err)
	if err := Write(os.Stdout, m, fs.Args()); err != nil {
		util.Warn("%v", err)
		os.Exit(1)
	}
}

// Write prints the descriptors of the named registers of m to w. It prints
// all the registers found and returns the errors for the names not found,
// joined.
func Write(w io.Writer, m *regmap.Map, names []string) error {
	var errs []error
	for _, name := range names {
		d, err := m.Find(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(
			w, "%s: offset=%#x bitSize=%d bitOffset=%d base=%s mode=%s hidden=%t reset=%s\n",
			d.Name, d.Offset, d.BitSize, d.BitOffset, d.Base, d.Mode, d.Hidden,
			d.Base.Format(d.Reset, d.BitSize),
		)
		if d.Description != "" {
			fmt.Fprintf(w, "  %s\n", d.Description)
		}
	}
	return errors.Join(errs...)
}
