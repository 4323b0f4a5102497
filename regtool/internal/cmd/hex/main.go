// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/embeddedgo/regtools/regfile"
	"github.com/embeddedgo/regtools/regtool/internal/util"
)

const Descr = "print and save the register values in the Intel HEX format"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [%s]\nOptions:\n",
			cmd, strings.ToUpper(cmd),
		)
		fs.PrintDefaults()
	}
	dev := util.AddDeviceFlags(fs)
	in := fs.String("in", "", "load the register values from the Intel HEX `FILE`")
	set := fs.String("set", "", "write registers: `NAME1=VAL1[,NAME2=VAL2[,...]]`")
	base := fs.String("base", "0", "address of the first register in the HEX file")
	quiet := fs.Bool("quiet", false, "do not print the register values")
	fs.Parse(args)
	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(1)
	}
	addr, err := util.ParseUint(*base, 32)
	util.FatalErr("base", err)
	m, err := dev.Load()
	util.FatalErr("", err)
	rf, err := regfile.New(m)
	util.FatalErr("", err)
	rf.SetBase(uint32(addr))
	if *in != "" {
		f, err := os.Open(*in)
		util.FatalErr("", err)
		err = rf.ReadHex(f)
		f.Close()
		util.FatalErr(*in, err)
	}
	if *set != "" {
		util.FatalErr("set", Set(rf, *set))
	}
	if !*quiet {
		Print(os.Stdout, rf)
	}
	out := util.OutFile(fs.Arg(0), m.Name(), ".hex")
	of, err := os.Create(out)
	util.FatalErr("", err)
	defer of.Close()
	util.FatalErr("dumpintelhex", rf.WriteHex(of))
}

// Set performs the writes described by list: NAME=VALUE pairs separated by
// commas.
func Set(rf *regfile.File, list string) error {
	for _, nv := range strings.Split(list, ",") {
		name, val, ok := strings.Cut(nv, "=")
		if !ok {
			return fmt.Errorf("bad NAME=VALUE pair: %s", nv)
		}
		v, err := util.ParseUint(strings.TrimSpace(val), 32)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := rf.Write(strings.TrimSpace(name), uint32(v)); err != nil {
			return err
		}
	}
	return nil
}

// Print writes the values of all readable registers of rf to w.
func Print(w io.Writer, rf *regfile.File) {
	tw := new(tabwriter.Writer)
	tw.Init(w, 0, 0, 1, ' ', 0)
	for d := range rf.Map().All() {
		if !d.Mode.CanRead() {
			continue
		}
		v, err := rf.Read(d.Name)
		if err != nil {
			util.Warn("%v", err)
			continue
		}
		fmt.Fprintf(tw, "0x%03X\t %s\t %s\n", d.Offset, d.Name, d.Base.Format(v, d.BitSize))
	}
	tw.Flush()
}
