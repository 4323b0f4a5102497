// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/embeddedgo/regtools/regmap"
	"github.com/embeddedgo/regtools/regtool/internal/util"
)

const Descr = "generate Go constants describing the registers of devices"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] [DEV...]\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	svdFile := fs.String("svd", "", "read the register maps from the SVD `FILE`")
	dir := fs.String("o", ".", "output `DIR`ectory")
	pkg := fs.String("pkg", "", "package name (default: inferred from the output directory)")
	prefix := fs.Bool(
		"prefix", false,
		"prefix the constant names with the device name (default if more than one DEV)",
	)
	fs.Parse(args)
	util.FatalErr("", os.MkdirAll(*dir, 0o755))
	importPath, err := util.Module(*dir)
	if err != nil {
		util.Warn("gen: %v", err)
	}
	o := &Options{
		SVD:    *svdFile,
		Dir:    *dir,
		Pkg:    *pkg,
		Import: importPath,
		Prefix: *prefix,
	}
	util.FatalErr("gen", Generate(o, fs.Args()))
}

// Options control Generate.
type Options struct {
	SVD    string // SVD file with the devices, built-in devices if empty
	Dir    string // output directory
	Pkg    string // package name, PackageName(Dir) if empty
	Import string // import path mentioned in the package comment
	Prefix bool   // prefix the constants with the device name
}

// Generate writes one Go source file per device to o.Dir. The files are
// generated concurrently. No devs means the default device. The constant
// names are always prefixed if there is more than one device.
func Generate(o *Options, devs []string) error {
	if len(devs) == 0 {
		devs = []string{""}
	}
	prefix := o.Prefix || len(devs) > 1
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return err
	}
	pkg := o.Pkg
	if pkg == "" {
		pkg = PackageName(o.Dir)
	}
	var g errgroup.Group
	for _, dev := range devs {
		g.Go(func() error {
			m, err := util.LoadDevice(o.SVD, dev)
			if err != nil {
				return err
			}
			f := &File{Pkg: pkg, Import: o.Import, Map: m}
			if prefix {
				f.Prefix = Ident(m.Name())
			}
			src, err := f.Source()
			if err != nil {
				return fmt.Errorf("%s: %w", m.Name(), err)
			}
			name := filepath.Join(o.Dir, strings.ToLower(Ident(m.Name()))+".go")
			return os.WriteFile(name, src, 0o644)
		})
	}
	return g.Wait()
}

// PackageName returns the name of the Go package in dir or, if there is no
// package there, the name derived from the base name of dir.
func PackageName(dir string) string {
	cfg := &packages.Config{Mode: packages.NeedName, Dir: dir}
	pkgs, err := packages.Load(cfg, ".")
	if err == nil && len(pkgs) == 1 && pkgs[0].Name != "" && len(pkgs[0].Errors) == 0 {
		return pkgs[0].Name
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	name := strings.ToLower(Ident(filepath.Base(abs)))
	if name == "" || name == "_" {
		name = "regs"
	}
	return name
}

// Ident converts s to a valid Go identifier.
func Ident(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_':
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
		default:
			r = '_'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Decl is a register declaration as seen by the template.
type Decl struct {
	regmap.Array
	Ident string
}

func (d Decl) Field() bool { return d.BitSize != regmap.WordBits }
