// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"
)

func Warn(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
}

func Fatal(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

// FatalErr prints an error description and exits the program if the
// err != nil.
func FatalErr(what string, err error) {
	if err == nil {
		return
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	os.Stderr.WriteString(s)
	os.Exit(1)
}

// ErrNoModule is returned by Module if there is no go.mod file in the
// directory or any of its parents.
var ErrNoModule = errors.New("go.mod file not found in directory or any parent directory")

// Module returns the import path of the package in dir, inferred from the
// closest go.mod file.
func Module(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for rel := ""; ; {
		gomod := filepath.Join(dir, "go.mod")
		data, err := os.ReadFile(gomod)
		if err == nil {
			mod := modfile.ModulePath(data)
			if mod == "" {
				return "", errors.New("there is no module directive in " + gomod)
			}
			return strings.TrimSuffix(mod+"/"+filepath.ToSlash(rel), "/"), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoModule
		}
		rel = filepath.Join(filepath.Base(dir), rel)
		dir = parent
	}
}

// OutFile infers the name of the output file from the device name if name
// is an empty string.
func OutFile(name, dev, suffix string) string {
	if name != "" {
		return name
	}
	return strings.ToLower(dev) + suffix
}

// ParseUint parses an unsigned integer in any base accepted by Go literals.
func ParseUint(s string, bitSize int) (uint64, error) {
	return strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 0, bitSize)
}
