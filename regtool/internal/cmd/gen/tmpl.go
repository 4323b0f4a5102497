// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/embeddedgo/regtools/regmap"
)

const tmplText = `// Code generated by regtool gen; DO NOT EDIT.

// Package {{.Pkg}} provides the register offsets of the {{.Map.Name}} peripheral.
{{- if .Map.Description}}
//
// {{line .Map.Description}}
{{- end}}
{{- if .Import}}
//
// Import: {{.Import}}
{{- end}}
package {{.Pkg}}

const (
{{- range .Decls}}
	{{.Ident}} uintptr = {{printf "0x%03X" .Offset}}{{if .Description}} // {{line .Description}}{{end}}
{{- end}}
)
{{- if .Arrays}}

const (
{{- range .Arrays}}
	{{.Ident}}Len    = {{.Number}}
	{{.Ident}}Stride = {{.Stride}}
{{- end}}
)
{{- end}}
{{- if .Fields}}

const (
{{- range .Fields}}
	{{.Ident}}Mask uint32 = {{printf "%#x" .Mask}}
	{{.Ident}}Pos         = {{.BitOffset}}
{{- end}}
)
{{- end}}
`

var tmpl = template.Must(
	template.New("regs").Funcs(template.FuncMap{"line": oneLine}).Parse(tmplText),
)

// File describes one generated source file.
type File struct {
	Pkg    string
	Import string
	Prefix string
	Map    *regmap.Map
}

func (f *File) Decls() []Decl {
	var ds []Decl
	for a := range f.Map.Decls() {
		ds = append(ds, Decl{a, f.Prefix + Ident(a.Name)})
	}
	return ds
}

func (f *File) Arrays() []Decl {
	var ds []Decl
	for _, d := range f.Decls() {
		if d.Number != 0 {
			ds = append(ds, d)
		}
	}
	return ds
}

func (f *File) Fields() []Decl {
	var ds []Decl
	for _, d := range f.Decls() {
		if d.Field() {
			ds = append(ds, d)
		}
	}
	return ds
}

// Source returns the gofmt-ed source of f. It fails if two registers map to
// the same constant name.
func (f *File) Source() ([]byte, error) {
	if err := f.checkNames(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, f); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return src, nil
}

func (f *File) checkNames() error {
	seen := make(map[string]string)
	add := func(ident, reg string) error {
		if other, ok := seen[ident]; ok {
			return fmt.Errorf("constant %s generated for both %s and %s", ident, other, reg)
		}
		seen[ident] = reg
		return nil
	}
	for _, d := range f.Decls() {
		idents := []string{d.Ident}
		if d.Number != 0 {
			idents = append(idents, d.Ident+"Len", d.Ident+"Stride")
		}
		if d.Field() {
			idents = append(idents, d.Ident+"Mask", d.Ident+"Pos")
		}
		for _, id := range idents {
			if err := add(id, d.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
