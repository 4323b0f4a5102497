// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regmap

import (
	"strings"

	"github.com/embeddedgo/regtools/svd"
)

// HiddenGroup is the SVD alternateGroup used to mark hidden registers.
const HiddenGroup = "hidden"

var svdAccess = [...]string{RW: "read-write", RO: "read-only", WO: "write-only"}

// Peripheral returns the SVD description of m located at base. Every array
// is described by one dim register named Name[%s].
func (m *Map) Peripheral(base uint64) *svd.Peripheral {
	p := &svd.Peripheral{
		Name:        m.name,
		BaseAddress: svd.Uint64(base),
		RegisterPropertiesGroup: &svd.RegisterPropertiesGroup{
			Size: ptr(svd.Uint(WordBits)),
		},
	}
	if m.descr != "" {
		p.Description = svd.Str(m.descr)
	}
	if m.size != 0 {
		p.AddressBlock = []*svd.AddressBlock{
			{Size: svd.Uint64(m.size), Usage: "registers"},
		}
	}
	for _, a := range m.decls {
		r := &svd.Register{
			Name:          a.Name,
			AddressOffset: svd.Uint64(a.Offset),
			RegisterPropertiesGroup: &svd.RegisterPropertiesGroup{
				Access:     svd.Str(svdAccess[a.Mode]),
				ResetValue: ptr(svd.Uint64(a.Reset) << a.BitOffset),
			},
		}
		if a.array {
			r.Name += "[%s]"
			r.Dim = svd.Uint(a.Number)
			r.DimIncrement = svd.Uint64(a.Stride)
		}
		if a.Description != "" {
			r.Description = svd.Str(a.Description)
		}
		if a.Hidden {
			r.AlternateGroup = svd.Str(HiddenGroup)
		}
		switch a.Base {
		case UInt:
			r.DataType = svd.Str("uint32_t")
		case Int:
			r.DataType = svd.Str("int32_t")
		}
		if a.BitSize != WordBits {
			r.Fields = []*svd.Field{{
				Name: a.Name,
				BitRangeOffsetWidth: &svd.BitRangeOffsetWidth{
					BitOffset: svd.Uint(a.BitOffset),
					BitWidth:  ptr(svd.Uint(a.BitSize)),
				},
			}}
		}
		p.Registers = append(p.Registers, r)
	}
	return p
}

// FromPeripheral builds a map from the SVD description of a peripheral. The
// width is the default register size used when p does not specify one.
// Clusters are flattened (one level) and their register names prefixed with
// the cluster name.
func FromPeripheral(p *svd.Peripheral, width uint) (*Map, error) {
	if p.RegisterPropertiesGroup != nil && p.Size != nil {
		width = uint(*p.Size)
	}
	var descr string
	if p.Description != nil {
		descr = *p.Description
	}
	var size uint64
	for _, ab := range p.AddressBlock {
		size = max(size, uint64(ab.Offset+ab.Size))
	}
	b := New(p.Name, descr, size)
	if err := addRegs(b, "", 0, width, p.Registers); err != nil {
		return nil, err
	}
	for _, sc := range p.Clusters {
		if len(sc.Clusters) > 0 {
			return nil, &InvalidFieldError{Name: sc.Name, Reason: "cluster in cluster not supported"}
		}
		w := width
		if sc.RegisterPropertiesGroup != nil && sc.Size != nil {
			w = uint(*sc.Size)
		}
		err := addRegs(b, sc.Name, uint64(sc.AddressOffset), w, sc.Registers)
		if err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func addRegs(b *Builder, cname string, offset uint64, width uint, srs []*svd.Register) error {
	for _, sr := range srs {
		d := Descriptor{
			Name:    sr.Name,
			Offset:  offset + uint64(sr.AddressOffset),
			BitSize: width,
		}
		if sr.DerivedFrom != nil {
			return &InvalidFieldError{Name: d.Name, Reason: "derived registers not supported"}
		}
		if cname != "" {
			d.Name = cname + "_" + d.Name
		}
		if sr.Description != nil {
			d.Description = *sr.Description
		}
		if sr.AlternateGroup != nil && *sr.AlternateGroup == HiddenGroup {
			d.Hidden = true
		}
		if sr.DataType != nil && strings.HasPrefix(*sr.DataType, "int") {
			d.Base = Int
		}
		var reset uint64
		if rp := sr.RegisterPropertiesGroup; rp != nil {
			if rp.Size != nil {
				d.BitSize = uint(*rp.Size)
			}
			if rp.Access != nil {
				mode, err := ParseMode(*rp.Access)
				if err != nil {
					return err
				}
				d.Mode = mode
			}
			if rp.ResetValue != nil {
				reset = uint64(*rp.ResetValue)
			}
		}
		switch len(sr.Fields) {
		case 0:
		case 1:
			if err := applyField(&d, sr.Fields[0]); err != nil {
				return err
			}
		default:
			return &InvalidFieldError{Name: d.Name, Reason: "multi-field registers not supported"}
		}
		d.Reset = uint32(reset >> d.BitOffset)
		if d.BitSize < WordBits {
			d.Reset &= 1<<d.BitSize - 1
		}
		switch {
		case sr.Dim == 0:
			b.Add(d)
		case strings.HasSuffix(d.Name, "[%s]") && sr.DimIndex == nil:
			d.Name = d.Name[:len(d.Name)-4]
			b.AddArray(Array{
				Descriptor: d,
				Number:     uint(sr.Dim),
				Stride:     uint64(sr.DimIncrement),
			})
		default:
			return &InvalidFieldError{Name: d.Name, Reason: "unsupported dim register"}
		}
	}
	return nil
}

func applyField(d *Descriptor, sf *svd.Field) error {
	switch {
	case sf.BitRangeOffsetWidth != nil:
		d.BitOffset = uint(sf.BitOffset)
		d.BitSize = 1
		if w := sf.BitWidth; w != nil {
			d.BitSize = uint(*w)
		}
	case sf.BitRangeLSBMSB != nil:
		if sf.MSB < sf.LSB {
			return &InvalidFieldError{Name: d.Name, Reason: "msb < lsb"}
		}
		d.BitOffset = uint(sf.LSB)
		d.BitSize = uint(sf.MSB-sf.LSB) + 1
	default:
		return &InvalidFieldError{Name: d.Name, Reason: "field bit range not supported"}
	}
	if sf.Access != nil {
		mode, err := ParseMode(*sf.Access)
		if err != nil {
			return err
		}
		d.Mode = mode
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
