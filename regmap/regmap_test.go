// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regmap

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
)

func testMap(t *testing.T) *Map {
	t.Helper()
	m, err := New("dev", "test device", 0x400).
		Add(Descriptor{Name: "Ctrl", Offset: 0x00, BitSize: 32}).
		Add(Descriptor{Name: "Flag", Offset: 0x04, BitSize: 1, BitOffset: 3, Hidden: true}).
		AddArray(Array{
			Descriptor: Descriptor{Name: "Data", Offset: 0x200, BitSize: 32},
			Number:     64,
			Stride:     4,
		}).
		Add(Descriptor{Name: "Status", Offset: 0x10, BitSize: 8, Mode: RO}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestFindEveryName(t *testing.T) {
	m := testMap(t)
	if m.Len() != 3+64 {
		t.Fatalf("Len: got %d, want %d", m.Len(), 3+64)
	}
	for d := range m.All() {
		f, err := m.Find(d.Name)
		if err != nil {
			t.Fatal(err)
		}
		if f != d {
			t.Errorf("Find(%q): got %+v, want %+v", d.Name, f, d)
		}
	}
}

func TestArrayExpansion(t *testing.T) {
	m := testMap(t)
	var offs []uint64
	for d := range m.All() {
		if strings.HasPrefix(d.Name, "Data[") {
			offs = append(offs, d.Offset)
			if d.BitSize != 32 {
				t.Errorf("%s: BitSize %d", d.Name, d.BitSize)
			}
		}
	}
	if len(offs) != 64 {
		t.Fatalf("got %d elements, want 64", len(offs))
	}
	for i, o := range offs {
		if want := uint64(0x200 + 4*i); o != want {
			t.Errorf("element %d: offset %#x, want %#x", i, o, want)
		}
	}
	d, err := m.Find("Data[5]")
	if err != nil {
		t.Fatal(err)
	}
	if d.Offset != 0x214 {
		t.Errorf("Data[5]: offset %#x, want 0x214", d.Offset)
	}
}

func TestEnumerationOrder(t *testing.T) {
	m := testMap(t)
	var first, second []string
	for d := range m.All() {
		first = append(first, d.Name)
	}
	for d := range m.All() {
		second = append(second, d.Name)
	}
	if !slices.Equal(first, second) {
		t.Fatal("enumeration order differs between calls")
	}
	// Arrays expand at their declaration point.
	want := []string{"Ctrl", "Flag", "Data[0]"}
	if !slices.Equal(first[:3], want) {
		t.Errorf("got %v, want prefix %v", first[:3], want)
	}
	if first[len(first)-1] != "Status" {
		t.Errorf("last register: got %s, want Status", first[len(first)-1])
	}
	for i := range m.Len() {
		if m.At(i).Name != first[i] {
			t.Errorf("At(%d): got %s, want %s", i, m.At(i).Name, first[i])
		}
	}
}

func TestEarlyStop(t *testing.T) {
	m := testMap(t)
	n := 0
	for range m.All() {
		if n++; n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("got %d iterations, want 2", n)
	}
}

func TestNotFound(t *testing.T) {
	m := testMap(t)
	_, err := m.Find("Data[64]")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want *NotFoundError", err)
	}
	if nf.Name != "Data[64]" || nf.Map != "dev" {
		t.Errorf("unexpected error fields: %+v", nf)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) == false")
	}
}

func TestBuildErrors(t *testing.T) {
	data := Array{
		Descriptor: Descriptor{Name: "Data", Offset: 0x200, BitSize: 32},
		Number:     4,
		Stride:     4,
	}
	tests := []struct {
		name  string
		build func(b *Builder) *Builder
		check func(err error) bool
	}{
		{
			"duplicate name",
			func(b *Builder) *Builder {
				return b.Add(Descriptor{Name: "A", Offset: 0, BitSize: 32}).
					Add(Descriptor{Name: "A", Offset: 4, BitSize: 32})
			},
			func(err error) bool {
				var e *DuplicateNameError
				return errors.As(err, &e) && e.Name == "A"
			},
		},
		{
			"duplicate array element name",
			func(b *Builder) *Builder {
				return b.Add(Descriptor{Name: "Data[2]", Offset: 0, BitSize: 32}).
					AddArray(data)
			},
			func(err error) bool {
				var e *DuplicateNameError
				return errors.As(err, &e) && e.Name == "Data[2]"
			},
		},
		{
			"same offset",
			func(b *Builder) *Builder {
				return b.Add(Descriptor{Name: "A", Offset: 8, BitSize: 32}).
					Add(Descriptor{Name: "B", Offset: 8, BitSize: 1})
			},
			func(err error) bool {
				var e *AddressConflictError
				return errors.As(err, &e) && e.Name == "B" && e.Other == "A"
			},
		},
		{
			"overlapping bytes",
			func(b *Builder) *Builder {
				return b.Add(Descriptor{Name: "A", Offset: 8, BitSize: 32}).
					Add(Descriptor{Name: "B", Offset: 10, BitSize: 8})
			},
			func(err error) bool {
				var e *AddressConflictError
				return errors.As(err, &e) && e.Offset == 10
			},
		},
		{
			"register inside array",
			func(b *Builder) *Builder {
				return b.AddArray(data).
					Add(Descriptor{Name: "X", Offset: 0x208, BitSize: 32})
			},
			func(err error) bool {
				var e *AddressConflictError
				return errors.As(err, &e) && e.Other == "Data[2]"
			},
		},
		{
			"stride smaller than element",
			func(b *Builder) *Builder {
				a := data
				a.Stride = 2
				return b.AddArray(a)
			},
			func(err error) bool {
				var e *AddressConflictError
				return errors.As(err, &e) && e.Name == "Data[1]"
			},
		},
		{
			"field exceeds word",
			func(b *Builder) *Builder {
				return b.Add(Descriptor{Name: "A", BitSize: 8, BitOffset: 25})
			},
			func(err error) bool {
				var e *InvalidFieldError
				return errors.As(err, &e) && e.Name == "A"
			},
		},
		{
			"zero bit size",
			func(b *Builder) *Builder {
				return b.Add(Descriptor{Name: "A"})
			},
			func(err error) bool {
				var e *InvalidFieldError
				return errors.As(err, &e)
			},
		},
		{
			"empty array",
			func(b *Builder) *Builder {
				a := data
				a.Number = 0
				return b.AddArray(a)
			},
			func(err error) bool {
				var e *InvalidFieldError
				return errors.As(err, &e) && e.Name == "Data"
			},
		},
		{
			"reset value too wide",
			func(b *Builder) *Builder {
				return b.Add(Descriptor{Name: "A", BitSize: 1, Reset: 2})
			},
			func(err error) bool {
				var e *InvalidFieldError
				return errors.As(err, &e)
			},
		},
		{
			"outside address space",
			func(b *Builder) *Builder {
				return b.Add(Descriptor{Name: "A", Offset: 0x3FE, BitSize: 32})
			},
			func(err error) bool {
				var e *AddressRangeError
				return errors.As(err, &e) && e.Width == 4 && e.Size == 0x400
			},
		},
		{
			"array outside address space",
			func(b *Builder) *Builder {
				a := data
				a.Number = 0x81
				return b.AddArray(a)
			},
			func(err error) bool {
				var e *AddressRangeError
				return errors.As(err, &e) && e.Name == "Data[128]"
			},
		},
		{
			"huge array",
			func(b *Builder) *Builder {
				a := data
				a.Number = 1 << 60
				return b.AddArray(a)
			},
			func(err error) bool {
				var e *AddressRangeError
				return errors.As(err, &e) && e.Name == "Data[128]"
			},
		},
		{
			"huge array with zero stride",
			func(b *Builder) *Builder {
				a := data
				a.Number = 1 << 60
				a.Stride = 0
				return b.AddArray(a)
			},
			func(err error) bool {
				var e *AddressConflictError
				return errors.As(err, &e) && e.Name == "Data[1]" && e.Other == "Data[0]"
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := tc.build(New("dev", "", 0x400)).Build()
			if err == nil {
				t.Fatalf("Build succeeded with %d registers", m.Len())
			}
			if !tc.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUnboundedSize(t *testing.T) {
	_, err := New("dev", "", 0).
		Add(Descriptor{Name: "Far", Offset: 1 << 40, BitSize: 32}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
}

func TestUnboundedOverflow(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder) *Builder
		check func(err error) bool
	}{
		{
			"register end",
			func(b *Builder) *Builder {
				return b.Add(Descriptor{Name: "A", BitSize: 32}).
					Add(Descriptor{Name: "Last", Offset: math.MaxUint64 - 1, BitSize: 32})
			},
			func(err error) bool {
				var e *AddressRangeError
				return errors.As(err, &e) && e.Name == "Last" && e.Size == 0
			},
		},
		{
			"last byte",
			func(b *Builder) *Builder {
				return b.Add(Descriptor{Name: "Last", Offset: math.MaxUint64, BitSize: 8})
			},
			func(err error) bool {
				var e *AddressRangeError
				return errors.As(err, &e) && e.Name == "Last"
			},
		},
		{
			"element offset",
			func(b *Builder) *Builder {
				return b.AddArray(Array{
					Descriptor: Descriptor{Name: "Data", BitSize: 32},
					Number:     3,
					Stride:     1 << 63,
				})
			},
			func(err error) bool {
				var e *AddressRangeError
				return errors.As(err, &e) && e.Name == "Data[2]"
			},
		},
		{
			"too many registers",
			func(b *Builder) *Builder {
				return b.AddArray(Array{
					Descriptor: Descriptor{Name: "Data", BitSize: 32},
					Number:     1 << 60,
					Stride:     4,
				})
			},
			func(err error) bool {
				var e *InvalidFieldError
				return errors.As(err, &e) && e.Name == "Data"
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := tc.build(New("dev", "", 0)).Build()
			if err == nil {
				t.Fatalf("Build succeeded with %d registers", m.Len())
			}
			if !tc.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		d     Descriptor
		mask  uint32
		width uint64
	}{
		{Descriptor{BitSize: 32}, 0xFFFFFFFF, 4},
		{Descriptor{BitSize: 1}, 0x1, 1},
		{Descriptor{BitSize: 4, BitOffset: 6}, 0x3C0, 2},
		{Descriptor{BitSize: 8, BitOffset: 24}, 0xFF000000, 4},
	}
	for _, tc := range tests {
		if m := tc.d.Mask(); m != tc.mask {
			t.Errorf("%+v: Mask %#x, want %#x", tc.d, m, tc.mask)
		}
		if w := tc.d.ByteWidth(); w != tc.width {
			t.Errorf("%+v: ByteWidth %d, want %d", tc.d, w, tc.width)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		b    Base
		v    uint32
		size uint
		s    string
	}{
		{UInt, 0x214, 32, "0x214"},
		{Int, 0xFFFFFFFF, 32, "-1"},
		{Int, 0x8, 4, "-8"},
		{Int, 0x7, 4, "7"},
		{Bool, 1, 1, "true"},
		{Bool, 0, 1, "false"},
	}
	for _, tc := range tests {
		if s := tc.b.Format(tc.v, tc.size); s != tc.s {
			t.Errorf("%v.Format(%#x, %d): got %s, want %s", tc.b, tc.v, tc.size, s, tc.s)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"RW", "RO", "WO", "read-write", "read-only", "write-only"} {
		m, err := ParseMode(s)
		if err != nil {
			t.Fatal(err)
		}
		if len(s) == 2 && m.String() != s {
			t.Errorf("ParseMode(%s).String() = %s", s, m)
		}
	}
	if _, err := ParseMode("writeOnce"); err == nil {
		t.Error("writeOnce accepted")
	}
}
