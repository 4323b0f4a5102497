// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regmap describes the registers of a memory-mapped peripheral.
//
// A Map is built once, from a list of single register and register array
// declarations, and is immutable afterwards. It can be shared by any number
// of goroutines without synchronization.
package regmap

import (
	"iter"
	"strconv"
)

// WordBits is the width of the word addressed by a register offset.
const WordBits = 32

// Mode describes the access allowed to a register.
type Mode uint8

const (
	RW Mode = iota // read-write
	RO             // read-only
	WO             // write-only
)

var modeStr = [...]string{RW: "RW", RO: "RO", WO: "WO"}

func (m Mode) String() string {
	if int(m) < len(modeStr) {
		return modeStr[m]
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

func (m Mode) CanRead() bool  { return m == RW || m == RO }
func (m Mode) CanWrite() bool { return m == RW || m == WO }

// ParseMode accepts the short mode names (RW, RO, WO) and the CMSIS-SVD
// access strings.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "RW", "read-write":
		return RW, nil
	case "RO", "read-only":
		return RO, nil
	case "WO", "write-only":
		return WO, nil
	}
	return 0, &InvalidFieldError{Reason: "unknown access mode " + strconv.Quote(s)}
}

// Base describes how the raw bits of a register are interpreted. It affects
// only the presentation of a value.
type Base uint8

const (
	UInt Base = iota
	Int
	Bool
)

var baseStr = [...]string{UInt: "UInt", Int: "Int", Bool: "Bool"}

func (b Base) String() string {
	if int(b) < len(baseStr) {
		return baseStr[b]
	}
	return "Base(" + strconv.Itoa(int(b)) + ")"
}

// Format formats the raw field value v according to b.
func (b Base) Format(v uint32, bitSize uint) string {
	switch b {
	case Int:
		if bitSize > 0 && bitSize < 32 && v&(1<<(bitSize-1)) != 0 {
			v |= ^uint32(0) << bitSize
		}
		return strconv.Itoa(int(int32(v)))
	case Bool:
		return strconv.FormatBool(v != 0)
	}
	return "0x" + strconv.FormatUint(uint64(v), 16)
}

// Descriptor describes one register.
type Descriptor struct {
	Name        string
	Description string
	Offset      uint64 // byte offset in the peripheral address space
	BitSize     uint   // width of the field
	BitOffset   uint   // position of the field in the addressed word
	Base        Base
	Mode        Mode
	Hidden      bool   // advisory, for user facing listings only
	Reset       uint32 // reset value of the field
}

// ByteWidth returns the number of bytes, counted from d.Offset, covered by
// the field.
func (d Descriptor) ByteWidth() uint64 {
	return uint64(d.BitOffset+d.BitSize+7) / 8
}

// Mask returns the mask of the field in the addressed word.
func (d Descriptor) Mask() uint32 {
	if d.BitSize >= WordBits {
		return ^uint32(0)
	}
	return (1<<d.BitSize - 1) << d.BitOffset
}

// Array describes Number registers that differ only by their offset. The i-th
// element is named Name[i] and is located at Offset + i*Stride.
type Array struct {
	Descriptor
	Number uint
	Stride uint64
}

// ElemName returns the name of the i-th element of the array named name.
func ElemName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// Map is an immutable, validated list of registers.
type Map struct {
	name  string
	descr string
	size  uint64
	regs  []Descriptor
	index map[string]int
	decls []decl
}

func (m *Map) Name() string        { return m.name }
func (m *Map) Description() string { return m.descr }

// Size returns the size of the address space of the peripheral or 0 if it
// was not declared.
func (m *Map) Size() uint64 { return m.size }

// Len returns the number of registers (arrays expanded).
func (m *Map) Len() int { return len(m.regs) }

// At returns the i-th register in declaration order.
func (m *Map) At(i int) Descriptor { return m.regs[i] }

// Find returns the register with the given name.
func (m *Map) Find(name string) (Descriptor, error) {
	i, ok := m.index[name]
	if !ok {
		return Descriptor{}, &NotFoundError{Map: m.name, Name: name}
	}
	return m.regs[i], nil
}

// All returns all registers in declaration order. Arrays are expanded in
// place, in ascending index order.
func (m *Map) All() iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		for _, d := range m.regs {
			if !yield(d) {
				return
			}
		}
	}
}

// Decls returns the declarations the map was built from, in order. A single
// register is reported as an Array with Number == 0.
func (m *Map) Decls() iter.Seq[Array] {
	return func(yield func(Array) bool) {
		for _, d := range m.decls {
			if !yield(d.Array) {
				return
			}
		}
	}
}
