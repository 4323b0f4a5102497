// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regmap

import (
	"cmp"
	"math/bits"
	"slices"
	"strconv"
)

// Builder collects register declarations. The zero value is not usable, use
// New.
type Builder struct {
	m *Map
}

// New returns a builder of the map with the given name. If size is not zero
// every register must fit in size bytes.
func New(name, description string, size uint64) *Builder {
	return &Builder{&Map{name: name, descr: description, size: size}}
}

// Add declares a single register.
func (b *Builder) Add(d Descriptor) *Builder {
	b.m.decls = append(b.m.decls, decl{Array: Array{Descriptor: d}})
	return b
}

// AddArray declares an array of registers.
func (b *Builder) AddArray(a Array) *Builder {
	b.m.decls = append(b.m.decls, decl{Array: a, array: true})
	return b
}

type decl struct {
	Array
	array bool
}

type span struct {
	start, end uint64
	name       string
}

// MaxLen is the maximum number of registers in a map, arrays expanded.
const MaxLen = 1 << 20

// Build expands the arrays, validates all registers and returns the map. The
// first violation, in declaration order, is reported. The builder must not
// be used after Build.
func (b *Builder) Build() (*Map, error) {
	m := b.m
	b.m = nil
	m.index = make(map[string]int, len(m.decls))
	var spans []span
	for _, a := range m.decls {
		if err := checkField(&a.Descriptor); err != nil {
			return nil, err
		}
		num := uint(1)
		if a.array {
			if a.Number == 0 {
				return nil, &InvalidFieldError{Name: a.Name, Reason: "empty register array"}
			}
			num = m.expandLen(&a.Array)
		}
		if num > MaxLen-uint(len(m.regs)) {
			return nil, &InvalidFieldError{
				Name:   a.Name,
				Reason: "more than " + strconv.Itoa(MaxLen) + " registers",
			}
		}
		for i := range num {
			d := a.Descriptor
			if a.array {
				d.Name = ElemName(a.Name, int(i))
				hi, lo := bits.Mul64(uint64(i), a.Stride)
				off, carry := bits.Add64(a.Offset, lo, 0)
				if hi|carry != 0 {
					return nil, &AddressRangeError{
						Name: d.Name, Offset: a.Offset, Width: d.ByteWidth(), Size: m.size,
					}
				}
				d.Offset = off
			}
			if _, ok := m.index[d.Name]; ok {
				return nil, &DuplicateNameError{Name: d.Name}
			}
			w := d.ByteWidth()
			end, carry := bits.Add64(d.Offset, w, 0)
			if carry != 0 || m.size != 0 && end > m.size {
				return nil, &AddressRangeError{
					Name: d.Name, Offset: d.Offset, Width: w, Size: m.size,
				}
			}
			s := span{d.Offset, end, d.Name}
			k, _ := slices.BinarySearchFunc(
				spans, s, func(a, b span) int { return cmp.Compare(a.start, b.start) },
			)
			if k > 0 && spans[k-1].end > s.start {
				return nil, &AddressConflictError{d.Name, d.Offset, spans[k-1].name}
			}
			if k < len(spans) && spans[k].start < s.end {
				return nil, &AddressConflictError{d.Name, d.Offset, spans[k].name}
			}
			spans = slices.Insert(spans, k, s)
			m.index[d.Name] = len(m.regs)
			m.regs = append(m.regs, d)
		}
	}
	return m, nil
}

// expandLen returns the number of elements of a that Build has to expand
// to accept the array or to find the first element that violates the
// address space or overlaps its predecessor.
func (m *Map) expandLen(a *Array) uint {
	w := a.ByteWidth()
	if a.Stride < w {
		// Element 1 overlaps element 0.
		return min(a.Number, 2)
	}
	if m.size == 0 {
		return a.Number
	}
	if a.Offset >= m.size || w > m.size-a.Offset {
		return 1
	}
	// Elements 0..fit-1 are inside the address space.
	fit := (m.size-w-a.Offset)/a.Stride + 1
	if uint64(a.Number) > fit {
		return uint(fit) + 1
	}
	return a.Number
}

func checkField(d *Descriptor) error {
	switch {
	case d.Name == "":
		return &InvalidFieldError{Reason: "register without name"}
	case d.BitSize == 0:
		return &InvalidFieldError{Name: d.Name, Reason: "zero bit size"}
	case d.BitOffset+d.BitSize > WordBits:
		return &InvalidFieldError{
			Name: d.Name,
			Reason: "bit offset " + strconv.Itoa(int(d.BitOffset)) +
				" + bit size " + strconv.Itoa(int(d.BitSize)) +
				" exceeds " + strconv.Itoa(WordBits) + " bits",
		}
	case d.Mode > WO:
		return &InvalidFieldError{Name: d.Name, Reason: "unknown access mode " + d.Mode.String()}
	case d.Base > Bool:
		return &InvalidFieldError{Name: d.Name, Reason: "unknown base type " + d.Base.String()}
	case d.Reset&^(d.Mask()>>d.BitOffset) != 0:
		return &InvalidFieldError{Name: d.Name, Reason: "reset value wider than the field"}
	}
	return nil
}
