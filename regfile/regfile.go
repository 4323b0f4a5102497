// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regfile implements the storage of a peripheral described by a
// register map. Registers are stored as little-endian words.
package regfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/marcinbor85/gohex"

	"github.com/embeddedgo/regtools/regmap"
)

var (
	ErrReadOnly  = errors.New("register is read-only")
	ErrWriteOnly = errors.New("register is write-only")
	ErrTooLarge  = errors.New("register file too large")
)

// MaxSize is the maximum size of the storage of a register file, in bytes.
const MaxSize = 1 << 24

// File holds the content of all registers of one peripheral. Accesses are
// serialized so a File can be used by many goroutines.
type File struct {
	mu   sync.Mutex
	m    *regmap.Map
	mem  []byte
	base uint32
}

// New returns a register file for m with all registers set to their reset
// values. The storage covers the address space of m or, if m is unbounded,
// everything up to the end of its last register. New returns an error
// wrapping ErrTooLarge if that is more than MaxSize bytes.
func New(m *regmap.Map) (*File, error) {
	size := m.Size()
	if size == 0 {
		for d := range m.All() {
			size = max(size, d.Offset+d.ByteWidth())
		}
	}
	if size > MaxSize {
		return nil, fmt.Errorf("regfile: %s: %#x bytes: %w", m.Name(), size, ErrTooLarge)
	}
	f := &File{m: m, mem: make([]byte, size)}
	f.reset()
	return f, nil
}

func (f *File) Map() *regmap.Map { return f.m }

// SetBase sets the address of the first byte of the register file used in
// Intel HEX snapshots.
func (f *File) SetBase(base uint32) {
	f.mu.Lock()
	f.base = base
	f.mu.Unlock()
}

// Reset sets all registers to their reset values.
func (f *File) Reset() {
	f.mu.Lock()
	f.reset()
	f.mu.Unlock()
}

func (f *File) reset() {
	clear(f.mem)
	for d := range f.m.All() {
		f.store(d, d.Reset)
	}
}

func (f *File) load(d regmap.Descriptor) uint32 {
	var buf [4]byte
	copy(buf[:], f.mem[d.Offset:d.Offset+d.ByteWidth()])
	return (binary.LittleEndian.Uint32(buf[:]) & d.Mask()) >> d.BitOffset
}

func (f *File) store(d regmap.Descriptor, v uint32) {
	var buf [4]byte
	w := d.ByteWidth()
	copy(buf[:], f.mem[d.Offset:d.Offset+w])
	word := binary.LittleEndian.Uint32(buf[:])
	word = word&^d.Mask() | v<<d.BitOffset&d.Mask()
	binary.LittleEndian.PutUint32(buf[:], word)
	copy(f.mem[d.Offset:d.Offset+w], buf[:w])
}

// Read returns the value of the named register.
func (f *File) Read(name string) (uint32, error) {
	d, err := f.m.Find(name)
	if err != nil {
		return 0, err
	}
	if !d.Mode.CanRead() {
		return 0, fmt.Errorf("%s: %w", name, ErrWriteOnly)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(d), nil
}

// Write sets the value of the named register. The other bits of the
// addressed word are preserved.
func (f *File) Write(name string, v uint32) error {
	d, err := f.m.Find(name)
	if err != nil {
		return err
	}
	if !d.Mode.CanWrite() {
		return fmt.Errorf("%s: %w", name, ErrReadOnly)
	}
	if v&^(d.Mask()>>d.BitOffset) != 0 {
		return &regmap.InvalidFieldError{
			Name: name,
			Reason: "value 0x" + strconv.FormatUint(uint64(v), 16) +
				" does not fit in " + strconv.Itoa(int(d.BitSize)) + " bits",
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store(d, v)
	return nil
}

// WriteHex writes the content of the register file to w in the Intel HEX
// format.
func (f *File) WriteHex(w io.Writer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	mem := gohex.NewMemory()
	if err := mem.AddBinary(f.base, f.mem); err != nil {
		return err
	}
	return mem.DumpIntelHex(w, 16)
}

// ReadHex loads the register file from the Intel HEX data read from r. Only
// the bytes present in r are modified. Data outside the register file is an
// error and leaves the file unchanged.
func (f *File) ReadHex(r io.Reader) error {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	segs := mem.GetDataSegments()
	size := uint64(len(f.mem))
	for _, seg := range segs {
		start := uint64(seg.Address)
		if start < uint64(f.base) || start-uint64(f.base)+uint64(len(seg.Data)) > size {
			return fmt.Errorf(
				"regfile: segment %#x+%d outside %#x+%d",
				seg.Address, len(seg.Data), f.base, size,
			)
		}
	}
	for _, seg := range segs {
		copy(f.mem[seg.Address-f.base:], seg.Data)
	}
	return nil
}
