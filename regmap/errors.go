// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regmap

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched (errors.Is) by every *NotFoundError.
var ErrNotFound = errors.New("register not found")

type NotFoundError struct {
	Map  string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Map, e.Name, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateNameError reports a register name declared more than once.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "duplicate register name: " + e.Name
}

// AddressConflictError reports two registers that occupy the same bytes of
// the address space.
type AddressConflictError struct {
	Name   string
	Offset uint64
	Other  string // the previously declared register
}

func (e *AddressConflictError) Error() string {
	return fmt.Sprintf(
		"%s: offset %#x overlaps with register %s", e.Name, e.Offset, e.Other,
	)
}

// InvalidFieldError reports a malformed register declaration.
type InvalidFieldError struct {
	Name   string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	if e.Name == "" {
		return "invalid register field: " + e.Reason
	}
	return e.Name + ": invalid register field: " + e.Reason
}

// AddressRangeError reports a register that does not fit in the declared
// address space. Size is 0 for an unbounded map whose register end
// overflows 64 bits.
type AddressRangeError struct {
	Name   string
	Offset uint64
	Width  uint64
	Size   uint64
}

func (e *AddressRangeError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf(
			"%s: %d byte(s) at %#x exceed the 64-bit address space",
			e.Name, e.Width, e.Offset,
		)
	}
	return fmt.Sprintf(
		"%s: %d byte(s) at %#x exceed the %#x byte address space",
		e.Name, e.Width, e.Offset, e.Size,
	)
}
