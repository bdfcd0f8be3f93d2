// Package memory provides the contiguous byte regions that back every
// addressable device: cartridge banks, work RAM, high RAM and so on.
package memory

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmappedAddress is returned when an address falls outside the
	// device (or bus) it was issued to.
	ErrUnmappedAddress = errors.New("unmapped address")
	// ErrPermissionDenied is returned when writing to read-only memory.
	ErrPermissionDenied = errors.New("permission denied")
)

// AddressError records a failed access and the address that caused it.
type AddressError struct {
	Op      string
	Address uint16
	Err     error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s 0x%04X: %v", e.Op, e.Address, e.Err)
}

func (e *AddressError) Unwrap() error { return e.Err }

// Permission describes whether a Region may be written to.
type Permission uint8

const (
	ReadOnly Permission = iota
	ReadWrite
)

func (p Permission) String() string {
	if p == ReadOnly {
		return "RO"
	}
	return "RW"
}

// Region is a block of memory starting at base. Accesses are relative
// to base, so a Region at 0x4000 answers for 0x4000..0x4000+len.
type Region struct {
	base uint16
	data []byte
	perm Permission
}

// NewRegion returns a new Region backed by data. The Region takes
// ownership of data.
func NewRegion(base uint16, data []byte, perm Permission) *Region {
	return &Region{
		base: base,
		data: data,
		perm: perm,
	}
}

// NewRAM returns a zeroed ReadWrite Region of size bytes.
func NewRAM(base uint16, size int) *Region {
	return NewRegion(base, make([]byte, size), ReadWrite)
}

// Base returns the first address of the Region.
func (r *Region) Base() uint16 { return r.base }

// Len returns the number of bytes held by the Region.
func (r *Region) Len() int { return len(r.data) }

// End returns the last address of the Region. It is only meaningful
// for non-empty regions.
func (r *Region) End() uint16 { return uint16(int(r.base) + len(r.data) - 1) }

// Permission returns the access permission of the Region.
func (r *Region) Permission() Permission { return r.perm }

func (r *Region) offset(address uint16) (int, bool) {
	if address < r.base {
		return 0, false
	}
	off := int(address - r.base)
	return off, off < len(r.data)
}

// Load returns the byte at the given address.
func (r *Region) Load(address uint16) (uint8, error) {
	off, ok := r.offset(address)
	if !ok {
		return 0, &AddressError{Op: "load", Address: address, Err: ErrUnmappedAddress}
	}
	return r.data[off], nil
}

// Store writes value to the given address. Read-only regions are
// never modified.
func (r *Region) Store(address uint16, value uint8) error {
	if err := r.Probe(address, true); err != nil {
		return err
	}
	off, _ := r.offset(address)
	r.data[off] = value
	return nil
}

// Probe reports the error a Load (or a Store, if write is set) to
// address would return, without performing it.
func (r *Region) Probe(address uint16, write bool) error {
	if _, ok := r.offset(address); !ok {
		op := "load"
		if write {
			op = "store"
		}
		return &AddressError{Op: op, Address: address, Err: ErrUnmappedAddress}
	}
	if write && r.perm == ReadOnly {
		return &AddressError{Op: "store", Address: address, Err: ErrPermissionDenied}
	}
	return nil
}

func (r *Region) String() string {
	if len(r.data) == 0 {
		return fmt.Sprintf("[%04X, empty) %s", r.base, r.perm)
	}
	return fmt.Sprintf("[%04X-%04X] %s", r.base, r.End(), r.perm)
}
