// Package bus routes CPU memory accesses to the device that owns the
// address being accessed.
package bus

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

// ErrOverlap is returned when attaching a device whose window overlaps
// a device already on the bus.
var ErrOverlap = errors.New("device window overlaps")

// Device is anything addressable that can be attached to the Bus.
type Device interface {
	Load(address uint16) (uint8, error)
	Store(address uint16, value uint8) error
	// Probe reports the error the access would return, without
	// performing it or triggering any side effect.
	Probe(address uint16, write bool) error
}

var (
	_ Device = (*memory.Region)(nil)
	_ Device = (*cartridge.Cartridge)(nil)
)

type mapping struct {
	start, end uint16
	device     Device
	name       string
}

// Bus holds an ordered set of devices, each covering a disjoint
// address window.
type Bus struct {
	mappings []mapping
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{}
}

// Attach maps device into the window [start, end].
func (b *Bus) Attach(name string, start, end uint16, device Device) error {
	if end < start {
		return fmt.Errorf("bus: attach %s: window %04X-%04X is inverted", name, start, end)
	}
	for _, m := range b.mappings {
		if start <= m.end && m.start <= end {
			return fmt.Errorf("%w: %s %04X-%04X and %s %04X-%04X", ErrOverlap, name, start, end, m.name, m.start, m.end)
		}
	}
	b.mappings = append(b.mappings, mapping{start: start, end: end, device: device, name: name})
	return nil
}

// device returns the device that owns address.
func (b *Bus) device(op string, address uint16) (Device, error) {
	for _, m := range b.mappings {
		if address >= m.start && address <= m.end {
			return m.device, nil
		}
	}
	return nil, &memory.AddressError{Op: op, Address: address, Err: memory.ErrUnmappedAddress}
}

// Load8 reads a byte from the device owning address.
func (b *Bus) Load8(address uint16) (uint8, error) {
	d, err := b.device("load", address)
	if err != nil {
		return 0, err
	}
	return d.Load(address)
}

// Store8 writes a byte to the device owning address.
func (b *Bus) Store8(address uint16, value uint8) error {
	d, err := b.device("store", address)
	if err != nil {
		return err
	}
	return d.Store(address, value)
}

// Load16 reads a little endian word, low byte at address.
func (b *Bus) Load16(address uint16) (uint16, error) {
	low, err := b.Load8(address)
	if err != nil {
		return 0, err
	}
	high, err := b.Load8(address + 1)
	if err != nil {
		return 0, err
	}
	return utils.BytesToUint16(high, low), nil
}

// Store16 writes a little endian word, low byte at address. Either
// both bytes are written or neither is.
func (b *Bus) Store16(address uint16, value uint16) error {
	lowDev, err := b.device("store", address)
	if err != nil {
		return err
	}
	highDev, err := b.device("store", address+1)
	if err != nil {
		return err
	}
	if err := lowDev.Probe(address, true); err != nil {
		return err
	}
	if err := highDev.Probe(address+1, true); err != nil {
		return err
	}

	high, low := utils.Uint16ToBytes(value)
	if err := lowDev.Store(address, low); err != nil {
		return err
	}
	return highDev.Store(address+1, high)
}

// String lists the attached windows.
func (b *Bus) String() string {
	s := ""
	for _, m := range b.mappings {
		s += fmt.Sprintf("%04X-%04X %s\n", m.start, m.end, m.name)
	}
	return s
}
