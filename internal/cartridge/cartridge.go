// Package cartridge provides the cartridge devices of the emulator. A
// cartridge owns the ROM image and decodes CPU addresses onto it,
// switching banks in response to writes to its control port.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

var (
	// ErrUnsupportedType is returned when the header names a memory
	// controller that is not emulated.
	ErrUnsupportedType = errors.New("unsupported cartridge type")
	// ErrROMSizeMismatch is returned when the image length disagrees
	// with the ROM size code of the header.
	ErrROMSizeMismatch = errors.New("rom size does not match header")
	// ErrHeaderTruncated is returned for images too short to hold a header.
	ErrHeaderTruncated = errors.New("rom too small to contain a header")
)

// Kind identifies the memory controller of a Cartridge.
type Kind uint8

const (
	// Type0 is a plain ROM, mapped as a single contiguous image.
	Type0 Kind = iota
	// Type1 has a fixed bank at 0x0000-0x3FFF and a single switchable
	// bank at 0x4000-0x7FFF, selected through 0x2000-0x3FFF.
	Type1
)

func (k Kind) String() string {
	switch k {
	case Type0:
		return "Type0"
	case Type1:
		return "Type1"
	}
	return "Unknown"
}

const (
	fixedEnd   = 0x3FFF
	switchBase = 0x4000
	switchEnd  = 0x7FFF
	bankSelect = 0x2000
)

// Cartridge represents a game cartridge. The zero value is not usable,
// use New.
type Cartridge struct {
	kind   Kind
	header Header

	// fixed holds the whole image for Type0 and bank 0 for Type1.
	fixed *memory.Region
	// banks holds image banks 1..n for Type1, each based at 0x4000.
	banks []*memory.Region
	// bank indexes the bank currently mapped into 0x4000-0x7FFF.
	bank int

	fingerprint uint64
}

// New inspects the header of rom and returns the matching Cartridge.
// The cartridge takes ownership of rom.
func New(rom []byte) (*Cartridge, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	c := &Cartridge{
		header:      header,
		fingerprint: xxhash.Sum64(rom),
	}

	switch header.CartridgeType {
	case ROM:
		c.kind = Type0
		c.fixed = memory.NewRegion(0, rom, memory.ReadOnly)
	case MBC1:
		c.kind = Type1
		banks := header.Banks()
		if banks < 2 || len(rom)%BankSize != 0 || len(rom)/BankSize != banks {
			return nil, fmt.Errorf("%w: header declares %d banks (code 0x%02X), image holds %d bytes",
				ErrROMSizeMismatch, banks, header.ROMSizeCode, len(rom))
		}
		c.fixed = memory.NewRegion(0, rom[:BankSize], memory.ReadOnly)
		c.banks = make([]*memory.Region, 0, banks-1)
		for i := 1; i < banks; i++ {
			c.banks = append(c.banks, memory.NewRegion(switchBase, rom[i*BankSize:(i+1)*BankSize], memory.ReadOnly))
		}
	default:
		return nil, fmt.Errorf("%w: 0x%02X (%s)", ErrUnsupportedType, uint8(header.CartridgeType), header.CartridgeType)
	}

	return c, nil
}

// Kind returns the memory controller of the cartridge.
func (c *Cartridge) Kind() Kind { return c.kind }

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header { return c.header }

// Title returns the title of the cartridge.
func (c *Cartridge) Title() string { return c.header.Title }

// Fingerprint returns a 64-bit hash of the ROM image.
func (c *Cartridge) Fingerprint() uint64 { return c.fingerprint }

// Bank returns the image bank mapped into 0x4000-0x7FFF, or 0 for
// cartridges without a switchable window.
func (c *Cartridge) Bank() int {
	if c.kind != Type1 {
		return 0
	}
	return c.bank + 1
}

// Window returns the first and last CPU address claimed by the cartridge.
func (c *Cartridge) Window() (uint16, uint16) {
	if c.kind == Type1 {
		return 0x0000, switchEnd
	}
	end := c.fixed.Len() - 1
	if end > switchEnd {
		end = switchEnd
	}
	return 0x0000, uint16(end)
}

// Load returns the byte visible to the CPU at address.
func (c *Cartridge) Load(address uint16) (uint8, error) {
	switch c.kind {
	case Type1:
		switch {
		case address <= fixedEnd:
			return c.fixed.Load(address)
		case address <= switchEnd:
			return c.banks[c.bank].Load(address)
		}
		return 0, &memory.AddressError{Op: "load", Address: address, Err: memory.ErrUnmappedAddress}
	default:
		return c.fixed.Load(address)
	}
}

// Store handles a CPU write to the cartridge. ROM content is never
// modified; on Type1 cartridges writes to 0x2000-0x3FFF select the
// switchable bank.
func (c *Cartridge) Store(address uint16, value uint8) error {
	if err := c.Probe(address, true); err != nil {
		return err
	}
	if c.kind == Type1 {
		c.selectBank(value)
	}
	return nil
}

// Probe reports the error an access to address would return without
// performing it.
func (c *Cartridge) Probe(address uint16, write bool) error {
	switch c.kind {
	case Type1:
		op := "load"
		if write {
			op = "store"
		}
		switch {
		case address > switchEnd:
			return &memory.AddressError{Op: op, Address: address, Err: memory.ErrUnmappedAddress}
		case !write:
			return nil
		case address >= bankSelect && address <= fixedEnd:
			return nil
		}
		// no RAM enable or banking mode registers are modelled
		return &memory.AddressError{Op: op, Address: address, Err: memory.ErrPermissionDenied}
	default:
		return c.fixed.Probe(address, write)
	}
}

// selectBank maps the requested bank. Bank 0 can never be mapped into
// the switchable window and selects bank 1 instead; numbers beyond the
// image wrap around the switchable banks.
func (c *Cartridge) selectBank(value uint8) {
	bank := int(utils.ZeroAdjust8(value))
	c.bank = (bank - 1) % len(c.banks)
}

func (c *Cartridge) String() string {
	return fmt.Sprintf("%s %s", c.kind, c.header)
}
