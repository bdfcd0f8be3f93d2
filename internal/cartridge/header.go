package cartridge

import (
	"fmt"
	"strings"
)

const (
	headerStart = 0x0100
	headerEnd   = 0x0150

	// BankSize is the size of a single ROM bank.
	BankSize = 0x4000
)

var (
	// ramMAP translates the RAM size code to a size in bytes.
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x01: 2 * 1024,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

var typeNames = map[Type]string{
	ROM:               "ROM ONLY",
	MBC1:              "MBC1",
	MBC1RAM:           "MBC1+RAM",
	MBC1RAMBATT:       "MBC1+RAM+BATTERY",
	MBC2:              "MBC2",
	MBC2BATT:          "MBC2+BATTERY",
	ROMRAM:            "ROM+RAM",
	ROMRAMBATT:        "ROM+RAM+BATTERY",
	MMM01:             "MMM01",
	MMM01RAM:          "MMM01+RAM",
	MMM01RAMBATT:      "MMM01+RAM+BATTERY",
	MBC3TIMERBATT:     "MBC3+TIMER+BATTERY",
	MBC3TIMERRAMBATT:  "MBC3+TIMER+RAM+BATTERY",
	MBC3:              "MBC3",
	MBC3RAM:           "MBC3+RAM",
	MBC3RAMBATT:       "MBC3+RAM+BATTERY",
	MBC5:              "MBC5",
	MBC5RAM:           "MBC5+RAM",
	MBC5RAMBATT:       "MBC5+RAM+BATTERY",
	MBC5RUMBLE:        "MBC5+RUMBLE",
	MBC5RUMBLERAM:     "MBC5+RUMBLE+RAM",
	MBC5RUMBLERAMBATT: "MBC5+RUMBLE+RAM+BATTERY",
	POCKETCAMERA:      "POCKET CAMERA",
	BANDAITAMA5:       "BANDAI TAMA5",
	HUDSONHUC3:        "HuC3",
	HUDSONHUC1:        "HuC1+RAM+BATTERY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
}

// Header represents the header of a cartridge, located at the address
// space 0x0100-0x014F. Only the fields needed to identify the memory
// controller and the image geometry are decoded.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x0147 - CartridgeType selects the memory bank controller.
	CartridgeType Type

	// 0x0148 - ROMSizeCode encodes the image size as 32KiB << n.
	ROMSizeCode uint8

	// 0x0149 - RAMSizeCode encodes the size of any external RAM.
	RAMSizeCode uint8

	// 0x014D - HeaderChecksum over 0x0134-0x014C.
	HeaderChecksum uint8
}

// parseHeader parses the header of the given ROM and returns a Header.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < headerEnd {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrHeaderTruncated, len(rom))
	}
	header := rom[headerStart:headerEnd]

	return Header{
		Title:          strings.TrimRight(string(header[0x34:0x44]), "\x00 "),
		CartridgeType:  Type(header[0x47]),
		ROMSizeCode:    header[0x48],
		RAMSizeCode:    header[0x49],
		HeaderChecksum: header[0x4D],
	}, nil
}

// ROMSize returns the size of the ROM in bytes described by the size
// code, or 0 if the code is not recognised.
func (h Header) ROMSize() uint {
	if h.ROMSizeCode > 0x08 {
		return 0
	}
	return (32 * 1024) << h.ROMSizeCode
}

// RAMSize returns the size of the external RAM in bytes, or 0 if the
// code is not recognised.
func (h Header) RAMSize() uint {
	return ramMAP[h.RAMSizeCode]
}

// Banks returns the number of 16KiB banks described by the ROM size
// code, including the fixed bank.
func (h Header) Banks() int {
	return int(h.ROMSize() / BankSize)
}

// ValidChecksum reports whether the header checksum matches the bytes
// of the header it was parsed from.
func (h Header) ValidChecksum(rom []byte) bool {
	if len(rom) < headerEnd {
		return false
	}
	var sum uint8
	for _, b := range rom[0x0134:0x014D] {
		sum = sum - b - 1
	}
	return sum == h.HeaderChecksum
}

func (h Header) String() string {
	return fmt.Sprintf("%s | %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.CartridgeType, h.ROMSize()/1024, h.RAMSize()/1024)
}
