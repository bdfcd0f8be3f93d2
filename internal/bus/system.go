package bus

import (
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/memory"
)

// Address map of the system bus. Only plain memory is attached to the
// video and I/O windows, no peripheral reacts to accesses there.
const (
	VRAMStart = 0x8000
	VRAMEnd   = 0x9FFF
	WRAMStart = 0xC000
	WRAMEnd   = 0xDFFF
	IOStart   = 0xFF00
	IOEnd     = 0xFF7F
	HRAMStart = 0xFF80
	HRAMEnd   = 0xFFFF
)

// NewSystemBus returns a Bus with the cartridge and internal memories
// attached at their usual addresses.
func NewSystemBus(cart *cartridge.Cartridge) (*Bus, error) {
	b := New()

	start, end := cart.Window()
	if err := b.Attach("cartridge", start, end, cart); err != nil {
		return nil, err
	}

	for _, r := range []struct {
		name       string
		start, end uint16
	}{
		{"vram", VRAMStart, VRAMEnd},
		{"wram", WRAMStart, WRAMEnd},
		{"io", IOStart, IOEnd},
		{"hram", HRAMStart, HRAMEnd},
	} {
		ram := memory.NewRAM(r.start, int(r.end)-int(r.start)+1)
		if err := b.Attach(r.name, r.start, r.end, ram); err != nil {
			return nil, err
		}
	}

	return b, nil
}
