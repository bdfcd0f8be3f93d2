// Package gameboy assembles a cartridge, the system bus and the CPU
// into a machine that can be stepped.
package gameboy

import (
	"errors"

	"github.com/thelolagemann/gbcore/internal/bus"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = 70224 // 4194304 / 59.7
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU       *cpu.CPU
	Bus       *bus.Bus
	Cartridge *cartridge.Cartridge

	log.Logger

	cycles      uint64
	debug       bool
	skipUnknown bool
}

// New returns a GameBoy running the given ROM image. Options are
// applied once every component has been built.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}
	memBus, err := bus.NewSystemBus(cart)
	if err != nil {
		return nil, err
	}

	g := &GameBoy{
		CPU:       cpu.NewCPU(memBus),
		Bus:       memBus,
		Cartridge: cart,
		Logger:    log.New(),
	}

	for _, opt := range opts {
		opt(g)
	}

	header := cart.Header()
	g.Infof("loaded %s", header)
	g.Infof("fingerprint %016x, %d bank(s)", cart.Fingerprint(), max(header.Banks(), 1))
	if header.ROMSize() == 0 {
		g.Errorf("unknown ROM size code 0x%02X", header.ROMSizeCode)
	}
	if header.RAMSizeCode > 0x05 {
		g.Errorf("unknown RAM size code 0x%02X", header.RAMSizeCode)
	}
	if !header.ValidChecksum(rom) {
		g.Errorf("header checksum 0x%02X does not match", header.HeaderChecksum)
	}
	g.Debugf("bus %s", memBus)

	return g, nil
}

// Step executes a single instruction and returns the number of
// cycles it took. With SkipUnknown an undefined opcode is logged and
// stepped over at no cost.
func (g *GameBoy) Step() (uint8, error) {
	if g.debug {
		g.trace()
	}

	cycles, err := g.CPU.Step()
	if err != nil {
		if g.skipUnknown && errors.Is(err, cpu.ErrUnknownOpcode) {
			g.Errorf("%v, skipping", err)
			g.CPU.PC++
			return 0, nil
		}
		return 0, err
	}
	g.cycles += uint64(cycles)
	return cycles, nil
}

// Run steps the CPU until at least budget cycles have elapsed or an
// instruction fails. It returns the number of cycles executed.
func (g *GameBoy) Run(budget uint64) (uint64, error) {
	var executed uint64
	for executed < budget {
		cycles, err := g.Step()
		if err != nil {
			return executed, err
		}
		executed += uint64(cycles)
	}
	return executed, nil
}

// Cycles returns the number of cycles executed since the GameBoy was
// created.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// trace logs the instruction about to be executed.
func (g *GameBoy) trace() {
	mnemonic, err := g.CPU.Disassemble(g.CPU.PC)
	if err != nil {
		mnemonic = "??"
	}
	g.Debugf("%04X  %-14s %s", g.CPU.PC, mnemonic, g.CPU)
}
