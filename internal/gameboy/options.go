package gameboy

import (
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug logs every instruction before it is executed.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// WithLogger sets the logger used for header and trace messages.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// SkipUnknown steps over undefined opcodes instead of stopping on them.
func SkipUnknown() Opt {
	return func(gb *GameBoy) {
		gb.skipUnknown = true
	}
}

// WithStackPointer sets the initial stack pointer. The CPU leaves it
// at 0x0000 otherwise.
func WithStackPointer(sp uint16) Opt {
	return func(gb *GameBoy) {
		gb.CPU.SP = sp
	}
}

// WithEntryPoint starts execution from pc instead of 0x0100.
func WithEntryPoint(pc uint16) Opt {
	return func(gb *GameBoy) {
		gb.CPU.PC = pc
	}
}
