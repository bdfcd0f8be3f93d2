package cpu

import "github.com/thelolagemann/gbcore/pkg/utils"

// Register represents a GB Register which is used to hold an 8-bit value.
type Register = uint8

// Registers represents the GB CPU registers. The CPU has 8 registers:
// A, B, C, D, E, H, L, and F. The F register is special in that it is
// used to hold the flags, and only the upper 4 bits are used. The
// registers are accessed in pairs (AF, BC, DE and HL) as 16-bit values,
// the first register holding the high byte.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register
}

// BC returns the BC register pair.
func (r *Registers) BC() uint16 { return utils.BytesToUint16(r.B, r.C) }

// SetBC sets the BC register pair.
func (r *Registers) SetBC(value uint16) { r.B, r.C = utils.Uint16ToBytes(value) }

// DE returns the DE register pair.
func (r *Registers) DE() uint16 { return utils.BytesToUint16(r.D, r.E) }

// SetDE sets the DE register pair.
func (r *Registers) SetDE(value uint16) { r.D, r.E = utils.Uint16ToBytes(value) }

// HL returns the HL register pair.
func (r *Registers) HL() uint16 { return utils.BytesToUint16(r.H, r.L) }

// SetHL sets the HL register pair.
func (r *Registers) SetHL(value uint16) { r.H, r.L = utils.Uint16ToBytes(value) }

// AF returns the AF register pair.
func (r *Registers) AF() uint16 { return utils.BytesToUint16(r.A, r.F) }

// SetAF sets the AF register pair. The lower nibble of F does not
// exist in hardware and always reads back as zero.
func (r *Registers) SetAF(value uint16) {
	r.A, r.F = utils.Uint16ToBytes(value)
	r.F &= 0xF0
}
