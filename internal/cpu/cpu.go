package cpu

import (
	"errors"
	"fmt"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304

	// EntryPoint is the address execution starts from once the boot
	// ROM has handed over to the cartridge.
	EntryPoint = 0x0100
)

var (
	// ErrUnknownOpcode is returned when the fetched byte has no
	// instruction in the primary table.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrInvalidOperand is returned when an instruction names an operand
	// it has no semantics for.
	ErrInvalidOperand = errors.New("invalid operand")
)

// OpcodeError records the address and value of an undecodable opcode.
type OpcodeError struct {
	PC     uint16
	Opcode uint8
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("%v 0x%02X at 0x%04X", ErrUnknownOpcode, e.Opcode, e.PC)
}

func (e *OpcodeError) Unwrap() error { return ErrUnknownOpcode }

// OperandError records an operand that an instruction has no
// semantics for.
type OperandError struct {
	Instruction string
	Target      Target
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("%v: %s in %s", ErrInvalidOperand, e.Target, e.Instruction)
}

func (e *OperandError) Unwrap() error { return ErrInvalidOperand }

func invalidOperand(ins fmt.Stringer, t Target) error {
	return &OperandError{Instruction: ins.String(), Target: t}
}

// Bus is the memory the CPU executes against.
type Bus interface {
	Load8(address uint16) (uint8, error)
	Store8(address uint16, value uint8) error
	Load16(address uint16) (uint16, error)
	Store16(address uint16, value uint16) error
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack. It is
	// not initialised by the CPU; software is expected to set it before
	// using the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	bus Bus
}

// NewCPU creates a new CPU executing from EntryPoint against the given Bus.
func NewCPU(bus Bus) *CPU {
	return &CPU{
		PC:  EntryPoint,
		bus: bus,
	}
}

// Step executes a single instruction and returns the number of clock
// cycles it took. On error the PC is left on the failing instruction.
func (c *CPU) Step() (uint8, error) {
	opcode, err := c.bus.Load8(c.PC)
	if err != nil {
		return 0, err
	}

	var advance uint16
	var cycles uint8
	if opcode == prefixCB {
		var cb uint8
		if cb, err = c.bus.Load8(c.PC + 1); err != nil {
			return 0, err
		}
		advance, cycles, err = c.executeCB(DecodeExtended(cb))
	} else {
		ins, ok := DecodePrimary(opcode)
		if !ok {
			return 0, &OpcodeError{PC: c.PC, Opcode: opcode}
		}
		advance, cycles, err = c.execute(ins)
	}
	if err != nil {
		return 0, err
	}

	c.PC += advance
	return cycles, nil
}

// Disassemble returns the mnemonic of the instruction at address.
func (c *CPU) Disassemble(address uint16) (string, error) {
	opcode, err := c.bus.Load8(address)
	if err != nil {
		return "", err
	}
	if opcode == prefixCB {
		cb, err := c.bus.Load8(address + 1)
		if err != nil {
			return "", err
		}
		return DecodeExtended(cb).String(), nil
	}
	if ins, ok := DecodePrimary(opcode); ok {
		return ins.String(), nil
	}
	return fmt.Sprintf("DB %02XH", opcode), nil
}

func (c *CPU) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X",
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.PC)
}

// readOperand reads the byte following the opcode.
func (c *CPU) readOperand() (uint8, error) {
	return c.bus.Load8(c.PC + 1)
}

// readOperand16 reads the word following the opcode.
func (c *CPU) readOperand16() (uint16, error) {
	return c.bus.Load16(c.PC + 1)
}

// address resolves the memory location of an indirect target.
func (c *CPU) address(t Target) (uint16, bool, error) {
	switch t {
	case IndBC:
		return c.BC(), true, nil
	case IndDE:
		return c.DE(), true, nil
	case IndHL, HLI, HLD:
		return c.HL(), true, nil
	case IndC:
		return 0xFF00 | uint16(c.C), true, nil
	case IndA8:
		n, err := c.readOperand()
		return 0xFF00 | uint16(n), true, err
	case IndA16:
		nn, err := c.readOperand16()
		return nn, true, err
	}
	return 0, false, nil
}

// postIncrement applies the HL adjustment of (HL+) and (HL-).
func (c *CPU) postIncrement(t Target) {
	switch t {
	case HLI:
		c.SetHL(c.HL() + 1)
	case HLD:
		c.SetHL(c.HL() - 1)
	}
}

// register returns the 8-bit register named by t.
func (c *CPU) register(t Target) *Register {
	switch t {
	case A:
		return &c.A
	case B:
		return &c.B
	case C:
		return &c.C
	case D:
		return &c.D
	case E:
		return &c.E
	case H:
		return &c.H
	case L:
		return &c.L
	}
	return nil
}

// read8 returns the 8-bit operand named by t.
func (c *CPU) read8(ins fmt.Stringer, t Target) (uint8, error) {
	if r := c.register(t); r != nil {
		return *r, nil
	}
	if t == D8 {
		return c.readOperand()
	}
	addr, ok, err := c.address(t)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, invalidOperand(ins, t)
	}
	value, err := c.bus.Load8(addr)
	if err != nil {
		return 0, err
	}
	c.postIncrement(t)
	return value, nil
}

// write8 stores value to the 8-bit operand named by t.
func (c *CPU) write8(ins fmt.Stringer, t Target, value uint8) error {
	if r := c.register(t); r != nil {
		*r = value
		return nil
	}
	addr, ok, err := c.address(t)
	if err != nil {
		return err
	}
	if !ok {
		return invalidOperand(ins, t)
	}
	if err := c.bus.Store8(addr, value); err != nil {
		return err
	}
	c.postIncrement(t)
	return nil
}

// read16 returns the 16-bit register named by t.
func (c *CPU) read16(ins fmt.Stringer, t Target) (uint16, error) {
	switch t {
	case AF:
		return c.AF(), nil
	case BC:
		return c.BC(), nil
	case DE:
		return c.DE(), nil
	case HL:
		return c.HL(), nil
	case SP:
		return c.SP, nil
	case D16:
		return c.readOperand16()
	}
	return 0, invalidOperand(ins, t)
}

// write16 sets the 16-bit register named by t.
func (c *CPU) write16(ins fmt.Stringer, t Target, value uint16) error {
	switch t {
	case AF:
		c.SetAF(value)
	case BC:
		c.SetBC(value)
	case DE:
		c.SetDE(value)
	case HL:
		c.SetHL(value)
	case SP:
		c.SP = value
	default:
		return invalidOperand(ins, t)
	}
	return nil
}

// push pushes a 16 bit value onto the stack. SP is only moved if both
// bytes were written.
func (c *CPU) push(value uint16) error {
	if err := c.bus.Store16(c.SP-2, value); err != nil {
		return err
	}
	c.SP -= 2
	return nil
}

// pop pops a 16 bit value off the stack.
func (c *CPU) pop() (uint16, error) {
	value, err := c.bus.Load16(c.SP)
	if err != nil {
		return 0, err
	}
	c.SP += 2
	return value, nil
}
