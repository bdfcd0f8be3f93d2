package cpu

// prefixCB selects the extended instruction table.
const prefixCB = 0xCB

var (
	instructionSet [256]Instruction
	defined        [256]bool
)

// disallowedOpcodes have no instruction on the hardware and lock up
// the CPU. 0xCB is the prefix and is never decoded on its own.
var disallowedOpcodes = []uint8{
	0xCB, 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// DefineInstruction adds ins to the primary instruction table. The
// length is derived from the operands.
func DefineInstruction(opcode uint8, cycles uint8, ins Instruction) {
	ins.length = 1 + ins.Dst.size() + ins.Src.size()
	if ins.Op == OpSTOP {
		ins.length = 2
	}
	ins.cycles = cycles
	instructionSet[opcode] = ins
	defined[opcode] = true
}

// DecodePrimary returns the instruction encoded by opcode. The second
// result is false for opcodes without an instruction.
func DecodePrimary(opcode uint8) (Instruction, bool) {
	return instructionSet[opcode], defined[opcode]
}

// DecodeExtended returns the instruction encoded by the byte following
// the CB prefix. Every byte is a valid instruction.
func DecodeExtended(opcode uint8) CBInstruction {
	ins := CBInstruction{Target: r8[opcode&0x07]}
	switch group := opcode >> 6; group {
	case 0:
		ins.Op = CBOp(opcode >> 3)
	default:
		ins.Op = CBBIT + CBOp(group-1)
		ins.Bit = (opcode >> 3) & 0x07
	}
	return ins
}

func init() {
	DefineInstruction(0x00, 4, Instruction{Op: OpNOP})
	DefineInstruction(0x10, 4, Instruction{Op: OpSTOP})
	DefineInstruction(0x76, 4, Instruction{Op: OpHALT})
	DefineInstruction(0xF3, 4, Instruction{Op: OpDI})
	DefineInstruction(0xFB, 4, Instruction{Op: OpEI})

	pairs := [4]Target{BC, DE, HL, SP}
	stackPairs := [4]Target{BC, DE, HL, AF}
	for i, rr := range pairs {
		base := uint8(i) << 4
		DefineInstruction(base|0x01, 12, Instruction{Op: OpLD16, Dst: rr, Src: D16})
		DefineInstruction(base|0x03, 8, Instruction{Op: OpINC16, Dst: rr})
		DefineInstruction(base|0x09, 8, Instruction{Op: OpADDHL, Dst: HL, Src: rr})
		DefineInstruction(base|0x0B, 8, Instruction{Op: OpDEC16, Dst: rr})

		DefineInstruction(0xC1|base, 12, Instruction{Op: OpPOP, Dst: stackPairs[i]})
		DefineInstruction(0xC5|base, 16, Instruction{Op: OpPUSH, Src: stackPairs[i]})
	}

	// indirect accumulator loads
	for i, ind := range [4]Target{IndBC, IndDE, HLI, HLD} {
		base := uint8(i) << 4
		DefineInstruction(base|0x02, 8, Instruction{Op: OpLD, Dst: ind, Src: A})
		DefineInstruction(base|0x0A, 8, Instruction{Op: OpLD, Dst: A, Src: ind})
	}

	// 8-bit INC, DEC and immediate loads, by register in bits 3-5
	for i, r := range r8 {
		base := uint8(i) << 3
		cycles, ldCycles := uint8(4), uint8(8)
		if r == IndHL {
			cycles, ldCycles = 12, 12
		}
		DefineInstruction(base|0x04, cycles, Instruction{Op: OpINC, Dst: r})
		DefineInstruction(base|0x05, cycles, Instruction{Op: OpDEC, Dst: r})
		DefineInstruction(base|0x06, ldCycles, Instruction{Op: OpLD, Dst: r, Src: D8})
	}

	DefineInstruction(0x07, 4, Instruction{Op: OpRLCA})
	DefineInstruction(0x0F, 4, Instruction{Op: OpRRCA})
	DefineInstruction(0x17, 4, Instruction{Op: OpRLA})
	DefineInstruction(0x1F, 4, Instruction{Op: OpRRA})
	DefineInstruction(0x27, 4, Instruction{Op: OpDAA})
	DefineInstruction(0x2F, 4, Instruction{Op: OpCPL})
	DefineInstruction(0x37, 4, Instruction{Op: OpSCF})
	DefineInstruction(0x3F, 4, Instruction{Op: OpCCF})

	DefineInstruction(0x08, 20, Instruction{Op: OpLD16, Dst: IndA16, Src: SP})
	DefineInstruction(0xF8, 12, Instruction{Op: OpLDHLSP, Dst: HL, Src: E8})
	DefineInstruction(0xF9, 8, Instruction{Op: OpLD16, Dst: SP, Src: HL})
	DefineInstruction(0xE8, 16, Instruction{Op: OpADDSP, Dst: SP, Src: E8})

	// 0x40 - 0x7F - LD r, r' (0x76 is HALT)
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			opcode := uint8(0x40 | dst<<3 | src)
			if opcode == 0x76 {
				continue
			}
			cycles := uint8(4)
			if r8[dst] == IndHL || r8[src] == IndHL {
				cycles = 8
			}
			DefineInstruction(opcode, cycles, Instruction{Op: OpLD, Dst: r8[dst], Src: r8[src]})
		}
	}

	// 0x80 - 0xBF - ALU A, r and 0xC6 - 0xFE - ALU A, d8
	alu := [8]Op{OpADD, OpADC, OpSUB, OpSBC, OpAND, OpXOR, OpOR, OpCP}
	for i, op := range alu {
		for src := 0; src < 8; src++ {
			cycles := uint8(4)
			if r8[src] == IndHL {
				cycles = 8
			}
			DefineInstruction(uint8(0x80|i<<3|src), cycles, Instruction{Op: op, Dst: A, Src: r8[src]})
		}
		DefineInstruction(uint8(0xC6|i<<3), 8, Instruction{Op: op, Dst: A, Src: D8})
	}

	// control flow, conditional forms report the not taken cost
	conditions := [4]Condition{NotZero, Zero, NotCarry, Carry}
	for i, cond := range conditions {
		base := uint8(i) << 3
		DefineInstruction(0x20|base, 8, Instruction{Op: OpJR, Cond: cond, Src: E8})
		DefineInstruction(0xC0|base, 8, Instruction{Op: OpRET, Cond: cond})
		DefineInstruction(0xC2|base, 12, Instruction{Op: OpJP, Cond: cond, Src: D16})
		DefineInstruction(0xC4|base, 12, Instruction{Op: OpCALL, Cond: cond, Src: D16})
	}
	DefineInstruction(0x18, 12, Instruction{Op: OpJR, Src: E8})
	DefineInstruction(0xC3, 16, Instruction{Op: OpJP, Src: D16})
	DefineInstruction(0xE9, 4, Instruction{Op: OpJP, Src: HL})
	DefineInstruction(0xCD, 24, Instruction{Op: OpCALL, Src: D16})
	DefineInstruction(0xC9, 16, Instruction{Op: OpRET})
	DefineInstruction(0xD9, 16, Instruction{Op: OpRETI})
	for i := uint8(0); i < 8; i++ {
		DefineInstruction(0xC7|i<<3, 16, Instruction{Op: OpRST, Vector: uint16(i) << 3})
	}

	// high memory loads
	DefineInstruction(0xE0, 12, Instruction{Op: OpLD, Dst: IndA8, Src: A})
	DefineInstruction(0xF0, 12, Instruction{Op: OpLD, Dst: A, Src: IndA8})
	DefineInstruction(0xE2, 8, Instruction{Op: OpLD, Dst: IndC, Src: A})
	DefineInstruction(0xF2, 8, Instruction{Op: OpLD, Dst: A, Src: IndC})
	DefineInstruction(0xEA, 16, Instruction{Op: OpLD, Dst: IndA16, Src: A})
	DefineInstruction(0xFA, 16, Instruction{Op: OpLD, Dst: A, Src: IndA16})
}
