package cpu

import (
	"fmt"
	"strings"
)

// Op identifies an instruction family of the primary opcode table.
type Op uint8

const (
	OpNOP Op = iota
	OpSTOP
	OpHALT
	OpDI
	OpEI
	OpLD     // 8-bit load
	OpLD16   // 16-bit load
	OpLDHLSP // LD HL, SP+e8
	OpINC
	OpDEC
	OpINC16
	OpDEC16
	OpADD
	OpADC
	OpSUB
	OpSBC
	OpAND
	OpXOR
	OpOR
	OpCP
	OpADDHL
	OpADDSP
	OpRLCA
	OpRRCA
	OpRLA
	OpRRA
	OpDAA
	OpCPL
	OpSCF
	OpCCF
	OpJP
	OpJR
	OpCALL
	OpRET
	OpRETI
	OpRST
	OpPUSH
	OpPOP
)

var opNames = [...]string{
	OpNOP:    "NOP",
	OpSTOP:   "STOP",
	OpHALT:   "HALT",
	OpDI:     "DI",
	OpEI:     "EI",
	OpLD:     "LD",
	OpLD16:   "LD",
	OpLDHLSP: "LD",
	OpINC:    "INC",
	OpDEC:    "DEC",
	OpINC16:  "INC",
	OpDEC16:  "DEC",
	OpADD:    "ADD",
	OpADC:    "ADC",
	OpSUB:    "SUB",
	OpSBC:    "SBC",
	OpAND:    "AND",
	OpXOR:    "XOR",
	OpOR:     "OR",
	OpCP:     "CP",
	OpADDHL:  "ADD",
	OpADDSP:  "ADD",
	OpRLCA:   "RLCA",
	OpRRCA:   "RRCA",
	OpRLA:    "RLA",
	OpRRA:    "RRA",
	OpDAA:    "DAA",
	OpCPL:    "CPL",
	OpSCF:    "SCF",
	OpCCF:    "CCF",
	OpJP:     "JP",
	OpJR:     "JR",
	OpCALL:   "CALL",
	OpRET:    "RET",
	OpRETI:   "RETI",
	OpRST:    "RST",
	OpPUSH:   "PUSH",
	OpPOP:    "POP",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Target selects where an operand lives.
type Target uint8

const (
	None Target = iota
	A
	B
	C
	D
	E
	H
	L
	AF
	BC
	DE
	HL
	SP
	HLI    // (HL+), HL incremented after the access
	HLD    // (HL-), HL decremented after the access
	D8     // 8-bit immediate
	D16    // 16-bit immediate
	E8     // signed 8-bit immediate
	IndBC  // (BC)
	IndDE  // (DE)
	IndHL  // (HL)
	IndA16 // (a16)
	IndA8  // (0xFF00+a8)
	IndC   // (0xFF00+C)
)

var targetNames = [...]string{
	None:   "",
	A:      "A",
	B:      "B",
	C:      "C",
	D:      "D",
	E:      "E",
	H:      "H",
	L:      "L",
	AF:     "AF",
	BC:     "BC",
	DE:     "DE",
	HL:     "HL",
	SP:     "SP",
	HLI:    "(HL+)",
	HLD:    "(HL-)",
	D8:     "d8",
	D16:    "d16",
	E8:     "e8",
	IndBC:  "(BC)",
	IndDE:  "(DE)",
	IndHL:  "(HL)",
	IndA16: "(a16)",
	IndA8:  "(a8)",
	IndC:   "(C)",
}

func (t Target) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}
	return fmt.Sprintf("Target(%d)", uint8(t))
}

// size returns the number of immediate bytes the target consumes.
func (t Target) size() uint16 {
	switch t {
	case D8, E8, IndA8:
		return 1
	case D16, IndA16:
		return 2
	}
	return 0
}

// r8 lists the 8-bit targets in the order they are encoded in the
// low three bits of an opcode.
var r8 = [8]Target{B, C, D, E, H, L, IndHL, A}

// Condition is the branch condition of JP, JR, CALL and RET.
type Condition uint8

const (
	Always Condition = iota
	NotZero
	Zero
	NotCarry
	Carry
)

func (c Condition) String() string {
	switch c {
	case NotZero:
		return "NZ"
	case Zero:
		return "Z"
	case NotCarry:
		return "NC"
	case Carry:
		return "C"
	}
	return ""
}

// Instruction is a decoded primary opcode. Its length and base cycle
// cost are fixed by the opcode; conditional branches report the cost
// of the branch not being taken.
type Instruction struct {
	Op     Op
	Dst    Target
	Src    Target
	Cond   Condition
	Vector uint16 // RST target

	length uint16
	cycles uint8
}

// Length returns the encoded length of the instruction in bytes.
func (i Instruction) Length() uint16 { return i.length }

// Cycles returns the base cost of the instruction in clock cycles.
func (i Instruction) Cycles() uint8 { return i.cycles }

func (i Instruction) String() string {
	var operands []string
	if i.Cond != Always {
		operands = append(operands, i.Cond.String())
	}
	switch i.Op {
	case OpRST:
		operands = append(operands, fmt.Sprintf("%02XH", i.Vector))
	case OpLDHLSP:
		operands = append(operands, "HL", "SP+e8")
	default:
		if i.Dst != None {
			operands = append(operands, i.Dst.String())
		}
		if i.Src != None {
			operands = append(operands, i.Src.String())
		}
	}
	if len(operands) == 0 {
		return i.Op.String()
	}
	return i.Op.String() + " " + strings.Join(operands, ", ")
}

// CBOp identifies an instruction family of the CB prefixed table.
type CBOp uint8

const (
	CBRLC CBOp = iota
	CBRRC
	CBRL
	CBRR
	CBSLA
	CBSRA
	CBSWAP
	CBSRL
	CBBIT
	CBRES
	CBSET
)

var cbOpNames = [...]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL", "BIT", "RES", "SET"}

func (o CBOp) String() string {
	if int(o) < len(cbOpNames) {
		return cbOpNames[o]
	}
	return fmt.Sprintf("CBOp(%d)", uint8(o))
}

// CBInstruction is a decoded CB prefixed opcode. Its length includes
// the prefix byte.
type CBInstruction struct {
	Op     CBOp
	Target Target
	Bit    uint8 // BIT, RES and SET only
}

// Length returns the encoded length of the instruction, prefix included.
func (i CBInstruction) Length() uint16 { return 2 }

// Cycles returns the cost of the instruction in clock cycles.
func (i CBInstruction) Cycles() uint8 {
	if i.Target != IndHL {
		return 8
	}
	if i.Op == CBBIT {
		return 12
	}
	return 16
}

func (i CBInstruction) String() string {
	if i.Op >= CBBIT {
		return fmt.Sprintf("%s %d, %s", i.Op, i.Bit, i.Target)
	}
	return fmt.Sprintf("%s %s", i.Op, i.Target)
}
