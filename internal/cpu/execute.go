package cpu

// Cycle costs of conditional control flow when the branch is taken.
const (
	cyclesJRTaken   = 12
	cyclesJPTaken   = 16
	cyclesCallTaken = 24
	cyclesRetTaken  = 20
)

// execute runs a primary instruction located at PC. It returns how far
// PC should advance and the number of cycles taken. Control flow that
// is taken sets PC itself and advances by 0.
func (c *CPU) execute(ins Instruction) (uint16, uint8, error) {
	length, cycles := ins.Length(), ins.Cycles()

	switch ins.Op {
	case OpNOP, OpDI, OpEI, OpHALT, OpSTOP:
		// no interrupt controller is attached, so these have no effect
	case OpLD:
		value, err := c.read8(ins, ins.Src)
		if err != nil {
			return 0, 0, err
		}
		if err := c.write8(ins, ins.Dst, value); err != nil {
			return 0, 0, err
		}
	case OpLD16:
		value, err := c.read16(ins, ins.Src)
		if err != nil {
			return 0, 0, err
		}
		if ins.Dst == IndA16 {
			addr, err := c.readOperand16()
			if err != nil {
				return 0, 0, err
			}
			if err := c.bus.Store16(addr, value); err != nil {
				return 0, 0, err
			}
			break
		}
		if err := c.write16(ins, ins.Dst, value); err != nil {
			return 0, 0, err
		}
	case OpLDHLSP:
		e, err := c.readOperand()
		if err != nil {
			return 0, 0, err
		}
		c.SetHL(c.addSPSigned(e))
	case OpINC, OpDEC:
		value, err := c.read8(ins, ins.Dst)
		if err != nil {
			return 0, 0, err
		}
		if ins.Op == OpINC {
			value = c.increment(value)
		} else {
			value = c.decrement(value)
		}
		if err := c.write8(ins, ins.Dst, value); err != nil {
			return 0, 0, err
		}
	case OpINC16, OpDEC16:
		value, err := c.read16(ins, ins.Dst)
		if err != nil {
			return 0, 0, err
		}
		if ins.Op == OpINC16 {
			value++
		} else {
			value--
		}
		if err := c.write16(ins, ins.Dst, value); err != nil {
			return 0, 0, err
		}
	case OpADD, OpADC, OpSUB, OpSBC, OpAND, OpXOR, OpOR, OpCP:
		if ins.Dst != A {
			return 0, 0, invalidOperand(ins, ins.Dst)
		}
		value, err := c.read8(ins, ins.Src)
		if err != nil {
			return 0, 0, err
		}
		switch ins.Op {
		case OpADD:
			c.add(value, false)
		case OpADC:
			c.add(value, true)
		case OpSUB:
			c.A = c.sub(value, false)
		case OpSBC:
			c.A = c.sub(value, true)
		case OpAND:
			c.and(value)
		case OpXOR:
			c.xor(value)
		case OpOR:
			c.or(value)
		case OpCP:
			c.sub(value, false)
		}
	case OpADDHL:
		value, err := c.read16(ins, ins.Src)
		if err != nil {
			return 0, 0, err
		}
		c.SetHL(c.addUint16(c.HL(), value))
	case OpADDSP:
		e, err := c.readOperand()
		if err != nil {
			return 0, 0, err
		}
		c.SP = c.addSPSigned(e)
	case OpRLCA:
		c.A = c.rotateLeftCarry(c.A)
		c.clearFlag(FlagZero)
	case OpRRCA:
		c.A = c.rotateRightCarry(c.A)
		c.clearFlag(FlagZero)
	case OpRLA:
		c.A = c.rotateLeftThroughCarry(c.A)
		c.clearFlag(FlagZero)
	case OpRRA:
		c.A = c.rotateRightThroughCarry(c.A)
		c.clearFlag(FlagZero)
	case OpDAA:
		c.decimalAdjust()
	case OpCPL:
		c.A = 0xFF ^ c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	case OpSCF:
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	case OpCCF:
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	case OpJP:
		if !c.checkCondition(ins.Cond) {
			break
		}
		addr, err := c.read16(ins, ins.Src)
		if err != nil {
			return 0, 0, err
		}
		c.PC = addr
		if ins.Cond != Always {
			cycles = cyclesJPTaken
		}
		return 0, cycles, nil
	case OpJR:
		if !c.checkCondition(ins.Cond) {
			break
		}
		e, err := c.readOperand()
		if err != nil {
			return 0, 0, err
		}
		c.PC = c.PC + length + uint16(int8(e))
		return 0, cyclesJRTaken, nil
	case OpCALL:
		if !c.checkCondition(ins.Cond) {
			break
		}
		addr, err := c.readOperand16()
		if err != nil {
			return 0, 0, err
		}
		if err := c.push(c.PC + length); err != nil {
			return 0, 0, err
		}
		c.PC = addr
		return 0, cyclesCallTaken, nil
	case OpRET, OpRETI:
		if !c.checkCondition(ins.Cond) {
			break
		}
		addr, err := c.pop()
		if err != nil {
			return 0, 0, err
		}
		c.PC = addr
		if ins.Cond != Always {
			cycles = cyclesRetTaken
		}
		return 0, cycles, nil
	case OpRST:
		// the return address is the byte after the single byte opcode
		if err := c.push(c.PC + 1); err != nil {
			return 0, 0, err
		}
		c.PC = ins.Vector
		return 0, cycles, nil
	case OpPUSH:
		if !stackPair(ins.Src) {
			return 0, 0, invalidOperand(ins, ins.Src)
		}
		value, err := c.read16(ins, ins.Src)
		if err != nil {
			return 0, 0, err
		}
		if err := c.push(value); err != nil {
			return 0, 0, err
		}
	case OpPOP:
		if !stackPair(ins.Dst) {
			return 0, 0, invalidOperand(ins, ins.Dst)
		}
		value, err := c.pop()
		if err != nil {
			return 0, 0, err
		}
		if err := c.write16(ins, ins.Dst, value); err != nil {
			return 0, 0, err
		}
	default:
		return 0, 0, invalidOperand(ins, ins.Dst)
	}

	return length, cycles, nil
}

// stackPair reports whether t can be pushed to or popped from the stack.
func stackPair(t Target) bool {
	switch t {
	case AF, BC, DE, HL:
		return true
	}
	return false
}
