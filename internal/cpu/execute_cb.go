package cpu

import "github.com/thelolagemann/gbcore/pkg/utils"

// executeCB runs an instruction from the CB prefixed table. The operand
// is read, transformed and written back, except for BIT which only
// inspects it.
func (c *CPU) executeCB(ins CBInstruction) (uint16, uint8, error) {
	value, err := c.read8(ins, ins.Target)
	if err != nil {
		return 0, 0, err
	}

	switch ins.Op {
	case CBRLC:
		value = c.rotateLeftCarry(value)
	case CBRRC:
		value = c.rotateRightCarry(value)
	case CBRL:
		value = c.rotateLeftThroughCarry(value)
	case CBRR:
		value = c.rotateRightThroughCarry(value)
	case CBSLA:
		value = c.shiftLeftArithmetic(value)
	case CBSRA:
		value = c.shiftRightArithmetic(value)
	case CBSWAP:
		value = c.swap(value)
	case CBSRL:
		value = c.shiftRightLogical(value)
	case CBBIT:
		c.testBit(value, ins.Bit)
		return ins.Length(), ins.Cycles(), nil
	case CBRES:
		value = utils.ClearBit(value, ins.Bit)
	case CBSET:
		value = utils.SetBit(value, ins.Bit)
	default:
		return 0, 0, invalidOperand(ins, ins.Target)
	}

	if err := c.write8(ins, ins.Target, value); err != nil {
		return 0, 0, err
	}
	return ins.Length(), ins.Cycles(), nil
}
