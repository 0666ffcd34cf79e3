package cpu

// addrMode identifies one of the 13 6502 addressing modes (spec.md §4.2).
type addrMode uint8

const (
	modeZeroPage addrMode = iota
	modeRelative
	modeImplied
	modeAbsolute
	modeAccumulator
	modeImmediate
	modeZeroPageX
	modeZeroPageY
	modeAbsoluteX
	modeAbsoluteY
	modeIndirectX
	modeIndirectY
	modeIndirect
)

// resolved is the outcome of evaluating an addressing mode: an effective
// address (meaningless for Implied/Accumulator), whether an indexed mode
// crossed a page (Step charges the penalty cycle only for read-type
// opcodes), and, for Accumulator, a flag so the execute step knows to
// read/write A instead of memory.
type resolved struct {
	addr       uint16
	pageCross  bool
	useAccum   bool
}

// resolve evaluates the addressing mode for the instruction at c.PC,
// *without* advancing PC (the caller advances by instrSize separately,
// matching spec.md §4.2 step 5 running after execute-address-evaluation).
func (c *CPU) resolve(mode addrMode) resolved {
	switch mode {
	case modeZeroPage:
		return resolved{addr: uint16(c.peek8(c.PC + 1))}

	case modeRelative:
		off := int8(c.peek8(c.PC + 1))
		return resolved{addr: uint16(int32(c.PC+2) + int32(off))}

	case modeImplied:
		return resolved{}

	case modeAccumulator:
		return resolved{useAccum: true}

	case modeImmediate:
		return resolved{addr: c.PC + 1}

	case modeAbsolute:
		return resolved{addr: c.peek16(c.PC + 1)}

	case modeZeroPageX:
		return resolved{addr: uint16(c.peek8(c.PC+1) + c.X)}

	case modeZeroPageY:
		return resolved{addr: uint16(c.peek8(c.PC+1) + c.Y)}

	case modeAbsoluteX:
		base := c.peek16(c.PC + 1)
		addr := base + uint16(c.X)
		return resolved{addr: addr, pageCross: (base & 0xFF00) != (addr & 0xFF00)}

	case modeAbsoluteY:
		base := c.peek16(c.PC + 1)
		addr := base + uint16(c.Y)
		return resolved{addr: addr, pageCross: (base & 0xFF00) != (addr & 0xFF00)}

	case modeIndirectX:
		zp := c.peek8(c.PC+1) + c.X
		addr := uint16(c.peek8(uint16(zp))) | uint16(c.peek8(uint16(zp+1)))<<8
		return resolved{addr: addr}

	case modeIndirectY:
		zp := c.peek8(c.PC + 1)
		base := uint16(c.peek8(uint16(zp))) | uint16(c.peek8(uint16(zp+1)))<<8
		addr := base + uint16(c.Y)
		return resolved{addr: addr, pageCross: (base & 0xFF00) != (addr & 0xFF00)}

	case modeIndirect:
		ptr := c.peek16(c.PC + 1)
		return resolved{addr: c.bus.Read16PageWrapped(ptr)}

	default:
		return resolved{}
	}
}

// peek8/peek16 read operand bytes through the ordinary bus Read8/Read16
// path; they are readability aliases over the bus, not side-effect-free
// peeks.
func (c *CPU) peek8(addr uint16) uint8   { return c.bus.Read8(addr) }
func (c *CPU) peek16(addr uint16) uint16 { return c.bus.Read16(addr) }
