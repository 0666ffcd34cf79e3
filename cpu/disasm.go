package cpu

import "fmt"

// mnemonics gives the three-letter name for every official opcode, used
// only for disassembly/tracing -- the decode table itself dispatches by
// function pointer, not by name.
var mnemonics = buildMnemonics()

func buildMnemonics() [256]string {
	var m [256]string
	set := func(name string, ops ...uint8) {
		for _, op := range ops {
			m[op] = name
		}
	}
	set("ADC", 0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71)
	set("AND", 0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31)
	set("ASL", 0x0A, 0x06, 0x16, 0x0E, 0x1E)
	set("BCC", 0x90)
	set("BCS", 0xB0)
	set("BEQ", 0xF0)
	set("BIT", 0x24, 0x2C)
	set("BMI", 0x30)
	set("BNE", 0xD0)
	set("BPL", 0x10)
	set("BRK", 0x00)
	set("BVC", 0x50)
	set("BVS", 0x70)
	set("CLC", 0x18)
	set("CLD", 0xD8)
	set("CLI", 0x58)
	set("CLV", 0xB8)
	set("CMP", 0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1)
	set("CPX", 0xE0, 0xE4, 0xEC)
	set("CPY", 0xC0, 0xC4, 0xCC)
	set("DEC", 0xC6, 0xD6, 0xCE, 0xDE)
	set("DEX", 0xCA)
	set("DEY", 0x88)
	set("EOR", 0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51)
	set("INC", 0xE6, 0xF6, 0xEE, 0xFE)
	set("INX", 0xE8)
	set("INY", 0xC8)
	set("JMP", 0x4C, 0x6C)
	set("JSR", 0x20)
	set("LDA", 0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1)
	set("LDX", 0xA2, 0xA6, 0xB6, 0xAE, 0xBE)
	set("LDY", 0xA0, 0xA4, 0xB4, 0xAC, 0xBC)
	set("LSR", 0x4A, 0x46, 0x56, 0x4E, 0x5E)
	set("NOP", 0xEA)
	set("ORA", 0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11)
	set("PHA", 0x48)
	set("PHP", 0x08)
	set("PLA", 0x68)
	set("PLP", 0x28)
	set("ROL", 0x2A, 0x26, 0x36, 0x2E, 0x3E)
	set("ROR", 0x6A, 0x66, 0x76, 0x6E, 0x7E)
	set("RTI", 0x40)
	set("RTS", 0x60)
	set("SBC", 0xE9, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1)
	set("SEC", 0x38)
	set("SED", 0xF8)
	set("SEI", 0x78)
	set("STA", 0x85, 0x95, 0x8D, 0x9D, 0x99, 0x81, 0x91)
	set("STX", 0x86, 0x96, 0x8E)
	set("STY", 0x84, 0x94, 0x8C)
	set("TAX", 0xAA)
	set("TAY", 0xA8)
	set("TSX", 0xBA)
	set("TXA", 0x8A)
	set("TXS", 0x9A)
	set("TYA", 0x98)
	return m
}

// Disasm renders the instruction at addr as a single assembly line,
// without mutating CPU state. Unofficial opcodes render as "???".
func (c *CPU) Disasm(addr uint16) string {
	opcode := c.bus.Read8(addr)
	name := mnemonics[opcode]
	if name == "" {
		return fmt.Sprintf("$%02X ???", opcode)
	}
	entry := opcodeTable[opcode]

	operand := func() string {
		switch entry.mode {
		case modeImplied, modeAccumulator:
			return ""
		case modeImmediate:
			return fmt.Sprintf(" #$%02X", c.bus.Read8(addr+1))
		case modeZeroPage:
			return fmt.Sprintf(" $%02X", c.bus.Read8(addr+1))
		case modeZeroPageX:
			return fmt.Sprintf(" $%02X,X", c.bus.Read8(addr+1))
		case modeZeroPageY:
			return fmt.Sprintf(" $%02X,Y", c.bus.Read8(addr+1))
		case modeAbsolute:
			return fmt.Sprintf(" $%04X", c.bus.Read16(addr+1))
		case modeAbsoluteX:
			return fmt.Sprintf(" $%04X,X", c.bus.Read16(addr+1))
		case modeAbsoluteY:
			return fmt.Sprintf(" $%04X,Y", c.bus.Read16(addr+1))
		case modeIndirect:
			return fmt.Sprintf(" ($%04X)", c.bus.Read16(addr+1))
		case modeIndirectX:
			return fmt.Sprintf(" ($%02X,X)", c.bus.Read8(addr+1))
		case modeIndirectY:
			return fmt.Sprintf(" ($%02X),Y", c.bus.Read8(addr+1))
		case modeRelative:
			off := int8(c.bus.Read8(addr + 1))
			return fmt.Sprintf(" $%04X", uint16(int32(addr+2)+int32(off)))
		default:
			return ""
		}
	}()

	return name + operand
}

// Trace renders the nestest-golden-log-style line used by conformance
// tests: PC, registers, and cycle count.
func (c *CPU) Trace(cycles uint32) string {
	return fmt.Sprintf("%04X  %-30s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		c.PC, c.Disasm(c.PC), c.A, c.X, c.Y, c.P.Pack(), c.SP, cycles)
}
