package cpu

// opcodeEntry is one row of the decode table (spec.md §4.2 step 3):
// operation, addressing mode, total instruction size in bytes, base
// cycle count, and whether it belongs to the read-type class that
// incurs the page-cross "maybe-penalty".
type opcodeEntry struct {
	exec     exec
	mode     addrMode
	size     uint8
	cycles   uint8
	readType bool
}

// opcodeTable covers exactly the 151 official 6502 opcodes; every other
// slot is left zero-valued (exec == nil), which Step treats as an
// illegal opcode and latches the crash flag.
var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() [256]opcodeEntry {
	var t [256]opcodeEntry

	entry := func(op uint8, f exec, mode addrMode, size, cycles uint8, readType bool) {
		t[op] = opcodeEntry{exec: f, mode: mode, size: size, cycles: cycles, readType: readType}
	}

	// ADC
	entry(0x69, opADC, modeImmediate, 2, 2, true)
	entry(0x65, opADC, modeZeroPage, 2, 3, true)
	entry(0x75, opADC, modeZeroPageX, 2, 4, true)
	entry(0x6D, opADC, modeAbsolute, 3, 4, true)
	entry(0x7D, opADC, modeAbsoluteX, 3, 4, true)
	entry(0x79, opADC, modeAbsoluteY, 3, 4, true)
	entry(0x61, opADC, modeIndirectX, 2, 6, true)
	entry(0x71, opADC, modeIndirectY, 2, 5, true)

	// AND
	entry(0x29, opAND, modeImmediate, 2, 2, true)
	entry(0x25, opAND, modeZeroPage, 2, 3, true)
	entry(0x35, opAND, modeZeroPageX, 2, 4, true)
	entry(0x2D, opAND, modeAbsolute, 3, 4, true)
	entry(0x3D, opAND, modeAbsoluteX, 3, 4, true)
	entry(0x39, opAND, modeAbsoluteY, 3, 4, true)
	entry(0x21, opAND, modeIndirectX, 2, 6, true)
	entry(0x31, opAND, modeIndirectY, 2, 5, true)

	// ASL
	entry(0x0A, opASL, modeAccumulator, 1, 2, false)
	entry(0x06, opASL, modeZeroPage, 2, 5, false)
	entry(0x16, opASL, modeZeroPageX, 2, 6, false)
	entry(0x0E, opASL, modeAbsolute, 3, 6, false)
	entry(0x1E, opASL, modeAbsoluteX, 3, 7, false)

	// branches
	entry(0x90, opBCC, modeRelative, 2, 2, false)
	entry(0xB0, opBCS, modeRelative, 2, 2, false)
	entry(0xF0, opBEQ, modeRelative, 2, 2, false)
	entry(0x30, opBMI, modeRelative, 2, 2, false)
	entry(0xD0, opBNE, modeRelative, 2, 2, false)
	entry(0x10, opBPL, modeRelative, 2, 2, false)
	entry(0x50, opBVC, modeRelative, 2, 2, false)
	entry(0x70, opBVS, modeRelative, 2, 2, false)

	// BIT
	entry(0x24, opBIT, modeZeroPage, 2, 3, false)
	entry(0x2C, opBIT, modeAbsolute, 3, 4, false)

	// BRK
	entry(0x00, opBRK, modeImplied, 1, 7, false)

	// flag clear/set
	entry(0x18, opCLC, modeImplied, 1, 2, false)
	entry(0xD8, opCLD, modeImplied, 1, 2, false)
	entry(0x58, opCLI, modeImplied, 1, 2, false)
	entry(0xB8, opCLV, modeImplied, 1, 2, false)
	entry(0x38, opSEC, modeImplied, 1, 2, false)
	entry(0xF8, opSED, modeImplied, 1, 2, false)
	entry(0x78, opSEI, modeImplied, 1, 2, false)

	// CMP
	entry(0xC9, opCMP, modeImmediate, 2, 2, true)
	entry(0xC5, opCMP, modeZeroPage, 2, 3, true)
	entry(0xD5, opCMP, modeZeroPageX, 2, 4, true)
	entry(0xCD, opCMP, modeAbsolute, 3, 4, true)
	entry(0xDD, opCMP, modeAbsoluteX, 3, 4, true)
	entry(0xD9, opCMP, modeAbsoluteY, 3, 4, true)
	entry(0xC1, opCMP, modeIndirectX, 2, 6, true)
	entry(0xD1, opCMP, modeIndirectY, 2, 5, true)

	// CPX/CPY
	entry(0xE0, opCPX, modeImmediate, 2, 2, true)
	entry(0xE4, opCPX, modeZeroPage, 2, 3, true)
	entry(0xEC, opCPX, modeAbsolute, 3, 4, true)
	entry(0xC0, opCPY, modeImmediate, 2, 2, true)
	entry(0xC4, opCPY, modeZeroPage, 2, 3, true)
	entry(0xCC, opCPY, modeAbsolute, 3, 4, true)

	// DEC/INC
	entry(0xC6, opDEC, modeZeroPage, 2, 5, false)
	entry(0xD6, opDEC, modeZeroPageX, 2, 6, false)
	entry(0xCE, opDEC, modeAbsolute, 3, 6, false)
	entry(0xDE, opDEC, modeAbsoluteX, 3, 7, false)
	entry(0xE6, opINC, modeZeroPage, 2, 5, false)
	entry(0xF6, opINC, modeZeroPageX, 2, 6, false)
	entry(0xEE, opINC, modeAbsolute, 3, 6, false)
	entry(0xFE, opINC, modeAbsoluteX, 3, 7, false)

	// register inc/dec
	entry(0xCA, opDEX, modeImplied, 1, 2, false)
	entry(0x88, opDEY, modeImplied, 1, 2, false)
	entry(0xE8, opINX, modeImplied, 1, 2, false)
	entry(0xC8, opINY, modeImplied, 1, 2, false)

	// EOR
	entry(0x49, opEOR, modeImmediate, 2, 2, true)
	entry(0x45, opEOR, modeZeroPage, 2, 3, true)
	entry(0x55, opEOR, modeZeroPageX, 2, 4, true)
	entry(0x4D, opEOR, modeAbsolute, 3, 4, true)
	entry(0x5D, opEOR, modeAbsoluteX, 3, 4, true)
	entry(0x59, opEOR, modeAbsoluteY, 3, 4, true)
	entry(0x41, opEOR, modeIndirectX, 2, 6, true)
	entry(0x51, opEOR, modeIndirectY, 2, 5, true)

	// JMP/JSR
	entry(0x4C, opJMP, modeAbsolute, 3, 3, false)
	entry(0x6C, opJMP, modeIndirect, 3, 5, false)
	entry(0x20, opJSR, modeAbsolute, 3, 6, false)

	// LDA/LDX/LDY
	entry(0xA9, opLDA, modeImmediate, 2, 2, true)
	entry(0xA5, opLDA, modeZeroPage, 2, 3, true)
	entry(0xB5, opLDA, modeZeroPageX, 2, 4, true)
	entry(0xAD, opLDA, modeAbsolute, 3, 4, true)
	entry(0xBD, opLDA, modeAbsoluteX, 3, 4, true)
	entry(0xB9, opLDA, modeAbsoluteY, 3, 4, true)
	entry(0xA1, opLDA, modeIndirectX, 2, 6, true)
	entry(0xB1, opLDA, modeIndirectY, 2, 5, true)

	entry(0xA2, opLDX, modeImmediate, 2, 2, true)
	entry(0xA6, opLDX, modeZeroPage, 2, 3, true)
	entry(0xB6, opLDX, modeZeroPageY, 2, 4, true)
	entry(0xAE, opLDX, modeAbsolute, 3, 4, true)
	entry(0xBE, opLDX, modeAbsoluteY, 3, 4, true)

	entry(0xA0, opLDY, modeImmediate, 2, 2, true)
	entry(0xA4, opLDY, modeZeroPage, 2, 3, true)
	entry(0xB4, opLDY, modeZeroPageX, 2, 4, true)
	entry(0xAC, opLDY, modeAbsolute, 3, 4, true)
	entry(0xBC, opLDY, modeAbsoluteX, 3, 4, true)

	// LSR
	entry(0x4A, opLSR, modeAccumulator, 1, 2, false)
	entry(0x46, opLSR, modeZeroPage, 2, 5, false)
	entry(0x56, opLSR, modeZeroPageX, 2, 6, false)
	entry(0x4E, opLSR, modeAbsolute, 3, 6, false)
	entry(0x5E, opLSR, modeAbsoluteX, 3, 7, false)

	// NOP
	entry(0xEA, opNOP, modeImplied, 1, 2, false)

	// ORA
	entry(0x09, opORA, modeImmediate, 2, 2, true)
	entry(0x05, opORA, modeZeroPage, 2, 3, true)
	entry(0x15, opORA, modeZeroPageX, 2, 4, true)
	entry(0x0D, opORA, modeAbsolute, 3, 4, true)
	entry(0x1D, opORA, modeAbsoluteX, 3, 4, true)
	entry(0x19, opORA, modeAbsoluteY, 3, 4, true)
	entry(0x01, opORA, modeIndirectX, 2, 6, true)
	entry(0x11, opORA, modeIndirectY, 2, 5, true)

	// stack
	entry(0x48, opPHA, modeImplied, 1, 3, false)
	entry(0x08, opPHP, modeImplied, 1, 3, false)
	entry(0x68, opPLA, modeImplied, 1, 4, false)
	entry(0x28, opPLP, modeImplied, 1, 4, false)

	// ROL/ROR
	entry(0x2A, opROL, modeAccumulator, 1, 2, false)
	entry(0x26, opROL, modeZeroPage, 2, 5, false)
	entry(0x36, opROL, modeZeroPageX, 2, 6, false)
	entry(0x2E, opROL, modeAbsolute, 3, 6, false)
	entry(0x3E, opROL, modeAbsoluteX, 3, 7, false)
	entry(0x6A, opROR, modeAccumulator, 1, 2, false)
	entry(0x66, opROR, modeZeroPage, 2, 5, false)
	entry(0x76, opROR, modeZeroPageX, 2, 6, false)
	entry(0x6E, opROR, modeAbsolute, 3, 6, false)
	entry(0x7E, opROR, modeAbsoluteX, 3, 7, false)

	// RTI/RTS
	entry(0x40, opRTI, modeImplied, 1, 6, false)
	entry(0x60, opRTS, modeImplied, 1, 6, false)

	// SBC
	entry(0xE9, opSBC, modeImmediate, 2, 2, true)
	entry(0xE5, opSBC, modeZeroPage, 2, 3, true)
	entry(0xF5, opSBC, modeZeroPageX, 2, 4, true)
	entry(0xED, opSBC, modeAbsolute, 3, 4, true)
	entry(0xFD, opSBC, modeAbsoluteX, 3, 4, true)
	entry(0xF9, opSBC, modeAbsoluteY, 3, 4, true)
	entry(0xE1, opSBC, modeIndirectX, 2, 6, true)
	entry(0xF1, opSBC, modeIndirectY, 2, 5, true)

	// STA/STX/STY
	entry(0x85, opSTA, modeZeroPage, 2, 3, false)
	entry(0x95, opSTA, modeZeroPageX, 2, 4, false)
	entry(0x8D, opSTA, modeAbsolute, 3, 4, false)
	entry(0x9D, opSTA, modeAbsoluteX, 3, 5, false)
	entry(0x99, opSTA, modeAbsoluteY, 3, 5, false)
	entry(0x81, opSTA, modeIndirectX, 2, 6, false)
	entry(0x91, opSTA, modeIndirectY, 2, 6, false)

	entry(0x86, opSTX, modeZeroPage, 2, 3, false)
	entry(0x96, opSTX, modeZeroPageY, 2, 4, false)
	entry(0x8E, opSTX, modeAbsolute, 3, 4, false)

	entry(0x84, opSTY, modeZeroPage, 2, 3, false)
	entry(0x94, opSTY, modeZeroPageX, 2, 4, false)
	entry(0x8C, opSTY, modeAbsolute, 3, 4, false)

	// transfers
	entry(0xAA, opTAX, modeImplied, 1, 2, false)
	entry(0xA8, opTAY, modeImplied, 1, 2, false)
	entry(0xBA, opTSX, modeImplied, 1, 2, false)
	entry(0x8A, opTXA, modeImplied, 1, 2, false)
	entry(0x9A, opTXS, modeImplied, 1, 2, false)
	entry(0x98, opTYA, modeImplied, 1, 2, false)

	return t
}
