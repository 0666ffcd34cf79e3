package mappers

import (
	"io"

	"nestor-core/ines"
)

// mmc1 is mapper 1: a 5-bit shift register loaded by five consecutive
// writes to any address >= 0x8000. Bit 7 of a write resets the shift
// register (and forces 16KiB PRG mode); on the fifth write the
// destination register is chosen by (addr>>13)&3 (spec.md §4.3).
type mmc1 struct {
	base

	shift   uint8
	count   uint8
	control uint8
	chr0    uint8
	chr1    uint8
	prg     uint8
}

func newMMC1(rom *ines.Rom, irq IRQLine) Mapper {
	m := &mmc1{base: newBase(rom)}
	// Power-on state: bits 2,3 of the control register set (16KiB PRG
	// mode, 0x8000 swappable, 0xC000 fixed to the last bank).
	m.control = 0x0C
	return m
}

func (m *mmc1) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		bank, off := m.prgBankFor(addr)
		return m.prgWindow16K(bank, off)
	case addr >= 0x6000:
		return m.readWRAM(addr)
	default:
		return 0
	}
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.writeSerial(addr, val)
	case addr >= 0x6000:
		m.writeWRAM(addr, val)
	}
}

// writeSerial implements the shift-register protocol: a value with bit 7
// set resets the register and control mode; otherwise bit 0 of val is
// shifted in, and on the fifth write the byte commits to the register
// selected by the address that triggered the commit.
func (m *mmc1) writeSerial(addr uint16, val uint8) {
	if val&0x80 != 0 {
		m.shift = 0
		m.count = 0
		m.control |= 0x0C
		return
	}

	m.shift = (m.shift >> 1) | ((val & 0x01) << 4)
	m.count++
	if m.count < 5 {
		return
	}

	committed := m.shift
	m.shift = 0
	m.count = 0

	switch (addr >> 13) & 3 {
	case 0:
		m.control = committed
	case 1:
		m.chr0 = committed
	case 2:
		m.chr1 = committed
	case 3:
		m.prg = committed
	}
}

func (m *mmc1) prgMode() uint8 { return (m.control >> 2) & 0x03 }
func (m *mmc1) chrMode() uint8 { return (m.control >> 4) & 0x01 }

// prgBankFor resolves a CPU address in 0x8000-0xFFFF to a (16KiB bank
// index, offset within that bank) pair, per the PRG mode selected by the
// control register.
func (m *mmc1) prgBankFor(addr uint16) (bank int, offset uint16) {
	bank16 := int(m.prg & 0x0F)
	switch m.prgMode() {
	case 0, 1: // 32KiB mode: ignore the low bit of the bank number.
		base := bank16 &^ 1
		if addr < 0xC000 {
			return base, addr - 0x8000
		}
		return base + 1, addr - 0xC000
	case 2: // fix first bank at 0x8000, switch 0xC000.
		if addr < 0xC000 {
			return 0, addr - 0x8000
		}
		return bank16, addr - 0xC000
	default: // 3: switch 0x8000, fix last bank at 0xC000.
		if addr < 0xC000 {
			return bank16, addr - 0x8000
		}
		return -1, addr - 0xC000
	}
}

func (m *mmc1) PPURead(addr uint16) uint8 {
	bank, off := m.chrBankFor(addr)
	banks := len(m.chr) / 0x1000 // 4KiB half-banks
	if banks == 0 {
		return 0
	}
	bank %= banks
	idx := bank*0x1000 + int(off)
	if idx < 0 || idx >= len(m.chr) {
		return 0
	}
	return m.chr[idx]
}

func (m *mmc1) PPUWrite(addr uint16, val uint8) {
	if !m.chrIsRAM {
		return
	}
	bank, off := m.chrBankFor(addr)
	banks := len(m.chr) / 0x1000
	if banks == 0 {
		return
	}
	bank %= banks
	idx := bank*0x1000 + int(off)
	if idx >= 0 && idx < len(m.chr) {
		m.chr[idx] = val
	}
}

// chrBankFor resolves a PPU address in 0x0000-0x1FFF to a (4KiB
// half-bank index, offset) pair, per the CHR mode in the control
// register: 0 selects one 8KiB bank via chr0 (low bit ignored), 1
// selects two independent 4KiB banks via chr0/chr1.
func (m *mmc1) chrBankFor(addr uint16) (bank int, offset uint16) {
	if m.chrMode() == 0 {
		base := int(m.chr0 &^ 1)
		if addr < 0x1000 {
			return base, addr
		}
		return base + 1, addr - 0x1000
	}
	if addr < 0x1000 {
		return int(m.chr0), addr
	}
	return int(m.chr1), addr - 0x1000
}

func (m *mmc1) Mirroring() ines.NTMirroring {
	switch m.control & 0x03 {
	case 0:
		return ines.OnlyAScreen
	case 1:
		return ines.OnlyBScreen
	case 2:
		return ines.VertMirroring
	default:
		return ines.HorzMirroring
	}
}

func (m *mmc1) OnScanline(scanline int) {}

func (m *mmc1) Snapshot(w io.Writer) error {
	err := writeU32Fields(w, 1,
		uint32(m.shift), uint32(m.count), uint32(m.control),
		uint32(m.chr0), uint32(m.chr1), uint32(m.prg))
	if err != nil {
		return err
	}
	return writeWRAMSnapshot(w, 1, m.wram)
}

func (m *mmc1) Restore(r io.Reader) error {
	var shift, count, control, chr0, chr1, prg uint32
	if err := readU32Fields(r, 1, &shift, &count, &control, &chr0, &chr1, &prg); err != nil {
		return err
	}
	m.shift, m.count, m.control = uint8(shift), uint8(count), uint8(control)
	m.chr0, m.chr1, m.prg = uint8(chr0), uint8(chr1), uint8(prg)
	return readWRAMSnapshot(r, 1, m.wram)
}
