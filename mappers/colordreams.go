package mappers

import (
	"io"

	"nestor-core/ines"
)

// colordreams is mapper 11: a single register at 0x8000-0xFFFF packs a
// 32KiB PRG bank select in the low nibble and an 8KiB CHR bank select in
// the high nibble.
type colordreams struct {
	base
	reg uint8
}

func newColorDreams(rom *ines.Rom, irq IRQLine) Mapper {
	return &colordreams{base: newBase(rom)}
}

func (m *colordreams) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		bank32 := int(m.reg & 0x0F)
		off := addr - 0x8000
		return m.prgWindow16K(bank32*2+int(off/ines.PRGBankSize), off%ines.PRGBankSize)
	case addr >= 0x6000:
		return m.readWRAM(addr)
	default:
		return 0
	}
}

func (m *colordreams) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.reg = val
	case addr >= 0x6000:
		m.writeWRAM(addr, val)
	}
}

func (m *colordreams) PPURead(addr uint16) uint8 {
	banks := len(m.chr) / ines.CHRBankSize
	if banks == 0 {
		return 0
	}
	bank := int(m.reg>>4) % banks
	return m.chr[bank*ines.CHRBankSize+int(addr)%ines.CHRBankSize]
}

func (m *colordreams) PPUWrite(addr uint16, val uint8) { m.ppuWriteCHR(addr, val) }
func (m *colordreams) OnScanline(scanline int)          {}

func (m *colordreams) Snapshot(w io.Writer) error {
	if err := writeU32Fields(w, 1, uint32(m.reg)); err != nil {
		return err
	}
	return writeWRAMSnapshot(w, 1, m.wram)
}

func (m *colordreams) Restore(r io.Reader) error {
	var reg uint32
	if err := readU32Fields(r, 1, &reg); err != nil {
		return err
	}
	m.reg = uint8(reg)
	return readWRAMSnapshot(r, 1, m.wram)
}
