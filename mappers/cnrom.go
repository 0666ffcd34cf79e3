package mappers

import (
	"io"

	"nestor-core/ines"
)

// cnrom is mapper 3: a CHR bank register at 0x8000-0xFFFF selects the
// 8KiB CHR window; PRG is fixed, as on NROM.
type cnrom struct {
	base
	chrBank uint8

	// busConflicts gates the NES 2.0 submapper 2 bus-conflict case (spec.md §12).
	busConflicts bool
}

func newCNROM(rom *ines.Rom, irq IRQLine) Mapper {
	return &cnrom{base: newBase(rom), busConflicts: rom.SubMapper() == 2}
}

func (m *cnrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		off := addr - 0x8000
		if len(m.prg) <= ines.PRGBankSize {
			off %= ines.PRGBankSize
		}
		return m.prg[int(off)%len(m.prg)]
	case addr >= 0x6000:
		return m.readWRAM(addr)
	default:
		return 0
	}
}

func (m *cnrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		if m.busConflicts {
			val &= m.CPURead(addr)
		}
		m.chrBank = val & 0x03
	case addr >= 0x6000:
		m.writeWRAM(addr, val)
	}
}

func (m *cnrom) PPURead(addr uint16) uint8 {
	banks := len(m.chr) / ines.CHRBankSize
	if banks == 0 {
		return m.ppuReadCHR(addr)
	}
	bank := int(m.chrBank) % banks
	return m.chr[bank*ines.CHRBankSize+int(addr)%ines.CHRBankSize]
}

func (m *cnrom) PPUWrite(addr uint16, val uint8) { m.ppuWriteCHR(addr, val) }
func (m *cnrom) OnScanline(scanline int)          {}

func (m *cnrom) Snapshot(w io.Writer) error {
	if err := writeU32Fields(w, 1, uint32(m.chrBank)); err != nil {
		return err
	}
	return writeWRAMSnapshot(w, 1, m.wram)
}

func (m *cnrom) Restore(r io.Reader) error {
	var bank uint32
	if err := readU32Fields(r, 1, &bank); err != nil {
		return err
	}
	m.chrBank = uint8(bank)
	return readWRAMSnapshot(r, 1, m.wram)
}
