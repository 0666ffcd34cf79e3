package mappers

import (
	"io"

	"nestor-core/ines"
)

// uxrom is mapper 2: a single PRG bank register at 0x8000-0xFFFF selects
// the 16KiB window at 0x8000; 0xC000 is hardwired to the last bank.
type uxrom struct {
	base
	prgBank uint8

	// busConflicts gates the NES 2.0 submapper 2 case: a handful of
	// UxROM boards wire the cartridge's data lines so a PRG-ROM write
	// is ANDed with whatever the ROM itself drives onto the bus at that
	// address (spec.md §12).
	busConflicts bool
}

func newUxROM(rom *ines.Rom, irq IRQLine) Mapper {
	return &uxrom{base: newBase(rom), busConflicts: rom.SubMapper() == 2}
}

func (m *uxrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0xC000:
		return m.prgWindow16K(-1, addr-0xC000)
	case addr >= 0x8000:
		return m.prgWindow16K(int(m.prgBank), addr-0x8000)
	case addr >= 0x6000:
		return m.readWRAM(addr)
	default:
		return 0
	}
}

func (m *uxrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		if m.busConflicts {
			val &= m.CPURead(addr)
		}
		m.prgBank = val
	case addr >= 0x6000:
		m.writeWRAM(addr, val)
	}
}

func (m *uxrom) PPURead(addr uint16) uint8       { return m.ppuReadCHR(addr) }
func (m *uxrom) PPUWrite(addr uint16, val uint8) { m.ppuWriteCHR(addr, val) }
func (m *uxrom) OnScanline(scanline int)          {}

func (m *uxrom) Snapshot(w io.Writer) error {
	if err := writeU32Fields(w, 1, uint32(m.prgBank)); err != nil {
		return err
	}
	return writeWRAMSnapshot(w, 1, m.wram)
}

func (m *uxrom) Restore(r io.Reader) error {
	var bank uint32
	if err := readU32Fields(r, 1, &bank); err != nil {
		return err
	}
	m.prgBank = uint8(bank)
	return readWRAMSnapshot(r, 1, m.wram)
}
