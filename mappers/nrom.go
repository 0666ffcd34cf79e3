package mappers

import (
	"io"

	"nestor-core/ines"
)

// nrom is mapper 0: no bank switching. A single 16KiB PRG bank is
// mirrored into both halves of the 0x8000-0xFFFF window; a 32KiB image
// fills the window directly. CHR is a fixed 8KiB window. Writes to
// 0x8000-0xFFFF are ignored, per spec.md §4.3.
type nrom struct {
	base
}

func newNROM(rom *ines.Rom, irq IRQLine) Mapper {
	return &nrom{base: newBase(rom)}
}

func (m *nrom) CPURead(addr uint16) uint8 {
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

func (m *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.writeWRAM(addr, val)
	}
	// 0x8000-0xFFFF writes are ignored for NROM.
}

func (m *nrom) PPURead(addr uint16) uint8       { return m.ppuReadCHR(addr) }
func (m *nrom) PPUWrite(addr uint16, val uint8) { m.ppuWriteCHR(addr, val) }
func (m *nrom) OnScanline(scanline int)          {}

func (m *nrom) Snapshot(w io.Writer) error { return writeWRAMSnapshot(w, 1, m.wram) }
func (m *nrom) Restore(r io.Reader) error  { return readWRAMSnapshot(r, 1, m.wram) }
