package mappers

import (
	"io"

	"nestor-core/ines"
)

// mmc2 is mapper 9: an 8KiB PRG bank register at 0xA000 switches the
// window at 0x8000; 0xA000-0xFFFF is fixed to the last three 8KiB banks.
// CHR is split into two 4KiB windows, each toggled between two bank
// registers by a latch that flips when the PPU fetches tile $FD or $FE
// in the corresponding half (a quirk used by Punch-Out!! for sprite
// animation, documented in spec.md §4.3).
type mmc2 struct {
	base

	prgBank uint8

	chrBank0FD, chrBank0FE uint8
	chrBank1FD, chrBank1FE uint8
	latch0, latch1         uint8 // 0xFD or 0xFE, whichever was last seen

	mirroringH bool
}

func newMMC2(rom *ines.Rom, irq IRQLine) Mapper {
	m := &mmc2{base: newBase(rom)}
	m.latch0, m.latch1 = 0xFE, 0xFE
	return m
}

func (m *mmc2) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000 && addr < 0xA000:
		return m.prgWindow8K(int(m.prgBank), addr-0x8000)
	case addr >= 0xA000:
		slot := int((addr - 0xA000) / 0x2000)
		return m.prgWindow8K(-(3 - slot), (addr-0xA000)%0x2000)
	case addr >= 0x6000:
		return m.readWRAM(addr)
	default:
		return 0
	}
}

func (m *mmc2) prgWindow8K(bank int, offset uint16) uint8 {
	const bankSize = 0x2000
	n := len(m.prg) / bankSize
	if n == 0 {
		return 0
	}
	if bank < 0 {
		bank += n
	}
	bank %= n
	return m.prg[bank*bankSize+int(offset)]
}

func (m *mmc2) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0xA000 && addr < 0xB000:
		m.prgBank = val & 0x0F
	case addr >= 0xB000 && addr < 0xC000:
		m.chrBank0FD = val & 0x1F
	case addr >= 0xC000 && addr < 0xD000:
		m.chrBank0FE = val & 0x1F
	case addr >= 0xD000 && addr < 0xE000:
		m.chrBank1FD = val & 0x1F
	case addr >= 0xE000 && addr < 0xF000:
		m.chrBank1FE = val & 0x1F
	case addr >= 0xF000:
		if val&0x01 != 0 {
			m.mirroringH = true
		} else {
			m.mirroringH = false
		}
	case addr >= 0x6000 && addr < 0x8000:
		m.writeWRAM(addr, val)
	}
}

func (m *mmc2) PPURead(addr uint16) uint8 {
	bank := m.chrBankFor(addr)
	n := len(m.chr) / 0x1000
	if n == 0 {
		return 0
	}
	bank %= n
	v := m.chr[bank*0x1000+int(addr)%0x1000]
	m.updateLatch(addr)
	return v
}

func (m *mmc2) chrBankFor(addr uint16) int {
	if addr < 0x1000 {
		if m.latch0 == 0xFD {
			return int(m.chrBank0FD)
		}
		return int(m.chrBank0FE)
	}
	if m.latch1 == 0xFD {
		return int(m.chrBank1FD)
	}
	return int(m.chrBank1FE)
}

// updateLatch flips the half's latch when the fetched tile index is
// 0xFD or 0xFE, matching the real PPU-address-decoded behavior: bits
// 4-11 of addr are the tile index within the pattern table fetch.
func (m *mmc2) updateLatch(addr uint16) {
	tile := uint8(addr >> 4)
	switch {
	case addr < 0x1000 && (tile == 0xFD || tile == 0xFE):
		m.latch0 = tile
	case addr >= 0x1000 && (tile == 0xFD || tile == 0xFE):
		m.latch1 = tile
	}
}

func (m *mmc2) PPUWrite(addr uint16, val uint8) { m.ppuWriteCHR(addr, val) }
func (m *mmc2) OnScanline(scanline int)          {}

func (m *mmc2) Mirroring() ines.NTMirroring {
	if m.mirroringH {
		return ines.HorzMirroring
	}
	return ines.VertMirroring
}

func (m *mmc2) Snapshot(w io.Writer) error {
	err := writeU32Fields(w, 1,
		uint32(m.prgBank), uint32(m.chrBank0FD), uint32(m.chrBank0FE),
		uint32(m.chrBank1FD), uint32(m.chrBank1FE), uint32(m.latch0), uint32(m.latch1),
		boolToU32(m.mirroringH))
	if err != nil {
		return err
	}
	return writeWRAMSnapshot(w, 1, m.wram)
}

func (m *mmc2) Restore(r io.Reader) error {
	var f [8]uint32
	if err := readU32Fields(r, 1, &f[0], &f[1], &f[2], &f[3], &f[4], &f[5], &f[6], &f[7]); err != nil {
		return err
	}
	m.prgBank, m.chrBank0FD, m.chrBank0FE = uint8(f[0]), uint8(f[1]), uint8(f[2])
	m.chrBank1FD, m.chrBank1FE = uint8(f[3]), uint8(f[4])
	m.latch0, m.latch1 = uint8(f[5]), uint8(f[6])
	m.mirroringH = f[7] != 0
	return readWRAMSnapshot(r, 1, m.wram)
}
