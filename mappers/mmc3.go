package mappers

import (
	"io"

	"nestor-core/cpu"
	"nestor-core/ines"
)

// mmc3 is mapper 4: a command register at 0x8000 selects one of 8 bank
// slots plus PRG/CHR inversion bits; the data register at 0x8001 writes
// the selected slot. A scanline-clocked IRQ counter raises a maskable
// CPU interrupt on its 1->0 transition when enabled (spec.md §4.3).
type mmc3 struct {
	base
	irq IRQLine

	bankSelect uint8
	regs       [8]uint8

	mirrorH bool
	wramOn  bool

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
}

func newMMC3(rom *ines.Rom, irq IRQLine) Mapper {
	return &mmc3{base: newBase(rom), irq: irq}
}

func (m *mmc3) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		bank, off := m.prgBankFor(addr)
		return m.prgWindow8K(bank, off)
	case addr >= 0x6000:
		if !m.wramOn {
			return 0
		}
		return m.readWRAM(addr)
	default:
		return 0
	}
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		if addr&1 == 0 {
			m.bankSelect = val
		} else {
			m.regs[m.bankSelect&0x07] = val
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		if addr&1 == 0 {
			m.mirrorH = val&0x01 != 0
		} else {
			m.wramOn = val&0x80 != 0
		}
	case addr >= 0xC000 && addr <= 0xDFFF:
		if addr&1 == 0 {
			m.irqLatch = val
		} else {
			m.irqReload = true
		}
	case addr >= 0xE000:
		m.irqEnabled = addr&1 != 0
	case addr >= 0x6000:
		if m.wramOn {
			m.writeWRAM(addr, val)
		}
	}
}

// prgInverted reports the state of command-register bit 6, which swaps
// which 8KiB PRG slot is fixed to the second-to-last bank.
func (m *mmc3) prgInverted() bool { return m.bankSelect&0x40 != 0 }
func (m *mmc3) chrInverted() bool { return m.bankSelect&0x80 != 0 }

// prgBankFor resolves a CPU address into an (8KiB bank index, offset)
// pair. MMC3 switches PRG in 8KiB slots; bank indices here are in 8KiB
// units, converted down to a byte offset directly rather than reusing
// the 16KiB helper on base.
func (m *mmc3) prgBankFor(addr uint16) (bank int, offset uint16) {
	slot := int((addr - 0x8000) / 0x2000)
	offset = addr % 0x2000
	secondLast := -2

	r6, r7 := int(m.regs[6]), int(m.regs[7])
	if !m.prgInverted() {
		switch slot {
		case 0:
			return r6, offset
		case 1:
			return r7, offset
		case 2:
			return secondLast, offset
		default:
			return -1, offset
		}
	}
	switch slot {
	case 0:
		return secondLast, offset
	case 1:
		return r7, offset
	case 2:
		return r6, offset
	default:
		return -1, offset
	}
}

// prgWindow8K reads from an 8KiB-unit PRG bank index (negative counts
// back from the end), unlike base.prgWindow16K which works in 16KiB
// units -- MMC3 needs the finer granularity.
func (m *mmc3) prgWindow8K(bank int, offset uint16) uint8 {
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

func (m *mmc3) chrBankFor(addr uint16) (bank int, offset uint16) {
	slot := int(addr / 0x400) // 1KiB slots
	offset = addr % 0x400

	r := m.regs
	order := [8]int{int(r[0]) &^ 1, (int(r[0]) &^ 1) + 1, int(r[1]) &^ 1, (int(r[1]) &^ 1) + 1,
		int(r[2]), int(r[3]), int(r[4]), int(r[5])}
	if m.chrInverted() {
		order = [8]int{int(r[2]), int(r[3]), int(r[4]), int(r[5]),
			int(r[0]) &^ 1, (int(r[0]) &^ 1) + 1, int(r[1]) &^ 1, (int(r[1]) &^ 1) + 1}
	}
	return order[slot], offset
}

func (m *mmc3) PPURead(addr uint16) uint8 {
	bank, off := m.chrBankFor(addr)
	const bankSize = 0x400
	n := len(m.chr) / bankSize
	if n == 0 {
		return 0
	}
	bank %= n
	return m.chr[bank*bankSize+int(off)]
}

func (m *mmc3) PPUWrite(addr uint16, val uint8) {
	if !m.chrIsRAM {
		return
	}
	bank, off := m.chrBankFor(addr)
	const bankSize = 0x400
	n := len(m.chr) / bankSize
	if n == 0 {
		return
	}
	bank %= n
	m.chr[bank*bankSize+int(off)] = val
}

func (m *mmc3) Mirroring() ines.NTMirroring {
	if m.mirrorH {
		return ines.HorzMirroring
	}
	return ines.VertMirroring
}

// OnScanline clocks the IRQ counter: a reload-pending flag or a counter
// already at 0 reloads from the latch; otherwise the counter
// decrements, and a 1->0 transition with the IRQ enabled raises a
// maskable interrupt (spec.md §4.3).
func (m *mmc3) OnScanline(scanline int) {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled && m.irq != nil {
		m.irq.RequestInterrupt(cpu.MaskableIRQ)
	}
}

func (m *mmc3) Snapshot(w io.Writer) error {
	fields := []uint32{
		uint32(m.bankSelect), uint32(m.regs[0]), uint32(m.regs[1]), uint32(m.regs[2]),
		uint32(m.regs[3]), uint32(m.regs[4]), uint32(m.regs[5]), uint32(m.regs[6]), uint32(m.regs[7]),
		boolToU32(m.mirrorH), boolToU32(m.wramOn),
		uint32(m.irqLatch), uint32(m.irqCounter), boolToU32(m.irqReload), boolToU32(m.irqEnabled),
	}
	if err := writeU32Fields(w, 1, fields...); err != nil {
		return err
	}
	return writeWRAMSnapshot(w, 1, m.wram)
}

func (m *mmc3) Restore(r io.Reader) error {
	var f [15]uint32
	ptrs := make([]*uint32, len(f))
	for i := range f {
		ptrs[i] = &f[i]
	}
	if err := readU32Fields(r, 1, ptrs...); err != nil {
		return err
	}
	m.bankSelect = uint8(f[0])
	for i := 0; i < 8; i++ {
		m.regs[i] = uint8(f[1+i])
	}
	m.mirrorH = f[9] != 0
	m.wramOn = f[10] != 0
	m.irqLatch = uint8(f[11])
	m.irqCounter = uint8(f[12])
	m.irqReload = f[13] != 0
	m.irqEnabled = f[14] != 0
	return readWRAMSnapshot(r, 1, m.wram)
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
