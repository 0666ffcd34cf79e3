// Package mappers implements the NES cartridge bank-switching variants
// named in the compile-time whitelist: NROM, MMC1, UxROM, CNROM, MMC3,
// AxROM, MMC2, ColorDreams, Jaleco SS8806, and mapper 198 (an MMC3-derived
// board). Every mapper satisfies the Mapper capability set (spec.md
// §4.3): CPU/PPU read-write, a per-scanline IRQ hook, and versioned
// snapshot/restore.
package mappers

import (
	"fmt"
	"io"

	"nestor-core/cpu"
	"nestor-core/ines"
	"nestor-core/internal/nlog"
)

var modMapper = nlog.ModMapper

// ErrUnsupportedMapper is returned by New when the cartridge declares a
// mapper number outside the compile-time whitelist.
var ErrUnsupportedMapper = fmt.Errorf("mappers: unsupported mapper number")

// IRQLine is the CPU capability a mapper needs to raise a maskable
// interrupt (MMC3's scanline counter). Defined locally so this package
// never holds a *cpu.CPU directly, breaking the CPU<->mapper reference
// cycle the CPU would otherwise need to avoid.
type IRQLine interface {
	RequestInterrupt(kind cpu.InterruptKind)
}

// Mapper is the capability set every supported board implements
// (spec.md §4.3).
type Mapper interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	OnScanline(scanline int)
	Mirroring() ines.NTMirroring
	Snapshot(w io.Writer) error
	Restore(r io.Reader) error
}

// New constructs the Mapper declared by rom's header, wired to irq for
// boards (MMC3) that raise interrupts. An unlisted mapper number is a
// load-time failure, never a best-effort guess.
func New(rom *ines.Rom, irq IRQLine) (Mapper, error) {
	num := rom.Mapper()
	ctor, ok := registry[num]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, num)
	}
	m := ctor(rom, irq)
	modMapper.InfoZ("loaded mapper").Uint8("mapper", uint8(num)).End()
	return m, nil
}

type ctorFunc func(rom *ines.Rom, irq IRQLine) Mapper

var registry = map[uint16]ctorFunc{
	0:   newNROM,
	1:   newMMC1,
	2:   newUxROM,
	3:   newCNROM,
	4:   newMMC3,
	7:   newAxROM,
	9:   newMMC2,
	11:  newColorDreams,
	18:  newJalecoSS8806,
	198: newMapper198,
}

// base carries the fields every mapper needs: the raw PRG/CHR backing
// store, WRAM (allocated even for boards without a battery, since the
// bus invariant requires 0x6000-0x7FFF to always resolve), and the
// current nametable mirroring selector.
type base struct {
	prg  []byte
	chr  []byte // CHR-ROM if rom.CHRROM is non-empty, else CHR-RAM
	wram []byte

	chrIsRAM  bool
	mirroring ines.NTMirroring
}

func newBase(rom *ines.Rom) base {
	chr := rom.CHRROM
	chrIsRAM := len(chr) == 0
	if chrIsRAM {
		chr = make([]byte, ines.CHRBankSize)
	}
	ramSize := rom.PRGRAMSize()
	if ramSize == 0 {
		ramSize = ines.DefaultPRGRAMSize
	}
	return base{
		prg:       rom.PRGROM,
		chr:       chr,
		wram:      make([]byte, ramSize),
		chrIsRAM:  chrIsRAM,
		mirroring: rom.Mirroring(),
	}
}

func (b *base) Mirroring() ines.NTMirroring { return b.mirroring }

// WRAM exposes the cartridge work-RAM slice so package nes can persist
// battery-backed saves without knowing which concrete mapper is active.
func (b *base) WRAM() []byte { return b.wram }

func (b *base) readWRAM(addr uint16) uint8 {
	if len(b.wram) == 0 {
		return 0
	}
	return b.wram[int(addr-0x6000)%len(b.wram)]
}

func (b *base) writeWRAM(addr uint16, val uint8) {
	if len(b.wram) == 0 {
		return
	}
	b.wram[int(addr-0x6000)%len(b.wram)] = val
}

func (b *base) ppuReadCHR(addr uint16) uint8 {
	if len(b.chr) == 0 {
		return 0
	}
	return b.chr[int(addr)%len(b.chr)]
}

func (b *base) ppuWriteCHR(addr uint16, val uint8) {
	if !b.chrIsRAM || len(b.chr) == 0 {
		return
	}
	b.chr[int(addr)%len(b.chr)] = val
}

// prgBankCount16K returns how many 16KiB windows b.prg contains.
func (b *base) prgBankCount16K() int {
	return len(b.prg) / ines.PRGBankSize
}

// prgWindow16K reads a byte from one of the PRG ROM's 16KiB banks,
// indexed modulo the available bank count (bank -1 means "last bank").
func (b *base) prgWindow16K(bank int, offset uint16) uint8 {
	n := b.prgBankCount16K()
	if n == 0 {
		return 0
	}
	if bank < 0 {
		bank += n
	}
	bank %= n
	return b.prg[bank*ines.PRGBankSize+int(offset)]
}
