package nes

import (
	"fmt"

	"nestor-core/bus"
	"nestor-core/cpu"
	"nestor-core/ines"
	"nestor-core/internal/nlog"
	"nestor-core/mappers"
)

var modNES = nlog.ModNES

// Console ties the bus, CPU, and active mapper together and drives one
// frame at a time (spec.md §4.4). It owns no rendering or mixing logic;
// PPU and APU are collaborators supplied by the host.
type Console struct {
	Bus    *bus.Bus
	CPU    *cpu.CPU
	Mapper mappers.Mapper
	Rom    *ines.Rom

	PPU   PPU
	APU   APU
	Input Input

	// PAL enables the frame driver's one-extra-cycle-every-fifth-
	// instruction approximation (spec.md §4.4).
	PAL bool

	instrCount int64

	saveWriteFailed bool
}

// LoadCartridge decodes rom's mapper, wires it to a fresh Bus and CPU,
// and returns a ready-to-Reset Console. An unsupported mapper number is
// surfaced here, never guessed at (spec.md §7).
func LoadCartridge(rom *ines.Rom) (*Console, error) {
	c := &Console{Rom: rom}

	c.Bus = bus.New()
	c.CPU = cpu.New(c.Bus)
	c.Bus.Halt = c.CPU

	mapper, err := mappers.New(rom, c.CPU)
	if err != nil {
		return nil, fmt.Errorf("nes: load cartridge: %w", err)
	}
	c.Mapper = mapper
	c.Bus.Cart = mapper

	modNES.InfoZ("cartridge loaded").String("hash", rom.Hash()).Uint8("mapper", uint8(rom.Mapper())).End()
	return c, nil
}

// AttachPPU/AttachAPU/AttachInput wire the host-supplied collaborators.
// Until attached, bus accesses to those ranges resolve to the tracked
// open-bus value (spec.md §4.1's failure mode), which is a legitimate
// state for headless instruction-level testing.
func (c *Console) AttachPPU(ppu PPU) {
	c.PPU = ppu
	c.Bus.PPU = ppu
}

func (c *Console) AttachAPU(apu APU) {
	c.APU = apu
	c.Bus.APU = apu
}

func (c *Console) AttachInput(input Input) {
	c.Input = input
	c.Bus.Input = input
}

// Reset forwards the reset signal to the CPU. The mapper has no
// reset-specific hook in spec.md §4.3; its registers retain
// power-on/load-time values.
func (c *Console) Reset() {
	c.CPU.Reset()
}

// MapperPPURead/MapperPPUWrite/MapperMirroring/MapperOnScanline let a
// host-supplied PPU collaborator reach into the active mapper, as
// spec.md §6 requires of on_scanline_tick ("may call back into the
// active mapper") without this package depending on a concrete PPU.
func (c *Console) MapperPPURead(addr uint16) uint8       { return c.Mapper.PPURead(addr) }
func (c *Console) MapperPPUWrite(addr uint16, val uint8) { c.Mapper.PPUWrite(addr, val) }
func (c *Console) MapperMirroring() ines.NTMirroring     { return c.Mapper.Mirroring() }
func (c *Console) MapperOnScanline(scanline int)         { c.Mapper.OnScanline(scanline) }

// RunFrame repeatedly steps the CPU until the PPU collaborator reports
// frame completion or the CPU's crash flag is observed (spec.md §4.4).
// With no PPU attached, it runs until the CPU crashes -- useful for
// headless CPU-only test harnesses, never for normal play.
func (c *Console) RunFrame() {
	for {
		if c.CPU.Crashed() {
			modNES.WarnZ("frame driver stopped on crashed CPU").End()
			return
		}

		cycles := c.CPU.Step()

		effective := cycles
		if c.PAL && c.instrCount%5 == 4 {
			effective++
		}
		c.instrCount++

		if c.APU != nil {
			c.APU.Step(effective)
		}

		if c.PPU == nil {
			// Headless: no collaborator can ever signal completion, so
			// a single Step is as far as RunFrame can usefully go.
			return
		}
		if frameComplete := c.PPU.Step(effective * 3); frameComplete {
			return
		}
	}
}
