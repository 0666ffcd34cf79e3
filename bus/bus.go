package bus

import "nestor-core/internal/nlog"

var modBus = nlog.ModBus

// Address ranges the decoder switches on (spec.md §4.1).
const (
	ramEnd       = 0x1FFF
	ppuRegStart  = 0x2000
	ppuRegEnd    = 0x3FFF
	apuIOStart   = 0x4000
	oamDMA       = 0x4014
	ctrl1Port    = 0x4016
	frameCounter = 0x4017
	apuIOEnd     = 0x4017
	cartStart    = 0x4018
	wramStart    = 0x6000
	wramEnd      = 0x7FFF
	prgStart     = 0x8000
)

// DMACycles is the (approximated, per spec.md §5) CPU stall incurred by a
// write to the OAM DMA register. Real hardware charges 513 or 514 cycles
// depending on the parity of the CPU cycle the transfer begins on; this
// module always charges 513, as spec.md explicitly allows.
const DMACycles = 513

// Bus is the CPU-side address decoder.
type Bus struct {
	RAM RAM

	PPU   PPU
	APU   APU
	Input Input
	Cart  Cartridge
	Halt  Halter

	// openBus holds the last byte driven onto the bus by any access, used
	// to satisfy reads from unmapped regions (spec.md §4.1 failure mode).
	openBus uint8
}

// New creates a Bus with no collaborators or cartridge attached; callers
// wire those in before use (nes.Console does this at cartridge load time).
func New() *Bus {
	return &Bus{}
}

// Read8 reads a single byte, routing by address range.
func (b *Bus) Read8(addr uint16) uint8 {
	v, mapped := b.read8(addr, false)
	if mapped {
		b.openBus = v
		return v
	}
	return b.openBus
}

// Peek8 reads a single byte without side effects, for disassembly/tracing.
// Unmapped regions still return the tracked open-bus value.
func (b *Bus) Peek8(addr uint16) uint8 {
	v, mapped := b.read8(addr, true)
	if mapped {
		return v
	}
	return b.openBus
}

func (b *Bus) read8(addr uint16, peek bool) (val uint8, mapped bool) {
	switch {
	case addr <= ramEnd:
		return b.RAM.Read8(addr), true

	case addr >= ppuRegStart && addr <= ppuRegEnd:
		if b.PPU == nil {
			return 0, false
		}
		return b.PPU.RegRead(ppuRegStart+(addr&7), peek), true

	case addr == ctrl1Port:
		if b.Input == nil {
			return 0, false
		}
		return b.Input.ReadPort(0), true

	case addr >= apuIOStart && addr <= apuIOEnd:
		if b.APU == nil {
			return 0, false
		}
		return b.APU.RegRead(addr), true

	case addr >= wramStart && addr <= wramEnd:
		if b.Cart == nil {
			return 0, false
		}
		return b.Cart.CPURead(addr), true

	case addr >= prgStart:
		if b.Cart == nil {
			// spec.md §7's InterruptVectorUnreadable: with no cartridge
			// attached, a read in this range (including a vector fetch)
			// is treated as 0xFF rather than an error.
			return 0xFF, true
		}
		// Invariant (spec.md §4.3): a CPU read from 0x8000-0xFFFF never
		// fails; the mapper always resolves it to some PRG byte.
		return b.Cart.CPURead(addr), true

	case addr >= cartStart && addr < wramStart:
		// Open/expansion region; only the mapper may claim it, and most
		// don't.
		if b.Cart == nil {
			return 0, false
		}
		return b.Cart.CPURead(addr), true

	default:
		return 0, false
	}
}

// Write8 writes a single byte, routing by address range.
func (b *Bus) Write8(addr uint16, val uint8) {
	b.openBus = val

	switch {
	case addr <= ramEnd:
		b.RAM.Write8(addr, val)

	case addr >= ppuRegStart && addr <= ppuRegEnd:
		if b.PPU != nil {
			b.PPU.RegWrite(ppuRegStart+(addr&7), val)
		}

	case addr == oamDMA:
		b.doOAMDMA(val)

	case addr == ctrl1Port:
		if b.Input != nil {
			b.Input.WriteStrobe(val)
		}

	case addr >= apuIOStart && addr <= apuIOEnd:
		if b.APU != nil {
			b.APU.RegWrite(addr, val)
		}

	case addr >= wramStart && addr <= wramEnd:
		if b.Cart != nil {
			b.Cart.CPUWrite(addr, val)
		}

	case addr >= prgStart:
		if b.Cart != nil {
			b.Cart.CPUWrite(addr, val)
		}

	case addr >= cartStart && addr < wramStart:
		if b.Cart != nil {
			b.Cart.CPUWrite(addr, val)
		}

	default:
		modBus.WarnZ("write to unmapped address").Hex16("addr", addr).Hex8("val", val).End()
	}
}

// doOAMDMA performs the 256-byte OAM transfer triggered by a write to
// 0x4014: the high byte of val selects the source page, and each byte is
// forwarded to the PPU as if written to OAMDATA (0x2004).
func (b *Bus) doOAMDMA(val uint8) {
	if b.Halt != nil {
		b.Halt.Halt(DMACycles)
	}
	src := uint16(val) << 8
	for i := 0; i < 256; i++ {
		byteVal := b.Read8(src + uint16(i))
		if b.PPU != nil {
			b.PPU.RegWrite(0x2004, byteVal)
		}
	}
}

// Read16 performs a plain little-endian two-byte read, used for vector
// fetches and absolute-mode operand reads.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Read16PageWrapped reproduces the 6502 JMP ($xxxx) hardware bug: the high
// byte of the target is fetched from the same page as addr rather than
// from addr+1 when addr's low byte is 0xFF (spec.md §4.1, §8). The bug
// applies unconditionally, regardless of which memory region addr falls
// in — an inconsistency in some reference emulators (comparing against
// 0x1FFF rather than 0x2000) is deliberately not reproduced here.
func (b *Bus) Read16PageWrapped(addr uint16) uint16 {
	lo := b.Read8(addr)
	hiAddr := (addr & 0xFF00) | ((addr + 1) & 0x00FF)
	hi := b.Read8(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

// Write16 performs a plain little-endian two-byte write.
func (b *Bus) Write16(addr uint16, val uint16) {
	b.Write8(addr, uint8(val))
	b.Write8(addr+1, uint8(val>>8))
}
