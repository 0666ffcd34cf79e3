// Package bus implements the CPU-side address decoder (spec.md §4.1): it
// routes loads and stores to CPU RAM, to the PPU/APU/input collaborators,
// or to the active cartridge mapper, depending on address range.
package bus

// PPU is the picture-unit collaborator interface (spec.md §6). Rendering
// itself is out of scope for this module; the core only needs to forward
// register traffic and OAM DMA bytes to whatever implementation the host
// supplies.
type PPU interface {
	RegRead(addr uint16, peek bool) uint8
	RegWrite(addr uint16, val uint8)
}

// APU is the audio-unit collaborator interface (spec.md §6). Mixing is out
// of scope; only register traffic is routed here.
type APU interface {
	RegRead(addr uint16) uint8
	RegWrite(addr uint16, val uint8)
}

// Input is the controller-port collaborator interface (spec.md §6). Actual
// polling of host input devices is out of scope.
type Input interface {
	ReadPort(port int) uint8
	WriteStrobe(val uint8)
}

// Cartridge is the subset of the mapper capability set (spec.md §4.3) that
// the CPU-side bus needs to route through. Defined locally (rather than
// importing package mappers) so bus has no dependency on the concrete
// mapper implementations — any mapper satisfies this structurally.
type Cartridge interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
}

// Halter receives OAM-DMA stall notifications. The CPU implements this;
// Bus holds it as an interface rather than a concrete CPU pointer so the
// two packages don't need to import each other.
type Halter interface {
	Halt(cycles uint32)
}
