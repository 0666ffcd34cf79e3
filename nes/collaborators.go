// Package nes wires the bus, CPU, and mapper together into a runnable
// console: it owns cartridge load, the per-frame drive loop, save-file
// persistence, and the top-level snapshot container. Rendering and audio
// mixing stay out of scope, represented only as the PPU/APU collaborator
// interfaces below.
package nes

import "nestor-core/bus"

// PPU is the frame-driving collaborator interface (spec.md §6): besides
// the register read/write surface bus.PPU already describes, it steps
// by PPU cycles and reports frame completion.
type PPU interface {
	bus.PPU
	Step(ppuCycles uint32) (frameComplete bool)
}

// APU is the collaborator interface for audio mixing (spec.md §6):
// register access plus a cycle-driven step, never implemented here.
type APU interface {
	bus.APU
	Step(cpuCycles uint32)
}

// Input is the controller-port collaborator; the bus.Input contract is
// already exactly what the frame driver needs.
type Input = bus.Input
