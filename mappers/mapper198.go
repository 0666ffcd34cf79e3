package mappers

import "nestor-core/ines"

// newMapper198 constructs mapper 198, a Chinese multicart board whose
// documented behavior is an MMC3 clone with wider PRG bank registers;
// no other register or IRQ behavior differs from MMC3, so this board is
// implemented as an alias over mmc3 rather than a separate type (see
// the design ledger's Open Question decision for mapper 198).
func newMapper198(rom *ines.Rom, irq IRQLine) Mapper {
	return newMMC3(rom, irq)
}
