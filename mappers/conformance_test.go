package mappers

import (
	"bytes"
	"testing"

	"golang.org/x/sync/errgroup"
)

// TestSnapshotRestoreConformance drives every compiled-in mapper through
// a write sequence, a Snapshot, and a Restore into a fresh instance,
// then checks the two instances agree on every address class a board
// exposes (PRG, CHR, WRAM). Each mapper runs on its own goroutine,
// mirroring the fan-out-per-fixture pattern used for the per-opcode Tom
// Harte downloads elsewhere in this corpus.
func TestSnapshotRestoreConformance(t *testing.T) {
	var g errgroup.Group
	for num := range registry {
		num := num
		g.Go(func() error {
			rom := makeRom(num, 4, 2)

			m1, err := New(rom, &fakeIRQ{})
			if err != nil {
				t.Errorf("mapper %d: New: %v", num, err)
				return nil
			}

			// A register write sequence covering both even and odd
			// addresses in each 4KiB window: enough to flip MMC1's
			// shift register multiple times over, set bit7/bit0 on the
			// boards that gate behavior on them (MMC3's WRAM-enable,
			// various IRQ-enable latches), and leave every board's
			// registers in a non-reset state.
			for i := uint16(0); i < 8; i++ {
				addr := 0x8000 + i*0x1000
				m1.CPUWrite(addr, uint8(i+1))
				m1.CPUWrite(addr+1, 0xFF)
			}
			m1.CPUWrite(0x6000, 0x5A)

			var buf bytes.Buffer
			if err := m1.Snapshot(&buf); err != nil {
				t.Errorf("mapper %d: Snapshot: %v", num, err)
				return nil
			}

			m2, err := New(rom, &fakeIRQ{})
			if err != nil {
				t.Errorf("mapper %d: New (restore target): %v", num, err)
				return nil
			}
			if err := m2.Restore(&buf); err != nil {
				t.Errorf("mapper %d: Restore: %v", num, err)
				return nil
			}

			addrs := []uint16{0x6000, 0x6001, 0x8000, 0x9000, 0xA000, 0xC000, 0xE000, 0xFFFF}
			for _, addr := range addrs {
				if got, want := m2.CPURead(addr), m1.CPURead(addr); got != want {
					t.Errorf("mapper %d: CPURead(%#04x) after restore = %#02x, want %#02x", num, addr, got, want)
				}
			}
			for _, addr := range []uint16{0x0000, 0x0800, 0x1000, 0x1FFF} {
				if got, want := m2.PPURead(addr), m1.PPURead(addr); got != want {
					t.Errorf("mapper %d: PPURead(%#04x) after restore = %#02x, want %#02x", num, addr, got, want)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
