package nes

import (
	"bytes"
	"strings"
	"testing"

	"nestor-core/ines"
)

func makeTestRom(t *testing.T, battery bool) *ines.Rom {
	t.Helper()
	hdr := make([]byte, 16)
	copy(hdr, ines.Magic)
	hdr[4] = 1 // 1 PRG bank (NROM)
	hdr[5] = 1 // 1 CHR bank
	if battery {
		hdr[6] = 0x02
	}
	buf := append([]byte{}, hdr...)
	buf = append(buf, make([]byte, ines.PRGBankSize)...)
	buf = append(buf, make([]byte, ines.CHRBankSize)...)

	// reset vector -> 0xC000, an infinite JMP loop so RunFrame has
	// something to execute headlessly without crashing.
	buf[16+0x3FFC] = 0x00
	buf[16+0x3FFD] = 0xC0
	buf[16+0x0000] = 0x4C // JMP $C000
	buf[16+0x0001] = 0x00
	buf[16+0x0002] = 0xC0

	rom, err := ines.DecodeRom(buf)
	if err != nil {
		t.Fatal(err)
	}
	return rom
}

func TestLoadCartridgeAndReset(t *testing.T) {
	rom := makeTestRom(t, false)
	c, err := LoadCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}
	c.Reset()
	if c.CPU.PC != 0xC000 {
		t.Errorf("PC = %#04x, want 0xC000", c.CPU.PC)
	}
}

func TestLoadCartridgeUnsupportedMapper(t *testing.T) {
	hdr := make([]byte, 16)
	copy(hdr, ines.Magic)
	hdr[4], hdr[5] = 1, 1
	hdr[6] = byte(255 & 0x0F << 4)
	hdr[7] = byte(255 & 0xF0)
	buf := append([]byte{}, hdr...)
	buf = append(buf, make([]byte, ines.PRGBankSize)...)
	buf = append(buf, make([]byte, ines.CHRBankSize)...)
	rom, err := ines.DecodeRom(buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCartridge(rom); err == nil {
		t.Fatal("expected error for unsupported mapper")
	}
}

func TestRunFrameHeadlessStopsAfterOneStep(t *testing.T) {
	rom := makeTestRom(t, false)
	c, err := LoadCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}
	c.Reset()
	c.RunFrame()
	// with no PPU attached RunFrame steps exactly once and returns;
	// the JMP at reset means PC lands back on itself, not advances.
	if c.CPU.PC != 0xC000 {
		t.Errorf("PC = %#04x, want 0xC000 (JMP self)", c.CPU.PC)
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	rom := makeTestRom(t, true)
	c, err := LoadCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}
	c.Reset()

	wram := c.batteryRAM()
	if wram == nil {
		t.Fatal("expected battery RAM to be present")
	}
	wram[0] = 0xAB

	var buf bytes.Buffer
	if err := c.WriteSaveFile(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "save:"+rom.Hash()) {
		t.Errorf("save line missing hash: %q", buf.String())
	}

	c2, err := LoadCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}
	c2.Reset()
	if err := c2.LoadSaveFile(&buf); err != nil {
		t.Fatal(err)
	}
	if got := c2.batteryRAM()[0]; got != 0xAB {
		t.Errorf("restored wram[0] = %#02x, want 0xAB", got)
	}
}

func TestConsoleSnapshotRoundTrip(t *testing.T) {
	rom := makeTestRom(t, false)
	c, err := LoadCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}
	c.Reset()
	c.CPU.A = 0x77

	var buf bytes.Buffer
	if err := c.Snapshot(&buf); err != nil {
		t.Fatal(err)
	}

	c2, err := LoadCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}
	c2.Reset()
	if err := c2.Restore(&buf); err != nil {
		t.Fatal(err)
	}
	if c2.CPU.A != 0x77 {
		t.Errorf("restored A = %#02x, want 0x77", c2.CPU.A)
	}
}
