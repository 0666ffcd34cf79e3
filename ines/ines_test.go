package ines

import (
	"bytes"
	"strings"
	"testing"
)

func buildHeader(prgBanks, chrBanks, flags6, flags7 byte, extra ...byte) []byte {
	h := make([]byte, headerSize)
	copy(h, Magic)
	h[4] = prgBanks
	h[5] = chrBanks
	h[6] = flags6
	h[7] = flags7
	copy(h[8:], extra)
	return h
}

func makeRom(header []byte, trainer bool, prgBanks, chrBanks int) []byte {
	buf := append([]byte{}, header...)
	if trainer {
		buf = append(buf, make([]byte, trainerSize)...)
	}
	buf = append(buf, make([]byte, prgBanks*PRGBankSize)...)
	buf = append(buf, make([]byte, chrBanks*CHRBankSize)...)
	return buf
}

func TestDecodeRomBasic(t *testing.T) {
	hdr := buildHeader(2, 1, 0x01 /* vertical */, 0x00)
	buf := makeRom(hdr, false, 2, 1)

	rom, err := DecodeRom(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(rom.PRGROM), 2*PRGBankSize; got != want {
		t.Errorf("PRGROM len = %d, want %d", got, want)
	}
	if got, want := len(rom.CHRROM), 1*CHRBankSize; got != want {
		t.Errorf("CHRROM len = %d, want %d", got, want)
	}
	if got := rom.Mirroring(); got != VertMirroring {
		t.Errorf("Mirroring() = %v, want vertical", got)
	}
	if rom.HasTrainer() || rom.HasBattery() {
		t.Errorf("unexpected trainer/battery flags")
	}
}

func TestDecodeRomBadMagic(t *testing.T) {
	buf := makeRom(buildHeader(1, 1, 0, 0), false, 1, 1)
	buf[0] = 'X'
	if _, err := DecodeRom(buf); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestDecodeRomTruncated(t *testing.T) {
	hdr := buildHeader(2, 0, 0, 0)
	buf := makeRom(hdr, false, 1, 0) // claims 2 banks, only ships 1
	if _, err := DecodeRom(buf); err == nil {
		t.Fatal("expected truncated PRG-ROM error")
	}
}

func TestMapperAssembly(t *testing.T) {
	// mapper 1 (MMC1): low nibble of byte6 = 0001, high nibble of byte7 = 0000
	hdr := buildHeader(1, 1, 0x10, 0x00)
	buf := makeRom(hdr, false, 1, 1)
	rom, err := DecodeRom(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := rom.Mapper(); got != 1 {
		t.Errorf("Mapper() = %d, want 1", got)
	}

	// mapper 4 (MMC3): low nibble 0100, high nibble 0000 -> 4
	hdr = buildHeader(1, 1, 0x40, 0x00)
	buf = makeRom(hdr, false, 1, 1)
	rom, err = DecodeRom(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := rom.Mapper(); got != 4 {
		t.Errorf("Mapper() = %d, want 4", got)
	}
}

func TestMapperLegacyHeaderQuirk(t *testing.T) {
	// byte6 high nibble = 1 (mapper low nibble 1), byte7 high nibble = 5,
	// but bytes 8-15 are non-zero: the high nibble must be discarded.
	hdr := buildHeader(1, 1, 0x10, 0x50, 1, 2, 3)
	buf := makeRom(hdr, false, 1, 1)
	rom, err := DecodeRom(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := rom.Mapper(); got != 1 {
		t.Errorf("Mapper() = %d, want 1 (high nibble discarded)", got)
	}
}

func TestSubMapper(t *testing.T) {
	// byte7 bits 2-3 = 0b10 (NES 2.0 signature); byte8 upper nibble = 2.
	hdr := buildHeader(1, 1, 0x20, 0x08, 0x20)
	buf := makeRom(hdr, false, 1, 1)
	rom, err := DecodeRom(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !rom.IsNES20() {
		t.Fatal("expected IsNES20() == true")
	}
	if got := rom.SubMapper(); got != 2 {
		t.Errorf("SubMapper() = %d, want 2", got)
	}
}

func TestSubMapperZeroWithoutNES20(t *testing.T) {
	hdr := buildHeader(1, 1, 0x20, 0x00)
	buf := makeRom(hdr, false, 1, 1)
	rom, err := DecodeRom(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := rom.SubMapper(); got != 0 {
		t.Errorf("SubMapper() = %d, want 0 for a classic iNES image", got)
	}
}

func TestTrainerSection(t *testing.T) {
	hdr := buildHeader(1, 1, 0x04, 0x00) // trainer bit set
	buf := makeRom(hdr, true, 1, 1)
	rom, err := DecodeRom(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(rom.Trainer) != trainerSize {
		t.Errorf("Trainer len = %d, want %d", len(rom.Trainer), trainerSize)
	}
}

func TestBatteryImpliesDefaultPRGRAM(t *testing.T) {
	hdr := buildHeader(1, 1, 0x02, 0x00) // battery bit
	buf := makeRom(hdr, false, 1, 1)
	rom, err := DecodeRom(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !rom.HasBattery() {
		t.Fatal("expected battery flag")
	}
	if got := rom.PRGRAMSize(); got != DefaultPRGRAMSize {
		t.Errorf("PRGRAMSize() = %d, want %d", got, DefaultPRGRAMSize)
	}
}

func TestPrintInfoAndJSON(t *testing.T) {
	hdr := buildHeader(1, 1, 0x00, 0x00)
	buf := makeRom(hdr, false, 1, 1)
	rom, err := DecodeRom(buf)
	if err != nil {
		t.Fatal(err)
	}

	var text bytes.Buffer
	rom.PrintInfo(&text)
	if !strings.Contains(text.String(), "mapper:     0") {
		t.Errorf("PrintInfo output missing mapper line: %q", text.String())
	}

	var js bytes.Buffer
	if err := rom.WriteInfoJSON(&js); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js.String(), `"mapper"`) {
		t.Errorf("WriteInfoJSON output missing mapper field: %q", js.String())
	}
}
