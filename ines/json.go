package ines

import (
	"io"

	"github.com/go-faster/jx"
)

// WriteInfoJSON writes a machine-readable cartridge summary as a single
// JSON object, for `rom-info --json`.
func (rom *Rom) WriteInfoJSON(w io.Writer) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.ObjStart()
	e.FieldStart("mapper")
	e.UInt16(rom.Mapper())
	e.FieldStart("mirroring")
	e.Str(rom.Mirroring().String())
	e.FieldStart("prg_rom_banks_16k")
	e.Int(rom.PRGBanks16K())
	e.FieldStart("chr_rom_banks_8k")
	e.Int(rom.CHRBanks8K())
	e.FieldStart("prg_ram_bytes")
	e.Int(rom.PRGRAMSize())
	e.FieldStart("battery")
	e.Bool(rom.HasBattery())
	e.FieldStart("trainer")
	e.Bool(rom.HasTrainer())
	e.FieldStart("nes20")
	e.Bool(rom.IsNES20())
	e.FieldStart("sha256")
	e.Str(rom.Hash())
	e.ObjEnd()

	_, err := w.Write(e.Bytes())
	return err
}
