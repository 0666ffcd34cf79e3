package nes

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// WriteSaveFile emits the text line format from spec.md §6:
// "save:<sha256-hex> data:<hex-bytes>", written whenever the cartridge
// declares battery RAM; whether that RAM was modified since load is not
// tracked, so an unmodified RAM is written as well. A write failure is recorded
// rather than propagated as fatal (spec.md §7's SaveFileWriteFailure);
// a single log line is emitted and subsequent calls keep trying.
func (c *Console) WriteSaveFile(w io.Writer) error {
	wram := c.batteryRAM()
	if wram == nil {
		return nil
	}

	line := fmt.Sprintf("save:%s data:%s\n", c.Rom.Hash(), hex.EncodeToString(wram))
	if _, err := io.WriteString(w, line); err != nil {
		if !c.saveWriteFailed {
			modNES.ErrorZ("save file write failed, continuing memory-only").Err("error", err).End()
			c.saveWriteFailed = true
		}
		return fmt.Errorf("%w: %v", ErrSaveFileWriteFailure, err)
	}
	return nil
}

// LoadSaveFile reads back a line written by WriteSaveFile and restores
// it into the mapper's battery RAM, if the hash matches this cartridge.
func (c *Console) LoadSaveFile(r io.Reader) error {
	wram := c.batteryRAM()
	if wram == nil {
		return nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		hash := strings.TrimPrefix(fields[0], "save:")
		dataHex := strings.TrimPrefix(fields[1], "data:")
		if hash != c.Rom.Hash() {
			continue
		}
		data, err := hex.DecodeString(dataHex)
		if err != nil {
			return fmt.Errorf("nes: load save file: %w", err)
		}
		copy(wram, data)
		return nil
	}
	return scanner.Err()
}

// batteryRAM returns the active mapper's WRAM slice when the cartridge
// declares a battery, or nil when there is nothing worth persisting.
func (c *Console) batteryRAM() []byte {
	if c.Rom == nil || !c.Rom.HasBattery() {
		return nil
	}
	type wramHolder interface {
		WRAM() []byte
	}
	if h, ok := c.Mapper.(wramHolder); ok {
		return h.WRAM()
	}
	return nil
}

// SaveWriteFailed reports whether the last WriteSaveFile call recorded a
// persistence failure (spec.md §7).
func (c *Console) SaveWriteFailed() bool { return c.saveWriteFailed }
