package mappers

import (
	"encoding/binary"
	"fmt"
	"io"
)

// writeWRAMSnapshot/readWRAMSnapshot implement the common tail every
// mapper record shares: a version byte, a u32 length, then the raw WRAM
// bytes. Mapper-specific registers are written before calling this, each
// under their own version-prefixed section, per spec.md §6.
func writeWRAMSnapshot(w io.Writer, version uint8, wram []byte) error {
	var hdr [5]byte
	hdr[0] = version
	binary.BigEndian.PutUint32(hdr[1:], uint32(len(wram)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(wram)
	return err
}

func readWRAMSnapshot(r io.Reader, version uint8, wram []byte) error {
	var hdr [5]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("mappers: restore: %w", err)
	}
	if hdr[0] != version {
		return fmt.Errorf("mappers: restore: unsupported record version %d", hdr[0])
	}
	n := binary.BigEndian.Uint32(hdr[1:])
	if int(n) != len(wram) {
		return fmt.Errorf("mappers: restore: wram size mismatch, record has %d, mapper has %d", n, len(wram))
	}
	_, err := io.ReadFull(r, wram)
	return err
}

// writeU32Fields writes a version byte followed by a sequence of u32
// register values, the same fixed-width-per-field convention the CPU
// snapshot record uses.
func writeU32Fields(w io.Writer, version uint8, fields ...uint32) error {
	buf := make([]byte, 1+4*len(fields))
	buf[0] = version
	for i, f := range fields {
		binary.BigEndian.PutUint32(buf[1+4*i:], f)
	}
	_, err := w.Write(buf)
	return err
}

func readU32Fields(r io.Reader, version uint8, fields ...*uint32) error {
	buf := make([]byte, 1+4*len(fields))
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("mappers: restore: %w", err)
	}
	if buf[0] != version {
		return fmt.Errorf("mappers: restore: unsupported record version %d", buf[0])
	}
	for i, f := range fields {
		*f = binary.BigEndian.Uint32(buf[1+4*i:])
	}
	return nil
}
