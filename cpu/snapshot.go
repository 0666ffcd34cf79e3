package cpu

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SnapshotVersion1 is the only CPU record version this core emits;
// defined so restore can reject a stream it doesn't understand rather
// than silently misinterpreting it.
const SnapshotVersion1 = 1

// Snapshot writes the CPU's state as a versioned byte stream (spec.md
// §6): a version byte, then seven u32 fields in the documented order.
// Every field is serialized width-padded to u32 even though most fit in
// a byte, matching spec.md §6's wire layout exactly.
func (c *CPU) Snapshot(w io.Writer) error {
	var buf [1 + 7*4]byte
	buf[0] = SnapshotVersion1
	binary.BigEndian.PutUint32(buf[1:], uint32(c.P.Pack()))
	binary.BigEndian.PutUint32(buf[5:], uint32(c.A))
	binary.BigEndian.PutUint32(buf[9:], uint32(c.PC))
	binary.BigEndian.PutUint32(buf[13:], uint32(c.SP))
	binary.BigEndian.PutUint32(buf[17:], uint32(c.X))
	binary.BigEndian.PutUint32(buf[21:], uint32(c.Y))
	binary.BigEndian.PutUint32(buf[25:], c.pendingHaltCycles)
	_, err := w.Write(buf[:])
	return err
}

// Restore reads back a CPU record written by Snapshot. A version byte
// other than SnapshotVersion1 is rejected rather than guessed at.
func (c *CPU) Restore(r io.Reader) error {
	var buf [1 + 7*4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fmt.Errorf("cpu: restore: %w", err)
	}
	if buf[0] != SnapshotVersion1 {
		return fmt.Errorf("cpu: restore: unsupported snapshot version %d", buf[0])
	}
	c.P = Unpack(uint8(binary.BigEndian.Uint32(buf[1:])))
	c.A = uint8(binary.BigEndian.Uint32(buf[5:]))
	c.PC = uint16(binary.BigEndian.Uint32(buf[9:]))
	c.SP = uint8(binary.BigEndian.Uint32(buf[13:]))
	c.X = uint8(binary.BigEndian.Uint32(buf[17:]))
	c.Y = uint8(binary.BigEndian.Uint32(buf[21:]))
	c.pendingHaltCycles = binary.BigEndian.Uint32(buf[25:])
	c.line.clear()
	c.crashed = false
	return nil
}
