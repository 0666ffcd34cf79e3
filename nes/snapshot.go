package nes

import "io"

// Snapshot writes the CPU record followed by the active mapper's own
// version-prefixed record, per spec.md §6 ("Mappers append their own
// version-prefixed records").
func (c *Console) Snapshot(w io.Writer) error {
	if err := c.CPU.Snapshot(w); err != nil {
		return err
	}
	return c.Mapper.Snapshot(w)
}

// Restore reads back a stream written by Snapshot, in the same order.
func (c *Console) Restore(r io.Reader) error {
	if err := c.CPU.Restore(r); err != nil {
		return err
	}
	return c.Mapper.Restore(r)
}
