package bus

// RAMSize is the amount of physical CPU work RAM (spec.md §3): 2KiB,
// mirrored across the 8KiB window 0x0000-0x1FFF.
const RAMSize = 0x800

// RAM is the CPU's internal work memory.
type RAM [RAMSize]byte

// Read8 reads the byte backing addr, after mirroring it into the physical
// 2KiB array.
func (r *RAM) Read8(addr uint16) uint8 { return r[addr&(RAMSize-1)] }

// Write8 writes the byte backing addr, after mirroring it into the
// physical 2KiB array.
func (r *RAM) Write8(addr uint16, val uint8) { r[addr&(RAMSize-1)] = val }
