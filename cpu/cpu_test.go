package cpu

import (
	"bytes"
	"testing"
)

// testBus is a flat 64KiB address space, enough to exercise addressing
// modes and vector loads without pulling in package bus.
type testBus struct {
	mem [0x10000]byte
}

func (b *testBus) Read8(addr uint16) uint8  { return b.mem[addr] }
func (b *testBus) Write8(addr uint16, v uint8) { b.mem[addr] = v }
func (b *testBus) Read16(addr uint16) uint16 {
	return uint16(b.mem[addr]) | uint16(b.mem[addr+1])<<8
}
func (b *testBus) Read16PageWrapped(addr uint16) uint16 {
	lo := b.mem[addr]
	hiAddr := (addr & 0xFF00) | ((addr + 1) & 0x00FF)
	return uint16(b.mem[hiAddr])<<8 | uint16(lo)
}

func newTestCPU() (*CPU, *testBus) {
	bus := &testBus{}
	return New(bus), bus
}

func TestResetVectorLoad(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0xC0
	c.Reset()
	if c.PC != 0xC000 {
		t.Errorf("PC = %#04x, want 0xC000", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %#02x, want 0xFD", c.SP)
	}
	if got := c.P.Pack(); got != 0x24 {
		t.Errorf("packed status = %#02x, want 0x24", got)
	}
}

func TestLDAImmediate(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0xC0
	c.Reset()
	bus.mem[0xC000] = 0xA9
	bus.mem[0xC001] = 0x42

	cycles := c.Step()
	if c.A != 0x42 {
		t.Errorf("A = %#02x, want 0x42", c.A)
	}
	if c.P.Z() || c.P.N() {
		t.Errorf("Z/N set unexpectedly: %s", c.P)
	}
	if c.PC != 0xC002 {
		t.Errorf("PC = %#04x, want 0xC002", c.PC)
	}
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
}

func TestADCOverflow(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0xC0
	c.Reset()
	c.A = 0x50
	c.P.setC(false)
	bus.mem[0xC000] = 0x69 // ADC #imm
	bus.mem[0xC001] = 0x50

	c.Step()
	if c.A != 0xA0 {
		t.Errorf("A = %#02x, want 0xA0", c.A)
	}
	if c.P.C() {
		t.Error("Carry set, want clear")
	}
	if !c.P.V() {
		t.Error("Overflow clear, want set")
	}
	if !c.P.N() {
		t.Error("Negative clear, want set")
	}
	if c.P.Z() {
		t.Error("Zero set, want clear")
	}
}

func TestStackWrap(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0xC0
	c.Reset()
	c.SP = 0x00
	c.A = 0xAB
	bus.mem[0xC000] = 0x48 // PHA

	c.Step()
	if bus.mem[0x0100] != 0xAB {
		t.Errorf("mem[0x0100] = %#02x, want 0xAB", bus.mem[0x0100])
	}
	if c.SP != 0xFF {
		t.Errorf("SP = %#02x, want 0xFF", c.SP)
	}
}

func TestPushPullRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0xC0
	c.Reset()
	sp0 := c.SP
	c.A = 0x7E
	bus.mem[0xC000] = 0x48 // PHA
	bus.mem[0xC001] = 0x68 // PLA
	c.Step()
	c.Step()
	if c.A != 0x7E {
		t.Errorf("A after PHA/PLA = %#02x, want 0x7E", c.A)
	}
	if c.SP != sp0 {
		t.Errorf("SP = %#02x, want %#02x", c.SP, sp0)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0xC0
	c.Reset()
	bus.mem[0xC000] = 0x6C // JMP (ind)
	bus.mem[0xC001], bus.mem[0xC002] = 0xFF, 0x02 // pointer = 0x02FF
	bus.mem[0x02FF] = 0x34
	bus.mem[0x0200] = 0x12 // wrap target (not 0x0300)
	bus.mem[0x0300] = 0x99

	c.Step()
	if c.PC != 0x1234 {
		t.Errorf("PC = %#04x, want 0x1234 (page-wrap bug)", c.PC)
	}
}

func TestBranchCycleCounts(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0xC0
	c.Reset()

	// BEQ same page: target C002+2 = C004, same page as C002.
	c.P.setZ(true)
	bus.mem[0xC000] = 0xF0
	bus.mem[0xC001] = 0x02
	if cycles := c.Step(); cycles != 3 {
		t.Errorf("same-page branch cycles = %d, want 3", cycles)
	}

	// BEQ crossing page: next PC 0x00F2, forward target on page 0x01.
	c.PC = 0x00F0
	c.P.setZ(true)
	bus.mem[0x00F0] = 0xF0
	bus.mem[0x00F1] = 0x10 // target = 0x00F2+0x10 = 0x0102, crosses page
	if cycles := c.Step(); cycles != 4 {
		t.Errorf("page-crossing branch cycles = %d, want 4", cycles)
	}
}

func TestCompareFlags(t *testing.T) {
	c, _ := newTestCPU()
	c.A = 0x10
	c.compare(c.A, 0x10)
	if !c.P.Z() || !c.P.C() || c.P.N() {
		t.Errorf("CMP equal: P=%s", c.P)
	}
	c.compare(c.A, 0x20)
	if c.P.C() || !c.P.N() {
		t.Errorf("CMP less-than: P=%s", c.P)
	}
}

func TestIllegalOpcodeLatchesCrash(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0xC0
	c.Reset()
	bus.mem[0xC000] = 0x02 // not in the official table

	cycles := c.Step()
	if cycles != 0 {
		t.Errorf("crash step cycles = %d, want 0", cycles)
	}
	if !c.Crashed() {
		t.Fatal("expected crashed flag set")
	}
	if cycles := c.Step(); cycles != 0 {
		t.Errorf("post-crash step cycles = %d, want 0", cycles)
	}
}

func TestFlagPackRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		p := Unpack(uint8(i))
		packed := p.Pack()
		if packed&(1<<bitU) == 0 {
			t.Fatalf("Unused bit not forced on pack(%d)", i)
		}
		if Unpack(packed).Pack() != packed {
			t.Errorf("round-trip mismatch for %d: got %#02x", i, Unpack(packed).Pack())
		}
	}
}

func TestInterruptArbitrationDropsSecondIRQ(t *testing.T) {
	c, _ := newTestCPU()
	c.RequestInterrupt(MaskableIRQ)
	c.RequestInterrupt(MaskableIRQ)
	kind, pending := c.line.pending()
	if !pending || kind != MaskableIRQ {
		t.Fatalf("expected one pending MaskableIRQ, got kind=%v pending=%v", kind, pending)
	}
}

func TestInterruptArbitrationNMIOverwritesIRQ(t *testing.T) {
	c, _ := newTestCPU()
	c.RequestInterrupt(MaskableIRQ)
	c.RequestInterrupt(NonMaskable)
	kind, pending := c.line.pending()
	if !pending || kind != NonMaskable {
		t.Fatalf("expected NonMaskable to overwrite pending IRQ, got kind=%v", kind)
	}
}

func TestIRQServicedOnlyWhenNotDisabled(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFE], bus.mem[0xFFFF] = 0x00, 0xD0
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0xC0
	c.Reset()
	c.P.setI(true)
	bus.mem[0xC000] = 0xEA // NOP
	c.RequestInterrupt(MaskableIRQ)

	c.Step() // InterruptDisable set: IRQ must NOT be serviced, NOP runs instead.
	if c.PC != 0xC001 {
		t.Fatalf("IRQ serviced despite I=1: PC=%#04x", c.PC)
	}

	c.P.setI(false)
	c.Step() // now it must be serviced.
	if c.PC != 0xD000 {
		t.Fatalf("IRQ not serviced once I=0: PC=%#04x", c.PC)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0xC0
	c.Reset()
	c.A, c.X, c.Y, c.SP, c.PC = 0x11, 0x22, 0x33, 0x44, 0xBEEF
	c.pendingHaltCycles = 7

	var buf bytes.Buffer
	if err := c.Snapshot(&buf); err != nil {
		t.Fatal(err)
	}

	c2, _ := newTestCPU()
	if err := c2.Restore(&buf); err != nil {
		t.Fatal(err)
	}
	if c2.A != c.A || c2.X != c.X || c2.Y != c.Y || c2.SP != c.SP || c2.PC != c.PC {
		t.Errorf("restored state mismatch: got A:%02X X:%02X Y:%02X SP:%02X PC:%04X",
			c2.A, c2.X, c2.Y, c2.SP, c2.PC)
	}
	if c2.pendingHaltCycles != 7 {
		t.Errorf("pendingHaltCycles = %d, want 7", c2.pendingHaltCycles)
	}
}
