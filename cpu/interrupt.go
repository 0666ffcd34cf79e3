package cpu

// InterruptKind distinguishes the three interrupt sources a CPU can
// service (spec.md §3's Interrupt Line).
type InterruptKind int

const (
	MaskableIRQ InterruptKind = iota
	NonMaskable
	Reset
)

// InterruptLine models the single pending-interrupt slot the CPU polls
// before each fetch. Once armed, a further MaskableIRQ request is
// dropped until the line is serviced; Reset and NonMaskable always
// overwrite whatever is pending, per spec.md §3's arbitration rule.
type InterruptLine struct {
	requested bool
	kind      InterruptKind
}

// Request arms the line per the arbitration rule. Mappers hold a handle
// to this (via the CPU's public RequestInterrupt, not this type
// directly) so that mapper code never needs a pointer back to the CPU.
func (l *InterruptLine) Request(kind InterruptKind) {
	if kind == MaskableIRQ && l.requested {
		return
	}
	l.requested = true
	l.kind = kind
}

func (l *InterruptLine) clear() {
	l.requested = false
}

func (l *InterruptLine) pending() (InterruptKind, bool) {
	return l.kind, l.requested
}
