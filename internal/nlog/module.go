// Package nlog provides allocation-light, module-scoped structured logging
// for the emulator core, backed by logrus.
package nlog

import "gopkg.in/Sirupsen/logrus.v0"

// Level mirrors logrus' severity ordering (lower value = more severe), so
// that "level <= WarnLevel" reads naturally as "always surfaced".
type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func (l Level) logrus() logrus.Level { return logrus.Level(l) }

// Module is a small integer handle identifying a logging subsystem (cpu,
// bus, mapper, cartridge...). New modules are registered once at startup
// via NewModule and never removed; the registry is an immutable lookup
// table by the time logging actually happens.
type Module uint

const (
	ModCPU Module = iota + 1
	ModBus
	ModMapper
	ModCartridge
	ModNES

	endStandardMods
)

var (
	modCount = endStandardMods
	modNames = []string{"<error>", "cpu", "bus", "mapper", "cartridge", "nes"}

	// modDebugMask gates Info/Debug level logging per module; Warn and
	// above are always surfaced regardless of mask.
	modDebugMask uint64
)

// NewModule registers a new logging module and returns its handle.
func NewModule(name string) Module {
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

// EnableDebugModules turns on Info/Debug logging for the given modules.
func EnableDebugModules(mods ...Module) {
	for _, m := range mods {
		modDebugMask |= m.mask()
	}
	if len(mods) > 0 {
		// The backing logger drops Debug entries at its default level.
		logrus.SetLevel(DebugLevel.logrus())
	}
}

// DisableDebugModules turns Info/Debug logging back off for the given modules.
func DisableDebugModules(mods ...Module) {
	for _, m := range mods {
		modDebugMask &^= m.mask()
	}
}

func (mod Module) mask() uint64 { return 1 << uint(mod) }

func (mod Module) name() string {
	if int(mod) < len(modNames) {
		return modNames[mod]
	}
	return "<unknown>"
}

// Enabled reports whether a log line at the given level should be emitted
// for this module.
func (mod Module) Enabled(lvl Level) bool {
	return lvl <= WarnLevel || modDebugMask&mod.mask() != 0
}

// ModuleByName looks up a module by its registered name, used by the CLI's
// --log flag.
func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if s == name {
			return Module(idx), true
		}
	}
	return 0, false
}

func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if !mod.Enabled(lvl) {
		return nil
	}
	e := &EntryZ{mod: mod, lvl: lvl, msg: msg}
	return e
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }
func (mod Module) FatalZ(msg string) *EntryZ { return mod.logz(FatalLevel, msg) }
