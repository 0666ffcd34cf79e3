package nlog

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

// EntryZ is a chainable, allocation-light log entry. A nil *EntryZ (returned
// when the module/level pair is disabled) absorbs every chained call and
// End() as a no-op, so call sites never need to guard with an Enabled()
// check themselves:
//
//	modMapper.DebugZ("bank switch").String("mapper", name).Uint32("bank", n).End()
type EntryZ struct {
	mod    Module
	lvl    Level
	msg    string
	fields logrus.Fields
}

func (e *EntryZ) set(key string, val any) *EntryZ {
	if e == nil {
		return nil
	}
	if e.fields == nil {
		e.fields = make(logrus.Fields, 4)
	}
	e.fields[key] = val
	return e
}

func (e *EntryZ) String(key, val string) *EntryZ   { return e.set(key, val) }
func (e *EntryZ) Bool(key string, val bool) *EntryZ { return e.set(key, val) }
func (e *EntryZ) Err(key string, err error) *EntryZ { return e.set(key, err) }

func (e *EntryZ) Int(key string, val int) *EntryZ       { return e.set(key, val) }
func (e *EntryZ) Uint8(key string, val uint8) *EntryZ    { return e.set(key, val) }
func (e *EntryZ) Uint16(key string, val uint16) *EntryZ  { return e.set(key, val) }
func (e *EntryZ) Uint32(key string, val uint32) *EntryZ  { return e.set(key, val) }
func (e *EntryZ) Int64(key string, val int64) *EntryZ    { return e.set(key, val) }

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return e.set(key, fmt.Sprintf("%02x", val))
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return e.set(key, fmt.Sprintf("%04x", val))
}

func (e *EntryZ) Hex32(key string, val uint32) *EntryZ {
	return e.set(key, fmt.Sprintf("%08x", val))
}

// End flushes the entry to the backing logger. Safe to call on a nil entry.
func (e *EntryZ) End() {
	if e == nil {
		return
	}
	entry := logrus.StandardLogger().WithField("_mod", e.mod.name())
	if e.fields != nil {
		entry = entry.WithFields(e.fields)
	}
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Error(e.msg) // never os.Exit from library code
	default:
		entry.Info(e.msg)
	}
}
