package nes

import "errors"

// ErrSaveFileWriteFailure is recorded into Console.saveWriteFailed rather
// than returned from the frame driver: spec.md §7 requires that a save
// write failure degrade to memory-only persistence with a single log
// line, not halt emulation.
var ErrSaveFileWriteFailure = errors.New("nes: save file write failed")
