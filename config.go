package mos6502

import (
	"io"
	"log"
	"os"
)

// Config configures a Driver/HAL pair. It is a plain struct passed to the
// constructor rather than a parsed file or environment lookup — there is
// nothing here a host would want to change at runtime without also
// rebuilding the driver.
type Config struct {
	// CacheCapacity bounds the method cache. Zero means unbounded.
	CacheCapacity int

	// TraceDepth sizes the JIT driver's diagnostic ring buffer of recently
	// entered addresses.
	TraceDepth int

	// ForceInterpreter routes every decompiled function through the IR
	// interpreter, even when it is not self-modifying.
	ForceInterpreter bool

	// Logger receives the JIT driver's end-of-run debug trail and the HAL's
	// debug output. Decode and lowering errors are returned from Run, not
	// logged. Defaults to a logger writing to DebugWriter, or os.Stderr.
	Logger *log.Logger

	// DebugWriter backs the HAL's debug_hook and the IR's DebugValue /
	// StoreDebugString instructions when Logger is nil. Defaults to
	// os.Stderr.
	DebugWriter io.Writer
}

const (
	defaultTraceDepth = 32
)

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	w := c.DebugWriter
	if w == nil {
		w = os.Stderr
	}
	return log.New(w, "mos6502: ", log.LstdFlags)
}

func (c Config) traceDepth() int {
	if c.TraceDepth > 0 {
		return c.TraceDepth
	}
	return defaultTraceDepth
}
