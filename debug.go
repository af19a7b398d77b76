package mos6502

import (
	"io"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
)

// debugDumper backs the HAL's debug_hook and the IR's DebugValue/
// StoreDebugString instructions. It is intentionally tiny — the core has no
// UI, so "debugging" here means structured text a host can log or a test can
// assert against.
type debugDumper struct {
	out    io.Writer
	logger *log.Logger
}

func newDebugDumper(out io.Writer, logger *log.Logger) *debugDumper {
	if out == nil {
		out = os.Stderr
	}
	if logger == nil {
		logger = log.New(out, "", log.LstdFlags)
	}
	return &debugDumper{out: out, logger: logger}
}

// dumpString writes an arbitrary debug string, tagged with the originating
// 6502 address.
func (d *debugDumper) dumpString(addr uint16, s string) {
	d.logger.Printf("$%04X debug: %s", addr, s)
}

// dumpValue spews a single runtime value — used by the IR's DebugValue
// instruction, which otherwise has no defined output shape.
func (d *debugDumper) dumpValue(addr uint16, label string, v interface{}) {
	d.logger.Printf("$%04X debug %s: %s", addr, label, spew.Sdump(v))
}

// dumpMachineState spews a full register/flag/stack snapshot — used by the
// JIT driver's end-of-run summary trail. (The HAL's debug hook writes its
// string through dumpString instead.)
func (d *debugDumper) dumpMachineState(tag string, snap MachineStateSnapshot) {
	d.logger.Printf("%s\n%s", tag, spew.Sdump(snap))
}

// MachineStateSnapshot is a point-in-time copy of HAL-owned state, used only
// for debug output — never for control flow.
type MachineStateSnapshot struct {
	A, X, Y, SP, Status       byte
	CurrentInstructionAddress uint16
}

func snapshotMachineState(h HAL) MachineStateSnapshot {
	return MachineStateSnapshot{
		A:                         h.A(),
		X:                         h.X(),
		Y:                         h.Y(),
		SP:                        h.SP(),
		Status:                    h.Status(),
		CurrentInstructionAddress: h.CurrentInstructionAddress(),
	}
}
