package mos6502

import "log"

// Status byte bit layout: bit 0 Carry, 1 Zero, 2 InterruptDisable,
// 3 Decimal, 4 BFlag, 5 always 1, 6 Overflow, 7 Negative.
const (
	statusBitCarry            = 1 << 0
	statusBitZero             = 1 << 1
	statusBitInterruptDisable = 1 << 2
	statusBitDecimal          = 1 << 3
	statusBitBreak            = 1 << 4
	statusBitUnused           = 1 << 5
	statusBitOverflow         = 1 << 6
	statusBitNegative         = 1 << 7
)

func flagBit(f Flag) byte {
	switch f {
	case FlagCarry:
		return statusBitCarry
	case FlagZero:
		return statusBitZero
	case FlagInterruptDisable:
		return statusBitInterruptDisable
	case FlagDecimal:
		return statusBitDecimal
	case FlagBreak:
		return statusBitBreak
	case FlagOverflow:
		return statusBitOverflow
	case FlagNegative:
		return statusBitNegative
	default:
		return 0
	}
}

const stackBase uint16 = 0x0100

// HAL is the collaborator through which IR accesses registers, flags,
// memory, the stack, and interrupts. Deriving hosts may add
// peripheral-specific operations on top of a concrete implementation; the
// core only ever depends on this interface.
type HAL interface {
	ReadMemory(addr uint16) (byte, error)
	WriteMemory(addr uint16, value byte) error

	Push(value byte) error
	Pop() (byte, error)

	GetFlag(f Flag) bool
	SetFlag(f Flag, v bool)

	A() byte
	SetA(byte)
	X() byte
	SetX(byte)
	Y() byte
	SetY(byte)
	SP() byte
	SetSP(byte)

	// Status returns the composed status byte (AllFlags), and SetStatus
	// overwrites it wholesale. Both pass through the physical bit layout
	// — bits 4 and 5 are stored as given, never normalized on the way in
	// or out; masking/forcing those bits is the lowering pass's job, not
	// the HAL's.
	Status() byte
	SetStatus(byte)

	// PollForInterrupt returns the vector address to jump to, or 0 if no
	// interrupt is pending.
	PollForInterrupt() (uint16, error)
	PollForRecompilation() bool

	DebugHook(s string)
	DebugValue(v int32)

	CurrentInstructionAddress() uint16
	SetCurrentInstructionAddress(uint16)
}

// MemoryWriteObserver is notified of every write that reaches the bus
// through a HAL, and reports whether the write lands inside the
// currently-executing function.
type MemoryWriteObserver interface {
	OnMemoryWritten(addr uint16) (hitsCurrent bool)
}

// InterruptSource supplies pending interrupt vectors and recompilation
// requests. A host's peripheral clock drives this on its own cadence; the
// HAL only observes it at explicit poll points.
type InterruptSource interface {
	PendingInterruptVector() uint16
	RecompilationRequested() bool
}

// ReferenceHAL is the core's bus-backed HAL implementation: registers and
// status live as plain fields, and every memory access is mediated through
// an explicit Bus rather than a fixed address-range switch.
type ReferenceHAL struct {
	bus *Bus

	a, x, y, sp, status byte
	currentInstrAddr    uint16

	interrupts InterruptSource
	observer   MemoryWriteObserver

	dumper *debugDumper
	logger *log.Logger
}

// NewReferenceHAL constructs a HAL over bus. observer is typically the JIT
// driver (it implements MemoryWriteObserver so writes can invalidate cached
// functions); interrupts may be nil if the host has no peripheral clock.
func NewReferenceHAL(bus *Bus, observer MemoryWriteObserver, interrupts InterruptSource, cfg Config) *ReferenceHAL {
	h := &ReferenceHAL{
		bus:        bus,
		sp:         0xFD,
		status:     statusBitUnused | statusBitInterruptDisable,
		observer:   observer,
		interrupts: interrupts,
		logger:     cfg.logger(),
	}
	h.dumper = newDebugDumper(cfg.DebugWriter, h.logger)
	return h
}

func (h *ReferenceHAL) ReadMemory(addr uint16) (byte, error) {
	return h.bus.Read(addr), nil
}

func (h *ReferenceHAL) WriteMemory(addr uint16, value byte) error {
	h.bus.Write(addr, value)
	if h.observer != nil {
		h.observer.OnMemoryWritten(addr)
	}
	return nil
}

func (h *ReferenceHAL) Push(value byte) error {
	if err := h.WriteMemory(stackBase|uint16(h.sp), value); err != nil {
		return err
	}
	h.sp--
	return nil
}

func (h *ReferenceHAL) Pop() (byte, error) {
	h.sp++
	return h.ReadMemory(stackBase | uint16(h.sp))
}

func (h *ReferenceHAL) GetFlag(f Flag) bool {
	return h.status&flagBit(f) != 0
}

func (h *ReferenceHAL) SetFlag(f Flag, v bool) {
	bit := flagBit(f)
	if v {
		h.status |= bit
	} else {
		h.status &^= bit
	}
}

func (h *ReferenceHAL) A() byte      { return h.a }
func (h *ReferenceHAL) SetA(v byte)  { h.a = v }
func (h *ReferenceHAL) X() byte      { return h.x }
func (h *ReferenceHAL) SetX(v byte)  { h.x = v }
func (h *ReferenceHAL) Y() byte      { return h.y }
func (h *ReferenceHAL) SetY(v byte)  { h.y = v }
func (h *ReferenceHAL) SP() byte     { return h.sp }
func (h *ReferenceHAL) SetSP(v byte) { h.sp = v }

func (h *ReferenceHAL) Status() byte     { return h.status }
func (h *ReferenceHAL) SetStatus(v byte) { h.status = v }

func (h *ReferenceHAL) PollForInterrupt() (uint16, error) {
	if h.interrupts == nil {
		return 0, nil
	}
	return h.interrupts.PendingInterruptVector(), nil
}

func (h *ReferenceHAL) PollForRecompilation() bool {
	if h.interrupts == nil {
		return false
	}
	return h.interrupts.RecompilationRequested()
}

func (h *ReferenceHAL) DebugHook(s string) {
	h.dumper.dumpString(h.currentInstrAddr, s)
}

func (h *ReferenceHAL) DebugValue(v int32) {
	h.dumper.dumpValue(h.currentInstrAddr, "value", v)
}

func (h *ReferenceHAL) CurrentInstructionAddress() uint16 { return h.currentInstrAddr }
func (h *ReferenceHAL) SetCurrentInstructionAddress(addr uint16) {
	h.currentInstrAddr = addr
}
