package mos6502

import "fmt"

// fakeHAL is a minimal in-memory HAL used by IR-level unit tests that have
// no need for a real Bus/device graph. Stack operations go through the same
// 0x0100-based convention as ReferenceHAL so pushed/popped byte values in
// tests match what a real 6502 program would see.
type fakeHAL struct {
	mem                 map[uint16]byte
	a, x, y, sp, status byte
	currentAddr         uint16

	pendingVector   uint16
	wantRecompile   bool
	recompileCalled int

	debugLog []string
}

var _ HAL = (*fakeHAL)(nil)

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		mem:    make(map[uint16]byte),
		sp:     0xFD,
		status: statusBitUnused,
	}
}

func (f *fakeHAL) ReadMemory(addr uint16) (byte, error) { return f.mem[addr], nil }
func (f *fakeHAL) WriteMemory(addr uint16, v byte) error {
	f.mem[addr] = v
	return nil
}

func (f *fakeHAL) Push(v byte) error {
	f.mem[stackBase|uint16(f.sp)] = v
	f.sp--
	return nil
}

func (f *fakeHAL) Pop() (byte, error) {
	f.sp++
	return f.mem[stackBase|uint16(f.sp)], nil
}

func (f *fakeHAL) GetFlag(fl Flag) bool { return f.status&flagBit(fl) != 0 }
func (f *fakeHAL) SetFlag(fl Flag, v bool) {
	bit := flagBit(fl)
	if v {
		f.status |= bit
	} else {
		f.status &^= bit
	}
}

func (f *fakeHAL) A() byte      { return f.a }
func (f *fakeHAL) SetA(v byte)  { f.a = v }
func (f *fakeHAL) X() byte      { return f.x }
func (f *fakeHAL) SetX(v byte)  { f.x = v }
func (f *fakeHAL) Y() byte      { return f.y }
func (f *fakeHAL) SetY(v byte)  { f.y = v }
func (f *fakeHAL) SP() byte     { return f.sp }
func (f *fakeHAL) SetSP(v byte) { f.sp = v }

func (f *fakeHAL) Status() byte     { return f.status }
func (f *fakeHAL) SetStatus(v byte) { f.status = v }

func (f *fakeHAL) PollForInterrupt() (uint16, error) {
	v := f.pendingVector
	f.pendingVector = 0
	return v, nil
}

func (f *fakeHAL) PollForRecompilation() bool {
	f.recompileCalled++
	return f.wantRecompile
}

func (f *fakeHAL) DebugHook(s string) { f.debugLog = append(f.debugLog, s) }
func (f *fakeHAL) DebugValue(v int32) { f.debugLog = append(f.debugLog, fmt.Sprintf("value=%d", v)) }

func (f *fakeHAL) CurrentInstructionAddress() uint16     { return f.currentAddr }
func (f *fakeHAL) SetCurrentInstructionAddress(a uint16) { f.currentAddr = a }

// snapshot copies every piece of state the interpreter/codegen equivalence
// tests compare after running identical IR through each execution path.
type halSnapshot struct {
	a, x, y, sp, status byte
	mem                 map[uint16]byte
}

func (f *fakeHAL) snapshot() halSnapshot {
	mem := make(map[uint16]byte, len(f.mem))
	for k, v := range f.mem {
		mem[k] = v
	}
	return halSnapshot{a: f.a, x: f.x, y: f.y, sp: f.sp, status: f.status, mem: mem}
}
