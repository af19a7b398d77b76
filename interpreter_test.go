package mos6502

import "testing"

func TestJSRPushesReturnAddressMinusOne(t *testing.T) {
	// JSR $9000 at 0x8000 is 3 bytes long; the return address a matching
	// RTS must land on is 0x8003, so the pushed value is 0x8002.
	table := NewOpcodeTable()
	fn, err := Decompile(0x8000, []CodeRegion{{Base: 0x8000, Bytes: []byte{0x20, 0x00, 0x90}}}, table)
	if err != nil {
		t.Fatalf("Decompile: %v", err)
	}
	lf, err := Lower(fn)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}

	hal := newFakeHAL()
	it := NewInterpreter(lf)
	result, err := it.Execute(hal)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != 0x9000 {
		t.Errorf("CallFunction successor = $%04X, want $9000", result)
	}

	lo, _ := hal.Pop()
	hi, _ := hal.Pop()
	pushed := uint16(hi)<<8 | uint16(lo)
	if pushed != 0x8002 {
		t.Errorf("pushed return address = $%04X, want $8002 (End-1)", pushed)
	}
}

func TestRTSAddsOneToPoppedAddress(t *testing.T) {
	table := NewOpcodeTable()
	fn, err := Decompile(0x9000, []CodeRegion{{Base: 0x9000, Bytes: []byte{0x60}}}, table)
	if err != nil {
		t.Fatalf("Decompile: %v", err)
	}
	lf, err := Lower(fn)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}

	hal := newFakeHAL()
	hal.Push(0x80) // hi
	hal.Push(0x02) // lo -- matches a JSR's pushed return_address-1 of 0x8002

	it := NewInterpreter(lf)
	result, err := it.Execute(hal)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != 0x8003 {
		t.Errorf("RTS successor = $%04X, want $8003", result)
	}
}

func TestPLPMasksBits4And5(t *testing.T) {
	table := NewOpcodeTable()
	fn, err := Decompile(0x8000, []CodeRegion{{Base: 0x8000, Bytes: []byte{0x28}}}, table) // PLP
	if err != nil {
		t.Fatalf("Decompile: %v", err)
	}
	lf, err := Lower(fn)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}

	hal := newFakeHAL()
	hal.Push(0xFF) // all bits set, including bit 4 (B) which PLP must clear

	it := NewInterpreter(lf)
	if _, err := it.Execute(hal); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if hal.status&statusBitBreak != 0 {
		t.Error("PLP should clear the B flag on the way into the status register")
	}
	if hal.status&statusBitUnused == 0 {
		t.Error("PLP should force the unused bit set")
	}
}

func TestPHPForcesBits4And5(t *testing.T) {
	table := NewOpcodeTable()
	fn, err := Decompile(0x8000, []CodeRegion{{Base: 0x8000, Bytes: []byte{0x08}}}, table) // PHP
	if err != nil {
		t.Fatalf("Decompile: %v", err)
	}
	lf, err := Lower(fn)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}

	hal := newFakeHAL()
	hal.status = 0x00 // nothing set

	it := NewInterpreter(lf)
	if _, err := it.Execute(hal); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	pushed, _ := hal.Pop()
	if pushed&0x30 != 0x30 {
		t.Errorf("pushed status = $%02X, want bits 4 and 5 both set", pushed)
	}
}

func TestRTIRestoresStatusAndDoesNotAddOne(t *testing.T) {
	table := NewOpcodeTable()
	fn, err := Decompile(0x8000, []CodeRegion{{Base: 0x8000, Bytes: []byte{0x40}}}, table) // RTI
	if err != nil {
		t.Fatalf("Decompile: %v", err)
	}
	lf, err := Lower(fn)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}

	hal := newFakeHAL()
	hal.Push(0x90) // hi
	hal.Push(0x00) // lo
	hal.Push(0xFF) // status, with B set (must be masked off)

	it := NewInterpreter(lf)
	result, err := it.Execute(hal)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != 0x9000 {
		t.Errorf("RTI successor = $%04X, want $9000 (no +1)", result)
	}
	if hal.status&statusBitBreak != 0 {
		t.Error("RTI should clear B on restore")
	}
}

func TestInterpreterFallsOffEndReturnsTerminalSentinel(t *testing.T) {
	table := NewOpcodeTable()
	fn, err := Decompile(0x8000, []CodeRegion{{Base: 0x8000, Bytes: []byte{0xA9, 0x05}}}, table) // LDA #$05
	if err != nil {
		t.Fatalf("Decompile: %v", err)
	}
	lf, err := Lower(fn)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}

	hal := newFakeHAL()
	it := NewInterpreter(lf)
	result, err := it.Execute(hal)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != -1 {
		t.Errorf("result = %d, want -1 (terminal sentinel)", result)
	}
}

func TestPollForInterruptPushesAndDispatchesVector(t *testing.T) {
	table := NewOpcodeTable()
	fn, err := Decompile(0x8000, []CodeRegion{{Base: 0x8000, Bytes: []byte{0xEA}}}, table) // NOP
	if err != nil {
		t.Fatalf("Decompile: %v", err)
	}
	lf, err := Lower(fn)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}

	hal := newFakeHAL()
	hal.pendingVector = 0xFFFE
	hal.SetFlag(FlagInterruptDisable, false)

	it := NewInterpreter(lf)
	result, err := it.Execute(hal)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != 0xFFFE {
		t.Errorf("result = $%04X, want $FFFE", result)
	}
	if !hal.GetFlag(FlagInterruptDisable) {
		t.Error("taking an interrupt should set InterruptDisable")
	}

	status, _ := hal.Pop()
	lo, _ := hal.Pop()
	hi, _ := hal.Pop()
	if uint16(hi)<<8|uint16(lo) != 0x8000 {
		t.Errorf("pushed continuation = $%04X, want $8000", uint16(hi)<<8|uint16(lo))
	}
	_ = status
}
