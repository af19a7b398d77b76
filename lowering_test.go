package mos6502

import "testing"

// lowerAndRun decompiles and lowers bytes starting at base/entry, then runs
// the result through the interpreter against hal, returning the successor
// address (or -1) it yields.
func lowerAndRun(t *testing.T, base uint16, bytes []byte, entry uint16, hal *fakeHAL) int32 {
	t.Helper()
	table := NewOpcodeTable()
	fn, err := Decompile(entry, []CodeRegion{{Base: base, Bytes: bytes}}, table)
	if err != nil {
		t.Fatalf("Decompile: %v", err)
	}
	lf, err := Lower(fn)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	it := NewInterpreter(lf)
	result, err := it.Execute(hal)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	return result
}

func TestADCCarryChain(t *testing.T) {
	// ADC #$01 with A = 0xFF, carry clear: 0xFF + 0x01 = 0x100 -> A=0x00,
	// Carry set, Zero set, Overflow clear, Negative clear.
	hal := newFakeHAL()
	hal.a = 0xFF
	hal.SetFlag(FlagCarry, false)

	lowerAndRun(t, 0x8000, []byte{0x69, 0x01}, 0x8000, hal)

	if hal.a != 0x00 {
		t.Errorf("A = $%02X, want $00", hal.a)
	}
	if !hal.GetFlag(FlagCarry) {
		t.Error("Carry should be set")
	}
	if !hal.GetFlag(FlagZero) {
		t.Error("Zero should be set")
	}
	if hal.GetFlag(FlagOverflow) {
		t.Error("Overflow should be clear")
	}
	if hal.GetFlag(FlagNegative) {
		t.Error("Negative should be clear")
	}
}

func TestADCSignedOverflowNoCarry(t *testing.T) {
	// 0x50 + 0x50 = 0xA0: no unsigned carry, but the signed result overflows
	// (0xA0 is negative in two's complement while both operands are
	// positive).
	hal := newFakeHAL()
	hal.a = 0x50
	hal.SetFlag(FlagCarry, false)

	lowerAndRun(t, 0x8000, []byte{0x69, 0x50}, 0x8000, hal)

	if hal.a != 0xA0 {
		t.Errorf("A = $%02X, want $A0", hal.a)
	}
	if hal.GetFlag(FlagCarry) {
		t.Error("Carry should be clear")
	}
	if !hal.GetFlag(FlagOverflow) {
		t.Error("Overflow should be set")
	}
	if !hal.GetFlag(FlagNegative) {
		t.Error("Negative should be set")
	}
}

func TestSBCSignedOverflow(t *testing.T) {
	// A=0x80, M=0x01, Carry set (no incoming borrow): 0x80 - 0x01 = 0x7F,
	// a sign flip from negative to positive -> Overflow set, Carry stays
	// set (no borrow occurred).
	hal := newFakeHAL()
	hal.a = 0x80
	hal.SetFlag(FlagCarry, true)

	lowerAndRun(t, 0x8000, []byte{0xE9, 0x01}, 0x8000, hal)

	if hal.a != 0x7F {
		t.Errorf("A = $%02X, want $7F", hal.a)
	}
	if !hal.GetFlag(FlagCarry) {
		t.Error("Carry should remain set (no borrow)")
	}
	if !hal.GetFlag(FlagOverflow) {
		t.Error("Overflow should be set")
	}
	if hal.GetFlag(FlagNegative) {
		t.Error("Negative should be clear")
	}
}

func TestSBCBorrow(t *testing.T) {
	// A=0x01, M=0x02, Carry set: 0x01 - 0x02 borrows -> Carry clears.
	hal := newFakeHAL()
	hal.a = 0x01
	hal.SetFlag(FlagCarry, true)

	lowerAndRun(t, 0x8000, []byte{0xE9, 0x02}, 0x8000, hal)

	if hal.a != 0xFF {
		t.Errorf("A = $%02X, want $FF", hal.a)
	}
	if hal.GetFlag(FlagCarry) {
		t.Error("Carry should be clear (borrow occurred)")
	}
}

func TestIndirectJumpPageWrap(t *testing.T) {
	// JMP ($30FF): the pointer's low byte sits at the end of a page, so the
	// high byte is (buggily) fetched from $3000, not $3100.
	hal := newFakeHAL()
	hal.mem[0x30FF] = 0x34
	hal.mem[0x3000] = 0x12 // buggy high-byte source
	hal.mem[0x3100] = 0x99 // would be used if the bug were absent

	result := lowerAndRun(t, 0x8000, []byte{0x6C, 0xFF, 0x30}, 0x8000, hal)

	if result != 0x1234 {
		t.Errorf("JMP (abs) target = $%04X, want $1234 (page-wrap bug applied)", result)
	}
}

func TestIndirectJumpNoPageWrapWhenNotAtBoundary(t *testing.T) {
	hal := newFakeHAL()
	hal.mem[0x3050] = 0x34
	hal.mem[0x3051] = 0x12

	result := lowerAndRun(t, 0x8000, []byte{0x6C, 0x50, 0x30}, 0x8000, hal)

	if result != 0x1234 {
		t.Errorf("JMP (abs) target = $%04X, want $1234", result)
	}
}

func TestZeroPageIndexedWrap(t *testing.T) {
	// STA $FF,X with X=2 wraps to zero page address $01, not $0101.
	hal := newFakeHAL()
	hal.a = 0x42
	hal.x = 0x02

	lowerAndRun(t, 0x8000, []byte{0xA2, 0x02, 0x95, 0xFF}, 0x8000, hal)

	if hal.mem[0x0001] != 0x42 {
		t.Errorf("mem[$0001] = $%02X, want $42 (wrapped)", hal.mem[0x0001])
	}
	if v, ok := hal.mem[0x0101]; ok && v != 0 {
		t.Errorf("mem[$0101] should not have been written, got $%02X", v)
	}
}

func TestBNEBackwardLoop(t *testing.T) {
	// LDX #$03 ; loop: DEX ; BNE loop ; RTS
	bytes := []byte{
		0xA2, 0x03, // 0x8000
		0xCA,       // 0x8002 loop
		0xD0, 0xFD, // 0x8003 BNE loop
		0x60, // 0x8005
	}
	hal := newFakeHAL()
	hal.Push(0x00)
	hal.Push(0x00) // fake return address 0x0000, RTS yields 0x0001

	result := lowerAndRun(t, 0x8000, bytes, 0x8000, hal)

	if hal.x != 0 {
		t.Errorf("X = %d, want 0 after three decrements", hal.x)
	}
	if !hal.GetFlag(FlagZero) {
		t.Error("Zero should be set once X reaches 0")
	}
	if result != 0x0001 {
		t.Errorf("RTS successor = $%04X, want $0001", result)
	}
}

func TestIndirectYStore(t *testing.T) {
	// STA ($10),Y: base pointer at zero page $10/$11, indexed by Y.
	hal := newFakeHAL()
	hal.a = 0x7E
	hal.y = 0x05
	hal.mem[0x0010] = 0x00
	hal.mem[0x0011] = 0x20 // base pointer = 0x2000

	lowerAndRun(t, 0x8000, []byte{0x91, 0x10}, 0x8000, hal)

	if hal.mem[0x2005] != 0x7E {
		t.Errorf("mem[$2005] = $%02X, want $7E", hal.mem[0x2005])
	}
}

func TestBITFlagsLeaveAccumulatorUnchanged(t *testing.T) {
	hal := newFakeHAL()
	hal.a = 0x0F
	hal.mem[0x0010] = 0xC0 // bits 7 and 6 set, no overlap with A

	lowerAndRun(t, 0x8000, []byte{0x24, 0x10}, 0x8000, hal)

	if hal.a != 0x0F {
		t.Errorf("A changed to $%02X, BIT must not modify the accumulator", hal.a)
	}
	if !hal.GetFlag(FlagZero) {
		t.Error("Zero should be set: A & M == 0")
	}
	if !hal.GetFlag(FlagNegative) {
		t.Error("Negative should mirror bit 7 of M")
	}
	if !hal.GetFlag(FlagOverflow) {
		t.Error("Overflow should mirror bit 6 of M")
	}
}

func TestCompareFlags(t *testing.T) {
	hal := newFakeHAL()
	hal.a = 0x10
	hal.mem[0x0010] = 0x10

	lowerAndRun(t, 0x8000, []byte{0xC5, 0x10}, 0x8000, hal)

	if !hal.GetFlag(FlagCarry) {
		t.Error("Carry should be set: A >= M")
	}
	if !hal.GetFlag(FlagZero) {
		t.Error("Zero should be set: A == M")
	}
	if hal.GetFlag(FlagNegative) {
		t.Error("Negative should be clear: A - M == 0")
	}
}
