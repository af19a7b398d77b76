package mos6502

import "testing"

// runBoth executes the same lowered function through both the interpreter
// and the code generator against freshly seeded, otherwise-identical HALs,
// and returns (interpreterResult, codegenResult, interpreterHAL, codegenHAL).
func runBoth(t *testing.T, base uint16, bytes []byte, entry uint16, seed func(*fakeHAL)) (int32, int32, *fakeHAL, *fakeHAL) {
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

	ihal := newFakeHAL()
	chal := newFakeHAL()
	if seed != nil {
		seed(ihal)
		seed(chal)
	}

	it := NewInterpreter(lf)
	iResult, err := it.Execute(ihal)
	if err != nil {
		t.Fatalf("interpreter Execute: %v", err)
	}

	cm, err := Compile(lf)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	cResult, err := cm.Execute(chal)
	if err != nil {
		t.Fatalf("codegen Execute: %v", err)
	}

	return iResult, cResult, ihal, chal
}

func assertSnapshotsEqual(t *testing.T, i, c halSnapshot) {
	t.Helper()
	if i.a != c.a || i.x != c.x || i.y != c.y || i.sp != c.sp || i.status != c.status {
		t.Errorf("register/flag mismatch: interpreter=%+v codegen=%+v", i, c)
	}
	if len(i.mem) != len(c.mem) {
		t.Errorf("memory write count mismatch: interpreter=%d codegen=%d", len(i.mem), len(c.mem))
	}
	for addr, v := range i.mem {
		if c.mem[addr] != v {
			t.Errorf("mem[$%04X]: interpreter=$%02X codegen=$%02X", addr, v, c.mem[addr])
		}
	}
}

func TestInterpreterCodegenEquivalenceADC(t *testing.T) {
	iResult, cResult, ihal, chal := runBoth(t, 0x8000, []byte{0x69, 0x50}, 0x8000, func(h *fakeHAL) {
		h.a = 0x50
	})
	if iResult != cResult {
		t.Errorf("successor mismatch: interpreter=%d codegen=%d", iResult, cResult)
	}
	assertSnapshotsEqual(t, ihal.snapshot(), chal.snapshot())
}

func TestInterpreterCodegenEquivalenceLoop(t *testing.T) {
	bytes := []byte{
		0xA2, 0x05, // LDX #$05
		0xCA,       // loop: DEX
		0xE8,       // INX  (filler so the function body has more than one op)
		0xCA,       // DEX
		0xD0, 0xFB, // BNE loop
		0x60, // RTS
	}
	seed := func(h *fakeHAL) {
		h.Push(0x00)
		h.Push(0x00)
	}
	iResult, cResult, ihal, chal := runBoth(t, 0x8000, bytes, 0x8000, seed)
	if iResult != cResult {
		t.Errorf("successor mismatch: interpreter=%d codegen=%d", iResult, cResult)
	}
	assertSnapshotsEqual(t, ihal.snapshot(), chal.snapshot())
}

func TestInterpreterCodegenEquivalenceIndirectStore(t *testing.T) {
	bytes := []byte{0x91, 0x10} // STA ($10),Y
	seed := func(h *fakeHAL) {
		h.a = 0x7E
		h.y = 0x05
		h.mem[0x0010] = 0x00
		h.mem[0x0011] = 0x20
	}
	iResult, cResult, ihal, chal := runBoth(t, 0x8000, bytes, 0x8000, seed)
	if iResult != cResult {
		t.Errorf("successor mismatch: interpreter=%d codegen=%d", iResult, cResult)
	}
	assertSnapshotsEqual(t, ihal.snapshot(), chal.snapshot())
}

func TestInterpreterCodegenEquivalenceJSRReturn(t *testing.T) {
	bytes := []byte{0x20, 0x00, 0x90} // JSR $9000
	iResult, cResult, ihal, chal := runBoth(t, 0x8000, bytes, 0x8000, nil)
	if iResult != cResult {
		t.Errorf("successor mismatch: interpreter=%d codegen=%d", iResult, cResult)
	}
	assertSnapshotsEqual(t, ihal.snapshot(), chal.snapshot())
}
