package mos6502

import "testing"

func TestOpcodeTableKnownEncodings(t *testing.T) {
	table := NewOpcodeTable()

	cases := []struct {
		code     byte
		mnemonic string
		mode     AddressingMode
		length   byte
	}{
		{0x00, "BRK", Implied, 1},
		{0xA9, "LDA", Immediate, 2},
		{0xAD, "LDA", Absolute, 3},
		{0x85, "STA", ZeroPage, 2},
		{0x6C, "JMP", Indirect, 3},
		{0x20, "JSR", Absolute, 3},
		{0x60, "RTS", Implied, 1},
		{0x90, "BCC", Relative, 2},
		{0x01, "ORA", IndirectX, 2},
		{0x11, "ORA", IndirectY, 2},
		{0xEA, "NOP", Implied, 1},
	}

	for _, c := range cases {
		info := table[c.code]
		if info.Mnemonic != c.mnemonic || info.Mode != c.mode || info.Length != c.length {
			t.Errorf("opcode $%02X: got %+v, want mnemonic=%s mode=%v length=%d",
				c.code, info, c.mnemonic, c.mode, c.length)
		}
	}
}

func TestOpcodeTableIllegalEntriesReportIllegal(t *testing.T) {
	table := NewOpcodeTable()

	// 0x02 has no official 6502 encoding.
	if !table[0x02].illegal() {
		t.Errorf("expected $02 to be illegal, got %+v", table[0x02])
	}
}

func TestAddressingModeOperandLength(t *testing.T) {
	cases := []struct {
		mode AddressingMode
		want byte
	}{
		{Implied, 0},
		{Accumulator, 0},
		{Immediate, 1},
		{Relative, 1},
		{ZeroPage, 1},
		{IndirectX, 1},
		{IndirectY, 1},
		{Absolute, 2},
		{AbsoluteX, 2},
		{Indirect, 2},
	}
	for _, c := range cases {
		if got := c.mode.operandLength(); got != c.want {
			t.Errorf("%v.operandLength() = %d, want %d", c.mode, got, c.want)
		}
	}
}

func TestIsBranchIsStoreIsReadModifyWrite(t *testing.T) {
	if !isBranch("BEQ") || isBranch("LDA") {
		t.Errorf("isBranch classification wrong")
	}
	if !isStore("STA") || isStore("LDA") {
		t.Errorf("isStore classification wrong")
	}
	if !isReadModifyWrite("ROL") || isReadModifyWrite("STA") {
		t.Errorf("isReadModifyWrite classification wrong")
	}
}
