package mos6502

// AddressingMode is the closed set of 6502 operand-fetch shapes.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	Relative
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // (zp,X) — pre-indexed
	IndirectY // (zp),Y — post-indexed
)

// operandLength returns how many bytes beyond the opcode byte itself an
// instruction in this mode consumes.
func (m AddressingMode) operandLength() byte {
	switch m {
	case Implied, Accumulator:
		return 0
	case Immediate, Relative, ZeroPage, ZeroPageX, ZeroPageY, IndirectX, IndirectY:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	default:
		return 0
	}
}

// OpcodeInfo is the per-opcode metadata: mnemonic, addressing mode, and
// total instruction byte length (opcode + operand).
type OpcodeInfo struct {
	Mnemonic string
	Mode     AddressingMode
	Length   byte
}

func (o OpcodeInfo) illegal() bool { return o.Mnemonic == "" }

// OpcodeTable is the 256-entry lookup used by both the disassembler and the
// lowering pass. It holds plain metadata, not executable closures, so the
// two components can share one table without either owning behavior the
// other needs.
type OpcodeTable [256]OpcodeInfo

func op(mnemonic string, mode AddressingMode) OpcodeInfo {
	return OpcodeInfo{Mnemonic: mnemonic, Mode: mode, Length: 1 + mode.operandLength()}
}

// NewOpcodeTable builds the standard (official-opcodes-only) 6502 table.
// Byte values with no legal mnemonic are left as the zero OpcodeInfo
// (illegal() reports true); decoding or lowering one is a DecodeError /
// LoweringError rather than a silent no-op.
func NewOpcodeTable() *OpcodeTable {
	var t OpcodeTable

	set := func(code byte, mnemonic string, mode AddressingMode) {
		t[code] = op(mnemonic, mode)
	}

	// Row 0x0_
	set(0x00, "BRK", Implied)
	set(0x01, "ORA", IndirectX)
	set(0x05, "ORA", ZeroPage)
	set(0x06, "ASL", ZeroPage)
	set(0x08, "PHP", Implied)
	set(0x09, "ORA", Immediate)
	set(0x0A, "ASL", Accumulator)
	set(0x0D, "ORA", Absolute)
	set(0x0E, "ASL", Absolute)

	// Row 0x1_
	set(0x10, "BPL", Relative)
	set(0x11, "ORA", IndirectY)
	set(0x15, "ORA", ZeroPageX)
	set(0x16, "ASL", ZeroPageX)
	set(0x18, "CLC", Implied)
	set(0x19, "ORA", AbsoluteY)
	set(0x1D, "ORA", AbsoluteX)
	set(0x1E, "ASL", AbsoluteX)

	// Row 0x2_
	set(0x20, "JSR", Absolute)
	set(0x21, "AND", IndirectX)
	set(0x24, "BIT", ZeroPage)
	set(0x25, "AND", ZeroPage)
	set(0x26, "ROL", ZeroPage)
	set(0x28, "PLP", Implied)
	set(0x29, "AND", Immediate)
	set(0x2A, "ROL", Accumulator)
	set(0x2C, "BIT", Absolute)
	set(0x2D, "AND", Absolute)
	set(0x2E, "ROL", Absolute)

	// Row 0x3_
	set(0x30, "BMI", Relative)
	set(0x31, "AND", IndirectY)
	set(0x35, "AND", ZeroPageX)
	set(0x36, "ROL", ZeroPageX)
	set(0x38, "SEC", Implied)
	set(0x39, "AND", AbsoluteY)
	set(0x3D, "AND", AbsoluteX)
	set(0x3E, "ROL", AbsoluteX)

	// Row 0x4_
	set(0x40, "RTI", Implied)
	set(0x41, "EOR", IndirectX)
	set(0x45, "EOR", ZeroPage)
	set(0x46, "LSR", ZeroPage)
	set(0x48, "PHA", Implied)
	set(0x49, "EOR", Immediate)
	set(0x4A, "LSR", Accumulator)
	set(0x4C, "JMP", Absolute)
	set(0x4D, "EOR", Absolute)
	set(0x4E, "LSR", Absolute)

	// Row 0x5_
	set(0x50, "BVC", Relative)
	set(0x51, "EOR", IndirectY)
	set(0x55, "EOR", ZeroPageX)
	set(0x56, "LSR", ZeroPageX)
	set(0x58, "CLI", Implied)
	set(0x59, "EOR", AbsoluteY)
	set(0x5D, "EOR", AbsoluteX)
	set(0x5E, "LSR", AbsoluteX)

	// Row 0x6_
	set(0x60, "RTS", Implied)
	set(0x61, "ADC", IndirectX)
	set(0x65, "ADC", ZeroPage)
	set(0x66, "ROR", ZeroPage)
	set(0x68, "PLA", Implied)
	set(0x69, "ADC", Immediate)
	set(0x6A, "ROR", Accumulator)
	set(0x6C, "JMP", Indirect)
	set(0x6D, "ADC", Absolute)
	set(0x6E, "ROR", Absolute)

	// Row 0x7_
	set(0x70, "BVS", Relative)
	set(0x71, "ADC", IndirectY)
	set(0x75, "ADC", ZeroPageX)
	set(0x76, "ROR", ZeroPageX)
	set(0x78, "SEI", Implied)
	set(0x79, "ADC", AbsoluteY)
	set(0x7D, "ADC", AbsoluteX)
	set(0x7E, "ROR", AbsoluteX)

	// Row 0x8_
	set(0x81, "STA", IndirectX)
	set(0x84, "STY", ZeroPage)
	set(0x85, "STA", ZeroPage)
	set(0x86, "STX", ZeroPage)
	set(0x88, "DEY", Implied)
	set(0x8A, "TXA", Implied)
	set(0x8C, "STY", Absolute)
	set(0x8D, "STA", Absolute)
	set(0x8E, "STX", Absolute)

	// Row 0x9_
	set(0x90, "BCC", Relative)
	set(0x91, "STA", IndirectY)
	set(0x94, "STY", ZeroPageX)
	set(0x95, "STA", ZeroPageX)
	set(0x96, "STX", ZeroPageY)
	set(0x98, "TYA", Implied)
	set(0x99, "STA", AbsoluteY)
	set(0x9A, "TXS", Implied)
	set(0x9D, "STA", AbsoluteX)

	// Row 0xA_
	set(0xA0, "LDY", Immediate)
	set(0xA1, "LDA", IndirectX)
	set(0xA2, "LDX", Immediate)
	set(0xA4, "LDY", ZeroPage)
	set(0xA5, "LDA", ZeroPage)
	set(0xA6, "LDX", ZeroPage)
	set(0xA8, "TAY", Implied)
	set(0xA9, "LDA", Immediate)
	set(0xAA, "TAX", Implied)
	set(0xAC, "LDY", Absolute)
	set(0xAD, "LDA", Absolute)
	set(0xAE, "LDX", Absolute)

	// Row 0xB_
	set(0xB0, "BCS", Relative)
	set(0xB1, "LDA", IndirectY)
	set(0xB4, "LDY", ZeroPageX)
	set(0xB5, "LDA", ZeroPageX)
	set(0xB6, "LDX", ZeroPageY)
	set(0xB8, "CLV", Implied)
	set(0xB9, "LDA", AbsoluteY)
	set(0xBA, "TSX", Implied)
	set(0xBC, "LDY", AbsoluteX)
	set(0xBD, "LDA", AbsoluteX)
	set(0xBE, "LDX", AbsoluteY)

	// Row 0xC_
	set(0xC0, "CPY", Immediate)
	set(0xC1, "CMP", IndirectX)
	set(0xC4, "CPY", ZeroPage)
	set(0xC5, "CMP", ZeroPage)
	set(0xC6, "DEC", ZeroPage)
	set(0xC8, "INY", Implied)
	set(0xC9, "CMP", Immediate)
	set(0xCA, "DEX", Implied)
	set(0xCC, "CPY", Absolute)
	set(0xCD, "CMP", Absolute)
	set(0xCE, "DEC", Absolute)

	// Row 0xD_
	set(0xD0, "BNE", Relative)
	set(0xD1, "CMP", IndirectY)
	set(0xD5, "CMP", ZeroPageX)
	set(0xD6, "DEC", ZeroPageX)
	set(0xD8, "CLD", Implied)
	set(0xD9, "CMP", AbsoluteY)
	set(0xDD, "CMP", AbsoluteX)
	set(0xDE, "DEC", AbsoluteX)

	// Row 0xE_
	set(0xE0, "CPX", Immediate)
	set(0xE1, "SBC", IndirectX)
	set(0xE4, "CPX", ZeroPage)
	set(0xE5, "SBC", ZeroPage)
	set(0xE6, "INC", ZeroPage)
	set(0xE8, "INX", Implied)
	set(0xE9, "SBC", Immediate)
	set(0xEA, "NOP", Implied)
	set(0xEC, "CPX", Absolute)
	set(0xED, "SBC", Absolute)
	set(0xEE, "INC", Absolute)

	// Row 0xF_
	set(0xF0, "BEQ", Relative)
	set(0xF1, "SBC", IndirectY)
	set(0xF5, "SBC", ZeroPageX)
	set(0xF6, "INC", ZeroPageX)
	set(0xF8, "SED", Implied)
	set(0xF9, "SBC", AbsoluteY)
	set(0xFD, "SBC", AbsoluteX)
	set(0xFE, "INC", AbsoluteX)

	return &t
}

// isBranch reports whether mnemonic is one of the eight conditional
// branches.
func isBranch(mnemonic string) bool {
	switch mnemonic {
	case "BCC", "BCS", "BEQ", "BNE", "BMI", "BPL", "BVC", "BVS":
		return true
	}
	return false
}

// isStore reports whether mnemonic always writes memory without also
// reading-modifying-writing a register value through a different template.
func isStore(mnemonic string) bool {
	switch mnemonic {
	case "STA", "STX", "STY":
		return true
	}
	return false
}

// isReadModifyWrite reports whether mnemonic reads an operand, computes a
// new value, and writes it back to the same operand location (memory or,
// via Accumulator mode, the A register).
func isReadModifyWrite(mnemonic string) bool {
	switch mnemonic {
	case "ASL", "LSR", "ROL", "ROR", "INC", "DEC":
		return true
	}
	return false
}
