package mos6502

import "fmt"

// scratch variable slots reused across every lowered 6502 instruction. Each
// instruction's IR is self-contained (no value survives past the end of its
// own lowering), so a small fixed set of slots is sufficient regardless of
// how many 6502 instructions a function contains — only the largest index
// actually used anywhere determines the frame size (ir.go MaxLocalSlot).
var (
	v0 = Variable{Index: 0}
	v1 = Variable{Index: 1}
	v2 = Variable{Index: 2}
	v3 = Variable{Index: 3}
)

// LoweredFunction is instruction lowering's output: the flat IR program for
// one DecompiledFunction, plus the bookkeeping the interpreter and code
// generator need that does not belong on the IR itself.
type LoweredFunction struct {
	Instructions []Instruction
	MaxLocals    int

	// recompileSuccessor maps the index of a PollForRecompilation
	// instruction to the address execution should resume at when the HAL
	// requests recompilation — the originating instruction's address plus
	// its length. PollForRecompilation itself carries no fields, so this
	// side table is how the interpreter recovers that value.
	recompileSuccessor map[int]uint16
}

// Lower translates a decompiled function's instructions into IR.
func Lower(fn *DecompiledFunction) (*LoweredFunction, error) {
	lf := &LoweredFunction{recompileSuccessor: make(map[int]uint16)}

	for _, inst := range fn.Instructions {
		if fn.JumpTargets[inst.Address] {
			lf.Instructions = append(lf.Instructions, Label{ID: labelName(inst.Address)})
		}

		lf.Instructions = append(lf.Instructions,
			RecordCurrentInstructionAddress{Addr: Constant{N: int32(inst.Address)}},
			PollForInterrupt{Continuation: Constant{N: int32(inst.Address)}},
		)
		lf.recompileSuccessor[len(lf.Instructions)] = inst.End()
		lf.Instructions = append(lf.Instructions, PollForRecompilation{})

		body, err := lowerOne(inst, fn)
		if err != nil {
			return nil, err
		}
		lf.Instructions = append(lf.Instructions, body...)
	}

	lf.MaxLocals = MaxLocalSlot(lf.Instructions) + 1
	if lf.MaxLocals < 1 {
		lf.MaxLocals = 1
	}
	return lf, nil
}

func labelName(addr uint16) string {
	return fmt.Sprintf("L%04X", addr)
}

// operandValue resolves a decoded instruction's addressing mode to the IR
// Value describing where to read/write its operand. Implied-mode
// instructions never call this.
func operandValue(inst DisassembledInstruction) Value {
	switch inst.Info.Mode {
	case Accumulator:
		return Register{Name: RegA}
	case Immediate:
		return Constant{N: int32(inst.OperandByte())}
	case ZeroPage:
		return Memory{Address: uint16(inst.OperandByte()), SingleByteAddress: true}
	case ZeroPageX:
		r := RegX
		return Memory{Address: uint16(inst.OperandByte()), IndexRegister: &r, SingleByteAddress: true}
	case ZeroPageY:
		r := RegY
		return Memory{Address: uint16(inst.OperandByte()), IndexRegister: &r, SingleByteAddress: true}
	case Absolute:
		return Memory{Address: inst.OperandWord()}
	case AbsoluteX:
		r := RegX
		return Memory{Address: inst.OperandWord(), IndexRegister: &r}
	case AbsoluteY:
		r := RegY
		return Memory{Address: inst.OperandWord(), IndexRegister: &r}
	case IndirectX:
		return IndirectMemory{ZeroPageAddress: inst.OperandByte(), PreIndexed: true}
	case IndirectY:
		return IndirectMemory{ZeroPageAddress: inst.OperandByte(), PostIndexed: true}
	default:
		return Constant{N: 0}
	}
}

// setFlagFrom emits IR that sets flag f to (v != 0), the convention used
// throughout this file for every boolean flag write.
func setFlagFrom(v Value, f Flag) []Instruction {
	return []Instruction{Copy{Src: v, Dst: FlagValue{Flag: f}}}
}

// zeroNegativeFrom emits the shared Z/N update from a masked 8-bit result
// already sitting in scratch.
func zeroNegativeFrom(result Value) []Instruction {
	return []Instruction{
		Binary{Op: OpEq, Left: result, Right: Constant{N: 0}, Dst: v3},
		Copy{Src: v3, Dst: FlagValue{Flag: FlagZero}},
		Binary{Op: OpAnd, Left: result, Right: Constant{N: 0x80}, Dst: v3},
		Copy{Src: v3, Dst: FlagValue{Flag: FlagNegative}},
	}
}

func lowerOne(inst DisassembledInstruction, fn *DecompiledFunction) ([]Instruction, error) {
	m := inst.Info.Mnemonic

	switch m {
	case "":
		return nil, newLoweringError(inst.Address, "opcode $%02X has no lowering template", inst.Opcode)
	case "NOP":
		return []Instruction{NoOp{}}, nil
	case "BRK":
		return lowerBRK(inst), nil
	case "JSR":
		return lowerJSR(inst), nil
	case "RTS":
		return lowerRTS(), nil
	case "RTI":
		return lowerRTI(), nil
	case "JMP":
		if inst.Info.Mode == Indirect {
			return lowerJMPIndirect(inst), nil
		}
		target := inst.OperandWord()
		if !fn.JumpTargets[target] {
			return nil, newLoweringError(inst.Address, "JMP target $%04X is not a recognized in-function label", target)
		}
		return []Instruction{Jump{Target: labelName(target)}}, nil
	case "PHA":
		return []Instruction{PushStackValue{Src: Register{Name: RegA}}}, nil
	case "PLA":
		out := []Instruction{PopStackValue{Dst: Register{Name: RegA}}}
		out = append(out, zeroNegativeFrom(Register{Name: RegA})...)
		return out, nil
	case "PHP":
		return lowerPHP(), nil
	case "PLP":
		return lowerPLP(), nil
	}

	if isBranch(m) {
		return lowerBranch(inst, fn)
	}

	switch m {
	case "ADC":
		return lowerADC(inst), nil
	case "SBC":
		return lowerSBC(inst), nil
	case "AND", "ORA", "EOR":
		return lowerBitwiseALU(inst, m), nil
	case "ASL", "LSR", "ROL", "ROR":
		return lowerShiftRotate(inst, m), nil
	case "CMP":
		return lowerCompare(inst, Register{Name: RegA}), nil
	case "CPX":
		return lowerCompare(inst, Register{Name: RegX}), nil
	case "CPY":
		return lowerCompare(inst, Register{Name: RegY}), nil
	case "BIT":
		return lowerBIT(inst), nil
	case "LDA":
		return lowerLoad(inst, RegA), nil
	case "LDX":
		return lowerLoad(inst, RegX), nil
	case "LDY":
		return lowerLoad(inst, RegY), nil
	case "STA":
		return []Instruction{Copy{Src: Register{Name: RegA}, Dst: operandValue(inst)}}, nil
	case "STX":
		return []Instruction{Copy{Src: Register{Name: RegX}, Dst: operandValue(inst)}}, nil
	case "STY":
		return []Instruction{Copy{Src: Register{Name: RegY}, Dst: operandValue(inst)}}, nil
	case "INC":
		return lowerIncDecMemory(inst, OpAdd), nil
	case "DEC":
		return lowerIncDecMemory(inst, OpSub), nil
	case "INX":
		return lowerIncDecRegister(RegX, OpAdd), nil
	case "INY":
		return lowerIncDecRegister(RegY, OpAdd), nil
	case "DEX":
		return lowerIncDecRegister(RegX, OpSub), nil
	case "DEY":
		return lowerIncDecRegister(RegY, OpSub), nil
	case "TAX":
		return lowerTransfer(Register{Name: RegA}, Register{Name: RegX}, true), nil
	case "TAY":
		return lowerTransfer(Register{Name: RegA}, Register{Name: RegY}, true), nil
	case "TXA":
		return lowerTransfer(Register{Name: RegX}, Register{Name: RegA}, true), nil
	case "TYA":
		return lowerTransfer(Register{Name: RegY}, Register{Name: RegA}, true), nil
	case "TSX":
		return lowerTransfer(StackPointerValue{}, Register{Name: RegX}, true), nil
	case "TXS":
		return lowerTransfer(Register{Name: RegX}, StackPointerValue{}, false), nil
	case "CLC":
		return []Instruction{Copy{Src: Constant{N: 0}, Dst: FlagValue{Flag: FlagCarry}}}, nil
	case "SEC":
		return []Instruction{Copy{Src: Constant{N: 1}, Dst: FlagValue{Flag: FlagCarry}}}, nil
	case "CLI":
		return []Instruction{Copy{Src: Constant{N: 0}, Dst: FlagValue{Flag: FlagInterruptDisable}}}, nil
	case "SEI":
		return []Instruction{Copy{Src: Constant{N: 1}, Dst: FlagValue{Flag: FlagInterruptDisable}}}, nil
	case "CLD":
		return []Instruction{Copy{Src: Constant{N: 0}, Dst: FlagValue{Flag: FlagDecimal}}}, nil
	case "SED":
		return []Instruction{Copy{Src: Constant{N: 1}, Dst: FlagValue{Flag: FlagDecimal}}}, nil
	case "CLV":
		return []Instruction{Copy{Src: Constant{N: 0}, Dst: FlagValue{Flag: FlagOverflow}}}, nil
	}

	return nil, newLoweringError(inst.Address, "opcode %s has no lowering template", m)
}

func lowerBranch(inst DisassembledInstruction, fn *DecompiledFunction) ([]Instruction, error) {
	target := branchTarget(inst)
	if !fn.JumpTargets[target] {
		return nil, newLoweringError(inst.Address, "branch target $%04X is not a recognized in-function label", target)
	}
	label := labelName(target)

	var flag Flag
	takenWhenSet := true
	switch inst.Info.Mnemonic {
	case "BCC":
		flag, takenWhenSet = FlagCarry, false
	case "BCS":
		flag, takenWhenSet = FlagCarry, true
	case "BEQ":
		flag, takenWhenSet = FlagZero, true
	case "BNE":
		flag, takenWhenSet = FlagZero, false
	case "BMI":
		flag, takenWhenSet = FlagNegative, true
	case "BPL":
		flag, takenWhenSet = FlagNegative, false
	case "BVC":
		flag, takenWhenSet = FlagOverflow, false
	case "BVS":
		flag, takenWhenSet = FlagOverflow, true
	}

	if takenWhenSet {
		return []Instruction{JumpIfNotZero{Cond: FlagValue{Flag: flag}, Target: label}}, nil
	}
	return []Instruction{JumpIfZero{Cond: FlagValue{Flag: flag}, Target: label}}, nil
}

// lowerJMPIndirect implements JMP (abs), including the page-boundary bug:
// when the pointer's low byte is 0xFF, the high byte is read from the start
// of the same page instead of the next one, regardless of which page the
// pointer itself lives in. Both pointer byte addresses are computable at
// lowering time since the pointer address itself is the (compile-time-known)
// absolute operand; the bytes are read at run time, so the jump target is
// dynamic and is carried as a Variable into CallFunction rather than a Label.
func lowerJMPIndirect(inst DisassembledInstruction) []Instruction {
	ptr := inst.OperandWord()
	hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)

	return []Instruction{
		Copy{Src: Memory{Address: ptr}, Dst: v0},
		Copy{Src: Memory{Address: hiAddr}, Dst: v1},
		Binary{Op: OpShiftLeft, Left: v1, Right: Constant{N: 8}, Dst: v1},
		Binary{Op: OpOr, Left: v0, Right: v1, Dst: v0},
		CallFunction{Target: v0},
	}
}

func lowerJSR(inst DisassembledInstruction) []Instruction {
	target := inst.OperandWord()
	retMinus1 := inst.End() - 1
	hi := byte(retMinus1 >> 8)
	lo := byte(retMinus1)

	return []Instruction{
		PushStackValue{Src: Constant{N: int32(hi)}},
		PushStackValue{Src: Constant{N: int32(lo)}},
		CallFunction{Target: Constant{N: int32(target)}},
	}
}

func lowerRTS() []Instruction {
	return []Instruction{
		PopStackValue{Dst: v0}, // low byte (pushed second, popped first)
		PopStackValue{Dst: v1}, // high byte
		Binary{Op: OpShiftLeft, Left: v1, Right: Constant{N: 8}, Dst: v1},
		Binary{Op: OpOr, Left: v0, Right: v1, Dst: v0},
		Binary{Op: OpAdd, Left: v0, Right: Constant{N: 1}, Dst: v0},
		Return{Var: v0},
	}
}

func lowerRTI() []Instruction {
	return []Instruction{
		PopStackValue{Dst: v2}, // status
		Binary{Op: OpAnd, Left: v2, Right: Constant{N: 0xCF}, Dst: v2},
		Binary{Op: OpOr, Left: v2, Right: Constant{N: 0x20}, Dst: v2},
		Copy{Src: v2, Dst: AllFlags{}},
		PopStackValue{Dst: v0}, // PCL
		PopStackValue{Dst: v1}, // PCH
		Binary{Op: OpShiftLeft, Left: v1, Right: Constant{N: 8}, Dst: v1},
		Binary{Op: OpOr, Left: v0, Right: v1, Dst: v0},
		Return{Var: v0},
	}
}

func lowerBRK(inst DisassembledInstruction) []Instruction {
	end := inst.End()
	hi := byte(end >> 8)
	lo := byte(end)

	return []Instruction{
		PushStackValue{Src: Constant{N: int32(hi)}},
		PushStackValue{Src: Constant{N: int32(lo)}},
		Copy{Src: AllFlags{}, Dst: v0},
		Binary{Op: OpOr, Left: v0, Right: Constant{N: 0x30}, Dst: v0},
		PushStackValue{Src: v0},
		InvokeSoftwareInterrupt{},
	}
}

func lowerPHP() []Instruction {
	return []Instruction{
		Copy{Src: AllFlags{}, Dst: v0},
		Binary{Op: OpOr, Left: v0, Right: Constant{N: 0x30}, Dst: v0},
		PushStackValue{Src: v0},
	}
}

func lowerPLP() []Instruction {
	return []Instruction{
		PopStackValue{Dst: v0},
		Binary{Op: OpAnd, Left: v0, Right: Constant{N: 0xCF}, Dst: v0},
		Binary{Op: OpOr, Left: v0, Right: Constant{N: 0x20}, Dst: v0},
		Copy{Src: v0, Dst: AllFlags{}},
	}
}

func lowerADC(inst DisassembledInstruction) []Instruction {
	m := operandValue(inst)
	a := Register{Name: RegA}

	out := []Instruction{
		Copy{Src: FlagValue{Flag: FlagCarry}, Dst: v0},
		Binary{Op: OpAdd, Left: a, Right: m, Dst: v1},
		Binary{Op: OpAdd, Left: v1, Right: v0, Dst: v1}, // v1 = A + M + Cin, unmasked
		Binary{Op: OpGt, Left: v1, Right: Constant{N: 0xFF}, Dst: v2},
	}
	out = append(out, setFlagFrom(v2, FlagCarry)...)
	out = append(out,
		Binary{Op: OpAnd, Left: v1, Right: Constant{N: 0xFF}, Dst: v1}, // v1 = result
		Binary{Op: OpXor, Left: a, Right: v1, Dst: v2},                 // v2 = A^result
		Binary{Op: OpXor, Left: m, Right: v1, Dst: v3},                 // v3 = M^result
		Binary{Op: OpAnd, Left: v2, Right: v3, Dst: v2},
		Binary{Op: OpAnd, Left: v2, Right: Constant{N: 0x80}, Dst: v2},
	)
	out = append(out, setFlagFrom(v2, FlagOverflow)...)
	out = append(out, Copy{Src: v1, Dst: a})
	out = append(out, zeroNegativeFrom(v1)...)
	return out
}

func lowerSBC(inst DisassembledInstruction) []Instruction {
	m := operandValue(inst)
	a := Register{Name: RegA}

	out := []Instruction{
		Copy{Src: FlagValue{Flag: FlagCarry}, Dst: v0},
		Unary{Op: OpBitwiseNot, Src: m, Dst: v1},
		Binary{Op: OpAnd, Left: v1, Right: Constant{N: 0xFF}, Dst: v1}, // 8-bit complement of M
		Binary{Op: OpAdd, Left: a, Right: v1, Dst: v1},
		Binary{Op: OpAdd, Left: v1, Right: v0, Dst: v1}, // v1 = A + ~M + Cin, unmasked
		Binary{Op: OpGe, Left: v1, Right: Constant{N: 0x100}, Dst: v2},
	}
	out = append(out, setFlagFrom(v2, FlagCarry)...)
	out = append(out,
		Binary{Op: OpAnd, Left: v1, Right: Constant{N: 0xFF}, Dst: v1}, // v1 = result
		Binary{Op: OpXor, Left: a, Right: v1, Dst: v2},                 // v2 = A^result
		Binary{Op: OpXor, Left: a, Right: m, Dst: v3},                  // v3 = A^M
		Binary{Op: OpAnd, Left: v2, Right: v3, Dst: v2},
		Binary{Op: OpAnd, Left: v2, Right: Constant{N: 0x80}, Dst: v2},
	)
	out = append(out, setFlagFrom(v2, FlagOverflow)...)
	out = append(out, Copy{Src: v1, Dst: a})
	out = append(out, zeroNegativeFrom(v1)...)
	return out
}

func lowerBitwiseALU(inst DisassembledInstruction, mnemonic string) []Instruction {
	var op BinaryOp
	switch mnemonic {
	case "AND":
		op = OpAnd
	case "ORA":
		op = OpOr
	case "EOR":
		op = OpXor
	}
	a := Register{Name: RegA}
	out := []Instruction{Binary{Op: op, Left: a, Right: operandValue(inst), Dst: a}}
	out = append(out, zeroNegativeFrom(a)...)
	return out
}

// lowerShiftRotate implements ASL/LSR/ROL/ROR on either the accumulator or a
// memory operand.
func lowerShiftRotate(inst DisassembledInstruction, mnemonic string) []Instruction {
	src := operandValue(inst)
	dst := src // Accumulator mode: src/dst both Register{A}; memory modes: same Memory descriptor

	var out []Instruction
	switch mnemonic {
	case "ASL":
		out = append(out,
			Binary{Op: OpAnd, Left: src, Right: Constant{N: 0x80}, Dst: v2},
		)
		out = append(out, setFlagFrom(v2, FlagCarry)...)
		out = append(out, Binary{Op: OpShiftLeft, Left: src, Right: Constant{N: 1}, Dst: v0})
	case "LSR":
		out = append(out,
			Binary{Op: OpAnd, Left: src, Right: Constant{N: 0x01}, Dst: v2},
		)
		out = append(out, setFlagFrom(v2, FlagCarry)...)
		out = append(out, Binary{Op: OpShiftRight, Left: src, Right: Constant{N: 1}, Dst: v0})
	case "ROL":
		out = append(out, Copy{Src: FlagValue{Flag: FlagCarry}, Dst: v1})
		out = append(out, Binary{Op: OpAnd, Left: src, Right: Constant{N: 0x80}, Dst: v2})
		out = append(out, setFlagFrom(v2, FlagCarry)...)
		out = append(out,
			Binary{Op: OpShiftLeft, Left: src, Right: Constant{N: 1}, Dst: v0},
			Binary{Op: OpOr, Left: v0, Right: v1, Dst: v0},
		)
	case "ROR":
		out = append(out, Copy{Src: FlagValue{Flag: FlagCarry}, Dst: v1})
		out = append(out, Binary{Op: OpAnd, Left: src, Right: Constant{N: 0x01}, Dst: v2})
		out = append(out, setFlagFrom(v2, FlagCarry)...)
		out = append(out, Binary{Op: OpShiftLeft, Left: v1, Right: Constant{N: 7}, Dst: v1})
		out = append(out,
			Binary{Op: OpShiftRight, Left: src, Right: Constant{N: 1}, Dst: v0},
			Binary{Op: OpOr, Left: v0, Right: v1, Dst: v0},
		)
	}

	out = append(out, Copy{Src: v0, Dst: dst})
	out = append(out, Binary{Op: OpAnd, Left: v0, Right: Constant{N: 0xFF}, Dst: v0})
	out = append(out, zeroNegativeFrom(v0)...)
	return out
}

func lowerCompare(inst DisassembledInstruction, reg Value) []Instruction {
	m := operandValue(inst)
	out := []Instruction{
		Binary{Op: OpGe, Left: reg, Right: m, Dst: v0},
	}
	out = append(out, setFlagFrom(v0, FlagCarry)...)
	out = append(out, Binary{Op: OpEq, Left: reg, Right: m, Dst: v0})
	out = append(out, setFlagFrom(v0, FlagZero)...)
	out = append(out,
		Binary{Op: OpSub, Left: reg, Right: m, Dst: v1},
		Binary{Op: OpAnd, Left: v1, Right: Constant{N: 0xFF}, Dst: v1},
		Binary{Op: OpAnd, Left: v1, Right: Constant{N: 0x80}, Dst: v1},
	)
	out = append(out, setFlagFrom(v1, FlagNegative)...)
	return out
}

func lowerBIT(inst DisassembledInstruction) []Instruction {
	m := operandValue(inst)
	a := Register{Name: RegA}
	out := []Instruction{
		Binary{Op: OpAnd, Left: a, Right: m, Dst: v0},
		Binary{Op: OpEq, Left: v0, Right: Constant{N: 0}, Dst: v0},
	}
	out = append(out, setFlagFrom(v0, FlagZero)...)
	out = append(out, Binary{Op: OpAnd, Left: m, Right: Constant{N: 0x80}, Dst: v1})
	out = append(out, setFlagFrom(v1, FlagNegative)...)
	out = append(out, Binary{Op: OpAnd, Left: m, Right: Constant{N: 0x40}, Dst: v2})
	out = append(out, setFlagFrom(v2, FlagOverflow)...)
	return out
}

func lowerLoad(inst DisassembledInstruction, reg RegisterName) []Instruction {
	dst := Register{Name: reg}
	out := []Instruction{Copy{Src: operandValue(inst), Dst: dst}}
	out = append(out, zeroNegativeFrom(dst)...)
	return out
}

func lowerIncDecMemory(inst DisassembledInstruction, op BinaryOp) []Instruction {
	m := operandValue(inst)
	out := []Instruction{
		Binary{Op: op, Left: m, Right: Constant{N: 1}, Dst: v0},
		Copy{Src: v0, Dst: m},
		Binary{Op: OpAnd, Left: v0, Right: Constant{N: 0xFF}, Dst: v0},
	}
	out = append(out, zeroNegativeFrom(v0)...)
	return out
}

func lowerIncDecRegister(reg RegisterName, op BinaryOp) []Instruction {
	r := Register{Name: reg}
	out := []Instruction{Binary{Op: op, Left: r, Right: Constant{N: 1}, Dst: r}}
	out = append(out, zeroNegativeFrom(r)...)
	return out
}

func lowerTransfer(src, dst Value, updatesFlags bool) []Instruction {
	out := []Instruction{Copy{Src: src, Dst: dst}}
	if updatesFlags {
		out = append(out, zeroNegativeFrom(dst)...)
	}
	return out
}
