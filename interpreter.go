package mos6502

// Interpreter walks a LoweredFunction's IR list against a HAL. It is the
// only execution path for self-modifying functions and doubles as the
// correctness oracle that the native code generator is checked against.
type Interpreter struct {
	lf     *LoweredFunction
	labels map[string]int
}

// NewInterpreter builds the label→index pre-pass for lf.
func NewInterpreter(lf *LoweredFunction) *Interpreter {
	labels := make(map[string]int, len(lf.Instructions))
	for i, instr := range lf.Instructions {
		if l, ok := instr.(Label); ok {
			labels[l.ID] = i
		}
	}
	return &Interpreter{lf: lf, labels: labels}
}

// Execute runs the IR to completion or to the next suspension point,
// returning the successor 6502 address, or -1 (the terminal sentinel) if
// the IR list runs off its end without one.
func (it *Interpreter) Execute(hal HAL) (int32, error) {
	locals := make([]int32, it.lf.MaxLocals)
	ip := 0

	for ip < len(it.lf.Instructions) {
		switch instr := it.lf.Instructions[ip].(type) {
		case Label, NoOp:
			ip++

		case Copy:
			val, err := it.read(hal, locals, instr.Src)
			if err != nil {
				return 0, err
			}
			if err := it.write(hal, locals, instr.Dst, val); err != nil {
				return 0, err
			}
			ip++

		case Binary:
			l, err := it.read(hal, locals, instr.Left)
			if err != nil {
				return 0, err
			}
			r, err := it.read(hal, locals, instr.Right)
			if err != nil {
				return 0, err
			}
			if err := it.write(hal, locals, instr.Dst, evalBinary(instr.Op, l, r)); err != nil {
				return 0, err
			}
			ip++

		case Unary:
			s, err := it.read(hal, locals, instr.Src)
			if err != nil {
				return 0, err
			}
			if err := it.write(hal, locals, instr.Dst, evalUnary(instr.Op, s)); err != nil {
				return 0, err
			}
			ip++

		case ConvertVariableToByte:
			locals[instr.Var.Index] &= 0xFF
			ip++

		case Jump:
			idx, ok := it.labels[instr.Target]
			if !ok {
				return 0, newExecutionError(hal.CurrentInstructionAddress(), "jump target %q has no matching label", instr.Target)
			}
			ip = idx

		case JumpIfZero:
			cond, err := it.read(hal, locals, instr.Cond)
			if err != nil {
				return 0, err
			}
			if cond == 0 {
				idx, ok := it.labels[instr.Target]
				if !ok {
					return 0, newExecutionError(hal.CurrentInstructionAddress(), "jump target %q has no matching label", instr.Target)
				}
				ip = idx
			} else {
				ip++
			}

		case JumpIfNotZero:
			cond, err := it.read(hal, locals, instr.Cond)
			if err != nil {
				return 0, err
			}
			if cond != 0 {
				idx, ok := it.labels[instr.Target]
				if !ok {
					return 0, newExecutionError(hal.CurrentInstructionAddress(), "jump target %q has no matching label", instr.Target)
				}
				ip = idx
			} else {
				ip++
			}

		case PushStackValue:
			v, err := it.read(hal, locals, instr.Src)
			if err != nil {
				return 0, err
			}
			if err := hal.Push(byte(v)); err != nil {
				return 0, err
			}
			ip++

		case PopStackValue:
			b, err := hal.Pop()
			if err != nil {
				return 0, err
			}
			if err := it.write(hal, locals, instr.Dst, int32(b)); err != nil {
				return 0, err
			}
			ip++

		case CallFunction:
			target, err := it.read(hal, locals, instr.Target)
			if err != nil {
				return 0, err
			}
			return target & 0xFFFF, nil

		case Return:
			v, err := it.read(hal, locals, instr.Var)
			if err != nil {
				return 0, err
			}
			return v & 0xFFFF, nil

		case InvokeSoftwareInterrupt:
			lo, err := hal.ReadMemory(0xFFFE)
			if err != nil {
				return 0, err
			}
			hi, err := hal.ReadMemory(0xFFFF)
			if err != nil {
				return 0, err
			}
			return int32(uint16(hi)<<8 | uint16(lo)), nil

		case PollForInterrupt:
			vector, err := hal.PollForInterrupt()
			if err != nil {
				return 0, err
			}
			if vector == 0 {
				ip++
				continue
			}
			cont, err := it.read(hal, locals, instr.Continuation)
			if err != nil {
				return 0, err
			}
			if err := hal.Push(byte(cont >> 8)); err != nil {
				return 0, err
			}
			if err := hal.Push(byte(cont)); err != nil {
				return 0, err
			}
			if err := hal.Push(hal.Status()); err != nil {
				return 0, err
			}
			hal.SetFlag(FlagInterruptDisable, true)
			return int32(vector), nil

		case PollForRecompilation:
			if hal.PollForRecompilation() {
				return int32(it.lf.recompileSuccessor[ip]), nil
			}
			ip++

		case RecordCurrentInstructionAddress:
			addr, err := it.read(hal, locals, instr.Addr)
			if err != nil {
				return 0, err
			}
			hal.SetCurrentInstructionAddress(uint16(addr))
			ip++

		case DebugValue:
			v, err := it.read(hal, locals, instr.V)
			if err != nil {
				return 0, err
			}
			hal.DebugValue(v)
			ip++

		case StoreDebugString:
			hal.DebugHook(instr.S)
			ip++

		default:
			return 0, newExecutionError(hal.CurrentInstructionAddress(), "unsupported IR instruction %T", instr)
		}
	}

	return -1, nil
}

func (it *Interpreter) read(hal HAL, locals []int32, v Value) (int32, error) {
	return readValue(hal, locals, v)
}

func (it *Interpreter) write(hal HAL, locals []int32, dst Value, val int32) error {
	return writeValue(hal, locals, dst, val)
}

// readValue and writeValue implement the IR's operand-access rules shared
// by both the interpreter and the code generator's compiled closures.
func readValue(hal HAL, locals []int32, v Value) (int32, error) {
	switch val := v.(type) {
	case Constant:
		return val.N, nil
	case Register:
		switch val.Name {
		case RegA:
			return int32(hal.A()), nil
		case RegX:
			return int32(hal.X()), nil
		case RegY:
			return int32(hal.Y()), nil
		}
	case FlagValue:
		if hal.GetFlag(val.Flag) {
			return 1, nil
		}
		return 0, nil
	case AllFlags:
		return int32(hal.Status()), nil
	case StackPointerValue:
		return int32(hal.SP()), nil
	case Variable:
		return locals[val.Index], nil
	case Memory:
		addr := resolveMemoryAddress(hal, val)
		b, err := hal.ReadMemory(addr)
		return int32(b), err
	case IndirectMemory:
		addr, err := resolveIndirectAddress(hal, val)
		if err != nil {
			return 0, err
		}
		b, err := hal.ReadMemory(addr)
		return int32(b), err
	}
	return 0, newExecutionError(hal.CurrentInstructionAddress(), "unsupported read operand %T", v)
}

func writeValue(hal HAL, locals []int32, dst Value, val int32) error {
	switch d := dst.(type) {
	case Register:
		b := byte(val)
		switch d.Name {
		case RegA:
			hal.SetA(b)
		case RegX:
			hal.SetX(b)
		case RegY:
			hal.SetY(b)
		}
		return nil
	case FlagValue:
		hal.SetFlag(d.Flag, val != 0)
		return nil
	case AllFlags:
		hal.SetStatus(byte(val))
		return nil
	case StackPointerValue:
		hal.SetSP(byte(val))
		return nil
	case Variable:
		locals[d.Index] = val
		return nil
	case Memory:
		addr := resolveMemoryAddress(hal, d)
		return hal.WriteMemory(addr, byte(val))
	case IndirectMemory:
		addr, err := resolveIndirectAddress(hal, d)
		if err != nil {
			return err
		}
		return hal.WriteMemory(addr, byte(val))
	}
	return newExecutionError(hal.CurrentInstructionAddress(), "unsupported write destination %T", dst)
}

// resolveMemoryAddress applies indexing then, if requested, the 8-bit
// zero-page wrap.
func resolveMemoryAddress(hal HAL, m Memory) uint16 {
	addr := m.Address
	if m.IndexRegister != nil {
		var idx byte
		switch *m.IndexRegister {
		case RegX:
			idx = hal.X()
		case RegY:
			idx = hal.Y()
		}
		addr += uint16(idx)
	}
	if m.SingleByteAddress {
		addr &= 0x00FF
	}
	return addr
}

// resolveIndirectAddress implements the 6502 (zp,X) and (zp),Y modes;
// pointer bytes are always fetched from zero page with 8-bit wrap.
func resolveIndirectAddress(hal HAL, im IndirectMemory) (uint16, error) {
	switch {
	case im.PreIndexed:
		zp := im.ZeroPageAddress + hal.X()
		lo, err := hal.ReadMemory(uint16(zp))
		if err != nil {
			return 0, err
		}
		hi, err := hal.ReadMemory(uint16(zp + 1))
		if err != nil {
			return 0, err
		}
		return uint16(hi)<<8 | uint16(lo), nil
	case im.PostIndexed:
		lo, err := hal.ReadMemory(uint16(im.ZeroPageAddress))
		if err != nil {
			return 0, err
		}
		hi, err := hal.ReadMemory(uint16(im.ZeroPageAddress + 1))
		if err != nil {
			return 0, err
		}
		base := uint16(hi)<<8 | uint16(lo)
		return base + uint16(hal.Y()), nil
	default:
		return 0, newExecutionError(hal.CurrentInstructionAddress(), "indirect memory operand is neither pre- nor post-indexed")
	}
}

func evalBinary(op BinaryOp, l, r int32) int32 {
	switch op {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpAnd:
		return l & r
	case OpOr:
		return l | r
	case OpXor:
		return l ^ r
	case OpShiftLeft:
		return l << uint(r)
	case OpShiftRight:
		return l >> uint(r)
	case OpEq:
		return boolToInt(l == r)
	case OpNeq:
		return boolToInt(l != r)
	case OpLt:
		return boolToInt(l < r)
	case OpLe:
		return boolToInt(l <= r)
	case OpGt:
		return boolToInt(l > r)
	case OpGe:
		return boolToInt(l >= r)
	}
	return 0
}

func evalUnary(op UnaryOp, s int32) int32 {
	switch op {
	case OpBitwiseNot:
		return ^s
	case OpLogicalNot:
		return boolToInt(s == 0)
	}
	return 0
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
