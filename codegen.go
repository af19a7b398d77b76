package mos6502

// The native code generator compiles each IR instruction once, ahead of
// execution, into a Go closure that captures its resolved operands and
// (for control instructions) pre-resolved target indices, so that running
// a compiled method never re-walks label names or re-dispatches on
// instruction type the way the interpreter's per-step switch does.
//
// Compiled closures call readValue/writeValue, the exact same operand
// rules the interpreter uses, so the two execution paths are guaranteed to
// agree by construction rather than by keeping two implementations in sync
// by hand.

// step is one compiled IR instruction. It returns the index of the next
// step to run; if done is true, result is the method's successor address.
type step func(hal HAL, locals []int32) (next int, result int32, done bool, err error)

// CompiledMethod is an ExecutableMethod produced by Compile.
type CompiledMethod struct {
	steps     []step
	maxLocals int
}

// NewCompiledMethod is an alias kept for symmetry with NewInterpreter;
// Compile is the primary constructor.
func NewCompiledMethod(lf *LoweredFunction) (*CompiledMethod, error) {
	return Compile(lf)
}

// Compile translates a LoweredFunction into a CompiledMethod. Execute sizes
// local storage to maxLocals+3, reserving three extra slots for codegen
// temporaries; no compiled step reads or writes them, since indirect
// addresses are resolved inline by the shared readValue/writeValue, the
// same as in the interpreter.
func Compile(lf *LoweredFunction) (*CompiledMethod, error) {
	labels := make(map[string]int, len(lf.Instructions))
	for i, instr := range lf.Instructions {
		if l, ok := instr.(Label); ok {
			labels[l.ID] = i
		}
	}

	resolve := func(target string) (int, error) {
		idx, ok := labels[target]
		if !ok {
			return 0, newLoweringError(0, "jump target %q has no matching label", target)
		}
		return idx, nil
	}

	steps := make([]step, len(lf.Instructions))
	for i, instr := range lf.Instructions {
		s, err := compileStep(instr, i, resolve, lf)
		if err != nil {
			return nil, err
		}
		steps[i] = s
	}

	return &CompiledMethod{steps: steps, maxLocals: lf.MaxLocals}, nil
}

func compileStep(instr Instruction, idx int, resolve func(string) (int, error), lf *LoweredFunction) (step, error) {
	next := idx + 1

	switch in := instr.(type) {
	case Label, NoOp:
		return func(HAL, []int32) (int, int32, bool, error) {
			return next, 0, false, nil
		}, nil

	case Copy:
		src, dst := in.Src, in.Dst
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			v, err := readValue(hal, locals, src)
			if err != nil {
				return 0, 0, false, err
			}
			if err := writeValue(hal, locals, dst, v); err != nil {
				return 0, 0, false, err
			}
			return next, 0, false, nil
		}, nil

	case Binary:
		op, left, right, dst := in.Op, in.Left, in.Right, in.Dst
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			l, err := readValue(hal, locals, left)
			if err != nil {
				return 0, 0, false, err
			}
			r, err := readValue(hal, locals, right)
			if err != nil {
				return 0, 0, false, err
			}
			if err := writeValue(hal, locals, dst, evalBinary(op, l, r)); err != nil {
				return 0, 0, false, err
			}
			return next, 0, false, nil
		}, nil

	case Unary:
		op, src, dst := in.Op, in.Src, in.Dst
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			s, err := readValue(hal, locals, src)
			if err != nil {
				return 0, 0, false, err
			}
			if err := writeValue(hal, locals, dst, evalUnary(op, s)); err != nil {
				return 0, 0, false, err
			}
			return next, 0, false, nil
		}, nil

	case ConvertVariableToByte:
		slot := in.Var.Index
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			locals[slot] &= 0xFF
			return next, 0, false, nil
		}, nil

	case Jump:
		target, err := resolve(in.Target)
		if err != nil {
			return nil, err
		}
		return func(HAL, []int32) (int, int32, bool, error) {
			return target, 0, false, nil
		}, nil

	case JumpIfZero:
		target, err := resolve(in.Target)
		if err != nil {
			return nil, err
		}
		cond := in.Cond
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			v, err := readValue(hal, locals, cond)
			if err != nil {
				return 0, 0, false, err
			}
			if v == 0 {
				return target, 0, false, nil
			}
			return next, 0, false, nil
		}, nil

	case JumpIfNotZero:
		target, err := resolve(in.Target)
		if err != nil {
			return nil, err
		}
		cond := in.Cond
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			v, err := readValue(hal, locals, cond)
			if err != nil {
				return 0, 0, false, err
			}
			if v != 0 {
				return target, 0, false, nil
			}
			return next, 0, false, nil
		}, nil

	case PushStackValue:
		src := in.Src
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			v, err := readValue(hal, locals, src)
			if err != nil {
				return 0, 0, false, err
			}
			if err := hal.Push(byte(v)); err != nil {
				return 0, 0, false, err
			}
			return next, 0, false, nil
		}, nil

	case PopStackValue:
		dst := in.Dst
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			b, err := hal.Pop()
			if err != nil {
				return 0, 0, false, err
			}
			if err := writeValue(hal, locals, dst, int32(b)); err != nil {
				return 0, 0, false, err
			}
			return next, 0, false, nil
		}, nil

	case CallFunction:
		target := in.Target
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			v, err := readValue(hal, locals, target)
			if err != nil {
				return 0, 0, false, err
			}
			return 0, v & 0xFFFF, true, nil
		}, nil

	case Return:
		v := in.Var
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			val, err := readValue(hal, locals, v)
			if err != nil {
				return 0, 0, false, err
			}
			return 0, val & 0xFFFF, true, nil
		}, nil

	case InvokeSoftwareInterrupt:
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			lo, err := hal.ReadMemory(0xFFFE)
			if err != nil {
				return 0, 0, false, err
			}
			hi, err := hal.ReadMemory(0xFFFF)
			if err != nil {
				return 0, 0, false, err
			}
			return 0, int32(uint16(hi)<<8 | uint16(lo)), true, nil
		}, nil

	case PollForInterrupt:
		cont := in.Continuation
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			vector, err := hal.PollForInterrupt()
			if err != nil {
				return 0, 0, false, err
			}
			if vector == 0 {
				return next, 0, false, nil
			}
			v, err := readValue(hal, locals, cont)
			if err != nil {
				return 0, 0, false, err
			}
			if err := hal.Push(byte(v >> 8)); err != nil {
				return 0, 0, false, err
			}
			if err := hal.Push(byte(v)); err != nil {
				return 0, 0, false, err
			}
			if err := hal.Push(hal.Status()); err != nil {
				return 0, 0, false, err
			}
			hal.SetFlag(FlagInterruptDisable, true)
			return 0, int32(vector), true, nil
		}, nil

	case PollForRecompilation:
		successor := int32(lf.recompileSuccessor[idx])
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			if hal.PollForRecompilation() {
				return 0, successor, true, nil
			}
			return next, 0, false, nil
		}, nil

	case RecordCurrentInstructionAddress:
		addr := in.Addr
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			v, err := readValue(hal, locals, addr)
			if err != nil {
				return 0, 0, false, err
			}
			hal.SetCurrentInstructionAddress(uint16(v))
			return next, 0, false, nil
		}, nil

	case DebugValue:
		v := in.V
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			val, err := readValue(hal, locals, v)
			if err != nil {
				return 0, 0, false, err
			}
			hal.DebugValue(val)
			return next, 0, false, nil
		}, nil

	case StoreDebugString:
		s := in.S
		return func(hal HAL, locals []int32) (int, int32, bool, error) {
			hal.DebugHook(s)
			return next, 0, false, nil
		}, nil
	}

	return nil, newLoweringError(0, "code generator has no rule for %T", instr)
}

// Execute runs the compiled method to its next suspension point, matching
// Interpreter.Execute's contract exactly.
func (m *CompiledMethod) Execute(hal HAL) (int32, error) {
	locals := make([]int32, m.maxLocals+3)
	ip := 0
	for ip >= 0 && ip < len(m.steps) {
		next, result, done, err := m.steps[ip](hal, locals)
		if err != nil {
			return 0, err
		}
		if done {
			return result, nil
		}
		ip = next
	}
	return -1, nil
}
