package mos6502

import "sort"

// DisassembledInstruction is one decoded 6502 instruction inside a
// DecompiledFunction: structured fields the lowering pass can consume
// directly, rather than a display string.
type DisassembledInstruction struct {
	Address  uint16
	Opcode   byte
	Info     OpcodeInfo
	Operands []byte // raw operand bytes, length == Info.Length-1
}

// OperandWord returns the little-endian 16-bit operand for two-byte modes.
func (d DisassembledInstruction) OperandWord() uint16 {
	if len(d.Operands) < 2 {
		return 0
	}
	return uint16(d.Operands[0]) | uint16(d.Operands[1])<<8
}

// OperandByte returns the single operand byte for one-byte modes.
func (d DisassembledInstruction) OperandByte() byte {
	if len(d.Operands) < 1 {
		return 0
	}
	return d.Operands[0]
}

// End returns the address one past the instruction's last byte.
func (d DisassembledInstruction) End() uint16 {
	return d.Address + uint16(d.Info.Length)
}

// ByteRange is an inclusive-exclusive span of 6502 addresses, used to detect
// whether a write lands inside an already-decompiled function.
type ByteRange struct {
	Start uint16
	End   uint16 // exclusive
}

// Contains reports whether addr falls in [Start, End).
func (r ByteRange) Contains(addr uint16) bool {
	return addr >= r.Start && addr < r.End
}

// DecompiledFunction is the disassembler's output for one entry point:
// every instruction reachable from Entry by straight-line flow and
// conditional/unconditional branches that stay inside the function, plus the
// byte range those instructions occupy (for invalidation) and the set of
// internal jump targets (for the lowering pass's label placement).
type DecompiledFunction struct {
	Entry        uint16
	Instructions []DisassembledInstruction // ascending by Address
	Range        ByteRange
	JumpTargets  map[uint16]bool
}

// InstructionAt returns the decoded instruction starting at addr, if one was
// traced into this function.
func (f *DecompiledFunction) InstructionAt(addr uint16) (DisassembledInstruction, bool) {
	for _, in := range f.Instructions {
		if in.Address == addr {
			return in, true
		}
	}
	return DisassembledInstruction{}, false
}

// byteReader adapts the flattened CodeRegion list from Bus.GetAllCodeRegions
// into random-access byte lookups over an address space assembled from
// multiple disjoint regions.
type byteReader struct {
	regions []CodeRegion
}

func newByteReader(regions []CodeRegion) *byteReader {
	sorted := make([]CodeRegion, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Base < sorted[j].Base })
	return &byteReader{regions: sorted}
}

func (r *byteReader) readByte(addr uint16) (byte, bool) {
	for _, reg := range r.regions {
		if uint32(addr) >= uint32(reg.Base) && uint32(addr) < reg.End() {
			return reg.Bytes[uint32(addr)-uint32(reg.Base)], true
		}
	}
	return 0, false
}

// Decompile traces the function reachable from entry within the byte
// contents described by regions. It follows straight-line flow,
// branches (conditional and unconditional), JMP absolute, and JSR (which
// does not end the trace — the callee is a separate function, and control
// returns to the instruction after the JSR), stopping a given flow path at
// RTS, RTI, or an unconditional JMP.
//
// Decompile fails if entry itself cannot be decoded, if a JSR's target
// cannot be determined statically (JSR through a computed address is not
// representable — the 6502 ISA has no such addressing mode, so this only
// ever fires on truncated/corrupt input), or if the trace collects zero
// instructions.
func Decompile(entry uint16, regions []CodeRegion, table *OpcodeTable) (*DecompiledFunction, error) {
	reader := newByteReader(regions)

	fn := &DecompiledFunction{
		Entry:       entry,
		JumpTargets: make(map[uint16]bool),
	}

	visited := make(map[uint16]bool)
	queue := []uint16{entry}

	minAddr := entry
	maxAddr := entry

	for len(queue) > 0 {
		addr := queue[0]
		queue = queue[1:]
		if visited[addr] {
			continue
		}

		inst, err := decodeOne(addr, reader, table)
		if err != nil {
			if addr == entry {
				return nil, err
			}
			// A flow path wandered into undecodable bytes (e.g. falling
			// through into data). Drop this path rather than failing the
			// whole function.
			continue
		}
		visited[addr] = true
		fn.Instructions = append(fn.Instructions, inst)

		if inst.Address < minAddr {
			minAddr = inst.Address
		}
		if uint16(inst.End()) > maxAddr {
			maxAddr = inst.End()
		}

		switch inst.Info.Mnemonic {
		case "RTS", "RTI", "BRK":
			// flow path ends here
		case "JMP":
			if inst.Info.Mode == Absolute {
				target := inst.OperandWord()
				fn.JumpTargets[target] = true
				queue = append(queue, target)
			}
			// JMP (Indirect): runtime-computed target, cannot be statically
			// traced; the function is necessarily incomplete past this
			// point and relies on the indirect jump landing back inside
			// already-queued territory, or on a later decompile of the
			// landing address as its own function.
		case "JSR":
			target := inst.OperandWord()
			if len(inst.Operands) < 2 {
				return nil, newDecodeError(addr, "JSR instruction with no target address")
			}
			fn.JumpTargets[target] = true
			// the callee is its own function; only the fallthrough
			// continues this one
			queue = append(queue, inst.End())
		default:
			if isBranch(inst.Info.Mnemonic) {
				target := branchTarget(inst)
				fn.JumpTargets[target] = true
				queue = append(queue, target)
				queue = append(queue, inst.End())
			} else {
				queue = append(queue, inst.End())
			}
		}
	}

	if len(fn.Instructions) == 0 {
		return nil, newDecodeError(entry, "function trace produced no instructions")
	}

	sort.Slice(fn.Instructions, func(i, j int) bool {
		return fn.Instructions[i].Address < fn.Instructions[j].Address
	})

	fn.Range = ByteRange{Start: minAddr, End: maxAddr}
	return fn, nil
}

func decodeOne(addr uint16, reader *byteReader, table *OpcodeTable) (DisassembledInstruction, error) {
	opcode, ok := reader.readByte(addr)
	if !ok {
		return DisassembledInstruction{}, newDecodeError(addr, "address is not backed by any code region")
	}
	info := table[opcode]
	if info.illegal() {
		return DisassembledInstruction{}, newDecodeError(addr, "opcode $%02X has no known encoding", opcode)
	}

	operands := make([]byte, info.Length-1)
	for i := range operands {
		b, ok := reader.readByte(addr + 1 + uint16(i))
		if !ok {
			return DisassembledInstruction{}, newDecodeError(addr, "instruction runs past the end of its code region")
		}
		operands[i] = b
	}

	return DisassembledInstruction{
		Address:  addr,
		Opcode:   opcode,
		Info:     info,
		Operands: operands,
	}, nil
}

// branchTarget computes a relative branch's destination from its signed
// 8-bit operand, measured from the address immediately after the branch
// instruction.
func branchTarget(inst DisassembledInstruction) uint16 {
	offset := int8(inst.OperandByte())
	return uint16(int32(inst.End()) + int32(offset))
}
