package mos6502

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Error kinds. Each wraps the 6502 address that triggered it so the
// caller can report where in the program the failure occurred.

// ErrCancelled is returned by HAL operations when the host cancels the
// currently running 6502 loop. The driver propagates it to the caller
// without attempting to roll back partial state — the 6502 state is
// consistent at every IR boundary.
var ErrCancelled = errors.New("mos6502: execution cancelled")

// DecodeError reports an undecodable opcode or a region that runs out of
// bytes mid-instruction.
type DecodeError struct {
	Address uint16
	Reason  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("mos6502: decode error at $%04X: %s", e.Address, e.Reason)
}

func newDecodeError(addr uint16, format string, args ...interface{}) error {
	return pkgerrors.WithStack(&DecodeError{Address: addr, Reason: fmt.Sprintf(format, args...)})
}

// LoweringError reports an opcode/addressing-mode pair lowering cannot
// translate to IR, or an internal inconsistency in the lowered IR (e.g. a
// jump whose target label never appears in the same function).
type LoweringError struct {
	Address uint16
	Reason  string
}

func (e *LoweringError) Error() string {
	return fmt.Sprintf("mos6502: lowering error at $%04X: %s", e.Address, e.Reason)
}

func newLoweringError(addr uint16, format string, args ...interface{}) error {
	return pkgerrors.WithStack(&LoweringError{Address: addr, Reason: fmt.Sprintf(format, args...)})
}

// CacheConsistencyError reports an internal method-cache invariant
// violation — it should never surface from a correct driver.
type CacheConsistencyError struct {
	Reason string
}

func (e *CacheConsistencyError) Error() string {
	return fmt.Sprintf("mos6502: cache consistency error: %s", e.Reason)
}

func newCacheConsistencyError(format string, args ...interface{}) error {
	return pkgerrors.WithStack(&CacheConsistencyError{Reason: fmt.Sprintf(format, args...)})
}

// ExecutionError reports a problem discovered while running IR: an
// unsupported variant reached at runtime, a write to a non-writable operand,
// or a jump to a label that failed to resolve.
type ExecutionError struct {
	Address uint16
	Reason  string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("mos6502: execution error at $%04X: %s", e.Address, e.Reason)
}

func newExecutionError(addr uint16, format string, args ...interface{}) error {
	return pkgerrors.WithStack(&ExecutionError{Address: addr, Reason: fmt.Sprintf(format, args...)})
}

// IsCancellation reports whether err is, or wraps, ErrCancelled.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrCancelled)
}
