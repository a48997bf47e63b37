package vm

import "errors"

// Fault is the taxonomy of conditions that can terminate the run loop.
// Success and Jumped are not faults: they are ordinary step outcomes and
// are represented by a nil error.
var (
	// ErrOverflow signals a signed add/sub overflow. Non-fatal by default:
	// the run loop advances pc past it and keeps executing.
	ErrOverflow = errors.New("vm: signed arithmetic overflow")

	// ErrDivByZero signals a div/divu with a zero divisor.
	ErrDivByZero = errors.New("vm: division by zero")

	// ErrNonexistentMemory signals a load, store, or fetch outside any
	// mapped segment, or a write/fetch that violates a segment's
	// permissions.
	ErrNonexistentMemory = errors.New("vm: nonexistent memory")

	// ErrUnalignedInst signals pc % 4 != 0 at fetch time.
	ErrUnalignedInst = errors.New("vm: unaligned instruction fetch")

	// ErrBadSyscall signals an unrecognized syscall code in $v0.
	ErrBadSyscall = errors.New("vm: unimplemented syscall")

	// ErrFuncNotImplemented signals an opcode/function not in the dispatch
	// table.
	ErrFuncNotImplemented = errors.New("vm: opcode or function not implemented")

	// ErrBreak signals execution of the break instruction.
	ErrBreak = errors.New("vm: break instruction executed")

	// ErrExit signals a clean shutdown requested via syscall 10 or 17.
	ErrExit = errors.New("vm: program requested exit")

	// ErrInstructionLimit signals that Machine.MaxInstructions was
	// reached. A host safety valve against a guest program that never
	// halts, not a fault a guest program can trigger or observe.
	ErrInstructionLimit = errors.New("vm: instruction limit reached")
)

// errJumped is a private sentinel: it tells Step that the executed
// instruction already updated pc itself, so the loop must not add 4. It
// never escapes Step/Run — callers only ever see nil, an ErrExit, or one
// of the fatal sentinels above.
var errJumped = errors.New("vm: pc already advanced")
