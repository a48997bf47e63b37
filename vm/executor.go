package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
)

// Opcode assignments for the supported instruction set.
const (
	opR     = 0x00
	opJ     = 0x02
	opJal   = 0x03
	opBeq   = 0x04
	opBne   = 0x05
	opAddi  = 0x08
	opAddiu = 0x09
	opSlti  = 0x0A
	opSltiu = 0x0B
	opAndi  = 0x0C
	opOri   = 0x0D
	opXori  = 0x0E // the standard MIPS-I slot between ori and lui
	opLui   = 0x0F
	opLb    = 0x20
	opLh    = 0x21
	opLw    = 0x23
	opLbu   = 0x24
	opLhu   = 0x25
	opSb    = 0x28
	opSh    = 0x29
	opSw    = 0x2B
)

// R-type function-field assignments.
const (
	fnSll   = 0x00
	fnSrl   = 0x02
	fnSra   = 0x03
	fnSllv  = 0x04
	fnSrlv  = 0x06
	fnSrav  = 0x07
	fnJr    = 0x08
	fnJalr  = 0x09
	fnSysc  = 0x0C
	fnBreak = 0x0D
	fnMfhi  = 0x10
	fnMthi  = 0x11
	fnMflo  = 0x12
	fnMtlo  = 0x13
	fnMult  = 0x18
	fnMultu = 0x19
	fnDiv   = 0x1A
	fnDivu  = 0x1B
	fnAdd   = 0x20
	fnAddu  = 0x21
	fnSub   = 0x22
	fnSubu  = 0x23
	fnAnd   = 0x24
	fnOr    = 0x25
	fnXor   = 0x26
	fnNor   = 0x27
	fnSlt   = 0x2A
	fnSltu  = 0x2B
)

// DefaultFDTableSize reserves slots 0-2 for stdin/stdout/stderr before any
// guest open() call.
const DefaultFDTableSize = 3

// Machine is a single interpreter instance: the register file, the
// segmented memory, and the host-facing trap I/O streams. All state a
// run needs lives here, so multiple Machines can run independently in
// the same process.
type Machine struct {
	Regs Registers
	Mem  *Memory

	// Host streams the trap handler reads/writes. Default to the
	// process's stdio; swappable for tests.
	Stdout io.Writer
	stdin  *bufio.Reader

	// ExitCode is set by syscall 10/17's argument, when available.
	ExitCode int32

	// MaxInstructions caps the number of steps Run will perform before
	// reporting ErrInstructionLimit; 0 means unlimited. A host-side
	// safety valve against a guest program that never halts.
	MaxInstructions uint64
	executed        uint64

	// OverflowFatal promotes ErrOverflow from non-fatal to fatal, for
	// callers that want strict ISA-overflow conformance.
	OverflowFatal bool

	// Trace, when set, is called with the instruction address and raw
	// word before each instruction executes (used by the CLI when the
	// config's trace option is set).
	Trace func(pc uint32, raw uint32)

	files []*os.File
	fdMu  sync.Mutex
}

// NewMachine wires mem into a fresh Machine using the process's standard
// streams.
func NewMachine(mem *Memory) *Machine {
	return &Machine{
		Mem:    mem,
		Stdout: os.Stdout,
		stdin:  bufio.NewReader(os.Stdin),
		files:  make([]*os.File, DefaultFDTableSize),
	}
}

// SetStdin lets a caller (tests, or an embedder) redirect the trap
// handler's input source.
func (m *Machine) SetStdin(r io.Reader) {
	if br, ok := r.(*bufio.Reader); ok {
		m.stdin = br
		return
	}
	m.stdin = bufio.NewReader(r)
}

// fetch reads the 4-byte big-endian instruction word at pc, failing with
// ErrUnalignedInst if pc isn't a multiple of 4, or ErrNonexistentMemory if
// it doesn't resolve to executable memory.
func (m *Machine) fetch() (uint32, error) {
	if m.Regs.PC%4 != 0 {
		return 0, fmt.Errorf("%w: pc=0x%08X", ErrUnalignedInst, m.Regs.PC)
	}
	if err := m.Mem.FetchCheck(m.Regs.PC); err != nil {
		return 0, err
	}
	return m.Mem.Load(m.Regs.PC, 4)
}

// execute dispatches a decoded instruction to its semantic operation.
// Unknown opcode/function combinations signal ErrFuncNotImplemented.
func (m *Machine) execute(i Instruction) error {
	switch i.Opcode {
	case opR:
		return m.executeR(i)
	case opJ:
		return m.J(i)
	case opJal:
		return m.Jal(i)
	case opBeq:
		return m.Beq(i)
	case opBne:
		return m.Bne(i)
	case opAddi:
		return m.Addi(i)
	case opAddiu:
		return m.Addiu(i)
	case opSlti:
		return m.Slti(i)
	case opSltiu:
		return m.Sltiu(i)
	case opAndi:
		return m.Andi(i)
	case opOri:
		return m.Ori(i)
	case opXori:
		return m.Xori(i)
	case opLui:
		return m.Lui(i)
	case opLb:
		return m.Lb(i)
	case opLh:
		return m.Lh(i)
	case opLw:
		return m.Lw(i)
	case opLbu:
		return m.Lbu(i)
	case opLhu:
		return m.Lhu(i)
	case opSb:
		return m.Sb(i)
	case opSh:
		return m.Sh(i)
	case opSw:
		return m.Sw(i)
	default:
		return fmt.Errorf("%w: opcode 0x%02X at pc=0x%08X", ErrFuncNotImplemented, i.Opcode, m.Regs.PC)
	}
}

func (m *Machine) executeR(i Instruction) error {
	switch i.Function {
	case fnSll:
		return m.Sll(i)
	case fnSrl:
		return m.Srl(i)
	case fnSra:
		return m.Sra(i)
	case fnSllv:
		return m.Sllv(i)
	case fnSrlv:
		return m.Srlv(i)
	case fnSrav:
		return m.Srav(i)
	case fnJr:
		return m.Jr(i)
	case fnJalr:
		return m.Jalr(i)
	case fnSysc:
		return m.Syscall()
	case fnBreak:
		return fmt.Errorf("%w: pc=0x%08X", ErrBreak, m.Regs.PC)
	case fnMfhi:
		return m.Mfhi(i)
	case fnMthi:
		return m.Mthi(i)
	case fnMflo:
		return m.Mflo(i)
	case fnMtlo:
		return m.Mtlo(i)
	case fnMult:
		return m.Mult(i)
	case fnMultu:
		return m.Multu(i)
	case fnDiv:
		return m.Div(i)
	case fnDivu:
		return m.Divu(i)
	case fnAdd:
		return m.Add(i)
	case fnAddu:
		return m.Addu(i)
	case fnSub:
		return m.Sub(i)
	case fnSubu:
		return m.Subu(i)
	case fnAnd:
		return m.And(i)
	case fnOr:
		return m.Or(i)
	case fnXor:
		return m.Xor(i)
	case fnNor:
		return m.Nor(i)
	case fnSlt:
		return m.Slt(i)
	case fnSltu:
		return m.Sltu(i)
	default:
		return fmt.Errorf("%w: function 0x%02X at pc=0x%08X", ErrFuncNotImplemented, i.Function, m.Regs.PC)
	}
}

// Step fetches, decodes, and executes exactly one instruction, then
// advances pc: a jump already set pc itself, so that case is a no-op
// here; a clean result (including a taken branch, which has only added
// its offset) or a (non-fatal) Overflow advances pc by 4; anything else
// is fatal and is returned unchanged for the caller to classify.
func (m *Machine) Step() error {
	raw, err := m.fetch()
	if err != nil {
		return err
	}
	if m.Trace != nil {
		m.Trace(m.Regs.PC, raw)
	}
	inst := Decode(raw)
	err = m.execute(inst)
	switch {
	case err == nil:
		m.Regs.PC += 4
		return nil
	case err == errJumped:
		return nil
	case err == ErrOverflow:
		if m.OverflowFatal {
			return err
		}
		m.Regs.PC += 4
		return nil
	default:
		return err
	}
}

// Run steps the machine until it halts, faults, or exits. It returns nil
// only for a clean ErrExit (exit is the sole "terminates cleanly" kind);
// every other non-nil return is a fault for the caller to report.
func (m *Machine) Run() error {
	for {
		if m.MaxInstructions > 0 && m.executed >= m.MaxInstructions {
			return fmt.Errorf("%w: cap=%d pc=0x%08X", ErrInstructionLimit, m.MaxInstructions, m.Regs.PC)
		}
		if err := m.Step(); err != nil {
			if err == ErrExit {
				return nil
			}
			return err
		}
		m.executed++
	}
}
