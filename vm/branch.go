package vm

// Control-flow operations. No branch delay slot is simulated.
//
// beq/bne deliberately return nil (not errJumped) even when the branch is
// taken, so the run loop's own `pc += 4` still applies after a taken
// branch; the effective offset base is the address of the instruction
// *following* the branch, not the branch itself. j/jal/jr/jalr, by
// contrast, return errJumped so the loop does not also advance pc.

// branchOffset computes offset<<2 in unsigned 32-bit arithmetic, so the
// shift and the addition to pc both have well-defined wraparound
// behavior regardless of the sign of the immediate.
func branchOffset(imm int32) uint32 {
	return uint32(imm) << 2
}

func (m *Machine) Beq(i Instruction) error {
	if m.Regs.Read(i.RS) == m.Regs.Read(i.RT) {
		m.Regs.PC += branchOffset(i.Imm)
	}
	return nil
}

func (m *Machine) Bne(i Instruction) error {
	if m.Regs.Read(i.RS) != m.Regs.Read(i.RT) {
		m.Regs.PC += branchOffset(i.Imm)
	}
	return nil
}

func (m *Machine) J(i Instruction) error {
	m.Regs.PC = i.Target << 2
	return errJumped
}

func (m *Machine) Jal(i Instruction) error {
	m.Regs.Write(31, m.Regs.PC+4)
	m.Regs.PC = i.Target << 2
	return errJumped
}

func (m *Machine) Jr(i Instruction) error {
	m.Regs.PC = m.Regs.Read(i.RS)
	return errJumped
}

func (m *Machine) Jalr(i Instruction) error {
	m.Regs.Write(i.RD, m.Regs.PC+4)
	m.Regs.PC = m.Regs.Read(i.RS)
	return errJumped
}
