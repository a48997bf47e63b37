package vm

// Set-less-than comparison operations, signed and unsigned.

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (m *Machine) Slt(i Instruction) error {
	m.Regs.Write(i.RD, boolToWord(m.Regs.ReadSigned(i.RS) < m.Regs.ReadSigned(i.RT)))
	return nil
}

func (m *Machine) Sltu(i Instruction) error {
	m.Regs.Write(i.RD, boolToWord(m.Regs.Read(i.RS) < m.Regs.Read(i.RT)))
	return nil
}

func (m *Machine) Slti(i Instruction) error {
	m.Regs.Write(i.RT, boolToWord(m.Regs.ReadSigned(i.RS) < i.Imm))
	return nil
}

// Sltiu compares unsigned, against the sign-extended immediate
// reinterpreted as unsigned.
func (m *Machine) Sltiu(i Instruction) error {
	m.Regs.Write(i.RT, boolToWord(m.Regs.Read(i.RS) < uint32(i.Imm)))
	return nil
}
