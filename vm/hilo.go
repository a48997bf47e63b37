package vm

// Moves to and from the hi/lo register pair used by mult/div.

func (m *Machine) Mfhi(i Instruction) error {
	m.Regs.WriteSigned(i.RD, m.Regs.HI)
	return nil
}

func (m *Machine) Mthi(i Instruction) error {
	m.Regs.HI = m.Regs.ReadSigned(i.RS)
	return nil
}

func (m *Machine) Mflo(i Instruction) error {
	m.Regs.WriteSigned(i.RD, m.Regs.LO)
	return nil
}

func (m *Machine) Mtlo(i Instruction) error {
	m.Regs.LO = m.Regs.ReadSigned(i.RS)
	return nil
}
