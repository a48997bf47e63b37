package vm

// Shift operations. Fixed-amount shamt is already 5 bits from decode;
// variable shift amounts (sllv/srlv/srav) are masked to 5 bits
// explicitly, since Go's shift count is taken as-is and a register value
// above 31 would otherwise produce a meaningless shift.

func (m *Machine) Sll(i Instruction) error {
	m.Regs.Write(i.RD, m.Regs.Read(i.RT)<<i.Shamt)
	return nil
}

func (m *Machine) Srl(i Instruction) error {
	m.Regs.Write(i.RD, m.Regs.Read(i.RT)>>i.Shamt)
	return nil
}

func (m *Machine) Sra(i Instruction) error {
	m.Regs.WriteSigned(i.RD, m.Regs.ReadSigned(i.RT)>>i.Shamt)
	return nil
}

func (m *Machine) Sllv(i Instruction) error {
	shamt := m.Regs.Read(i.RS) & 0x1F
	m.Regs.Write(i.RD, m.Regs.Read(i.RT)<<shamt)
	return nil
}

func (m *Machine) Srlv(i Instruction) error {
	shamt := m.Regs.Read(i.RS) & 0x1F
	m.Regs.Write(i.RD, m.Regs.Read(i.RT)>>shamt)
	return nil
}

func (m *Machine) Srav(i Instruction) error {
	shamt := m.Regs.Read(i.RS) & 0x1F
	m.Regs.WriteSigned(i.RD, m.Regs.ReadSigned(i.RT)>>shamt)
	return nil
}
