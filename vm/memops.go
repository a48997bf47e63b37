package vm

// Load/store operations. Address is always rs + SE(offset). Sign/zero
// extension of narrow loads happens here, the caller of Memory — Memory
// itself only moves bytes.

func effectiveAddr(m *Machine, i Instruction) uint32 {
	return uint32(m.Regs.ReadSigned(i.RS) + i.Imm)
}

func (m *Machine) Lb(i Instruction) error {
	v, err := m.Mem.Load(effectiveAddr(m, i), 1)
	if err != nil {
		return err
	}
	m.Regs.WriteSigned(i.RT, int32(int8(v)))
	return nil
}

func (m *Machine) Lbu(i Instruction) error {
	v, err := m.Mem.Load(effectiveAddr(m, i), 1)
	if err != nil {
		return err
	}
	m.Regs.Write(i.RT, v)
	return nil
}

func (m *Machine) Lh(i Instruction) error {
	v, err := m.Mem.Load(effectiveAddr(m, i), 2)
	if err != nil {
		return err
	}
	m.Regs.WriteSigned(i.RT, int32(int16(v)))
	return nil
}

func (m *Machine) Lhu(i Instruction) error {
	v, err := m.Mem.Load(effectiveAddr(m, i), 2)
	if err != nil {
		return err
	}
	m.Regs.Write(i.RT, v)
	return nil
}

func (m *Machine) Lw(i Instruction) error {
	v, err := m.Mem.Load(effectiveAddr(m, i), 4)
	if err != nil {
		return err
	}
	m.Regs.Write(i.RT, v)
	return nil
}

func (m *Machine) Sb(i Instruction) error {
	return m.Mem.Store(effectiveAddr(m, i), 1, m.Regs.Read(i.RT))
}

func (m *Machine) Sh(i Instruction) error {
	return m.Mem.Store(effectiveAddr(m, i), 2, m.Regs.Read(i.RT))
}

func (m *Machine) Sw(i Instruction) error {
	return m.Mem.Store(effectiveAddr(m, i), 4, m.Regs.Read(i.RT))
}
