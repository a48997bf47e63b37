package vm

// Integer arithmetic: add/addi/sub/mult/div and their unsigned and
// immediate forms.

// addOverflows reports whether the signed sum of a and b overflowed:
// same-sign operands, opposite-sign result.
func addOverflows(a, b, result int32) bool {
	return (a > 0 && b > 0 && result < 0) || (a < 0 && b < 0 && result >= 0)
}

// subOverflows reports whether the signed difference a-b overflowed:
// operands of opposite sign, result sign doesn't match the minuend.
func subOverflows(a, b, result int32) bool {
	return (a >= 0 && b < 0 && result < 0) || (a < 0 && b >= 0 && result >= 0)
}

// Add implements add rd,rs,rt.
func (m *Machine) Add(i Instruction) error {
	a, b := m.Regs.ReadSigned(i.RS), m.Regs.ReadSigned(i.RT)
	result := a + b
	m.Regs.WriteSigned(i.RD, result)
	if addOverflows(a, b, result) {
		return ErrOverflow
	}
	return nil
}

// Addu implements addu rd,rs,rt: never signals overflow.
func (m *Machine) Addu(i Instruction) error {
	m.Regs.Write(i.RD, m.Regs.Read(i.RS)+m.Regs.Read(i.RT))
	return nil
}

// Addi implements addi rt,rs,imm16 (sign-extended immediate).
func (m *Machine) Addi(i Instruction) error {
	a := m.Regs.ReadSigned(i.RS)
	result := a + i.Imm
	m.Regs.WriteSigned(i.RT, result)
	if addOverflows(a, i.Imm, result) {
		return ErrOverflow
	}
	return nil
}

// Addiu implements addiu rt,rs,imm16. The immediate is still
// sign-extended despite the historical "u" suffix; only overflow
// signaling is suppressed.
func (m *Machine) Addiu(i Instruction) error {
	m.Regs.WriteSigned(i.RT, m.Regs.ReadSigned(i.RS)+i.Imm)
	return nil
}

// Sub implements sub rd,rs,rt, with overflow detection.
func (m *Machine) Sub(i Instruction) error {
	a, b := m.Regs.ReadSigned(i.RS), m.Regs.ReadSigned(i.RT)
	result := a - b
	m.Regs.WriteSigned(i.RD, result)
	if subOverflows(a, b, result) {
		return ErrOverflow
	}
	return nil
}

// Subu implements subu rd,rs,rt: never signals overflow.
func (m *Machine) Subu(i Instruction) error {
	m.Regs.Write(i.RD, m.Regs.Read(i.RS)-m.Regs.Read(i.RT))
	return nil
}

// Mult implements mult rs,rt: signed 64-bit product, high half to hi,
// low half to lo.
func (m *Machine) Mult(i Instruction) error {
	a, b := int64(m.Regs.ReadSigned(i.RS)), int64(m.Regs.ReadSigned(i.RT))
	product := a * b
	m.Regs.HI = int32(uint64(product) >> 32)
	m.Regs.LO = int32(uint64(product) & 0xFFFFFFFF)
	return nil
}

// Multu implements multu rs,rt: unsigned 64-bit product.
func (m *Machine) Multu(i Instruction) error {
	a, b := uint64(m.Regs.Read(i.RS)), uint64(m.Regs.Read(i.RT))
	product := a * b
	m.Regs.HI = int32(uint32(product >> 32))
	m.Regs.LO = int32(uint32(product))
	return nil
}

// Div implements div rs,rt: signed division truncated toward zero, with
// the remainder in hi taking the sign of the dividend (Go's / and % on
// signed integers already have these semantics).
func (m *Machine) Div(i Instruction) error {
	divisor := m.Regs.ReadSigned(i.RT)
	if divisor == 0 {
		return ErrDivByZero
	}
	dividend := m.Regs.ReadSigned(i.RS)
	m.Regs.LO = dividend / divisor
	m.Regs.HI = dividend % divisor
	return nil
}

// Divu implements divu rs,rt: unsigned division.
func (m *Machine) Divu(i Instruction) error {
	divisor := m.Regs.Read(i.RT)
	if divisor == 0 {
		return ErrDivByZero
	}
	dividend := m.Regs.Read(i.RS)
	m.Regs.LO = int32(dividend / divisor)
	m.Regs.HI = int32(dividend % divisor)
	return nil
}
