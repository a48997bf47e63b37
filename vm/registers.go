package vm

// NumRegisters is the number of general-purpose registers.
const NumRegisters = 32

// Registers is the architectural register file: 32 general-purpose
// registers plus the three standalone registers pc, hi, and lo.
//
// Register 0 is hard-wired to zero: Write is a no-op for index 0, and
// Read always returns 0 for it regardless of what was last written.
type Registers struct {
	gpr [NumRegisters]uint32
	PC  uint32
	HI  int32
	LO  int32
}

// Read returns the value of general-purpose register i. Reading register
// 0 always yields 0.
func (r *Registers) Read(i uint32) uint32 {
	if i == 0 {
		return 0
	}
	return r.gpr[i&0x1F]
}

// ReadSigned is Read reinterpreted as a two's-complement signed value.
func (r *Registers) ReadSigned(i uint32) int32 {
	return int32(r.Read(i))
}

// Write sets general-purpose register i. Writes to register 0 are
// silently discarded.
func (r *Registers) Write(i uint32, v uint32) {
	if i == 0 {
		return
	}
	r.gpr[i&0x1F] = v
}

// WriteSigned is Write taking a signed value.
func (r *Registers) WriteSigned(i uint32, v int32) {
	r.Write(i, uint32(v))
}

// Reset zeroes every register, including pc, hi, and lo.
func (r *Registers) Reset() {
	*r = Registers{}
}
