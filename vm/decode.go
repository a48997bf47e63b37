package vm

// Instruction is a decoded 32-bit instruction word, split into the
// fields relevant to its format.
type Instruction struct {
	Raw      uint32
	Opcode   uint32
	RS       uint32
	RT       uint32
	RD       uint32
	Shamt    uint32
	Function uint32
	Imm      int32  // sign-extended 16-bit immediate (I-type)
	Target   uint32 // 26-bit jump target (J-type)
}

// Decode splits a raw 32-bit instruction word into its fields. Opcode 0
// is R-type, opcodes 2 and 3 are J-type, everything else is I-type — the
// caller dispatches on Opcode (and, for R-type, Function).
func Decode(raw uint32) Instruction {
	inst := Instruction{
		Raw:    raw,
		Opcode: (raw >> 26) & 0x3F,
		RS:     (raw >> 21) & 0x1F,
		RT:     (raw >> 16) & 0x1F,
		RD:     (raw >> 11) & 0x1F,
		Shamt:  (raw >> 6) & 0x1F,
	}
	inst.Function = raw & 0x3F
	inst.Imm = int32(int16(raw & 0xFFFF))
	inst.Target = raw & 0x3FFFFFF
	return inst
}
