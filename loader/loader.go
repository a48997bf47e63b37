// Package loader builds a runnable Machine from a compiled executable
// image: header parsing, segment allocation, and the initial argv stack
// frame.
package loader

import (
	"encoding/binary"
	"fmt"

	"github.com/mipsvm/mipsvm/vm"
)

// Header field offsets within the executable image.
const (
	offsetPCInit    = 0x08
	offsetTextSize  = 0x0C
	offsetDataSize  = 0x14
	offsetTextStart = 0x34
)

// minHeaderSize is the smallest image this loader can parse: enough bytes
// to read every header field it consumes.
const minHeaderSize = offsetTextStart

// Load parses image (a full executable byte buffer) and returns a
// Machine with text/data/stack segments populated, the initial argv
// frame written to the stack, and pc/$sp set. args is the guest
// program's argv, including argv[0] (the program name); only argv[1:]
// are copied onto the stack.
//
// stackSize is the size in bytes to allocate for the stack segment; 0
// selects vm.DefaultStackSize.
func Load(image []byte, args []string, stackSize uint32) (*vm.Machine, error) {
	if len(image) < minHeaderSize {
		return nil, fmt.Errorf("loader: image too small (%d bytes, need at least %d for header)", len(image), minHeaderSize)
	}

	pcInit := binary.BigEndian.Uint32(image[offsetPCInit:])
	textSize := binary.BigEndian.Uint32(image[offsetTextSize:])
	dataSize := binary.BigEndian.Uint32(image[offsetDataSize:])

	dataStart := offsetTextStart + textSize
	if uint64(dataStart)+uint64(dataSize) > uint64(len(image)) {
		return nil, fmt.Errorf("loader: header declares text+data size %d beyond image length %d", uint64(dataStart)+uint64(dataSize), len(image))
	}

	mem := vm.NewMemory(textSize, dataSize, stackSize)
	mem.LoadTextBytes(image[offsetTextStart:dataStart])
	mem.LoadDataBytes(image[dataStart : dataStart+dataSize])
	mem.MakeTextReadOnly()

	sp, err := writeArgFrame(mem, args)
	if err != nil {
		return nil, err
	}

	m := vm.NewMachine(mem)
	m.Regs.PC = pcInit
	m.Regs.Write(29, sp)
	return m, nil
}

// writeArgFrame copies args[1:] onto the top of the stack segment as
// NUL-terminated strings, pads to a 16-byte boundary, and writes the
// trailing three-word block (strings-start address, padding-start
// address, argument count) a guest program reads off $sp at startup. It
// returns the guest address of that block's first word (the new $sp).
//
// Layout, lowest to highest address: the three words, the padding, then
// the argument strings in order, ending at StackTop. Each string reads
// forward exactly as a normal NUL-terminated C string would, so a guest
// program can walk argv the same way it would on a real process stack.
func writeArgFrame(mem *vm.Memory, args []string) (uint32, error) {
	argv := args[1:]

	var argsLen uint32
	for _, a := range argv {
		argsLen += uint32(len(a)) + 1
	}

	// Round argsLen up to the next multiple of 16. When argsLen is 0 this
	// wraps through uint32's range back to 0, which is the correct
	// padding length for an empty argument list.
	paddingLen := ((argsLen - 1) | 15) + 1

	stringsStart := vm.StackTop - argsLen
	addr := stringsStart
	for _, a := range argv {
		for i := 0; i < len(a); i++ {
			if err := mem.Store(addr, 1, uint32(a[i])); err != nil {
				return 0, err
			}
			addr++
		}
		if err := mem.Store(addr, 1, 0); err != nil {
			return 0, err
		}
		addr++
	}

	paddingStart := vm.StackTop - paddingLen
	wordsStart := paddingStart - 12

	if err := mem.Store(wordsStart, 4, vm.StackTop-argsLen); err != nil {
		return 0, err
	}
	if err := mem.Store(wordsStart+4, 4, vm.StackTop-paddingLen); err != nil {
		return 0, err
	}
	if err := mem.Store(wordsStart+8, 4, uint32(len(argv))); err != nil {
		return 0, err
	}

	return wordsStart, nil
}
