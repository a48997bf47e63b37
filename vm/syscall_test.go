package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mipsvm/mipsvm/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyscall_PrintInt(t *testing.T) {
	m := vm.NewMachine(vm.NewMemory(4, 4, 0))
	var out bytes.Buffer
	m.Stdout = &out
	m.Regs.WriteSigned(4, -17)
	m.Regs.Write(2, 1)
	require.NoError(t, m.Syscall())
	assert.Equal(t, "-17", out.String())
}

func TestSyscall_PrintCharHighByte(t *testing.T) {
	m := vm.NewMachine(vm.NewMemory(4, 4, 0))
	var out bytes.Buffer
	m.Stdout = &out
	m.Regs.Write(4, 0xFF)
	m.Regs.Write(2, 11)
	require.NoError(t, m.Syscall())
	assert.Equal(t, []byte{0xFF}, out.Bytes())
}

func TestSyscall_PrintString(t *testing.T) {
	mem := vm.NewMemory(4, 16, 0)
	m := vm.NewMachine(mem)
	var out bytes.Buffer
	m.Stdout = &out

	msg := "hi\x00"
	for i := 0; i < len(msg); i++ {
		require.NoError(t, mem.Store(vm.DataBase+uint32(i), 1, uint32(msg[i])))
	}
	m.Regs.Write(4, vm.DataBase)
	m.Regs.Write(2, 4)
	require.NoError(t, m.Syscall())
	assert.Equal(t, "hi", out.String())
}

func TestSyscall_PrintStringHighByte(t *testing.T) {
	mem := vm.NewMemory(4, 16, 0)
	m := vm.NewMachine(mem)
	var out bytes.Buffer
	m.Stdout = &out

	require.NoError(t, mem.Store(vm.DataBase, 1, 0xFF))
	require.NoError(t, mem.Store(vm.DataBase+1, 1, 0))
	m.Regs.Write(4, vm.DataBase)
	m.Regs.Write(2, 4)
	require.NoError(t, m.Syscall())
	assert.Equal(t, []byte{0xFF}, out.Bytes())
}

func TestSyscall_ReadInt(t *testing.T) {
	m := vm.NewMachine(vm.NewMemory(4, 4, 0))
	m.SetStdin(strings.NewReader("123\n"))
	m.Regs.Write(2, 5)
	require.NoError(t, m.Syscall())
	assert.Equal(t, int32(123), m.Regs.ReadSigned(2))
	assert.Equal(t, uint32(0), m.Regs.Read(3))
}

func TestSyscall_ReadIntFailure(t *testing.T) {
	m := vm.NewMachine(vm.NewMemory(4, 4, 0))
	m.SetStdin(strings.NewReader("not-a-number\n"))
	m.Regs.Write(2, 5)
	require.NoError(t, m.Syscall())
	assert.NotEqual(t, uint32(0), m.Regs.Read(3))
}

func TestSyscall_ExitSetsErrExit(t *testing.T) {
	m := vm.NewMachine(vm.NewMemory(4, 4, 0))
	m.Regs.Write(2, 10)
	assert.ErrorIs(t, m.Syscall(), vm.ErrExit)
}

func TestSyscall_Exit2CarriesStatus(t *testing.T) {
	m := vm.NewMachine(vm.NewMemory(4, 4, 0))
	m.Regs.Write(2, 17)
	m.Regs.WriteSigned(4, 3)
	assert.ErrorIs(t, m.Syscall(), vm.ErrExit)
	assert.Equal(t, int32(3), m.ExitCode)
}

func TestSyscall_BadCode(t *testing.T) {
	m := vm.NewMachine(vm.NewMemory(4, 4, 0))
	m.Regs.Write(2, 9999)
	assert.ErrorIs(t, m.Syscall(), vm.ErrBadSyscall)
}

func TestSyscall_ReadCharFromStdin(t *testing.T) {
	m := vm.NewMachine(vm.NewMemory(4, 4, 0))
	m.SetStdin(strings.NewReader("Z"))
	m.Regs.Write(2, 12)
	require.NoError(t, m.Syscall())
	assert.Equal(t, uint32('Z'), m.Regs.Read(2))
}

func TestSyscall_OpenReadWriteClose(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/scratch.txt"

	mem := vm.NewMemory(4, 256, 0)
	m := vm.NewMachine(mem)

	pathBytes := append([]byte(path), 0)
	require.Less(t, len(pathBytes), 200)
	for i, b := range pathBytes {
		require.NoError(t, mem.Store(vm.DataBase+uint32(i), 1, uint32(b)))
	}

	// open(path, O_WRONLY|O_CREAT, 0644)
	m.Regs.Write(4, vm.DataBase)
	m.Regs.Write(5, 0x0041) // O_WRONLY|O_CREAT
	m.Regs.Write(6, 0644)
	m.Regs.Write(2, 13)
	require.NoError(t, m.Syscall())
	fd := m.Regs.Read(2)
	assert.NotEqual(t, uint32(0xFFFFFFFF), fd)

	payloadAddr := vm.DataBase + 256 - 8
	payload := []byte("ok")
	for i, b := range payload {
		require.NoError(t, mem.Store(payloadAddr+uint32(i), 1, uint32(b)))
	}

	m.Regs.Write(4, fd)
	m.Regs.Write(5, payloadAddr)
	m.Regs.Write(6, uint32(len(payload)))
	m.Regs.Write(2, 15)
	require.NoError(t, m.Syscall())
	assert.Equal(t, uint32(len(payload)), m.Regs.Read(2))

	m.Regs.Write(4, fd)
	m.Regs.Write(2, 16)
	require.NoError(t, m.Syscall())
	assert.Equal(t, uint32(0), m.Regs.Read(2))
}

func TestSyscall_CloseBadFD(t *testing.T) {
	m := vm.NewMachine(vm.NewMemory(4, 4, 0))
	m.Regs.Write(4, 999)
	m.Regs.Write(2, 16)
	require.NoError(t, m.Syscall())
	assert.Equal(t, uint32(0xFFFFFFFF), m.Regs.Read(2))
}
