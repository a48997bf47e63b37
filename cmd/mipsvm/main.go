// Command mipsvm loads a compiled MIPS-I executable image and runs it to
// completion, reporting faults to stderr.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mipsvm/mipsvm/config"
	"github.com/mipsvm/mipsvm/loader"
	"github.com/mipsvm/mipsvm/vm"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-config path] <executable-file> [args...]\n", os.Args[0])
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	fs := flag.NewFlagSet("mipsvm", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "path to a config.toml file (default: platform config dir)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	args := fs.Args()
	if len(args) < 1 {
		usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mipsvm: %v\n", err)
		return 1
	}

	image, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "mipsvm: cannot read %s: %v\n", args[0], err)
		return 1
	}

	m, err := loader.Load(image, args, cfg.Execution.StackSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mipsvm: %v\n", err)
		return 1
	}

	m.MaxInstructions = cfg.Execution.MaxInstructions
	m.OverflowFatal = cfg.Execution.OverflowFatal
	if cfg.Execution.Trace {
		m.Trace = func(pc, raw uint32) {
			fmt.Fprintf(os.Stderr, "trace: pc=0x%08X inst=0x%08X\n", pc, raw)
		}
	}

	if err := m.Run(); err != nil {
		reportFault(err, m)
		return 1
	}

	return int(m.ExitCode)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// reportFault prints the fault kind and the faulting pc, plus the
// underlying error detail (e.g. the syscall code for BadSyscall).
func reportFault(err error, m *vm.Machine) {
	kind := "fault"
	switch {
	case errors.Is(err, vm.ErrOverflow):
		kind = "Overflow"
	case errors.Is(err, vm.ErrDivByZero):
		kind = "DivByZero"
	case errors.Is(err, vm.ErrNonexistentMemory):
		kind = "NonexistentMemory"
	case errors.Is(err, vm.ErrUnalignedInst):
		kind = "UnalignedInst"
	case errors.Is(err, vm.ErrBadSyscall):
		kind = "BadSyscall"
	case errors.Is(err, vm.ErrFuncNotImplemented):
		kind = "FuncNotImplemented"
	case errors.Is(err, vm.ErrBreak):
		kind = "Break"
	case errors.Is(err, vm.ErrInstructionLimit):
		kind = "InstructionLimit"
	}
	fmt.Fprintf(os.Stderr, "mipsvm: %s at pc=0x%08X: %v\n", kind, m.Regs.PC, err)
}
