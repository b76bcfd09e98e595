package vm

import (
	"errors"
	"fmt"
	"math/bits"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/lsvm/strip"
)

// MachineState is the execution state of the machine.
type MachineState int

//go:generate go tool stringer -linecomment -type=MachineState

const (
	STATE_RUNNING = MachineState(0) // running
	STATE_EXITED  = MachineState(1) // exited
	STATE_FAULTED = MachineState(2) // faulted
)

// Machine is the execution context of a single program run.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Program   *Program     // Program being executed.
	Registers Registers    // Register bank.
	Memory    Memory       // Scratch memory.
	Bridge    strip.Bridge // Hardware bridge.

	Pc       int   // Index of the next instruction.
	Exited   bool  // Set by exit.
	ExitCode uint8 // Valid when Exited is set.

	Ticks int // Executed instruction counter.

	// Sleep blocks for the pause instruction. Defaults to time.Sleep.
	Sleep func(d time.Duration)

	state MachineState
	fault error
}

// NewMachine creates a machine attached to bridge, with an empty program.
func NewMachine(bridge strip.Bridge) (m *Machine) {
	m = &Machine{
		Program: &Program{Labels: map[uint32]int{}},
		Bridge:  bridge,
		Sleep:   time.Sleep,
	}
	m.Registers.Bridge = bridge

	return
}

// Load replaces the program and resets the machine.
func (m *Machine) Load(prog *Program) {
	m.Program = prog
	m.Reset()
}

// Reset the machine state.
// - Clears the registers and memory, without hardware effect.
// - Zeros the program counter and statistics counter.
// - Returns to the running state.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("vm: reset")
	}

	m.Registers.Reset()
	m.Registers.Bridge = m.Bridge
	m.Registers.Verbose = m.Verbose
	m.Memory.Reset()
	m.Pc = 0
	m.Exited = false
	m.ExitCode = 0
	m.Ticks = 0
	m.state = STATE_RUNNING
	m.fault = nil
}

// State returns the execution state.
func (m *Machine) State() MachineState {
	return m.state
}

// String returns the current machine state as a string.
func (m *Machine) String() string {
	return fmt.Sprintf("% 5s: %d (%v)\n", "pc", m.Pc, m.state) + m.Registers.String()
}

// powerOff sends the final strip off command. Failures are logged only.
func (m *Machine) powerOff() {
	m.Registers.SetState(false)
}

// jump returns the program counter following the declaration of the label
// named by rgl.
func (m *Machine) jump() (pc int, err error) {
	rgl, _ := m.Registers.Wide(REG_RGL)
	return m.Program.Target(*rgl)
}

// Tick executes a single instruction.
// The machine is done after an exit, after running past the last
// instruction (an implicit exit with code 0), or after a fault. Every
// completed run sends the strip off command once.
func (m *Machine) Tick() (done bool, err error) {
	switch m.state {
	case STATE_EXITED:
		return true, nil
	case STATE_FAULTED:
		return true, m.fault
	}

	if m.Pc >= len(m.Program.Codes) {
		m.Exited = true
		m.ExitCode = 0
	} else {
		pc := m.Pc
		code := m.Program.Codes[pc]
		err = m.Execute(code)
		if err != nil {
			err = &ErrRuntime{Pc: pc, Offset: m.Program.Offset(pc), Code: code, Err: err}
			m.state = STATE_FAULTED
			m.fault = err
			m.powerOff()
			done = true
			return
		}
	}

	if m.Exited {
		if m.Verbose {
			log.Printf("vm: exit %d after %d ticks", m.ExitCode, m.Ticks)
		}
		m.state = STATE_EXITED
		m.powerOff()
		done = true
	}

	return
}

// Run executes until the program exits or faults.
func (m *Machine) Run() (exit uint8, err error) {
	for {
		var done bool
		done, err = m.Tick()
		if err != nil {
			return
		}
		if done {
			exit = m.ExitCode
			return
		}
	}
}

// Execute executes a single decoded instruction.
func (m *Machine) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code.Op), err)
		}
	}()
	if m.Verbose {
		log.Printf("%04d: %v", m.Pc, code)
	}

	need, ok := code.Op.Operands()
	if !ok {
		err = ErrOpcodeInvalid
		return
	}
	if len(code.Operands) != need {
		err = ErrOpcodeOperands
		return
	}

	regs := &m.Registers
	rgd, _ := regs.Wide(REG_RGD)
	rgp, _ := regs.Wide(REG_RGP)
	rgi, _ := regs.Wide(REG_RGI)
	rgo, _ := regs.Wide(REG_RGO)

	next_pc := m.Pc + 1

	switch code.Op {
	case OP_NOP, OP_LABEL:
		// Labels are resolved by Decode.
	case OP_EXIT:
		var ref Ref
		ref, err = regs.Lookup(code.RegisterDecode())
		if err != nil {
			return
		}
		m.ExitCode = uint8(ref.Get())
		m.Exited = true
	case OP_SET:
		value, reg := code.SetDecode()
		var ref Ref
		ref, err = regs.Lookup(reg)
		if err != nil {
			return
		}
		ref.Set(uint32(value))
	case OP_COPY:
		src, dst := code.CopyDecode()
		var from, to Ref
		from, err = regs.Lookup(src)
		if err != nil {
			return
		}
		to, err = regs.Lookup(dst)
		if err != nil {
			return
		}
		to.Set(from.Get())
	case OP_CLEAR:
		var ref Ref
		ref, err = regs.Lookup(code.RegisterDecode())
		if err != nil {
			return
		}
		ref.Set(0)
	case OP_LOAD:
		*rgd = m.Memory.Load(*rgp)
	case OP_WRITE:
		m.Memory.Store(*rgp, *rgd)
	case OP_GOTO:
		next_pc, err = m.jump()
		if err != nil {
			return
		}
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD, OP_LSH, OP_RSH:
		var output uint32
		output, err = doAlu(code.Op, *rgd, *rgi)
		if err != nil {
			return
		}
		*rgo = output
	case OP_JG, OP_JL, OP_JE:
		var taken bool
		switch code.Op {
		case OP_JG:
			taken = *rgd > *rgi
		case OP_JL:
			taken = *rgd < *rgi
		case OP_JE:
			taken = *rgd == *rgi
		}
		if taken {
			next_pc, err = m.jump()
			if err != nil {
				return
			}
		}
	case OP_PAUSE:
		sleep := m.Sleep
		if sleep == nil {
			sleep = time.Sleep
		}
		sleep(time.Duration(*rgd) * time.Millisecond)
	case OP_CMD:
		r, g, b := regs.Color()
		if m.Bridge != nil {
			berr := m.Bridge.SendColor(r, g, b)
			if berr != nil {
				log.Warnf("vm: color %02x%02x%02x: %v", r, g, b, berr)
			}
		}
	case OP_PROGRAM:
		program, speed := code.ProgramDecode()
		if !program.Valid() {
			err = ErrProgramInvalid
			return
		}
		if m.Bridge != nil {
			berr := m.Bridge.SendProgram(program, speed)
			if berr != nil {
				log.Warnf("vm: program %v: %v", program, berr)
			}
		}
	default:
		err = ErrOpcodeInvalid
		return
	}

	m.Pc = next_pc
	m.Ticks += 1

	return
}

// doAlu performs the requested ALU action on rgd and rgi, and returns the
// value for rgo. Results that do not fit in 32 bits are errors.
func doAlu(op Opcode, data uint32, input uint32) (output uint32, err error) {
	switch op {
	case OP_ADD:
		var carry uint32
		output, carry = bits.Add32(data, input, 0)
		if carry != 0 {
			err = ErrOverflow
		}
	case OP_SUB:
		var borrow uint32
		output, borrow = bits.Sub32(data, input, 0)
		if borrow != 0 {
			err = ErrUnderflow
		}
	case OP_MUL:
		var hi uint32
		hi, output = bits.Mul32(data, input)
		if hi != 0 {
			err = ErrOverflow
		}
	case OP_DIV:
		if input == 0 {
			err = ErrDivideByZero
			return
		}
		output = data / input
	case OP_MOD:
		if input == 0 {
			err = ErrDivideByZero
			return
		}
		output = data % input
	case OP_LSH:
		if input >= 32 {
			err = ErrOverflow
			return
		}
		output = data << input
	case OP_RSH:
		if input >= 32 {
			err = ErrOverflow
			return
		}
		output = data >> input
	default:
		err = ErrOpcodeInvalid
	}

	if err != nil {
		output = 0
	}

	return
}
