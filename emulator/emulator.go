// Package emulator glues a virtual machine to an LED strip controller.
package emulator

import (
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/lsvm/config"
	"github.com/ezrec/lsvm/strip"
	"github.com/ezrec/lsvm/vm"
)

// Emulator state. Machine + strip controller.
type Emulator struct {
	Verbose     bool              // If set, enables verbose logging.
	*vm.Machine                   // Reference to the virtual machine.
	Controller  *strip.Controller // Strip controller the machine drives.
}

// NewEmulator creates a new emulator driving ctl.
func NewEmulator(ctl *strip.Controller) (emu *Emulator) {
	emu = &Emulator{
		Machine:    vm.NewMachine(ctl),
		Controller: ctl,
	}

	return
}

// Connect creates an emulator for the controller described by cfg.
// An offline configuration, or an unreachable controller, echoes commands.
func Connect(cfg config.Config) (emu *Emulator) {
	var ctl *strip.Controller
	if cfg.Offline {
		ctl = strip.NewController(nil)
	} else {
		ctl = strip.Dial(cfg.Address, cfg.Port, cfg.DialTimeout.Duration)
	}

	emu = NewEmulator(ctl)
	emu.SetVerbose(cfg.Verbose)

	return
}

// SetVerbose sets verbosity for the emulator and its parts.
func (emu *Emulator) SetVerbose(verbose bool) {
	emu.Verbose = verbose
	emu.Machine.Verbose = verbose
	emu.Machine.Registers.Verbose = verbose
	emu.Controller.Verbose = verbose
}

// Load decodes a bytecode stream and loads it into the machine.
func (emu *Emulator) Load(input io.Reader) (err error) {
	start := time.Now()

	prog, err := vm.DecodeReader(input)
	if err != nil {
		return
	}

	log.Infof("decode took %v (%d codes, %d labels)", time.Since(start), len(prog.Codes), len(prog.Labels))

	emu.Machine.Load(prog)

	return
}

// LoadSource assembles mnemonic source and loads it into the machine.
func (emu *Emulator) LoadSource(input io.Reader) (err error) {
	asm := &vm.Assembler{Verbose: emu.Verbose}
	lst, err := asm.Parse(input)
	if err != nil {
		return
	}

	prog, err := vm.Decode(lst.Binary())
	if err != nil {
		return
	}

	emu.Machine.Load(prog)

	return
}

// Run the loaded program to completion.
func (emu *Emulator) Run() (exit uint8, err error) {
	start := time.Now()

	exit, err = emu.Machine.Run()
	if err != nil {
		log.Errorf("faulted after %v (%d ticks): %v", time.Since(start), emu.Machine.Ticks, err)
		if emu.Verbose {
			log.Debugf("machine state:\n%v", emu.Machine.String())
		}
		return
	}

	log.Infof("exited with code %d after %v (%d ticks, %d commands)",
		exit, time.Since(start), emu.Machine.Ticks, emu.Controller.Sent)

	return
}

// Close the emulator, and its controller connection.
func (emu *Emulator) Close() (err error) {
	err = emu.Controller.Close()

	return
}
