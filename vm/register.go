package vm

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/lsvm/strip"
)

// Register is the one byte code selecting a cell in the register bank.
type Register uint8

const (
	REG_RCS = Register(0x01) // rcs
	REG_RCR = Register(0x02) // rcr
	REG_RCG = Register(0x03) // rcg
	REG_RCB = Register(0x04) // rcb
	REG_RGD = Register(0x05) // rgd
	REG_RGP = Register(0x06) // rgp
	REG_RGI = Register(0x07) // rgi
	REG_RGO = Register(0x08) // rgo
	REG_RGL = Register(0x09) // rgl
)

// RegisterKind is the width of a register.
type RegisterKind int

//go:generate go tool stringer -linecomment -type=RegisterKind

const (
	KIND_BOOL   = RegisterKind(0) // bool
	KIND_NARROW = RegisterKind(1) // narrow
	KIND_WIDE   = RegisterKind(2) // wide
)

var _register_names = map[Register]string{
	REG_RCS: "rcs",
	REG_RCR: "rcr",
	REG_RCG: "rcg",
	REG_RCB: "rcb",
	REG_RGD: "rgd",
	REG_RGP: "rgp",
	REG_RGI: "rgi",
	REG_RGO: "rgo",
	REG_RGL: "rgl",
}

// RegisterByName maps an assembler register name to its code.
func RegisterByName(name string) (reg Register, ok bool) {
	for reg, regName := range _register_names {
		if regName == name {
			return reg, true
		}
	}
	return
}

// String returns the assembler name of the register.
func (reg Register) String() string {
	name, ok := _register_names[reg]
	if !ok {
		return fmt.Sprintf("reg(0x%02x)", uint8(reg))
	}
	return name
}

// Kind returns the width of the register, and false for an unknown code.
func (reg Register) Kind() (kind RegisterKind, ok bool) {
	switch {
	case reg == REG_RCS:
		return KIND_BOOL, true
	case reg >= REG_RCR && reg <= REG_RCB:
		return KIND_NARROW, true
	case reg >= REG_RGD && reg <= REG_RGL:
		return KIND_WIDE, true
	}
	return
}

// Registers is the register bank.
type Registers struct {
	Verbose bool         // Set to log every register write.
	Bridge  strip.Bridge // Receives the strip state on writes to rcs.

	Channel [3]uint8  // rcr, rcg, rcb
	General [5]uint32 // rgd, rgp, rgi, rgo, rgl

	enabled bool // rcs
}

// Reset zeroes every register, without any hardware effect.
func (regs *Registers) Reset() {
	regs.enabled = false
	clear(regs.Channel[:])
	clear(regs.General[:])
}

// State returns the strip enabled register.
func (regs *Registers) State() bool {
	return regs.enabled
}

// SetState writes the strip enabled register and forwards the new state
// to the bridge. Bridge failures are logged and otherwise ignored.
func (regs *Registers) SetState(enabled bool) {
	regs.enabled = enabled

	if regs.Bridge == nil {
		return
	}

	state := strip.STATE_OFF
	if enabled {
		state = strip.STATE_ON
	}

	err := regs.Bridge.SetState(state)
	if err != nil {
		log.Warnf("registers: strip %v: %v", state, err)
	}
}

// Narrow returns the 8-bit register named by reg.
func (regs *Registers) Narrow(reg Register) (cell *uint8, ok bool) {
	if kind, _ := reg.Kind(); kind != KIND_NARROW {
		return
	}
	return &regs.Channel[reg-REG_RCR], true
}

// Wide returns the 32-bit register named by reg.
func (regs *Registers) Wide(reg Register) (cell *uint32, ok bool) {
	if kind, _ := reg.Kind(); kind != KIND_WIDE {
		return
	}
	return &regs.General[reg-REG_RGD], true
}

// Color returns the three channel registers.
func (regs *Registers) Color() (r, g, b uint8) {
	return regs.Channel[0], regs.Channel[1], regs.Channel[2]
}

// Ref is a width-tagged reference to a single register.
type Ref struct {
	Register Register
	Kind     RegisterKind

	regs *Registers
}

// Lookup resolves a register code into a reference.
func (regs *Registers) Lookup(reg Register) (ref Ref, err error) {
	kind, ok := reg.Kind()
	if !ok {
		err = ErrRegister(reg)
		return
	}

	ref = Ref{Register: reg, Kind: kind, regs: regs}
	return
}

// Get returns the register value, widened to 32 bits.
func (ref Ref) Get() (value uint32) {
	switch ref.Kind {
	case KIND_BOOL:
		if ref.regs.enabled {
			value = 1
		}
	case KIND_NARROW:
		cell, _ := ref.regs.Narrow(ref.Register)
		value = uint32(*cell)
	case KIND_WIDE:
		cell, _ := ref.regs.Wide(ref.Register)
		value = *cell
	}

	return
}

// Set writes the register. Narrow registers keep the low byte, and the
// strip register is enabled by any non-zero value.
func (ref Ref) Set(value uint32) {
	if ref.regs.Verbose {
		log.Printf("registers: %v = %#x", ref.Register, value)
	}

	switch ref.Kind {
	case KIND_BOOL:
		ref.regs.SetState(value != 0)
	case KIND_NARROW:
		cell, _ := ref.regs.Narrow(ref.Register)
		*cell = uint8(value)
	case KIND_WIDE:
		cell, _ := ref.regs.Wide(ref.Register)
		*cell = value
	}
}

// String returns the current register bank as a string.
func (regs *Registers) String() (text string) {
	for reg := REG_RCS; reg <= REG_RGL; reg++ {
		ref, _ := regs.Lookup(reg)
		var strval string
		switch ref.Kind {
		case KIND_BOOL:
			strval = "off"
			if regs.enabled {
				strval = "on"
			}
		case KIND_NARROW:
			strval = fmt.Sprintf("%02X", ref.Get())
		case KIND_WIDE:
			val := ref.Get()
			strval = fmt.Sprintf("%04X_%04X", val>>16, val&0xffff)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
