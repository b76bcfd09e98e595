// Package strip drives a network attached LED strip controller.
// It includes the wire framing for state, color and built-in program
// commands, the Bridge interface consumed by the interpreter, and a
// Controller that writes commands to a TCP connection, or echoes them
// when no connection is available.
package strip

import (
	"fmt"
	"iter"
	"maps"
)

// Bridge defines the interface the interpreter uses to reach the hardware.
type Bridge interface {
	// SetState switches the strip on or off.
	SetState(state State) error
	// SendColor sets the whole strip to a single RGB color.
	SendColor(r, g, b uint8) error
	// SendProgram starts a built-in program at the given speed.
	SendProgram(program Program, speed uint8) error
}

// State is an on/off sub-command.
type State uint8

//go:generate go tool stringer -linecomment -type=State

const (
	STATE_ON  = State(0x23) // on
	STATE_OFF = State(0x24) // off
)

// Program is a built-in strip animation.
type Program uint8

const (
	PROGRAM_SEVEN_CROSS_FADE = Program(0x25) // seven-cross-fade
	PROGRAM_RED_GRADUAL      = Program(0x26) // red-gradual
	PROGRAM_GREEN_GRADUAL    = Program(0x27) // green-gradual
	PROGRAM_BLUE_GRADUAL     = Program(0x28) // blue-gradual
	PROGRAM_WHITE_GRADUAL    = Program(0x2c) // white-gradual
	PROGRAM_RED_GREEN_CROSS  = Program(0x2d) // red-green-cross
	PROGRAM_RED_BLUE_CROSS   = Program(0x2e) // red-blue-cross
	PROGRAM_GREEN_BLUE_CROSS = Program(0x2f) // green-blue-cross
	PROGRAM_SEVEN_STROBE     = Program(0x30) // seven-strobe
	PROGRAM_RED_STROBE       = Program(0x31) // red-strobe
	PROGRAM_GREEN_STROBE     = Program(0x32) // green-strobe
	PROGRAM_BLUE_STROBE      = Program(0x33) // blue-strobe
	PROGRAM_WHITE_STROBE     = Program(0x37) // white-strobe
	PROGRAM_SEVEN_JUMPING    = Program(0x38) // seven-jumping
)

// Speeds accepted by the controller for built-in programs.
const (
	SPEED_FASTEST = uint8(0x01)
	SPEED_FAST    = uint8(0x06)
	SPEED_SLOW    = uint8(0x10)
	SPEED_SLOWEST = uint8(0x1c)
)

var _program_names = map[Program]string{
	PROGRAM_SEVEN_CROSS_FADE: "seven-cross-fade",
	PROGRAM_RED_GRADUAL:      "red-gradual",
	PROGRAM_GREEN_GRADUAL:    "green-gradual",
	PROGRAM_BLUE_GRADUAL:     "blue-gradual",
	PROGRAM_WHITE_GRADUAL:    "white-gradual",
	PROGRAM_RED_GREEN_CROSS:  "red-green-cross",
	PROGRAM_RED_BLUE_CROSS:   "red-blue-cross",
	PROGRAM_GREEN_BLUE_CROSS: "green-blue-cross",
	PROGRAM_SEVEN_STROBE:     "seven-strobe",
	PROGRAM_RED_STROBE:       "red-strobe",
	PROGRAM_GREEN_STROBE:     "green-strobe",
	PROGRAM_BLUE_STROBE:      "blue-strobe",
	PROGRAM_WHITE_STROBE:     "white-strobe",
	PROGRAM_SEVEN_JUMPING:    "seven-jumping",
}

var _strip_defines = map[string]string{
	"SPEED_FASTEST": fmt.Sprintf("%#x", SPEED_FASTEST),
	"SPEED_FAST":    fmt.Sprintf("%#x", SPEED_FAST),
	"SPEED_SLOW":    fmt.Sprintf("%#x", SPEED_SLOW),
	"SPEED_SLOWEST": fmt.Sprintf("%#x", SPEED_SLOWEST),
}

func init() {
	for program := range _program_names {
		_strip_defines[program.Define()] = fmt.Sprintf("%#x", uint8(program))
	}
}

// Valid returns true if the controller knows the program.
func (program Program) Valid() bool {
	_, ok := _program_names[program]
	return ok
}

// String returns the name of the program.
func (program Program) String() string {
	name, ok := _program_names[program]
	if !ok {
		return fmt.Sprintf("program(0x%02x)", uint8(program))
	}
	return name
}

// Define returns the assembler equate name of the program,
// for example PROGRAM_RED_GRADUAL.
func (program Program) Define() string {
	name := program.String()
	out := []byte("PROGRAM_")
	for _, c := range []byte(name) {
		switch {
		case c == '-':
			c = '_'
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// Defines returns the program and speed equates for the assembler.
func Defines() iter.Seq2[string, string] {
	return maps.All(_strip_defines)
}
