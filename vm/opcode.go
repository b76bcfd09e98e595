package vm

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ezrec/lsvm/strip"
)

// Opcode is the first byte of every instruction.
type Opcode uint8

const (
	OP_NOP   = Opcode(0x00) // nop
	OP_EXIT  = Opcode(0x01) // exit
	OP_SET   = Opcode(0x02) // set
	OP_COPY  = Opcode(0x03) // copy
	OP_LOAD  = Opcode(0x04) // load
	OP_CLEAR = Opcode(0x05) // clear
	OP_WRITE = Opcode(0x06) // write
	OP_LABEL = Opcode(0x07) // label
	OP_GOTO  = Opcode(0x08) // goto

	OP_ADD = Opcode(0x10) // add
	OP_SUB = Opcode(0x11) // sub
	OP_MUL = Opcode(0x12) // mul
	OP_DIV = Opcode(0x13) // div
	OP_MOD = Opcode(0x14) // mod
	OP_LSH = Opcode(0x15) // lsh
	OP_RSH = Opcode(0x16) // rsh

	OP_JG = Opcode(0x20) // jg
	OP_JL = Opcode(0x21) // jl
	OP_JE = Opcode(0x22) // je

	OP_PAUSE   = Opcode(0xf0) // pause
	OP_CMD     = Opcode(0xf1) // cmd
	OP_PROGRAM = Opcode(0xf2) // program
)

// CodeClass is the family of an opcode.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass

const (
	CLASS_INVALID = CodeClass(-1) // invalid
	CLASS_CONTROL = CodeClass(0)  // control
	CLASS_ALU     = CodeClass(1)  // alu
	CLASS_COND    = CodeClass(2)  // cond
	CLASS_PROCESS = CodeClass(3)  // process
)

type opcodeInfo struct {
	name     string
	operands int
}

// _opcodes lists every opcode and the number of operand bytes that follow it.
var _opcodes = map[Opcode]opcodeInfo{
	OP_NOP:     {"nop", 0},
	OP_EXIT:    {"exit", 1},
	OP_SET:     {"set", 2},
	OP_COPY:    {"copy", 2},
	OP_LOAD:    {"load", 0},
	OP_CLEAR:   {"clear", 1},
	OP_WRITE:   {"write", 0},
	OP_LABEL:   {"label", 4},
	OP_GOTO:    {"goto", 0},
	OP_ADD:     {"add", 0},
	OP_SUB:     {"sub", 0},
	OP_MUL:     {"mul", 0},
	OP_DIV:     {"div", 0},
	OP_MOD:     {"mod", 0},
	OP_LSH:     {"lsh", 0},
	OP_RSH:     {"rsh", 0},
	OP_JG:      {"jg", 0},
	OP_JL:      {"jl", 0},
	OP_JE:      {"je", 0},
	OP_PAUSE:   {"pause", 0},
	OP_CMD:     {"cmd", 0},
	OP_PROGRAM: {"program", 2},
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := _opcodes[op]
	return ok
}

// Operands returns the number of operand bytes following the opcode.
func (op Opcode) Operands() (count int, ok bool) {
	info, ok := _opcodes[op]
	count = info.operands
	return
}

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	info, ok := _opcodes[op]
	if !ok {
		return fmt.Sprintf("op(0x%02x)", uint8(op))
	}
	return info.name
}

// Class returns the opcode family, from the range the opcode falls in.
func (op Opcode) Class() CodeClass {
	if !op.Valid() {
		return CLASS_INVALID
	}

	switch {
	case op < 0x10:
		return CLASS_CONTROL
	case op < 0x20:
		return CLASS_ALU
	case op < 0x30:
		return CLASS_COND
	default:
		return CLASS_PROCESS
	}
}

// Code is a single decoded instruction: the opcode and its operand bytes.
type Code struct {
	Op       Opcode
	Operands []byte
}

// MakeCode creates an instruction with raw operand bytes.
func MakeCode(op Opcode, operands ...byte) Code {
	if len(operands) == 0 {
		operands = nil
	}
	return Code{Op: op, Operands: operands}
}

// MakeCodeExit creates an exit instruction reporting the value of reg.
func MakeCodeExit(reg Register) Code {
	return MakeCode(OP_EXIT, byte(reg))
}

// MakeCodeSet creates an immediate load of value into reg.
func MakeCodeSet(value uint8, reg Register) Code {
	return MakeCode(OP_SET, value, byte(reg))
}

// MakeCodeCopy creates a copy from src into dst.
func MakeCodeCopy(src, dst Register) Code {
	return MakeCode(OP_COPY, byte(src), byte(dst))
}

// MakeCodeClear creates a clear of reg.
func MakeCodeClear(reg Register) Code {
	return MakeCode(OP_CLEAR, byte(reg))
}

// MakeCodeLabel creates a label declaration.
func MakeCodeLabel(id uint32) Code {
	return MakeCode(OP_LABEL, binary.BigEndian.AppendUint32(nil, id)...)
}

// MakeCodeProgram creates a built-in strip program command.
func MakeCodeProgram(program strip.Program, speed uint8) Code {
	return MakeCode(OP_PROGRAM, uint8(program), speed)
}

// RegisterDecode returns the register operand of exit and clear.
func (code Code) RegisterDecode() Register {
	return Register(code.Operands[0])
}

// SetDecode returns the immediate value and target register of set.
func (code Code) SetDecode() (value uint8, reg Register) {
	value = code.Operands[0]
	reg = Register(code.Operands[1])
	return
}

// CopyDecode returns the source and destination registers of copy.
func (code Code) CopyDecode() (src, dst Register) {
	src = Register(code.Operands[0])
	dst = Register(code.Operands[1])
	return
}

// LabelDecode returns the label id of a label declaration.
func (code Code) LabelDecode() (id uint32) {
	return binary.BigEndian.Uint32(code.Operands)
}

// ProgramDecode returns the strip program and speed of program.
func (code Code) ProgramDecode() (program strip.Program, speed uint8) {
	program = strip.Program(code.Operands[0])
	speed = code.Operands[1]
	return
}

// Registers returns the registers named by the operands of the code.
func (code Code) Registers() (regs []Register) {
	switch code.Op {
	case OP_EXIT, OP_CLEAR:
		regs = []Register{code.RegisterDecode()}
	case OP_SET:
		_, reg := code.SetDecode()
		regs = []Register{reg}
	case OP_COPY:
		src, dst := code.CopyDecode()
		regs = []Register{src, dst}
	}

	return
}

// Bytes returns the bytecode encoding of the instruction.
func (code Code) Bytes() (data []byte) {
	data = make([]byte, 0, 1+len(code.Operands))
	data = append(data, byte(code.Op))
	data = append(data, code.Operands...)
	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	need, _ := code.Op.Operands()
	if len(code.Operands) != need {
		return fmt.Sprintf("%v % x", code.Op, code.Operands)
	}

	words := []string{code.Op.String()}

	switch code.Op {
	case OP_EXIT, OP_CLEAR:
		words = append(words, code.RegisterDecode().String())
	case OP_SET:
		value, reg := code.SetDecode()
		words = append(words, fmt.Sprintf("%#x", value), reg.String())
	case OP_COPY:
		src, dst := code.CopyDecode()
		words = append(words, src.String(), dst.String())
	case OP_LABEL:
		words = append(words, fmt.Sprintf("%#x", code.LabelDecode()))
	case OP_PROGRAM:
		program, speed := code.ProgramDecode()
		words = append(words, program.Define(), fmt.Sprintf("%#x", speed))
	}

	return strings.Join(words, " ")
}
