package vm

import (
	"io"
	"slices"
)

// Program is a decoded bytecode stream.
type Program struct {
	Codes   []Code         // Decoded instructions.
	Offsets []int          // Byte offset of each instruction.
	Labels  map[uint32]int // Label id to the index of its declaration.
}

// Decode decodes a bytecode stream in a single forward pass, building the
// label table as label declarations are encountered.
func Decode(data []byte) (prog *Program, err error) {
	var offset int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrDecode{Offset: offset, Err: err}
		}
	}()

	prog = &Program{
		Labels: make(map[uint32]int),
	}

	for offset < len(data) {
		op := Opcode(data[offset])
		need, ok := op.Operands()
		if !ok {
			err = ErrOpcodeInvalid
			return
		}

		if offset+1+need > len(data) {
			err = ErrOpcodeTruncated
			return
		}

		code := MakeCode(op, slices.Clone(data[offset+1:offset+1+need])...)

		for _, reg := range code.Registers() {
			if _, ok := reg.Kind(); !ok {
				err = ErrRegister(reg)
				return
			}
		}

		switch op {
		case OP_LABEL:
			id := code.LabelDecode()
			if _, ok := prog.Labels[id]; ok {
				err = ErrLabelDuplicate
				return
			}
			prog.Labels[id] = len(prog.Codes)
		case OP_PROGRAM:
			program, _ := code.ProgramDecode()
			if !program.Valid() {
				err = ErrProgramInvalid
				return
			}
		}

		prog.Codes = append(prog.Codes, code)
		prog.Offsets = append(prog.Offsets, offset)

		offset += 1 + need
	}

	return
}

// DecodeReader reads all of input and decodes it.
func DecodeReader(input io.Reader) (prog *Program, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return Decode(data)
}

// Binary re-encodes the program to bytecode.
func (prog *Program) Binary() (data []byte) {
	for _, code := range prog.Codes {
		data = append(data, code.Bytes()...)
	}

	return
}

// Offset returns the byte offset of the instruction at pc, or -1.
func (prog *Program) Offset(pc int) int {
	if pc < 0 || pc >= len(prog.Offsets) {
		return -1
	}
	return prog.Offsets[pc]
}

// Target returns the program counter following the declaration of label.
func (prog *Program) Target(label uint32) (pc int, err error) {
	index, ok := prog.Labels[label]
	if !ok {
		err = ErrLabelMissing(label)
		return
	}

	pc = index + 1
	return
}
