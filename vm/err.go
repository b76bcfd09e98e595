package vm

import (
	"errors"

	"github.com/ezrec/lsvm/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrDivideByZero = errors.New(f("divide by zero"))
	ErrUnderflow    = errors.New(f("arithmetic underflow"))
	ErrOverflow     = errors.New(f("arithmetic overflow"))

	// Instruction decode errors
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOpcodeTruncated = errors.New(f("operand truncated"))
	ErrOpcodeOperands  = errors.New(f("operand count"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrProgramInvalid  = errors.New(f("strip program invalid"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro nesting too deep"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
)

// ErrRegister reports an unknown register code.
type ErrRegister Register

func (er ErrRegister) Error() string {
	return f("register 0x%02x unknown", uint8(er))
}

// ErrLabelMissing reports a jump to a label that was never declared.
type ErrLabelMissing uint32

func (el ErrLabelMissing) Error() string {
	return f("label 0x%08x missing", uint32(el))
}

// ErrOpcode identifies the opcode being executed when an error occurred.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x %v", uint8(eo), Opcode(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrDecode indicates the byte offset of a bytecode decode error.
type ErrDecode struct {
	Offset int
	Err    error
}

func (err *ErrDecode) Error() string {
	return f("offset %d %v", err.Offset, err.Err)
}

func (err *ErrDecode) Unwrap() error {
	return err.Err
}

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     int  // Index of the faulting code.
	Offset int  // Byte offset of the faulting code in the bytecode.
	Code   Code // The faulting code.
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d (offset %d) '%v' %v", err.Pc, err.Offset, err.Code, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrSyntax indicates the source line of an assembler error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a valid character", string(err))
}

// ErrMacro indicates the macro line an error was expanded from.
type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err *ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err)
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}
