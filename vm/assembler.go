package vm

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/lsvm/strip"
)

// Line is a single assembled source line.
type Line struct {
	LineNo int      // Source line number.
	Words  []string // Words of the line, after equate expansion.
	Code   Code     // Generated instruction.
}

// Listing is the output of the assembler.
type Listing struct {
	Lines []Line
}

// Codes returns the generated instructions, in order.
func (lst *Listing) Codes() (codes []Code) {
	for _, line := range lst.Lines {
		codes = append(codes, line.Code)
	}
	return
}

// Binary returns the bytecode of the listing.
func (lst *Listing) Binary() (data []byte) {
	for _, line := range lst.Lines {
		data = append(data, line.Code.Bytes()...)
	}
	return
}

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the first line of the macro body.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

const (
	MACRO_DEPTH = 16 // Maximum nesting of macro expansions.
)

// Assembler is a single pass macro assembler for the strip machine.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string
	Equate    map[string]string // Map of equates.
	Macro     map[string]*Macro // Map of macros.

	depth int
}

// Predefine defines an equate before parsing starts.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// _mnemonics maps every mnemonic to its opcode.
var _mnemonics = map[string]Opcode{
	"send": OP_CMD,
}

func init() {
	for op, info := range _opcodes {
		_mnemonics[info.name] = op
	}
}

// valueOf returns the value of a simple word: decimal, or hex with a 0x
// prefix.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	if strings.HasPrefix(word, "'") {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}

	var v64 uint64
	if hex, ok := strings.CutPrefix(strings.ToLower(word), "0x"); ok {
		v64, err = strconv.ParseUint(hex, 16, 32)
	} else {
		v64, err = strconv.ParseUint(word, 10, 32)
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	return
}

// byteOf returns the value of a word that must fit in a byte.
func (asm *Assembler) byteOf(word string) (value uint8, err error) {
	v32, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if v32 > 0xff {
		err = ErrValueRange
		return
	}

	value = uint8(v32)
	return
}

// registerOf returns the register named by word.
func (asm *Assembler) registerOf(word string) (reg Register, err error) {
	reg, ok := RegisterByName(word)
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates, such as register aliases.
			err = nil
			continue
		}
		pred[key] = starlark.MakeUint(uint(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_uint64, ok := st_int.Uint64()
	if !ok || st_uint64 > 0xffffffff {
		err = ErrValueRange
		return
	}
	value = uint32(st_uint64)
	return
}

var (
	_char_re  = regexp.MustCompile(`'\\?[^']'`)
	_paren_re = regexp.MustCompile(`\$\([^\$]*\)`)
)

// charValue expands a quoted character into its decimal value.
func charValue(word string) string {
	str := word[1 : len(word)-1]
	if str[0] == '\\' {
		switch str[1:] {
		case "\\":
			str = "\\"
		case "n":
			str = "\n"
		case "r":
			str = "\r"
		case "t":
			str = "\t"
		case "e":
			str = "\033"
		case "0":
			str = "\000"
		default:
			return word
		}
	} else if len(str) != 1 {
		return word
	}
	return fmt.Sprintf("%v", str[0])
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = _char_re.ReplaceAllStringFunc(line, charValue)

	// Do $() evaluations
	line = _paren_re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words[1:] {
		equate, ok := asm.Equate[word]
		if ok {
			words[1+n] = equate
		}
	}

	return
}

// assembleLine expands a line, and appends the generated instruction, or
// the expansion of the macro it invokes.
func (asm *Assembler) assembleLine(line string, lineno int) (err error) {
	words, err := asm.parseLine(line, lineno)
	if err != nil {
		return
	}

	if len(words) == 0 {
		return
	}

	macro, ok := asm.Macro[words[0]]
	if ok {
		err = asm.expandMacro(words[0], macro, words[1:], lineno)
		return
	}

	code, err := asm.parseWords(words)
	if err != nil {
		return
	}

	asm.Lines = append(asm.Lines, Line{LineNo: lineno, Words: words, Code: code})

	return
}

// expandMacro assembles the body of a macro, with its arguments bound as
// equates for the duration of the expansion.
func (asm *Assembler) expandMacro(name string, macro *Macro, args []string, lineno int) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	if asm.depth >= MACRO_DEPTH {
		err = ErrMacroNesting
		return
	}

	asm.depth++
	old_equate := maps.Clone(asm.Equate)
	defer func() {
		asm.depth--
		asm.Equate = old_equate
	}()

	for n, arg := range macro.Args {
		asm.Equate[arg] = args[n]
	}

	for n, line := range macro.Lines {
		err = asm.assembleLine(line, lineno)
		if err != nil {
			err = &ErrMacro{Macro: name, Line: macro.LineNo + n, Err: err}
			return
		}
	}

	return
}

// Parse parses an input stream into a listing of instructions.
func (asm *Assembler) Parse(input io.Reader) (lst *Listing, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Lines = asm.Lines[:0]
	asm.depth = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string]*Macro)
	}
	clear(asm.Macro)
	asm.Equate = map[string]string{"LINENO": "0"}
	for key, value := range strip.Defines() {
		asm.Equate[key] = value
	}
	maps.Copy(asm.Equate, asm.predefine)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		line = strings.TrimSpace(strings.SplitN(text, ";", 2)[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   words[2:],
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		err = asm.assembleLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	lst = &Listing{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// Assemble parses input and returns its bytecode.
func (asm *Assembler) Assemble(input io.Reader) (data []byte, err error) {
	lst, err := asm.Parse(input)
	if err != nil {
		return
	}

	return lst.Binary(), nil
}

// parseWords generates the instruction for a line of words.
func (asm *Assembler) parseWords(words []string) (code Code, err error) {
	op, ok := _mnemonics[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]

	var want int
	switch op {
	case OP_EXIT, OP_CLEAR, OP_LABEL:
		want = 1
	case OP_SET, OP_COPY, OP_PROGRAM:
		want = 2
	}
	if len(args) < want {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > want {
		err = ErrOpcodeExtraArgs
		return
	}

	switch op {
	case OP_EXIT, OP_CLEAR:
		var reg Register
		reg, err = asm.registerOf(args[0])
		if err != nil {
			return
		}
		code = MakeCode(op, byte(reg))
	case OP_SET:
		var value uint8
		var reg Register
		value, err = asm.byteOf(args[0])
		if err != nil {
			return
		}
		reg, err = asm.registerOf(args[1])
		if err != nil {
			return
		}
		code = MakeCodeSet(value, reg)
	case OP_COPY:
		var src, dst Register
		src, err = asm.registerOf(args[0])
		if err != nil {
			return
		}
		dst, err = asm.registerOf(args[1])
		if err != nil {
			return
		}
		code = MakeCodeCopy(src, dst)
	case OP_LABEL:
		var id uint32
		id, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		code = MakeCodeLabel(id)
	case OP_PROGRAM:
		var program, speed uint8
		program, err = asm.byteOf(args[0])
		if err != nil {
			return
		}
		if !strip.Program(program).Valid() {
			err = ErrProgramInvalid
			return
		}
		speed, err = asm.byteOf(args[1])
		if err != nil {
			return
		}
		code = MakeCodeProgram(strip.Program(program), speed)
	default:
		code = MakeCode(op)
	}

	return
}
