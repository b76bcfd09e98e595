package vm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	data := []byte{
		0x02, 0x0a, 0x02, // set 10 rcr
		0x07, 0x00, 0x00, 0x00, 0x2a, // label 42
		0x00,       // nop
		0x03, 0x05, 0x06, // copy rgd rgp
		0x07, 0x00, 0x00, 0x01, 0x00, // label 256
		0x01, 0x02, // exit rcr
	}

	prog, err := Decode(data)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal([]Code{
		MakeCodeSet(10, REG_RCR),
		MakeCodeLabel(42),
		MakeCode(OP_NOP),
		MakeCodeCopy(REG_RGD, REG_RGP),
		MakeCodeLabel(256),
		MakeCodeExit(REG_RCR),
	}, prog.Codes)
	assert.Equal([]int{0, 3, 8, 9, 12, 17}, prog.Offsets)
	assert.Equal(map[uint32]int{42: 1, 256: 4}, prog.Labels)
	assert.Equal(data, prog.Binary())

	pc, err := prog.Target(42)
	assert.NoError(err)
	assert.Equal(2, pc)

	_, err = prog.Target(7)
	assert.Equal(ErrLabelMissing(7), err)

	assert.Equal(9, prog.Offset(3))
	assert.Equal(-1, prog.Offset(6))
}

func TestDecodeEmpty(t *testing.T) {
	assert := assert.New(t)

	prog, err := Decode(nil)
	assert.NoError(err)
	assert.Empty(prog.Codes)
	assert.Empty(prog.Labels)
}

func TestDecodeErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		data   []byte
		offset int
		err    error
	}){
		{"unknown opcode", []byte{0x00, 0x09}, 1, ErrOpcodeInvalid},
		{"unknown high opcode", []byte{0xff}, 0, ErrOpcodeInvalid},
		{"truncated set", []byte{0x02, 0x0a}, 0, ErrOpcodeTruncated},
		{"truncated exit", []byte{0x00, 0x01}, 1, ErrOpcodeTruncated},
		{"truncated label", []byte{0x07, 0x00, 0x00, 0x01}, 0, ErrOpcodeTruncated},
		{"duplicate label", []byte{0x07, 0, 0, 0, 1, 0x00, 0x07, 0, 0, 0, 1}, 6, ErrLabelDuplicate},
		{"unknown register", []byte{0x02, 0x01, 0x0a}, 0, ErrRegister(0x0a)},
		{"unknown copy register", []byte{0x03, 0x05, 0x00}, 0, ErrRegister(0x00)},
		{"unknown program", []byte{0xf2, 0x29, 0x01}, 0, ErrProgramInvalid},
	}

	for _, entry := range table {
		prog, err := Decode(entry.data)
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var derr *ErrDecode
		if assert.True(errors.As(err, &derr), entry.name) {
			assert.Equal(entry.offset, derr.Offset, entry.name)
		}
	}
}

func TestDecodeReader(t *testing.T) {
	assert := assert.New(t)

	prog, err := DecodeReader(bytes.NewReader([]byte{0xf1, 0x01, 0x05}))
	assert.NoError(err)
	assert.Equal([]Code{MakeCode(OP_CMD), MakeCodeExit(REG_RGD)}, prog.Codes)
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x02, 0x0a, 0x02, 0x02, 0x14, 0x03, 0x02, 0x1e, 0x04, 0xf1, 0x01, 0x02})
	f.Add([]byte{0x07, 0x00, 0x00, 0x00, 0x01, 0x08})
	f.Add([]byte{0xf2, 0x26, 0x10, 0x13})

	f.Fuzz(func(t *testing.T, data []byte) {
		assert := assert.New(t)

		prog, err := Decode(data)
		if err != nil {
			var derr *ErrDecode
			assert.True(errors.As(err, &derr))
			assert.Nil(prog)
			return
		}

		assert.Equal(len(prog.Codes), len(prog.Offsets))
		assert.Equal(data, prog.Binary())
		for id, index := range prog.Labels {
			assert.Equal(OP_LABEL, prog.Codes[index].Op)
			assert.Equal(id, prog.Codes[index].LabelDecode())
		}
		for n, code := range prog.Codes {
			assert.Equal(data[prog.Offsets[n]:prog.Offsets[n]+len(code.Bytes())], code.Bytes())
		}
	})
}
