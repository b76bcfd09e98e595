package strip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		message []byte
		expect  []byte
	}){
		{"on", StateMessage(STATE_ON), []byte{0x71, 0x23, 0x0f, 0xa3}},
		{"off", StateMessage(STATE_OFF), []byte{0x71, 0x24, 0x0f, 0xa4}},
		{"color", ColorMessage(10, 20, 30), []byte{0x31, 10, 20, 30, 0xf0, 0x0f, 0x6c}},
		{"white", ColorMessage(0xff, 0xff, 0xff), []byte{0x31, 0xff, 0xff, 0xff, 0xf0, 0x0f, 0x2d}},
		{"program", ProgramMessage(PROGRAM_RED_GRADUAL, SPEED_SLOW), []byte{0x61, 0x26, 0x10, 0x0f, 0xa6}},
	}

	for _, entry := range table {
		assert.Equal(entry.expect, entry.message, entry.name)
		assert.True(Verify(entry.message), entry.name)
	}
}

func TestChecksum(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint8(0), Checksum(nil))
	assert.Equal(uint8(0x6c), Checksum([]byte{0x31, 10, 20, 30, 0xf0, 0x0f}))
	assert.Equal(uint8(0xfe), Checksum([]byte{0xff, 0xff}))
}

func TestVerify(t *testing.T) {
	assert := assert.New(t)

	assert.False(Verify(nil))
	assert.False(Verify([]byte{0x71, 0x0f}))
	assert.False(Verify([]byte{0x71, 0x23, 0x0e, 0xa2}))
	assert.False(Verify([]byte{0x71, 0x23, 0x0f, 0xa4}))
	assert.True(Verify([]byte{0x71, 0x23, 0x0f, 0xa3}))
}

func TestSplit(t *testing.T) {
	assert := assert.New(t)

	var stream []byte
	stream = append(stream, StateMessage(STATE_ON)...)
	stream = append(stream, ColorMessage(1, 2, 3)...)
	stream = append(stream, ProgramMessage(PROGRAM_SEVEN_JUMPING, SPEED_FAST)...)
	stream = append(stream, StateMessage(STATE_OFF)...)

	messages, err := Split(stream)
	assert.NoError(err)
	assert.Equal([][]byte{
		StateMessage(STATE_ON),
		ColorMessage(1, 2, 3),
		ProgramMessage(PROGRAM_SEVEN_JUMPING, SPEED_FAST),
		StateMessage(STATE_OFF),
	}, messages)

	_, err = Split([]byte{0x55})
	assert.ErrorIs(err, ErrMessagePrefix)

	_, err = Split([]byte{0x31, 1, 2})
	assert.ErrorIs(err, ErrMessageTruncated)

	_, err = Split([]byte{0x71, 0x23, 0x0f, 0x00})
	assert.ErrorIs(err, ErrMessageChecksum)
}

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	assert.True(PROGRAM_RED_GRADUAL.Valid())
	assert.False(Program(0x29).Valid())
	assert.Equal("red-gradual", PROGRAM_RED_GRADUAL.String())
	assert.Equal("program(0x29)", Program(0x29).String())
	assert.Equal("PROGRAM_GREEN_BLUE_CROSS", PROGRAM_GREEN_BLUE_CROSS.Define())
	assert.Equal("off", STATE_OFF.String())
	assert.Equal("on", STATE_ON.String())
	assert.Equal("State(64)", State(0x40).String())
	assert.Equal("State(34)", State(0x22).String())

	defines := map[string]string{}
	for key, value := range Defines() {
		defines[key] = value
	}
	assert.Equal("0x26", defines["PROGRAM_RED_GRADUAL"])
	assert.Equal("0x38", defines["PROGRAM_SEVEN_JUMPING"])
	assert.Equal("0x1c", defines["SPEED_SLOWEST"])
	assert.Len(defines, len(_program_names)+4)
}
