package strip

// Command category prefixes.
const (
	PREFIX_STATE   = uint8(0x71)
	PREFIX_COLOR   = uint8(0x31)
	PREFIX_PROGRAM = uint8(0x61)
)

const (
	TERMINATOR       = uint8(0x0f) // Appended to every command, before the checksum.
	COLOR_TERMINATOR = uint8(0xf0) // Follows the three channel bytes of a color command.
)

// Message frames a command payload: the payload, the terminator,
// then the low byte of the sum of every preceding byte.
func Message(payload ...uint8) (message []byte) {
	message = make([]byte, 0, len(payload)+2)
	message = append(message, payload...)
	message = append(message, TERMINATOR)
	message = append(message, Checksum(message))
	return
}

// Checksum returns the low byte of the sum of data.
func Checksum(data []byte) (sum uint8) {
	for _, b := range data {
		sum += b
	}
	return
}

// StateMessage returns the framed on/off command.
func StateMessage(state State) []byte {
	return Message(PREFIX_STATE, uint8(state))
}

// ColorMessage returns the framed RGB color command.
func ColorMessage(r, g, b uint8) []byte {
	return Message(PREFIX_COLOR, r, g, b, COLOR_TERMINATOR)
}

// ProgramMessage returns the framed built-in program command.
func ProgramMessage(program Program, speed uint8) []byte {
	return Message(PREFIX_PROGRAM, uint8(program), speed)
}

// Verify checks the terminator and checksum trailer of a framed message.
func Verify(message []byte) bool {
	if len(message) < 3 {
		return false
	}
	n := len(message)
	if message[n-2] != TERMINATOR {
		return false
	}
	return Checksum(message[:n-1]) == message[n-1]
}

// messageLength is the framed length of each command category.
var messageLength = map[uint8]int{
	PREFIX_STATE:   4,
	PREFIX_COLOR:   7,
	PREFIX_PROGRAM: 5,
}

// Split separates a captured command stream into its framed messages,
// checking each trailer.
func Split(stream []byte) (messages [][]byte, err error) {
	for len(stream) > 0 {
		n, ok := messageLength[stream[0]]
		if !ok {
			err = ErrMessagePrefix
			return
		}
		if len(stream) < n {
			err = ErrMessageTruncated
			return
		}
		if !Verify(stream[:n]) {
			err = ErrMessageChecksum
			return
		}
		messages = append(messages, stream[:n:n])
		stream = stream[n:]
	}

	return
}
