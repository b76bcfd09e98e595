package strip

import (
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Controller is a Bridge to a network attached LED strip controller.
//
// When no connection is available, commands are echoed to Echo instead,
// which allows programs to be exercised without hardware attached. A write
// failure on a live connection drops the connection and switches to echo
// mode; transport failures are never reported to the caller.
type Controller struct {
	Verbose bool      // Set to log every command sent.
	Echo    io.Writer // Receives commands in echo mode. Defaults to os.Stdout.

	R, G, B uint8 // Last color sent.
	State   State // Last state sent.
	Sent    int   // Commands sent or echoed.

	conn io.WriteCloser
}

var _ Bridge = (*Controller)(nil)

// NewController creates a controller writing to conn.
// A nil conn creates a controller in echo mode.
func NewController(conn io.WriteCloser) (ctl *Controller) {
	ctl = &Controller{
		State: STATE_OFF,
		conn:  conn,
	}

	return
}

// Dial connects to the strip controller at address:port.
// If the connection fails, the returned controller is in echo mode.
func Dial(address string, port int, timeout time.Duration) (ctl *Controller) {
	target := net.JoinHostPort(address, strconv.Itoa(port))

	conn, err := net.DialTimeout("tcp", target, timeout)
	if err != nil {
		log.Warnf("strip: failed to connect to %v: %v; echoing commands instead", target, err)
		return NewController(nil)
	}

	log.Debugf("strip: connected to %v", target)

	return NewController(conn)
}

// Connected returns true if commands reach a live connection.
func (ctl *Controller) Connected() bool {
	return ctl.conn != nil
}

// Close closes the connection, if any.
func (ctl *Controller) Close() (err error) {
	if ctl.conn != nil {
		err = ctl.conn.Close()
		ctl.conn = nil
	}

	return
}

func (ctl *Controller) echo(message []byte) {
	out := ctl.Echo
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "send: % x\n", message)
}

// Send writes a framed message to the strip.
func (ctl *Controller) Send(message []byte) (err error) {
	ctl.Sent++

	if ctl.Verbose {
		log.Printf("strip: send % x", message)
	}

	if ctl.conn == nil {
		ctl.echo(message)
		return
	}

	_, werr := ctl.conn.Write(message)
	if werr != nil {
		log.Warnf("strip: send failed: %v; echoing commands instead", werr)
		ctl.conn.Close()
		ctl.conn = nil
		ctl.echo(message)
	}

	return
}

// SetState sends an on/off command.
func (ctl *Controller) SetState(state State) (err error) {
	ctl.State = state
	return ctl.Send(StateMessage(state))
}

// SendColor sends an RGB color command.
func (ctl *Controller) SendColor(r, g, b uint8) (err error) {
	ctl.R, ctl.G, ctl.B = r, g, b
	return ctl.Send(ColorMessage(r, g, b))
}

// SendProgram sends a built-in program command.
func (ctl *Controller) SendProgram(program Program, speed uint8) (err error) {
	return ctl.Send(ProgramMessage(program, speed))
}
