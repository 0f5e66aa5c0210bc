package txControl

/*
Keys a radio through a running rigctld (hamlib) while a tone is played.
*/

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/8ff/ookwav/pkg/misc"
)

const DefaultTimeout = 5 * time.Second

type Rig struct {
	Addr    string // host:port of rigctld
	Timeout time.Duration
}

func New(addr string) Rig {
	return Rig{Addr: addr, Timeout: DefaultTimeout}
}

// Command sends one rigctld command and returns the first response line
func (r Rig) Command(command string) (string, error) {
	conn, err := net.DialTimeout("tcp", r.Addr, r.Timeout)
	if err != nil {
		return "", fmt.Errorf("error connecting to rigctld at %s: %w", r.Addr, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(r.Timeout)); err != nil {
		return "", err
	}

	if _, err := fmt.Fprintf(conn, "%s\n", command); err != nil {
		return "", fmt.Errorf("error sending %q: %w", command, err)
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading reply to %q: %w", command, err)
	}
	return strings.TrimSpace(line), nil
}

// PTT switches the transmitter. rigctld answers set commands with "RPRT <code>", 0 meaning success.
func (r Rig) PTT(on bool) error {
	command := "T 0"
	if on {
		command = "T 1"
	}

	reply, err := r.Command(command)
	if err != nil {
		return err
	}
	if reply != "RPRT 0" {
		return fmt.Errorf("rigctld rejected %q: %s", command, reply)
	}
	misc.Log("debug", fmt.Sprintf("PTT %t", on))
	return nil
}

// Transmit keys the rig, runs send and always unkeys afterwards
func (r Rig) Transmit(send func() error) error {
	if err := r.PTT(true); err != nil {
		return err
	}

	sendErr := send()
	if err := r.PTT(false); err != nil {
		if sendErr != nil {
			misc.Log("error", fmt.Sprintf("Error releasing PTT: %s", err))
			return sendErr
		}
		return err
	}
	return sendErr
}
