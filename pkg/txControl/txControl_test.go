package txControl_test

import (
	"bufio"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/8ff/ookwav/pkg/txControl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRigctld answers every command with reply and records what it received
type fakeRigctld struct {
	ln       net.Listener
	reply    string
	mu       sync.Mutex
	commands []string
}

func startFake(t *testing.T, reply string) *fakeRigctld {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	f := &fakeRigctld{ln: ln, reply: reply}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			line, err := bufio.NewReader(conn).ReadString('\n')
			if err == nil {
				f.mu.Lock()
				f.commands = append(f.commands, strings.TrimSpace(line))
				f.mu.Unlock()
				conn.Write([]byte(f.reply + "\n"))
			}
			conn.Close()
		}
	}()
	return f
}

func (f *fakeRigctld) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

func TestTransmit(t *testing.T) {
	f := startFake(t, "RPRT 0")
	rig := txControl.New(f.ln.Addr().String())

	called := false
	require.NoError(t, rig.Transmit(func() error {
		called = true
		return nil
	}))
	assert.True(t, called)
	assert.Equal(t, []string{"T 1", "T 0"}, f.received())
}

func TestTransmitUnkeysOnError(t *testing.T) {
	f := startFake(t, "RPRT 0")
	rig := txControl.New(f.ln.Addr().String())

	boom := errors.New("playback failed")
	err := rig.Transmit(func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"T 1", "T 0"}, f.received())
}

func TestRejected(t *testing.T) {
	f := startFake(t, "RPRT -11")
	rig := txControl.New(f.ln.Addr().String())

	called := false
	err := rig.Transmit(func() error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "RPRT -11")
	assert.False(t, called, "nothing is sent when the rig cannot be keyed")
}

func TestUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = txControl.New(addr).Command("f")
	assert.Error(t, err)
}
