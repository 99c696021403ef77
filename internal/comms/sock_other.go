//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package comms

import (
	"errors"
	"net"
	"os"
	"syscall"
	"time"
)

// No SO_REUSEADDR here; a second panel on the same host cannot share the port.
func control(network, address string, rc syscall.RawConn) error { return nil }

const pollWindow = time.Millisecond

func readNonBlocking(conn *net.UDPConn, buf []byte) (int, bool, error) {
	if err := conn.SetReadDeadline(time.Now().Add(pollWindow)); err != nil {
		return 0, false, err
	}
	n, _, err := conn.ReadFromUDP(buf)
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
