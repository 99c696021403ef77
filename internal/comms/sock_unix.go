//go:build linux || darwin || freebsd || netbsd || openbsd

package comms

import (
	"errors"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

func control(network, address string, rc syscall.RawConn) error {
	var serr error
	err := rc.Control(func(fd uintptr) {
		if serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); serr != nil {
			return
		}
		serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	})
	if err != nil {
		return err
	}
	return serr
}

// readNonBlocking tries one recvfrom with MSG_DONTWAIT. ok is false when there
// was nothing to read.
func readNonBlocking(conn *net.UDPConn, buf []byte) (n int, ok bool, err error) {
	rc, err := conn.SyscallConn()
	if err != nil {
		return 0, false, err
	}
	var rerr error
	err = rc.Read(func(fd uintptr) bool {
		n, _, rerr = unix.Recvfrom(int(fd), buf, unix.MSG_DONTWAIT)
		return true
	})
	if err != nil {
		return 0, false, err
	}
	if errors.Is(rerr, unix.EAGAIN) || errors.Is(rerr, unix.EWOULDBLOCK) {
		return 0, false, nil
	}
	if rerr != nil {
		return 0, false, rerr
	}
	return n, true, nil
}
