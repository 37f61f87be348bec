//go:build unix

package resolver

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// socketControl returns a Dialer.Control hook that sets SO_RCVBUF on the
// query socket, or nil when size is not positive.
func socketControl(size int) func(network, address string, c syscall.RawConn) error {
	if size <= 0 {
		return nil
	}
	return func(_, _ string, c syscall.RawConn) error {
		var sockErr error
		err := c.Control(func(fd uintptr) {
			sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, size)
		})
		if err != nil {
			return err
		}
		return sockErr
	}
}
