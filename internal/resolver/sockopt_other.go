//go:build !unix

package resolver

import "syscall"

// socketControl is a no-op where x/sys/unix is unavailable.
func socketControl(int) func(network, address string, c syscall.RawConn) error {
	return nil
}
