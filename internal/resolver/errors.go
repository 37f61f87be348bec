package resolver

import (
	"errors"
	"fmt"

	"github.com/jroosing/dnsstub/internal/dns"
)

var (
	// ErrTransport wraps socket failures: dial, send and receive.
	ErrTransport = errors.New("transport error")

	// ErrTimeout reports that no acceptable reply arrived before the deadline.
	ErrTimeout = errors.New("timed out waiting for a reply")
)

// ResponseError is returned when the nameserver answers with a non-zero
// RCODE, for example NXDOMAIN or SERVFAIL.
type ResponseError struct {
	Name  string
	RCode dns.RCode
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("nameserver returned %s for %s", e.RCode, e.Name)
}
