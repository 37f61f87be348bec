// Package dns implements the DNS wire format needed by a stub resolver.
//
// Standards Compliance:
//
//   - RFC 1035: Domain Names - Implementation and Specification
//     (header, name encoding and compression, question and RR framing)
//
// Scope:
//
// Only the IPv4 address record (A) in class IN is modeled. Every other
// record type or class is rejected with an explicit error rather than being
// skipped, so callers never receive a partially understood message.
//
// Decoding:
//
// All decoders take the complete message buffer and a cursor (off *int).
// Compression pointers are absolute offsets from the start of the message,
// so names are always decoded against the original buffer, never against a
// sub-slice.
//
// Error Handling:
//
// Every error returned by this package wraps one of the sentinels below,
// which in turn wrap ErrDNSError. Use errors.Is to classify failures.
package dns

import (
	"errors"
	"fmt"
)

var (
	// ErrDNSError is the root of all DNS wire errors.
	ErrDNSError = errors.New("dns wire error")

	// ErrInvalidName reports a name that violates label or length limits.
	ErrInvalidName = fmt.Errorf("%w: invalid domain name", ErrDNSError)

	// ErrTruncatedName reports a name that runs past the end of the buffer.
	ErrTruncatedName = fmt.Errorf("%w: truncated domain name", ErrDNSError)

	// ErrMalformedPointer reports a compression pointer outside the message.
	ErrMalformedPointer = fmt.Errorf("%w: malformed compression pointer", ErrDNSError)

	// ErrPointerLoop reports a compression pointer cycle or an excessive
	// pointer chain. It also matches ErrMalformedPointer.
	ErrPointerLoop = fmt.Errorf("%w: compression pointer loop", ErrMalformedPointer)

	// ErrTruncatedMessage reports a header, question or record that runs
	// past the end of the buffer.
	ErrTruncatedMessage = fmt.Errorf("%w: truncated message", ErrDNSError)

	// ErrUnsupportedRecordType reports a type tag other than A.
	ErrUnsupportedRecordType = fmt.Errorf("%w: unsupported record type", ErrDNSError)

	// ErrUnsupportedClass reports a class tag other than IN.
	ErrUnsupportedClass = fmt.Errorf("%w: unsupported class", ErrDNSError)

	// ErrInvalidRecordLength reports an RDLENGTH that does not fit the type.
	ErrInvalidRecordLength = fmt.Errorf("%w: invalid record length", ErrDNSError)
)
